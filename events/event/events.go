package event

import (
	"time"

	"github.com/crediflow/crediflow/events"
	"github.com/google/uuid"
)

const (
	ApplicationSubmittedEvent     events.EventName = "application_submitted"
	ApplicationStatusChangedEvent events.EventName = "application_status_changed"
	ApplicationUpdatedEvent       events.EventName = "application_updated"

	UserLoginEvent events.EventName = "user_login"

	UserPasswordRecoveryRequestedEvent events.EventName = "user_password_recovery_requested"
	UserPasswordRecoveryUsedEvent      events.EventName = "user_password_recovery_used"
	UserEmailChangedEvent              events.EventName = "user_email_changed"
	UserPasswordChangedEvent           events.EventName = "user_password_changed"

	EmailPasswordRecoverySentEvent events.EventName = "email_password_recovery_sent"

	UserCreatedEvent events.EventName = "user_created"
	UserDeletedEvent events.EventName = "user_deleted"

	AdminSeededEvent events.EventName = "admin_seeded"
)

type ApplicationSubmitted struct {
	ApplicationID   int
	ReferenceID     uuid.UUID
	ApplicationType string
}

func (*ApplicationSubmitted) Name() events.EventName { return ApplicationSubmittedEvent }

type ApplicationStatusChanged struct {
	ApplicationID int
	From          string
	To            string
}

func (*ApplicationStatusChanged) Name() events.EventName { return ApplicationStatusChangedEvent }

type ApplicationUpdated struct {
	ApplicationID int
	Fields        []string
}

func (*ApplicationUpdated) Name() events.EventName { return ApplicationUpdatedEvent }

type UserLogin struct {
	UserID uuid.UUID
}

func (*UserLogin) Name() events.EventName { return UserLoginEvent }

type UserPasswordRecoveryRequested struct {
	UserID uuid.UUID
}

func (*UserPasswordRecoveryRequested) Name() events.EventName {
	return UserPasswordRecoveryRequestedEvent
}

type UserPasswordRecoveryUsed struct {
	UserID uuid.UUID
	Token  string
	Email  string
}

func (*UserPasswordRecoveryUsed) Name() events.EventName { return UserPasswordRecoveryUsedEvent }

type UserEmailChanged struct {
	UserID uuid.UUID
	Email  string
}

func (*UserEmailChanged) Name() events.EventName { return UserEmailChangedEvent }

type UserPasswordChanged struct {
	UserID uuid.UUID
}

func (*UserPasswordChanged) Name() events.EventName { return UserPasswordChangedEvent }

type EmailPasswordRecoverySent struct {
	UserID uuid.UUID
	Token  string
	Email  string
	Sent   time.Time
}

func (*EmailPasswordRecoverySent) Name() events.EventName { return EmailPasswordRecoverySentEvent }

type UserCreated struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

func (*UserCreated) Name() events.EventName { return UserCreatedEvent }

type UserDeleted struct {
	UserID uuid.UUID
}

func (*UserDeleted) Name() events.EventName { return UserDeletedEvent }

type AdminSeeded struct {
	UserID uuid.UUID
	Email  string
}

func (*AdminSeeded) Name() events.EventName { return AdminSeededEvent }
