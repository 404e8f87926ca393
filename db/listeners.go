package db

import (
	"context"

	"github.com/crediflow/crediflow/db/tables"
	"github.com/crediflow/crediflow/events"
	"github.com/crediflow/crediflow/events/event"
	"go.uber.org/zap"
)

// Auditor is a way to write audit log events into a persistent store
type Auditor interface {
	addToAuditLog(ctx context.Context, event string, payload tables.MapStructure) error
}

// BootstrapListeners registers all the event listeners from this package
func BootstrapListeners(store Auditor, log *zap.Logger) []events.EventListener {
	return []events.EventListener{
		&applicationSubmittedListener{
			log:   log,
			store: store,
		},
		&applicationStatusChangedListener{
			log:   log,
			store: store,
		},
		&applicationUpdatedListener{
			log:   log,
			store: store,
		},
		&userLoginListener{
			log:   log,
			store: store,
		},
		&userPasswordRecoveryRequestedListener{
			log:   log,
			store: store,
		},
		&userPasswordRecoveryUsedListener{
			log:   log,
			store: store,
		},
		&userPasswordChangedListener{
			log:   log,
			store: store,
		},
		&userEmailChangedListener{
			log:   log,
			store: store,
		},
		&emailPasswordRecoverySentListener{
			log:   log,
			store: store,
		},
		&userCreatedListener{
			log:   log,
			store: store,
		},
		&userDeletedListener{
			log:   log,
			store: store,
		},
		&adminSeededListener{
			log:   log,
			store: store,
		},
	}
}

type applicationSubmittedListener struct {
	store Auditor
	log   *zap.Logger
}

func (*applicationSubmittedListener) ForEvent() events.EventName {
	return event.ApplicationSubmittedEvent
}

func (l *applicationSubmittedListener) Handle(ctx context.Context, ev events.Event) error {
	e := ev.(*event.ApplicationSubmitted)
	err := l.store.addToAuditLog(ctx, string(l.ForEvent()), map[string]interface{}{
		"application_id": e.ApplicationID,
		"reference_id":   e.ReferenceID.String(),
		"type":           e.ApplicationType,
	})
	if err != nil {
		l.log.Warn("Could not persist event to audit log", zap.Error(err))
	}
	return nil
}

type applicationStatusChangedListener struct {
	store Auditor
	log   *zap.Logger
}

func (*applicationStatusChangedListener) ForEvent() events.EventName {
	return event.ApplicationStatusChangedEvent
}

func (l *applicationStatusChangedListener) Handle(ctx context.Context, ev events.Event) error {
	e := ev.(*event.ApplicationStatusChanged)
	err := l.store.addToAuditLog(ctx, string(l.ForEvent()), map[string]interface{}{
		"application_id": e.ApplicationID,
		"from":           e.From,
		"to":             e.To,
	})
	if err != nil {
		l.log.Warn("Could not persist event to audit log", zap.Error(err))
	}
	return nil
}

type applicationUpdatedListener struct {
	store Auditor
	log   *zap.Logger
}

func (*applicationUpdatedListener) ForEvent() events.EventName {
	return event.ApplicationUpdatedEvent
}

func (l *applicationUpdatedListener) Handle(ctx context.Context, ev events.Event) error {
	e := ev.(*event.ApplicationUpdated)
	err := l.store.addToAuditLog(ctx, string(l.ForEvent()), map[string]interface{}{
		"application_id": e.ApplicationID,
		"fields":         e.Fields,
	})
	if err != nil {
		l.log.Warn("Could not persist event to audit log", zap.Error(err))
	}
	return nil
}

type userLoginListener struct {
	store Auditor
	log   *zap.Logger
}

func (*userLoginListener) ForEvent() events.EventName {
	return event.UserLoginEvent
}

func (l *userLoginListener) Handle(ctx context.Context, ev events.Event) error {
	e := ev.(*event.UserLogin)
	err := l.store.addToAuditLog(ctx, string(l.ForEvent()), map[string]interface{}{
		"user_id": e.UserID.String(),
	})
	if err != nil {
		l.log.Warn("Could not persist event to audit log", zap.Error(err))
	}

	return nil
}

type userPasswordRecoveryRequestedListener struct {
	store Auditor
	log   *zap.Logger
}

func (*userPasswordRecoveryRequestedListener) ForEvent() events.EventName {
	return event.UserPasswordRecoveryRequestedEvent
}

func (l *userPasswordRecoveryRequestedListener) Handle(ctx context.Context, ev events.Event) error {
	e := ev.(*event.UserPasswordRecoveryRequested)
	err := l.store.addToAuditLog(ctx, string(l.ForEvent()), map[string]interface{}{
		"user_id": e.UserID.String(),
	})
	if err != nil {
		l.log.Warn("Could not persist event to audit log", zap.Error(err))
	}

	return nil
}

type userPasswordRecoveryUsedListener struct {
	store Auditor
	log   *zap.Logger
}

func (*userPasswordRecoveryUsedListener) ForEvent() events.EventName {
	return event.UserPasswordRecoveryUsedEvent
}

func (l *userPasswordRecoveryUsedListener) Handle(ctx context.Context, ev events.Event) error {
	e := ev.(*event.UserPasswordRecoveryUsed)
	err := l.store.addToAuditLog(ctx, string(l.ForEvent()), map[string]interface{}{
		"user_id": e.UserID.String(),
		"email":   e.Email,
		"token":   e.Token,
	})
	if err != nil {
		l.log.Warn("Could not persist event to audit log", zap.Error(err))
	}

	return nil
}

type userPasswordChangedListener struct {
	store Auditor
	log   *zap.Logger
}

func (*userPasswordChangedListener) ForEvent() events.EventName {
	return event.UserPasswordChangedEvent
}

func (l *userPasswordChangedListener) Handle(ctx context.Context, ev events.Event) error {
	e := ev.(*event.UserPasswordChanged)
	err := l.store.addToAuditLog(ctx, string(l.ForEvent()), map[string]interface{}{
		"user_id": e.UserID.String(),
	})
	if err != nil {
		l.log.Warn("Could not persist event to audit log", zap.Error(err))
	}
	return nil
}

type userEmailChangedListener struct {
	store Auditor
	log   *zap.Logger
}

func (*userEmailChangedListener) ForEvent() events.EventName {
	return event.UserEmailChangedEvent
}

func (l *userEmailChangedListener) Handle(ctx context.Context, ev events.Event) error {
	e := ev.(*event.UserEmailChanged)
	err := l.store.addToAuditLog(ctx, string(l.ForEvent()), map[string]interface{}{
		"user_id":   e.UserID.String(),
		"new_email": e.Email,
	})
	if err != nil {
		l.log.Warn("Could not persist event to audit log", zap.Error(err))
	}

	return nil
}

type emailPasswordRecoverySentListener struct {
	store Auditor
	log   *zap.Logger
}

func (*emailPasswordRecoverySentListener) ForEvent() events.EventName {
	return event.EmailPasswordRecoverySentEvent
}

func (l *emailPasswordRecoverySentListener) Handle(ctx context.Context, ev events.Event) error {
	e := ev.(*event.EmailPasswordRecoverySent)

	err := l.store.addToAuditLog(ctx, string(l.ForEvent()), map[string]interface{}{
		"user_id": e.UserID.String(),
		"email":   e.Email,
		"token":   e.Token,
	})
	if err != nil {
		l.log.Warn("Could not persist event to audit log", zap.Error(err))
	}
	return nil
}

type userCreatedListener struct {
	store Auditor
	log   *zap.Logger
}

func (*userCreatedListener) ForEvent() events.EventName {
	return event.UserCreatedEvent
}

func (l *userCreatedListener) Handle(ctx context.Context, ev events.Event) error {
	e := ev.(*event.UserCreated)
	err := l.store.addToAuditLog(ctx, string(l.ForEvent()), map[string]interface{}{
		"user_id": e.UserID.String(),
		"email":   e.Email,
		"role":    e.Role,
	})
	if err != nil {
		l.log.Warn("Could not persist event to audit log", zap.Error(err))
	}
	return nil
}

type userDeletedListener struct {
	store Auditor
	log   *zap.Logger
}

func (*userDeletedListener) ForEvent() events.EventName {
	return event.UserDeletedEvent
}

func (l *userDeletedListener) Handle(ctx context.Context, ev events.Event) error {
	e := ev.(*event.UserDeleted)
	err := l.store.addToAuditLog(ctx, string(l.ForEvent()), map[string]interface{}{
		"user_id": e.UserID.String(),
	})
	if err != nil {
		l.log.Warn("Could not persist event to audit log", zap.Error(err))
	}
	return nil
}

type adminSeededListener struct {
	store Auditor
	log   *zap.Logger
}

func (*adminSeededListener) ForEvent() events.EventName {
	return event.AdminSeededEvent
}

func (l *adminSeededListener) Handle(ctx context.Context, ev events.Event) error {
	e := ev.(*event.AdminSeeded)
	err := l.store.addToAuditLog(ctx, string(l.ForEvent()), map[string]interface{}{
		"user_id": e.UserID.String(),
		"email":   e.Email,
	})
	if err != nil {
		l.log.Warn("Could not persist event to audit log", zap.Error(err))
	}
	return nil
}
