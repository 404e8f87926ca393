// Package user handles reviewer sign-in and password recovery.
package user

import (
	"context"
	"errors"
	"time"

	"github.com/crediflow/crediflow/config"
	"github.com/crediflow/crediflow/db"
	"github.com/crediflow/crediflow/db/tables"
	"github.com/crediflow/crediflow/events"
	"github.com/crediflow/crediflow/events/event"
	"github.com/crediflow/crediflow/generator"
	"github.com/crediflow/crediflow/i18n"
	"github.com/crediflow/crediflow/sanitize"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEntityDoesNotExist = errors.New("entity does not exist")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("supplied token has expired")
	ErrPasswordGuidelines = errors.New("password doesnt match password guidelines")
)

// Dispatcher pushes domain events to the registered listeners.
type Dispatcher interface {
	Dispatch(ctx context.Context, ev events.Event)
}

// Mailer sends the password recovery email.
type Mailer interface {
	SendPasswordRecoverMail(email string, token string, language string) error
}

// UserStore is the persistence surface of the sign-in service.
type UserStore interface {
	User(ctx context.Context, id uuid.UUID) (*tables.UserTable, error)
	UserByEmail(ctx context.Context, email string) (*tables.UserTable, error)
	UserByRecoveryToken(ctx context.Context, token string) (*tables.UserTable, error)
	SetRecoveryToken(ctx context.Context, id uuid.UUID, token string) (bool, error)
	ConsumeRecoveryToken(ctx context.Context, id uuid.UUID, token string) (bool, error)
	SetPassword(ctx context.Context, id uuid.UUID, passwordHash string) (bool, error)
}

// SignedInUser is the identity handed to the token issuer after
// credentials checked out.
type SignedInUser struct {
	ID        uuid.UUID
	Email     string
	FirstName string
	LastName  string
	Role      string
}

type Service struct {
	store      UserStore
	log        *zap.Logger
	cfg        *config.Configuration
	mailer     Mailer
	dispatcher Dispatcher
}

func New(store UserStore,
	logger *zap.Logger,
	cfg *config.Configuration,
	mailer Mailer,
	dispatcher Dispatcher) *Service {
	return &Service{
		store:      store,
		log:        logger,
		cfg:        cfg,
		mailer:     mailer,
		dispatcher: dispatcher,
	}
}

func (g *Service) currentLocale(ctx context.Context) string {
	locale := ctx.Value(i18n.ContextLangKey)
	if locale != nil && len(locale.(string)) == 2 {
		return locale.(string)
	}
	if len(g.cfg.Behaviour.DefaultLocale) == 2 {
		return g.cfg.Behaviour.DefaultLocale
	}
	return "en"
}

// SignIn validates the supplied credentials. A missing account and a
// wrong password are indistinguishable to the caller.
func (g *Service) SignIn(
	ctx context.Context,
	email string,
	password string,
) (*SignedInUser, error) {
	ud, err := g.store.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			g.log.Info("sign in attempt for unknown email", sanitize.UserInputString("email", email))
			return nil, ErrInvalidCredentials
		}
		g.log.Error("unexpected data store error", zap.Error(err))
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(ud.Password), []byte(password)) != nil {
		g.log.Info("sign in attempt with wrong password", sanitize.UserInputString("email", email))
		return nil, ErrInvalidCredentials
	}
	g.dispatcher.Dispatch(ctx, &event.UserLogin{
		UserID: ud.ID,
	})
	return &SignedInUser{
		ID:        ud.ID,
		Email:     ud.Email,
		FirstName: ud.FirstName,
		LastName:  ud.LastName,
		Role:      ud.Role,
	}, nil
}

// Validate rechecks the password of an already signed-in user, used
// before sensitive profile changes.
func (g *Service) Validate(ctx context.Context, id uuid.UUID, password string) error {
	ud, err := g.store.User(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return ErrEntityDoesNotExist
		}
		g.log.Error("unexpected data store error", zap.Error(err))
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(ud.Password), []byte(password)) != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// TriggerPasswordRecovery stores a fresh recovery token and mails the
// reset link. Unknown addresses surface as ErrEntityDoesNotExist, the
// API layer decides whether to hide that.
func (g *Service) TriggerPasswordRecovery(ctx context.Context, email string) error {
	ud, err := g.store.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			g.log.Info(
				"password recovery requested for unknown email",
				sanitize.UserInputString("email", email),
			)
			return ErrEntityDoesNotExist
		}
		g.log.Error("unexpected data store error", zap.Error(err))
		return err
	}
	// tokens are only ever looked up together with the account, no
	// uniqueness check needed
	token := generator.New().CreateSecureToken()
	ok, err := g.store.SetRecoveryToken(ctx, ud.ID, string(token))
	if err != nil {
		g.log.Error("unable to set recovery token in store", zap.Error(err))
		return err
	}
	if !ok {
		return ErrEntityDoesNotExist
	}
	g.dispatcher.Dispatch(ctx, &event.UserPasswordRecoveryRequested{
		UserID: ud.ID,
	})
	err = g.mailer.SendPasswordRecoverMail(ud.Email, string(token), g.currentLocale(ctx))
	if err != nil {
		g.log.Error("unable to send recovery email", zap.Error(err))
		return err
	}
	g.dispatcher.Dispatch(ctx, &event.EmailPasswordRecoverySent{
		UserID: ud.ID,
		Email:  ud.Email,
		Token:  string(token),
		Sent:   time.Now(),
	})
	return nil
}

// RecoverPassword consumes a recovery token from the reset mail and
// sets the new password.
func (g *Service) RecoverPassword(
	ctx context.Context,
	email string,
	token string,
	password string,
) error {
	if len(password) < g.cfg.Behaviour.PasswordMinLength {
		return ErrPasswordGuidelines
	}
	ud, err := g.store.UserByRecoveryToken(ctx, token)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return ErrEntityDoesNotExist
		}
		g.log.Error("unexpected data store error", zap.Error(err))
		return err
	}
	if ud.Email != email {
		return ErrEntityDoesNotExist
	}
	if g.expired(ud.RecoveryTokenCreated) {
		return ErrTokenExpired
	}
	ok, err := g.store.ConsumeRecoveryToken(ctx, ud.ID, token)
	if err != nil {
		return err
	}
	if !ok {
		return ErrEntityDoesNotExist
	}
	g.dispatcher.Dispatch(ctx, &event.UserPasswordRecoveryUsed{
		UserID: ud.ID,
		Email:  email,
		Token:  token,
	})
	return g.setPassword(ctx, ud.ID, password)
}

func (g *Service) expired(created *time.Time) bool {
	if created == nil {
		return true
	}
	expiry := g.cfg.Behaviour.RecoveryTokenExpiry
	if expiry <= 0 {
		return false
	}
	return created.Add(expiry).Before(time.Now().UTC())
}

// ChangePassword swaps the password after the old one checked out.
func (g *Service) ChangePassword(
	ctx context.Context,
	id uuid.UUID,
	oldPassword string,
	password string,
) error {
	if err := g.Validate(ctx, id, oldPassword); err != nil {
		return err
	}
	if len(password) < g.cfg.Behaviour.PasswordMinLength {
		return ErrPasswordGuidelines
	}
	return g.setPassword(ctx, id, password)
}

func (g *Service) setPassword(ctx context.Context, id uuid.UUID, password string) error {
	pw, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	ok, err := g.store.SetPassword(ctx, id, string(pw))
	if err != nil {
		return err
	}
	if !ok {
		return ErrEntityDoesNotExist
	}
	g.dispatcher.Dispatch(ctx, &event.UserPasswordChanged{
		UserID: id,
	})
	return nil
}
