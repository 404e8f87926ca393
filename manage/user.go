// Package manage contains the administrative operations on reviewer
// accounts, everything a user can not trigger for himself lives here.
package manage

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/crediflow/crediflow/config"
	"github.com/crediflow/crediflow/db"
	"github.com/crediflow/crediflow/db/tables"
	"github.com/crediflow/crediflow/events"
	"github.com/crediflow/crediflow/events/event"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEntityAlreadyExists = errors.New("entity already exists in system")
	ErrPasswordGuidelines  = errors.New("password doesnt match password guidelines")
	ErrUnknownRole         = errors.New("unknown role")
	ErrNotFound            = errors.New("entity not found")
)

const (
	RoleAdmin    = "admin"
	RoleReviewer = "reviewer"
)

// searchFields are the columns the account list free-text search runs
// over.
var searchFields = []string{
	"firstName",
	"lastName",
	"email",
}

// UserStore is the persistence surface of the account management
// service.
type UserStore interface {
	Users(ctx context.Context, query db.Query) ([]*tables.UserTable, int, error)
	User(ctx context.Context, id uuid.UUID) (*tables.UserTable, error)
	IsRegistred(ctx context.Context, email string) (bool, error)
	InsertUser(
		ctx context.Context,
		firstName string,
		lastName string,
		email string,
		passwordHash string,
		phone *string,
		role string,
	) (uuid.UUID, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	SetName(ctx context.Context, id uuid.UUID, firstName string, lastName string) (bool, error)
	SetEmail(ctx context.Context, id uuid.UUID, email string) (bool, error)
	SetPassword(ctx context.Context, id uuid.UUID, passwordHash string) (bool, error)
}

func NewUserService(store UserStore,
	log *zap.Logger,
	cfg *config.Configuration,
	dispatcher *events.Dispatcher) *UserService {
	return &UserService{
		store:      store,
		log:        log,
		cfg:        cfg,
		dispatcher: dispatcher,
	}
}

type UserService struct {
	store      UserStore
	log        *zap.Logger
	cfg        *config.Configuration
	dispatcher *events.Dispatcher
}

// List returns the account page selected by the raw query parameters.
func (g *UserService) List(ctx context.Context, params url.Values) (*UserListResult, error) {
	query := db.NewQueryBuilder(params).
		Filter().
		Search(searchFields...).
		Sort("createdAt").
		Fields().
		Paginate().
		Build()

	users, total, err := g.store.Users(ctx, query)
	if err != nil {
		g.log.Error("unable to list users", zap.Error(err))
		return nil, err
	}
	dtos := make([]*UserDTO, len(users))
	for i, v := range users {
		dtos[i] = userDTOFromEntity(v)
	}
	return &UserListResult{
		Meta: query.Meta(total),
		Data: dtos,
	}, nil
}

// ByID returns a single account.
func (g *UserService) ByID(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	user, err := g.store.User(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return userDTOFromEntity(user), nil
}

func canonicalRole(role string) (string, error) {
	switch strings.ToLower(role) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleReviewer, "":
		return RoleReviewer, nil
	}
	return "", ErrUnknownRole
}

// Create registers a new reviewer or admin account.
func (g *UserService) Create(
	ctx context.Context,
	firstName string,
	lastName string,
	email string,
	password string,
	phone *string,
	role string,
) (uuid.UUID, error) {
	if len(password) < g.cfg.Behaviour.PasswordMinLength {
		return uuid.UUID{}, ErrPasswordGuidelines
	}
	r, err := canonicalRole(role)
	if err != nil {
		return uuid.UUID{}, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return uuid.UUID{}, err
	}
	id, err := g.store.InsertUser(ctx, firstName, lastName, email, string(hash), phone, r)
	if err != nil {
		if errors.Is(err, db.ErrAlreadyExists) {
			return uuid.UUID{}, ErrEntityAlreadyExists
		}
		g.log.Error("unable to insert user", zap.Error(err))
		return uuid.UUID{}, err
	}
	g.dispatcher.Dispatch(ctx, &event.UserCreated{
		UserID: id,
		Email:  email,
		Role:   r,
	})
	return id, nil
}

// Delete removes an account for good.
func (g *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	err := g.store.DeleteUser(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	g.dispatcher.Dispatch(ctx, &event.UserDeleted{
		UserID: id,
	})
	return nil
}

// UpdateName sets the display name of an account.
func (g *UserService) UpdateName(
	ctx context.Context,
	id uuid.UUID,
	firstName string,
	lastName string,
) error {
	ok, err := g.store.SetName(ctx, id, firstName, lastName)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// UpdateEmail changes the sign-in address of an account, refused when
// the address is already taken.
func (g *UserService) UpdateEmail(ctx context.Context, id uuid.UUID, email string) error {
	exists, err := g.store.IsRegistred(ctx, email)
	if err != nil {
		g.log.Error("could not check registred status from store", zap.Error(err))
		return err
	}
	if exists {
		return ErrEntityAlreadyExists
	}
	ok, err := g.store.SetEmail(ctx, id, email)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	g.dispatcher.Dispatch(ctx, &event.UserEmailChanged{
		UserID: id,
		Email:  email,
	})
	return nil
}

// EnsureAdmin seeds the configured administrator account on startup,
// a no-op when the address is already registered or no admin is
// configured.
func (g *UserService) EnsureAdmin(ctx context.Context) error {
	admin := g.cfg.Behaviour.Admin
	if admin == nil || admin.Email == "" {
		return nil
	}
	exists, err := g.store.IsRegistred(ctx, admin.Email)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	id, err := g.store.InsertUser(ctx, "Admin", "", admin.Email, string(hash), nil, RoleAdmin)
	if err != nil {
		return err
	}
	g.log.Info("seeded administrator account", zap.String("email", admin.Email))
	g.dispatcher.Dispatch(ctx, &event.AdminSeeded{
		UserID: id,
		Email:  admin.Email,
	})
	return nil
}
