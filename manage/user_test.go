package manage

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/crediflow/crediflow/config"
	"github.com/crediflow/crediflow/db"
	"github.com/crediflow/crediflow/db/tables"
	"github.com/crediflow/crediflow/events"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeUserStore struct {
	users     map[uuid.UUID]*tables.UserTable
	lastQuery db.Query
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*tables.UserTable)}
}

func (f *fakeUserStore) Users(
	_ context.Context,
	query db.Query,
) ([]*tables.UserTable, int, error) {
	f.lastQuery = query
	entities := make([]*tables.UserTable, 0, len(f.users))
	for _, v := range f.users {
		entities = append(entities, v)
	}
	return entities, len(entities), nil
}

func (f *fakeUserStore) User(_ context.Context, id uuid.UUID) (*tables.UserTable, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, db.ErrNotFound
}

func (f *fakeUserStore) IsRegistred(_ context.Context, email string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) InsertUser(
	_ context.Context,
	firstName string,
	lastName string,
	email string,
	passwordHash string,
	phone *string,
	role string,
) (uuid.UUID, error) {
	for _, u := range f.users {
		if u.Email == email {
			return uuid.UUID{}, db.ErrAlreadyExists
		}
	}
	id := uuid.New()
	f.users[id] = &tables.UserTable{
		ID:        id,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  passwordHash,
		Phone:     phone,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	return id, nil
}

func (f *fakeUserStore) DeleteUser(_ context.Context, id uuid.UUID) error {
	if _, ok := f.users[id]; !ok {
		return db.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserStore) SetName(
	_ context.Context,
	id uuid.UUID,
	firstName string,
	lastName string,
) (bool, error) {
	u, ok := f.users[id]
	if !ok {
		return false, nil
	}
	u.FirstName = firstName
	u.LastName = lastName
	return true, nil
}

func (f *fakeUserStore) SetEmail(_ context.Context, id uuid.UUID, email string) (bool, error) {
	u, ok := f.users[id]
	if !ok {
		return false, nil
	}
	u.Email = email
	return true, nil
}

func (f *fakeUserStore) SetPassword(
	_ context.Context,
	id uuid.UUID,
	passwordHash string,
) (bool, error) {
	u, ok := f.users[id]
	if !ok {
		return false, nil
	}
	u.Password = passwordHash
	return true, nil
}

func setupUserService(t *testing.T) (*UserService, *fakeUserStore) {
	store := newFakeUserStore()
	log := zaptest.NewLogger(t)
	cfg := &config.Configuration{
		Behaviour: &config.BehaviourConfiguration{
			PasswordMinLength: 8,
			Admin: &config.AdminConfiguration{
				Email:    "admin@example.com",
				Password: "let me in please",
			},
		},
	}
	return NewUserService(store, log, cfg, events.NewDispatcher(log)), store
}

func TestCreateUser(t *testing.T) {
	svc, store := setupUserService(t)

	id, err := svc.Create(
		context.Background(),
		"Ada",
		"Review",
		"ada@example.com",
		"long enough",
		nil,
		"reviewer",
	)
	require.NoError(t, err)
	created := store.users[id]
	require.NotNil(t, created)
	assert.Equal(t, RoleReviewer, created.Role)
	assert.NotEqual(t, "long enough", created.Password)
}

func TestCreateUserPasswordGuidelines(t *testing.T) {
	svc, _ := setupUserService(t)
	_, err := svc.Create(
		context.Background(),
		"Ada",
		"Review",
		"ada@example.com",
		"short",
		nil,
		"reviewer",
	)
	assert.ErrorIs(t, err, ErrPasswordGuidelines)
}

func TestCreateUserUnknownRole(t *testing.T) {
	svc, _ := setupUserService(t)
	_, err := svc.Create(
		context.Background(),
		"Ada",
		"Review",
		"ada@example.com",
		"long enough",
		nil,
		"superuser",
	)
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc, _ := setupUserService(t)
	_, err := svc.Create(
		context.Background(),
		"Ada",
		"Review",
		"ada@example.com",
		"long enough",
		nil,
		"reviewer",
	)
	require.NoError(t, err)
	_, err = svc.Create(
		context.Background(),
		"Ada",
		"Again",
		"ada@example.com",
		"long enough",
		nil,
		"reviewer",
	)
	assert.ErrorIs(t, err, ErrEntityAlreadyExists)
}

func TestListBuildsQueryFromParams(t *testing.T) {
	svc, store := setupUserService(t)

	params := url.Values{}
	params.Set("searchTerm", "ada")
	params.Set("role", "reviewer")
	params.Set("limit", "25")

	_, err := svc.List(context.Background(), params)
	require.NoError(t, err)
	require.NotNil(t, store.lastQuery.Search)
	assert.Equal(t, "ada", store.lastQuery.Search.Term)
	assert.Equal(t, "reviewer", store.lastQuery.Filter["role"])
	assert.Equal(t, 25, store.lastQuery.Limit)
	assert.Equal(t, "createdAt", store.lastQuery.SortBy)
}

func TestUpdateEmailRefusesTakenAddress(t *testing.T) {
	svc, _ := setupUserService(t)
	id, err := svc.Create(
		context.Background(),
		"Ada",
		"Review",
		"ada@example.com",
		"long enough",
		nil,
		"reviewer",
	)
	require.NoError(t, err)
	_, err = svc.Create(
		context.Background(),
		"Max",
		"Review",
		"max@example.com",
		"long enough",
		nil,
		"reviewer",
	)
	require.NoError(t, err)

	err = svc.UpdateEmail(context.Background(), id, "max@example.com")
	assert.ErrorIs(t, err, ErrEntityAlreadyExists)
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	svc, store := setupUserService(t)

	require.NoError(t, svc.EnsureAdmin(context.Background()))
	assert.Len(t, store.users, 1)

	require.NoError(t, svc.EnsureAdmin(context.Background()))
	assert.Len(t, store.users, 1)

	for _, u := range store.users {
		assert.Equal(t, RoleAdmin, u.Role)
		assert.Equal(t, "admin@example.com", u.Email)
	}
}

func TestDeleteUser(t *testing.T) {
	svc, store := setupUserService(t)
	id, err := svc.Create(
		context.Background(),
		"Ada",
		"Review",
		"ada@example.com",
		"long enough",
		nil,
		"reviewer",
	)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), id))
	assert.Empty(t, store.users)
	assert.ErrorIs(t, svc.Delete(context.Background(), id), ErrNotFound)
}
