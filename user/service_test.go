package user

import (
	"context"
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
	"golang.org/x/crypto/bcrypt"
)

type fakeUserStore struct {
	users map[uuid.UUID]*tables.UserTable

	lastRecoveryToken string
	lastPasswordHash  string
	consumedToken     string
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*tables.UserTable)}
}

func (f *fakeUserStore) User(_ context.Context, id uuid.UUID) (*tables.UserTable, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, db.ErrNotFound
}

func (f *fakeUserStore) UserByEmail(_ context.Context, email string) (*tables.UserTable, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, db.ErrNotFound
}

func (f *fakeUserStore) UserByRecoveryToken(
	_ context.Context,
	token string,
) (*tables.UserTable, error) {
	if token == "" {
		return nil, db.ErrNotFound
	}
	for _, u := range f.users {
		if u.RecoveryToken != nil && *u.RecoveryToken == token {
			return u, nil
		}
	}
	return nil, db.ErrNotFound
}

func (f *fakeUserStore) SetRecoveryToken(
	_ context.Context,
	id uuid.UUID,
	token string,
) (bool, error) {
	u, ok := f.users[id]
	if !ok {
		return false, nil
	}
	now := time.Now().UTC()
	u.RecoveryToken = &token
	u.RecoveryTokenCreated = &now
	f.lastRecoveryToken = token
	return true, nil
}

func (f *fakeUserStore) ConsumeRecoveryToken(
	_ context.Context,
	id uuid.UUID,
	token string,
) (bool, error) {
	u, ok := f.users[id]
	if !ok || u.RecoveryToken == nil || *u.RecoveryToken != token {
		return false, nil
	}
	u.RecoveryToken = nil
	u.RecoveryTokenCreated = nil
	f.consumedToken = token
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
	f.lastPasswordHash = passwordHash
	return true, nil
}

type fakeMailer struct {
	sentTo    string
	sentToken string
	err       error
}

func (f *fakeMailer) SendPasswordRecoverMail(email string, token string, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.sentTo = email
	f.sentToken = token
	return nil
}

func testConfig() *config.Configuration {
	return &config.Configuration{
		Behaviour: &config.BehaviourConfiguration{
			DefaultLocale:       "en",
			PasswordMinLength:   8,
			RecoveryTokenExpiry: time.Hour,
		},
	}
}

func setupService(t *testing.T) (*Service, *fakeUserStore, *fakeMailer) {
	store := newFakeUserStore()
	mailer := &fakeMailer{}
	log := zaptest.NewLogger(t)
	svc := New(store, log, testConfig(), mailer, events.NewDispatcher(log))
	return svc, store, mailer
}

func seedUser(t *testing.T, store *fakeUserStore, email string, password string) uuid.UUID {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	id := uuid.New()
	store.users[id] = &tables.UserTable{
		ID:        id,
		FirstName: "Ada",
		LastName:  "Review",
		Email:     email,
		Role:      "reviewer",
		Password:  string(hash),
	}
	return id
}

func TestSignIn(t *testing.T) {
	svc, store, _ := setupService(t)
	id := seedUser(t, store, "ada@example.com", "correct horse")

	signedIn, err := svc.SignIn(context.Background(), "ada@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, id, signedIn.ID)
	assert.Equal(t, "ada@example.com", signedIn.Email)
	assert.Equal(t, "reviewer", signedIn.Role)
}

func TestSignInWrongPasswordAndUnknownUserLookAlike(t *testing.T) {
	svc, store, _ := setupService(t)
	seedUser(t, store, "ada@example.com", "correct horse")

	_, errWrongPw := svc.SignIn(context.Background(), "ada@example.com", "nope")
	_, errUnknown := svc.SignIn(context.Background(), "ghost@example.com", "nope")
	assert.ErrorIs(t, errWrongPw, ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
}

func TestTriggerPasswordRecoverySendsTokenMail(t *testing.T) {
	svc, store, mailer := setupService(t)
	seedUser(t, store, "ada@example.com", "correct horse")

	err := svc.TriggerPasswordRecovery(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, store.lastRecoveryToken)
	assert.Equal(t, "ada@example.com", mailer.sentTo)
	assert.Equal(t, store.lastRecoveryToken, mailer.sentToken)
}

func TestTriggerPasswordRecoveryUnknownEmail(t *testing.T) {
	svc, _, _ := setupService(t)
	err := svc.TriggerPasswordRecovery(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, ErrEntityDoesNotExist)
}

func TestRecoverPasswordConsumesToken(t *testing.T) {
	svc, store, _ := setupService(t)
	seedUser(t, store, "ada@example.com", "correct horse")
	require.NoError(t, svc.TriggerPasswordRecovery(context.Background(), "ada@example.com"))
	token := store.lastRecoveryToken

	err := svc.RecoverPassword(context.Background(), "ada@example.com", token, "new password")
	require.NoError(t, err)
	assert.Equal(t, token, store.consumedToken)

	_, err = svc.SignIn(context.Background(), "ada@example.com", "new password")
	assert.NoError(t, err)
}

func TestRecoverPasswordRejectsForeignEmail(t *testing.T) {
	svc, store, _ := setupService(t)
	seedUser(t, store, "ada@example.com", "correct horse")
	require.NoError(t, svc.TriggerPasswordRecovery(context.Background(), "ada@example.com"))

	err := svc.RecoverPassword(
		context.Background(),
		"other@example.com",
		store.lastRecoveryToken,
		"new password",
	)
	assert.ErrorIs(t, err, ErrEntityDoesNotExist)
}

func TestRecoverPasswordExpiredToken(t *testing.T) {
	svc, store, _ := setupService(t)
	id := seedUser(t, store, "ada@example.com", "correct horse")
	require.NoError(t, svc.TriggerPasswordRecovery(context.Background(), "ada@example.com"))

	stale := time.Now().UTC().Add(-2 * time.Hour)
	store.users[id].RecoveryTokenCreated = &stale

	err := svc.RecoverPassword(
		context.Background(),
		"ada@example.com",
		store.lastRecoveryToken,
		"new password",
	)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestRecoverPasswordGuidelines(t *testing.T) {
	svc, store, _ := setupService(t)
	seedUser(t, store, "ada@example.com", "correct horse")
	require.NoError(t, svc.TriggerPasswordRecovery(context.Background(), "ada@example.com"))

	err := svc.RecoverPassword(
		context.Background(),
		"ada@example.com",
		store.lastRecoveryToken,
		"short",
	)
	assert.ErrorIs(t, err, ErrPasswordGuidelines)
	assert.Empty(t, store.consumedToken)
}

func TestChangePasswordRequiresOldPassword(t *testing.T) {
	svc, store, _ := setupService(t)
	id := seedUser(t, store, "ada@example.com", "correct horse")

	err := svc.ChangePassword(context.Background(), id, "wrong", "new password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	err = svc.ChangePassword(context.Background(), id, "correct horse", "new password")
	require.NoError(t, err)
	_, err = svc.SignIn(context.Background(), "ada@example.com", "new password")
	assert.NoError(t, err)
}
