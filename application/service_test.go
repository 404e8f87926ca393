package application

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/crediflow/crediflow/db"
	"github.com/crediflow/crediflow/db/tables"
	"github.com/crediflow/crediflow/events"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeStore struct {
	apps map[int]*tables.ApplicationTable

	insertErr     error
	lastInsert    *tables.ApplicationTable
	lastStatus    string
	lastStatusID  int
	lastValues    map[string]interface{}
	lastQuery     db.Query
	overview      *db.ApplicationCounts
	statusSetTime time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		apps:          make(map[int]*tables.ApplicationTable),
		statusSetTime: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fakeStore) Applications(
	_ context.Context,
	query db.Query,
) ([]*tables.ApplicationTable, int, error) {
	f.lastQuery = query
	entities := make([]*tables.ApplicationTable, 0, len(f.apps))
	for _, v := range f.apps {
		entities = append(entities, v)
	}
	return entities, len(entities), nil
}

func (f *fakeStore) ApplicationByID(
	_ context.Context,
	id int,
) (*tables.ApplicationTable, error) {
	if app, ok := f.apps[id]; ok {
		return app, nil
	}
	return nil, db.ErrNotFound
}

func (f *fakeStore) InsertApplication(
	_ context.Context,
	app *tables.ApplicationTable,
) (int, error) {
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	f.lastInsert = app
	id := len(f.apps) + 1
	f.apps[id] = app
	return id, nil
}

func (f *fakeStore) SetApplicationStatus(
	_ context.Context,
	id int,
	status string,
) (time.Time, error) {
	if _, ok := f.apps[id]; !ok {
		return time.Time{}, db.ErrNotFound
	}
	f.lastStatusID = id
	f.lastStatus = status
	f.apps[id].Status = status
	return f.statusSetTime, nil
}

func (f *fakeStore) UpdateApplication(
	_ context.Context,
	id int,
	values map[string]interface{},
) error {
	if _, ok := f.apps[id]; !ok {
		return db.ErrNotFound
	}
	f.lastValues = values
	return nil
}

func (f *fakeStore) ApplicationOverview(_ context.Context) (*db.ApplicationCounts, error) {
	return f.overview, nil
}

func newTestService(t *testing.T, store ApplicationStore) *Service {
	log := zaptest.NewLogger(t)
	return NewApplicationService(store, log, events.NewDispatcher(log))
}

func strPtr(s string) *string { return &s }

func TestSubmitPersonalAssignsWorkflowFields(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)

	app, err := svc.SubmitPersonal(context.Background(), &Submission{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, app.ID)
	assert.Equal(t, "PERSONAL", app.Type)
	assert.Equal(t, "PENDING", app.Status)
	assert.NotEqual(t, uuid.UUID{}, app.ReferenceID)
	assert.False(t, app.SubmittedDate.IsZero())
}

func TestSubmitBusinessAssignsType(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)

	app, err := svc.SubmitBusiness(context.Background(), &Submission{
		FirstName:    "Jane",
		LastName:     "Doe",
		Email:        "jane@example.com",
		BusinessName: strPtr("Acme LLC"),
	})
	require.NoError(t, err)
	assert.Equal(t, "BUSINESS", app.Type)
	assert.Equal(t, "PENDING", app.Status)
}

func TestListBuildsQueryFromParams(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store)

	params := url.Values{}
	params.Set("status", "pending")
	params.Set("searchTerm", "doe")
	params.Set("page", "2")
	params.Set("limit", "5")

	_, err := svc.List(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, "PENDING", store.lastQuery.Filter["status"])
	require.NotNil(t, store.lastQuery.Search)
	assert.Equal(t, "doe", store.lastQuery.Search.Term)
	assert.Equal(t, 2, store.lastQuery.Page)
	assert.Equal(t, 5, store.lastQuery.Limit)
	assert.Equal(t, "submittedDate", store.lastQuery.SortBy)
}

func TestListShapesByType(t *testing.T) {
	store := newFakeStore()
	store.apps[1] = &tables.ApplicationTable{
		ID:          1,
		Type:        "PERSONAL",
		Status:      "PENDING",
		FirstName:   "Jane",
		LastName:    "Doe",
		HasCoSigner: false,
	}
	svc := newTestService(t, store)

	result, err := svc.List(context.Background(), url.Values{})
	require.NoError(t, err)
	require.Len(t, result.Data, 1)
	shaped, ok := result.Data[0].(*PersonalApplication)
	require.True(t, ok)
	assert.Equal(t, "Jane", shaped.PersonalInfo.FirstName)
	assert.Equal(t, 1, result.Meta.Total)
}

func TestByIDNotFound(t *testing.T) {
	svc := newTestService(t, newFakeStore())
	_, err := svc.ByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateStatusChecksExistenceBeforeValidity(t *testing.T) {
	svc := newTestService(t, newFakeStore())
	// missing id with a transition that would also be invalid,
	// not-found has to win
	_, err := svc.UpdateStatus(context.Background(), 42, StatusApproved)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatusHappyPath(t *testing.T) {
	store := newFakeStore()
	store.apps[7] = &tables.ApplicationTable{ID: 7, Status: "PENDING"}
	svc := newTestService(t, store)

	update, err := svc.UpdateStatus(context.Background(), 7, StatusInReview)
	require.NoError(t, err)
	assert.Equal(t, 7, update.ID)
	assert.Equal(t, StatusInReview, update.Status)
	assert.Equal(t, store.statusSetTime, update.UpdatedAt)
	assert.Equal(t, "IN_REVIEW", store.lastStatus)
}

func TestUpdateStatusRejectsPendingToApproved(t *testing.T) {
	store := newFakeStore()
	store.apps[7] = &tables.ApplicationTable{ID: 7, Status: "PENDING"}
	svc := newTestService(t, store)

	_, err := svc.UpdateStatus(context.Background(), 7, StatusApproved)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Empty(t, store.lastStatus)
}

func TestUpdateStatusRefusesTerminal(t *testing.T) {
	store := newFakeStore()
	store.apps[7] = &tables.ApplicationTable{ID: 7, Status: "APPROVED"}
	svc := newTestService(t, store)

	_, err := svc.UpdateStatus(context.Background(), 7, StatusRejected)
	assert.ErrorIs(t, err, ErrTerminalStatus)
}

func TestUpdateStatusAllowsInReviewNoOp(t *testing.T) {
	store := newFakeStore()
	store.apps[7] = &tables.ApplicationTable{ID: 7, Status: "IN_REVIEW"}
	svc := newTestService(t, store)

	update, err := svc.UpdateStatus(context.Background(), 7, StatusInReview)
	require.NoError(t, err)
	assert.Equal(t, StatusInReview, update.Status)
}

func TestUpdateResolvesColumnsAndRefusesProtected(t *testing.T) {
	store := newFakeStore()
	store.apps[3] = &tables.ApplicationTable{ID: 3, Status: "PENDING"}
	svc := newTestService(t, store)

	err := svc.Update(context.Background(), 3, map[string]interface{}{
		"firstName": "Janet",
		"bogus":     "dropped",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"first_name": "Janet"}, store.lastValues)

	err = svc.Update(context.Background(), 3, map[string]interface{}{
		"status": "APPROVED",
	})
	assert.ErrorIs(t, err, ErrProtectedField)
}

func TestUpdateAcceptsSignatureData(t *testing.T) {
	store := newFakeStore()
	store.apps[3] = &tables.ApplicationTable{ID: 3, Status: "PENDING"}
	svc := newTestService(t, store)

	err := svc.Update(context.Background(), 3, map[string]interface{}{
		"signatureData": "data:image/png;base64,iVBORw0KGgo=",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"signature_data": "data:image/png;base64,iVBORw0KGgo=",
	}, store.lastValues)
}

func TestShapeBusinessGuarantorOnlyWithCoSigner(t *testing.T) {
	app := &tables.ApplicationTable{
		Type:               "BUSINESS",
		HasCoSigner:        false,
		GuarantorFirstName: strPtr("Max"),
	}
	shaped := Shape(app).(*BusinessApplication)
	assert.Nil(t, shaped.Guarantor)

	app.HasCoSigner = true
	shaped = Shape(app).(*BusinessApplication)
	require.NotNil(t, shaped.Guarantor)
	assert.Equal(t, "Max", *shaped.Guarantor.FirstName)
}
