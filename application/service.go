package application

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/crediflow/crediflow/db"
	"github.com/crediflow/crediflow/db/tables"
	"github.com/crediflow/crediflow/events"
	"github.com/crediflow/crediflow/events/event"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrNotFound indicates the requested application does not exist
	ErrNotFound = errors.New("application not found")
	// ErrProtectedField indicates an admin update tried to touch a
	// workflow-managed column
	ErrProtectedField = errors.New("field can not be updated directly")
)

// searchFields are the columns a reviewer free-text search runs over.
var searchFields = []string{
	"firstName",
	"lastName",
	"email",
	"referenceId",
	"ssn",
	"taxId",
	"businessName",
}

// protectedFields are managed by the workflow and never writable
// through the admin update endpoint.
var protectedFields = map[string]struct{}{
	"id":            {},
	"referenceId":   {},
	"type":          {},
	"status":        {},
	"submittedDate": {},
	"updatedAt":     {},
}

// ApplicationStore is the persistence surface the service needs.
type ApplicationStore interface {
	Applications(ctx context.Context, query db.Query) ([]*tables.ApplicationTable, int, error)
	ApplicationByID(ctx context.Context, id int) (*tables.ApplicationTable, error)
	InsertApplication(ctx context.Context, app *tables.ApplicationTable) (int, error)
	SetApplicationStatus(ctx context.Context, id int, status string) (time.Time, error)
	UpdateApplication(ctx context.Context, id int, values map[string]interface{}) error
	ApplicationOverview(ctx context.Context) (*db.ApplicationCounts, error)
}

// Service handles application intake and review.
type Service struct {
	store      ApplicationStore
	log        *zap.Logger
	dispatcher *events.Dispatcher
}

// NewApplicationService assembles the application service.
func NewApplicationService(
	store ApplicationStore,
	log *zap.Logger,
	dispatcher *events.Dispatcher,
) *Service {
	return &Service{
		store:      store,
		log:        log,
		dispatcher: dispatcher,
	}
}

// ListResult is a page of shaped applications plus its metadata.
type ListResult struct {
	Meta db.ListMeta   `json:"meta"`
	Data []interface{} `json:"data"`
}

// SubmitPersonal stores a PERSONAL application.
func (s *Service) SubmitPersonal(
	ctx context.Context,
	payload *Submission,
) (*tables.ApplicationTable, error) {
	return s.submit(ctx, payload, TypePersonal)
}

// SubmitBusiness stores a BUSINESS application.
func (s *Service) SubmitBusiness(
	ctx context.Context,
	payload *Submission,
) (*tables.ApplicationTable, error) {
	return s.submit(ctx, payload, TypeBusiness)
}

func (s *Service) submit(
	ctx context.Context,
	payload *Submission,
	appType Type,
) (*tables.ApplicationTable, error) {
	row := rowFromSubmission(payload)
	row.ReferenceID = uuid.New()
	row.Type = string(appType)
	row.Status = string(StatusPending)
	row.SubmittedDate = time.Now().UTC()

	id, err := s.store.InsertApplication(ctx, row)
	if err != nil {
		s.log.Error("unable to store application", zap.Error(err))
		return nil, err
	}
	row.ID = id
	s.dispatcher.Dispatch(ctx, &event.ApplicationSubmitted{
		ApplicationID:   id,
		ReferenceID:     row.ReferenceID,
		ApplicationType: row.Type,
	})
	return row, nil
}

// List returns the shaped page of applications selected by the raw
// query parameters.
func (s *Service) List(ctx context.Context, params url.Values) (*ListResult, error) {
	query := db.NewQueryBuilder(params).
		Filter().
		Search(searchFields...).
		DateRange("submittedDate").
		FilterByType().
		FilterByStatus().
		Sort("submittedDate").
		Fields().
		Paginate().
		Build()

	entities, total, err := s.store.Applications(ctx, query)
	if err != nil {
		s.log.Error("unable to list applications", zap.Error(err))
		return nil, err
	}
	shaped := make([]interface{}, len(entities))
	for i, v := range entities {
		shaped[i] = Shape(v)
	}
	return &ListResult{
		Meta: query.Meta(total),
		Data: shaped,
	}, nil
}

// ByID returns the shaped reviewer view of a single application.
func (s *Service) ByID(ctx context.Context, id int) (interface{}, error) {
	app, err := s.byID(ctx, id)
	if err != nil {
		return nil, err
	}
	return Shape(app), nil
}

// Raw returns the stored row without reviewer shaping.
func (s *Service) Raw(ctx context.Context, id int) (*tables.ApplicationTable, error) {
	return s.byID(ctx, id)
}

func (s *Service) byID(ctx context.Context, id int) (*tables.ApplicationTable, error) {
	app, err := s.store.ApplicationByID(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrNotFound
		}
		s.log.Error("unable to load application", zap.Error(err), zap.Int("id", id))
		return nil, err
	}
	return app, nil
}

// Overview returns the dashboard counters.
func (s *Service) Overview(ctx context.Context) (*db.ApplicationCounts, error) {
	counts, err := s.store.ApplicationOverview(ctx)
	if err != nil {
		s.log.Error("unable to count applications", zap.Error(err))
		return nil, err
	}
	return counts, nil
}

// UpdateStatus moves an application through the review workflow.
// Missing applications surface before transition validity is judged.
func (s *Service) UpdateStatus(
	ctx context.Context,
	id int,
	target Status,
) (*StatusUpdate, error) {
	app, err := s.byID(ctx, id)
	if err != nil {
		return nil, err
	}
	current, err := ParseStatus(app.Status)
	if err != nil {
		return nil, err
	}
	if err := current.CanTransition(target); err != nil {
		return nil, err
	}
	ts, err := s.store.SetApplicationStatus(ctx, id, string(target))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrNotFound
		}
		s.log.Error("unable to update application status", zap.Error(err), zap.Int("id", id))
		return nil, err
	}
	s.dispatcher.Dispatch(ctx, &event.ApplicationStatusChanged{
		ApplicationID: id,
		From:          string(current),
		To:            string(target),
	})
	return &StatusUpdate{
		ID:        id,
		Status:    target,
		UpdatedAt: ts,
	}, nil
}

// Update applies an admin partial update keyed by public field names.
// Unknown fields are dropped, workflow fields are refused.
func (s *Service) Update(
	ctx context.Context,
	id int,
	fields map[string]interface{},
) error {
	columns := tables.ApplicationColumns()
	values := make(map[string]interface{})
	updated := make([]string, 0, len(fields))
	for k, v := range fields {
		if _, ok := protectedFields[k]; ok {
			return ErrProtectedField
		}
		col, ok := columns[k]
		if !ok {
			continue
		}
		values[col] = v
		updated = append(updated, k)
	}
	if len(values) == 0 {
		return nil
	}
	err := s.store.UpdateApplication(ctx, id, values)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return ErrNotFound
		}
		s.log.Error("unable to update application", zap.Error(err), zap.Int("id", id))
		return err
	}
	s.dispatcher.Dispatch(ctx, &event.ApplicationUpdated{
		ApplicationID: id,
		Fields:        updated,
	})
	return nil
}

func rowFromSubmission(payload *Submission) *tables.ApplicationTable {
	return &tables.ApplicationTable{
		FirstName:           payload.FirstName,
		MiddleName:          payload.MiddleName,
		LastName:            payload.LastName,
		Email:               payload.Email,
		DayTimePhone:        payload.DayTimePhone,
		DateOfBirth:         payload.DateOfBirth,
		SSN:                 payload.SSN,
		DriverLicenseNumber: payload.DriverLicenseNumber,
		Address:             payload.Address,
		City:                payload.City,
		State:               payload.State,
		Zipcode:             payload.Zipcode,
		ResidencyType:       payload.ResidencyType,
		YearsOfResidence:    payload.YearsOfResidence,
		SignatureData:       payload.SignatureData,

		EmployerStatus:    payload.EmployerStatus,
		EmployerName:      payload.EmployerName,
		EmployerAddress:   payload.EmployerAddress,
		EmployerCity:      payload.EmployerCity,
		EmployerState:     payload.EmployerState,
		EmployerZipcode:   payload.EmployerZipcode,
		EmployerPhone:     payload.EmployerPhone,
		Occupation:        payload.Occupation,
		TimeOnJob:         payload.TimeOnJob,
		GrossAnnualIncome: payload.GrossAnnualIncome,
		OtherIncome:       payload.OtherIncome,

		BusinessName:          payload.BusinessName,
		BusinessDBANumber:     payload.BusinessDBANumber,
		BusinessEntity:        payload.BusinessEntity,
		TaxID:                 payload.TaxID,
		BusinessIncorporation: payload.BusinessIncorporation,
		BusinessAddress:       payload.BusinessAddress,
		BusinessCity:          payload.BusinessCity,
		BusinessState:         payload.BusinessState,
		BusinessZipcode:       payload.BusinessZipcode,
		BusinessPhone:         payload.BusinessPhone,
		BusinessEmail:         payload.BusinessEmail,
		YearsInBusiness:       payload.YearsInBusiness,

		BankName:           payload.BankName,
		BankAccountNumber:  payload.BankAccountNumber,
		BankRoutingNumber:  payload.BankRoutingNumber,
		BankPhone:          payload.BankPhone,
		BankBranchLocation: payload.BankBranchLocation,
		BankState:          payload.BankState,

		HasCoSigner:                payload.HasCoSigner,
		GuarantorFirstName:         payload.GuarantorFirstName,
		GuarantorMiddleName:        payload.GuarantorMiddleName,
		GuarantorLastName:          payload.GuarantorLastName,
		GuarantorPhone:             payload.GuarantorPhone,
		GuarantorEmail:             payload.GuarantorEmail,
		GuarantorSSN:               payload.GuarantorSSN,
		GuarantorDateOfBirth:       payload.GuarantorDateOfBirth,
		GuarantorAddress:           payload.GuarantorAddress,
		GuarantorCity:              payload.GuarantorCity,
		GuarantorState:             payload.GuarantorState,
		GuarantorZipcode:           payload.GuarantorZipcode,
		GuarantorResidencyType:     payload.GuarantorResidencyType,
		GuarantorDriverLicense:     payload.GuarantorDriverLicense,
		GuarantorOccupation:        payload.GuarantorOccupation,
		GuarantorGrossAnnualIncome: payload.GuarantorGrossAnnualIncome,
	}
}
