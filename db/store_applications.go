package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/crediflow/crediflow/db/tables"
	"go.uber.org/zap"
)

// ApplicationCounts is the reviewer dashboard overview.
type ApplicationCounts struct {
	Total         int `json:"total"`
	PendingReview int `json:"pendingReview"`
	ApprovedToday int `json:"approvedToday"`
	Rejected      int `json:"rejected"`
}

// Applications lists applications matching the query and returns the
// page window plus the total match count.
func (d *DataStore) Applications(
	ctx context.Context,
	query Query,
) ([]*tables.ApplicationTable, int, error) {
	columns := tables.ApplicationColumns()
	where := query.predicate(columns)

	var c int
	count := sq.Select("COUNT(*)").From("applications")
	if len(where) > 0 {
		count = count.Where(where)
	}
	err := count.RunWith(d.db).ScanContext(ctx, &c)
	if err != nil {
		return nil, 0, err
	}
	if c < int(query.Skip()) {
		return []*tables.ApplicationTable{}, c, nil
	}

	var entities []*tables.ApplicationTable
	q := sq.
		Select(query.projection(columns)...).
		From("applications")
	if len(where) > 0 {
		q = q.Where(where)
	}
	q = q.OrderBy(query.orderBy(columns, "submitted_date")).
		Offset(query.Skip()).
		Limit(query.Take())
	err = d.selectStatement(ctx, &entities, q, nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []*tables.ApplicationTable{}, c, nil
		}
		return nil, 0, err
	}

	return entities, c, nil
}

func (d *DataStore) ApplicationByID(ctx context.Context, id int) (*tables.ApplicationTable, error) {
	var entity tables.ApplicationTable
	q := sq.
		Select("*").
		From("applications").
		Where(sq.Eq{"id": id})
	err := d.getStatement(ctx, &entity, q, nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

func (d *DataStore) ApplicationByReferenceID(
	ctx context.Context,
	referenceID uuid.UUID,
) (*tables.ApplicationTable, error) {
	var entity tables.ApplicationTable
	q := sq.
		Select("*").
		From("applications").
		Where(sq.Eq{"reference_id": referenceID})
	err := d.getStatement(ctx, &entity, q, nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// InsertApplication stores a fresh submission and returns its id.
func (d *DataStore) InsertApplication(
	ctx context.Context,
	app *tables.ApplicationTable,
) (int, error) {
	insert := sq.Insert("applications").SetMap(applicationValues(app))
	insert = insert.Suffix("RETURNING id")
	var id int
	err := d.returningInsertStatement(ctx, &id, insert, nil)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return 0, ErrAlreadyExists
		}
		d.log.Error("could not insert application", zap.Error(err))
		return 0, err
	}
	return id, nil
}

// SetApplicationStatus persists status and updated_at only, the rest of
// the row stays untouched. A zero row count maps to ErrNotFound.
func (d *DataStore) SetApplicationStatus(
	ctx context.Context,
	id int,
	status string,
) (time.Time, error) {
	ts := time.Now().UTC()
	update := sq.
		Update("applications").
		Set("status", status).
		Set("updated_at", ts).
		Where(sq.Eq{"id": id})
	rs, err := d.updateStatement(ctx, update, nil)
	if err != nil {
		return time.Time{}, err
	}
	affected, err := rs.RowsAffected()
	if err != nil {
		return time.Time{}, err
	}
	if affected == 0 {
		return time.Time{}, ErrNotFound
	}
	return ts, nil
}

// UpdateApplication applies a partial column update. The caller has
// already resolved public field names into columns.
func (d *DataStore) UpdateApplication(
	ctx context.Context,
	id int,
	values map[string]interface{},
) error {
	if len(values) == 0 {
		return nil
	}
	update := sq.
		Update("applications").
		SetMap(values).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id})
	rs, err := d.updateStatement(ctx, update, nil)
	if err != nil {
		return err
	}
	affected, err := rs.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ApplicationOverview counts the dashboard buckets. Approved today is
// measured against UTC midnight.
func (d *DataStore) ApplicationOverview(ctx context.Context) (*ApplicationCounts, error) {
	counts := ApplicationCounts{}
	now := time.Now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	queries := []struct {
		dest *int
		pred interface{}
	}{
		{&counts.Total, nil},
		{&counts.PendingReview, sq.Eq{"status": []string{"PENDING", "IN_REVIEW"}}},
		{&counts.ApprovedToday, sq.And{
			sq.Eq{"status": "APPROVED"},
			sq.GtOrEq{"updated_at": startOfDay},
		}},
		{&counts.Rejected, sq.Eq{"status": "REJECTED"}},
	}
	for _, q := range queries {
		count := sq.Select("COUNT(*)").From("applications")
		if q.pred != nil {
			count = count.Where(q.pred)
		}
		if err := count.RunWith(d.db).ScanContext(ctx, q.dest); err != nil {
			return nil, err
		}
	}
	return &counts, nil
}

func applicationValues(app *tables.ApplicationTable) map[string]interface{} {
	return map[string]interface{}{
		"reference_id":   app.ReferenceID,
		"type":           app.Type,
		"status":         app.Status,
		"submitted_date": app.SubmittedDate,

		"first_name":            app.FirstName,
		"middle_name":           app.MiddleName,
		"last_name":             app.LastName,
		"email":                 app.Email,
		"day_time_phone":        app.DayTimePhone,
		"date_of_birth":         app.DateOfBirth,
		"ssn":                   app.SSN,
		"driver_license_number": app.DriverLicenseNumber,
		"address":               app.Address,
		"city":                  app.City,
		"state":                 app.State,
		"zipcode":               app.Zipcode,
		"residency_type":        app.ResidencyType,
		"years_of_residence":    app.YearsOfResidence,
		"signature_data":        app.SignatureData,

		"employer_status":     app.EmployerStatus,
		"employer_name":       app.EmployerName,
		"employer_address":    app.EmployerAddress,
		"employer_city":       app.EmployerCity,
		"employer_state":      app.EmployerState,
		"employer_zipcode":    app.EmployerZipcode,
		"employer_phone":      app.EmployerPhone,
		"occupation":          app.Occupation,
		"time_on_job":         app.TimeOnJob,
		"gross_annual_income": app.GrossAnnualIncome,
		"other_income":        app.OtherIncome,

		"business_name":          app.BusinessName,
		"business_dba_number":    app.BusinessDBANumber,
		"business_entity":        app.BusinessEntity,
		"tax_id":                 app.TaxID,
		"business_incorporation": app.BusinessIncorporation,
		"business_address":       app.BusinessAddress,
		"business_city":          app.BusinessCity,
		"business_state":         app.BusinessState,
		"business_zipcode":       app.BusinessZipcode,
		"business_phone":         app.BusinessPhone,
		"business_email":         app.BusinessEmail,
		"years_in_business":      app.YearsInBusiness,

		"bank_name":            app.BankName,
		"bank_account_number":  app.BankAccountNumber,
		"bank_routing_number":  app.BankRoutingNumber,
		"bank_phone":           app.BankPhone,
		"bank_branch_location": app.BankBranchLocation,
		"bank_state":           app.BankState,

		"has_co_signer":                 app.HasCoSigner,
		"guarantor_first_name":          app.GuarantorFirstName,
		"guarantor_middle_name":         app.GuarantorMiddleName,
		"guarantor_last_name":           app.GuarantorLastName,
		"guarantor_phone":               app.GuarantorPhone,
		"guarantor_email":               app.GuarantorEmail,
		"guarantor_ssn":                 app.GuarantorSSN,
		"guarantor_date_of_birth":       app.GuarantorDateOfBirth,
		"guarantor_address":             app.GuarantorAddress,
		"guarantor_city":                app.GuarantorCity,
		"guarantor_state":               app.GuarantorState,
		"guarantor_zipcode":             app.GuarantorZipcode,
		"guarantor_residency_type":      app.GuarantorResidencyType,
		"guarantor_driver_license":      app.GuarantorDriverLicense,
		"guarantor_occupation":          app.GuarantorOccupation,
		"guarantor_gross_annual_income": app.GuarantorGrossAnnualIncome,
	}
}
