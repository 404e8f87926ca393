package application

import (
	"time"

	"github.com/crediflow/crediflow/db/tables"
	"github.com/google/uuid"
)

// Type is the application account type.
type Type string

const (
	// TypePersonal is an individual credit application
	TypePersonal Type = "PERSONAL"
	// TypeBusiness is a business credit application
	TypeBusiness Type = "BUSINESS"
)

// Submission is the intake payload shared by both application types.
// The server assigns type, status, reference id and timestamps.
type Submission struct {
	FirstName           string  `json:"firstName"`
	MiddleName          *string `json:"middleName"`
	LastName            string  `json:"lastName"`
	Email               string  `json:"email"`
	DayTimePhone        *string `json:"dayTimePhone"`
	DateOfBirth         *string `json:"dateOfBirth"`
	SSN                 *string `json:"ssn"`
	DriverLicenseNumber *string `json:"driverLicenseNumber"`
	Address             *string `json:"address"`
	City                *string `json:"city"`
	State               *string `json:"state"`
	Zipcode             *string `json:"zipcode"`
	ResidencyType       *string `json:"residencyType"`
	YearsOfResidence    *string `json:"yearsOfResidence"`
	SignatureData       *string `json:"signatureData"`

	EmployerStatus    *string  `json:"employerStatus"`
	EmployerName      *string  `json:"employerName"`
	EmployerAddress   *string  `json:"employerAddress"`
	EmployerCity      *string  `json:"employerCity"`
	EmployerState     *string  `json:"employerState"`
	EmployerZipcode   *string  `json:"employerZipcode"`
	EmployerPhone     *string  `json:"employerPhone"`
	Occupation        *string  `json:"occupation"`
	TimeOnJob         *string  `json:"timeOnJob"`
	GrossAnnualIncome *float64 `json:"grossAnnualIncome"`
	OtherIncome       *float64 `json:"otherIncome"`

	BusinessName          *string `json:"businessName"`
	BusinessDBANumber     *string `json:"businessDbaNumber"`
	BusinessEntity        *string `json:"businessEntity"`
	TaxID                 *string `json:"taxId"`
	BusinessIncorporation *string `json:"businessIncorporation"`
	BusinessAddress       *string `json:"businessAddress"`
	BusinessCity          *string `json:"businessCity"`
	BusinessState         *string `json:"businessState"`
	BusinessZipcode       *string `json:"businessZipcode"`
	BusinessPhone         *string `json:"businessPhone"`
	BusinessEmail         *string `json:"businessEmail"`
	YearsInBusiness       *string `json:"yearsInBusiness"`

	BankName           *string `json:"bankName"`
	BankAccountNumber  *string `json:"bankAccountNumber"`
	BankRoutingNumber  *string `json:"bankRoutingNumber"`
	BankPhone          *string `json:"bankPhone"`
	BankBranchLocation *string `json:"bankBranchLocation"`
	BankState          *string `json:"bankState"`

	HasCoSigner                bool     `json:"hasCoSigner"`
	GuarantorFirstName         *string  `json:"guarantorFirstName"`
	GuarantorMiddleName        *string  `json:"guarantorMiddleName"`
	GuarantorLastName          *string  `json:"guarantorLastName"`
	GuarantorPhone             *string  `json:"guarantorPhone"`
	GuarantorEmail             *string  `json:"guarantorEmail"`
	GuarantorSSN               *string  `json:"guarantorSsn"`
	GuarantorDateOfBirth       *string  `json:"guarantorDateOfBirth"`
	GuarantorAddress           *string  `json:"guarantorAddress"`
	GuarantorCity              *string  `json:"guarantorCity"`
	GuarantorState             *string  `json:"guarantorState"`
	GuarantorZipcode           *string  `json:"guarantorZipcode"`
	GuarantorResidencyType     *string  `json:"guarantorResidencyType"`
	GuarantorDriverLicense     *string  `json:"guarantorDriverLicense"`
	GuarantorOccupation        *string  `json:"guarantorOccupation"`
	GuarantorGrossAnnualIncome *float64 `json:"guarantorGrossAnnualIncome"`
}

// Address groups the usual street address quadruple.
type Address struct {
	Address *string `json:"address"`
	City    *string `json:"city"`
	State   *string `json:"state"`
	Zipcode *string `json:"zipcode"`
}

// Residency describes how long and how the applicant lives at the
// given address.
type Residency struct {
	Type  *string `json:"type"`
	Years *string `json:"years"`
}

// PersonalInfo is the applicant block of a PERSONAL application.
type PersonalInfo struct {
	FirstName           string    `json:"firstName"`
	MiddleName          *string   `json:"middleName"`
	LastName            string    `json:"lastName"`
	Email               string    `json:"email"`
	Phone               *string   `json:"phone"`
	DateOfBirth         *string   `json:"dateOfBirth"`
	SSN                 *string   `json:"ssn"`
	DriverLicenseNumber *string   `json:"driverLicenseNumber"`
	Signature           *string   `json:"signature"`
	Address             Address   `json:"address"`
	Residency           Residency `json:"residency"`
}

// EmploymentInfo is the employment block of a PERSONAL application.
type EmploymentInfo struct {
	Status            *string  `json:"status"`
	EmployerName      *string  `json:"employerName"`
	EmployerAddress   *string  `json:"employerAddress"`
	EmployerCity      *string  `json:"employerCity"`
	EmployerState     *string  `json:"employerState"`
	EmployerZipcode   *string  `json:"employerZipcode"`
	EmployerPhone     *string  `json:"employerPhone"`
	Occupation        *string  `json:"occupation"`
	TimeOnJob         *string  `json:"timeOnJob"`
	GrossAnnualIncome *float64 `json:"grossAnnualIncome"`
	OtherIncome       *float64 `json:"otherIncome"`
}

// OwnerInfo is the owner block of a BUSINESS application.
type OwnerInfo struct {
	FirstName           string  `json:"firstName"`
	MiddleName          *string `json:"middleName"`
	LastName            string  `json:"lastName"`
	Email               string  `json:"email"`
	Phone               *string `json:"phone"`
	DateOfBirth         *string `json:"dateOfBirth"`
	SSN                 *string `json:"ssn"`
	DriverLicenseNumber *string `json:"driverLicenseNumber"`
}

// Contact is a phone and email pair.
type Contact struct {
	Phone *string `json:"phone"`
	Email *string `json:"email"`
}

// BusinessInfo is the company block of a BUSINESS application.
type BusinessInfo struct {
	BusinessName    *string `json:"businessName"`
	DBANumber       *string `json:"dbaNumber"`
	EntityType      *string `json:"entityType"`
	TaxID           *string `json:"taxId"`
	Incorporation   *string `json:"incorporation"`
	YearsInBusiness *string `json:"yearsInBusiness"`
	Address         Address `json:"address"`
	Contact         Contact `json:"contact"`
}

// BankInfo is the banking block of a BUSINESS application.
type BankInfo struct {
	BankName       *string `json:"bankName"`
	AccountNumber  *string `json:"accountNumber"`
	RoutingNumber  *string `json:"routingNumber"`
	Phone          *string `json:"phone"`
	BranchLocation *string `json:"branchLocation"`
	State          *string `json:"state"`
}

// Guarantor is the co-signer block, present only when the submission
// carries one.
type Guarantor struct {
	FirstName   *string `json:"firstName"`
	MiddleName  *string `json:"middleName"`
	LastName    *string `json:"lastName"`
	Phone       *string `json:"phone"`
	SSN         *string `json:"ssn"`
	DateOfBirth *string `json:"dateOfBirth"`
	Address     Address `json:"address"`
	Residency   *string `json:"residency"`
}

// PersonalApplication is the shaped reviewer view of a PERSONAL
// application.
type PersonalApplication struct {
	ID             int            `json:"id"`
	ReferenceID    uuid.UUID      `json:"referenceId"`
	Type           string         `json:"type"`
	Status         string         `json:"status"`
	SubmittedDate  time.Time      `json:"submittedDate"`
	UpdatedAt      *time.Time     `json:"updatedAt,omitempty"`
	PersonalInfo   PersonalInfo   `json:"personalInfo"`
	EmploymentInfo EmploymentInfo `json:"employmentInfo"`
}

// BusinessApplication is the shaped reviewer view of a BUSINESS
// application.
type BusinessApplication struct {
	ID            int          `json:"id"`
	ReferenceID   uuid.UUID    `json:"referenceId"`
	Type          string       `json:"type"`
	Status        string       `json:"status"`
	SubmittedDate time.Time    `json:"submittedDate"`
	UpdatedAt     *time.Time   `json:"updatedAt,omitempty"`
	OwnerInfo     OwnerInfo    `json:"ownerInfo"`
	BusinessInfo  BusinessInfo `json:"businessInfo"`
	BankInfo      BankInfo     `json:"bankInfo"`
	Guarantor     *Guarantor   `json:"guarantor"`
}

// StatusUpdate is returned after a successful status transition.
type StatusUpdate struct {
	ID        int       `json:"id"`
	Status    Status    `json:"status"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Shape turns a stored row into the reviewer view matching its type.
func Shape(app *tables.ApplicationTable) interface{} {
	if Type(app.Type) == TypeBusiness {
		return shapeBusiness(app)
	}
	return shapePersonal(app)
}

func shapePersonal(app *tables.ApplicationTable) *PersonalApplication {
	return &PersonalApplication{
		ID:            app.ID,
		ReferenceID:   app.ReferenceID,
		Type:          app.Type,
		Status:        app.Status,
		SubmittedDate: app.SubmittedDate,
		UpdatedAt:     app.UpdatedAt,
		PersonalInfo: PersonalInfo{
			FirstName:           app.FirstName,
			MiddleName:          app.MiddleName,
			LastName:            app.LastName,
			Email:               app.Email,
			Phone:               app.DayTimePhone,
			DateOfBirth:         app.DateOfBirth,
			SSN:                 app.SSN,
			DriverLicenseNumber: app.DriverLicenseNumber,
			Signature:           app.SignatureData,
			Address: Address{
				Address: app.Address,
				City:    app.City,
				State:   app.State,
				Zipcode: app.Zipcode,
			},
			Residency: Residency{
				Type:  app.ResidencyType,
				Years: app.YearsOfResidence,
			},
		},
		EmploymentInfo: EmploymentInfo{
			Status:            app.EmployerStatus,
			EmployerName:      app.EmployerName,
			EmployerAddress:   app.EmployerAddress,
			EmployerCity:      app.EmployerCity,
			EmployerState:     app.EmployerState,
			EmployerZipcode:   app.EmployerZipcode,
			EmployerPhone:     app.EmployerPhone,
			Occupation:        app.Occupation,
			TimeOnJob:         app.TimeOnJob,
			GrossAnnualIncome: app.GrossAnnualIncome,
			OtherIncome:       app.OtherIncome,
		},
	}
}

func shapeBusiness(app *tables.ApplicationTable) *BusinessApplication {
	shaped := &BusinessApplication{
		ID:            app.ID,
		ReferenceID:   app.ReferenceID,
		Type:          app.Type,
		Status:        app.Status,
		SubmittedDate: app.SubmittedDate,
		UpdatedAt:     app.UpdatedAt,
		OwnerInfo: OwnerInfo{
			FirstName:           app.FirstName,
			MiddleName:          app.MiddleName,
			LastName:            app.LastName,
			Email:               app.Email,
			Phone:               app.DayTimePhone,
			DateOfBirth:         app.DateOfBirth,
			SSN:                 app.SSN,
			DriverLicenseNumber: app.DriverLicenseNumber,
		},
		BusinessInfo: BusinessInfo{
			BusinessName:    app.BusinessName,
			DBANumber:       app.BusinessDBANumber,
			EntityType:      app.BusinessEntity,
			TaxID:           app.TaxID,
			Incorporation:   app.BusinessIncorporation,
			YearsInBusiness: app.YearsInBusiness,
			Address: Address{
				Address: app.BusinessAddress,
				City:    app.BusinessCity,
				State:   app.BusinessState,
				Zipcode: app.BusinessZipcode,
			},
			Contact: Contact{
				Phone: app.BusinessPhone,
				Email: app.BusinessEmail,
			},
		},
		BankInfo: BankInfo{
			BankName:       app.BankName,
			AccountNumber:  app.BankAccountNumber,
			RoutingNumber:  app.BankRoutingNumber,
			Phone:          app.BankPhone,
			BranchLocation: app.BankBranchLocation,
			State:          app.BankState,
		},
	}
	if app.HasCoSigner {
		shaped.Guarantor = &Guarantor{
			FirstName:   app.GuarantorFirstName,
			MiddleName:  app.GuarantorMiddleName,
			LastName:    app.GuarantorLastName,
			Phone:       app.GuarantorPhone,
			SSN:         app.GuarantorSSN,
			DateOfBirth: app.GuarantorDateOfBirth,
			Address: Address{
				Address: app.GuarantorAddress,
				City:    app.GuarantorCity,
				State:   app.GuarantorState,
				Zipcode: app.GuarantorZipcode,
			},
			Residency: app.GuarantorResidencyType,
		}
	}
	return shaped
}
