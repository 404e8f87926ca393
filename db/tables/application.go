package tables

import (
	"time"

	"github.com/google/uuid"
)

// ApplicationTable represents the applications table, one row per
// submitted credit application. PERSONAL submissions leave the business
// block empty, BUSINESS submissions leave the employment block empty.
type ApplicationTable struct {
	ID            int        `db:"id"             json:"id"`
	ReferenceID   uuid.UUID  `db:"reference_id"   json:"referenceId"`
	Type          string     `db:"type"           json:"type"`
	Status        string     `db:"status"         json:"status"`
	SubmittedDate time.Time  `db:"submitted_date" json:"submittedDate"`
	UpdatedAt     *time.Time `db:"updated_at"     json:"updatedAt,omitempty"`

	FirstName           string  `db:"first_name"            json:"firstName"`
	MiddleName          *string `db:"middle_name"           json:"middleName,omitempty"`
	LastName            string  `db:"last_name"             json:"lastName"`
	Email               string  `db:"email"                 json:"email"`
	DayTimePhone        *string `db:"day_time_phone"        json:"dayTimePhone,omitempty"`
	DateOfBirth         *string `db:"date_of_birth"         json:"dateOfBirth,omitempty"`
	SSN                 *string `db:"ssn"                   json:"ssn,omitempty"`
	DriverLicenseNumber *string `db:"driver_license_number" json:"driverLicenseNumber,omitempty"`
	Address             *string `db:"address"               json:"address,omitempty"`
	City                *string `db:"city"                  json:"city,omitempty"`
	State               *string `db:"state"                 json:"state,omitempty"`
	Zipcode             *string `db:"zipcode"               json:"zipcode,omitempty"`
	ResidencyType       *string `db:"residency_type"        json:"residencyType,omitempty"`
	YearsOfResidence    *string `db:"years_of_residence"    json:"yearsOfResidence,omitempty"`
	SignatureData       *string `db:"signature_data"        json:"signatureData,omitempty"`

	EmployerStatus    *string  `db:"employer_status"     json:"employerStatus,omitempty"`
	EmployerName      *string  `db:"employer_name"       json:"employerName,omitempty"`
	EmployerAddress   *string  `db:"employer_address"    json:"employerAddress,omitempty"`
	EmployerCity      *string  `db:"employer_city"       json:"employerCity,omitempty"`
	EmployerState     *string  `db:"employer_state"      json:"employerState,omitempty"`
	EmployerZipcode   *string  `db:"employer_zipcode"    json:"employerZipcode,omitempty"`
	EmployerPhone     *string  `db:"employer_phone"      json:"employerPhone,omitempty"`
	Occupation        *string  `db:"occupation"          json:"occupation,omitempty"`
	TimeOnJob         *string  `db:"time_on_job"         json:"timeOnJob,omitempty"`
	GrossAnnualIncome *float64 `db:"gross_annual_income" json:"grossAnnualIncome,omitempty"`
	OtherIncome       *float64 `db:"other_income"        json:"otherIncome,omitempty"`

	BusinessName          *string `db:"business_name"          json:"businessName,omitempty"`
	BusinessDBANumber     *string `db:"business_dba_number"    json:"businessDbaNumber,omitempty"`
	BusinessEntity        *string `db:"business_entity"        json:"businessEntity,omitempty"`
	TaxID                 *string `db:"tax_id"                 json:"taxId,omitempty"`
	BusinessIncorporation *string `db:"business_incorporation" json:"businessIncorporation,omitempty"`
	BusinessAddress       *string `db:"business_address"       json:"businessAddress,omitempty"`
	BusinessCity          *string `db:"business_city"          json:"businessCity,omitempty"`
	BusinessState         *string `db:"business_state"         json:"businessState,omitempty"`
	BusinessZipcode       *string `db:"business_zipcode"       json:"businessZipcode,omitempty"`
	BusinessPhone         *string `db:"business_phone"         json:"businessPhone,omitempty"`
	BusinessEmail         *string `db:"business_email"         json:"businessEmail,omitempty"`
	YearsInBusiness       *string `db:"years_in_business"      json:"yearsInBusiness,omitempty"`

	BankName           *string `db:"bank_name"            json:"bankName,omitempty"`
	BankAccountNumber  *string `db:"bank_account_number"  json:"bankAccountNumber,omitempty"`
	BankRoutingNumber  *string `db:"bank_routing_number"  json:"bankRoutingNumber,omitempty"`
	BankPhone          *string `db:"bank_phone"           json:"bankPhone,omitempty"`
	BankBranchLocation *string `db:"bank_branch_location" json:"bankBranchLocation,omitempty"`
	BankState          *string `db:"bank_state"           json:"bankState,omitempty"`

	HasCoSigner                bool     `db:"has_co_signer"                 json:"hasCoSigner"`
	GuarantorFirstName         *string  `db:"guarantor_first_name"          json:"guarantorFirstName,omitempty"`
	GuarantorMiddleName        *string  `db:"guarantor_middle_name"         json:"guarantorMiddleName,omitempty"`
	GuarantorLastName          *string  `db:"guarantor_last_name"           json:"guarantorLastName,omitempty"`
	GuarantorPhone             *string  `db:"guarantor_phone"               json:"guarantorPhone,omitempty"`
	GuarantorEmail             *string  `db:"guarantor_email"               json:"guarantorEmail,omitempty"`
	GuarantorSSN               *string  `db:"guarantor_ssn"                 json:"guarantorSsn,omitempty"`
	GuarantorDateOfBirth       *string  `db:"guarantor_date_of_birth"       json:"guarantorDateOfBirth,omitempty"`
	GuarantorAddress           *string  `db:"guarantor_address"             json:"guarantorAddress,omitempty"`
	GuarantorCity              *string  `db:"guarantor_city"                json:"guarantorCity,omitempty"`
	GuarantorState             *string  `db:"guarantor_state"               json:"guarantorState,omitempty"`
	GuarantorZipcode           *string  `db:"guarantor_zipcode"             json:"guarantorZipcode,omitempty"`
	GuarantorResidencyType     *string  `db:"guarantor_residency_type"      json:"guarantorResidencyType,omitempty"`
	GuarantorDriverLicense     *string  `db:"guarantor_driver_license"      json:"guarantorDriverLicense,omitempty"`
	GuarantorOccupation        *string  `db:"guarantor_occupation"          json:"guarantorOccupation,omitempty"`
	GuarantorGrossAnnualIncome *float64 `db:"guarantor_gross_annual_income" json:"guarantorGrossAnnualIncome,omitempty"`
}

// ApplicationColumns maps the public field names of an application to
// their columns. Filter keys, sort keys and field projections coming in
// from query parameters are resolved against this map before any SQL is
// built, unknown names are silently dropped.
func ApplicationColumns() map[string]string {
	return map[string]string{
		"id":            "id",
		"referenceId":   "reference_id",
		"type":          "type",
		"status":        "status",
		"submittedDate": "submitted_date",
		"updatedAt":     "updated_at",

		"firstName":           "first_name",
		"middleName":          "middle_name",
		"lastName":            "last_name",
		"email":               "email",
		"dayTimePhone":        "day_time_phone",
		"dateOfBirth":         "date_of_birth",
		"ssn":                 "ssn",
		"driverLicenseNumber": "driver_license_number",
		"address":             "address",
		"city":                "city",
		"state":               "state",
		"zipcode":             "zipcode",
		"residencyType":       "residency_type",
		"yearsOfResidence":    "years_of_residence",
		"signatureData":       "signature_data",

		"employerStatus":    "employer_status",
		"employerName":      "employer_name",
		"employerAddress":   "employer_address",
		"employerCity":      "employer_city",
		"employerState":     "employer_state",
		"employerZipcode":   "employer_zipcode",
		"employerPhone":     "employer_phone",
		"occupation":        "occupation",
		"timeOnJob":         "time_on_job",
		"grossAnnualIncome": "gross_annual_income",
		"otherIncome":       "other_income",

		"businessName":          "business_name",
		"businessDbaNumber":     "business_dba_number",
		"businessEntity":        "business_entity",
		"taxId":                 "tax_id",
		"businessIncorporation": "business_incorporation",
		"businessAddress":       "business_address",
		"businessCity":          "business_city",
		"businessState":         "business_state",
		"businessZipcode":       "business_zipcode",
		"businessPhone":         "business_phone",
		"businessEmail":         "business_email",
		"yearsInBusiness":       "years_in_business",

		"bankName":           "bank_name",
		"bankAccountNumber":  "bank_account_number",
		"bankRoutingNumber":  "bank_routing_number",
		"bankPhone":          "bank_phone",
		"bankBranchLocation": "bank_branch_location",
		"bankState":          "bank_state",

		"hasCoSigner":                "has_co_signer",
		"guarantorFirstName":         "guarantor_first_name",
		"guarantorMiddleName":        "guarantor_middle_name",
		"guarantorLastName":          "guarantor_last_name",
		"guarantorPhone":             "guarantor_phone",
		"guarantorEmail":             "guarantor_email",
		"guarantorSsn":               "guarantor_ssn",
		"guarantorDateOfBirth":       "guarantor_date_of_birth",
		"guarantorAddress":           "guarantor_address",
		"guarantorCity":              "guarantor_city",
		"guarantorState":             "guarantor_state",
		"guarantorZipcode":           "guarantor_zipcode",
		"guarantorResidencyType":     "guarantor_residency_type",
		"guarantorDriverLicense":     "guarantor_driver_license",
		"guarantorOccupation":        "guarantor_occupation",
		"guarantorGrossAnnualIncome": "guarantor_gross_annual_income",
	}
}
