// Package pdf renders the single-page reviewer summary of a stored
// application.
package pdf

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/crediflow/crediflow/application"
	"github.com/crediflow/crediflow/db/tables"
	"github.com/go-pdf/fpdf"
)

const (
	pageMargin  = 30.0
	leftColumn  = 40.0
	headerH     = 22.0
	fieldH      = 24.0
	labelSize   = 7.0
	sectionSize = 10.0
)

// Renderer draws application summaries. ServiceName ends up in the
// page header.
type Renderer struct {
	ServiceName string
}

// NewRenderer creates a renderer for the given service display name.
func NewRenderer(serviceName string) *Renderer {
	return &Renderer{ServiceName: serviceName}
}

// Render produces the one-page A4 summary for the application.
func (r *Renderer) Render(app *tables.ApplicationTable) ([]byte, error) {
	doc := newSummary(r.ServiceName, app)

	if application.Type(app.Type) == application.TypeBusiness {
		doc.businessSections(app)
	} else {
		doc.personalSections(app)
	}
	doc.coApplicantSection(app)
	doc.signatureSection(app.SignatureData)

	var buf bytes.Buffer
	if err := doc.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("unable to render application %d: %w", app.ID, err)
	}
	return buf.Bytes(), nil
}

type summary struct {
	pdf         *fpdf.Fpdf
	pageWidth   float64
	rightColumn float64
	columnWidth float64
	y           float64
}

func newSummary(serviceName string, app *tables.ApplicationTable) *summary {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pageWidth, _ := pdf.GetPageSize()
	s := &summary{
		pdf:         pdf,
		pageWidth:   pageWidth,
		rightColumn: pageWidth/2 + 5,
		columnWidth: (pageWidth-80)/2 - 5,
	}

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(19, 20, 20)
	pdf.Text(35, 45, serviceName)

	pdf.SetFont("Helvetica", "", 8)
	submitted := app.SubmittedDate.Format(time.RFC822)
	pdf.Text(pageWidth-pageMargin-pdf.GetStringWidth(submitted), 38, submitted)

	s.y = 90
	return s
}

func (s *summary) sectionHeader(title string) {
	s.pdf.SetFillColor(248, 250, 252)
	s.pdf.SetDrawColor(226, 232, 240)
	s.pdf.Rect(leftColumn, s.y, s.pageWidth-80, headerH, "FD")

	s.pdf.SetFont("Helvetica", "B", sectionSize)
	s.pdf.SetTextColor(19, 20, 20)
	s.pdf.Text(leftColumn+8, s.y+15, title)
	s.y += headerH + 6
}

func (s *summary) field(label string, value string, x float64) {
	s.pdf.SetFont("Helvetica", "B", labelSize)
	s.pdf.SetTextColor(19, 20, 20)
	s.pdf.Text(x, s.y+7, label+":")

	if value == "" {
		value = "N/A"
	}
	s.pdf.SetFont("Helvetica", "", labelSize)
	s.pdf.SetTextColor(30, 41, 59)
	s.pdf.Text(x, s.y+16, value)
}

func (s *summary) fieldRow(label1 string, value1 string, label2 string, value2 string) {
	s.field(label1, value1, leftColumn)
	if label2 != "" {
		s.field(label2, value2, s.rightColumn)
	}
	s.y += fieldH
}

func (s *summary) spacing() {
	s.y += 8
}

func (s *summary) personalSections(app *tables.ApplicationTable) {
	s.sectionHeader("Signer Details")
	s.fieldRow("First Name", app.FirstName, "Middle Name", text(app.MiddleName))
	s.fieldRow("Last Name", app.LastName, "Email", app.Email)
	s.fieldRow("Phone", text(app.DayTimePhone), "Date of Birth", text(app.DateOfBirth))
	s.fieldRow("SSN", MaskSSN(app.SSN), "Driver License", text(app.DriverLicenseNumber))
	s.fieldRow("Address", text(app.Address), "City", text(app.City))
	s.fieldRow("State", text(app.State), "Zip Code", text(app.Zipcode))
	s.fieldRow(
		"Residency Type",
		text(app.ResidencyType),
		"Years of Residence",
		text(app.YearsOfResidence),
	)
	s.spacing()

	s.sectionHeader("Employment Details")
	s.fieldRow("Status", text(app.EmployerStatus), "Employer Name", text(app.EmployerName))
	s.fieldRow("Employer Address", text(app.EmployerAddress), "City", text(app.EmployerCity))
	s.fieldRow("State", text(app.EmployerState), "Zip Code", text(app.EmployerZipcode))
	s.fieldRow("Phone", text(app.EmployerPhone), "Occupation", text(app.Occupation))
	s.fieldRow("Time On Job", text(app.TimeOnJob), "", "")
	s.spacing()

	s.sectionHeader("Financial Information")
	s.fieldRow(
		"Gross Annual Income",
		money(app.GrossAnnualIncome),
		"Other Income",
		money(app.OtherIncome),
	)

	if app.BusinessName != nil {
		s.spacing()
		s.sectionHeader("Business Details - Self Employed")
		s.fieldRow("Business Name", text(app.BusinessName), "DBA Number", text(app.BusinessDBANumber))
		s.fieldRow("Entity Type", text(app.BusinessEntity), "Tax ID", text(app.TaxID))
		s.fieldRow("Years in Business", text(app.YearsInBusiness), "", "")
	}
}

func (s *summary) businessSections(app *tables.ApplicationTable) {
	s.sectionHeader("Owner Information")
	s.fieldRow("First Name", app.FirstName, "Middle Name", text(app.MiddleName))
	s.fieldRow("Last Name", app.LastName, "Email", app.Email)
	s.fieldRow("Phone", text(app.DayTimePhone), "Date of Birth", text(app.DateOfBirth))
	s.fieldRow("SSN", MaskSSN(app.SSN), "Driver License", text(app.DriverLicenseNumber))
	s.fieldRow("Address", text(app.Address), "City", text(app.City))
	s.fieldRow("State", text(app.State), "Zip Code", text(app.Zipcode))
	s.fieldRow("Residency Type", text(app.ResidencyType), "", "")
	s.spacing()

	s.sectionHeader("Business Information")
	s.fieldRow("Business Name", text(app.BusinessName), "DBA Number", text(app.BusinessDBANumber))
	s.fieldRow("Entity Type", text(app.BusinessEntity), "Tax ID", text(app.TaxID))
	s.fieldRow(
		"Incorporation",
		text(app.BusinessIncorporation),
		"Years in Business",
		text(app.YearsInBusiness),
	)
	s.fieldRow("Business Phone", text(app.BusinessPhone), "Email", text(app.BusinessEmail))
	s.fieldRow("Business Address", text(app.BusinessAddress), "City", text(app.BusinessCity))
	s.fieldRow("State", text(app.BusinessState), "Zip Code", text(app.BusinessZipcode))
	s.spacing()

	s.sectionHeader("Bank Information")
	s.fieldRow("Bank Name", text(app.BankName), "Account Number", MaskAccount(app.BankAccountNumber))
	s.fieldRow("Routing Number", text(app.BankRoutingNumber), "Phone", text(app.BankPhone))
	s.fieldRow("Branch Location", text(app.BankBranchLocation), "State", text(app.BankState))
	s.spacing()

	s.sectionHeader("Financial Information")
	s.fieldRow(
		"Gross Annual Income",
		money(app.GrossAnnualIncome),
		"Other Income",
		money(app.OtherIncome),
	)
}

func (s *summary) coApplicantSection(app *tables.ApplicationTable) {
	s.spacing()
	s.sectionHeader("Co-Applicant Information")

	name := strings.TrimSpace(strings.Join(nonEmpty(
		text(app.GuarantorFirstName),
		text(app.GuarantorMiddleName),
		text(app.GuarantorLastName),
	), " "))
	hasCoSigner := "No"
	if app.HasCoSigner {
		hasCoSigner = "Yes"
	}
	s.fieldRow("Co-Applicant Name", name, "Has Co-Signer", hasCoSigner)
	s.fieldRow("Phone", text(app.GuarantorPhone), "Email", text(app.GuarantorEmail))
	s.fieldRow("Address", text(app.GuarantorAddress), "City", text(app.GuarantorCity))
	s.fieldRow("State", text(app.GuarantorState), "Zip Code", text(app.GuarantorZipcode))
	s.fieldRow(
		"SSN",
		MaskSSN(app.GuarantorSSN),
		"Driver License",
		text(app.GuarantorDriverLicense),
	)
	s.fieldRow(
		"Date of Birth",
		text(app.GuarantorDateOfBirth),
		"Occupation",
		text(app.GuarantorOccupation),
	)
	s.fieldRow("Gross Annual Income", money(app.GuarantorGrossAnnualIncome), "", "")
}

func (s *summary) signatureSection(signature *string) {
	s.spacing()
	s.sectionHeader("Applicant Declaration & Signature")

	s.pdf.SetFont("Helvetica", "B", labelSize)
	s.pdf.SetTextColor(19, 20, 20)
	s.pdf.Text(leftColumn, s.y+7, "Signature:")

	s.pdf.SetDrawColor(226, 232, 240)
	s.pdf.Rect(leftColumn, s.y+12, 200, 50, "D")

	img, err := decodeSignature(signature)
	if err == nil {
		name := "signature"
		s.pdf.RegisterImageOptionsReader(
			name,
			fpdf.ImageOptions{ImageType: "PNG"},
			bytes.NewReader(img),
		)
		s.pdf.ImageOptions(name, leftColumn+5, s.y+15, 190, 40, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	} else {
		s.pdf.SetFont("Helvetica", "", labelSize)
		s.pdf.SetTextColor(30, 41, 59)
		s.pdf.Text(leftColumn+5, s.y+40, "No signature provided")
	}
	s.y += 70
}

// MaskSSN hides everything but the last four digits.
func MaskSSN(ssn *string) string {
	if ssn == nil || *ssn == "" {
		return "N/A"
	}
	digits := *ssn
	if len(digits) <= 4 {
		return "***-**-" + digits
	}
	return "***-**-" + digits[len(digits)-4:]
}

// MaskAccount hides everything but the last four characters of an
// account number.
func MaskAccount(account *string) string {
	if account == nil || *account == "" {
		return "N/A"
	}
	number := *account
	if len(number) <= 4 {
		return "****" + number
	}
	return "****" + number[len(number)-4:]
}

// decodeSignature turns stored base64 image data into raw bytes, a
// data-url prefix is tolerated.
func decodeSignature(signature *string) ([]byte, error) {
	if signature == nil || *signature == "" {
		return nil, fmt.Errorf("no signature data")
	}
	raw := *signature
	if idx := strings.Index(raw, ","); idx >= 0 && strings.HasPrefix(raw, "data:") {
		raw = raw[idx+1:]
	}
	return base64.StdEncoding.DecodeString(raw)
}

func text(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func money(v *float64) string {
	if v == nil {
		return "$0"
	}
	return fmt.Sprintf("$%.2f", *v)
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
