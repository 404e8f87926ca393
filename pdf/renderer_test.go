package pdf

import (
	"testing"
	"time"

	"github.com/crediflow/crediflow/db/tables"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(v string) *string {
	return &v
}

func floatptr(v float64) *float64 {
	return &v
}

func TestRenderPersonalApplication(t *testing.T) {
	r := NewRenderer("crediflow")
	app := &tables.ApplicationTable{
		ID:                1,
		ReferenceID:       uuid.New(),
		Type:              "PERSONAL",
		Status:            "PENDING",
		SubmittedDate:     time.Now().UTC(),
		FirstName:         "Ada",
		LastName:          "Lovelace",
		Email:             "ada@example.com",
		SSN:               strptr("123456789"),
		GrossAnnualIncome: floatptr(85000),
	}
	out, err := r.Render(app)
	require.NoError(t, err)
	assert.True(t, len(out) > 4)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestRenderBusinessApplication(t *testing.T) {
	r := NewRenderer("crediflow")
	app := &tables.ApplicationTable{
		ID:                2,
		ReferenceID:       uuid.New(),
		Type:              "BUSINESS",
		Status:            "IN_REVIEW",
		SubmittedDate:     time.Now().UTC(),
		FirstName:         "Grace",
		LastName:          "Hopper",
		Email:             "grace@example.com",
		BusinessName:      strptr("Hopper Machines LLC"),
		BankAccountNumber: strptr("000123456"),
	}
	out, err := r.Render(app)
	require.NoError(t, err)
	assert.True(t, len(out) > 4)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestRenderToleratesBrokenSignatureData(t *testing.T) {
	r := NewRenderer("crediflow")
	app := &tables.ApplicationTable{
		ID:            3,
		ReferenceID:   uuid.New(),
		Type:          "PERSONAL",
		Status:        "PENDING",
		SubmittedDate: time.Now().UTC(),
		FirstName:     "Ada",
		LastName:      "Lovelace",
		Email:         "ada@example.com",
		SignatureData: strptr("data:image/png;base64,this is not base64!!"),
	}
	out, err := r.Render(app)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestMaskSSN(t *testing.T) {
	for _, v := range []struct {
		in       *string
		expected string
	}{
		{nil, "N/A"},
		{strptr(""), "N/A"},
		{strptr("123456789"), "***-**-6789"},
		{strptr("123-45-6789"), "***-**-6789"},
		{strptr("89"), "***-**-89"},
	} {
		assert.Equal(t, v.expected, MaskSSN(v.in))
	}
}

func TestMaskAccount(t *testing.T) {
	for _, v := range []struct {
		in       *string
		expected string
	}{
		{nil, "N/A"},
		{strptr(""), "N/A"},
		{strptr("000123456"), "****3456"},
		{strptr("456"), "****456"},
	} {
		assert.Equal(t, v.expected, MaskAccount(v.in))
	}
}
