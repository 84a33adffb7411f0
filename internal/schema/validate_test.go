package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeValues(t *testing.T) Values {
	t.Helper()
	v := FormDefaults()
	for name, val := range map[string]string{
		FieldCardType:         "Gold Prepaid",
		FieldSurname:          "Moyo",
		FieldFirstName:        "Tendai",
		FieldNationalIDNumber: "63-123456A78",
		FieldDateOfBirth:      "1990-04-18",
		FieldGender:           "Female",
		FieldPhysicalAddress:  "12 Samora Machel Ave",
		FieldCountry:          "Zimbabwe",
		FieldMobileNumber:     "+263771234567",
	} {
		require.NoError(t, v.Set(name, val))
	}
	return v
}

func TestValidate_Complete(t *testing.T) {
	errs := Validate(completeValues(t))
	assert.Empty(t, errs)
	_, ok := errs.First()
	assert.False(t, ok)
}

func TestValidate_EmptyForm(t *testing.T) {
	errs := Validate(FormDefaults())

	first, ok := errs.First()
	require.True(t, ok)
	assert.Equal(t, FieldCardType, first.Field)
	assert.Equal(t, "Card type is required", first.Message)

	m := errs.Map()
	assert.Len(t, m, 9)
	assert.Equal(t, "Mobile number is required", m[FieldMobileNumber])
	assert.NotContains(t, m, FieldOldCardNumber)
	assert.NotContains(t, m, FieldEmail)
}

func TestValidate_Replacement(t *testing.T) {
	v := completeValues(t)
	require.NoError(t, v.Set(FieldApplicationStatus, "Replacement Card"))

	errs := Validate(v)
	assert.Equal(t, Errors{
		{Field: FieldOldCardNumber, Message: "Old card number is required for replacement"},
		{Field: FieldReplacementReason, Message: "Replacement reason is required"},
	}, errs)

	require.NoError(t, v.Set(FieldOldCardNumber, "5412 7500 0000 1234"))
	require.NoError(t, v.Set(FieldReplacementReason, "Lost"))
	assert.Empty(t, Validate(v))
}

func TestValidate_Email(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"", true},
		{"tendai@example.com", true},
		{"a@b.co", true},
		{"tendai@example", false},
		{"tendai example.com", false},
		{"@example.com", false},
		{"tendai@ example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			v := completeValues(t)
			require.NoError(t, v.Set(FieldEmail, tt.email))
			errs := Validate(v)
			if tt.valid {
				assert.Empty(t, errs)
				return
			}
			assert.Equal(t, Errors{{Field: FieldEmail, Message: InvalidEmailMessage}}, errs)
		})
	}
}

func TestErrors_Error(t *testing.T) {
	errs := Errors{{Field: "a", Message: "x"}, {Field: "b", Message: "y"}}
	assert.Equal(t, "a: x; b: y", errs.Error())
}
