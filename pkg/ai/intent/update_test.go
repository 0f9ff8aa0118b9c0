package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDateFormats(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"25th September 1989", "1989-09-25"},
		{"25/09/1989", "1989-09-25"}, // assumed day-first
		{"25.09.1989", "1989-09-25"},
		{"25-09-1989", "1989-09-25"},
		{"3rd March 1990", "1990-03-03"},
		{"3 March 1990", "1990-03-03"},
		{"1990-03-03", "1990-03-03"},
		{"09/25/1989", "1989-09-25"}, // unambiguous month-first, swapped back
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDate(tt.raw))
		})
	}
}

func TestNormalizeDateFailureReturnsOriginal(t *testing.T) {
	// Impossible dates come back verbatim; the caller treats them as unverified.
	assert.Equal(t, "32/13/1989", NormalizeDate("32/13/1989"))
	assert.Equal(t, "not a date", NormalizeDate("not a date"))
}

func TestDetectFieldUpdate(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantField string
		wantValue string
	}{
		{"dob natural", "update date of birth to 3rd March 1990", FieldDateOfBirth, "1990-03-03"},
		{"dob numeric", "change her dob to 25/09/1989", FieldDateOfBirth, "1989-09-25"},
		{"phone", "set the phone number to +44 7700 900123", FieldPhone, "+44 7700 900123"},
		{"email", "change email to alex.t@example.com", FieldEmail, "alex.t@example.com"},
		{"name without value", "I need to correct the name", FieldName, ""},
		{"nationality without value", "update nationality please", FieldNationality, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectFieldUpdate(tt.query)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantField, got.Field)
			assert.Equal(t, tt.wantValue, got.Value)
		})
	}
}

func TestDetectFieldUpdateNoTrigger(t *testing.T) {
	assert.Nil(t, DetectFieldUpdate("why is this applicant at risk?"))
	assert.Nil(t, DetectFieldUpdate(""))
}

func TestDetectFieldUpdateTriggerOrder(t *testing.T) {
	// "date of birth" fires before the looser "name" trigger even though the
	// query mentions neither explicitly ordered otherwise.
	got := DetectFieldUpdate("the date of birth on the name record is wrong")
	require.NotNil(t, got)
	assert.Equal(t, FieldDateOfBirth, got.Field)
}
