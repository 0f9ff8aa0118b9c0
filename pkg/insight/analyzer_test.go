package insight

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ivy-crm-be/pkg/store"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func timePtr(v time.Time) *time.Time {
	return &v
}

var now = time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

func TestAnalyzeAtRiskApplicant(t *testing.T) {
	applicant := &store.Applicant{
		ID:                    "app-1",
		FirstName:             "Alex",
		LastName:              "Thompson",
		Stage:                 "applied",
		ConversionProbability: floatPtr(0.12),
		Score:                 floatPtr(30),
		Touchpoints:           intPtr(1),
		LastActivityAt:        timePtr(now.Add(-21 * 24 * time.Hour)),
	}

	got := Analyze(applicant, now)

	assert.Len(t, got.RiskFactors, 4)
	assert.Empty(t, got.PositiveIndicators)
	assert.NotEmpty(t, got.RecommendedActions)
	assert.Equal(t, []string{"Verify submitted documents", "Schedule an interview"}, got.NextSteps)
	// All four data fields present: 0.5 + 0.15 + 0.1 + 0.1 + 0.1 = 0.95 cap.
	assert.Equal(t, 0.95, got.Confidence)
}

func TestAnalyzeHealthyApplicant(t *testing.T) {
	applicant := &store.Applicant{
		ID:                    "app-2",
		FirstName:             "Jordan",
		LastName:              "Smith",
		Stage:                 "offer",
		ConversionProbability: floatPtr(0.88),
		Score:                 floatPtr(82),
		Touchpoints:           intPtr(11),
		LastActivityAt:        timePtr(now.Add(-24 * time.Hour)),
	}

	got := Analyze(applicant, now)

	assert.Empty(t, got.RiskFactors)
	assert.Len(t, got.PositiveIndicators, 4)
	assert.Equal(t, []string{"Maintain the current cadence"}, got.RecommendedActions)
	assert.Equal(t, []string{"Chase the deposit", "Answer outstanding offer questions"}, got.NextSteps)
}

func TestAnalyzeSparseDataLowerConfidence(t *testing.T) {
	applicant := &store.Applicant{ID: "app-3", FirstName: "Sam", LastName: "Lee"}
	got := Analyze(applicant, now)
	assert.Equal(t, 0.5, got.Confidence)
	assert.Equal(t, defaultNextSteps, got.NextSteps)
}

func TestAnalyzeInterviewOverdue(t *testing.T) {
	applicant := &store.Applicant{
		ID:             "app-4",
		FirstName:      "Ines",
		LastName:       "Marques",
		Stage:          "interview",
		LastActivityAt: timePtr(now.Add(-10 * 24 * time.Hour)),
	}
	got := Analyze(applicant, now)
	assert.Contains(t, got.RiskFactors, "Interview stage stalled for over a week")
}

func TestAnalyzeConfidenceBounds(t *testing.T) {
	applicants := []*store.Applicant{
		{ID: "a"},
		{ID: "b", ConversionProbability: floatPtr(0.5), Score: floatPtr(50),
			Touchpoints: intPtr(5), LastActivityAt: timePtr(now)},
	}
	for _, a := range applicants {
		got := Analyze(a, now)
		assert.GreaterOrEqual(t, got.Confidence, 0.0)
		assert.LessOrEqual(t, got.Confidence, 1.0)
	}
}

func TestFindByNameOrder(t *testing.T) {
	roster := []store.Applicant{
		{ID: "1", FirstName: "Alex", LastName: "Thompson"},
		{ID: "2", FirstName: "Alexander", LastName: "Thorne"},
		{ID: "3", FirstName: "Maria", LastName: "Alex"},
	}

	// Exact wins over substring.
	got, err := FindByName(roster, "Alex Thompson")
	require.NoError(t, err)
	assert.Equal(t, "1", got.ID)

	// Substring pass.
	got, err = FindByName(roster, "Alexander")
	require.NoError(t, err)
	assert.Equal(t, "2", got.ID)

	// "Alex" is a substring of all three display names, so the substring
	// tier ties and resolution refuses to guess.
	_, err = FindByName(roster, "Alex")
	assert.True(t, errors.Is(err, ErrAmbiguousApplicant))
}

func TestFindByNameAmbiguousTier(t *testing.T) {
	roster := []store.Applicant{
		{ID: "1", FirstName: "Alex", LastName: "Thompson"},
		{ID: "2", FirstName: "Alex", LastName: "Garcia"},
		{ID: "3", FirstName: "Maria", LastName: "Lopez"},
	}

	_, err := FindByName(roster, "Alex")
	var ambErr *AmbiguityError
	require.ErrorAs(t, err, &ambErr)
	require.Len(t, ambErr.Candidates, 2)
	assert.Equal(t, "1", ambErr.Candidates[0].ID)
	assert.Equal(t, "2", ambErr.Candidates[1].ID)
	assert.True(t, errors.Is(err, ErrAmbiguousApplicant))

	// A more specific name resolves uniquely past the tie.
	got, err := FindByName(roster, "Alex Garcia")
	require.NoError(t, err)
	assert.Equal(t, "2", got.ID)
}

func TestFindByNameNotFound(t *testing.T) {
	roster := []store.Applicant{{ID: "1", FirstName: "Alex", LastName: "Thompson"}}

	_, err := FindByName(roster, "Casey Jones")
	assert.True(t, errors.Is(err, ErrApplicantNotFound))

	_, err = FindByName(nil, "Anyone")
	assert.True(t, errors.Is(err, ErrApplicantNotFound))

	_, err = FindByName(roster, "   ")
	assert.True(t, errors.Is(err, ErrApplicantNotFound))
}
