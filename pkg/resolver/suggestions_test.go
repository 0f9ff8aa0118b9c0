package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ivy-crm-be/pkg/store"
)

func floatPtr(v float64) *float64 { return &v }

func testRoster() []store.Applicant {
	return []store.Applicant{
		{
			ID:                    "alex_thompson_id",
			FirstName:             "Alex",
			LastName:              "Thompson",
			ConversionProbability: floatPtr(0.15),
			Score:                 floatPtr(32),
		},
		{
			ID:                    "jordan_smith_id",
			FirstName:             "Jordan",
			LastName:              "Smith",
			ConversionProbability: floatPtr(0.85),
			Score:                 floatPtr(78),
		},
	}
}

func TestDetectSuggestionsUrgencyGate(t *testing.T) {
	roster := testRoster()

	// No urgency marker: always empty, regardless of roster content.
	assert.Empty(t, DetectSuggestions("Alex Thompson enrolled yesterday", roster, nil))
	assert.Empty(t, DetectSuggestions("", roster, nil))
	assert.Empty(t, DetectSuggestions("Jordan Smith is doing great", roster, []string{"jordan_smith_id"}))
}

func TestDetectSuggestionsNameMatch(t *testing.T) {
	got := DetectSuggestions("Alex Thompson is at risk and needs follow-up", testRoster(), nil)
	assert.Equal(t, []string{"alex_thompson_id"}, got)
}

func TestDetectSuggestionsMarkdownEmphasis(t *testing.T) {
	got := DetectSuggestions("**Alex Thompson** has not responded in weeks", testRoster(), nil)
	assert.Equal(t, []string{"alex_thompson_id"}, got)
}

func TestDetectSuggestionsBackendCandidatesTrusted(t *testing.T) {
	// Backend-asserted ids win over the textual mention of Alex.
	got := DetectSuggestions(
		"Alex Thompson is at risk",
		testRoster(),
		[]string{"jordan_smith_id"},
	)
	assert.Equal(t, []string{"jordan_smith_id"}, got)
}

func TestDetectSuggestionsBackendCandidatesSubset(t *testing.T) {
	roster := make([]store.Applicant, 0, 8)
	ids := make([]string, 0, 8)
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		roster = append(roster, store.Applicant{ID: id, FirstName: id, LastName: "Tester"})
		ids = append(ids, id)
	}

	got := DetectSuggestions("several applications are overdue", roster, ids)
	assert.Len(t, got, 5)
	allowed := make(map[string]bool)
	for _, id := range ids {
		allowed[id] = true
	}
	for _, id := range got {
		assert.True(t, allowed[id], "id %s not from backend candidate list", id)
	}
}

func TestDetectSuggestionsBackendUnknownIDsFiltered(t *testing.T) {
	got := DetectSuggestions("urgent case", testRoster(), []string{"ghost_id", "alex_thompson_id"})
	assert.Equal(t, []string{"alex_thompson_id"}, got)
}

func TestDetectSuggestionsEmptyRoster(t *testing.T) {
	assert.Empty(t, DetectSuggestions("Everything is urgent and at risk!", nil, nil))
	assert.Empty(t, DetectSuggestions("Everything is urgent and at risk!", nil, []string{"ghost"}))
}

func TestDetectSuggestionsRiskBandFallback(t *testing.T) {
	// Aggregate answer with no names: falls back to the roster risk band.
	got := DetectSuggestions("You have several applicants needing attention urgently", testRoster(), nil)
	assert.Equal(t, []string{"alex_thompson_id"}, got)
}

func TestDetectSuggestionsRosterOrderIndependent(t *testing.T) {
	roster := testRoster()
	reversed := []store.Applicant{roster[1], roster[0]}

	a := DetectSuggestions("Alex Thompson is at risk", roster, nil)
	b := DetectSuggestions("Alex Thompson is at risk", reversed, nil)
	assert.ElementsMatch(t, a, b)
}

func TestNormalizeNameIdempotent(t *testing.T) {
	names := []string{
		"José  O'Brien", "Zoë   Müller", "alex THOMPSON", "D’Angelo\tSmith", "",
	}
	for _, n := range names {
		once := NormalizeName(n)
		assert.Equal(t, once, NormalizeName(once), "normalize not idempotent for %q", n)
	}
}

func TestNormalizeNameStripsDiacriticsAndApostrophes(t *testing.T) {
	assert.Equal(t, "jose obrien", NormalizeName("José O'Brien"))
	assert.Equal(t, "zoe muller", NormalizeName("Zoë  Müller"))
}

func TestDetectSuggestionsDiacriticInsensitive(t *testing.T) {
	roster := []store.Applicant{
		{ID: "jose_id", FirstName: "José", LastName: "García"},
	}
	got := DetectSuggestions("Jose Garcia has an expiring offer", roster, nil)
	assert.Equal(t, []string{"jose_id"}, got)
}

func TestDetectSuggestionsCap(t *testing.T) {
	roster := make([]store.Applicant, 0, 8)
	answer := "These are at risk:"
	for _, name := range []string{"Alpha", "Bravo", "Candle", "Delta", "Echos", "Fonda", "Gamma"} {
		roster = append(roster, store.Applicant{ID: name, FirstName: name, LastName: "Walker"})
		answer += " " + name + " Walker,"
	}
	got := DetectSuggestions(answer, roster, nil)
	assert.LessOrEqual(t, len(got), 5)
}
