package router

import (
	"strings"
	"testing"

	"ivy-crm-be/pkg/command"
	"ivy-crm-be/pkg/store"
)

func testContext() store.Context {
	return store.Context{
		SelectedApplicantID: "app-1",
		HasPhoneNumber:      true,
		Roster: []store.Applicant{
			{ID: "app-1", FirstName: "Alex", LastName: "Thompson"},
		},
	}
}

func newTestEngine() *Engine {
	return NewEngine(command.NewRegistry())
}

func TestDecidePropertyUpdateWinsOverEverything(t *testing.T) {
	engine := newTestEngine()

	// The query also contains command keywords and analysis triggers; the
	// update detector must still win.
	result := engine.Decide("update date of birth to 3rd March 1990", testContext())

	if result.Type != ResultCommand {
		t.Fatalf("Type = %s, want command", result.Type)
	}
	if result.Confidence != 0.9 {
		t.Errorf("Confidence = %f, want 0.9", result.Confidence)
	}
	if result.Action == nil || result.Action.Type != store.ActionApplyFieldEdit {
		t.Fatalf("Action = %+v, want apply_field_edit", result.Action)
	}
	if result.Action.Payload["field"] != "date_of_birth" {
		t.Errorf("field = %s, want date_of_birth", result.Action.Payload["field"])
	}
	if result.Action.Payload["value"] != "1990-03-03" {
		t.Errorf("value = %s, want 1990-03-03", result.Action.Payload["value"])
	}
}

func TestDecideHybridOnAnalysisTriggers(t *testing.T) {
	engine := newTestEngine()

	result := engine.Decide("why are these applicants at risk?", testContext())

	if result.Type != ResultHybrid {
		t.Fatalf("Type = %s, want hybrid", result.Type)
	}
	if result.Confidence != 0.85 {
		t.Errorf("Confidence = %f, want 0.85", result.Confidence)
	}
	if result.RagQuery == "" {
		t.Error("hybrid result must carry a retrieval query")
	}
	if result.Action == nil {
		t.Error("hybrid result must carry the command action")
	}
}

func TestDecidePlainCommandWithoutTriggers(t *testing.T) {
	engine := newTestEngine()

	result := engine.Decide("ring the applicant", testContext())

	if result.Type != ResultCommand {
		t.Fatalf("Type = %s, want command", result.Type)
	}
	if result.Confidence != 0.75 {
		t.Errorf("Confidence = %f, want 0.75", result.Confidence)
	}
	if result.CommandID != "comm:call-applicant" {
		t.Errorf("CommandID = %s, want comm:call-applicant", result.CommandID)
	}
}

func TestDecideRagFallback(t *testing.T) {
	engine := newTestEngine()

	result := engine.Decide("what were the main objections raised last cycle?", testContext())

	if result.Type != ResultRAG {
		t.Fatalf("Type = %s, want rag", result.Type)
	}
	if result.Confidence != 0.6 {
		t.Errorf("Confidence = %f, want 0.6", result.Confidence)
	}
	if !strings.HasPrefix(result.RagQuery, "For this specific person, ") {
		t.Errorf("RagQuery = %q, want intent-specific prefix", result.RagQuery)
	}
	if !strings.Contains(result.RagQuery, "(currently viewing applicant Alex Thompson)") {
		t.Errorf("RagQuery = %q, want entity-context hint", result.RagQuery)
	}
}

func TestDecideConfidenceAlwaysClamped(t *testing.T) {
	engine := newTestEngine()
	queries := []string{
		"", "update dob to 01/01/2001", "call", "why why why", "random nonsense utterance",
	}
	for _, q := range queries {
		result := engine.Decide(q, testContext())
		if result.Confidence < 0 || result.Confidence > 1 {
			t.Errorf("Decide(%q).Confidence = %f out of [0,1]", q, result.Confidence)
		}
	}
}

func TestClassifyDomainDeterministic(t *testing.T) {
	queries := []string{
		"has the visa deposit arrived?",
		"call them about the offer",
		"student status update",
		"complete gibberish here",
	}
	for _, q := range queries {
		first := ClassifyDomain(q)
		for i := 0; i < 5; i++ {
			again := ClassifyDomain(q)
			if again != first {
				t.Fatalf("ClassifyDomain(%q) not deterministic: %+v vs %+v", q, first, again)
			}
		}
	}
}

func TestClassifyDomainAssignment(t *testing.T) {
	tests := []struct {
		query      string
		wantDomain Domain
	}{
		{"has the transcript deadline passed for the programme?", DomainApplication},
		{"call and email the lead today", DomainContact},
		{"call about the application", DomainMixed}, // 1 vs 1
		{"total nonsense with zero keywords", FallbackDomain},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := ClassifyDomain(tt.query)
			if got.Domain != tt.wantDomain {
				t.Errorf("Domain = %s, want %s", got.Domain, tt.wantDomain)
			}
		})
	}
}

func TestClassifyDomainFallbackConfidence(t *testing.T) {
	got := ClassifyDomain("qwerty asdf zxcv")
	if got.Domain != FallbackDomain {
		t.Errorf("Domain = %s, want fallback %s", got.Domain, FallbackDomain)
	}
	if got.Confidence != 0.4 {
		t.Errorf("Confidence = %f, want 0.4", got.Confidence)
	}
}
