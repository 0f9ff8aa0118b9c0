package intent

import (
	"testing"
)

func TestAnalyzePrimaryIntent(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		wantPrimary string
	}{
		{"informational question", "what is the status of Alex's application?", IntentQuery},
		{"modification request", "update the phone number to 07700 900123", IntentModify},
		{"communication request", "call the applicant about the deadline", IntentCommunicate},
		{"analytical request", "why is Jordan unlikely to convert", IntentAnalyze},
		{"navigation request", "open the pipeline view", IntentNavigate},
		{"no category", "lorem ipsum", IntentUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Analyze(tt.query)
			if got.Primary != tt.wantPrimary {
				t.Errorf("Analyze(%q).Primary = %s, want %s", tt.query, got.Primary, tt.wantPrimary)
			}
		})
	}
}

func TestAnalyzePriorityOrder(t *testing.T) {
	// Matches both the informational ("what") and communication ("call")
	// categories; the fixed order makes informational win.
	got := Analyze("what number should I call?")
	if got.Primary != IntentQuery {
		t.Errorf("Primary = %s, want %s (fixed category order)", got.Primary, IntentQuery)
	}
}

func TestAnalyzeConfidenceBounds(t *testing.T) {
	queries := []string{
		"", "what?", "update email to a@b.com", "call and email and compare everything why how",
		"open pipeline show forecast schedule interview",
	}
	for _, q := range queries {
		got := Analyze(q)
		if got.Confidence < 0 || got.Confidence > 1 {
			t.Errorf("Analyze(%q).Confidence = %f out of [0,1]", q, got.Confidence)
		}
	}
}

func TestAnalyzeSingleIncrement(t *testing.T) {
	// Even a query hitting several categories gets exactly one +0.3.
	got := Analyze("why should I call and update the email?")
	if got.Confidence != 0.8 {
		t.Errorf("Confidence = %f, want 0.8 (single increment)", got.Confidence)
	}
}

func TestAnalyzeEntitiesAndActions(t *testing.T) {
	got := Analyze("email the computer science applicant tomorrow and schedule an interview")

	wantEntities := map[string]bool{"computer science": true, "tomorrow": true}
	for _, e := range got.Entities {
		if !wantEntities[e] {
			t.Errorf("unexpected entity %q", e)
		}
		delete(wantEntities, e)
	}
	for missing := range wantEntities {
		t.Errorf("entity %q not extracted", missing)
	}

	hasEmail, hasSchedule := false, false
	for _, a := range got.Actions {
		if a == "email" {
			hasEmail = true
		}
		if a == "schedule" {
			hasSchedule = true
		}
	}
	if !hasEmail || !hasSchedule {
		t.Errorf("actions = %v, want email and schedule", got.Actions)
	}
}

func TestAnalyzeDeduplicatesActions(t *testing.T) {
	got := Analyze("call them, then call again, then call once more")
	count := 0
	for _, a := range got.Actions {
		if a == "call" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("action 'call' appears %d times, want 1", count)
	}
}
