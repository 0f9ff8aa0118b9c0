package resolver

import (
	"strings"

	"ivy-crm-be/pkg/store"
)

// Urgency markers that gate suggestion detection. Answers mentioning none of
// these never produce suggestions, whatever the roster contains.
var urgencyPhrases = []string{
	"at risk",
	"at-risk",
	"no response",
	"not responded",
	"unresponsive",
	"needs follow-up",
	"needs follow up",
	"needing follow-up",
	"need attention",
	"needing attention",
	"expiring",
	"expires soon",
	"overdue",
	"urgent",
	"deadline approaching",
}

// DetectSuggestions scans a retrieval answer for actionable applicant
// mentions and returns prioritized entity ids for follow-up actions.
//
// Pure and order-independent with respect to roster ordering: the returned
// ids form a set, capped at 5, always drawn from the supplied roster. A
// non-empty backendIDs list is trusted over all textual inference.
func DetectSuggestions(answer string, roster []store.Applicant, backendIDs []string) []string {
	if !containsUrgency(answer) {
		return nil
	}

	in := input{
		answer:     answer,
		stripped:   stripMarkdown(answer),
		candidates: extractNameCandidates(answer),
		roster:     roster,
		backendIDs: backendIDs,
	}

	for _, s := range pipeline {
		if ids, ok := s.run(in); ok {
			return dedupe(ids)
		}
	}
	return nil
}

func containsUrgency(answer string) bool {
	lower := strings.ToLower(answer)
	for _, phrase := range urgencyPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	var out []string
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return capIDs(out)
}
