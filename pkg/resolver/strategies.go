package resolver

import (
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"

	"ivy-crm-be/pkg/store"
)

// maxSuggestions caps every strategy's output.
const maxSuggestions = 5

// input is the shared material handed to each matching strategy.
type input struct {
	answer     string
	stripped   string
	candidates []string // two-word name candidates from the original text, title-cased
	roster     []store.Applicant
	backendIDs []string
}

// strategy is one named matching tier. ok is false when the tier has no
// opinion; the pipeline moves on to the next tier.
type strategy struct {
	name string
	run  func(in input) (ids []string, ok bool)
}

// pipeline is the fixed first-success-wins strategy order.
var pipeline = []strategy{
	{"backend-candidates", matchBackendCandidates},
	{"name-candidates", matchNameCandidates},
	{"token-overlap", matchTokenOverlap},
	{"risk-band", matchRiskBand},
}

// matchBackendCandidates trusts a backend-asserted candidate list over all
// textual inference, restricted to ids actually present in the roster.
func matchBackendCandidates(in input) ([]string, bool) {
	if len(in.backendIDs) == 0 {
		return nil, false
	}
	known := make(map[string]bool, len(in.roster))
	for _, a := range in.roster {
		known[a.ID] = true
	}
	var out []string
	for _, id := range in.backendIDs {
		if known[id] {
			out = append(out, id)
		}
		if len(out) == maxSuggestions {
			break
		}
	}
	// The backend list is authoritative even when nothing survives the
	// roster filter: later textual tiers must not run.
	return out, true
}

// matchNameCandidates compares extracted candidate names against roster
// display names: containment in either direction, a shared word of at least
// 4 characters, or a near-miss word (edit distance 1) for typo tolerance.
func matchNameCandidates(in input) ([]string, bool) {
	var out []string
	seen := make(map[string]bool)
	for _, candidate := range in.candidates {
		normCandidate := NormalizeName(candidate)
		if normCandidate == "" {
			continue
		}
		for i := range in.roster {
			entity := &in.roster[i]
			if seen[entity.ID] {
				continue
			}
			if namesRelated(normCandidate, NormalizeName(entity.DisplayName())) {
				seen[entity.ID] = true
				out = append(out, entity.ID)
			}
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	return capIDs(out), true
}

func namesRelated(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}
	for _, wa := range strings.Fields(a) {
		if len(wa) < 4 {
			continue
		}
		for _, wb := range strings.Fields(b) {
			if len(wb) < 4 {
				continue
			}
			if wa == wb {
				return true
			}
			if len(wa) >= 5 && len(wb) >= 5 && levenshtein.ComputeDistance(wa, wb) <= 1 {
				return true
			}
		}
	}
	return false
}

// matchTokenOverlap is the looser roster-wide pass: any >=4-character token
// shared between the stripped answer and an entity's normalized name.
func matchTokenOverlap(in input) ([]string, bool) {
	answerTokens := make(map[string]bool)
	for _, tok := range strings.Fields(NormalizeName(in.stripped)) {
		if len(tok) >= 4 {
			answerTokens[strings.Trim(tok, ".,;:!?")] = true
		}
	}
	if len(answerTokens) == 0 {
		return nil, false
	}

	var out []string
	for i := range in.roster {
		entity := &in.roster[i]
		for _, tok := range strings.Fields(NormalizeName(entity.DisplayName())) {
			if len(tok) >= 4 && answerTokens[tok] {
				out = append(out, entity.ID)
				break
			}
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	return capIDs(out), true
}

// Generic phrases that justify falling back to the roster's own risk signal.
var attentionPhrases = []string{
	"applicants needing attention",
	"applicants need attention",
	"need your attention",
	"needing follow-up",
	"several applicants",
	"a few applicants",
}

const (
	safeProbabilityFloor = 0.3
	safeScoreFloor       = 40
)

// matchRiskBand filters the roster by its numeric risk attributes when the
// answer only speaks about applicants in the aggregate.
func matchRiskBand(in input) ([]string, bool) {
	lower := strings.ToLower(in.answer)
	found := false
	for _, phrase := range attentionPhrases {
		if strings.Contains(lower, phrase) {
			found = true
			break
		}
	}
	if !found {
		return nil, false
	}

	var out []string
	for i := range in.roster {
		entity := &in.roster[i]
		atRisk := false
		if entity.ConversionProbability != nil && *entity.ConversionProbability < safeProbabilityFloor {
			atRisk = true
		}
		if entity.Score != nil && *entity.Score < safeScoreFloor {
			atRisk = true
		}
		if atRisk {
			out = append(out, entity.ID)
		}
		if len(out) == maxSuggestions {
			break
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}

func capIDs(ids []string) []string {
	if len(ids) > maxSuggestions {
		return ids[:maxSuggestions]
	}
	return ids
}

var letterWord = regexp.MustCompile(`^[A-Za-z]+$`)

// extractNameCandidates collects adjacent letter-only word pairs from the
// original (unstripped) answer text, title-cased for comparison.
func extractNameCandidates(answer string) []string {
	words := strings.Fields(answer)
	var out []string
	seen := make(map[string]bool)
	for i := 0; i+1 < len(words); i++ {
		if !letterWord.MatchString(words[i]) || !letterWord.MatchString(words[i+1]) {
			continue
		}
		candidate := titleCase(words[i] + " " + words[i+1])
		if !seen[candidate] {
			seen[candidate] = true
			out = append(out, candidate)
		}
	}
	return out
}
