package insight

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ivy-crm-be/pkg/resolver"
	"ivy-crm-be/pkg/store"
)

// ErrApplicantNotFound means no roster entity matched the requested name.
var ErrApplicantNotFound = errors.New("applicant not found")

// ErrAmbiguousApplicant means more than one roster entity tied for a name.
var ErrAmbiguousApplicant = errors.New("ambiguous applicant name")

// AmbiguityError carries the tied roster entries so the caller can present a
// disambiguation list instead of guessing.
type AmbiguityError struct {
	Name       string
	Candidates []store.Applicant
}

func (e *AmbiguityError) Error() string {
	return fmt.Sprintf("ambiguous applicant name %q: %d candidates", e.Name, len(e.Candidates))
}

func (e *AmbiguityError) Unwrap() error { return ErrAmbiguousApplicant }

// Insight is the deterministic, feature-based assessment of one applicant.
type Insight struct {
	ApplicantID        string   `json:"applicant_id"`
	DisplayName        string   `json:"display_name"`
	RiskFactors        []string `json:"risk_factors"`
	PositiveIndicators []string `json:"positive_indicators"`
	RecommendedActions []string `json:"recommended_actions"`
	NextSteps          []string `json:"next_steps"`
	Confidence         float64  `json:"confidence"`
}

// Threshold constants for the independent feature checks
const (
	lowProbability   = 0.3
	highProbability  = 0.7
	lowScore         = 40
	highScore        = 70
	lowTouchpoints   = 3
	highTouchpoints  = 8
	staleAfter       = 14 * 24 * time.Hour
	interviewOverdue = 7 * 24 * time.Hour
)

// stageNextSteps is the fixed stage lookup; unknown stages take the default.
var stageNextSteps = map[string][]string{
	"inquiry":   {"Send programme brochure", "Invite to open day"},
	"applied":   {"Verify submitted documents", "Schedule an interview"},
	"interview": {"Confirm interview slot", "Share preparation material"},
	"offer":     {"Chase the deposit", "Answer outstanding offer questions"},
	"enrolled":  {"Send onboarding pack", "Introduce student services"},
}

var defaultNextSteps = []string{"Review the application record", "Plan the next touchpoint"}

// Analyze scores one applicant's attributes into risk factors, positive
// indicators, recommended actions and a confidence value. Deterministic for
// a fixed `now`.
func Analyze(applicant *store.Applicant, now time.Time) Insight {
	out := Insight{
		ApplicantID: applicant.ID,
		DisplayName: applicant.DisplayName(),
		Confidence:  0.5,
	}

	if applicant.ConversionProbability != nil {
		out.Confidence += 0.15
		p := *applicant.ConversionProbability
		if p < lowProbability {
			out.RiskFactors = append(out.RiskFactors, fmt.Sprintf("Conversion probability is low (%.0f%%)", p*100))
			out.RecommendedActions = append(out.RecommendedActions, "Prioritize a personal call this week")
		} else if p > highProbability {
			out.PositiveIndicators = append(out.PositiveIndicators, fmt.Sprintf("Strong conversion probability (%.0f%%)", p*100))
		}
	}

	if applicant.Score != nil {
		out.Confidence += 0.1
		s := *applicant.Score
		if s < lowScore {
			out.RiskFactors = append(out.RiskFactors, fmt.Sprintf("Engagement score is weak (%.0f)", s))
			out.RecommendedActions = append(out.RecommendedActions, "Re-engage with tailored programme content")
		} else if s > highScore {
			out.PositiveIndicators = append(out.PositiveIndicators, fmt.Sprintf("High engagement score (%.0f)", s))
		}
	}

	if applicant.Touchpoints != nil {
		out.Confidence += 0.1
		tp := *applicant.Touchpoints
		if tp < lowTouchpoints {
			out.RiskFactors = append(out.RiskFactors, fmt.Sprintf("Only %d touchpoints so far", tp))
			out.RecommendedActions = append(out.RecommendedActions, "Add an outreach sequence")
		} else if tp > highTouchpoints {
			out.PositiveIndicators = append(out.PositiveIndicators, fmt.Sprintf("Frequent contact (%d touchpoints)", tp))
		}
	}

	if applicant.LastActivityAt != nil {
		out.Confidence += 0.1
		idle := now.Sub(*applicant.LastActivityAt)
		if idle > staleAfter {
			out.RiskFactors = append(out.RiskFactors,
				fmt.Sprintf("No activity for %d days", int(idle.Hours()/24)))
			out.RecommendedActions = append(out.RecommendedActions, "Send a check-in message today")
		} else {
			out.PositiveIndicators = append(out.PositiveIndicators, "Recently active")
		}

		// Stage-specific overdue check
		if strings.EqualFold(applicant.Stage, "interview") && idle > interviewOverdue {
			out.RiskFactors = append(out.RiskFactors, "Interview stage stalled for over a week")
		}
	}

	if out.Confidence > 0.95 {
		out.Confidence = 0.95
	}

	steps, ok := stageNextSteps[strings.ToLower(applicant.Stage)]
	if !ok {
		steps = defaultNextSteps
	}
	out.NextSteps = append(out.NextSteps, steps...)

	if len(out.RecommendedActions) == 0 {
		out.RecommendedActions = []string{"Maintain the current cadence"}
	}
	return out
}

// FindByName resolves a requested name against the roster: exact match, then
// substring, then first/last-name equality, in that order. The first tier
// with matches decides; a unique match wins, multiple matches return an
// AmbiguityError carrying the candidates. Returns ErrApplicantNotFound when
// no tier matches.
func FindByName(roster []store.Applicant, name string) (*store.Applicant, error) {
	needle := resolver.NormalizeName(name)
	if needle == "" {
		return nil, fmt.Errorf("%w: empty name", ErrApplicantNotFound)
	}

	tiers := []func(a *store.Applicant) bool{
		// 1. Exact
		func(a *store.Applicant) bool {
			return resolver.NormalizeName(a.DisplayName()) == needle
		},
		// 2. Substring (either direction)
		func(a *store.Applicant) bool {
			full := resolver.NormalizeName(a.DisplayName())
			return strings.Contains(full, needle) || strings.Contains(needle, full)
		},
		// 3. First/last name equality
		func(a *store.Applicant) bool {
			return resolver.NormalizeName(a.FirstName) == needle ||
				resolver.NormalizeName(a.LastName) == needle
		},
	}

	for _, matches := range tiers {
		var found []store.Applicant
		for i := range roster {
			if matches(&roster[i]) {
				found = append(found, roster[i])
			}
		}
		switch len(found) {
		case 0:
			continue
		case 1:
			winner := found[0]
			return &winner, nil
		default:
			return nil, &AmbiguityError{Name: name, Candidates: found}
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrApplicantNotFound, name)
}
