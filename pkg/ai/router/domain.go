package router

import (
	"strings"
)

// Domain is the retrieval domain an utterance maps to
type Domain string

const (
	DomainApplication Domain = "application"
	DomainContact     Domain = "contact"
	DomainMixed       Domain = "mixed"
)

// FallbackDomain is returned when no keyword matches at all. This is a fixed,
// documented default (confidence 0.4), not inferred from data.
const FallbackDomain = DomainApplication

// DomainResult is the context router's classification output
type DomainResult struct {
	Domain     Domain  `json:"domain"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// Keyword sets are disjoint: a term appears in exactly one of them.
var (
	applicationTerms = []string{
		"application", "apply", "applied", "admission", "programme", "program",
		"course", "offer", "enrolment", "enrollment", "visa", "deposit",
		"document", "transcript", "deadline", "intake", "scholarship",
	}

	contactTerms = []string{
		"contact", "call", "phone", "email", "message", "reach", "speak",
		"talk", "follow up", "follow-up", "outreach", "whatsapp", "text",
	}

	ambiguousTerms = []string{
		"applicant", "student", "lead", "person", "status", "update",
	}
)

// ClassifyDomain assigns a retrieval domain to the query using weighted
// keyword coverage. Stateless and deterministic: identical input always
// yields identical output.
func ClassifyDomain(query string) DomainResult {
	lower := strings.ToLower(query)

	appCount := countHits(lower, applicationTerms)
	contactCount := countHits(lower, contactTerms)
	neutralCount := countHits(lower, ambiguousTerms)

	if appCount == 0 && contactCount == 0 && neutralCount == 0 {
		return DomainResult{
			Domain:     FallbackDomain,
			Confidence: 0.4,
			Reasoning:  "no domain keywords matched, using fallback domain",
		}
	}

	if appCount > contactCount && appCount > 0 {
		return DomainResult{
			Domain:     DomainApplication,
			Confidence: coverageConfidence(appCount, len(applicationTerms)),
			Reasoning:  "application terms dominate",
		}
	}
	if contactCount > appCount && contactCount > 0 {
		return DomainResult{
			Domain:     DomainContact,
			Confidence: coverageConfidence(contactCount, len(contactTerms)),
			Reasoning:  "contact terms dominate",
		}
	}

	// Equal positive counts, or only neutral terms hit.
	return DomainResult{
		Domain:     DomainMixed,
		Confidence: 0.6,
		Reasoning:  "query spans both domains",
	}
}

func countHits(lowerQuery string, terms []string) int {
	count := 0
	for _, term := range terms {
		if strings.Contains(lowerQuery, term) {
			count++
		}
	}
	return count
}

func coverageConfidence(count, setSize int) float64 {
	conf := 0.5 + float64(count)/float64(setSize)
	if conf > 0.9 {
		conf = 0.9
	}
	return conf
}
