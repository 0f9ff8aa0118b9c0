package intent

import (
	"regexp"
	"strings"
)

// Primary intent categories, in fixed priority order. The first category with
// a matching pattern wins; ties are resolved by this order, never by pattern
// specificity.
const (
	IntentQuery       = "query"  // informational question
	IntentModify      = "modify" // data-modification request
	IntentCommunicate = "communicate"
	IntentAnalyze     = "analyze"
	IntentNavigate    = "navigate"
	IntentUnknown     = "unknown"
)

// Intent is the classifier's derived output. Never stored.
type Intent struct {
	Primary    string   `json:"primary"`
	Secondary  string   `json:"secondary,omitempty"`
	Entities   []string `json:"entities"`
	Actions    []string `json:"actions"`
	Confidence float64  `json:"confidence"`
}

type category struct {
	name     string
	patterns []*regexp.Regexp
}

// Ordered category list. Order is observable behavior: changing it changes
// which intent wins on multi-category utterances.
var categories = []category{
	{
		name: IntentQuery,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`^(what|who|when|where|which)\b`),
			regexp.MustCompile(`\b(tell me|show me about|details (of|about)|information (on|about))\b`),
			regexp.MustCompile(`\?$`),
		},
	},
	{
		name: IntentModify,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b(update|change|set|edit|modify|correct|fix)\b.*\b(to|as)\b`),
			regexp.MustCompile(`\b(update|change|edit|modify)\b.*\b(field|detail|record|dob|date of birth|phone|email|name|nationality)\b`),
		},
	},
	{
		name: IntentCommunicate,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b(call|ring|dial|phone)\b`),
			regexp.MustCompile(`\b(email|mail|message|text|write to|reach out|contact)\b`),
			regexp.MustCompile(`\b(schedule|book|arrange)\b.*\b(interview|meeting|chat)\b`),
		},
	},
	{
		name: IntentAnalyze,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b(why|how come|explain|analy[sz]e|assess|evaluate)\b`),
			regexp.MustCompile(`\b(recommend|suggest|advi[sc]e|should i)\b`),
			regexp.MustCompile(`\b(compare|versus|vs\.?|risk|likelihood|probability|forecast)\b`),
		},
	},
	{
		name: IntentNavigate,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b(open|go to|navigate|take me|switch to|show)\b.*\b(pipeline|dashboard|board|list|profile|application|view)\b`),
		},
	},
}

// Entity extraction regexes, category-tagged. Results are de-duplicated and
// order-preserving within a category; categories may interleave in the output.
var entityPatterns = []struct {
	tag string
	re  *regexp.Regexp
}{
	{"programme", regexp.MustCompile(`\b(computer science|business|engineering|law|medicine|economics|psychology|mba|msc|bsc|phd|foundation)\b`)},
	{"date", regexp.MustCompile(`\b(today|tomorrow|yesterday|next week|last week|this (week|month|term)|\d{1,2}[/.\-]\d{1,2}[/.\-]\d{2,4}|\d{1,2}(st|nd|rd|th)?\s+(january|february|march|april|may|june|july|august|september|october|november|december)(\s+\d{4})?)\b`)},
	{"status", regexp.MustCompile(`\b(at risk|overdue|pending|accepted|rejected|deferred|withdrawn|enrolled|unresponsive|hot|cold)\b`)},
}

var actionVerbs = regexp.MustCompile(`\b(call|email|schedule|update|open|show|compare|send|review|assign|follow up|escalate)\b`)

// Analyze normalizes the query and extracts primary intent, secondary
// entities and action verbs with a confidence score.
func Analyze(query string) Intent {
	normalized := strings.ToLower(strings.TrimSpace(query))

	out := Intent{
		Primary:    IntentUnknown,
		Entities:   extractEntities(normalized),
		Actions:    extractActions(normalized),
		Confidence: 0.5,
	}

	for _, cat := range categories {
		if matchesAny(normalized, cat.patterns) {
			out.Primary = cat.name
			// Single increment only: classification stops at the first
			// matching category. Kept intentionally (see DESIGN.md).
			out.Confidence += 0.3
			break
		}
	}

	if out.Confidence > 0.95 {
		out.Confidence = 0.95
	}
	return out
}

func matchesAny(s string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

func extractEntities(normalized string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, ep := range entityPatterns {
		for _, m := range ep.re.FindAllString(normalized, -1) {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	return out
}

func extractActions(normalized string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, m := range actionVerbs.FindAllString(normalized, -1) {
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	return out
}
