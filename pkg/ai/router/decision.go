package router

import (
	"fmt"
	"strings"

	"ivy-crm-be/pkg/ai/intent"
	"ivy-crm-be/pkg/command"
	"ivy-crm-be/pkg/store"
)

// ResultType is the terminal outcome of one decision
type ResultType string

const (
	ResultCommand ResultType = "command"
	ResultHybrid  ResultType = "hybrid"
	ResultRAG     ResultType = "rag"
)

// MatchResult is the single output of the decision engine per query,
// consumed once by the caller. Exactly one of Command / Command+RagQuery /
// RagQuery is meaningful, per the result type.
type MatchResult struct {
	Type       ResultType       `json:"type"`
	Command    *command.Command `json:"-"`
	CommandID  string           `json:"command_id,omitempty"`
	Action     *store.Action    `json:"action,omitempty"`
	RagQuery   string           `json:"rag_query,omitempty"`
	Confidence float64          `json:"confidence"`
	Reasoning  string           `json:"reasoning"`
	Intent     intent.Intent    `json:"intent"`
	Domain     DomainResult     `json:"domain"`
}

// Engine combines the fuzzy matcher, classifiers and update detector into a
// single routing decision. Stateless between calls.
type Engine struct {
	registry *command.Registry
}

func NewEngine(registry *command.Registry) *Engine {
	return &Engine{registry: registry}
}

// Analysis trigger words that push a loose command match into hybrid mode.
var analysisTriggers = []string{
	"why", "how", "recommend", "suggest", "compare", "versus",
	"should", "likely", "risk", "explain", "assess",
}

// Synonym map for the looser best-effort command pass used by the hybrid
// branch. Keys are utterance words, values registry keywords.
var looseSynonyms = map[string]string{
	"ring":      "call",
	"dial":      "call",
	"reach":     "call",
	"write":     "email",
	"contact":   "email",
	"book":      "schedule",
	"arrange":   "schedule",
	"meet":      "interview",
	"profile":   "application",
	"record":    "application",
	"funnel":    "pipeline",
	"dashboard": "pipeline",
	"urgent":    "risk",
	"attention": "risk",
}

// Decide routes one utterance. Priority order:
//  1. property-update detection (bypasses all other matching, 0.9)
//  2. top fuzzy candidate with intent confidence > 0.8
//  3. loose match + analysis triggers -> hybrid (0.85); loose match alone -> command (0.75)
//  4. retrieval fallback (0.6)
func (e *Engine) Decide(query string, ctx store.Context) MatchResult {
	resolvedIntent := intent.Analyze(query)
	domain := ClassifyDomain(query)

	// 1. Property updates beat everything.
	if update := intent.DetectFieldUpdate(query); update != nil {
		cmd := command.StartFieldEdit(update.Field, update.Value)
		return e.commandResult(cmd, ctx, 0.9,
			fmt.Sprintf("property update detected for field %q", update.Field),
			resolvedIntent, domain)
	}

	// 2. Confident direct command.
	if top, ok := command.Top(e.registry, query, ctx); ok && resolvedIntent.Confidence > 0.8 {
		return e.commandResult(top, ctx, resolvedIntent.Confidence,
			"top fuzzy candidate with confident intent", resolvedIntent, domain)
	}

	// 3. Hybrid construction via looser keyword/synonym matching.
	if loose, ok := e.looseMatch(query, ctx); ok {
		if hasAnalysisTrigger(query) || resolvedIntent.Primary == intent.IntentAnalyze {
			action := loose.Effect(ctx)
			return MatchResult{
				Type:       ResultHybrid,
				Command:    &loose,
				CommandID:  loose.ID,
				Action:     &action,
				RagQuery:   e.buildRagQuery(query, resolvedIntent, ctx),
				Confidence: 0.85,
				Reasoning:  "command matched with analysis triggers, augmenting with retrieval",
				Intent:     resolvedIntent,
				Domain:     domain,
			}
		}
		return e.commandResult(loose, ctx, 0.75,
			"loose keyword match without analysis triggers", resolvedIntent, domain)
	}

	// 4. Retrieval fallback.
	return MatchResult{
		Type:       ResultRAG,
		RagQuery:   e.buildRagQuery(query, resolvedIntent, ctx),
		Confidence: 0.6,
		Reasoning:  "no command matched, falling back to retrieval",
		Intent:     resolvedIntent,
		Domain:     domain,
	}
}

func (e *Engine) commandResult(cmd command.Command, ctx store.Context, confidence float64, reasoning string, in intent.Intent, domain DomainResult) MatchResult {
	action := cmd.Effect(ctx)
	return MatchResult{
		Type:       ResultCommand,
		Command:    &cmd,
		CommandID:  cmd.ID,
		Action:     &action,
		Confidence: clamp(confidence),
		Reasoning:  reasoning,
		Intent:     in,
		Domain:     domain,
	}
}

// looseMatch retries the fuzzy matcher after rewriting utterance words
// through the synonym table.
func (e *Engine) looseMatch(query string, ctx store.Context) (command.Command, bool) {
	if top, ok := command.Top(e.registry, query, ctx); ok {
		return top, true
	}

	words := strings.Fields(strings.ToLower(query))
	rewritten := make([]string, len(words))
	changed := false
	for i, w := range words {
		if syn, ok := looseSynonyms[strings.Trim(w, ".,!?")]; ok {
			rewritten[i] = syn
			changed = true
		} else {
			rewritten[i] = w
		}
	}
	if !changed {
		return command.Command{}, false
	}
	return command.Top(e.registry, strings.Join(rewritten, " "), ctx)
}

func hasAnalysisTrigger(query string) bool {
	for _, word := range strings.Fields(strings.ToLower(query)) {
		word = strings.Trim(word, ".,!?")
		for _, trigger := range analysisTriggers {
			if word == trigger {
				return true
			}
		}
	}
	return false
}

// buildRagQuery prefixes the utterance with an intent-specific phrase and a
// parenthetical entity-context hint for the retrieval backend.
func (e *Engine) buildRagQuery(query string, in intent.Intent, ctx store.Context) string {
	var prefix string
	switch in.Primary {
	case intent.IntentAnalyze:
		prefix = "Analyze and explain: "
	case intent.IntentQuery:
		if ctx.SelectedApplicantID != "" {
			prefix = "For this specific person, "
		}
	case intent.IntentCommunicate:
		prefix = "To help me reach out, "
	}

	out := prefix + query
	if selected := ctx.SelectedApplicant(); selected != nil {
		out += fmt.Sprintf(" (currently viewing applicant %s)", selected.DisplayName())
	} else if ctx.ActiveView != "" {
		out += fmt.Sprintf(" (current view: %s)", ctx.ActiveView)
	}
	return out
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
