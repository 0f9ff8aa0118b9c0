package command

import (
	"sort"
	"strings"

	"ivy-crm-be/pkg/store"
)

// MaxResults bounds the number of commands returned by a single match call.
const MaxResults = 10

// ScoredCommand pairs a command with its match score.
type ScoredCommand struct {
	Command Command
	Score   int
}

// Match scores free text against the registry and returns visible commands
// ranked best-first. Pure function over its inputs.
//
// Empty queries enter browse mode: the first MaxResults visible commands in
// registry order, unscored.
func Match(registry *Registry, query string, ctx store.Context) []ScoredCommand {
	visible := make([]Command, 0, len(registry.All()))
	for _, cmd := range registry.All() {
		if cmd.Visible != nil && !cmd.Visible(ctx) {
			continue
		}
		visible = append(visible, cmd)
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		out := make([]ScoredCommand, 0, MaxResults)
		for _, cmd := range visible {
			if len(out) == MaxResults {
				break
			}
			out = append(out, ScoredCommand{Command: cmd})
		}
		return out
	}

	scored := make([]ScoredCommand, 0, len(visible))
	for _, cmd := range visible {
		score := scoreCommand(cmd, q)
		if score < 0 {
			continue
		}
		scored = append(scored, ScoredCommand{Command: cmd, Score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > MaxResults {
		scored = scored[:MaxResults]
	}
	return scored
}

// Top returns the best candidate, if any. Browse mode is a palette listing,
// not a match, so empty queries yield no candidate.
func Top(registry *Registry, query string, ctx store.Context) (Command, bool) {
	if strings.TrimSpace(query) == "" {
		return Command{}, false
	}
	results := Match(registry, query, ctx)
	if len(results) == 0 {
		return Command{}, false
	}
	return results[0].Command, true
}

// scoreCommand scores one command against a lowercased query. A whole-query
// substring hit inside label+keywords lands in a band strictly above
// single-token hits, so matching a command's own label always wins; within a
// band the score is inversely proportional to the match offset, and shorter
// labels win ties. Returns -1 on no match.
func scoreCommand(cmd Command, query string) int {
	haystack := strings.ToLower(cmd.Label)
	for _, kw := range cmd.Keywords {
		haystack += " " + strings.ToLower(kw)
	}

	best := -1

	// Query contained in the command's searchable text
	if idx := strings.Index(haystack, query); idx >= 0 {
		best = 2000 - idx
	}

	// Any searchable token contained in the query (e.g. "call her now" hits "call")
	for _, token := range strings.Fields(haystack) {
		if len(token) < 3 {
			continue
		}
		if idx := strings.Index(query, token); idx >= 0 {
			if s := 1000 - idx; s > best {
				best = s
			}
		}
	}

	if best < 0 {
		return -1
	}

	// Label length as a small tie-break penalty: shorter labels favored.
	best -= len(cmd.Label) / 4
	return best
}
