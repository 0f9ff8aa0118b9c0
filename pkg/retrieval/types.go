package retrieval

// Request/response contracts for the three retrieval/analysis boundaries.
// All of them are network calls that may fail, time out or return malformed
// bodies; the client degrades to a fixed fallback answer instead of
// propagating errors.

// AskRequest is a general domain question.
type AskRequest struct {
	Query     string            `json:"query"`
	SessionID string            `json:"session_id,omitempty"`
	Filters   map[string]string `json:"filters,omitempty"`
}

// AskResponse carries the answer plus an optional continuity token.
type AskResponse struct {
	Answer     string   `json:"answer"`
	Sources    []Source `json:"sources"`
	QueryType  string   `json:"query_type"`
	Confidence float64  `json:"confidence"`
	SessionID  string   `json:"session_id,omitempty"`

	// Degraded is set when the backend call failed and Answer is the
	// fixed fallback string.
	Degraded bool `json:"-"`
}

// AnalyzeRequest targets a single named entity.
type AnalyzeRequest struct {
	Query      string `json:"query"`
	EntityName string `json:"entity_name,omitempty"`
	EntityID   string `json:"entity_id,omitempty"`
	Context    string `json:"context"`
}

type AnalyzeResponse struct {
	Answer     string   `json:"answer"`
	Sources    []Source `json:"sources"`
	Confidence float64  `json:"confidence"`
	Degraded   bool     `json:"-"`
}

// RouteRequest is a command/action-capable conversational turn.
type RouteRequest struct {
	Query          string   `json:"query"`
	Context        string   `json:"context"`
	UICapabilities []string `json:"ui_capabilities"`
}

// RouteResponse is either a conversational payload or a modal payload.
type RouteResponse struct {
	AnswerMarkdown string      `json:"answer_markdown,omitempty"`
	Modal          *Modal      `json:"modal,omitempty"`
	Actions        []Directive `json:"actions"`
	Sources        []Source    `json:"sources,omitempty"`
	Degraded       bool        `json:"-"`
}

type Modal struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

// Directive is an abstract UI instruction that the caller, not the core,
// executes.
type Directive struct {
	Type    string            `json:"type"`
	Target  string            `json:"target,omitempty"`
	Payload map[string]string `json:"payload,omitempty"`
}

type Source struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Kind  string `json:"kind,omitempty"`
}

// CandidateIDs extracts backend-asserted entity ids from directives. A
// non-empty result is trusted above textual name matching downstream.
func (r *RouteResponse) CandidateIDs() []string {
	var out []string
	for _, d := range r.Actions {
		if id := d.Payload["entity_id"]; id != "" {
			out = append(out, id)
		}
	}
	return out
}
