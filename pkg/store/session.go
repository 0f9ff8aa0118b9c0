package store

// Session represents the active assistant session state in memory
type Session struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`

	// Opaque continuity token handed back by the retrieval backend to
	// preserve multi-turn memory. Stored transiently, never interpreted.
	ContinuityToken string `json:"continuity_token,omitempty"`

	// Metadata for last interaction
	LastQuery  string `json:"last_query,omitempty"`
	LastDomain string `json:"last_domain,omitempty"`
	LastIntent string `json:"last_intent,omitempty"`
}
