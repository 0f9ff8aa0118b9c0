package dto

import (
	"time"

	"github.com/google/uuid"

	"ivy-crm-be/pkg/insight"
	"ivy-crm-be/pkg/retrieval"
	"ivy-crm-be/pkg/store"
)

type CreateSessionResponse struct {
	Id uuid.UUID `json:"id"`
}

type DeleteSessionRequest struct {
	SessionId uuid.UUID `json:"session_id" validate:"required"`
}

// QueryRequest is one user utterance plus the caller's context snapshot.
type QueryRequest struct {
	SessionId uuid.UUID     `json:"session_id" validate:"required"`
	Query     string        `json:"query" validate:"required"`
	Context   store.Context `json:"context"`
}

// QueryResponse is the routed outcome of one utterance. For command results
// the action is returned for the caller to execute; for hybrid/rag results
// the retrieval answer and any follow-up suggestions ride along.
type QueryResponse struct {
	Type        string             `json:"type"` // command | hybrid | rag
	CommandId   string             `json:"command_id,omitempty"`
	Action      *store.Action      `json:"action,omitempty"`
	Answer      string             `json:"answer,omitempty"`
	Sources     []retrieval.Source `json:"sources,omitempty"`
	Suggestions []string           `json:"suggestions,omitempty"` // applicant ids for follow-up
	Confidence  float64            `json:"confidence"`
	Reasoning   string             `json:"reasoning,omitempty"`
	Domain      string             `json:"domain,omitempty"`
	Intent      string             `json:"intent,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

// SuggestionsRequest screens a retrieval answer against a roster snapshot.
type SuggestionsRequest struct {
	Answer              string            `json:"answer" validate:"required"`
	Roster              []store.Applicant `json:"roster"`
	BackendCandidateIds []string          `json:"backend_candidate_ids,omitempty" validate:"max=25"`
}

type SuggestionsResponse struct {
	EntityIds []string `json:"entity_ids"`
}

// InsightRequest resolves one applicant by name against the roster snapshot.
type InsightRequest struct {
	Name   string            `json:"name" validate:"required"`
	Roster []store.Applicant `json:"roster" validate:"required"`
}

// InsightResponse is either a single analysis or, when the name ties across
// several roster entries, a disambiguation candidate list.
type InsightResponse struct {
	Insight    *insight.Insight `json:"insight,omitempty"`
	Ambiguous  bool             `json:"ambiguous,omitempty"`
	Candidates []CandidateDTO   `json:"candidates,omitempty"`
}

type CandidateDTO struct {
	Id          string `json:"id"`
	DisplayName string `json:"display_name"`
	Programme   string `json:"programme,omitempty"`
	Stage       string `json:"stage,omitempty"`
}

type CommandDTO struct {
	Id           string `json:"id"`
	Label        string `json:"label"`
	Group        string `json:"group"`
	ShortcutHint string `json:"shortcut_hint,omitempty"`
	Score        int    `json:"score"`
}

type CommandsRequest struct {
	Query   string        `json:"query"`
	Context store.Context `json:"context"`
}

type CommandsResponse struct {
	Commands []CommandDTO `json:"commands"`
}
