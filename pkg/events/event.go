package events

import "time"

// Event type codes emitted by the assistant pipeline.
const (
	TypeQueryRouted          = "QUERY_ROUTED"
	TypeSuggestionsDetected  = "SUGGESTIONS_DETECTED"
	TypeRetrievalDegraded    = "RETRIEVAL_DEGRADED"
	TypeFieldUpdateRequested = "FIELD_UPDATE_REQUESTED"
)

// Event is the contract for everything that crosses the assistant event bus.
type Event interface {
	// EventType returns the code for this event, e.g. "QUERY_ROUTED".
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the generic implementation used by the pipeline. Events are
// loosely typed maps so the bus never blocks a release on schema drift.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// QueryRouted builds the event published after every routed utterance.
func QueryRouted(userID, sessionID, resultType, domain, intent string, confidence float64) BaseEvent {
	return BaseEvent{
		Type: TypeQueryRouted,
		Data: map[string]interface{}{
			"user_id":     userID,
			"session_id":  sessionID,
			"result_type": resultType,
			"domain":      domain,
			"intent":      intent,
			"confidence":  confidence,
		},
		OccurredAt: time.Now(),
	}
}

// SuggestionsDetected is published when an answer yields follow-up applicants.
func SuggestionsDetected(userID string, entityIDs []string, urgent bool) BaseEvent {
	return BaseEvent{
		Type: TypeSuggestionsDetected,
		Data: map[string]interface{}{
			"user_id":    userID,
			"entity_ids": entityIDs,
			"urgent":     urgent,
		},
		OccurredAt: time.Now(),
	}
}

// RetrievalDegraded is published when the retrieval backend falls back.
func RetrievalDegraded(userID, operation string) BaseEvent {
	return BaseEvent{
		Type: TypeRetrievalDegraded,
		Data: map[string]interface{}{
			"user_id":   userID,
			"operation": operation,
		},
		OccurredAt: time.Now(),
	}
}
