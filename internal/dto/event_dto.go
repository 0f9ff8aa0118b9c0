package dto

// PublishAssistantEventMessage travels over the in-process bus from the
// query path to the background consumer, which notifies advisors and
// mirrors the event to NATS.
type PublishAssistantEventMessage struct {
	UserId     string   `json:"user_id"`
	SessionId  string   `json:"session_id"`
	Query      string   `json:"query"`
	ResultType string   `json:"result_type"`
	CommandId  string   `json:"command_id,omitempty"`
	Domain     string   `json:"domain"`
	Intent     string   `json:"intent"`
	Confidence float64  `json:"confidence"`
	EntityIds  []string `json:"entity_ids,omitempty"`
	Degraded   bool     `json:"degraded,omitempty"`
}
