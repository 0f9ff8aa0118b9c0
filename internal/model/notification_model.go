package model

import (
	"time"

	"github.com/google/uuid"
)

// Notification is pushed to connected advisors over the websocket stream.
// Notifications are transient here; the CRM core owns durable history.
type Notification struct {
	ID         uuid.UUID              `json:"id"`
	UserID     uuid.UUID              `json:"user_id"`
	TypeCode   string                 `json:"type_code"`
	EntityType string                 `json:"entity_type,omitempty"`
	EntityIDs  []string               `json:"entity_ids,omitempty"`
	Title      string                 `json:"title"`
	Message    string                 `json:"message"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}
