package store

import "time"

// Applicant is a roster entry supplied by the caller. The core treats it as
// read-only reference data for matching and scoring.
type Applicant struct {
	ID                    string     `json:"id"`
	FirstName             string     `json:"first_name"`
	LastName              string     `json:"last_name"`
	FullName              string     `json:"full_name,omitempty"` // Preferred over First+Last when set
	Email                 string     `json:"email,omitempty"`
	Phone                 string     `json:"phone,omitempty"`
	Nationality           string     `json:"nationality,omitempty"`
	Programme             string     `json:"programme,omitempty"`
	Stage                 string     `json:"stage,omitempty"`
	ConversionProbability *float64   `json:"conversion_probability,omitempty"`
	Score                 *float64   `json:"score,omitempty"`
	Touchpoints           *int       `json:"touchpoints,omitempty"`
	LastActivityAt        *time.Time `json:"last_activity_at,omitempty"`
}

// DisplayName prefers the explicit full name, else composes first+last.
func (a *Applicant) DisplayName() string {
	if a.FullName != "" {
		return a.FullName
	}
	if a.FirstName == "" {
		return a.LastName
	}
	if a.LastName == "" {
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}

// Context is an immutable snapshot of the caller's UI/domain state. The core
// only reads it; the calling layer owns mutation and re-snapshots between turns.
type Context struct {
	SelectedApplicantID string            `json:"selected_applicant_id,omitempty"`
	Roster              []Applicant       `json:"roster,omitempty"`
	ActiveView          string            `json:"active_view,omitempty"`
	HasPhoneNumber      bool              `json:"has_phone_number"`
	Filters             map[string]string `json:"filters,omitempty"`
}

// SelectedApplicant returns the roster entry matching SelectedApplicantID, if any.
func (c *Context) SelectedApplicant() *Applicant {
	if c.SelectedApplicantID == "" {
		return nil
	}
	for i := range c.Roster {
		if c.Roster[i].ID == c.SelectedApplicantID {
			return &c.Roster[i]
		}
	}
	return nil
}

// Action is an abstract UI directive produced by a command effect. The HTTP
// caller executes it; the core never touches the UI itself.
type Action struct {
	Type    string            `json:"type"` // e.g. "open_composer", "navigate", "start_field_edit"
	Target  string            `json:"target,omitempty"`
	Payload map[string]string `json:"payload,omitempty"`
}

// Action type constants
const (
	ActionOpenComposer   = "open_composer"
	ActionOpenScheduler  = "open_scheduler"
	ActionNavigate       = "navigate"
	ActionStartCall      = "start_call"
	ActionStartFieldEdit = "start_field_edit"
	ActionApplyFieldEdit = "apply_field_edit"
	ActionOpenPanel      = "open_panel"
)
