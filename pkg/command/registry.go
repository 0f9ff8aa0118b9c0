package command

import (
	"ivy-crm-be/pkg/store"
)

// Group classifies commands for the palette UI
type Group string

const (
	GroupNavigation    Group = "navigation"
	GroupCommunication Group = "communication"
	GroupAnalysis      Group = "analysis"
	GroupEdit          Group = "edit"
)

// Command is one invocable palette entry. The table is built once at process
// start and never mutated afterwards.
type Command struct {
	ID           string
	Label        string
	Keywords     []string
	Group        Group
	ShortcutHint string

	// Visible decides whether the command applies to the current context.
	Visible func(ctx store.Context) bool

	// Effect produces the abstract UI directive the caller executes.
	Effect func(ctx store.Context) store.Action
}

// Registry maps command ids to commands and preserves declaration order.
type Registry struct {
	commands []Command
	byID     map[string]Command
}

func alwaysVisible(store.Context) bool { return true }

func hasSelection(ctx store.Context) bool { return ctx.SelectedApplicantID != "" }

// NewRegistry builds the static admissions command table.
func NewRegistry() *Registry {
	r := &Registry{byID: make(map[string]Command)}
	r.commands = []Command{
		{
			ID:       "comm:call-applicant",
			Label:    "Call Applicant",
			Keywords: []string{"call", "phone", "ring", "dial"},
			Group:    GroupCommunication,
			Visible: func(ctx store.Context) bool {
				return hasSelection(ctx) && ctx.HasPhoneNumber
			},
			Effect: func(ctx store.Context) store.Action {
				return store.Action{Type: store.ActionStartCall, Target: ctx.SelectedApplicantID}
			},
			ShortcutHint: "C",
		},
		{
			ID:       "comm:send-email",
			Label:    "Send Email",
			Keywords: []string{"email", "mail", "message", "write", "compose"},
			Group:    GroupCommunication,
			Visible:  hasSelection,
			Effect: func(ctx store.Context) store.Action {
				return store.Action{Type: store.ActionOpenComposer, Target: ctx.SelectedApplicantID}
			},
			ShortcutHint: "E",
		},
		{
			ID:       "comm:schedule-interview",
			Label:    "Schedule Interview",
			Keywords: []string{"schedule", "interview", "meeting", "book", "calendar"},
			Group:    GroupCommunication,
			Visible:  hasSelection,
			Effect: func(ctx store.Context) store.Action {
				return store.Action{Type: store.ActionOpenScheduler, Target: ctx.SelectedApplicantID}
			},
		},
		{
			ID:       "nav:open-application",
			Label:    "Open Application",
			Keywords: []string{"open", "application", "profile", "view", "show"},
			Group:    GroupNavigation,
			Visible:  hasSelection,
			Effect: func(ctx store.Context) store.Action {
				return store.Action{Type: store.ActionNavigate, Target: "application/" + ctx.SelectedApplicantID}
			},
		},
		{
			ID:       "nav:pipeline",
			Label:    "Go to Pipeline",
			Keywords: []string{"pipeline", "board", "stages", "funnel"},
			Group:    GroupNavigation,
			Visible:  alwaysVisible,
			Effect: func(store.Context) store.Action {
				return store.Action{Type: store.ActionNavigate, Target: "pipeline"}
			},
		},
		{
			ID:       "analysis:at-risk",
			Label:    "Show At-Risk Applicants",
			Keywords: []string{"risk", "at risk", "urgent", "attention", "critical"},
			Group:    GroupAnalysis,
			Visible:  alwaysVisible,
			Effect: func(store.Context) store.Action {
				return store.Action{Type: store.ActionOpenPanel, Target: "at_risk"}
			},
		},
		{
			ID:       "analysis:forecast",
			Label:    "Open Enrollment Forecast",
			Keywords: []string{"forecast", "projection", "enrollment", "predict"},
			Group:    GroupAnalysis,
			Visible:  alwaysVisible,
			Effect: func(store.Context) store.Action {
				return store.Action{Type: store.ActionOpenPanel, Target: "forecast"}
			},
		},
		{
			ID:       "analysis:compare-programmes",
			Label:    "Compare Programmes",
			Keywords: []string{"compare", "programmes", "programs", "courses"},
			Group:    GroupAnalysis,
			Visible:  alwaysVisible,
			Effect: func(store.Context) store.Action {
				return store.Action{Type: store.ActionOpenPanel, Target: "programme_comparison"}
			},
		},
		{
			ID:       "edit:update-details",
			Label:    "Update Applicant Details",
			Keywords: []string{"update", "edit", "change", "modify", "details"},
			Group:    GroupEdit,
			Visible:  hasSelection,
			Effect: func(ctx store.Context) store.Action {
				return store.Action{Type: store.ActionStartFieldEdit, Target: ctx.SelectedApplicantID}
			},
		},
		{
			ID:       "edit:add-note",
			Label:    "Add Note",
			Keywords: []string{"note", "comment", "remark", "log"},
			Group:    GroupEdit,
			Visible:  hasSelection,
			Effect: func(ctx store.Context) store.Action {
				return store.Action{
					Type:    store.ActionOpenPanel,
					Target:  "note_editor",
					Payload: map[string]string{"applicant_id": ctx.SelectedApplicantID},
				}
			},
		},
	}

	for _, cmd := range r.commands {
		r.byID[cmd.ID] = cmd
	}
	return r
}

// All returns commands in declaration order.
func (r *Registry) All() []Command {
	return r.commands
}

// Get looks up a command by id.
func (r *Registry) Get(id string) (Command, bool) {
	cmd, ok := r.byID[id]
	return cmd, ok
}

// StartFieldEdit builds a synthetic command that opens an inline edit for the
// given field, optionally carrying a pre-extracted value. Used by the decision
// engine when a property-update utterance is detected.
func StartFieldEdit(field, value string) Command {
	label := "Update " + field
	return Command{
		ID:       "edit:field:" + field,
		Label:    label,
		Keywords: []string{"update", field},
		Group:    GroupEdit,
		Visible:  hasSelection,
		Effect: func(ctx store.Context) store.Action {
			payload := map[string]string{"field": field}
			actionType := store.ActionStartFieldEdit
			if value != "" {
				payload["value"] = value
				actionType = store.ActionApplyFieldEdit
			}
			return store.Action{Type: actionType, Target: ctx.SelectedApplicantID, Payload: payload}
		},
	}
}
