package model

import (
	"time"

	"github.com/doorstep-hq/doorstep/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// TriggerConfig narrows which events an automation rule matches.
// The zero value matches any event of the rule's trigger type. Which fields
// are consulted depends on the trigger type; irrelevant fields are ignored.
type TriggerConfig struct {
	TaskTitle    string // task_completed, file_uploaded: exact task title
	TaskCategory string // task_completed: exact task category (when TaskTitle is unset)
	StageName    string // stage_completed: exact stage name
}

// IsEmpty reports whether the config applies no narrowing at all
func (c TriggerConfig) IsEmpty() bool {
	return c.TaskTitle == "" && c.TaskCategory == "" && c.StageName == ""
}

// ActionConfig carries the parameters of an automation action.
// Required fields depend on the action type and are enforced by
// Automation.Validate at creation/load time, not at evaluation time.
type ActionConfig struct {
	TaskTitle     string              // activate_task, complete_task
	StageName     string              // activate_stage, complete_stage
	Recipient     types.RecipientType // send_email
	Subject       string              // send_email
	Message       string              // send_email
	ProjectStatus types.ProjectStatus // update_project_status
}

// Automation is a stored (trigger condition, action) rule scoped to a template
type Automation struct {
	ID            string
	TemplateID    string
	Name          string
	Active        bool
	Trigger       types.TriggerType
	TriggerConfig TriggerConfig
	Action        types.ActionType
	ActionConfig  ActionConfig
	DelayMinutes  int // 0 = immediate
	OrderIndex    int // Evaluation order; all matching rules run
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate checks enum membership and per-action required fields.
// Rules that fail validation are rejected at creation/update time so the
// evaluation path never sees an unknown trigger/action type or a missing
// required parameter.
func (a *Automation) Validate() error {
	if a.Name == "" {
		return goerr.New("automation name is required")
	}
	if a.TemplateID == "" {
		return goerr.New("automation template ID is required", goerr.V("name", a.Name))
	}
	if !a.Trigger.IsValid() {
		return goerr.New("invalid trigger type",
			goerr.V("name", a.Name), goerr.V("trigger", a.Trigger))
	}
	if !a.Action.IsValid() {
		return goerr.New("invalid action type",
			goerr.V("name", a.Name), goerr.V("action", a.Action))
	}
	if a.DelayMinutes < 0 {
		return goerr.New("delay minutes must not be negative",
			goerr.V("name", a.Name), goerr.V("delay_minutes", a.DelayMinutes))
	}

	switch a.Action {
	case types.ActionActivateTask, types.ActionCompleteTask:
		if a.ActionConfig.TaskTitle == "" {
			return goerr.New("action requires task_title",
				goerr.V("name", a.Name), goerr.V("action", a.Action))
		}
	case types.ActionActivateStage, types.ActionCompleteStage:
		if a.ActionConfig.StageName == "" {
			return goerr.New("action requires stage_name",
				goerr.V("name", a.Name), goerr.V("action", a.Action))
		}
	case types.ActionSendEmail:
		if !a.ActionConfig.Recipient.IsValid() {
			return goerr.New("send_email requires a valid recipient type",
				goerr.V("name", a.Name), goerr.V("recipient", a.ActionConfig.Recipient))
		}
		if a.ActionConfig.Subject == "" {
			return goerr.New("send_email requires a subject", goerr.V("name", a.Name))
		}
	case types.ActionUpdateProjectStatus:
		if !a.ActionConfig.ProjectStatus.IsValid() {
			return goerr.New("update_project_status requires a valid status",
				goerr.V("name", a.Name), goerr.V("status", a.ActionConfig.ProjectStatus))
		}
	}

	return nil
}
