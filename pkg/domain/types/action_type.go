package types

import "fmt"

// ActionType identifies the mutation an automation rule performs when it matches
type ActionType string

const (
	ActionActivateTask        ActionType = "activate_task"
	ActionCompleteTask        ActionType = "complete_task"
	ActionActivateStage       ActionType = "activate_stage"
	ActionCompleteStage       ActionType = "complete_stage"
	ActionSendEmail           ActionType = "send_email"
	ActionUpdateProjectStatus ActionType = "update_project_status"
)

// AllActionTypes returns all valid action types
func AllActionTypes() []ActionType {
	return []ActionType{
		ActionActivateTask,
		ActionCompleteTask,
		ActionActivateStage,
		ActionCompleteStage,
		ActionSendEmail,
		ActionUpdateProjectStatus,
	}
}

// IsValid checks if the action type is valid
func (a ActionType) IsValid() bool {
	switch a {
	case ActionActivateTask,
		ActionCompleteTask,
		ActionActivateStage,
		ActionCompleteStage,
		ActionSendEmail,
		ActionUpdateProjectStatus:
		return true
	default:
		return false
	}
}

// String returns the string representation of the action type
func (a ActionType) String() string {
	return string(a)
}

// ParseActionType parses a string into an ActionType
func ParseActionType(s string) (ActionType, error) {
	action := ActionType(s)
	if !action.IsValid() {
		return "", fmt.Errorf("invalid action type: %s", s)
	}
	return action, nil
}
