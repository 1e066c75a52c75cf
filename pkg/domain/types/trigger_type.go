package types

import "fmt"

// TriggerType identifies the domain event an automation rule reacts to
type TriggerType string

const (
	TriggerTaskCompleted   TriggerType = "task_completed"
	TriggerStageCompleted  TriggerType = "stage_completed"
	TriggerProjectCreated  TriggerType = "project_created"
	TriggerFileUploaded    TriggerType = "file_uploaded"
	TriggerSignatureSigned TriggerType = "signature_signed"
)

// AllTriggerTypes returns all valid trigger types
func AllTriggerTypes() []TriggerType {
	return []TriggerType{
		TriggerTaskCompleted,
		TriggerStageCompleted,
		TriggerProjectCreated,
		TriggerFileUploaded,
		TriggerSignatureSigned,
	}
}

// IsValid checks if the trigger type is valid
func (t TriggerType) IsValid() bool {
	switch t {
	case TriggerTaskCompleted,
		TriggerStageCompleted,
		TriggerProjectCreated,
		TriggerFileUploaded,
		TriggerSignatureSigned:
		return true
	default:
		return false
	}
}

// String returns the string representation of the trigger type
func (t TriggerType) String() string {
	return string(t)
}

// ParseTriggerType parses a string into a TriggerType
func ParseTriggerType(s string) (TriggerType, error) {
	trigger := TriggerType(s)
	if !trigger.IsValid() {
		return "", fmt.Errorf("invalid trigger type: %s", s)
	}
	return trigger, nil
}
