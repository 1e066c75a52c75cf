package model

import "github.com/doorstep-hq/doorstep/pkg/domain/types"

// TriggerEvent is a domain occurrence that may cause automations to run.
// The correlation fields identify the entity that caused the event; only the
// fields relevant to the event type are populated. A file_uploaded event
// carries both the file ID (its correlation ID) and the task the file was
// uploaded against, since matching narrows by the associated task's title.
type TriggerEvent struct {
	Type        types.TriggerType
	TaskID      string
	StageID     string
	FileID      string
	SignatureID string
}

// NewTaskCompletedEvent builds an event for a task transitioning to completed
func NewTaskCompletedEvent(taskID string) TriggerEvent {
	return TriggerEvent{Type: types.TriggerTaskCompleted, TaskID: taskID}
}

// NewStageCompletedEvent builds an event for a stage transitioning to completed
func NewStageCompletedEvent(stageID string) TriggerEvent {
	return TriggerEvent{Type: types.TriggerStageCompleted, StageID: stageID}
}

// NewProjectCreatedEvent builds an event for project instantiation.
// Project creation carries no correlation ID.
func NewProjectCreatedEvent() TriggerEvent {
	return TriggerEvent{Type: types.TriggerProjectCreated}
}

// NewFileUploadedEvent builds an event for a client file upload
func NewFileUploadedEvent(fileID, taskID string) TriggerEvent {
	return TriggerEvent{Type: types.TriggerFileUploaded, FileID: fileID, TaskID: taskID}
}

// NewSignatureSignedEvent builds an event for a completed e-signature
func NewSignatureSignedEvent(signatureID string) TriggerEvent {
	return TriggerEvent{Type: types.TriggerSignatureSigned, SignatureID: signatureID}
}
