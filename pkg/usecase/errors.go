package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// Not found errors
	ErrProjectNotFound   = errors.New("project not found")
	ErrTaskNotFound      = errors.New("task not found")
	ErrStageNotFound     = errors.New("stage not found")
	ErrSignatureNotFound = errors.New("signature not found")

	// Status conflict errors
	ErrTaskAlreadyCompleted = errors.New("task is already completed")
	ErrSignatureFinalized   = errors.New("signature is already finalized")

	// Signing validation errors
	ErrConsentRequired         = errors.New("consent is required to sign")
	ErrSignerNameRequired      = errors.New("signer name is required")
	ErrInvalidSignaturePayload = errors.New("exactly one of drawn image or typed name must be provided")

	// Configuration errors
	ErrInvalidProjectStatus = errors.New("invalid project status")
)

// Context keys for error values
const (
	ProjectIDKey   = "project_id"
	TaskIDKey      = "task_id"
	StageIDKey     = "stage_id"
	SignatureIDKey = "signature_id"
)
