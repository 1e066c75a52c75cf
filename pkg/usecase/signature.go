package usecase

import (
	"context"
	"net"
	"time"

	"github.com/doorstep-hq/doorstep/pkg/domain/interfaces"
	"github.com/doorstep-hq/doorstep/pkg/domain/model"
	"github.com/doorstep-hq/doorstep/pkg/domain/types"
	"github.com/doorstep-hq/doorstep/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

type SignatureUseCase struct {
	repo       interfaces.Repository
	automation *AutomationUseCase
	dispatch   func(ctx context.Context, handler func(ctx context.Context) error)
}

func NewSignatureUseCase(repo interfaces.Repository, automation *AutomationUseCase, dispatch func(ctx context.Context, handler func(ctx context.Context) error)) *SignatureUseCase {
	return &SignatureUseCase{
		repo:       repo,
		automation: automation,
		dispatch:   dispatch,
	}
}

// SignInput carries everything captured from the signing portal
type SignInput struct {
	SignerName     string
	SignerEmail    string
	SignerTitle    string
	SignerCompany  string
	SignerInitials string

	// Exactly one of SignatureImage (drawn) or TypedName (typed) must be set
	SignatureImage string
	TypedName      string

	Consent   bool
	IPAddress string
	UserAgent string
}

// Sign executes the single externally-triggered transition of the signing
// state machine. Valid only from pending, sent, or viewed; already-finalized
// signatures are rejected with a conflict error. This runs on the synchronous
// request path, so validation errors propagate to the caller. The linked task
// completion and the signature_signed evaluation are fire-and-forget.
func (uc *SignatureUseCase) Sign(ctx context.Context, signatureID string, input SignInput) (*model.Signature, error) {
	signature, err := uc.repo.Signature().GetByID(ctx, signatureID)
	if err != nil {
		return nil, goerr.Wrap(ErrSignatureNotFound, "signature not found",
			goerr.V(SignatureIDKey, signatureID))
	}

	if !signature.Status.IsSignable() {
		return nil, goerr.Wrap(ErrSignatureFinalized, "signature cannot be signed",
			goerr.V(SignatureIDKey, signatureID), goerr.V("status", signature.Status))
	}

	if !input.Consent {
		return nil, goerr.Wrap(ErrConsentRequired, "consent is required",
			goerr.V(SignatureIDKey, signatureID))
	}
	if input.SignerName == "" {
		return nil, goerr.Wrap(ErrSignerNameRequired, "signer name is required",
			goerr.V(SignatureIDKey, signatureID))
	}
	if (input.SignatureImage == "") == (input.TypedName == "") {
		return nil, goerr.Wrap(ErrInvalidSignaturePayload, "invalid signature payload",
			goerr.V(SignatureIDKey, signatureID))
	}

	now := time.Now().UTC()
	signature.Status = types.SignatureStatusSigned
	signature.SignerName = input.SignerName
	signature.SignerEmail = input.SignerEmail
	signature.SignerTitle = input.SignerTitle
	signature.SignerCompany = input.SignerCompany
	signature.SignerInitials = input.SignerInitials
	signature.ConsentAt = &now
	signature.SignedAt = &now
	signature.UserAgent = input.UserAgent

	if input.SignatureImage != "" {
		signature.Method = types.SignatureMethodDrawn
		signature.SignatureImage = input.SignatureImage
		signature.TypedName = ""
	} else {
		signature.Method = types.SignatureMethodTyped
		signature.TypedName = input.TypedName
		signature.SignatureImage = ""
	}

	// Record the caller address only when it parses as a valid one
	if ip := net.ParseIP(input.IPAddress); ip != nil {
		signature.IPAddress = input.IPAddress
	}

	updated, err := uc.repo.Signature().Update(ctx, signature)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update signature",
			goerr.V(SignatureIDKey, signatureID))
	}

	projectID := updated.ProjectID
	taskID := updated.TaskID
	uc.dispatch(ctx, func(ctx context.Context) error {
		if taskID != "" {
			uc.completeLinkedTask(ctx, projectID, taskID)
		}
		uc.automation.Evaluate(ctx, projectID, model.NewSignatureSignedEvent(signatureID))
		return nil
	})

	return updated, nil
}

// completeLinkedTask transitions the task linked to a signed signature. The
// completion flows through the regular dispatcher path so task_completed
// rules and the stage cascade fire as if the client had completed it.
func (uc *SignatureUseCase) completeLinkedTask(ctx context.Context, projectID, taskID string) {
	logger := logging.From(ctx)

	task, err := uc.repo.Task().Get(ctx, projectID, taskID)
	if err != nil {
		logger.Warn("Linked task not found after signing",
			"project_id", projectID,
			"task_id", taskID)
		return
	}
	if task.Status == types.TaskStatusCompleted {
		return
	}

	now := time.Now().UTC()
	task.Status = types.TaskStatusCompleted
	task.CompletedAt = &now
	task.CompletedBy = "client"
	if _, err := uc.repo.Task().Update(ctx, task); err != nil {
		logger.Error("Failed to complete linked task",
			"project_id", projectID,
			"task_id", taskID,
			"error", err.Error())
		return
	}

	uc.automation.Evaluate(ctx, projectID, model.NewTaskCompletedEvent(taskID))
}

// MarkViewed records that the signer opened the document: pending or sent
// transitions to viewed, any other state is left untouched
func (uc *SignatureUseCase) MarkViewed(ctx context.Context, signatureID string) (*model.Signature, error) {
	signature, err := uc.repo.Signature().GetByID(ctx, signatureID)
	if err != nil {
		return nil, goerr.Wrap(ErrSignatureNotFound, "signature not found",
			goerr.V(SignatureIDKey, signatureID))
	}

	if signature.Status != types.SignatureStatusPending && signature.Status != types.SignatureStatusSent {
		return signature, nil
	}

	signature.Status = types.SignatureStatusViewed
	updated, err := uc.repo.Signature().Update(ctx, signature)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update signature",
			goerr.V(SignatureIDKey, signatureID))
	}

	return updated, nil
}
