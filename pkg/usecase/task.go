package usecase

import (
	"context"
	"time"

	"github.com/doorstep-hq/doorstep/pkg/domain/interfaces"
	"github.com/doorstep-hq/doorstep/pkg/domain/model"
	"github.com/doorstep-hq/doorstep/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type TaskUseCase struct {
	repo       interfaces.Repository
	automation *AutomationUseCase
	dispatch   func(ctx context.Context, handler func(ctx context.Context) error)
}

func NewTaskUseCase(repo interfaces.Repository, automation *AutomationUseCase, dispatch func(ctx context.Context, handler func(ctx context.Context) error)) *TaskUseCase {
	return &TaskUseCase{
		repo:       repo,
		automation: automation,
		dispatch:   dispatch,
	}
}

// CompleteTask marks a task completed on behalf of the client portal. The
// status change is synchronous; automation evaluation and the stage cascade
// run fire-and-forget so portal latency is unaffected by rule count.
func (uc *TaskUseCase) CompleteTask(ctx context.Context, projectID, taskID, completedBy string) (*model.Task, error) {
	task, err := uc.repo.Task().Get(ctx, projectID, taskID)
	if err != nil {
		return nil, goerr.Wrap(ErrTaskNotFound, "task not found",
			goerr.V(ProjectIDKey, projectID), goerr.V(TaskIDKey, taskID))
	}

	if task.Status == types.TaskStatusCompleted {
		return nil, goerr.Wrap(ErrTaskAlreadyCompleted, "task is already completed",
			goerr.V(TaskIDKey, taskID))
	}

	now := time.Now().UTC()
	task.Status = types.TaskStatusCompleted
	task.CompletedAt = &now
	if completedBy == "" {
		completedBy = "client"
	}
	task.CompletedBy = completedBy

	updated, err := uc.repo.Task().Update(ctx, task)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update task", goerr.V(TaskIDKey, taskID))
	}

	uc.dispatch(ctx, func(ctx context.Context) error {
		uc.automation.Evaluate(ctx, projectID, model.NewTaskCompletedEvent(taskID))
		return nil
	})

	return updated, nil
}

// NotifyFileUploaded dispatches a file_uploaded event. File content and
// storage are handled upstream; the automation core only needs the
// correlation to the task the file was uploaded against.
func (uc *TaskUseCase) NotifyFileUploaded(ctx context.Context, projectID, taskID, fileID string) error {
	if _, err := uc.repo.Task().Get(ctx, projectID, taskID); err != nil {
		return goerr.Wrap(ErrTaskNotFound, "task not found",
			goerr.V(ProjectIDKey, projectID), goerr.V(TaskIDKey, taskID))
	}

	uc.dispatch(ctx, func(ctx context.Context) error {
		uc.automation.Evaluate(ctx, projectID, model.NewFileUploadedEvent(fileID, taskID))
		return nil
	})

	return nil
}
