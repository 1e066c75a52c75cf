package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/doorstep-hq/doorstep/pkg/domain/model"
	"github.com/doorstep-hq/doorstep/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// executeAction performs the single domain mutation of a matched rule.
//
// Missing entities are returned as errors (the dispatcher logs them as
// failed); targets already in the desired state return a skip result without
// writing. Each action writes at most one record, so there are no partial
// mutations to roll back. A complete_task action that genuinely transitions
// its task also returns a synthetic task_completed event for the dispatcher
// queue; the queue depth cap bounds any cycle this creates.
func (uc *AutomationUseCase) executeAction(ctx context.Context, rule *model.Automation, project *model.Project, ectx *evalContext) (*model.ActionResult, []model.TriggerEvent, error) {
	cfg := rule.ActionConfig

	switch rule.Action {
	case types.ActionActivateTask:
		result, err := uc.activateTask(ctx, project, ectx, cfg.TaskTitle)
		return result, nil, err
	case types.ActionCompleteTask:
		return uc.completeTask(ctx, project, ectx, cfg.TaskTitle)
	case types.ActionActivateStage:
		result, err := uc.setStageStatus(ctx, project, ectx, cfg.StageName, types.StageStatusActive)
		return result, nil, err
	case types.ActionCompleteStage:
		result, err := uc.setStageStatus(ctx, project, ectx, cfg.StageName, types.StageStatusCompleted)
		return result, nil, err
	case types.ActionSendEmail:
		result, err := uc.sendEmail(ctx, project, cfg)
		return result, nil, err
	case types.ActionUpdateProjectStatus:
		result, err := uc.updateProjectStatus(ctx, project, cfg.ProjectStatus)
		return result, nil, err
	default:
		// Unreachable for validated rules
		return nil, nil, goerr.New("unknown action type", goerr.V("action", rule.Action))
	}
}

func (uc *AutomationUseCase) activateTask(ctx context.Context, project *model.Project, ectx *evalContext, title string) (*model.ActionResult, error) {
	task := findTaskByTitle(ectx.tasks, title)
	if task == nil {
		return nil, goerr.Wrap(ErrTaskNotFound, "no task with configured title",
			goerr.V(ProjectIDKey, project.ID), goerr.V("task_title", title))
	}

	if task.Status == types.TaskStatusCompleted || task.Status == types.TaskStatusInProgress {
		return &model.ActionResult{
			Action:  types.ActionActivateTask,
			Target:  title,
			Skipped: true,
			Reason:  fmt.Sprintf("task is already %s", task.Status),
		}, nil
	}

	task.Status = types.TaskStatusInProgress
	if _, err := uc.repo.Task().Update(ctx, task); err != nil {
		return nil, goerr.Wrap(err, "failed to activate task",
			goerr.V(TaskIDKey, task.ID), goerr.V("task_title", title))
	}

	return &model.ActionResult{
		Action: types.ActionActivateTask,
		Target: title,
		Detail: "task activated",
	}, nil
}

func (uc *AutomationUseCase) completeTask(ctx context.Context, project *model.Project, ectx *evalContext, title string) (*model.ActionResult, []model.TriggerEvent, error) {
	task := findTaskByTitle(ectx.tasks, title)
	if task == nil {
		return nil, nil, goerr.Wrap(ErrTaskNotFound, "no task with configured title",
			goerr.V(ProjectIDKey, project.ID), goerr.V("task_title", title))
	}

	if task.Status == types.TaskStatusCompleted {
		return &model.ActionResult{
			Action:  types.ActionCompleteTask,
			Target:  title,
			Skipped: true,
			Reason:  "task is already completed",
		}, nil, nil
	}

	now := time.Now().UTC()
	task.Status = types.TaskStatusCompleted
	task.CompletedAt = &now
	task.CompletedBy = "automation"
	if _, err := uc.repo.Task().Update(ctx, task); err != nil {
		return nil, nil, goerr.Wrap(err, "failed to complete task",
			goerr.V(TaskIDKey, task.ID), goerr.V("task_title", title))
	}

	result := &model.ActionResult{
		Action: types.ActionCompleteTask,
		Target: title,
		Detail: "task completed",
	}
	return result, []model.TriggerEvent{model.NewTaskCompletedEvent(task.ID)}, nil
}

func (uc *AutomationUseCase) setStageStatus(ctx context.Context, project *model.Project, ectx *evalContext, name string, status types.StageStatus) (*model.ActionResult, error) {
	action := types.ActionActivateStage
	if status == types.StageStatusCompleted {
		action = types.ActionCompleteStage
	}

	stage := findStageByName(ectx.stages, name)
	if stage == nil {
		return nil, goerr.Wrap(ErrStageNotFound, "no stage with configured name",
			goerr.V(ProjectIDKey, project.ID), goerr.V("stage_name", name))
	}

	if stage.Status == status {
		return &model.ActionResult{
			Action:  action,
			Target:  name,
			Skipped: true,
			Reason:  fmt.Sprintf("stage is already %s", status),
		}, nil
	}

	stage.Status = status
	if _, err := uc.repo.Stage().Update(ctx, stage); err != nil {
		return nil, goerr.Wrap(err, "failed to update stage",
			goerr.V(StageIDKey, stage.ID), goerr.V("stage_name", name))
	}

	return &model.ActionResult{
		Action: action,
		Target: name,
		Detail: fmt.Sprintf("stage set to %s", status),
	}, nil
}

func (uc *AutomationUseCase) sendEmail(ctx context.Context, project *model.Project, cfg model.ActionConfig) (*model.ActionResult, error) {
	to := project.RecipientEmail(cfg.Recipient)
	if to == "" {
		return &model.ActionResult{
			Action:  types.ActionSendEmail,
			Target:  cfg.Recipient.String(),
			Skipped: true,
			Reason:  fmt.Sprintf("no %s email on file", cfg.Recipient),
		}, nil
	}

	if err := uc.mailer.Send(ctx, to, cfg.Subject, cfg.Message); err != nil {
		return nil, goerr.Wrap(err, "failed to send email",
			goerr.V(ProjectIDKey, project.ID), goerr.V("recipient", cfg.Recipient))
	}

	return &model.ActionResult{
		Action: types.ActionSendEmail,
		Target: to,
		Detail: fmt.Sprintf("sent %q", cfg.Subject),
	}, nil
}

func (uc *AutomationUseCase) updateProjectStatus(ctx context.Context, project *model.Project, status types.ProjectStatus) (*model.ActionResult, error) {
	if !status.IsValid() {
		return nil, goerr.Wrap(ErrInvalidProjectStatus, "invalid project status",
			goerr.V(ProjectIDKey, project.ID), goerr.V("status", status))
	}

	if project.Status == status {
		return &model.ActionResult{
			Action:  types.ActionUpdateProjectStatus,
			Target:  status.String(),
			Skipped: true,
			Reason:  fmt.Sprintf("project is already %s", status),
		}, nil
	}

	applyProjectStatus(project, status, time.Now().UTC())
	if _, err := uc.repo.Project().Update(ctx, project); err != nil {
		return nil, goerr.Wrap(err, "failed to update project status",
			goerr.V(ProjectIDKey, project.ID), goerr.V("status", status))
	}

	return &model.ActionResult{
		Action: types.ActionUpdateProjectStatus,
		Target: status.String(),
		Detail: "project status updated",
	}, nil
}

func findTaskByTitle(tasks []*model.Task, title string) *model.Task {
	for _, task := range tasks {
		if task.Title == title {
			return task
		}
	}
	return nil
}

func findStageByName(stages []*model.Stage, name string) *model.Stage {
	for _, stage := range stages {
		if stage.Name == name {
			return stage
		}
	}
	return nil
}
