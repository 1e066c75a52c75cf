package usecase

import (
	"context"

	"github.com/doorstep-hq/doorstep/pkg/domain/model"
	"github.com/doorstep-hq/doorstep/pkg/domain/types"
	"github.com/doorstep-hq/doorstep/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// StageUseCase exposes the stage progression cascade to callers outside the
// dispatcher, e.g. staff-side task edits that bypass the portal completion
// path.
type StageUseCase struct {
	automation *AutomationUseCase
}

func NewStageUseCase(automation *AutomationUseCase) *StageUseCase {
	return &StageUseCase{automation: automation}
}

// CheckAndAdvance recomputes stage completion after the given task changed.
// It never returns an error: failures are logged, and any synthetic
// stage_completed event is fed back through the dispatcher.
func (uc *StageUseCase) CheckAndAdvance(ctx context.Context, projectID, taskID string) {
	logger := logging.From(ctx)

	project, err := uc.automation.repo.Project().Get(ctx, projectID)
	if err != nil {
		logger.Warn("Stage advancement skipped: project not found",
			"project_id", projectID,
			"task_id", taskID)
		return
	}

	events, err := uc.automation.advanceStages(ctx, project, taskID)
	if err != nil {
		logger.Error("Stage advancement failed",
			"project_id", projectID,
			"task_id", taskID,
			"error", err.Error())
		return
	}

	for _, event := range events {
		uc.automation.Evaluate(ctx, projectID, event)
	}
}

// advanceStages checks whether the task's stage is fully done and, if so,
// completes it and activates the first pending stage by order index. At most
// one stage is activated per run; stage sequencing is assumed linear.
// Returns the synthetic events to feed back into the dispatcher queue.
func (uc *AutomationUseCase) advanceStages(ctx context.Context, project *model.Project, taskID string) ([]model.TriggerEvent, error) {
	task, err := uc.repo.Task().Get(ctx, project.ID, taskID)
	if err != nil {
		return nil, goerr.Wrap(ErrTaskNotFound, "task not found for stage advancement",
			goerr.V(ProjectIDKey, project.ID), goerr.V(TaskIDKey, taskID))
	}

	// Unstaged tasks never trigger the cascade
	if task.StageID == "" {
		return nil, nil
	}

	tasks, err := uc.repo.Task().ListByStage(ctx, project.ID, task.StageID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list stage tasks",
			goerr.V(ProjectIDKey, project.ID), goerr.V(StageIDKey, task.StageID))
	}
	for _, tk := range tasks {
		if !tk.Status.IsDone() {
			return nil, nil
		}
	}

	stage, err := uc.repo.Stage().Get(ctx, project.ID, task.StageID)
	if err != nil {
		return nil, goerr.Wrap(ErrStageNotFound, "stage not found for advancement",
			goerr.V(ProjectIDKey, project.ID), goerr.V(StageIDKey, task.StageID))
	}
	if stage.Status == types.StageStatusCompleted {
		// A concurrent or re-entrant cascade already advanced this stage
		return nil, nil
	}

	stage.Status = types.StageStatusCompleted
	if _, err := uc.repo.Stage().Update(ctx, stage); err != nil {
		return nil, goerr.Wrap(err, "failed to complete stage",
			goerr.V(StageIDKey, stage.ID))
	}

	logging.From(ctx).Info("Stage completed",
		"project_id", project.ID,
		"stage_id", stage.ID,
		"stage", stage.Name)

	events := []model.TriggerEvent{model.NewStageCompletedEvent(stage.ID)}

	next, err := uc.repo.Stage().FirstPending(ctx, project.ID)
	if err != nil {
		// No pending stage left is the normal end-of-project case
		logging.From(ctx).Debug("No pending stage to activate",
			"project_id", project.ID)
		return events, nil
	}

	next.Status = types.StageStatusActive
	if _, err := uc.repo.Stage().Update(ctx, next); err != nil {
		return events, goerr.Wrap(err, "failed to activate next stage",
			goerr.V(StageIDKey, next.ID))
	}

	logging.From(ctx).Info("Stage activated",
		"project_id", project.ID,
		"stage_id", next.ID,
		"stage", next.Name)

	return events, nil
}
