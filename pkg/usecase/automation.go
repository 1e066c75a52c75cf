package usecase

import (
	"context"
	"time"

	"github.com/doorstep-hq/doorstep/pkg/domain/interfaces"
	"github.com/doorstep-hq/doorstep/pkg/domain/model"
	"github.com/doorstep-hq/doorstep/pkg/domain/types"
	"github.com/doorstep-hq/doorstep/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// maxEventDepth bounds how many events one Evaluate call may process,
// including synthetic events enqueued by the stage cascade. A rule set that
// cycles (stage completion completing a task that completes the same stage)
// is cut off here instead of recursing.
const maxEventDepth = 8

// AutomationUseCase is the dispatcher: it evaluates automation rules against
// trigger events and records every evaluation in the execution log.
type AutomationUseCase struct {
	repo     interfaces.Repository
	mailer   interfaces.Mailer
	notifier interfaces.Notifier
}

func NewAutomationUseCase(repo interfaces.Repository, mailer interfaces.Mailer, notifier interfaces.Notifier) *AutomationUseCase {
	return &AutomationUseCase{
		repo:     repo,
		mailer:   mailer,
		notifier: notifier,
	}
}

// evalContext is the shared per-event context, fetched once and reused across
// all rules of the event.
type evalContext struct {
	tasks  []*model.Task
	stages []*model.Stage
	task   *model.Task  // Task referenced by the event's correlation ID, if any
	stage  *model.Stage // Stage referenced by the event's correlation ID, if any
}

// Evaluate runs all active automations of the project's template against the
// event. It never returns an error: every failure is logged and isolated so
// the caller's request path is unaffected. Callers on a request path should
// invoke it through the dispatch option.
//
// Processing one event may enqueue synthetic follow-up events (stage cascade).
// The internal queue is drained sequentially and capped at maxEventDepth.
func (uc *AutomationUseCase) Evaluate(ctx context.Context, projectID string, event model.TriggerEvent) {
	queue := []model.TriggerEvent{event}

	for processed := 0; len(queue) > 0; processed++ {
		if processed >= maxEventDepth {
			logging.From(ctx).Warn("Event queue depth cap reached, dropping remaining events",
				"project_id", projectID,
				"dropped", len(queue))
			return
		}

		ev := queue[0]
		queue = queue[1:]
		queue = append(queue, uc.processEvent(ctx, projectID, ev)...)
	}
}

// processEvent evaluates one event and returns synthetic follow-up events
func (uc *AutomationUseCase) processEvent(ctx context.Context, projectID string, event model.TriggerEvent) []model.TriggerEvent {
	logger := logging.From(ctx)

	project, err := uc.repo.Project().Get(ctx, projectID)
	if err != nil {
		// No project means nothing to attribute a log entry to
		logger.Warn("Automation evaluation skipped: project not found",
			"project_id", projectID,
			"trigger", event.Type.String())
		return nil
	}

	var followups []model.TriggerEvent

	if project.TemplateID != "" {
		followups = append(followups, uc.evaluateRules(ctx, project, event)...)
	} else {
		logger.Debug("Project has no template, no rules to evaluate",
			"project_id", projectID)
	}

	// Task completions feed the stage cascade regardless of rule outcomes
	if event.Type == types.TriggerTaskCompleted && event.TaskID != "" {
		cascaded, err := uc.advanceStages(ctx, project, event.TaskID)
		if err != nil {
			logger.Error("Stage advancement failed",
				"project_id", projectID,
				"task_id", event.TaskID,
				"error", err.Error())
		} else {
			followups = append(followups, cascaded...)
		}
	}

	return followups
}

func (uc *AutomationUseCase) evaluateRules(ctx context.Context, project *model.Project, event model.TriggerEvent) []model.TriggerEvent {
	logger := logging.From(ctx)

	rules, err := uc.repo.Automation().ListActiveByTrigger(ctx, project.TemplateID, event.Type)
	if err != nil {
		logger.Error("Failed to load automation rules",
			"project_id", project.ID,
			"template_id", project.TemplateID,
			"trigger", event.Type.String(),
			"error", err.Error())
		return nil
	}
	if len(rules) == 0 {
		return nil
	}

	ectx, err := uc.loadContext(ctx, project, event)
	if err != nil {
		logger.Error("Failed to load evaluation context",
			"project_id", project.ID,
			"error", err.Error())
		return nil
	}

	var followups []model.TriggerEvent
	for _, rule := range rules {
		followups = append(followups, uc.evaluateRule(ctx, rule, project, event, ectx)...)
	}
	return followups
}

// evaluateRule handles one rule independently. A failing rule is logged and
// never prevents subsequent rules from running. Actions that genuinely
// transition a task return a synthetic task_completed event so downstream
// rules and the cascade see automation-driven completions too.
func (uc *AutomationUseCase) evaluateRule(ctx context.Context, rule *model.Automation, project *model.Project, event model.TriggerEvent, ectx *evalContext) []model.TriggerEvent {
	if rule.DelayMinutes > 0 {
		uc.deferRule(ctx, rule, project, event)
		return nil
	}

	if !matchRule(rule, event, ectx) {
		// Only matched rules are logged, to keep the log meaningful
		return nil
	}

	result, followups, err := uc.executeAction(ctx, rule, project, ectx)
	if err != nil {
		uc.logFailed(ctx, rule, project, event, err)
		return nil
	}

	uc.logResult(ctx, rule, project.ID, event, result)
	return followups
}

// deferRule records the rule as skipped for now and queues a scheduled run.
// The sweeper re-evaluates against current state once the delay elapses.
func (uc *AutomationUseCase) deferRule(ctx context.Context, rule *model.Automation, project *model.Project, event model.TriggerEvent) {
	uc.putLog(ctx, &model.ExecutionLog{
		AutomationID: rule.ID,
		ProjectID:    project.ID,
		Event:        event,
		Status:       types.ExecStatusSkipped,
		Result: &model.ActionResult{
			Action:  rule.Action,
			Skipped: true,
			Reason:  "delayed",
		},
	})

	fireAt := time.Now().UTC().Add(time.Duration(rule.DelayMinutes) * time.Minute)
	if _, err := uc.repo.Schedule().Put(ctx, &model.ScheduledRun{
		AutomationID: rule.ID,
		ProjectID:    project.ID,
		Event:        event,
		FireAt:       fireAt,
	}); err != nil {
		logging.From(ctx).Error("Failed to queue delayed run",
			"automation_id", rule.ID,
			"project_id", project.ID,
			"error", err.Error())
	}
}

// RunScheduled fires one due delayed run. The rule is re-matched against
// current project state, not against a snapshot from enqueue time, so a rule
// whose condition no longer holds does nothing. Errors are returned so the
// sweeper can mark the run as failed.
func (uc *AutomationUseCase) RunScheduled(ctx context.Context, run *model.ScheduledRun) error {
	project, err := uc.repo.Project().Get(ctx, run.ProjectID)
	if err != nil {
		return goerr.Wrap(ErrProjectNotFound, "project not found for scheduled run",
			goerr.V(ProjectIDKey, run.ProjectID), goerr.V("run_id", run.ID))
	}

	rule, err := uc.repo.Automation().Get(ctx, run.AutomationID)
	if err != nil {
		return goerr.Wrap(err, "automation not found for scheduled run",
			goerr.V("automation_id", run.AutomationID), goerr.V("run_id", run.ID))
	}
	if !rule.Active {
		logging.From(ctx).Info("Scheduled run dropped: rule deactivated since enqueue",
			"automation_id", rule.ID,
			"run_id", run.ID)
		return nil
	}

	ectx, err := uc.loadContext(ctx, project, run.Event)
	if err != nil {
		return goerr.Wrap(err, "failed to load evaluation context",
			goerr.V(ProjectIDKey, project.ID))
	}

	if !matchRule(rule, run.Event, ectx) {
		return nil
	}

	result, followups, err := uc.executeAction(ctx, rule, project, ectx)
	if err != nil {
		uc.logFailed(ctx, rule, project, run.Event, err)
		return err
	}

	uc.logResult(ctx, rule, project.ID, run.Event, result)

	for _, event := range followups {
		uc.Evaluate(ctx, project.ID, event)
	}
	return nil
}

// loadContext fetches all tasks and stages of the project once per event and
// resolves the entity referenced by the event's correlation ID.
func (uc *AutomationUseCase) loadContext(ctx context.Context, project *model.Project, event model.TriggerEvent) (*evalContext, error) {
	tasks, err := uc.repo.Task().ListByProject(ctx, project.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list tasks", goerr.V(ProjectIDKey, project.ID))
	}

	stages, err := uc.repo.Stage().ListByProject(ctx, project.ID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list stages", goerr.V(ProjectIDKey, project.ID))
	}

	ectx := &evalContext{
		tasks:  tasks,
		stages: stages,
	}

	if event.TaskID != "" {
		for _, task := range tasks {
			if task.ID == event.TaskID {
				ectx.task = task
				break
			}
		}
	}
	if event.StageID != "" {
		for _, stage := range stages {
			if stage.ID == event.StageID {
				ectx.stage = stage
				break
			}
		}
	}

	return ectx, nil
}

// ListExecutions retrieves the execution log of a project, newest first
func (uc *AutomationUseCase) ListExecutions(ctx context.Context, projectID string) ([]*model.ExecutionLog, error) {
	if _, err := uc.repo.Project().Get(ctx, projectID); err != nil {
		return nil, goerr.Wrap(ErrProjectNotFound, "project not found", goerr.V(ProjectIDKey, projectID))
	}

	entries, err := uc.repo.Execution().ListByProject(ctx, projectID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list executions", goerr.V(ProjectIDKey, projectID))
	}

	return entries, nil
}

// CreateRule validates and stores a new automation rule
func (uc *AutomationUseCase) CreateRule(ctx context.Context, rule *model.Automation) (*model.Automation, error) {
	if err := rule.Validate(); err != nil {
		return nil, err
	}

	created, err := uc.repo.Automation().Create(ctx, rule)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create automation", goerr.V("name", rule.Name))
	}

	return created, nil
}

// UpdateRule validates and updates an existing automation rule
func (uc *AutomationUseCase) UpdateRule(ctx context.Context, rule *model.Automation) (*model.Automation, error) {
	if err := rule.Validate(); err != nil {
		return nil, err
	}

	updated, err := uc.repo.Automation().Update(ctx, rule)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update automation", goerr.V("id", rule.ID))
	}

	return updated, nil
}

func (uc *AutomationUseCase) logResult(ctx context.Context, rule *model.Automation, projectID string, event model.TriggerEvent, result *model.ActionResult) {
	status := types.ExecStatusSuccess
	if result.Skipped {
		status = types.ExecStatusSkipped
	}

	uc.putLog(ctx, &model.ExecutionLog{
		AutomationID: rule.ID,
		ProjectID:    projectID,
		Event:        event,
		Result:       result,
		Status:       status,
	})
}

func (uc *AutomationUseCase) logFailed(ctx context.Context, rule *model.Automation, project *model.Project, event model.TriggerEvent, execErr error) {
	logging.From(ctx).Error("Automation execution failed",
		"automation_id", rule.ID,
		"automation", rule.Name,
		"project_id", project.ID,
		"trigger", event.Type.String(),
		"error", execErr.Error())

	uc.putLog(ctx, &model.ExecutionLog{
		AutomationID: rule.ID,
		ProjectID:    project.ID,
		Event:        event,
		Status:       types.ExecStatusFailed,
		Error:        execErr.Error(),
	})

	if uc.notifier == nil {
		return
	}
	if err := uc.notifier.NotifyFailure(ctx, interfaces.NotifyFailureInput{
		AutomationID:   rule.ID,
		AutomationName: rule.Name,
		ProjectID:      project.ID,
		ProjectName:    project.Name,
		Trigger:        event.Type.String(),
		Error:          execErr.Error(),
	}); err != nil {
		logging.From(ctx).Warn("Failed to notify automation failure",
			"automation_id", rule.ID,
			"error", err.Error())
	}
}

// putLog appends an execution log entry. Log writes are best effort: a
// failing append must not abort the evaluation of other rules.
func (uc *AutomationUseCase) putLog(ctx context.Context, entry *model.ExecutionLog) {
	if _, err := uc.repo.Execution().Put(ctx, entry); err != nil {
		logging.From(ctx).Error("Failed to append execution log entry",
			"automation_id", entry.AutomationID,
			"project_id", entry.ProjectID,
			"error", err.Error())
	}
}
