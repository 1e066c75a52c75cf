package usecase

import (
	"context"
	"time"

	"github.com/doorstep-hq/doorstep/pkg/domain/interfaces"
	"github.com/doorstep-hq/doorstep/pkg/domain/model"
	"github.com/doorstep-hq/doorstep/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type ProjectUseCase struct {
	repo       interfaces.Repository
	automation *AutomationUseCase
	dispatch   func(ctx context.Context, handler func(ctx context.Context) error)
}

func NewProjectUseCase(repo interfaces.Repository, automation *AutomationUseCase, dispatch func(ctx context.Context, handler func(ctx context.Context) error)) *ProjectUseCase {
	return &ProjectUseCase{
		repo:       repo,
		automation: automation,
		dispatch:   dispatch,
	}
}

// CreateProjectInput carries the client-specific fields of a new project
type CreateProjectInput struct {
	Name        string
	ClientName  string
	ClientEmail string
	StaffEmail  string
}

// CreateFromTemplate instantiates a project from a template definition: the
// first stage starts active, the rest pending, and all tasks start pending.
// A project_created event is dispatched fire-and-forget once everything is
// persisted.
func (uc *ProjectUseCase) CreateFromTemplate(ctx context.Context, def *model.TemplateDefinition, input CreateProjectInput) (*model.Project, error) {
	if input.Name == "" {
		return nil, goerr.New("project name is required")
	}
	if err := def.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid template definition", goerr.V("template", def.ID))
	}

	now := time.Now().UTC()
	project := &model.Project{
		TemplateID:  def.ID,
		Name:        input.Name,
		ClientName:  input.ClientName,
		ClientEmail: input.ClientEmail,
		StaffEmail:  input.StaffEmail,
	}
	applyProjectStatus(project, types.ProjectStatusActive, now)

	project, err := uc.repo.Project().Create(ctx, project)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create project", goerr.V("name", input.Name))
	}

	for i, stageDef := range def.Stages {
		status := types.StageStatusPending
		if i == 0 {
			status = types.StageStatusActive
		}

		stage, err := uc.repo.Stage().Create(ctx, &model.Stage{
			ProjectID:  project.ID,
			Name:       stageDef.Name,
			Status:     status,
			OrderIndex: i,
		})
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create stage",
				goerr.V(ProjectIDKey, project.ID), goerr.V("stage", stageDef.Name))
		}

		for j, taskDef := range stageDef.Tasks {
			visibility := taskDef.Visibility
			if visibility == "" {
				visibility = types.VisibilityExternal
			}

			if _, err := uc.repo.Task().Create(ctx, &model.Task{
				ProjectID:          project.ID,
				StageID:            stage.ID,
				Title:              taskDef.Title,
				Category:           taskDef.Category,
				Visibility:         visibility,
				RequiresFileUpload: taskDef.RequiresFileUpload,
				RequiresSignature:  taskDef.RequiresSignature,
				Status:             types.TaskStatusPending,
				OrderIndex:         j,
			}); err != nil {
				return nil, goerr.Wrap(err, "failed to create task",
					goerr.V(ProjectIDKey, project.ID), goerr.V("task", taskDef.Title))
			}
		}
	}

	uc.dispatch(ctx, func(ctx context.Context) error {
		uc.automation.Evaluate(ctx, project.ID, model.NewProjectCreatedEvent())
		return nil
	})

	return project, nil
}

// UpdateStatus transitions the project lifecycle state, stamping started_at
// and completed_at the same way the update_project_status action does
func (uc *ProjectUseCase) UpdateStatus(ctx context.Context, projectID string, status types.ProjectStatus) (*model.Project, error) {
	if !status.IsValid() {
		return nil, goerr.Wrap(ErrInvalidProjectStatus, "invalid project status",
			goerr.V("status", status))
	}

	project, err := uc.repo.Project().Get(ctx, projectID)
	if err != nil {
		return nil, goerr.Wrap(ErrProjectNotFound, "project not found",
			goerr.V(ProjectIDKey, projectID))
	}

	applyProjectStatus(project, status, time.Now().UTC())

	updated, err := uc.repo.Project().Update(ctx, project)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update project",
			goerr.V(ProjectIDKey, projectID))
	}

	return updated, nil
}

// Get retrieves a project by ID
func (uc *ProjectUseCase) Get(ctx context.Context, projectID string) (*model.Project, error) {
	project, err := uc.repo.Project().Get(ctx, projectID)
	if err != nil {
		return nil, goerr.Wrap(ErrProjectNotFound, "project not found",
			goerr.V(ProjectIDKey, projectID))
	}
	return project, nil
}

// List retrieves all projects
func (uc *ProjectUseCase) List(ctx context.Context) ([]*model.Project, error) {
	projects, err := uc.repo.Project().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list projects")
	}
	return projects, nil
}

// applyProjectStatus sets the lifecycle state and stamps started_at on the
// first transition to active and completed_at on the first transition to
// completed. Existing stamps are never overwritten.
func applyProjectStatus(project *model.Project, status types.ProjectStatus, now time.Time) {
	project.Status = status

	switch status {
	case types.ProjectStatusActive:
		if project.StartedAt == nil {
			project.StartedAt = &now
		}
	case types.ProjectStatusCompleted:
		if project.CompletedAt == nil {
			project.CompletedAt = &now
		}
	}
}
