package model

import (
	"github.com/doorstep-hq/doorstep/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// TaskDefinition is a task blueprint within a template stage
type TaskDefinition struct {
	Title              string
	Category           string
	Visibility         types.Visibility
	RequiresFileUpload bool
	RequiresSignature  bool
}

// StageDefinition is an ordered stage blueprint within a template
type StageDefinition struct {
	Name  string
	Tasks []TaskDefinition
}

// TemplateDefinition is an onboarding template: the stages, tasks, and
// automation rules a new project is instantiated from. Definitions are
// authored as TOML files and applied through the CLI.
type TemplateDefinition struct {
	ID          string
	Name        string
	Stages      []StageDefinition
	Automations []*Automation
}

// Validate checks the template definition including all of its automations
func (t *TemplateDefinition) Validate() error {
	if t.ID == "" {
		return goerr.New("template ID is required")
	}
	if t.Name == "" {
		return goerr.New("template name is required", goerr.V("id", t.ID))
	}

	stageNames := make(map[string]bool, len(t.Stages))
	taskTitles := make(map[string]bool)
	for i, stage := range t.Stages {
		if stage.Name == "" {
			return goerr.New("stage name is required",
				goerr.V("template", t.ID), goerr.V("stage_index", i))
		}
		if stageNames[stage.Name] {
			return goerr.New("duplicate stage name",
				goerr.V("template", t.ID), goerr.V("stage", stage.Name))
		}
		stageNames[stage.Name] = true

		for j, task := range stage.Tasks {
			if task.Title == "" {
				return goerr.New("task title is required",
					goerr.V("template", t.ID), goerr.V("stage", stage.Name), goerr.V("task_index", j))
			}
			// Automations locate tasks by exact title, so titles must be
			// unique across the whole template, not just within a stage.
			if taskTitles[task.Title] {
				return goerr.New("duplicate task title",
					goerr.V("template", t.ID), goerr.V("task", task.Title))
			}
			taskTitles[task.Title] = true
			if task.Visibility != "" && !task.Visibility.IsValid() {
				return goerr.New("invalid task visibility",
					goerr.V("template", t.ID), goerr.V("task", task.Title),
					goerr.V("visibility", task.Visibility))
			}
		}
	}

	for _, automation := range t.Automations {
		if automation.TemplateID == "" {
			automation.TemplateID = t.ID
		}
		if err := automation.Validate(); err != nil {
			return goerr.Wrap(err, "invalid automation", goerr.V("template", t.ID))
		}
	}

	return nil
}
