package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/doorstep-hq/doorstep/pkg/domain/model"
	"github.com/doorstep-hq/doorstep/pkg/domain/types"
)

// Template is the TOML representation of an onboarding template
type Template struct {
	ID          string       `toml:"id"`
	Name        string       `toml:"name"`
	Stages      []Stage      `toml:"stage"`
	Automations []Automation `toml:"automation"`
}

// Stage is an ordered stage blueprint in a template file
type Stage struct {
	Name  string `toml:"name"`
	Tasks []Task `toml:"task"`
}

// Task is a task blueprint in a template file
type Task struct {
	Title              string `toml:"title"`
	Category           string `toml:"category"`
	Visibility         string `toml:"visibility"`
	RequiresFileUpload bool   `toml:"requires_file_upload"`
	RequiresSignature  bool   `toml:"requires_signature"`
}

// Automation is an automation rule in a template file
type Automation struct {
	Name          string            `toml:"name"`
	Active        *bool             `toml:"active"`
	Trigger       string            `toml:"trigger"`
	TriggerConfig map[string]string `toml:"trigger_config"`
	Action        string            `toml:"action"`
	ActionConfig  map[string]string `toml:"action_config"`
	DelayMinutes  int               `toml:"delay_minutes"`
}

// ToDomain converts the TOML template to a validated domain definition
func (t *Template) ToDomain() (*model.TemplateDefinition, error) {
	def := &model.TemplateDefinition{
		ID:     t.ID,
		Name:   t.Name,
		Stages: make([]model.StageDefinition, len(t.Stages)),
	}

	for i, stage := range t.Stages {
		tasks := make([]model.TaskDefinition, len(stage.Tasks))
		for j, task := range stage.Tasks {
			tasks[j] = model.TaskDefinition{
				Title:              task.Title,
				Category:           task.Category,
				Visibility:         types.Visibility(task.Visibility),
				RequiresFileUpload: task.RequiresFileUpload,
				RequiresSignature:  task.RequiresSignature,
			}
		}
		def.Stages[i] = model.StageDefinition{
			Name:  stage.Name,
			Tasks: tasks,
		}
	}

	def.Automations = make([]*model.Automation, len(t.Automations))
	for i, rule := range t.Automations {
		active := true
		if rule.Active != nil {
			active = *rule.Active
		}
		def.Automations[i] = &model.Automation{
			TemplateID: t.ID,
			Name:       rule.Name,
			Active:     active,
			Trigger:    types.TriggerType(rule.Trigger),
			TriggerConfig: model.TriggerConfig{
				TaskTitle:    rule.TriggerConfig["task_title"],
				TaskCategory: rule.TriggerConfig["task_category"],
				StageName:    rule.TriggerConfig["stage_name"],
			},
			Action: types.ActionType(rule.Action),
			ActionConfig: model.ActionConfig{
				TaskTitle:     rule.ActionConfig["task_title"],
				StageName:     rule.ActionConfig["stage_name"],
				Recipient:     types.RecipientType(rule.ActionConfig["recipient"]),
				Subject:       rule.ActionConfig["subject"],
				Message:       rule.ActionConfig["message"],
				ProjectStatus: types.ProjectStatus(rule.ActionConfig["project_status"]),
			},
			DelayMinutes: rule.DelayMinutes,
			OrderIndex:   i,
		}
	}

	if err := def.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidTemplate, err.Error(), goerr.V(TemplateIDKey, t.ID))
	}

	return def, nil
}

// LoadTemplate reads and validates a template definition from a TOML file
func LoadTemplate(path string) (*model.TemplateDefinition, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrConfigNotFound, "template file not found", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read template file", goerr.V(ConfigPathKey, path))
	}

	var tpl Template
	if err := toml.Unmarshal(data, &tpl); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML template", goerr.V(ConfigPathKey, path))
	}

	return tpl.ToDomain()
}
