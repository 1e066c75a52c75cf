package usecase

import (
	"github.com/doorstep-hq/doorstep/pkg/domain/model"
	"github.com/doorstep-hq/doorstep/pkg/domain/types"
)

// matchRule decides whether a rule's trigger condition holds for an event.
// Pure and synchronous given already-fetched context.
//
// An empty config matches any event of the rule's trigger type. Narrowing is
// exact case-sensitive string equality: rule authors must reference titles
// and names exactly as configured in the template.
func matchRule(rule *model.Automation, event model.TriggerEvent, ectx *evalContext) bool {
	cfg := rule.TriggerConfig
	if cfg.IsEmpty() {
		return true
	}

	switch event.Type {
	case types.TriggerTaskCompleted:
		if cfg.TaskTitle != "" {
			return ectx.task != nil && ectx.task.Title == cfg.TaskTitle
		}
		if cfg.TaskCategory != "" {
			return ectx.task != nil && ectx.task.Category == cfg.TaskCategory
		}
		return true

	case types.TriggerFileUploaded:
		// Narrowed by the title of the task the file was uploaded against
		if cfg.TaskTitle != "" {
			return ectx.task != nil && ectx.task.Title == cfg.TaskTitle
		}
		return true

	case types.TriggerStageCompleted:
		if cfg.StageName != "" {
			return ectx.stage != nil && ectx.stage.Name == cfg.StageName
		}
		return true

	default:
		// project_created and signature_signed define no narrowing fields
		return true
	}
}
