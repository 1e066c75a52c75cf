package usecase

import "github.com/doorstep-hq/doorstep/pkg/domain/model"

// MatchRule exposes the matcher against a synthetic context
func MatchRule(rule *model.Automation, event model.TriggerEvent, task *model.Task, stage *model.Stage) bool {
	return matchRule(rule, event, &evalContext{task: task, stage: stage})
}
