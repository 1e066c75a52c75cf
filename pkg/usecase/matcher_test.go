package usecase_test

import (
	"testing"

	"github.com/doorstep-hq/doorstep/pkg/domain/model"
	"github.com/doorstep-hq/doorstep/pkg/domain/types"
	"github.com/doorstep-hq/doorstep/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func TestMatchRule(t *testing.T) {
	w9 := &model.Task{ID: "task-1", Title: "Submit W-9", Category: "documents"}
	paperwork := &model.Stage{ID: "stg-1", Name: "Paperwork"}

	tests := []struct {
		name  string
		rule  model.Automation
		event model.TriggerEvent
		task  *model.Task
		stage *model.Stage
		want  bool
	}{
		{
			name:  "empty config matches any task_completed",
			rule:  model.Automation{Trigger: types.TriggerTaskCompleted},
			event: model.NewTaskCompletedEvent("task-1"),
			task:  w9,
			want:  true,
		},
		{
			name:  "empty config matches even without resolved task",
			rule:  model.Automation{Trigger: types.TriggerTaskCompleted},
			event: model.NewTaskCompletedEvent("task-1"),
			want:  true,
		},
		{
			name: "task title exact match",
			rule: model.Automation{
				Trigger:       types.TriggerTaskCompleted,
				TriggerConfig: model.TriggerConfig{TaskTitle: "Submit W-9"},
			},
			event: model.NewTaskCompletedEvent("task-1"),
			task:  w9,
			want:  true,
		},
		{
			name: "task title is case-sensitive",
			rule: model.Automation{
				Trigger:       types.TriggerTaskCompleted,
				TriggerConfig: model.TriggerConfig{TaskTitle: "submit w-9"},
			},
			event: model.NewTaskCompletedEvent("task-1"),
			task:  w9,
			want:  false,
		},
		{
			name: "task title does not match without resolved task",
			rule: model.Automation{
				Trigger:       types.TriggerTaskCompleted,
				TriggerConfig: model.TriggerConfig{TaskTitle: "Submit W-9"},
			},
			event: model.NewTaskCompletedEvent("task-1"),
			want:  false,
		},
		{
			name: "task title takes precedence over category",
			rule: model.Automation{
				Trigger:       types.TriggerTaskCompleted,
				TriggerConfig: model.TriggerConfig{TaskTitle: "Other", TaskCategory: "documents"},
			},
			event: model.NewTaskCompletedEvent("task-1"),
			task:  w9,
			want:  false,
		},
		{
			name: "category match when title unset",
			rule: model.Automation{
				Trigger:       types.TriggerTaskCompleted,
				TriggerConfig: model.TriggerConfig{TaskCategory: "documents"},
			},
			event: model.NewTaskCompletedEvent("task-1"),
			task:  w9,
			want:  true,
		},
		{
			name: "category mismatch",
			rule: model.Automation{
				Trigger:       types.TriggerTaskCompleted,
				TriggerConfig: model.TriggerConfig{TaskCategory: "payments"},
			},
			event: model.NewTaskCompletedEvent("task-1"),
			task:  w9,
			want:  false,
		},
		{
			name: "stage name exact match",
			rule: model.Automation{
				Trigger:       types.TriggerStageCompleted,
				TriggerConfig: model.TriggerConfig{StageName: "Paperwork"},
			},
			event: model.NewStageCompletedEvent("stg-1"),
			stage: paperwork,
			want:  true,
		},
		{
			name: "stage name mismatch",
			rule: model.Automation{
				Trigger:       types.TriggerStageCompleted,
				TriggerConfig: model.TriggerConfig{StageName: "Kickoff"},
			},
			event: model.NewStageCompletedEvent("stg-1"),
			stage: paperwork,
			want:  false,
		},
		{
			name: "file upload narrows by associated task title",
			rule: model.Automation{
				Trigger:       types.TriggerFileUploaded,
				TriggerConfig: model.TriggerConfig{TaskTitle: "Submit W-9"},
			},
			event: model.NewFileUploadedEvent("file-1", "task-1"),
			task:  w9,
			want:  true,
		},
		{
			name: "file upload mismatch on task title",
			rule: model.Automation{
				Trigger:       types.TriggerFileUploaded,
				TriggerConfig: model.TriggerConfig{TaskTitle: "Upload Insurance"},
			},
			event: model.NewFileUploadedEvent("file-1", "task-1"),
			task:  w9,
			want:  false,
		},
		{
			name:  "project_created always matches",
			rule:  model.Automation{Trigger: types.TriggerProjectCreated},
			event: model.NewProjectCreatedEvent(),
			want:  true,
		},
		{
			name: "signature_signed ignores narrowing fields",
			rule: model.Automation{
				Trigger:       types.TriggerSignatureSigned,
				TriggerConfig: model.TriggerConfig{TaskTitle: "whatever"},
			},
			event: model.NewSignatureSignedEvent("sig-1"),
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := usecase.MatchRule(&tt.rule, tt.event, tt.task, tt.stage)
			if tt.want {
				gt.B(t, got).True()
			} else {
				gt.B(t, got).False()
			}
		})
	}
}
