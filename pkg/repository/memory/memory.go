package memory

import (
	"github.com/doorstep-hq/doorstep/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

// Memory is an in-memory repository backend for development and tests
type Memory struct {
	project   *projectRepository
	task      *taskRepository
	stage     *stageRepository
	signature *signatureRepository
	rule      *automationRepository
	execution *executionRepository
	schedule  *scheduleRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		project:   newProjectRepository(),
		task:      newTaskRepository(),
		stage:     newStageRepository(),
		signature: newSignatureRepository(),
		rule:      newAutomationRepository(),
		execution: newExecutionRepository(),
		schedule:  newScheduleRepository(),
	}
}

func (m *Memory) Project() interfaces.ProjectRepository {
	return m.project
}

func (m *Memory) Task() interfaces.TaskRepository {
	return m.task
}

func (m *Memory) Stage() interfaces.StageRepository {
	return m.stage
}

func (m *Memory) Signature() interfaces.SignatureRepository {
	return m.signature
}

func (m *Memory) Automation() interfaces.AutomationRepository {
	return m.rule
}

func (m *Memory) Execution() interfaces.ExecutionRepository {
	return m.execution
}

func (m *Memory) Schedule() interfaces.ScheduleRepository {
	return m.schedule
}

func (m *Memory) Close() error {
	return nil
}
