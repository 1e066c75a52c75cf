package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Project() ProjectRepository
	Task() TaskRepository
	Stage() StageRepository
	Signature() SignatureRepository
	Automation() AutomationRepository
	Execution() ExecutionRepository
	Schedule() ScheduleRepository

	Close() error
}
