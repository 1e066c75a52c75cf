package usecase

import (
	"context"

	"github.com/doorstep-hq/doorstep/pkg/domain/interfaces"
	"github.com/doorstep-hq/doorstep/pkg/service/mailer"
	"github.com/doorstep-hq/doorstep/pkg/utils/async"
)

type UseCases struct {
	repo     interfaces.Repository
	mailer   interfaces.Mailer
	notifier interfaces.Notifier
	dispatch func(ctx context.Context, handler func(ctx context.Context) error)

	Automation *AutomationUseCase
	Task       *TaskUseCase
	Stage      *StageUseCase
	Project    *ProjectUseCase
	Signature  *SignatureUseCase
	Template   *TemplateUseCase
}

type Option func(*UseCases)

func WithMailer(m interfaces.Mailer) Option {
	return func(uc *UseCases) {
		uc.mailer = m
	}
}

func WithNotifier(n interfaces.Notifier) Option {
	return func(uc *UseCases) {
		uc.notifier = n
	}
}

// WithSyncDispatch runs fire-and-forget evaluations inline instead of in a
// background goroutine. Tests use this to assert on evaluation outcomes.
func WithSyncDispatch() Option {
	return func(uc *UseCases) {
		uc.dispatch = func(ctx context.Context, handler func(ctx context.Context) error) {
			_ = handler(ctx)
		}
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:     repo,
		mailer:   mailer.NewLog(),
		dispatch: async.Dispatch,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Automation = NewAutomationUseCase(repo, uc.mailer, uc.notifier)
	uc.Stage = NewStageUseCase(uc.Automation)
	uc.Task = NewTaskUseCase(repo, uc.Automation, uc.dispatch)
	uc.Project = NewProjectUseCase(repo, uc.Automation, uc.dispatch)
	uc.Signature = NewSignatureUseCase(repo, uc.Automation, uc.dispatch)
	uc.Template = NewTemplateUseCase(repo)

	return uc
}
