package usecase

import (
	"context"

	"github.com/doorstep-hq/doorstep/pkg/domain/interfaces"
	"github.com/doorstep-hq/doorstep/pkg/domain/model"
	"github.com/doorstep-hq/doorstep/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

type TemplateUseCase struct {
	repo interfaces.Repository
}

func NewTemplateUseCase(repo interfaces.Repository) *TemplateUseCase {
	return &TemplateUseCase{repo: repo}
}

// Apply replaces the stored automation rules of a template with the rules of
// the given definition. Stage and task blueprints live in the definition
// itself and are only materialized at project creation, so the rules are the
// only persisted part of a template.
func (uc *TemplateUseCase) Apply(ctx context.Context, def *model.TemplateDefinition) error {
	if err := def.Validate(); err != nil {
		return goerr.Wrap(err, "invalid template definition", goerr.V("template", def.ID))
	}

	existing, err := uc.repo.Automation().ListByTemplate(ctx, def.ID)
	if err != nil {
		return goerr.Wrap(err, "failed to list existing automations",
			goerr.V("template", def.ID))
	}
	for _, rule := range existing {
		if err := uc.repo.Automation().Delete(ctx, rule.ID); err != nil {
			return goerr.Wrap(err, "failed to delete automation",
				goerr.V("template", def.ID), goerr.V("automation_id", rule.ID))
		}
	}

	for _, rule := range def.Automations {
		if _, err := uc.repo.Automation().Create(ctx, rule); err != nil {
			return goerr.Wrap(err, "failed to create automation",
				goerr.V("template", def.ID), goerr.V("name", rule.Name))
		}
	}

	logging.From(ctx).Info("Template applied",
		"template", def.ID,
		"replaced", len(existing),
		"rules", len(def.Automations))

	return nil
}
