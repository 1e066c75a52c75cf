package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/doorstep-hq/doorstep/pkg/cli/config"
	"github.com/doorstep-hq/doorstep/pkg/usecase"
	"github.com/doorstep-hq/doorstep/pkg/utils/logging"
	"github.com/doorstep-hq/doorstep/pkg/utils/safe"
)

func cmdTemplate() *cli.Command {
	return &cli.Command{
		Name:    "template",
		Aliases: []string{"t"},
		Usage:   "Manage onboarding template definitions",
		Commands: []*cli.Command{
			cmdTemplateValidate(),
			cmdTemplateApply(),
		},
	}
}

func cmdTemplateValidate() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "Validate a TOML template definition",
		ArgsUsage: "<template.toml>",
		Action: func(ctx context.Context, c *cli.Command) error {
			path := c.Args().First()
			if path == "" {
				return goerr.New("template file path is required")
			}

			def, err := config.LoadTemplate(path)
			if err != nil {
				return err
			}

			logging.Default().Info("Template is valid",
				"id", def.ID,
				"name", def.Name,
				"stages", len(def.Stages),
				"automations", len(def.Automations),
			)
			return nil
		},
	}
}

func cmdTemplateApply() *cli.Command {
	var repoCfg config.Repository

	return &cli.Command{
		Name:      "apply",
		Usage:     "Apply a TOML template definition to the repository",
		ArgsUsage: "<template.toml>",
		Flags:     repoCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			path := c.Args().First()
			if path == "" {
				return goerr.New("template file path is required")
			}

			def, err := config.LoadTemplate(path)
			if err != nil {
				return err
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			uc := usecase.New(repo)
			if err := uc.Template.Apply(ctx, def); err != nil {
				return goerr.Wrap(err, "failed to apply template", goerr.V("id", def.ID))
			}

			return nil
		},
	}
}
