package cli

import (
	"context"

	"github.com/m-mizutani/fireconf"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/doorstep-hq/doorstep/pkg/utils/logging"
	"github.com/doorstep-hq/doorstep/pkg/utils/safe"
)

func cmdMigrate() *cli.Command {
	var projectID string
	var databaseID string
	var dryRun bool

	return &cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Migrate Firestore indexes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "firestore-project-id",
				Usage:       "Firestore Project ID (required)",
				Required:    true,
				Sources:     cli.EnvVars("DOORSTEP_FIRESTORE_PROJECT_ID"),
				Destination: &projectID,
			},
			&cli.StringFlag{
				Name:        "firestore-database-id",
				Usage:       "Firestore Database ID",
				Sources:     cli.EnvVars("DOORSTEP_FIRESTORE_DATABASE_ID"),
				Destination: &databaseID,
			},
			&cli.BoolFlag{
				Name:        "dry-run",
				Usage:       "Preview changes without applying",
				Destination: &dryRun,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			logger.Info("Migrate configuration",
				"projectID", projectID,
				"databaseID", databaseID,
				"dryRun", dryRun)

			indexConfig := getIndexConfig()

			client, err := fireconf.NewClient(ctx, projectID, databaseID)
			if err != nil {
				return goerr.Wrap(err, "failed to create fireconf client")
			}
			defer safe.Close(ctx, client)

			if dryRun {
				logger.Info("Dry run mode - previewing changes")
				plan, err := client.GetMigrationPlan(ctx, indexConfig)
				if err != nil {
					return goerr.Wrap(err, "failed to create migration plan")
				}

				if len(plan.Steps) == 0 {
					logger.Info("No changes required")
					return nil
				}

				for _, step := range plan.Steps {
					logger.Info("Migration step",
						"collection", step.Collection,
						"operation", step.Operation,
						"description", step.Description,
						"destructive", step.Destructive)
				}
			} else {
				logger.Info("Applying migrations")
				if err := client.Migrate(ctx, indexConfig); err != nil {
					return goerr.Wrap(err, "failed to apply migrations")
				}
				logger.Info("Migrations applied successfully")
			}

			return nil
		},
	}
}

// getIndexConfig returns the Firestore composite indexes backing the
// repository queries
func getIndexConfig() *fireconf.Config {
	return &fireconf.Config{
		Collections: []fireconf.Collection{
			{
				Name: "tasks",
				Indexes: []fireconf.Index{
					// ListByProject: ProjectID ASC, OrderIndex ASC
					{
						Fields: []fireconf.IndexField{
							{Path: "ProjectID", Order: fireconf.OrderAscending},
							{Path: "OrderIndex", Order: fireconf.OrderAscending},
						},
					},
					// ListByStage: ProjectID ASC, StageID ASC, OrderIndex ASC
					{
						Fields: []fireconf.IndexField{
							{Path: "ProjectID", Order: fireconf.OrderAscending},
							{Path: "StageID", Order: fireconf.OrderAscending},
							{Path: "OrderIndex", Order: fireconf.OrderAscending},
						},
					},
				},
			},
			{
				Name: "stages",
				Indexes: []fireconf.Index{
					// ListByProject: ProjectID ASC, OrderIndex ASC
					{
						Fields: []fireconf.IndexField{
							{Path: "ProjectID", Order: fireconf.OrderAscending},
							{Path: "OrderIndex", Order: fireconf.OrderAscending},
						},
					},
					// FirstPending: ProjectID ASC, Status ASC, OrderIndex ASC
					{
						Fields: []fireconf.IndexField{
							{Path: "ProjectID", Order: fireconf.OrderAscending},
							{Path: "Status", Order: fireconf.OrderAscending},
							{Path: "OrderIndex", Order: fireconf.OrderAscending},
						},
					},
				},
			},
			{
				Name: "automations",
				Indexes: []fireconf.Index{
					// ListByTemplate: TemplateID ASC, OrderIndex ASC
					{
						Fields: []fireconf.IndexField{
							{Path: "TemplateID", Order: fireconf.OrderAscending},
							{Path: "OrderIndex", Order: fireconf.OrderAscending},
						},
					},
					// ListActiveByTrigger: TemplateID ASC, Active ASC, Trigger ASC, OrderIndex ASC
					{
						Fields: []fireconf.IndexField{
							{Path: "TemplateID", Order: fireconf.OrderAscending},
							{Path: "Active", Order: fireconf.OrderAscending},
							{Path: "Trigger", Order: fireconf.OrderAscending},
							{Path: "OrderIndex", Order: fireconf.OrderAscending},
						},
					},
				},
			},
			{
				Name: "execution_logs",
				Indexes: []fireconf.Index{
					// ListByProject: ProjectID ASC, CreatedAt DESC
					{
						Fields: []fireconf.IndexField{
							{Path: "ProjectID", Order: fireconf.OrderAscending},
							{Path: "CreatedAt", Order: fireconf.OrderDescending},
						},
					},
					// ListByAutomation: AutomationID ASC, CreatedAt DESC
					{
						Fields: []fireconf.IndexField{
							{Path: "AutomationID", Order: fireconf.OrderAscending},
							{Path: "CreatedAt", Order: fireconf.OrderDescending},
						},
					},
				},
			},
			{
				Name: "scheduled_runs",
				Indexes: []fireconf.Index{
					// ListDue: Status ASC, FireAt ASC
					{
						Fields: []fireconf.IndexField{
							{Path: "Status", Order: fireconf.OrderAscending},
							{Path: "FireAt", Order: fireconf.OrderAscending},
						},
					},
				},
			},
		},
	}
}
