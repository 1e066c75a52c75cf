package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/doorstep-hq/doorstep/pkg/cli/config"
	httpctrl "github.com/doorstep-hq/doorstep/pkg/controller/http"
	"github.com/doorstep-hq/doorstep/pkg/service/worker"
	"github.com/doorstep-hq/doorstep/pkg/usecase"
	"github.com/doorstep-hq/doorstep/pkg/utils/logging"
	"github.com/doorstep-hq/doorstep/pkg/utils/safe"
)

func cmdServe(version string) *cli.Command {
	var addr string
	var sweepInterval time.Duration
	var repoCfg config.Repository
	var mailerCfg config.Mailer
	var notifyCfg config.Notify
	var sentryCfg config.Sentry

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("DOORSTEP_ADDR"),
			Destination: &addr,
		},
		&cli.DurationFlag{
			Name:        "sweep-interval",
			Usage:       "Poll interval of the delayed automation sweeper",
			Value:       time.Minute,
			Sources:     cli.EnvVars("DOORSTEP_SWEEP_INTERVAL"),
			Destination: &sweepInterval,
		},
	}

	// Add shared config flags
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, mailerCfg.Flags()...)
	flags = append(flags, notifyCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			sentryClose, err := sentryCfg.Configure(version)
			if err != nil {
				return goerr.Wrap(err, "failed to configure error tracking")
			}
			defer sentryClose()

			// Initialize repository based on backend type
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			mailSvc, err := mailerCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure mailer")
			}

			notifier, err := notifyCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure notifier")
			}

			ucOpts := []usecase.Option{
				usecase.WithMailer(mailSvc),
			}
			if notifier != nil {
				ucOpts = append(ucOpts, usecase.WithNotifier(notifier))
			}

			uc := usecase.New(repo, ucOpts...)

			// Start the sweeper that fires delayed automation rules
			sweeper := worker.NewSweeper(repo, uc.Automation, sweepInterval)
			if err := sweeper.Start(ctx); err != nil {
				return goerr.Wrap(err, "failed to start schedule sweeper")
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			// Start server in goroutine
			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr, "sweep_interval", sweepInterval)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			// Wait for shutdown signal or server error
			select {
			case err := <-errCh:
				sweeper.Stop()
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				// Stop the sweeper first so no new automation runs start
				sweeper.Stop()

				// Create shutdown context with timeout
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				// Attempt graceful shutdown
				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
