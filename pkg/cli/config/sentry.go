package config

import (
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/doorstep-hq/doorstep/pkg/utils/logging"
)

// Sentry holds CLI flags for error tracking configuration
type Sentry struct {
	dsn string
	env string
}

// Flags returns CLI flags for Sentry configuration
func (x *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN (error tracking is disabled when empty)",
			Category:    "Error tracking",
			Sources:     cli.EnvVars("DOORSTEP_SENTRY_DSN"),
			Destination: &x.dsn,
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Usage:       "Sentry environment name",
			Category:    "Error tracking",
			Value:       "production",
			Sources:     cli.EnvVars("DOORSTEP_SENTRY_ENV"),
			Destination: &x.env,
		},
	}
}

func (x Sentry) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("dsn.len", len(x.dsn)),
		slog.String("env", x.env),
	)
}

// Configure initializes the Sentry SDK when a DSN is set. The returned
// closer flushes buffered events on shutdown.
func (x *Sentry) Configure(version string) (func(), error) {
	if x.dsn == "" {
		return func() {}, nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         x.dsn,
		Environment: x.env,
		Release:     version,
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to initialize sentry")
	}

	logging.Default().Info("Sentry error tracking enabled", "env", x.env)
	return func() {
		sentry.Flush(2 * time.Second)
	}, nil
}
