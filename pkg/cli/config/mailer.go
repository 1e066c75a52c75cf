package config

import (
	"log/slog"
	"net"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/doorstep-hq/doorstep/pkg/domain/interfaces"
	"github.com/doorstep-hq/doorstep/pkg/service/mailer"
	"github.com/doorstep-hq/doorstep/pkg/utils/logging"
)

// Mailer holds CLI flags for outbound mail configuration
type Mailer struct {
	backend  string
	addr     string
	from     string
	username string
	password string
}

// Flags returns CLI flags for mailer configuration
func (x *Mailer) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "mail-backend",
			Usage:       "Mail backend type (smtp or log)",
			Category:    "Mail",
			Value:       "log",
			Sources:     cli.EnvVars("DOORSTEP_MAIL_BACKEND"),
			Destination: &x.backend,
		},
		&cli.StringFlag{
			Name:        "smtp-addr",
			Usage:       "SMTP server address as host:port (required when using smtp backend)",
			Category:    "Mail",
			Sources:     cli.EnvVars("DOORSTEP_SMTP_ADDR"),
			Destination: &x.addr,
		},
		&cli.StringFlag{
			Name:        "mail-from",
			Usage:       "Sender address for outbound mail",
			Category:    "Mail",
			Sources:     cli.EnvVars("DOORSTEP_MAIL_FROM"),
			Destination: &x.from,
		},
		&cli.StringFlag{
			Name:        "smtp-username",
			Usage:       "SMTP username (enables PLAIN auth together with smtp-password)",
			Category:    "Mail",
			Sources:     cli.EnvVars("DOORSTEP_SMTP_USERNAME"),
			Destination: &x.username,
		},
		&cli.StringFlag{
			Name:        "smtp-password",
			Usage:       "SMTP password",
			Category:    "Mail",
			Sources:     cli.EnvVars("DOORSTEP_SMTP_PASSWORD"),
			Destination: &x.password,
		},
	}
}

func (x Mailer) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("backend", x.backend),
		slog.String("addr", x.addr),
		slog.String("from", x.from),
		slog.Int("password.len", len(x.password)),
	)
}

// Configure returns a mailer for the configured backend
func (x *Mailer) Configure() (interfaces.Mailer, error) {
	switch x.backend {
	case "smtp":
		var opts []mailer.Option
		if x.username != "" {
			host, err := smtpHost(x.addr)
			if err != nil {
				return nil, err
			}
			opts = append(opts, mailer.WithAuth(x.username, x.password, host))
		}
		m, err := mailer.NewSMTP(x.addr, x.from, opts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize smtp mailer")
		}
		logging.Default().Info("Using SMTP mailer", "addr", x.addr, "from", x.from)
		return m, nil

	case "log":
		logging.Default().Info("Using log mailer (mail is not delivered)")
		return mailer.NewLog(), nil

	default:
		return nil, goerr.New("invalid mail backend", goerr.V("backend", x.backend))
	}
}

// smtpHost extracts the host part of addr for PLAIN auth
func smtpHost(addr string) (string, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return "", goerr.Wrap(err, "invalid smtp-addr, expected host:port", goerr.V("addr", addr))
	}
	return host, nil
}
