package errutil

import (
	"context"
	"errors"
	"net/http"

	"github.com/doorstep-hq/doorstep/pkg/utils/logging"
	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
)

// Handle logs the error with a message and forwards it to Sentry when the
// SDK is initialized. It returns the error as-is so callers can keep their
// own control flow.
func Handle(ctx context.Context, err error, msg string) error {
	if err == nil {
		return nil
	}

	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error(msg,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error(msg, "error", err.Error())
	}

	if hub := sentry.CurrentHub(); hub.Client() != nil {
		hub.CaptureException(err)
	}

	return err
}

// HandleHTTP logs the error and writes an HTTP error response.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error, statusCode int) {
	if err == nil {
		return
	}

	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error("HTTP error",
			"status", statusCode,
			"error", err.Error(),
			"values", ge.Values(),
		)
	} else {
		logger.Error("HTTP error",
			"status", statusCode,
			"error", err.Error(),
		)
	}

	if statusCode >= http.StatusInternalServerError {
		if hub := sentry.CurrentHub(); hub.Client() != nil {
			hub.CaptureException(err)
		}
	}

	http.Error(w, err.Error(), statusCode)
}
