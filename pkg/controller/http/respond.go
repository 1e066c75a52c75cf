package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"

	"github.com/doorstep-hq/doorstep/pkg/usecase"
	"github.com/doorstep-hq/doorstep/pkg/utils/errutil"
)

func respondJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data) //nolint:errcheck // header already committed
}

// respondError maps use case sentinel errors to HTTP status codes
func respondError(ctx context.Context, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, usecase.ErrProjectNotFound),
		errors.Is(err, usecase.ErrTaskNotFound),
		errors.Is(err, usecase.ErrStageNotFound),
		errors.Is(err, usecase.ErrSignatureNotFound):
		status = http.StatusNotFound

	case errors.Is(err, usecase.ErrTaskAlreadyCompleted),
		errors.Is(err, usecase.ErrSignatureFinalized):
		status = http.StatusConflict

	case errors.Is(err, usecase.ErrConsentRequired),
		errors.Is(err, usecase.ErrSignerNameRequired),
		errors.Is(err, usecase.ErrInvalidSignaturePayload),
		errors.Is(err, usecase.ErrInvalidProjectStatus):
		status = http.StatusBadRequest
	}

	errutil.HandleHTTP(ctx, w, err, status)
}
