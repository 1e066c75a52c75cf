package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/doorstep-hq/doorstep/pkg/domain/model"
)

type actionResultResponse struct {
	Action  string `json:"action"`
	Target  string `json:"target,omitempty"`
	Skipped bool   `json:"skipped,omitempty"`
	Reason  string `json:"reason,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

type executionResponse struct {
	ID           string                `json:"id"`
	AutomationID string                `json:"automation_id"`
	ProjectID    string                `json:"project_id"`
	Trigger      string                `json:"trigger"`
	Status       string                `json:"status"`
	Result       *actionResultResponse `json:"result,omitempty"`
	Error        string                `json:"error,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
}

func renderExecution(entry *model.ExecutionLog) executionResponse {
	resp := executionResponse{
		ID:           entry.ID,
		AutomationID: entry.AutomationID,
		ProjectID:    entry.ProjectID,
		Trigger:      entry.Event.Type.String(),
		Status:       entry.Status.String(),
		Error:        entry.Error,
		CreatedAt:    entry.CreatedAt,
	}
	if entry.Result != nil {
		resp.Result = &actionResultResponse{
			Action:  entry.Result.Action.String(),
			Target:  entry.Result.Target,
			Skipped: entry.Result.Skipped,
			Reason:  entry.Result.Reason,
			Detail:  entry.Result.Detail,
		}
	}
	return resp
}

func (s *Server) listExecutionsHandler(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")

	entries, err := s.uc.Automation.ListExecutions(r.Context(), projectID)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}

	resp := struct {
		Executions []executionResponse `json:"executions"`
	}{
		Executions: make([]executionResponse, len(entries)),
	}
	for i, entry := range entries {
		resp.Executions[i] = renderExecution(entry)
	}

	respondJSON(r.Context(), w, http.StatusOK, resp)
}
