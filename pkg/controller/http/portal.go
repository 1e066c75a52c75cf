package http

import (
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/doorstep-hq/doorstep/pkg/domain/model"
	"github.com/doorstep-hq/doorstep/pkg/usecase"
)

type taskResponse struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"project_id"`
	StageID     string     `json:"stage_id,omitempty"`
	Title       string     `json:"title"`
	Status      string     `json:"status"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CompletedBy string     `json:"completed_by,omitempty"`
}

func renderTask(task *model.Task) taskResponse {
	return taskResponse{
		ID:          task.ID,
		ProjectID:   task.ProjectID,
		StageID:     task.StageID,
		Title:       task.Title,
		Status:      task.Status.String(),
		CompletedAt: task.CompletedAt,
		CompletedBy: task.CompletedBy,
	}
}

type signatureResponse struct {
	ID         string     `json:"id"`
	ProjectID  string     `json:"project_id"`
	TaskID     string     `json:"task_id,omitempty"`
	Title      string     `json:"title"`
	Status     string     `json:"status"`
	SignerName string     `json:"signer_name,omitempty"`
	Method     string     `json:"method,omitempty"`
	SignedAt   *time.Time `json:"signed_at,omitempty"`
}

func renderSignature(signature *model.Signature) signatureResponse {
	resp := signatureResponse{
		ID:         signature.ID,
		ProjectID:  signature.ProjectID,
		TaskID:     signature.TaskID,
		Title:      signature.Title,
		Status:     signature.Status.String(),
		SignerName: signature.SignerName,
		SignedAt:   signature.SignedAt,
	}
	if signature.Method != "" {
		resp.Method = signature.Method.String()
	}
	return resp
}

func (s *Server) completeTaskHandler(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "taskID")

	var req struct {
		ProjectID   string `json:"project_id"`
		CompletedBy string `json:"completed_by"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(r.Context(), w, goerr.Wrap(err, "invalid request body"))
		return
	}
	if req.ProjectID == "" {
		respondError(r.Context(), w, goerr.New("project_id is required"))
		return
	}

	task, err := s.uc.Task.CompleteTask(r.Context(), req.ProjectID, taskID, req.CompletedBy)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusOK, renderTask(task))
}

func (s *Server) fileUploadedHandler(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "taskID")

	var req struct {
		ProjectID string `json:"project_id"`
		FileID    string `json:"file_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(r.Context(), w, goerr.Wrap(err, "invalid request body"))
		return
	}
	if req.ProjectID == "" || req.FileID == "" {
		respondError(r.Context(), w, goerr.New("project_id and file_id are required"))
		return
	}

	if err := s.uc.Task.NotifyFileUploaded(r.Context(), req.ProjectID, taskID, req.FileID); err != nil {
		respondError(r.Context(), w, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

func (s *Server) viewSignatureHandler(w http.ResponseWriter, r *http.Request) {
	signatureID := chi.URLParam(r, "signatureID")

	signature, err := s.uc.Signature.MarkViewed(r.Context(), signatureID)
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusOK, renderSignature(signature))
}

func (s *Server) signHandler(w http.ResponseWriter, r *http.Request) {
	signatureID := chi.URLParam(r, "signatureID")

	var req struct {
		SignerName     string `json:"signer_name"`
		SignerEmail    string `json:"signer_email"`
		SignerTitle    string `json:"signer_title"`
		SignerCompany  string `json:"signer_company"`
		SignerInitials string `json:"signer_initials"`
		SignatureImage string `json:"signature_image"`
		TypedName      string `json:"typed_name"`
		Consent        bool   `json:"consent"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(r.Context(), w, goerr.Wrap(err, "invalid request body"))
		return
	}

	signature, err := s.uc.Signature.Sign(r.Context(), signatureID, usecase.SignInput{
		SignerName:     req.SignerName,
		SignerEmail:    req.SignerEmail,
		SignerTitle:    req.SignerTitle,
		SignerCompany:  req.SignerCompany,
		SignerInitials: req.SignerInitials,
		SignatureImage: req.SignatureImage,
		TypedName:      req.TypedName,
		Consent:        req.Consent,
		IPAddress:      remoteIP(r),
		UserAgent:      r.UserAgent(),
	})
	if err != nil {
		respondError(r.Context(), w, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusOK, renderSignature(signature))
}

// remoteIP extracts the caller address without the port
func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
