package handler

import (
	"net/http"

	"github.com/dawnfield/StudyQuest_Go/internal/domain"
	"github.com/dawnfield/StudyQuest_Go/internal/logger"
	"github.com/dawnfield/StudyQuest_Go/internal/workspace"
)

// WorkspaceHandler handles workspace HTTP endpoints
type WorkspaceHandler struct {
	service workspace.Service
}

// NewWorkspaceHandler creates a new workspace handler
func NewWorkspaceHandler(service workspace.Service) *WorkspaceHandler {
	return &WorkspaceHandler{service: service}
}

// CreateWorkspaceRequest is the request body for creating a workspace
type CreateWorkspaceRequest struct {
	UserID        string  `json:"user_id" validate:"required,uuid"`
	Name          string  `json:"name" validate:"required,min=1,max=100"`
	Difficulty    string  `json:"difficulty" validate:"required,difficulty"`
	MinStudyHours float64 `json:"min_study_hours" validate:"gte=0"`
}

// DeleteWorkspaceRequest is the request body for deleting a workspace
type DeleteWorkspaceRequest struct {
	UserID      string `json:"user_id" validate:"required,uuid"`
	WorkspaceID string `json:"workspace_id" validate:"required,uuid"`
}

// HandleCreate handles workspace creation requests
func (h *WorkspaceHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateWorkspaceRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create workspace"); err != nil {
		return
	}

	ws, err := h.service.CreateWorkspace(r.Context(), req.UserID, req.Name,
		domain.Difficulty(req.Difficulty), req.MinStudyHours)
	if err != nil {
		respondServiceError(w, r, ErrMsgCreateWorkspaceFailed, err)
		return
	}

	respondJSON(w, http.StatusCreated, ws)
}

// HandleGet returns one workspace with capacity context
func (h *WorkspaceHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}
	workspaceID, ok := GetQueryParam(r, w, "workspace_id")
	if !ok {
		return
	}

	summary, err := h.service.GetWorkspace(r.Context(), userID, workspaceID)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetWorkspaceFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// HandleList returns all of the user's workspaces
func (h *WorkspaceHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}

	summaries, err := h.service.ListWorkspaces(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, ErrMsgListWorkspacesFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, summaries)
}

// HandleDelete removes a workspace and everything in it
func (h *WorkspaceHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	var req DeleteWorkspaceRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Delete workspace"); err != nil {
		return
	}

	if err := h.service.DeleteWorkspace(r.Context(), req.UserID, req.WorkspaceID); err != nil {
		respondServiceError(w, r, ErrMsgDeleteWorkspaceFailed, err)
		return
	}

	logger.FromContext(r.Context()).Info("Workspace deleted via API", "workspace_id", req.WorkspaceID)
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgWorkspaceDeletedSuccess})
}
