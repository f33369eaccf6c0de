package handler

import (
	"net/http"

	"github.com/dawnfield/StudyQuest_Go/internal/domain"
	"github.com/dawnfield/StudyQuest_Go/internal/task"
)

// TaskHandler handles personal task HTTP endpoints
type TaskHandler struct {
	service task.Service
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(service task.Service) *TaskHandler {
	return &TaskHandler{service: service}
}

// CreateTaskRequest is the request body for creating a task
type CreateTaskRequest struct {
	UserID      string `json:"user_id" validate:"required,uuid"`
	WorkspaceID string `json:"workspace_id" validate:"required,uuid"`
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Difficulty  string `json:"difficulty" validate:"required,difficulty"`
}

// ToggleTaskRequest is the request body for flipping task completion
type ToggleTaskRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
	TaskID string `json:"task_id" validate:"required,uuid"`
}

// DeleteTaskRequest is the request body for deleting a task
type DeleteTaskRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
	TaskID string `json:"task_id" validate:"required,uuid"`
}

// ToggleTaskResponse is the response for a task toggle
type ToggleTaskResponse struct {
	Task domain.Task     `json:"task"`
	XP   domain.XPResult `json:"xp"`
}

// HandleCreate adds a task with its reward frozen from the difficulty
func (h *TaskHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create task"); err != nil {
		return
	}

	t, err := h.service.CreateTask(r.Context(), req.UserID, req.WorkspaceID, req.Title,
		domain.Difficulty(req.Difficulty))
	if err != nil {
		respondServiceError(w, r, ErrMsgCreateTaskFailed, err)
		return
	}

	respondJSON(w, http.StatusCreated, t)
}

// HandleList returns the workspace's tasks
func (h *TaskHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}
	workspaceID, ok := GetQueryParam(r, w, "workspace_id")
	if !ok {
		return
	}

	tasks, err := h.service.ListTasks(r.Context(), userID, workspaceID)
	if err != nil {
		respondServiceError(w, r, ErrMsgListTasksFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, tasks)
}

// HandleToggle flips a task's completion state
func (h *TaskHandler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	var req ToggleTaskRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Toggle task"); err != nil {
		return
	}

	t, xpResult, err := h.service.ToggleTask(r.Context(), req.UserID, req.TaskID)
	if err != nil {
		respondServiceError(w, r, ErrMsgToggleTaskFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, ToggleTaskResponse{Task: *t, XP: *xpResult})
}

// HandleDelete removes a task, reversing its reward if done
func (h *TaskHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	var req DeleteTaskRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Delete task"); err != nil {
		return
	}

	if err := h.service.DeleteTask(r.Context(), req.UserID, req.TaskID); err != nil {
		respondServiceError(w, r, ErrMsgDeleteTaskFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgTaskDeletedSuccess})
}
