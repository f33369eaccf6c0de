package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dawnfield/StudyQuest_Go/internal/domain"
	"github.com/dawnfield/StudyQuest_Go/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	// Encode to the buffer first; headers are already sent if this fails.
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a failed service call and writes the mapped
// user-facing error response.
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	logger.FromContext(r.Context()).Error(opName, "error", err)
	status, msg := mapServiceErrorToUserMessage(err)
	respondError(w, status, msg)
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidInputError   = "Invalid request. Please check your inputs."
	ErrMsgAuthFailedError     = "Authentication failed. Please check your API key."
	ErrMsgResourceNotFoundErr = "Resource not found."

	ErrMsgUserNotFoundError       = "User not found"
	ErrMsgUsernameTakenError      = "That username is already taken"
	ErrMsgWorkspaceNotFoundError  = "Workspace not found"
	ErrMsgNotWorkspaceOwnerError  = "You do not own that workspace"
	ErrMsgAlreadyCheckedInError   = "Attendance is already recorded for today"
	ErrMsgSessionTooShortError    = "Session is shorter than the workspace minimum"
	ErrMsgAttendanceNotFoundError = "Attendance record not found"
	ErrMsgNotADraftError          = "That attendance record is not a draft"
	ErrMsgChapterNotFoundError    = "Chapter not found"
	ErrMsgChapterLockedError      = "Chapter is locked. Finish the previous chapter or force-unlock it"
	ErrMsgContentNotFoundError    = "Content not found"
	ErrMsgTaskNotFoundError       = "Task not found"
	ErrMsgInvalidDifficultyError  = "Invalid difficulty. Valid options: easy, normal, hard"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP
// responses. Internal error details never reach the client.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrMsgUserNotFoundError
	case errors.Is(err, domain.ErrUsernameTaken):
		return http.StatusConflict, ErrMsgUsernameTakenError
	case errors.Is(err, domain.ErrWorkspaceNotFound):
		return http.StatusNotFound, ErrMsgWorkspaceNotFoundError
	case errors.Is(err, domain.ErrNotWorkspaceOwner):
		return http.StatusForbidden, ErrMsgNotWorkspaceOwnerError
	case errors.Is(err, domain.ErrAlreadyCheckedIn):
		return http.StatusConflict, ErrMsgAlreadyCheckedInError
	case errors.Is(err, domain.ErrSessionTooShort):
		return http.StatusBadRequest, ErrMsgSessionTooShortError
	case errors.Is(err, domain.ErrAttendanceNotFound):
		return http.StatusNotFound, ErrMsgAttendanceNotFoundError
	case errors.Is(err, domain.ErrNotADraft):
		return http.StatusBadRequest, ErrMsgNotADraftError
	case errors.Is(err, domain.ErrChapterNotFound):
		return http.StatusNotFound, ErrMsgChapterNotFoundError
	case errors.Is(err, domain.ErrChapterLocked):
		return http.StatusForbidden, ErrMsgChapterLockedError
	case errors.Is(err, domain.ErrContentNotFound):
		return http.StatusNotFound, ErrMsgContentNotFoundError
	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound, ErrMsgTaskNotFoundError
	case errors.Is(err, domain.ErrInvalidDifficulty):
		return http.StatusBadRequest, ErrMsgInvalidDifficultyError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
