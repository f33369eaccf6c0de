package handler

import (
	"net/http"
	"time"

	"github.com/dawnfield/StudyQuest_Go/internal/attendance"
)

// AttendanceHandler handles attendance HTTP endpoints
type AttendanceHandler struct {
	service attendance.Service
}

// NewAttendanceHandler creates a new attendance handler
func NewAttendanceHandler(service attendance.Service) *AttendanceHandler {
	return &AttendanceHandler{service: service}
}

// CheckInRequest is the request body for confirming today's attendance
type CheckInRequest struct {
	UserID      string    `json:"user_id" validate:"required,uuid"`
	WorkspaceID string    `json:"workspace_id" validate:"required,uuid"`
	StartTime   time.Time `json:"start_time" validate:"required"`
	EndTime     time.Time `json:"end_time" validate:"required"`
}

// SaveDraftRequest is the request body for saving today's draft
type SaveDraftRequest struct {
	UserID      string    `json:"user_id" validate:"required,uuid"`
	WorkspaceID string    `json:"workspace_id" validate:"required,uuid"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
}

// DeleteDraftRequest is the request body for deleting today's draft
type DeleteDraftRequest struct {
	UserID      string `json:"user_id" validate:"required,uuid"`
	WorkspaceID string `json:"workspace_id" validate:"required,uuid"`
}

// RecordAbsenceRequest is the request body for logging an absence
type RecordAbsenceRequest struct {
	UserID      string `json:"user_id" validate:"required,uuid"`
	WorkspaceID string `json:"workspace_id" validate:"required,uuid"`
	Reason      string `json:"reason" validate:"required,min=1,max=500"`
}

// HandleCheckIn confirms today's attendance, awarding XP and extending the
// streak in a single transaction.
func (h *AttendanceHandler) HandleCheckIn(w http.ResponseWriter, r *http.Request) {
	var req CheckInRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Check in"); err != nil {
		return
	}

	result, err := h.service.CheckIn(r.Context(), req.UserID, req.WorkspaceID, req.StartTime, req.EndTime)
	if err != nil {
		respondServiceError(w, r, ErrMsgCheckInFailed, err)
		return
	}

	respondJSON(w, http.StatusCreated, result)
}

// HandleSaveDraft creates or replaces today's draft
func (h *AttendanceHandler) HandleSaveDraft(w http.ResponseWriter, r *http.Request) {
	var req SaveDraftRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Save draft"); err != nil {
		return
	}

	draft, err := h.service.SaveDraft(r.Context(), req.UserID, req.WorkspaceID, req.StartTime, req.EndTime)
	if err != nil {
		respondServiceError(w, r, ErrMsgSaveDraftFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, draft)
}

// HandleDeleteDraft removes today's draft
func (h *AttendanceHandler) HandleDeleteDraft(w http.ResponseWriter, r *http.Request) {
	var req DeleteDraftRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Delete draft"); err != nil {
		return
	}

	if err := h.service.DeleteDraft(r.Context(), req.UserID, req.WorkspaceID); err != nil {
		respondServiceError(w, r, ErrMsgDeleteDraftFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgDraftDeletedSuccess})
}

// HandleRecordAbsence logs today's absence with a free-text reason
func (h *AttendanceHandler) HandleRecordAbsence(w http.ResponseWriter, r *http.Request) {
	var req RecordAbsenceRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Record absence"); err != nil {
		return
	}

	att, err := h.service.RecordAbsence(r.Context(), req.UserID, req.WorkspaceID, req.Reason)
	if err != nil {
		respondServiceError(w, r, ErrMsgRecordAbsenceFailed, err)
		return
	}

	respondJSON(w, http.StatusCreated, att)
}

// HandleList returns attendance rows for a date range. Query parameters:
// user_id, workspace_id, from, to (YYYY-MM-DD).
func (h *AttendanceHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}
	workspaceID, ok := GetQueryParam(r, w, "workspace_id")
	if !ok {
		return
	}
	from, ok := GetDateQueryParam(r, w, "from")
	if !ok {
		return
	}
	to, ok := GetDateQueryParam(r, w, "to")
	if !ok {
		return
	}

	records, err := h.service.ListAttendance(r.Context(), userID, workspaceID, from, to)
	if err != nil {
		respondServiceError(w, r, ErrMsgListAttendanceFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, records)
}
