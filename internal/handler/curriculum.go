package handler

import (
	"net/http"

	"github.com/dawnfield/StudyQuest_Go/internal/curriculum"
	"github.com/dawnfield/StudyQuest_Go/internal/domain"
)

// CurriculumHandler handles chapter and content HTTP endpoints
type CurriculumHandler struct {
	service curriculum.Service
}

// NewCurriculumHandler creates a new curriculum handler
func NewCurriculumHandler(service curriculum.Service) *CurriculumHandler {
	return &CurriculumHandler{service: service}
}

// CreateChapterRequest is the request body for appending a chapter
type CreateChapterRequest struct {
	UserID      string `json:"user_id" validate:"required,uuid"`
	WorkspaceID string `json:"workspace_id" validate:"required,uuid"`
	Title       string `json:"title" validate:"required,min=1,max=200"`
}

// ForceUnlockRequest is the request body for force-unlocking a chapter
type ForceUnlockRequest struct {
	UserID    string `json:"user_id" validate:"required,uuid"`
	ChapterID string `json:"chapter_id" validate:"required,uuid"`
}

// CreateContentRequest is the request body for adding content to a chapter
type CreateContentRequest struct {
	UserID     string `json:"user_id" validate:"required,uuid"`
	ChapterID  string `json:"chapter_id" validate:"required,uuid"`
	Title      string `json:"title" validate:"required,min=1,max=200"`
	Difficulty string `json:"difficulty" validate:"required,difficulty"`
}

// ToggleContentRequest is the request body for flipping content completion
type ToggleContentRequest struct {
	UserID    string `json:"user_id" validate:"required,uuid"`
	ContentID string `json:"content_id" validate:"required,uuid"`
}

// DeleteContentRequest is the request body for deleting content
type DeleteContentRequest struct {
	UserID    string `json:"user_id" validate:"required,uuid"`
	ContentID string `json:"content_id" validate:"required,uuid"`
}

// HandleCreateChapter appends a chapter to a workspace
func (h *CurriculumHandler) HandleCreateChapter(w http.ResponseWriter, r *http.Request) {
	var req CreateChapterRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create chapter"); err != nil {
		return
	}

	ch, err := h.service.CreateChapter(r.Context(), req.UserID, req.WorkspaceID, req.Title)
	if err != nil {
		respondServiceError(w, r, ErrMsgCreateChapterFailed, err)
		return
	}

	respondJSON(w, http.StatusCreated, ch)
}

// HandleListChapters returns the workspace's chapters in curriculum order
func (h *CurriculumHandler) HandleListChapters(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}
	workspaceID, ok := GetQueryParam(r, w, "workspace_id")
	if !ok {
		return
	}

	chapters, err := h.service.ListChapters(r.Context(), userID, workspaceID)
	if err != nil {
		respondServiceError(w, r, ErrMsgListChaptersFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, chapters)
}

// HandleForceUnlock opens a locked chapter ahead of schedule, activating the
// permanent reward penalty for its content.
func (h *CurriculumHandler) HandleForceUnlock(w http.ResponseWriter, r *http.Request) {
	var req ForceUnlockRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Force unlock chapter"); err != nil {
		return
	}

	ch, err := h.service.ForceUnlockChapter(r.Context(), req.UserID, req.ChapterID)
	if err != nil {
		respondServiceError(w, r, ErrMsgForceUnlockFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, ch)
}

// HandleCreateContent adds a content item to an accessible chapter
func (h *CurriculumHandler) HandleCreateContent(w http.ResponseWriter, r *http.Request) {
	var req CreateContentRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create content"); err != nil {
		return
	}

	c, err := h.service.CreateContent(r.Context(), req.UserID, req.ChapterID, req.Title,
		domain.Difficulty(req.Difficulty))
	if err != nil {
		respondServiceError(w, r, ErrMsgCreateContentFailed, err)
		return
	}

	respondJSON(w, http.StatusCreated, c)
}

// HandleListContents returns the chapter's content items
func (h *CurriculumHandler) HandleListContents(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}
	chapterID, ok := GetQueryParam(r, w, "chapter_id")
	if !ok {
		return
	}

	contents, err := h.service.ListContents(r.Context(), userID, chapterID)
	if err != nil {
		respondServiceError(w, r, ErrMsgListContentsFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, contents)
}

// HandleToggleContent flips a content item's completion state and applies
// the deterministic reward as a gain or loss.
func (h *CurriculumHandler) HandleToggleContent(w http.ResponseWriter, r *http.Request) {
	var req ToggleContentRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Toggle content"); err != nil {
		return
	}

	result, err := h.service.ToggleContent(r.Context(), req.UserID, req.ContentID)
	if err != nil {
		respondServiceError(w, r, ErrMsgToggleContentFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// HandleDeleteContent removes a content item, reversing its reward if done
func (h *CurriculumHandler) HandleDeleteContent(w http.ResponseWriter, r *http.Request) {
	var req DeleteContentRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Delete content"); err != nil {
		return
	}

	if err := h.service.DeleteContent(r.Context(), req.UserID, req.ContentID); err != nil {
		respondServiceError(w, r, ErrMsgDeleteContentFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgContentDeletedSuccess})
}
