package handler

import (
	"net/http"

	"github.com/dawnfield/StudyQuest_Go/internal/logger"
	"github.com/dawnfield/StudyQuest_Go/internal/user"
)

// RegisterUserRequest represents the request to register a new user.
type RegisterUserRequest struct {
	Username string `json:"username" validate:"required,min=1,max=50"`
}

// HandleRegisterUser handles user registration.
func HandleRegisterUser(userService user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req RegisterUserRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Register user"); err != nil {
			return
		}

		created, err := userService.RegisterUser(r.Context(), req.Username)
		if err != nil {
			respondServiceError(w, r, ErrMsgRegisterUserFailed, err)
			return
		}

		log.Info("User registered successfully", "user_id", created.ID, "username", created.Username)
		respondJSON(w, http.StatusCreated, created)
	}
}

// HandleGetProfile returns a user profile with level-curve context. Accepts
// either a user_id or a username query parameter.
func HandleGetProfile(userService user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("user_id")
		username := r.URL.Query().Get("username")

		var (
			profile *user.Profile
			err     error
		)
		switch {
		case userID != "":
			profile, err = userService.GetProfile(r.Context(), userID)
		case username != "":
			profile, err = userService.GetProfileByUsername(r.Context(), username)
		default:
			http.Error(w, "Missing user_id or username query parameter", http.StatusBadRequest)
			return
		}
		if err != nil {
			respondServiceError(w, r, ErrMsgGetProfileFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, profile)
	}
}
