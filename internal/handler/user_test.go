package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/dawnfield/StudyQuest_Go/internal/domain"
	"github.com/dawnfield/StudyQuest_Go/internal/level"
	"github.com/dawnfield/StudyQuest_Go/internal/user"
)

// MockUserService mocks the user.Service interface
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) RegisterUser(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetProfile(ctx context.Context, userID string) (*user.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.Profile), args.Error(1)
}

func (m *MockUserService) GetProfileByUsername(ctx context.Context, username string) (*user.Profile, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.Profile), args.Error(1)
}

func TestHandleRegisterUser(t *testing.T) {
	InitValidator()

	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*MockUserService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "Success - New User",
			requestBody: RegisterUserRequest{Username: "newuser"},
			setupMock: func(m *MockUserService) {
				m.On("RegisterUser", mock.Anything, "newuser").
					Return(&domain.User{ID: "new-id", Username: "newuser"}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"username":"newuser"`,
		},
		{
			name:           "Invalid Request - Missing Username",
			requestBody:    RegisterUserRequest{},
			setupMock:      func(m *MockUserService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequestSummary,
		},
		{
			name:        "Conflict - Username Taken",
			requestBody: RegisterUserRequest{Username: "dupe"},
			setupMock: func(m *MockUserService) {
				m.On("RegisterUser", mock.Anything, "dupe").
					Return(nil, domain.ErrUsernameTaken)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   ErrMsgUsernameTakenError,
		},
		{
			name:        "Service Error - Register Failed",
			requestBody: RegisterUserRequest{Username: "erroruser"},
			setupMock: func(m *MockUserService) {
				m.On("RegisterUser", mock.Anything, "erroruser").
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   ErrMsgGenericServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := &MockUserService{}
			tt.setupMock(mockSvc)

			handler := HandleRegisterUser(mockSvc)

			body, _ := json.Marshal(tt.requestBody)
			req := httptest.NewRequest("POST", "/user/register", bytes.NewBuffer(body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, w.Body.String(), tt.expectedBody)
			}
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestHandleGetProfile(t *testing.T) {
	profile := &user.Profile{
		User:  domain.User{ID: "user-1", Username: "ada", TotalXP: 1000},
		Level: level.FromXP(1000),
	}

	t.Run("By User ID", func(t *testing.T) {
		mockSvc := &MockUserService{}
		mockSvc.On("GetProfile", mock.Anything, "user-1").Return(profile, nil)

		req := httptest.NewRequest("GET", "/user/profile?user_id=user-1", nil)
		w := httptest.NewRecorder()

		HandleGetProfile(mockSvc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"username":"ada"`)
		mockSvc.AssertExpectations(t)
	})

	t.Run("By Username", func(t *testing.T) {
		mockSvc := &MockUserService{}
		mockSvc.On("GetProfileByUsername", mock.Anything, "ada").Return(profile, nil)

		req := httptest.NewRequest("GET", "/user/profile?username=ada", nil)
		w := httptest.NewRecorder()

		HandleGetProfile(mockSvc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("Missing Identifier", func(t *testing.T) {
		mockSvc := &MockUserService{}

		req := httptest.NewRequest("GET", "/user/profile", nil)
		w := httptest.NewRecorder()

		HandleGetProfile(mockSvc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("User Not Found", func(t *testing.T) {
		mockSvc := &MockUserService{}
		mockSvc.On("GetProfile", mock.Anything, "ghost").Return(nil, domain.ErrUserNotFound)

		req := httptest.NewRequest("GET", "/user/profile?user_id=ghost", nil)
		w := httptest.NewRecorder()

		HandleGetProfile(mockSvc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgUserNotFoundError)
		mockSvc.AssertExpectations(t)
	})
}
