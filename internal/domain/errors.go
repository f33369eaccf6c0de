package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// User errors
	ErrMsgUserNotFound  = "user not found"
	ErrMsgUsernameTaken = "username already taken"

	// Workspace errors
	ErrMsgWorkspaceNotFound = "workspace not found"
	ErrMsgNotWorkspaceOwner = "workspace belongs to another user"

	// Attendance errors
	ErrMsgAlreadyCheckedIn   = "already checked in today"
	ErrMsgSessionTooShort    = "session shorter than minimum study time"
	ErrMsgAttendanceNotFound = "attendance not found"
	ErrMsgNotADraft          = "attendance is not a draft"

	// Curriculum errors
	ErrMsgChapterNotFound = "chapter not found"
	ErrMsgChapterLocked   = "chapter is locked"
	ErrMsgContentNotFound = "content not found"

	// Task errors
	ErrMsgTaskNotFound = "task not found"

	// Validation errors
	ErrMsgInvalidDifficulty = "invalid difficulty"
	ErrMsgInvalidInput      = "invalid input"

	// Database/System errors
	ErrMsgDatabaseError = "database error"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// User errors
	ErrUserNotFound  = errors.New(ErrMsgUserNotFound)
	ErrUsernameTaken = errors.New(ErrMsgUsernameTaken)

	// Workspace errors
	ErrWorkspaceNotFound = errors.New(ErrMsgWorkspaceNotFound)
	ErrNotWorkspaceOwner = errors.New(ErrMsgNotWorkspaceOwner)

	// Attendance errors
	ErrAlreadyCheckedIn   = errors.New(ErrMsgAlreadyCheckedIn)
	ErrSessionTooShort    = errors.New(ErrMsgSessionTooShort)
	ErrAttendanceNotFound = errors.New(ErrMsgAttendanceNotFound)
	ErrNotADraft          = errors.New(ErrMsgNotADraft)

	// Curriculum errors
	ErrChapterNotFound = errors.New(ErrMsgChapterNotFound)
	ErrChapterLocked   = errors.New(ErrMsgChapterLocked)
	ErrContentNotFound = errors.New(ErrMsgContentNotFound)

	// Task errors
	ErrTaskNotFound = errors.New(ErrMsgTaskNotFound)

	// Validation errors
	ErrInvalidDifficulty = errors.New(ErrMsgInvalidDifficulty)
	ErrInvalidInput      = errors.New(ErrMsgInvalidInput)
)
