package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidDateParam  = "Invalid %s date, expected YYYY-MM-DD"

	// User error messages
	ErrMsgRegisterUserFailed = "Failed to register user"
	ErrMsgGetProfileFailed   = "Failed to get profile"

	// Workspace error messages
	ErrMsgCreateWorkspaceFailed = "Failed to create workspace"
	ErrMsgGetWorkspaceFailed    = "Failed to get workspace"
	ErrMsgListWorkspacesFailed  = "Failed to list workspaces"
	ErrMsgDeleteWorkspaceFailed = "Failed to delete workspace"

	// Attendance error messages
	ErrMsgCheckInFailed        = "Failed to check in"
	ErrMsgSaveDraftFailed      = "Failed to save draft"
	ErrMsgDeleteDraftFailed    = "Failed to delete draft"
	ErrMsgRecordAbsenceFailed  = "Failed to record absence"
	ErrMsgListAttendanceFailed = "Failed to list attendance"

	// Curriculum error messages
	ErrMsgCreateChapterFailed = "Failed to create chapter"
	ErrMsgListChaptersFailed  = "Failed to list chapters"
	ErrMsgForceUnlockFailed   = "Failed to force unlock chapter"
	ErrMsgCreateContentFailed = "Failed to create content"
	ErrMsgListContentsFailed  = "Failed to list contents"
	ErrMsgToggleContentFailed = "Failed to toggle content"
	ErrMsgDeleteContentFailed = "Failed to delete content"

	// Task error messages
	ErrMsgCreateTaskFailed = "Failed to create task"
	ErrMsgListTasksFailed  = "Failed to list tasks"
	ErrMsgToggleTaskFailed = "Failed to toggle task"
	ErrMsgDeleteTaskFailed = "Failed to delete task"
)

// Success messages for API responses
const (
	MsgWorkspaceDeletedSuccess = "Workspace deleted successfully"
	MsgDraftDeletedSuccess     = "Draft deleted successfully"
	MsgContentDeletedSuccess   = "Content deleted successfully"
	MsgTaskDeletedSuccess      = "Task deleted successfully"
)
