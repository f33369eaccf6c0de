package attendance

// CheckInBaseXP is the XP awarded for a confirmed check-in before the
// workspace difficulty multiplier is applied.
const CheckInBaseXP = 50

// Minutes per study hour, used against Workspace.MinStudyHours.
const minutesPerHour = 60

// Log messages
const (
	LogMsgCheckedIn     = "Workspace check-in confirmed"
	LogMsgDraftSaved    = "Attendance draft saved"
	LogMsgDraftDeleted  = "Attendance draft deleted"
	LogMsgAbsenceLogged = "Absence recorded"
)

// Error message formats
const (
	ErrMsgGetWorkspaceFailed   = "failed to get workspace: %w"
	ErrMsgGetDayRecordFailed   = "failed to get day record: %w"
	ErrMsgGetDraftFailed       = "failed to get draft: %w"
	ErrMsgGetLastCheckInFailed = "failed to get last check-in: %w"
)
