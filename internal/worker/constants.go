package worker

// LogMsgWorkerJobFailed is logged when a worker fails to process a job
const LogMsgWorkerJobFailed = "Worker job failed"

// Log messages for the maintenance worker
const (
	LogMsgMaintenanceScheduled = "Maintenance sweep scheduled"
	LogMsgMaintenanceStandby   = "Maintenance worker in standby"
	LogMsgMaintenanceStarting  = "Maintenance sweep starting"
	LogMsgMaintenanceCompleted = "Maintenance sweep completed"
	LogMsgMaintenanceFailed    = "Maintenance sweep failed"
)
