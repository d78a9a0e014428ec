package worker

// LogMsgWorkerJobFailed is logged when a worker fails to process a job
const LogMsgWorkerJobFailed = "Worker job failed"

// Log messages for game tick jobs
const (
	LogMsgHuntCycleCompleted = "Hunt cycle completed by tick"
	LogMsgAutosaveSkipped    = "Autosave skipped, no repository configured"
	LogMsgAutosaveCompleted  = "Autosave completed"
)

// Job names used by the scheduler for logging
const (
	JobNameHuntTick    = "hunt_tick"
	JobNameAccrualTick = "accrual_tick"
	JobNameCheckpoint  = "checkpoint"
	JobNameAutosave    = "autosave"
	JobNameLogCleanup  = "event_log_cleanup"
)
