package worker

// ============================================================================
// Log Messages - Runner
// ============================================================================

const (
	LogMsgJobStarted       = "Job started"
	LogMsgJobStopped       = "Job stopped"
	LogMsgJobTickStarted   = "Job tick started"
	LogMsgJobTickCompleted = "Job tick completed"
	LogMsgJobTickFailed    = "Job tick failed"
	LogMsgJobShuttingDown  = "Shutting down job"
	LogMsgJobShutdownDone  = "Job shutdown complete"
	LogMsgJobShutdownSlow  = "Job shutdown timeout, tick may still be running"
	LogMsgJobItemFailed    = "Job item failed, skipping"
)

// ============================================================================
// Start/Stop results
// ============================================================================

const (
	MsgJobStarted        = "job started"
	MsgJobStopped        = "job stopped"
	MsgJobAlreadyRunning = "job is already running"
	MsgJobNotRunning     = "job is not running"
	MsgJobRanOnce        = "job tick completed"
)
