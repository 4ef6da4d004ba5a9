package domain

import "time"

// JobRunState is a snapshot of a periodic job's execution statistics
type JobRunState struct {
	LastRun                *time.Time `json:"last_run"`
	NextRun                *time.Time `json:"next_run"`
	ExecutionCount         int64      `json:"execution_count"`
	ErrorCount             int64      `json:"error_count"`
	ItemsProcessed         int64      `json:"items_processed"`
	TotalUnitsChanged      int64      `json:"total_units_changed"`
	AverageExecutionTimeMs float64    `json:"average_execution_time_ms"`
	IntervalMs             int64      `json:"interval_ms"`
	Running                bool       `json:"running"`
}

// JobInfo describes a registered job
type JobInfo struct {
	Name       string      `json:"name"`
	IntervalMs int64       `json:"interval_ms"`
	IsRunning  bool        `json:"is_running"`
	Stats      JobRunState `json:"stats"`
}

// JobResult is the soft outcome of a start/stop request
type JobResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
