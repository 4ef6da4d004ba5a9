package handler

// Generic HTTP error messages for client responses.
// These messages do not expose internal error details.
const (
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidQueryParam = "Invalid %s query parameter"

	// Job error messages
	ErrMsgJobNotFoundHTTP = "Job not found"
	ErrMsgJobRunFailed    = "Job tick failed"
)

// User-facing messages derived from domain errors
const (
	ErrMsgGenericServerError    = "Something went wrong"
	ErrMsgUnknownError          = "Unknown error"
	ErrMsgAlreadyHarvestedError = "You already harvested this tile. It resets with the next window."
	ErrMsgOutOfBoundsError      = "Those coordinates are outside the map"
	ErrMsgUnknownResourceError  = "Unknown resource kind"
	ErrMsgPlayerNotFoundError   = "Player not found"
)

// Log messages
const (
	LogMsgHarvestReceived = "Harvest request received"
	LogMsgJobCommand      = "Job command received"
	LogMsgJobRunFailed    = "Manual job tick failed"
	LogMsgReadinessFailed = "Readiness check failed"
)
