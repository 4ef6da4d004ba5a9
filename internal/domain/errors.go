package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	ErrMsgAlreadyHarvested   = "tile already harvested in this reset window"
	ErrMsgInvalidCoordinates = "coordinates out of map bounds"
	ErrMsgInvalidResource    = "invalid resource kind"
	ErrMsgPlayerNotFound     = "player not found"
	ErrMsgJobNotFound        = "job not found"
	ErrMsgInvalidEligibility = "invalid eligibility predicate"
	ErrMsgInvalidInput       = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrAlreadyHarvested   = errors.New(ErrMsgAlreadyHarvested)
	ErrInvalidCoordinates = errors.New(ErrMsgInvalidCoordinates)
	ErrInvalidResource    = errors.New(ErrMsgInvalidResource)
	ErrPlayerNotFound     = errors.New(ErrMsgPlayerNotFound)
	ErrJobNotFound        = errors.New(ErrMsgJobNotFound)
	ErrInvalidEligibility = errors.New(ErrMsgInvalidEligibility)
	ErrInvalidInput       = errors.New(ErrMsgInvalidInput)
)
