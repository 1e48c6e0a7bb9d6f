package request

import "errors"

// Request-related errors
var (
	// Validation errors
	ErrEmptyTitle         = errors.New("request title cannot be empty")
	ErrTitleTooLong       = errors.New("request title cannot exceed 255 characters")
	ErrInvalidRequestID   = errors.New("invalid request ID")
	ErrInvalidRequestType = errors.New("invalid request type: must be RESTAURANT, EVENT or CUISINE")
	ErrMissingCity        = errors.New("request city is required")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidUserID      = errors.New("invalid user ID")
	ErrNegativeVolume     = errors.New("volume cannot be negative")
	ErrEmptyPatch         = errors.New("nothing to update")
	ErrMissingCreator     = errors.New("request creator is required")

	// Business logic errors
	ErrTransitionNotAllowed = errors.New("status transition not allowed")
)
