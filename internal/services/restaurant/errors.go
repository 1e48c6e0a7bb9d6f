package restaurant

import "errors"

// Restaurant-related errors. Comment validation and access errors are
// shared with the comment service.
var (
	// Validation errors
	ErrEmptyName           = errors.New("restaurant name cannot be empty")
	ErrNameTooLong         = errors.New("restaurant name cannot exceed 255 characters")
	ErrInvalidRestaurantID = errors.New("invalid restaurant ID")
	ErrMissingCity         = errors.New("restaurant city is required")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrInvalidUserID       = errors.New("invalid user ID")
	ErrInvalidTarget       = errors.New("bdr target per week must be positive")
	ErrEmptyPatch          = errors.New("nothing to update")
	ErrMissingCreator      = errors.New("restaurant creator is required")
)
