package comment

import "errors"

// Comment-related errors
var (
	// Validation errors
	ErrEmptyContent     = errors.New("comment cannot be empty")
	ErrContentTooLong   = errors.New("comment cannot exceed 2000 characters")
	ErrInvalidRequestID = errors.New("invalid request ID")
	ErrInvalidCommentID = errors.New("invalid comment ID")
	ErrInvalidParent    = errors.New("parent comment belongs to another request")

	// Access errors
	ErrForbidden = errors.New("not allowed to change this comment")
)
