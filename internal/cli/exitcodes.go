package cli

import (
	"errors"

	"github.com/thenoetrevino/salesboard/internal/models"
	commentservice "github.com/thenoetrevino/salesboard/internal/services/comment"
	requestservice "github.com/thenoetrevino/salesboard/internal/services/request"
	restaurantservice "github.com/thenoetrevino/salesboard/internal/services/restaurant"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneral indicates a general error occurred.
	// Use for: Database errors, network errors, unexpected failures,
	// or any error that doesn't fit the specific categories below.
	ExitGeneral = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: Missing required flags or arguments.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found.
	// Use for: Request, restaurant, comment, profile or assignment not found.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data.
	// Use for: Unreadable stdin or dates that do not parse.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: Invalid status or type values, empty titles, a drop the
	// transition guard rejected.
	ExitValidation = 5

	// ExitConflict indicates the change clashes with current state.
	// Use for: A status edit the workflow forbids, a BDR assigned twice.
	ExitConflict = 6

	// ExitForbidden indicates the identity may not perform the change.
	ExitForbidden = 7
)

// ExitError carries the process exit code for an error already reported
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

var (
	// ErrDataFormat marks input that could not be parsed
	ErrDataFormat = errors.New("invalid data")
	// ErrUsage marks a command invoked the wrong way
	ErrUsage = errors.New("invalid usage")
)

var notFoundErrors = []error{
	models.ErrRequestNotFound,
	models.ErrRestaurantNotFound,
	models.ErrCommentNotFound,
	models.ErrProfileNotFound,
	models.ErrNotAssigned,
}

var conflictErrors = []error{
	models.ErrAlreadyAssigned,
	requestservice.ErrTransitionNotAllowed,
}

var validationErrors = []error{
	requestservice.ErrEmptyTitle,
	requestservice.ErrTitleTooLong,
	requestservice.ErrInvalidRequestID,
	requestservice.ErrInvalidRequestType,
	requestservice.ErrMissingCity,
	requestservice.ErrInvalidStatus,
	requestservice.ErrInvalidUserID,
	requestservice.ErrNegativeVolume,
	requestservice.ErrEmptyPatch,
	requestservice.ErrMissingCreator,
	commentservice.ErrEmptyContent,
	commentservice.ErrContentTooLong,
	commentservice.ErrInvalidRequestID,
	commentservice.ErrInvalidCommentID,
	commentservice.ErrInvalidParent,
	restaurantservice.ErrEmptyName,
	restaurantservice.ErrNameTooLong,
	restaurantservice.ErrInvalidRestaurantID,
	restaurantservice.ErrMissingCity,
	restaurantservice.ErrInvalidStatus,
	restaurantservice.ErrInvalidUserID,
	restaurantservice.ErrInvalidTarget,
	restaurantservice.ErrEmptyPatch,
	restaurantservice.ErrMissingCreator,
	ErrMoveRejected,
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// ExitCodeFor maps an error to the exit code the process should end with
func ExitCodeFor(err error) int {
	var exitErr *ExitError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &exitErr):
		return exitErr.Code
	case errors.Is(err, ErrUsage):
		return ExitUsage
	case errors.Is(err, ErrDataFormat):
		return ExitDataErr
	case isAny(err, notFoundErrors):
		return ExitNotFound
	case isAny(err, conflictErrors):
		return ExitConflict
	case errors.Is(err, commentservice.ErrForbidden):
		return ExitForbidden
	case isAny(err, validationErrors):
		return ExitValidation
	default:
		return ExitGeneral
	}
}

// ErrorCodeName is the machine-readable code used in JSON error output
func ErrorCodeName(code int) string {
	switch code {
	case ExitUsage:
		return "USAGE_ERROR"
	case ExitNotFound:
		return "NOT_FOUND"
	case ExitDataErr:
		return "DATA_ERROR"
	case ExitValidation:
		return "VALIDATION_ERROR"
	case ExitConflict:
		return "CONFLICT"
	case ExitForbidden:
		return "FORBIDDEN"
	default:
		return "ERROR"
	}
}
