package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/thenoetrevino/salesboard/internal/models"
	commentservice "github.com/thenoetrevino/salesboard/internal/services/comment"
	requestservice "github.com/thenoetrevino/salesboard/internal/services/request"
	restaurantservice "github.com/thenoetrevino/salesboard/internal/services/restaurant"
)

// ProblemContentType is the media type of every error response
const ProblemContentType = "application/problem+json"

// ProblemDetail implements RFC 7807 (Problem Details for HTTP APIs).
type ProblemDetail struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

// Error implements the error interface.
func (p *ProblemDetail) Error() string {
	if p.Detail == "" {
		return p.Title
	}
	return fmt.Sprintf("%s: %s", p.Title, p.Detail)
}

// writeProblem writes an RFC 7807 response for r
func writeProblem(w http.ResponseWriter, r *http.Request, status int, detail string) {
	problem := &ProblemDetail{
		Type:     "about:blank",
		Title:    http.StatusText(status),
		Status:   status,
		Detail:   detail,
		Instance: r.URL.Path,
	}

	w.Header().Set("Content-Type", ProblemContentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(problem)
}

func writeUnauthorized(w http.ResponseWriter, r *http.Request, detail string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="salesboard"`)
	writeProblem(w, r, http.StatusUnauthorized, detail)
}

func writeTooManyRequests(w http.ResponseWriter, r *http.Request, retryAfterSecs int) {
	w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfterSecs))
	writeProblem(w, r, http.StatusTooManyRequests, "Rate limit exceeded. Retry after the specified interval.")
}

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
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// statusFor maps a service error to an HTTP status
func statusFor(err error) int {
	switch {
	case isAny(err, notFoundErrors):
		return http.StatusNotFound
	case isAny(err, conflictErrors):
		return http.StatusConflict
	case errors.Is(err, commentservice.ErrForbidden):
		return http.StatusForbidden
	case isAny(err, validationErrors):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError writes err as a problem document. Internal errors are logged
// and never exposed to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error("internal server error", "path", r.URL.Path, "error", err)
		writeProblem(w, r, status, "An unexpected error occurred. Please try again later.")
		return
	}
	writeProblem(w, r, status, err.Error())
}
