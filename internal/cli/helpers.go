package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/thenoetrevino/salesboard/internal/models"
	requestservice "github.com/thenoetrevino/salesboard/internal/services/request"
)

// ParseDate accepts YYYY-MM-DD or RFC 3339. An empty value yields nil.
func ParseDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrDataFormat, raw)
}

// ParseRequestType accepts a request type in any case
func ParseRequestType(raw string) (models.RequestType, error) {
	t := models.RequestType(strings.ToUpper(strings.TrimSpace(raw)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", requestservice.ErrInvalidRequestType, raw)
	}
	return t, nil
}

// ParseStatus accepts a board status by value or label
func ParseStatus(raw string) (models.Status, error) {
	s, ok := models.ParseStatus(raw)
	if !ok {
		return "", fmt.Errorf("%w: %q", requestservice.ErrInvalidStatus, raw)
	}
	return s, nil
}

// ReadText returns value, or all of stdin when value is "-"
func ReadText(value string, stdin io.Reader) (string, error) {
	if value != "-" {
		return value, nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read stdin: %v", ErrDataFormat, err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

// StatusNames lists the accepted status values for suggestions
func StatusNames() string {
	names := make([]string, len(models.BoardStatuses))
	for i, s := range models.BoardStatuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// TypeNames lists the accepted request types for suggestions
func TypeNames() string {
	names := make([]string, len(models.RequestTypes))
	for i, t := range models.RequestTypes {
		names[i] = strings.ToLower(string(t))
	}
	return strings.Join(names, ", ")
}
