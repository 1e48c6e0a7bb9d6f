package board

import (
	"sort"
	"strings"
	"time"

	"github.com/thenoetrevino/salesboard/internal/models"
)

// SortField names the attribute a filtered list is ordered by
type SortField string

const (
	SortCreatedAt SortField = "created_at"
	SortUpdatedAt SortField = "updated_at"
	SortTitle     SortField = "title"
	SortCompany   SortField = "company"
	SortVolume    SortField = "volume"
)

// ParseSortField accepts the field names above, falling back to created_at
func ParseSortField(raw string) SortField {
	switch SortField(strings.ToLower(strings.TrimSpace(raw))) {
	case SortUpdatedAt:
		return SortUpdatedAt
	case SortTitle:
		return SortTitle
	case SortCompany:
		return SortCompany
	case SortVolume:
		return SortVolume
	default:
		return SortCreatedAt
	}
}

// Filter narrows and orders a list of requests for the list views.
// Zero values mean "no constraint"; the zero Filter sorts newest first.
type Filter struct {
	Search    string
	Types     []models.RequestType
	Statuses  []models.Status
	DateFrom  *time.Time
	DateTo    *time.Time
	SortBy    SortField
	Ascending bool
}

// Apply returns the matching requests in sorted order. The input is untouched.
func (f Filter) Apply(requests []models.Request) []models.Request {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]models.Request, 0, len(requests))
	for _, r := range requests {
		if search != "" && !matchesSearch(r, search) {
			continue
		}
		if len(f.Types) > 0 && !containsType(f.Types, r.RequestType) {
			continue
		}
		if len(f.Statuses) > 0 && !containsStatus(f.Statuses, r.Status) {
			continue
		}
		if f.DateFrom != nil && r.CreatedAt.Before(*f.DateFrom) {
			continue
		}
		if f.DateTo != nil && r.CreatedAt.After(*f.DateTo) {
			continue
		}
		out = append(out, r)
	}

	less := f.comparator()
	sort.SliceStable(out, func(i, j int) bool {
		c := less(out[i], out[j])
		if f.Ascending {
			return c < 0
		}
		return c > 0
	})
	return out
}

func (f Filter) comparator() func(a, b models.Request) int {
	switch f.SortBy {
	case SortUpdatedAt:
		return func(a, b models.Request) int {
			return a.UpdatedOrCreated().Compare(b.UpdatedOrCreated())
		}
	case SortTitle:
		return func(a, b models.Request) int {
			return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		}
	case SortCompany:
		return func(a, b models.Request) int {
			return strings.Compare(strings.ToLower(a.Company), strings.ToLower(b.Company))
		}
	case SortVolume:
		return func(a, b models.Request) int {
			return volumeOf(a) - volumeOf(b)
		}
	default:
		return func(a, b models.Request) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		}
	}
}

func matchesSearch(r models.Request, needle string) bool {
	return strings.Contains(strings.ToLower(r.Title), needle) ||
		strings.Contains(strings.ToLower(r.Company), needle) ||
		strings.Contains(strings.ToLower(r.RequesterName), needle)
}

func containsType(types []models.RequestType, t models.RequestType) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}

func containsStatus(statuses []models.Status, s models.Status) bool {
	for _, candidate := range statuses {
		if candidate == s {
			return true
		}
	}
	return false
}

func volumeOf(r models.Request) int {
	if r.Volume == nil {
		return 0
	}
	return *r.Volume
}
