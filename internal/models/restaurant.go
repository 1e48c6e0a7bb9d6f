package models

import (
	"time"
	"unicode"
)

// Restaurant is a partner the BDR team onboards. It moves through the same
// statuses as a request.
type Restaurant struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Slug             string     `json:"slug"`
	Description      string     `json:"description,omitempty"`
	Status           Status     `json:"status"`
	CityID           string     `json:"city_id"`
	CityName         string     `json:"city_name,omitempty"`
	CityState        string     `json:"city_state,omitempty"`
	BDRTargetPerWeek int        `json:"bdr_target_per_week"`
	CreatedBy        string     `json:"created_by,omitempty"`
	CreatorName      string     `json:"created_by_name,omitempty"`
	AssignedBDRs     []BDR      `json:"assigned_bdrs"`
	CommentsCount    int        `json:"comments_count"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	DeletedAt        *time.Time `json:"deleted_at,omitempty"`
}

// CityLabel renders "Name, ST" or a placeholder when the city is unknown
func (r Restaurant) CityLabel() string {
	return Request{CityName: r.CityName, CityState: r.CityState}.CityLabel()
}

// IsAssignedTo reports whether userID is one of the restaurant's BDRs
func (r Restaurant) IsAssignedTo(userID string) bool {
	for _, b := range r.AssignedBDRs {
		if b.ID == userID {
			return true
		}
	}
	return false
}

// RestaurantPatch carries a partial edit. Nil fields are left untouched.
type RestaurantPatch struct {
	Name             *string `json:"name,omitempty"`
	Description      *string `json:"description,omitempty"`
	Status           *Status `json:"status,omitempty"`
	CityID           *string `json:"city_id,omitempty"`
	BDRTargetPerWeek *int    `json:"bdr_target_per_week,omitempty"`
}

// Empty reports whether the patch changes nothing
func (p RestaurantPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Status == nil &&
		p.CityID == nil && p.BDRTargetPerWeek == nil
}

// Slugify lowers name and joins its letters and digits with hyphens
func Slugify(name string) string {
	var b []rune
	gap := false
	for _, r := range name {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if gap && len(b) > 0 {
				b = append(b, '-')
			}
			b = append(b, unicode.ToLower(r))
			gap = false
		default:
			gap = true
		}
	}
	return string(b)
}
