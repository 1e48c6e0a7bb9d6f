package models

import "time"

// RequestType classifies what the account manager is asking for
type RequestType string

const (
	RequestTypeRestaurant RequestType = "RESTAURANT"
	RequestTypeEvent      RequestType = "EVENT"
	RequestTypeCuisine    RequestType = "CUISINE"
)

// RequestTypes lists the accepted request types in display order
var RequestTypes = []RequestType{RequestTypeRestaurant, RequestTypeEvent, RequestTypeCuisine}

// Valid reports whether t is a known request type
func (t RequestType) Valid() bool {
	for _, known := range RequestTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Request is a single intake ask tracked on the board.
// Only ID and Status matter to ordering; everything else is payload.
type Request struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	Description     string      `json:"description,omitempty"`
	RequestType     RequestType `json:"request_type"`
	Status          Status      `json:"status"`
	CityID          string      `json:"city_id"`
	CityName        string      `json:"city_name,omitempty"`
	CityState       string      `json:"city_state,omitempty"`
	RequesterID     string      `json:"requester_id,omitempty"`
	RequesterName   string      `json:"requester_name,omitempty"`
	CreatedBy       string      `json:"created_by,omitempty"`
	CreatorName     string      `json:"creator_name,omitempty"`
	Company         string      `json:"company,omitempty"`
	Volume          *int        `json:"volume,omitempty"`
	NeedAnswerBy    *time.Time  `json:"need_answer_by,omitempty"`
	DeliveryDate    *time.Time  `json:"delivery_date,omitempty"`
	CreatedOnBehalf bool        `json:"created_on_behalf"`
	AssignedBDRs    []BDR       `json:"assigned_bdrs,omitempty"`
	CommentsCount   int         `json:"comments_count"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// CityLabel renders "Name, ST" or a placeholder when the city is unknown
func (r Request) CityLabel() string {
	if r.CityName == "" {
		return "Unassigned city"
	}
	if r.CityState == "" {
		return r.CityName
	}
	return r.CityName + ", " + r.CityState
}

// UpdatedOrCreated falls back to CreatedAt for rows that were never edited
func (r Request) UpdatedOrCreated() time.Time {
	if r.UpdatedAt.IsZero() {
		return r.CreatedAt
	}
	return r.UpdatedAt
}

// IsAssignedTo reports whether userID is one of the request's BDRs
func (r Request) IsAssignedTo(userID string) bool {
	for _, b := range r.AssignedBDRs {
		if b.ID == userID {
			return true
		}
	}
	return false
}

// BDR is a business development representative assigned to a request
type BDR struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// City is a market an account manager covers
type City struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StateCode string `json:"state_code"`
}

// TeamMember is a profile that can be assigned or mentioned
type TeamMember struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email,omitempty"`
}

// Viewer identifies who is asking for data; admins see everything
type Viewer struct {
	UserID       string
	IsSuperAdmin bool
}
