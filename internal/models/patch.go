package models

import "time"

// RequestPatch carries a partial edit. Nil fields are left untouched.
type RequestPatch struct {
	Title        *string      `json:"title,omitempty"`
	Description  *string      `json:"description,omitempty"`
	RequestType  *RequestType `json:"request_type,omitempty"`
	Status       *Status      `json:"status,omitempty"`
	CityID       *string      `json:"city_id,omitempty"`
	RequesterID  *string      `json:"requester_id,omitempty"`
	Company      *string      `json:"company,omitempty"`
	Volume       *int         `json:"volume,omitempty"`
	NeedAnswerBy *time.Time   `json:"need_answer_by,omitempty"`
	DeliveryDate *time.Time   `json:"delivery_date,omitempty"`
}

// Empty reports whether the patch changes nothing
func (p RequestPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.RequestType == nil &&
		p.Status == nil && p.CityID == nil && p.RequesterID == nil &&
		p.Company == nil && p.Volume == nil && p.NeedAnswerBy == nil &&
		p.DeliveryDate == nil
}
