package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/thenoetrevino/salesboard/internal/board"
	"github.com/thenoetrevino/salesboard/internal/models"
	requestservice "github.com/thenoetrevino/salesboard/internal/services/request"
)

// requestList is the body of GET /api/requests
type requestList struct {
	Requests []models.Request `json:"requests"`
}

// createRequestBody is the body of POST /api/requests
type createRequestBody struct {
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	RequestType  models.RequestType `json:"request_type"`
	Status       models.Status      `json:"status"`
	CityID       string             `json:"city_id"`
	RequesterID  string             `json:"requester_id"`
	Company      string             `json:"company"`
	Volume       *int               `json:"volume"`
	NeedAnswerBy *time.Time         `json:"need_answer_by"`
	DeliveryDate *time.Time         `json:"delivery_date"`
}

type statusBody struct {
	Status models.Status `json:"status"`
}

type assignBody struct {
	UserID string `json:"user_id"`
}

// ParseFilter reads list filters from query parameters: q, type, status,
// from, to (YYYY-MM-DD or RFC 3339), sort and dir (asc|desc). type and
// status accept repeated or comma-separated values.
func ParseFilter(q url.Values) (board.Filter, error) {
	f := board.Filter{
		Search:    q.Get("q"),
		SortBy:    board.ParseSortField(q.Get("sort")),
		Ascending: strings.EqualFold(q.Get("dir"), "asc"),
	}

	for _, raw := range splitValues(q["type"]) {
		t := models.RequestType(strings.ToUpper(raw))
		if !t.Valid() {
			return f, fmt.Errorf("%w: %q", requestservice.ErrInvalidRequestType, raw)
		}
		f.Types = append(f.Types, t)
	}
	for _, raw := range splitValues(q["status"]) {
		s, ok := models.ParseStatus(raw)
		if !ok {
			return f, fmt.Errorf("%w: %q", requestservice.ErrInvalidStatus, raw)
		}
		f.Statuses = append(f.Statuses, s)
	}

	var err error
	if f.DateFrom, err = parseDate(q.Get("from"), false); err != nil {
		return f, err
	}
	if f.DateTo, err = parseDate(q.Get("to"), true); err != nil {
		return f, err
	}
	return f, nil
}

func splitValues(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// parseDate accepts a day or a timestamp. A bare day used as an upper bound
// covers the whole day.
func parseDate(raw string, endOfDay bool) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or RFC 3339", raw)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

func (s *Server) handleListRequests(w http.ResponseWriter, r *http.Request) {
	viewer, _ := ViewerFrom(r.Context())

	filter, err := ParseFilter(r.URL.Query())
	if err != nil {
		writeProblem(w, r, http.StatusBadRequest, err.Error())
		return
	}

	requests, err := s.app.RequestService.List(r.Context(), viewer, filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, requestList{Requests: requests})
}

// canSee mirrors the list scope: admins see everything, others see what they
// created, asked for or are assigned to
func (s *Server) canSee(ctx context.Context, viewer models.Viewer, req *models.Request) (bool, error) {
	if viewer.IsSuperAdmin {
		return true, nil
	}
	if req.CreatedBy == viewer.UserID || req.RequesterID == viewer.UserID || req.IsAssignedTo(viewer.UserID) {
		return true, nil
	}
	return s.app.Repo().IsAdmin(ctx, viewer.UserID)
}

// loadVisible fetches {id} and writes 404 when it is missing or hidden
func (s *Server) loadVisible(w http.ResponseWriter, r *http.Request) (*models.Request, bool) {
	viewer, _ := ViewerFrom(r.Context())
	id := r.PathValue("id")

	req, err := s.app.RequestService.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return nil, false
	}
	ok, err := s.canSee(r.Context(), viewer, req)
	if err != nil {
		writeError(w, r, err)
		return nil, false
	}
	if !ok {
		writeProblem(w, r, http.StatusNotFound, fmt.Sprintf("request %s: %s", id, models.ErrRequestNotFound))
		return nil, false
	}
	return req, true
}

func (s *Server) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	req, ok := s.loadVisible(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (s *Server) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	viewer, _ := ViewerFrom(r.Context())

	var body createRequestBody
	if !decodeJSON(w, r, &body) {
		return
	}

	created, err := s.app.RequestService.Create(r.Context(), requestservice.CreateRequest{
		Title:        body.Title,
		Description:  body.Description,
		RequestType:  models.RequestType(strings.ToUpper(string(body.RequestType))),
		Status:       body.Status,
		CityID:       body.CityID,
		CreatedBy:    viewer.UserID,
		RequesterID:  body.RequesterID,
		Company:      body.Company,
		Volume:       body.Volume,
		NeedAnswerBy: body.NeedAnswerBy,
		DeliveryDate: body.DeliveryDate,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/requests/"+created.ID)
	writeJSON(w, http.StatusCreated, created)
}

// handleUpdateRequest is the board write path: a status in the patch is
// stored without consulting the workflow table
func (s *Server) handleUpdateRequest(w http.ResponseWriter, r *http.Request) {
	req, ok := s.loadVisible(w, r)
	if !ok {
		return
	}

	var patch models.RequestPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	updated, err := s.app.RequestService.Update(r.Context(), req.ID, patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleChangeStatus(w http.ResponseWriter, r *http.Request) {
	req, ok := s.loadVisible(w, r)
	if !ok {
		return
	}

	var body statusBody
	if !decodeJSON(w, r, &body) {
		return
	}

	updated, err := s.app.RequestService.ChangeStatus(r.Context(), req.ID, body.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleAssign(w http.ResponseWriter, r *http.Request) {
	req, ok := s.loadVisible(w, r)
	if !ok {
		return
	}

	var body assignBody
	if !decodeJSON(w, r, &body) {
		return
	}

	if err := s.app.RequestService.AssignBDR(r.Context(), req.ID, body.UserID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUnassign(w http.ResponseWriter, r *http.Request) {
	req, ok := s.loadVisible(w, r)
	if !ok {
		return
	}

	if err := s.app.RequestService.UnassignBDR(r.Context(), req.ID, r.PathValue("userID")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
