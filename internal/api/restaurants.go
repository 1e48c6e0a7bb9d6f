package api

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/thenoetrevino/salesboard/internal/models"
	restaurantservice "github.com/thenoetrevino/salesboard/internal/services/restaurant"
)

type restaurantList struct {
	Restaurants []models.Restaurant `json:"restaurants"`
}

type createRestaurantBody struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	CityID           string `json:"city_id"`
	BDRTargetPerWeek int    `json:"bdr_target_per_week"`
	AssignedBDRID    string `json:"assigned_bdr_id"`
}

type editCommentBody struct {
	Content string `json:"content"`
}

// parseRestaurantFilter reads q, status and city. status accepts repeated or
// comma-separated values.
func parseRestaurantFilter(q url.Values) (restaurantservice.Filter, error) {
	f := restaurantservice.Filter{Search: q.Get("q"), CityID: q.Get("city")}
	for _, raw := range splitValues(q["status"]) {
		s, ok := models.ParseStatus(raw)
		if !ok {
			return f, fmt.Errorf("%w: %q", restaurantservice.ErrInvalidStatus, raw)
		}
		f.Statuses = append(f.Statuses, s)
	}
	return f, nil
}

func (s *Server) handleListRestaurants(w http.ResponseWriter, r *http.Request) {
	filter, err := parseRestaurantFilter(r.URL.Query())
	if err != nil {
		writeProblem(w, r, http.StatusBadRequest, err.Error())
		return
	}

	restaurants, err := s.app.RestaurantService.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, restaurantList{Restaurants: restaurants})
}

func (s *Server) handleGetRestaurant(w http.ResponseWriter, r *http.Request) {
	restaurant, err := s.app.RestaurantService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, restaurant)
}

func (s *Server) handleCreateRestaurant(w http.ResponseWriter, r *http.Request) {
	viewer, _ := ViewerFrom(r.Context())

	var body createRestaurantBody
	if !decodeJSON(w, r, &body) {
		return
	}

	created, err := s.app.RestaurantService.Create(r.Context(), restaurantservice.CreateRestaurant{
		Name:             body.Name,
		Description:      body.Description,
		CityID:           body.CityID,
		CreatedBy:        viewer.UserID,
		BDRTargetPerWeek: body.BDRTargetPerWeek,
		AssignedBDRID:    body.AssignedBDRID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/restaurants/"+created.ID)
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateRestaurant(w http.ResponseWriter, r *http.Request) {
	var patch models.RestaurantPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	updated, err := s.app.RestaurantService.Update(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteRestaurant(w http.ResponseWriter, r *http.Request) {
	if err := s.app.RestaurantService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAssignRestaurant(w http.ResponseWriter, r *http.Request) {
	var body assignBody
	if !decodeJSON(w, r, &body) {
		return
	}

	if err := s.app.RestaurantService.AssignBDR(r.Context(), r.PathValue("id"), body.UserID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUnassignRestaurant(w http.ResponseWriter, r *http.Request) {
	err := s.app.RestaurantService.UnassignBDR(r.Context(), r.PathValue("id"), r.PathValue("userID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListRestaurantComments(w http.ResponseWriter, r *http.Request) {
	comments, err := s.app.RestaurantService.ListComments(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, commentList{Comments: comments})
}

func (s *Server) handleCreateRestaurantComment(w http.ResponseWriter, r *http.Request) {
	viewer, _ := ViewerFrom(r.Context())

	var body createCommentBody
	if !decodeJSON(w, r, &body) {
		return
	}

	c, err := s.app.RestaurantService.AddComment(r.Context(), viewer, restaurantservice.AddComment{
		RestaurantID:    r.PathValue("id"),
		ParentCommentID: body.ParentCommentID,
		Content:         body.Content,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// restaurantComment loads {commentID} and writes 404 unless it belongs to {id}
func (s *Server) restaurantComment(w http.ResponseWriter, r *http.Request) (string, bool) {
	commentID := r.PathValue("commentID")
	c, err := s.app.Repo().GetRestaurantComment(r.Context(), commentID)
	if err != nil {
		writeError(w, r, err)
		return "", false
	}
	if c.RestaurantID != r.PathValue("id") {
		writeProblem(w, r, http.StatusNotFound, fmt.Sprintf("comment %s: %s", commentID, models.ErrCommentNotFound))
		return "", false
	}
	return commentID, true
}

func (s *Server) handleEditRestaurantComment(w http.ResponseWriter, r *http.Request) {
	viewer, _ := ViewerFrom(r.Context())

	commentID, ok := s.restaurantComment(w, r)
	if !ok {
		return
	}
	var body editCommentBody
	if !decodeJSON(w, r, &body) {
		return
	}

	c, err := s.app.RestaurantService.EditComment(r.Context(), viewer, commentID, body.Content)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleDeleteRestaurantComment(w http.ResponseWriter, r *http.Request) {
	viewer, _ := ViewerFrom(r.Context())

	commentID, ok := s.restaurantComment(w, r)
	if !ok {
		return
	}
	if err := s.app.RestaurantService.DeleteComment(r.Context(), viewer, commentID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
