package api

import (
	"net/http"

	"github.com/thenoetrevino/salesboard/internal/models"
	commentservice "github.com/thenoetrevino/salesboard/internal/services/comment"
)

type commentList struct {
	Comments []*models.Comment `json:"comments"`
}

type createCommentBody struct {
	Content         string `json:"content"`
	ParentCommentID string `json:"parent_comment_id"`
}

func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request) {
	viewer, _ := ViewerFrom(r.Context())

	comments, err := s.app.CommentService.List(r.Context(), viewer, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, commentList{Comments: comments})
}

func (s *Server) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	viewer, _ := ViewerFrom(r.Context())

	var body createCommentBody
	if !decodeJSON(w, r, &body) {
		return
	}

	c, err := s.app.CommentService.Create(r.Context(), viewer, commentservice.CreateCommentRequest{
		RequestID:       r.PathValue("id"),
		ParentCommentID: body.ParentCommentID,
		Content:         body.Content,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	viewer, _ := ViewerFrom(r.Context())

	if err := s.app.CommentService.Delete(r.Context(), viewer, r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
