package api

import (
	"net/http"

	"github.com/thenoetrevino/salesboard/internal/board"
	"github.com/thenoetrevino/salesboard/internal/report"
)

// handleReport returns the markdown report over what the viewer can see
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	viewer, _ := ViewerFrom(r.Context())

	requests, err := s.app.RequestService.List(r.Context(), viewer, board.Filter{})
	if err != nil {
		writeError(w, r, err)
		return
	}

	summary := report.Build(requests, s.opts.Now(), s.opts.StaleAfterDays)
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(report.Markdown(summary)))
}
