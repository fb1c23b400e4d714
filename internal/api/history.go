package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/nerrad567/steelframe-core/internal/audit"
)

// record stores a history entry for a whole-design operation. Failures are
// logged; the operation itself has already succeeded.
func (s *Server) record(ctx context.Context, action, designID string, details map[string]any) {
	if s.history == nil {
		return
	}
	err := s.history.Create(ctx, &audit.Entry{
		Action:   action,
		DesignID: designID,
		Source:   audit.SourceAPI,
		Revision: s.store.Revision(),
		Details:  details,
	})
	if err != nil {
		s.logger.Warn("recording design history failed", "action", action, "error", err)
	}
}

// handleListHistory returns history entries, newest first. Query parameters:
// action, design_id, limit, offset.
func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeError(w, http.StatusServiceUnavailable, ErrCodeUnavailable, "design history is not configured")
		return
	}

	q := r.URL.Query()
	filter := audit.Filter{
		Action:   q.Get("action"),
		DesignID: q.Get("design_id"),
	}
	var err error
	if v := q.Get("limit"); v != "" {
		if filter.Limit, err = strconv.Atoi(v); err != nil {
			writeBadRequest(w, "limit must be an integer")
			return
		}
	}
	if v := q.Get("offset"); v != "" {
		if filter.Offset, err = strconv.Atoi(v); err != nil {
			writeBadRequest(w, "offset must be an integer")
			return
		}
	}

	res, err := s.history.List(r.Context(), filter)
	if err != nil {
		s.writeDomainError(w, err, "list history")
		return
	}
	writeJSON(w, http.StatusOK, res)
}
