package api

import (
	"net/http"
	"strconv"
)

// handleGetGeometry derives the scene of the current design. The visibility
// mode filters it unless ?all=true asks for every layer.
func (s *Server) handleGetGeometry(w http.ResponseWriter, r *http.Request) {
	all, _ := strconv.ParseBool(r.URL.Query().Get("all")) //nolint:errcheck // Anything unparsable means false
	cfg := s.store.Snapshot()
	if all {
		writeJSON(w, http.StatusOK, s.builder.BuildAll(cfg))
		return
	}
	writeJSON(w, http.StatusOK, s.builder.Build(cfg))
}
