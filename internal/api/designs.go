package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/steelframe-core/internal/audit"
	"github.com/nerrad567/steelframe-core/internal/building"
)

// requireDesigns answers 503 when no repository is configured.
func (s *Server) requireDesigns(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.designs == nil {
			writeError(w, http.StatusServiceUnavailable, ErrCodeUnavailable, "design storage is not configured")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleListDesigns(w http.ResponseWriter, r *http.Request) {
	designs, err := s.designs.List(r.Context())
	if err != nil {
		s.writeDomainError(w, err, "list designs")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"designs": designs, "count": len(designs)})
}

// handleSaveDesign stores the current design under a name. Passing the ID
// of an existing design overwrites it.
func (s *Server) handleSaveDesign(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID   string `json:"id,omitempty"`
		Name string `json:"name"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	d := &building.Design{
		ID:     body.ID,
		Name:   body.Name,
		Config: s.store.Snapshot(),
	}
	if err := s.designs.Save(r.Context(), d); err != nil {
		s.writeDomainError(w, err, "save design")
		return
	}
	s.logger.Info("design saved", "id", d.ID, "name", d.Name)
	s.record(r.Context(), audit.ActionSave, d.ID, map[string]any{"name": d.Name})
	writeJSON(w, http.StatusCreated, d)
}

func (s *Server) handleGetSavedDesign(w http.ResponseWriter, r *http.Request) {
	d, err := s.designs.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeDomainError(w, err, "get design")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleDeleteSavedDesign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.designs.Delete(r.Context(), id); err != nil {
		s.writeDomainError(w, err, "delete design")
		return
	}
	s.record(r.Context(), audit.ActionDelete, id, nil)
	w.WriteHeader(http.StatusNoContent)
}

// handleLoadDesign replaces the current design with a saved one.
func (s *Server) handleLoadDesign(w http.ResponseWriter, r *http.Request) {
	d, err := s.designs.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeDomainError(w, err, "load design")
		return
	}
	if err := s.store.Replace(d.Config); err != nil {
		s.writeDomainError(w, err, "load design")
		return
	}
	s.logger.Info("design loaded", "id", d.ID, "name", d.Name)
	s.record(r.Context(), audit.ActionLoad, d.ID, map[string]any{"name": d.Name})
	s.writeDesign(w, http.StatusOK)
}
