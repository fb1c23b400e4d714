package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/steelframe-core/internal/audit"
	"github.com/nerrad567/steelframe-core/internal/building"
	"github.com/nerrad567/steelframe-core/internal/opening"
)

// designResponse is returned by every design read and mutation.
type designResponse struct {
	Revision uint64           `json:"revision"`
	Design   *building.Config `json:"design"`
}

func (s *Server) writeDesign(w http.ResponseWriter, status int) {
	writeJSON(w, status, designResponse{
		Revision: s.store.Revision(),
		Design:   s.store.Snapshot(),
	})
}

// mutated writes the design after a successful mutation, or the mapped error.
func (s *Server) mutated(w http.ResponseWriter, err error, action string) {
	if err != nil {
		s.writeDomainError(w, err, action)
		return
	}
	s.writeDesign(w, http.StatusOK)
}

func (s *Server) handleGetDesign(w http.ResponseWriter, _ *http.Request) {
	s.writeDesign(w, http.StatusOK)
}

// handleReplaceDesign swaps in a whole design. Omitted sections take their
// default values.
func (s *Server) handleReplaceDesign(w http.ResponseWriter, r *http.Request) {
	cfg := building.Default()
	if !decodeJSON(w, r, cfg) {
		return
	}
	if err := s.store.Replace(cfg); err != nil {
		s.writeDomainError(w, err, "replace design")
		return
	}
	s.record(r.Context(), audit.ActionReplace, "", nil)
	s.writeDesign(w, http.StatusOK)
}

func (s *Server) handleSetDimensions(w http.ResponseWriter, r *http.Request) {
	var d building.Dimensions
	if !decodeJSON(w, r, &d) {
		return
	}
	s.mutated(w, s.store.SetDimensions(d), "set dimensions")
}

func (s *Server) handleSetRoof(w http.ResponseWriter, r *http.Request) {
	var roof building.Roof
	if !decodeJSON(w, r, &roof) {
		return
	}
	s.mutated(w, s.store.SetRoof(roof), "set roof")
}

func (s *Server) handleSetOverhang(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Value float64 `json:"value"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	side := building.Side(chi.URLParam(r, "side"))
	s.mutated(w, s.store.SetOverhang(side, body.Value), "set overhang")
}

func (s *Server) handleSetColor(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Value string `json:"value"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	slot := building.ColorSlotName(chi.URLParam(r, "slot"))
	s.mutated(w, s.store.SetColor(slot, body.Value), "set color")
}

func (s *Server) handleSetWalls(w http.ResponseWriter, r *http.Request) {
	var walls building.Walls
	if !decodeJSON(w, r, &walls) {
		return
	}
	s.mutated(w, s.store.SetWalls(walls), "set walls")
}

func (s *Server) handleSetEnclosed(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Enclosed bool `json:"enclosed"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	side := building.Side(chi.URLParam(r, "side"))
	s.mutated(w, s.store.SetEnclosed(side, body.Enclosed), "set enclosure")
}

func (s *Server) handleSetLeanTo(w http.ResponseWriter, r *http.Request) {
	var lt building.LeanTo
	if !decodeJSON(w, r, &lt) {
		return
	}
	side := building.Side(chi.URLParam(r, "side"))
	s.mutated(w, s.store.SetLeanTo(side, lt), "set lean-to")
}

func (s *Server) handleSetEnvironment(w http.ResponseWriter, r *http.Request) {
	var env building.Environment
	if !decodeJSON(w, r, &env) {
		return
	}
	s.mutated(w, s.store.SetEnvironment(env), "set environment")
}

func (s *Server) handleAddLegacyLeanTo(w http.ResponseWriter, r *http.Request) {
	var l building.LegacyLeanTo
	if !decodeJSON(w, r, &l) {
		return
	}
	added, err := s.store.AddLegacyLeanTo(l)
	if err != nil {
		s.writeDomainError(w, err, "add legacy lean-to")
		return
	}
	writeJSON(w, http.StatusCreated, added)
}

func (s *Server) handleUpdateLegacyLeanTo(w http.ResponseWriter, r *http.Request) {
	var l building.LegacyLeanTo
	if !decodeJSON(w, r, &l) {
		return
	}
	l.ID = chi.URLParam(r, "id")
	s.mutated(w, s.store.UpdateLegacyLeanTo(l), "update legacy lean-to")
}

func (s *Server) handleRemoveLegacyLeanTo(w http.ResponseWriter, r *http.Request) {
	if err := s.store.RemoveLegacyLeanTo(chi.URLParam(r, "id")); err != nil {
		s.writeDomainError(w, err, "remove legacy lean-to")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// openingRequest creates an opening. Without a position the opening is
// centered on its wall at the type's default height; zero sizes take the
// type's default size.
type openingRequest struct {
	Type         building.OpeningType `json:"type"`
	Wall         building.Side        `json:"wall"`
	Position     *float64             `json:"position,omitempty"`
	Width        float64              `json:"width,omitempty"`
	Height       float64              `json:"height,omitempty"`
	BottomOffset *float64             `json:"bottom_offset,omitempty"`
}

func (req openingRequest) opening(dims building.Dimensions) building.Opening {
	o := opening.QuickAdd(dims, req.Type, req.Wall, opening.Size{Width: req.Width, Height: req.Height})
	if req.Position != nil {
		o.Position = *req.Position
	}
	if req.BottomOffset != nil {
		o.BottomOffset = *req.BottomOffset
	}
	return o
}

func (s *Server) handleAddOpening(w http.ResponseWriter, r *http.Request) {
	var req openingRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !building.ValidSide(req.Wall) {
		s.writeDomainError(w, fmt.Errorf("%w: %q", building.ErrInvalidSide, req.Wall), "add opening")
		return
	}
	added, err := s.store.AddOpening(req.opening(s.store.Snapshot().Dimensions))
	if err != nil {
		s.writeDomainError(w, err, "add opening")
		return
	}
	writeJSON(w, http.StatusCreated, added)
}

func (s *Server) handleUpdateOpening(w http.ResponseWriter, r *http.Request) {
	var o building.Opening
	if !decodeJSON(w, r, &o) {
		return
	}
	o.ID = chi.URLParam(r, "id")
	updated, err := s.store.UpdateOpening(o)
	if err != nil {
		s.writeDomainError(w, err, "update opening")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleRemoveOpening(w http.ResponseWriter, r *http.Request) {
	if err := s.store.RemoveOpening(chi.URLParam(r, "id")); err != nil {
		s.writeDomainError(w, err, "remove opening")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSetInteraction updates the fields present in the body. An empty
// selected_opening_id clears the selection.
func (s *Server) handleSetInteraction(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PlacementMode     *bool   `json:"placement_mode"`
		SelectedOpeningID *string `json:"selected_opening_id"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.PlacementMode != nil {
		if err := s.store.SetPlacementMode(*body.PlacementMode); err != nil {
			s.writeDomainError(w, err, "set placement mode")
			return
		}
	}
	if body.SelectedOpeningID != nil {
		if err := s.store.SetSelectedOpening(*body.SelectedOpeningID); err != nil {
			s.writeDomainError(w, err, "select opening")
			return
		}
	}
	s.writeDesign(w, http.StatusOK)
}

// handleSetView updates the fields present in the body. Both modes are
// checked before anything is applied.
func (s *Server) handleSetView(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ExpandedPanel  *string                  `json:"expanded_panel"`
		ViewMode       *building.ViewMode       `json:"view_mode"`
		VisibilityMode *building.VisibilityMode `json:"visibility_mode"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	if body.ViewMode != nil && !building.ValidViewMode(*body.ViewMode) {
		s.writeDomainError(w, fmt.Errorf("%w: unknown view mode %q", building.ErrInvalidView, *body.ViewMode), "set view")
		return
	}
	if body.VisibilityMode != nil && !building.ValidVisibilityMode(*body.VisibilityMode) {
		s.writeDomainError(w, fmt.Errorf("%w: unknown visibility mode %q", building.ErrInvalidView, *body.VisibilityMode), "set view")
		return
	}

	var err error
	if body.ExpandedPanel != nil {
		err = s.store.SetExpandedPanel(*body.ExpandedPanel)
	}
	if err == nil && body.ViewMode != nil {
		err = s.store.SetViewMode(*body.ViewMode)
	}
	if err == nil && body.VisibilityMode != nil {
		err = s.store.SetVisibilityMode(*body.VisibilityMode)
	}
	s.mutated(w, err, "set view")
}

func (s *Server) handleResetView(w http.ResponseWriter, _ *http.Request) {
	s.mutated(w, s.store.ResetView(), "reset view")
}
