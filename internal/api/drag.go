package api

import (
	"net/http"

	"github.com/nerrad567/steelframe-core/internal/building"
	"github.com/nerrad567/steelframe-core/internal/opening"
)

// dragResponse reports the drag state after a pointer event.
type dragResponse struct {
	State           opening.State     `json:"state"`
	OrbitEnabled    bool              `json:"orbit_enabled"`
	CapturedPointer *int              `json:"captured_pointer,omitempty"`
	Opening         *building.Opening `json:"opening,omitempty"`
}

// dragDownRequest is a pointer-down at a point on a wall plane. The drag
// starts only when the point is over an opening; opening_id, when given,
// must name that opening.
type dragDownRequest struct {
	Hit       opening.Hit       `json:"hit"`
	OpeningID string            `json:"opening_id,omitempty"`
	Pointer   opening.Pointer   `json:"pointer"`
	Viewport  *opening.Viewport `json:"viewport,omitempty"`
}

type pointerRequest struct {
	Pointer opening.Pointer `json:"pointer"`
}

func (s *Server) writeDrag(w http.ResponseWriter, o *building.Opening) {
	resp := dragResponse{
		State:        s.drag.State(),
		OrbitEnabled: s.orbit.Load(),
		Opening:      o,
	}
	if id := s.captured.Load(); id != noPointer {
		p := int(id)
		resp.CapturedPointer = &p
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDragState(w http.ResponseWriter, _ *http.Request) {
	s.writeDrag(w, nil)
}

// handleDragDown starts a drag. A viewport in the body replaces the one
// used to scale pointer movement.
func (s *Server) handleDragDown(w http.ResponseWriter, r *http.Request) {
	var req dragDownRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Viewport != nil {
		if err := s.drag.SetViewport(*req.Viewport); err != nil {
			s.writeDomainError(w, err, "set viewport")
			return
		}
	}
	o, err := s.drag.PointerDown(req.Hit, req.OpeningID, req.Pointer)
	if err != nil {
		s.writeDomainError(w, err, "start drag")
		return
	}
	s.writeDrag(w, &o)
}

func (s *Server) handleDragMove(w http.ResponseWriter, r *http.Request) {
	var req pointerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	o, err := s.drag.PointerMove(req.Pointer)
	if err != nil {
		s.writeDomainError(w, err, "move opening")
		return
	}
	s.writeDrag(w, &o)
}

func (s *Server) handleDragUp(w http.ResponseWriter, r *http.Request) {
	s.endDrag(w, r, s.drag.PointerUp)
}

func (s *Server) handleDragLeave(w http.ResponseWriter, r *http.Request) {
	s.endDrag(w, r, s.drag.PointerLeave)
}

func (s *Server) endDrag(w http.ResponseWriter, r *http.Request, end func(opening.Pointer) error) {
	var req pointerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := end(req.Pointer); err != nil {
		s.writeDomainError(w, err, "end drag")
		return
	}
	s.writeDrag(w, nil)
}
