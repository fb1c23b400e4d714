package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nerrad567/steelframe-core/internal/building"
	"github.com/nerrad567/steelframe-core/internal/export"
	"github.com/nerrad567/steelframe-core/internal/opening"
)

// Error represents a structured error response.
type Error struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Common error codes.
const (
	ErrCodeBadRequest  = "bad_request"
	ErrCodeNotFound    = "not_found"
	ErrCodeConflict    = "conflict"
	ErrCodeInternal    = "internal_error"
	ErrCodeValidation  = "validation_error"
	ErrCodeRateLimited = "rate_limited"
	ErrCodeUnavailable = "unavailable"
)

// validationErrors are rejected inputs; the message is safe to return.
var validationErrors = []error{
	building.ErrInvalidDimensions,
	building.ErrInvalidRoof,
	building.ErrInvalidSide,
	building.ErrInvalidColorSlot,
	building.ErrInvalidWalls,
	building.ErrInvalidLeanTo,
	building.ErrInvalidOpening,
	building.ErrInvalidView,
	building.ErrInvalidDesign,
	opening.ErrInvalidViewport,
}

var notFoundErrors = []error{
	building.ErrOpeningNotFound,
	building.ErrLegacyLeanToNotFound,
	building.ErrDesignNotFound,
	opening.ErrNoOpeningAtHit,
}

// dragConflicts are pointer events that do not fit the drag state.
var dragConflicts = []error{
	opening.ErrDragInProgress,
	opening.ErrNotDragging,
	opening.ErrPointerMismatch,
	opening.ErrHitMismatch,
}

// writeJSON writes a JSON response with the given status code and payload.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck // Best-effort write to response; connection may be closed
		json.NewEncoder(w).Encode(v)
	}
}

// writeError writes a structured error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, Error{
		Status:  status,
		Code:    code,
		Message: message,
	})
}

// writeBadRequest writes a 400 error response.
func writeBadRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, ErrCodeBadRequest, message)
}

// writeNotFound writes a 404 error response.
func writeNotFound(w http.ResponseWriter, message string) {
	writeError(w, http.StatusNotFound, ErrCodeNotFound, message)
}

// writeInternalError writes a 500 error response.
func writeInternalError(w http.ResponseWriter, message string) {
	writeError(w, http.StatusInternalServerError, ErrCodeInternal, message)
}

// writeDomainError maps an error from the domain packages to a response.
// Anything unrecognised is a 500 whose detail stays in the log.
func (s *Server) writeDomainError(w http.ResponseWriter, err error, action string) {
	switch {
	case isAny(err, validationErrors):
		writeError(w, http.StatusBadRequest, ErrCodeValidation, err.Error())
	case isAny(err, notFoundErrors):
		writeNotFound(w, err.Error())
	case isAny(err, dragConflicts):
		writeError(w, http.StatusConflict, ErrCodeConflict, err.Error())
	case errors.Is(err, export.ErrNoDesign):
		writeBadRequest(w, err.Error())
	default:
		s.logger.Error("request failed", "action", action, "error", err)
		writeInternalError(w, "failed to "+action)
	}
}

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// decodeJSON decodes the request body into v, rejecting unknown fields.
// It writes a 400 and returns false on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeBadRequest(w, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}
