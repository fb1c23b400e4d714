package opening

import "errors"

// Domain errors for the opening package.
var (
	// ErrDragInProgress is returned when a pointer-down arrives while another drag is active.
	ErrDragInProgress = errors.New("opening: drag already in progress")

	// ErrNotDragging is returned when a pointer-move arrives with no active drag.
	ErrNotDragging = errors.New("opening: no drag in progress")

	// ErrPointerMismatch is returned when a pointer other than the captured one moves.
	ErrPointerMismatch = errors.New("opening: pointer is not the captured pointer")

	// ErrNoOpeningAtHit is returned when a pointer-down misses every opening on the wall.
	ErrNoOpeningAtHit = errors.New("opening: no opening at pointer")

	// ErrHitMismatch is returned when the opening under the pointer is not the one named.
	ErrHitMismatch = errors.New("opening: pointer is over a different opening")

	// ErrInvalidViewport is returned when the viewport has a non-positive size.
	ErrInvalidViewport = errors.New("opening: invalid viewport")
)
