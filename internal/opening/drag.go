package opening

import (
	"fmt"
	"sync"

	"github.com/nerrad567/steelframe-core/internal/building"
)

// dragGain doubles the pointer-to-wall scale so an opening crosses the whole
// wall in half the viewport.
const dragGain = 2.0

// State is the drag state.
type State string

const (
	StateIdle     State = "idle"
	StateDragging State = "dragging"
)

// Pointer is one pointer event in viewport pixels.
type Pointer struct {
	ID int     `json:"pointer_id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Hit is where a pointer-down lands on a wall plane: S along the wall's
// span axis from position 0, Y up from the floor.
type Hit struct {
	Wall building.Side `json:"wall"`
	S    float64       `json:"s"`
	Y    float64       `json:"y"`
}

// Viewport is the size of the view the pointer moves in.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// CameraControl is the external camera controller. Orbit input is
// suspended for the whole drag.
type CameraControl interface {
	SetOrbitEnabled(enabled bool)
}

// PointerCapturer grants exclusive delivery of one pointer's events.
type PointerCapturer interface {
	Capture(pointerID int)
	Release(pointerID int)
}

// Store is the subset of building.Store the controller mutates through.
type Store interface {
	Snapshot() *building.Config
	UpdateOpening(o building.Opening) (building.Opening, error)
	SetSelectedOpening(id string) error
	SetDragging(on bool) error
}

// Logger defines the logging interface used by the Controller.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

type noopCamera struct{}

func (noopCamera) SetOrbitEnabled(bool) {}

type noopCapture struct{}

func (noopCapture) Capture(int) {}
func (noopCapture) Release(int) {}

// dragStart is recorded on pointer-down. Every move is computed from it and
// the total pointer delta, so moves never accumulate rounding.
type dragStart struct {
	openingID string
	pointerID int
	position  float64
	bottom    float64
	x, y      float64
}

// Controller runs the Idle → Dragging → Idle state machine for one pointer
// at a time.
//
// All public methods are thread-safe.
type Controller struct {
	mu       sync.Mutex
	state    State
	start    dragStart
	viewport Viewport

	store   Store
	camera  CameraControl
	capture PointerCapturer
	logger  Logger
}

// NewController creates an idle controller. Nil collaborators are replaced
// with no-ops.
func NewController(store Store, camera CameraControl, capture PointerCapturer, viewport Viewport) *Controller {
	if camera == nil {
		camera = noopCamera{}
	}
	if capture == nil {
		capture = noopCapture{}
	}
	return &Controller{
		state:    StateIdle,
		viewport: viewport,
		store:    store,
		camera:   camera,
		capture:  capture,
		logger:   noopLogger{},
	}
}

// SetLogger sets the logger for the controller.
func (c *Controller) SetLogger(logger Logger) {
	c.logger = logger
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetViewport updates the viewport used to scale pointer deltas.
func (c *Controller) SetViewport(v Viewport) error {
	if v.Width <= 0 || v.Height <= 0 {
		return ErrInvalidViewport
	}
	c.mu.Lock()
	c.viewport = v
	c.mu.Unlock()
	return nil
}

// PointerDown starts a drag when hit lands on an opening: the pointer is
// captured, the opening selected, the dragging flag raised and orbit input
// suspended. A non-empty openingID must name the opening under the hit.
// The returned opening is the one being dragged.
func (c *Controller) PointerDown(hit Hit, openingID string, p Pointer) (building.Opening, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateDragging {
		return building.Opening{}, ErrDragInProgress
	}
	if c.viewport.Width <= 0 || c.viewport.Height <= 0 {
		return building.Opening{}, ErrInvalidViewport
	}
	if !building.ValidSide(hit.Wall) {
		return building.Opening{}, fmt.Errorf("%w: %q", building.ErrInvalidSide, hit.Wall)
	}
	o, ok := HitTest(c.store.Snapshot(), hit.Wall, hit.S, hit.Y)
	if !ok {
		return building.Opening{}, ErrNoOpeningAtHit
	}
	if openingID != "" && openingID != o.ID {
		return building.Opening{}, ErrHitMismatch
	}

	if err := c.store.SetSelectedOpening(o.ID); err != nil {
		return building.Opening{}, fmt.Errorf("selecting opening: %w", err)
	}
	if err := c.store.SetDragging(true); err != nil {
		return building.Opening{}, fmt.Errorf("setting dragging flag: %w", err)
	}
	c.capture.Capture(p.ID)
	c.camera.SetOrbitEnabled(false)

	c.start = dragStart{
		openingID: o.ID,
		pointerID: p.ID,
		position:  o.Position,
		bottom:    o.BottomOffset,
		x:         p.X,
		y:         p.Y,
	}
	c.state = StateDragging
	c.logger.Debug("opening drag started", "opening_id", o.ID, "pointer_id", p.ID)
	return o, nil
}

// PointerMove moves the dragged opening by the pointer's total delta since
// pointer-down and returns the clamped result.
//
//	Δposition = Δx · (wallLength / viewportWidth) · 2   (negated on north and west)
//	Δbottom   = −Δy · (14 / viewportHeight) · 2         (windows only)
func (c *Controller) PointerMove(p Pointer) (building.Opening, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateDragging {
		return building.Opening{}, ErrNotDragging
	}
	if p.ID != c.start.pointerID {
		return building.Opening{}, ErrPointerMismatch
	}

	cfg := c.store.Snapshot()
	o, ok := cfg.OpeningByID(c.start.openingID)
	if !ok {
		// Removed mid-drag; end the drag rather than leave the camera locked.
		c.endLocked()
		return building.Opening{}, building.ErrOpeningNotFound
	}

	o.Position = c.start.position + PositionDelta(o.Wall, cfg.Dimensions, p.X-c.start.x, c.viewport.Width)
	if o.Type.IsWindow() {
		o.BottomOffset = c.start.bottom + BottomDelta(p.Y-c.start.y, c.viewport.Height)
	}
	return c.store.UpdateOpening(o)
}

// PositionDelta converts a horizontal pointer delta to a change in position
// along the wall. North and west walls run opposite to the screen axis.
func PositionDelta(wall building.Side, dims building.Dimensions, dx, viewportWidth float64) float64 {
	d := dx * (dims.WallLength(wall) / viewportWidth) * dragGain
	if wall == building.SideNorth || wall == building.SideWest {
		d = -d
	}
	return d
}

// BottomDelta converts a vertical pointer delta to a change in bottom
// offset. Screen y grows downward.
func BottomDelta(dy, viewportHeight float64) float64 {
	return -dy * (building.NominalWallHeight / viewportHeight) * dragGain
}

// PointerUp ends the drag.
func (c *Controller) PointerUp(p Pointer) error {
	return c.end(p)
}

// PointerLeave ends the drag the same way as PointerUp.
func (c *Controller) PointerLeave(p Pointer) error {
	return c.end(p)
}

func (c *Controller) end(p Pointer) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateDragging {
		return nil
	}
	if p.ID != c.start.pointerID {
		return ErrPointerMismatch
	}
	return c.endLocked()
}

// endLocked releases the pointer, clears the dragging flag and resumes
// orbit input. c.mu must be held.
func (c *Controller) endLocked() error {
	c.capture.Release(c.start.pointerID)
	c.camera.SetOrbitEnabled(true)
	c.state = StateIdle
	c.logger.Debug("opening drag ended", "opening_id", c.start.openingID)
	c.start = dragStart{}
	if err := c.store.SetDragging(false); err != nil {
		return fmt.Errorf("clearing dragging flag: %w", err)
	}
	return nil
}
