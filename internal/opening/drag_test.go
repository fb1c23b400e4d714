package opening

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerrad567/steelframe-core/internal/building"
)

type fakeCamera struct {
	calls []bool
}

func (f *fakeCamera) SetOrbitEnabled(enabled bool) { f.calls = append(f.calls, enabled) }

type fakeCapture struct {
	captured map[int]bool
}

func (f *fakeCapture) Capture(id int) { f.captured[id] = true }
func (f *fakeCapture) Release(id int) { delete(f.captured, id) }

type rig struct {
	store   *building.Store
	camera  *fakeCamera
	capture *fakeCapture
	ctrl    *Controller
	door    building.Opening
	window  building.Opening
}

func newRig(t *testing.T) *rig {
	t.Helper()
	store := building.NewStore(nil)
	door, err := store.AddOpening(QuickAdd(store.Snapshot().Dimensions, building.OpeningWalkDoor, building.SideSouth, Size{}))
	require.NoError(t, err)
	window, err := store.AddOpening(QuickAdd(store.Snapshot().Dimensions, building.OpeningWindow, building.SideNorth, Size{}))
	require.NoError(t, err)

	r := &rig{
		store:   store,
		camera:  &fakeCamera{},
		capture: &fakeCapture{captured: map[int]bool{}},
		door:    door,
		window:  window,
	}
	r.ctrl = NewController(store, r.camera, r.capture, Viewport{Width: 1000, Height: 700})
	return r
}

// centerOf is a hit in the middle of o.
func centerOf(o building.Opening) Hit {
	return Hit{Wall: o.Wall, S: o.Position + o.Width/2, Y: o.BottomOffset + o.Height/2}
}

// down presses pointer p over the middle of o.
func (r *rig) down(o building.Opening, p Pointer) error {
	_, err := r.ctrl.PointerDown(centerOf(o), o.ID, p)
	return err
}

func TestDragLifecycle(t *testing.T) {
	r := newRig(t)
	assert.Equal(t, StateIdle, r.ctrl.State())

	require.NoError(t, r.down(r.door, Pointer{ID: 1, X: 500, Y: 300}))
	assert.Equal(t, StateDragging, r.ctrl.State())
	assert.True(t, r.capture.captured[1])
	assert.Equal(t, []bool{false}, r.camera.calls)

	snap := r.store.Snapshot()
	assert.True(t, snap.Interaction.Dragging)
	assert.Equal(t, r.door.ID, snap.Interaction.SelectedOpeningID)

	// 100px on a 1000px viewport over a 30ft wall: 100 * 0.03 * 2 = 6ft.
	o, err := r.ctrl.PointerMove(Pointer{ID: 1, X: 600, Y: 100})
	require.NoError(t, err)
	assert.InDelta(t, 13.5+6, o.Position, eps)
	assert.InDelta(t, 0.0, o.BottomOffset, eps, "doors never move vertically")

	require.NoError(t, r.ctrl.PointerUp(Pointer{ID: 1}))
	assert.Equal(t, StateIdle, r.ctrl.State())
	assert.Empty(t, r.capture.captured)
	assert.Equal(t, []bool{false, true}, r.camera.calls)
	assert.False(t, r.store.Snapshot().Interaction.Dragging)
}

func TestSecondPointerDownRejected(t *testing.T) {
	r := newRig(t)
	require.NoError(t, r.down(r.door, Pointer{ID: 1}))
	assert.ErrorIs(t, r.down(r.window, Pointer{ID: 2}), ErrDragInProgress)
	assert.False(t, r.capture.captured[2])
}

func TestMoveWithoutDrag(t *testing.T) {
	r := newRig(t)
	_, err := r.ctrl.PointerMove(Pointer{ID: 1, X: 10})
	assert.ErrorIs(t, err, ErrNotDragging)
	assert.NoError(t, r.ctrl.PointerUp(Pointer{ID: 1}), "pointer-up while idle is a no-op")
}

func TestMoveFromOtherPointer(t *testing.T) {
	r := newRig(t)
	require.NoError(t, r.down(r.door, Pointer{ID: 1}))
	_, err := r.ctrl.PointerMove(Pointer{ID: 7, X: 10})
	assert.ErrorIs(t, err, ErrPointerMismatch)
}

func TestNorthWallInvertsAndWindowMovesVertically(t *testing.T) {
	r := newRig(t)
	require.NoError(t, r.down(r.window, Pointer{ID: 3, X: 500, Y: 350}))

	// +50px right on the north wall moves the window back along its span.
	// -70px up raises it by 70 * (14/700) * 2 = 2.8.
	o, err := r.ctrl.PointerMove(Pointer{ID: 3, X: 550, Y: 280})
	require.NoError(t, err)
	assert.InDelta(t, 13.5-3, o.Position, eps)
	assert.InDelta(t, 4+2.8, o.BottomOffset, eps)

	require.NoError(t, r.ctrl.PointerLeave(Pointer{ID: 3}))
	assert.Equal(t, StateIdle, r.ctrl.State())
}

func TestDragClampProperty(t *testing.T) {
	r := newRig(t)
	require.NoError(t, r.down(r.door, Pointer{ID: 1, X: 0, Y: 0}))

	wall := 30.0
	deltas := []float64{1e6, -1e6, 12345, -3, 0, 999, -1e9, 77.7}
	for _, dx := range deltas {
		o, err := r.ctrl.PointerMove(Pointer{ID: 1, X: dx, Y: -dx})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, o.Position, 0.0)
		assert.LessOrEqual(t, o.Position, wall-o.Width)
	}
	require.NoError(t, r.ctrl.PointerUp(Pointer{ID: 1}))

	require.NoError(t, r.down(r.window, Pointer{ID: 1, X: 0, Y: 0}))
	for _, dy := range deltas {
		o, err := r.ctrl.PointerMove(Pointer{ID: 1, X: dy, Y: dy})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, o.BottomOffset, 0.0)
		assert.LessOrEqual(t, o.BottomOffset, building.NominalWallHeight-o.Height)
	}
}

func TestMovesUseTotalDelta(t *testing.T) {
	r := newRig(t)
	require.NoError(t, r.down(r.door, Pointer{ID: 1, X: 100}))

	// Pushing past the end and coming back returns to the start exactly.
	_, err := r.ctrl.PointerMove(Pointer{ID: 1, X: 5000})
	require.NoError(t, err)
	o, err := r.ctrl.PointerMove(Pointer{ID: 1, X: 100})
	require.NoError(t, err)
	assert.InDelta(t, 13.5, o.Position, eps)
}

func TestRemovedOpeningEndsDrag(t *testing.T) {
	r := newRig(t)
	require.NoError(t, r.down(r.door, Pointer{ID: 1}))
	require.NoError(t, r.store.RemoveOpening(r.door.ID))

	_, err := r.ctrl.PointerMove(Pointer{ID: 1, X: 10})
	assert.ErrorIs(t, err, building.ErrOpeningNotFound)
	assert.Equal(t, StateIdle, r.ctrl.State())
	assert.Equal(t, []bool{false, true}, r.camera.calls)
}

func TestPointerDownResolvesOpeningFromHit(t *testing.T) {
	r := newRig(t)
	o, err := r.ctrl.PointerDown(centerOf(r.window), "", Pointer{ID: 1})
	require.NoError(t, err)
	assert.Equal(t, r.window.ID, o.ID)
	assert.Equal(t, StateDragging, r.ctrl.State())
	assert.Equal(t, r.window.ID, r.store.Snapshot().Interaction.SelectedOpeningID)
}

func TestPointerDownMisses(t *testing.T) {
	tests := []struct {
		name string
		hit  func(r *rig) Hit
		id   func(r *rig) string
		want error
	}{
		{
			name: "empty wall area",
			hit:  func(*rig) Hit { return Hit{Wall: building.SideSouth, S: 1, Y: 1} },
			id:   func(*rig) string { return "" },
			want: ErrNoOpeningAtHit,
		},
		{
			name: "right spot, wrong wall",
			hit: func(r *rig) Hit {
				h := centerOf(r.door)
				h.Wall = building.SideEast
				return h
			},
			id:   func(r *rig) string { return r.door.ID },
			want: ErrNoOpeningAtHit,
		},
		{
			name: "named opening not under pointer",
			hit:  func(r *rig) Hit { return centerOf(r.door) },
			id:   func(r *rig) string { return r.window.ID },
			want: ErrHitMismatch,
		},
		{
			name: "unknown wall",
			hit:  func(*rig) Hit { return Hit{Wall: "up", S: 1, Y: 1} },
			id:   func(*rig) string { return "" },
			want: building.ErrInvalidSide,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig(t)
			_, err := r.ctrl.PointerDown(tt.hit(r), tt.id(r), Pointer{ID: 1})
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, StateIdle, r.ctrl.State())
			assert.Empty(t, r.camera.calls)
			assert.Empty(t, r.capture.captured)
			assert.False(t, r.store.Snapshot().Interaction.Dragging)
		})
	}
}

func TestSetViewport(t *testing.T) {
	r := newRig(t)
	assert.ErrorIs(t, r.ctrl.SetViewport(Viewport{Width: 0, Height: 10}), ErrInvalidViewport)
	require.NoError(t, r.ctrl.SetViewport(Viewport{Width: 500, Height: 500}))

	require.NoError(t, r.down(r.door, Pointer{ID: 1}))
	o, err := r.ctrl.PointerMove(Pointer{ID: 1, X: 10})
	require.NoError(t, err)
	assert.InDelta(t, 13.5+10*(30.0/500)*2, o.Position, eps)
}
