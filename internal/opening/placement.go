// Package opening places doors and windows on the main walls and runs the
// interactive drag that moves them.
package opening

import (
	"github.com/nerrad567/steelframe-core/internal/building"
)

// Default sizes and offsets, in feet.
const (
	DefaultWindowBottom = 4.0
	DefaultDoorBottom   = 0.0
)

// Size is an opening's width and height.
type Size struct {
	Width  float64
	Height float64
}

var defaultSizes = map[building.OpeningType]Size{
	building.OpeningWalkDoor:   {Width: 3, Height: 7},
	building.OpeningRollUpDoor: {Width: 10, Height: 10},
	building.OpeningWindow:     {Width: 3, Height: 4},
}

// DefaultSize returns the catalogue size for an opening type.
func DefaultSize(t building.OpeningType) Size {
	return defaultSizes[t]
}

// QuickAdd returns a new opening centered on the wall:
// position = wallLength/2 − width/2. Windows sit DefaultWindowBottom above
// the floor, doors on it. A missing width or height takes the type's
// default on its own. The result is clamped to the wall and has no ID yet.
func QuickAdd(dims building.Dimensions, t building.OpeningType, wall building.Side, size Size) building.Opening {
	def := DefaultSize(t)
	if size.Width <= 0 {
		size.Width = def.Width
	}
	if size.Height <= 0 {
		size.Height = def.Height
	}
	bottom := DefaultDoorBottom
	if t.IsWindow() {
		bottom = DefaultWindowBottom
	}
	o := building.Opening{
		Type:         t,
		Wall:         wall,
		Position:     dims.WallLength(wall)/2 - size.Width/2,
		Width:        size.Width,
		Height:       size.Height,
		BottomOffset: bottom,
	}
	return building.ClampOpening(o, dims)
}

// HitTest returns the last opening on wall whose rectangle contains the
// wall-plane point (s along the span axis, y up). Later openings are drawn
// on top, so they win.
func HitTest(cfg *building.Config, wall building.Side, s, y float64) (building.Opening, bool) {
	for i := len(cfg.Openings) - 1; i >= 0; i-- {
		o := building.ClampOpening(cfg.Openings[i], cfg.Dimensions)
		if o.Wall != wall {
			continue
		}
		if s >= o.Position && s <= o.Position+o.Width && y >= o.BottomOffset && y <= o.BottomOffset+o.Height {
			return o, true
		}
	}
	return building.Opening{}, false
}
