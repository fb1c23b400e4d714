package leanto

import (
	"github.com/nerrad567/steelframe-core/internal/building"
	"github.com/nerrad567/steelframe-core/internal/geometry"
)

// Basis maps the canonical lean-to frame onto world space for one side.
//
// Local coordinates are (d, y, s): d is depth outward from the wall plane,
// y is up and s is the position along the wall's span axis, starting at
// the same end as opening positions do.
type Basis struct {
	Side building.Side
	// Axes holds depth, up and span as columns.
	Axes   geometry.Mat3
	Origin geometry.Vec3
	// Main is the wall length the lean-to runs along.
	Main float64
}

// BasisFor returns the basis for a side of a width × length building.
//
//	side   depth  span  origin
//	south  +Z     +X    (−W/2, 0, +L/2)
//	north  −Z     −X    (+W/2, 0, −L/2)
//	east   +X     +Z    (+W/2, 0, −L/2)
//	west   −X     −Z    (−W/2, 0, +L/2)
func BasisFor(side building.Side, width, length float64) Basis {
	hw, hl := width/2, length/2
	neg := func(v geometry.Vec3) geometry.Vec3 { return v.Scale(-1) }

	var depth, span, origin geometry.Vec3
	main := length
	switch side {
	case building.SideSouth:
		depth, span, origin = geometry.AxisZ, geometry.AxisX, geometry.V3(-hw, 0, hl)
		main = width
	case building.SideNorth:
		depth, span, origin = neg(geometry.AxisZ), neg(geometry.AxisX), geometry.V3(hw, 0, -hl)
		main = width
	case building.SideEast:
		depth, span, origin = geometry.AxisX, geometry.AxisZ, geometry.V3(hw, 0, -hl)
	default:
		depth, span, origin = neg(geometry.AxisX), neg(geometry.AxisZ), geometry.V3(-hw, 0, hl)
	}
	return Basis{
		Side:   side,
		Axes:   geometry.Mat3{X: depth, Y: geometry.AxisY, Z: span},
		Origin: origin,
		Main:   main,
	}
}

// World maps a local point to world space.
func (b Basis) World(d, y, s float64) geometry.Vec3 {
	return b.Axes.Apply(geometry.V3(d, y, s)).Add(b.Origin)
}

// Mesh maps a mesh built in local coordinates to world space.
func (b Basis) Mesh(m *geometry.Mesh) *geometry.Mesh {
	return m.Transform(b.Axes, b.Origin)
}
