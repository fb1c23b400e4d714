package envelope

import (
	"math"

	"github.com/nerrad567/steelframe-core/internal/building"
	"github.com/nerrad567/steelframe-core/internal/geometry"
)

// Trim and wainscot sizes.
const (
	TrimSize       = 0.3
	RidgeCapWidth  = 1.0
	RidgeCapDepth  = 0.2
	CornerTrimSize = 0.4
	WainscotOffset = 0.03
	WainscotPanel  = 0.05
	ridgeCapLift   = 0.1
)

// trim emits eave trim, rake trim, the ridge cap and corner trims.
func (e envelope) trim() []geometry.Primitive {
	z0, z1, xw, xe := e.roofEdges()
	var prims []geometry.Primitive

	// Eave trim runs the full roof length along each low (and high) edge.
	for _, edge := range []struct {
		id string
		x  float64
	}{{"trim-eave-west", xw}, {"trim-eave-east", xe}} {
		y := e.roofY(edge.x)
		b := geometry.Beam(geometry.V3(edge.x, y, z0), geometry.V3(edge.x, y, z1), TrimSize, TrimSize)
		prims = append(prims, roofTrim(edge.id, b))
	}

	// Rake trim follows the roof edge over each end wall.
	for _, end := range []struct {
		id string
		z  float64
	}{{"north", z0}, {"south", z1}} {
		west := geometry.V3(xw, e.roofY(xw), end.z)
		east := geometry.V3(xe, e.roofY(xe), end.z)
		if e.sol.SingleFace() {
			prims = append(prims, roofTrim("trim-rake-"+end.id, geometry.Beam(west, east, TrimSize, TrimSize)))
			continue
		}
		peak := geometry.V3(e.sol.PeakOffset, e.roofY(e.sol.PeakOffset), end.z)
		prims = append(prims,
			roofTrim("trim-rake-"+end.id+"-west", geometry.Beam(west, peak, TrimSize, TrimSize)),
			roofTrim("trim-rake-"+end.id+"-east", geometry.Beam(peak, east, TrimSize, TrimSize)),
		)
	}

	if e.sol.HasRidge() {
		y := e.roofY(e.sol.PeakOffset) + ridgeCapLift
		b := geometry.Beam(geometry.V3(e.sol.PeakOffset, y, z0), geometry.V3(e.sol.PeakOffset, y, z1), RidgeCapWidth, RidgeCapDepth)
		prims = append(prims, roofTrim("trim-ridge-cap", b))
	}

	prims = append(prims, e.cornerTrim()...)
	return prims
}

// cornerTrim emits a vertical trim at each building corner where at least
// one of the two meeting walls is enclosed.
func (e envelope) cornerTrim() []geometry.Primitive {
	hw, hl := e.half()
	corners := []struct {
		id       string
		x, z     float64
		a, b     building.Side
		sideWall building.Side
	}{
		{"trim-corner-south-east", hw, hl, building.SideSouth, building.SideEast, building.SideEast},
		{"trim-corner-south-west", -hw, hl, building.SideSouth, building.SideWest, building.SideWest},
		{"trim-corner-north-east", hw, -hl, building.SideNorth, building.SideEast, building.SideEast},
		{"trim-corner-north-west", -hw, -hl, building.SideNorth, building.SideWest, building.SideWest},
	}

	var prims []geometry.Primitive
	for _, c := range corners {
		if !e.p.Enclosed.For(c.a) && !e.p.Enclosed.For(c.b) {
			continue
		}
		h := e.wallHeight(c.sideWall)
		b := geometry.AxisBox(geometry.V3(c.x, h/2, c.z), geometry.V3(CornerTrimSize, h, CornerTrimSize))
		prims = append(prims, geometry.BoxPrimitive(c.id, geometry.RoleTrim, geometry.LayerWalls, geometry.ColorTrim, b))
	}
	return prims
}

// WainscotSuppressed reports whether the wainscot band on side s is dropped
// because a lean-to is attached there.
func (p Params) WainscotSuppressed(s building.Side) bool {
	return p.leanTo(s)
}

// wainscot emits a band at the base of each enclosed wall without a lean-to.
// The band height is clamped to the wall height.
func (e envelope) wainscot() []geometry.Primitive {
	if !e.p.WainscotEnabled || e.p.WainscotHeight <= 0 {
		return nil
	}
	hw, hl := e.half()
	w, l := e.sol.Width, e.p.Length

	var prims []geometry.Primitive
	for _, s := range building.AllSides() {
		if !e.p.Enclosed.For(s) || e.p.WainscotSuppressed(s) {
			continue
		}
		h := math.Min(e.p.WainscotHeight, e.p.EaveHeight)
		var center, size geometry.Vec3
		switch s {
		case building.SideSouth:
			center, size = geometry.V3(0, h/2, hl+WainscotOffset), geometry.V3(w, h, WainscotPanel)
		case building.SideNorth:
			center, size = geometry.V3(0, h/2, -hl-WainscotOffset), geometry.V3(w, h, WainscotPanel)
		case building.SideEast:
			center, size = geometry.V3(hw+WainscotOffset, h/2, 0), geometry.V3(WainscotPanel, h, l)
		case building.SideWest:
			center, size = geometry.V3(-hw-WainscotOffset, h/2, 0), geometry.V3(WainscotPanel, h, l)
		}
		prims = append(prims, geometry.BoxPrimitive("wainscot-"+string(s), geometry.RoleWainscot, geometry.LayerWalls, geometry.ColorWainscot, geometry.AxisBox(center, size)))
	}
	return prims
}

func roofTrim(id string, b geometry.Box) geometry.Primitive {
	return geometry.BoxPrimitive(id, geometry.RoleTrim, geometry.LayerRoof, geometry.ColorTrim, b)
}
