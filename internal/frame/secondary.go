package frame

import (
	"fmt"
	"math"

	"github.com/nerrad567/steelframe-core/internal/building"
	"github.com/nerrad567/steelframe-core/internal/geometry"
	"github.com/nerrad567/steelframe-core/internal/roof"
)

// Secondary member sizes and counts.
const (
	PurlinDepth = 0.35
	PurlinWidth = 0.2

	GirtDepth = 0.3
	GirtWidth = 0.15
	// GirtInset moves girts just inside the wall plane.
	GirtInset = 0.15

	gablePurlinsPerSide = 5
	singleSlopePurlins  = 6
	purlinRunSpacing    = 4.0
	minPurlinsLongSide  = 3
	minPurlinsShortSide = 2
	girtSpacing         = 4.0
	minGirts            = 2
)

// PurlinCounts returns how many purlins sit on the west and east faces,
// not counting the ridge purlin. Single-slope roofs report everything on
// the west (only) face.
func PurlinCounts(sol roof.Solution) (west, east int) {
	switch sol.Style {
	case building.RoofSingleSlope:
		return singleSlopePurlins, 0
	case building.RoofAsymmetrical:
		wMin, eMin := minPurlinsLongSide, minPurlinsShortSide
		if sol.Right.Run > sol.Left.Run {
			wMin, eMin = eMin, wMin
		}
		west = max(wMin, int(math.Ceil(sol.Left.Run/purlinRunSpacing)))
		east = max(eMin, int(math.Ceil(sol.Right.Run/purlinRunSpacing)))
		return west, east
	default:
		return gablePurlinsPerSide, gablePurlinsPerSide
	}
}

// GirtCount returns max(2, floor(h/4)).
func GirtCount(wallHeight float64) int {
	return max(minGirts, int(math.Floor(wallHeight/girtSpacing)))
}

// GirtHeights returns the girt centerline heights on a wall of height h,
// evenly spaced and excluding the base girt.
func GirtHeights(h float64) []float64 {
	n := GirtCount(h)
	ys := make([]float64, n)
	for i := range ys {
		ys[i] = float64(i+1) * h / float64(n+1)
	}
	return ys
}

// purlinX returns the x positions of purlins on each face. Purlins start at
// the eave and are spread evenly toward the ridge; the ridge purlin is
// appended for two-face roofs.
func purlinX(sol roof.Solution) []float64 {
	half := sol.Width / 2
	west, east := PurlinCounts(sol)

	if sol.SingleFace() {
		xs := make([]float64, west)
		for i := range xs {
			xs[i] = -half + sol.Width*float64(i)/float64(west-1)
		}
		return xs
	}

	xs := make([]float64, 0, west+east+1)
	for i := 0; i < west; i++ {
		xs = append(xs, -half+sol.Left.Run*float64(i)/float64(west))
	}
	for i := 0; i < east; i++ {
		xs = append(xs, half-sol.Right.Run*float64(i)/float64(east))
	}
	return append(xs, sol.PeakOffset)
}

func (g generator) purlins() []geometry.Primitive {
	z0 := -g.p.Length/2 - g.p.OverhangN
	z1 := g.p.Length/2 + g.p.OverhangS

	xs := purlinX(g.sol)
	prims := make([]geometry.Primitive, 0, len(xs))
	for i, x := range xs {
		y := g.p.EaveHeight + g.sol.HeightAt(x) - PurlinDepth/2
		b := geometry.Beam(geometry.V3(x, y, z0), geometry.V3(x, y, z1), PurlinWidth, PurlinDepth)
		prims = append(prims, secondary(fmt.Sprintf("purlin-%d", i), geometry.RolePurlin, b))
	}
	return prims
}

// wallHeight is the girt-bearing height of a main wall.
func (g generator) wallHeight(s building.Side) float64 {
	if s == building.SideEast && g.sol.SingleFace() {
		return g.p.EaveHeight + g.sol.Rise
	}
	return g.p.EaveHeight
}

// wallLine returns the girt endpoints at height y on a main wall.
func (g generator) wallLine(s building.Side, y float64) (a, b geometry.Vec3) {
	hw, hl := g.sol.Width/2, g.p.Length/2
	switch s {
	case building.SideSouth:
		z := hl - GirtInset
		return geometry.V3(-hw, y, z), geometry.V3(hw, y, z)
	case building.SideNorth:
		z := -hl + GirtInset
		return geometry.V3(hw, y, z), geometry.V3(-hw, y, z)
	case building.SideEast:
		x := hw - GirtInset
		return geometry.V3(x, y, -hl), geometry.V3(x, y, hl)
	default:
		x := -hw + GirtInset
		return geometry.V3(x, y, hl), geometry.V3(x, y, -hl)
	}
}

// girts emits girts on every enclosed wall, plus a base girt at ground level.
func (g generator) girts() []geometry.Primitive {
	var prims []geometry.Primitive
	for _, s := range building.AllSides() {
		if !g.p.Enclosed.For(s) {
			continue
		}
		a, b := g.wallLine(s, GirtDepth/2)
		prims = append(prims, secondary(fmt.Sprintf("girt-%s-base", s), geometry.RoleGirt, geometry.Beam(a, b, GirtWidth, GirtDepth)))
		for i, y := range GirtHeights(g.wallHeight(s)) {
			a, b := g.wallLine(s, y)
			prims = append(prims, secondary(fmt.Sprintf("girt-%s-%d", s, i), geometry.RoleGirt, geometry.Beam(a, b, GirtWidth, GirtDepth)))
		}
	}
	return prims
}
