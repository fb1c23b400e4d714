package frame

import (
	"math"

	"github.com/nerrad567/steelframe-core/internal/geometry"
	"github.com/nerrad567/steelframe-core/internal/roof"
)

// Member sections, in feet.
const (
	ColumnDepth     = 0.8
	FlangeWidth     = 0.5
	FlangeThickness = 0.06
	WebThickness    = 0.05

	RafterDepth = 0.8
	RafterWidth = 0.4

	// RafterClearance is how far rafter centerlines sit below the roof
	// surface so members never coincide with roof panels.
	RafterClearance = 0.5

	// HighColumnDrop shortens the single-slope high column below the roof.
	HighColumnDrop = 0.5

	EaveBeamDepth = 0.5
	EaveBeamWidth = 0.3

	BraceSize         = 0.25
	braceHeightFactor = 0.3
	maxBraceLength    = 4.0
)

type generator struct {
	p   Params
	sol roof.Solution
}

// rafterY is the rafter centerline height at x.
func (g generator) rafterY(x float64) float64 {
	return g.p.EaveHeight + g.sol.HeightAt(x) - RafterClearance
}

// columnHeights returns the west and east column heights.
func (g generator) columnHeights() (west, east float64) {
	west, east = g.p.EaveHeight, g.p.EaveHeight
	if g.sol.SingleFace() {
		east = g.p.EaveHeight + g.sol.Rise - HighColumnDrop
	}
	return west, east
}

// BraceLength returns the knee brace length: 30% of the eave height,
// capped at 4.
func BraceLength(eaveHeight float64) float64 {
	return math.Min(eaveHeight*braceHeightFactor, maxBraceLength)
}

// frame emits one complete rigid frame at z.
func (g generator) frame(id string, z float64) []geometry.Primitive {
	half := g.sol.Width / 2
	westX := -half + ColumnDepth/2
	eastX := half - ColumnDepth/2
	westH, eastH := g.columnHeights()

	prims := make([]geometry.Primitive, 0, 12)
	prims = append(prims, column(id+"-column-west", westX, z, westH)...)
	prims = append(prims, column(id+"-column-east", eastX, z, eastH)...)

	// Eave beam spans between the inner column faces.
	y := g.p.EaveHeight - EaveBeamDepth/2
	beam := geometry.Beam(
		geometry.V3(westX+ColumnDepth/2, y, z),
		geometry.V3(eastX-ColumnDepth/2, y, z),
		EaveBeamWidth, EaveBeamDepth,
	)
	prims = append(prims, primary(id+"-eave-beam", geometry.RoleEaveBeam, beam))

	prims = append(prims, g.kneeBraces(id, z, westX+ColumnDepth/2, eastX-ColumnDepth/2)...)
	prims = append(prims, g.rafters(id, z)...)
	return prims
}

// column emits an H-section: one web plate and two flange plates.
func column(id string, x, z, h float64) []geometry.Primitive {
	web := geometry.AxisBox(
		geometry.V3(x, h/2, z),
		geometry.V3(ColumnDepth-2*FlangeThickness, h, WebThickness),
	)
	offset := ColumnDepth/2 - FlangeThickness/2
	inner := geometry.AxisBox(
		geometry.V3(x-offset, h/2, z),
		geometry.V3(FlangeThickness, h, FlangeWidth),
	)
	outer := geometry.AxisBox(
		geometry.V3(x+offset, h/2, z),
		geometry.V3(FlangeThickness, h, FlangeWidth),
	)
	return []geometry.Primitive{
		primary(id+"-web", geometry.RoleColumn, web),
		primary(id+"-flange-a", geometry.RoleColumn, inner),
		primary(id+"-flange-b", geometry.RoleColumn, outer),
	}
}

// kneeBraces emits two 45° braces from the inner column faces up to the
// rafter line.
func (g generator) kneeBraces(id string, z, westFace, eastFace float64) []geometry.Primitive {
	d := BraceLength(g.p.EaveHeight) / math.Sqrt2

	wTop := geometry.V3(westFace+d, g.rafterY(westFace+d), z)
	wBottom := geometry.V3(westFace, wTop.Y-d, z)
	eTop := geometry.V3(eastFace-d, g.rafterY(eastFace-d), z)
	eBottom := geometry.V3(eastFace, eTop.Y-d, z)

	return []geometry.Primitive{
		primary(id+"-brace-west", geometry.RoleKneeBrace, geometry.Beam(wBottom, wTop, BraceSize, BraceSize)),
		primary(id+"-brace-east", geometry.RoleKneeBrace, geometry.Beam(eBottom, eTop, BraceSize, BraceSize)),
	}
}

// rafters emits the roof-style specific rafters: two symmetric for gable,
// one full span for single-slope, two of unequal length for asymmetrical.
func (g generator) rafters(id string, z float64) []geometry.Primitive {
	half := g.sol.Width / 2
	west := geometry.V3(-half, g.rafterY(-half), z)
	east := geometry.V3(half, g.rafterY(half), z)

	if g.sol.SingleFace() {
		return []geometry.Primitive{
			primary(id+"-rafter", geometry.RoleRafter, geometry.Beam(west, east, RafterWidth, RafterDepth)),
		}
	}
	peak := geometry.V3(g.sol.PeakOffset, g.rafterY(g.sol.PeakOffset), z)
	return []geometry.Primitive{
		primary(id+"-rafter-west", geometry.RoleRafter, geometry.Beam(west, peak, RafterWidth, RafterDepth)),
		primary(id+"-rafter-east", geometry.RoleRafter, geometry.Beam(peak, east, RafterWidth, RafterDepth)),
	}
}

func primary(id string, role geometry.Role, b geometry.Box) geometry.Primitive {
	return geometry.BoxPrimitive(id, role, geometry.LayerPrimary, geometry.ColorSteel, b)
}

func secondary(id string, role geometry.Role, b geometry.Box) geometry.Primitive {
	return geometry.BoxPrimitive(id, role, geometry.LayerSecondary, geometry.ColorSteel, b)
}
