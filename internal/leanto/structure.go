package leanto

import (
	"fmt"
	"math"

	"github.com/nerrad567/steelframe-core/internal/geometry"
)

// Structural sizes and counts.
const (
	FrameCount   = 3
	EndWallInset = 1.5

	ColumnSize      = 0.5
	RafterDepth     = 0.6
	RafterWidth     = 0.3
	RafterClearance = 0.35
	BeamDepth       = 0.4
	BeamWidth       = 0.25
	PurlinDepth     = 0.25
	PurlinWidth     = 0.15

	purlinSpacing = 3.0
	minPurlins    = 3
)

// FramePositions returns the span positions of the three frames: one inset
// from each end and one centered.
func FramePositions(d Derived) [FrameCount]float64 {
	mid, half := d.Mid(), d.Usable()/2
	return [FrameCount]float64{mid - half + EndWallInset, mid, mid + half - EndWallInset}
}

// PurlinCount returns max(3, ceil(depth/3)).
func PurlinCount(depth float64) int {
	return max(minPurlins, int(math.Ceil(depth/purlinSpacing)))
}

// structure emits the frames, eave beams and purlins.
func (g *generator) structure() {
	d := g.d
	outerCol := d.Depth - ColumnSize/2

	for i, s := range FramePositions(d) {
		col := geometry.Beam(g.b.World(outerCol, 0, s), g.b.World(outerCol, d.OuterHeight, s), ColumnSize, ColumnSize)
		g.primary(fmt.Sprintf("frame-%d-column", i), geometry.RoleLeanToColumn, col)

		rafter := geometry.Beam(
			g.b.World(0, d.AttachHeight-RafterClearance, s),
			g.b.World(d.Depth, d.OuterHeight-RafterClearance, s),
			RafterWidth, RafterDepth,
		)
		g.primary(fmt.Sprintf("frame-%d-rafter", i), geometry.RoleLeanToRafter, rafter)
	}

	attach := geometry.Beam(
		g.b.World(BeamWidth/2, d.AttachHeight-BeamDepth/2, d.Start),
		g.b.World(BeamWidth/2, d.AttachHeight-BeamDepth/2, d.End),
		BeamWidth, BeamDepth,
	)
	g.primary("beam-attach", geometry.RoleLeanToBeam, attach)
	outer := geometry.Beam(
		g.b.World(d.Depth-BeamWidth/2, d.OuterHeight-BeamDepth/2, d.Start),
		g.b.World(d.Depth-BeamWidth/2, d.OuterHeight-BeamDepth/2, d.End),
		BeamWidth, BeamDepth,
	)
	g.primary("beam-outer", geometry.RoleLeanToBeam, outer)

	n := PurlinCount(d.Depth)
	for i := 0; i < n; i++ {
		x := d.Depth * float64(i) / float64(n-1)
		y := d.RoofY(x) - PurlinDepth/2
		b := geometry.Beam(g.b.World(x, y, d.Start), g.b.World(x, y, d.End), PurlinWidth, PurlinDepth)
		g.add(fmt.Sprintf("purlin-%d", i), geometry.RoleLeanToPurlin, geometry.LayerSecondary, geometry.ColorSteel, b)
	}
}
