// Package frame lays out the primary rigid frames of the main building and
// the secondary members (purlins and girts) that hang off them.
//
// Frames are spaced uniformly along the length at no more than MaxSpacing,
// except that the first and last frames are pulled EndWallInset inside the
// end walls so they stay clear of the end-wall panels.
package frame

import (
	"fmt"
	"math"

	"github.com/nerrad567/steelframe-core/internal/building"
	"github.com/nerrad567/steelframe-core/internal/geometry"
	"github.com/nerrad567/steelframe-core/internal/roof"
)

// Spacing rules.
const (
	MaxSpacing   = 25.0
	EndWallInset = 1.0
	minFrames    = 2
)

// Params are the inputs of the frame stage. The struct is comparable and is
// used directly as a cache key.
type Params struct {
	Roof       roof.Params
	Length     float64
	EaveHeight float64
	OverhangN  float64
	OverhangS  float64
	Enclosed   building.Enclosure
}

// ParamsOf extracts the frame inputs from a design.
func ParamsOf(cfg *building.Config) Params {
	return Params{
		Roof:       roof.ParamsOf(cfg),
		Length:     cfg.Dimensions.Length,
		EaveHeight: cfg.Dimensions.EaveHeight,
		OverhangN:  cfg.Roof.Overhangs.North,
		OverhangS:  cfg.Roof.Overhangs.South,
		Enclosed:   cfg.Walls.Enclosed,
	}
}

// Layout is the derived frame arrangement.
type Layout struct {
	Count   int
	Spacing float64
	// Positions are the frame z coordinates, north to south.
	Positions []float64
	// OverhangPositions are the z coordinates of overhang end frames.
	OverhangPositions []float64
	Primitives        []geometry.Primitive
}

// Count returns max(2, ceil(length/MaxSpacing)+1).
func Count(length float64) int {
	n := int(math.Ceil(length/MaxSpacing)) + 1
	if n < minFrames {
		n = minFrames
	}
	return n
}

// Positions returns the frame count, the nominal spacing and the z
// position of every frame. The first and last frames sit EndWallInset
// inside the end walls; interior frames keep their nominal position.
func Positions(length float64) (count int, spacing float64, zs []float64) {
	count = Count(length)
	spacing = length / float64(count-1)
	zs = make([]float64, count)
	for i := range zs {
		zs[i] = -length/2 + float64(i)*spacing
	}
	zs[0] = -length/2 + EndWallInset
	zs[count-1] = length/2 - EndWallInset
	return count, spacing, zs
}

// Build derives the frames, purlins and girts.
func Build(p Params) Layout {
	sol := roof.Solve(p.Roof)
	count, spacing, zs := Positions(p.Length)

	l := Layout{
		Count:     count,
		Spacing:   spacing,
		Positions: zs,
	}

	g := generator{p: p, sol: sol}
	for i, z := range zs {
		l.Primitives = append(l.Primitives, g.frame(frameID(i), z)...)
	}
	if p.OverhangN > 0 {
		z := -p.Length/2 - p.OverhangN
		l.OverhangPositions = append(l.OverhangPositions, z)
		l.Primitives = append(l.Primitives, g.frame("frame-overhang-north", z)...)
	}
	if p.OverhangS > 0 {
		z := p.Length/2 + p.OverhangS
		l.OverhangPositions = append(l.OverhangPositions, z)
		l.Primitives = append(l.Primitives, g.frame("frame-overhang-south", z)...)
	}

	l.Primitives = append(l.Primitives, g.purlins()...)
	l.Primitives = append(l.Primitives, g.girts()...)
	return l
}

func frameID(i int) string {
	return fmt.Sprintf("frame-%d", i)
}
