package leanto

import (
	"math"

	"github.com/nerrad567/steelframe-core/internal/geometry"
)

// TrimSize is the section of every lean-to trim piece.
const TrimSize = 0.25

// Trapezoid returns a right trapezoid in the local XY plane, facing +Z:
// ground from x = 0 to x = depth, top rising linearly from low at x = depth
// to high at x = 0. V coordinates scale by low/high on the outer edge.
// With low = 0 it is the triangular gable-dress infill.
func Trapezoid(depth, low, high float64) *geometry.Mesh {
	ratio := 0.0
	if high != 0 {
		ratio = low / high
	}
	return geometry.Quad(
		geometry.V3(0, 0, 0),
		geometry.V3(depth, 0, 0),
		geometry.V3(depth, low, 0),
		geometry.V3(0, high, 0),
		geometry.Vec2{U: 0, V: 0},
		geometry.Vec2{U: 1, V: 0},
		geometry.Vec2{U: 1, V: ratio},
		geometry.Vec2{U: 0, V: 1},
	)
}

var (
	// facingEnd leaves a +Z profile facing the far end of the span.
	facingEnd = geometry.Identity()
	// facingStart mirrors a +Z profile to face the start of the span.
	facingStart = geometry.Mat3{X: geometry.AxisX, Y: geometry.AxisY, Z: geometry.AxisZ.Scale(-1)}
)

// roof emits the single sloped roof panel. The normal points up and out.
func (g *generator) roof() {
	d := g.d
	m := geometry.Quad(
		geometry.V3(0, d.AttachHeight, d.Start),
		geometry.V3(0, d.AttachHeight, d.End),
		geometry.V3(d.Depth, d.OuterHeight, d.End),
		geometry.V3(d.Depth, d.OuterHeight, d.Start),
		geometry.Vec2{U: 0, V: 1},
		geometry.Vec2{U: 1, V: 1},
		geometry.Vec2{U: 1, V: 0},
		geometry.Vec2{U: 0, V: 0},
	)
	g.addMesh("roof", geometry.RoleLeanToRoof, geometry.LayerRoof, geometry.ColorRoof, m)
}

// walls emits the front wall, end walls, gable infill and apron according
// to the variant's coverage.
func (g *generator) walls() {
	d := g.d

	if g.c.FrontWall {
		m := geometry.Rect(geometry.V3(d.Depth, 0, d.End), geometry.V3(0, 0, -d.Usable()), geometry.V3(0, d.OuterHeight, 0))
		g.wall("wall-front", m)
	}

	if g.c.EndWalls {
		t := Trapezoid(d.Depth, d.OuterHeight, d.AttachHeight)
		g.wall("wall-end-start", t.Transform(facingStart, geometry.V3(0, 0, d.Start)))
		g.wall("wall-end-end", t.Transform(facingEnd, geometry.V3(0, 0, d.End)))
	}

	if g.c.GableInfill {
		gap := math.Max(0, d.AttachHeight-d.OuterHeight)
		t := Trapezoid(d.Depth, 0, gap)
		g.wall("infill-start", t.Transform(facingStart, geometry.V3(0, d.OuterHeight, d.Start)))
		g.wall("infill-end", t.Transform(facingEnd, geometry.V3(0, d.OuterHeight, d.End)))
	}

	if g.c.Apron {
		bottom := math.Max(0, d.OuterHeight-ApronHeight)
		m := geometry.Rect(geometry.V3(d.Depth, bottom, d.End), geometry.V3(0, 0, -d.Usable()), geometry.V3(0, d.OuterHeight-bottom, 0))
		g.wall("apron", m)
	}
}

func (g *generator) wall(id string, m *geometry.Mesh) {
	g.addMesh(id, geometry.RoleLeanToWall, geometry.LayerWalls, geometry.ColorWall, m)
}

// trim emits the trim pieces the variant calls for. Roof-edge trim sits on
// the roof layer, trim on walls sits on the wall layer.
func (g *generator) trim() {
	d := g.d
	beam := func(id string, layer geometry.Layer, a, b geometry.Vec3) {
		box := geometry.Beam(g.b.World(a.X, a.Y, a.Z), g.b.World(b.X, b.Y, b.Z), TrimSize, TrimSize)
		g.add(id, geometry.RoleLeanToTrim, layer, geometry.ColorTrim, box)
	}

	if g.c.EaveTrim {
		beam("trim-eave", geometry.LayerRoof, geometry.V3(d.Depth, d.OuterHeight, d.Start), geometry.V3(d.Depth, d.OuterHeight, d.End))
	}
	if g.c.CornerTrim {
		for _, c := range []struct {
			id string
			s  float64
		}{{"trim-corner-start", d.Start}, {"trim-corner-end", d.End}} {
			beam(c.id, geometry.LayerWalls, geometry.V3(d.Depth, 0, c.s), geometry.V3(d.Depth, d.OuterHeight, c.s))
		}
	}
	if g.c.RakeTrim {
		for _, c := range []struct {
			id string
			s  float64
		}{{"trim-rake-start", d.Start}, {"trim-rake-end", d.End}} {
			beam(c.id, geometry.LayerRoof, geometry.V3(0, d.AttachHeight, c.s), geometry.V3(d.Depth, d.OuterHeight, c.s))
		}
	}
	if g.c.ApronTrim {
		bottom := math.Max(0, d.OuterHeight-ApronHeight)
		beam("trim-apron-top", geometry.LayerWalls, geometry.V3(d.Depth, d.OuterHeight, d.Start), geometry.V3(d.Depth, d.OuterHeight, d.End))
		beam("trim-apron-bottom", geometry.LayerWalls, geometry.V3(d.Depth, bottom, d.Start), geometry.V3(d.Depth, bottom, d.End))
	}
}
