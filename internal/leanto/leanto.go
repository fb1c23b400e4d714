// Package leanto builds the attached shed-roofed structures on any of the
// four sides of the main building.
//
// Every lean-to is laid out once in a canonical local frame (depth outward
// from the wall, up, span along the wall) and mapped to world space by the
// side's Basis. No part of the layout knows which side it is on.
package leanto

import (
	"github.com/nerrad567/steelframe-core/internal/geometry"
)

// Result is the derived geometry of one lean-to.
type Result struct {
	Derived    Derived
	Coverage   Coverage
	Primitives []geometry.Primitive
}

// Build derives one lean-to. A disabled lean-to yields an empty result.
func Build(p Params) Result {
	if !p.LeanTo.Enabled {
		return Result{}
	}
	b := BasisFor(p.Side, p.Width, p.Length)
	g := &generator{
		prefix: "leanto-" + string(p.Side) + "-",
		b:      b,
		d:      Derive(p, b),
		c:      CoverageFor(p.LeanTo.Variant),
	}
	g.structure()
	g.roof()
	g.walls()
	g.trim()
	return Result{Derived: g.d, Coverage: g.c, Primitives: g.prims}
}

type generator struct {
	prefix string
	b      Basis
	d      Derived
	c      Coverage
	prims  []geometry.Primitive
}

func (g *generator) add(id string, role geometry.Role, layer geometry.Layer, color geometry.ColorSlot, b geometry.Box) {
	g.prims = append(g.prims, geometry.BoxPrimitive(g.prefix+id, role, layer, color, b))
}

func (g *generator) addMesh(id string, role geometry.Role, layer geometry.Layer, color geometry.ColorSlot, m *geometry.Mesh) {
	g.prims = append(g.prims, geometry.MeshPrimitive(g.prefix+id, role, layer, color, g.b.Mesh(m)))
}

func (g *generator) primary(id string, role geometry.Role, b geometry.Box) {
	g.add(id, role, geometry.LayerPrimary, geometry.ColorSteel, b)
}
