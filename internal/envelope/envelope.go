// Package envelope builds the sheeting and finish of the main building:
// side walls, roof panels, trim, wainscot, ridge vents and cupolas.
package envelope

import (
	"github.com/nerrad567/steelframe-core/internal/building"
	"github.com/nerrad567/steelframe-core/internal/geometry"
	"github.com/nerrad567/steelframe-core/internal/roof"
)

// Params are the inputs of the envelope stage. LeanTos holds the enabled
// flag per side in building.AllSides order.
type Params struct {
	Roof            roof.Params
	Length          float64
	EaveHeight      float64
	Overhangs       building.Overhangs
	Enclosed        building.Enclosure
	WainscotEnabled bool
	WainscotHeight  float64
	LeanTos         [4]bool
	RidgeVents      int
	CupolasSmall    int
	CupolasLarge    int
}

// ParamsOf extracts the envelope inputs from a design.
func ParamsOf(cfg *building.Config) Params {
	p := Params{
		Roof:            roof.ParamsOf(cfg),
		Length:          cfg.Dimensions.Length,
		EaveHeight:      cfg.Dimensions.EaveHeight,
		Overhangs:       cfg.Roof.Overhangs,
		Enclosed:        cfg.Walls.Enclosed,
		WainscotEnabled: cfg.Walls.WainscotEnabled,
		WainscotHeight:  cfg.Walls.WainscotHeight,
		RidgeVents:      cfg.Roof.RidgeVents,
		CupolasSmall:    cfg.Roof.CupolasSmall,
		CupolasLarge:    cfg.Roof.CupolasLarge,
	}
	for i, s := range building.AllSides() {
		p.LeanTos[i] = cfg.LeanTos.For(s).Enabled
	}
	return p
}

// leanTo reports whether a lean-to is enabled on side s.
func (p Params) leanTo(s building.Side) bool {
	for i, side := range building.AllSides() {
		if side == s {
			return p.LeanTos[i]
		}
	}
	return false
}

// Build emits every envelope primitive.
func Build(p Params) []geometry.Primitive {
	e := envelope{p: p, sol: roof.Solve(p.Roof)}

	var prims []geometry.Primitive
	prims = append(prims, e.sideWalls()...)
	prims = append(prims, e.roofPanels()...)
	prims = append(prims, e.trim()...)
	prims = append(prims, e.wainscot()...)
	prims = append(prims, e.ridgeVents()...)
	prims = append(prims, e.cupolas()...)
	return prims
}

type envelope struct {
	p   Params
	sol roof.Solution
}

func (e envelope) half() (hw, hl float64) {
	return e.sol.Width / 2, e.p.Length / 2
}

// wallHeight is the height of a main wall at its corners: the high side of a
// single-slope roof is the east wall.
func (e envelope) wallHeight(s building.Side) float64 {
	if s == building.SideEast && e.sol.SingleFace() {
		return e.p.EaveHeight + e.sol.Rise
	}
	return e.p.EaveHeight
}

// roofY is the roof surface height at x.
func (e envelope) roofY(x float64) float64 {
	return e.p.EaveHeight + e.sol.HeightAt(x)
}

// sideWalls emits the east and west wall panels for enclosed sides.
func (e envelope) sideWalls() []geometry.Primitive {
	hw, hl := e.half()
	var prims []geometry.Primitive

	if e.p.Enclosed.East {
		h := e.wallHeight(building.SideEast)
		m := geometry.Rect(geometry.V3(hw, 0, hl), geometry.V3(0, 0, -e.p.Length), geometry.V3(0, h, 0))
		prims = append(prims, geometry.MeshPrimitive("wall-east", geometry.RoleWallPanel, geometry.LayerWalls, geometry.ColorWall, m))
	}
	if e.p.Enclosed.West {
		h := e.wallHeight(building.SideWest)
		m := geometry.Rect(geometry.V3(-hw, 0, -hl), geometry.V3(0, 0, e.p.Length), geometry.V3(0, h, 0))
		prims = append(prims, geometry.MeshPrimitive("wall-west", geometry.RoleWallPanel, geometry.LayerWalls, geometry.ColorWall, m))
	}
	return prims
}

// roofEdges returns the z extent of the roof and the x of its west and east
// edges, all including overhangs.
func (e envelope) roofEdges() (z0, z1, xw, xe float64) {
	hw, hl := e.half()
	o := e.p.Overhangs
	return -hl - o.North, hl + o.South, -hw - o.West, hw + o.East
}

// roofPanels emits one quad per roof face, extended by the overhangs.
// Winding is chosen so every face normal points up and away from the ridge.
func (e envelope) roofPanels() []geometry.Primitive {
	z0, z1, xw, xe := e.roofEdges()
	uv := []geometry.Vec2{{U: 0, V: 0}, {U: 1, V: 0}, {U: 1, V: 1}, {U: 0, V: 1}}

	if e.sol.SingleFace() {
		m := geometry.Quad(
			geometry.V3(xw, e.roofY(xw), z1),
			geometry.V3(xe, e.roofY(xe), z1),
			geometry.V3(xe, e.roofY(xe), z0),
			geometry.V3(xw, e.roofY(xw), z0),
			uv[0], uv[1], uv[2], uv[3],
		)
		return []geometry.Primitive{roofPrim("roof-panel", geometry.RoleRoofPanel, m)}
	}

	peak := e.sol.PeakOffset
	ridgeY := e.roofY(peak)
	west := geometry.Quad(
		geometry.V3(xw, e.roofY(xw), z1),
		geometry.V3(peak, ridgeY, z1),
		geometry.V3(peak, ridgeY, z0),
		geometry.V3(xw, e.roofY(xw), z0),
		uv[0], uv[1], uv[2], uv[3],
	)
	east := geometry.Quad(
		geometry.V3(xe, e.roofY(xe), z0),
		geometry.V3(peak, ridgeY, z0),
		geometry.V3(peak, ridgeY, z1),
		geometry.V3(xe, e.roofY(xe), z1),
		uv[0], uv[1], uv[2], uv[3],
	)
	return []geometry.Primitive{
		roofPrim("roof-panel-west", geometry.RoleRoofPanel, west),
		roofPrim("roof-panel-east", geometry.RoleRoofPanel, east),
	}
}

func roofPrim(id string, role geometry.Role, m *geometry.Mesh) geometry.Primitive {
	return geometry.MeshPrimitive(id, role, geometry.LayerRoof, geometry.ColorRoof, m)
}
