// Package endwall builds the north and south end walls as single polygon
// meshes: a pentagon for gable and asymmetrical roofs, a quadrilateral for
// single-slope roofs.
package endwall

import (
	"github.com/nerrad567/steelframe-core/internal/building"
	"github.com/nerrad567/steelframe-core/internal/geometry"
	"github.com/nerrad567/steelframe-core/internal/roof"
)

// ApexTolerance raises the apex slightly so it tucks under the ridge.
const ApexTolerance = 0.05

// Params are the inputs of the end-wall stage.
type Params struct {
	Roof          roof.Params
	Length        float64
	EaveHeight    float64
	NorthEnclosed bool
	SouthEnclosed bool
}

// ParamsOf extracts the end-wall inputs from a design.
func ParamsOf(cfg *building.Config) Params {
	return Params{
		Roof:          roof.ParamsOf(cfg),
		Length:        cfg.Dimensions.Length,
		EaveHeight:    cfg.Dimensions.EaveHeight,
		NorthEnclosed: cfg.Walls.Enclosed.North,
		SouthEnclosed: cfg.Walls.Enclosed.South,
	}
}

// Profile returns the end-wall polygon in the XY plane at z = 0, facing +Z.
//
// Vertex order is ground west, ground east, eave east, then either the apex
// and eave west (pentagon) or eave west alone (quad). V coordinates are
// y / totalHeight so tiling stays continuous across the eave line.
func Profile(sol roof.Solution, eaveHeight float64) *geometry.Mesh {
	half := sol.Width / 2

	if sol.SingleFace() {
		total := eaveHeight + sol.Rise
		return &geometry.Mesh{
			Vertices: []geometry.Vec3{
				geometry.V3(-half, 0, 0),
				geometry.V3(half, 0, 0),
				geometry.V3(half, total, 0),
				geometry.V3(-half, eaveHeight, 0),
			},
			UVs: []geometry.Vec2{
				{U: 0, V: 0},
				{U: 1, V: 0},
				{U: 1, V: 1},
				{U: 0, V: eaveHeight / total},
			},
			Indices: []int{0, 1, 2, 0, 2, 3},
		}
	}

	total := eaveHeight + sol.Rise + ApexTolerance
	ev := eaveHeight / total
	return &geometry.Mesh{
		Vertices: []geometry.Vec3{
			geometry.V3(-half, 0, 0),
			geometry.V3(half, 0, 0),
			geometry.V3(half, eaveHeight, 0),
			geometry.V3(sol.PeakOffset, total, 0),
			geometry.V3(-half, eaveHeight, 0),
		},
		UVs: []geometry.Vec2{
			{U: 0, V: 0},
			{U: 1, V: 0},
			{U: 1, V: ev},
			{U: (sol.PeakOffset + half) / sol.Width, V: 1},
			{U: 0, V: ev},
		},
		// Rectangle as two triangles, then the cap.
		Indices: []int{0, 1, 2, 0, 2, 4, 4, 2, 3},
	}
}

var (
	southBasis = geometry.Identity()
	// northBasis mirrors the profile through the XY plane so it faces -Z.
	northBasis = geometry.Mat3{X: geometry.AxisX, Y: geometry.AxisY, Z: geometry.AxisZ.Scale(-1)}
)

// Build emits one wall panel per enclosed end wall.
func Build(p Params) []geometry.Primitive {
	sol := roof.Solve(p.Roof)
	profile := Profile(sol, p.EaveHeight)
	half := p.Length / 2

	var prims []geometry.Primitive
	if p.SouthEnclosed {
		m := profile.Transform(southBasis, geometry.V3(0, 0, half))
		prims = append(prims, geometry.MeshPrimitive("endwall-south", geometry.RoleWallPanel, geometry.LayerWalls, geometry.ColorWall, m))
	}
	if p.NorthEnclosed {
		m := profile.Transform(northBasis, geometry.V3(0, 0, -half))
		prims = append(prims, geometry.MeshPrimitive("endwall-north", geometry.RoleWallPanel, geometry.LayerWalls, geometry.ColorWall, m))
	}
	return prims
}
