package endwall

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerrad567/steelframe-core/internal/building"
	"github.com/nerrad567/steelframe-core/internal/geometry"
	"github.com/nerrad567/steelframe-core/internal/roof"
)

const eps = 1e-9

func solve(style building.RoofStyle, offset float64) roof.Solution {
	return roof.Solve(roof.Params{Style: style, Width: 30, Pitch: 4, AsymmetricOffset: offset})
}

func TestGablePentagon(t *testing.T) {
	m := Profile(solve(building.RoofGable, 5), 12)

	require.Len(t, m.Vertices, 5)
	assert.Equal(t, 3, m.TriangleCount())
	apex := m.Vertices[3]
	assert.InDelta(t, 0.0, apex.X, eps)
	assert.InDelta(t, 17+ApexTolerance, apex.Y, eps)

	assert.InDelta(t, 1.0, m.UVs[3].V, eps)
	assert.InDelta(t, 12/(17+ApexTolerance), m.UVs[2].V, eps)
	assert.InDelta(t, 0.5, m.UVs[3].U, eps)
}

func TestAsymmetricApexFollowsPeak(t *testing.T) {
	sol := solve(building.RoofAsymmetrical, 7)
	m := Profile(sol, 12)

	assert.InDelta(t, sol.PeakOffset, m.Vertices[3].X, eps)
	assert.InDelta(t, 4.8, m.Vertices[3].X, eps)
	assert.InDelta(t, 17+ApexTolerance, m.Vertices[3].Y, eps)
}

func TestSingleSlopeQuad(t *testing.T) {
	m := Profile(solve(building.RoofSingleSlope, 5), 12)

	require.Len(t, m.Vertices, 4)
	assert.Equal(t, 2, m.TriangleCount())
	assert.InDelta(t, 17.0, m.Vertices[2].Y, eps)
	assert.InDelta(t, 15.0, m.Vertices[2].X, eps)
	assert.InDelta(t, 12.0, m.Vertices[3].Y, eps)
	assert.InDelta(t, 12.0/17, m.UVs[3].V, eps)
}

func TestProfileFacesPositiveZ(t *testing.T) {
	m := Profile(solve(building.RoofGable, 5), 12)
	for i := 0; i < len(m.Indices); i += 3 {
		a, b, c := m.Vertices[m.Indices[i]], m.Vertices[m.Indices[i+1]], m.Vertices[m.Indices[i+2]]
		n := b.Sub(a).Cross(c.Sub(a))
		assert.Greater(t, n.Z, 0.0, "triangle %d", i/3)
	}
}

func TestBuildPlacesWalls(t *testing.T) {
	p := Params{
		Roof:          roof.Params{Style: building.RoofGable, Width: 30, Pitch: 4, AsymmetricOffset: 5},
		Length:        40,
		EaveHeight:    12,
		NorthEnclosed: true,
		SouthEnclosed: true,
	}
	prims := Build(p)
	require.Len(t, prims, 2)

	south, north := prims[0], prims[1]
	assert.Equal(t, "endwall-south", south.ID)
	assert.Equal(t, geometry.LayerWalls, south.Layer)
	assert.Equal(t, geometry.ColorWall, south.Color)
	for _, v := range south.Mesh.Vertices {
		assert.InDelta(t, 20.0, v.Z, eps)
	}
	for _, v := range north.Mesh.Vertices {
		assert.InDelta(t, -20.0, v.Z, eps)
	}

	// The north wall faces outward, away from the building.
	v := north.Mesh.Vertices
	i := north.Mesh.Indices
	n := v[i[1]].Sub(v[i[0]]).Cross(v[i[2]].Sub(v[i[0]]))
	assert.Less(t, n.Z, 0.0)

	p.NorthEnclosed = false
	assert.Len(t, Build(p), 1)
}
