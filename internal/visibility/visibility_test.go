package visibility

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nerrad567/steelframe-core/internal/building"
	"github.com/nerrad567/steelframe-core/internal/geometry"
)

func TestFor(t *testing.T) {
	tests := []struct {
		mode building.VisibilityMode
		want Policy
	}{
		{building.VisibilityFull, Policy{ShowWalls: true, ShowRoof: true, ShowSecondary: true}},
		{building.VisibilityHideWalls, Policy{ShowWalls: false, ShowRoof: true, ShowSecondary: true}},
		{building.VisibilityHideRoof, Policy{ShowWalls: false, ShowRoof: false, ShowSecondary: true}},
		{building.VisibilityFrameOnly, Policy{ShowWalls: false, ShowRoof: false, ShowSecondary: false}},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			assert.Equal(t, tt.want, For(tt.mode))
		})
	}
}

func TestPrimaryAlwaysShown(t *testing.T) {
	for _, m := range []building.VisibilityMode{
		building.VisibilityFull, building.VisibilityHideWalls, building.VisibilityHideRoof, building.VisibilityFrameOnly,
	} {
		assert.True(t, For(m).Shows(geometry.LayerPrimary), string(m))
	}
}

func TestFilter(t *testing.T) {
	prims := []geometry.Primitive{
		{ID: "col", Layer: geometry.LayerPrimary},
		{ID: "purlin", Layer: geometry.LayerSecondary},
		{ID: "wall", Layer: geometry.LayerWalls},
		{ID: "door", Layer: geometry.LayerOpenings},
		{ID: "roof", Layer: geometry.LayerRoof},
	}

	ids := func(ps []geometry.Primitive) []string {
		out := []string{}
		for _, p := range ps {
			out = append(out, p.ID)
		}
		return out
	}

	assert.Equal(t, []string{"col", "purlin", "wall", "door", "roof"}, ids(For(building.VisibilityFull).Filter(prims)))
	assert.Equal(t, []string{"col", "purlin", "roof"}, ids(For(building.VisibilityHideWalls).Filter(prims)))
	assert.Equal(t, []string{"col", "purlin"}, ids(For(building.VisibilityHideRoof).Filter(prims)))
	assert.Equal(t, []string{"col"}, ids(For(building.VisibilityFrameOnly).Filter(prims)))
	assert.Len(t, prims, 5)
}
