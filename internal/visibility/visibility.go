// Package visibility maps the four-state display mode to per-layer flags
// and filters primitives by them.
package visibility

import (
	"github.com/nerrad567/steelframe-core/internal/building"
	"github.com/nerrad567/steelframe-core/internal/geometry"
)

// Policy holds the show flags for one display mode. Primary members have
// no flag: they always render.
type Policy struct {
	ShowWalls     bool `json:"show_walls"`
	ShowRoof      bool `json:"show_roof"`
	ShowSecondary bool `json:"show_secondary"`
}

// For returns the policy for a mode.
//
//	mode        walls  roof   secondary
//	full        yes    yes    yes
//	hide-walls  no     yes    yes
//	hide-roof   no     no     yes
//	frame-only  no     no     no
func For(mode building.VisibilityMode) Policy {
	return Policy{
		ShowWalls:     mode == building.VisibilityFull,
		ShowRoof:      mode == building.VisibilityFull || mode == building.VisibilityHideWalls,
		ShowSecondary: mode != building.VisibilityFrameOnly,
	}
}

// Shows reports whether primitives on layer l are emitted. Openings sit on
// walls and follow the wall flag.
func (p Policy) Shows(l geometry.Layer) bool {
	switch l {
	case geometry.LayerPrimary:
		return true
	case geometry.LayerSecondary:
		return p.ShowSecondary
	case geometry.LayerWalls, geometry.LayerOpenings:
		return p.ShowWalls
	case geometry.LayerRoof:
		return p.ShowRoof
	}
	return false
}

// Filter returns the primitives the policy shows, in their original order.
// The input slice is not modified.
func (p Policy) Filter(prims []geometry.Primitive) []geometry.Primitive {
	out := make([]geometry.Primitive, 0, len(prims))
	for _, prim := range prims {
		if p.Shows(prim.Layer) {
			out = append(out, prim)
		}
	}
	return out
}
