package opening

import (
	"fmt"
	"strings"

	"github.com/nerrad567/steelframe-core/internal/building"
	"github.com/nerrad567/steelframe-core/internal/geometry"
	"github.com/nerrad567/steelframe-core/internal/leanto"
)

// Thickness and Proud size opening panels and lift them just off the wall.
const (
	Thickness = 0.1
	Proud     = 0.06
)

// Params are the inputs of the opening stage.
type Params struct {
	Dimensions building.Dimensions
	Openings   []building.Opening
}

// Key flattens the params into a string usable as a cache key. Floats are
// printed in their shortest exact form, so distinct inputs give distinct keys.
func (p Params) Key() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%v|%v|%v", p.Dimensions.Width, p.Dimensions.Length, p.Dimensions.EaveHeight)
	for _, o := range p.Openings {
		fmt.Fprintf(&sb, "|%s,%s,%s,%v,%v,%v,%v", o.ID, o.Type, o.Wall, o.Position, o.Width, o.Height, o.BottomOffset)
	}
	return sb.String()
}

// ParamsOf extracts the opening inputs from a design.
func ParamsOf(cfg *building.Config) Params {
	return Params{Dimensions: cfg.Dimensions, Openings: cfg.Openings}
}

// Build emits one panel per opening, clamped to its wall at read time.
func Build(p Params) []geometry.Primitive {
	prims := make([]geometry.Primitive, 0, len(p.Openings))
	for _, stored := range p.Openings {
		o := building.ClampOpening(stored, p.Dimensions)
		b := leanto.BasisFor(o.Wall, p.Dimensions.Width, p.Dimensions.Length)
		y := o.BottomOffset + o.Height/2
		box := geometry.Beam(
			b.World(Proud, y, o.Position),
			b.World(Proud, y, o.Position+o.Width),
			Thickness, o.Height,
		)
		prims = append(prims, geometry.BoxPrimitive("opening-"+o.ID, geometry.RoleOpening, geometry.LayerOpenings, geometry.ColorTrim, box))
	}
	return prims
}
