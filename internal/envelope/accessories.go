package envelope

import (
	"fmt"

	"github.com/nerrad567/steelframe-core/internal/geometry"
)

// Accessory sizes: x across the ridge, y up, z along the ridge.
var (
	RidgeVentSize   = geometry.V3(1.2, 0.6, 2.0)
	SmallCupolaSize = geometry.V3(2.0, 2.5, 2.0)
	LargeCupolaSize = geometry.V3(3.0, 3.5, 3.0)
)

// ridgeX is where roof accessories sit: the ridge, or just inside the high
// edge of a single-slope roof.
func (e envelope) ridgeX(size geometry.Vec3) float64 {
	if e.sol.SingleFace() {
		return e.sol.Width/2 - size.X/2
	}
	return e.sol.PeakOffset
}

// spread returns n positions evenly spaced along the building length, each
// in the middle of its own bay.
func spread(length float64, n int) []float64 {
	zs := make([]float64, n)
	for i := range zs {
		zs[i] = -length/2 + (float64(i)+0.5)*length/float64(n)
	}
	return zs
}

func (e envelope) ridgeVents() []geometry.Primitive {
	if e.p.RidgeVents <= 0 {
		return nil
	}
	x := e.ridgeX(RidgeVentSize)
	y := e.roofY(x) + RidgeVentSize.Y/2

	prims := make([]geometry.Primitive, 0, e.p.RidgeVents)
	for i, z := range spread(e.p.Length, e.p.RidgeVents) {
		b := geometry.AxisBox(geometry.V3(x, y, z), RidgeVentSize)
		prims = append(prims, geometry.BoxPrimitive(fmt.Sprintf("ridge-vent-%d", i), geometry.RoleRidgeVent, geometry.LayerRoof, geometry.ColorTrim, b))
	}
	return prims
}

// cupolas emits small cupolas first, then large ones, sharing one even
// spacing along the ridge.
func (e envelope) cupolas() []geometry.Primitive {
	n := e.p.CupolasSmall + e.p.CupolasLarge
	if n <= 0 {
		return nil
	}
	zs := spread(e.p.Length, n)

	prims := make([]geometry.Primitive, 0, n)
	for i, z := range zs {
		size, class := SmallCupolaSize, "small"
		if i >= e.p.CupolasSmall {
			size, class = LargeCupolaSize, "large"
		}
		x := e.ridgeX(size)
		b := geometry.AxisBox(geometry.V3(x, e.roofY(x)+size.Y/2, z), size)
		prims = append(prims, geometry.BoxPrimitive(fmt.Sprintf("cupola-%s-%d", class, i), geometry.RoleCupola, geometry.LayerRoof, geometry.ColorWall, b))
	}
	return prims
}
