package leanto

import (
	"math"

	"github.com/nerrad567/steelframe-core/internal/building"
)

// MinOuterHeight is the floor for the low side of a lean-to.
const MinOuterHeight = 1.0

// Params are the inputs of one lean-to. The struct is comparable and is used
// directly as a cache key.
type Params struct {
	Side       building.Side
	Width      float64
	Length     float64
	EaveHeight float64
	LeanTo     building.LeanTo
}

// ParamsOf extracts the inputs for the lean-to on side s.
func ParamsOf(cfg *building.Config, s building.Side) Params {
	return Params{
		Side:       s,
		Width:      cfg.Dimensions.Width,
		Length:     cfg.Dimensions.Length,
		EaveHeight: cfg.Dimensions.EaveHeight,
		LeanTo:     cfg.LeanTos.For(s),
	}
}

// Derived holds the per-side quantities every lean-to part is built from.
type Derived struct {
	// Span is main − cutL − cutR. It may be zero or negative when the cuts
	// consume the wall; geometry then degenerates to zero width.
	Span float64 `json:"span"`
	// Start and End bound the usable span along the wall. End ≥ Start.
	Start float64 `json:"start"`
	End   float64 `json:"end"`

	Depth        float64 `json:"depth"`
	AttachHeight float64 `json:"attach_height"`
	Rise         float64 `json:"rise"`
	OuterHeight  float64 `json:"outer_height"`
	SlopeLength  float64 `json:"slope_length"`
	SlopeAngle   float64 `json:"slope_angle"`
}

// Derive computes the per-side quantities.
func Derive(p Params, b Basis) Derived {
	l := p.LeanTo
	span := b.Main - l.CutL - l.CutR
	attach := p.EaveHeight - l.Drop
	rise := l.Depth * (l.RoofPitch / 12)

	return Derived{
		Span:         span,
		Start:        l.CutL,
		End:          l.CutL + math.Max(0, span),
		Depth:        l.Depth,
		AttachHeight: attach,
		Rise:         rise,
		OuterHeight:  math.Max(MinOuterHeight, attach-rise),
		SlopeLength:  math.Hypot(l.Depth, rise),
		SlopeAngle:   math.Atan2(rise, l.Depth),
	}
}

// Usable returns the non-negative span width.
func (d Derived) Usable() float64 {
	return d.End - d.Start
}

// Mid returns the span midpoint.
func (d Derived) Mid() float64 {
	return (d.Start + d.End) / 2
}

// RoofY returns the roof height at depth x along the actual slope, which
// runs from AttachHeight at the wall to OuterHeight at the outer edge.
func (d Derived) RoofY(x float64) float64 {
	if d.Depth == 0 {
		return d.AttachHeight
	}
	return d.AttachHeight + (d.OuterHeight-d.AttachHeight)*x/d.Depth
}
