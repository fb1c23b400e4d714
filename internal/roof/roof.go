// Package roof solves the main roof for rise, slope angles and panel lengths.
//
// All results follow from width, pitch, style and asymmetric offset. The
// ridge height is the same for every style at a given width and pitch; an
// asymmetrical roof therefore has two different effective pitches.
package roof

import (
	"math"

	"github.com/nerrad567/steelframe-core/internal/building"
)

// Asymmetric ridge placement.
const (
	// centeredOffset is the asymmetric offset that puts the ridge at mid-width.
	centeredOffset = 5.0

	// peakTravel limits the ridge to 80% of the half width.
	peakTravel = 0.8
)

// Params are the inputs of the solver. The struct is comparable and is
// used directly as a cache key.
type Params struct {
	Style            building.RoofStyle
	Width            float64
	Pitch            float64
	AsymmetricOffset float64
}

// ParamsOf extracts the solver inputs from a design.
func ParamsOf(cfg *building.Config) Params {
	return Params{
		Style:            cfg.Roof.Style,
		Width:            cfg.Dimensions.Width,
		Pitch:            cfg.Roof.Pitch,
		AsymmetricOffset: cfg.Roof.AsymmetricOffset,
	}
}

// Face is one sloped roof plane, described by its horizontal run.
type Face struct {
	Run    float64 `json:"run"`
	Angle  float64 `json:"angle"`
	Length float64 `json:"length"`
}

// Solution is the solved roof.
type Solution struct {
	Style building.RoofStyle `json:"style"`
	Width float64            `json:"width"`

	// Rise is the height of the ridge (or high side) above the eave.
	Rise float64 `json:"rise"`
	// Angle and PanelLength describe the nominal slope: the half-width slope
	// for gable and asymmetrical roofs, the full-width slope for single-slope.
	Angle       float64 `json:"angle"`
	PanelLength float64 `json:"panel_length"`

	// PeakOffset is the ridge x position. Zero for gable; W/2 for single-slope,
	// where the "ridge" is the high east edge.
	PeakOffset float64 `json:"peak_offset"`

	// Left is the west face, Right the east face. Single-slope roofs have only Left.
	Left  Face `json:"left"`
	Right Face `json:"right"`
}

// Rise returns (width/2)*(pitch/12).
func Rise(width, pitch float64) float64 {
	return (width / 2) * (pitch / 12)
}

// PeakOffset returns the ridge x position for an asymmetrical roof.
// An offset of 5 centers the ridge.
func PeakOffset(width, asymmetricOffset float64) float64 {
	return ((asymmetricOffset - centeredOffset) / centeredOffset) * (width / 2) * peakTravel
}

func face(run, rise float64) Face {
	return Face{
		Run:    run,
		Angle:  math.Atan2(rise, run),
		Length: math.Hypot(run, rise),
	}
}

// Solve derives the roof geometry.
func Solve(p Params) Solution {
	half := p.Width / 2
	rise := Rise(p.Width, p.Pitch)

	s := Solution{
		Style:       p.Style,
		Width:       p.Width,
		Rise:        rise,
		Angle:       math.Atan2(rise, half),
		PanelLength: math.Hypot(half, rise),
	}

	switch p.Style {
	case building.RoofSingleSlope:
		full := face(p.Width, rise)
		s.Angle = full.Angle
		s.PanelLength = full.Length
		s.PeakOffset = half
		s.Left = full
	case building.RoofAsymmetrical:
		s.PeakOffset = PeakOffset(p.Width, p.AsymmetricOffset)
		s.Left = face(half+s.PeakOffset, rise)
		s.Right = face(half-s.PeakOffset, rise)
	default:
		s.Left = face(half, rise)
		s.Right = s.Left
	}
	return s
}

// SingleFace reports whether the roof has one plane.
func (s Solution) SingleFace() bool {
	return s.Style == building.RoofSingleSlope
}

// HasRidge reports whether the roof has a ridge line between two faces.
func (s Solution) HasRidge() bool {
	return !s.SingleFace()
}

// HeightAt returns the roof surface height above the eave at x, for x in
// [−W/2, W/2]. Values outside the footprint continue the adjacent slope,
// which is what overhangs use.
func (s Solution) HeightAt(x float64) float64 {
	half := s.Width / 2
	if s.SingleFace() {
		if s.Width == 0 {
			return 0
		}
		return s.Rise * (x + half) / s.Width
	}
	if x <= s.PeakOffset {
		if s.Left.Run == 0 {
			return s.Rise
		}
		return s.Rise * (x + half) / s.Left.Run
	}
	if s.Right.Run == 0 {
		return s.Rise
	}
	return s.Rise * (half - x) / s.Right.Run
}

// Slope returns rise over run for the face containing x, signed so that
// height increases with x on a positive slope.
func (s Solution) Slope(x float64) float64 {
	if s.SingleFace() {
		return s.Rise / s.Width
	}
	if x <= s.PeakOffset {
		return s.Rise / s.Left.Run
	}
	return -s.Rise / s.Right.Run
}
