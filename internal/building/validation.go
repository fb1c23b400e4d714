package building

import (
	"fmt"
	"math"
)

// Accepted ranges. Values inside these ranges are never altered.
const (
	MinPitch            = 1.0
	MaxPitch            = 6.0
	MinAsymmetricOffset = 1.0
	MaxAsymmetricOffset = 9.0
	MaxRidgeVents       = 10
	MaxCupolas          = 5

	MaxLeanToDrop  = 5.0
	MaxLeanToCut   = 20.0
	MinLeanToDepth = 4.0
	MaxLeanToDepth = 20.0

	// NominalWallHeight is the fixed ceiling used to clamp window bottom
	// offsets. It does not follow the real eave height.
	NominalWallHeight = 14.0
)

// Pre-computed validation sets.
var (
	validSides          map[Side]struct{}
	validRoofStyles     map[RoofStyle]struct{}
	validLeanToVariants map[LeanToVariant]struct{}
	validOpeningTypes   map[OpeningType]struct{}
	validViewModes      map[ViewMode]struct{}
	validVisibility     map[VisibilityMode]struct{}
)

func init() {
	validSides = setOf(AllSides())
	validRoofStyles = setOf(AllRoofStyles())
	validLeanToVariants = setOf(AllLeanToVariants())
	validOpeningTypes = setOf(AllOpeningTypes())
	validViewModes = setOf([]ViewMode{ViewPerspective, ViewFront, ViewSide, ViewTop})
	validVisibility = setOf([]VisibilityMode{VisibilityFull, VisibilityHideWalls, VisibilityHideRoof, VisibilityFrameOnly})
}

func setOf[T comparable](values []T) map[T]struct{} {
	m := make(map[T]struct{}, len(values))
	for _, v := range values {
		m[v] = struct{}{}
	}
	return m
}

// ValidSide reports whether s is one of the four main sides.
func ValidSide(s Side) bool {
	_, ok := validSides[s]
	return ok
}

// ValidColorSlot reports whether slot names one of the four color assignments.
func ValidColorSlot(slot ColorSlotName) bool {
	switch slot {
	case SlotRoof, SlotWall, SlotTrim, SlotWainscot:
		return true
	}
	return false
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func inRange(v, lo, hi float64) bool {
	return finite(v) && v >= lo && v <= hi
}

// ValidateDimensions checks that every dimension is a positive finite number.
func ValidateDimensions(d Dimensions) error {
	if !finite(d.Width) || d.Width <= 0 {
		return fmt.Errorf("%w: width must be > 0", ErrInvalidDimensions)
	}
	if !finite(d.Length) || d.Length <= 0 {
		return fmt.Errorf("%w: length must be > 0", ErrInvalidDimensions)
	}
	if !finite(d.EaveHeight) || d.EaveHeight <= 0 {
		return fmt.Errorf("%w: eave height must be > 0", ErrInvalidDimensions)
	}
	return nil
}

// ValidateRoof checks the roof style and the ranges of its numeric fields.
func ValidateRoof(r Roof) error {
	if _, ok := validRoofStyles[r.Style]; !ok {
		return fmt.Errorf("%w: unknown style %q", ErrInvalidRoof, r.Style)
	}
	if !inRange(r.Pitch, MinPitch, MaxPitch) {
		return fmt.Errorf("%w: pitch must be between %g and %g", ErrInvalidRoof, MinPitch, MaxPitch)
	}
	if !inRange(r.AsymmetricOffset, MinAsymmetricOffset, MaxAsymmetricOffset) {
		return fmt.Errorf("%w: asymmetric offset must be between %g and %g", ErrInvalidRoof, MinAsymmetricOffset, MaxAsymmetricOffset)
	}
	for _, s := range AllSides() {
		if err := ValidateOverhang(r.Overhangs.For(s)); err != nil {
			return err
		}
	}
	if r.RidgeVents < 0 || r.RidgeVents > MaxRidgeVents {
		return fmt.Errorf("%w: ridge vents must be between 0 and %d", ErrInvalidRoof, MaxRidgeVents)
	}
	if r.CupolasSmall < 0 || r.CupolasSmall > MaxCupolas || r.CupolasLarge < 0 || r.CupolasLarge > MaxCupolas {
		return fmt.Errorf("%w: cupola counts must be between 0 and %d", ErrInvalidRoof, MaxCupolas)
	}
	return nil
}

// ValidateOverhang checks a single overhang distance.
func ValidateOverhang(v float64) error {
	if !finite(v) || v < 0 {
		return fmt.Errorf("%w: overhang must be >= 0", ErrInvalidRoof)
	}
	return nil
}

// ValidateWalls checks the wainscot height.
func ValidateWalls(w Walls) error {
	if !finite(w.WainscotHeight) || w.WainscotHeight < 0 {
		return fmt.Errorf("%w: wainscot height must be >= 0", ErrInvalidWalls)
	}
	return nil
}

// ValidateLeanTo checks the lean-to ranges. A cut that consumes the whole
// span is accepted; the resulting geometry degenerates to zero width.
func ValidateLeanTo(l LeanTo) error {
	if _, ok := validLeanToVariants[l.Variant]; !ok {
		return fmt.Errorf("%w: unknown variant %q", ErrInvalidLeanTo, l.Variant)
	}
	if !inRange(l.Drop, 0, MaxLeanToDrop) {
		return fmt.Errorf("%w: drop must be between 0 and %g", ErrInvalidLeanTo, MaxLeanToDrop)
	}
	if !inRange(l.CutL, 0, MaxLeanToCut) || !inRange(l.CutR, 0, MaxLeanToCut) {
		return fmt.Errorf("%w: cuts must be between 0 and %g", ErrInvalidLeanTo, MaxLeanToCut)
	}
	if !inRange(l.Depth, MinLeanToDepth, MaxLeanToDepth) {
		return fmt.Errorf("%w: depth must be between %g and %g", ErrInvalidLeanTo, MinLeanToDepth, MaxLeanToDepth)
	}
	if !inRange(l.RoofPitch, MinPitch, MaxPitch) {
		return fmt.Errorf("%w: roof pitch must be between %g and %g", ErrInvalidLeanTo, MinPitch, MaxPitch)
	}
	return nil
}

// ValidateOpening checks the opening type, wall and size. Position and
// bottom offset are not validated; ClampOpening brings them into range.
func ValidateOpening(o Opening) error {
	if _, ok := validOpeningTypes[o.Type]; !ok {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidOpening, o.Type)
	}
	if !ValidSide(o.Wall) {
		return fmt.Errorf("%w: unknown wall %q", ErrInvalidOpening, o.Wall)
	}
	if !finite(o.Width) || o.Width <= 0 || !finite(o.Height) || o.Height <= 0 {
		return fmt.Errorf("%w: width and height must be > 0", ErrInvalidOpening)
	}
	if !finite(o.Position) || !finite(o.BottomOffset) {
		return fmt.Errorf("%w: position and bottom offset must be finite", ErrInvalidOpening)
	}
	return nil
}

// ValidateLegacyLeanTo checks a legacy lean-to record.
func ValidateLegacyLeanTo(l LegacyLeanTo) error {
	if !ValidSide(l.Side) {
		return fmt.Errorf("%w: unknown side %q", ErrInvalidLeanTo, l.Side)
	}
	if !finite(l.Width) || l.Width <= 0 || !finite(l.Depth) || l.Depth <= 0 || !finite(l.Height) || l.Height <= 0 {
		return fmt.Errorf("%w: width, depth and height must be > 0", ErrInvalidLeanTo)
	}
	return nil
}

// ValidateInteraction checks the view and visibility modes.
func ValidateInteraction(i InteractionState) error {
	if _, ok := validViewModes[i.ViewMode]; !ok {
		return fmt.Errorf("%w: unknown view mode %q", ErrInvalidView, i.ViewMode)
	}
	if _, ok := validVisibility[i.VisibilityMode]; !ok {
		return fmt.Errorf("%w: unknown visibility mode %q", ErrInvalidView, i.VisibilityMode)
	}
	return nil
}

// ValidVisibilityMode reports whether m is one of the four display modes.
func ValidVisibilityMode(m VisibilityMode) bool {
	_, ok := validVisibility[m]
	return ok
}

// ValidViewMode reports whether m is a known camera preset.
func ValidViewMode(m ViewMode) bool {
	_, ok := validViewModes[m]
	return ok
}

// Validate checks a whole configuration, as done before replacing the
// current design with a loaded one.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: nil config", ErrInvalidDimensions)
	}
	if err := ValidateDimensions(c.Dimensions); err != nil {
		return err
	}
	if err := ValidateRoof(c.Roof); err != nil {
		return err
	}
	if err := ValidateWalls(c.Walls); err != nil {
		return err
	}
	for _, s := range AllSides() {
		if err := ValidateLeanTo(c.LeanTos.For(s)); err != nil {
			return fmt.Errorf("%s: %w", s, err)
		}
	}
	for _, o := range c.Openings {
		if err := ValidateOpening(o); err != nil {
			return fmt.Errorf("opening %s: %w", o.ID, err)
		}
	}
	for _, l := range c.LegacyLeanTos {
		if err := ValidateLegacyLeanTo(l); err != nil {
			return fmt.Errorf("legacy lean-to %s: %w", l.ID, err)
		}
	}
	return ValidateInteraction(c.Interaction)
}

// ClampOpening brings position and bottom offset into their legal ranges
// for the given dimensions:
//
//	position     ∈ [0, wallLength − width]
//	bottomOffset ∈ [0, NominalWallHeight − height]   (windows)
//	bottomOffset = 0                                  (doors)
//
// When the opening is wider than the wall, position clamps to 0.
func ClampOpening(o Opening, d Dimensions) Opening {
	o.Position = clampRange(o.Position, 0, d.WallLength(o.Wall)-o.Width)
	if o.Type.IsWindow() {
		o.BottomOffset = clampRange(o.BottomOffset, 0, NominalWallHeight-o.Height)
	} else {
		o.BottomOffset = 0
	}
	return o
}

// clampRange clamps v to [lo, hi]; an inverted range collapses to lo.
func clampRange(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	return math.Max(lo, math.Min(hi, v))
}
