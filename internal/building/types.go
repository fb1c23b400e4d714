package building

// Side identifies one of the four main walls.
type Side string

const (
	SideSouth Side = "south"
	SideNorth Side = "north"
	SideEast  Side = "east"
	SideWest  Side = "west"
)

// AllSides returns the four sides in canonical order.
func AllSides() []Side {
	return []Side{SideSouth, SideNorth, SideEast, SideWest}
}

// IsEndWall reports whether the side is a gable end (north or south).
func (s Side) IsEndWall() bool {
	return s == SideSouth || s == SideNorth
}

// RoofStyle is the main roof form.
type RoofStyle string

const (
	RoofGable        RoofStyle = "gable"
	RoofSingleSlope  RoofStyle = "single-slope"
	RoofAsymmetrical RoofStyle = "asymmetrical"
)

// AllRoofStyles returns every supported roof style.
func AllRoofStyles() []RoofStyle {
	return []RoofStyle{RoofGable, RoofSingleSlope, RoofAsymmetrical}
}

// LeanToVariant selects which wall coverage a lean-to gets.
type LeanToVariant string

const (
	VariantFullLength     LeanToVariant = "full-length"
	VariantFullyEnclosed  LeanToVariant = "fully-enclosed"
	VariantOpen           LeanToVariant = "open"
	VariantGableDress     LeanToVariant = "gable-dress"
	VariantGableWallsOnly LeanToVariant = "gable-walls-only"
	VariantApron          LeanToVariant = "2ft-apron"
)

// AllLeanToVariants returns the six mutually exclusive wall variants.
func AllLeanToVariants() []LeanToVariant {
	return []LeanToVariant{
		VariantFullLength,
		VariantFullyEnclosed,
		VariantOpen,
		VariantGableDress,
		VariantGableWallsOnly,
		VariantApron,
	}
}

// OpeningType is the door or window variant of an opening.
type OpeningType string

const (
	OpeningWalkDoor   OpeningType = "walk-door"
	OpeningRollUpDoor OpeningType = "roll-up-door"
	OpeningWindow     OpeningType = "window"
)

// AllOpeningTypes returns every supported opening type.
func AllOpeningTypes() []OpeningType {
	return []OpeningType{OpeningWalkDoor, OpeningRollUpDoor, OpeningWindow}
}

// IsWindow reports whether the opening floats above the floor.
func (t OpeningType) IsWindow() bool {
	return t == OpeningWindow
}

// ColorSlotName identifies one of the four independent color assignments.
type ColorSlotName string

const (
	SlotRoof     ColorSlotName = "roof"
	SlotWall     ColorSlotName = "wall"
	SlotTrim     ColorSlotName = "trim"
	SlotWainscot ColorSlotName = "wainscot"
)

// ViewMode is the camera preset the viewer is in.
type ViewMode string

const (
	ViewPerspective ViewMode = "perspective"
	ViewFront       ViewMode = "front"
	ViewSide        ViewMode = "side"
	ViewTop         ViewMode = "top"
)

// VisibilityMode is the four-state display mode.
type VisibilityMode string

const (
	VisibilityFull      VisibilityMode = "full"
	VisibilityHideWalls VisibilityMode = "hide-walls"
	VisibilityHideRoof  VisibilityMode = "hide-roof"
	VisibilityFrameOnly VisibilityMode = "frame-only"
)

// Config is the root design snapshot consumed by the geometry engine.
type Config struct {
	Dimensions    Dimensions       `json:"dimensions" yaml:"dimensions"`
	Roof          Roof             `json:"roof" yaml:"roof"`
	Colors        Colors           `json:"colors" yaml:"colors"`
	Walls         Walls            `json:"walls" yaml:"walls"`
	LeanTos       LeanTos          `json:"lean_tos" yaml:"lean_tos"`
	LegacyLeanTos []LegacyLeanTo   `json:"legacy_lean_tos" yaml:"legacy_lean_tos"`
	Openings      []Opening        `json:"openings" yaml:"openings"`
	Environment   Environment      `json:"environment" yaml:"environment"`
	Interaction   InteractionState `json:"interaction" yaml:"interaction"`
}

// Dimensions are the main building extents in feet.
type Dimensions struct {
	Width      float64 `json:"width" yaml:"width"`
	Length     float64 `json:"length" yaml:"length"`
	EaveHeight float64 `json:"eave_height" yaml:"eave_height"`
}

// Overhangs are per-side roof overhang distances in feet.
type Overhangs struct {
	North float64 `json:"north" yaml:"north"`
	South float64 `json:"south" yaml:"south"`
	East  float64 `json:"east" yaml:"east"`
	West  float64 `json:"west" yaml:"west"`
}

// For returns the overhang on the given side.
func (o Overhangs) For(s Side) float64 {
	switch s {
	case SideNorth:
		return o.North
	case SideSouth:
		return o.South
	case SideEast:
		return o.East
	case SideWest:
		return o.West
	}
	return 0
}

// With returns a copy with the given side replaced.
func (o Overhangs) With(s Side, v float64) Overhangs {
	switch s {
	case SideNorth:
		o.North = v
	case SideSouth:
		o.South = v
	case SideEast:
		o.East = v
	case SideWest:
		o.West = v
	}
	return o
}

// Roof holds the roof form and accessories.
type Roof struct {
	Style RoofStyle `json:"style" yaml:"style"`
	// Pitch is rise per 12 units of run.
	Pitch float64 `json:"pitch" yaml:"pitch"`
	// AsymmetricOffset moves the ridge; 5 centers it.
	AsymmetricOffset float64   `json:"asymmetric_offset" yaml:"asymmetric_offset"`
	Overhangs        Overhangs `json:"overhangs" yaml:"overhangs"`
	RidgeVents       int       `json:"ridge_vents" yaml:"ridge_vents"`
	CupolasSmall     int       `json:"cupolas_small" yaml:"cupolas_small"`
	CupolasLarge     int       `json:"cupolas_large" yaml:"cupolas_large"`
}

// Colors are the four visual color assignments. They have no geometric effect.
type Colors struct {
	Roof     string `json:"roof" yaml:"roof"`
	Wall     string `json:"wall" yaml:"wall"`
	Trim     string `json:"trim" yaml:"trim"`
	Wainscot string `json:"wainscot" yaml:"wainscot"`
}

// With returns a copy with the given slot replaced.
func (c Colors) With(slot ColorSlotName, value string) Colors {
	switch slot {
	case SlotRoof:
		c.Roof = value
	case SlotWall:
		c.Wall = value
	case SlotTrim:
		c.Trim = value
	case SlotWainscot:
		c.Wainscot = value
	}
	return c
}

// Enclosure records which main walls are enclosed.
type Enclosure struct {
	North bool `json:"north" yaml:"north"`
	South bool `json:"south" yaml:"south"`
	East  bool `json:"east" yaml:"east"`
	West  bool `json:"west" yaml:"west"`
}

// For reports whether the given side is enclosed.
func (e Enclosure) For(s Side) bool {
	switch s {
	case SideNorth:
		return e.North
	case SideSouth:
		return e.South
	case SideEast:
		return e.East
	case SideWest:
		return e.West
	}
	return false
}

// With returns a copy with the given side replaced.
func (e Enclosure) With(s Side, v bool) Enclosure {
	switch s {
	case SideNorth:
		e.North = v
	case SideSouth:
		e.South = v
	case SideEast:
		e.East = v
	case SideWest:
		e.West = v
	}
	return e
}

// Walls holds wall enclosure and wainscot settings.
type Walls struct {
	Enclosed        Enclosure `json:"enclosed" yaml:"enclosed"`
	WainscotEnabled bool      `json:"wainscot_enabled" yaml:"wainscot_enabled"`
	WainscotHeight  float64   `json:"wainscot_height" yaml:"wainscot_height"`
}

// LeanTo configures the attached structure on one side.
type LeanTo struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
	// Drop lowers the attach line below the main eave.
	Drop float64 `json:"drop" yaml:"drop"`
	// CutL and CutR truncate the span from each end.
	CutL      float64       `json:"cut_l" yaml:"cut_l"`
	CutR      float64       `json:"cut_r" yaml:"cut_r"`
	Depth     float64       `json:"depth" yaml:"depth"`
	RoofPitch float64       `json:"roof_pitch" yaml:"roof_pitch"`
	Variant   LeanToVariant `json:"variant" yaml:"variant"`
}

// LeanTos holds one lean-to configuration per side.
type LeanTos struct {
	South LeanTo `json:"south" yaml:"south"`
	North LeanTo `json:"north" yaml:"north"`
	East  LeanTo `json:"east" yaml:"east"`
	West  LeanTo `json:"west" yaml:"west"`
}

// For returns the lean-to on the given side.
func (l LeanTos) For(s Side) LeanTo {
	switch s {
	case SideNorth:
		return l.North
	case SideSouth:
		return l.South
	case SideEast:
		return l.East
	case SideWest:
		return l.West
	}
	return LeanTo{}
}

// With returns a copy with the given side replaced.
func (l LeanTos) With(s Side, v LeanTo) LeanTos {
	switch s {
	case SideNorth:
		l.North = v
	case SideSouth:
		l.South = v
	case SideEast:
		l.East = v
	case SideWest:
		l.West = v
	}
	return l
}

// LegacyLeanTo is a free-standing lean-to record kept for older designs.
// Per-side LeanTo configs supersede it; it does not feed geometry.
type LegacyLeanTo struct {
	ID     string  `json:"id" yaml:"id"`
	Side   Side    `json:"side" yaml:"side"`
	Width  float64 `json:"width" yaml:"width"`
	Depth  float64 `json:"depth" yaml:"depth"`
	Height float64 `json:"height" yaml:"height"`
}

// Opening is a door or window on one of the main walls.
type Opening struct {
	ID   string      `json:"id" yaml:"id"`
	Type OpeningType `json:"type" yaml:"type"`
	Wall Side        `json:"wall" yaml:"wall"`
	// Position is the distance along the wall's span axis to the opening's near edge.
	Position     float64 `json:"position" yaml:"position"`
	Width        float64 `json:"width" yaml:"width"`
	Height       float64 `json:"height" yaml:"height"`
	BottomOffset float64 `json:"bottom_offset" yaml:"bottom_offset"`
}

// Environment holds scene dressing with no geometric effect.
type Environment struct {
	SkyColor    string `json:"sky_color" yaml:"sky_color"`
	GroundColor string `json:"ground_color" yaml:"ground_color"`
	ShowGrid    bool   `json:"show_grid" yaml:"show_grid"`
}

// InteractionState is the editor state carried alongside the design.
type InteractionState struct {
	PlacementMode     bool           `json:"placement_mode" yaml:"placement_mode"`
	SelectedOpeningID string         `json:"selected_opening_id,omitempty" yaml:"selected_opening_id"`
	Dragging          bool           `json:"dragging" yaml:"dragging"`
	ExpandedPanel     string         `json:"expanded_panel,omitempty" yaml:"expanded_panel"`
	ViewMode          ViewMode       `json:"view_mode" yaml:"view_mode"`
	VisibilityMode    VisibilityMode `json:"visibility_mode" yaml:"visibility_mode"`
}

// WallLength returns the span of a main wall: width for north and south,
// length for east and west.
func (d Dimensions) WallLength(s Side) float64 {
	if s.IsEndWall() {
		return d.Width
	}
	return d.Length
}

// DeepCopy returns an independent copy of the configuration.
func (c *Config) DeepCopy() *Config {
	if c == nil {
		return nil
	}
	cpy := *c
	if c.Openings != nil {
		cpy.Openings = make([]Opening, len(c.Openings))
		copy(cpy.Openings, c.Openings)
	}
	if c.LegacyLeanTos != nil {
		cpy.LegacyLeanTos = make([]LegacyLeanTo, len(c.LegacyLeanTos))
		copy(cpy.LegacyLeanTos, c.LegacyLeanTos)
	}
	return &cpy
}

// OpeningByID returns the opening with the given ID.
func (c *Config) OpeningByID(id string) (Opening, bool) {
	for _, o := range c.Openings {
		if o.ID == id {
			return o, true
		}
	}
	return Opening{}, false
}
