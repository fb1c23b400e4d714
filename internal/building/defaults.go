package building

// Default design values.
const (
	DefaultWidth            = 30.0
	DefaultLength           = 40.0
	DefaultEaveHeight       = 12.0
	DefaultPitch            = 3.0
	DefaultAsymmetricOffset = 5.0
	DefaultWainscotHeight   = 3.0

	DefaultLeanToDepth     = 10.0
	DefaultLeanToRoofPitch = 2.0
	DefaultLeanToDrop      = 1.0
)

// Default returns the startup design: a 30x40 gable building with every
// wall enclosed and all lean-tos disabled.
func Default() *Config {
	leanTo := DefaultLeanTo()
	return &Config{
		Dimensions: Dimensions{
			Width:      DefaultWidth,
			Length:     DefaultLength,
			EaveHeight: DefaultEaveHeight,
		},
		Roof: Roof{
			Style:            RoofGable,
			Pitch:            DefaultPitch,
			AsymmetricOffset: DefaultAsymmetricOffset,
		},
		Colors: Colors{
			Roof:     "#8b1a1a",
			Wall:     "#f2efe6",
			Trim:     "#2b2b2b",
			Wainscot: "#2b2b2b",
		},
		Walls: Walls{
			Enclosed:        Enclosure{North: true, South: true, East: true, West: true},
			WainscotEnabled: false,
			WainscotHeight:  DefaultWainscotHeight,
		},
		LeanTos: LeanTos{
			South: leanTo,
			North: leanTo,
			East:  leanTo,
			West:  leanTo,
		},
		LegacyLeanTos: []LegacyLeanTo{},
		Openings:      []Opening{},
		Environment: Environment{
			SkyColor:    "#bcd9f0",
			GroundColor: "#6f8f4e",
			ShowGrid:    true,
		},
		Interaction: DefaultInteraction(),
	}
}

// DefaultLeanTo returns a disabled lean-to with usable dimensions, so that
// enabling it alone produces a sensible structure.
func DefaultLeanTo() LeanTo {
	return LeanTo{
		Enabled:   false,
		Drop:      DefaultLeanToDrop,
		Depth:     DefaultLeanToDepth,
		RoofPitch: DefaultLeanToRoofPitch,
		Variant:   VariantOpen,
	}
}

// DefaultInteraction returns the view state restored by ResetView.
func DefaultInteraction() InteractionState {
	return InteractionState{
		ViewMode:       ViewPerspective,
		VisibilityMode: VisibilityFull,
	}
}
