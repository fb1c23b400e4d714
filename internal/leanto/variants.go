package leanto

import "github.com/nerrad567/steelframe-core/internal/building"

// Coverage describes which walls and trim a lean-to variant gets. Every
// variant has a roof.
type Coverage struct {
	FrontWall   bool
	EndWalls    bool
	GableInfill bool
	Apron       bool

	EaveTrim   bool
	CornerTrim bool
	RakeTrim   bool
	ApronTrim  bool
}

// ApronHeight is the depth of the hanging front panel on the 2ft-apron variant.
const ApronHeight = 2.0

var coverage = map[building.LeanToVariant]Coverage{
	building.VariantFullLength: {
		FrontWall: true,
		EaveTrim:  true, CornerTrim: true,
	},
	building.VariantFullyEnclosed: {
		FrontWall: true, EndWalls: true,
		EaveTrim: true, CornerTrim: true, RakeTrim: true,
	},
	building.VariantOpen: {},
	building.VariantGableDress: {
		GableInfill: true,
		RakeTrim:    true,
	},
	building.VariantGableWallsOnly: {
		EndWalls:   true,
		CornerTrim: true, RakeTrim: true,
	},
	building.VariantApron: {
		Apron:     true,
		ApronTrim: true,
	},
}

// CoverageFor returns the wall and trim table entry for a variant. Unknown
// variants get no walls or trim.
func CoverageFor(v building.LeanToVariant) Coverage {
	return coverage[v]
}
