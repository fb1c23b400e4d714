package scene

import (
	"github.com/nerrad567/steelframe-core/internal/building"
	"github.com/nerrad567/steelframe-core/internal/geometry"
)

// SteelColor paints structural members. It is not user-configurable.
const SteelColor = "#7a7f85"

// Palette resolves color slots to color values.
type Palette map[geometry.ColorSlot]string

// PaletteOf builds the palette for a design's colors.
func PaletteOf(c building.Colors) Palette {
	return Palette{
		geometry.ColorRoof:     c.Roof,
		geometry.ColorWall:     c.Wall,
		geometry.ColorTrim:     c.Trim,
		geometry.ColorWainscot: c.Wainscot,
		geometry.ColorSteel:    SteelColor,
	}
}
