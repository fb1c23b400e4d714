package export

import (
	"errors"
	"fmt"
	"time"

	"github.com/nerrad567/steelframe-core/internal/building"
	"github.com/nerrad567/steelframe-core/internal/scene"
)

// ErrNoDesign is returned when a report has no configuration to render.
var ErrNoDesign = errors.New("export: report has no design")

// Report is everything an export renders: the design, its unfiltered scene
// and a title.
type Report struct {
	Name      string
	Config    *building.Config
	Scene     scene.Scene
	Generated time.Time
}

func (r Report) validate() error {
	if r.Config == nil {
		return ErrNoDesign
	}
	return nil
}

func (r Report) title() string {
	if r.Name == "" {
		return "Untitled design"
	}
	return r.Name
}

func (r Report) date() string {
	t := r.Generated
	if t.IsZero() {
		t = time.Now()
	}
	return t.Format("2006-01-02")
}

// designFacts lists the headline values shown on both exports.
func designFacts(r Report) [][2]string {
	cfg := r.Config
	d := cfg.Dimensions
	facts := [][2]string{
		{"Width", feet(d.Width)},
		{"Length", feet(d.Length)},
		{"Eave height", feet(d.EaveHeight)},
		{"Roof style", string(cfg.Roof.Style)},
		{"Roof pitch", fmt.Sprintf("%g:12", cfg.Roof.Pitch)},
		{"Roof rise", feet(r.Scene.Roof.Rise)},
		{"Frames", fmt.Sprintf("%d @ %s", r.Scene.Frames.Count, feet(r.Scene.Frames.Spacing))},
	}
	if cfg.Roof.Style == building.RoofAsymmetrical {
		facts = append(facts, [2]string{"Ridge offset", feet(r.Scene.Roof.PeakOffset)})
	}
	for _, side := range building.AllSides() {
		lt, ok := r.Scene.LeanTos[side]
		if !ok {
			continue
		}
		variant := cfg.LeanTos.For(side).Variant
		facts = append(facts, [2]string{
			"Lean-to " + string(side),
			fmt.Sprintf("%s, %s deep, %s to %s", variant, feet(lt.Depth), feet(lt.AttachHeight), feet(lt.OuterHeight)),
		})
	}
	facts = append(facts, [2]string{"Openings", fmt.Sprintf("%d", len(cfg.Openings))})
	return facts
}

func feet(v float64) string {
	return fmt.Sprintf("%.2f ft", v)
}
