// Package scene assembles every geometry stage into the primitive set the
// renderer consumes.
//
// Each stage is memoized in its own LRU cache keyed by exactly the inputs
// that stage reads. Colors, environment and interaction state appear in no
// key, so changing them never rebuilds geometry.
package scene

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/nerrad567/steelframe-core/internal/building"
	"github.com/nerrad567/steelframe-core/internal/endwall"
	"github.com/nerrad567/steelframe-core/internal/envelope"
	"github.com/nerrad567/steelframe-core/internal/frame"
	"github.com/nerrad567/steelframe-core/internal/geometry"
	"github.com/nerrad567/steelframe-core/internal/leanto"
	"github.com/nerrad567/steelframe-core/internal/opening"
	"github.com/nerrad567/steelframe-core/internal/roof"
	"github.com/nerrad567/steelframe-core/internal/visibility"
)

// DefaultCacheSize is the per-stage entry count used when none is given.
const DefaultCacheSize = 64

// Logger defines the logging interface used by the Builder.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Builder derives scenes from design snapshots. It is safe for concurrent use.
type Builder struct {
	roofs    *lru.Cache[roof.Params, roof.Solution]
	frames   *lru.Cache[frame.Params, frame.Layout]
	endwalls *lru.Cache[endwall.Params, []geometry.Primitive]
	envelope *lru.Cache[envelope.Params, []geometry.Primitive]
	leantos  *lru.Cache[leanto.Params, leanto.Result]
	openings *lru.Cache[string, []geometry.Primitive]

	counters map[string]*counter
	logger   Logger
}

// NewBuilder creates a builder with size entries per stage cache.
func NewBuilder(size int) (*Builder, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	b := &Builder{
		counters: make(map[string]*counter, len(Stages)),
		logger:   noopLogger{},
	}
	for _, s := range Stages {
		b.counters[s] = &counter{}
	}

	var err error
	if b.roofs, err = lru.New[roof.Params, roof.Solution](size); err != nil {
		return nil, fmt.Errorf("creating roof cache: %w", err)
	}
	if b.frames, err = lru.New[frame.Params, frame.Layout](size); err != nil {
		return nil, fmt.Errorf("creating frame cache: %w", err)
	}
	if b.endwalls, err = lru.New[endwall.Params, []geometry.Primitive](size); err != nil {
		return nil, fmt.Errorf("creating end-wall cache: %w", err)
	}
	if b.envelope, err = lru.New[envelope.Params, []geometry.Primitive](size); err != nil {
		return nil, fmt.Errorf("creating envelope cache: %w", err)
	}
	// Four sides share the lean-to cache.
	if b.leantos, err = lru.New[leanto.Params, leanto.Result](size * 4); err != nil {
		return nil, fmt.Errorf("creating lean-to cache: %w", err)
	}
	if b.openings, err = lru.New[string, []geometry.Primitive](size); err != nil {
		return nil, fmt.Errorf("creating opening cache: %w", err)
	}
	return b, nil
}

// SetLogger sets the logger for the builder.
func (b *Builder) SetLogger(logger Logger) {
	b.logger = logger
}

// Purge empties every stage cache.
func (b *Builder) Purge() {
	b.roofs.Purge()
	b.frames.Purge()
	b.endwalls.Purge()
	b.envelope.Purge()
	b.leantos.Purge()
	b.openings.Purge()
}

// memo returns the cached value for key or computes and stores it.
func memo[K comparable, V any](c *lru.Cache[K, V], n *counter, key K, fn func() V) V {
	if v, ok := c.Get(key); ok {
		n.hits.Add(1)
		return v
	}
	n.misses.Add(1)
	v := fn()
	c.Add(key, v)
	return v
}

// Scene is the fully resolved output for one design snapshot.
type Scene struct {
	Primitives []geometry.Primitive `json:"primitives"`
	Visibility visibility.Policy    `json:"visibility"`
	Palette    Palette              `json:"palette"`

	Roof    roof.Solution                    `json:"roof"`
	Frames  FrameSummary                     `json:"frames"`
	LeanTos map[building.Side]leanto.Derived `json:"lean_tos"`
	Counts  map[geometry.Role]int            `json:"counts"`
}

// FrameSummary describes the primary frame layout.
type FrameSummary struct {
	Count             int       `json:"count"`
	Spacing           float64   `json:"spacing"`
	Positions         []float64 `json:"positions"`
	OverhangPositions []float64 `json:"overhang_positions,omitempty"`
}

// Build derives the scene and applies the visibility policy of the
// snapshot's display mode.
func (b *Builder) Build(cfg *building.Config) Scene {
	s := b.BuildAll(cfg)
	s.Primitives = s.Visibility.Filter(s.Primitives)
	s.Counts = countRoles(s.Primitives)
	return s
}

// BuildAll derives the scene with every primitive, ignoring visibility.
// Exports use it so hidden layers still appear in schedules.
func (b *Builder) BuildAll(cfg *building.Config) Scene {
	rp := roof.ParamsOf(cfg)
	sol := memo(b.roofs, b.counters[StageRoof], rp, func() roof.Solution { return roof.Solve(rp) })

	fp := frame.ParamsOf(cfg)
	layout := memo(b.frames, b.counters[StageFrames], fp, func() frame.Layout { return frame.Build(fp) })

	ep := endwall.ParamsOf(cfg)
	ends := memo(b.endwalls, b.counters[StageEndWalls], ep, func() []geometry.Primitive { return endwall.Build(ep) })

	vp := envelope.ParamsOf(cfg)
	env := memo(b.envelope, b.counters[StageEnvelope], vp, func() []geometry.Primitive { return envelope.Build(vp) })

	op := opening.ParamsOf(cfg)
	opens := memo(b.openings, b.counters[StageOpenings], op.Key(), func() []geometry.Primitive { return opening.Build(op) })

	prims := make([]geometry.Primitive, 0, len(layout.Primitives)+len(ends)+len(env)+len(opens))
	prims = append(prims, layout.Primitives...)
	prims = append(prims, ends...)
	prims = append(prims, env...)

	leanTos := make(map[building.Side]leanto.Derived)
	for _, side := range building.AllSides() {
		lp := leanto.ParamsOf(cfg, side)
		if !lp.LeanTo.Enabled {
			continue
		}
		r := memo(b.leantos, b.counters[StageLeanTos], lp, func() leanto.Result { return leanto.Build(lp) })
		leanTos[side] = r.Derived
		prims = append(prims, r.Primitives...)
	}
	prims = append(prims, opens...)

	return Scene{
		Primitives: prims,
		Visibility: visibility.For(cfg.Interaction.VisibilityMode),
		Palette:    PaletteOf(cfg.Colors),
		Roof:       sol,
		Frames: FrameSummary{
			Count:             layout.Count,
			Spacing:           layout.Spacing,
			Positions:         layout.Positions,
			OverhangPositions: layout.OverhangPositions,
		},
		LeanTos: leanTos,
		Counts:  countRoles(prims),
	}
}

func countRoles(prims []geometry.Primitive) map[geometry.Role]int {
	counts := make(map[geometry.Role]int)
	for _, p := range prims {
		counts[p.Role]++
	}
	return counts
}
