package scene

import "sync/atomic"

// Stage names, used in stats and metrics.
const (
	StageRoof     = "roof"
	StageFrames   = "frames"
	StageEndWalls = "endwalls"
	StageEnvelope = "envelope"
	StageLeanTos  = "leantos"
	StageOpenings = "openings"
)

// Stages lists every memoized stage in build order.
var Stages = []string{StageRoof, StageFrames, StageEndWalls, StageEnvelope, StageLeanTos, StageOpenings}

type counter struct {
	hits   atomic.Uint64
	misses atomic.Uint64
}

// StageStats are the cache counters of one stage.
type StageStats struct {
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
}

// Stats returns a snapshot of the per-stage cache counters.
func (b *Builder) Stats() map[string]StageStats {
	out := make(map[string]StageStats, len(b.counters))
	for stage, c := range b.counters {
		out[stage] = StageStats{Hits: c.hits.Load(), Misses: c.misses.Load()}
	}
	return out
}
