package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// Measurement names.
const (
	MeasurementStage      = "geometry_stage"
	MeasurementDerivation = "geometry_derivation"
)

// WriteStageStats records the cumulative cache counters of one derivation
// stage. hit_ratio is omitted until the stage has been asked at least once.
//
//	client.WriteStageStats("roof", 41, 3)
func (c *Client) WriteStageStats(stage string, hits, misses uint64) {
	if !c.IsConnected() {
		return
	}

	fields := map[string]interface{}{
		"hits":   hits,
		"misses": misses,
	}
	if total := hits + misses; total > 0 {
		fields["hit_ratio"] = float64(hits) / float64(total)
	}

	c.writeAPI.WritePoint(write.NewPoint(
		MeasurementStage,
		map[string]string{"stage": stage},
		fields,
		time.Now(),
	))
}

// WriteDerivation records one scene build: the design revision it was built
// from, how many primitives it produced and how long it took.
func (c *Client) WriteDerivation(revision uint64, primitives int, elapsed time.Duration) {
	if !c.IsConnected() {
		return
	}

	c.writeAPI.WritePoint(write.NewPoint(
		MeasurementDerivation,
		nil,
		map[string]interface{}{
			"revision":    revision,
			"primitives":  primitives,
			"duration_ms": float64(elapsed.Microseconds()) / 1000,
		},
		time.Now(),
	))
}

// WritePoint writes a custom point stamped with the current time.
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}) {
	c.WritePointWithTime(measurement, tags, fields, time.Now())
}

// WritePointWithTime writes a custom point with an explicit timestamp.
func (c *Client) WritePointWithTime(measurement string, tags map[string]string, fields map[string]interface{}, timestamp time.Time) {
	if !c.IsConnected() {
		return
	}
	c.writeAPI.WritePoint(write.NewPoint(measurement, tags, fields, timestamp))
}
