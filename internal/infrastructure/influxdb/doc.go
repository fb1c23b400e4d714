// Package influxdb writes geometry derivation metrics to InfluxDB.
//
// It wraps influxdb-client-go v2 with connection management, batched
// non-blocking writes and a health check. Two measurements are written:
//
//   - geometry_stage: per-stage cache hits and misses, tagged by stage
//   - geometry_derivation: primitive count and build time of each scene
//
// Usage:
//
//	client, err := influxdb.Connect(cfg.InfluxDB)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	client.WriteStageStats("roof", 41, 3)
//
// Write errors are delivered asynchronously through SetOnError.
package influxdb
