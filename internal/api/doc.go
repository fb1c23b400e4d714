// Package api implements the HTTP REST API and WebSocket server for the
// steelframe service.
//
// This package provides:
//   - REST endpoints for every design mutation, the derived scene and exports
//   - Saved design storage and loading
//   - The opening drag state machine driven by pointer events
//   - WebSocket hub broadcasting design, geometry and camera events
//   - Middleware stack (request ID, logging, recovery, CORS, rate limit)
//
// # Architecture
//
// The server wraps a building.Store. Mutations go through the store, which
// notifies the event relay; the relay rebuilds the scene and pushes it to
// WebSocket clients subscribed to geometry.updated. Reads derive the scene
// on demand from the memoized scene builder.
//
// # Graceful Degradation
//
// The server runs without MQTT, InfluxDB or a saved-design repository. Only
// the /designs endpoints need the repository and answer 503 without it.
package api
