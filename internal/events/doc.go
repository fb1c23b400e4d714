// Package events relays design changes out of the process and designs into it.
//
// A Relay subscribes to the building store. Each accepted mutation is
// published on MQTT, pushed to websocket clients and, when it can change the
// geometry, rebuilt so the new scene reaches the viewers and the build is
// recorded in InfluxDB. Whole designs arriving on the import topic are
// applied to the store. A ticker publishes the scene builder's per-stage
// cache counters.
//
// Every sink is optional. With MQTT and InfluxDB disabled the relay only
// feeds the websocket hub.
package events
