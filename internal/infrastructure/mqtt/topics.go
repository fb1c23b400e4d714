package mqtt

import "fmt"

// TopicPrefix is the root of every steelframe topic.
//
//	steelframe/system/status          retained online/offline status
//	steelframe/design/changed         one event per accepted mutation
//	steelframe/design/import          inbound full designs to load
//	steelframe/geometry/stats/{stage} derivation cache counters
const TopicPrefix = "steelframe"

// Topics provides builders for steelframe MQTT topics.
type Topics struct{}

// SystemStatus returns the retained service status topic.
func (Topics) SystemStatus() string {
	return TopicPrefix + "/system/status"
}

// DesignChanged returns the topic carrying design change events.
func (Topics) DesignChanged() string {
	return TopicPrefix + "/design/changed"
}

// DesignImport returns the topic on which whole designs are received for
// loading.
func (Topics) DesignImport() string {
	return TopicPrefix + "/design/import"
}

// GeometryStats returns the topic for one derivation stage's counters.
func (Topics) GeometryStats(stage string) string {
	return fmt.Sprintf("%s/geometry/stats/%s", TopicPrefix, stage)
}
