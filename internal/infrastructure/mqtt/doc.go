// Package mqtt connects the steelframe service to an MQTT broker.
//
// The broker carries design change events out of the service and accepts
// whole designs from other tools:
//
//	steelframe ──design/changed──▶ broker ──▶ downstream estimators
//	steelframe ◀──design/import─── broker ◀── CAD exporters
//
// This package manages:
//   - Connection with auto-reconnect and a retained status topic
//   - Last Will and Testament for crash detection
//   - Publishing with QoS and payload size checks
//   - Tracked subscriptions restored on reconnect
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	err = client.Subscribe(mqtt.Topics{}.DesignImport(), 1,
//	    func(topic string, payload []byte) error {
//	        return importDesign(payload)
//	    })
package mqtt
