package influxdb_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/nerrad567/steelframe-core/internal/infrastructure/config"
	"github.com/nerrad567/steelframe-core/internal/infrastructure/influxdb"
)

// testConfig matches the local dev InfluxDB in docker-compose.yml.
func testConfig() config.InfluxDBConfig {
	return config.InfluxDBConfig{
		Enabled:       true,
		URL:           "http://127.0.0.1:8086",
		Token:         "steelframe-dev-token",
		Org:           "steelframe",
		Bucket:        "geometry",
		BatchSize:     100,
		FlushInterval: 1,
	}
}

func skipIfNoInfluxDB(t *testing.T) {
	t.Helper()
	if os.Getenv("RUN_INTEGRATION") == "" {
		client, err := influxdb.Connect(testConfig())
		if err != nil {
			t.Skip("InfluxDB not available, skipping integration test")
		}
		client.Close()
	}
}

// connectRecording connects and returns a function reporting the last
// asynchronous write error after a flush.
func connectRecording(t *testing.T) (*influxdb.Client, func() error) {
	t.Helper()
	skipIfNoInfluxDB(t)

	client, err := influxdb.Connect(testConfig())
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	t.Cleanup(func() { client.Close() })

	var (
		mu       sync.Mutex
		writeErr error
	)
	client.SetOnError(func(err error) {
		mu.Lock()
		writeErr = err
		mu.Unlock()
	})

	return client, func() error {
		client.Flush()
		time.Sleep(100 * time.Millisecond)
		mu.Lock()
		defer mu.Unlock()
		return writeErr
	}
}

func TestConnect(t *testing.T) {
	skipIfNoInfluxDB(t)

	client, err := influxdb.Connect(testConfig())
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	if !client.IsConnected() {
		t.Error("IsConnected() = false after Connect()")
	}
}

func TestConnect_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false

	_, err := influxdb.Connect(cfg)
	if !errors.Is(err, influxdb.ErrDisabled) {
		t.Errorf("Connect() error = %v, want ErrDisabled", err)
	}
}

func TestConnect_InvalidURL(t *testing.T) {
	cfg := testConfig()
	cfg.URL = "http://127.0.0.1:59999"

	_, err := influxdb.Connect(cfg)
	if !errors.Is(err, influxdb.ErrConnectionFailed) {
		t.Errorf("Connect() error = %v, want ErrConnectionFailed", err)
	}
}

func TestConnect_DefaultBatchSettings(t *testing.T) {
	skipIfNoInfluxDB(t)

	for _, n := range []int{0, -5} {
		cfg := testConfig()
		cfg.BatchSize = n
		cfg.FlushInterval = n

		client, err := influxdb.Connect(cfg)
		if err != nil {
			t.Fatalf("Connect(batch=%d) error = %v", n, err)
		}
		if !client.IsConnected() {
			t.Errorf("IsConnected() = false with batch settings %d", n)
		}
		client.Close()
	}
}

func TestHealthCheck(t *testing.T) {
	skipIfNoInfluxDB(t)

	client, err := influxdb.Connect(testConfig())
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.HealthCheck(ctx); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}

	cancelled, stop := context.WithCancel(context.Background())
	stop()
	if err := client.HealthCheck(cancelled); err == nil {
		t.Error("HealthCheck() should fail for a cancelled context")
	}
}

func TestWriteStageStats(t *testing.T) {
	client, lastErr := connectRecording(t)

	client.WriteStageStats("roof", 41, 3)
	// No requests yet: hit_ratio is left out.
	client.WriteStageStats("leantos", 0, 0)

	if err := lastErr(); err != nil {
		t.Errorf("write error = %v", err)
	}
}

func TestWriteDerivation(t *testing.T) {
	client, lastErr := connectRecording(t)

	client.WriteDerivation(7, 312, 1500*time.Microsecond)

	if err := lastErr(); err != nil {
		t.Errorf("write error = %v", err)
	}
}

func TestWritePoint(t *testing.T) {
	client, lastErr := connectRecording(t)

	client.WritePoint(
		"design_export",
		map[string]string{"format": "xlsx"},
		map[string]interface{}{"bytes": 18432, "rows": 14},
	)
	client.WritePointWithTime(
		"design_export",
		map[string]string{"format": "pdf"},
		map[string]interface{}{"bytes": 9120},
		time.Now().Add(-time.Hour),
	)

	if err := lastErr(); err != nil {
		t.Errorf("write error = %v", err)
	}
}

func TestClose(t *testing.T) {
	skipIfNoInfluxDB(t)

	client, err := influxdb.Connect(testConfig())
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	client.WriteStageStats("frames", 1, 1)
	if err := client.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if client.IsConnected() {
		t.Error("IsConnected() = true after Close()")
	}

	// Writes and flushes after close are dropped.
	client.WriteDerivation(1, 1, time.Millisecond)
	client.Flush()

	if err := client.HealthCheck(context.Background()); !errors.Is(err, influxdb.ErrNotConnected) {
		t.Errorf("HealthCheck() after Close = %v, want ErrNotConnected", err)
	}
}
