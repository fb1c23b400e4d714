// Steelframe Core - parametric geometry for pre-engineered steel buildings.
//
// The service holds the live building design, derives its 3D scene on
// demand and serves both over HTTP and WebSocket. Design changes and
// derivation metrics are relayed to MQTT and InfluxDB when configured.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/nerrad567/steelframe-core/migrations"

	"github.com/nerrad567/steelframe-core/internal/api"
	"github.com/nerrad567/steelframe-core/internal/audit"
	"github.com/nerrad567/steelframe-core/internal/building"
	"github.com/nerrad567/steelframe-core/internal/events"
	"github.com/nerrad567/steelframe-core/internal/infrastructure/config"
	"github.com/nerrad567/steelframe-core/internal/infrastructure/database"
	"github.com/nerrad567/steelframe-core/internal/infrastructure/influxdb"
	"github.com/nerrad567/steelframe-core/internal/infrastructure/logging"
	"github.com/nerrad567/steelframe-core/internal/infrastructure/mqtt"
	"github.com/nerrad567/steelframe-core/internal/scene"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	configFlag := flag.String("config", "", "path to config file (default "+defaultConfigPath+", or $STEELFRAME_CONFIG)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("steelframe %s (commit %s, built %s)\n", version, commit, date)
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, getConfigPath(*configFlag)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run wires every component and blocks until ctx is cancelled.
func run(ctx context.Context, configPath string) error {
	log := logging.Default()
	log.Info("starting Steelframe Core",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	db, err := database.Open(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	initial, err := loadDesign(cfg.Geometry.DesignFile)
	if err != nil {
		return err
	}
	store := building.NewStore(initial)
	store.SetLogger(log)
	log.Info("design loaded",
		"source", designSource(cfg.Geometry.DesignFile),
		"width", initial.Dimensions.Width,
		"length", initial.Dimensions.Length,
		"roof", initial.Roof.Style,
	)

	builder, err := scene.NewBuilder(cfg.Geometry.CacheSize)
	if err != nil {
		return fmt.Errorf("creating scene builder: %w", err)
	}
	builder.SetLogger(log)

	history := audit.NewSQLiteRepository(db.DB)

	checks := map[string]api.HealthChecker{"database": db}
	relayOpts := events.Options{
		Store:         store,
		Builder:       builder,
		History:       history,
		QoS:           byte(cfg.MQTT.QoS),
		StatsInterval: cfg.GetStatsInterval(),
		Logger:        log,
	}
	var connState api.ConnectionState

	if cfg.MQTT.Enabled {
		mqttClient, mqttErr := mqtt.Connect(cfg.MQTT)
		if mqttErr != nil {
			return fmt.Errorf("connecting to MQTT: %w", mqttErr)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		mqttClient.SetLogger(log)
		mqttClient.SetOnConnect(func() {
			log.Info("MQTT reconnected")
		})
		mqttClient.SetOnDisconnect(func(err error) {
			log.Warn("MQTT disconnected", "error", err)
		})
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)

		relayOpts.Publisher = mqttClient
		relayOpts.Subscriber = mqttSubscriber{client: mqttClient}
		checks["mqtt"] = mqttClient
		connState = mqttClient
	} else {
		log.Info("MQTT disabled")
	}

	if cfg.InfluxDB.Enabled {
		influxClient, influxErr := influxdb.Connect(cfg.InfluxDB)
		if influxErr != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", influxErr)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)

		relayOpts.Metrics = influxClient
		checks["influxdb"] = influxClient
	} else {
		log.Info("InfluxDB disabled")
	}

	hub := api.NewHub(cfg.WebSocket, log)
	go hub.Run(ctx)
	relayOpts.Broadcaster = hub

	relay, err := events.New(relayOpts)
	if err != nil {
		return fmt.Errorf("creating event relay: %w", err)
	}
	if startErr := relay.Start(ctx); startErr != nil {
		return fmt.Errorf("starting event relay: %w", startErr)
	}
	defer func() {
		log.Info("stopping event relay")
		relay.Stop()
	}()

	server, err := api.New(api.Deps{
		Config:      cfg.API,
		WS:          cfg.WebSocket,
		Export:      cfg.Export,
		Logger:      log,
		Store:       store,
		Builder:     builder,
		Designs:     building.NewSQLiteRepository(db.DB),
		History:     history,
		Checks:      checks,
		DB:          db,
		MQTT:        connState,
		ExternalHub: hub,
		Version:     version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if startErr := server.Start(ctx); startErr != nil {
		return fmt.Errorf("starting API server: %w", startErr)
	}
	defer func() {
		log.Info("stopping API server")
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error stopping API server", "error", closeErr)
		}
	}()

	log.Info("initialisation complete, waiting for shutdown signal")

	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	log.Info("Steelframe Core stopped")
	return nil
}

// getConfigPath prefers the -config flag, then STEELFRAME_CONFIG.
func getConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if path := os.Getenv("STEELFRAME_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// loadDesign reads the startup design file, or returns the default design
// when none is configured.
func loadDesign(path string) (*building.Config, error) {
	if path == "" {
		return building.Default(), nil
	}
	cfg, err := building.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading design file %s: %w", path, err)
	}
	return cfg, nil
}

func designSource(path string) string {
	if path == "" {
		return "default"
	}
	return path
}

// mqttSubscriber adapts the infrastructure MQTT client to events.Subscriber.
// The client takes a named mqtt.MessageHandler where the relay passes a
// plain function.
type mqttSubscriber struct {
	client *mqtt.Client
}

// Subscribe implements events.Subscriber.
func (a mqttSubscriber) Subscribe(topic string, qos byte, handler func(topic string, payload []byte) error) error {
	return a.client.Subscribe(topic, qos, handler)
}
