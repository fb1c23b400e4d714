package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nerrad567/steelframe-core/internal/audit"
	"github.com/nerrad567/steelframe-core/internal/building"
	"github.com/nerrad567/steelframe-core/internal/infrastructure/mqtt"
	"github.com/nerrad567/steelframe-core/internal/scene"
)

const (
	// queueSize bounds the changes waiting for the worker. Mutations never
	// block on a slow broker; overflow is dropped with a warning.
	queueSize = 64

	defaultStatsInterval = time.Minute

	historyTimeout = 5 * time.Second
)

// Websocket channels fed by the relay.
const (
	ChannelDesignChanged   = "design.changed"
	ChannelGeometryUpdated = "geometry.updated"
)

// ErrInvalidOptions is returned by New when a required collaborator is missing.
var ErrInvalidOptions = errors.New("events: invalid options")

// Store is the part of building.Store the relay uses.
type Store interface {
	Subscribe(fn func(building.Change))
	Replace(cfg *building.Config) error
	Revision() uint64
}

// SceneBuilder derives scenes and reports its cache counters.
type SceneBuilder interface {
	Build(cfg *building.Config) scene.Scene
	Stats() map[string]scene.StageStats
}

// Publisher sends MQTT messages.
type Publisher interface {
	Publish(topic string, payload []byte, qos byte, retained bool) error
	IsConnected() bool
}

// Subscriber registers MQTT handlers.
type Subscriber interface {
	Subscribe(topic string, qos byte, handler func(topic string, payload []byte) error) error
}

// MetricsWriter records derivation metrics.
type MetricsWriter interface {
	WriteStageStats(stage string, hits, misses uint64)
	WriteDerivation(revision uint64, primitives int, elapsed time.Duration)
}

// HistoryRecorder stores an entry per applied import.
type HistoryRecorder interface {
	Create(ctx context.Context, e *audit.Entry) error
}

// Broadcaster pushes a payload to every websocket client of a channel.
type Broadcaster interface {
	Broadcast(channel string, payload any)
}

// Logger defines the logging interface used by the Relay.
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

// ChangeEvent is published for every accepted mutation.
type ChangeEvent struct {
	Revision  uint64              `json:"revision"`
	Kind      building.ChangeKind `json:"kind"`
	Geometric bool                `json:"geometric"`
	Timestamp time.Time           `json:"timestamp"`
}

// GeometryEvent carries a rebuilt, visibility-filtered scene.
type GeometryEvent struct {
	Revision uint64      `json:"revision"`
	Scene    scene.Scene `json:"scene"`
}

// StatsEvent is the retained payload of one stage's counters.
type StatsEvent struct {
	Stage     string    `json:"stage"`
	Hits      uint64    `json:"hits"`
	Misses    uint64    `json:"misses"`
	Timestamp time.Time `json:"timestamp"`
}

// Options configures a Relay. Store and Builder are required.
type Options struct {
	Store   Store
	Builder SceneBuilder

	Publisher   Publisher
	Subscriber  Subscriber
	Metrics     MetricsWriter
	Broadcaster Broadcaster
	History     HistoryRecorder

	// QoS is used for every publish and subscription.
	QoS byte

	// StatsInterval is the cache counter period. Zero uses one minute.
	StatsInterval time.Duration

	Logger Logger
}

// Relay fans store changes out to MQTT, InfluxDB and websocket clients.
type Relay struct {
	store   Store
	builder SceneBuilder

	publisher   Publisher
	subscriber  Subscriber
	metrics     MetricsWriter
	broadcaster Broadcaster
	history     HistoryRecorder

	qos      byte
	interval time.Duration
	topics   mqtt.Topics
	logger   Logger

	queue    chan building.Change
	done     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
	now      func() time.Time
}

// New creates a relay. Nothing happens until Start.
func New(opts Options) (*Relay, error) {
	if opts.Store == nil || opts.Builder == nil {
		return nil, fmt.Errorf("%w: store and builder are required", ErrInvalidOptions)
	}
	interval := opts.StatsInterval
	if interval <= 0 {
		interval = defaultStatsInterval
	}
	logger := opts.Logger
	if logger == nil {
		logger = noopLogger{}
	}
	return &Relay{
		store:       opts.Store,
		builder:     opts.Builder,
		publisher:   opts.Publisher,
		subscriber:  opts.Subscriber,
		metrics:     opts.Metrics,
		broadcaster: opts.Broadcaster,
		history:     opts.History,
		qos:         opts.QoS,
		interval:    interval,
		logger:      logger,
		queue:       make(chan building.Change, queueSize),
		done:        make(chan struct{}),
		now:         time.Now,
	}, nil
}

// Start subscribes to the store and the import topic and launches the
// worker and the stats ticker. They stop when ctx ends or Stop is called.
func (r *Relay) Start(ctx context.Context) error {
	if r.subscriber != nil {
		if err := r.subscriber.Subscribe(r.topics.DesignImport(), r.qos, r.handleImport); err != nil {
			return fmt.Errorf("subscribing to design imports: %w", err)
		}
	}
	r.store.Subscribe(r.enqueue)

	r.wg.Add(2)
	go r.worker(ctx)
	go r.statsLoop(ctx)

	r.logger.Info("event relay started",
		"mqtt", r.publisher != nil,
		"metrics", r.metrics != nil,
		"stats_interval", r.interval.String(),
	)
	return nil
}

// Stop halts the worker and the ticker. Changes still queued are dropped.
// Safe to call more than once.
func (r *Relay) Stop() {
	r.stopOnce.Do(func() {
		close(r.done)
		r.wg.Wait()
		r.logger.Info("event relay stopped")
	})
}

// enqueue runs on the mutating goroutine and must not block.
func (r *Relay) enqueue(ch building.Change) {
	select {
	case <-r.done:
		return
	default:
	}
	select {
	case r.queue <- ch:
	default:
		r.logger.Warn("event queue full, dropping change", "revision", ch.Revision, "kind", string(ch.Kind))
	}
}

func (r *Relay) worker(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-r.done:
			return
		case ch := <-r.queue:
			r.process(ch)
		}
	}
}

// process publishes one change and, when the visible scene may differ,
// rebuilds and pushes it.
func (r *Relay) process(ch building.Change) {
	ev := ChangeEvent{
		Revision:  ch.Revision,
		Kind:      ch.Kind,
		Geometric: ch.Kind.Geometric(),
		Timestamp: r.now().UTC(),
	}
	r.publishJSON(r.topics.DesignChanged(), ev, false)
	if r.broadcaster != nil {
		r.broadcaster.Broadcast(ChannelDesignChanged, ev)
	}

	if !affectsScene(ch.Kind) || ch.Config == nil {
		return
	}

	start := r.now()
	sc := r.builder.Build(ch.Config)
	elapsed := r.now().Sub(start)

	if ev.Geometric && r.metrics != nil {
		r.metrics.WriteDerivation(ch.Revision, len(sc.Primitives), elapsed)
	}
	if r.broadcaster != nil {
		r.broadcaster.Broadcast(ChannelGeometryUpdated, GeometryEvent{Revision: ch.Revision, Scene: sc})
	}
	r.logger.Debug("scene rebuilt",
		"revision", ch.Revision,
		"primitives", len(sc.Primitives),
		"duration", elapsed.String(),
	)
}

// affectsScene reports whether a change can alter the scene viewers see.
// Colors change the palette and interaction carries the visibility mode.
func affectsScene(k building.ChangeKind) bool {
	return k.Geometric() || k == building.ChangeColors || k == building.ChangeInteraction
}

// handleImport applies a whole design received over MQTT. Fields missing
// from the payload keep their default values.
func (r *Relay) handleImport(topic string, payload []byte) error {
	cfg := building.Default()
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		r.logger.Warn("rejected design import", "topic", topic, "error", err)
		return fmt.Errorf("decoding design: %w", err)
	}
	if err := r.store.Replace(cfg); err != nil {
		r.logger.Warn("rejected design import", "topic", topic, "error", err)
		return fmt.Errorf("applying design: %w", err)
	}
	r.logger.Info("design imported", "topic", topic)
	r.recordImport(cfg)
	return nil
}

func (r *Relay) recordImport(cfg *building.Config) {
	if r.history == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), historyTimeout)
	defer cancel()
	err := r.history.Create(ctx, &audit.Entry{
		Action:   audit.ActionImport,
		Source:   audit.SourceMQTT,
		Revision: r.store.Revision(),
		Details: map[string]any{
			"width":  cfg.Dimensions.Width,
			"length": cfg.Dimensions.Length,
			"roof":   string(cfg.Roof.Style),
		},
	})
	if err != nil {
		r.logger.Warn("recording design import failed", "error", err)
	}
}

func (r *Relay) statsLoop(ctx context.Context) {
	defer r.wg.Done()
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-r.done:
			return
		case <-ticker.C:
			r.PublishStats()
		}
	}
}

// PublishStats writes the current cache counters of every stage.
func (r *Relay) PublishStats() {
	stats := r.builder.Stats()
	ts := r.now().UTC()
	for _, stage := range scene.Stages {
		s := stats[stage]
		if r.metrics != nil {
			r.metrics.WriteStageStats(stage, s.Hits, s.Misses)
		}
		r.publishJSON(r.topics.GeometryStats(stage), StatsEvent{
			Stage:     stage,
			Hits:      s.Hits,
			Misses:    s.Misses,
			Timestamp: ts,
		}, true)
	}
}

func (r *Relay) publishJSON(topic string, v any, retained bool) {
	if r.publisher == nil || !r.publisher.IsConnected() {
		return
	}
	payload, err := json.Marshal(v)
	if err != nil {
		r.logger.Error("encoding event", "topic", topic, "error", err)
		return
	}
	if err := r.publisher.Publish(topic, payload, r.qos, retained); err != nil {
		r.logger.Warn("publishing event", "topic", topic, "error", err)
	}
}
