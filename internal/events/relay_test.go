package events

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerrad567/steelframe-core/internal/audit"
	"github.com/nerrad567/steelframe-core/internal/building"
	"github.com/nerrad567/steelframe-core/internal/scene"
)

type message struct {
	topic    string
	payload  []byte
	retained bool
}

type fakePublisher struct {
	mu        sync.Mutex
	connected bool
	messages  []message
}

func (p *fakePublisher) Publish(topic string, payload []byte, _ byte, retained bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, message{topic: topic, payload: payload, retained: retained})
	return nil
}

func (p *fakePublisher) IsConnected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.connected
}

func (p *fakePublisher) on(topic string) []message {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []message
	for _, m := range p.messages {
		if m.topic == topic || strings.HasPrefix(m.topic, topic) {
			out = append(out, m)
		}
	}
	return out
}

type fakeSubscriber struct {
	topic   string
	handler func(string, []byte) error
}

func (s *fakeSubscriber) Subscribe(topic string, _ byte, handler func(string, []byte) error) error {
	s.topic = topic
	s.handler = handler
	return nil
}

type derivation struct {
	revision   uint64
	primitives int
}

type fakeMetrics struct {
	mu          sync.Mutex
	stages      map[string][2]uint64
	derivations []derivation
}

func (m *fakeMetrics) WriteStageStats(stage string, hits, misses uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stages == nil {
		m.stages = make(map[string][2]uint64)
	}
	m.stages[stage] = [2]uint64{hits, misses}
}

func (m *fakeMetrics) WriteDerivation(revision uint64, primitives int, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.derivations = append(m.derivations, derivation{revision, primitives})
}

func (m *fakeMetrics) derived() []derivation {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]derivation(nil), m.derivations...)
}

type fakeBroadcaster struct {
	mu   sync.Mutex
	sent map[string][]any
}

func (b *fakeBroadcaster) Broadcast(channel string, payload any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.sent == nil {
		b.sent = make(map[string][]any)
	}
	b.sent[channel] = append(b.sent[channel], payload)
}

func (b *fakeBroadcaster) count(channel string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.sent[channel])
}

type fakeHistory struct {
	mu      sync.Mutex
	entries []audit.Entry
}

func (f *fakeHistory) Create(_ context.Context, e *audit.Entry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, *e)
	return nil
}

func (f *fakeHistory) all() []audit.Entry {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]audit.Entry(nil), f.entries...)
}

type harness struct {
	store   *building.Store
	pub     *fakePublisher
	sub     *fakeSubscriber
	metrics *fakeMetrics
	hub     *fakeBroadcaster
	history *fakeHistory
	relay   *Relay
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	builder, err := scene.NewBuilder(8)
	require.NoError(t, err)

	h := &harness{
		store:   building.NewStore(nil),
		pub:     &fakePublisher{connected: true},
		sub:     &fakeSubscriber{},
		metrics: &fakeMetrics{},
		hub:     &fakeBroadcaster{},
		history: &fakeHistory{},
	}
	h.relay, err = New(Options{
		Store:         h.store,
		Builder:       builder,
		Publisher:     h.pub,
		Subscriber:    h.sub,
		Metrics:       h.metrics,
		Broadcaster:   h.hub,
		History:       h.history,
		QoS:           1,
		StatsInterval: time.Hour,
	})
	require.NoError(t, err)
	require.NoError(t, h.relay.Start(context.Background()))
	t.Cleanup(h.relay.Stop)
	return h
}

const (
	waitFor = 2 * time.Second
	tick    = 10 * time.Millisecond
)

func TestNew_RequiresStoreAndBuilder(t *testing.T) {
	_, err := New(Options{Store: building.NewStore(nil)})
	assert.ErrorIs(t, err, ErrInvalidOptions)
}

func TestRelay_SubscribesToImports(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, "steelframe/design/import", h.sub.topic)
}

func TestRelay_DimensionChange(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.store.SetDimensions(building.Dimensions{Width: 40, Length: 60, EaveHeight: 14}))

	require.Eventually(t, func() bool { return len(h.pub.on("steelframe/design/changed")) == 1 }, waitFor, tick)
	var ev ChangeEvent
	require.NoError(t, json.Unmarshal(h.pub.on("steelframe/design/changed")[0].payload, &ev))
	assert.Equal(t, uint64(1), ev.Revision)
	assert.Equal(t, building.ChangeDimensions, ev.Kind)
	assert.True(t, ev.Geometric)
	assert.False(t, h.pub.on("steelframe/design/changed")[0].retained)

	require.Eventually(t, func() bool { return h.hub.count(ChannelGeometryUpdated) == 1 }, waitFor, tick)
	assert.Equal(t, 1, h.hub.count(ChannelDesignChanged))

	d := h.metrics.derived()
	require.Len(t, d, 1)
	assert.Equal(t, uint64(1), d[0].revision)
	assert.Positive(t, d[0].primitives)
}

func TestRelay_ColorChangeRefreshesWithoutMetric(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.store.SetColor(building.SlotRoof, "#123456"))

	require.Eventually(t, func() bool { return h.hub.count(ChannelGeometryUpdated) == 1 }, waitFor, tick)
	assert.Empty(t, h.metrics.derived())
}

func TestRelay_EnvironmentChangeSkipsRebuild(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.store.SetEnvironment(building.Environment{SkyColor: "#000000"}))
	// A later geometric change proves the first one was fully processed.
	require.NoError(t, h.store.SetRoof(building.Roof{Style: building.RoofGable, Pitch: 4, AsymmetricOffset: 5}))

	require.Eventually(t, func() bool { return h.hub.count(ChannelDesignChanged) == 2 }, waitFor, tick)
	require.Eventually(t, func() bool { return h.hub.count(ChannelGeometryUpdated) == 1 }, waitFor, tick)
}

func TestRelay_DisconnectedPublisher(t *testing.T) {
	h := newHarness(t)
	h.pub.mu.Lock()
	h.pub.connected = false
	h.pub.mu.Unlock()

	require.NoError(t, h.store.SetDimensions(building.Dimensions{Width: 40, Length: 60, EaveHeight: 14}))

	require.Eventually(t, func() bool { return h.hub.count(ChannelGeometryUpdated) == 1 }, waitFor, tick)
	assert.Empty(t, h.pub.on("steelframe/"))
}

func TestHandleImport(t *testing.T) {
	h := newHarness(t)

	err := h.sub.handler("steelframe/design/import", []byte(`{"dimensions":{"width":50,"length":60,"eave_height":14}}`))
	require.NoError(t, err)

	snap := h.store.Snapshot()
	assert.Equal(t, 50.0, snap.Dimensions.Width)
	// Omitted sections keep defaults.
	assert.Equal(t, building.RoofGable, snap.Roof.Style)

	entries := h.history.all()
	require.Len(t, entries, 1)
	assert.Equal(t, audit.ActionImport, entries[0].Action)
	assert.Equal(t, audit.SourceMQTT, entries[0].Source)
	assert.Equal(t, uint64(1), entries[0].Revision)
	assert.Equal(t, 50.0, entries[0].Details["width"])
}

func TestHandleImport_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"malformed", `{"dimensions":`},
		{"unknown field", `{"colour":"red"}`},
		{"invalid dimensions", `{"dimensions":{"width":-1,"length":60,"eave_height":14}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			err := h.sub.handler("steelframe/design/import", []byte(tt.payload))
			assert.Error(t, err)
			assert.Equal(t, uint64(0), h.store.Revision())
			assert.Empty(t, h.history.all())
		})
	}
}

func TestPublishStats(t *testing.T) {
	h := newHarness(t)
	h.relay.builder.Build(building.Default())

	h.relay.PublishStats()

	msgs := h.pub.on("steelframe/geometry/stats/")
	require.Len(t, msgs, len(scene.Stages))
	for _, m := range msgs {
		assert.True(t, m.retained)
	}

	var roofStats StatsEvent
	require.NoError(t, json.Unmarshal(h.pub.on("steelframe/geometry/stats/roof")[0].payload, &roofStats))
	assert.Equal(t, "roof", roofStats.Stage)
	assert.Equal(t, uint64(1), roofStats.Misses)

	h.metrics.mu.Lock()
	defer h.metrics.mu.Unlock()
	assert.Len(t, h.metrics.stages, len(scene.Stages))
	assert.Equal(t, [2]uint64{0, 1}, h.metrics.stages["roof"])
}

func TestStop_Idempotent(t *testing.T) {
	h := newHarness(t)
	h.relay.Stop()
	h.relay.Stop()

	// Mutations after stop are accepted by the store and ignored here.
	require.NoError(t, h.store.SetDimensions(building.Dimensions{Width: 40, Length: 60, EaveHeight: 14}))
	assert.Equal(t, 0, h.hub.count(ChannelDesignChanged))
}
