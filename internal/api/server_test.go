package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/nerrad567/steelframe-core/internal/audit"
	"github.com/nerrad567/steelframe-core/internal/building"
	"github.com/nerrad567/steelframe-core/internal/events"
	"github.com/nerrad567/steelframe-core/internal/infrastructure/config"
	"github.com/nerrad567/steelframe-core/internal/infrastructure/database"
	"github.com/nerrad567/steelframe-core/internal/infrastructure/logging"
	"github.com/nerrad567/steelframe-core/internal/scene"
	_ "github.com/nerrad567/steelframe-core/migrations"
)

var wsTestConfig = config.WebSocketConfig{MaxMessageSize: 8192, PingInterval: 30, PongTimeout: 10}

func testLogger() *logging.Logger {
	return logging.NewWriter(io.Discard, config.LoggingConfig{Level: "error", Format: "text"}, "test")
}

// testServer creates a Server over a fresh default design. mutate may
// adjust the dependencies before New.
func testServer(t *testing.T, mutate ...func(*Deps)) *Server {
	t.Helper()

	builder, err := scene.NewBuilder(8)
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}

	deps := Deps{
		Config: config.APIConfig{
			Host:     "127.0.0.1",
			Port:     0,
			Timeouts: config.APITimeoutConfig{Read: 5, Write: 5, Idle: 5},
		},
		WS:      wsTestConfig,
		Export:  config.ExportConfig{DefaultName: "Steel building"},
		Logger:  testLogger(),
		Store:   building.NewStore(nil),
		Builder: builder,
		Version: "test",
	}
	for _, fn := range mutate {
		fn(&deps)
	}

	srv, err := New(deps)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return srv
}

// withDesigns backs /designs and /history with a migrated SQLite file.
func withDesigns(t *testing.T) func(*Deps) {
	t.Helper()
	db, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "designs.db"), BusyTimeout: 5})
	if err != nil {
		t.Fatalf("database.Open: %v", err)
	}
	t.Cleanup(func() { db.Close() }) //nolint:errcheck // Test cleanup
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return func(d *Deps) {
		d.Designs = building.NewSQLiteRepository(db.DB)
		d.History = audit.NewSQLiteRepository(db.DB)
		d.DB = db
	}
}

// do sends a request with an optional JSON body through the router.
func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	if r != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("unmarshal %q: %v", w.Body.String(), err)
	}
	return v
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d (body %s)", w.Code, want, w.Body.String())
	}
}

func expectErrorCode(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	expectStatus(t, w, status)
	e := decode[Error](t, w)
	if e.Code != code || e.Status != status {
		t.Errorf("error = %+v, want status %d code %q", e, status, code)
	}
}

func TestNew_RequiresDependencies(t *testing.T) {
	builder, _ := scene.NewBuilder(1) //nolint:errcheck // Size 1 cannot fail
	tests := []struct {
		name string
		deps Deps
	}{
		{"no logger", Deps{Store: building.NewStore(nil), Builder: builder}},
		{"no store", Deps{Logger: testLogger(), Builder: builder}},
		{"no builder", Deps{Logger: testLogger(), Store: building.NewStore(nil)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.deps); err == nil {
				t.Error("New() should fail")
			}
		})
	}
}

func TestHealth(t *testing.T) {
	router := testServer(t).buildRouter()

	w := do(t, router, http.MethodGet, "/api/v1/health", nil)
	expectStatus(t, w, http.StatusOK)

	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	resp := decode[map[string]any](t, w)
	if resp["status"] != "ok" {
		t.Errorf("status = %v, want ok", resp["status"])
	}
	if resp["version"] != "test" {
		t.Errorf("version = %v, want test", resp["version"])
	}
}

type checkFunc func(context.Context) error

func (f checkFunc) HealthCheck(ctx context.Context) error { return f(ctx) }

func TestHealth_FailingCheck(t *testing.T) {
	srv := testServer(t, func(d *Deps) {
		d.Checks = map[string]HealthChecker{
			"database": checkFunc(func(context.Context) error { return nil }),
			"mqtt":     checkFunc(func(context.Context) error { return errors.New("broker unreachable") }),
		}
	})

	w := do(t, srv.buildRouter(), http.MethodGet, "/api/v1/health", nil)
	expectStatus(t, w, http.StatusServiceUnavailable)

	resp := decode[struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}](t, w)
	if resp.Status != "degraded" {
		t.Errorf("status = %q, want degraded", resp.Status)
	}
	if resp.Checks["database"] != "ok" || resp.Checks["mqtt"] != "broker unreachable" {
		t.Errorf("checks = %v", resp.Checks)
	}
}

func TestMetrics(t *testing.T) {
	srv := testServer(t)
	router := srv.buildRouter()
	do(t, router, http.MethodGet, "/api/v1/geometry", nil)

	w := do(t, router, http.MethodGet, "/api/v1/metrics", nil)
	expectStatus(t, w, http.StatusOK)

	m := decode[SystemMetrics](t, w)
	if m.Version != "test" {
		t.Errorf("version = %q", m.Version)
	}
	if m.Geometry.Stages[scene.StageRoof].Misses != 1 {
		t.Errorf("roof stage = %+v, want one miss", m.Geometry.Stages[scene.StageRoof])
	}
	if m.MQTT.Enabled {
		t.Error("MQTT should be reported disabled")
	}
}

// ─── Middleware Tests ──────────────────────────────────────────────

func TestRequestID(t *testing.T) {
	router := testServer(t).buildRouter()

	w := do(t, router, http.MethodGet, "/api/v1/health", nil)
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header to be set")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("X-Request-ID", "client-123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); got != "client-123" {
		t.Errorf("X-Request-ID = %q, want client-123", got)
	}
}

func TestCORS_Preflight(t *testing.T) {
	router := testServer(t).buildRouter()

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/design", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("ACAO = %q, want %q", got, "http://localhost:3000")
	}
}

func TestCORS_DisallowedOrigin(t *testing.T) {
	srv := testServer(t, func(d *Deps) {
		d.Config.CORS.AllowedOrigins = []string{"http://designer.local"}
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	w := httptest.NewRecorder()
	srv.buildRouter().ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("ACAO = %q, want empty", got)
	}
}

func TestRateLimit(t *testing.T) {
	srv := testServer(t, func(d *Deps) {
		d.Config.RateLimit = config.RateLimitConfig{Enabled: true, RequestsPerMinute: 60, Burst: 2}
	})
	router := srv.buildRouter()

	send := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	for i := 0; i < 2; i++ {
		if code := send("192.0.2.1:5000"); code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i, code)
		}
	}
	if code := send("192.0.2.1:5001"); code != http.StatusTooManyRequests {
		t.Errorf("third request status = %d, want 429", code)
	}
	// Another client has its own bucket.
	if code := send("192.0.2.2:5000"); code != http.StatusOK {
		t.Errorf("other client status = %d, want 200", code)
	}
}

func TestRateLimiter_Prune(t *testing.T) {
	l := newIPRateLimiter(1, 1)
	now := time.Unix(1000, 0)
	l.now = func() time.Time { return now }

	l.allow("a")
	now = now.Add(5 * time.Minute)
	l.allow("b")
	now = now.Add(6 * time.Minute)

	l.prune(limiterIdleTTL)
	if l.size() != 1 {
		t.Errorf("size after prune = %d, want 1", l.size())
	}
}

func TestNotFound(t *testing.T) {
	w := do(t, testServer(t).buildRouter(), http.MethodGet, "/api/v1/nonexistent", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown route status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

// ─── Hub Tests ─────────────────────────────────────────────────────

func newTestClient(hub *Hub, channels ...string) *WSClient {
	subs := make(map[string]struct{}, len(channels))
	for _, ch := range channels {
		subs[ch] = struct{}{}
	}
	return &WSClient{
		hub:           hub,
		send:          make(chan []byte, wsSendBufferSize),
		subscriptions: subs,
	}
}

func TestHub_BroadcastToSubscribed(t *testing.T) {
	hub := NewHub(wsTestConfig, testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	client := newTestClient(hub, events.ChannelDesignChanged)
	hub.Register(client)

	hub.Broadcast(events.ChannelDesignChanged, map[string]any{"revision": 3})

	select {
	case msg := <-client.send:
		wsMsg := WSMessage{}
		if err := json.Unmarshal(msg, &wsMsg); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if wsMsg.EventType != events.ChannelDesignChanged {
			t.Errorf("event_type = %q, want %q", wsMsg.EventType, events.ChannelDesignChanged)
		}
	case <-time.After(time.Second):
		t.Error("timed out waiting for broadcast message")
	}
}

func TestHub_NoMessageForUnsubscribed(t *testing.T) {
	hub := NewHub(wsTestConfig, testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	client := newTestClient(hub, ChannelCameraOrbit)
	hub.Register(client)

	hub.Broadcast(events.ChannelGeometryUpdated, map[string]any{"revision": 1})

	select {
	case <-client.send:
		t.Error("unsubscribed client should not receive message")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHub_ClientCount(t *testing.T) {
	hub := NewHub(wsTestConfig, testLogger())

	client := newTestClient(hub)
	hub.Register(client)
	if hub.ClientCount() != 1 {
		t.Errorf("after register count = %d, want 1", hub.ClientCount())
	}
	hub.Unregister(client)
	if hub.ClientCount() != 0 {
		t.Errorf("after unregister count = %d, want 0", hub.ClientCount())
	}
}

func TestHub_SubscribeUnknownChannel(t *testing.T) {
	hub := NewHub(wsTestConfig, testLogger())
	client := newTestClient(hub)

	client.handleMessage([]byte(`{"type":"subscribe","id":"1","payload":{"channels":["roof.updated"]}}`))

	msg := WSMessage{}
	if err := json.Unmarshal(<-client.send, &msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if msg.Type != WSTypeError {
		t.Errorf("type = %q, want error", msg.Type)
	}
	if client.isSubscribed("roof.updated") {
		t.Error("unknown channel should not be subscribed")
	}
}

func TestWebSocket_SubscribeAndReceive(t *testing.T) {
	srv := testServer(t)
	ts := httptest.NewServer(srv.buildRouter())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/v1/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	sub := `{"type":"subscribe","id":"s1","payload":{"channels":["geometry.updated"]}}`
	if err := conn.WriteMessage(websocket.TextMessage, []byte(sub)); err != nil {
		t.Fatalf("write: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second)) //nolint:errcheck // Test deadline
	var resp WSMessage
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read response: %v", err)
	}
	if resp.Type != WSTypeResponse || resp.ID != "s1" {
		t.Fatalf("response = %+v", resp)
	}

	srv.Hub().Broadcast(events.ChannelGeometryUpdated, map[string]int{"revision": 7})

	var ev WSMessage
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("read event: %v", err)
	}
	if ev.Type != WSTypeEvent || ev.EventType != events.ChannelGeometryUpdated {
		t.Errorf("event = %+v", ev)
	}
}
