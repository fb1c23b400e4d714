package api

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/nerrad567/steelframe-core/internal/audit"
	"github.com/nerrad567/steelframe-core/internal/building"
	"github.com/nerrad567/steelframe-core/internal/infrastructure/config"
	"github.com/nerrad567/steelframe-core/internal/infrastructure/logging"
	"github.com/nerrad567/steelframe-core/internal/opening"
	"github.com/nerrad567/steelframe-core/internal/scene"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight requests
// to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// Default viewport for drags whose pointer-down carries none.
const (
	defaultViewportWidth  = 1280
	defaultViewportHeight = 720
)

// HealthChecker is implemented by infrastructure the health endpoint probes.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// DBStatsProvider reports connection pool statistics.
type DBStatsProvider interface {
	Stats() sql.DBStats
}

// ConnectionState reports whether a broker connection is up.
type ConnectionState interface {
	IsConnected() bool
}

// Deps holds the dependencies required by the API server.
type Deps struct {
	Config  config.APIConfig
	WS      config.WebSocketConfig
	Export  config.ExportConfig
	Logger  *logging.Logger
	Store   *building.Store
	Builder *scene.Builder

	// Designs stores saved designs. Optional; /designs answers 503 without it.
	Designs building.Repository

	// History records whole-design operations. Optional.
	History audit.Repository

	// Checks are probed by GET /health, keyed by name.
	Checks map[string]HealthChecker

	DB   DBStatsProvider
	MQTT ConnectionState

	// ExternalHub is used instead of creating a hub, so the event relay and
	// the server broadcast to the same clients.
	ExternalHub *Hub
	Version     string
}

// Server is the HTTP API server.
//
// It manages the HTTP listener, routes, middleware, and WebSocket hub.
// The server is created with New() and started with Start().
type Server struct {
	cfg     config.APIConfig
	wsCfg   config.WebSocketConfig
	expCfg  config.ExportConfig
	logger  *logging.Logger
	store   *building.Store
	builder *scene.Builder
	designs building.Repository
	history audit.Repository
	checks  map[string]HealthChecker
	db      DBStatsProvider
	mqtt    ConnectionState
	version string

	drag     *opening.Controller
	orbit    atomic.Bool
	captured atomic.Int64
	limiter *ipRateLimiter

	server      *http.Server
	hub         *Hub
	externalHub bool
	startTime   time.Time
	cancel      context.CancelFunc
}

// New creates a new API server with the given dependencies.
// The server is not started until Start() is called.
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Store == nil {
		return nil, fmt.Errorf("design store is required")
	}
	if deps.Builder == nil {
		return nil, fmt.Errorf("scene builder is required")
	}

	s := &Server{
		cfg:       deps.Config,
		wsCfg:     deps.WS,
		expCfg:    deps.Export,
		logger:    deps.Logger,
		store:     deps.Store,
		builder:   deps.Builder,
		designs:   deps.Designs,
		history:   deps.History,
		checks:    deps.Checks,
		db:        deps.DB,
		mqtt:      deps.MQTT,
		version:   deps.Version,
		startTime: time.Now(),
	}
	s.orbit.Store(true)
	s.captured.Store(noPointer)

	if deps.ExternalHub != nil {
		s.hub = deps.ExternalHub
		s.externalHub = true
	} else {
		s.hub = NewHub(s.wsCfg, s.logger)
	}

	if rl := deps.Config.RateLimit; rl.Enabled {
		s.limiter = newIPRateLimiter(rate.Limit(float64(rl.RequestsPerMinute)/60), rl.Burst)
	}

	s.drag = opening.NewController(s.store, orbitRelay{s}, captureRelay{s}, opening.Viewport{
		Width:  defaultViewportWidth,
		Height: defaultViewportHeight,
	})
	s.drag.SetLogger(s.logger)

	return s, nil
}

// Hub returns the WebSocket hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Start sets up the router, starts the hub and the limiter cleanup, and
// launches the HTTP listener in a background goroutine.
func (s *Server) Start(ctx context.Context) error {
	var srvCtx context.Context
	srvCtx, s.cancel = context.WithCancel(ctx)

	if !s.externalHub {
		go s.hub.Run(srvCtx)
	}
	if s.limiter != nil {
		go s.limiter.cleanupLoop(srvCtx)
	}

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:           s.buildRouter(),
		ReadTimeout:       time.Duration(s.cfg.Timeouts.Read) * time.Second,
		ReadHeaderTimeout: time.Duration(s.cfg.Timeouts.Read) * time.Second,
		WriteTimeout:      time.Duration(s.cfg.Timeouts.Write) * time.Second,
		IdleTimeout:       time.Duration(s.cfg.Timeouts.Idle) * time.Second,
	}

	go func() {
		var err error
		if s.cfg.TLS.Enabled {
			s.logger.Info("API server starting with TLS",
				"address", s.server.Addr,
				"cert", s.cfg.TLS.CertFile,
			)
			err = s.server.ListenAndServeTLS(s.cfg.TLS.CertFile, s.cfg.TLS.KeyFile)
		} else {
			s.logger.Info("API server starting", "address", s.server.Addr)
			err = s.server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	return nil
}

// Close waits up to gracefulShutdownTimeout for in-flight requests, then
// closes remaining connections.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}
	if s.cancel != nil {
		s.cancel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("API server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}

// HealthCheck verifies the API server has been started.
func (s *Server) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("api health check: %w", ctx.Err())
	default:
	}
	if s.server == nil {
		return fmt.Errorf("api server not started")
	}
	return nil
}

// orbitRelay is the drag controller's camera. It records the orbit flag and
// tells viewers to suspend or resume orbit input.
type orbitRelay struct {
	s *Server
}

func (o orbitRelay) SetOrbitEnabled(enabled bool) {
	o.s.orbit.Store(enabled)
	o.s.hub.Broadcast(ChannelCameraOrbit, map[string]bool{"enabled": enabled})
}

// noPointer marks that no pointer is captured.
const noPointer = -1

// captureRelay is the drag controller's pointer capturer. It records the
// captured pointer and tells viewers which pointer to route exclusively.
// The controller rejects events from any other pointer ID.
type captureRelay struct {
	s *Server
}

func (c captureRelay) Capture(pointerID int) {
	c.s.captured.Store(int64(pointerID))
	c.s.hub.Broadcast(ChannelPointerCapture, pointerCapture{PointerID: pointerID, Captured: true})
}

func (c captureRelay) Release(pointerID int) {
	c.s.captured.Store(noPointer)
	c.s.hub.Broadcast(ChannelPointerCapture, pointerCapture{PointerID: pointerID, Captured: false})
}

type pointerCapture struct {
	PointerID int  `json:"pointer_id"`
	Captured  bool `json:"captured"`
}
