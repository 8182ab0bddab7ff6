package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/promptdeck/promptdeck/internal/ai"
	"github.com/promptdeck/promptdeck/internal/config"
	"github.com/promptdeck/promptdeck/internal/domain/cache"
	"github.com/promptdeck/promptdeck/internal/domain/prompt"
	"github.com/promptdeck/promptdeck/internal/domain/session"
	promptdeckhttp "github.com/promptdeck/promptdeck/internal/http"
	"github.com/promptdeck/promptdeck/internal/logging"
	"github.com/promptdeck/promptdeck/internal/middleware"
	"github.com/promptdeck/promptdeck/internal/monitoring"
	"github.com/promptdeck/promptdeck/internal/providers/clipboard"
	"github.com/promptdeck/promptdeck/internal/providers/credentials"
	"github.com/promptdeck/promptdeck/internal/providers/export"
	"github.com/promptdeck/promptdeck/internal/providers/theme"
	"github.com/promptdeck/promptdeck/internal/service"
	"github.com/promptdeck/promptdeck/internal/storage"
	"github.com/promptdeck/promptdeck/internal/ws"
)

// Server owns every long-lived component and the HTTP listener.
type Server struct {
	cfg    *config.Config
	logger *logging.Logger

	store     *prompt.Manager
	sessions  *session.Manager
	scheduler *session.Scheduler
	wsHandler *ws.Handler
	httpSrv   *http.Server
}

// New builds the full component graph from cfg.
func New(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.NewDefault()
	}

	kv, err := storage.NewFileStore(cfg.Storage.Dir)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	metrics := monitoring.NewMetrics()
	store := prompt.NewManager(logger.Named("prompt"))

	resultCache := cache.New(cfg.Cache.TTL, cfg.Cache.Capacity, kv, logger.Named("cache"))
	resultCache.OnEvict(metrics.RecordCacheEviction)

	credsProvider := credentials.NewProvider(kv)
	client := ai.NewClient(cfg.Provider.BaseURL, cfg.Provider.Timeout)
	gateway := ai.NewGateway(client, resultCache, credsProvider, ai.GatewayOptions{
		Metrics: metrics,
		Logger:  logger.Named("ai"),
		Timeout: cfg.Provider.Timeout,
	})

	sessions := session.NewManager(kv, logger.Named("session"))
	scheduler := session.NewScheduler(store, sessions, session.SchedulerOptions{
		Interval: cfg.Autosave.Interval,
		Debounce: cfg.Autosave.Debounce,
		Metrics:  metrics,
		Logger:   logger.Named("autosave"),
	})

	registry := service.NewRegistry()
	for _, p := range []service.Provider{
		clipboard.NewProvider(),
		theme.NewProvider(kv),
		export.NewProvider(store),
		credsProvider,
	} {
		if err := registry.Register(p); err != nil {
			return nil, fmt.Errorf("register provider: %w", err)
		}
	}
	logger.Info("Service providers registered", zap.Int("count", len(registry.List(nil))))

	// Restore the previous session before anything can observe empty state.
	if snap, err := sessions.Load(); err == nil && snap != nil {
		store.Restore(*snap)
		metrics.IncSessionsRestored()
		logger.Info("Session restored",
			zap.Int("segments", len(snap.Segments)),
			zap.Time("saved_at", snap.SavedAt))
	}

	wsHandler := ws.NewHandler(store, metrics, logger.Named("ws"))

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	handlers := promptdeckhttp.NewHandlers(store, gateway, registry, sessions, metrics)
	router := promptdeckhttp.NewRouter(handlers, wsHandler, promptdeckhttp.RouterOptions{
		CORS: middleware.DefaultCORSConfig(),
		RateLimit: middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		},
		RateLimitEnabled: cfg.RateLimit.Enabled,
		Metrics:          metrics,
	})

	return &Server{
		cfg:    cfg,
		logger: logger,
		store:  store,

		sessions:  sessions,
		scheduler: scheduler,
		wsHandler: wsHandler,
		httpSrv: &http.Server{
			Addr:              net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Run starts background loops and serves HTTP until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.scheduler.Start()
	s.wsHandler.Start()
	s.logger.Info("Server listening", zap.String("addr", s.httpSrv.Addr))

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.shutdown()
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("HTTP shutdown incomplete", zap.Error(err))
	}
	s.shutdown()
	return nil
}

// shutdown stops background loops. The scheduler's Stop performs the final
// session save.
func (s *Server) shutdown() {
	s.wsHandler.Stop()
	s.scheduler.Stop()
}
