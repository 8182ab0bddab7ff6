package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/promptdeck/promptdeck/internal/middleware"
	"github.com/promptdeck/promptdeck/internal/monitoring"
	"github.com/promptdeck/promptdeck/internal/ws"
)

// RouterOptions configures the middleware stack.
type RouterOptions struct {
	CORS      middleware.CORSConfig
	RateLimit middleware.RateLimitConfig
	// RateLimitEnabled turns per-IP limiting on.
	RateLimitEnabled bool
	// Metrics enables the HTTP metrics middleware and /metrics endpoint.
	Metrics *monitoring.Metrics
}

// NewRouter builds the Gin engine with all routes registered.
func NewRouter(h *Handlers, wsHandler *ws.Handler, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(opts.CORS))
	if opts.RateLimitEnabled {
		router.Use(middleware.RateLimit(opts.RateLimit))
	}
	if opts.Metrics != nil {
		router.Use(monitoring.Middleware(opts.Metrics))
	}

	router.GET("/", h.Root)
	router.GET("/health", h.Health)
	router.GET("/stats", h.Stats)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/state", h.GetState)
	router.POST("/prompt", h.SetPrompt)
	router.PATCH("/segments/:id", h.UpdateSegment)
	router.POST("/segments/reorder", h.ReorderSegments)
	router.POST("/segments/:id/condense", h.CondenseSegment)
	router.POST("/segmentize", h.Segmentize)
	router.POST("/error/dismiss", h.DismissError)

	router.GET("/output", h.GetOutput)
	router.GET("/export", h.Export)

	router.GET("/services", h.ListServices)
	router.POST("/services/execute", h.ExecuteService)

	router.GET("/session", h.GetSession)
	router.POST("/session/save", h.SaveSession)
	router.POST("/session/restore", h.RestoreSession)

	if wsHandler != nil {
		router.GET("/ws", wsHandler.HandleConnection)
	}

	return router
}
