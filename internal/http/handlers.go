package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/promptdeck/promptdeck/internal/ai"
	"github.com/promptdeck/promptdeck/internal/domain/prompt"
	"github.com/promptdeck/promptdeck/internal/domain/session"
	"github.com/promptdeck/promptdeck/internal/middleware"
	"github.com/promptdeck/promptdeck/internal/monitoring"
	"github.com/promptdeck/promptdeck/internal/providers/export"
	"github.com/promptdeck/promptdeck/internal/service"
	"github.com/promptdeck/promptdeck/internal/shared/types"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	store    *prompt.Manager
	gateway  *ai.Gateway
	registry *service.Registry
	sessions *session.Manager
	metrics  *monitoring.Metrics
}

// NewHandlers creates a new handler set
func NewHandlers(
	store *prompt.Manager,
	gateway *ai.Gateway,
	registry *service.Registry,
	sessions *session.Manager,
	metrics *monitoring.Metrics,
) *Handlers {
	return &Handlers{
		store:    store,
		gateway:  gateway,
		registry: registry,
		sessions: sessions,
		metrics:  metrics,
	}
}

// Root handles the basic liveness check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "PromptDeck Service (Go)",
		"version": "0.1.0",
	})
}

// Health handles the detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":           "healthy",
		"service_registry": h.registry.Stats(),
		"segments":         len(h.store.View().Segments),
	})
}

// GetState returns the full state view
func (h *Handlers) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.View())
}

// SetPrompt replaces the original prompt and clears derived state
func (h *Handlers) SetPrompt(c *gin.Context) {
	var req types.SetPromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.store.SetPrompt(req.Text)
	c.JSON(http.StatusOK, h.store.View())
}

// UpdateSegment applies a partial update to one segment
func (h *Handlers) UpdateSegment(c *gin.Context) {
	segID := c.Param("id")

	var patch types.SegmentPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.UpdateSegment(segID, patch); err != nil {
		if errors.Is(err, prompt.ErrSegmentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.store.View())
}

// ReorderSegments rearranges segments to the requested permutation
func (h *Handlers) ReorderSegments(c *gin.Context) {
	var req types.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.Reorder(req.IDs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.store.View())
}

// DismissError clears the surfaced error
func (h *Handlers) DismissError(c *gin.Context) {
	h.store.DismissError()
	c.JSON(http.StatusOK, h.store.View())
}

// Segmentize splits the original prompt into segments via the AI gateway
func (h *Handlers) Segmentize(c *gin.Context) {
	gen, err := h.store.Begin()
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "an AI operation is already in progress"})
		return
	}

	// Read the prompt only after the slot is held so a concurrent
	// SetPrompt cannot slip its predecessor's text into this operation.
	text := h.store.Prompt()
	if strings.TrimSpace(text) == "" {
		h.store.Abort()
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt is empty"})
		return
	}

	drafts, err := h.gateway.Segmentize(c.Request.Context(), text)
	if err != nil {
		msg := ai.Message(err)
		h.store.Fail(gen, msg)
		c.JSON(http.StatusBadGateway, gin.H{"error": msg})
		return
	}

	if err := h.store.ApplySegmentize(gen, drafts); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "operation superseded"})
		return
	}

	c.JSON(http.StatusOK, h.store.View())
}

// CondenseSegment rewrites one segment's content to a shorter equivalent
func (h *Handlers) CondenseSegment(c *gin.Context) {
	segID := c.Param("id")

	gen, err := h.store.Begin()
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "an AI operation is already in progress"})
		return
	}

	// Resolve the segment only after the slot is held; see Segmentize.
	seg, ok := h.store.Segment(segID)
	if !ok {
		h.store.Abort()
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("segment not found: %s", segID)})
		return
	}
	if strings.TrimSpace(seg.Content) == "" {
		h.store.Abort()
		c.JSON(http.StatusBadRequest, gin.H{"error": "segment is empty"})
		return
	}

	text, err := h.gateway.Condense(c.Request.Context(), seg.Content)
	if err != nil {
		msg := ai.Message(err)
		h.store.Fail(gen, msg)
		c.JSON(http.StatusBadGateway, gin.H{"error": msg})
		return
	}

	if err := h.store.ApplyCondense(gen, segID, text); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "operation superseded"})
		return
	}

	c.JSON(http.StatusOK, h.store.View())
}

// GetOutput returns the derived output
func (h *Handlers) GetOutput(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"output": h.store.Output()})
}

// Export serves the derived output as a downloadable text file
func (h *Handlers) Export(c *gin.Context) {
	output := h.store.Output()
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(output))
}

// ListServices lists registered services, optionally filtered by category
func (h *Handlers) ListServices(c *gin.Context) {
	var category *types.Category
	if categoryStr := c.Query("category"); categoryStr != "" {
		cat := types.Category(categoryStr)
		category = &cat
	}

	c.JSON(http.StatusOK, gin.H{
		"services": h.registry.List(category),
		"stats":    h.registry.Stats(),
	})
}

// ExecuteService executes a service tool
func (h *Handlers) ExecuteService(c *gin.Context) {
	var req types.ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if rid := c.GetString(middleware.RequestIDKey); rid != "" {
		if req.Context == nil {
			req.Context = &types.Context{}
		}
		if req.Context.RequestID == nil {
			req.Context.RequestID = &rid
		}
	}

	result, err := h.registry.Execute(c.Request.Context(), req.ToolID, req.Params, req.Context)
	if err != nil {
		c.JSON(http.StatusInternalServerError, result)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetSession returns the persisted session, if any
func (h *Handlers) GetSession(c *gin.Context) {
	snap, err := h.sessions.Load()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": snap})
}

// SaveSession persists the current state immediately
func (h *Handlers) SaveSession(c *gin.Context) {
	if err := h.sessions.Save(h.store.Snapshot()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": true})
}

// RestoreSession replaces the working state from the persisted session
func (h *Handlers) RestoreSession(c *gin.Context) {
	snap, err := h.sessions.Load()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if snap == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no saved session"})
		return
	}

	h.store.Restore(*snap)
	if h.metrics != nil {
		h.metrics.IncSessionsRestored()
	}
	c.JSON(http.StatusOK, h.store.View())
}

// Stats returns aggregate request statistics
func (h *Handlers) Stats(c *gin.Context) {
	if h.metrics == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, h.metrics.GetSnapshot())
}
