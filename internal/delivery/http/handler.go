package http

import (
	"errors"
	"net/http"

	"github.com/decorlens/backend/internal/domain"
	"github.com/decorlens/backend/internal/logger"
	"github.com/decorlens/backend/internal/usecase"
	"github.com/gin-gonic/gin"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	furnishing *usecase.FurnishingService
	logger     logger.Logger
}

// NewHandler creates a new HTTP handler. A nil service makes the furniture
// endpoints answer 503.
func NewHandler(furnishing *usecase.FurnishingService, log logger.Logger) *Handler {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Handler{furnishing: furnishing, logger: log}
}

type recommendRequest struct {
	Style      domain.Style `json:"style" binding:"required"`
	Categories []string     `json:"categories" binding:"required"`
	ImagePath  string       `json:"imagePath"`
	MaxItems   int          `json:"maxItems"`
}

type matchRequest struct {
	Style domain.Style          `json:"style"`
	Items []domain.DetectedItem `json:"items" binding:"required"`
}

type detectRequest struct {
	Style     domain.Style `json:"style"`
	ImagePath string       `json:"imagePath" binding:"required"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "decorlens-backend",
		"version": "1.0.0",
	})
}

// Recommend handles POST /api/v1/furniture/recommend
func (h *Handler) Recommend(c *gin.Context) {
	if !h.available(c) {
		return
	}

	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	result, err := h.furnishing.Recommend(c.Request.Context(), &domain.SelectionRequest{
		Style:      req.Style,
		Categories: req.Categories,
		ImagePath:  req.ImagePath,
		MaxItems:   req.MaxItems,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Match handles POST /api/v1/furniture/match
func (h *Handler) Match(c *gin.Context) {
	if !h.available(c) {
		return
	}

	var req matchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: items must not be empty"})
		return
	}

	items, err := h.furnishing.MatchDetections(c.Request.Context(), &domain.DetectionRequest{
		Style: req.Style,
		Items: req.Items,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Detect handles POST /api/v1/furniture/detect
func (h *Handler) Detect(c *gin.Context) {
	if !h.available(c) {
		return
	}

	var req detectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	items, err := h.furnishing.MatchDetections(c.Request.Context(), &domain.DetectionRequest{
		Style:     req.Style,
		ImagePath: req.ImagePath,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) available(c *gin.Context) bool {
	if h.furnishing == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "furnishing service not configured"})
		return false
	}
	return true
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrImageNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
	default:
		h.logger.WithError(err).Error("request failed", map[string]interface{}{
			"path":      c.Request.URL.Path,
			"requestId": c.GetString(requestIDKey),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
