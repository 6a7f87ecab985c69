package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/mealmate/backend/internal/middleware"
	"github.com/pageza/mealmate/backend/internal/service"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// HistoryHandler exposes the suggestion journal
type HistoryHandler struct {
	journal service.Journal
}

// NewHistoryHandler creates a new HistoryHandler instance
func NewHistoryHandler(journal service.Journal) *HistoryHandler {
	return &HistoryHandler{journal: journal}
}

// RegisterRoutes registers the history routes
func (h *HistoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	suggestions := router.Group("/suggestions")
	{
		suggestions.GET("", h.ListSuggestions)
		suggestions.GET("/:id", h.GetSuggestion)
	}
}

// ListSuggestions handles GET /api/suggestions?limit=N
func (h *HistoryHandler) ListSuggestions(c *gin.Context) {
	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	suggestions, err := h.journal.Recent(c.Request.Context(), limit)
	if err != nil {
		middleware.Logger(c).WithError(err).Error("failed to list suggestions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list suggestions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

// GetSuggestion handles GET /api/suggestions/:id
func (h *HistoryHandler) GetSuggestion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid suggestion id"})
		return
	}

	suggestion, err := h.journal.Get(c.Request.Context(), id)
	if errors.Is(err, service.ErrSuggestionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "suggestion not found"})
		return
	}
	if err != nil {
		middleware.Logger(c).WithError(err).Error("failed to get suggestion")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get suggestion"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestion": suggestion})
}
