package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type StoreChecker interface {
	Load(ctx context.Context, key string) (string, bool, error)
}

type HealthHandler struct {
	store StoreChecker
	key   string
}

// NewHealthHandler reports healthy while key can be read from store.
func NewHealthHandler(store StoreChecker, key string) *HealthHandler {
	return &HealthHandler{store: store, key: key}
}

func (h *HealthHandler) GetHealth(c *gin.Context) {
	if _, _, err := h.store.Load(c.Request.Context(), h.key); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"store":  "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"store":  "connected",
	})
}
