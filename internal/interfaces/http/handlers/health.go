// internal/interfaces/http/handlers/health.go
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/your-org/pharmacy-storefront/internal/config"
	"github.com/your-org/pharmacy-storefront/internal/infrastructure/storage"
)

type healthChecker interface {
	Health(ctx context.Context) error
}

// HealthHandler reports service liveness and the cart store's health.
type HealthHandler struct {
	cfg   *config.Config
	store storage.Store
}

// NewHealthHandler creates a health handler
func NewHealthHandler(cfg *config.Config, store storage.Store) *HealthHandler {
	return &HealthHandler{cfg: cfg, store: store}
}

// Health returns the service status.
func (h *HealthHandler) Health(c *gin.Context) {
	status := http.StatusOK
	cartStore := "ok"

	if checker, ok := h.store.(healthChecker); ok {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := checker.Health(ctx); err != nil {
			status = http.StatusServiceUnavailable
			cartStore = err.Error()
		}
	}

	c.JSON(status, gin.H{
		"status":     http.StatusText(status),
		"app":        h.cfg.App.Name,
		"version":    h.cfg.App.Version,
		"cart_store": cartStore,
		"timestamp":  time.Now().UTC(),
	})
}
