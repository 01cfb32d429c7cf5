package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// PingFunc reports whether a dependency answers.
type PingFunc func(ctx context.Context) error

type HealthHandler struct {
	checks map[string]PingFunc
}

// NewHealthHandler takes the named dependencies readiness depends on.
func NewHealthHandler(checks map[string]PingFunc) *HealthHandler {
	return &HealthHandler{checks: checks}
}

func (h *HealthHandler) Healthz(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *HealthHandler) Readyz(ctx *gin.Context) {
	status := http.StatusOK
	results := gin.H{}

	for name, ping := range h.checks {
		pctx, cancel := context.WithTimeout(ctx.Request.Context(), time.Second)
		err := ping(pctx)
		cancel()

		if err != nil {
			status = http.StatusServiceUnavailable
			results[name] = "down"
			continue
		}

		results[name] = "up"
	}

	if status != http.StatusOK {
		ctx.JSON(status, gin.H{"status": "not_ready", "checks": results})
		return
	}

	ctx.JSON(status, gin.H{"status": "ready", "checks": results})
}
