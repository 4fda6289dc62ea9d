// ABOUTME: Liveness endpoint reporting rule store readiness and backend
// ABOUTME: Always 200; readiness is reported, not enforced
package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/harper/pagesmith/internal/bootstrap"
)

type HealthHandler struct {
	app *bootstrap.App
}

func NewHealthHandler(app *bootstrap.App) *HealthHandler {
	return &HealthHandler{app: app}
}

func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"uptime_sec":  int(time.Since(h.app.StartedAt).Seconds()),
		"storage":     h.app.Backend.Name(),
		"rules_ready": h.app.Store.Ready(),
		"chunks":      h.app.Store.Len(),
		"model":       h.app.Completer != nil,
	})
}
