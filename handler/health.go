package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	probe StatusSource
}

func NewHealthHandler(probe StatusSource) *HealthHandler {
	return &HealthHandler{probe: probe}
}

// Health reports liveness and the startup probe result
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"backend":   h.probe.Status(),
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
