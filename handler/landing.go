package handler

import (
	"net/http"

	"github.com/AnTengye/tenantdesk/middleware"
	"github.com/AnTengye/tenantdesk/model"
	"github.com/gin-gonic/gin"
)

// StatusSource supplies the backend connectivity line
type StatusSource interface {
	Status() string
}

type LandingHandler struct {
	probe StatusSource
}

func NewLandingHandler(probe StatusSource) *LandingHandler {
	return &LandingHandler{probe: probe}
}

// Index renders the landing page with the caller's upload widget
func (h *LandingHandler) Index(c *gin.Context) {
	var upload model.UploadSession
	if widget := middleware.GetWidget(c); widget != nil {
		upload = widget.Snapshot()
	}

	// the page embeds per-session widget state
	c.Header("Cache-Control", "no-store")
	c.HTML(http.StatusOK, "index.html", gin.H{
		"BackendStatus": h.probe.Status(),
		"Features":      model.Features(),
		"Upload":        upload,
	})
}
