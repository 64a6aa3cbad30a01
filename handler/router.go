package handler

import (
	"fmt"

	"github.com/AnTengye/tenantdesk/config"
	"github.com/AnTengye/tenantdesk/middleware"
	"github.com/AnTengye/tenantdesk/service"
	"github.com/AnTengye/tenantdesk/web"
	"github.com/gin-gonic/gin"
)

// NewRouter wires middleware, templates and routes into a gin engine
func NewRouter(cfg *config.Config, probe StatusSource, store *service.WidgetStore) (*gin.Engine, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	router := gin.New()
	router.MaxMultipartMemory = cfg.Upload.MaxMemory()
	router.SetHTMLTemplate(tmpl)

	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogger("/health"))

	landing := NewLandingHandler(probe)
	upload := NewUploadHandler()
	health := NewHealthHandler(probe)

	router.GET("/health", health.Health)

	pages := router.Group("/")
	pages.Use(middleware.Session(store, cfg.Session.CookieName))
	{
		pages.GET("/", landing.Index)
		pages.GET("/upload", landing.Index)
		pages.GET("/upload/state", upload.State)
		pages.POST("/upload",
			middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window()),
			upload.Submit,
		)
	}

	return router, nil
}
