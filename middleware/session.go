package middleware

import (
	"net/http"

	"github.com/AnTengye/tenantdesk/pkg/logger"
	"github.com/AnTengye/tenantdesk/service"
	"github.com/gin-gonic/gin"
)

const (
	widgetKey    = "upload_widget"
	sessionIDKey = "session_id"
)

// Session mounts the caller's upload widget, creating one and issuing a
// cookie for browsers seen for the first time or carrying an unknown id.
func Session(store *service.WidgetStore, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Cookie(cookieName)

		widget := store.GetOrCreate(id)
		if widget.ID() != id {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cookieName, widget.ID(), 0, "/", "", c.Request.TLS != nil, true)
		}

		c.Set(widgetKey, widget)
		c.Set(sessionIDKey, widget.ID())

		ctx := logger.WithSession(c.Request.Context(), widget.ID())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetWidget gets the session's upload widget from context
func GetWidget(c *gin.Context) *service.UploadWidget {
	if w, exists := c.Get(widgetKey); exists {
		return w.(*service.UploadWidget)
	}
	return nil
}

// GetSessionID gets the session id from context
func GetSessionID(c *gin.Context) string {
	if id, exists := c.Get(sessionIDKey); exists {
		return id.(string)
	}
	return ""
}
