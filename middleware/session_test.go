package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AnTengye/tenantdesk/config"
	"github.com/AnTengye/tenantdesk/pkg/logger"
	"github.com/AnTengye/tenantdesk/service"
	"github.com/gin-gonic/gin"
)

const testCookie = "tenantdesk_session"

func newSessionRouter(store *service.WidgetStore) *gin.Engine {
	router := gin.New()
	router.Use(Session(store, testCookie))
	router.GET("/", func(c *gin.Context) {
		fromCtx, _ := c.Request.Context().Value(logger.SessionIDKey).(string)
		if fromCtx != GetSessionID(c) {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, GetWidget(c).ID())
	})
	return router
}

func newSessionStore() *service.WidgetStore {
	return service.NewWidgetStore(nil, &config.SessionConfig{}, &config.BackendConfig{TimeoutSeconds: 1})
}

func TestSessionIssuesCookie(t *testing.T) {
	store := newSessionStore()
	router := newSessionRouter(store)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != testCookie {
		t.Fatalf("Expected session cookie, got %v", cookies)
	}
	if cookies[0].Value != w.Body.String() {
		t.Errorf("Expected cookie %s to match widget %s", cookies[0].Value, w.Body.String())
	}
	if !cookies[0].HttpOnly {
		t.Error("Expected HttpOnly session cookie")
	}
}

func TestSessionReusesKnownCookie(t *testing.T) {
	store := newSessionStore()
	router := newSessionRouter(store)
	existing := store.GetOrCreate("")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: existing.ID()})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Body.String() != existing.ID() {
		t.Errorf("Expected widget %s, got %s", existing.ID(), w.Body.String())
	}
	if len(w.Result().Cookies()) != 0 {
		t.Error("Expected no new cookie for a known session")
	}
	if store.Count() != 1 {
		t.Errorf("Expected 1 widget, got %d", store.Count())
	}
}

func TestSessionReplacesUnknownCookie(t *testing.T) {
	store := newSessionStore()
	router := newSessionRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: "stale"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Value == "stale" {
		t.Errorf("Expected a replacement cookie, got %v", cookies)
	}
}

func TestGetWidgetEmpty(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if GetWidget(c) != nil {
		t.Error("Expected nil widget without session middleware")
	}
	if GetSessionID(c) != "" {
		t.Error("Expected empty session id without session middleware")
	}
}
