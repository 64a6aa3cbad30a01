package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newRateLimitRouter(rate int) *gin.Engine {
	router := gin.New()
	router.Use(RequestID())
	router.POST("/upload", RateLimit(rate, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusSeeOther)
	})
	return router
}

func postFrom(router *gin.Engine, ip string) int {
	req := httptest.NewRequest(http.MethodPost, "/upload", nil)
	req.Header.Set("X-Forwarded-For", ip)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimitMiddleware(t *testing.T) {
	router := newRateLimitRouter(3)

	for i := 0; i < 3; i++ {
		if code := postFrom(router, "192.168.1.1"); code != http.StatusSeeOther {
			t.Errorf("Request %d: Expected status 303, got %d", i+1, code)
		}
	}

	if code := postFrom(router, "192.168.1.1"); code != http.StatusTooManyRequests {
		t.Errorf("Expected status 429, got %d", code)
	}
	if code := postFrom(router, "192.168.1.2"); code != http.StatusSeeOther {
		t.Errorf("Different IP should not be rate limited, got %d", code)
	}
}

func TestRateLimitDisabled(t *testing.T) {
	router := newRateLimitRouter(0)

	for i := 0; i < 10; i++ {
		if code := postFrom(router, "10.0.0.1"); code != http.StatusSeeOther {
			t.Fatalf("Request %d: Expected status 303 with limiting disabled, got %d", i+1, code)
		}
	}
}

func TestRateLimiterWindowReset(t *testing.T) {
	now := time.Now()
	limiter := NewRateLimiter(1, time.Minute)
	limiter.now = func() time.Time { return now }

	if !limiter.Allow("a") {
		t.Fatal("Expected first request to pass")
	}
	if limiter.Allow("a") {
		t.Fatal("Expected second request in window to be rejected")
	}

	now = now.Add(2 * time.Minute)
	if !limiter.Allow("a") {
		t.Error("Expected request after window reset to pass")
	}
}
