package logger

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestMiddleware_RequestScopedLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var seen *slog.Logger
	r := gin.New()
	r.Use(Middleware(New("local")))
	r.GET("/ping", func(c *gin.Context) {
		seen = FromGin(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	if w.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected generated request id header")
	}
	if seen == nil || seen == slog.Default() {
		t.Fatalf("expected request-scoped logger in request context")
	}
}

func TestMiddleware_KeepsCallerRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Middleware(New("local")))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-Id", "req-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-Id"); got != "req-42" {
		t.Fatalf("expected caller request id echoed, got %q", got)
	}
}

func TestFromGin_FallsBackToDefault(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if FromGin(c) != slog.Default() {
		t.Fatalf("expected default logger without middleware")
	}
}
