package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	intconfig "coachingfees/internal/config"

	"github.com/gin-gonic/gin"
)

func testEnv() intconfig.Env {
	return intconfig.Env{
		JWTSecret:          "s3cret",
		AdminEmails:        intconfig.SplitEmailList("admin@example.com"),
		CORSAllowedOrigins: []string{"http://localhost:5173"},
	}
}

func TestRouterCORSPreflightAllowedOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(testEnv())

	req := httptest.NewRequest(http.MethodOptions, "/api/students", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight status %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("allow-origin %q", got)
	}
}

func TestRouterCORSPreflightUnknownOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(testEnv())

	req := httptest.NewRequest(http.MethodOptions, "/api/students", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unknown origin must not be allowed, got %q", got)
	}
}

func TestRouterGuardsDashboardRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(testEnv())

	req := httptest.NewRequest(http.MethodGet, "/api/students", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("dashboard route without a token must be 401, got %d", w.Code)
	}
}

func TestRouterNoRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(testEnv())

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status %d", w.Code)
	}
}
