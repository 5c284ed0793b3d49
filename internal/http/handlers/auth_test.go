package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	intconfig "coachingfees/internal/config"
	"coachingfees/internal/docstore"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func loginEnv(t *testing.T) intconfig.Env {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}
	return intconfig.Env{
		AdminEmails:       intconfig.SplitEmailList("admin@example.com"),
		AdminPasswordHash: string(hash),
		JWTSecret:         "s3cret",
	}
}

func loginRouter(env intconfig.Env) *gin.Engine {
	gin.SetMode(gin.TestMode)
	Configure(env, docstore.NewMemoryStore())
	r := gin.New()
	r.POST("/api/auth/login", Login)
	return r
}

func postJSON(r *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoginRejectsNonAllowListedEmail(t *testing.T) {
	r := loginRouter(loginEnv(t))
	w := postJSON(r, "/api/auth/login", gin.H{"email": "intruder@example.com", "password": "hunter2"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", w.Code)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	r := loginRouter(loginEnv(t))
	w := postJSON(r, "/api/auth/login", gin.H{"email": "admin@example.com", "password": "wrong"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", w.Code)
	}
}

func TestLoginIssuesToken(t *testing.T) {
	r := loginRouter(loginEnv(t))
	w := postJSON(r, "/api/auth/login", gin.H{"email": "admin@example.com", "password": "hunter2"})
	if w.Code != http.StatusOK {
		t.Fatalf("status %d (body %s)", w.Code, w.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
		Email string `json:"email"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token == "" {
		t.Fatalf("empty token in response")
	}
	if resp.Email != "admin@example.com" {
		t.Fatalf("email %q", resp.Email)
	}
}

func TestLoginFailsWithoutConfiguredHash(t *testing.T) {
	env := loginEnv(t)
	env.AdminPasswordHash = ""
	r := loginRouter(env)
	w := postJSON(r, "/api/auth/login", gin.H{"email": "admin@example.com", "password": "hunter2"})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status %d, want 500", w.Code)
	}
}
