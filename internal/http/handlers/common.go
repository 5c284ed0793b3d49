package handlers

import (
	"net/http"
	"sync"

	intconfig "coachingfees/internal/config"
	"coachingfees/internal/docstore"
	"coachingfees/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

var (
	depsMu sync.RWMutex
	env    intconfig.Env
	store  docstore.Store
)

// Configure wires the handler package with its environment and document
// store. Called once from the router; tests may swap in a memory store.
func Configure(e intconfig.Env, s docstore.Store) {
	depsMu.Lock()
	defer depsMu.Unlock()
	env = e
	store = s
}

func getEnv() intconfig.Env {
	depsMu.RLock()
	defer depsMu.RUnlock()
	return env
}

func getStore() docstore.Store {
	depsMu.RLock()
	defer depsMu.RUnlock()
	if store != nil {
		return store
	}
	return docstore.MySQLStore{}
}

// RespondError sends standard error payload with request_id included.
// Keeps backward compatibility by always providing "message".
func RespondError(c *gin.Context, status int, message string, err error) {
	reqID := middleware.GetRequestID(c)
	payload := gin.H{
		"message":    message,
		"request_id": reqID,
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "empty body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}
