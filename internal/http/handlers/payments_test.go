package handlers

import (
	"context"
	"net/http"
	"testing"

	intconfig "coachingfees/internal/config"
	"coachingfees/internal/docstore"

	"github.com/gin-gonic/gin"
)

func markPaidRouter(mem *docstore.MemoryStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	Configure(intconfig.Env{
		AdminEmails: intconfig.SplitEmailList("admin@example.com"),
	}, mem)
	r := gin.New()
	r.POST("/api/functions/mark-paid", MarkPaid)
	return r
}

func TestMarkPaidHandlerForbiddenOutsideAllowList(t *testing.T) {
	mem := docstore.NewMemoryStore()
	r := markPaidRouter(mem)

	w := postJSON(r, "/api/functions/mark-paid", gin.H{
		"studentId":  "s1",
		"month":      "2026-01",
		"adminEmail": "intruder@example.com",
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("allow-list failure must be 403, got %d (body %s)", w.Code, w.Body.String())
	}

	ctx := context.Background()
	payments, _ := mem.List(ctx, docstore.CollectionPayments, docstore.ListOptions{})
	if len(payments) != 0 {
		t.Fatalf("rejected invocation must not write payment state, got %d rows", len(payments))
	}
	logs, _ := mem.List(ctx, docstore.CollectionSmsLogs, docstore.ListOptions{})
	if len(logs) != 0 {
		t.Fatalf("rejected invocation must not write audit records, got %d rows", len(logs))
	}
}

func TestMarkPaidHandlerValidationIsBadRequest(t *testing.T) {
	mem := docstore.NewMemoryStore()
	r := markPaidRouter(mem)

	w := postJSON(r, "/api/functions/mark-paid", gin.H{
		"studentId":  "s1",
		"month":      "Jan 2026",
		"adminEmail": "admin@example.com",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("malformed month must be 400, not an authorization failure, got %d", w.Code)
	}
}

func TestMarkPaidHandlerUnknownStudentIsNotFound(t *testing.T) {
	mem := docstore.NewMemoryStore()
	r := markPaidRouter(mem)

	w := postJSON(r, "/api/functions/mark-paid", gin.H{
		"studentId":  "ghost",
		"month":      "2026-01",
		"adminEmail": "admin@example.com",
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown student must be 404, got %d (body %s)", w.Code, w.Body.String())
	}
}
