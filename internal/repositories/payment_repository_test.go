package repositories

import (
	"context"
	"testing"
	"time"

	"coachingfees/internal/docstore"
	"coachingfees/internal/domain/models"
)

func TestDetectStudentFieldPriorityOrder(t *testing.T) {
	doc := docstore.Document{Fields: map[string]any{
		"studentid": "a",
		"studentId": "b",
	}}
	if got := DetectStudentField([]docstore.Document{doc}); got != "studentId" {
		t.Fatalf("camelCase variant must win when both are present, got %q", got)
	}

	doc = docstore.Document{Fields: map[string]any{"studentID": "a"}}
	if got := DetectStudentField([]docstore.Document{doc}); got != "studentID" {
		t.Fatalf("got %q", got)
	}
}

func TestDetectStudentFieldEmptyBatch(t *testing.T) {
	if got := DetectStudentField(nil); got != models.PrimaryStudentRefField {
		t.Fatalf("empty batch must fall back to the primary field, got %q", got)
	}
}

func TestDetectStudentFieldUnknownShape(t *testing.T) {
	doc := docstore.Document{Fields: map[string]any{"month": "2026-01"}}
	if got := DetectStudentField([]docstore.Document{doc}); got != models.PrimaryStudentRefField {
		t.Fatalf("unrecognized record must fall back to the primary field, got %q", got)
	}
}

func TestMarkPaidCreatesThenUpdates(t *testing.T) {
	mem := docstore.NewMemoryStore()
	repo := PaymentRepository{Store: mem}
	ctx := context.Background()
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

	if err := repo.MarkPaid(ctx, "studentId", "s1", "2026-01", now); err != nil {
		t.Fatalf("first mark paid error: %v", err)
	}
	if err := repo.MarkPaid(ctx, "studentId", "s1", "2026-01", now.Add(time.Hour)); err != nil {
		t.Fatalf("second mark paid error: %v", err)
	}

	docs, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("upsert must not duplicate the row, got %d", len(docs))
	}
	if got := docs[0].String("status"); got != models.StatusPaid {
		t.Fatalf("status %q", got)
	}
	if got := docs[0].String("paidAt"); got != "2026-01-15T13:00:00Z" {
		t.Fatalf("paidAt must reflect the latest invocation, got %q", got)
	}
}

func TestMarkPaidSeparateMonthsSeparateRows(t *testing.T) {
	mem := docstore.NewMemoryStore()
	repo := PaymentRepository{Store: mem}
	ctx := context.Background()
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

	if err := repo.MarkPaid(ctx, "studentId", "s1", "2026-01", now); err != nil {
		t.Fatalf("mark paid error: %v", err)
	}
	if err := repo.MarkPaid(ctx, "studentId", "s1", "2026-02", now); err != nil {
		t.Fatalf("mark paid error: %v", err)
	}

	docs, _ := repo.ListAll(ctx)
	if len(docs) != 2 {
		t.Fatalf("distinct months must stay distinct rows, got %d", len(docs))
	}
}

func TestStudentFieldResolvesFromStore(t *testing.T) {
	mem := docstore.NewMemoryStore()
	ctx := context.Background()

	if _, err := mem.Create(ctx, docstore.CollectionPayments, map[string]any{
		"studentid": "s1",
		"month":     "2026-01",
		"status":    "paid",
	}); err != nil {
		t.Fatalf("seed error: %v", err)
	}

	repo := PaymentRepository{Store: mem}
	field, err := repo.StudentField(ctx)
	if err != nil {
		t.Fatalf("student field error: %v", err)
	}
	if field != "studentid" {
		t.Fatalf("got %q, want studentid", field)
	}
}
