package repositories

import (
	"context"
	"time"

	"coachingfees/internal/docstore"
	"coachingfees/internal/domain"
	"coachingfees/internal/domain/models"
	"coachingfees/internal/utils"
)

type PaymentRepository struct {
	Store docstore.Store
}

func (r PaymentRepository) store() docstore.Store {
	if r.Store != nil {
		return r.Store
	}
	return docstore.MySQLStore{}
}

// ListAll fetches the whole payment collection, newest first. Reconciliation
// always consumes the full page rather than patching a cached view.
func (r PaymentRepository) ListAll(ctx context.Context) ([]docstore.Document, error) {
	docs, err := r.store().List(ctx, docstore.CollectionPayments, docstore.ListOptions{
		OrderUpdatedDesc: true,
		Limit:            pageLimit,
	})
	if err != nil {
		return nil, domain.StoreError{Op: "list payments", Err: err}
	}
	return docs, nil
}

// DetectStudentField inspects the first record of a batch to decide which
// historical student-reference field is live. The primary name is the
// fallback for an empty batch. The result is resolved once per session and
// threaded through all subsequent reads and writes; probing per operation
// is exactly the instability this avoids.
func DetectStudentField(docs []docstore.Document) string {
	if len(docs) == 0 {
		return models.PrimaryStudentRefField
	}
	for _, field := range models.StudentRefFields {
		if docs[0].Has(field) {
			return field
		}
	}
	return models.PrimaryStudentRefField
}

// StudentField resolves the live student-reference field from the store.
func (r PaymentRepository) StudentField(ctx context.Context) (string, error) {
	docs, err := r.store().List(ctx, docstore.CollectionPayments, docstore.ListOptions{
		OrderUpdatedDesc: true,
		Limit:            1,
	})
	if err != nil {
		return "", domain.StoreError{Op: "detect student field", Err: err}
	}
	return DetectStudentField(docs), nil
}

// MarkPaid upserts the paid state for (studentID, month) using the detected
// field name for both the lookup and any create. Idempotent: an existing
// row is updated in place; duplicate rows for the key are a read-time
// concern of reconciliation, not a write-time constraint.
func (r PaymentRepository) MarkPaid(ctx context.Context, field, studentID, month string, now time.Time) error {
	existing, err := r.store().List(ctx, docstore.CollectionPayments, docstore.ListOptions{
		Filters: []docstore.Filter{
			{Field: field, Value: studentID},
			{Field: "month", Value: month},
		},
		Limit: 1,
	})
	if err != nil {
		return domain.StoreError{Op: "find payment", Err: err}
	}

	paidAt := utils.FormatTimestamp(now)
	if len(existing) > 0 {
		if _, err := r.store().Update(ctx, docstore.CollectionPayments, existing[0].ID, map[string]any{
			"status": models.StatusPaid,
			"paidAt": paidAt,
		}); err != nil {
			return domain.StoreError{Op: "update payment", Err: err}
		}
		return nil
	}

	if _, err := r.store().Create(ctx, docstore.CollectionPayments, map[string]any{
		field:    studentID,
		"month":  month,
		"status": models.StatusPaid,
		"paidAt": paidAt,
	}); err != nil {
		return domain.StoreError{Op: "create payment", Err: err}
	}
	return nil
}
