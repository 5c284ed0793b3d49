package repositories

import (
	"context"

	intdb "coachingfees/internal/db"
	"coachingfees/internal/docstore"
	"coachingfees/internal/domain"
	"coachingfees/internal/domain/models"
)

type SmsLogRepository struct {
	Store docstore.Store
}

func (r SmsLogRepository) store() docstore.Store {
	if r.Store != nil {
		return r.Store
	}
	return docstore.MySQLStore{}
}

// Append writes one immutable delivery record. The destination is stored
// null when the raw phone failed normalization.
func (r SmsLogRepository) Append(ctx context.Context, e models.SmsLogEntry) error {
	_, err := r.store().Create(ctx, docstore.CollectionSmsLogs, map[string]any{
		"studentId":        e.StudentID,
		"month":            e.Month,
		"recipientType":    string(e.RecipientRole),
		"toPhone":          intdb.NullIfEmpty(e.ToPhone),
		"message":          e.Message,
		"status":           e.Status,
		"providerResponse": e.ProviderResponse,
	})
	if err != nil {
		return domain.StoreError{Op: "append sms log", Err: err}
	}
	return nil
}

// ListByMonth returns the audit trail for a month, optionally narrowed to
// one delivery status, newest first.
func (r SmsLogRepository) ListByMonth(ctx context.Context, month, status string) ([]models.SmsLogEntry, error) {
	filters := []docstore.Filter{{Field: "month", Value: month}}
	if status != "" {
		filters = append(filters, docstore.Filter{Field: "status", Value: status})
	}

	docs, err := r.store().List(ctx, docstore.CollectionSmsLogs, docstore.ListOptions{
		Filters:          filters,
		OrderUpdatedDesc: true,
		Limit:            pageLimit,
	})
	if err != nil {
		return nil, domain.StoreError{Op: "list sms logs", Err: err}
	}

	out := make([]models.SmsLogEntry, 0, len(docs))
	for _, doc := range docs {
		out = append(out, models.SmsLogFromDocument(doc))
	}
	return out, nil
}
