// Package docstore exposes the generic document storage contract the fee
// tracker needs: schemaless collections with CRUD, equality filters,
// descending order by update time, and a page limit. Payment rows written
// over the years carry drifting field names and free-form values; the store
// hands them back untouched so reconciliation can sort them out.
package docstore

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Collection names used across the service.
const (
	CollectionStudents = "students"
	CollectionPayments = "payments"
	CollectionSettings = "settings"
	CollectionSmsLogs  = "sms_logs"
)

// ErrNotFound is returned by Get/Update/Delete for unknown document ids.
var ErrNotFound = errors.New("document not found")

// Document is one schemaless record as stored.
type Document struct {
	ID        string
	Fields    map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Has reports whether the document carries the field at all, which is
// distinct from carrying it empty.
func (d Document) Has(field string) bool {
	_, ok := d.Fields[field]
	return ok
}

// String returns the trimmed string value of a field, or "" when the field
// is absent or not a string.
func (d Document) String(field string) string {
	if v, ok := d.Fields[field]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// Bool returns a boolean field, falling back to def when absent or untyped.
func (d Document) Bool(field string, def bool) bool {
	if v, ok := d.Fields[field]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// Filter is an equality clause on one document field.
type Filter struct {
	Field string
	Value any
}

// ListOptions shapes a List call. Zero value means: no filters, storage
// order, no limit.
type ListOptions struct {
	Filters          []Filter
	OrderUpdatedDesc bool
	Limit            int
}

// Store is the contract every backend (MySQL, in-memory) implements.
type Store interface {
	List(ctx context.Context, collection string, opts ListOptions) ([]Document, error)
	Get(ctx context.Context, collection, id string) (Document, error)
	Create(ctx context.Context, collection string, fields map[string]any) (Document, error)
	Update(ctx context.Context, collection, id string, fields map[string]any) (Document, error)
	Delete(ctx context.Context, collection, id string) error
}
