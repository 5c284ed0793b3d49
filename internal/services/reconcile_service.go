package services

import (
	"context"
	"fmt"
	"strings"

	"coachingfees/internal/docstore"
	"coachingfees/internal/domain/models"
	"coachingfees/internal/repositories"
	"coachingfees/internal/utils"
)

// ReconcileService collapses raw payment rows into the single authoritative
// paid/unpaid state per (student, month). The view and the detected student
// field are explicit session state, rebuilt in full on demand; nothing is
// incrementally patched from store round-trips, so stale duplicates cannot
// accumulate.
type ReconcileService struct {
	Payments  repositories.PaymentRepository
	RequestID string

	// StudentField is the live student-reference field detected during the
	// last Rebuild; valid for all reads and writes of this session.
	StudentField string

	view map[models.PaymentKey]models.NormalizedPayment
}

// Rebuild fetches the whole payment collection and reconstructs the view.
func (s *ReconcileService) Rebuild(ctx context.Context) error {
	docs, err := s.Payments.ListAll(ctx)
	if err != nil {
		return err
	}

	s.StudentField = repositories.DetectStudentField(docs)
	s.view = BuildPaymentView(docs, s.StudentField)

	utils.LogEvent(s.RequestID, "reconcile", "rebuild",
		fmt.Sprintf("rows=%d keys=%d field=%s", len(docs), len(s.view), s.StudentField))
	return nil
}

// View exposes the reconciled map; read-only by convention.
func (s *ReconcileService) View() map[models.PaymentKey]models.NormalizedPayment {
	return s.view
}

// StatusFor returns the authoritative status for a key; unpaid when the key
// has no surviving record.
func (s *ReconcileService) StatusFor(studentID, month string) string {
	if p, ok := s.view[models.PaymentKey{StudentID: studentID, Month: month}]; ok {
		return p.Status
	}
	return models.StatusUnpaid
}

// NormalizePayment maps one raw row through the month and status
// normalizers. Rows whose student reference or month cannot be normalized
// are dropped rather than shown under a wrong key: recall is traded for
// correctness of what is displayed.
func NormalizePayment(doc docstore.Document, field string) (models.NormalizedPayment, bool) {
	studentID := doc.String(field)
	if studentID == "" {
		for _, f := range models.StudentRefFields {
			if v := doc.String(f); v != "" {
				studentID = v
				break
			}
		}
	}

	month, ok := utils.NormalizeMonthKey(doc.String("month"))
	if studentID == "" || !ok {
		return models.NormalizedPayment{}, false
	}

	status := models.StatusUnpaid
	if strings.EqualFold(doc.String("status"), models.StatusPaid) {
		status = models.StatusPaid
	}

	ts := doc.UpdatedAt
	if ts.IsZero() {
		ts = doc.CreatedAt
	}

	return models.NormalizedPayment{
		StudentID: studentID,
		Month:     month,
		Status:    status,
		UpdatedAt: ts,
	}, true
}

// PickBestPayment resolves two records for the same key: paid always beats
// unpaid regardless of timestamps; among equals the newer record wins, ties
// going to the second operand. Applied pairwise over any input order, the
// surviving status and timestamp are the same.
func PickBestPayment(a, b models.NormalizedPayment) models.NormalizedPayment {
	if a.Paid() != b.Paid() {
		if b.Paid() {
			return b
		}
		return a
	}
	if b.UpdatedAt.Before(a.UpdatedAt) {
		return a
	}
	return b
}

// BuildPaymentView groups raw rows by (studentId, month) and collapses
// duplicates with PickBestPayment.
func BuildPaymentView(docs []docstore.Document, field string) map[models.PaymentKey]models.NormalizedPayment {
	view := make(map[models.PaymentKey]models.NormalizedPayment, len(docs))
	for _, doc := range docs {
		p, ok := NormalizePayment(doc, field)
		if !ok {
			continue
		}
		key := p.Key()
		if current, exists := view[key]; exists {
			view[key] = PickBestPayment(current, p)
		} else {
			view[key] = p
		}
	}
	return view
}
