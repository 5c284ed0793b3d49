package models

import "time"

const (
	StatusPaid   = "paid"
	StatusUnpaid = "unpaid"
)

// Historical payment rows reference their student under one of these field
// names, depending on which schema generation wrote them. PrimaryStudentRefField
// is the fallback when the collection is empty.
var StudentRefFields = []string{"studentId", "studentid", "studentID"}

const PrimaryStudentRefField = "studentId"

// PaymentKey identifies the single authoritative status slot per student
// and month.
type PaymentKey struct {
	StudentID string
	Month     string
}

// NormalizedPayment is derived, in-memory only: the reconciled view exposes
// exactly one per key. It is rebuilt from raw rows on every load and never
// persisted.
type NormalizedPayment struct {
	StudentID string    `json:"studentId"`
	Month     string    `json:"month"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p NormalizedPayment) Key() PaymentKey {
	return PaymentKey{StudentID: p.StudentID, Month: p.Month}
}

func (p NormalizedPayment) Paid() bool {
	return p.Status == StatusPaid
}
