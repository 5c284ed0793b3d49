package models

import (
	"time"

	"coachingfees/internal/docstore"
	"coachingfees/internal/domain"
)

const (
	SmsStatusSent   = "sent"
	SmsStatusFailed = "failed"
)

// SmsLogEntry is the append-only audit record: exactly one per recipient
// per mark-paid invocation, never mutated or deleted. Losing one never
// blocks payment state.
type SmsLogEntry struct {
	ID               string               `json:"id"`
	StudentID        string               `json:"studentId"`
	Month            string               `json:"month"`
	RecipientRole    domain.RecipientRole `json:"recipientType"`
	ToPhone          string               `json:"toPhone,omitempty"`
	Message          string               `json:"message"`
	Status           string               `json:"status"`
	ProviderResponse string               `json:"providerResponse"`
	CreatedAt        time.Time            `json:"createdAt,omitempty"`
}

func SmsLogFromDocument(doc docstore.Document) SmsLogEntry {
	return SmsLogEntry{
		ID:               doc.ID,
		StudentID:        doc.String("studentId"),
		Month:            doc.String("month"),
		RecipientRole:    domain.RecipientRole(doc.String("recipientType")),
		ToPhone:          doc.String("toPhone"),
		Message:          doc.String("message"),
		Status:           doc.String("status"),
		ProviderResponse: doc.String("providerResponse"),
		CreatedAt:        doc.CreatedAt,
	}
}
