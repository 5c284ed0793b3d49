package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"coachingfees/internal/domain"
	"coachingfees/internal/domain/models"
	"coachingfees/internal/repositories"
	"coachingfees/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// ReceiptService renders a fee receipt PDF for a paid (student, month).
type ReceiptService struct {
	Students  repositories.StudentRepository
	Payments  repositories.PaymentRepository
	Settings  repositories.SettingsRepository
	RequestID string

	// Loader overrides data loading in tests.
	Loader func(ctx context.Context, studentID, month string) (receiptData, error)
}

type receiptData struct {
	StudentID    string
	StudentName  string
	Month        string
	PaidAt       time.Time
	CoachingName string
}

func (s ReceiptService) Generate(ctx context.Context, studentID, month string) ([]byte, string, error) {
	if !utils.IsCanonicalMonthKey(month) {
		return nil, "", domain.ValidationError{Field: "month", Msg: "must be YYYY-MM"}
	}

	data, err := s.loadReceiptData(ctx, studentID, month)
	if err != nil {
		return nil, "", err
	}

	utils.LogEvent(s.RequestID, "receipt", "generate",
		fmt.Sprintf("student=%s month=%s", studentID, month))
	return buildReceiptPDF(data)
}

func (s ReceiptService) loadReceiptData(ctx context.Context, studentID, month string) (receiptData, error) {
	if s.Loader != nil {
		return s.Loader(ctx, studentID, month)
	}

	student, err := s.Students.GetByID(ctx, studentID)
	if err != nil {
		return receiptData{}, err
	}

	rec := ReconcileService{Payments: s.Payments, RequestID: s.RequestID}
	if err := rec.Rebuild(ctx); err != nil {
		return receiptData{}, err
	}
	if rec.StatusFor(studentID, month) != models.StatusPaid {
		return receiptData{}, domain.NotFoundError{Resource: "paid payment"}
	}

	settings, err := s.Settings.Load(ctx)
	if err != nil {
		return receiptData{}, err
	}

	paidAt := time.Time{}
	if p, ok := rec.View()[models.PaymentKey{StudentID: studentID, Month: month}]; ok {
		paidAt = p.UpdatedAt
	}

	return receiptData{
		StudentID:    studentID,
		StudentName:  student.Name,
		Month:        month,
		PaidAt:       paidAt,
		CoachingName: settings.CoachingName,
	}, nil
}

func buildReceiptPDF(d receiptData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Fee Receipt", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "FEE RECEIPT")
	pdf.Ln(12)

	paidAt := "-"
	if !d.PaidAt.IsZero() {
		paidAt = d.PaidAt.Format("2006-01-02 15:04")
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Coaching     : %s", safe(d.CoachingName, "-")),
		fmt.Sprintf("Student      : %s", safe(d.StudentName, "-")),
		fmt.Sprintf("Student ID   : %s", safe(d.StudentID, "-")),
		fmt.Sprintf("Month        : %s", utils.MonthText(d.Month)),
		"Status       : PAID",
		fmt.Sprintf("Recorded At  : %s", paidAt),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Note: this receipt confirms one monthly coaching fee payment.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("RECEIPT_%s_%s.pdf", safeFilenamePart(d.StudentID), d.Month)
	return buf.Bytes(), filename, nil
}

func safe(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func safeFilenamePart(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
