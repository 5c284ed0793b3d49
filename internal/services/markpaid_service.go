package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"coachingfees/internal/domain"
	"coachingfees/internal/domain/models"
	"coachingfees/internal/repositories"
	"coachingfees/internal/utils"
)

// MarkPaidResult distinguishes the two effects of a mark-paid invocation:
// the durable state transition and the best-effort notification.
type MarkPaidResult struct {
	Committed bool `json:"committed"`
	Notified  bool `json:"notified"`
}

// MarkPaidService drives the end-to-end transition: validate, notify,
// commit. The two effects are deliberately not atomic; payment correctness
// is the source of truth and must never be blocked by the SMS gateway.
type MarkPaidService struct {
	Students repositories.StudentRepository
	Payments repositories.PaymentRepository
	Settings repositories.SettingsRepository
	Dispatch DispatchService

	AdminEmails []string
	RequestID   string

	// Now lets tests pin the paid-at instant.
	Now func() time.Time
}

// MarkPaid marks (studentID, month) paid on behalf of an administrator.
// Precondition failures (shape, allow-list, unknown student) abort with no
// side effects. After that the order is fixed: attempt notification, then
// unconditionally commit. A notification failure only flips Notified to
// false; a store failure during commit is fatal for the invocation.
// Re-invoking for an already-paid key is a state no-op but re-sends SMS.
func (s MarkPaidService) MarkPaid(ctx context.Context, studentID, month, adminEmail string) (MarkPaidResult, error) {
	studentID = utils.TrimOrEmpty(studentID)
	month = utils.TrimOrEmpty(month)
	adminEmail = utils.TrimOrEmpty(adminEmail)

	if studentID == "" {
		return MarkPaidResult{}, domain.ValidationError{Field: "studentId", Msg: "required"}
	}
	if !utils.IsCanonicalMonthKey(month) {
		return MarkPaidResult{}, domain.ValidationError{Field: "month", Msg: "must be YYYY-MM"}
	}
	if adminEmail == "" {
		return MarkPaidResult{}, domain.ValidationError{Field: "adminEmail", Msg: "required"}
	}
	if !s.isAdmin(adminEmail) {
		return MarkPaidResult{}, domain.AuthorizationError{Email: adminEmail}
	}

	student, err := s.Students.GetByID(ctx, studentID)
	if err != nil {
		return MarkPaidResult{}, err
	}

	settings, err := s.Settings.Load(ctx)
	if err != nil {
		return MarkPaidResult{}, err
	}

	// Step 1: notification, caught in full; a failure here must not abort
	// the commit.
	notified := s.notify(ctx, student, settings, month)

	// Step 2: unconditional idempotent commit using the live field name.
	field, err := s.Payments.StudentField(ctx)
	if err != nil {
		return MarkPaidResult{Notified: notified}, err
	}
	if err := s.Payments.MarkPaid(ctx, field, studentID, month, s.now()); err != nil {
		return MarkPaidResult{Notified: notified}, err
	}

	utils.LogEvent(s.RequestID, "payment", "mark_paid",
		fmt.Sprintf("student=%s month=%s notified=%t admin=%s", studentID, month, notified, adminEmail))

	return MarkPaidResult{Committed: true, Notified: notified}, nil
}

func (s MarkPaidService) notify(ctx context.Context, student models.Student, settings models.Settings, month string) bool {
	recipients := []domain.Recipient{}
	if settings.SendToStudent {
		recipients = append(recipients, domain.Recipient{Role: domain.RoleStudent, Phone: student.StudentPhone})
	}
	if settings.SendToGuardian {
		recipients = append(recipients, domain.Recipient{Role: domain.RoleGuardian, Phone: student.GuardianPhone})
	}
	if settings.SendToTeacher {
		recipients = append(recipients, domain.Recipient{Role: domain.RoleTeacher, Phone: student.TeacherPhone})
	}

	message := RenderMessage(settings.SMSTemplate, student.Name, month, settings.CoachingName)

	outcomes := s.Dispatch.Dispatch(ctx, student.ID, month, message, recipients)
	for _, o := range outcomes {
		if o.Status != models.SmsStatusSent {
			return false
		}
	}
	return true
}

func (s MarkPaidService) isAdmin(email string) bool {
	for _, a := range s.AdminEmails {
		a = utils.TrimOrEmpty(a)
		if a != "" && strings.EqualFold(a, email) {
			return true
		}
	}
	return false
}

func (s MarkPaidService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return utils.NowUTC()
}
