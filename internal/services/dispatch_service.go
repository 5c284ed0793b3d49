package services

import (
	"context"
	"strings"

	"coachingfees/internal/domain"
	"coachingfees/internal/domain/models"
	"coachingfees/internal/repositories"
	"coachingfees/internal/utils"
)

// SmsSender is the outbound gateway surface; the raw provider response is
// captured verbatim for the audit log.
type SmsSender interface {
	Send(ctx context.Context, phone, message string) (string, error)
}

type DispatchOutcome struct {
	Role     domain.RecipientRole
	ToPhone  string
	Status   string
	Response string
}

// DispatchService sends one message per eligible recipient and writes one
// audit record per attempt. Recipients are processed strictly sequentially
// so the log keeps a stable order and a gateway rate limit hits everyone
// uniformly.
type DispatchService struct {
	Sender    SmsSender
	Logs      repositories.SmsLogRepository
	RequestID string
}

// Dispatch processes each recipient that has a raw phone at all. An invalid
// number is recorded as failed with response "Invalid phone" and never
// reaches the gateway. Every attempt, success or failure, produces exactly
// one log entry; a failed log write is not retried (best-effort audit).
func (s DispatchService) Dispatch(ctx context.Context, studentID, month, message string, recipients []domain.Recipient) []DispatchOutcome {
	outcomes := make([]DispatchOutcome, 0, len(recipients))

	for _, rc := range recipients {
		if strings.TrimSpace(rc.Phone) == "" {
			continue
		}

		out := DispatchOutcome{Role: rc.Role}
		phone, ok := utils.NormalizePhone(rc.Phone)
		if !ok {
			out.Status = models.SmsStatusFailed
			out.Response = "Invalid phone"
		} else {
			out.ToPhone = phone
			resp, err := s.Sender.Send(ctx, phone, message)
			if err != nil {
				out.Status = models.SmsStatusFailed
				out.Response = resp
				if out.Response == "" {
					out.Response = err.Error()
				}
				utils.LogEvent(s.RequestID, "sms", "send", "failed role="+string(rc.Role)+": "+err.Error())
			} else {
				out.Status = models.SmsStatusSent
				out.Response = resp
			}
		}

		if err := s.Logs.Append(ctx, models.SmsLogEntry{
			StudentID:        studentID,
			Month:            month,
			RecipientRole:    rc.Role,
			ToPhone:          out.ToPhone,
			Message:          message,
			Status:           out.Status,
			ProviderResponse: out.Response,
		}); err != nil {
			utils.LogEvent(s.RequestID, "sms", "audit", "log write failed: "+err.Error())
		}

		outcomes = append(outcomes, out)
	}

	return outcomes
}

// RenderMessage substitutes {name}, {month} (long form) and {coachingName}
// into the configured template. Unknown placeholders stay verbatim.
func RenderMessage(template, name, monthKey, coachingName string) string {
	r := strings.NewReplacer(
		"{name}", name,
		"{month}", utils.MonthText(monthKey),
		"{coachingName}", coachingName,
	)
	return r.Replace(template)
}
