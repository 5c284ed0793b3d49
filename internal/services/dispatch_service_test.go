package services

import (
	"context"
	"errors"
	"testing"

	"coachingfees/internal/docstore"
	"coachingfees/internal/domain"
	"coachingfees/internal/domain/models"
	"coachingfees/internal/repositories"
)

type fakeSender struct {
	calls    []string
	response string
	err      error
}

func (f *fakeSender) Send(_ context.Context, phone, _ string) (string, error) {
	f.calls = append(f.calls, phone)
	return f.response, f.err
}

func smsLogsFor(t *testing.T, mem *docstore.MemoryStore, month string) []models.SmsLogEntry {
	t.Helper()
	logs, err := repositories.SmsLogRepository{Store: mem}.ListByMonth(context.Background(), month, "")
	if err != nil {
		t.Fatalf("list logs error: %v", err)
	}
	return logs
}

func TestDispatchSendsAndLogsEachRecipient(t *testing.T) {
	mem := docstore.NewMemoryStore()
	sender := &fakeSender{response: `{"success":true}`}
	svc := DispatchService{Sender: sender, Logs: repositories.SmsLogRepository{Store: mem}, RequestID: "test"}

	outcomes := svc.Dispatch(context.Background(), "s1", "2026-01", "hello", []domain.Recipient{
		{Role: domain.RoleStudent, Phone: "01712345678"},
		{Role: domain.RoleGuardian, Phone: "01812345678"},
	})

	if len(outcomes) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(outcomes))
	}
	for _, o := range outcomes {
		if o.Status != models.SmsStatusSent {
			t.Fatalf("role %s not sent: %+v", o.Role, o)
		}
	}
	if len(sender.calls) != 2 {
		t.Fatalf("gateway called %d times, want 2", len(sender.calls))
	}
	if sender.calls[0] != "+8801712345678" {
		t.Fatalf("gateway must receive the canonical number, got %s", sender.calls[0])
	}

	logs := smsLogsFor(t, mem, "2026-01")
	if len(logs) != 2 {
		t.Fatalf("expected 2 audit records, got %d", len(logs))
	}
	for _, l := range logs {
		if l.Status != models.SmsStatusSent || l.ProviderResponse != `{"success":true}` {
			t.Fatalf("bad audit record: %+v", l)
		}
	}
}

func TestDispatchInvalidPhoneNeverReachesGateway(t *testing.T) {
	mem := docstore.NewMemoryStore()
	sender := &fakeSender{response: "ok"}
	svc := DispatchService{Sender: sender, Logs: repositories.SmsLogRepository{Store: mem}, RequestID: "test"}

	outcomes := svc.Dispatch(context.Background(), "s1", "2026-01", "hello", []domain.Recipient{
		{Role: domain.RoleStudent, Phone: "12345"},
	})

	if len(sender.calls) != 0 {
		t.Fatalf("gateway must not be called for an invalid number")
	}
	if len(outcomes) != 1 || outcomes[0].Status != models.SmsStatusFailed {
		t.Fatalf("expected one failed outcome, got %+v", outcomes)
	}
	if outcomes[0].Response != "Invalid phone" {
		t.Fatalf("response %q, want Invalid phone", outcomes[0].Response)
	}

	logs := smsLogsFor(t, mem, "2026-01")
	if len(logs) != 1 {
		t.Fatalf("invalid number still gets its audit record, got %d", len(logs))
	}
	if logs[0].ToPhone != "" {
		t.Fatalf("failed normalization must store no destination, got %q", logs[0].ToPhone)
	}
	if logs[0].ProviderResponse != "Invalid phone" {
		t.Fatalf("audit response %q", logs[0].ProviderResponse)
	}
}

func TestDispatchSkipsEmptyPhones(t *testing.T) {
	mem := docstore.NewMemoryStore()
	sender := &fakeSender{response: "ok"}
	svc := DispatchService{Sender: sender, Logs: repositories.SmsLogRepository{Store: mem}, RequestID: "test"}

	outcomes := svc.Dispatch(context.Background(), "s1", "2026-01", "hello", []domain.Recipient{
		{Role: domain.RoleStudent, Phone: ""},
		{Role: domain.RoleGuardian, Phone: "   "},
		{Role: domain.RoleTeacher, Phone: "01912345678"},
	})

	if len(outcomes) != 1 {
		t.Fatalf("blank phones are skipped silently, got %d outcomes", len(outcomes))
	}
	if len(smsLogsFor(t, mem, "2026-01")) != 1 {
		t.Fatalf("skipped recipients must not be logged")
	}
}

func TestDispatchGatewayFailureIsPerRecipient(t *testing.T) {
	mem := docstore.NewMemoryStore()
	sender := &fakeSender{response: "rate limited", err: errors.New("sms gateway returned status 429")}
	svc := DispatchService{Sender: sender, Logs: repositories.SmsLogRepository{Store: mem}, RequestID: "test"}

	outcomes := svc.Dispatch(context.Background(), "s1", "2026-01", "hello", []domain.Recipient{
		{Role: domain.RoleStudent, Phone: "01712345678"},
		{Role: domain.RoleGuardian, Phone: "01812345678"},
	})

	if len(outcomes) != 2 {
		t.Fatalf("a failed send must not short-circuit later recipients")
	}
	for _, o := range outcomes {
		if o.Status != models.SmsStatusFailed {
			t.Fatalf("expected failed outcome, got %+v", o)
		}
		if o.Response != "rate limited" {
			t.Fatalf("raw gateway body must be preserved, got %q", o.Response)
		}
	}
}

func TestRenderMessage(t *testing.T) {
	got := RenderMessage("Dear {name}, fee for {month} received. - {coachingName}",
		"Rahim", "2026-01", "Sunrise Coaching")
	want := "Dear Rahim, fee for January 2026 received. - Sunrise Coaching"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestRenderMessageUnknownPlaceholderKept(t *testing.T) {
	got := RenderMessage("{name} owes {amount}", "Rahim", "2026-01", "X")
	if got != "Rahim owes {amount}" {
		t.Fatalf("unknown placeholder must stay verbatim, got %q", got)
	}
}
