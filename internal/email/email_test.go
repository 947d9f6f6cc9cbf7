package email

import (
	"strings"
	"testing"
	"time"
)

func TestFormatReminders(t *testing.T) {
	body := FormatReminders([]Reminder{
		{LeaseID: 7, Tenant: "Grace Wanjiku", Property: "Sunset Apartments", Unit: "A1", EndDate: "2026-03-20", DaysLeft: 19},
		{LeaseID: 9, Tenant: "Brian Otieno", EndDate: "2026-03-02", DaysLeft: 1},
	})

	for _, want := range []string{
		"2 leases are due for renewal",
		"1. Lease #7: Grace Wanjiku",
		"Sunset Apartments | Unit A1",
		"Ends 2026-03-20 (in 19 days)",
		"2. Lease #9: Brian Otieno",
		"Ends 2026-03-02 (in 1 day)",
		"rd leases renew",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in body:\n%s", want, body)
		}
	}

	// Second lease has no property or unit line
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		if strings.Contains(line, "Lease #9") && strings.Contains(lines[i+1], "|") {
			t.Error("second lease should not have a details line")
		}
	}
}

func TestFormatRemindersSingular(t *testing.T) {
	body := FormatReminders([]Reminder{{LeaseID: 1, Tenant: "Amina", EndDate: "2026-03-01"}})
	if !strings.Contains(body, "1 lease is due") {
		t.Error("expected singular wording")
	}
	if !strings.Contains(body, "(today)") {
		t.Error("expected today for zero days left")
	}
}

func TestSendNotConfigured(t *testing.T) {
	err := Sender{}.Send([]string{"owner@example.com"}, "subject", "body")
	if err == nil {
		t.Fatal("expected error for unconfigured SMTP")
	}
}

func TestSMTPConfigIsConfigured(t *testing.T) {
	tests := []struct {
		name string
		cfg  SMTPConfig
		want bool
	}{
		{"fully configured", SMTPConfig{Host: "smtp.example.com", Port: "587", From: "test@example.com"}, true},
		{"missing host", SMTPConfig{From: "test@example.com"}, false},
		{"missing from", SMTPConfig{Host: "smtp.example.com"}, false},
		{"empty", SMTPConfig{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.IsConfigured(); got != tt.want {
				t.Errorf("IsConfigured() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSendNoRecipients(t *testing.T) {
	cfg := SMTPConfig{Host: "smtp.example.com", Port: "587", From: "desk@example.com"}
	err := Send(cfg, nil, "subject", "body")
	if err == nil || !strings.Contains(err.Error(), "no recipients") {
		t.Fatalf("expected no recipients error, got %v", err)
	}
}

func TestMessage(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	msg := string(message("desk@example.com", []string{"a@example.com", "b@example.com"}, "Renewals due", "line one\nline two\n", now))

	for _, want := range []string{
		"From: desk@example.com\r\n",
		"To: a@example.com, b@example.com\r\n",
		"Subject: Renewals due\r\n",
		"Date: Sun, 01 Mar 2026 09:30:00 +0000\r\n",
		"MIME-Version: 1.0\r\n",
		"Content-Type: text/plain; charset=utf-8\r\n\r\n",
		"line one\r\nline two\r\n",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in message:\n%q", want, msg)
		}
	}
	if strings.Contains(msg, "two\n\r") || strings.Count(msg, "\r\r") > 0 {
		t.Errorf("malformed line endings: %q", msg)
	}
}

func TestMessageEncodesSubject(t *testing.T) {
	msg := string(message("desk@example.com", []string{"a@example.com"}, "Café lease", "x", time.Unix(0, 0).UTC()))
	if !strings.Contains(msg, "Subject: =?utf-8?q?Caf=C3=A9_lease?=\r\n") {
		t.Errorf("subject not Q-encoded: %q", msg)
	}
}
