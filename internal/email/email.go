// Package email provides email formatting and SMTP sending for rentdesk.
package email

import (
	"bytes"
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"
)

// SMTPConfig holds SMTP connection settings.
type SMTPConfig struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

// IsConfigured returns true if SMTP settings are present.
func (c SMTPConfig) IsConfigured() bool {
	return c.Host != "" && c.From != ""
}

// Reminder is one lease listed in an expiry reminder.
type Reminder struct {
	LeaseID  int64
	Tenant   string
	Property string
	Unit     string
	EndDate  string
	DaysLeft int
}

// FormatReminders builds a plain-text email body listing leases that are
// about to end.
func FormatReminders(reminders []Reminder) string {
	var buf bytes.Buffer

	noun := "leases are"
	if len(reminders) == 1 {
		noun = "lease is"
	}
	fmt.Fprintf(&buf, "Hi,\n\nThe following %d %s due for renewal:\n\n", len(reminders), noun)

	for i, r := range reminders {
		fmt.Fprintf(&buf, "%d. Lease #%d: %s\n", i+1, r.LeaseID, r.Tenant)

		var details []string
		if r.Property != "" {
			details = append(details, r.Property)
		}
		if r.Unit != "" {
			details = append(details, "Unit "+r.Unit)
		}
		if len(details) > 0 {
			fmt.Fprintf(&buf, "   %s\n", strings.Join(details, " | "))
		}

		fmt.Fprintf(&buf, "   Ends %s (%s)\n", r.EndDate, daysLeft(r.DaysLeft))
		fmt.Fprintln(&buf)
	}

	fmt.Fprintf(&buf, "Run `rd leases renew <id>` to renew.\n")

	return buf.String()
}

func daysLeft(n int) string {
	switch {
	case n == 0:
		return "today"
	case n == 1:
		return "in 1 day"
	}
	return fmt.Sprintf("in %d days", n)
}

// Sender sends mail through one SMTP account.
type Sender struct {
	Config SMTPConfig
}

// Send sends a plain-text email to every address in to.
func (s Sender) Send(to []string, subject, body string) error {
	return Send(s.Config, to, subject, body)
}

// dialTimeout bounds connecting to the SMTP server.
const dialTimeout = 15 * time.Second

// Send delivers a plain-text email. Port 465 uses implicit TLS; any other
// port upgrades with STARTTLS when the server offers it.
func Send(cfg SMTPConfig, to []string, subject, body string) error {
	if !cfg.IsConfigured() {
		return errors.New("SMTP not configured")
	}
	if len(to) == 0 {
		return errors.New("no recipients")
	}

	c, err := dial(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := deliver(c, cfg, to, message(cfg.From, to, subject, body, time.Now())); err != nil {
		return err
	}
	if err := c.Quit(); err != nil {
		return fmt.Errorf("quit: %w", err)
	}
	return nil
}

func dial(cfg SMTPConfig) (*smtp.Client, error) {
	addr := net.JoinHostPort(cfg.Host, cfg.Port)
	tlsCfg := &tls.Config{ServerName: cfg.Host}
	dialer := &net.Dialer{Timeout: dialTimeout}

	var (
		conn net.Conn
		err  error
	)
	if cfg.Port == "465" {
		conn, err = tls.DialWithDialer(dialer, "tcp", addr, tlsCfg)
	} else {
		conn, err = dialer.Dial("tcp", addr)
	}
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", addr, err)
	}

	c, err := smtp.NewClient(conn, cfg.Host)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("creating SMTP client: %w", err)
	}
	if cfg.Port != "465" {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err := c.StartTLS(tlsCfg); err != nil {
				c.Close()
				return nil, fmt.Errorf("starttls: %w", err)
			}
		}
	}
	return c, nil
}

func deliver(c *smtp.Client, cfg SMTPConfig, to []string, msg []byte) error {
	if cfg.User != "" {
		if err := c.Auth(smtp.PlainAuth("", cfg.User, cfg.Pass, cfg.Host)); err != nil {
			return fmt.Errorf("auth: %w", err)
		}
	}

	if err := c.Mail(cfg.From); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	for _, rcpt := range to {
		if err := c.Rcpt(rcpt); err != nil {
			return fmt.Errorf("rcpt to %s: %w", rcpt, err)
		}
	}

	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close data: %w", err)
	}
	return nil
}

// message builds the RFC 5322 message. Body line endings become CRLF.
func message(from string, to []string, subject, body string, now time.Time) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	fmt.Fprintf(&b, "Date: %s\r\n", now.Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(strings.ReplaceAll(strings.ReplaceAll(body, "\r\n", "\n"), "\n", "\r\n"))
	return b.Bytes()
}
