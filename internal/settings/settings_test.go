package settings

import (
	"strings"
	"testing"
)

func TestDefaultsValid(t *testing.T) {
	s := Defaults()
	if err := s.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	if s.Currency != "KES" || s.Locale != "en-KE" || s.Theme != ThemeLight {
		t.Errorf("defaults = %+v", s)
	}
}

func TestValidate(t *testing.T) {
	s := Defaults()
	s.Theme = "blue"
	s.ContactEmail = "nope"
	err := s.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"theme", "contactEmail"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("err = %v, want mention of %s", err, want)
		}
	}
}

func TestWantsEmail(t *testing.T) {
	s := Defaults()
	s.EmailEnabled = true
	if s.WantsEmail() {
		t.Error("no recipient means no email")
	}
	s.ContactEmail = "office@example.com"
	if !s.WantsEmail() {
		t.Error("expected email to be wanted")
	}
}

func TestFormatter(t *testing.T) {
	s := Defaults()
	s.Currency = "USD"
	if got := s.Formatter().Money(1200); got != "USD 1,200" {
		t.Errorf("money = %q", got)
	}
}
