// Package settings holds the application-wide preferences singleton.
package settings

import (
	"github.com/evcraddock/rentdesk/internal/export"
	"github.com/evcraddock/rentdesk/internal/resource"
	"github.com/evcraddock/rentdesk/internal/validation"
)

// Theme is the UI colour scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Valid returns true if t is a known theme.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Settings is the singleton preferences record.
type Settings struct {
	ID           int64  `json:"id,omitempty"`
	Currency     string `json:"currency" validate:"min=1"`
	Locale       string `json:"locale" validate:"min=2"`
	Theme        Theme  `json:"theme" validate:"enum"`
	BrandLogoURL string `json:"brandLogoUrl,omitempty" validate:"omitempty,url"`
	ContactEmail string `json:"contactEmail,omitempty" validate:"omitempty,email"`
	ContactPhone string `json:"contactPhone,omitempty"`
	EmailEnabled bool   `json:"emailEnabled"`
	SMSEnabled   bool   `json:"smsEnabled"`
	PushEnabled  bool   `json:"pushEnabled"`
}

// Resource is the typed handle for the settings singleton.
var Resource = resource.NewHandle[Settings](resource.Settings)

// Defaults returns the settings used before any are saved.
func Defaults() Settings {
	return Settings{
		ID:       1,
		Currency: export.DefaultCurrency,
		Locale:   export.DefaultLocale,
		Theme:    ThemeLight,
	}
}

// Validate checks the settings rules.
func (s Settings) Validate() error {
	return validation.Struct(s)
}

// Formatter returns the money and date formatter for these settings.
func (s Settings) Formatter() export.Formatter {
	return export.NewFormatter(s.Currency, s.Locale)
}

// WantsEmail reports whether e-mail notifications are on and have a
// recipient.
func (s Settings) WantsEmail() bool {
	return s.EmailEnabled && s.ContactEmail != ""
}
