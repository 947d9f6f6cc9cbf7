package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/evcraddock/rentdesk/internal/db"
	"github.com/evcraddock/rentdesk/internal/email"
)

// envPrefix marks environment variables that override the config file.
const envPrefix = "RD_"

// Config holds the CLI and server configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server" yaml:"server,omitempty"`
	DB        DBConfig        `koanf:"db" yaml:"db,omitempty"`
	Dev       bool            `koanf:"dev" yaml:"dev,omitempty"`
	SMTP      SMTPConfig      `koanf:"smtp" yaml:"smtp,omitempty"`
	Reminders RemindersConfig `koanf:"reminders" yaml:"reminders,omitempty"`
}

// ServerConfig is where the API lives.
type ServerConfig struct {
	URL  string `koanf:"url" yaml:"url,omitempty"`
	Port int    `koanf:"port" yaml:"port,omitempty"`
}

// DBConfig locates the SQLite database used by `rd serve`.
type DBConfig struct {
	Path string `koanf:"path" yaml:"path,omitempty"`
}

// SMTPConfig holds the mail account used for reminder e-mails.
type SMTPConfig struct {
	Host string `koanf:"host" yaml:"host,omitempty"`
	Port string `koanf:"port" yaml:"port,omitempty"`
	User string `koanf:"user" yaml:"user,omitempty"`
	Pass string `koanf:"pass" yaml:"pass,omitempty"`
	From string `koanf:"from" yaml:"from,omitempty"`
}

// RemindersConfig schedules lease expiry reminders in `rd serve`.
type RemindersConfig struct {
	Schedule string `koanf:"schedule" yaml:"schedule,omitempty"`
}

// configKeys are the keys accepted by `rd config set`.
var configKeys = []string{
	"server.url", "server.port", "db.path", "dev",
	"smtp.host", "smtp.port", "smtp.user", "smtp.pass", "smtp.from",
	"reminders.schedule",
}

// Mailer returns the SMTP settings as an email sender.
func (c Config) Mailer() email.Sender {
	return email.Sender{Config: email.SMTPConfig{
		Host: c.SMTP.Host,
		Port: c.SMTP.Port,
		User: c.SMTP.User,
		Pass: c.SMTP.Pass,
		From: c.SMTP.From,
	}}
}

// configPath returns the path to the CLI config file.
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "rd", "config.yaml"), nil
}

// loadFile loads the config file into k. A missing file is not an error.
func loadFile(k *koanf.Koanf) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	if err := k.Load(rawbytes.Provider(data), yaml.Parser()); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// envKey maps RD_SERVER_URL to server.url. Only the first underscore
// separates section from field.
func envKey(s string) string {
	lower := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	section, field, ok := strings.Cut(lower, "_")
	if !ok {
		return lower
	}
	return section + "." + field
}

// loadConfig reads the config file, then applies RD_* environment
// overrides and defaults.
func loadConfig() (Config, error) {
	k := koanf.New(".")
	if err := loadFile(k); err != nil {
		return Config{}, err
	}
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("loading environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := applyDefaults(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) error {
	if cfg.Server.URL == "" {
		cfg.Server.URL = "http://localhost:8080/api"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.DB.Path == "" {
		path, err := db.DefaultPath()
		if err != nil {
			return err
		}
		cfg.DB.Path = path
	}
	if cfg.SMTP.Port == "" {
		cfg.SMTP.Port = "587"
	}
	return nil
}

// setConfigValue updates one key in the config file, leaving environment
// overrides out of the saved file.
func setConfigValue(key, value string) error {
	if !slices.Contains(configKeys, key) {
		return fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(configKeys, ", "))
	}

	k := koanf.New(".")
	if err := loadFile(k); err != nil {
		return err
	}
	if err := k.Set(key, value); err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return saveConfig(cfg)
}

// saveConfig writes the CLI config to disk.
func saveConfig(cfg Config) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yamlv3.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}
