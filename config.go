package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"

	"hddwarn/internal/format"
	"hddwarn/internal/mailer"
)

// defaultConfigFile is resolved against the working directory.
const defaultConfigFile = "config.json"

// ErrConfigNotFound covers both a missing and an unreadable config file.
var ErrConfigNotFound = errors.New("config not found")

// requiredKeys must be present in config.json for it to count as valid.
var requiredKeys = []string{"mailserver", "port", "sendmail", "password"}

// ConfigStore reads and writes config.json.
type ConfigStore struct {
	Path string
}

// Load reads the config file. Any failure, missing file or bad JSON alike,
// is reported as ErrConfigNotFound.
func (s ConfigStore) Load() (*Config, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		slog.Debug("Config read failed", "file", s.Path, "err", err)
		return nil, ErrConfigNotFound
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		slog.Debug("Config parse failed", "file", s.Path, "err", err)
		return nil, ErrConfigNotFound
	}
	for _, key := range requiredKeys {
		if _, ok := raw[key]; !ok {
			slog.Debug("Config missing key", "file", s.Path, "key", key)
			return nil, ErrConfigNotFound
		}
	}

	cfg := defaultOptionalSettings()
	if err := json.Unmarshal(data, &cfg); err != nil {
		slog.Debug("Config decode failed", "file", s.Path, "err", err)
		return nil, ErrConfigNotFound
	}

	sanitizeConfig(&cfg)
	return &cfg, nil
}

// WriteDefault creates or truncates the config file with placeholder values
// and prints a confirmation to out.
func (s ConfigStore) WriteDefault(out io.Writer) error {
	data, err := json.MarshalIndent(defaultConfigTemplate(), "", "  ")
	if err != nil {
		return fmt.Errorf("error serializing config: %w", err)
	}
	if err := os.WriteFile(s.Path, data, 0600); err != nil {
		return fmt.Errorf("error writing %s: %w", s.Path, err)
	}
	fmt.Fprintf(out, "Default config created at %s\n", s.Path)
	return nil
}

// sanitizeConfig fills blanks and disables integrations that lack the
// settings they need.
func sanitizeConfig(cfg *Config) {
	cfg.MailServer = strings.TrimSpace(cfg.MailServer)
	cfg.SenderAddress = strings.TrimSpace(cfg.SenderAddress)
	cfg.Recipient = strings.TrimSpace(cfg.Recipient)

	switch tls := strings.ToLower(strings.TrimSpace(cfg.TLS)); tls {
	case mailer.TLSOpportunistic, mailer.TLSMandatory, mailer.TLSImplicit, mailer.TLSNone:
		cfg.TLS = tls
	case "":
		cfg.TLS = mailer.TLSOpportunistic
	default:
		slog.Warn("Unknown tls mode, using opportunistic", "tls", cfg.TLS)
		cfg.TLS = mailer.TLSOpportunistic
	}

	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = defaultTimeoutSeconds
	}
	if strings.TrimSpace(cfg.Subject) == "" {
		cfg.Subject = defaultSubject
	}
	if cfg.Logging.RetentionDays < 0 {
		cfg.Logging.RetentionDays = 0
	}

	if cfg.Telegram.Enabled && (strings.TrimSpace(cfg.Telegram.BotToken) == "" || cfg.Telegram.ChatID == 0) {
		slog.Warn("Telegram enabled without bot_token or chat_id, disabling")
		cfg.Telegram.Enabled = false
	}
	if cfg.Healthchecks.Enabled && strings.TrimSpace(cfg.Healthchecks.PingURL) == "" {
		cfg.Healthchecks.Enabled = false
	}
}

// Validate checks that every field needed to send mail to recipient is set.
func (c *Config) Validate(recipient string) error {
	var result *multierror.Error
	if c.MailServer == "" {
		result = multierror.Append(result, errors.New("mailserver is empty"))
	}
	if c.Port == 0 {
		result = multierror.Append(result, errors.New("port is zero"))
	}
	if c.SenderAddress == "" {
		result = multierror.Append(result, errors.New("sendmail is empty"))
	}
	if c.Password == "" {
		result = multierror.Append(result, errors.New("password is empty"))
	}
	if strings.TrimSpace(recipient) == "" {
		result = multierror.Append(result, errors.New("recipient is empty"))
	}
	return result.ErrorOrNil()
}

// MailSettings derives the SMTP settings.
func (c *Config) MailSettings() mailer.Settings {
	return mailer.Settings{
		Server:   c.MailServer,
		Port:     c.Port,
		Sender:   c.SenderAddress,
		Password: c.Password,
		TLS:      c.TLS,
		Timeout:  time.Duration(c.TimeoutSeconds) * time.Second,
	}
}

// Formatter compiles the report wording.
func (c *Config) Formatter() (*format.Formatter, error) {
	return format.NewFormatter(format.Template{
		Line:    c.Report.LineTemplate,
		Warning: c.Report.WarningTemplate,
	}, c.Report.ThresholdGiB)
}
