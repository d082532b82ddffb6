package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"hddwarn/internal/hostenv"
	"hddwarn/internal/mailer"
	"hddwarn/internal/notify"
)

// MailSender delivers one report email.
type MailSender interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// Notifier mirrors the report to a secondary channel.
type Notifier interface {
	Name() string
	Notify(ctx context.Context, subject, body string) error
}

// AppContext holds the application dependencies. Tests replace the host
// environment, the mail transport and the output writers.
type AppContext struct {
	WorkDir       string
	ConfigFile    string
	LogLevel      string
	ConfigureLogs bool

	Env    hostenv.Env
	Stdout io.Writer
	Stderr io.Writer
	HTTP   *http.Client
	Now    func() time.Time

	NewMailer    func(mailer.Settings) MailSender
	NewNotifiers func(*Config) []Notifier
}

// InitApp returns a context wired to the real host.
func InitApp() *AppContext {
	return &AppContext{
		ConfigFile:    defaultConfigFile,
		LogLevel:      "info",
		ConfigureLogs: true,
		Env:           hostenv.System{},
		Stdout:        os.Stdout,
		Stderr:        os.Stderr,
		HTTP:          &http.Client{Timeout: 10 * time.Second},
		Now:           time.Now,
		NewMailer:     func(s mailer.Settings) MailSender { return mailer.New(s) },
		NewNotifiers:  defaultNotifiers,
	}
}

// path resolves a fixed relative file name against the working directory.
func (a *AppContext) path(name string) string {
	if filepath.IsAbs(name) || a.WorkDir == "" {
		return name
	}
	return filepath.Join(a.WorkDir, name)
}

func (a *AppContext) configStore() ConfigStore {
	name := a.ConfigFile
	if name == "" {
		name = defaultConfigFile
	}
	return ConfigStore{Path: a.path(name)}
}

func (a *AppContext) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

func defaultNotifiers(cfg *Config) []Notifier {
	var out []Notifier
	if cfg.Telegram.Enabled {
		out = append(out, notify.NewTelegram(cfg.Telegram.BotToken, cfg.Telegram.ChatID))
	}
	return out
}
