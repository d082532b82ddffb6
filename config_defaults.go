package main

import (
	"hddwarn/internal/format"
	"hddwarn/internal/mailer"
)

const (
	defaultSubject        = "Disk Space Report"
	defaultTimeoutSeconds = 30
	defaultRetentionDays  = 30
)

// defaultOptionalSettings holds the values used for sections an older
// config.json does not mention.
func defaultOptionalSettings() Config {
	return Config{
		TLS:            mailer.TLSOpportunistic,
		TimeoutSeconds: defaultTimeoutSeconds,
		Subject:        defaultSubject,
		Report: ReportConfig{
			ThresholdGiB:    format.DefaultThresholdGiB,
			SortVolumes:     true,
			LineTemplate:    format.DefaultLineTemplate,
			WarningTemplate: format.DefaultWarningTemplate,
		},
		Telegram:     TelegramConfig{Enabled: false},
		Healthchecks: HealthchecksConfig{Enabled: false},
		Logging:      LoggingConfig{RetentionDays: defaultRetentionDays},
	}
}

// defaultConfigTemplate is written when no usable config.json exists.
func defaultConfigTemplate() Config {
	cfg := defaultOptionalSettings()
	cfg.MailServer = "smtp.example.com"
	cfg.Port = 587
	cfg.SenderAddress = "youremail@example.com"
	cfg.Password = "yourpassword"
	cfg.Recipient = "john.doe@example.com"
	return cfg
}
