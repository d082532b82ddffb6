package main

// Config mirrors config.json. The first five keys keep the names used by
// existing installations.
type Config struct {
	MailServer      string             `json:"mailserver"`
	Port            uint16             `json:"port"`
	SenderAddress   string             `json:"sendmail"`
	Password        string             `json:"password"`
	Recipient       string             `json:"recipient,omitempty"`
	TLS             string             `json:"tls"`
	TimeoutSeconds  int                `json:"timeout_seconds"`
	Subject         string             `json:"subject"`
	FailOnSendError bool               `json:"fail_on_send_error"`
	Report          ReportConfig       `json:"report"`
	Telegram        TelegramConfig     `json:"telegram"`
	Healthchecks    HealthchecksConfig `json:"healthchecks"`
	Logging         LoggingConfig      `json:"logging"`
}

type ReportConfig struct {
	ThresholdGiB    uint64 `json:"threshold_gib"`
	SortVolumes     bool   `json:"sort_volumes"`
	LineTemplate    string `json:"line_template"`
	WarningTemplate string `json:"warning_template"`
}

type TelegramConfig struct {
	Enabled  bool   `json:"enabled"`
	BotToken string `json:"bot_token"`
	ChatID   int64  `json:"chat_id"`
}

type HealthchecksConfig struct {
	Enabled bool   `json:"enabled"`
	PingURL string `json:"ping_url"`
}

type LoggingConfig struct {
	RetentionDays int `json:"retention_days"`
}
