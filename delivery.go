package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hashicorp/go-multierror"

	"hddwarn/internal/mailer"
	"hddwarn/internal/model"
)

// deliverReport mails the report, then mirrors it to any enabled notifiers.
// Every failure is reported and collected; none stops the others.
func deliverReport(ctx context.Context, app *AppContext, cfg *Config, recipient string, report model.Report, threshold uint64) error {
	var result *multierror.Error

	msg := mailer.Message{To: recipient, Subject: cfg.Subject, Body: report.Body}
	if err := app.NewMailer(cfg.MailSettings()).Send(ctx, msg); err != nil {
		fmt.Fprintf(app.Stderr, "Failed to send email: %v\n", err)
		slog.Error("Mail send failed", "recipient", recipient, "server", cfg.MailServer, "port", cfg.Port, "err", err)
		result = multierror.Append(result, err)
	} else {
		fmt.Fprintf(app.Stdout, "Email sent successfully to %s\n", recipient)
		slog.Info("Report mailed",
			"recipient", recipient,
			"volumes", len(report.Readings),
			"warnings", len(report.Warnings(threshold)))
	}

	if app.NewNotifiers == nil {
		return result.ErrorOrNil()
	}
	for _, n := range app.NewNotifiers(cfg) {
		if err := n.Notify(ctx, cfg.Subject, report.Body); err != nil {
			slog.Error("Notifier failed", "notifier", n.Name(), "err", err)
			result = multierror.Append(result, fmt.Errorf("%s: %w", n.Name(), err))
			continue
		}
		slog.Info("Report mirrored", "notifier", n.Name())
	}
	return result.ErrorOrNil()
}
