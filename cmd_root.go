package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"hddwarn/internal/diskinfo"
)

// exitError carries a process exit status out of a command. A nil err
// means the user has already been told what went wrong.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

// RecipientSource picks the report recipient at startup.
type RecipientSource func(cfg *Config) string

func configRecipient(cfg *Config) string { return cfg.Recipient }

func argRecipient(addr string) RecipientSource {
	return func(*Config) string { return addr }
}

func newRootCmd(app *AppContext) *cobra.Command {
	root := &cobra.Command{
		Use:   "hddwarn [recipient]",
		Short: "Mail a free-space report for every local volume",
		Long: `hddwarn reads config.json, measures free space on every mounted volume
and mails the report. Volumes at or below the warning threshold are flagged.

An optional recipient argument overrides the address in config.json.
When config.json is missing or unreadable a template is written and
hddwarn exits with status 1.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if app.ConfigureLogs {
				setupLogger(app.LogLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			source := RecipientSource(configRecipient)
			if len(args) == 1 {
				source = argRecipient(args[0])
			}
			return runReport(cmd.Context(), app, source)
		},
	}
	root.PersistentFlags().StringVar(&app.ConfigFile, "config", app.ConfigFile, "Config file path")
	root.PersistentFlags().StringVar(&app.LogLevel, "log-level", app.LogLevel, "Log level: debug, info, warn, error")

	// Only the two artifact names are reserved; "help" and "completion" are
	// valid recipients like any other argument.
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetHelpCommand(&cobra.Command{Hidden: true})

	root.AddCommand(newAutostartCmd(app), newTaskSchedulerCmd(app))
	return root
}

// runReport is the default flow: load config, measure, format, print, send.
func runReport(ctx context.Context, app *AppContext, source RecipientSource) error {
	store := app.configStore()
	cfg, err := store.Load()
	if err != nil {
		fmt.Fprintln(app.Stderr, "Config file not found, creating default config...")
		if err := store.WriteDefault(app.Stdout); err != nil {
			fmt.Fprintf(app.Stderr, "Failed to create default config: %v\n", err)
			slog.Error("Default config write failed", "file", store.Path, "err", err)
		}
		return &exitError{code: 1}
	}
	slog.Debug("Config loaded", "file", store.Path)

	recipient := source(cfg)
	if err := cfg.Validate(recipient); err != nil {
		return &exitError{code: 1, err: fmt.Errorf("invalid config %s: %w", store.Path, err)}
	}

	formatter, err := cfg.Formatter()
	if err != nil {
		return &exitError{code: 1, err: fmt.Errorf("invalid report template: %w", err)}
	}

	hostName := app.Env.Hostname(ctx)
	readings := diskinfo.Capture(ctx, app.Env)
	if cfg.Report.SortVolumes {
		diskinfo.SortByMount(readings)
	}
	report := formatter.Build(hostName, readings)
	slog.Info("Disk report built", "host", hostName, "volumes", len(readings), "warnings", len(report.Warnings(formatter.Threshold())))

	fmt.Fprintf(app.Stdout, "\n--- Mail Content ---\n%s\n", report.Body)

	sendErr := deliverReport(ctx, app, cfg, recipient, report, formatter.Threshold())
	pingHealthchecks(ctx, app, cfg, sendErr != nil)
	prunePersistentLogs(cfg)

	if sendErr != nil && cfg.FailOnSendError {
		return &exitError{code: 1}
	}
	return nil
}

// execute runs the command tree and maps the outcome to an exit status.
func execute(ctx context.Context, app *AppContext, args []string) int {
	root := newRootCmd(app)
	root.SetArgs(args)
	root.SetOut(app.Stdout)
	root.SetErr(app.Stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintf(app.Stderr, "Error: %v\n", ee.err)
		}
		return ee.code
	}
	fmt.Fprintf(app.Stderr, "Error: %v\n", err)
	return 1
}
