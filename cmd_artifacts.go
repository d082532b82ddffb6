package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"hddwarn/internal/artifacts"
)

func newAutostartCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "create_autostart_helper_files",
		Short: "Write autostart.reg adding hddwarn to the current user's Run key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			exe, err := app.Env.Executable()
			if err != nil {
				fmt.Fprintf(app.Stderr, "Failed to create auto-start helper files: %v\n", err)
				return &exitError{code: 1}
			}

			path := app.path(artifacts.AutostartFile)
			if err := artifacts.WriteAutostart(path, exe); err != nil {
				fmt.Fprintf(app.Stderr, "Failed to create auto-start helper files: %v\n", err)
				slog.Error("Autostart file write failed", "file", path, "err", err)
				return &exitError{code: 1}
			}
			fmt.Fprintf(app.Stdout, "Auto-start registry file created at %s\n", path)
			slog.Info("Autostart file written", "file", path, "exe", exe)
			return nil
		},
	}
}

func newTaskSchedulerCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "create_task_scheduler_entries",
		Short: "Write task_scheduler.xml and register a daily task with schtasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			exe, err := app.Env.Executable()
			if err != nil {
				fmt.Fprintf(app.Stderr, "Failed to create task-start scheduler entries: %v\n", err)
				return &exitError{code: 1}
			}

			path := app.path(artifacts.TaskFile)
			if err := artifacts.WriteTask(path, exe, artifacts.NextStart(app.now())); err != nil {
				fmt.Fprintf(app.Stderr, "Failed to create task-start scheduler entries: %v\n", err)
				slog.Error("Task file write failed", "file", path, "err", err)
				return &exitError{code: 1}
			}
			fmt.Fprintf(app.Stdout, "Task Scheduler entry XML created at %s\n", path)

			if err := artifacts.RegisterTask(cmd.Context(), path); err != nil {
				fmt.Fprintln(app.Stderr, "Failed to register the task scheduler entry.")
				fmt.Fprintf(app.Stderr, "Failed to create task-start scheduler entries: %v\n", err)
				slog.Error("Task registration failed", "file", path, "err", err)
				return &exitError{code: 1}
			}
			fmt.Fprintln(app.Stdout, "Task scheduler entry successfully created.")
			slog.Info("Task registered", "task", artifacts.TaskName, "exe", exe)
			return nil
		},
	}
}
