// hddwarn mails a free-space report for the local volumes.
//
// Usage:
//
//	hddwarn                                # report to the recipient in config.json
//	hddwarn admin@example.com              # report to the given recipient
//	hddwarn create_autostart_helper_files  # write autostart.reg
//	hddwarn create_task_scheduler_entries  # write task_scheduler.xml and register it
package main

import (
	"context"
	"log/slog"
	"os"
	"runtime/debug"
)

func main() {
	os.Exit(run())
}

func run() (code int) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("PANIC", "panic", r, "stack", string(debug.Stack()))
			code = 1
		}
	}()
	defer closeLogger()

	return execute(context.Background(), InitApp(), os.Args[1:])
}
