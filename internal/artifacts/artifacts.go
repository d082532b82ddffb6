// Package artifacts renders and writes the Windows autostart and Task
// Scheduler files that point at the running executable.
package artifacts

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"hddwarn/internal/cmdexec"
)

const (
	// AutostartFile is written relative to the working directory.
	AutostartFile = "autostart.reg"
	// TaskFile is written relative to the working directory.
	TaskFile = "task_scheduler.xml"
	// RunValueName is the value created under the Run key.
	RunValueName = "hddwarn"
	// TaskName is the name registered with schtasks.
	TaskName = "hddwarn Task"

	runKey    = `HKEY_CURRENT_USER\Software\Microsoft\Windows\CurrentVersion\Run`
	taskXMLNS = "http://schemas.microsoft.com/windows/2004/02/mit/task"
)

// ErrRegistrationFailed is returned when schtasks rejects the task file.
var ErrRegistrationFailed = errors.New("task registration failed")

// WriteError reports a failure to create or write an artifact.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string { return fmt.Sprintf("write %s: %v", e.Path, e.Err) }

func (e *WriteError) Unwrap() error { return e.Err }

// RegistryFile returns a .reg document adding exe to the current user's Run key.
func RegistryFile(exe string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(exe)
	var b strings.Builder
	b.WriteString("Windows Registry Editor Version 5.00\r\n\r\n")
	b.WriteString("[" + runKey + "]\r\n")
	b.WriteString(fmt.Sprintf("%q=\"%s\"\r\n", RunValueName, escaped))
	return b.String()
}

type task struct {
	XMLName      xml.Name         `xml:"Task"`
	Version      string           `xml:"version,attr"`
	XMLNS        string           `xml:"xmlns,attr"`
	Registration registrationInfo `xml:"RegistrationInfo"`
	Triggers     triggers         `xml:"Triggers"`
	Actions      actions          `xml:"Actions"`
}

type registrationInfo struct {
	Author      string `xml:"Author"`
	Description string `xml:"Description"`
}

type triggers struct {
	Calendar calendarTrigger `xml:"CalendarTrigger"`
}

type calendarTrigger struct {
	StartBoundary string        `xml:"StartBoundary"`
	Enabled       bool          `xml:"Enabled"`
	ScheduleByDay scheduleByDay `xml:"ScheduleByDay"`
}

type scheduleByDay struct {
	DaysInterval int `xml:"DaysInterval"`
}

type actions struct {
	Exec execAction `xml:"Exec"`
}

type execAction struct {
	Command string `xml:"Command"`
}

// TaskXML returns a Task Scheduler descriptor that runs exe once a day,
// starting at start (local wall time, seconds precision).
func TaskXML(exe string, start time.Time) (string, error) {
	t := task{
		Version: "1.3",
		XMLNS:   taskXMLNS,
		Registration: registrationInfo{
			Author:      RunValueName,
			Description: "Runs hddwarn every 24 hours",
		},
		Triggers: triggers{Calendar: calendarTrigger{
			StartBoundary: start.Format("2006-01-02T15:04:05"),
			Enabled:       true,
			ScheduleByDay: scheduleByDay{DaysInterval: 1},
		}},
		Actions: actions{Exec: execAction{Command: exe}},
	}
	out, err := xml.MarshalIndent(t, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal task: %w", err)
	}
	return `<?xml version="1.0" encoding="UTF-8"?>` + "\n" + string(out) + "\n", nil
}

// WriteAutostart writes the registry import file to path.
func WriteAutostart(path, exe string) error {
	return writeFile(path, RegistryFile(exe))
}

// WriteTask writes the Task Scheduler descriptor to path.
func WriteTask(path, exe string, start time.Time) error {
	content, err := TaskXML(exe, start)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return writeFile(path, content)
}

// RegisterTask imports the descriptor at path with schtasks, replacing any
// task of the same name.
func RegisterTask(ctx context.Context, path string) error {
	out, err := cmdexec.CombinedOutput(ctx, "schtasks", "/create", "/tn", TaskName, "/xml", path, "/f")
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg == "" {
			return fmt.Errorf("%w: %v", ErrRegistrationFailed, err)
		}
		return fmt.Errorf("%w: %v: %s", ErrRegistrationFailed, err, msg)
	}
	return nil
}

// NextStart returns today's noon, or tomorrow's if noon has passed.
func NextStart(now time.Time) time.Time {
	noon := time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, now.Location())
	if !noon.After(now) {
		noon = noon.AddDate(0, 0, 1)
	}
	return noon
}

func writeFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}
