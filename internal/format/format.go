package format

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"hddwarn/internal/model"
)

// GiB is the number of bytes in one gibibyte.
const GiB uint64 = 1 << 30

// DefaultThresholdGiB is the free space at or below which a volume is flagged.
const DefaultThresholdGiB uint64 = 10

const (
	DefaultLineTemplate    = "DISK {{.Mount}} has {{.FreeGiB}} GB left free space."
	DefaultWarningTemplate = "DISK {{.Mount}} has {{.FreeGiB}} GB left free space. WARNING!"
)

// BytesToGiB converts a byte count to whole gibibytes, truncating.
func BytesToGiB(b uint64) uint64 {
	return b / GiB
}

// FormatBytes formats bytes in a readable format.
func FormatBytes(b uint64) string {
	return humanize.IBytes(b)
}

// Truncate shortens s to at most max characters, marking the cut with "~".
// The cut always falls on a rune boundary.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	n := 0
	for i := range s {
		if n == max-1 {
			return s[:i] + "~"
		}
		n++
	}
	return s
}

// Template holds the per-volume line wording. Both fields are text/template
// strings evaluated against {{.Mount}} and {{.FreeGiB}}.
type Template struct {
	Line    string
	Warning string
}

// DefaultTemplate returns the stock wording.
func DefaultTemplate() Template {
	return Template{Line: DefaultLineTemplate, Warning: DefaultWarningTemplate}
}

type lineData struct {
	Mount   string
	FreeGiB uint64
}

// Formatter renders disk reports. It is safe for concurrent use.
type Formatter struct {
	threshold uint64
	line      *template.Template
	warning   *template.Template
}

// NewFormatter compiles tpl. Empty template fields fall back to the defaults.
func NewFormatter(tpl Template, thresholdGiB uint64) (*Formatter, error) {
	if strings.TrimSpace(tpl.Line) == "" {
		tpl.Line = DefaultLineTemplate
	}
	if strings.TrimSpace(tpl.Warning) == "" {
		tpl.Warning = DefaultWarningTemplate
	}

	line, err := compile("line", tpl.Line)
	if err != nil {
		return nil, err
	}
	warning, err := compile("warning", tpl.Warning)
	if err != nil {
		return nil, err
	}
	return &Formatter{threshold: thresholdGiB, line: line, warning: warning}, nil
}

func compile(name, text string) (*template.Template, error) {
	t, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse %s template: %w", name, err)
	}
	// Catch references to unknown fields now instead of at render time.
	if err := t.Execute(&bytes.Buffer{}, lineData{Mount: "/", FreeGiB: 1}); err != nil {
		return nil, fmt.Errorf("check %s template: %w", name, err)
	}
	return t, nil
}

// Threshold returns the warning threshold in GiB.
func (f *Formatter) Threshold() uint64 {
	return f.threshold
}

// IsWarning reports whether a reading is in warning state (inclusive).
func (f *Formatter) IsWarning(r model.VolumeReading) bool {
	return r.FreeSpaceGiB <= f.threshold
}

// Format renders the header line followed by one line per reading, in input order.
func (f *Formatter) Format(hostName string, readings []model.VolumeReading) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Servername: %s\n", hostName))
	for _, r := range readings {
		warn := f.IsWarning(r)
		t := f.line
		if warn {
			t = f.warning
		}
		var line bytes.Buffer
		if err := t.Execute(&line, lineData{Mount: r.MountLabel, FreeGiB: r.FreeSpaceGiB}); err != nil {
			line.Reset()
			line.WriteString(fmt.Sprintf("DISK %s has %d GB left free space.", r.MountLabel, r.FreeSpaceGiB))
			if warn {
				line.WriteString(" WARNING!")
			}
		}
		b.Write(line.Bytes())
		b.WriteString("\n")
	}
	return b.String()
}

// Build renders a report and keeps the readings it was built from.
func (f *Formatter) Build(hostName string, readings []model.VolumeReading) model.Report {
	return model.Report{
		HostName: hostName,
		Readings: readings,
		Body:     f.Format(hostName, readings),
	}
}
