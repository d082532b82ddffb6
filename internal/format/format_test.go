package format

import (
	"strings"
	"testing"
	"unicode/utf8"

	"hddwarn/internal/model"
)

func mustFormatter(t *testing.T, tpl Template, thresholdGiB uint64) *Formatter {
	t.Helper()
	f, err := NewFormatter(tpl, thresholdGiB)
	if err != nil {
		t.Fatalf("NewFormatter: %v", err)
	}
	return f
}

func TestBytesToGiB(t *testing.T) {
	cases := []struct {
		in   uint64
		want uint64
	}{
		{0, 0},
		{GiB - 1, 0},
		{GiB, 1},
		{10_737_418_240, 10},
		{10_737_418_241, 10},
		{11_000_000_000, 10},
		{11_811_160_064, 11},
	}

	for _, tc := range cases {
		if got := BytesToGiB(tc.in); got != tc.want {
			t.Fatalf("BytesToGiB(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestFormatEmpty(t *testing.T) {
	f := mustFormatter(t, DefaultTemplate(), DefaultThresholdGiB)
	if got := f.Format("HOST1", nil); got != "Servername: HOST1\n" {
		t.Fatalf("Format(empty) = %q", got)
	}
}

func TestFormatWarningBoundary(t *testing.T) {
	f := mustFormatter(t, DefaultTemplate(), DefaultThresholdGiB)
	readings := []model.VolumeReading{
		{MountLabel: "C:\\", FreeSpaceGiB: 5},
		{MountLabel: "D:\\", FreeSpaceGiB: 10},
		{MountLabel: "E:\\", FreeSpaceGiB: 11},
	}

	lines := strings.Split(strings.TrimSuffix(f.Format("srv", readings), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d: %q", len(lines), lines)
	}
	want := []string{
		"Servername: srv",
		"DISK C:\\ has 5 GB left free space. WARNING!",
		"DISK D:\\ has 10 GB left free space. WARNING!",
		"DISK E:\\ has 11 GB left free space.",
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestFormatIsPure(t *testing.T) {
	f := mustFormatter(t, DefaultTemplate(), DefaultThresholdGiB)
	readings := []model.VolumeReading{{MountLabel: "/", FreeSpaceGiB: 3}, {MountLabel: "/data", FreeSpaceGiB: 300}}
	if a, b := f.Format("h", readings), f.Format("h", readings); a != b {
		t.Fatalf("Format not deterministic: %q vs %q", a, b)
	}
}

func TestCustomTemplate(t *testing.T) {
	f, err := NewFormatter(Template{
		Line:    "{{.Mount}}: {{.FreeGiB}} GB free",
		Warning: "WARNING! {{.Mount}}: only {{.FreeGiB}} GB free",
	}, 20)
	if err != nil {
		t.Fatalf("NewFormatter: %v", err)
	}
	got := f.Format("h", []model.VolumeReading{{MountLabel: "/", FreeSpaceGiB: 15}, {MountLabel: "/x", FreeSpaceGiB: 21}})
	want := "Servername: h\nWARNING! /: only 15 GB free\n/x: 21 GB free\n"
	if got != want {
		t.Fatalf("Format = %q, want %q", got, want)
	}
}

func TestNewFormatterRejectsUnknownField(t *testing.T) {
	if _, err := NewFormatter(Template{Line: "{{.Nope}}"}, 10); err == nil {
		t.Fatalf("expected error for unknown template field")
	}
	if _, err := NewFormatter(Template{Warning: "{{.Mount"}, 10); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestBuildKeepsReadings(t *testing.T) {
	f := mustFormatter(t, DefaultTemplate(), DefaultThresholdGiB)
	r := f.Build("h", []model.VolumeReading{{MountLabel: "/", FreeSpaceGiB: 2}, {MountLabel: "/b", FreeSpaceGiB: 50}})
	if len(r.Warnings(f.Threshold())) != 1 {
		t.Fatalf("expected one warning reading, got %d", len(r.Warnings(f.Threshold())))
	}
	if !strings.HasPrefix(r.Body, "Servername: h\n") {
		t.Fatalf("unexpected body %q", r.Body)
	}
}

func TestFormatBytes(t *testing.T) {
	if got := FormatBytes(GiB); got != "1.0 GiB" {
		t.Fatalf("FormatBytes = %q, want %q", got, "1.0 GiB")
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("abcd", 4); got != "abcd" {
		t.Fatalf("Truncate = %q, want %q", got, "abcd")
	}
	if got := Truncate("abcdef", 4); got != "abc~" {
		t.Fatalf("Truncate = %q, want %q", got, "abc~")
	}
	if got := Truncate("abc", 0); got != "" {
		t.Fatalf("Truncate(0) = %q, want empty", got)
	}
}

func TestTruncateMultiByte(t *testing.T) {
	short := strings.Repeat("ä", 3000)
	if got := Truncate(short, 4096); got != short {
		t.Fatalf("Truncate cut a %d-character string below the limit", utf8.RuneCountInString(short))
	}

	long := "Servername: Ünïcødé\n" + strings.Repeat("ö", 5000)
	got := Truncate(long, 4096)
	if !utf8.ValidString(got) {
		t.Fatalf("Truncate produced invalid UTF-8")
	}
	if n := utf8.RuneCountInString(got); n != 4096 {
		t.Fatalf("Truncate length = %d runes, want 4096", n)
	}
	if !strings.HasPrefix(got, "Servername: Ünïcødé\n") || !strings.HasSuffix(got, "ö~") {
		t.Fatalf("Truncate = %q...", got[:32])
	}

	if got := Truncate("日本語テキスト", 4); got != "日本語~" {
		t.Fatalf("Truncate = %q, want %q", got, "日本語~")
	}
}
