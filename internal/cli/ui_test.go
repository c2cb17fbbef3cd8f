package cli

import (
	"bytes"
	"strings"
	"testing"
)

func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var out bytes.Buffer
	old := stdout
	stdout = &out
	t.Cleanup(func() { stdout = old })
	return &out
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{4710, "4.6 KB"},
		{3 << 20, "3.0 MB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestPrintStats(t *testing.T) {
	out := captureStdout(t)

	printStats(21, 2048, false)
	printStats(21, 2048, true)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "21 primitives · 2.0 KB · fresh") {
		t.Errorf("fresh line = %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "cached") {
		t.Errorf("cached line = %q", lines[1])
	}
}

func TestPrintStatus(t *testing.T) {
	out := captureStdout(t)

	printSuccess("Rendered %s", "Am")
	printWarning("Skipping PDF")
	printError("failed")
	printInfo("Cache is empty")
	printKeyValue("Frets", "x02210")

	for _, want := range []string{iconSuccess + " Rendered Am", iconWarning + " Skipping PDF", iconError + " failed", iconInfo + " Cache is empty", "x02210"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}
