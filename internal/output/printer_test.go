package output

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func plain(quiet bool) (*Printer, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	p := NewPrinter(PrinterOptions{ColorMode: ColorNever, Quiet: quiet, Out: &stdout, Err: &stderr})
	return p, &stdout, &stderr
}

func TestParseColorMode_Valid(t *testing.T) {
	tests := []struct {
		input string
		want  ColorMode
	}{
		{"auto", ColorAuto},
		{"always", ColorAlways},
		{"never", ColorNever},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseColorMode(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseColorMode(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseColorMode_Invalid(t *testing.T) {
	if _, err := ParseColorMode("rainbow"); err == nil {
		t.Error("expected error for invalid color mode, got nil")
	}
}

func TestResolveColors_Always(t *testing.T) {
	// Even with NO_COLOR set, ColorAlways should return true
	t.Setenv("NO_COLOR", "1")
	if !ResolveColors(ColorAlways) {
		t.Error("ResolveColors(ColorAlways) with NO_COLOR=1 should return true")
	}
}

func TestResolveColors_Never(t *testing.T) {
	if ResolveColors(ColorNever) {
		t.Error("ResolveColors(ColorNever) should return false")
	}
}

func TestResolveColors_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	if ResolveColors(ColorAuto) {
		t.Error("ResolveColors(ColorAuto) with NO_COLOR set should return false")
	}
}

func TestResolveColors_TermDumb(t *testing.T) {
	os.Unsetenv("NO_COLOR")
	t.Setenv("TERM", "dumb")
	if ResolveColors(ColorAuto) {
		t.Error("ResolveColors(ColorAuto) with TERM=dumb should return false")
	}
}

func TestPrinter_PlainPrefixes(t *testing.T) {
	p, stdout, stderr := plain(false)

	p.Success("loaded %d files", 3)
	p.Info("hello")
	p.Warning("careful")
	p.Error("broken")

	out := stdout.String()
	if !strings.Contains(out, "[OK] loaded 3 files") || !strings.Contains(out, "hello\n") {
		t.Errorf("unexpected stdout: %q", out)
	}
	errOut := stderr.String()
	if !strings.Contains(errOut, "[WARN] careful") || !strings.Contains(errOut, "[ERROR] broken") {
		t.Errorf("unexpected stderr: %q", errOut)
	}
}

func TestPrinter_QuietKeepsErrors(t *testing.T) {
	p, stdout, stderr := plain(true)

	p.Info("info")
	p.Print("print")
	p.Header("header")
	p.Warning("warn")
	p.Error("boom")

	if stdout.Len() != 0 {
		t.Errorf("quiet printer wrote to stdout: %q", stdout.String())
	}
	if got := stderr.String(); got != "[ERROR] boom\n" {
		t.Errorf("expected only the error on stderr, got %q", got)
	}
}

func TestPrinter_Header(t *testing.T) {
	p, stdout, _ := plain(false)
	p.Header("Après")

	if got := stdout.String(); got != "\nAprès\n-----\n" {
		t.Errorf("underline must match rune width, got %q", got)
	}
}

func TestPrinter_Presence(t *testing.T) {
	p, _, _ := plain(false)
	if p.Presence(true) != "[found]" || p.Presence(false) != "[missing]" {
		t.Error("unexpected presence markers without colors")
	}
}

func TestPrinter_Confirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"oui\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"maybe\n", false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			p, stdout, stderr := plain(false)
			if got := p.Confirm(strings.NewReader(tt.input), "Run?"); got != tt.want {
				t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if !strings.Contains(stderr.String(), "Run? [y/N]") {
				t.Errorf("question not printed: %q", stderr.String())
			}
			if stdout.Len() != 0 {
				t.Errorf("prompt leaked to stdout: %q", stdout.String())
			}
		})
	}
}

func TestTable_Render(t *testing.T) {
	p, stdout, _ := plain(false)
	table := p.NewTable("Kind", "Count")
	table.AddRow("reaction", "12")
	table.AddRow("comment", "3")
	if table.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", table.Len())
	}
	table.Render()

	out := stdout.String()
	for _, want := range []string{"KIND", "COUNT", "reaction", "12", "comment"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q: %q", want, out)
		}
	}
}

func TestTable_QuietRendersNothing(t *testing.T) {
	p, stdout, _ := plain(true)
	table := p.NewTable("A")
	table.AddRow("x")
	table.Render()
	if stdout.Len() != 0 {
		t.Errorf("quiet table wrote %q", stdout.String())
	}
}
