package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// **Feature: lts-check, Property 7: Change lines carry old and new values in their colors**
func TestFormatChangeColors(t *testing.T) {
	ForceColor()
	defer NoColor()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("FormatChange paints old red and new green", prop.ForAll(
		func(oldValue, newValue string) bool {
			formatted := FormatChange("Python 3.x", oldValue, newValue)
			return strings.Contains(formatted, "\x1b[31m"+oldValue) &&
				strings.Contains(formatted, "\x1b[32m"+newValue)
		},
		gen.RegexMatch(`^3\.[0-9]{1,2}$`),
		gen.RegexMatch(`^3\.[0-9]{1,2}$`),
	))

	properties.TestingRun(t)
}

// **Feature: lts-check, Property 8: No-color flag disables ANSI codes**
func TestNoColorFlagDisablesANSICodes(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("FormatChange contains no ANSI codes when NoColor is set", prop.ForAll(
		func(label, oldValue, newValue string) bool {
			NoColor()
			defer ForceColor()

			formatted := FormatChange(label, oldValue, newValue)
			return !strings.Contains(formatted, "\x1b[")
		},
		gen.AlphaString(),
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.Property("Colored Sprint contains no ANSI codes when NoColor is set", prop.ForAll(
		func(text string) bool {
			NoColor()
			defer ForceColor()

			colors := []*color.Color{Old, New, Label, Current, Success, Warning, Error, Info, Dim, Header}
			for _, c := range colors {
				if strings.Contains(c.Sprint(text), "\x1b[") {
					return false
				}
			}
			return true
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

func TestFormatChangePlain(t *testing.T) {
	NoColor()

	tests := []struct {
		label, oldValue, newValue string
		want                      string
	}{
		{".NET LTS", "8", "10", ".NET LTS: 8 → 10"},
		{"Python 3.x", "3.12", "3.13", "Python 3.x: 3.12 → 3.13"},
		{"Python 3.x", "", "3.13", "Python 3.x: (none) → 3.13"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatChange(tt.label, tt.oldValue, tt.newValue); got != tt.want {
				t.Errorf("FormatChange() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatField(t *testing.T) {
	NoColor()

	if got := FormatField("dotnetLtsMajor", "10"); got != "dotnetLtsMajor: 10" {
		t.Errorf("FormatField() = %q", got)
	}
	if got := FormatField("pythonSupportedMinor", ""); got != "pythonSupportedMinor: (none)" {
		t.Errorf("FormatField() with empty value = %q", got)
	}
}

func TestPrintHelpersWriteToStdout(t *testing.T) {
	NoColor()

	buf := new(bytes.Buffer)
	saved := Stdout
	Stdout = buf
	defer func() { Stdout = saved }()

	PrintSuccess("record updated")
	PrintInfo("%d change(s)", 2)
	PrintWarning("dry run")
	Section("LTS Check")

	want := "✓ record updated\n→ 2 change(s)\n⚠ dry run\n\nLTS Check\n\n"
	if buf.String() != want {
		t.Errorf("Output = %q, want %q", buf.String(), want)
	}
}
