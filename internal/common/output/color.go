package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	// Field colors
	Old     = color.New(color.FgRed)
	New     = color.New(color.FgGreen)
	Label   = color.New(color.FgBlue, color.Bold)
	Current = color.New(color.FgCyan)

	// Message colors
	Success = color.New(color.FgGreen)
	Warning = color.New(color.FgYellow)
	Error   = color.New(color.FgRed)
	Info    = color.New(color.FgCyan)
	Dim     = color.New(color.Faint)

	// Structural colors
	Header = color.New(color.FgWhite, color.Bold)
)

// Stdout is where non-error messages are printed
var Stdout io.Writer = os.Stdout

// NoColor disables color output
func NoColor() {
	color.NoColor = true
}

// ForceColor enables color output even when not a TTY
func ForceColor() {
	color.NoColor = false
}

// PrintSuccess prints a success message
func PrintSuccess(format string, args ...interface{}) {
	Success.Fprintf(Stdout, "✓ "+format+"\n", args...)
}

// PrintError prints an error message
func PrintError(format string, args ...interface{}) {
	Error.Fprintf(os.Stderr, "✗ "+format+"\n", args...)
}

// PrintWarning prints a warning message
func PrintWarning(format string, args ...interface{}) {
	Warning.Fprintf(Stdout, "⚠ "+format+"\n", args...)
}

// PrintInfo prints an info message
func PrintInfo(format string, args ...interface{}) {
	Info.Fprintf(Stdout, "→ "+format+"\n", args...)
}

// FormatChange formats a field transition as "<label>: <old> → <new>"
func FormatChange(label, oldValue, newValue string) string {
	if oldValue == "" {
		oldValue = "(none)"
	}
	return fmt.Sprintf("%s: %s → %s", Label.Sprint(label), Old.Sprint(oldValue), New.Sprint(newValue))
}

// FormatField formats a label and its current value
func FormatField(label, value string) string {
	if value == "" {
		return fmt.Sprintf("%s: %s", Label.Sprint(label), Dim.Sprint("(none)"))
	}
	return fmt.Sprintf("%s: %s", Label.Sprint(label), Current.Sprint(value))
}

// Section prints a bold heading surrounded by blank lines
func Section(title string) {
	fmt.Fprintln(Stdout)
	Header.Fprintln(Stdout, title)
	fmt.Fprintln(Stdout)
}
