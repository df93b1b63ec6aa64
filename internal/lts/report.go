package lts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Report text
const (
	ReportTitle     = "# LTS bump report"
	ReportNoChanges = "No changes (already latest LTS)."
)

// RenderReport builds the Markdown report for a set of changes.
func RenderReport(changes []Change) string {
	lines := []string{ReportTitle, ""}
	if len(changes) == 0 {
		lines = append(lines, ReportNoChanges)
	} else {
		for _, c := range changes {
			lines = append(lines, "- "+c.String())
		}
	}
	return strings.Join(lines, "\n") + "\n"
}

// WriteReport renders the report and overwrites path, creating any
// missing parent directory.
func WriteReport(path string, changes []Change) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(RenderReport(changes)), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
