package lts

import (
	"fmt"
	"strconv"
)

// Labels used in change descriptions
const (
	LabelDotnet = ".NET LTS"
	LabelPython = "Python 3.x"
)

// Change describes one field that moved to a new value.
type Change struct {
	Field string
	Old   string
	New   string
}

// String renders the change as "<Field>: <old> → <new>".
func (c Change) String() string {
	return fmt.Sprintf("%s: %s → %s", c.Field, c.Old, c.New)
}

// Resolved holds the values read from the upstream feeds.
type Resolved struct {
	DotnetMajor int
	PythonCycle string
}

// ApplyChanges compares resolved values with the current record and returns
// an updated copy along with one Change per applied field. The current
// record is never modified.
//
// Any .NET difference is applied. A Python difference is applied only when
// IsUpgrade holds; downgrades and equal values are dropped without a Change.
func ApplyChanges(current *VersionRecord, resolved Resolved) (*VersionRecord, []Change) {
	next := current.Clone()
	var changes []Change

	if resolved.DotnetMajor != current.DotnetLtsMajor {
		changes = append(changes, Change{
			Field: LabelDotnet,
			Old:   strconv.Itoa(current.DotnetLtsMajor),
			New:   strconv.Itoa(resolved.DotnetMajor),
		})
		next.DotnetLtsMajor = resolved.DotnetMajor
	}

	if resolved.PythonCycle != current.PythonSupportedMinor &&
		IsUpgrade(current.PythonSupportedMinor, resolved.PythonCycle) {
		changes = append(changes, Change{
			Field: LabelPython,
			Old:   current.PythonSupportedMinor,
			New:   resolved.PythonCycle,
		})
		next.PythonSupportedMinor = resolved.PythonCycle
	}

	return next, changes
}
