package lts

import (
	"cmp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// parseLine parses a release line identifier such as "3.13" or "10.0".
func parseLine(name string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimSpace(name))
}

// compareLines orders two parsed release lines by (major, minor).
// Patch and pre-release parts are not part of a release line.
func compareLines(a, b *semver.Version) int {
	if c := cmp.Compare(a.Major(), b.Major()); c != 0 {
		return c
	}
	return cmp.Compare(a.Minor(), b.Minor())
}

// CompareCycles compares two cycle identifiers numerically by (major, minor),
// so "3.9" sorts before "3.10". Unparseable identifiers sort before every
// parseable one and compare equal to each other.
func CompareCycles(a, b string) int {
	va, errA := parseLine(a)
	vb, errB := parseLine(b)
	switch {
	case errA != nil && errB != nil:
		return 0
	case errA != nil:
		return -1
	case errB != nil:
		return 1
	}
	return compareLines(va, vb)
}

// IsUpgrade reports whether candidate is a strictly newer release line than
// recorded. An empty or unparseable recorded value counts as no known
// version; an unparseable candidate is never an upgrade.
func IsUpgrade(recorded, candidate string) bool {
	vc, err := parseLine(candidate)
	if err != nil {
		return false
	}
	vr, err := parseLine(recorded)
	if err != nil {
		return true
	}
	return compareLines(vc, vr) > 0
}
