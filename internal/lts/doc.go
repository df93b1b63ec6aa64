// Package lts checks upstream release feeds for newer supported release lines
// and keeps a local version record in step with them.
//
// The package implements:
//   - Resolution of the newest stable .NET LTS major from the release index
//   - Resolution of the newest supported Python 3.x cycle from endoflife.date,
//     accepting any of the four known feed shapes
//   - A no-downgrade decision rule for the Python line (IsUpgrade)
//   - Persistence of the record as JSON, preserving unknown fields
//   - A Markdown report regenerated on every run
//
// Usage:
//
//	checker := lts.NewChecker("versions.json", ".github/lts-report.md")
//	result, err := checker.Run(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
package lts
