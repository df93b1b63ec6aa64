// Package lts provides the release line check that ties feeds, record and report together.
package lts

import (
	"context"
	"fmt"
	"time"

	"github.com/obentoo/ltscheck/internal/common/logger"
	"golang.org/x/sync/errgroup"
)

// Result represents the outcome of one check run.
type Result struct {
	// Record is the record after applying changes
	Record *VersionRecord
	// Changes lists every applied change, in field order
	Changes []Change
	// Resolved holds the values read from upstream
	Resolved Resolved
	// RecordWritten is true if the record file was rewritten
	RecordWritten bool
	// ReportWritten is true if the report file was rewritten
	ReportWritten bool
}

// HasChanges reports whether any field changed.
func (r *Result) HasChanges() bool {
	return len(r.Changes) > 0
}

// Checker runs the release line check.
type Checker struct {
	// store reads and writes the version record
	store *RecordStore
	// reportPath is where the Markdown report is written
	reportPath string
	// client performs feed requests
	client *FeedClient
	// dotnetURL is the .NET release index endpoint
	dotnetURL string
	// pythonURLs are the Python end-of-life candidate endpoints
	pythonURLs []string
	// nowFunc allows injecting time for testing
	nowFunc func() time.Time
	// dryRun skips every file write
	dryRun bool
}

// CheckerOption is a functional option for configuring Checker
type CheckerOption func(*Checker)

// WithFeedClient sets the client used for feed requests
func WithFeedClient(client *FeedClient) CheckerOption {
	return func(c *Checker) {
		c.client = client
	}
}

// WithDotnetIndexURL overrides the .NET release index endpoint
func WithDotnetIndexURL(url string) CheckerOption {
	return func(c *Checker) {
		c.dotnetURL = url
	}
}

// WithPythonFeedURLs overrides the Python end-of-life candidate endpoints
func WithPythonFeedURLs(urls []string) CheckerOption {
	return func(c *Checker) {
		c.pythonURLs = urls
	}
}

// WithNowFunc sets a custom time function for testing
func WithNowFunc(fn func() time.Time) CheckerOption {
	return func(c *Checker) {
		c.nowFunc = fn
	}
}

// WithDryRun disables writing the record and the report
func WithDryRun(dryRun bool) CheckerOption {
	return func(c *Checker) {
		c.dryRun = dryRun
	}
}

// NewChecker creates a checker for the given record and report files.
func NewChecker(recordPath, reportPath string, opts ...CheckerOption) *Checker {
	c := &Checker{
		store:      NewRecordStore(recordPath),
		reportPath: reportPath,
		dotnetURL:  DefaultDotnetIndexURL,
		pythonURLs: DefaultPythonFeedURLs,
		nowFunc:    time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.client == nil {
		c.client = NewFeedClient(ClientConfig{})
	}

	return c
}

// Store returns the record store.
func (c *Checker) Store() *RecordStore {
	return c.store
}

// ReportPath returns the report file path.
func (c *Checker) ReportPath() string {
	return c.reportPath
}

// Run loads the record, resolves both feeds, applies changes, saves the
// record when it changed, and writes the report. Nothing is written unless
// both feeds resolve.
func (c *Checker) Run(ctx context.Context) (*Result, error) {
	current, err := c.store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load version record: %w", err)
	}
	logger.Debug("recorded: %s=%d %s=%q", FieldDotnetLtsMajor, current.DotnetLtsMajor,
		FieldPythonSupportedMinor, current.PythonSupportedMinor)

	resolved, err := c.resolve(ctx)
	if err != nil {
		return nil, err
	}
	logger.Info("upstream: .NET LTS %d, Python %s", resolved.DotnetMajor, resolved.PythonCycle)

	next, changes := ApplyChanges(current, resolved)
	result := &Result{
		Record:   next,
		Changes:  changes,
		Resolved: resolved,
	}
	for _, ch := range changes {
		logger.Info("change: %s", ch)
	}

	if c.dryRun {
		logger.Debug("dry run: leaving %s and %s untouched", c.store.Path(), c.reportPath)
		return result, nil
	}

	if result.HasChanges() {
		if err := c.store.Save(next); err != nil {
			return result, fmt.Errorf("failed to save version record: %w", err)
		}
		result.RecordWritten = true
	}

	if err := WriteReport(c.reportPath, changes); err != nil {
		return result, err
	}
	result.ReportWritten = true

	return result, nil
}

// resolve queries both feeds concurrently. The first failure cancels the other.
func (c *Checker) resolve(ctx context.Context) (Resolved, error) {
	var resolved Resolved

	dotnet := NewDotnetResolver(c.client, c.dotnetURL)
	python := NewPythonResolver(c.client, c.pythonURLs, c.nowFunc)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		major, err := dotnet.Resolve(gctx)
		if err != nil {
			return fmt.Errorf("failed to resolve .NET LTS: %w", err)
		}
		resolved.DotnetMajor = major
		return nil
	})
	g.Go(func() error {
		cycle, err := python.Resolve(gctx)
		if err != nil {
			return fmt.Errorf("failed to resolve Python support window: %w", err)
		}
		resolved.PythonCycle = cycle
		return nil
	})

	if err := g.Wait(); err != nil {
		return Resolved{}, err
	}
	return resolved, nil
}
