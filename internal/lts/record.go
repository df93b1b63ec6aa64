// Package lts provides persistence for the recorded release versions.
package lts

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// JSON keys of the two tracked fields
const (
	FieldDotnetLtsMajor       = "dotnetLtsMajor"
	FieldPythonSupportedMinor = "pythonSupportedMinor"
)

// VersionRecord holds the latest known release lines.
// Any other fields of the stored document are kept verbatim, in their
// original order, and written back unchanged.
type VersionRecord struct {
	// DotnetLtsMajor is the latest known stable .NET LTS major version
	DotnetLtsMajor int
	// PythonSupportedMinor is the latest known supported Python line, e.g. "3.13"
	PythonSupportedMinor string
	// raw is the document as loaded, used as the base for Encode
	raw []byte
}

// NewVersionRecord creates a record with no extra fields.
func NewVersionRecord(dotnetMajor int, pythonMinor string) *VersionRecord {
	return &VersionRecord{
		DotnetLtsMajor:       dotnetMajor,
		PythonSupportedMinor: pythonMinor,
	}
}

// ParseVersionRecord decodes a record document.
// Missing tracked fields load as zero values; a tracked field of the wrong
// JSON type is a *ParseError.
func ParseVersionRecord(source string, data []byte) (*VersionRecord, error) {
	if !gjson.ValidBytes(data) {
		return nil, &ParseError{Source: source, Err: errors.New("invalid JSON")}
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, &ParseError{Source: source, Err: errors.New("record must be a JSON object")}
	}

	rec := &VersionRecord{raw: bytes.Clone(data)}

	if v := doc.Get(FieldDotnetLtsMajor); v.Exists() {
		if v.Type != gjson.Number || v.Num != math.Trunc(v.Num) {
			return nil, &ParseError{Source: source, Err: fmt.Errorf("%s must be an integer, got %s", FieldDotnetLtsMajor, v.Raw)}
		}
		rec.DotnetLtsMajor = int(v.Int())
	}

	if v := doc.Get(FieldPythonSupportedMinor); v.Exists() {
		if v.Type != gjson.String {
			return nil, &ParseError{Source: source, Err: fmt.Errorf("%s must be a string, got %s", FieldPythonSupportedMinor, v.Raw)}
		}
		rec.PythonSupportedMinor = v.Str
	}

	return rec, nil
}

// Clone returns an independent copy of the record.
func (r *VersionRecord) Clone() *VersionRecord {
	c := *r
	c.raw = bytes.Clone(r.raw)
	return &c
}

// Extra returns the raw JSON of a field other than the tracked ones.
func (r *VersionRecord) Extra(key string) (string, bool) {
	if len(r.raw) == 0 {
		return "", false
	}
	v := gjson.GetBytes(r.raw, gjson.Escape(key))
	if !v.Exists() {
		return "", false
	}
	return v.Raw, true
}

// ExtraKeys lists the untracked top-level keys in document order.
func (r *VersionRecord) ExtraKeys() []string {
	if len(r.raw) == 0 {
		return nil
	}
	var keys []string
	gjson.ParseBytes(r.raw).ForEach(func(key, _ gjson.Result) bool {
		if key.Str != FieldDotnetLtsMajor && key.Str != FieldPythonSupportedMinor {
			keys = append(keys, key.Str)
		}
		return true
	})
	return keys
}

// Encode merges the tracked fields into the stored document and returns it
// pretty-printed with two-space indentation and no trailing newline.
func (r *VersionRecord) Encode() ([]byte, error) {
	base := bytes.TrimSpace(r.raw)
	if len(base) == 0 {
		base = []byte("{}")
	}

	out, err := sjson.SetBytes(bytes.Clone(base), FieldDotnetLtsMajor, r.DotnetLtsMajor)
	if err != nil {
		return nil, fmt.Errorf("failed to set %s: %w", FieldDotnetLtsMajor, err)
	}
	out, err = sjson.SetBytes(out, FieldPythonSupportedMinor, r.PythonSupportedMinor)
	if err != nil {
		return nil, fmt.Errorf("failed to set %s: %w", FieldPythonSupportedMinor, err)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, out, "", "  "); err != nil {
		return nil, fmt.Errorf("failed to format record: %w", err)
	}
	return buf.Bytes(), nil
}

// RecordStore reads and writes the version record file.
type RecordStore struct {
	// path is the file path where the record is persisted
	path string
}

// NewRecordStore creates a store for the record at path.
func NewRecordStore(path string) *RecordStore {
	return &RecordStore{path: path}
}

// Path returns the record file path.
func (s *RecordStore) Path() string {
	return s.path
}

// Load reads and parses the record file.
// A missing or malformed file is a *ParseError.
func (s *RecordStore) Load() (*VersionRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, &ParseError{Source: s.path, Err: err}
	}
	return ParseVersionRecord(s.path, data)
}

// Save writes the record as pretty-printed JSON with a trailing newline,
// replacing the previous file.
func (s *RecordStore) Save(rec *VersionRecord) error {
	data, err := rec.Encode()
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create record directory: %w", err)
	}

	// Write to temp file first, then rename for atomicity
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write record file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		// Clean up temp file on rename failure
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename record file: %w", err)
	}

	// Keep later encodes based on what is now on disk
	rec.raw = bytes.TrimSuffix(data, []byte("\n"))
	return nil
}
