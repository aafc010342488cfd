// Package result serializes solve outcomes as msgpack artifacts. Reports are
// schema-versioned so stale files invalidate cleanly instead of decoding into
// garbage.
package result

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"solvent/internal/constraint"
	"solvent/internal/solver"
	"solvent/internal/types"
)

// Schema version - increment when the Report format changes.
const schemaVersion uint16 = 1

// ErrSchemaMismatch indicates a report written by an incompatible version.
var ErrSchemaMismatch = errors.New("report schema mismatch")

// Digest is a sha256 content hash.
type Digest [sha256.Size]byte

func (d Digest) String() string {
	return fmt.Sprintf("%x", d[:])
}

// SolutionRecord is the serialized form of one solution: variable names
// mapped to rendered types, plus the rendered score.
type SolutionRecord struct {
	Bindings map[string]string
	Score    string
}

// Report is the solve artifact for one fixture.
type Report struct {
	Schema  uint16
	Fixture string

	Solvable  bool
	Solutions []SolutionRecord

	Stats solver.Stats
}

// New renders solver output into a report.
func New(fixture string, in *types.Interner, sols []*constraint.Solution, stats solver.Stats) *Report {
	r := &Report{
		Schema:   schemaVersion,
		Fixture:  fixture,
		Solvable: len(sols) > 0,
		Stats:    stats,
	}
	for _, sol := range sols {
		rec := SolutionRecord{
			Bindings: make(map[string]string, len(sol.Bindings)),
			Score:    sol.Score.String(),
		}
		for tv, ty := range sol.Bindings {
			rec.Bindings[tv.Name] = in.String(ty)
		}
		r.Solutions = append(r.Solutions, rec)
	}
	return r
}

// Encode serializes the report.
func (r *Report) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Digest returns the sha256 of the canonical encoding.
func (r *Report) Digest() (Digest, error) {
	data, err := r.Encode()
	if err != nil {
		return Digest{}, err
	}
	return sha256.Sum256(data), nil
}

// WriteFile writes the report atomically.
func (r *Report) WriteFile(path string) error {
	data, err := r.Encode()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

// ReadFile loads and validates a report.
func ReadFile(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r Report
	if err := msgpack.NewDecoder(f).Decode(&r); err != nil {
		return nil, fmt.Errorf("%s: failed to decode report: %w", path, err)
	}
	if r.Schema != schemaVersion {
		return nil, fmt.Errorf("%s: %w: got %d, want %d", path, ErrSchemaMismatch, r.Schema, schemaVersion)
	}
	return &r, nil
}
