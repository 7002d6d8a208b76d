// Package naptan resolves station display names to stable NAPTAN
// identifiers, the solver-facing station identity used across runs.
//
// The mapping is read from a naptan.json file as produced by the fetch
// command (or the transit authority's stop-point API directly). A handful
// of stations occupy two distinct positions on the map under one public
// name; those are split with documented suffix overrides.
package naptan

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/alexandergillon/metromap/pkg/errors"
)

// Entry is one record of naptan.json: a station name, its NAPTAN ID, and
// the metro line it was listed under. MetroLine may be empty in older
// files, in which case the entry applies to every line.
type Entry struct {
	MetroLine string `json:"metroLine,omitempty"`
	Name      string `json:"name"`
	NaptanID  string `json:"naptanId"`
}

// Override maps a display name, in the context of a metro line, to a
// replacement identifier. Returning ok=false falls through to the normal
// lookup.
type Override func(r *Reader, lineName, stationName string) (id string, ok bool, err error)

// Reader resolves station names to NAPTAN IDs from a naptan.json file.
// It implements the parser's IdentifierProvider interface.
type Reader struct {
	byLine   map[string]map[string]string
	anyLine  map[string]string
	override Override
}

// NewReader loads a naptan.json file. The override, if non-nil, is
// consulted before the file mapping; use LondonOverrides for the London
// network.
func NewReader(path string, override Override) (*Reader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "reading %s", path)
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfig, err, "parsing %s", path)
	}
	return NewReaderFromEntries(entries, override), nil
}

// NewReaderFromEntries builds a Reader from in-memory entries.
func NewReaderFromEntries(entries []Entry, override Override) *Reader {
	r := &Reader{
		byLine:   make(map[string]map[string]string),
		anyLine:  make(map[string]string),
		override: override,
	}
	for _, e := range entries {
		if e.MetroLine == "" {
			r.anyLine[e.Name] = e.NaptanID
			continue
		}
		m, ok := r.byLine[e.MetroLine]
		if !ok {
			m = make(map[string]string)
			r.byLine[e.MetroLine] = m
		}
		m[e.Name] = e.NaptanID
	}
	return r
}

// Resolve returns the NAPTAN ID for a station on a metro line, consulting
// the override table first. Unknown names fail with a no-mapping error.
func (r *Reader) Resolve(lineName, stationName string) (string, error) {
	if r.override != nil {
		id, ok, err := r.override(r, lineName, stationName)
		if err != nil {
			return "", err
		}
		if ok {
			return id, nil
		}
	}
	return r.lookup(lineName, stationName)
}

// lookup is the plain file mapping: line-scoped entries first, then
// entries without a line.
func (r *Reader) lookup(lineName, stationName string) (string, error) {
	if m, ok := r.byLine[lineName]; ok {
		if id, ok := m[stationName]; ok {
			return id, nil
		}
	}
	if id, ok := r.anyLine[stationName]; ok {
		return id, nil
	}
	return "", errors.New(errors.ErrCodeNoIdentifier,
		"No NAPTAN entry for %s on line %s.", stationName, lineName)
}

// WriteFile writes entries as an indented naptan.json file, in the order
// given.
func WriteFile(path string, entries []Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// mustLookup is lookup for override tables, where a missing base entry
// means the naptan.json file itself is incomplete.
func (r *Reader) mustLookup(lineName, stationName string) (string, error) {
	id, err := r.lookup(lineName, stationName)
	if err != nil {
		return "", fmt.Errorf("override base entry missing: %w", err)
	}
	return id, nil
}
