// Package destinations maps publishing destinations to the host's location codes.
package destinations

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Entry pairs a destination with its host location code.
type Entry struct {
	ID   string `yaml:"id" json:"id"`
	Code string `yaml:"code" json:"code"`
}

// Table is a bijection between destinations and host codes. Immutable after construction.
type Table struct {
	entries []Entry
	byCode  map[string]string
	byID    map[string]string
}

var defaultEntries = []Entry{
	{ID: "TV2.no", Code: "tv2no"},
	{ID: "Play", Code: "play"},
	{ID: "Direktesport", Code: "direktesport"},
	{ID: "MyGame", Code: "mygame"},
}

// Default returns the table for the current deployment.
func Default() *Table {
	t, _ := New(defaultEntries)
	return t
}

// New builds a table and rejects anything that is not a one-to-one mapping.
func New(entries []Entry) (*Table, error) {
	if len(entries) == 0 {
		return nil, errors.New("destinations: empty table")
	}

	t := &Table{
		entries: make([]Entry, 0, len(entries)),
		byCode:  make(map[string]string, len(entries)),
		byID:    make(map[string]string, len(entries)),
	}
	for _, e := range entries {
		if e.ID == "" || e.Code == "" {
			return nil, fmt.Errorf("destinations: incomplete entry %+v", e)
		}
		if _, dup := t.byID[e.ID]; dup {
			return nil, fmt.Errorf("destinations: duplicate id %q", e.ID)
		}
		if _, dup := t.byCode[e.Code]; dup {
			return nil, fmt.Errorf("destinations: duplicate code %q", e.Code)
		}
		t.byID[e.ID] = e.Code
		t.byCode[e.Code] = e.ID
		t.entries = append(t.entries, e)
	}
	return t, nil
}

type file struct {
	Destinations []Entry `yaml:"destinations"`
}

// Parse reads a YAML document of the form
//
//	destinations:
//	  - id: TV2.no
//	    code: tv2no
func Parse(data []byte) (*Table, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("destinations: parse: %w", err)
	}
	return New(f.Destinations)
}

// Load reads the table from path. An empty path yields the default table.
func Load(path string) (*Table, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("destinations: read %s: %w", path, err)
	}
	return Parse(data)
}

// ToCanonical maps host codes to destinations. Unknown codes are dropped;
// order and duplicates are kept.
func (t *Table) ToCanonical(codes []string) []string {
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		if id, ok := t.byCode[c]; ok {
			out = append(out, id)
		}
	}
	return out
}

// ToHostCodes maps destinations back to host codes, preserving order.
func (t *Table) ToHostCodes(dests []string) []string {
	out := make([]string, 0, len(dests))
	for _, d := range dests {
		if code, ok := t.byID[d]; ok {
			out = append(out, code)
		}
	}
	return out
}

func (t *Table) Has(id string) bool {
	_, ok := t.byID[id]
	return ok
}

// Known lists destinations in configuration order.
func (t *Table) Known() []string {
	ids := make([]string, len(t.entries))
	for i, e := range t.entries {
		ids[i] = e.ID
	}
	return ids
}

func (t *Table) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}
