// Package layout reads and writes template layouts: YAML files describing
// groups and rows with three-point values per track.
package layout

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Layout is the top-level YAML document.
type Layout struct {
	Name   string  `yaml:"name"`
	Groups []Group `yaml:"groups"`
}

// Group is a named list of rows.
type Group struct {
	Name string `yaml:"name"`
	Rows []Row  `yaml:"rows,omitempty"`
}

// Row is one feature line. Each track is written as [min, most, max] and
// may be omitted.
type Row struct {
	Feature     string    `yaml:"feature"`
	Assumptions string    `yaml:"assumptions,omitempty"`
	Design      []float64 `yaml:"design,flow,omitempty"`
	Backend     []float64 `yaml:"backend,flow,omitempty"`
	Frontend    []float64 `yaml:"frontend,flow,omitempty"`
}

// Load reads and parses a layout file. Unknown keys are rejected.
func Load(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading layout file: %w", err)
	}
	return Parse(bytes.NewReader(data))
}

// Parse decodes a single layout document from r.
func Parse(r io.Reader) (*Layout, error) {
	var l Layout
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&l); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing layout: empty document")
		}
		return nil, fmt.Errorf("parsing layout: %w", err)
	}
	return &l, nil
}

// Marshal encodes l as YAML.
func Marshal(l *Layout) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(l); err != nil {
		return nil, fmt.Errorf("encoding layout: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding layout: %w", err)
	}
	return buf.Bytes(), nil
}
