// Package outputmap loads the per-input table of output locations.
//
// The document maps input paths to a mapping from file type names to
// destination paths. The empty input key is the global entry used for
// build-wide outputs such as the master swift-dependencies record.
package outputmap

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/Norgate-AV/swiftdriver/internal/diag"
	"github.com/Norgate-AV/swiftdriver/internal/vpath"
)

// ErrNoOutput is returned when the map has no entry for an input and type
var ErrNoOutput = errors.New("no output entry")

// Format of an output-file map document
type Format int

const (
	FormatJSON Format = iota
	FormatTOML
)

// FormatForPath picks the document format from the file extension
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}

	return FormatJSON
}

// OutputFileMap is an immutable input → type → destination table
type OutputFileMap struct {
	entries map[string]map[vpath.FileType]vpath.VirtualPath
}

// Load reads and parses the map at path
func Load(path string, engine *diag.Engine) (*OutputFileMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read output file map: %w", err)
	}

	m, err := Parse(data, FormatForPath(path), engine)
	if err != nil {
		return nil, fmt.Errorf("failed to load output file map %s: %w", path, err)
	}

	return m, nil
}

// Parse decodes a map document. Unknown file type names are reported as
// warnings and skipped.
func Parse(data []byte, format Format, engine *diag.Engine) (*OutputFileMap, error) {
	var raw map[string]map[string]string

	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to decode TOML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to decode JSON: %w", err)
		}
	}

	m := &OutputFileMap{entries: make(map[string]map[vpath.FileType]vpath.VirtualPath, len(raw))}

	// Sorted so warnings come out in a stable order
	inputs := make([]string, 0, len(raw))
	for input := range raw {
		inputs = append(inputs, input)
	}
	sort.Strings(inputs)

	for _, input := range inputs {
		outputs := make(map[vpath.FileType]vpath.VirtualPath, len(raw[input]))

		names := make([]string, 0, len(raw[input]))
		for name := range raw[input] {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			ft, ok := vpath.FileTypeForName(name)
			if !ok {
				engine.Warning("unknown output kind '%s' in output file map entry for '%s'", name, input)
				continue
			}

			outputs[ft] = vpath.FromString(raw[input][name])
		}

		m.entries[key(input)] = outputs
	}

	return m, nil
}

func key(input string) string {
	if input == "" {
		return ""
	}

	return filepath.Clean(input)
}

// GetOutput returns the destination of kind for input
func (m *OutputFileMap) GetOutput(input vpath.VirtualPath, kind vpath.FileType) (vpath.VirtualPath, error) {
	return m.lookup(key(input.Name()), kind)
}

// HasEntry reports whether the map has an entry for input, of any type
func (m *OutputFileMap) HasEntry(input vpath.VirtualPath) bool {
	_, ok := m.entries[key(input.Name())]
	return ok
}

// GetGlobalOutput returns the destination of kind in the global entry
func (m *OutputFileMap) GetGlobalOutput(kind vpath.FileType) (vpath.VirtualPath, error) {
	return m.lookup("", kind)
}

func (m *OutputFileMap) lookup(input string, kind vpath.FileType) (vpath.VirtualPath, error) {
	outputs, ok := m.entries[input]
	if !ok {
		return vpath.VirtualPath{}, fmt.Errorf("%w: no entry for input '%s'", ErrNoOutput, input)
	}

	out, ok := outputs[kind]
	if !ok {
		return vpath.VirtualPath{}, fmt.Errorf("%w: no %s output for input '%s'", ErrNoOutput, kind, input)
	}

	return out, nil
}

// Inputs returns the input keys in sorted order, the global entry included
func (m *OutputFileMap) Inputs() []string {
	out := make([]string, 0, len(m.entries))
	for input := range m.entries {
		out = append(out, input)
	}
	sort.Strings(out)

	return out
}
