package executor

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/Norgate-AV/swiftdriver/internal/vpath"
)

// Scratch is the per-run directory temporary paths materialize under
type Scratch struct {
	dir  string
	keep bool
}

// NewScratch creates a fresh scratch directory under parent. With keep set,
// Cleanup leaves it in place.
func NewScratch(parent string, keep bool) (*Scratch, error) {
	if parent != "" {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create temp directory: %w", err)
		}
	}

	dir, err := os.MkdirTemp(parent, "swiftdriver-")
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}

	return &Scratch{dir: dir, keep: keep}, nil
}

// Dir returns the scratch directory
func (s *Scratch) Dir() string {
	return s.dir
}

// Resolve returns the on-disk spelling of p
func (s *Scratch) Resolve(p vpath.VirtualPath) string {
	if p.IsTemporary() {
		return filepath.Join(s.dir, p.Name())
	}

	return p.Name()
}

// Prepare creates parent directories for the temporaries a job writes
func (s *Scratch) Prepare(outputs []vpath.TypedVirtualPath) error {
	for _, out := range outputs {
		if !out.File.IsTemporary() {
			continue
		}

		if err := os.MkdirAll(filepath.Dir(s.Resolve(out.File)), 0o755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", out.File, err)
		}
	}

	return nil
}

// CollectOutputs returns the files present in the scratch directory, relative
// to it and sorted
func (s *Scratch) CollectOutputs() ([]string, error) {
	var outputs []string

	err := filepath.WalkDir(s.dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return filepath.SkipDir
			}
			return err
		}

		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(s.dir, path)
		if err != nil {
			return err
		}

		outputs = append(outputs, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read scratch directory: %w", err)
	}

	sort.Strings(outputs)
	return outputs, nil
}

// Cleanup removes the scratch directory unless temporaries are being kept
func (s *Scratch) Cleanup() error {
	if s.keep {
		return nil
	}

	if err := os.RemoveAll(s.dir); err != nil {
		return fmt.Errorf("failed to remove scratch directory: %w", err)
	}

	return nil
}

// Kept reports whether Cleanup leaves the directory in place
func (s *Scratch) Kept() bool {
	return s.keep
}
