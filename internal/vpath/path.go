// Package vpath models the file references that flow through planning.
//
// A VirtualPath is one of a closed set of variants. Two paths are equal only
// when both the variant and the path string match, so a temporary "foo.o" is
// never equal to a relative "foo.o".
package vpath

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Kind identifies the VirtualPath variant
type Kind int

const (
	KindRelative Kind = iota
	KindAbsolute
	KindTemporary
	KindStandardInput
	KindStandardOutput
)

func (k Kind) String() string {
	switch k {
	case KindRelative:
		return "relative"
	case KindAbsolute:
		return "absolute"
	case KindTemporary:
		return "temporary"
	case KindStandardInput:
		return "stdin"
	case KindStandardOutput:
		return "stdout"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// VirtualPath is an immutable, comparable file reference
type VirtualPath struct {
	kind Kind
	path string
}

// Relative returns a path relative to the process working directory
func Relative(p string) VirtualPath {
	return VirtualPath{kind: KindRelative, path: filepath.Clean(p)}
}

// Absolute returns an absolute path
func Absolute(p string) VirtualPath {
	return VirtualPath{kind: KindAbsolute, path: filepath.Clean(p)}
}

// Temporary returns a path materialized under the build scratch directory
func Temporary(p string) VirtualPath {
	return VirtualPath{kind: KindTemporary, path: filepath.Clean(p)}
}

// StandardInput returns the standard input stream
func StandardInput() VirtualPath {
	return VirtualPath{kind: KindStandardInput}
}

// StandardOutput returns the standard output stream
func StandardOutput() VirtualPath {
	return VirtualPath{kind: KindStandardOutput}
}

// FromString classifies a user-supplied path. "-" is standard input.
func FromString(p string) VirtualPath {
	if p == "-" {
		return StandardInput()
	}

	if filepath.IsAbs(p) {
		return Absolute(p)
	}

	return Relative(p)
}

// Kind returns the variant of the path
func (p VirtualPath) Kind() Kind {
	return p.kind
}

// Name returns the path string, or "-" for the standard streams
func (p VirtualPath) Name() string {
	switch p.kind {
	case KindStandardInput, KindStandardOutput:
		return "-"
	default:
		return p.path
	}
}

// String renders the path for display, tagging temporaries
func (p VirtualPath) String() string {
	switch p.kind {
	case KindTemporary:
		return "<tmp>/" + filepath.ToSlash(p.path)
	case KindStandardInput:
		return "<stdin>"
	case KindStandardOutput:
		return "<stdout>"
	default:
		return p.path
	}
}

// Base returns the last element of the path
func (p VirtualPath) Base() string {
	switch p.kind {
	case KindStandardInput, KindStandardOutput:
		return "-"
	default:
		return filepath.Base(p.path)
	}
}

// Stem returns the base name without its extension
func (p VirtualPath) Stem() string {
	base := p.Base()
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Extension returns the file extension without the leading dot
func (p VirtualPath) Extension() string {
	return strings.TrimPrefix(filepath.Ext(p.Base()), ".")
}

// IsTemporary reports whether the path lives in the scratch directory
func (p VirtualPath) IsTemporary() bool {
	return p.kind == KindTemporary
}

// IsStandardStream reports whether the path is stdin or stdout
func (p VirtualPath) IsStandardStream() bool {
	return p.kind == KindStandardInput || p.kind == KindStandardOutput
}

// ReplacingExtension keeps the variant and directory and swaps the extension
// for the one used by ft. Standard streams are returned unchanged.
func (p VirtualPath) ReplacingExtension(ft FileType) VirtualPath {
	if p.IsStandardStream() {
		return p
	}

	trimmed := strings.TrimSuffix(p.path, filepath.Ext(p.path))
	if ext := ft.Extension(); ext != "" {
		trimmed += "." + ext
	}

	return VirtualPath{kind: p.kind, path: trimmed}
}

// AppendingExtension adds the extension for ft after any existing one, so
// libTest.dylib becomes libTest.dylib.dSYM
func (p VirtualPath) AppendingExtension(ft FileType) VirtualPath {
	ext := ft.Extension()
	if p.IsStandardStream() || ext == "" {
		return p
	}

	return VirtualPath{kind: p.kind, path: p.path + "." + ext}
}

// Dir returns the directory of the path with the same variant
func (p VirtualPath) Dir() VirtualPath {
	if p.IsStandardStream() {
		return p
	}

	return VirtualPath{kind: p.kind, path: filepath.Dir(p.path)}
}

// Appending joins a component onto the path, keeping the variant
func (p VirtualPath) Appending(component string) VirtualPath {
	if p.IsStandardStream() {
		return p
	}

	return VirtualPath{kind: p.kind, path: filepath.Join(p.path, component)}
}

// ResolvedAgainst turns a relative path into an absolute one rooted at dir.
// Other variants are returned unchanged.
func (p VirtualPath) ResolvedAgainst(dir string) VirtualPath {
	if p.kind != KindRelative || dir == "" {
		return p
	}

	return Absolute(filepath.Join(dir, p.path))
}

// TypedVirtualPath is a VirtualPath tagged with its file type
type TypedVirtualPath struct {
	File VirtualPath
	Type FileType
}

// Typed pairs a path with a file type
func Typed(file VirtualPath, ft FileType) TypedVirtualPath {
	return TypedVirtualPath{File: file, Type: ft}
}

func (t TypedVirtualPath) String() string {
	return fmt.Sprintf("%s (%s)", t.File, t.Type)
}
