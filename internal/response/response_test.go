package response

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Norgate-AV/swiftdriver/internal/diag"
)

func TestExpand_RecursiveFiles(t *testing.T) {
	dir := t.TempDir()
	fooPath := filepath.Join(dir, "foo.rsp")
	barPath := filepath.Join(dir, "bar.rsp")

	require.NoError(t, os.WriteFile(fooPath, []byte("hello\nbye\nbye\\ to\\ you\n@"+barPath), 0o644))
	require.NoError(t, os.WriteFile(barPath, []byte("from\nbar\n@"+fooPath), 0o644))

	engine := diag.NewEngine()
	got := Expand([]string{"swift", "compiler", "-Xlinker", "@loader_path", "@" + fooPath, "something"}, engine)

	assert.Equal(t, []string{
		"swift", "compiler", "-Xlinker", "@loader_path",
		"hello", "bye", "bye to you", "from", "bar", "something",
	}, got)

	diags := engine.Diagnostics()
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Description(), "is recursively expanded")
	assert.Equal(t, diag.SeverityWarning, diags[0].Severity)
}

func TestExpand_Identity(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
	}{
		{"empty", []string{}},
		{"plain", []string{"swiftc", "a.swift", "-o", "a"}},
		{"unreadable", []string{"swiftc", "@does-not-exist.rsp"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := diag.NewEngine()
			assert.Equal(t, tt.tokens, Expand(tt.tokens, engine))
			assert.Empty(t, engine.Diagnostics())
		})
	}
}

func TestExpand_Directory(t *testing.T) {
	dir := t.TempDir()
	engine := diag.NewEngine()

	assert.Equal(t, []string{"@" + dir}, Expand([]string{"@" + dir}, engine))
	assert.Empty(t, engine.Diagnostics())
}

func TestExpand_SelfReference(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "self.rsp")
	require.NoError(t, os.WriteFile(path, []byte("a @"+path+" b"), 0o644))

	engine := diag.NewEngine()
	got := Expand([]string{"x", "@" + path, "y"}, engine)

	assert.Equal(t, []string{"x", "a", "b", "y"}, got)
	assert.Len(t, engine.Diagnostics(), 1)
}

func TestExpand_SameFileTwiceIsNotACycle(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flags.rsp")
	require.NoError(t, os.WriteFile(path, []byte("-g"), 0o644))

	engine := diag.NewEngine()
	got := Expand([]string{"@" + path, "@" + path}, engine)

	assert.Equal(t, []string{"-g", "-g"}, got)
	assert.Empty(t, engine.Diagnostics())
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		want     []string
	}{
		{"newlines", "a\nb\n", []string{"a", "b"}},
		{"mixed whitespace", "  a \t b\r\nc  ", []string{"a", "b", "c"}},
		{"escaped space", `bye\ to\ you`, []string{"bye to you"}},
		{"literal backslash", `C:\path\file`, []string{`C:\path\file`}},
		{"escaped leading space", `\ x`, []string{" x"}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.contents))
		})
	}
}
