package triple

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		arch    string
		os      string
		env     string
		darwin  bool
		format  ObjectFormat
		version string
		minFlag string
	}{
		{"x86_64-apple-macosx10.15", "x86_64", "macosx", "", true, FormatMachO, "10.15.0", "-macosx_version_min"},
		{"arm64-apple-ios10.0", "arm64", "ios", "", true, FormatMachO, "10.0.0", "-iphoneos_version_min"},
		{"x86_64-apple-ios13.0-simulator", "x86_64", "ios", "simulator", true, FormatMachO, "13.0.0", "-ios_simulator_version_min"},
		{"x86_64-apple-macosx", "x86_64", "macosx", "", true, FormatMachO, "10.9.0", "-macosx_version_min"},
		{"x86_64-unknown-linux", "x86_64", "linux", "", false, FormatELF, "0.0.0", ""},
		{"aarch64-unknown-linux-gnu", "aarch64", "linux", "gnu", false, FormatELF, "0.0.0", ""},
		{"x86_64-unknown-windows-msvc", "x86_64", "windows", "msvc", false, FormatCOFF, "0.0.0", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tr, err := Parse(tt.input)
			require.NoError(t, err)

			assert.Equal(t, tt.input, tr.String())
			assert.Equal(t, tt.arch, tr.Arch)
			assert.Equal(t, tt.os, tr.OSName())
			assert.Equal(t, tt.env, tr.Environment)
			assert.Equal(t, tt.darwin, tr.IsDarwin())
			assert.Equal(t, tt.format, tr.ObjectFormat())
			assert.Equal(t, tt.version, tr.OSVersion().String())
			assert.Equal(t, tt.minFlag, tr.VersionMinFlag())
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, input := range []string{"", "x86_64", "x86_64-apple", "x86_64--linux"} {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			assert.True(t, errors.Is(err, ErrInvalidTriple))
		})
	}
}

func TestLibraryNaming(t *testing.T) {
	tests := []struct {
		triple     string
		dynamic    string
		static     string
		executable string
	}{
		{"x86_64-apple-macosx10.15", "libTest.dylib", "libTest.a", "Test"},
		{"x86_64-unknown-linux", "libTest.so", "libTest.a", "Test"},
		{"x86_64-unknown-windows-msvc", "Test.dll", "Test.lib", "Test.exe"},
	}

	for _, tt := range tests {
		t.Run(tt.triple, func(t *testing.T) {
			tr := MustParse(tt.triple)
			assert.Equal(t, tt.dynamic, tr.DynamicLibraryName("Test"))
			assert.Equal(t, tt.static, tr.StaticLibraryName("Test"))
			assert.Equal(t, tt.executable, tr.ExecutableName("Test"))
		})
	}
}

func TestWindowsMSVC(t *testing.T) {
	assert.True(t, MustParse("x86_64-unknown-windows-msvc").IsWindowsMSVC())
	assert.False(t, MustParse("x86_64-unknown-windows-gnu").IsWindowsMSVC())
	assert.False(t, MustParse("x86_64-unknown-linux-gnu").IsWindowsMSVC())
}

func TestHost(t *testing.T) {
	h := Host()
	assert.NotEmpty(t, h.Arch)
	assert.NotEmpty(t, h.String())
}
