package vpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVirtualPath_Equality(t *testing.T) {
	assert.Equal(t, Temporary("foo.o"), Temporary("foo.o"))
	assert.NotEqual(t, Temporary("/tmp/foo.o"), Absolute("/tmp/foo.o"))
	assert.NotEqual(t, Relative("foo.o"), Temporary("foo.o"))
	assert.Equal(t, StandardInput(), FromString("-"))
	assert.NotEqual(t, StandardInput(), StandardOutput())
}

func TestFromString(t *testing.T) {
	tests := []struct {
		input string
		want  Kind
	}{
		{"a.swift", KindRelative},
		{"/tmp/b.swift", KindAbsolute},
		{"-", KindStandardInput},
		{"dir/c.swift", KindRelative},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, FromString(tt.input).Kind())
		})
	}
}

func TestVirtualPath_ReplacingExtension(t *testing.T) {
	assert.Equal(t, Temporary("foo.o"), Temporary("foo.swift").ReplacingExtension(TypeObject))
	assert.Equal(t, Absolute("/foo/bar/Test.swiftdoc"), Absolute("/foo/bar/Test.swiftmodule").ReplacingExtension(TypeSwiftDocumentation))
	assert.Equal(t, Relative("Test"), Relative("Test.o").ReplacingExtension(TypeImage))
	assert.Equal(t, StandardInput(), StandardInput().ReplacingExtension(TypeObject))
}

func TestVirtualPath_AppendingExtension(t *testing.T) {
	assert.Equal(t, Relative("Test.dSYM"), Relative("Test").AppendingExtension(TypeDSYM))
	assert.Equal(t, Relative("libTest.dylib.dSYM"), Relative("libTest.dylib").AppendingExtension(TypeDSYM))
	assert.Equal(t, Relative("Test"), Relative("Test").AppendingExtension(TypeImage))
}

func TestVirtualPath_ResolvedAgainst(t *testing.T) {
	assert.Equal(t, Absolute("/wobble/a.swift"), Relative("a.swift").ResolvedAgainst("/wobble"))
	assert.Equal(t, Absolute("/tmp/b.swift"), Absolute("/tmp/b.swift").ResolvedAgainst("/wobble"))
	assert.Equal(t, StandardInput(), StandardInput().ResolvedAgainst("/wobble"))
	assert.Equal(t, Relative("a.swift"), Relative("a.swift").ResolvedAgainst(""))
}

func TestVirtualPath_Display(t *testing.T) {
	assert.Equal(t, "<tmp>/foo.o", Temporary("foo.o").String())
	assert.Equal(t, "<stdin>", StandardInput().String())
	assert.Equal(t, "-", StandardInput().Name())
	assert.Equal(t, "foo", Relative("dir/foo.swift").Stem())
	assert.Equal(t, "swift", Relative("dir/foo.swift").Extension())
}

func TestFileTypeLookup(t *testing.T) {
	ft, ok := FileTypeForName("swift-dependencies")
	assert.True(t, ok)
	assert.Equal(t, TypeSwiftDeps, ft)

	ft, ok = FileTypeForExtension("o")
	assert.True(t, ok)
	assert.Equal(t, TypeObject, ft)

	_, ok = FileTypeForName("bogus")
	assert.False(t, ok)

	_, ok = FileTypeForExtension("")
	assert.False(t, ok)
}
