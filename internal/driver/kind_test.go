package driver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetermineKind(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Kind
	}{
		{"swift", []string{"swift"}, KindInteractive},
		{"swift with directory", []string{"/path/to/swift"}, KindInteractive},
		{"swiftc", []string{"swiftc"}, KindBatch},
		{"swiftc relative", []string{".build/debug/swiftc"}, KindBatch},
		{"windows exe", []string{`C:\toolchain\bin\swiftc.exe`}, KindBatch},
		{"frontend marker", []string{"swiftc", "-frontend"}, KindFrontend},
		{"modulewrap marker", []string{"swiftc", "-modulewrap"}, KindModuleWrap},
		{"modulewrap with directory", []string{"/path/to/swiftc", "-modulewrap"}, KindModuleWrap},
		{"frontend by name", []string{"swift-frontend", "-c"}, KindFrontend},
		{"override to interactive", []string{"swiftc", "--driver-mode=swift"}, KindInteractive},
		{"override to autolink", []string{"swiftc", "--driver-mode=swift-autolink-extract"}, KindAutolinkExtract},
		{"override to indent", []string{"swiftc", "--driver-mode=swift-indent"}, KindIndent},
		{"override from swift", []string{"swift", "--driver-mode=swift-autolink-extract"}, KindAutolinkExtract},
		{"override beats marker", []string{"swiftc", "-frontend", "--driver-mode=swift"}, KindInteractive},
		{"last override wins", []string{"swift", "--driver-mode=swift-indent", "--driver-mode=swiftc"}, KindBatch},
		{"override after terminator ignored", []string{"swiftc", "--", "--driver-mode=swift"}, KindBatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetermineKind(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetermineKind_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown name", []string{"driver"}},
		{"unknown override", []string{"swiftc", "--driver-mode=blah"}},
		{"empty override", []string{"swiftc", "--driver-mode="}},
		{"empty invocation", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DetermineKind(tt.args)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnknownDriverKind))
		})
	}
}

func TestIsDriverName(t *testing.T) {
	assert.True(t, IsDriverName("/usr/bin/swiftc"))
	assert.True(t, IsDriverName("swift.exe"))
	assert.False(t, IsDriverName("swiftdriver"))
}

func TestPassthroughArgs(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		args []string
		want []string
	}{
		{"frontend marker removed", KindFrontend, []string{"-frontend", "-c", "a.swift"}, []string{"-c", "a.swift"}},
		{"modulewrap marker moved to front", KindModuleWrap, []string{"-modulewrap", "a.swiftmodule"}, []string{"-modulewrap", "a.swiftmodule"}},
		{"driver mode removed", KindIndent, []string{"--driver-mode=swift-indent", "a.swift"}, []string{"a.swift"}},
		{"later marker kept", KindFrontend, []string{"-c", "-frontend"}, []string{"-c", "-frontend"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, passthroughArgs(tt.kind, tt.args))
		})
	}
}
