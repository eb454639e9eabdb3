package options

import (
	"errors"
	"testing"

	"github.com/kballard/go-shellquote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_CanonicalRendering(t *testing.T) {
	args, err := Default().Parse([]string{
		"input1", "-color-diagnostics", "-Ifoo", "-I", "bar spaces",
		"-I=wibble", "input2", "-module-name", "main",
		"-sanitize=a,b,c", "--", "-foo", "-bar",
	})
	require.NoError(t, err)

	assert.Equal(t,
		"input1 -color-diagnostics -I foo -I 'bar spaces' -I=wibble input2 -module-name main -sanitize=a,b,c -- -foo -bar",
		args.String())

	assert.Equal(t, []string{"input1", "input2"}, args.Inputs())
	assert.Equal(t, []string{"-foo", "-bar"}, args.Remaining())
	assert.True(t, args.HasTerminator)
}

func TestParse_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
	}{
		{"mixed", []string{"input1", "-color-diagnostics", "-Ifoo", "-I", "bar spaces", "-I=wibble", "input2", "-module-name", "main", "-sanitize=a,b,c", "--", "-foo", "-bar"}},
		{"flags only", []string{"-emit-library", "-static", "-g"}},
		{"joined", []string{"-debug-info-format=dwarf", "-lfoo", "--driver-mode=swiftc"}},
		{"stdin", []string{"-", "-o", "out"}},
		{"empty tail", []string{"a.swift", "--"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, err := Default().Parse(tt.tokens)
			require.NoError(t, err)

			split, err := shellquote.Split(first.String())
			require.NoError(t, err)

			second, err := Default().Parse(split)
			require.NoError(t, err)

			assert.Equal(t, first.String(), second.String())
			assert.Equal(t, first.Inputs(), second.Inputs())
			assert.Equal(t, first.Remaining(), second.Remaining())
			assert.Equal(t, first.HasTerminator, second.HasTerminator)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		tokens  []string
		kind    error
		message string
	}{
		{
			name:    "unknown option",
			tokens:  []string{"-unrecognized"},
			kind:    ErrUnknownOption,
			message: "unknown argument: '-unrecognized'",
		},
		{
			name:    "missing joined-or-separate value",
			tokens:  []string{"-I"},
			kind:    ErrMissingArgument,
			message: "missing argument value for '-I'",
		},
		{
			name:    "missing separate value",
			tokens:  []string{"a.swift", "-module-name"},
			kind:    ErrMissingArgument,
			message: "missing argument value for '-module-name'",
		},
		{
			name:    "empty comma segment",
			tokens:  []string{"-sanitize=a,,b"},
			kind:    ErrEmptyValue,
			message: "empty value in '-sanitize=a,,b'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args, err := Default().Parse(tt.tokens)
			require.Error(t, err)
			assert.Nil(t, args)
			assert.True(t, errors.Is(err, tt.kind))

			var perr *Error
			require.True(t, errors.As(err, &perr))
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestParse_Suggestion(t *testing.T) {
	_, err := Default().Parse([]string{"-emit-libary"})
	require.Error(t, err)

	var perr *Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "-emit-library", perr.Suggestion)
	assert.Contains(t, err.Error(), "did you mean '-emit-library'?")
}

func TestParse_CommaJoinedEmptySegmentsAllowed(t *testing.T) {
	opt := &Option{Spelling: "-list=", Kind: KindCommaJoined, AllowEmptySegments: true}
	table := NewTable(opt)

	args, err := table.Parse([]string{"-list=a,,b"})
	require.NoError(t, err)

	got, ok := args.LastArgument(opt)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "", "b"}, got.Values)
}

func TestParse_FlagRequiresExactMatch(t *testing.T) {
	_, err := Default().Parse([]string{"-gnonesense"})
	assert.True(t, errors.Is(err, ErrUnknownOption))
}

func TestParse_LongestPrefixWins(t *testing.T) {
	args, err := Default().Parse([]string{"-I=foo", "-Ibar", "-lz"})
	require.NoError(t, err)

	require.Len(t, args.Options, 3)
	assert.Same(t, IncludePathEq, args.Options[0].Option)
	assert.Equal(t, "foo", args.Options[0].Value)
	assert.Same(t, IncludePath, args.Options[1].Option)
	assert.Equal(t, "bar", args.Options[1].Value)
	assert.Same(t, LinkLibrary, args.Options[2].Option)
	assert.Equal(t, "z", args.Options[2].Value)
}

func TestParsedArguments_Queries(t *testing.T) {
	args, err := Default().Parse([]string{
		"a.swift", "-wmo", "-g", "-no-whole-module-optimization", "-I", "x",
		"-gnone", "-I=y", "b.swift", "-c",
	})
	require.NoError(t, err)

	assert.True(t, args.HasArgument(WholeModuleOptimization), "alias counts for canonical option")
	assert.True(t, args.HasArgument(EmitObject))
	assert.False(t, args.HasArgument(EmitLibrary))

	includes := args.AllArguments(IncludePath)
	require.Len(t, includes, 2)
	assert.Equal(t, "x", includes[0].Value)
	assert.Equal(t, "y", includes[1].Value)

	last, ok := args.LastInGroup(GroupWMO)
	require.True(t, ok)
	assert.Same(t, NoWholeModuleOptimization, last.Option)

	last, ok = args.LastInGroup(GroupDebug)
	require.True(t, ok)
	assert.Same(t, DebugNone, last.Option)

	last, ok = args.LastInGroup(GroupModes)
	require.True(t, ok)
	assert.Same(t, EmitObjectC, last.Option)

	_, ok = args.LastInGroup(GroupColor)
	assert.False(t, ok)

	assert.Equal(t, []string{"a.swift", "b.swift"}, args.Inputs())
	assert.False(t, args.HasTerminator)
}

func TestTable_Lookup(t *testing.T) {
	opt, ok := Default().Lookup("-module-name")
	require.True(t, ok)
	assert.Same(t, ModuleName, opt)

	_, ok = Default().Lookup("-module")
	assert.False(t, ok)

	assert.Len(t, Default().All(), len(defaultOptions))
}
