package job

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Norgate-AV/swiftdriver/internal/vpath"
)

func TestJob_Contains(t *testing.T) {
	j := &Job{
		Kind: KindLink,
		Tool: ToolClang,
		CommandLine: []Arg{
			Flag("-shared"),
			Path(vpath.Temporary("foo.o")),
			ResponseFile(vpath.Temporary("Test.autolink")),
			Flag("-o"),
			Path(vpath.Relative("libTest.so")),
		},
	}

	assert.True(t, j.ContainsFlag("-shared"))
	assert.False(t, j.ContainsFlag("-dylib"))
	assert.True(t, j.ContainsPath(vpath.Temporary("foo.o")))
	assert.False(t, j.ContainsPath(vpath.Relative("foo.o")), "variants differ")
	assert.False(t, j.ContainsPath(vpath.Temporary("Test.autolink")), "response files are not plain paths")
	assert.True(t, j.Contains(ResponseFile(vpath.Temporary("Test.autolink"))))
	assert.False(t, j.ContainsFlag("foo.o"))
}

func TestJob_Display(t *testing.T) {
	j := &Job{
		Kind:        KindAutolinkExtract,
		Tool:        ToolAutolinkExtract,
		CommandLine: []Arg{Path(vpath.Temporary("foo.o")), Flag("-o"), ResponseFile(vpath.Relative("x.autolink"))},
	}

	assert.Equal(t, []string{"swift-autolink-extract", "<tmp>/foo.o", "-o", "@x.autolink"}, j.Display())
	assert.Equal(t, "autolink-extract (swift-autolink-extract)", j.String())
}

func TestToolNames(t *testing.T) {
	seen := map[string]bool{}
	for _, tool := range Tools() {
		name := tool.Name()
		assert.NotContains(t, name, "Tool(")
		assert.False(t, seen[name], "duplicate tool name %s", name)
		seen[name] = true
	}

	assert.Contains(t, ToolFrontend.Name(), "swift")
	assert.Contains(t, ToolLD.Name(), "ld")
}

func TestFlags(t *testing.T) {
	assert.Equal(t, []Arg{Flag("crs"), Flag("-static")}, Flags("crs", "-static"))
	assert.Empty(t, Flags())
}
