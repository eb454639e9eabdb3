package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEngine(t *testing.T) {
	e := NewEngine()
	assert.False(t, e.HasErrors())
	assert.Empty(t, e.Diagnostics())

	e.Warning("response file '%s' is recursively expanded", "/tmp/foo.rsp")
	assert.False(t, e.HasErrors(), "warnings do not count as errors")

	e.Error("invalid value '%s' in '%s'", "notdwarf", "-debug-info-format=")
	assert.True(t, e.HasErrors())

	assert.Equal(t, []string{
		"response file '/tmp/foo.rsp' is recursively expanded",
		"invalid value 'notdwarf' in '-debug-info-format='",
	}, e.Descriptions())

	diags := e.Diagnostics()
	assert.Len(t, diags, 2)
	assert.Equal(t, SeverityWarning, diags[0].Severity)
	assert.Equal(t, "error: invalid value 'notdwarf' in '-debug-info-format='", diags[1].String())
}

func TestEngine_DiagnosticsIsACopy(t *testing.T) {
	e := NewEngine()
	e.Note("first")

	diags := e.Diagnostics()
	diags[0].Message = "changed"

	assert.Equal(t, "first", e.Diagnostics()[0].Message)
}
