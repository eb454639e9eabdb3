package codes

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSuccess(t *testing.T) {
	tests := []struct {
		name     string
		exitCode int
		want     bool
	}{
		{"exit code 0 is success", ExitSuccess, true},
		{"job failure", ExitJobFailed, false},
		{"invalid invocation", ExitInvalidInvocation, false},
		{"planning errors", ExitPlanningErrors, false},
		{"unknown code", 999, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSuccess(tt.exitCode))
		})
	}
}

func TestGetErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		exitCode int
		want     string
	}{
		{"success", ExitSuccess, "Success"},
		{"job failed", ExitJobFailed, "A planned job failed"},
		{"planning errors", ExitPlanningErrors, "Planning reported errors"},
		{"config error", ExitConfigError, "Invalid configuration"},
		{"unknown exit code", 999, "Unknown error"},
		{"negative exit code", -1, "Unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetErrorMessage(tt.exitCode))
		})
	}
}

func TestErrorCodes_Coverage(t *testing.T) {
	for _, code := range []int{ExitSuccess, ExitJobFailed, ExitInvalidInvocation, ExitPlanningErrors, ExitConfigError} {
		msg := GetErrorMessage(code)
		assert.NotEqual(t, "Unknown error", msg, "Code %d should have a message", code)
	}
}

func TestCodeOf(t *testing.T) {
	sentinel := errors.New("boom")

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain error", sentinel, ExitJobFailed},
		{"coded", WithCode(ExitConfigError, sentinel), ExitConfigError},
		{"wrapped coded", fmt.Errorf("outer: %w", WithCode(ExitPlanningErrors, sentinel)), ExitPlanningErrors},
		{"formatted", Errorf(ExitInvalidInvocation, "bad %s", "thing"), ExitInvalidInvocation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CodeOf(tt.err))
		})
	}
}

func TestExitError(t *testing.T) {
	sentinel := errors.New("boom")
	err := WithCode(ExitConfigError, sentinel)

	assert.Equal(t, "boom", err.Error())
	assert.True(t, errors.Is(err, sentinel))
	assert.Nil(t, WithCode(ExitConfigError, nil))
	assert.Equal(t, "Planning reported errors", (&ExitError{Code: ExitPlanningErrors}).Error())
}
