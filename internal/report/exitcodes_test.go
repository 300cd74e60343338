package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(0, 0, 0))
	assert.Equal(t, BugsFoundFlag, ExitCode(0, 0, 3))
	assert.Equal(t, MissingClassFlag, ExitCode(0, 1, 0))
	assert.Equal(t, ErrorFlag|BugsFoundFlag, ExitCode(2, 0, 1))
	assert.Equal(t, 7, ExitCode(1, 1, 1))
}

func TestSignalName(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{0, "SUCCESS"},
		{1, "BUGS FOUND"},
		{2, "MISSING CLASS"},
		{4, "ERROR"},
		{5, "ERROR,BUGS FOUND"},
		{7, "ERROR,MISSING CLASS,BUGS FOUND"},
		{8, "UNKNOWN"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, SignalName(tt.code), "code %d", tt.code)
	}
}
