package shared

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
)

func TestHasFlags(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("input", "", "")
	flags.Bool("pretty", false, "")

	assert.NoError(t, flags.Parse([]string{}))
	assert.False(t, HasFlags(flags))

	assert.NoError(t, flags.Parse([]string{"--pretty"}))
	assert.True(t, HasFlags(flags))
}
