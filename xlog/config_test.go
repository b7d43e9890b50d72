package xlog_test

import (
	"bytes"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"

	"github.com/ragodev/textile/xlog"
)

func TestNewConfigDefaults(t *testing.T) {
	t.Parallel()

	c := xlog.NewConfig()
	assert.Equal(t, "info", c.Level)
	assert.Equal(t, "text", c.Format)
	assert.Equal(t, "log-level", c.Flags.Level)
	assert.Equal(t, "log-format", c.Flags.Format)
}

func TestRegisterFlagsOverridesLevel(t *testing.T) {
	t.Parallel()

	c := xlog.NewConfig()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	c.RegisterFlags(flags)

	err := flags.Parse([]string{"--log-level=debug", "--log-format=json"})
	assert.NoError(t, err)
	assert.Equal(t, "debug", c.Level)
	assert.Equal(t, "json", c.Format)
}

func TestConfigNewHandlerUsesParsedValues(t *testing.T) {
	t.Parallel()

	c := xlog.NewConfig()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	c.RegisterFlags(flags)
	err := flags.Parse([]string{"--log-format=json"})
	assert.NoError(t, err)

	var buf bytes.Buffer
	h, err := c.NewHandler(&buf)
	assert.NoError(t, err)
	assert.NotNil(t, h)
}
