package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlignClassFlagSetTracksExplicitValue(t *testing.T) {
	t.Parallel()

	opts := &options{}
	f := alignClassFlag{opts}

	assert.False(t, opts.alignClassSet)

	err := f.Set("true")
	assert.NoError(t, err)
	assert.True(t, opts.alignClassSet)
	assert.True(t, opts.alignClass)
	assert.Equal(t, "true", f.String())

	err = f.Set("false")
	assert.NoError(t, err)
	assert.False(t, opts.alignClass)
	assert.Equal(t, "false", f.String())
}

func TestAlignClassFlagRejectsGarbage(t *testing.T) {
	t.Parallel()

	opts := &options{}
	f := alignClassFlag{opts}
	assert.Error(t, f.Set("maybe"))
}

func TestAlignClassFlagType(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "bool", alignClassFlag{&options{}}.Type())
}
