package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_ConfigPathSources(t *testing.T) {
	t.Parallel()

	t.Run("positional argument", func(t *testing.T) {
		cfg, exit, err := Parse([]string{"bundles.hcl"}, &bytes.Buffer{})
		require.NoError(t, err)
		require.False(t, exit)
		assert.Equal(t, "bundles.hcl", cfg.ConfigPath)
	})

	t.Run("config flag wins over positional", func(t *testing.T) {
		cfg, _, err := Parse([]string{"-config", "a.hcl", "b.hcl"}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, "a.hcl", cfg.ConfigPath)
	})

	t.Run("shorthand flag", func(t *testing.T) {
		cfg, _, err := Parse([]string{"-c", "a.hcl"}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, "a.hcl", cfg.ConfigPath)
	})
}

func TestParse_AdHocFlags(t *testing.T) {
	t.Parallel()

	cfg, exit, err := Parse([]string{
		"-store", "testdata/schemas",
		"-schema", "type/rgb-color",
		"-schema", "invert",
		"-o", "out.go",
		"-base-url", "https://reg.example.com",
		"-print-tree",
	}, &bytes.Buffer{})
	require.NoError(t, err)
	require.False(t, exit)

	assert.Equal(t, "testdata/schemas", cfg.StorePath)
	assert.Equal(t, []string{"type/rgb-color", "invert"}, cfg.Schemas)
	assert.Equal(t, "out.go", cfg.Output)
	assert.Equal(t, "https://reg.example.com", cfg.BaseURL)
	assert.True(t, cfg.PrintTree)
}

func TestParse_NoJobPrintsUsage(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	cfg, exit, err := Parse(nil, out)
	require.NoError(t, err)
	assert.True(t, exit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParse_Help(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	_, exit, err := Parse([]string{"-h"}, out)
	require.NoError(t, err)
	assert.True(t, exit)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParse_InvalidOptions(t *testing.T) {
	t.Parallel()

	t.Run("bad log level", func(t *testing.T) {
		_, _, err := Parse([]string{"-log-level", "loud", "bundles.hcl"}, &bytes.Buffer{})
		require.Error(t, err)
		exitErr, ok := err.(*ExitError)
		require.True(t, ok)
		assert.Equal(t, 2, exitErr.Code)
	})

	t.Run("bad log format", func(t *testing.T) {
		_, _, err := Parse([]string{"-log-format", "xml", "bundles.hcl"}, &bytes.Buffer{})
		require.Error(t, err)
		exitErr, ok := err.(*ExitError)
		require.True(t, ok)
		assert.Equal(t, 2, exitErr.Code)
	})

	t.Run("unknown flag", func(t *testing.T) {
		_, _, err := Parse([]string{"-frobnicate"}, &bytes.Buffer{})
		require.Error(t, err)
		var exitErr *ExitError
		assert.ErrorAs(t, err, &exitErr)
	})
}
