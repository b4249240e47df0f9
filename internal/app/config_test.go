package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	t.Run("config file alone is enough", func(t *testing.T) {
		cfg, err := NewConfig(Config{ConfigPath: "bundles.hcl", StorePath: "schemas"})
		require.NoError(t, err)
		assert.Equal(t, "bundles.hcl", cfg.ConfigPath)
	})

	t.Run("schemas alone are enough", func(t *testing.T) {
		_, err := NewConfig(Config{Schemas: []string{"rgb-color"}, StorePath: "schemas"})
		require.NoError(t, err)
	})

	t.Run("registry output alone is enough", func(t *testing.T) {
		_, err := NewConfig(Config{RegistryOutput: "registry.json", StorePath: "schemas"})
		require.NoError(t, err)
	})

	t.Run("no job source fails", func(t *testing.T) {
		_, err := NewConfig(Config{StorePath: "schemas"})
		require.Error(t, err)
	})

	t.Run("empty store path fails", func(t *testing.T) {
		_, err := NewConfig(Config{ConfigPath: "bundles.hcl"})
		require.Error(t, err)
	})
}
