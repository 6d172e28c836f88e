package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/wgslfmt/internal/config"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad(t *testing.T) {
	t.Run("empty root returns defaults", func(t *testing.T) {
		cfg, err := config.Load("")
		require.NoError(t, err)
		assert.Equal(t, config.Default(), cfg)
	})

	t.Run("missing files return defaults", func(t *testing.T) {
		cfg, err := config.Load(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, config.Default(), cfg)
	})

	t.Run("package.json wgslfmt stanza", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "package.json"), `{
			"name": "demo",
			"wgslfmt": {
				"printWidth": 100,
				"indentWidth": 4
			}
		}`)

		cfg, err := config.Load(dir)
		require.NoError(t, err)
		assert.Equal(t, 100, cfg.PrintWidth)
		assert.Equal(t, 4, cfg.IndentWidth)
	})

	t.Run("package.json with comments parses as jsonc", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "package.json"), `{
			// formatter settings
			"wgslfmt": {
				"printWidth": 120, /* wide monitors */
			}
		}`)

		cfg, err := config.Load(dir)
		require.NoError(t, err)
		assert.Equal(t, 120, cfg.PrintWidth)
		assert.Equal(t, 2, cfg.IndentWidth)
	})

	t.Run("package.json without stanza falls through to yaml", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "package.json"), `{"name": "demo"}`)
		writeFile(t, filepath.Join(dir, ".config", "wgslfmt.yaml"), "printWidth: 90\n")

		cfg, err := config.Load(dir)
		require.NoError(t, err)
		assert.Equal(t, 90, cfg.PrintWidth)
		assert.Equal(t, 2, cfg.IndentWidth)
	})

	t.Run("package.json stanza wins over yaml", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "package.json"), `{"wgslfmt": {"printWidth": 100}}`)
		writeFile(t, filepath.Join(dir, ".config", "wgslfmt.yaml"), "printWidth: 90\n")

		cfg, err := config.Load(dir)
		require.NoError(t, err)
		assert.Equal(t, 100, cfg.PrintWidth)
	})

	t.Run("yaml config", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, ".config", "wgslfmt.yaml"), "printWidth: 90\nindentWidth: 3\n")

		cfg, err := config.Load(dir)
		require.NoError(t, err)
		assert.Equal(t, 90, cfg.PrintWidth)
		assert.Equal(t, 3, cfg.IndentWidth)
	})

	t.Run("malformed package.json errors", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "package.json"), `{"wgslfmt": `)

		_, err := config.Load(dir)
		assert.Error(t, err)
	})

	t.Run("malformed yaml errors", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, ".config", "wgslfmt.yaml"), "printWidth: [oops\n")

		_, err := config.Load(dir)
		assert.Error(t, err)
	})
}

func TestOptions(t *testing.T) {
	t.Run("zero values fall back to defaults", func(t *testing.T) {
		opts := config.Config{}.Options()
		assert.Equal(t, 80, opts.PrintWidth)
		assert.Equal(t, 2, opts.IndentWidth)
	})

	t.Run("set values carry through", func(t *testing.T) {
		opts := config.Config{PrintWidth: 100, IndentWidth: 4}.Options()
		assert.Equal(t, 100, opts.PrintWidth)
		assert.Equal(t, 4, opts.IndentWidth)
	})
}
