// Package config loads formatting options from project files. Lookup
// order: a wgslfmt stanza in package.json (parsed as JSONC, so comments
// are allowed), then .config/wgslfmt.yaml. CLI flags override both; that
// precedence is applied by the caller, not here.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"bennypowers.dev/wgslfmt/internal/doc"
)

// Config holds the formatting options a project can set.
type Config struct {
	PrintWidth  int `json:"printWidth" yaml:"printWidth"`
	IndentWidth int `json:"indentWidth" yaml:"indentWidth"`
}

// Default returns the built-in option values.
func Default() Config {
	return Config{PrintWidth: 80, IndentWidth: 2}
}

// Options converts loaded config to layout options, filling unset fields
// from the defaults.
func (c Config) Options() doc.Options {
	opts := doc.DefaultOptions()
	if c.PrintWidth > 0 {
		opts.PrintWidth = c.PrintWidth
	}
	if c.IndentWidth > 0 {
		opts.IndentWidth = c.IndentWidth
	}
	return opts
}

// Load reads project configuration from rootPath. A missing file or
// missing stanza is not an error; the defaults come back instead.
func Load(rootPath string) (Config, error) {
	if rootPath == "" {
		return Default(), nil
	}

	cfg, found, err := readPackageJSON(rootPath)
	if err != nil {
		return Default(), err
	}
	if found {
		return cfg, nil
	}

	cfg, found, err = readYAML(rootPath)
	if err != nil {
		return Default(), err
	}
	if found {
		return cfg, nil
	}

	return Default(), nil
}

// readPackageJSON looks for a wgslfmt stanza in package.json.
func readPackageJSON(rootPath string) (Config, bool, error) {
	path := filepath.Join(rootPath, "package.json")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Config{}, false, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: reading workspace package.json - local trusted environment
	if err != nil {
		return Config{}, false, fmt.Errorf("failed to read package.json: %w", err)
	}
	data = jsonc.ToJSON(data)

	var pkg struct {
		Wgslfmt *Config `json:"wgslfmt"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return Config{}, false, fmt.Errorf("failed to parse package.json: %w", err)
	}
	if pkg.Wgslfmt == nil {
		return Config{}, false, nil
	}

	cfg := applyDefaults(*pkg.Wgslfmt)
	return cfg, true, nil
}

// readYAML looks for .config/wgslfmt.yaml under rootPath.
func readYAML(rootPath string) (Config, bool, error) {
	path := filepath.Join(rootPath, ".config", "wgslfmt.yaml")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Config{}, false, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: reading workspace config - local trusted environment
	if err != nil {
		return Config{}, false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, false, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return applyDefaults(cfg), true, nil
}

func applyDefaults(cfg Config) Config {
	def := Default()
	if cfg.PrintWidth <= 0 {
		cfg.PrintWidth = def.PrintWidth
	}
	if cfg.IndentWidth <= 0 {
		cfg.IndentWidth = def.IndentWidth
	}
	return cfg
}
