package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	fileName = "config.yaml"
	// envPath names a config file when no -config flag is given.
	envPath = "UMBRA_CONFIG"
)

// Load loads configuration with priority: defaults < file < flags.
// The merged result is validated before it is returned.
func Load() (*Config, error) {
	cfg := Default()

	if path := locate(); path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// locate picks the config file: the -config flag, then $UMBRA_CONFIG, then
// config.yaml in the working directory, then the user config directory.
// A named path is returned unchecked so a missing file is reported by Load.
func locate() string {
	if p := ConfigPath(); p != "" {
		return p
	}
	if p := os.Getenv(envPath); p != "" {
		return p
	}
	for _, p := range []string{fileName, filepath.Join(ConfigDir(), fileName)} {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// ConfigDir returns the umbra directory under the user's config directory,
// falling back to ~/.config/umbra.
func ConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "umbra")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "umbra")
}

// loadFromFile merges a YAML file over cfg. Unknown keys are rejected so a
// misspelled setting does not silently fall back to its default. Relative
// paths set by the file are taken relative to the file's directory.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	before := *cfg
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	// An empty or comment-only file decodes to io.EOF.
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	base := filepath.Dir(path)
	resolve(&cfg.Textures.Dir, before.Textures.Dir, base)
	resolve(&cfg.Render.ScreenshotDir, before.Render.ScreenshotDir, base)
	resolve(&cfg.Logging.LogFile, before.Logging.LogFile, base)
	return nil
}

// resolve joins a relative path onto base when the file changed it.
func resolve(p *string, before, base string) {
	if *p == "" || *p == before || filepath.IsAbs(*p) {
		return
	}
	*p = filepath.Join(base, *p)
}
