package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const tuningFile = "destroid.yaml"

// Load loads the tuning and validates it.
// Search order: customPath -> ~/.destroid/destroid.yaml -> ./configs/destroid.yaml -> embedded default.
// Files are decoded over Default(), so a partial file only overrides the keys it names.
func Load(customPath string) (Tuning, error) {
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return Tuning{}, err
		}
		return cfg, cfg.Validate()
	}

	for _, path := range []string{userConfigPath(tuningFile), filepath.Join("configs", tuningFile)} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		cfg, err := loadFile(path)
		if err != nil {
			return Tuning{}, err
		}
		return cfg, cfg.Validate()
	}

	cfg, err := Parse(defaultTuningYAML)
	if err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, cfg.Validate()
}

// Parse decodes YAML over the default tuning.
func Parse(data []byte) (Tuning, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Tuning{}, fmt.Errorf("config: parse tuning: %w", err)
	}
	return cfg, nil
}

func loadFile(path string) (Tuning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Tuning{}, fmt.Errorf("config: failed to load %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".destroid", filename)
}
