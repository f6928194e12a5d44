package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadMatatu loads and validates the simulation configuration.
// Search order: customPath -> ~/.matatu/configs/matatu.yaml -> ./configs/matatu.yaml -> embedded default.
// Files only need to name the values they override.
func LoadMatatu(customPath string) (MatatuConfig, error) {
	cfg, _, err := LoadMatatuWithSource(customPath)
	return cfg, err
}

// LoadMatatuWithSource is LoadMatatu that also reports where the config came from.
func LoadMatatuWithSource(customPath string) (MatatuConfig, string, error) {
	cfg, source, err := load(customPath)
	if err != nil {
		return cfg, source, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, source, fmt.Errorf("%s: %w", source, err)
	}
	return cfg, source, nil
}

func load(customPath string) (MatatuConfig, string, error) {
	// Try custom path first; a missing or broken explicit file is an error
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultMatatuConfig(), customPath, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return cfg, customPath, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("matatu.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, userCfgPath, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/matatu.yaml"); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, "configs/matatu.yaml", nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultMatatuYAML)
	if err != nil {
		return DefaultMatatuConfig(), "default", nil // Fallback to hardcoded if embed fails
	}
	return cfg, "embedded default", nil
}

// Parse decodes YAML on top of the reference configuration.
func Parse(data []byte) (MatatuConfig, error) {
	cfg := DefaultMatatuConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultMatatuConfig(), err
	}
	return cfg, nil
}

// Marshal encodes a configuration as YAML.
func Marshal(cfg MatatuConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: cannot encode: %w", err)
	}
	return data, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".matatu", "configs", filename)
}
