package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SourceEmbedded and SourceBuiltin name the fallback config sources.
const (
	SourceEmbedded = "embedded"
	SourceBuiltin  = "builtin"
)

// LoadTetris loads the rules config and reports where it came from.
// Search order: customPath -> ~/.tetris/configs/tetris.yaml ->
// ./configs/tetris.yaml -> embedded default -> DefaultTetrisConfig.
//
// Files are decoded over the defaults, so a file may set only the keys it
// wants to change. A custom path that cannot be read, parsed or validated
// is an error; broken files further down the search order are skipped.
func LoadTetris(customPath string) (TetrisConfig, string, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return TetrisConfig{}, "", fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := decode(data)
		if err != nil {
			return TetrisConfig{}, "", fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return TetrisConfig{}, "", fmt.Errorf("%s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	candidates := []string{"configs/tetris.yaml"}
	if dir := UserConfigDir(); dir != "" {
		candidates = append([]string{filepath.Join(dir, "tetris.yaml")}, candidates...)
	}
	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := decode(data); err == nil && cfg.Validate() == nil {
			return cfg, path, nil
		}
	}

	if cfg, err := decode(defaultTetrisYAML); err == nil && cfg.Validate() == nil {
		return cfg, SourceEmbedded, nil
	}
	return DefaultTetrisConfig(), SourceBuiltin, nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg TetrisConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return data, nil
}

func decode(data []byte) (TetrisConfig, error) {
	cfg := DefaultTetrisConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return TetrisConfig{}, err
	}
	return cfg, nil
}

// AppDir returns ~/.tetris, or empty if the home directory is unavailable.
func AppDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tetris")
}

// UserConfigDir returns ~/.tetris/configs, or empty if home is unavailable.
func UserConfigDir() string {
	dir := AppDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "configs")
}
