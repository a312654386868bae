package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultYAML returns the embedded default rules file.
func DefaultYAML() []byte {
	return defaultTetrisYAML
}
