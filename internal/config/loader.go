package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the game configuration.
// Search order: customPath -> ~/.beatdodge/configs/game.yaml -> ./configs/game.yaml -> embedded default.
// Values missing from a file keep their defaults.
func Load(customPath string) (GameConfig, error) {
	cfg := DefaultGameConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, validate(cfg, customPath)
	}

	// Try user config directory
	if userCfgPath := userConfigPath("game.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, validate(cfg, userCfgPath)
			}
			cfg = DefaultGameConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "game.yaml")); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, validate(cfg, "configs/game.yaml")
		}
		cfg = DefaultGameConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultGameYAML, &cfg); err != nil {
		return DefaultGameConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// LoadWithPreset loads the configuration and applies a difficulty preset.
func LoadWithPreset(customPath string, preset DifficultyPreset) (GameConfig, error) {
	cfg, err := Load(customPath)
	if err != nil {
		return cfg, err
	}
	ApplyPreset(&cfg, preset)
	return cfg, nil
}

func validate(cfg GameConfig, source string) error {
	switch {
	case cfg.World.Width <= 0 || cfg.World.Height <= 0:
		return fmt.Errorf("config %s: world size must be positive", source)
	case cfg.Player.HitPoints <= 0:
		return fmt.Errorf("config %s: hit_points must be positive", source)
	case cfg.Player.Radius <= 0:
		return fmt.Errorf("config %s: player radius must be positive", source)
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".beatdodge", "configs", filename)
}
