package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// load resolves a game config. Search order:
// customPath -> ~/.arcade/configs/<id>.yaml -> ./configs/<id>.yaml -> embedded default.
// Every file is decoded on top of base, so partial files only override the
// keys they set.
func load[T any](id, customPath string, embedded []byte, base T) (T, error) {
	// Custom path must exist and parse
	if customPath != "" {
		cfg := base
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	filename := id + ".yaml"
	candidates := []string{filepath.Join("configs", filename)}
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		candidates = append([]string{userCfgPath}, candidates...)
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg := base
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	cfg := base
	if err := yaml.Unmarshal(embedded, &cfg); err != nil {
		return base, nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// LoadPachinko loads and validates a pegboard config for the given variant
// ("pachinko" or "peggle").
func LoadPachinko(variant, customPath string) (PachinkoConfig, error) {
	var (
		base     PachinkoConfig
		embedded []byte
	)
	switch variant {
	case "peggle":
		base, embedded = DefaultPeggleConfig(), defaultPeggleYAML
	case "pachinko":
		base, embedded = DefaultPachinkoConfig(), defaultPachinkoYAML
	default:
		return PachinkoConfig{}, fmt.Errorf("config: unknown pegboard variant %q: %w", variant, ErrInvalidConfig)
	}

	cfg, err := load(variant, customPath, embedded, base)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLauncher loads and validates the launcher config.
func LoadLauncher(customPath string) (LauncherConfig, error) {
	cfg, err := load("launcher", customPath, defaultLauncherYAML, DefaultLauncherConfig())
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyPachinkoPreset modifies the config based on a difficulty preset.
func ApplyPachinkoPreset(cfg *PachinkoConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
		return
	}

	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 5
		cfg.Basket.Width = 150
	case DifficultyHard:
		cfg.Gameplay.Lives = 2
		cfg.Basket.Width = 100
	}
}
