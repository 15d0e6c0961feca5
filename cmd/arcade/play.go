package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/pachinko-arcade/internal/config"
	"github.com/vovakirdan/pachinko-arcade/internal/core"
	"github.com/vovakirdan/pachinko-arcade/internal/games/launcher"
	"github.com/vovakirdan/pachinko-arcade/internal/games/pachinko"
	"github.com/vovakirdan/pachinko-arcade/internal/platform/tui"
	"github.com/vovakirdan/pachinko-arcade/internal/registry"
	"github.com/vovakirdan/pachinko-arcade/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Mouse        - Move the basket / aim the launcher
  Click        - Launch (launcher) or restart after game over
  A/D, Left/Right - Move basket / turn launcher
  Space        - Launch (launcher) or restart after game over
  P            - Pause
  R            - Restart with a new seed (after game over)
  B/Esc        - Back (when paused or game over)
  Q/Ctrl+C     - Quit

Difficulty options (pachinko, peggle):
  easy   - 5 lives, wide basket, gentle ramp
  normal - Default ramp
  hard   - 2 lives, narrow basket, starts fast
  fixed  - No progression, spawn rate stays as configured

Examples:
  arcade play pachinko
  arcade play peggle --difficulty hard
  arcade play pachinko --difficulty fixed
  arcade play pachinko --config ./my-pachinko.yaml
  arcade play launcher`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// configureGame validates the CLI config flags for gameID and hands them to
// the game package before the game is created.
func configureGame(gameID string) error {
	switch gameID {
	case "pachinko", "peggle":
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return err
		}
		cfg, err := config.LoadPachinko(gameID, flagConfig)
		if err != nil {
			return err
		}
		config.ApplyPachinkoPreset(&cfg, preset)
		if err := cfg.Validate(); err != nil {
			return err
		}
		pachinko.SetConfigPath(flagConfig)
		pachinko.SetDifficultyPreset(flagDifficulty)
	case "launcher":
		if _, err := config.LoadLauncher(flagConfig); err != nil {
			return err
		}
		launcher.SetConfigPath(flagConfig)
	}
	return nil
}

// runtimeConfig builds the runtime config from flags and the terminal size.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the scores database. Games still run without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'arcade list' to see available games)", gameID)
	}
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	if err := configureGame(gameID); err != nil {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if _, err := tui.Run(game, store, runtimeConfig(), logger); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
