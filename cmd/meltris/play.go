package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/meltris/internal/config"
	"github.com/vovakirdan/meltris/internal/core"
	"github.com/vovakirdan/meltris/internal/games/meltris"
	"github.com/vovakirdan/meltris/internal/platform/tui"
	"github.com/vovakirdan/meltris/internal/registry"
	"github.com/vovakirdan/meltris/internal/storage"
)

const defaultMode = "meltris"

var (
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the specified mode (default: meltris).

Modes:
  meltris        - Marathon, play until the well tops out
  meltris_ultra  - Score as much as possible before the clock runs out

Controls:
  Left/Right, H/L  - Move
  Down, J          - Soft drop
  Space            - Hard drop
  Up, X            - Rotate clockwise
  Z                - Rotate counter-clockwise
  C                - Hold
  Enter            - Start round
  P/Esc            - Pause
  R                - Restart
  B                - Back to menu (paused or game over)
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Slower melting and a longer lock delay
  normal - Default settings
  hard   - Start at level 5, blocks melt twice as fast
  fixed  - Level never increases

Examples:
  meltris play
  meltris play meltris_ultra
  meltris play --difficulty hard
  meltris play --config ./my-meltris.yaml
  meltris play --log ./meltris.log`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom meltris config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagLogFile, "log", "", "Write debug logs to this file")

	menuCmd.Flags().AddFlagSet(playCmd.Flags())
}

// applyGameFlags hands the play flags to the game package.
// The returned func closes the log file, if any.
func applyGameFlags() (func(), error) {
	if flagDifficulty != "" {
		if _, ok := config.ParseDifficultyPreset(flagDifficulty); !ok {
			return nil, fmt.Errorf("unknown difficulty %q", flagDifficulty)
		}
	}
	meltris.SetConfigPath(flagConfig)
	meltris.SetDifficultyPreset(flagDifficulty)

	if flagLogFile == "" {
		return func() {}, nil
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	meltris.SetLogger(log.NewWithOptions(f, log.Options{
		Level:           log.DebugLevel,
		ReportTimestamp: true,
		Prefix:          "meltris",
	}))
	return func() { f.Close() }, nil
}

// runtimeConfig builds the runtime config from global flags and the terminal size.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:    width,
		ScreenH:    height,
		TickRate:   flagFPS,
		Seed:       flagSeed,
		Difficulty: flagDifficulty,
	}
}

// openStore opens the scores database; failures only disable score saving.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := defaultMode
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'meltris list' to see available modes.")
		os.Exit(1)
	}

	closeLog, err := applyGameFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore()

	_, runErr := tui.Run(game, store, runtimeConfig())

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		closeLog()
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
