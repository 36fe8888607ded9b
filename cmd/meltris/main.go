// meltris is a falling-block puzzle game for the terminal where placed
// blocks slowly melt away.
//
// Usage:
//
//	meltris list              - List available modes
//	meltris play [mode]       - Play a mode (default: meltris)
//	meltris menu              - Start menu to pick a mode interactively
//	meltris serve             - Start SSH server for remote play
//	meltris scores [mode]     - Show high scores
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.meltris/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import modes to register them
	_ "github.com/vovakirdan/meltris/internal/games/meltris"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "meltris",
	Short: "Meltris - falling blocks that melt",
	Long: `Meltris is a falling-block puzzle for the terminal.

Placed blocks start as ice, turn to slush and finally melt into water,
leaving holes behind. Clear lines before the well fills up.

Available commands:
  list     - Show all available modes
  play     - Play a mode directly
  menu     - Interactive mode picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores

Examples:
  meltris list
  meltris play
  meltris play meltris_ultra --difficulty hard
  meltris menu
  meltris serve --ssh :2222
  meltris scores`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.meltris/scores.db", "Path to scores database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
