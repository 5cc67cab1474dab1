// tanks is a local multiplayer tank battle.
//
// Usage:
//
//	tanks                 - Start a match
//	tanks results         - Show recent matches and win totals
//
// Flags:
//
//	--players <n>   - Human players on the keyboard and gamepads (default: 2)
//	--bots <n>      - Script-driven tanks (default: 0)
//	--watch         - Reload prefabs/ when files change
//	--db <path>     - Results database (default: ~/.tanks/results.db)
package main

import (
	"fmt"
	"os"

	"github.com/Ali-Parandeh/tanks/storage"
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
)

var (
	flagPlayers int
	flagBots    int
	flagDebug   bool
	flagWatch   bool
	flagMonitor bool
	flagDBPath  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tanks",
	Short: "Local multiplayer tank battle",
	Long: `Two to four tanks fight it out in a walled arena. The first tank to
win five rounds takes the match.

Controls:
  Player 1   - WASD to drive, Space to fire
  Player 2   - Arrow keys to drive, Enter to fire
  Player 3   - IJKL to drive, Right Shift to fire
  Player 4   - Numpad 8456 to drive, Numpad 0 to fire
  Gamepads   - Left stick to drive, A to fire
  Esc        - Pause

Examples:
  tanks
  tanks --players 1 --bots 3
  tanks --watch --debug
  tanks results`,
	Args:              cobra.NoArgs,
	PersistentPreRunE: setupLogging,
	RunE:              runGame,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Verbose logging and on-screen stats")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tanks/results.db", "Path to results database")

	rootCmd.Flags().IntVar(&flagPlayers, "players", 2, "Number of human players")
	rootCmd.Flags().IntVar(&flagBots, "bots", 0, "Number of bot tanks")
	rootCmd.Flags().BoolVar(&flagWatch, "watch", false, "Hot reload prefabs from disk")
	rootCmd.Flags().BoolVarP(&flagMonitor, "monitor", "m", false, "Open on the first monitor instead of the primary one")

	rootCmd.AddCommand(resultsCmd)
}

func setupLogging(cmd *cobra.Command, args []string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "tanks",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	log.SetDefault(logger)
	return nil
}

func runGame(cmd *cobra.Command, args []string) error {
	if flagPlayers < 0 || flagBots < 0 {
		return fmt.Errorf("--players and --bots must not be negative")
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		// play on without history
		log.Warn("could not open results database", "err", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	game, err := NewGame(GameOptions{
		Players: flagPlayers,
		Bots:    flagBots,
		Debug:   flagDebug,
		Watch:   flagWatch,
	}, store)
	if err != nil {
		return err
	}
	defer game.Close()

	if flagMonitor {
		if m, ok := firstMonitor(ebiten.AppendMonitors(nil)); ok {
			ebiten.SetMonitor(m)
		} else {
			log.Warn("no monitors reported, using the primary one")
		}
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowTitle("tanks")
	ebiten.SetTPS(tps)

	return ebiten.RunGame(game)
}

func firstMonitor(monitors []*ebiten.MonitorType) (*ebiten.MonitorType, bool) {
	if len(monitors) == 0 || monitors[0] == nil {
		return nil, false
	}
	return monitors[0], true
}
