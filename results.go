package main

import (
	"fmt"
	"strings"

	"github.com/Ali-Parandeh/tanks/storage"
	"github.com/spf13/cobra"
)

var flagLimit int

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Show recent matches and win totals",
	Long: `Display the most recent matches with their final scores, followed by
match and round wins per player across every match played.

Examples:
  tanks results
  tanks results --limit 20`,
	Args: cobra.NoArgs,
	RunE: runResults,
}

func init() {
	resultsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of matches to list")
}

func runResults(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("open results database: %w", err)
	}
	defer store.Close()

	matches, err := store.RecentMatches(flagLimit)
	if err != nil {
		return fmt.Errorf("load matches: %w", err)
	}
	totals, err := store.WinsByPlayer()
	if err != nil {
		return fmt.Errorf("load totals: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(matches) == 0 {
		fmt.Fprintln(out, "No matches recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Run 'tanks' to play one!")
		return nil
	}

	fmt.Fprintln(out, "Recent matches")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-16s  %-10s  %-6s  %s\n", "Date", "Winner", "Rounds", "Score")
	fmt.Fprintf(out, "  %-16s  %-10s  %-6s  %s\n", "----", "------", "------", "-----")
	for _, m := range matches {
		scores := make([]string, 0, len(m.Scores))
		for _, s := range m.Scores {
			scores = append(scores, fmt.Sprintf("%s %d", s.Name, s.Wins))
		}
		fmt.Fprintf(out, "  %-16s  %-10s  %-6d  %s\n",
			m.PlayedAt.Format("2006-01-02 15:04"), m.WinnerName, m.Rounds, strings.Join(scores, ", "))
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-10s  %-7s  %s\n", "Player", "Matches", "Rounds")
	fmt.Fprintf(out, "  %-10s  %-7s  %s\n", "------", "-------", "------")
	for _, t := range totals {
		fmt.Fprintf(out, "  %-10s  %-7d  %d\n", t.Name, t.MatchWins, t.RoundWins)
	}
	return nil
}
