package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresAll   bool
	flagScoresClear bool
	flagScoresRun   string
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores",
	Long: `Display the top scores for a game mode (default: tetris).

Examples:
  tetris scores
  tetris scores tetris_classic --limit 20
  tetris scores --all
  tetris scores --run 6f1c2a9e-3b4d-4e5f-8a7b-1c2d3e4f5a6b
  tetris scores tetris --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "Show a summary of every game mode")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores of the game")
	scoresCmd.Flags().StringVar(&flagScoresRun, "run", "", "Show the result of one run by its ID")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := defaultGame
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'tetris list' to see available games", gameID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	switch {
	case flagScoresRun != "":
		return printRun(os.Stdout, store, flagScoresRun)
	case flagScoresAll:
		return printSummary(store)
	case flagScoresClear:
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared scores for %s.\n", gameID)
		return nil
	}
	return printScores(store, gameID)
}

func printScores(store *storage.Store, gameID string) error {
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'tetris play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-12s  %8s  %5s  %5s  %6s  %s\n", "Rank", "Player", "Score", "Lines", "Level", "Time", "Date")
	fmt.Printf("  %-4s  %-12s  %8s  %5s  %5s  %6s  %s\n", "----", "------", "-----", "-----", "-----", "----", "----")
	for i, e := range scores {
		fmt.Printf("  %-4d  %-12s  %8d  %5d  %5d  %6s  %s\n",
			i+1, e.Player, e.Score, e.Lines, e.Level,
			e.Duration.Round(time.Second), e.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if best, err := store.HighScore(gameID); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
	return nil
}

func printSummary(store *storage.Store) error {
	all, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}

	fmt.Println("Summary")
	fmt.Println()
	fmt.Printf("  %-16s  %6s  %8s  %8s  %6s  %5s  %s\n", "Game", "Games", "Best", "Avg", "Lines", "Level", "Last played")
	for _, g := range registry.List() {
		st, ok := all[g.ID]
		if !ok {
			fmt.Printf("  %-16s  %6d  %8s  %8s  %6s  %5s  %s\n", g.ID, 0, "-", "-", "-", "-", "-")
			continue
		}
		fmt.Printf("  %-16s  %6d  %8d  %8.0f  %6d  %5d  %s\n",
			g.ID, st.GamesCount, st.HighScore, st.AvgScore, st.TotalLines, st.BestLevel,
			st.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

func printRun(w io.Writer, store *storage.Store, runID string) error {
	e, err := store.ScoreByRun(runID)
	if err != nil {
		return err
	}
	if e == nil {
		return fmt.Errorf("no result recorded for run %s", runID)
	}

	rank, err := store.Rank(e.GameID, e.Score)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Run %s\n", e.RunID)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Game:    %s\n", e.GameID)
	fmt.Fprintf(w, "  Player:  %s\n", e.Player)
	fmt.Fprintf(w, "  Score:   %d (rank #%d)\n", e.Score, rank)
	fmt.Fprintf(w, "  Lines:   %d\n", e.Lines)
	fmt.Fprintf(w, "  Level:   %d\n", e.Level)
	fmt.Fprintf(w, "  Pieces:  %d\n", e.Pieces)
	fmt.Fprintf(w, "  Time:    %s\n", e.Duration.Round(time.Second))
	fmt.Fprintf(w, "  Date:    %s\n", e.CreatedAt.Format("2006-01-02 15:04"))
	return nil
}
