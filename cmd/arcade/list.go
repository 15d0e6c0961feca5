package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/pachinko-arcade/internal/registry"
	"github.com/vovakirdan/pachinko-arcade/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows every registered game with how often it was played and its best score.`,
	RunE:  runList,
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func runList(_ *cobra.Command, _ []string) error {
	games := registry.List()
	if len(games) == 0 {
		fmt.Println("No games available.")
		return nil
	}

	// Stats are optional; an unreadable database just leaves the columns empty.
	var stats map[string]*storage.GameStats
	if store, err := storage.Open(flagDBPath); err == nil {
		stats, err = store.GetAllGamesStats()
		if err != nil {
			logger.Warn("could not read game stats", "error", err)
		}
		store.Close()
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("ID", "Title", "Played", "Best").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, g := range games {
		played, best := "-", "-"
		if gs, ok := stats[g.ID]; ok {
			played = strconv.Itoa(gs.GamesCount)
			best = strconv.Itoa(gs.HighScore)
		}
		t.Row(g.ID, g.Title, played, best)
	}

	fmt.Println(t.Render())
	fmt.Println()
	fmt.Println("Run 'arcade play <id>' to play a game.")
	return nil
}
