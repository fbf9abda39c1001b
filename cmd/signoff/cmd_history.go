package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"signoff/internal/store"
)

var (
	historyDBPath string
	historyLimit  int
)

// historyCmd lists recent recorded runs from the history database.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent recorded checklist runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := store.Open(historyDBPath)
		if err != nil {
			return err
		}
		defer h.Close()

		entries, err := h.Recent(historyLimit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("no recorded runs")
			return nil
		}
		for _, e := range entries {
			fmt.Printf("%s  %-4s  %-30s  %s  %s\n",
				e.CreatedAt.Format("2006-01-02 15:04:05"),
				e.Status, e.CheckerID, shortID(e.RunID), e.Reason)
		}
		return nil
	},
}

// shortID abbreviates a run id for the listing. Rows are not guaranteed
// to hold UUIDs; the database may predate this binary.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	historyCmd.Flags().StringVar(&historyDBPath, "db", "", "history database path (required)")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 50, "maximum entries to list")
	_ = historyCmd.MarkFlagRequired("db")
}
