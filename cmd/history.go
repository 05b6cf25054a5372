package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// HistoryList prints recent plays, newest first.
func (r *Runner) HistoryList(ctx context.Context, cmd *cli.Command) error {
	limit := cmd.Int("limit")

	db, history, _, err := r.openHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	records, err := history.Recent(limit)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(records, cmd.Bool("pretty"))
	}

	if len(records) == 0 {
		return r.writePlain("No plays recorded yet\n")
	}

	for i, record := range records {
		r.writePlain("%d. %s — %s\n", i+1, record.Artist, record.Title)
		if record.Album != "" {
			r.writePlain("   Album: %s\n", record.Album)
		}
		r.writePlain("   Played: %s\n", record.PlayedAt.Format("2006-01-02 15:04"))
	}

	return nil
}

// HistoryClear deletes all recorded plays.
func (r *Runner) HistoryClear(ctx context.Context, cmd *cli.Command) error {
	db, history, _, err := r.openHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := history.Clear(); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	r.logger.Info("play history cleared")
	return r.writePlain("✓ History cleared\n")
}
