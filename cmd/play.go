package main

import (
	"context"
	"fmt"
	"time"

	"github.com/ac1714/chirp/internal/player"
	"github.com/ac1714/chirp/internal/shared"
	"github.com/urfave/cli/v3"
)

// Play fetches a track, plays its preview clip, and blocks until the
// clip finishes or the command is interrupted.
func (r *Runner) Play(ctx context.Context, cmd *cli.Command) error {
	trackID := cmd.StringArg("id")
	if trackID == "" {
		return fmt.Errorf("%w: track ID", shared.ErrMissingArgument)
	}

	if err := r.requireAuth(); err != nil {
		return err
	}

	if !player.AudioAvailable {
		return fmt.Errorf("%w: built without audio support", shared.ErrAudioUnavailable)
	}

	track, err := r.pipeline.TrackByID(ctx, trackID, trackID)
	if err != nil {
		return err
	}

	if !track.HasPreview() {
		return fmt.Errorf("%w: %s", shared.ErrNoPreview, track.Title)
	}

	r.logger.Info("playing preview", "track", track.Title, "artist", track.Artist)
	r.writePlain("♪ %s — %s [%s]\n", track.Artist, track.Title, track.Duration)

	if err := r.controller.Select(*track); err != nil {
		return err
	}

	db, history, cache, err := r.openHistory()
	if err != nil {
		r.logger.Warn("history unavailable", "error", err)
	} else {
		if _, err := history.Record(*track); err != nil {
			r.logger.Warn("failed to record play", "error", err)
		}
		if err := cache.Cache(*track); err != nil {
			r.logger.Warn("failed to cache track", "error", err)
		}
		db.Close()
	}

	// Preview clips are 30 seconds; poll until the controller goes idle.
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.controller.Stop()
			return ctx.Err()
		case <-ticker.C:
			if _, status := r.controller.Current(); status == player.Idle {
				return r.writePlain("✓ Done\n")
			}
		}
	}
}
