package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/ac1714/chirp/internal/formatter"
	"github.com/ac1714/chirp/internal/services"
	"github.com/ac1714/chirp/internal/shared"
	"github.com/urfave/cli/v3"
)

// Search runs a full track search and prints the ranked results.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")

	if err := r.requireAuth(); err != nil {
		return err
	}

	r.logger.Info("searching tracks", "query", query)

	tracks, err := r.pipeline.SearchByQuery(ctx, query)
	if err != nil {
		if errors.Is(err, shared.ErrEmptyQuery) {
			return fmt.Errorf("%w: provide a search query", shared.ErrEmptyQuery)
		}
		return err
	}

	r.logger.Infof("found %v tracks", len(tracks))

	return r.emitTracks(cmd, query, tracks)
}

// ArtistTopTracks fetches and prints an artist's most popular tracks.
func (r *Runner) ArtistTopTracks(ctx context.Context, cmd *cli.Command) error {
	artistID := cmd.StringArg("id")
	if artistID == "" {
		return fmt.Errorf("%w: artist ID", shared.ErrMissingArgument)
	}

	if err := r.requireAuth(); err != nil {
		return err
	}

	r.logger.Info("fetching top tracks", "artist", artistID)

	tracks, err := r.pipeline.ArtistTopTracks(ctx, artistID, artistID)
	if err != nil {
		return err
	}

	return r.emitTracks(cmd, artistID, tracks)
}

// TrackDetails fetches and prints a single track.
func (r *Runner) TrackDetails(ctx context.Context, cmd *cli.Command) error {
	trackID := cmd.StringArg("id")
	if trackID == "" {
		return fmt.Errorf("%w: track ID", shared.ErrMissingArgument)
	}

	if err := r.requireAuth(); err != nil {
		return err
	}

	track, err := r.pipeline.TrackByID(ctx, trackID, trackID)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(track, cmd.Bool("pretty"))
	}

	r.writePlain("%s — %s\n", track.Artist, track.Title)
	if track.Album != "" {
		r.writePlain("Album: %s\n", track.Album)
	}
	r.writePlain("Duration: %s\n", track.Duration)
	r.writePlain("Popularity: %d\n", track.Popularity)
	if track.HasPreview() {
		r.writePlain("Preview: %s\n", track.PreviewURL)
	} else {
		r.writePlain("Preview: unavailable\n")
	}
	return nil
}

// emitTracks prints tracks as text, JSON, or CSV depending on flags.
func (r *Runner) emitTracks(cmd *cli.Command, query string, tracks []services.Track) error {
	if csvPath := cmd.String("csv"); csvPath != "" {
		written, err := formatter.WriteTracksCSV(query, tracks, csvPath)
		if err != nil {
			return fmt.Errorf("failed to write CSV: %w", err)
		}
		return r.writePlain("✓ Results written to %s\n", written)
	}

	if cmd.Bool("json") {
		return r.writeJSON(tracks, cmd.Bool("pretty"))
	}

	if _, err := r.output.Write(formatter.TracksToText(query, tracks)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
