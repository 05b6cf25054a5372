package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/ac1714/chirp/internal/models"
	"github.com/ac1714/chirp/internal/services"
)

// TrackCacheRepository persists transformed tracks for offline listing,
// deduplicated on the catalog track ID.
type TrackCacheRepository struct {
	db *sql.DB
}

// NewTrackCacheRepository creates a new TrackCacheRepository with the given database connection
func NewTrackCacheRepository(db *sql.DB) *TrackCacheRepository {
	return &TrackCacheRepository{db: db}
}

// Cache stores a track. Returns nil if the track is already cached;
// only actual failures surface as errors.
func (r *TrackCacheRepository) Cache(track services.Track) error {
	cached := models.NewCachedTrack(track)
	if err := cached.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO track_cache (track_id, title, artist, album, preview_url, duration_ms, popularity, cached_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		cached.TrackID,
		cached.Title,
		cached.Artist,
		cached.Album,
		cached.PreviewURL,
		cached.DurationMS,
		cached.Popularity,
		cached.CachedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil
		}
		return fmt.Errorf("failed to cache track: %w", err)
	}

	return nil
}

// CacheAll stores every track in the slice, stopping at the first failure.
func (r *TrackCacheRepository) CacheAll(tracks []services.Track) error {
	for _, track := range tracks {
		if err := r.Cache(track); err != nil {
			return err
		}
	}
	return nil
}

// Get retrieves a cached track by catalog ID. Returns (nil, nil) when
// the track is not cached.
func (r *TrackCacheRepository) Get(trackID string) (*models.CachedTrack, error) {
	query := `
		SELECT track_id, title, artist, album, preview_url, duration_ms, popularity, cached_at
		FROM track_cache
		WHERE track_id = ?
	`

	var cached models.CachedTrack
	err := r.db.QueryRow(query, trackID).Scan(
		&cached.TrackID,
		&cached.Title,
		&cached.Artist,
		&cached.Album,
		&cached.PreviewURL,
		&cached.DurationMS,
		&cached.Popularity,
		&cached.CachedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached track: %w", err)
	}

	return &cached, nil
}
