// package repositories provides the persistence layer for play history
// and the track cache.
package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ac1714/chirp/internal/models"
	"github.com/ac1714/chirp/internal/services"
	"github.com/ac1714/chirp/internal/shared"
)

// HistoryRepository records started preview playbacks.
type HistoryRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a new HistoryRepository with the given database connection
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Record inserts a play record for the given track with a generated ID.
func (r *HistoryRepository) Record(track services.Track) (*models.PlayRecord, error) {
	record := models.NewPlayRecord(shared.GenerateID(), track)

	if err := record.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO play_history (id, track_id, title, artist, album, query, played_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		record.RecordID,
		record.TrackID,
		record.Title,
		record.Artist,
		record.Album,
		record.Query,
		record.PlayedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert play record: %w", err)
	}

	return record, nil
}

// Recent returns the latest play records, newest first.
func (r *HistoryRepository) Recent(limit int) ([]models.PlayRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, track_id, title, artist, album, query, played_at
		FROM play_history
		ORDER BY played_at DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query play history: %w", err)
	}
	defer rows.Close()

	var records []models.PlayRecord
	for rows.Next() {
		var record models.PlayRecord
		var playedAt time.Time
		if err := rows.Scan(
			&record.RecordID,
			&record.TrackID,
			&record.Title,
			&record.Artist,
			&record.Album,
			&record.Query,
			&playedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan play record: %w", err)
		}
		record.PlayedAt = playedAt
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read play history: %w", err)
	}

	return records, nil
}

// Clear removes all play records.
func (r *HistoryRepository) Clear() error {
	if _, err := r.db.Exec("DELETE FROM play_history"); err != nil {
		return fmt.Errorf("failed to clear play history: %w", err)
	}
	return nil
}
