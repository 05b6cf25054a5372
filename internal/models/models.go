// package models defines the persisted data model for play history and the track cache
package models

import (
	"fmt"
	"time"

	"github.com/ac1714/chirp/internal/services"
)

// Model defines the base interface for persistent records.
type Model interface {
	ID() string      // ID returns the unique identifier for this record
	Validate() error // Validate checks if the record's data is valid and returns an error if not
}

// PlayRecord is one started preview playback.
type PlayRecord struct {
	RecordID string
	TrackID  string
	Title    string
	Artist   string
	Album    string
	Query    string
	PlayedAt time.Time
}

// NewPlayRecord builds a PlayRecord from a transformed track.
func NewPlayRecord(id string, track services.Track) *PlayRecord {
	return &PlayRecord{
		RecordID: id,
		TrackID:  track.ID,
		Title:    track.Title,
		Artist:   track.Artist,
		Album:    track.Album,
		Query:    track.Query,
		PlayedAt: time.Now().UTC(),
	}
}

func (r *PlayRecord) ID() string { return r.RecordID }

func (r *PlayRecord) Validate() error {
	if r.RecordID == "" {
		return fmt.Errorf("play record missing id")
	}
	if r.TrackID == "" {
		return fmt.Errorf("play record missing track id")
	}
	if r.Title == "" {
		return fmt.Errorf("play record missing title")
	}
	return nil
}

// CachedTrack is a transformed track persisted for offline listing.
type CachedTrack struct {
	TrackID    string
	Title      string
	Artist     string
	Album      string
	PreviewURL string
	DurationMS int
	Popularity int
	CachedAt   time.Time
}

// NewCachedTrack builds a CachedTrack from a transformed track.
func NewCachedTrack(track services.Track) *CachedTrack {
	return &CachedTrack{
		TrackID:    track.ID,
		Title:      track.Title,
		Artist:     track.Artist,
		Album:      track.Album,
		PreviewURL: track.PreviewURL,
		DurationMS: track.DurationMS,
		Popularity: track.Popularity,
		CachedAt:   time.Now().UTC(),
	}
}

func (t *CachedTrack) ID() string { return t.TrackID }

func (t *CachedTrack) Validate() error {
	if t.TrackID == "" {
		return fmt.Errorf("cached track missing id")
	}
	if t.Title == "" {
		return fmt.Errorf("cached track missing title")
	}
	return nil
}
