package services

import (
	"fmt"
	"math"
	"sort"
)

// PlaceholderThumbnail is a 1x1 transparent PNG used when a catalog
// record carries no usable image.
const PlaceholderThumbnail = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mN49uz/fwAJTAPLQuEFBAAAAABJRU5ErkJggg=="

// Artist is the client's normalized artist shape. Query is the search
// term that produced the match, stamped at transform time; the UI uses it
// for grouping, never for playback.
type Artist struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Popularity int    `json:"popularity"`
	SpotifyURL string `json:"spotify_link"`
	Query      string `json:"query"`
	Thumbnail  string `json:"thumbnail"`
}

// Track is the client's normalized track shape.
type Track struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	Album      string `json:"album"`
	Type       string `json:"type"`
	Popularity int    `json:"popularity"`
	PreviewURL string `json:"preview"`
	Duration   string `json:"duration"`
	DurationMS int    `json:"duration_ms"`
	Query      string `json:"query"`
	Thumbnail  string `json:"thumbnail"`
}

// HasPreview reports whether the track carries a playable preview clip.
func (t Track) HasPreview() bool {
	return t.PreviewURL != ""
}

// MillisToMinutesAndSeconds converts a millisecond duration to an m:ss
// label. Seconds are rounded half away from zero and zero-padded below
// ten. A rounding that lands on 60 is kept as ":60" rather than carried
// into the minutes component, matching the upstream catalog clients this
// display format was lifted from.
func MillisToMinutesAndSeconds(millis int) string {
	minutes := millis / 60000
	seconds := int(math.Round(float64(millis%60000) / 1000))
	if seconds < 10 {
		return fmt.Sprintf("%d:0%d", minutes, seconds)
	}
	return fmt.Sprintf("%d:%d", minutes, seconds)
}

// TransformArtists converts raw catalog artist records into ranked
// [Artist] values. Pure: missing images degrade to the placeholder
// thumbnail instead of failing.
func TransformArtists(items []SpotifyArtist, query string) []Artist {
	artists := make([]Artist, 0, len(items))
	for _, obj := range items {
		artists = append(artists, Artist{
			ID:         obj.ID,
			Name:       obj.Name,
			Type:       obj.Type,
			Popularity: obj.Popularity,
			SpotifyURL: obj.ExternalURLs.Spotify,
			Query:      query,
			Thumbnail:  thumbnailOf(obj.Images),
		})
	}

	sort.SliceStable(artists, func(i, j int) bool {
		return artists[i].Popularity > artists[j].Popularity
	})
	return artists
}

// TransformTracks converts raw catalog track records into ranked [Track]
// values. Absent artist or album sub-objects degrade to empty strings,
// an absent preview URL stays empty.
func TransformTracks(items []SpotifyTrack, query string) []Track {
	tracks := make([]Track, 0, len(items))
	for _, obj := range items {
		track := Track{
			ID:         obj.ID,
			Title:      obj.Name,
			Album:      obj.Album.Name,
			Type:       obj.Type,
			Popularity: obj.Popularity,
			PreviewURL: obj.PreviewURL,
			Duration:   MillisToMinutesAndSeconds(obj.DurationMS),
			DurationMS: obj.DurationMS,
			Query:      query,
			Thumbnail:  thumbnailOf(obj.Album.Images),
		}
		if len(obj.Artists) > 0 {
			track.Artist = obj.Artists[0].Name
		}
		tracks = append(tracks, track)
	}

	sort.SliceStable(tracks, func(i, j int) bool {
		return tracks[i].Popularity > tracks[j].Popularity
	})
	return tracks
}

// thumbnailOf picks the smallest image variant (index 2 in the catalog's
// large/medium/small ordering), falling back to the placeholder.
func thumbnailOf(images []SpotifyImage) string {
	if len(images) > 2 {
		return images[2].URL
	}
	return PlaceholderThumbnail
}
