// package formatter provides functions to export search results to various formats (CSV, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/ac1714/chirp/internal/services"
)

// TracksToCSV converts transformed tracks to CSV with columns: ID, Title, Artist, Album, Duration, Popularity, Preview
func TracksToCSV(tracks []services.Track) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artist", "Album", "Duration", "Popularity", "Preview"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range tracks {
		record := []string{
			track.ID,
			track.Title,
			track.Artist,
			track.Album,
			track.Duration,
			strconv.Itoa(track.Popularity),
			track.PreviewURL,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// TracksToText converts transformed tracks to a plain text listing.
func TracksToText(query string, tracks []services.Track) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Results for: %s\n", query))
	buf.WriteString(fmt.Sprintf("Tracks: %d\n\n", len(tracks)))

	for i, track := range tracks {
		albumPart := ""
		if track.Album != "" {
			albumPart = fmt.Sprintf(" (%s)", track.Album)
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s%s [%s]\n", i+1, track.Artist, track.Title, albumPart, track.Duration))
	}

	return buf.Bytes()
}

// ArtistsToText converts transformed artists to a plain text listing.
func ArtistsToText(query string, artists []services.Artist) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Artists for: %s\n\n", query))
	for i, artist := range artists {
		buf.WriteString(fmt.Sprintf("%d. %s (popularity %d)\n", i+1, artist.Name, artist.Popularity))
	}

	return buf.Bytes()
}

// WriteTracksCSV exports tracks to a CSV file. Defaults to
// "<query>_tracks.csv" when no path is given.
func WriteTracksCSV(query string, tracks []services.Track, filepath string) (string, error) {
	if filepath == "" {
		filepath = fmt.Sprintf("%s_tracks.csv", query)
	}

	data, err := TracksToCSV(tracks)
	if err != nil {
		return "", fmt.Errorf("failed to generate CSV: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write CSV file: %w", err)
	}

	return filepath, nil
}
