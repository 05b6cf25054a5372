package formatter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ac1714/chirp/internal/services"
	th "github.com/ac1714/chirp/internal/testing"
)

func sampleTracks() []services.Track {
	return []services.Track{
		{
			ID:         "track1",
			Title:      "Song One",
			Artist:     "Artist One",
			Album:      "Album One",
			Duration:   "3:00",
			Popularity: 80,
			PreviewURL: "https://p.scdn.co/mp3-preview/track1",
		},
		{
			ID:         "track2",
			Title:      "Song, With Comma",
			Artist:     "Artist Two",
			Album:      "",
			Duration:   "4:00",
			Popularity: 40,
		},
	}
}

func TestExporters(t *testing.T) {
	t.Run("TracksToCSV", func(t *testing.T) {
		data, err := TracksToCSV(sampleTracks())
		if err != nil {
			t.Fatalf("TracksToCSV failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "ID,Title,Artist,Album,Duration,Popularity,Preview") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "track1") {
			t.Errorf("CSV missing track1 ID")
		}
		if !strings.Contains(output, "Song One") {
			t.Errorf("CSV missing track1 title")
		}
		if !strings.Contains(output, `"Song, With Comma"`) {
			t.Errorf("CSV should quote fields containing commas, got: %s", output)
		}

		records, err := csv.NewReader(strings.NewReader(output)).ReadAll()
		if err != nil {
			t.Fatalf("generated CSV failed to parse: %v", err)
		}
		if len(records) != 3 {
			t.Errorf("expected header plus 2 rows, got %d", len(records))
		}
		if records[1][5] != "80" {
			t.Errorf("expected popularity column 80, got %s", records[1][5])
		}
	})

	t.Run("TracksToCSV Empty", func(t *testing.T) {
		data, err := TracksToCSV(nil)
		if err != nil {
			t.Fatalf("TracksToCSV failed: %v", err)
		}
		if !strings.HasPrefix(string(data), "ID,Title") {
			t.Errorf("expected headers for empty input, got: %s", string(data))
		}
	})

	t.Run("TracksToText", func(t *testing.T) {
		output := string(TracksToText("test query", sampleTracks()))

		if !strings.Contains(output, "Results for: test query") {
			t.Errorf("text missing query header, got: %s", output)
		}
		if !strings.Contains(output, "Tracks: 2") {
			t.Errorf("text missing track count, got: %s", output)
		}
		if !strings.Contains(output, "1. Artist One - Song One (Album One) [3:00]") {
			t.Errorf("text missing numbered entry, got: %s", output)
		}
		if strings.Contains(output, "()") {
			t.Errorf("empty album should omit parentheses, got: %s", output)
		}
	})

	t.Run("ArtistsToText", func(t *testing.T) {
		artists := []services.Artist{
			{Name: "Artist One", Popularity: 90},
			{Name: "Artist Two", Popularity: 10},
		}

		output := string(ArtistsToText("test query", artists))

		if !strings.Contains(output, "Artists for: test query") {
			t.Errorf("text missing query header, got: %s", output)
		}
		if !strings.Contains(output, "1. Artist One (popularity 90)") {
			t.Errorf("text missing artist entry, got: %s", output)
		}
	})

	t.Run("WriteTracksCSV", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.csv")

		written, err := WriteTracksCSV("test query", sampleTracks(), path)
		if err != nil {
			t.Fatalf("WriteTracksCSV failed: %v", err)
		}
		if written != path {
			t.Errorf("expected path %s, got %s", path, written)
		}

		th.AssertFileExists(t, path)

		content := th.MustReadFile(t, path)
		if !strings.Contains(content, "Song One") {
			t.Errorf("file missing track data, got: %s", content)
		}
	})

	t.Run("WriteTracksCSV Default Path", func(t *testing.T) {
		wd := th.MustGetwd(t)
		th.MustChdir(t, t.TempDir())
		defer th.MustChdir(t, wd)

		written, err := WriteTracksCSV("myquery", sampleTracks(), "")
		if err != nil {
			t.Fatalf("WriteTracksCSV failed: %v", err)
		}
		if written != "myquery_tracks.csv" {
			t.Errorf("expected default filename, got %s", written)
		}
		if _, err := os.Stat(written); err != nil {
			t.Errorf("expected default file to exist: %v", err)
		}
	})
}
