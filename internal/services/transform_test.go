package services

import "testing"

func TestMillisToMinutesAndSeconds(t *testing.T) {
	cases := []struct {
		name   string
		millis int
		want   string
	}{
		{"Zero", 0, "0:00"},
		{"Sub Second Rounds Up", 500, "0:01"},
		{"Sub Second Rounds Down", 400, "0:00"},
		{"One Second", 1000, "0:01"},
		{"Padded Seconds", 9000, "0:09"},
		{"Unpadded Seconds", 10000, "0:10"},
		{"Exact Minute", 60000, "1:00"},
		{"Rounds To Sixty Without Carry", 59999, "0:60"},
		{"Rounds To Sixty Past A Minute", 119800, "1:60"},
		{"Typical Track", 214000, "3:34"},
		{"Ten Minutes", 600000, "10:00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MillisToMinutesAndSeconds(tc.millis)
			if got != tc.want {
				t.Errorf("MillisToMinutesAndSeconds(%d) = %q, want %q", tc.millis, got, tc.want)
			}
		})
	}
}

func TestTransformArtists(t *testing.T) {
	t.Run("Sorts By Popularity Descending", func(t *testing.T) {
		items := []SpotifyArtist{
			{ID: "a", Name: "Low", Popularity: 10},
			{ID: "b", Name: "High", Popularity: 90},
			{ID: "c", Name: "Mid", Popularity: 50},
		}

		artists := TransformArtists(items, "query")
		if len(artists) != 3 {
			t.Fatalf("expected 3 artists, got %d", len(artists))
		}

		wantOrder := []string{"High", "Mid", "Low"}
		for i, want := range wantOrder {
			if artists[i].Name != want {
				t.Errorf("position %d: expected %s, got %s", i, want, artists[i].Name)
			}
		}
	})

	t.Run("Stable For Equal Popularity", func(t *testing.T) {
		items := []SpotifyArtist{
			{ID: "first", Popularity: 50},
			{ID: "second", Popularity: 50},
			{ID: "third", Popularity: 50},
		}

		artists := TransformArtists(items, "query")
		for i, want := range []string{"first", "second", "third"} {
			if artists[i].ID != want {
				t.Errorf("position %d: expected %s, got %s", i, want, artists[i].ID)
			}
		}
	})

	t.Run("Thumbnail Prefers Third Image", func(t *testing.T) {
		items := []SpotifyArtist{
			{ID: "a", Images: []SpotifyImage{
				{URL: "large"}, {URL: "medium"}, {URL: "small"},
			}},
		}

		artists := TransformArtists(items, "query")
		if artists[0].Thumbnail != "small" {
			t.Errorf("expected smallest image variant, got %s", artists[0].Thumbnail)
		}
	})

	t.Run("Placeholder When Images Missing", func(t *testing.T) {
		for _, images := range [][]SpotifyImage{nil, {{URL: "only"}}, {{URL: "a"}, {URL: "b"}}} {
			artists := TransformArtists([]SpotifyArtist{{ID: "a", Images: images}}, "query")
			if artists[0].Thumbnail != PlaceholderThumbnail {
				t.Errorf("expected placeholder for %d images, got %s", len(images), artists[0].Thumbnail)
			}
		}
	})

	t.Run("Stamps Query", func(t *testing.T) {
		artists := TransformArtists([]SpotifyArtist{{ID: "a"}}, "the query")
		if artists[0].Query != "the query" {
			t.Errorf("expected query stamp, got %s", artists[0].Query)
		}
	})
}

func TestTransformTracks(t *testing.T) {
	t.Run("Full Record", func(t *testing.T) {
		items := []SpotifyTrack{
			{
				ID:         "t1",
				Name:       "Song",
				Type:       "track",
				Popularity: 70,
				PreviewURL: "https://p.scdn.co/mp3-preview/t1",
				DurationMS: 214000,
				Artists:    []SpotifyArtist{{Name: "Primary"}, {Name: "Featured"}},
				Album: SpotifyAlbum{
					Name:   "Record",
					Images: []SpotifyImage{{URL: "l"}, {URL: "m"}, {URL: "s"}},
				},
			},
		}

		tracks := TransformTracks(items, "query")
		track := tracks[0]

		if track.Artist != "Primary" {
			t.Errorf("expected first artist name, got %s", track.Artist)
		}
		if track.Album != "Record" {
			t.Errorf("expected album name, got %s", track.Album)
		}
		if track.Duration != "3:34" {
			t.Errorf("expected duration 3:34, got %s", track.Duration)
		}
		if track.Thumbnail != "s" {
			t.Errorf("expected album thumbnail, got %s", track.Thumbnail)
		}
		if !track.HasPreview() {
			t.Error("expected preview to be available")
		}
	})

	t.Run("Degrades Missing Fields", func(t *testing.T) {
		tracks := TransformTracks([]SpotifyTrack{{ID: "t1", Name: "Bare"}}, "query")
		track := tracks[0]

		if track.Artist != "" {
			t.Errorf("expected empty artist, got %s", track.Artist)
		}
		if track.Album != "" {
			t.Errorf("expected empty album, got %s", track.Album)
		}
		if track.Thumbnail != PlaceholderThumbnail {
			t.Errorf("expected placeholder thumbnail, got %s", track.Thumbnail)
		}
		if track.HasPreview() {
			t.Error("expected no preview")
		}
		if track.Duration != "0:00" {
			t.Errorf("expected zero duration label, got %s", track.Duration)
		}
	})

	t.Run("Sorts By Popularity Descending", func(t *testing.T) {
		items := []SpotifyTrack{
			{ID: "low", Popularity: 1},
			{ID: "high", Popularity: 99},
			{ID: "tie_first", Popularity: 40},
			{ID: "tie_second", Popularity: 40},
		}

		tracks := TransformTracks(items, "query")
		for i, want := range []string{"high", "tie_first", "tie_second", "low"} {
			if tracks[i].ID != want {
				t.Errorf("position %d: expected %s, got %s", i, want, tracks[i].ID)
			}
		}
	})

	t.Run("Empty Input", func(t *testing.T) {
		tracks := TransformTracks(nil, "query")
		if len(tracks) != 0 {
			t.Errorf("expected empty slice, got %d tracks", len(tracks))
		}
	})
}
