package search

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ac1714/chirp/internal/services"
	"github.com/ac1714/chirp/internal/shared"
)

const emptySearchBody = `{"artists": {"items": []}, "tracks": {"items": []}}`

type bearer struct{}

func (bearer) AccessToken() (string, error) { return "test_token", nil }

func newTestPipeline(t *testing.T, handler http.HandlerFunc) (*Pipeline, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := services.NewClient(srv.URL, srv.Client(), bearer{}, services.NewClassifier(nil))
	pipeline := NewPipeline(Options{
		Client: client,
		Rate:   time.Millisecond,
		Burst:  100,
	})
	return pipeline, srv
}

func TestSuggest(t *testing.T) {
	t.Run("Appends Wildcard And Limit", func(t *testing.T) {
		var gotQuery map[string][]string
		pipeline, _ := newTestPipeline(t, func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.Query()
			fmt.Fprint(w, `{
				"artists": {"items": [{"id": "a1", "name": "Artist"}]},
				"tracks": {"items": [{"id": "t1", "name": "Track"}]}
			}`)
		})

		result, err := pipeline.Suggest(context.Background(), SourceArtists, "hello")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if got := gotQuery["q"]; len(got) != 1 || got[0] != "hello*" {
			t.Errorf("expected wildcard query hello*, got %v", got)
		}
		if got := gotQuery["type"]; len(got) != 1 || got[0] != "artist,track" {
			t.Errorf("expected type=artist,track, got %v", got)
		}
		if got := gotQuery["limit"]; len(got) != 1 || got[0] != "10" {
			t.Errorf("expected limit=10, got %v", got)
		}

		if result.Source != SourceArtists {
			t.Errorf("expected artists source, got %s", result.Source)
		}
		if len(result.Artists) != 1 {
			t.Errorf("expected 1 artist, got %d", len(result.Artists))
		}
		if result.Tracks != nil {
			t.Error("expected tracks to stay empty for the artists source")
		}
	})

	t.Run("Tracks Source Populates Tracks", func(t *testing.T) {
		pipeline, _ := newTestPipeline(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{
				"artists": {"items": [{"id": "a1"}]},
				"tracks": {"items": [{"id": "t1", "name": "Track"}]}
			}`)
		})

		result, err := pipeline.Suggest(context.Background(), SourceTracks, "hello")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(result.Tracks) != 1 || result.Tracks[0].ID != "t1" {
			t.Errorf("unexpected tracks: %+v", result.Tracks)
		}
		if result.Artists != nil {
			t.Error("expected artists to stay empty for the tracks source")
		}
	})

	t.Run("Unknown Source", func(t *testing.T) {
		pipeline, _ := newTestPipeline(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, emptySearchBody)
		})

		_, err := pipeline.Suggest(context.Background(), "albums", "hello")
		if !errors.Is(err, shared.ErrUnknownSource) {
			t.Errorf("expected ErrUnknownSource, got %v", err)
		}
	})

	t.Run("Stale Response Discarded", func(t *testing.T) {
		release := make(chan struct{})
		pipeline, _ := newTestPipeline(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("q") == "first*" {
				<-release
			}
			fmt.Fprint(w, emptySearchBody)
		})

		firstErr := make(chan error, 1)
		go func() {
			_, err := pipeline.Suggest(context.Background(), SourceArtists, "first")
			firstErr <- err
		}()

		// Make sure the first request is in flight before superseding it.
		time.Sleep(50 * time.Millisecond)

		if _, err := pipeline.Suggest(context.Background(), SourceArtists, "second"); err != nil {
			t.Fatalf("expected fresh request to succeed, got %v", err)
		}

		close(release)

		if err := <-firstErr; !errors.Is(err, shared.ErrStaleResponse) {
			t.Errorf("expected ErrStaleResponse for superseded request, got %v", err)
		}
	})

	t.Run("Sources Are Independent", func(t *testing.T) {
		release := make(chan struct{})
		pipeline, _ := newTestPipeline(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("q") == "slow*" {
				<-release
			}
			fmt.Fprint(w, emptySearchBody)
		})

		slowErr := make(chan error, 1)
		go func() {
			_, err := pipeline.Suggest(context.Background(), SourceArtists, "slow")
			slowErr <- err
		}()

		time.Sleep(50 * time.Millisecond)

		// A newer request on the other source must not invalidate it.
		if _, err := pipeline.Suggest(context.Background(), SourceTracks, "other"); err != nil {
			t.Fatalf("expected tracks request to succeed, got %v", err)
		}

		close(release)

		if err := <-slowErr; err != nil {
			t.Errorf("expected artists request to stay fresh, got %v", err)
		}
	})
}

func TestSearchByQuery(t *testing.T) {
	t.Run("Empty Query Makes No Remote Call", func(t *testing.T) {
		var calls atomic.Int32
		pipeline, _ := newTestPipeline(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			fmt.Fprint(w, emptySearchBody)
		})

		for _, query := range []string{"", "   ", "\t\n"} {
			_, err := pipeline.SearchByQuery(context.Background(), query)
			if !errors.Is(err, shared.ErrEmptyQuery) {
				t.Errorf("query %q: expected ErrEmptyQuery, got %v", query, err)
			}
		}

		if calls.Load() != 0 {
			t.Errorf("expected zero remote calls, got %d", calls.Load())
		}
	})

	t.Run("No Wildcard Or Limit", func(t *testing.T) {
		var gotQuery map[string][]string
		pipeline, _ := newTestPipeline(t, func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.Query()
			fmt.Fprint(w, `{
				"artists": {"items": []},
				"tracks": {"items": [{"id": "t1", "name": "Track", "popularity": 5}, {"id": "t2", "name": "Other", "popularity": 50}]}
			}`)
		})

		tracks, err := pipeline.SearchByQuery(context.Background(), "full query")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if got := gotQuery["q"]; len(got) != 1 || got[0] != "full query" {
			t.Errorf("expected verbatim query, got %v", got)
		}
		if _, ok := gotQuery["limit"]; ok {
			t.Error("expected no limit parameter on full search")
		}

		if len(tracks) != 2 || tracks[0].ID != "t2" {
			t.Errorf("expected popularity-ranked tracks, got %+v", tracks)
		}
		if tracks[0].Query != "full query" {
			t.Errorf("expected query stamp, got %s", tracks[0].Query)
		}
	})
}

func TestArtistTopTracks(t *testing.T) {
	pipeline, _ := newTestPipeline(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/artists/a1/top-tracks" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("country"); got != "SE" {
			t.Errorf("expected default market SE, got %s", got)
		}
		fmt.Fprint(w, `{"tracks": [{"id": "t1", "popularity": 10}, {"id": "t2", "popularity": 90}]}`)
	})

	tracks, err := pipeline.ArtistTopTracks(context.Background(), "a1", "seen query")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(tracks) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(tracks))
	}
	if tracks[0].ID != "t2" {
		t.Errorf("expected ranked order, got %s first", tracks[0].ID)
	}
	if tracks[0].Query != "seen query" {
		t.Errorf("expected query stamp, got %s", tracks[0].Query)
	}
}

func TestTrackByID(t *testing.T) {
	pipeline, _ := newTestPipeline(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id": "t1", "name": "Song", "duration_ms": 214000, "artists": [{"name": "Artist"}]}`)
	})

	track, err := pipeline.TrackByID(context.Background(), "t1", "query")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if track.Title != "Song" {
		t.Errorf("expected title Song, got %s", track.Title)
	}
	if track.Artist != "Artist" {
		t.Errorf("expected artist name, got %s", track.Artist)
	}
	if track.Duration != "3:34" {
		t.Errorf("expected formatted duration, got %s", track.Duration)
	}
}
