// Package search owns the suggestion and search pipeline: two named
// query sources ("artists", "tracks"), remote lookups through the
// catalog client, result transformation, and a last-query-wins discard
// policy for responses that arrive out of order.
package search

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/ac1714/chirp/internal/services"
	"github.com/ac1714/chirp/internal/shared"
	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"
)

// Source names for the two independent suggestion feeds.
const (
	SourceArtists = "artists"
	SourceTracks  = "tracks"
)

// SuggestLimit is the fixed page size requested for suggestions.
const SuggestLimit = 10

var nonWhitespace = regexp.MustCompile(`\S`)

// sourceState tracks the last-issued query and request identity for one
// suggestion source. The sequence number increases monotonically; a
// response whose sequence is no longer the latest is discarded.
type sourceState struct {
	seq   uint64
	query string
}

// SuggestResult is one resolved suggestion lookup. Seq identifies the
// request so callers can correlate results with input state; exactly one
// of Artists or Tracks is populated, matching the source.
type SuggestResult struct {
	Source  string
	Query   string
	Seq     uint64
	Artists []services.Artist
	Tracks  []services.Track
}

// Options configures a [Pipeline].
type Options struct {
	Client *services.Client
	Market string
	Limit  int
	Rate   time.Duration
	Burst  int
	Logger *log.Logger
}

// Pipeline issues remote lookups and applies the result transformer.
// It never retries and never caches; failures surface classified.
type Pipeline struct {
	client  *services.Client
	limiter *rate.Limiter
	logger  *log.Logger
	market  string
	limit   int

	mu      sync.Mutex
	sources map[string]*sourceState
}

// NewPipeline creates a Pipeline with the given options.
func NewPipeline(opts Options) *Pipeline {
	if opts.Market == "" {
		opts.Market = "SE"
	}
	if opts.Limit <= 0 {
		opts.Limit = SuggestLimit
	}
	if opts.Rate <= 0 {
		opts.Rate = 150 * time.Millisecond
	}
	if opts.Burst <= 0 {
		opts.Burst = 3
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &Pipeline{
		client:  opts.Client,
		limiter: rate.NewLimiter(rate.Every(opts.Rate), opts.Burst),
		logger:  opts.Logger,
		market:  opts.Market,
		limit:   opts.Limit,
		sources: map[string]*sourceState{
			SourceArtists: {},
			SourceTracks:  {},
		},
	}
}

// begin records a new in-flight request for source and returns its
// sequence number.
func (p *Pipeline) begin(source, query string) (uint64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	state, ok := p.sources[source]
	if !ok {
		return 0, fmt.Errorf("%w: %q", shared.ErrUnknownSource, source)
	}

	state.seq++
	state.query = query
	return state.seq, nil
}

// current returns the latest issued sequence number for source.
func (p *Pipeline) current(source string) uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if state, ok := p.sources[source]; ok {
		return state.seq
	}
	return 0
}

// Suggest resolves live autocomplete suggestions for one source. The
// query gets a trailing wildcard before dispatch (prefix matching is the
// remote service's job) and a fixed page size. If a newer Suggest call
// for the same source was issued while this one was in flight, the
// response is discarded with [shared.ErrStaleResponse] so stale results
// never overwrite fresher ones.
func (p *Pipeline) Suggest(ctx context.Context, source, query string) (*SuggestResult, error) {
	seq, err := p.begin(source, query)
	if err != nil {
		return nil, err
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	response, err := p.client.Search(ctx, query+"*", "artist,track", p.limit)
	if err != nil {
		return nil, err
	}

	if latest := p.current(source); seq != latest {
		p.logger.Debug("discarding stale suggestion response", "source", source, "seq", seq, "latest", latest)
		return nil, fmt.Errorf("%w: %s %q", shared.ErrStaleResponse, source, query)
	}

	result := &SuggestResult{Source: source, Query: query, Seq: seq}
	switch source {
	case SourceArtists:
		result.Artists = services.TransformArtists(response.Artists.Items, query)
	case SourceTracks:
		result.Tracks = services.TransformTracks(response.Tracks.Items, query)
	}

	return result, nil
}

// SearchByQuery handles a full search submission: combined artist+track
// request, tracks surfaced. A query without a single non-whitespace
// character short-circuits with [shared.ErrEmptyQuery] and performs no
// remote call.
func (p *Pipeline) SearchByQuery(ctx context.Context, query string) ([]services.Track, error) {
	if !nonWhitespace.MatchString(query) {
		return nil, shared.ErrEmptyQuery
	}

	seq, err := p.begin(SourceTracks, query)
	if err != nil {
		return nil, err
	}

	response, err := p.client.Search(ctx, query, "artist,track", 0)
	if err != nil {
		return nil, err
	}

	if latest := p.current(SourceTracks); seq != latest {
		return nil, fmt.Errorf("%w: search %q", shared.ErrStaleResponse, query)
	}

	return services.TransformTracks(response.Tracks.Items, query), nil
}

// ArtistTopTracks fetches an artist's top tracks for the configured
// market. The query argument is the term that surfaced the artist and is
// stamped onto the transformed tracks.
func (p *Pipeline) ArtistTopTracks(ctx context.Context, artistID, query string) ([]services.Track, error) {
	tracks, err := p.client.ArtistTopTracks(ctx, artistID, p.market)
	if err != nil {
		return nil, err
	}
	return services.TransformTracks(tracks, query), nil
}

// TrackByID fetches one track and runs it through the same transform and
// ranking path as list results.
func (p *Pipeline) TrackByID(ctx context.Context, trackID, query string) (*services.Track, error) {
	track, err := p.client.TrackByID(ctx, trackID)
	if err != nil {
		return nil, err
	}

	tracks := services.TransformTracks([]services.SpotifyTrack{*track}, query)
	if len(tracks) == 0 {
		return nil, shared.ErrTrackNotFound
	}
	return &tracks[0], nil
}
