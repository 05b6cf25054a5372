// Spotify Web API client for the search and track endpoints.
//
// Response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/ac1714/chirp/internal/shared"
)

const spotifyBaseURL = "https://api.spotify.com/v1"

// BearerSource supplies the access token for authenticated requests.
// Implemented by [auth.Manager].
type BearerSource interface {
	AccessToken() (string, error)
}

type SpotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

type externalURLs struct {
	Spotify string `json:"spotify"`
}

// SpotifyArtist is a raw catalog artist record.
type SpotifyArtist struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Type         string         `json:"type"`
	Popularity   int            `json:"popularity"`
	ExternalURLs externalURLs   `json:"external_urls"`
	Images       []SpotifyImage `json:"images"`
}

type SpotifyAlbum struct {
	Name   string         `json:"name"`
	Images []SpotifyImage `json:"images"`
}

// SpotifyTrack is a raw catalog track record.
type SpotifyTrack struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Type       string          `json:"type"`
	Popularity int             `json:"popularity"`
	PreviewURL string          `json:"preview_url"`
	DurationMS int             `json:"duration_ms"`
	Artists    []SpotifyArtist `json:"artists"`
	Album      SpotifyAlbum    `json:"album"`
}

type PagedArtists struct {
	Items []SpotifyArtist `json:"items"`
}

type PagedTracks struct {
	Items []SpotifyTrack `json:"items"`
}

// SearchResponse is the combined artist+track search envelope.
type SearchResponse struct {
	Artists PagedArtists `json:"artists"`
	Tracks  PagedTracks  `json:"tracks"`
}

type topTracksResponse struct {
	Tracks []SpotifyTrack `json:"tracks"`
}

// errorEnvelope is the failure body returned by the catalog API.
type errorEnvelope struct {
	Error struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

// Client performs authenticated GET requests against the catalog API and
// routes every failure payload through a [Classifier].
type Client struct {
	baseURL    string
	httpClient *http.Client
	bearer     BearerSource
	classifier *Classifier
}

// NewClient creates a catalog client. The HTTP client defaults to
// [http.DefaultClient]; baseURL defaults to the public API endpoint.
func NewClient(baseURL string, httpClient *http.Client, bearer BearerSource, classifier *Classifier) *Client {
	if baseURL == "" {
		baseURL = spotifyBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		bearer:     bearer,
		classifier: classifier,
	}
}

// get performs an authenticated GET request and decodes the JSON
// response into result. Failure responses are classified, never retried.
func (c *Client) get(ctx context.Context, endpoint string, query url.Values, result any) error {
	accessToken, err := c.bearer.AccessToken()
	if err != nil {
		return err
	}

	apiURL := c.baseURL + endpoint
	if len(query) > 0 {
		apiURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		var envelope errorEnvelope
		if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Status != 0 {
			return c.classifier.Classify(envelope.Error.Status, envelope.Error.Message)
		}
		return c.classifier.Classify(resp.StatusCode, string(body))
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Search performs a combined search across the given types
// (e.g. "artist,track"). A limit of zero omits the parameter.
func (c *Client) Search(ctx context.Context, query, types string, limit int) (*SearchResponse, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("type", types)
	if limit > 0 {
		params.Set("limit", fmt.Sprintf("%d", limit))
	}

	var response SearchResponse
	if err := c.get(ctx, "/search", params, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// ArtistTopTracks retrieves an artist's top tracks for a market.
func (c *Client) ArtistTopTracks(ctx context.Context, artistID, market string) ([]SpotifyTrack, error) {
	params := url.Values{}
	params.Set("country", market)

	var response topTracksResponse
	endpoint := fmt.Sprintf("/artists/%s/top-tracks", artistID)
	if err := c.get(ctx, endpoint, params, &response); err != nil {
		return nil, err
	}
	return response.Tracks, nil
}

// TrackByID retrieves a single track.
func (c *Client) TrackByID(ctx context.Context, trackID string) (*SpotifyTrack, error) {
	var track SpotifyTrack
	endpoint := fmt.Sprintf("/tracks/%s", trackID)
	if err := c.get(ctx, endpoint, nil, &track); err != nil {
		return nil, err
	}
	return &track, nil
}
