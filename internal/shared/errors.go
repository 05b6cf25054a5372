package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Authentication errors
	ErrAuthFailed        = fmt.Errorf("authentication failed")
	ErrNotAuthenticated  = fmt.Errorf("not authenticated")
	ErrMalformedCallback = fmt.Errorf("malformed authorization callback")
	ErrUnauthorized      = fmt.Errorf("authorization rejected")
	ErrTimeout           = fmt.Errorf("operation timed out")

	// API and search errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrTrackNotFound      = fmt.Errorf("track not found")
	ErrEmptyQuery         = fmt.Errorf("empty search query")
	ErrStaleResponse      = fmt.Errorf("stale search response")
	ErrUnknownSource      = fmt.Errorf("unknown suggestion source")

	// Playback errors
	ErrNoPreview        = fmt.Errorf("track has no preview")
	ErrAudioUnavailable = fmt.Errorf("audio output unavailable")
	ErrNothingPlaying   = fmt.Errorf("nothing is playing")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
