//go:build linux && !cgo

package player

import (
	"net/http"

	"github.com/ac1714/chirp/internal/services"
	"github.com/ac1714/chirp/internal/shared"
)

// AudioAvailable indicates whether audio playback is supported in this build.
const AudioAvailable = false

// NewBeepFactory returns a [HandleFactory] that always fails: audio
// output needs cgo on this platform.
func NewBeepFactory(httpClient *http.Client) HandleFactory {
	return func(track services.Track) (Handle, error) {
		return nil, shared.ErrAudioUnavailable
	}
}
