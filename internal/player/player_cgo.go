//go:build (linux && cgo) || windows || darwin

package player

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/ac1714/chirp/internal/services"
	"github.com/ac1714/chirp/internal/shared"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
)

// AudioAvailable indicates whether audio playback is supported in this build.
const AudioAvailable = true

const defaultSampleRate = beep.SampleRate(44100)

var speakerOnce sync.Once

func initSpeaker() (err error) {
	speakerOnce.Do(func() {
		err = speaker.Init(defaultSampleRate, defaultSampleRate.N(time.Second/10))
	})
	return err
}

type nopCloser struct{ io.Reader }

func (nopCloser) Close() error { return nil }

// beepHandle plays one preview clip through the system speaker.
type beepHandle struct {
	mu       sync.Mutex
	ctrl     *beep.Ctrl
	streamer beep.StreamSeekCloser
	enqueued bool
	onEnded  func()
}

// NewBeepFactory returns a [HandleFactory] that downloads a track's
// preview clip, decodes it as MP3, and plays it through the speaker.
// The HTTP client defaults to one with a 30 second timeout.
func NewBeepFactory(httpClient *http.Client) HandleFactory {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return func(track services.Track) (Handle, error) {
		resp, err := httpClient.Get(track.PreviewURL)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch preview: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("%w: preview returned status %d", shared.ErrNoPreview, resp.StatusCode)
		}

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read preview: %w", err)
		}

		streamer, format, err := mp3.Decode(nopCloser{bytes.NewReader(data)})
		if err != nil {
			return nil, fmt.Errorf("failed to decode preview: %w", err)
		}

		if err := initSpeaker(); err != nil {
			streamer.Close()
			return nil, fmt.Errorf("failed to init speaker: %w", err)
		}

		resampled := beep.Resample(4, format.SampleRate, defaultSampleRate, streamer)
		return &beepHandle{
			ctrl:     &beep.Ctrl{Streamer: resampled},
			streamer: streamer,
		}, nil
	}
}

// Play starts playback, or resumes it when the clip is already enqueued.
func (h *beepHandle) Play() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.enqueued {
		speaker.Lock()
		h.ctrl.Paused = false
		speaker.Unlock()
		return nil
	}

	h.enqueued = true
	speaker.Play(beep.Seq(h.ctrl, beep.Callback(func() {
		h.mu.Lock()
		fn := h.onEnded
		h.onEnded = nil
		h.mu.Unlock()
		if fn != nil {
			// Separate goroutine so a listener that starts the next
			// track doesn't deadlock against the speaker.
			go fn()
		}
	})))

	return nil
}

func (h *beepHandle) Pause() {
	speaker.Lock()
	h.ctrl.Paused = true
	speaker.Unlock()
}

func (h *beepHandle) Stop() {
	speaker.Lock()
	h.ctrl.Paused = true
	h.ctrl.Streamer = nil
	speaker.Unlock()
	h.streamer.Close()
}

func (h *beepHandle) OnEnded(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onEnded = fn
}
