// Package player implements the single-active-track playback state
// machine. At most one preview sounds at a time; transitions are driven
// by user selection events and by the audio resource signalling natural
// completion.
package player

import (
	"fmt"
	"sync"

	"github.com/ac1714/chirp/internal/services"
	"github.com/ac1714/chirp/internal/shared"
)

// Status is the controller's playback state.
type Status int

const (
	Idle Status = iota
	Playing
	Paused
)

func (s Status) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "idle"
	}
}

// Handle is an opaque playable audio resource for one track's preview.
// A handle is reused for pause of the same track; a different track
// requires a new handle.
type Handle interface {
	// Play starts or resumes output.
	Play() error
	// Pause halts output but keeps the resource allocated.
	Pause()
	// Stop halts output and releases the resource.
	Stop()
	// OnEnded registers a one-shot listener fired when the resource
	// signals natural completion. Registered at most once per handle.
	OnEnded(func())
}

// HandleFactory allocates a playable resource for a track's preview.
// Allocation from a track without a preview source is not validated
// here; callers are expected to filter with [services.Track.HasPreview].
type HandleFactory func(track services.Track) (Handle, error)

// Controller is the state machine over "what is currently sounding".
// Exactly one exists per process. Every mutation is atomic with respect
// to the triggering event: a new handle is never observable before the
// old one has been stopped.
type Controller struct {
	mu      sync.Mutex
	factory HandleFactory
	handle  Handle
	current *services.Track
	status  Status
	started func(Handle)
}

// NewController creates a Controller that allocates audio resources via
// factory.
func NewController(factory HandleFactory) *Controller {
	return &Controller{factory: factory}
}

// OnTrackStarted registers the track-started listener. The controller
// emits exactly one notification per newly allocated handle, carrying
// that handle.
func (c *Controller) OnTrackStarted(fn func(Handle)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.started = fn
}

// Select is the play/toggle entry point for a selection event.
//
// Selecting the currently playing track pauses its handle and clears the
// current-track reference; the handle stays allocated, but no
// resume-by-reselecting path exists because the cleared reference can no
// longer match. Selecting a different track while one is playing pauses
// the old handle before the new one starts. Any other state allocates a
// fresh handle and starts playback.
func (c *Controller) Select(track services.Track) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.handle != nil && c.current != nil && c.status == Playing && c.current.ID == track.ID {
		c.current = nil
		c.status = Paused
		c.handle.Pause()
		return nil
	}

	if c.handle != nil && c.status == Playing {
		c.current = nil
		c.handle.Pause()
	}

	return c.startLocked(track)
}

// startLocked allocates a handle for track, emits the track-started
// notification, wires the end-of-audio listener, and begins playback.
func (c *Controller) startLocked(track services.Track) error {
	handle, err := c.factory(track)
	if err != nil {
		return fmt.Errorf("failed to allocate audio for %q: %w", track.Title, err)
	}

	c.handle = handle
	c.current = &track
	c.status = Playing

	if c.started != nil {
		c.started(handle)
	}

	// One listener per handle, bound to this handle; it is never
	// proactively detached on later transitions.
	handle.OnEnded(func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.handle == handle {
			c.current = nil
			c.status = Idle
		}
	})

	return handle.Play()
}

// Pause explicitly pauses the active handle and clears the current-track
// reference. Returns [shared.ErrNothingPlaying] when no handle exists.
func (c *Controller) Pause() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.handle == nil {
		return shared.ErrNothingPlaying
	}

	c.current = nil
	c.status = Paused
	c.handle.Pause()
	return nil
}

// Stop releases the active handle, if any, and returns to Idle.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.handle != nil {
		c.handle.Stop()
	}
	c.handle = nil
	c.current = nil
	c.status = Idle
}

// Current returns the current track reference and status. The track is
// nil when idle, paused, or after natural completion.
func (c *Controller) Current() (*services.Track, Status) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current, c.status
}
