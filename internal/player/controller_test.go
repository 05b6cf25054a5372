package player

import (
	"errors"
	"testing"

	"github.com/ac1714/chirp/internal/services"
	"github.com/ac1714/chirp/internal/shared"
)

// fakeHandle records lifecycle calls and lets tests fire the natural-end
// signal.
type fakeHandle struct {
	track   services.Track
	plays   int
	pauses  int
	stops   int
	onEnded func()
}

func (h *fakeHandle) Play() error { h.plays++; return nil }
func (h *fakeHandle) Pause()      { h.pauses++ }
func (h *fakeHandle) Stop()       { h.stops++ }
func (h *fakeHandle) OnEnded(fn func()) {
	h.onEnded = fn
}

func (h *fakeHandle) finish() {
	if h.onEnded != nil {
		h.onEnded()
	}
}

type fakeFactory struct {
	handles []*fakeHandle
	err     error
}

func (f *fakeFactory) make(track services.Track) (Handle, error) {
	if f.err != nil {
		return nil, f.err
	}
	handle := &fakeHandle{track: track}
	f.handles = append(f.handles, handle)
	return handle, nil
}

func newTestController() (*Controller, *fakeFactory, *int) {
	factory := &fakeFactory{}
	controller := NewController(factory.make)
	started := 0
	controller.OnTrackStarted(func(Handle) { started++ })
	return controller, factory, &started
}

func track(id string) services.Track {
	return services.Track{ID: id, Title: "Track " + id, PreviewURL: "https://p.scdn.co/" + id}
}

func TestController(t *testing.T) {
	t.Run("Select From Idle Starts Playback", func(t *testing.T) {
		controller, factory, started := newTestController()

		if err := controller.Select(track("a")); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		current, status := controller.Current()
		if status != Playing {
			t.Errorf("expected Playing, got %v", status)
		}
		if current == nil || current.ID != "a" {
			t.Errorf("expected current track a, got %+v", current)
		}
		if len(factory.handles) != 1 || factory.handles[0].plays != 1 {
			t.Error("expected exactly one handle with one play call")
		}
		if *started != 1 {
			t.Errorf("expected one started notification, got %d", *started)
		}
	})

	t.Run("Reselecting Playing Track Pauses", func(t *testing.T) {
		controller, factory, started := newTestController()

		if err := controller.Select(track("a")); err != nil {
			t.Fatalf("first select failed: %v", err)
		}
		if err := controller.Select(track("a")); err != nil {
			t.Fatalf("second select failed: %v", err)
		}

		current, status := controller.Current()
		if status != Paused {
			t.Errorf("expected Paused, got %v", status)
		}
		if current != nil {
			t.Errorf("expected current track cleared, got %+v", current)
		}
		if len(factory.handles) != 1 {
			t.Errorf("expected no new handle, got %d", len(factory.handles))
		}
		if factory.handles[0].pauses != 1 {
			t.Errorf("expected one pause call, got %d", factory.handles[0].pauses)
		}
		if *started != 1 {
			t.Errorf("expected no second started notification, got %d", *started)
		}
	})

	t.Run("No Resume By Reselecting", func(t *testing.T) {
		controller, factory, _ := newTestController()

		controller.Select(track("a"))
		controller.Select(track("a")) // pauses

		// With the reference cleared, selecting the same track again
		// allocates a fresh handle rather than resuming the paused one.
		if err := controller.Select(track("a")); err != nil {
			t.Fatalf("third select failed: %v", err)
		}

		if len(factory.handles) != 2 {
			t.Fatalf("expected a second handle, got %d", len(factory.handles))
		}
		_, status := controller.Current()
		if status != Playing {
			t.Errorf("expected Playing, got %v", status)
		}
	})

	t.Run("Selecting Different Track Pauses Old First", func(t *testing.T) {
		controller, factory, started := newTestController()

		controller.Select(track("a"))
		if err := controller.Select(track("b")); err != nil {
			t.Fatalf("select b failed: %v", err)
		}

		if len(factory.handles) != 2 {
			t.Fatalf("expected two handles, got %d", len(factory.handles))
		}
		if factory.handles[0].pauses != 1 {
			t.Errorf("expected old handle paused, got %d pauses", factory.handles[0].pauses)
		}
		current, status := controller.Current()
		if status != Playing || current == nil || current.ID != "b" {
			t.Errorf("expected track b playing, got %+v %v", current, status)
		}
		if *started != 2 {
			t.Errorf("expected two started notifications, got %d", *started)
		}
	})

	t.Run("Natural End Resets State", func(t *testing.T) {
		controller, factory, _ := newTestController()

		controller.Select(track("a"))
		factory.handles[0].finish()

		current, status := controller.Current()
		if status != Idle {
			t.Errorf("expected Idle after natural end, got %v", status)
		}
		if current != nil {
			t.Errorf("expected no current track, got %+v", current)
		}
	})

	t.Run("Stale End Signal Ignored", func(t *testing.T) {
		controller, factory, _ := newTestController()

		controller.Select(track("a"))
		controller.Select(track("b"))

		// The first handle's listener stays attached; firing it after the
		// second track started must not disturb the newer state.
		factory.handles[0].finish()

		current, status := controller.Current()
		if status != Playing || current == nil || current.ID != "b" {
			t.Errorf("expected track b unaffected, got %+v %v", current, status)
		}
	})

	t.Run("Pause Without Handle", func(t *testing.T) {
		controller, _, _ := newTestController()

		if err := controller.Pause(); !errors.Is(err, shared.ErrNothingPlaying) {
			t.Errorf("expected ErrNothingPlaying, got %v", err)
		}
	})

	t.Run("Pause Clears Current", func(t *testing.T) {
		controller, factory, _ := newTestController()

		controller.Select(track("a"))
		if err := controller.Pause(); err != nil {
			t.Fatalf("pause failed: %v", err)
		}

		current, status := controller.Current()
		if status != Paused || current != nil {
			t.Errorf("expected paused with cleared track, got %+v %v", current, status)
		}
		if factory.handles[0].pauses != 1 {
			t.Errorf("expected one pause call, got %d", factory.handles[0].pauses)
		}
	})

	t.Run("Stop Releases Handle", func(t *testing.T) {
		controller, factory, _ := newTestController()

		controller.Select(track("a"))
		controller.Stop()

		if factory.handles[0].stops != 1 {
			t.Errorf("expected one stop call, got %d", factory.handles[0].stops)
		}
		current, status := controller.Current()
		if status != Idle || current != nil {
			t.Errorf("expected idle after stop, got %+v %v", current, status)
		}

		// Stop with no handle is a no-op.
		controller.Stop()
	})

	t.Run("Factory Failure Surfaces", func(t *testing.T) {
		factory := &fakeFactory{err: shared.ErrAudioUnavailable}
		controller := NewController(factory.make)

		err := controller.Select(track("a"))
		if !errors.Is(err, shared.ErrAudioUnavailable) {
			t.Errorf("expected ErrAudioUnavailable, got %v", err)
		}
	})
}
