package player

// BackendEvents carries the notifications a controller subscribes to on its
// video backend. Either callback may be nil.
type BackendEvents struct {
	// OnReady fires once when the backend has initialized and can accept
	// playback commands
	OnReady func()

	// OnEnded fires when the backend reaches its native end of media
	OnEnded func()
}

// Backend is the capability surface the controller requires from an
// embeddable video player. Implementations initialize asynchronously:
// commands issued before readiness must be tolerated, and time or duration
// queries may report 0 until the backend is ready.
type Backend interface {
	Play()
	Pause()
	SeekTo(seconds int64)
	Mute()
	Unmute()

	// CurrentTimeSeconds returns the live playback position, 0 if not ready
	CurrentTimeSeconds() float64

	// DurationSeconds returns the media duration, 0 if not ready
	DurationSeconds() float64

	// Subscribe registers event callbacks and returns a function that
	// removes the registration. The controller subscribes once per mount
	// and unsubscribes on teardown.
	Subscribe(events BackendEvents) (unsubscribe func())
}
