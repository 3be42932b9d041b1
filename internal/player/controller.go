// Package player drives a viewer's playback session: gating entry until the
// user gesture browsers require for audible autoplay, seeking the video to
// the schedule-synchronized offset, timing the call-to-action banner, and
// cutting to an end screen before the backend's native end-of-stream UI can
// break the live illusion.
package player

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stwalsh4118/simulive/internal/logger"
	"github.com/stwalsh4118/simulive/internal/models"
	"github.com/stwalsh4118/simulive/internal/schedule"
)

// Phase is the controller's own state, composed with the schedule
// evaluator's classification
type Phase string

const (
	// PhaseNotEntered gates the session until the viewer's entry gesture
	PhaseNotEntered Phase = "not_entered"

	// PhaseEntered means playback commands have been issued and polling is live
	PhaseEntered Phase = "entered"

	// PhaseEndScreen is terminal for the session
	PhaseEndScreen Phase = "end_screen"
)

const (
	scheduleTickInterval = 1 * time.Second
	playbackPollInterval = 1 * time.Second
	endPollInterval      = 500 * time.Millisecond

	// settleOverlayDelay masks backend UI chrome while it starts up.
	// Presentation-only; carries no state machine meaning.
	settleOverlayDelay = 3500 * time.Millisecond

	// endPreemptionSeconds cuts to the end screen this long before the
	// backend's own end-of-stream UI would appear
	endPreemptionSeconds = 1.0

	redirectDelay = 5 * time.Second
)

// TimeSource provides the authoritative instant. Satisfied by
// *clocksync.Service.
type TimeSource interface {
	EstimatedNow() time.Time
}

// Config describes the webinar a controller plays
type Config struct {
	ScheduleTime string
	DurationSec  int64
	CTA          *models.CTASettings

	// Preview forces on-air at offset 0, bypassing the schedule evaluator.
	// Used for operator preview links.
	Preview bool

	// RedirectURL, when set, is surfaced a fixed delay after the end screen
	// so the shell can navigate the viewer away
	RedirectURL string
}

// Snapshot is a read-only copy of the controller state, consumed by the
// presentation shell. The shell never mutates controller state.
type Snapshot struct {
	Phase                  Phase
	ScheduleState          schedule.State
	HasEntered             bool
	Muted                  bool
	ShowCTA                bool
	ShowEndScreen          bool
	ShowSettleOverlay      bool
	Redirect               bool
	ElapsedPlaybackSeconds float64
	RemainingSeconds       int64
	SeekPositionSeconds    int64
}

// Controller is the playback state machine for one viewer session. All state
// it owns is mutated under a single mutex; timer loops and user gesture
// handlers are the only writers.
type Controller struct {
	cfg        Config
	timeSource TimeSource
	clock      clockwork.Clock

	mu            sync.Mutex
	backend       Backend
	unsubscribe   func()
	phase         Phase
	hasEntered    bool
	muted         bool
	showCTA       bool
	showEndScreen bool
	settleOverlay bool
	redirect      bool
	elapsed       float64
	lastResult    *schedule.Result

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewController creates a controller using the real wall clock
func NewController(cfg Config, timeSource TimeSource) *Controller {
	return NewControllerWithClock(cfg, timeSource, clockwork.NewRealClock())
}

// NewControllerWithClock creates a controller with an injected clock.
// Tests pass a clockwork.FakeClock to control timer behavior.
func NewControllerWithClock(cfg Config, timeSource TimeSource, clock clockwork.Clock) *Controller {
	return &Controller{
		cfg:        cfg,
		timeSource: timeSource,
		clock:      clock,
		phase:      PhaseNotEntered,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
}

// AttachBackend wires the video backend once it has initialized and
// subscribes to its readiness and end-of-media notifications. Safe to call
// before or after Start; commands issued while no backend is attached are
// no-ops.
func (c *Controller) AttachBackend(b Backend) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.backend = b
	c.unsubscribe = b.Subscribe(BackendEvents{
		OnReady: func() {
			logger.Log.Debug().Msg("Video backend ready")
		},
		OnEnded: func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.finishLocked()
		},
	})
}

// Start begins the controller's timer loops: a 1s schedule tick, a 1s
// playback poll, and a 500ms end-detection poll
func (c *Controller) Start() {
	go c.run()
}

// Stop tears down all timer loops and the backend subscription. No polling
// survives teardown.
func (c *Controller) Stop() {
	c.stopOnce.Do(func() {
		close(c.stopCh)
	})
	<-c.doneCh

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
	c.backend = nil
}

func (c *Controller) run() {
	defer close(c.doneCh)

	scheduleTicker := c.clock.NewTicker(scheduleTickInterval)
	defer scheduleTicker.Stop()
	playbackTicker := c.clock.NewTicker(playbackPollInterval)
	defer playbackTicker.Stop()
	endTicker := c.clock.NewTicker(endPollInterval)
	defer endTicker.Stop()

	for {
		select {
		case <-scheduleTicker.Chan():
			c.scheduleTick()
		case <-playbackTicker.Chan():
			c.playbackPoll()
		case <-endTicker.Chan():
			c.endPoll()
		case <-c.stopCh:
			return
		}
	}
}

// Enter handles the viewer's entry gesture, the only transition out of
// PhaseNotEntered. Commands are issued muted-first so playback starts under
// browser autoplay policy; the viewer unmutes with a second gesture.
func (c *Controller) Enter() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseNotEntered || c.showEndScreen {
		return
	}

	result := c.evaluateLocked()
	if result.State != schedule.StateOnAir {
		return
	}

	c.commandLocked(func(b Backend) { b.Mute() })
	if result.SeekPositionSeconds > 0 {
		seek := result.SeekPositionSeconds
		c.commandLocked(func(b Backend) { b.SeekTo(seek) })
	}
	c.commandLocked(func(b Backend) { b.Play() })

	c.muted = true
	c.hasEntered = true
	c.phase = PhaseEntered
	c.settleOverlay = true
	c.lastResult = result

	c.clock.AfterFunc(settleOverlayDelay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.settleOverlay = false
	})

	logger.Log.Info().
		Int64("seek_position", result.SeekPositionSeconds).
		Msg("Viewer entered webinar")
}

// Unmute handles the viewer's one-shot unmute gesture. There is no
// automatic unmute.
func (c *Controller) Unmute() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseEntered || !c.muted {
		return
	}

	c.commandLocked(func(b Backend) { b.Unmute() })
	c.muted = false
}

// Snapshot returns a copy of the current controller state
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		Phase:                  c.phase,
		HasEntered:             c.hasEntered,
		Muted:                  c.muted,
		ShowCTA:                c.showCTA,
		ShowEndScreen:          c.showEndScreen,
		ShowSettleOverlay:      c.settleOverlay,
		Redirect:               c.redirect,
		ElapsedPlaybackSeconds: c.elapsed,
	}

	result := c.lastResult
	if result == nil {
		result = c.evaluateLocked()
		c.lastResult = result
	}
	snap.ScheduleState = result.State
	snap.RemainingSeconds = result.RemainingSeconds
	snap.SeekPositionSeconds = result.SeekPositionSeconds

	return snap
}

// scheduleTick re-evaluates the schedule against the authoritative clock.
// An ended schedule forces the end screen even if the viewer never entered.
// A before state never interrupts an entered session: a viewer who crossed
// midnight mid-broadcast keeps playing until the video itself runs out.
func (c *Controller) scheduleTick() {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := c.evaluateLocked()
	c.lastResult = result

	if result.State == schedule.StateEnded && !c.cfg.Preview {
		c.finishLocked()
	}
}

// playbackPoll reads the backend position to track elapsed playback and
// raise the CTA flag. The flag is monotonic: once shown it stays shown even
// if the backend later reports an earlier position.
func (c *Controller) playbackPoll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseEntered {
		return
	}

	if c.backend != nil {
		c.elapsed = c.backend.CurrentTimeSeconds()
	}

	if c.cfg.CTA != nil && !c.showCTA && c.elapsed >= float64(c.cfg.CTA.ShowTimeSec) {
		c.showCTA = true
		logger.Log.Debug().
			Float64("elapsed", c.elapsed).
			Msg("CTA banner shown")
	}
}

// endPoll watches for the approaching end of media and pre-empts the
// backend's native end-of-stream UI by one second
func (c *Controller) endPoll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseEntered || c.backend == nil {
		return
	}

	duration := c.backend.DurationSeconds()
	position := c.backend.CurrentTimeSeconds()

	if duration > 0 && position >= duration-endPreemptionSeconds {
		c.finishLocked()
	}
}

// finishLocked transitions to the terminal end screen. Idempotent.
// Callers must hold c.mu.
func (c *Controller) finishLocked() {
	if c.showEndScreen {
		return
	}

	c.commandLocked(func(b Backend) { b.Pause() })
	c.showEndScreen = true
	c.phase = PhaseEndScreen

	if c.cfg.RedirectURL != "" {
		c.clock.AfterFunc(redirectDelay, func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.redirect = true
		})
	}

	logger.Log.Info().Msg("Webinar session ended")
}

// evaluateLocked classifies the current instant, or forces on-air at offset
// 0 in preview mode. Callers must hold c.mu.
func (c *Controller) evaluateLocked() *schedule.Result {
	if c.cfg.Preview {
		return &schedule.Result{State: schedule.StateOnAir}
	}

	result, err := schedule.Evaluate(c.timeSource.EstimatedNow(), c.cfg.ScheduleTime, c.cfg.DurationSec)
	if err != nil {
		// Schedules are validated at the data-entry boundary; an error here
		// means a corrupted record. Hold the last known state.
		logger.Log.Error().
			Err(err).
			Str("schedule_time", c.cfg.ScheduleTime).
			Msg("Schedule evaluation failed")
		if c.lastResult != nil {
			return c.lastResult
		}
		return &schedule.Result{State: schedule.StateBefore}
	}

	return result
}

// commandLocked issues a best-effort backend command. A missing backend is a
// no-op, never an error: the backend initializes asynchronously and the very
// first commands may race its setup. Callers must hold c.mu.
func (c *Controller) commandLocked(cmd func(Backend)) {
	if c.backend == nil {
		return
	}
	cmd(c.backend)
}
