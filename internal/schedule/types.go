package schedule

import "time"

// State represents the phase of a webinar's simulated live window at a
// given authoritative instant. Exactly one state holds at any instant.
type State string

const (
	// StateBefore indicates the instant is earlier than today's start instant
	StateBefore State = "before"

	// StateOnAir indicates the instant falls inside the broadcast window
	StateOnAir State = "on_air"

	// StateEnded indicates the instant is at or past the end instant
	StateEnded State = "ended"
)

// Result describes the evaluated playback state for a single instant.
//
// RemainingSeconds is populated only for StateBefore and counts whole seconds
// until the start instant, rounded up. SeekPositionSeconds is populated only
// for StateOnAir and is the offset a viewer's video must seek to, rounded
// down, always in [0, durationSec).
type Result struct {
	State               State     `json:"state"`
	RemainingSeconds    int64     `json:"remaining_seconds,omitempty"`
	SeekPositionSeconds int64     `json:"seek_position_seconds,omitempty"`
	StartsAt            time.Time `json:"starts_at"`
	EndsAt              time.Time `json:"ends_at"`
}
