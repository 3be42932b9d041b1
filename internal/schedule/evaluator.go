// Package schedule derives the playback state of a daily recurring webinar
// from an authoritative instant, creating the illusion that a pre-recorded
// video is a live broadcast that viewers join mid-stream.
package schedule

import (
	"time"
)

// ReferenceTimezone is the fixed timezone against which daily start times are
// interpreted, independent of viewer locale. JST observes no daylight saving,
// so a fixed offset is exact year-round.
var ReferenceTimezone = time.FixedZone("Asia/Tokyo", 9*60*60)

const clockLayout = "15:04"

// ParseClock validates a "HH:mm" daily start time and returns its hour and
// minute components. Used at the data-entry boundary; Evaluate assumes
// already-validated input.
func ParseClock(startTime string) (hour, minute int, err error) {
	t, err := time.Parse(clockLayout, startTime)
	if err != nil {
		return 0, 0, ErrInvalidStartTime
	}
	return t.Hour(), t.Minute(), nil
}

// Evaluate classifies the given authoritative instant against a webinar's
// daily schedule. This is a pure function with no I/O: the same inputs always
// yield the same Result.
//
// "Today" is resolved from the instant's calendar date in the reference
// timezone, and the start instant is that date plus the daily start time.
// There is no concept of yesterday's session: a webinar scheduled at 23:50
// with a one hour duration stays on air through 00:50 the next calendar day
// and transitions directly to ended, re-arming only when the date rolls the
// start instant forward again.
//
// Boundaries are closed on the lower end of each interval: an instant equal
// to the start is on air at offset 0, an instant equal to the end is ended.
func Evaluate(now time.Time, startTime string, durationSec int64) (*Result, error) {
	hour, minute, err := ParseClock(startTime)
	if err != nil {
		return nil, err
	}
	if durationSec <= 0 {
		return nil, ErrInvalidDuration
	}

	local := now.In(ReferenceTimezone)
	year, month, day := local.Date()
	start := time.Date(year, month, day, hour, minute, 0, 0, ReferenceTimezone)
	end := start.Add(time.Duration(durationSec) * time.Second)

	switch {
	case now.Before(start):
		return &Result{
			State:            StateBefore,
			RemainingSeconds: ceilSeconds(start.Sub(now)),
			StartsAt:         start,
			EndsAt:           end,
		}, nil

	case now.Before(end):
		// Truncation floors the offset, keeping it strictly below durationSec
		return &Result{
			State:               StateOnAir,
			SeekPositionSeconds: int64(now.Sub(start) / time.Second),
			StartsAt:            start,
			EndsAt:              end,
		}, nil

	default:
		return &Result{
			State:    StateEnded,
			StartsAt: start,
			EndsAt:   end,
		}, nil
	}
}

// ceilSeconds converts a positive duration to whole seconds, rounding up so a
// countdown never reports zero while time still remains.
func ceilSeconds(d time.Duration) int64 {
	secs := int64(d / time.Second)
	if d%time.Second > 0 {
		secs++
	}
	return secs
}
