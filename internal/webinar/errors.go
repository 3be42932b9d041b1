package webinar

import "errors"

var (
	// ErrWebinarNotFound is returned when the requested webinar does not exist
	ErrWebinarNotFound = errors.New("webinar not found")

	// ErrInvalidScheduleTime is returned when the daily start time is not a
	// valid HH:mm time of day
	ErrInvalidScheduleTime = errors.New("schedule time must be in HH:mm format")

	// ErrInvalidDuration is returned when the duration is not positive
	ErrInvalidDuration = errors.New("duration must be greater than zero seconds")

	// ErrInvalidCTA is returned when call-to-action settings are incomplete
	// or the show time falls outside the webinar duration
	ErrInvalidCTA = errors.New("invalid call-to-action settings")
)
