package schedule

import "errors"

var (
	// ErrInvalidStartTime is returned when the daily start time is not a
	// valid "HH:mm" wall-clock time of day
	ErrInvalidStartTime = errors.New("start time must be a valid HH:mm time of day")

	// ErrInvalidDuration is returned when the webinar duration is not positive
	ErrInvalidDuration = errors.New("duration must be greater than zero seconds")
)
