package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper to build an instant on a fixed reference-timezone calendar date
func jstTime(hour, minute, second int) time.Time {
	return time.Date(2024, time.June, 10, hour, minute, second, 0, ReferenceTimezone)
}

func TestEvaluate_BeforeStart(t *testing.T) {
	// 19:59:59 against a 20:00 schedule
	result, err := Evaluate(jstTime(19, 59, 59), "20:00", 3600)

	require.NoError(t, err)
	assert.Equal(t, StateBefore, result.State)
	assert.Equal(t, int64(1), result.RemainingSeconds)
	assert.Equal(t, int64(0), result.SeekPositionSeconds)
}

func TestEvaluate_ExactlyAtStart(t *testing.T) {
	result, err := Evaluate(jstTime(20, 0, 0), "20:00", 3600)

	require.NoError(t, err)
	assert.Equal(t, StateOnAir, result.State)
	assert.Equal(t, int64(0), result.SeekPositionSeconds)
}

func TestEvaluate_MidBroadcast(t *testing.T) {
	result, err := Evaluate(jstTime(20, 30, 0), "20:00", 3600)

	require.NoError(t, err)
	assert.Equal(t, StateOnAir, result.State)
	assert.Equal(t, int64(1800), result.SeekPositionSeconds)
}

func TestEvaluate_ExactlyAtEnd(t *testing.T) {
	result, err := Evaluate(jstTime(21, 0, 0), "20:00", 3600)

	require.NoError(t, err)
	assert.Equal(t, StateEnded, result.State)
}

func TestEvaluate_OneSecondBeforeEnd(t *testing.T) {
	result, err := Evaluate(jstTime(20, 59, 59), "20:00", 3600)

	require.NoError(t, err)
	assert.Equal(t, StateOnAir, result.State)
	assert.Equal(t, int64(3599), result.SeekPositionSeconds)
}

func TestEvaluate_RemainingSecondsRoundsUp(t *testing.T) {
	// 500ms before start still counts as one whole second remaining
	now := jstTime(19, 59, 59).Add(500 * time.Millisecond)
	result, err := Evaluate(now, "20:00", 3600)

	require.NoError(t, err)
	assert.Equal(t, StateBefore, result.State)
	assert.Equal(t, int64(1), result.RemainingSeconds)
}

func TestEvaluate_SubSecondOffsetFloors(t *testing.T) {
	now := jstTime(20, 0, 30).Add(900 * time.Millisecond)
	result, err := Evaluate(now, "20:00", 3600)

	require.NoError(t, err)
	assert.Equal(t, StateOnAir, result.State)
	assert.Equal(t, int64(30), result.SeekPositionSeconds)
}

func TestEvaluate_RemainingStrictlyDecreasing(t *testing.T) {
	prev := int64(1 << 62)
	for _, offset := range []time.Duration{0, time.Second, 5 * time.Second, time.Minute, time.Hour} {
		result, err := Evaluate(jstTime(10, 0, 0).Add(offset), "20:00", 3600)
		require.NoError(t, err)
		require.Equal(t, StateBefore, result.State)
		assert.Less(t, result.RemainingSeconds, prev)
		prev = result.RemainingSeconds
	}
}

func TestEvaluate_SeekPositionAlwaysWithinDuration(t *testing.T) {
	for sec := 0; sec < 3600; sec += 97 {
		result, err := Evaluate(jstTime(20, 0, 0).Add(time.Duration(sec)*time.Second), "20:00", 3600)
		require.NoError(t, err)
		require.Equal(t, StateOnAir, result.State)
		assert.GreaterOrEqual(t, result.SeekPositionSeconds, int64(0))
		assert.Less(t, result.SeekPositionSeconds, int64(3600))
	}
}

func TestEvaluate_ViewerInDifferentTimezone(t *testing.T) {
	// 20:30 JST expressed as 11:30 UTC must classify identically
	utcNow := jstTime(20, 30, 0).UTC()
	result, err := Evaluate(utcNow, "20:00", 3600)

	require.NoError(t, err)
	assert.Equal(t, StateOnAir, result.State)
	assert.Equal(t, int64(1800), result.SeekPositionSeconds)
}

func TestEvaluate_MidnightSpanningBroadcast(t *testing.T) {
	// A 23:50 webinar with a one hour duration is evaluated against the new
	// calendar date after midnight. The start instant re-derives to 23:50 of
	// the new date, so an instant at 00:20 is classified as before the new
	// session rather than on air in the old one. The session that began the
	// previous evening is only reachable while the date has not rolled over.
	lateEvening := jstTime(23, 55, 0)
	result, err := Evaluate(lateEvening, "23:50", 3600)
	require.NoError(t, err)
	assert.Equal(t, StateOnAir, result.State)
	assert.Equal(t, int64(300), result.SeekPositionSeconds)

	afterMidnight := time.Date(2024, time.June, 11, 0, 20, 0, 0, ReferenceTimezone)
	result, err = Evaluate(afterMidnight, "23:50", 3600)
	require.NoError(t, err)
	assert.Equal(t, StateBefore, result.State)
}

func TestEvaluate_StartAlreadyPassedToday(t *testing.T) {
	// Viewer arrives hours after start but duration has not elapsed: on air
	// at the corresponding offset, never a "yesterday's session"
	result, err := Evaluate(jstTime(22, 0, 0), "20:00", 3*3600)

	require.NoError(t, err)
	assert.Equal(t, StateOnAir, result.State)
	assert.Equal(t, int64(7200), result.SeekPositionSeconds)
}

func TestEvaluate_Idempotent(t *testing.T) {
	now := jstTime(20, 15, 42)

	first, err := Evaluate(now, "20:00", 3600)
	require.NoError(t, err)
	second, err := Evaluate(now, "20:00", 3600)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEvaluate_InvalidStartTime(t *testing.T) {
	for _, startTime := range []string{"", "25:00", "12:61", "noon", "1230"} {
		_, err := Evaluate(jstTime(12, 0, 0), startTime, 3600)
		assert.ErrorIs(t, err, ErrInvalidStartTime, "start time %q", startTime)
	}
}

func TestEvaluate_InvalidDuration(t *testing.T) {
	_, err := Evaluate(jstTime(12, 0, 0), "20:00", 0)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = Evaluate(jstTime(12, 0, 0), "20:00", -60)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestEvaluate_StartAndEndInstants(t *testing.T) {
	result, err := Evaluate(jstTime(9, 0, 0), "20:00", 3600)

	require.NoError(t, err)
	assert.Equal(t, jstTime(20, 0, 0).Unix(), result.StartsAt.Unix())
	assert.Equal(t, jstTime(21, 0, 0).Unix(), result.EndsAt.Unix())
}

func TestParseClock(t *testing.T) {
	hour, minute, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 9, hour)
	assert.Equal(t, 30, minute)

	_, _, err = ParseClock("9:30pm")
	assert.ErrorIs(t, err, ErrInvalidStartTime)
}
