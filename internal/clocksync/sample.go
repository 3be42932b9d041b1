package clocksync

import "time"

// Sample captures one round trip against the authoritative time endpoint.
// RequestSentAt and ResponseReceivedAt are client-local timestamps taken
// immediately before and after the network call; ServerTimestamp is the
// authoritative instant reported in the response.
type Sample struct {
	RequestSentAt      time.Time
	ResponseReceivedAt time.Time
	ServerTimestamp    time.Time
}

// RoundTrip returns the total request/response duration
func (s Sample) RoundTrip() time.Duration {
	return s.ResponseReceivedAt.Sub(s.RequestSentAt)
}

// OneWayLatency estimates the network delay of the response leg as half the
// round trip. The symmetric-latency assumption is a known approximation:
// asymmetric network paths are not corrected for.
func (s Sample) OneWayLatency() time.Duration {
	return s.RoundTrip() / 2
}

// Offset returns the correction to add to the local clock so that
// localNow + Offset approximates the authoritative instant.
func (s Sample) Offset() time.Duration {
	adjusted := s.ServerTimestamp.Add(s.OneWayLatency())
	return adjusted.Sub(s.ResponseReceivedAt)
}
