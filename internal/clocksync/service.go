// Package clocksync keeps an estimate of the authoritative server time on
// behalf of a viewer session. The local clock is never trusted directly: a
// round-trip measurement against the time endpoint yields an offset, and
// estimated time is always localNow + offset. The offset is replaced wholesale
// on every resync (last-resync-wins), and a failed resync keeps the previous
// offset in effect so the session degrades to stale-but-available.
package clocksync

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stwalsh4118/simulive/internal/logger"
)

// DefaultResyncInterval is how often the offset is refreshed against the
// authoritative time endpoint
const DefaultResyncInterval = 30 * time.Second

// Service owns the clock offset for one viewer session. Each presentation
// context creates its own instance with an explicit lifecycle; there is no
// process-wide shared offset.
type Service struct {
	fetcher        Fetcher
	clock          clockwork.Clock
	resyncInterval time.Duration

	mu      sync.RWMutex
	offset  time.Duration
	synced  bool
	lastErr error

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewService creates a clock sync service using the real wall clock
func NewService(fetcher Fetcher, resyncInterval time.Duration) *Service {
	return NewServiceWithClock(fetcher, resyncInterval, clockwork.NewRealClock())
}

// NewServiceWithClock creates a clock sync service with an injected clock.
// Tests pass a clockwork.FakeClock to control time.
func NewServiceWithClock(fetcher Fetcher, resyncInterval time.Duration, clock clockwork.Clock) *Service {
	if resyncInterval <= 0 {
		resyncInterval = DefaultResyncInterval
	}
	return &Service{
		fetcher:        fetcher,
		clock:          clock,
		resyncInterval: resyncInterval,
		stopCh:         make(chan struct{}),
		doneCh:         make(chan struct{}),
	}
}

// Sync performs one round trip and replaces the stored offset. On failure the
// previous offset is retained and the error is recorded for Err.
func (s *Service) Sync(ctx context.Context) error {
	requestSentAt := s.clock.Now()
	resp, err := s.fetcher.FetchServerTime(ctx)
	responseReceivedAt := s.clock.Now()

	if err != nil {
		s.mu.Lock()
		s.lastErr = err
		s.mu.Unlock()

		logger.Log.Warn().
			Err(err).
			Msg("Clock sync failed, keeping previous offset")
		return err
	}

	sample := Sample{
		RequestSentAt:      requestSentAt,
		ResponseReceivedAt: responseReceivedAt,
		ServerTimestamp:    time.UnixMilli(resp.Timestamp),
	}

	s.mu.Lock()
	s.offset = sample.Offset()
	s.synced = true
	s.lastErr = nil
	s.mu.Unlock()

	logger.Log.Debug().
		Dur("offset", sample.Offset()).
		Dur("round_trip", sample.RoundTrip()).
		Msg("Clock offset updated")

	return nil
}

// EstimatedNow returns the current authoritative instant as estimated from
// the local clock plus the last known offset
func (s *Service) EstimatedNow() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clock.Now().Add(s.offset)
}

// Offset returns the last computed clock offset
func (s *Service) Offset() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.offset
}

// Synced reports whether at least one sync has succeeded
func (s *Service) Synced() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.synced
}

// Err returns the error from the most recent sync attempt, or nil if it
// succeeded. A non-nil error with Synced() true means the estimate is stale
// but still usable.
func (s *Service) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Start syncs immediately and then resyncs on a fixed interval until Stop is
// called or the context is cancelled. The initial sync error, if any, is
// returned; the background loop keeps retrying on schedule regardless.
func (s *Service) Start(ctx context.Context) error {
	err := s.Sync(ctx)

	go s.runResyncLoop(ctx)

	return err
}

// Stop tears down the resync loop and waits for it to exit
func (s *Service) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})
	<-s.doneCh
}

func (s *Service) runResyncLoop(ctx context.Context) {
	defer close(s.doneCh)

	ticker := s.clock.NewTicker(s.resyncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.Chan():
			// A rejected fetch is not retried eagerly; the next tick is the retry
			_ = s.Sync(ctx) // nolint:errcheck // error recorded in lastErr
		case <-s.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}
