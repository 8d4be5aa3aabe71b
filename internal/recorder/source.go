package recorder

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/CHIEF1K/cape-quest-paths/internal/shared/geo"
)

// ErrUnsupported means no location source is available. Recording can
// never start without one.
var ErrUnsupported = errors.New("location source unavailable")

// ErrIdle means a sample arrived while no recording was consuming it.
var ErrIdle = errors.New("no active recording")

// Sample is one reading from a location source. Err is set when the
// device reported a failure (timeout, permission denied) instead of a
// position; such samples are logged and skipped, never fatal.
type Sample struct {
	Coord geo.Coordinate
	At    time.Time
	Err   error
}

// Source is a cancellable stream of location samples. Watch delivers
// samples on the returned channel until ctx is cancelled. Implementations
// must not close the channel; consumers stop via ctx.
type Source interface {
	Watch(ctx context.Context) (<-chan Sample, error)
}

// PushSource adapts externally pushed position updates to the Source
// contract. The HTTP layer pushes, the recorder watches.
type PushSource struct {
	mu      sync.Mutex
	samples chan Sample
	ctx     context.Context
}

func NewPushSource() *PushSource {
	return &PushSource{}
}

// Watch hands out a fresh channel per subscription. An earlier
// subscription's channel is abandoned, not closed, so a late Push can
// never panic on it.
func (s *PushSource) Watch(ctx context.Context) (<-chan Sample, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.samples = make(chan Sample, 16)
	s.ctx = ctx
	return s.samples, nil
}

// Push delivers one sample to the current subscriber. Returns ErrIdle
// when nothing is watching or the watch has been cancelled.
func (s *PushSource) Push(sample Sample) error {
	s.mu.Lock()
	ch, ctx := s.samples, s.ctx
	s.mu.Unlock()

	if ch == nil || ctx == nil {
		return ErrIdle
	}
	select {
	case <-ctx.Done():
		return ErrIdle
	case ch <- sample:
		return nil
	}
}
