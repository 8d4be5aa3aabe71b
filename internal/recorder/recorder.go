package recorder

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/CHIEF1K/cape-quest-paths/internal/route"
	"github.com/CHIEF1K/cape-quest-paths/internal/shared/geo"
	"github.com/CHIEF1K/cape-quest-paths/internal/stream"
	"github.com/CHIEF1K/cape-quest-paths/internal/visited"

	"github.com/google/uuid"
)

type State string

const (
	StateIdle      State = "idle"
	StateRecording State = "recording"
)

// TrackPoint is the live event broadcast for every accumulated point.
// Only the new point goes out, never the whole path.
type TrackPoint struct {
	Coord      geo.Coordinate `json:"coord"`
	Index      int            `json:"index"`
	DistanceKm float64        `json:"distance_km"`
}

// Status is the recorder's externally visible state.
type Status struct {
	State       State    `json:"state"`
	Points      int      `json:"points"`
	DistanceKm  float64  `json:"distance_km"`
	ElapsedSec  int64    `json:"elapsed_sec"`
	SessionGems []string `json:"session_gems"`
}

var (
	nowFn   = time.Now
	newIDFn = uuid.NewString
)

// Recorder is a two-state machine, Idle or Recording. While recording it
// consumes the location source on a single goroutine, so samples land in
// the path in arrival order. The generation counter makes cancellation
// exact: once Stop or a restart bumps it, in-flight samples of the old
// subscription can no longer touch the path.
type Recorder struct {
	source  Source
	store   route.Store
	tracker *visited.Tracker
	hub     *stream.Hub

	mu          sync.Mutex
	state       State
	path        []geo.Coordinate
	distanceKm  float64
	startedAt   time.Time
	sessionGems []string
	gen         int
	cancel      context.CancelFunc
	done        chan struct{}
}

func NewRecorder(source Source, store route.Store, tracker *visited.Tracker, hub *stream.Hub) *Recorder {
	return &Recorder{
		source:  source,
		store:   store,
		tracker: tracker,
		hub:     hub,
		state:   StateIdle,
	}
}

// Start begins a new recording. Starting while already recording restarts:
// the old subscription is cancelled, its partial path discarded, nothing
// persisted. Without a location source recording can never start.
func (r *Recorder) Start(ctx context.Context) error {
	if r.source == nil {
		return ErrUnsupported
	}

	r.mu.Lock()
	oldCancel, oldDone := r.cancel, r.done

	r.gen++
	gen := r.gen
	r.state = StateRecording
	r.path = nil
	r.distanceKm = 0
	r.sessionGems = nil
	r.startedAt = nowFn()

	watchCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	done := make(chan struct{})
	r.cancel = cancel
	r.done = done
	r.mu.Unlock()

	if oldCancel != nil {
		oldCancel()
		<-oldDone
	}

	samples, err := r.source.Watch(watchCtx)
	if err != nil {
		cancel()
		close(done)
		r.mu.Lock()
		if r.gen == gen {
			r.state = StateIdle
		}
		r.mu.Unlock()
		return err
	}

	go r.consume(watchCtx, gen, samples, done)
	return nil
}

func (r *Recorder) consume(ctx context.Context, gen int, samples <-chan Sample, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-ctx.Done():
			return
		case s := <-samples:
			if s.Err != nil {
				log.Printf("location sample error: %v", s.Err)
				continue
			}
			r.handleSample(ctx, gen, s)
		}
	}
}

func (r *Recorder) handleSample(ctx context.Context, gen int, s Sample) {
	r.mu.Lock()
	if r.state != StateRecording || gen != r.gen {
		r.mu.Unlock()
		return
	}
	r.path = append(r.path, s.Coord)
	n := len(r.path)
	if n >= 2 {
		r.distanceKm += r.path[n-2].DistanceKm(r.path[n-1])
	}
	point := TrackPoint{Coord: s.Coord, Index: n - 1, DistanceKm: r.distanceKm}
	r.mu.Unlock()

	if r.hub != nil {
		r.hub.Publish(stream.TopicTrack, stream.Event{Type: "point", Data: point})
	}

	if r.tracker != nil {
		found, err := r.tracker.Observe(ctx, s.Coord)
		if err != nil {
			log.Printf("visited cross-check error: %v", err)
		}
		if len(found) > 0 {
			r.mu.Lock()
			if gen == r.gen {
				for _, g := range found {
					r.sessionGems = append(r.sessionGems, g.ID)
				}
			}
			r.mu.Unlock()
		}
	}
}

// Stop finalizes the recording. The subscription is cancelled before the
// path is read, so the returned route is exact. Fewer than two points is
// not a route: nothing is persisted and saved is false. Stop while Idle
// is a no-op.
func (r *Recorder) Stop(ctx context.Context, name string) (route.Route, bool, error) {
	r.mu.Lock()
	if r.state != StateRecording {
		r.mu.Unlock()
		return route.Route{}, false, nil
	}

	r.gen++
	r.state = StateIdle
	cancel, done := r.cancel, r.done
	r.cancel, r.done = nil, nil

	path := append([]geo.Coordinate(nil), r.path...)
	distance := r.distanceKm
	startedAt := r.startedAt
	gems := append([]string(nil), r.sessionGems...)
	r.path = nil
	r.sessionGems = nil
	r.mu.Unlock()

	cancel()
	<-done

	if len(path) < 2 {
		return route.Route{}, false, nil
	}

	now := nowFn()
	if name == "" {
		name = "Path " + now.Format("2 Jan 2006 15:04")
	}
	saved := route.Route{
		ID:          newIDFn(),
		Name:        name,
		Path:        path,
		DistanceKm:  distance,
		DurationSec: int64(now.Sub(startedAt) / time.Second),
		CreatedAt:   now,
		VisitedGems: gems,
	}
	if err := r.store.SaveRoute(ctx, saved); err != nil {
		return route.Route{}, false, err
	}
	return saved, true, nil
}

// Status reports the current state without disturbing it.
func (r *Recorder) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()

	st := Status{
		State:       r.state,
		Points:      len(r.path),
		DistanceKm:  r.distanceKm,
		SessionGems: append([]string{}, r.sessionGems...),
	}
	if r.state == StateRecording {
		st.ElapsedSec = int64(nowFn().Sub(r.startedAt) / time.Second)
	}
	return st
}

// Path returns a copy of the accumulated path so far.
func (r *Recorder) Path() []geo.Coordinate {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]geo.Coordinate(nil), r.path...)
}
