package jobs

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// store is the in-memory job registry. A job's record is mutated only by
// the worker running it; every mutation happens under the lock together
// with its companion fields, so snapshots never expose a partial
// state/result pair. Terminal jobs are retained (bounded by maxJobs) so
// results remain pollable after the worker goroutine has ended.
type store struct {
	mu      sync.RWMutex
	jobs    map[uuid.UUID]*record
	maxJobs int
}

type record struct {
	id        uuid.UUID
	filename  string
	state     State
	progress  int
	message   string
	resultID  *uuid.UUID
	err       string
	createdAt time.Time
}

func newStore(maxJobs int) *store {
	return &store{
		jobs:    make(map[uuid.UUID]*record),
		maxJobs: maxJobs,
	}
}

func (s *store) create(filename string) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := &record{
		id:        uuid.New(),
		filename:  filename,
		state:     StatePending,
		message:   "Queued for analysis",
		createdAt: time.Now(),
	}
	s.jobs[r.id] = r
	s.evictLocked()

	return r.snapshot()
}

func (s *store) remove(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.jobs, id)
}

func (s *store) snapshot(id uuid.UUID) (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.jobs[id]
	if !ok {
		return Snapshot{}, false
	}
	return r.snapshot(), true
}

// advance moves a running job forward. Progress is monotonic: a lower
// value than the current one is ignored.
func (s *store) advance(id uuid.UUID, state State, progress int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.jobs[id]
	if !ok || r.state.Terminal() {
		return
	}

	r.state = state
	if progress > r.progress {
		r.progress = progress
	}
	r.message = message
}

// complete transitions a job to its terminal success state, binding the
// result reference atomically with the state change.
func (s *store) complete(id uuid.UUID, resultID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.jobs[id]
	if !ok || r.state.Terminal() {
		return
	}

	r.state = StateCompleted
	r.progress = 100
	r.message = "Analysis complete"
	r.resultID = &resultID
}

// fail transitions a job to its terminal failure state. Progress stays
// frozen at its last reported value and no result is ever attached.
func (s *store) fail(id uuid.UUID, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.jobs[id]
	if !ok || r.state.Terminal() {
		return
	}

	r.state = StateFailed
	r.message = "Analysis failed"
	r.err = err.Error()
}

// evictLocked drops the oldest terminal jobs once the registry exceeds
// maxJobs. Running jobs are never evicted. Must be called with the lock held.
func (s *store) evictLocked() {
	if s.maxJobs <= 0 || len(s.jobs) <= s.maxJobs {
		return
	}

	terminal := make([]*record, 0, len(s.jobs))
	for _, r := range s.jobs {
		if r.state.Terminal() {
			terminal = append(terminal, r)
		}
	}

	sort.Slice(terminal, func(i, j int) bool {
		return terminal[i].createdAt.Before(terminal[j].createdAt)
	})

	excess := len(s.jobs) - s.maxJobs
	for i := 0; i < excess && i < len(terminal); i++ {
		delete(s.jobs, terminal[i].id)
	}
}

func (r *record) snapshot() Snapshot {
	snap := Snapshot{
		ID:        r.id,
		Filename:  r.filename,
		State:     r.state,
		Progress:  r.progress,
		Message:   r.message,
		Error:     r.err,
		CreatedAt: r.createdAt,
	}

	if r.resultID != nil {
		id := *r.resultID
		snap.ResultID = &id
	}

	return snap
}
