// Package sched implements the cooperative task-group scheduler: work
// submitted under the same named group runs one task at a time (the
// order among tasks waiting on a group is not defined); work under
// different groups runs concurrently, bounded by a total-concurrency
// semaphore.
//
// db::Table work never goes through this scheduler — each table
// partition already serializes its own work on a dedicated goroutine,
// so partition affinity IS that group's scheduling unit. Scheduler
// groups exist for everything that doesn't already own a goroutine:
// config application (bgp::Config), per-peer FSM driving
// (bgp::StateMachine, keyed by peer), RIB membership bookkeeping
// (bgp::PeerMembership), and introspection (bgp::ShowCommand).
package sched

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// DefaultConcurrency bounds the total number of tasks running at once
// across every group, when Scheduler is built with New (0 means use
// this default).
const DefaultConcurrency = 64

// group is one named lane: its mutex lets Submit calls onto it run one
// at a time. A sync.Mutex is not FIFO, so waiting calls do not run in
// submission order.
type group struct {
	mu sync.Mutex
}

// Scheduler is the §5 task-group scheduler: named groups run their own
// work sequentially; the semaphore bounds how many groups' work can
// execute at once across the whole Scheduler.
type Scheduler struct {
	sem *semaphore.Weighted

	mu     sync.Mutex
	groups map[string]*group
}

// New creates a Scheduler allowing at most concurrency tasks to run at
// once across all groups. concurrency <= 0 uses DefaultConcurrency.
func New(concurrency int) *Scheduler {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Scheduler{
		sem:    semaphore.NewWeighted(int64(concurrency)),
		groups: make(map[string]*group),
	}
}

func (s *Scheduler) groupFor(name string) *group {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.groups[name]
	if !ok {
		g = &group{}
		s.groups[name] = g
	}
	return g
}

// Submit runs fn under the named group, blocking the caller until fn
// has completed (or ctx is cancelled while waiting for a semaphore
// slot). Concurrent Submit calls against the SAME group name run one
// at a time, in no defined order; Submit calls against
// DIFFERENT group names may run concurrently, up to the Scheduler's
// total concurrency bound.
func (s *Scheduler) Submit(ctx context.Context, groupName string, fn func(context.Context) error) error {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer s.sem.Release(1)

	g := s.groupFor(groupName)
	g.mu.Lock()
	defer g.mu.Unlock()

	// A fresh errgroup per submission: it's the library's idiomatic
	// one-shot "run and collect the error" wrapper, not a lane this
	// Scheduler needs to keep across calls — group.mu already owns
	// sequencing within groupName.
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error { return fn(egCtx) })
	return eg.Wait()
}

// Group names used by the rest of this core.
const (
	GroupConfig         = "bgp::Config"
	GroupStateMachine   = "bgp::StateMachine"
	GroupPeerMembership = "bgp::PeerMembership"
	GroupShowCommand    = "bgp::ShowCommand"
)

// PeerGroup returns the per-peer bgp::StateMachine group name
// §5 describes as "keyed by peer" — one FSM-driving lane per peer
// identity, so two different peers' events never block each other.
func PeerGroup(peerAddr string) string {
	return GroupStateMachine + ":" + peerAddr
}
