// Package rendezvous implements the two-phase handshake between a single
// coordinator and a fixed pool of workers.
//
// The handshake is an asymmetric barrier. While the coordinator is active
// (PhaseSelecting) every worker is parked; a call to Release starts a new
// generation and wakes all parked workers at once (PhaseRelaxing). The
// coordinator then blocks in AwaitCompletion until every worker has called
// Arrive for that generation, at which point the phase flips back to
// PhaseSelecting. At no time are both sides active.
package rendezvous

import (
	"context"
	"sync"

	"golang.org/x/xerrors"
)

var (
	// ErrInvalidParties is returned by New when the worker count is not
	// positive.
	ErrInvalidParties = xerrors.New("rendezvous requires at least one worker")

	// ErrStopped is returned to workers parked in Await and to coordinators
	// calling Release after Stop has been invoked.
	ErrStopped = xerrors.New("rendezvous stopped")

	// ErrPhaseViolation is returned when a call is made from the wrong
	// phase of the protocol. It indicates a bug in the caller and is not
	// recoverable.
	ErrPhaseViolation = xerrors.New("rendezvous phase violation")
)

// Phase identifies which side of the handshake is currently active.
type Phase int

const (
	// PhaseSelecting means the coordinator is active and workers are parked.
	PhaseSelecting Phase = iota

	// PhaseRelaxing means workers are active and the coordinator is parked.
	PhaseRelaxing

	// PhaseStopped is terminal.
	PhaseStopped
)

func (p Phase) String() string {
	switch p {
	case PhaseSelecting:
		return "selecting"
	case PhaseRelaxing:
		return "relaxing"
	case PhaseStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Rendezvous coordinates one coordinator and a fixed number of worker
// parties. The zero value is not usable; create instances with New.
type Rendezvous struct {
	parties int

	// mu guards every field below.
	mu          sync.Mutex
	phase       Phase
	generation  uint64
	arrived     int
	lastArrival []uint64

	// releaseCh is closed to wake the workers waiting on the current
	// generation and immediately replaced by a fresh channel.
	releaseCh chan struct{}

	// completeCh receives one token per generation from the last worker
	// to arrive.
	completeCh chan struct{}
}

// New returns a rendezvous for the given number of worker parties.
func New(parties int) (*Rendezvous, error) {
	if parties < 1 {
		return nil, xerrors.Errorf("new rendezvous with %d parties: %w", parties, ErrInvalidParties)
	}

	return &Rendezvous{
		parties:     parties,
		phase:       PhaseSelecting,
		lastArrival: make([]uint64, parties),
		releaseCh:   make(chan struct{}),
		completeCh:  make(chan struct{}, 1),
	}, nil
}

// Phase returns the current phase.
func (r *Rendezvous) Phase() Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

// Generation returns the number of generations released so far.
func (r *Rendezvous) Generation() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.generation
}

// Release is called by the coordinator once it has published the work for
// the next generation. It wakes every parked worker and returns the new
// generation number. Anything the coordinator wrote before calling Release
// is visible to workers returning from Await.
func (r *Rendezvous) Release() (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.phase {
	case PhaseStopped:
		return 0, ErrStopped
	case PhaseRelaxing:
		return 0, xerrors.Errorf("release while generation %d is still running: %w", r.generation, ErrPhaseViolation)
	}

	r.phase = PhaseRelaxing
	r.generation++
	close(r.releaseCh)
	r.releaseCh = make(chan struct{})
	return r.generation, nil
}

// AwaitCompletion blocks the coordinator until every party has arrived for
// the current generation or ctx expires. Writes made by workers before
// Arrive are visible once AwaitCompletion returns nil.
func (r *Rendezvous) AwaitCompletion(ctx context.Context) error {
	select {
	case <-r.completeCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop moves the rendezvous into its terminal phase and wakes all parked
// workers, which observe ErrStopped. Calling Stop more than once is a no-op.
func (r *Rendezvous) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase == PhaseStopped {
		return
	}
	r.phase = PhaseStopped
	close(r.releaseCh)
}

// Await parks a worker until a generation newer than seen is released. It
// returns the released generation, ErrStopped once the coordinator has
// stopped the rendezvous, or the context error.
func (r *Rendezvous) Await(ctx context.Context, seen uint64) (uint64, error) {
	for {
		r.mu.Lock()
		if r.phase == PhaseStopped {
			r.mu.Unlock()
			return 0, ErrStopped
		}
		if gen := r.generation; gen > seen {
			r.mu.Unlock()
			if gen != seen+1 {
				return 0, xerrors.Errorf("worker finished generation %d but %d was released: %w", seen, gen, ErrPhaseViolation)
			}
			return gen, nil
		}
		ch := r.releaseCh
		r.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
}

// Arrive records that the worker with the given party index has finished
// the current generation. The party that completes the count resets it,
// hands the active phase back to the coordinator and signals it.
func (r *Rendezvous) Arrive(party int) error {
	if party < 0 || party >= r.parties {
		return xerrors.Errorf("arrival from unknown party %d: %w", party, ErrPhaseViolation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != PhaseRelaxing {
		return xerrors.Errorf("party %d arrived during %s phase: %w", party, r.phase, ErrPhaseViolation)
	}
	if r.lastArrival[party] == r.generation {
		return xerrors.Errorf("party %d arrived twice for generation %d: %w", party, r.generation, ErrPhaseViolation)
	}

	r.lastArrival[party] = r.generation
	r.arrived++
	if r.arrived == r.parties {
		r.arrived = 0
		r.phase = PhaseSelecting
		// the coordinator drains completeCh before every Release so the
		// buffered send never blocks
		r.completeCh <- struct{}{}
	}
	return nil
}
