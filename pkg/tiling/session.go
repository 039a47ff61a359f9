package tiling

import (
	"context"
	"fmt"
	"io"
	"iter"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/blockfill/pkg/grid"
	"github.com/matzehuels/blockfill/pkg/rng"
)

// State is the lifecycle position of a session.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateExhausted
	StateStepCapReached
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateExhausted:
		return "exhausted"
	case StateStepCapReached:
		return "step_cap_reached"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Finished reports whether s is terminal.
func (s State) Finished() bool { return s >= StateExhausted }

// Option configures a Session.
type Option func(*Session)

// WithListener adds a listener. Listeners are called in the order added.
func WithListener(l Listener) Option {
	return func(s *Session) { s.listeners = append(s.listeners, l) }
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPlanner overrides the planner selected by Config.Strategy.
func WithPlanner(p Planner) Option {
	return func(s *Session) { s.planner = p }
}

// Session drives one tiling from an empty grid to a terminal state.
// It is not safe for concurrent use.
type Session struct {
	cfg       Config
	grid      *grid.Grid
	rng       *rng.Source
	planner   Planner
	listeners listeners
	logger    *log.Logger

	state State
	steps int
	err   error
}

// NewSession validates cfg and prepares a session in the idle state.
// Invalid configuration fails with an INVALID_CONFIG error.
func NewSession(cfg Config, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Strategy = cfg.strategy()

	g, err := grid.New(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}

	s := &Session{
		cfg:    cfg,
		grid:   g,
		rng:    rng.New(cfg.Seed),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.planner == nil {
		if s.planner, err = NewPlanner(cfg.Strategy, cfg.MinBlock, cfg.MaxBlock); err != nil {
			return nil, err
		}
	}
	s.planner.Init(g, s.rng)
	return s, nil
}

// Next performs one step and returns the committed rectangle. It returns
// false once the session has finished; further calls keep returning false.
func (s *Session) Next() (grid.Rect, bool) {
	switch s.state {
	case StateIdle:
		s.state = StateRunning
		s.logger.Debug("session started", "strategy", s.cfg.Strategy, "grid", fmt.Sprintf("%dx%d", s.cfg.Width, s.cfg.Height), "seed", s.cfg.Seed)
	case StateRunning:
	default:
		return grid.Rect{}, false
	}

	if s.steps >= s.cfg.MaxSteps {
		s.finish(StateStepCapReached)
		return grid.Rect{}, false
	}

	seed, ok := s.planner.Next()
	if !ok {
		s.finish(StateExhausted)
		return grid.Rect{}, false
	}

	c := s.planner.Plan(seed)
	if c.Clamped {
		d := Diagnostic{Step: s.steps, Seed: seed, Available: c.Available, MinBlock: s.cfg.MinBlock}
		s.logger.Warn(d.String(), "step", d.Step)
		s.listeners.diagnostic(d)
	}

	r, err := s.grid.Commit(c.X, c.Y, c.W, c.H)
	if err != nil {
		s.err = fmt.Errorf("step %d: commit %dx%d at (%d,%d) from seed (%d,%d): %w",
			s.steps, c.W, c.H, c.X, c.Y, seed.X, seed.Y, err)
		s.logger.Error("commit failed", "err", s.err)
		s.finish(StateFailed)
		return grid.Rect{}, false
	}
	s.planner.Committed(r)
	s.listeners.placed(r)

	s.steps++
	if s.steps == s.cfg.MaxSteps {
		s.finish(StateStepCapReached)
	}
	return r, true
}

func (s *Session) finish(st State) {
	s.state = st
	reason := s.Reason()
	s.logger.Debug("session finished", "reason", reason, "steps", s.steps, "assigned", s.grid.Assigned(), "cells", s.grid.Cells())
	s.listeners.finished(reason)
}

// All returns the remaining rectangles as a sequence. The sequence is
// lazy and shares the session's position, so it cannot be restarted.
func (s *Session) All() iter.Seq[grid.Rect] {
	return func(yield func(grid.Rect) bool) {
		for {
			r, ok := s.Next()
			if !ok || !yield(r) {
				return
			}
		}
	}
}

// Drain runs the session to completion and returns the result.
func (s *Session) Drain() *Tiling {
	for range s.All() {
	}
	return s.Result()
}

// DrainContext is Drain with cancellation checked between steps. On
// cancellation it returns the partial result together with ctx.Err().
func (s *Session) DrainContext(ctx context.Context) (*Tiling, error) {
	for {
		if err := ctx.Err(); err != nil {
			return s.Result(), err
		}
		if _, ok := s.Next(); !ok {
			return s.Result(), s.err
		}
	}
}

// Result snapshots the session. Reason is empty until the session finishes.
func (s *Session) Result() *Tiling {
	return &Tiling{
		Config: s.cfg,
		Steps:  s.steps,
		Reason: s.Reason(),
		Rects:  s.grid.Rects(),
	}
}

// Reason returns the finish reason, or "" while the session is running.
func (s *Session) Reason() Reason {
	switch s.state {
	case StateExhausted:
		return ReasonExhausted
	case StateStepCapReached:
		return ReasonStepCapReached
	case StateFailed:
		return ReasonFailed
	}
	return ""
}

func (s *Session) State() State     { return s.state }
func (s *Session) Steps() int       { return s.steps }
func (s *Session) Config() Config   { return s.cfg }
func (s *Session) Planner() Planner { return s.planner }
func (s *Session) Grid() *grid.Grid { return s.grid }

// Err returns the commit error that ended a failed session.
func (s *Session) Err() error { return s.err }
