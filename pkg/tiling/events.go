package tiling

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/blockfill/pkg/grid"
)

// Reason explains why a session stopped.
type Reason string

const (
	// ReasonExhausted means the planner ran out of starting points.
	ReasonExhausted Reason = "exhausted"
	// ReasonStepCapReached means MaxSteps rectangles were placed.
	ReasonStepCapReached Reason = "step_cap_reached"
	// ReasonFailed means a planned rectangle could not be committed.
	ReasonFailed Reason = "failed"
)

// Listener receives the rectangle stream of a session.
//
// RectanglePlaced is called once per committed rectangle in commit order.
// GenerationFinished is called exactly once.
type Listener interface {
	RectanglePlaced(r grid.Rect)
	GenerationFinished(reason Reason)
}

// DiagnosticListener is implemented by listeners that also want to hear
// about clamped steps.
type DiagnosticListener interface {
	Diagnostic(d Diagnostic)
}

// ListenerFuncs adapts plain functions to Listener and DiagnosticListener.
// Nil fields are ignored.
type ListenerFuncs struct {
	OnPlaced     func(grid.Rect)
	OnFinished   func(Reason)
	OnDiagnostic func(Diagnostic)
}

func (f ListenerFuncs) RectanglePlaced(r grid.Rect) {
	if f.OnPlaced != nil {
		f.OnPlaced(r)
	}
}

func (f ListenerFuncs) GenerationFinished(reason Reason) {
	if f.OnFinished != nil {
		f.OnFinished(reason)
	}
}

func (f ListenerFuncs) Diagnostic(d Diagnostic) {
	if f.OnDiagnostic != nil {
		f.OnDiagnostic(d)
	}
}

type listeners []Listener

func (ls listeners) placed(r grid.Rect) {
	for _, l := range ls {
		l.RectanglePlaced(r)
	}
}

func (ls listeners) finished(reason Reason) {
	for _, l := range ls {
		l.GenerationFinished(reason)
	}
}

func (ls listeners) diagnostic(d Diagnostic) {
	for _, l := range ls {
		if dl, ok := l.(DiagnosticListener); ok {
			dl.Diagnostic(d)
		}
	}
}

// LogListener logs each event to a charmbracelet logger at debug level.
type LogListener struct {
	Logger *log.Logger
}

func (l LogListener) RectanglePlaced(r grid.Rect) {
	l.Logger.Debug("rectangle placed", "id", r.ID, "x", r.X, "y", r.Y, "w", r.W, "h", r.H)
}

func (l LogListener) GenerationFinished(reason Reason) {
	l.Logger.Debug("generation finished", "reason", reason)
}
