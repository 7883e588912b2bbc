package engine

import "github.com/vovakirdan/beatdodge/internal/core"

// Args specializes an Action for one invocation. Spawners read the fields
// they care about and ignore the rest.
type Args struct {
	Step int
	Pos  core.Vec2
	Vel  core.Vec2
	Rad  float64
	Time float64
}

// NewArgs returns Args for beat-time t.
func NewArgs(t float64) Args {
	return Args{Time: t}
}

func (a Args) WithStep(step int) Args { a.Step = step; return a }
func (a Args) WithPos(pos core.Vec2) Args { a.Pos = pos; return a }
func (a Args) WithVel(vel core.Vec2) Args { a.Vel = vel; return a }
func (a Args) WithRad(rad float64) Args { a.Rad = rad; return a }
func (a Args) WithTime(t float64) Args { a.Time = t; return a }

// Action is a choreography callback. It runs against an Accumulator, either
// from the scheduler or from inside an obstacle (periodic emitters, bombs).
type Action interface {
	Run(acc *Accumulator, args Args)

	// Clone returns an independent copy, deep-copying any owned state.
	Clone() Action
}

// ActionFunc adapts a plain function to Action. Functions carry no mutable
// state of their own, so Clone returns the same function.
type ActionFunc func(acc *Accumulator, args Args)

// Run calls f.
func (f ActionFunc) Run(acc *Accumulator, args Args) {
	f(acc, args)
}

// Clone implements Action.
func (f ActionFunc) Clone() Action {
	return f
}

// Actions runs several actions in order as one.
type Actions []Action

// Run implements Action.
func (as Actions) Run(acc *Accumulator, args Args) {
	for _, a := range as {
		a.Run(acc, args)
	}
}

// Clone implements Action.
func (as Actions) Clone() Action {
	out := make(Actions, len(as))
	for i, a := range as {
		out[i] = a.Clone()
	}
	return out
}
