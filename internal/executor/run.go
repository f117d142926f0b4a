package executor

import (
	"github.com/google/uuid"
	"github.com/specialistvlad/spellgrid/internal/model"
)

// State represents the lifecycle of a single cast.
type State int

const (
	Ready State = iota
	Running
	Completed
	Aborted
)

var stateNames = [...]string{"Ready", "Running", "Completed", "Aborted"}

// String makes the State type satisfy the fmt.Stringer interface.
func (s State) String() string {
	if s < Ready || s > Aborted {
		return "Unknown"
	}
	return stateNames[s]
}

// Run is the outcome of one cast.
type Run struct {
	ID        uuid.UUID
	ProgramID uuid.UUID
	State     State
	// Executed counts the actions that ran, suppressed failures included.
	Executed int
	// Stopped is set when a piece ended the cast early.
	Stopped bool
	// Suppressed holds the runtime errors replaced by handler values.
	Suppressed []error
	// Err is the error that aborted the cast.
	Err error

	values map[*model.Piece]any
}

// Value returns the value a piece produced during the cast.
func (r *Run) Value(p *model.Piece) (any, bool) {
	v, ok := r.values[p]
	return v, ok
}
