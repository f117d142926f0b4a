package program

import (
	"github.com/google/uuid"
	"github.com/specialistvlad/spellgrid/internal/model"
)

// Action binds one piece to its place in the schedule.
type Action struct {
	Piece *model.Piece
	// seq is the position in build order, refreshed on every move to the end.
	seq int
}

// CatchHandler is an error handler piece guarding the pieces it claims.
type CatchHandler struct {
	Piece *model.Piece
}

// Program is a compiled spell.
type Program struct {
	// ID distinguishes compilations in logs and caches.
	ID uuid.UUID
	// Spell is the source spell. Runs resolve parameter values through its grid.
	Spell *model.Spell

	actions  []*Action
	index    map[*model.Piece]*Action
	handlers map[*model.Piece]*CatchHandler
	catchers map[*model.Piece]*CatchHandler
	meta     *model.Metadata
}

// New creates an empty program for a spell.
func New(spell *model.Spell) *Program {
	return &Program{
		ID:       uuid.New(),
		Spell:    spell,
		index:    make(map[*model.Piece]*Action),
		handlers: make(map[*model.Piece]*CatchHandler),
		catchers: make(map[*model.Piece]*CatchHandler),
		meta:     model.NewMetadata(),
	}
}

// Schedule appends a new action for p, or moves p's existing action to the
// end of the schedule. It reports whether the action already existed.
func (p *Program) Schedule(piece *model.Piece) (*Action, bool) {
	if a, ok := p.index[piece]; ok {
		p.actions = append(p.actions[:a.seq], p.actions[a.seq+1:]...)
		for i := a.seq; i < len(p.actions); i++ {
			p.actions[i].seq = i
		}
		a.seq = len(p.actions)
		p.actions = append(p.actions, a)
		return a, true
	}
	a := &Action{Piece: piece, seq: len(p.actions)}
	p.actions = append(p.actions, a)
	p.index[piece] = a
	return a, false
}

// Guard registers handler as the error handler of target, replacing any
// earlier registration.
func (p *Program) Guard(target, handler *model.Piece) {
	h, ok := p.catchers[handler]
	if !ok {
		h = &CatchHandler{Piece: handler}
		p.catchers[handler] = h
	}
	p.handlers[target] = h
}

// Actions returns the schedule in build order.
func (p *Program) Actions() []*Action {
	out := make([]*Action, len(p.actions))
	copy(out, p.actions)
	return out
}

// ExecutionOrder returns the schedule in the order runs execute it: the
// reverse of build order.
func (p *Program) ExecutionOrder() []*Action {
	out := make([]*Action, len(p.actions))
	for i, a := range p.actions {
		out[len(p.actions)-1-i] = a
	}
	return out
}

// Pieces returns the scheduled pieces in build order.
func (p *Program) Pieces() []*model.Piece {
	out := make([]*model.Piece, len(p.actions))
	for i, a := range p.actions {
		out[i] = a.Piece
	}
	return out
}

// Action returns the action bound to a piece.
func (p *Program) Action(piece *model.Piece) (*Action, bool) {
	a, ok := p.index[piece]
	return a, ok
}

// Handler returns the error handler guarding a piece.
func (p *Program) Handler(piece *model.Piece) (*CatchHandler, bool) {
	h, ok := p.handlers[piece]
	return h, ok
}

// Handlers returns the number of guarded pieces.
func (p *Program) Handlers() int {
	return len(p.handlers)
}

// Len returns the number of scheduled actions.
func (p *Program) Len() int {
	return len(p.actions)
}

// Contribute runs the metadata hook of piece against the program's stats.
func (p *Program) Contribute(piece *model.Piece) error {
	return piece.AddToMetadata(p.meta)
}

// Metadata returns a copy of the accumulated metadata. Programs are shared
// between concurrent casts, so the stats themselves are never handed out.
func (p *Program) Metadata() *model.Metadata {
	return p.meta.Clone()
}

// Stat returns one accumulated stat.
func (p *Program) Stat(s model.Stat) int {
	return p.meta.Stat(s)
}
