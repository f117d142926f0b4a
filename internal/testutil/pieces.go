package testutil

import (
	"sync/atomic"
	"testing"

	"github.com/specialistvlad/spellgrid/internal/model"
	"github.com/stretchr/testify/require"
)

// Stub is a configurable behavior for tests. It counts metadata calls and
// executions, both of which are safe to read concurrently.
type Stub struct {
	Cost, Potency, Complexity int
	// Value is returned by Execute when Run is nil.
	Value any
	// Run overrides Execute.
	Run func(rc model.RunContext, p *model.Piece) (any, error)

	metaCalls atomic.Int32
	execCalls atomic.Int32
}

// AddToMetadata implements model.Behavior.
func (s *Stub) AddToMetadata(_ *model.Piece, meta *model.Metadata) error {
	s.metaCalls.Add(1)
	if err := meta.Add(model.StatComplexity, s.Complexity); err != nil {
		return err
	}
	if err := meta.Add(model.StatPotency, s.Potency); err != nil {
		return err
	}
	return meta.Add(model.StatCost, s.Cost)
}

// Execute implements model.Behavior.
func (s *Stub) Execute(rc model.RunContext, p *model.Piece) (any, error) {
	s.execCalls.Add(1)
	if s.Run != nil {
		return s.Run(rc, p)
	}
	return s.Value, nil
}

// MetadataCalls returns how many times AddToMetadata ran.
func (s *Stub) MetadataCalls() int { return int(s.metaCalls.Load()) }

// Executions returns how many times Execute ran.
func (s *Stub) Executions() int { return int(s.execCalls.Load()) }

// Required declares a param that must be wired.
func Required(name string, kind model.ValueKind) *model.Param {
	return &model.Param{Name: name, Kind: kind}
}

// Optional declares a param that may be left disabled.
func Optional(name string, kind model.ValueKind) *model.Param {
	return &model.Param{Name: name, Kind: kind, CanDisable: true}
}

// Trick returns a trick piece with a fresh stub behavior.
func Trick(key string, params ...*model.Param) (*model.Piece, *Stub) {
	s := &Stub{Complexity: 1}
	return model.NewPiece(key, model.PieceTrick, model.KindNone, s, params...), s
}

// Operator returns a number operator piece with a fresh stub behavior.
func Operator(key string, params ...*model.Param) (*model.Piece, *Stub) {
	s := &Stub{Complexity: 1}
	return model.NewPiece(key, model.PieceOperator, model.KindNumber, s, params...), s
}

// Constant returns a number constant piece evaluating to value.
func Constant(key string, value float64) (*model.Piece, *Stub) {
	s := &Stub{Value: value}
	return model.NewPiece(key, model.PieceConstant, model.KindNumber, s), s
}

// Catcher returns an error handler that claims "target" and returns the
// value wired into "fallback".
func Catcher(key string) (*model.Piece, *Stub) {
	s := &Stub{Complexity: 1}
	s.Run = func(rc model.RunContext, p *model.Piece) (any, error) {
		return rc.ParamValue(p, p.Param("fallback"))
	}
	target := &model.Param{Name: "target", Kind: model.KindAny, Catch: true}
	fallback := &model.Param{Name: "fallback", Kind: model.KindAny}
	return model.NewPiece(key, model.PieceErrorHandler, model.KindAny, s, target, fallback), s
}

// Connector returns a redirector forwarding lookups through "target".
func Connector(key string) (*model.Piece, *Stub) {
	s := &Stub{}
	return model.NewPiece(key, model.PieceRedirector, model.KindAny, s, Required("target", model.KindAny)), s
}

// Sides maps param names to sides for Place.
type Sides map[string]model.Side

// Place puts p on the grid at (x, y) and wires its params.
func Place(t testing.TB, g *model.Grid, p *model.Piece, x, y int, sides Sides) *model.Piece {
	t.Helper()
	require.NoError(t, g.Place(p, x, y))
	for name, side := range sides {
		require.NoError(t, p.SetSideByName(name, side))
	}
	return p
}
