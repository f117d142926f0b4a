// Package operator provides the arithmetic pieces.
package operator

import (
	"math"

	"github.com/specialistvlad/spellgrid/internal/model"
	"github.com/specialistvlad/spellgrid/internal/registry"
	"github.com/specialistvlad/spellgrid/internal/spellhelp"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// addComplexity is the metadata hook shared by every operator.
func addComplexity(_ *model.Piece, meta *model.Metadata) error {
	return meta.Add(model.StatComplexity, 1)
}

// Sum adds two or three numbers.
type Sum struct{}

// AddToMetadata implements model.Behavior.
func (Sum) AddToMetadata(p *model.Piece, meta *model.Metadata) error { return addComplexity(p, meta) }

// Execute implements model.Behavior.
func (Sum) Execute(rc model.RunContext, p *model.Piece) (any, error) {
	a, err := spellhelp.Number(rc, p, "number1")
	if err != nil {
		return nil, err
	}
	b, err := spellhelp.Number(rc, p, "number2")
	if err != nil {
		return nil, err
	}
	c, _, err := spellhelp.OptionalNumber(rc, p, "number3")
	if err != nil {
		return nil, err
	}
	return a + b + c, nil
}

// Divide divides number1 by number2, and the result by number3 when wired.
type Divide struct{}

// AddToMetadata implements model.Behavior.
func (Divide) AddToMetadata(p *model.Piece, meta *model.Metadata) error { return addComplexity(p, meta) }

// Execute implements model.Behavior.
func (Divide) Execute(rc model.RunContext, p *model.Piece) (any, error) {
	a, err := spellhelp.Number(rc, p, "number1")
	if err != nil {
		return nil, err
	}
	b, err := spellhelp.Number(rc, p, "number2")
	if err != nil {
		return nil, err
	}
	if b == 0 {
		return nil, model.NewRuntimeError(model.ErrDivideByZero, p, "")
	}
	res := a / b

	c, ok, err := spellhelp.OptionalNumber(rc, p, "number3")
	if err != nil {
		return nil, err
	}
	if ok {
		if c == 0 {
			return nil, model.NewRuntimeError(model.ErrDivideByZero, p, "")
		}
		res /= c
	}
	return res, nil
}

// SquareRoot takes the square root of a non-negative number.
type SquareRoot struct{}

// AddToMetadata implements model.Behavior.
func (SquareRoot) AddToMetadata(p *model.Piece, meta *model.Metadata) error {
	return addComplexity(p, meta)
}

// Execute implements model.Behavior.
func (SquareRoot) Execute(rc model.RunContext, p *model.Piece) (any, error) {
	n, err := spellhelp.Number(rc, p, "number")
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, model.NewRuntimeError(model.ErrInvalidOperand, p, "negative square root")
	}
	return math.Sqrt(n), nil
}

func numbers(names ...string) []*model.Param {
	params := make([]*model.Param, len(names))
	for i, name := range names {
		params[i] = &model.Param{Name: name, Kind: model.KindNumber}
	}
	return params
}

func withOptional(params []*model.Param, name string) []*model.Param {
	return append(params, &model.Param{Name: name, Kind: model.KindNumber, CanDisable: true})
}

// Register registers the operators with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.Register(&registry.Blueprint{
		Key:         "operator_sum",
		Type:        model.PieceOperator,
		Kind:        model.KindNumber,
		Params:      withOptional(numbers("number1", "number2"), "number3"),
		Behavior:    Sum{},
		Description: "Adds its inputs.",
	})
	r.Register(&registry.Blueprint{
		Key:         "operator_divide",
		Type:        model.PieceOperator,
		Kind:        model.KindNumber,
		Params:      withOptional(numbers("number1", "number2"), "number3"),
		Behavior:    Divide{},
		Description: "Divides the first input by the others.",
	})
	r.Register(&registry.Blueprint{
		Key:         "operator_square_root",
		Type:        model.PieceOperator,
		Kind:        model.KindNumber,
		Params:      numbers("number"),
		Behavior:    SquareRoot{},
		Description: "Square root of its input.",
	})
}
