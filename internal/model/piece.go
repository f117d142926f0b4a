// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Piece, the unit of compilation and execution.
//
// A piece only knows its own declaration: which params it has, which side
// each one is wired through and which hooks implement it. Everything that
// depends on neighbors is resolved through the Grid the piece was placed on.
package model

import (
	"errors"
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

var (
	// ErrUnknownParam is returned when a param name or identity is not declared on a piece.
	ErrUnknownParam = errors.New("unknown param")
	// ErrNotStatic is returned when a neighbor cannot be evaluated at compile time.
	ErrNotStatic = errors.New("value is not known at compile time")
)

// Piece is a node of the visual program.
type Piece struct {
	// Key identifies the behavior implementing the piece, e.g. "operator_sum".
	Key string
	// Type is the role of the piece.
	Type PieceType
	// Kind is what the piece evaluates to.
	Kind ValueKind
	// X and Y are the cell coordinates; -1 until the piece is placed.
	X, Y int
	// Comment is free text attached by the author of the spell.
	Comment string
	// Attrs holds static configuration, such as the value of a constant.
	Attrs map[string]cty.Value
	// Behavior supplies the metadata and execution hooks.
	Behavior Behavior

	params []*Param
	sides  map[*Param]Side
	grid   *Grid
}

// NewPiece creates an unplaced piece. Each declared param is copied so that
// param identities are never shared between pieces, and starts on SideOff.
func NewPiece(key string, typ PieceType, kind ValueKind, behavior Behavior, params ...*Param) *Piece {
	p := &Piece{
		Key:      key,
		Type:     typ,
		Kind:     kind,
		X:        -1,
		Y:        -1,
		Attrs:    make(map[string]cty.Value),
		Behavior: behavior,
		params:   make([]*Param, 0, len(params)),
		sides:    make(map[*Param]Side, len(params)),
	}
	for _, decl := range params {
		param := decl.clone()
		p.params = append(p.params, param)
		p.sides[param] = SideOff
	}
	return p
}

// String renders the piece as key@(x,y) for logs and error messages.
func (p *Piece) String() string {
	return fmt.Sprintf("%s@(%d,%d)", p.Key, p.X, p.Y)
}

// Params returns the declared params in declaration order.
func (p *Piece) Params() []*Param {
	out := make([]*Param, len(p.params))
	copy(out, p.params)
	return out
}

// Param returns the declared param with the given name, or nil.
func (p *Piece) Param(name string) *Param {
	for _, param := range p.params {
		if param.Name == name {
			return param
		}
	}
	return nil
}

// Side returns the side a param is wired through. Undeclared params are Off.
func (p *Piece) Side(param *Param) Side {
	return p.sides[param]
}

// SetSide wires a declared param through the given side.
func (p *Piece) SetSide(param *Param, side Side) error {
	if _, ok := p.sides[param]; !ok {
		return fmt.Errorf("%w on %s", ErrUnknownParam, p.Key)
	}
	p.sides[param] = side
	return nil
}

// SetSideByName wires the param with the given name through the given side.
func (p *Piece) SetSideByName(name string, side Side) error {
	param := p.Param(name)
	if param == nil {
		return fmt.Errorf("%w %q on %s", ErrUnknownParam, name, p.Key)
	}
	return p.SetSide(param, side)
}

// Attr returns a static attribute.
func (p *Piece) Attr(name string) (cty.Value, bool) {
	v, ok := p.Attrs[name]
	return v, ok
}

// IsTrick reports whether the piece is a program root.
func (p *Piece) IsTrick() bool { return p.Type.IsTrick() }

// IsErrorHandler reports whether the piece is an error catcher.
func (p *Piece) IsErrorHandler() bool { return p.Type == PieceErrorHandler }

// IsRedirector reports whether the piece passes lookups through.
func (p *Piece) IsRedirector() bool { return p.Type == PieceRedirector }

// Claims reports whether the piece is an error catcher claiming the param.
func (p *Piece) Claims(param *Param) bool {
	return p.IsErrorHandler() && param != nil && param.Catch
}

// PassThrough is the side a redirector forwards lookups to: the side of its
// first enabled param. Pieces without one return SideOff.
func (p *Piece) PassThrough() Side {
	for _, param := range p.params {
		if s := p.sides[param]; s.IsEnabled() {
			return s
		}
	}
	return SideOff
}

// Grid returns the grid the piece was placed on, or nil.
func (p *Piece) Grid() *Grid {
	return p.grid
}

// Neighbor resolves the piece wired into a param, following redirectors.
func (p *Piece) Neighbor(param *Param) (*Piece, error) {
	if p.grid == nil {
		return nil, nil
	}
	return p.grid.NeighborWithRedirections(p.X, p.Y, p.Side(param), nil)
}

// StaticParam evaluates the piece wired into a param at compile time. It is
// meant for metadata hooks that need constant values, and fails with
// ErrNotStatic when the neighbor cannot be evaluated without running the spell.
func (p *Piece) StaticParam(param *Param) (any, error) {
	if param == nil {
		return nil, fmt.Errorf("%w on %s", ErrUnknownParam, p.Key)
	}
	if !p.Side(param).IsEnabled() {
		return nil, nil
	}
	n, err := p.Neighbor(param)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, NewCompileErrorAt(ErrNullParam, p)
	}
	eval, ok := n.Behavior.(StaticEvaluator)
	if !ok {
		return nil, fmt.Errorf("%s param %q: %w", p, param.Name, ErrNotStatic)
	}
	return eval.Evaluate(n)
}

// AddToMetadata runs the behavior's metadata hook.
func (p *Piece) AddToMetadata(meta *Metadata) error {
	if p.Behavior == nil {
		return nil
	}
	return p.Behavior.AddToMetadata(p, meta)
}

// Execute runs the behavior's execution hook.
func (p *Piece) Execute(rc RunContext) (any, error) {
	if p.Behavior == nil {
		return nil, nil
	}
	return p.Behavior.Execute(rc, p)
}
