// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Param, a declared parameter slot of a piece.
package model

// Param is a declared parameter slot. A Param is identified by its pointer,
// not its value; the side it is wired through is stored on the owning Piece.
type Param struct {
	// Name is unique among the params of one piece.
	Name string
	// Kind is the value kind the param accepts.
	Kind ValueKind
	// CanDisable marks the param as optional: it may be left on SideOff.
	CanDisable bool
	// Catch marks the param as claimed by an error handler. Only meaningful
	// on pieces of type PieceErrorHandler.
	Catch bool
}

// Accepts reports whether the given piece can be wired into the param.
// Pieces that evaluate to nothing are never accepted.
func (p *Param) Accepts(piece *Piece) bool {
	if piece == nil || piece.Kind == KindNone {
		return false
	}
	return p.Kind == KindAny || p.Kind == piece.Kind
}

// clone returns a copy so every piece instance owns distinct param identities.
func (p *Param) clone() *Param {
	c := *p
	return &c
}
