// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the closed classifications the compiler reasons about:
// what role a piece plays (PieceType) and what it evaluates to (ValueKind).
package model

import "fmt"

// PieceType classifies a piece by its role in a spell.
type PieceType int

const (
	// PieceTrick performs an effect and is a program root.
	PieceTrick PieceType = iota
	// PieceOperator computes a value from its parameters.
	PieceOperator
	// PieceConstant supplies a fixed value.
	PieceConstant
	// PieceErrorHandler guards the pieces its claimed parameters point at.
	PieceErrorHandler
	// PieceRedirector passes lookups through to the next cell.
	PieceRedirector
	// PieceModifier alters the caster rather than the world; it is a root like a trick.
	PieceModifier
)

var pieceTypeNames = [...]string{
	PieceTrick:        "trick",
	PieceOperator:     "operator",
	PieceConstant:     "constant",
	PieceErrorHandler: "error_handler",
	PieceRedirector:   "redirector",
	PieceModifier:     "modifier",
}

// String returns the lowercase name of the piece type.
func (t PieceType) String() string {
	if t < 0 || int(t) >= len(pieceTypeNames) {
		return fmt.Sprintf("piece_type(%d)", int(t))
	}
	return pieceTypeNames[t]
}

// IsTrick reports whether pieces of this type are program roots.
func (t PieceType) IsTrick() bool {
	return t == PieceTrick || t == PieceModifier
}

// ValueKind is the type of value a piece evaluates to, or a parameter accepts.
type ValueKind int

const (
	// KindNone is the kind of pieces that produce no value, such as tricks.
	KindNone ValueKind = iota
	// KindAny accepts any piece that produces a value.
	KindAny
	// KindNumber is a numeric value.
	KindNumber
	// KindVector is a 3-component vector.
	KindVector
	// KindEntity is a reference to something in the world.
	KindEntity
	// KindText is a string value.
	KindText
)

var valueKindNames = [...]string{
	KindNone:   "none",
	KindAny:    "any",
	KindNumber: "number",
	KindVector: "vector",
	KindEntity: "entity",
	KindText:   "text",
}

// String returns the lowercase name of the kind.
func (k ValueKind) String() string {
	if k < 0 || int(k) >= len(valueKindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return valueKindNames[k]
}
