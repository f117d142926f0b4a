// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the two disjoint error taxonomies of a spell: static
// compilation errors, surfaced to whoever edits the spell, and dynamic
// runtime errors, raised while it is cast.
package model

import (
	"errors"
	"fmt"
)

// Compilation error kinds. A *CompileError unwraps to exactly one of them.
var (
	ErrNoSpell          = errors.New("spell has no pieces")
	ErrNoTricks         = errors.New("spell has no tricks")
	ErrNoName           = errors.New("spell has no name")
	ErrInfiniteLoop     = errors.New("infinite loop")
	ErrNullParam        = errors.New("parameter is not connected")
	ErrInvalidParam     = errors.New("parameter is connected to an incompatible piece")
	ErrUnsetParam       = errors.New("required parameter is disabled")
	ErrSameSideParams   = errors.New("parameters share a side")
	ErrStatOverflow     = errors.New("stat overflow")
	ErrNonPositiveValue = errors.New("value must be positive")
)

var compileKinds = []error{
	ErrNoSpell, ErrNoTricks, ErrNoName, ErrInfiniteLoop, ErrNullParam,
	ErrInvalidParam, ErrUnsetParam, ErrSameSideParams, ErrStatOverflow,
	ErrNonPositiveValue,
}

// CompileError is a compilation failure, optionally attributed to a cell.
type CompileError struct {
	// Err is one of the Err* kinds above, possibly wrapped with detail.
	Err error
	// X and Y locate the offending piece when Positioned is true.
	X, Y       int
	Positioned bool
	// Piece is the key of the offending piece, if any.
	Piece string
}

// NewCompileError creates an error without a position.
func NewCompileError(err error) *CompileError {
	return &CompileError{Err: err}
}

// NewCompileErrorAt creates an error attributed to a piece's cell.
func NewCompileErrorAt(err error, p *Piece) *CompileError {
	return &CompileError{Err: err, X: p.X, Y: p.Y, Positioned: true, Piece: p.Key}
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	if e.Positioned {
		return fmt.Sprintf("compile %s at (%d,%d): %v", e.Piece, e.X, e.Y, e.Err)
	}
	return "compile: " + e.Err.Error()
}

// Unwrap returns the underlying kind.
func (e *CompileError) Unwrap() error {
	return e.Err
}

// Kind returns the taxonomy entry of the error, or nil if unknown.
func (e *CompileError) Kind() error {
	for _, k := range compileKinds {
		if errors.Is(e.Err, k) {
			return k
		}
	}
	return nil
}

// At returns a copy positioned at the piece, unless already positioned.
func (e *CompileError) At(p *Piece) *CompileError {
	if e.Positioned || p == nil {
		return e
	}
	c := *e
	c.X, c.Y, c.Positioned, c.Piece = p.X, p.Y, true, p.Key
	return &c
}

// Runtime error causes. A *RuntimeError unwraps to one of them.
var (
	ErrInvalidOperand = errors.New("invalid operand")
	ErrDivideByZero   = errors.New("division by zero")
	ErrOutOfRange     = errors.New("operation out of range")
	ErrNullValue      = errors.New("value is null")
)

// RuntimeError is a dynamic failure signaled by a piece while executing.
// It is the only kind of error an error handler can catch.
type RuntimeError struct {
	// Cause is one of the runtime causes above.
	Cause error
	// X, Y and Piece locate the failing piece.
	X, Y  int
	Piece string
	// Detail is an optional human-readable explanation.
	Detail string
}

// NewRuntimeError creates a runtime error raised by p.
func NewRuntimeError(cause error, p *Piece, detail string) *RuntimeError {
	e := &RuntimeError{Cause: cause, X: -1, Y: -1, Detail: detail}
	if p != nil {
		e.X, e.Y, e.Piece = p.X, p.Y, p.Key
	}
	return e
}

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	msg := fmt.Sprintf("%s at (%d,%d): %v", e.Piece, e.X, e.Y, e.Cause)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Unwrap returns the cause.
func (e *RuntimeError) Unwrap() error {
	return e.Cause
}
