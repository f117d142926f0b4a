// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the hooks through which concrete piece implementations
// plug into compilation and execution.
package model

import (
	"context"
	"log/slog"
)

// Behavior implements a piece type. Implementations must be stateless: one
// Behavior value serves every piece of its type, possibly from many
// goroutines at once. Per-invocation state belongs in the RunContext.
type Behavior interface {
	// AddToMetadata contributes static statistics. It runs once per piece per
	// compilation and may fail with a *CompileError.
	AddToMetadata(p *Piece, meta *Metadata) error
	// Execute performs the piece at cast time. A *RuntimeError may be caught
	// by an error handler guarding the piece; any other error aborts the run.
	Execute(rc RunContext, p *Piece) (any, error)
}

// StaticEvaluator is implemented by behaviors whose value is known without
// running the spell, such as constants.
type StaticEvaluator interface {
	Evaluate(p *Piece) (any, error)
}

// RunContext is the per-invocation state handed to every Execute call.
type RunContext interface {
	context.Context
	// ParamValue returns the value computed earlier in this run by the piece
	// wired into param.
	ParamValue(p *Piece, param *Param) (any, error)
	// Env returns the opaque caster/world environment supplied by the caller.
	Env() any
	// Stop ends the run after the current action.
	Stop()
	// Logger returns the run-scoped logger.
	Logger() *slog.Logger
}

// NopBehavior contributes nothing and evaluates to nil.
type NopBehavior struct{}

// AddToMetadata implements Behavior.
func (NopBehavior) AddToMetadata(*Piece, *Metadata) error { return nil }

// Execute implements Behavior.
func (NopBehavior) Execute(RunContext, *Piece) (any, error) { return nil, nil }
