// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model provides the in-memory representation of a spell: a fixed
// size grid of pieces wired together through the sides of their parameters.
//
// # Core Concepts
//
//   - Grid: the 2-D board. Cells hold at most one Piece. Lookups walk one cell
//     in a direction and transparently follow redirector pieces.
//
//   - Piece: a node of the visual program. A piece has a closed PieceType, the
//     ValueKind it evaluates to, an ordered list of declared Params and the
//     Side each param is wired through. Its behavior is supplied from outside
//     through the Behavior hooks.
//
//   - Spell: a named grid. This is the unit the compiler consumes.
//
//   - Metadata: static statistics (cost, potency...) accumulated while a spell
//     is compiled.
//
// Why a separate model package?
//
// The compiler, the compiled program and the execution engine all speak in
// terms of these types, while loaders (HCL files, tests) only need to build
// them. Keeping the model free of compile and execution logic lets each of
// those stages depend on it without depending on each other.
package model
