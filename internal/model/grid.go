// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Grid structure, the fixed-size board a spell is
// drawn on.
//
// Why does the grid resolve neighbors?
//
// Connections between pieces are implicit: a parameter wired through a side
// refers to whatever sits in the adjacent cell. Redirector pieces bend those
// connections, so "the piece wired into this param" is only answerable by
// walking the board. Both the compiler and the execution engine need that
// answer, so the walk lives here, next to the cells it reads.
package model

import (
	"errors"
	"fmt"
)

// DefaultSize is the width and height of a grid created without explicit size.
const DefaultSize = 9

var (
	// ErrOutOfBounds is returned when a coordinate lies outside the grid.
	ErrOutOfBounds = errors.New("coordinate out of bounds")
	// ErrCellOccupied is returned when placing a piece on a non-empty cell.
	ErrCellOccupied = errors.New("cell already occupied")
	// ErrAlreadyPlaced is returned when a piece is placed a second time.
	ErrAlreadyPlaced = errors.New("piece already placed")
	// ErrRedirectLoop is returned when redirectors form a cycle.
	ErrRedirectLoop = errors.New("redirectors form a loop")
)

// Grid is a fixed-size 2-D array of optional pieces, addressed as (x, y).
// It must not be mutated while a spell drawn on it is being compiled.
type Grid struct {
	width, height int
	cells         [][]*Piece // cells[x][y]
}

// NewGrid creates an empty grid. Non-positive dimensions fall back to DefaultSize.
func NewGrid(width, height int) *Grid {
	if width <= 0 {
		width = DefaultSize
	}
	if height <= 0 {
		height = DefaultSize
	}
	cells := make([][]*Piece, width)
	for x := range cells {
		cells[x] = make([]*Piece, height)
	}
	return &Grid{width: width, height: height, cells: cells}
}

// Size returns the grid dimensions.
func (g *Grid) Size() (width, height int) {
	return g.width, g.height
}

// InBounds reports whether (x, y) addresses a cell.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

// Place puts a piece on an empty cell and records its position.
func (g *Grid) Place(p *Piece, x, y int) error {
	if !g.InBounds(x, y) {
		return fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, x, y)
	}
	if p.grid != nil {
		return fmt.Errorf("%w: %s", ErrAlreadyPlaced, p)
	}
	if g.cells[x][y] != nil {
		return fmt.Errorf("%w: (%d,%d) holds %s", ErrCellOccupied, x, y, g.cells[x][y].Key)
	}
	p.X, p.Y, p.grid = x, y, g
	g.cells[x][y] = p
	return nil
}

// Remove clears a cell and returns the piece it held.
func (g *Grid) Remove(x, y int) *Piece {
	p := g.PieceAt(x, y)
	if p == nil {
		return nil
	}
	g.cells[x][y] = nil
	p.X, p.Y, p.grid = -1, -1, nil
	return p
}

// PieceAt returns the piece at (x, y), or nil for empty or out-of-bounds cells.
func (g *Grid) PieceAt(x, y int) *Piece {
	if !g.InBounds(x, y) {
		return nil
	}
	return g.cells[x][y]
}

// PieceAtSide returns the piece directly adjacent to (x, y) in the given direction.
func (g *Grid) PieceAtSide(x, y int, side Side) *Piece {
	if !side.IsEnabled() {
		return nil
	}
	dx, dy := side.Offset()
	return g.PieceAt(x+dx, y+dy)
}

// Count returns the number of placed pieces.
func (g *Grid) Count() int {
	n := 0
	for x := range g.cells {
		for _, p := range g.cells[x] {
			if p != nil {
				n++
			}
		}
	}
	return n
}

// Empty reports whether no piece is placed.
func (g *Grid) Empty() bool {
	return g.Count() == 0
}

// Pieces returns the pieces accepted by match in root order: cells are
// visited column by column (x outer, y inner) and every match is prepended,
// so the last visited cell comes first. A nil match accepts every piece.
func (g *Grid) Pieces(match func(*Piece) bool) []*Piece {
	var found []*Piece
	for x := range g.cells {
		for _, p := range g.cells[x] {
			if p != nil && (match == nil || match(p)) {
				found = append(found, p)
			}
		}
	}
	for i, j := 0, len(found)-1; i < j; i, j = i+1, j-1 {
		found[i], found[j] = found[j], found[i]
	}
	return found
}

// NeighborWithRedirections returns the piece wired to (x, y) through side.
// When the adjacent piece is a redirector, visit is called for it (once per
// redirector per lookup) and the walk continues from the redirector's cell in
// its pass-through direction. The walk is bounded by the number of cells; a
// redirector seen twice or an exhausted bound yields ErrRedirectLoop. A nil
// piece with a nil error means the connection leads to an empty cell, off
// the board, or into a redirector with no enabled pass-through.
func (g *Grid) NeighborWithRedirections(x, y int, side Side, visit func(*Piece) error) (*Piece, error) {
	limit := g.width * g.height
	var seen map[*Piece]struct{}

	for steps := 0; ; steps++ {
		if !side.IsEnabled() {
			return nil, nil
		}
		if steps > limit {
			return nil, fmt.Errorf("%w: walk from (%d,%d) exceeded %d steps", ErrRedirectLoop, x, y, limit)
		}

		next := g.PieceAtSide(x, y, side)
		if next == nil || !next.IsRedirector() {
			return next, nil
		}

		if _, ok := seen[next]; ok {
			return nil, fmt.Errorf("%w: %s revisited", ErrRedirectLoop, next)
		}
		if seen == nil {
			seen = make(map[*Piece]struct{})
		}
		seen[next] = struct{}{}

		if visit != nil {
			if err := visit(next); err != nil {
				return nil, err
			}
		}
		x, y, side = next.X, next.Y, next.PassThrough()
	}
}
