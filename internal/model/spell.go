// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package model

// Spell is a named grid, the unit handed to the compiler.
type Spell struct {
	Name string
	Grid *Grid
}

// NewSpell creates a spell on a fresh grid of the default size.
func NewSpell(name string) *Spell {
	return &Spell{Name: name, Grid: NewGrid(DefaultSize, DefaultSize)}
}

// Empty reports whether the spell has no pieces at all.
func (s *Spell) Empty() bool {
	return s == nil || s.Grid == nil || s.Grid.Empty()
}
