// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Side, the direction a parameter connection is routed
// through from a piece's cell.
package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownSide is returned when a side name cannot be parsed.
var ErrUnknownSide = errors.New("unknown side")

// Side is one of the four cardinal directions, or Off for a disabled
// parameter connection.
type Side int

const (
	// SideOff marks a parameter that is not wired to any neighbor.
	SideOff Side = iota
	// SideTop points at the cell above (y-1).
	SideTop
	// SideBottom points at the cell below (y+1).
	SideBottom
	// SideLeft points at the cell to the left (x-1).
	SideLeft
	// SideRight points at the cell to the right (x+1).
	SideRight
)

var sideNames = [...]string{
	SideOff:    "off",
	SideTop:    "top",
	SideBottom: "bottom",
	SideLeft:   "left",
	SideRight:  "right",
}

var sideAliases = map[string]Side{
	"north": SideTop,
	"south": SideBottom,
	"west":  SideLeft,
	"east":  SideRight,
}

// Sides lists the enabled sides in their canonical order.
func Sides() []Side {
	return []Side{SideTop, SideBottom, SideLeft, SideRight}
}

// String returns the lowercase name of the side.
func (s Side) String() string {
	if s < SideOff || int(s) >= len(sideNames) {
		return fmt.Sprintf("side(%d)", int(s))
	}
	return sideNames[s]
}

// IsEnabled reports whether the side points at a neighbor.
func (s Side) IsEnabled() bool {
	return s > SideOff && int(s) < len(sideNames)
}

// Offset returns the cell delta for the side. Off has a zero offset.
func (s Side) Offset() (dx, dy int) {
	switch s {
	case SideTop:
		return 0, -1
	case SideBottom:
		return 0, 1
	case SideLeft:
		return -1, 0
	case SideRight:
		return 1, 0
	}
	return 0, 0
}

// Opposite returns the side facing back at the origin cell.
func (s Side) Opposite() Side {
	switch s {
	case SideTop:
		return SideBottom
	case SideBottom:
		return SideTop
	case SideLeft:
		return SideRight
	case SideRight:
		return SideLeft
	}
	return SideOff
}

// ParseSide converts a side name into a Side. Cardinal aliases
// ("north", "east", ...) are accepted.
func ParseSide(name string) (Side, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, sn := range sideNames {
		if sn == n {
			return Side(i), nil
		}
	}
	if s, ok := sideAliases[n]; ok {
		return s, nil
	}
	return SideOff, fmt.Errorf("%w: %q", ErrUnknownSide, name)
}
