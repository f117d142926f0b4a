// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Metadata, the static statistics accumulated while a
// spell is compiled. They are independent of execution and are read by the
// caller to decide whether a caster can afford the spell.
package model

import (
	"fmt"
	"maps"
	"sort"
)

// Stat names one accumulated statistic.
type Stat int

const (
	// StatComplexity counts the pieces a caster must hold in mind.
	StatComplexity Stat = iota
	// StatPotency measures the strength of the effects.
	StatPotency
	// StatCost is the resource drained per cast.
	StatCost
	// StatProjection is how far from the caster effects reach.
	StatProjection
	// StatBandwidth is the number of concurrent effects.
	StatBandwidth
)

var statNames = [...]string{
	StatComplexity: "complexity",
	StatPotency:    "potency",
	StatCost:       "cost",
	StatProjection: "projection",
	StatBandwidth:  "bandwidth",
}

// Stats returns every stat in canonical order.
func Stats() []Stat {
	return []Stat{StatComplexity, StatPotency, StatCost, StatProjection, StatBandwidth}
}

// String returns the lowercase name of the stat.
func (s Stat) String() string {
	if s < 0 || int(s) >= len(statNames) {
		return fmt.Sprintf("stat(%d)", int(s))
	}
	return statNames[s]
}

// ParseStat converts a stat name into a Stat.
func ParseStat(name string) (Stat, error) {
	for i, n := range statNames {
		if n == name {
			return Stat(i), nil
		}
	}
	return 0, fmt.Errorf("unknown stat %q", name)
}

// Metadata holds accumulated stats and boolean flags.
type Metadata struct {
	stats map[Stat]int
	flags map[string]bool
}

// NewMetadata returns empty metadata with every stat at zero.
func NewMetadata() *Metadata {
	return &Metadata{
		stats: make(map[Stat]int),
		flags: make(map[string]bool),
	}
}

// Stat returns the current value of a stat.
func (m *Metadata) Stat(s Stat) int {
	return m.stats[s]
}

// Set overwrites a stat.
func (m *Metadata) Set(s Stat, v int) {
	m.stats[s] = v
}

// Add adds delta to a stat. Integer overflow leaves the stat unchanged and
// fails with ErrStatOverflow.
func (m *Metadata) Add(s Stat, delta int) error {
	cur := m.stats[s]
	sum := cur + delta
	if (delta > 0 && sum < cur) || (delta < 0 && sum > cur) {
		return NewCompileError(fmt.Errorf("%w: %s %d%+d", ErrStatOverflow, s, cur, delta))
	}
	m.stats[s] = sum
	return nil
}

// SetFlag records a named flag.
func (m *Metadata) SetFlag(name string, v bool) {
	m.flags[name] = v
}

// Flag returns a named flag, false when unset.
func (m *Metadata) Flag(name string) bool {
	return m.flags[name]
}

// Flags returns the names of all set flags, sorted.
func (m *Metadata) Flags() []string {
	names := make([]string, 0, len(m.flags))
	for name, v := range m.flags {
		if v {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Clone returns an independent copy.
func (m *Metadata) Clone() *Metadata {
	return &Metadata{
		stats: maps.Clone(m.stats),
		flags: maps.Clone(m.flags),
	}
}

// Snapshot returns every stat keyed by name, for logging and display.
func (m *Metadata) Snapshot() map[string]int {
	out := make(map[string]int, len(statNames))
	for _, s := range Stats() {
		out[s.String()] = m.stats[s]
	}
	return out
}

// Fits compares the stats against a caster's limits. Stats absent from
// limits are unbounded. It returns the first exceeded stat in canonical
// order and false, or true when every bounded stat is within its limit.
func (m *Metadata) Fits(limits map[Stat]int) (Stat, bool) {
	for _, s := range Stats() {
		limit, ok := limits[s]
		if ok && m.stats[s] > limit {
			return s, false
		}
	}
	return 0, true
}
