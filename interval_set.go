// Copyright (c) 2012-2022 The ANTLR Project. All rights reserved.
// Use of this file is governed by the BSD 3-clause license that
// can be found in the LICENSE.txt file in the project root.

package langrt

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// IntervalSet is a sorted, disjoint, non-adjacent union of closed
// integer intervals. The canonical form is maintained after every
// mutating operation: Add, Or, And, Subtract, Complement.
type IntervalSet struct {
	intervals []Interval
	readOnly  bool
}

// NewIntervalSet returns an empty, mutable IntervalSet.
func NewIntervalSet() *IntervalSet {
	return &IntervalSet{}
}

// NewIntervalSetFromRange returns a set containing the single closed
// interval [a, b].
func NewIntervalSetFromRange(a, b int) *IntervalSet {
	s := NewIntervalSet()
	s.AddRange(a, b)
	return s
}

// NewIntervalSetFromValues returns a set containing exactly the given
// discrete values.
func NewIntervalSetFromValues(vals ...int) *IntervalSet {
	s := NewIntervalSet()
	for _, v := range vals {
		s.AddOne(v)
	}
	return s
}

func (s *IntervalSet) assertMutable() {
	if s.readOnly {
		panic("langrt: attempt to mutate a read-only IntervalSet")
	}
}

// SetReadOnly toggles the read-only flag; further mutation calls panic
// while it is set. Used once a set becomes a cached, shared value (e.g.
// ATNState's next-token-within-rule cache).
func (s *IntervalSet) SetReadOnly(ro bool) {
	s.readOnly = ro
}

// AddOne adds the single value v.
func (s *IntervalSet) AddOne(v int) {
	s.AddRange(v, v)
}

// AddRange adds the closed interval [a, b], merging with any
// overlapping or adjacent existing intervals.
func (s *IntervalSet) AddRange(a, b int) {
	s.assertMutable()
	if b < a {
		return
	}
	s.add(Interval{Start: a, Stop: b})
}

func (s *IntervalSet) add(iv Interval) {
	if len(s.intervals) == 0 {
		s.intervals = append(s.intervals, iv)
		return
	}
	merged := make([]Interval, 0, len(s.intervals)+1)
	inserted := false
	for _, cur := range s.intervals {
		if inserted {
			merged = append(merged, cur)
			continue
		}
		switch {
		case iv.Stop+1 < cur.Start:
			// iv strictly before cur, no overlap/adjacency
			merged = append(merged, iv, cur)
			inserted = true
		case cur.Stop+1 < iv.Start:
			// cur strictly before iv
			merged = append(merged, cur)
		default:
			// overlap or adjacency: absorb cur into iv and keep scanning
			if cur.Start < iv.Start {
				iv.Start = cur.Start
			}
			if cur.Stop > iv.Stop {
				iv.Stop = cur.Stop
			}
		}
	}
	if !inserted {
		merged = append(merged, iv)
	}
	s.intervals = s.canonicalizeMerged(merged)
}

// canonicalizeMerged re-sorts and re-merges, in case absorbing one
// interval created new adjacency with a later one.
func (s *IntervalSet) canonicalizeMerged(ivs []Interval) []Interval {
	if len(ivs) < 2 {
		return ivs
	}
	slices.SortFunc(ivs, func(a, b Interval) bool { return a.Start < b.Start })
	out := make([]Interval, 0, len(ivs))
	cur := ivs[0]
	for _, next := range ivs[1:] {
		if next.Start <= cur.Stop+1 {
			if next.Stop > cur.Stop {
				cur.Stop = next.Stop
			}
			continue
		}
		out = append(out, cur)
		cur = next
	}
	out = append(out, cur)
	return out
}

// AddSet unions other into s in place.
func (s *IntervalSet) AddSet(other *IntervalSet) {
	s.assertMutable()
	if other == nil {
		return
	}
	for _, iv := range other.intervals {
		s.add(iv)
	}
}

// Or returns the union of s and other as a new set.
func (s *IntervalSet) Or(other *IntervalSet) *IntervalSet {
	out := NewIntervalSet()
	out.AddSet(s)
	out.AddSet(other)
	return out
}

// And returns the intersection of s and other as a new set.
func (s *IntervalSet) And(other *IntervalSet) *IntervalSet {
	out := NewIntervalSet()
	if other == nil {
		return out
	}
	for _, a := range s.intervals {
		for _, b := range other.intervals {
			lo := a.Start
			if b.Start > lo {
				lo = b.Start
			}
			hi := a.Stop
			if b.Stop < hi {
				hi = b.Stop
			}
			if lo <= hi {
				out.add(Interval{Start: lo, Stop: hi})
			}
		}
	}
	return out
}

// Subtract returns s with every value in other removed, as a new set.
func (s *IntervalSet) Subtract(other *IntervalSet) *IntervalSet {
	out := NewIntervalSet()
	if other == nil || len(other.intervals) == 0 {
		out.AddSet(s)
		return out
	}
	for _, a := range s.intervals {
		pieces := []Interval{a}
		for _, b := range other.intervals {
			var next []Interval
			for _, p := range pieces {
				if b.Stop < p.Start || b.Start > p.Stop {
					next = append(next, p)
					continue
				}
				if b.Start > p.Start {
					next = append(next, Interval{Start: p.Start, Stop: b.Start - 1})
				}
				if b.Stop < p.Stop {
					next = append(next, Interval{Start: b.Stop + 1, Stop: p.Stop})
				}
			}
			pieces = next
		}
		for _, p := range pieces {
			out.add(p)
		}
	}
	return out
}

// Complement returns the values in universe that are not in s.
func (s *IntervalSet) Complement(universe *IntervalSet) *IntervalSet {
	return universe.Subtract(s)
}

// RemoveOne removes the single value v, if present.
func (s *IntervalSet) RemoveOne(v int) {
	s.assertMutable()
	result := s.Subtract(NewIntervalSetFromValues(v))
	s.intervals = result.intervals
}

// Contains reports whether v is in the set, in O(log n).
func (s *IntervalSet) Contains(v int) bool {
	_, ok := slices.BinarySearchFunc(s.intervals, v, func(iv Interval, target int) int {
		switch {
		case target < iv.Start:
			return 1
		case target > iv.Stop:
			return -1
		default:
			return 0
		}
	})
	return ok
}

// IsNil reports whether the set has no intervals.
func (s *IntervalSet) IsNil() bool {
	return s == nil || len(s.intervals) == 0
}

// Len returns the number of discrete values represented.
func (s *IntervalSet) Len() int {
	n := 0
	for _, iv := range s.intervals {
		n += iv.Length()
	}
	return n
}

// GetIntervals exposes the canonical interval slice, read-only by
// convention (callers must not mutate the returned slice elements).
func (s *IntervalSet) GetIntervals() []Interval {
	return s.intervals
}

// GetMinElement returns the smallest value in the set, or
// IntervalStreamEOF if the set is empty.
func (s *IntervalSet) GetMinElement() int {
	if len(s.intervals) == 0 {
		return IntervalStreamEOF
	}
	return s.intervals[0].Start
}

// Equals reports structural equality of the canonical forms.
func (s *IntervalSet) Equals(other *IntervalSet) bool {
	if other == nil {
		return len(s.intervals) == 0
	}
	return slices.Equal(s.intervals, other.intervals)
}

// String renders the set using raw integer values.
func (s *IntervalSet) String() string {
	return s.StringVerbose(nil, nil, false)
}

// StringVerbose renders the set, optionally naming literal/symbolic
// token names (as ANTLR-generated recognizers supply) and optionally
// quoting each element.
func (s *IntervalSet) StringVerbose(literalNames, symbolicNames []string, elemsAreChar bool) string {
	if s == nil || len(s.intervals) == 0 {
		return "{}"
	}
	var parts []string
	for _, iv := range s.intervals {
		for v := iv.Start; v <= iv.Stop; v++ {
			parts = append(parts, s.elementName(literalNames, symbolicNames, v, elemsAreChar))
		}
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (s *IntervalSet) elementName(literalNames, symbolicNames []string, v int, elemsAreChar bool) string {
	if v == TokenEOF {
		return "<EOF>"
	}
	if elemsAreChar {
		return fmt.Sprintf("'%c'", rune(v))
	}
	if literalNames != nil && v >= 0 && v < len(literalNames) && literalNames[v] != "" {
		return literalNames[v]
	}
	if symbolicNames != nil && v >= 0 && v < len(symbolicNames) && symbolicNames[v] != "" {
		return symbolicNames[v]
	}
	return fmt.Sprintf("%d", v)
}
