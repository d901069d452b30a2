// Copyright (c) 2012-2022 The ANTLR Project. All rights reserved.
// Use of this file is governed by the BSD 3-clause license that
// can be found in the LICENSE.txt file in the project root.

package langrt

import (
	"github.com/emirpasic/gods/sets/linkedhashset"
	"golang.org/x/exp/maps"
)

// ATNConfigSet is an ordered, duplicate-free collection of ATNConfigs,
// backed by a linkedhashset (spec §3 calls for exactly this shape: an
// "ordered unique set"). configLookup additionally collapses configs
// that share (state, alt, semanticContext) by merging their contexts,
// per spec §3/§9.
type ATNConfigSet struct {
	configs *linkedhashset.Set
	lookup  map[configKey]*ATNConfig

	cachedHash int
	hashDirty  bool

	HasSemanticContext     bool
	UniqueAlt              int
	ConflictingAlts        *BitSet
	DipsIntoOuterContext   bool
	FullCtx                bool
	ReadOnly               bool

	mergeCache *mergeCache
}

// NewATNConfigSet returns an empty, mutable config set for SLL
// (fullCtx=false) or LL (fullCtx=true) prediction.
func NewATNConfigSet(fullCtx bool) *ATNConfigSet {
	return &ATNConfigSet{
		configs: linkedhashset.New(),
		lookup:  make(map[configKey]*ATNConfig),
		FullCtx: fullCtx,
		mergeCache: newMergeCache(),
	}
}

// Add inserts cfg, merging its context into any existing config that
// shares (state, alt, semanticContext). Returns false only when the set
// is unchanged: the key already existed and the merged context equals
// the existing one. A merge that changes the existing context replaces
// that entry and returns true.
func (s *ATNConfigSet) Add(cfg *ATNConfig) bool {
	if s.ReadOnly {
		panic("langrt: attempt to mutate a frozen ATNConfigSet")
	}
	if cfg.GetSemanticContext() != SemanticContextNone {
		s.HasSemanticContext = true
	}
	if cfg.GetReachesIntoOuterContext() > 0 {
		s.DipsIntoOuterContext = true
	}

	k := cfg.key()
	if existing, ok := s.lookup[k]; ok {
		rootIsWildcard := !s.FullCtx
		merged := mergePredictionContexts(existing.GetContext(), cfg.GetContext(), rootIsWildcard, s.mergeCache)
		if merged.predictionContextEquals(existing.GetContext()) {
			return false
		}
		updated := NewATNConfigFromContext(existing, existing.GetState(), merged)
		s.configs.Remove(existing)
		s.configs.Add(updated)
		s.lookup[k] = updated
		s.hashDirty = true
		return true
	}

	s.lookup[k] = cfg
	s.configs.Add(cfg)
	s.hashDirty = true
	return true
}

// Contains reports whether an equal config (by configKey) is present.
func (s *ATNConfigSet) Contains(cfg *ATNConfig) bool {
	_, ok := s.lookup[cfg.key()]
	return ok
}

// Elements returns the configs in insertion order.
func (s *ATNConfigSet) Elements() []*ATNConfig {
	vals := s.configs.Values()
	out := make([]*ATNConfig, len(vals))
	for i, v := range vals {
		out[i] = v.(*ATNConfig)
	}
	return out
}

func (s *ATNConfigSet) Len() int { return s.configs.Size() }

// MarkFullyFrozen prevents further mutation, per spec §3's "frozen
// after prediction has committed a set to a DFA state" note.
func (s *ATNConfigSet) MarkFullyFrozen() { s.ReadOnly = true }

// GetStates returns the distinct ATNStates referenced by this set's
// configs, used by the prediction simulator's reach/closure loop.
func (s *ATNConfigSet) GetStates() map[int]ATNState {
	out := make(map[int]ATNState)
	for _, c := range s.Elements() {
		out[c.GetState().GetStateNumber()] = c.GetState()
	}
	return out
}

// GetAlts returns the set of distinct alt numbers present.
func (s *ATNConfigSet) GetAlts() *BitSet {
	b := NewBitSet()
	for _, c := range s.Elements() {
		b.Set(c.GetAlt())
	}
	return b
}

// Hash is a cheap, stable content hash over the member configs'
// String() forms. Per-element hashes are summed rather than chained so
// the result is insertion-order independent, matching Equals — the DFA
// relies on equal sets producing equal hashes (spec §3/§9).
func (s *ATNConfigSet) Hash() int {
	if !s.hashDirty {
		return s.cachedHash
	}
	h := 0
	for _, c := range s.Elements() {
		eh := 0
		for _, ch := range c.String() {
			eh = eh*31 + int(ch)
		}
		h += eh
	}
	s.cachedHash = h
	s.hashDirty = false
	return h
}

// Equals compares two config sets structurally via their elements'
// String() forms, order-independent (both are logically sets).
func (s *ATNConfigSet) Equals(other *ATNConfigSet) bool {
	if other == nil {
		return false
	}
	if s.Len() != other.Len() {
		return false
	}
	seen := make(map[string]int)
	for _, c := range s.Elements() {
		seen[c.String()]++
	}
	for _, c := range other.Elements() {
		seen[c.String()]--
	}
	for _, n := range seen {
		if n != 0 {
			return false
		}
	}
	return true
}

// BitSet is a minimal growable bit set used for alt-number tracking
// (conflictingAlts, uniqueAlt detection).
type BitSet struct {
	bits map[int]bool
}

func NewBitSet() *BitSet { return &BitSet{bits: make(map[int]bool)} }

func (b *BitSet) Set(i int)      { b.bits[i] = true }
func (b *BitSet) Get(i int) bool { return b.bits[i] }
func (b *BitSet) Len() int       { return len(b.bits) }

// MinValue returns the smallest set bit, used for spec §4.E's
// deterministic "choose the minimum conflicting alt" tie-break.
func (b *BitSet) MinValue() int {
	min := -1
	for k := range b.bits {
		if min == -1 || k < min {
			min = k
		}
	}
	return min
}

func (b *BitSet) Values() []int {
	return maps.Keys(b.bits)
}
