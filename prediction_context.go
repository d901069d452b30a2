// Copyright (c) 2012-2022 The ANTLR Project. All rights reserved.
// Use of this file is governed by the BSD 3-clause license that
// can be found in the LICENSE.txt file in the project root.

package langrt

import (
	"fmt"
	"math"
	"sort"

	"github.com/cnf/structhash"
)

// PredictionContextEmptyReturnState is the sentinel return state used
// by the empty context. It is defined to sort last among real return
// states so the array-merge tie-break in spec §4.C ("$ is canonical
// last") is just "sort ascending".
const PredictionContextEmptyReturnState = math.MaxInt32

// PredictionContext is an immutable node in the shared call-stack DAG
// (component C). Two contexts compare equal iff structurally equal;
// hash is content-addressed and cached on construction.
type PredictionContext interface {
	hash() int
	predictionContextEquals(other PredictionContext) bool
	length() int
	getParent(i int) PredictionContext
	getReturnState(i int) int
	isEmpty() bool
	hasEmptyPath() bool
	String() string
}

// contentHash runs structhash over a small hashable projection of a
// context's identifying fields, giving the content-addressed hash the
// spec's invariant names without hand-rolled FNV combining.
func contentHash(v interface{}) int {
	h, err := structhash.Hash(v, 1)
	if err != nil {
		panic(err)
	}
	sum := 0
	for _, c := range h {
		sum = sum*31 + int(c)
	}
	return sum
}

// BasePredictionContextEMPTY is the process-wide empty-context
// singleton, per spec §3.
var BasePredictionContextEMPTY PredictionContext = &EmptyPredictionContext{}

// EmptyPredictionContext represents the bottom of a call stack: the
// parse has returned to the outermost rule.
type EmptyPredictionContext struct{}

func (e *EmptyPredictionContext) isEmpty() bool      { return true }
func (e *EmptyPredictionContext) hasEmptyPath() bool { return true }
func (e *EmptyPredictionContext) length() int        { return 1 }
func (e *EmptyPredictionContext) getParent(int) PredictionContext { return nil }
func (e *EmptyPredictionContext) getReturnState(int) int          { return PredictionContextEmptyReturnState }
func (e *EmptyPredictionContext) hash() int                        { return contentHash("empty") }
func (e *EmptyPredictionContext) predictionContextEquals(other PredictionContext) bool {
	_, ok := other.(*EmptyPredictionContext)
	return ok
}
func (e *EmptyPredictionContext) String() string { return "$" }

// SingletonPredictionContext is a single (parent, returnState) frame;
// the overwhelmingly common case.
type SingletonPredictionContext struct {
	parent      PredictionContext
	returnState int
	cachedHash  int
}

// NewSingletonPredictionContext returns the empty context directly
// when parent is nil and returnState is the empty sentinel (matching
// the source's collapsing rule), else a real singleton node.
func NewSingletonPredictionContext(parent PredictionContext, returnState int) PredictionContext {
	if returnState == PredictionContextEmptyReturnState && parent == nil {
		return BasePredictionContextEMPTY
	}
	s := &SingletonPredictionContext{parent: parent, returnState: returnState}
	s.cachedHash = s.computeHash()
	return s
}

func (s *SingletonPredictionContext) computeHash() int {
	parentHash := 0
	if s.parent != nil {
		parentHash = s.parent.hash()
	}
	return contentHash([]int{parentHash, s.returnState})
}

func (s *SingletonPredictionContext) isEmpty() bool { return false }
func (s *SingletonPredictionContext) hasEmptyPath() bool {
	return s.returnState == PredictionContextEmptyReturnState
}
func (s *SingletonPredictionContext) length() int { return 1 }
func (s *SingletonPredictionContext) getParent(int) PredictionContext { return s.parent }
func (s *SingletonPredictionContext) getReturnState(int) int          { return s.returnState }
func (s *SingletonPredictionContext) hash() int                       { return s.cachedHash }
func (s *SingletonPredictionContext) predictionContextEquals(other PredictionContext) bool {
	o, ok := other.(*SingletonPredictionContext)
	if !ok {
		return false
	}
	if s.returnState != o.returnState {
		return false
	}
	if s.parent == nil {
		return o.parent == nil
	}
	return s.parent.predictionContextEquals(o.parent)
}
func (s *SingletonPredictionContext) String() string {
	up := ""
	if s.parent != nil {
		up = s.parent.String()
	}
	if len(up) == 0 {
		if s.returnState == PredictionContextEmptyReturnState {
			return "$"
		}
		return fmt.Sprintf("%d", s.returnState)
	}
	return fmt.Sprintf("%d %s", s.returnState, up)
}

// ArrayPredictionContext is a merged node with multiple parents, kept
// with returnStates strictly ascending (PredictionContextEmptyReturnState
// sorts last).
type ArrayPredictionContext struct {
	parents      []PredictionContext
	returnStates []int
	cachedHash   int
}

func NewArrayPredictionContext(parents []PredictionContext, returnStates []int) *ArrayPredictionContext {
	a := &ArrayPredictionContext{parents: parents, returnStates: returnStates}
	a.cachedHash = a.computeHash()
	return a
}

func (a *ArrayPredictionContext) computeHash() int {
	hashes := make([]int, 0, len(a.parents)*2)
	for i, p := range a.parents {
		ph := 0
		if p != nil {
			ph = p.hash()
		}
		hashes = append(hashes, ph, a.returnStates[i])
	}
	return contentHash(hashes)
}

func (a *ArrayPredictionContext) isEmpty() bool {
	return len(a.returnStates) == 1 && a.returnStates[0] == PredictionContextEmptyReturnState
}
func (a *ArrayPredictionContext) hasEmptyPath() bool {
	return a.getReturnState(a.length()-1) == PredictionContextEmptyReturnState
}
func (a *ArrayPredictionContext) length() int { return len(a.returnStates) }
func (a *ArrayPredictionContext) getParent(i int) PredictionContext { return a.parents[i] }
func (a *ArrayPredictionContext) getReturnState(i int) int          { return a.returnStates[i] }
func (a *ArrayPredictionContext) hash() int                          { return a.cachedHash }
func (a *ArrayPredictionContext) predictionContextEquals(other PredictionContext) bool {
	o, ok := other.(*ArrayPredictionContext)
	if !ok || len(a.returnStates) != len(o.returnStates) {
		return false
	}
	for i := range a.returnStates {
		if a.returnStates[i] != o.returnStates[i] {
			return false
		}
		ap, op := a.parents[i], o.parents[i]
		if (ap == nil) != (op == nil) {
			return false
		}
		if ap != nil && !ap.predictionContextEquals(op) {
			return false
		}
	}
	return true
}
func (a *ArrayPredictionContext) String() string {
	s := "["
	for i := range a.returnStates {
		if i > 0 {
			s += ", "
		}
		if a.parents[i] == nil {
			s += "nil"
		} else {
			s += a.parents[i].String()
		}
	}
	return s + "]"
}

// predictionContextFromRuleContext walks outer's parent chain,
// building a singleton chain of invoking states, per spec §3's
// fromRuleContext lifecycle note. A nil *ParserRuleContext held in a
// RuleContext interface (the outermost rule's parent) counts as no
// context.
func predictionContextFromRuleContext(atn *ATN, outer RuleContext) PredictionContext {
	if pc, ok := outer.(*ParserRuleContext); outer == nil || (ok && pc == nil) {
		return BasePredictionContextEMPTY
	}
	parentCtx := outer.GetParent()
	if pc, ok := parentCtx.(*ParserRuleContext); parentCtx == nil || (ok && pc == nil) || outer == parentCtx {
		return BasePredictionContextEMPTY
	}
	parent := predictionContextFromRuleContext(atn, parentCtx)
	state := atn.GetState(outer.GetInvokingState())
	transition := state.GetTransitions()[0].(*RuleTransition)
	return NewSingletonPredictionContext(parent, transition.followState.GetStateNumber())
}

// mergeCache memoises merge(a,b) within a single call to
// AdaptivePredict; it is never shared across calls (spec §5).
type mergeCache struct {
	m map[predictionContextPair]PredictionContext
}

type predictionContextPair struct {
	a, b PredictionContext
}

func newMergeCache() *mergeCache {
	return &mergeCache{m: make(map[predictionContextPair]PredictionContext)}
}

func (c *mergeCache) get(a, b PredictionContext) (PredictionContext, bool) {
	if c == nil {
		return nil, false
	}
	if v, ok := c.m[predictionContextPair{a, b}]; ok {
		return v, true
	}
	if v, ok := c.m[predictionContextPair{b, a}]; ok {
		return v, true
	}
	return nil, false
}

func (c *mergeCache) put(a, b PredictionContext, v PredictionContext) {
	if c == nil {
		return
	}
	c.m[predictionContextPair{a, b}] = v
}

// mergePredictionContexts implements spec §4.C's merge algorithm:
// identity/cache short-circuit, singleton/array dispatch, root
// (empty-vs-non-empty) handling, and the deterministic tie-breaks
// (equal-payload merges collapse to one entry, $ sorts last).
func mergePredictionContexts(a, b PredictionContext, rootIsWildcard bool, cache *mergeCache) PredictionContext {
	if a == b {
		return a
	}
	if cached, ok := cache.get(a, b); ok {
		return cached
	}

	// mergeRoot: under wildcard semantics (SLL), anything merged with
	// the empty context collapses to empty. Under full-context
	// semantics, $ survives as the last entry of the array merge below.
	_, aEmpty := a.(*EmptyPredictionContext)
	_, bEmpty := b.(*EmptyPredictionContext)
	if rootIsWildcard && (aEmpty || bEmpty) {
		cache.put(a, b, BasePredictionContextEMPTY)
		return BasePredictionContextEMPTY
	}

	var result PredictionContext
	as, aIsSingle := a.(*SingletonPredictionContext)
	bs, bIsSingle := b.(*SingletonPredictionContext)
	switch {
	case aIsSingle && bIsSingle:
		result = mergeSingletons(as, bs, rootIsWildcard, cache)
	default:
		result = mergeArraysGeneral(a, b, rootIsWildcard, cache)
	}
	cache.put(a, b, result)
	return result
}

func mergeSingletons(a, b *SingletonPredictionContext, rootIsWildcard bool, cache *mergeCache) PredictionContext {
	if cached, ok := cache.get(a, b); ok {
		return cached
	}

	if a.returnState == b.returnState {
		mergedParent := mergeRootOrParents(a.parent, b.parent, rootIsWildcard, cache)
		if a.parent != nil && mergedParent.predictionContextEquals(a.parent) {
			return a
		}
		if b.parent != nil && mergedParent.predictionContextEquals(b.parent) {
			return b
		}
		return NewSingletonPredictionContext(mergedParent, a.returnState)
	}

	// different return states: produce an array of two, sorted so $
	// (PredictionContextEmptyReturnState) sorts last.
	var parents []PredictionContext
	var returnStates []int
	if a.returnState < b.returnState {
		parents = []PredictionContext{a.parent, b.parent}
		returnStates = []int{a.returnState, b.returnState}
	} else {
		parents = []PredictionContext{b.parent, a.parent}
		returnStates = []int{b.returnState, a.returnState}
	}
	merged := NewArrayPredictionContext(parents, returnStates)
	cache.put(a, b, merged)
	return merged
}

// mergeRootOrParents handles spec §4.C.3's mergeRoot: when either side
// is the empty context, rootIsWildcard collapses to empty, otherwise
// $ joins the non-empty side's array with $ last.
func mergeRootOrParents(a, b PredictionContext, rootIsWildcard bool, cache *mergeCache) PredictionContext {
	if a == nil && b == nil {
		return BasePredictionContextEMPTY
	}
	if a == nil {
		if rootIsWildcard {
			return BasePredictionContextEMPTY
		}
		return b
	}
	if b == nil {
		if rootIsWildcard {
			return BasePredictionContextEMPTY
		}
		return a
	}
	return mergePredictionContexts(a, b, rootIsWildcard, cache)
}

func mergeArraysGeneral(a, b PredictionContext, rootIsWildcard bool, cache *mergeCache) PredictionContext {
	aArr := toArray(a)
	bArr := toArray(b)
	return mergeArrays(aArr, bArr, rootIsWildcard, cache)
}

// toArray wraps a non-array context (singleton or empty) as a
// one-entry ArrayPredictionContext, read generically through the
// PredictionContext interface so the empty context's sentinel
// return state is handled the same way as a real singleton's.
func toArray(p PredictionContext) *ArrayPredictionContext {
	if arr, ok := p.(*ArrayPredictionContext); ok {
		return arr
	}
	return NewArrayPredictionContext([]PredictionContext{p.getParent(0)}, []int{p.getReturnState(0)})
}

// mergeArrays implements the classic sorted merge on returnStates,
// recursively merging parents of equal-payload entries and
// deduplicating parent references afterwards (combineCommonParents).
func mergeArrays(a, b *ArrayPredictionContext, rootIsWildcard bool, cache *mergeCache) PredictionContext {
	if cached, ok := cache.get(a, b); ok {
		return cached
	}

	i, j := 0, 0
	var mergedParents []PredictionContext
	var mergedReturnStates []int

	for i < len(a.returnStates) && j < len(b.returnStates) {
		pa, pb := a.parents[i], b.parents[j]
		ra, rb := a.returnStates[i], b.returnStates[j]
		switch {
		case ra == rb:
			mergedReturnStates = append(mergedReturnStates, ra)
			mergedParents = append(mergedParents, mergeRootOrParents(pa, pb, rootIsWildcard, cache))
			i++
			j++
		case ra < rb:
			mergedReturnStates = append(mergedReturnStates, ra)
			mergedParents = append(mergedParents, pa)
			i++
		default:
			mergedReturnStates = append(mergedReturnStates, rb)
			mergedParents = append(mergedParents, pb)
			j++
		}
	}
	for ; i < len(a.returnStates); i++ {
		mergedReturnStates = append(mergedReturnStates, a.returnStates[i])
		mergedParents = append(mergedParents, a.parents[i])
	}
	for ; j < len(b.returnStates); j++ {
		mergedReturnStates = append(mergedReturnStates, b.returnStates[j])
		mergedParents = append(mergedParents, b.parents[j])
	}

	mergedParents, mergedReturnStates = combineCommonParents(mergedParents, mergedReturnStates)

	var result PredictionContext
	if len(mergedReturnStates) == 1 {
		result = NewSingletonPredictionContext(mergedParents[0], mergedReturnStates[0])
	} else {
		arr := NewArrayPredictionContext(mergedParents, mergedReturnStates)
		if arr.predictionContextEquals(a) {
			result = a
		} else if arr.predictionContextEquals(b) {
			result = b
		} else {
			result = arr
		}
	}
	cache.put(a, b, result)
	return result
}

// combineCommonParents deduplicates parent pointers so structurally
// equal parents share one handle (cuts hashing cost for later merges,
// per spec §9's design note).
func combineCommonParents(parents []PredictionContext, returnStates []int) ([]PredictionContext, []int) {
	uniq := make(map[int]PredictionContext)
	order := make([]int, 0, len(parents))
	for _, p := range parents {
		if p == nil {
			continue
		}
		h := p.hash()
		if _, ok := uniq[h]; !ok {
			uniq[h] = p
			order = append(order, h)
		}
	}
	out := make([]PredictionContext, len(parents))
	for i, p := range parents {
		if p == nil {
			out[i] = nil
			continue
		}
		out[i] = uniq[p.hash()]
	}
	// re-sort by returnState to keep the strictly-ascending invariant
	// (the merge loop above already emits ascending order; this guards
	// callers that hand-build arrays directly in tests).
	idx := make([]int, len(returnStates))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(x, y int) bool { return returnStates[idx[x]] < returnStates[idx[y]] })
	sortedParents := make([]PredictionContext, len(out))
	sortedStates := make([]int, len(returnStates))
	for newPos, oldPos := range idx {
		sortedParents[newPos] = out[oldPos]
		sortedStates[newPos] = returnStates[oldPos]
	}
	return sortedParents, sortedStates
}
