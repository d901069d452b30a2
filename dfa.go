// Copyright (c) 2012-2022 The ANTLR Project. All rights reserved.
// Use of this file is governed by the BSD 3-clause license that
// can be found in the LICENSE.txt file in the project root.

package langrt

import "sync"

// DFAState is a node of a per-decision lookahead DFA (component E/F).
// Edges are added under the owning DFA's mutex so concurrent parses of
// the same grammar can grow the DFA safely, per spec §5.
type DFAState struct {
	configs        *ATNConfigSet
	edges          map[int]*DFAState
	isAcceptState  bool
	prediction     int
	lexerActionExecutor *LexerActionExecutor
	predicates     []*PredPrediction
	requiresFullContext bool
	stateNumber    int
}

// NewDFAState returns a state wrapping configs, not yet wired into any
// DFA.
func NewDFAState(configs *ATNConfigSet) *DFAState {
	if configs == nil {
		configs = NewATNConfigSet(false)
	}
	return &DFAState{configs: configs, edges: make(map[int]*DFAState), prediction: ATNInvalidAltNumber}
}

func (d *DFAState) GetConfigs() *ATNConfigSet { return d.configs }

func (d *DFAState) setEdge(symbol int, target *DFAState) { d.edges[symbol] = target }

// PredPrediction pairs a predicate with the alt it guards, evaluated
// in order at match time; the first true predicate wins (spec §4.E.5).
type PredPrediction struct {
	Pred SemanticContext
	Alt  int
}

// DFA is a per-decision deterministic automaton cache. It grows
// monotonically: once an edge or accept prediction is set, it is never
// retracted (spec §4.E's invariant).
type DFA struct {
	decision     int
	atnStartState DecisionState

	mu sync.Mutex

	s0 *DFAState

	// states canonicalises equal config-sets to the same DFAState:
	// bucketed by config-set hash, resolved by Equals within a bucket,
	// per spec §3/§9 ("two equal config-sets map to the same DFA
	// state").
	states    map[int][]*DFAState
	numStates int

	// s0Full holds full-context start states, keyed by the caller's
	// actual prediction context (spec §3's "start states keyed by
	// context" for full-context mode).
	s0Full map[string]*DFAState
}

// NewDFA returns an empty DFA for the given decision.
func NewDFA(atnStartState DecisionState, decision int) *DFA {
	return &DFA{
		decision:      decision,
		atnStartState: atnStartState,
		states:        make(map[int][]*DFAState),
		s0Full:        make(map[string]*DFAState),
	}
}

// GetOrCreateState canonicalises cfgs against existing states,
// returning (existingOrNew, wasNew). Callers must hold d.mu. A newly
// committed state's config set is frozen: prediction never mutates a
// set once the DFA owns it.
func (d *DFA) GetOrCreateState(cfgs *ATNConfigSet) (*DFAState, bool) {
	h := cfgs.Hash()
	for _, existing := range d.states[h] {
		if existing.configs.Equals(cfgs) {
			return existing, false
		}
	}
	s := NewDFAState(cfgs)
	s.stateNumber = d.numStates
	d.numStates++
	d.states[h] = append(d.states[h], s)
	cfgs.MarkFullyFrozen()
	return s, true
}

func (d *DFA) GetS0() *DFAState  { return d.s0 }
func (d *DFA) SetS0(s *DFAState) { d.s0 = s }

func (d *DFA) GetS0Full(ctxKey string) *DFAState { return d.s0Full[ctxKey] }
func (d *DFA) SetS0Full(ctxKey string, s *DFAState) { d.s0Full[ctxKey] = s }

func (d *DFA) GetDecision() int { return d.decision }

// NumStates reports how many distinct DFAState nodes this decision has
// accumulated so far (used by the idempotent-growth tests).
func (d *DFA) NumStates() int { return d.numStates }
