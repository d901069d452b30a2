// Copyright (c) 2012-2022 The ANTLR Project. All rights reserved.
// Use of this file is governed by the BSD 3-clause license that
// can be found in the LICENSE.txt file in the project root.

package langrt

import "sync"

// ATNInvalidAltNumber represents an alt number that has yet to be
// calculated, or that is invalid for a particular struct.
var ATNInvalidAltNumber int

// Grammar kinds an ATN may describe.
const (
	ATNTypeLexer = iota
	ATNTypeParser
)

// ATN represents an Augmented Transition Network: the graph that
// adaptive LL(*) prediction (component E) runs over, holding every
// state in the spec's full kind taxonomy (§3 — basic, rule
// start/stop, the various block/loop decision kinds, lexer mode
// starts) rather than just the two or three kinds a single grammar
// type needs. It is immutable once a grammar finishes loading, per
// spec §3, but the load itself — and the lazily-computed per-state
// FIRST-set cache that outlives it — must tolerate being read by one
// parse while a sibling one is still populating or querying it, per
// spec §5's "shared, read-mostly" rule. Three locks separate those
// concerns so a hot path never blocks on a cold one: stateMu guards
// the state table addState/removeState maintain (the builder's
// DefineRule/DefineMode write the rule/mode index tables without
// taking it), edgeMu guards the decision and
// lexer-action tables a decision addresses its DFA and action replay
// by, and firstSetMu guards only the memoized FIRST-set computed
// on demand per state.
type ATN struct {
	// DecisionToState is the decision points for all rules, sub-rules,
	// optional blocks, ()+, ()*, etc. Each is a decision point tracked so
	// the prediction simulator can build/extend a DFA for it.
	DecisionToState []DecisionState

	grammarType int

	lexerActions []LexerAction

	maxTokenType int

	modeNameToStartState map[string]*TokensStartState
	modeToStartState     []*TokensStartState

	ruleToStartState []*RuleStartState
	ruleToStopState  []*RuleStopState

	// ruleToTokenType maps rule index to resulting token type, lexer
	// ATNs only.
	ruleToTokenType []int

	states []ATNState

	stateMu    sync.RWMutex
	edgeMu     sync.RWMutex
	firstSetMu sync.Mutex
}

// NewATN returns a new ATN of the given grammarType, ready for a
// deserializer or builder to populate its states.
func NewATN(grammarType int, maxTokenType int) *ATN {
	return &ATN{
		grammarType:          grammarType,
		maxTokenType:         maxTokenType,
		modeNameToStartState: make(map[string]*TokensStartState),
	}
}

// GetGrammarType reports whether this ATN describes a lexer or parser.
func (a *ATN) GetGrammarType() int { return a.grammarType }

// GetState returns the state registered at stateNumber, or nil if it
// was freed by removeState. Bounds are enforced the same way
// GetExpectedTokens enforces them: a request outside the table is an
// internal contract failure (spec §7), not a recoverable condition.
func (a *ATN) GetState(stateNumber int) ATNState {
	a.stateMu.RLock()
	defer a.stateMu.RUnlock()
	if stateNumber < 0 || stateNumber >= len(a.states) {
		panic("langrt: invalid ATN state number")
	}
	return a.states[stateNumber]
}

// StatesOfKind filters the state table down to one kind from spec
// §3's taxonomy (StateBasic, StateBlockStart, StateStarLoopEntry, and
// so on) — used by tests that need to walk, say,
// "every loop-back state" without the caller re-deriving the kind
// switch the prediction/closure code already has.
func (a *ATN) StatesOfKind(kind int) []ATNState {
	a.stateMu.RLock()
	defer a.stateMu.RUnlock()
	var out []ATNState
	for _, s := range a.states {
		if s != nil && s.GetStateType() == kind {
			out = append(out, s)
		}
	}
	return out
}

// NextTokensInContext computes the set of valid tokens reachable from
// s, consulting ctx to cross rule-return edges when s's own rule is
// exhausted. A nil ctx restricts the result to s's own rule.
func (a *ATN) NextTokensInContext(s ATNState, ctx RuleContext) *IntervalSet {
	return NewLL1Analyzer(a).Look(s, nil, ctx)
}

// NextTokensNoContext computes and caches the FIRST set of s within
// its own rule (TokenEpsilon is included if the rule's end is
// reachable with no context). Guarded by firstSetMu alone — this
// cache is independent of the state/decision tables and must not
// contend with builder-time growth of either.
func (a *ATN) NextTokensNoContext(s ATNState) *IntervalSet {
	a.firstSetMu.Lock()
	defer a.firstSetMu.Unlock()
	iset := s.GetNextTokenWithinRule()
	if iset == nil {
		iset = a.NextTokensInContext(s, nil)
		iset.SetReadOnly(true)
		s.SetNextTokenWithinRule(iset)
	}
	return iset
}

// NextTokens dispatches to NextTokensNoContext or NextTokensInContext
// depending on whether ctx is nil, per spec §4.B.
func (a *ATN) NextTokens(s ATNState, ctx RuleContext) *IntervalSet {
	if ctx == nil {
		return a.NextTokensNoContext(s)
	}
	return a.NextTokensInContext(s, ctx)
}

// addState allocates state into the table under stateMu, assigning it
// the next state number — the mutation side of the same lock GetState
// and StatesOfKind read under.
func (a *ATN) addState(state ATNState) {
	a.stateMu.Lock()
	defer a.stateMu.Unlock()
	if state != nil {
		state.SetATN(a)
		state.SetStateNumber(len(a.states))
	}
	a.states = append(a.states, state)
}

// removeState frees a state's slot without shifting the table, so
// every other state's number stays valid.
func (a *ATN) removeState(state ATNState) {
	a.stateMu.Lock()
	defer a.stateMu.Unlock()
	a.states[state.GetStateNumber()] = nil
}

// defineDecisionState registers s as a numbered decision under
// edgeMu, the same lock that guards lexer-action registration — both
// are "edge" tables a DFA or action executor addresses by index once
// the grammar is loaded.
func (a *ATN) defineDecisionState(s DecisionState) int {
	a.edgeMu.Lock()
	defer a.edgeMu.Unlock()
	a.DecisionToState = append(a.DecisionToState, s)
	s.setDecision(len(a.DecisionToState) - 1)
	return s.getDecision()
}

func (a *ATN) getDecisionState(decision int) DecisionState {
	a.edgeMu.RLock()
	defer a.edgeMu.RUnlock()
	if len(a.DecisionToState) == 0 {
		return nil
	}
	return a.DecisionToState[decision]
}

// addLexerAction appends a to the lexer action table under edgeMu and
// returns its index, the value an ActionTransition's actionIndex
// refers back into.
func (a *ATN) addLexerAction(act LexerAction) int {
	a.edgeMu.Lock()
	defer a.edgeMu.Unlock()
	a.lexerActions = append(a.lexerActions, act)
	return len(a.lexerActions) - 1
}

// GetExpectedTokens computes the set of input symbols that could
// follow ATN state stateNumber in the full parse context ctx,
// including Token.EOF if the outermost rule could end there. Predicates
// encountered are assumed true. Per spec §4.L's GetExpectedTokens.
func (a *ATN) GetExpectedTokens(stateNumber int, ctx RuleContext) *IntervalSet {
	s := a.GetState(stateNumber)
	following := a.NextTokens(s, nil)
	if !following.Contains(TokenEpsilon) {
		return following
	}

	expected := NewIntervalSet()
	expected.AddSet(following)
	expected.RemoveOne(TokenEpsilon)

	for ctx != nil && ctx.GetInvokingState() >= 0 && following.Contains(TokenEpsilon) {
		invokingState := a.GetState(ctx.GetInvokingState())
		rt := invokingState.GetTransitions()[0].(*RuleTransition)
		following = a.NextTokens(rt.followState, nil)
		expected.AddSet(following)
		expected.RemoveOne(TokenEpsilon)
		ctx = ctx.GetParent()
	}
	if following.Contains(TokenEpsilon) {
		expected.AddOne(TokenEOF)
	}
	return expected
}

func (a *ATN) GetRuleToStartState(index int) *RuleStartState { return a.ruleToStartState[index] }
func (a *ATN) GetRuleToStopState(index int) *RuleStopState   { return a.ruleToStopState[index] }
func (a *ATN) GetMaxTokenType() int                          { return a.maxTokenType }

// GetNumberOfDecisions reports how many decisions this ATN has
// allocated DFAs for.
func (a *ATN) GetNumberOfDecisions() int {
	a.edgeMu.RLock()
	defer a.edgeMu.RUnlock()
	return len(a.DecisionToState)
}
