// Copyright (c) 2012-2022 The ANTLR Project. All rights reserved.
// Use of this file is governed by the BSD 3-clause license that
// can be found in the LICENSE.txt file in the project root.

package langrt

// simState snapshots the input position/line/column at the last DFA
// state seen to accept, so execATN can rewind to the longest match
// once the DFA finally dies (spec §4.F's "last-accept rewind").
type simState struct {
	index    int
	line     int
	column   int
	dfaState *DFAState
}

func (s *simState) reset() {
	s.index = -1
	s.line = 0
	s.column = 0
	s.dfaState = nil
}

// LexerATNSimulator drives the lexer's DFA-based longest-match search
// (component F): one DFA per mode, grown lazily exactly like the
// parser's per-decision DFAs (spec §4.F/§5).
type LexerATNSimulator struct {
	*ATNSimulator

	recog *BaseLexer

	startIndex int
	line       int
	column     int
	mode       int

	prevAccept simState

	decisionToDFA []*DFA
}

// NewLexerATNSimulator returns a simulator with one DFA per mode
// already allocated (empty, grown on first use).
func NewLexerATNSimulator(recog *BaseLexer, atn *ATN, sharedContextCache *PredictionContextCache) *LexerATNSimulator {
	dfas := make([]*DFA, len(atn.modeToStartState))
	for i, start := range atn.modeToStartState {
		dfas[i] = NewDFA(start, i)
	}
	return &LexerATNSimulator{
		ATNSimulator:  newATNSimulator(atn, sharedContextCache),
		recog:         recog,
		line:          1,
		decisionToDFA: dfas,
	}
}

// GetText returns the text consumed since Match's last startIndex.
func (l *LexerATNSimulator) GetText(input CharStream) string {
	return input.GetTextFromInterval(NewInterval(l.startIndex, input.Index()-1))
}

// Match runs the longest-match search for the given mode, returning
// either the accepted rule's token type (TokenEOF at end of input), or
// a *LexerNoViableAltException wrapped as error (spec §4.F). Skip, more
// and type commands do not show in the return value: the replayed
// action executor applies them to the lexer itself.
func (l *LexerATNSimulator) Match(input CharStream, mode int) (int, error) {
	l.mode = mode
	mark := input.Mark()
	defer input.Release(mark)
	l.startIndex = input.Index()
	l.prevAccept.reset()

	dfa := l.decisionToDFA[mode]
	dfa.mu.Lock()
	s0 := dfa.GetS0()
	dfa.mu.Unlock()

	if s0 == nil {
		return l.matchATN(input)
	}
	return l.execATN(input, s0)
}

func (l *LexerATNSimulator) matchATN(input CharStream) (int, error) {
	startState := l.atn.modeToStartState[l.mode]
	closureConfigs := l.computeStartState(input, startState)
	dfa := l.decisionToDFA[l.mode]

	dfa.mu.Lock()
	s0, isNew := dfa.GetOrCreateState(closureConfigs)
	if isNew {
		l.setAcceptance(s0, closureConfigs)
	}
	if dfa.GetS0() == nil {
		dfa.SetS0(s0)
	}
	dfa.mu.Unlock()

	return l.execATN(input, s0)
}

// computeStartState builds the initial config set for a mode's start
// state: one config per rule reachable from it, at the empty context,
// then closes over epsilon transitions.
func (l *LexerATNSimulator) computeStartState(input CharStream, p ATNState) *ATNConfigSet {
	configs := NewATNConfigSet(false)
	for i, t := range p.GetTransitions() {
		target := t.GetTarget()
		c := NewATNConfig(target, i+1, BasePredictionContextEMPTY, SemanticContextNone)
		l.closure(input, c, configs, false, false, false)
	}
	return configs
}

// closure performs the lexer's epsilon-closure: rule calls push a
// context frame, rule stops pop one (or, at the bottom of the stack,
// mark acceptance), predicates are evaluated immediately (the lexer
// never defers to full-context prediction), and action transitions
// record which LexerAction fires if this path is the one that
// eventually accepts. Returns true if the config's alt reached a rule
// stop state; once a non-greedy alt has accepted, its configs stop
// being added, which is what makes the non-greedy accept sticky.
func (l *LexerATNSimulator) closure(input CharStream, config *ATNConfig, configs *ATNConfigSet, currentAltReachedAcceptState, speculative, treatEOFAsEpsilon bool) bool {
	if _, ok := config.GetState().(*RuleStopState); ok {
		ctx := config.GetContext()
		if ctx == nil || ctx.hasEmptyPath() {
			if ctx == nil || ctx.isEmpty() {
				configs.Add(config)
				return true
			}
			configs.Add(NewATNConfigFromContext(config, config.GetState(), BasePredictionContextEMPTY))
			currentAltReachedAcceptState = true
		}
		if ctx != nil && !ctx.isEmpty() {
			for i := 0; i < ctx.length(); i++ {
				returnState := ctx.getReturnState(i)
				if returnState == PredictionContextEmptyReturnState {
					continue
				}
				followState := l.atn.GetState(returnState)
				followConfig := NewATNConfigFromContext(config, followState, ctx.getParent(i))
				if l.closure(input, followConfig, configs, currentAltReachedAcceptState, speculative, treatEOFAsEpsilon) {
					currentAltReachedAcceptState = true
				}
			}
		}
		return currentAltReachedAcceptState
	}

	if !config.GetState().GetEpsilonOnlyTransitions() {
		if !currentAltReachedAcceptState || !config.GetPassedThroughNonGreedyDecision() {
			configs.Add(config)
		}
	}

	for _, t := range config.GetState().GetTransitions() {
		nc := l.getEpsilonTarget(input, config, t, configs, speculative, treatEOFAsEpsilon)
		if nc != nil {
			if l.closure(input, nc, configs, currentAltReachedAcceptState, speculative, treatEOFAsEpsilon) {
				currentAltReachedAcceptState = true
			}
		}
	}
	return currentAltReachedAcceptState
}

func (l *LexerATNSimulator) getEpsilonTarget(input CharStream, config *ATNConfig, t Transition, configs *ATNConfigSet, speculative, treatEOFAsEpsilon bool) *ATNConfig {
	switch tt := t.(type) {
	case *RuleTransition:
		newContext := NewSingletonPredictionContext(config.GetContext(), tt.followState.GetStateNumber())
		return NewATNConfigFromContext(config, tt.GetTarget(), newContext)
	case *PredicateTransition:
		if !l.evaluatePredicate(input, tt.ruleIndex, tt.predIndex, speculative) {
			return nil
		}
		return NewATNConfigFrom(config, tt.GetTarget())
	case *ActionTransition:
		nc := NewATNConfigFrom(config, tt.GetTarget())
		if nc.GetLexerActionIndex() == -1 {
			nc.SetLexerActionIndex(tt.actionIndex)
		}
		return nc
	case *PrecedencePredicateTransition:
		if !l.recog.Precpred(nil, tt.precedence) {
			return nil
		}
		return NewATNConfigFrom(config, tt.GetTarget())
	default:
		if t.GetIsEpsilon() {
			nc := NewATNConfigFrom(config, t.GetTarget())
			// Sticky per spec §9: NewATNConfigFrom copies the flag
			// forward automatically; a fresh decision only ever adds
			// it, never clears it.
			if d, ok := t.GetTarget().(DecisionState); ok && d.getNonGreedy() {
				nc.SetPassedThroughNonGreedyDecision(true)
			}
			return nc
		}
		if t.GetLabel() != nil {
			if t.GetLabel().Contains(TokenEOF) && treatEOFAsEpsilon {
				return NewATNConfigFrom(config, t.GetTarget())
			}
		}
		return nil
	}
}

func (l *LexerATNSimulator) evaluatePredicate(input CharStream, ruleIndex, predIndex int, speculative bool) bool {
	if !speculative {
		return l.recog.Sempred(nil, ruleIndex, predIndex)
	}
	savedLine, savedColumn, savedIndex := l.line, l.column, input.Index()
	result := l.recog.Sempred(nil, ruleIndex, predIndex)
	l.line, l.column = savedLine, savedColumn
	input.Seek(savedIndex)
	return result
}

func (l *LexerATNSimulator) execATN(input CharStream, ds0 *DFAState) (int, error) {
	if ds0.isAcceptState {
		l.captureSimState(&l.prevAccept, input, ds0)
	}
	t := input.LA(1)
	s := ds0

	dfa := l.decisionToDFA[l.mode]
	for {
		dfa.mu.Lock()
		target, found := s.edges[t]
		dfa.mu.Unlock()
		if !found {
			target = l.computeTargetState(input, s, t)
		}
		if target == nil {
			break
		}
		// Consume before capturing the accept state so the recorded
		// index/line/column reflect the end of the token, not the
		// position of its final character.
		if t != TokenEOF {
			l.consume(input)
		}
		if target.isAcceptState {
			l.captureSimState(&l.prevAccept, input, target)
			if t == TokenEOF {
				break
			}
		}
		t = input.LA(1)
		s = target
	}
	return l.failOrAccept(input, s.configs, t)
}

// computeTargetState grows the DFA by one edge: reach closes every
// matching transition out of s's configs, and the resulting set is
// canonicalised to a (possibly new) DFAState, per spec §4.E/§4.F's
// shared "grow, never shrink" discipline.
func (l *LexerATNSimulator) computeTargetState(input CharStream, s *DFAState, t int) *DFAState {
	reach := NewATNConfigSet(false)
	l.getReachableConfigSet(input, s.configs, reach, t)

	dfa := l.decisionToDFA[l.mode]
	dfa.mu.Lock()
	defer dfa.mu.Unlock()

	if reach.Len() == 0 {
		s.setEdge(t, nil)
		return nil
	}
	target, isNew := dfa.GetOrCreateState(reach)
	if isNew {
		l.setAcceptance(target, reach)
	}
	s.setEdge(t, target)
	traceDFAEdge(l.mode, s, t, target)
	return target
}

func (l *LexerATNSimulator) getReachableConfigSet(input CharStream, closureConfigs *ATNConfigSet, reach *ATNConfigSet, t int) {
	skipAlt := ATNInvalidAltNumber
	for _, c := range closureConfigs.Elements() {
		currentAltReachedAcceptState := c.GetAlt() == skipAlt
		if currentAltReachedAcceptState && c.GetPassedThroughNonGreedyDecision() {
			continue
		}
		for _, tr := range c.GetState().GetTransitions() {
			if tr.Matches(t, LexerMinCharValue, LexerMaxCharValue) {
				nc := NewATNConfigFrom(c, tr.GetTarget())
				if l.closure(input, nc, reach, currentAltReachedAcceptState, true, false) {
					skipAlt = c.GetAlt()
				}
			}
		}
	}
}

// setAcceptance marks newly-created DFAState as an accept state if any
// config in it has reached a lexer rule's stop state; the lowest alt
// number — declaration order at the mode's dispatch point — wins
// (spec §4.F's deterministic tie-break), and the winning config's
// recorded lexerActionIndex (if any) becomes the state's single action
// to replay on commit. A config records only the first action
// transition crossed on its path (getEpsilonTarget leaves an index
// already set alone), so when a rule's path carries several actions
// only the first of them is replayed.
func (l *LexerATNSimulator) setAcceptance(state *DFAState, configs *ATNConfigSet) {
	bestAlt := -1
	bestRule := -1
	bestAction := -1
	for _, c := range configs.Elements() {
		if _, ok := c.GetState().(*RuleStopState); !ok {
			continue
		}
		if bestAlt == -1 || c.GetAlt() < bestAlt {
			bestAlt = c.GetAlt()
			bestRule = c.GetState().GetRuleIndex()
			bestAction = c.GetLexerActionIndex()
		}
	}
	if bestAlt == -1 {
		return
	}
	state.isAcceptState = true
	state.prediction = l.atn.ruleToTokenType[bestRule]
	if bestAction >= 0 && bestAction < len(l.atn.lexerActions) {
		state.lexerActionExecutor = NewLexerActionExecutor([]LexerAction{l.atn.lexerActions[bestAction]})
	}
}

func (l *LexerATNSimulator) captureSimState(settings *simState, input CharStream, dfaState *DFAState) {
	settings.index = input.Index()
	settings.line = l.line
	settings.column = l.column
	settings.dfaState = dfaState
}

// failOrAccept commits to the last recorded accept, replaying its
// lexer actions and rewinding input to the accept boundary; with no
// accept ever recorded, EOF at the very start is a clean EOF token and
// anything else is a dead end (spec §4.F/§4.L).
func (l *LexerATNSimulator) failOrAccept(input CharStream, reach *ATNConfigSet, t int) (int, error) {
	if l.prevAccept.dfaState != nil {
		lexerActionExecutor := l.prevAccept.dfaState.lexerActionExecutor
		l.accept(input, lexerActionExecutor, l.prevAccept.index, l.prevAccept.line, l.prevAccept.column)
		return l.prevAccept.dfaState.prediction, nil
	}
	if t == TokenEOF && input.Index() == l.startIndex {
		return TokenEOF, nil
	}
	return 0, NewLexerNoViableAltException(reach, l.startIndex)
}

func (l *LexerATNSimulator) accept(input CharStream, lexerActionExecutor *LexerActionExecutor, index, line, column int) {
	input.Seek(index)
	l.line = line
	l.column = column
	if lexerActionExecutor != nil && l.recog != nil {
		lexerActionExecutor.Execute(l.recog)
	}
}

func (l *LexerATNSimulator) consume(input CharStream) {
	if input.LA(1) == int('\n') {
		l.line++
		l.column = 0
	} else {
		l.column++
	}
	input.Consume()
}
