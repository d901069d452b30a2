// Copyright (c) 2012-2022 The ANTLR Project. All rights reserved.
// Use of this file is governed by the BSD 3-clause license that
// can be found in the LICENSE.txt file in the project root.

package langrt

import (
	"strconv"

	"golang.org/x/exp/slices"
)

// ParserATNSimulator drives adaptive LL(*) prediction (component E):
// a per-decision SLL DFA is grown lazily against the token stream,
// falling back to a full-context (LL) simulation only when SLL hits a
// conflict it cannot resolve context-free, per spec §4.E.
type ParserATNSimulator struct {
	*ATNSimulator

	decisionToDFA []*DFA
	cfg           RuntimeConfig
}

// NewParserATNSimulator returns a simulator with one (empty, grown on
// first use) DFA per decision in atn, using DefaultRuntimeConfig.
func NewParserATNSimulator(atn *ATN, sharedContextCache *PredictionContextCache) *ParserATNSimulator {
	return NewParserATNSimulatorWithConfig(atn, sharedContextCache, DefaultRuntimeConfig)
}

// NewParserATNSimulatorWithConfig is NewParserATNSimulator with the
// ambiguity-reporting and fallback knobs taken from cfg.
func NewParserATNSimulatorWithConfig(atn *ATN, sharedContextCache *PredictionContextCache, cfg RuntimeConfig) *ParserATNSimulator {
	dfas := make([]*DFA, atn.GetNumberOfDecisions())
	for i := range dfas {
		dfas[i] = NewDFA(atn.getDecisionState(i), i)
	}
	return &ParserATNSimulator{
		ATNSimulator:  newATNSimulator(atn, sharedContextCache),
		decisionToDFA: dfas,
		cfg:           cfg.FillDefaults(),
	}
}

// AdaptivePredict returns the 1-based alternative the parser should
// take at decision, consulting (and growing) that decision's DFA.
// Conflicts discovered under context-free (SLL) simulation trigger a
// full-context re-simulation seeded from outerContext, per spec
// §4.E's two-phase design.
func (p *ParserATNSimulator) AdaptivePredict(parser Parser, decision int, outerContext RuleContext) int {
	dfa := p.decisionToDFA[decision]
	input := parser.GetTokenStream()
	startIndex := input.Index()
	// Prediction is pure lookahead: whatever it consumes while growing
	// the DFA or walking full context, the token stream must land back
	// on startIndex before the rule body does its own real Match calls.
	defer input.Seek(startIndex)

	dfa.mu.Lock()
	s0 := dfa.GetS0()
	dfa.mu.Unlock()

	if s0 == nil {
		// The start state is never itself an accept or conflict
		// verdict: every alternative is present in it by construction,
		// and prediction only decides after at least one token of
		// lookahead has narrowed the field.
		s0Closure := p.computeStartStateWithContext(dfa.atnStartState, BasePredictionContextEMPTY, false)
		dfa.mu.Lock()
		newS0, _ := dfa.GetOrCreateState(s0Closure)
		if dfa.GetS0() == nil {
			dfa.SetS0(newS0)
		}
		s0 = dfa.GetS0()
		dfa.mu.Unlock()
	}

	alt, conflictState := p.execATN(parser, dfa, s0, input, startIndex, outerContext)
	if conflictState == nil {
		return alt
	}

	if p.cfg.MaxFullContextRetries < 1 {
		// LL fallback disabled: resolve the SLL conflict in place with
		// the deterministic minimum-alt tie-break.
		return p.reportAndResolveAmbiguity(parser, dfa, startIndex, input.Index(), conflictState.configs)
	}

	traceFullContextFallback(dfa.decision, startIndex)
	parser.GetErrorListenerDispatch().ReportAttemptingFullContext(
		parser, dfa, startIndex, input.Index(), conflictState.configs.GetAlts(), conflictState.configs)
	input.Seek(startIndex)
	return p.execFullContext(parser, dfa, input, startIndex, outerContext)
}

// execATN runs the SLL simulation. It returns either a resolved alt
// (conflictState nil) or the DFA state whose configs conflicted,
// signalling that execFullContext must take over from startIndex.
func (p *ParserATNSimulator) execATN(parser Parser, dfa *DFA, s0 *DFAState, input TokenStream, startIndex int, outerContext RuleContext) (int, *DFAState) {
	current := s0
	for {
		t := input.LA(1)
		dfa.mu.Lock()
		target, found := current.edges[t]
		dfa.mu.Unlock()
		if !found {
			target = p.computeTargetState(dfa, current, t)
		}
		if target == nil {
			if t == TokenEOF && hasRuleStopConfig(current.configs) {
				// Every surviving alt ends the decision's rule exactly
				// at EOF; treat it as a conflict for full context (or
				// the ambiguity tie-break) to resolve.
				return ATNInvalidAltNumber, current
			}
			p.noViableAlt(parser, input, current.configs, startIndex)
		}
		if target.requiresFullContext {
			return ATNInvalidAltNumber, target
		}
		if target.isAcceptState {
			return p.resolveAcceptState(parser, target, outerContext), nil
		}
		input.Consume()
		current = target
	}
}

// execFullContext re-simulates from scratch using the real call-stack
// context. A conflict that survives to end-of-input is a genuine
// ambiguity: it is reported and resolved by taking the minimum
// conflicting alt, per spec §4.E's deterministic tie-break. A decision
// the full context does resolve is reported as context-sensitive.
func (p *ParserATNSimulator) execFullContext(parser Parser, dfa *DFA, input TokenStream, startIndex int, outerContext RuleContext) int {
	previous := p.fullContextStartState(dfa, outerContext)

	for {
		reach := p.computeReachSet(previous, input.LA(1), true)
		if reach == nil || reach.Len() == 0 {
			if input.LA(1) == TokenEOF && hasRuleStopConfig(previous) {
				return p.reportAndResolveAmbiguity(parser, dfa, startIndex, input.Index(), previous)
			}
			p.noViableAlt(parser, input, previous, startIndex)
		}
		if alt := uniqueAlt(reach); alt != ATNInvalidAltNumber {
			parser.GetErrorListenerDispatch().ReportContextSensitivity(
				parser, dfa, startIndex, input.Index(), alt, reach)
			return alt
		}
		if input.LA(1) == TokenEOF {
			return p.reportAndResolveAmbiguity(parser, dfa, startIndex, input.Index(), reach)
		}
		previous = reach
		input.Consume()
	}
}

// fullContextStartState memoises the full-context start closure per
// caller context, via the DFA's context-keyed start-state table.
func (p *ParserATNSimulator) fullContextStartState(dfa *DFA, outerContext RuleContext) *ATNConfigSet {
	initialContext := predictionContextFromRuleContext(p.atn, outerContext)
	key := strconv.Itoa(initialContext.hash())

	dfa.mu.Lock()
	if s := dfa.GetS0Full(key); s != nil {
		dfa.mu.Unlock()
		return s.configs
	}
	dfa.mu.Unlock()

	closure := p.computeStartStateWithContext(dfa.atnStartState, initialContext, true)
	dfa.mu.Lock()
	defer dfa.mu.Unlock()
	if s := dfa.GetS0Full(key); s != nil {
		return s.configs
	}
	s := NewDFAState(closure)
	closure.MarkFullyFrozen()
	dfa.SetS0Full(key, s)
	return s.configs
}

func (p *ParserATNSimulator) reportAndResolveAmbiguity(parser Parser, dfa *DFA, startIndex, stopIndex int, configs *ATNConfigSet) int {
	alts := configs.GetAlts()
	min := alts.MinValue()
	if min == -1 {
		p.noViableAlt(parser, parser.GetTokenStream(), configs, startIndex)
	}
	if alts.Len() > 1 {
		traceAmbiguity(dfa.decision, alts, startIndex, stopIndex)
		if !p.cfg.SuppressAmbiguityReports {
			parser.GetErrorListenerDispatch().ReportAmbiguity(parser, dfa, startIndex, stopIndex, false, alts, configs)
		}
	}
	return min
}

// resolveAcceptState returns the accept state's single prediction, or
// evaluates its guarding predicates in declared order and returns the
// first alt whose predicate holds (spec §4.E.5's predicate-gated
// accept states).
func (p *ParserATNSimulator) resolveAcceptState(parser Parser, d *DFAState, outerContext RuleContext) int {
	if len(d.predicates) == 0 {
		return d.prediction
	}
	for _, pp := range d.predicates {
		if pp.Pred.Eval(parser, outerContext) {
			return pp.Alt
		}
	}
	return d.prediction
}

func (p *ParserATNSimulator) noViableAlt(parser Parser, input TokenStream, configs *ATNConfigSet, startIndex int) {
	ctx := parser.GetParserRuleContext()
	startToken := input.Get(startIndex)
	e := NewNoViableAltException(parser, input, startToken, input.LT(1), configs, ctx)
	panic(e)
}

// computeStartStateWithContext builds the initial config set for a
// decision: one config per alternative, seeded with either the
// context-free empty context (SLL) or the real invocation-stack
// context derived from the caller (full-context LL), per spec
// §4.E/§4.C.
func (p *ParserATNSimulator) computeStartStateWithContext(d DecisionState, initialContext PredictionContext, fullCtx bool) *ATNConfigSet {
	configs := NewATNConfigSet(fullCtx)
	busy := make(map[closureKey]bool)
	for i, t := range d.GetTransitions() {
		target := t.GetTarget()
		c := NewATNConfig(target, i+1, initialContext, SemanticContextNone)
		p.closure(c, configs, busy, fullCtx, 0)
	}
	return configs
}

// closureKey identifies a config within one closure walk so epsilon
// cycles (star loops, left-recursive entry states) terminate, per spec
// §4.D's "track (state, alt, context) visited within this closure".
type closureKey struct {
	state int
	alt   int
	ctx   int
	sc    string
}

// closureDepthLimit caps how many rule-stop pops a single closure may
// chain through, the runaway guard spec §4.D requires for ambiguous
// left-recursive grammars.
const closureDepthLimit = 100

// closure performs the parser's epsilon-closure with full rule-call
// push/pop bookkeeping: RuleTransition deepens the context, a
// RuleStopState pops it (or, once the context bottoms out, commits the
// config for reach computation), and predicate transitions are folded
// into the config's SemanticContext rather than evaluated immediately
// (deferred to resolveAcceptState / Sempred at match time, spec §4.D).
func (p *ParserATNSimulator) closure(config *ATNConfig, configs *ATNConfigSet, busy map[closureKey]bool, fullCtx bool, depth int) {
	key := closureKey{state: config.GetState().GetStateNumber(), alt: config.GetAlt(), sc: config.GetSemanticContext().String()}
	if ctx := config.GetContext(); ctx != nil {
		key.ctx = ctx.hash()
	}
	if busy[key] {
		return
	}
	busy[key] = true

	if _, ok := config.GetState().(*RuleStopState); ok {
		ctx := config.GetContext()
		if ctx == nil || ctx.isEmpty() {
			// The alt falls off the end of the decision's rule; under
			// SLL this is where prediction would dip into the caller's
			// context it does not have.
			if !fullCtx {
				config.SetReachesIntoOuterContext(config.GetReachesIntoOuterContext() + 1)
			}
			configs.Add(config)
			return
		}
		if depth < -closureDepthLimit {
			return
		}
		for i := 0; i < ctx.length(); i++ {
			if ctx.getReturnState(i) == PredictionContextEmptyReturnState {
				if fullCtx {
					configs.Add(NewATNConfigFromContext(config, config.GetState(), BasePredictionContextEMPTY))
				}
				continue
			}
			returnState := p.atn.GetState(ctx.getReturnState(i))
			parentCtx := ctx.getParent(i)
			c := NewATNConfigFromContext(config, returnState, parentCtx)
			p.closure(c, configs, busy, fullCtx, depth-1)
		}
		return
	}

	if !config.GetState().GetEpsilonOnlyTransitions() {
		configs.Add(config)
	}

	for _, t := range config.GetState().GetTransitions() {
		c, childDepth := p.getEpsilonTarget(config, t, depth)
		if c != nil {
			p.closure(c, configs, busy, fullCtx, childDepth)
		}
	}
}

func (p *ParserATNSimulator) getEpsilonTarget(config *ATNConfig, t Transition, depth int) (*ATNConfig, int) {
	switch tt := t.(type) {
	case *RuleTransition:
		newContext := NewSingletonPredictionContext(config.GetContext(), tt.followState.GetStateNumber())
		return NewATNConfigFromContext(config, tt.GetTarget(), newContext), depth + 1
	case *PredicateTransition:
		c := NewATNConfigFrom(config, tt.GetTarget())
		c.SetSemanticContext(andSemanticContext(config.GetSemanticContext(), tt.getPredicate()))
		return c, depth
	case *PrecedencePredicateTransition:
		c := NewATNConfigFrom(config, tt.GetTarget())
		c.SetSemanticContext(andSemanticContext(config.GetSemanticContext(), tt.getPredicate()))
		return c, depth
	default:
		if t.GetIsEpsilon() {
			return NewATNConfigFrom(config, t.GetTarget()), depth
		}
		return nil, depth
	}
}

// computeTargetState grows dfa by one edge out of previousD on symbol
// t, canonicalising the resulting config set to a (possibly new)
// DFAState exactly like the lexer's DFA growth (spec §4.E/§5's shared
// "grow, never shrink" rule).
func (p *ParserATNSimulator) computeTargetState(dfa *DFA, previousD *DFAState, t int) *DFAState {
	reach := p.computeReachSet(previousD.configs, t, false)

	dfa.mu.Lock()
	defer dfa.mu.Unlock()

	if reach == nil || reach.Len() == 0 {
		previousD.setEdge(t, nil)
		return nil
	}
	p.canonicalizeContexts(reach)
	target, isNew := dfa.GetOrCreateState(reach)
	if isNew {
		p.setAccept(target, target.configs, false)
	}
	previousD.setEdge(t, target)
	traceDFAEdge(dfa.decision, previousD, t, target)
	return target
}

// canonicalizeContexts runs every config's context through the shared
// insert-only context cache before the set is committed to a DFA
// state, so structurally equal call-stack graphs collapse to one
// handle across parses (spec §5/§9).
func (p *ParserATNSimulator) canonicalizeContexts(configs *ATNConfigSet) {
	for _, c := range configs.Elements() {
		if ctx := c.GetContext(); ctx != nil {
			c.SetContext(p.sharedContextCache.add(ctx))
		}
	}
}

// computeReachSet advances every config in closureConfigs across any
// transition matching t, then closes the result.
func (p *ParserATNSimulator) computeReachSet(closureConfigs *ATNConfigSet, t int, fullCtx bool) *ATNConfigSet {
	intermediate := NewATNConfigSet(fullCtx)
	minVocab, maxVocab := TokenMinUserTokenType, p.atn.GetMaxTokenType()
	for _, c := range closureConfigs.Elements() {
		for _, tr := range c.GetState().GetTransitions() {
			if tr.Matches(t, minVocab, maxVocab) {
				intermediate.Add(NewATNConfigFrom(c, tr.GetTarget()))
			}
		}
	}
	if intermediate.Len() == 0 {
		return nil
	}
	reach := NewATNConfigSet(fullCtx)
	busy := make(map[closureKey]bool)
	for _, c := range intermediate.Elements() {
		p.closure(c, reach, busy, fullCtx, 0)
	}
	if reach.Len() == 0 {
		return nil
	}
	return reach
}

// setAccept marks a newly minted DFAState as either a plain accept
// (a single surviving alt), a predicate-gated accept (several alts,
// each behind a distinct semantic context), or — under SLL only — a
// state that must escalate to full-context simulation because more
// than one alt survives with no predicate to distinguish them.
func (p *ParserATNSimulator) setAccept(state *DFAState, configs *ATNConfigSet, fullCtx bool) {
	alts := configs.GetAlts()
	if alts.Len() == 0 {
		return
	}
	if alts.Len() == 1 {
		state.isAcceptState = true
		state.prediction = alts.Values()[0]
		configs.UniqueAlt = state.prediction
		return
	}
	configs.ConflictingAlts = alts
	if configs.HasSemanticContext {
		preds := predicatesByAlt(configs)
		if len(preds) > 0 {
			state.isAcceptState = true
			state.predicates = preds
			state.prediction = alts.MinValue()
			return
		}
	}
	if fullCtx {
		state.isAcceptState = true
		state.prediction = alts.MinValue()
		return
	}
	state.requiresFullContext = true
	state.prediction = alts.MinValue()
}

// predicatesByAlt collects one PredPrediction per distinct alt that
// carries a non-trivial semantic context, in ascending alt order, for
// DFAState.predicates (spec §4.E.5).
func predicatesByAlt(configs *ATNConfigSet) []*PredPrediction {
	seen := make(map[int]bool)
	var out []*PredPrediction
	for _, alt := range sortedAlts(configs.GetAlts()) {
		for _, c := range configs.Elements() {
			if c.GetAlt() != alt || seen[alt] {
				continue
			}
			if c.GetSemanticContext() != SemanticContextNone {
				out = append(out, &PredPrediction{Pred: c.GetSemanticContext(), Alt: alt})
				seen[alt] = true
			}
		}
	}
	return out
}

func sortedAlts(b *BitSet) []int {
	vals := b.Values()
	slices.Sort(vals)
	return vals
}

// uniqueAlt returns the sole alt present in configs, or
// ATNInvalidAltNumber if zero or more than one alt survives.
func uniqueAlt(configs *ATNConfigSet) int {
	alts := configs.GetAlts()
	if alts.Len() != 1 {
		return ATNInvalidAltNumber
	}
	return alts.Values()[0]
}

// hasRuleStopConfig reports whether any config has reached its rule's
// stop state, i.e. the decision's rule can end at the current input
// position.
func hasRuleStopConfig(configs *ATNConfigSet) bool {
	for _, c := range configs.Elements() {
		if _, ok := c.GetState().(*RuleStopState); ok {
			return true
		}
	}
	return false
}
