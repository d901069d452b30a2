// Copyright (c) 2012-2022 The ANTLR Project. All rights reserved.
// Use of this file is governed by the BSD 3-clause license that
// can be found in the LICENSE.txt file in the project root.

package langrt

// Transition kinds, per spec §3.
const (
	TransitionEpsilon = iota + 1
	TransitionRange
	TransitionRule
	TransitionPredicate
	TransitionAtom
	TransitionAction
	TransitionSet
	TransitionNotSet
	TransitionWildcard
	TransitionPrecedence
)

// Transition is implemented by every transition kind. GetIsEpsilon
// marks zero-width edges (epsilon, predicate, action, precedence) for
// FIRST-set and closure purposes, per spec §4.B/§4.D.
type Transition interface {
	GetTarget() ATNState
	SetTarget(ATNState)
	GetIsEpsilon() bool
	GetLabel() *IntervalSet
	Matches(symbol, minVocabSymbol, maxVocabSymbol int) bool
}

// BaseTransition carries the fields common to every transition kind.
type BaseTransition struct {
	target    ATNState
	isEpsilon bool
	label     *IntervalSet
}

func (t *BaseTransition) GetTarget() ATNState    { return t.target }
func (t *BaseTransition) SetTarget(s ATNState)   { t.target = s }
func (t *BaseTransition) GetIsEpsilon() bool     { return t.isEpsilon }
func (t *BaseTransition) GetLabel() *IntervalSet { return t.label }

// EpsilonTransition is a zero-width edge taken unconditionally during
// closure.
type EpsilonTransition struct {
	*BaseTransition
	outermostPrecedenceReturn int
}

func NewEpsilonTransition(target ATNState, outermostPrecedenceReturn int) *EpsilonTransition {
	return &EpsilonTransition{
		BaseTransition:            &BaseTransition{target: target, isEpsilon: true},
		outermostPrecedenceReturn: outermostPrecedenceReturn,
	}
}

func (t *EpsilonTransition) Matches(int, int, int) bool { return false }

// AtomTransition matches a single token type.
type AtomTransition struct {
	*BaseTransition
	atomLabel int
}

func NewAtomTransition(target ATNState, label int) *AtomTransition {
	t := &AtomTransition{BaseTransition: &BaseTransition{target: target}, atomLabel: label}
	t.label = t.makeLabel()
	return t
}

func (t *AtomTransition) makeLabel() *IntervalSet {
	return NewIntervalSetFromRange(t.atomLabel, t.atomLabel)
}

func (t *AtomTransition) Matches(symbol, _, _ int) bool { return symbol == t.atomLabel }

// RangeTransition matches any token type in [from, to].
type RangeTransition struct {
	*BaseTransition
	start, stop int
}

func NewRangeTransition(target ATNState, start, stop int) *RangeTransition {
	t := &RangeTransition{BaseTransition: &BaseTransition{target: target}, start: start, stop: stop}
	t.label = NewIntervalSetFromRange(start, stop)
	return t
}

func (t *RangeTransition) Matches(symbol, _, _ int) bool {
	return symbol >= t.start && symbol <= t.stop
}

// SetTransition matches any token type in the given IntervalSet.
type SetTransition struct {
	*BaseTransition
}

func NewSetTransition(target ATNState, set *IntervalSet) *SetTransition {
	if set == nil {
		set = NewIntervalSetFromValues(TokenInvalid)
	}
	return &SetTransition{BaseTransition: &BaseTransition{target: target, label: set}}
}

func (t *SetTransition) Matches(symbol, _, _ int) bool { return t.label.Contains(symbol) }

// NotSetTransition matches any token type NOT in the given set and not
// EOF, bounded by the vocabulary range.
type NotSetTransition struct {
	*BaseTransition
}

func NewNotSetTransition(target ATNState, set *IntervalSet) *NotSetTransition {
	if set == nil {
		set = NewIntervalSetFromValues(TokenInvalid)
	}
	return &NotSetTransition{BaseTransition: &BaseTransition{target: target, label: set}}
}

func (t *NotSetTransition) Matches(symbol, minVocab, maxVocab int) bool {
	return symbol >= minVocab && symbol <= maxVocab && !t.label.Contains(symbol)
}

// WildcardTransition matches any symbol in the vocabulary range.
type WildcardTransition struct {
	*BaseTransition
}

func NewWildcardTransition(target ATNState) *WildcardTransition {
	return &WildcardTransition{BaseTransition: &BaseTransition{target: target}}
}

func (t *WildcardTransition) Matches(symbol, minVocab, maxVocab int) bool {
	return symbol >= minVocab && symbol <= maxVocab
}

// RuleTransition pushes followState onto the prediction context and
// jumps into the called rule's start state.
type RuleTransition struct {
	*BaseTransition
	ruleIndex    int
	precedence   int
	followState  ATNState
}

func NewRuleTransition(ruleStart ATNState, ruleIndex, precedence int, followState ATNState) *RuleTransition {
	return &RuleTransition{
		BaseTransition: &BaseTransition{target: ruleStart, isEpsilon: true},
		ruleIndex:      ruleIndex,
		precedence:     precedence,
		followState:    followState,
	}
}

func (t *RuleTransition) Matches(int, int, int) bool { return false }

// PredicateTransition carries a semantic predicate that gates the
// edge; preserved (not evaluated) during SLL/LL(*) prediction and
// evaluated only during execution, per spec §4.D.
type PredicateTransition struct {
	*BaseTransition
	ruleIndex      int
	predIndex      int
	isCtxDependent bool
}

func NewPredicateTransition(target ATNState, ruleIndex, predIndex int, isCtxDependent bool) *PredicateTransition {
	return &PredicateTransition{
		BaseTransition: &BaseTransition{target: target, isEpsilon: true},
		ruleIndex:      ruleIndex,
		predIndex:      predIndex,
		isCtxDependent: isCtxDependent,
	}
}

func (t *PredicateTransition) Matches(int, int, int) bool { return false }

func (t *PredicateTransition) getPredicate() *Predicate {
	return NewPredicate(t.ruleIndex, t.predIndex, t.isCtxDependent)
}

// ActionTransition carries an embedded action; epsilon for closure
// purposes, executed only when the parser actually walks the edge.
type ActionTransition struct {
	*BaseTransition
	ruleIndex      int
	actionIndex    int
	isCtxDependent bool
}

func NewActionTransition(target ATNState, ruleIndex, actionIndex int, isCtxDependent bool) *ActionTransition {
	return &ActionTransition{
		BaseTransition: &BaseTransition{target: target, isEpsilon: true},
		ruleIndex:      ruleIndex,
		actionIndex:    actionIndex,
		isCtxDependent: isCtxDependent,
	}
}

func (t *ActionTransition) Matches(int, int, int) bool { return false }

// PrecedencePredicateTransition gates left-recursive rule
// alternatives by the caller's precedence level.
type PrecedencePredicateTransition struct {
	*BaseTransition
	precedence int
}

func NewPrecedencePredicateTransition(target ATNState, precedence int) *PrecedencePredicateTransition {
	return &PrecedencePredicateTransition{
		BaseTransition: &BaseTransition{target: target, isEpsilon: true},
		precedence:     precedence,
	}
}

func (t *PrecedencePredicateTransition) Matches(int, int, int) bool { return false }

func (t *PrecedencePredicateTransition) getPredicate() *PrecedencePredicate {
	return NewPrecedencePredicate(t.precedence)
}
