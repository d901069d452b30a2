// Copyright (c) 2012-2022 The ANTLR Project. All rights reserved.
// Use of this file is governed by the BSD 3-clause license that
// can be found in the LICENSE.txt file in the project root.

package langrt

import "fmt"

// ErrorStrategy is consulted by the parser driver (component H)
// whenever Match fails or a rule body throws, per spec §4.I.
type ErrorStrategy interface {
	Reset(recognizer Parser)
	RecoverInline(recognizer Parser) Token
	Recover(recognizer Parser, e error)
	Sync(recognizer Parser)
	InErrorRecoveryMode(recognizer Parser) bool
	ReportError(recognizer Parser, e error)
	ReportMatch(recognizer Parser)
}

// DefaultErrorStrategy implements single-token insertion/deletion and
// follow-set synchronisation, grounded directly on
// original_source/runtime/Cpp/runtime/DefaultErrorStrategy.cpp.
type DefaultErrorStrategy struct {
	errorRecoveryMode bool
	lastErrorIndex    int
	// lastErrorStates is a value, not a pointer: spec §9's ownership
	// note resolved by never nilling it, only reassigning on reset.
	lastErrorStates IntervalSet

	cfg RuntimeConfig
}

var _ ErrorStrategy = (*DefaultErrorStrategy)(nil)

func NewDefaultErrorStrategy() *DefaultErrorStrategy {
	return NewDefaultErrorStrategyWithConfig(DefaultRuntimeConfig)
}

// NewDefaultErrorStrategyWithConfig lets a caller disable single-token
// insertion/deletion via RuntimeConfig without subclassing, e.g. a
// grammar whose FOLLOW sets make those heuristics too eager.
func NewDefaultErrorStrategyWithConfig(cfg RuntimeConfig) *DefaultErrorStrategy {
	return &DefaultErrorStrategy{lastErrorIndex: -1, cfg: cfg.FillDefaults()}
}

func (d *DefaultErrorStrategy) Reset(recognizer Parser) {
	d.endErrorCondition(recognizer)
}

func (d *DefaultErrorStrategy) InErrorRecoveryMode(Parser) bool { return d.errorRecoveryMode }

func (d *DefaultErrorStrategy) beginErrorCondition(Parser) { d.errorRecoveryMode = true }

// endErrorCondition resets the loop-breaker state. lastErrorStates is
// reassigned to a zero-value IntervalSet, never nilled, per spec §9.
func (d *DefaultErrorStrategy) endErrorCondition(Parser) {
	d.errorRecoveryMode = false
	d.lastErrorStates = IntervalSet{}
	d.lastErrorIndex = -1
}

func (d *DefaultErrorStrategy) ReportMatch(recognizer Parser) {
	d.endErrorCondition(recognizer)
}

// ReportError dispatches to the matching message builder by
// exception kind, per spec §9's "variant match" replacing dynamic_cast
// chains. Reporting is idempotent within a recovery window (spec §7):
// once errorRecoveryMode is set, further errors are suppressed until a
// successful match calls ReportMatch.
func (d *DefaultErrorStrategy) ReportError(recognizer Parser, e error) {
	if d.InErrorRecoveryMode(recognizer) {
		return
	}
	d.beginErrorCondition(recognizer)
	switch err := e.(type) {
	case *NoViableAltException:
		d.reportNoViableAlternative(recognizer, err)
	case *InputMismatchException:
		d.reportInputMismatch(recognizer, err.RecognitionException)
	case *FailedPredicateException:
		d.notifyErrorListeners(recognizer, err.Message, err.RecognitionException)
	case *RecognitionException:
		d.reportInputMismatch(recognizer, err)
	default:
		d.notifyErrorListeners(recognizer, e.Error(), NewRecognitionException(e.Error(), recognizer, recognizer.GetTokenStream(), recognizer.GetParserRuleContext()))
	}
}

func (d *DefaultErrorStrategy) reportNoViableAlternative(recognizer Parser, e *NoViableAltException) {
	msg := fmt.Sprintf("no viable alternative at input %s", d.escapeWSAndQuote(recognizer.GetTokenStream().GetTextFromInterval(
		NewInterval(e.StartToken.GetTokenIndex(), e.OffendingToken.GetTokenIndex()))))
	d.notifyErrorListeners(recognizer, msg, e.RecognitionException)
}

func (d *DefaultErrorStrategy) reportInputMismatch(recognizer Parser, e *RecognitionException) {
	expected := e.GetExpectedTokens()
	msg := fmt.Sprintf("mismatched input %s expecting %s", tokenDisplay(e.OffendingToken), d.describeExpected(recognizer, expected))
	d.notifyErrorListeners(recognizer, msg, e)
}

// reportMissingToken announces the single-token insertion RecoverInline
// is about to perform. Real ANTLR reports this before fabricating the
// symbol, not after, so the offending position in the message is the
// token that was actually there, not the one inserted in its place.
func (d *DefaultErrorStrategy) reportMissingToken(recognizer Parser) {
	if d.InErrorRecoveryMode(recognizer) {
		return
	}
	d.beginErrorCondition(recognizer)
	t := recognizer.GetTokenStream().LT(1)
	expecting := d.getExpectedTokens(recognizer)
	msg := fmt.Sprintf("missing %s at %s", d.describeExpected(recognizer, expecting), tokenDisplay(t))
	recognizer.GetErrorListenerDispatch().SyntaxError(recognizer, t, t.GetLine(), t.GetColumn(), msg, nil)
}

func (d *DefaultErrorStrategy) notifyErrorListeners(recognizer Parser, msg string, e *RecognitionException) {
	var line, col int
	var tok interface{}
	if e.OffendingToken != nil {
		line = e.OffendingToken.GetLine()
		col = e.OffendingToken.GetColumn()
		tok = e.OffendingToken
	}
	recognizer.GetErrorListenerDispatch().SyntaxError(recognizer, tok, line, col, msg, e)
}

func (d *DefaultErrorStrategy) describeExpected(recognizer Parser, expected *IntervalSet) string {
	if expected == nil {
		return "{}"
	}
	return expected.StringVerbose(recognizer.GetLiteralNames(), recognizer.GetSymbolicNames(), false)
}

// Sync implements spec §4.I's per-state-kind dispatch: at a block
// start or star-loop entry it tries single-token deletion and otherwise
// panics with an InputMismatchException; at a plus/star loop-back it
// reports the unwanted token and consumes until a token that can follow
// the loop iteration or the rule; at any other state kind it does
// nothing.
func (d *DefaultErrorStrategy) Sync(recognizer Parser) {
	if d.InErrorRecoveryMode(recognizer) {
		return
	}
	s := recognizer.GetInterpreter().GetATN().GetState(recognizer.GetState())
	la := recognizer.GetTokenStream().LA(1)
	nextTokens := recognizer.GetATN().NextTokens(s, nil)
	if nextTokens.Contains(TokenEpsilon) || nextTokens.Contains(la) {
		return
	}
	switch s.GetStateType() {
	case StateBlockStart, StatePlusBlockStart, StateStarBlockStart, StateStarLoopEntry:
		if d.singleTokenDeletion(recognizer) != nil {
			return
		}
		panic(NewInputMismatchException(recognizer, recognizer.GetTokenStream(), recognizer.GetParserRuleContext(), recognizer.GetTokenStream().LT(1), nextTokens))
	case StatePlusLoopBack, StateStarLoopBack:
		d.reportUnwantedToken(recognizer)
		expecting := recognizer.GetExpectedTokens()
		whatFollowsLoopIterationOrRule := expecting.Or(d.getErrorRecoverySet(recognizer))
		d.consumeUntil(recognizer, whatFollowsLoopIterationOrRule)
	}
}

// RecoverInline implements spec §4.I's three-step inline recovery:
// single-token deletion, then single-token insertion, else a thrown
// InputMismatchException.
func (d *DefaultErrorStrategy) RecoverInline(recognizer Parser) Token {
	if tok := d.singleTokenDeletion(recognizer); tok != nil {
		recognizer.Consume()
		return tok
	}
	if d.singleTokenInsertionOk(recognizer) {
		d.reportMissingToken(recognizer)
		return d.getMissingSymbol(recognizer)
	}
	expecting := recognizer.GetExpectedTokens()
	e := NewInputMismatchException(recognizer, recognizer.GetTokenStream(), recognizer.GetParserRuleContext(), recognizer.GetTokenStream().LT(1), expecting)
	panic(e)
}

func (d *DefaultErrorStrategy) singleTokenDeletion(recognizer Parser) Token {
	if d.cfg.DisableSingleTokenDeletion {
		return nil
	}
	nextTokenType := recognizer.GetTokenStream().LA(2)
	expecting := recognizer.GetExpectedTokens()
	if expecting.Contains(nextTokenType) {
		d.reportUnwantedToken(recognizer)
		recognizer.Consume()
		matched := recognizer.GetTokenStream().LT(1)
		d.ReportMatch(recognizer)
		return matched
	}
	return nil
}

func (d *DefaultErrorStrategy) singleTokenInsertionOk(recognizer Parser) bool {
	if d.cfg.DisableSingleTokenInsertion {
		return false
	}
	currentSymbolType := recognizer.GetTokenStream().LA(1)
	atn := recognizer.GetInterpreter().GetATN()
	s := atn.GetState(recognizer.GetState())
	next := s.GetTransitions()[0].GetTarget()
	expectingAtLL2 := atn.NextTokens(next, recognizer.GetParserRuleContext())
	return expectingAtLL2.Contains(currentSymbolType)
}

func (d *DefaultErrorStrategy) getMissingSymbol(recognizer Parser) Token {
	currentSymbol := recognizer.GetTokenStream().LT(1)
	expecting := d.getExpectedTokens(recognizer)
	expectedTokenType := TokenInvalid
	if !expecting.IsNil() {
		expectedTokenType = expecting.GetMinElement()
	}
	var tokenText string
	if expectedTokenType == TokenEOF {
		tokenText = "<missing EOF>"
	} else {
		tokenText = fmt.Sprintf("<missing %s>", d.describeExpected(recognizer, expecting))
	}
	current := currentSymbol
	lookback := recognizer.GetTokenStream().LT(-1)
	if current.GetTokenType() == TokenEOF && lookback != nil {
		current = lookback
	}
	factory := recognizer.GetTokenFactory()
	pair := TokenSourceCharStreamPair{TokenSource: recognizer.GetTokenStream().GetTokenSource(), CharStream: recognizer.GetInputStream()}
	tok := factory.Create(pair, expectedTokenType, tokenText, TokenDefaultChannel, -1, -1, current.GetLine(), current.GetColumn())
	return tok
}

func (d *DefaultErrorStrategy) getExpectedTokens(recognizer Parser) *IntervalSet {
	return recognizer.GetExpectedTokens()
}

func (d *DefaultErrorStrategy) reportUnwantedToken(recognizer Parser) {
	if d.InErrorRecoveryMode(recognizer) {
		return
	}
	d.beginErrorCondition(recognizer)
	t := recognizer.GetTokenStream().LT(1)
	expecting := d.getExpectedTokens(recognizer)
	msg := fmt.Sprintf("extraneous input %s expecting %s", tokenDisplay(t), d.describeExpected(recognizer, expecting))
	recognizer.GetErrorListenerDispatch().SyntaxError(recognizer, t, t.GetLine(), t.GetColumn(), msg, nil)
}

// Recover implements spec §4.I's loop-breaker: if this is the same
// (input index, parser state) as the last recovery attempt, force-
// consume one token before computing a recovery set, guaranteeing
// progress even when the recovery set already contains LA(1).
func (d *DefaultErrorStrategy) Recover(recognizer Parser, e error) {
	if d.lastErrorIndex == recognizer.GetTokenStream().Index() &&
		d.lastErrorStates.Contains(recognizer.GetState()) {
		recognizer.Consume()
	}
	d.lastErrorIndex = recognizer.GetTokenStream().Index()
	d.lastErrorStates.AddOne(recognizer.GetState())
	followSet := d.getErrorRecoverySet(recognizer)
	d.consumeUntil(recognizer, followSet)
}

func (d *DefaultErrorStrategy) consumeUntil(recognizer Parser, set *IntervalSet) {
	ttype := recognizer.GetTokenStream().LA(1)
	for ttype != TokenEOF && !set.Contains(ttype) {
		recognizer.Consume()
		ttype = recognizer.GetTokenStream().LA(1)
	}
}

// getErrorRecoverySet walks the invocation stack computing the union
// of the FIRST set of each frame's call-site follow state, per spec
// §4.I.
func (d *DefaultErrorStrategy) getErrorRecoverySet(recognizer Parser) *IntervalSet {
	atn := recognizer.GetInterpreter().GetATN()
	ctx := recognizer.GetParserRuleContext()
	recoverSet := NewIntervalSet()
	for ctx != nil && ctx.GetInvokingState() >= 0 {
		invokingState := atn.GetState(ctx.GetInvokingState())
		rt := invokingState.GetTransitions()[0].(*RuleTransition)
		follow := atn.NextTokens(rt.followState, nil)
		recoverSet.AddSet(follow)
		parent, ok := ctx.GetParent().(*ParserRuleContext)
		if !ok {
			break
		}
		ctx = parent
	}
	recoverSet.RemoveOne(TokenEpsilon)
	return recoverSet
}

func (d *DefaultErrorStrategy) escapeWSAndQuote(s string) string {
	return fmt.Sprintf("'%s'", s)
}

// BailErrorStrategy panics immediately on the first mismatch, bubbling
// a ParseCancellationException-equivalent rather than recovering. Not
// used by default; offered for callers that want fail-fast parsing.
type BailErrorStrategy struct {
	DefaultErrorStrategy
}

func NewBailErrorStrategy() *BailErrorStrategy {
	return &BailErrorStrategy{DefaultErrorStrategy: *NewDefaultErrorStrategy()}
}

func (b *BailErrorStrategy) Recover(recognizer Parser, e error) {
	panic(e)
}

func (b *BailErrorStrategy) RecoverInline(recognizer Parser) Token {
	e := NewInputMismatchException(recognizer, recognizer.GetTokenStream(), recognizer.GetParserRuleContext(), recognizer.GetTokenStream().LT(1), recognizer.GetExpectedTokens())
	panic(e)
}

func (b *BailErrorStrategy) Sync(Parser) {}
