// Copyright (c) 2012-2022 The ANTLR Project. All rights reserved.
// Use of this file is governed by the BSD 3-clause license that
// can be found in the LICENSE.txt file in the project root.

package langrt

import "fmt"

// RecognitionException is the common carrier for syntax errors (spec
// §4.L): no-viable-alternative, input-mismatch, and failed-predicate
// all embed it. Internal contract failures (bad ATN, unknown state
// kind) are NOT RecognitionExceptions — those panic, per spec §7.
type RecognitionException struct {
	Message        string
	recognizer     Recognizer
	input          IntStream
	ctx            RuleContext
	OffendingToken Token
	OffendingState int
}

// IntStream is the minimal stream contract RecognitionException needs
// to report the offending state independent of whether it came from a
// CharStream (lexing) or a TokenStream (parsing).
type IntStream interface {
	Index() int
	Size() int
}

func NewRecognitionException(message string, recognizer Recognizer, input IntStream, ctx RuleContext) *RecognitionException {
	e := &RecognitionException{Message: message, recognizer: recognizer, input: input, ctx: ctx}
	if recognizer != nil {
		e.OffendingState = recognizer.GetState()
	} else {
		e.OffendingState = InvalidStateNumber
	}
	return e
}

func (e *RecognitionException) Error() string { return e.Message }

func (e *RecognitionException) GetOffendingToken() Token { return e.OffendingToken }
func (e *RecognitionException) GetCtx() RuleContext       { return e.ctx }

// GetExpectedTokens consults the ATN relative to ctx and
// OffendingState, per spec §4.L.
func (e *RecognitionException) GetExpectedTokens() *IntervalSet {
	if e.recognizer == nil {
		return nil
	}
	return e.recognizer.GetATN().GetExpectedTokens(e.OffendingState, e.ctx)
}

// NoViableAltException is thrown when no alternative survives SLL nor
// full-context prediction (spec §4.E.5/§4.L).
type NoViableAltException struct {
	*RecognitionException
	StartToken    Token
	DeadEndConfigs *ATNConfigSet
}

func NewNoViableAltException(recognizer Recognizer, input IntStream, startToken, offendingToken Token, deadEndConfigs *ATNConfigSet, ctx RuleContext) *NoViableAltException {
	base := NewRecognitionException("no viable alternative", recognizer, input, ctx)
	base.OffendingToken = offendingToken
	return &NoViableAltException{RecognitionException: base, StartToken: startToken, DeadEndConfigs: deadEndConfigs}
}

// InputMismatchException is thrown by the error strategy when neither
// single-token deletion nor insertion resolves a mismatch (spec §4.I).
type InputMismatchException struct {
	*RecognitionException
}

func NewInputMismatchException(recognizer Recognizer, input IntStream, ctx RuleContext, offendingToken Token, expected *IntervalSet) *InputMismatchException {
	base := NewRecognitionException("mismatched input", recognizer, input, ctx)
	base.OffendingToken = offendingToken
	if expected != nil {
		base.Message = fmt.Sprintf("mismatched input %s expecting %s", tokenDisplay(offendingToken), expected.String())
	}
	return &InputMismatchException{RecognitionException: base}
}

// FailedPredicateException is thrown when a semantic predicate
// evaluates false during execution (spec §4.L).
type FailedPredicateException struct {
	*RecognitionException
	RuleIndex int
	PredIndex int
	predicate string
}

func NewFailedPredicateException(recognizer Recognizer, input IntStream, ctx RuleContext, predicate string, ruleIndex, predIndex int) *FailedPredicateException {
	msg := fmt.Sprintf("failed predicate: {%s}?", predicate)
	base := NewRecognitionException(msg, recognizer, input, ctx)
	return &FailedPredicateException{RecognitionException: base, RuleIndex: ruleIndex, PredIndex: predIndex, predicate: predicate}
}

// LexerNoViableAltException is reported by the lexer simulator when
// the DFA dies with no recorded accept state (spec §4.F/§4.L).
type LexerNoViableAltException struct {
	Message        string
	DeadEndConfigs *ATNConfigSet
	StartIndex     int
}

func NewLexerNoViableAltException(deadEndConfigs *ATNConfigSet, startIndex int) *LexerNoViableAltException {
	return &LexerNoViableAltException{Message: "no viable alternative at input", DeadEndConfigs: deadEndConfigs, StartIndex: startIndex}
}

func (e *LexerNoViableAltException) Error() string { return e.Message }

func tokenDisplay(t Token) string {
	if t == nil {
		return "<unknown>"
	}
	if t.GetTokenType() == TokenEOF {
		return "<EOF>"
	}
	return fmt.Sprintf("'%s'", t.GetText())
}
