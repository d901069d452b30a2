package langrt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// testLiteralNames indexes by token type (index 0 is the unused/invalid
// slot), mirroring a generated recognizer's LiteralNames table, so the
// error strategy's messages read "'a'"/"'b'"/"'x'" instead of raw ints.
var testLiteralNames = []string{"", "'a'", "'b'", "'x'"}

// buildStraightLineSATN assembles the trivial rule S: 'a' 'b' ; with no
// decision at all: ruleStart -A-> s1 -B-> ruleStop.
func buildStraightLineSATN() (atn *ATN, ruleStart *RuleStartState, s1 *BasicState, ruleStop *RuleStopState) {
	b := NewATNBuilder(ATNTypeParser, 3)

	ruleStart = NewRuleStartState()
	b.AddState(ruleStart)
	s1 = NewBasicState()
	b.AddState(s1)
	ruleStop = NewRuleStopState()
	b.AddState(ruleStop)

	b.DefineRule(0, ruleStart, ruleStop, TokenInvalid)
	b.AddTransition(ruleStart, NewAtomTransition(s1, testTokenA))
	b.AddTransition(s1, NewAtomTransition(ruleStop, testTokenB))

	return b.Build(), ruleStart, s1, ruleStop
}

// straightLineParser drives S: 'a' 'b' ; the way a generated recognizer
// would: SetState before every Match so GetExpectedTokens/RecoverInline
// see the right ATN position.
type straightLineParser struct {
	*BaseParser
	ruleStart *RuleStartState
	s1        *BasicState
	ruleStop  *RuleStopState
}

func newStraightLineParser(input TokenStream) *straightLineParser {
	atn, ruleStart, s1, ruleStop := buildStraightLineSATN()
	p := &straightLineParser{BaseParser: NewBaseParser(input), ruleStart: ruleStart, s1: s1, ruleStop: ruleStop}
	p.SetInterpreter(NewParserATNSimulator(atn, NewPredictionContextCache()))
	p.RuleNames = []string{"s"}
	p.LiteralNames = testLiteralNames
	return p
}

func (p *straightLineParser) S() (localctx *ParserRuleContext) {
	localctx = NewParserRuleContext(p.GetParserRuleContext(), p.GetState())
	p.EnterRule(localctx, p.ruleStart.GetStateNumber(), 0)
	defer p.ExitRule()
	defer func() {
		if r := recover(); r != nil {
			err, ok := r.(error)
			if !ok {
				panic(r)
			}
			localctx.SetException(err)
			p.GetErrorHandler().ReportError(p, err)
			p.GetErrorHandler().Recover(p, err)
		}
	}()

	p.EnterOuterAlt(localctx, 1)
	p.SetState(p.ruleStart.GetStateNumber())
	p.Match(testTokenA)
	p.SetState(p.s1.GetStateNumber())
	p.Match(testTokenB)
	return localctx
}

// recordingErrorListener captures every syntax error message and
// ambiguity report for assertion, rather than letting them go to
// stderr via the default ConsoleErrorListener.
type recordingErrorListener struct {
	BaseErrorListener
	messages    []string
	ambiguities []*BitSet
}

func (l *recordingErrorListener) SyntaxError(_ Recognizer, _ interface{}, _, _ int, msg string, _ error) {
	l.messages = append(l.messages, msg)
}

func (l *recordingErrorListener) ReportAmbiguity(_ Recognizer, _ *DFA, _, _ int, _ bool, ambigAlts *BitSet, _ *ATNConfigSet) {
	l.ambiguities = append(l.ambiguities, ambigAlts)
}

func newTestCommonTokenStream(tokens ...Token) *CommonTokenStream {
	return NewCommonTokenStream(&fakeTokenSource{tokens: tokens}, TokenDefaultChannel)
}

func newRealToken(ttype int, text string) Token {
	pair := TokenSourceCharStreamPair{}
	return CommonTokenFactoryDefault.Create(pair, ttype, text, TokenDefaultChannel, 0, 0, 1, 0)
}

// TestParser_CleanParse_BuildsExpectedTree covers a clean "ab" parse:
// zero errors, a two-leaf parse tree in the right order.
func TestParser_CleanParse_BuildsExpectedTree(t *testing.T) {
	input := newTestCommonTokenStream(
		newRealToken(testTokenA, "a"),
		newRealToken(testTokenB, "b"),
		newRealToken(TokenEOF, "<EOF>"),
	)
	p := newStraightLineParser(input)
	listener := &recordingErrorListener{}
	p.RemoveErrorListeners()
	p.AddErrorListener(listener)

	tree := p.S()

	assert.Empty(t, listener.messages)
	assert.Equal(t, 2, tree.GetChildCount())
	assert.Equal(t, "a", tree.GetChild(0).GetText())
	assert.Equal(t, "b", tree.GetChild(1).GetText())
	assert.Equal(t, "ab", tree.GetText())
	assert.Nil(t, tree.GetException())
}

// TestParser_MissingToken_SingleTokenInsertion covers "a" with the
// closing 'b' missing entirely: the error strategy fabricates it via
// single-token insertion and reports "missing 'b' at <EOF>", and the
// parse tree records an error node in B's place.
func TestParser_MissingToken_SingleTokenInsertion(t *testing.T) {
	input := newTestCommonTokenStream(
		newRealToken(testTokenA, "a"),
		newRealToken(TokenEOF, "<EOF>"),
	)
	p := newStraightLineParser(input)
	listener := &recordingErrorListener{}
	p.RemoveErrorListeners()
	p.AddErrorListener(listener)

	tree := p.S()

	if assert.Len(t, listener.messages, 1) {
		assert.Equal(t, "missing 'b' at <EOF>", listener.messages[0])
	}
	assert.Equal(t, 2, tree.GetChildCount())
	assert.Equal(t, "a", tree.GetChild(0).GetText())
	missing, ok := tree.GetChild(1).(*ErrorNodeImpl)
	if assert.True(t, ok, "second child should be the fabricated error node") {
		assert.Equal(t, testTokenB, missing.GetSymbol().GetTokenType())
	}
}

// TestParser_ExtraneousToken_SingleTokenDeletion covers "axb": the
// error strategy deletes the stray 'x' (since LA(2) is the expected
// 'b'), reports it, and the parse proceeds to a clean (S a b) tree.
func TestParser_ExtraneousToken_SingleTokenDeletion(t *testing.T) {
	input := newTestCommonTokenStream(
		newRealToken(testTokenA, "a"),
		newRealToken(testTokenX, "x"),
		newRealToken(testTokenB, "b"),
		newRealToken(TokenEOF, "<EOF>"),
	)
	p := newStraightLineParser(input)
	listener := &recordingErrorListener{}
	p.RemoveErrorListeners()
	p.AddErrorListener(listener)

	tree := p.S()

	if assert.Len(t, listener.messages, 1) {
		assert.Equal(t, "extraneous input 'x' expecting 'b'", listener.messages[0])
	}
	assert.Equal(t, 3, tree.GetChildCount(), "a, the deleted x as an error node, and b")
	assert.Equal(t, "a", tree.GetChild(0).GetText())
	_, isErr := tree.GetChild(1).(*ErrorNodeImpl)
	assert.True(t, isErr, "the deleted x must be recorded as an error node")
	assert.Equal(t, "b", tree.GetChild(2).GetText())
	assert.Nil(t, tree.GetException())
}

// buildAmbiguousSATN assembles S: 'a' 'b' | 'a' 'b' ; with a genuine
// block decision between two identical alternatives, so AdaptivePredict
// must fall back to full-context simulation and report an ambiguity.
func buildAmbiguousSATN() (atn *ATN, ruleStart *RuleStartState, blockStart *BlockStartState, ruleStop *RuleStopState, decision int) {
	b := NewATNBuilder(ATNTypeParser, 2)

	ruleStart = NewRuleStartState()
	b.AddState(ruleStart)
	blockStart = NewBlockStartState()
	b.AddState(blockStart)
	alt1Start := NewBasicState()
	b.AddState(alt1Start)
	alt2Start := NewBasicState()
	b.AddState(alt2Start)
	mid1 := NewBasicState()
	b.AddState(mid1)
	mid2 := NewBasicState()
	b.AddState(mid2)
	blockEnd := NewBlockEndState()
	b.AddState(blockEnd)
	ruleStop = NewRuleStopState()
	b.AddState(ruleStop)

	blockStart.endState = blockEnd
	blockEnd.startState = blockStart

	b.DefineRule(0, ruleStart, ruleStop, TokenInvalid)
	decision = b.DefineDecision(blockStart)

	b.AddTransition(ruleStart, NewEpsilonTransition(blockStart, -1))
	b.AddTransition(blockStart, NewEpsilonTransition(alt1Start, -1))
	b.AddTransition(blockStart, NewEpsilonTransition(alt2Start, -1))
	b.AddTransition(alt1Start, NewAtomTransition(mid1, testTokenA))
	b.AddTransition(mid1, NewAtomTransition(blockEnd, testTokenB))
	b.AddTransition(alt2Start, NewAtomTransition(mid2, testTokenA))
	b.AddTransition(mid2, NewAtomTransition(blockEnd, testTokenB))
	b.AddTransition(blockEnd, NewEpsilonTransition(ruleStop, -1))

	return b.Build(), ruleStart, blockStart, ruleStop, decision
}

type ambiguousParser struct {
	*BaseParser
	ruleStart  *RuleStartState
	blockStart *BlockStartState
	decision   int
}

func newAmbiguousParser(input TokenStream) *ambiguousParser {
	atn, ruleStart, blockStart, _, decision := buildAmbiguousSATN()
	p := &ambiguousParser{BaseParser: NewBaseParser(input), ruleStart: ruleStart, blockStart: blockStart, decision: decision}
	p.SetInterpreter(NewParserATNSimulator(atn, NewPredictionContextCache()))
	p.RuleNames = []string{"s"}
	p.LiteralNames = testLiteralNames
	return p
}

func (p *ambiguousParser) S() (localctx *ParserRuleContext) {
	localctx = NewParserRuleContext(p.GetParserRuleContext(), p.GetState())
	p.EnterRule(localctx, p.ruleStart.GetStateNumber(), 0)
	defer p.ExitRule()

	p.SetState(p.blockStart.GetStateNumber())
	alt := p.GetInterpreter().AdaptivePredict(p, p.decision, localctx)
	p.EnterOuterAlt(localctx, alt)
	p.Match(testTokenA)
	p.Match(testTokenB)
	return localctx
}

// TestParser_DisabledDeletion_FallsThroughToMismatch pins the
// RuntimeConfig knob: with single-token deletion switched off, "axb"
// cannot be repaired inline and surfaces as a plain mismatched-input
// error instead of an "extraneous input" deletion.
func TestParser_DisabledDeletion_FallsThroughToMismatch(t *testing.T) {
	input := newTestCommonTokenStream(
		newRealToken(testTokenA, "a"),
		newRealToken(testTokenX, "x"),
		newRealToken(testTokenB, "b"),
		newRealToken(TokenEOF, "<EOF>"),
	)
	p := newStraightLineParser(input)
	p.SetErrorHandler(NewDefaultErrorStrategyWithConfig(RuntimeConfig{
		DisableSingleTokenDeletion: true,
	}))
	listener := &recordingErrorListener{}
	p.RemoveErrorListeners()
	p.AddErrorListener(listener)

	tree := p.S()

	if assert.Len(t, listener.messages, 1) {
		assert.Contains(t, listener.messages[0], "mismatched input 'x'")
	}
	assert.Error(t, tree.GetException())
}

// TestParser_AdaptivePredict_DFAGrowthIsIdempotent covers spec's
// idempotent-growth invariant: predicting the same decision over the
// same input twice grows the DFA only on the first pass and returns
// the same alternative both times.
func TestParser_AdaptivePredict_DFAGrowthIsIdempotent(t *testing.T) {
	input := newTestCommonTokenStream(
		newRealToken(testTokenA, "a"),
		newRealToken(testTokenB, "b"),
		newRealToken(TokenEOF, "<EOF>"),
	)
	p := newAmbiguousParser(input)
	p.RemoveErrorListeners()
	outer := NewParserRuleContext(nil, InvalidStateNumber)

	alt1 := p.GetInterpreter().AdaptivePredict(p, p.decision, outer)
	grown := p.GetInterpreter().decisionToDFA[p.decision].NumStates()
	assert.Equal(t, 1, alt1)
	assert.Greater(t, grown, 0)

	p.GetTokenStream().Seek(0)
	alt2 := p.GetInterpreter().AdaptivePredict(p, p.decision, outer)
	assert.Equal(t, alt1, alt2)
	assert.Equal(t, grown, p.GetInterpreter().decisionToDFA[p.decision].NumStates(),
		"a second pass over the same input must not mint new DFA states")
}

// TestParser_Ambiguity_ReportsAndPicksMinimumAlt covers "ab" against
// two identical alternatives: prediction cannot resolve it under SLL,
// escalates to full context, still finds both alts viable at EOF, and
// must report the ambiguity while still picking alt 1 so the parse
// itself succeeds with zero syntax errors.
func TestParser_Ambiguity_ReportsAndPicksMinimumAlt(t *testing.T) {
	input := newTestCommonTokenStream(
		newRealToken(testTokenA, "a"),
		newRealToken(testTokenB, "b"),
		newRealToken(TokenEOF, "<EOF>"),
	)
	p := newAmbiguousParser(input)
	listener := &recordingErrorListener{}
	p.RemoveErrorListeners()
	p.AddErrorListener(listener)

	tree := p.S()

	assert.Empty(t, listener.messages, "a resolved ambiguity is not a syntax error")
	if assert.Len(t, listener.ambiguities, 1) {
		alts := listener.ambiguities[0].Values()
		assert.ElementsMatch(t, []int{1, 2}, alts)
	}
	assert.Equal(t, 1, tree.GetAltNumber(), "the deterministic tie-break picks the minimum alt")
	assert.Equal(t, "ab", tree.GetText())
}
