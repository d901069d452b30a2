package langrt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	testTokenA = 1
	testTokenB = 2
	testTokenX = 3
)

// buildCallATN assembles two parser rules: rule 0 calls rule 1, then
// matches TokenB; rule 1 matches TokenA and returns.
//
//	rule0: ruleStart0 --call rule1--> ruleStart1 ... ruleStop1 --(follow)--> afterCall0 -B-> ruleStop0
//	rule1: ruleStart1 -A-> ruleStop1
func buildCallATN() (atn *ATN, ruleStart0 *RuleStartState, afterCall0 ATNState, ruleStop0 *RuleStopState, ruleStart1 *RuleStartState, ruleStop1 *RuleStopState) {
	b := NewATNBuilder(ATNTypeParser, 2)

	ruleStart0 = NewRuleStartState()
	b.AddState(ruleStart0)
	afterCall0State := NewBasicState()
	b.AddState(afterCall0State)
	ruleStop0 = NewRuleStopState()
	b.AddState(ruleStop0)

	ruleStart1 = NewRuleStartState()
	b.AddState(ruleStart1)
	ruleStop1 = NewRuleStopState()
	b.AddState(ruleStop1)

	b.DefineRule(0, ruleStart0, ruleStop0, TokenInvalid)
	b.DefineRule(1, ruleStart1, ruleStop1, TokenInvalid)

	b.AddTransition(ruleStart0, NewRuleTransition(ruleStart1, 1, 0, afterCall0State))
	b.AddTransition(afterCall0State, NewAtomTransition(ruleStop0, testTokenB))
	b.AddTransition(ruleStart1, NewAtomTransition(ruleStop1, testTokenA))

	return b.Build(), ruleStart0, afterCall0State, ruleStop0, ruleStart1, ruleStop1
}

func TestATN_NextTokensNoContext_DirectAtom(t *testing.T) {
	atn, _, afterCall0, _, _, _ := buildCallATN()

	got := atn.NextTokensNoContext(afterCall0)
	assert.True(t, got.Equals(NewIntervalSetFromValues(testTokenB)))
}

func TestATN_NextTokensNoContext_RuleStopIsEpsilon(t *testing.T) {
	atn, _, _, _, _, ruleStop1 := buildCallATN()

	got := atn.NextTokensNoContext(ruleStop1)
	assert.True(t, got.Equals(NewIntervalSetFromValues(TokenEpsilon)))
}

func TestATN_NextTokensNoContext_CachesAndIsReadOnly(t *testing.T) {
	atn, _, afterCall0, _, _, _ := buildCallATN()

	first := atn.NextTokensNoContext(afterCall0)
	second := atn.NextTokensNoContext(afterCall0)

	assert.Same(t, first, second)
	assert.Panics(t, func() { first.AddOne(99) })
}

func TestATN_GetExpectedTokens_DirectAtomNoWalk(t *testing.T) {
	atn, _, afterCall0, _, _, _ := buildCallATN()

	got := atn.GetExpectedTokens(afterCall0.GetStateNumber(), nil)
	assert.True(t, got.Equals(NewIntervalSetFromValues(testTokenB)))
}

func TestATN_GetExpectedTokens_WalksInvokingStateChain(t *testing.T) {
	atn, ruleStart0, _, _, _, ruleStop1 := buildCallATN()

	outerCtx := NewParserRuleContext(nil, InvalidStateNumber)
	innerCtx := NewParserRuleContext(outerCtx, ruleStart0.GetStateNumber())

	got := atn.GetExpectedTokens(ruleStop1.GetStateNumber(), innerCtx)
	assert.True(t, got.Equals(NewIntervalSetFromValues(testTokenB)))
}

func TestATN_GetExpectedTokens_ReachesEOFAtOutermostRule(t *testing.T) {
	atn, _, _, ruleStop0, _, _ := buildCallATN()

	outerCtx := NewParserRuleContext(nil, InvalidStateNumber)
	got := atn.GetExpectedTokens(ruleStop0.GetStateNumber(), outerCtx)
	assert.True(t, got.Contains(TokenEOF))
}

func TestATN_GetState_ReturnsRegisteredState(t *testing.T) {
	atn, ruleStart0, _, _, _, _ := buildCallATN()

	assert.Same(t, ATNState(ruleStart0), atn.GetState(ruleStart0.GetStateNumber()))
	assert.Panics(t, func() { atn.GetState(len(atn.states)) })
}

func TestATN_StatesOfKind_GroupsByTaxonomy(t *testing.T) {
	atn, ruleStart0, afterCall0, ruleStop0, ruleStart1, ruleStop1 := buildCallATN()

	stops := atn.StatesOfKind(StateRuleStop)
	assert.ElementsMatch(t, []ATNState{ruleStop0, ruleStop1}, stops)

	starts := atn.StatesOfKind(StateRuleStart)
	assert.ElementsMatch(t, []ATNState{ruleStart0, ruleStart1}, starts)

	basics := atn.StatesOfKind(StateBasic)
	assert.ElementsMatch(t, []ATNState{afterCall0}, basics)
}
