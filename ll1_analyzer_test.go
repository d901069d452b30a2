package langrt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLL1Analyzer_Look_CrossesRuleCall(t *testing.T) {
	atn, ruleStart0, _, _, _, _ := buildCallATN()

	got := NewLL1Analyzer(atn).Look(ruleStart0, nil, nil)
	assert.True(t, got.Equals(NewIntervalSetFromValues(testTokenA)))
}

func TestLL1Analyzer_look_PredicateBlockedReportsInvalid(t *testing.T) {
	b := NewATNBuilder(ATNTypeParser, 2)
	start := NewBasicState()
	b.AddState(start)
	target := NewBasicState()
	b.AddState(target)
	b.AddTransition(start, NewPredicateTransition(target, 0, 0, false))
	atn := b.Build()

	r := NewIntervalSet()
	NewLL1Analyzer(atn).look(start, nil, nil, r, make(map[atnConfigLookKey]bool), newBitSetInt(), false, true)

	assert.True(t, r.Contains(TokenInvalid))
}

func TestLL1Analyzer_look_PredicateSeenThroughByDefault(t *testing.T) {
	b := NewATNBuilder(ATNTypeParser, 2)
	start := NewBasicState()
	b.AddState(start)
	target := NewBasicState()
	b.AddState(target)
	stop := NewBasicState()
	b.AddState(stop)
	b.AddTransition(start, NewPredicateTransition(target, 0, 0, false))
	b.AddTransition(target, NewAtomTransition(stop, testTokenA))
	atn := b.Build()

	got := NewLL1Analyzer(atn).Look(start, nil, nil)
	assert.True(t, got.Equals(NewIntervalSetFromValues(testTokenA)))
}

func TestLL1Analyzer_look_WildcardAddsFullVocabulary(t *testing.T) {
	b := NewATNBuilder(ATNTypeParser, 3)
	start := NewBasicState()
	b.AddState(start)
	target := NewBasicState()
	b.AddState(target)
	b.AddTransition(start, NewWildcardTransition(target))
	atn := b.Build()

	got := NewLL1Analyzer(atn).Look(start, nil, nil)
	assert.True(t, got.Equals(NewIntervalSetFromRange(TokenMinUserTokenType, 3)))
}
