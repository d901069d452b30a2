package langrt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeRecognizer records Sempred/Precpred calls and returns a
// caller-fixed verdict, for testing SemanticContext.Eval in isolation.
type fakeRecognizer struct {
	*BaseRecognizer
	sempredResult  bool
	precpredResult bool
	lastCtx        RuleContext
}

func newFakeRecognizer() *fakeRecognizer {
	return &fakeRecognizer{BaseRecognizer: NewBaseRecognizer()}
}

func (f *fakeRecognizer) GetATN() *ATN { return nil }
func (f *fakeRecognizer) Sempred(localctx RuleContext, ruleIndex, actionIndex int) bool {
	f.lastCtx = localctx
	return f.sempredResult
}
func (f *fakeRecognizer) Precpred(localctx RuleContext, precedence int) bool {
	f.lastCtx = localctx
	return f.precpredResult
}

func TestPredicate_EvalDispatchesToSempred(t *testing.T) {
	r := newFakeRecognizer()
	r.sempredResult = true

	p := NewPredicate(0, 1, false)
	assert.True(t, p.Eval(r, nil))

	r.sempredResult = false
	assert.False(t, p.Eval(r, nil))
}

func TestPredicate_CtxDependentPassesOuterContext(t *testing.T) {
	r := newFakeRecognizer()
	outer := NewParserRuleContext(nil, InvalidStateNumber)

	p := NewPredicate(0, 0, true)
	p.Eval(r, outer)
	assert.Same(t, outer, r.lastCtx)

	NewPredicate(0, 0, false).Eval(r, outer)
	assert.Nil(t, r.lastCtx)
}

func TestPredicate_String(t *testing.T) {
	p := NewPredicate(2, 3, false)
	assert.Equal(t, "{2:3}?", p.String())
}

func TestPrecedencePredicate_EvalDispatchesToPrecpred(t *testing.T) {
	r := newFakeRecognizer()
	r.precpredResult = true

	p := NewPrecedencePredicate(4)
	assert.True(t, p.Eval(r, nil))
}

func TestAndContext_EvalIsConjunction(t *testing.T) {
	r := newFakeRecognizer()
	truePred := NewPredicate(0, 0, false)
	falsePred := NewPredicate(0, 1, false)

	r.sempredResult = true
	and := NewAndContext(truePred, truePred)
	assert.True(t, and.Eval(r, nil))

	r.sempredResult = false
	_ = falsePred
	assert.False(t, and.Eval(r, nil))
}

func TestAndContext_FlattensNestedAndContexts(t *testing.T) {
	a := NewPredicate(0, 0, false)
	b := NewPredicate(0, 1, false)
	c := NewPredicate(0, 2, false)

	inner := NewAndContext(a, b)
	outer := NewAndContext(inner, c)

	assert.Len(t, outer.opnds, 3)
}

func TestAndSemanticContext_CollapsesTrivialOperands(t *testing.T) {
	p := NewPredicate(0, 0, false)

	assert.Same(t, p, andSemanticContext(SemanticContextNone, p))
	assert.Same(t, p, andSemanticContext(p, SemanticContextNone))
	assert.Same(t, p, andSemanticContext(nil, p))
}

func TestAndSemanticContext_BuildsAndForTwoRealPredicates(t *testing.T) {
	a := NewPredicate(0, 0, false)
	b := NewPredicate(0, 1, false)

	got := andSemanticContext(a, b)
	and, ok := got.(*AndContext)
	assert.True(t, ok)
	assert.Len(t, and.opnds, 2)
}

func TestPredicate_Equals(t *testing.T) {
	a := NewPredicate(1, 2, false)
	b := NewPredicate(1, 2, false)
	c := NewPredicate(1, 3, false)

	assert.True(t, a.equals(b))
	assert.False(t, a.equals(c))
}
