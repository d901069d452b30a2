package langrt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestParserState() ATNState {
	b := NewATNBuilder(ATNTypeParser, 5)
	return b.AddState(NewBasicState())
}

func TestATNConfigSet_AddMergesMatchingKey(t *testing.T) {
	s := newTestParserState()
	configs := NewATNConfigSet(false)

	c1 := NewATNConfig(s, 1, NewSingletonPredictionContext(nil, 10), nil)
	c2 := NewATNConfig(s, 1, NewSingletonPredictionContext(nil, 20), nil)

	added1 := configs.Add(c1)
	added2 := configs.Add(c2)

	assert.True(t, added1)
	assert.True(t, added2)
	assert.Equal(t, 1, configs.Len(), "same (state, alt, semanticContext) must merge into one entry")

	merged := configs.Elements()[0]
	assert.Equal(t, 2, merged.GetContext().length())
}

func TestATNConfigSet_AddIdenticalContextIsNoop(t *testing.T) {
	s := newTestParserState()
	configs := NewATNConfigSet(false)

	ctx := NewSingletonPredictionContext(nil, 10)
	c1 := NewATNConfig(s, 1, ctx, nil)
	c2 := NewATNConfig(s, 1, ctx, nil)

	assert.True(t, configs.Add(c1))
	assert.False(t, configs.Add(c2))
	assert.Equal(t, 1, configs.Len())
}

func TestATNConfigSet_AddDistinctAltsGrow(t *testing.T) {
	s := newTestParserState()
	configs := NewATNConfigSet(false)

	configs.Add(NewATNConfig(s, 1, BasePredictionContextEMPTY, nil))
	configs.Add(NewATNConfig(s, 2, BasePredictionContextEMPTY, nil))

	assert.Equal(t, 2, configs.Len())
	assert.Equal(t, 2, configs.GetAlts().Len())
}

func TestATNConfigSet_Contains(t *testing.T) {
	s := newTestParserState()
	configs := NewATNConfigSet(false)
	c1 := NewATNConfig(s, 1, BasePredictionContextEMPTY, nil)
	configs.Add(c1)

	assert.True(t, configs.Contains(NewATNConfig(s, 1, BasePredictionContextEMPTY, nil)))
	assert.False(t, configs.Contains(NewATNConfig(s, 2, BasePredictionContextEMPTY, nil)))
}

func TestATNConfigSet_ReadOnlyPanics(t *testing.T) {
	s := newTestParserState()
	configs := NewATNConfigSet(false)
	configs.MarkFullyFrozen()

	assert.Panics(t, func() {
		configs.Add(NewATNConfig(s, 1, BasePredictionContextEMPTY, nil))
	})
}

func TestATNConfigSet_EqualsIsOrderIndependent(t *testing.T) {
	s := newTestParserState()

	a := NewATNConfigSet(false)
	a.Add(NewATNConfig(s, 1, BasePredictionContextEMPTY, nil))
	a.Add(NewATNConfig(s, 2, BasePredictionContextEMPTY, nil))

	b := NewATNConfigSet(false)
	b.Add(NewATNConfig(s, 2, BasePredictionContextEMPTY, nil))
	b.Add(NewATNConfig(s, 1, BasePredictionContextEMPTY, nil))

	assert.True(t, a.Equals(b))
	assert.Equal(t, a.Hash(), b.Hash())
}

func TestBitSet_MinValueAndValues(t *testing.T) {
	b := NewBitSet()
	b.Set(5)
	b.Set(1)
	b.Set(3)

	assert.Equal(t, 1, b.MinValue())
	assert.Equal(t, 3, b.Len())
	assert.ElementsMatch(t, []int{1, 3, 5}, b.Values())
}

func TestBitSet_MinValueEmpty(t *testing.T) {
	assert.Equal(t, -1, NewBitSet().MinValue())
}
