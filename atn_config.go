// Copyright (c) 2012-2022 The ANTLR Project. All rights reserved.
// Use of this file is governed by the BSD 3-clause license that
// can be found in the LICENSE.txt file in the project root.

package langrt

import "strconv"

// ATNConfig is a (state, alt, context, semanticContext) tuple tracked
// during prediction, per spec §3. Equality ignores
// reachesIntoOuterContext. ATNConfig has no hash method of its own;
// ATNConfigSet hashes its configs through their String() form (state,
// alt, context, semantic context).
type ATNConfig struct {
	state                    ATNState
	alt                      int
	context                  PredictionContext
	semanticContext          SemanticContext
	reachesIntoOuterContext  int

	// lexer-only fields, per spec §3.
	lexerActionIndex               int
	passedThroughNonGreedyDecision bool
}

// NewATNConfig builds a fresh config (alt choice made, no outer-context
// reach yet).
func NewATNConfig(state ATNState, alt int, context PredictionContext, semanticContext SemanticContext) *ATNConfig {
	if semanticContext == nil {
		semanticContext = SemanticContextNone
	}
	return &ATNConfig{state: state, alt: alt, context: context, semanticContext: semanticContext, lexerActionIndex: -1}
}

// NewATNConfigFrom copies c but swaps in a new state (used by closure
// when following a transition).
func NewATNConfigFrom(c *ATNConfig, state ATNState) *ATNConfig {
	nc := *c
	nc.state = state
	return &nc
}

// NewATNConfigFromContext copies c but swaps in a new context (used
// after a rule-call/rule-stop edge changes the call stack).
func NewATNConfigFromContext(c *ATNConfig, state ATNState, context PredictionContext) *ATNConfig {
	nc := *c
	nc.state = state
	nc.context = context
	return &nc
}

func (c *ATNConfig) GetState() ATNState                  { return c.state }
func (c *ATNConfig) GetAlt() int                          { return c.alt }
func (c *ATNConfig) GetContext() PredictionContext        { return c.context }
func (c *ATNConfig) SetContext(ctx PredictionContext)     { c.context = ctx }
func (c *ATNConfig) GetSemanticContext() SemanticContext  { return c.semanticContext }
func (c *ATNConfig) SetSemanticContext(sc SemanticContext) { c.semanticContext = sc }
func (c *ATNConfig) GetReachesIntoOuterContext() int      { return c.reachesIntoOuterContext }
func (c *ATNConfig) SetReachesIntoOuterContext(v int)     { c.reachesIntoOuterContext = v }
func (c *ATNConfig) GetLexerActionIndex() int             { return c.lexerActionIndex }
func (c *ATNConfig) SetLexerActionIndex(v int)            { c.lexerActionIndex = v }
func (c *ATNConfig) GetPassedThroughNonGreedyDecision() bool { return c.passedThroughNonGreedyDecision }
func (c *ATNConfig) SetPassedThroughNonGreedyDecision(v bool) { c.passedThroughNonGreedyDecision = v }

// configKey identifies a config for the (state, alt, semanticContext)
// collapsing rule spec §3/§9 name: two configs with the same key must
// be merged by merging their contexts rather than kept as duplicates.
type configKey struct {
	state int
	alt   int
	sc    string
}

func (c *ATNConfig) key() configKey {
	return configKey{state: c.state.GetStateNumber(), alt: c.alt, sc: c.semanticContext.String()}
}

// Equals ignores reachesIntoOuterContext, per spec §3.
func (c *ATNConfig) Equals(other *ATNConfig) bool {
	if other == nil {
		return false
	}
	if c.state.GetStateNumber() != other.state.GetStateNumber() {
		return false
	}
	if c.alt != other.alt {
		return false
	}
	if c.semanticContext.String() != other.semanticContext.String() {
		return false
	}
	if c.passedThroughNonGreedyDecision != other.passedThroughNonGreedyDecision {
		return false
	}
	if (c.context == nil) != (other.context == nil) {
		return false
	}
	if c.context != nil && !c.context.predictionContextEquals(other.context) {
		return false
	}
	return true
}

func (c *ATNConfig) String() string {
	s := "(" + strconv.Itoa(c.state.GetStateNumber()) + "," + strconv.Itoa(c.alt)
	if c.context != nil {
		s += ",[" + c.context.String() + "]"
	}
	if c.semanticContext != SemanticContextNone && c.semanticContext != nil {
		s += "," + c.semanticContext.String()
	}
	s += ")"
	return s
}
