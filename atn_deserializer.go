// Copyright (c) 2012-2022 The ANTLR Project. All rights reserved.
// Use of this file is governed by the BSD 3-clause license that
// can be found in the LICENSE.txt file in the project root.

package langrt

// ATNDeserializer turns a generated grammar's serialized ATN into a
// live *ATN. Per spec §6 this is named only as an external
// collaborator — a real code generator's binary format is out of this
// module's scope, so this file provides just enough of the builder
// surface (used directly by generated recognizers and by this
// module's own tests) to assemble an ATN by hand: allocate states,
// wire transitions, and register rule/mode start states.
type ATNDeserializer struct {
	atn *ATN
}

// NewATNBuilder starts assembling a fresh ATN of the given grammar
// type (ATNTypeLexer or ATNTypeParser) with maxTokenType tokens in its
// vocabulary.
func NewATNBuilder(grammarType, maxTokenType int) *ATNDeserializer {
	return &ATNDeserializer{atn: NewATN(grammarType, maxTokenType)}
}

// AddState allocates and registers s, assigning it a state number.
func (b *ATNDeserializer) AddState(s ATNState) ATNState {
	b.atn.addState(s)
	return s
}

// AddTransition appends t to from's transition list.
func (b *ATNDeserializer) AddTransition(from ATNState, t Transition) {
	from.AddTransition(t, -1)
}

// DefineDecision registers d as a numbered decision point, returning
// its decision index (what AdaptivePredict/Match address DFAs by).
func (b *ATNDeserializer) DefineDecision(d DecisionState) int {
	return b.atn.defineDecisionState(d)
}

// DefineRule wires a rule's start/stop state pair into the ATN's
// per-rule-index tables, and (for lexer ATNs) the token type the rule
// produces.
func (b *ATNDeserializer) DefineRule(ruleIndex int, start *RuleStartState, stop *RuleStopState, tokenType int) {
	start.SetRuleIndex(ruleIndex)
	stop.SetRuleIndex(ruleIndex)
	start.stopState = stop

	for len(b.atn.ruleToStartState) <= ruleIndex {
		b.atn.ruleToStartState = append(b.atn.ruleToStartState, nil)
		b.atn.ruleToStopState = append(b.atn.ruleToStopState, nil)
	}
	b.atn.ruleToStartState[ruleIndex] = start
	b.atn.ruleToStopState[ruleIndex] = stop

	if b.atn.grammarType == ATNTypeLexer {
		for len(b.atn.ruleToTokenType) <= ruleIndex {
			b.atn.ruleToTokenType = append(b.atn.ruleToTokenType, TokenInvalid)
		}
		b.atn.ruleToTokenType[ruleIndex] = tokenType
	}
}

// DefineMode registers start as the entry TokensStartState for a
// lexer mode named name.
func (b *ATNDeserializer) DefineMode(name string, start *TokensStartState) {
	b.atn.modeNameToStartState[name] = start
	b.atn.modeToStartState = append(b.atn.modeToStartState, start)
}

// AddLexerAction appends a to the ATN's lexer action table, returning
// its index (what ActionTransition.actionIndex references).
func (b *ATNDeserializer) AddLexerAction(a LexerAction) int {
	return b.atn.addLexerAction(a)
}

// Build returns the assembled ATN.
func (b *ATNDeserializer) Build() *ATN { return b.atn }
