// Copyright (c) 2012-2022 The ANTLR Project. All rights reserved.
// Use of this file is governed by the BSD 3-clause license that
// can be found in the LICENSE.txt file in the project root.

package langrt

// LL1Analyzer computes FIRST sets (spec §4.B's NextTokens) by walking
// epsilon transitions from a state to the next terminal transition,
// crossing rule-call/rule-return edges through a PredictionContext
// when one is supplied.
type LL1Analyzer struct {
	atn *ATN
}

func NewLL1Analyzer(atn *ATN) *LL1Analyzer {
	return &LL1Analyzer{atn: atn}
}

// Look computes the FIRST set of s, optionally bounded by stopState
// (where reaching stopState means "end of rule", contributing
// TokenEpsilon), using ctx to resolve rule-stop transitions.
func (l *LL1Analyzer) Look(s ATNState, stopState ATNState, ctx RuleContext) *IntervalSet {
	r := NewIntervalSet()
	seeThruPreds := true
	var lookContext PredictionContext
	if ctx != nil {
		lookContext = predictionContextFromRuleContext(l.atn, ctx)
	}
	visited := make(map[atnConfigLookKey]bool)
	l.look(s, stopState, lookContext, r, visited, newBitSetInt(), seeThruPreds, true)
	return r
}

type atnConfigLookKey struct {
	state int
	ctx   PredictionContext
}

func newBitSetInt() map[int]bool { return make(map[int]bool) }

func (l *LL1Analyzer) look(s, stopState ATNState, ctx PredictionContext, r *IntervalSet, visited map[atnConfigLookKey]bool, calledRuleStack map[int]bool, seeThruPreds, addEOF bool) {
	key := atnConfigLookKey{state: s.GetStateNumber(), ctx: ctx}
	if visited[key] {
		return
	}
	visited[key] = true

	if s == stopState {
		if ctx == nil {
			r.AddOne(TokenEpsilon)
			return
		} else if ctx.isEmpty() && addEOF {
			r.AddOne(TokenEOF)
			return
		}
	}

	if rs, ok := s.(*RuleStopState); ok {
		if ctx == nil {
			r.AddOne(TokenEpsilon)
			return
		} else if ctx.isEmpty() && addEOF {
			r.AddOne(TokenEOF)
			return
		}
		if ctx != BasePredictionContextEMPTY {
			removed := calledRuleStack[rs.GetRuleIndex()]
			defer func() {
				if removed {
					calledRuleStack[rs.GetRuleIndex()] = true
				}
			}()
			calledRuleStack[rs.GetRuleIndex()] = false
			for i := 0; i < ctx.length(); i++ {
				returnState := l.atn.GetState(ctx.getReturnState(i))
				newContext := ctx.getParent(i)
				l.look(returnState, stopState, newContext, r, visited, calledRuleStack, seeThruPreds, addEOF)
			}
			return
		}
	}

	for _, t := range s.GetTransitions() {
		switch tt := t.(type) {
		case *RuleTransition:
			if calledRuleStack[tt.ruleIndex] {
				continue
			}
			newContext := NewSingletonPredictionContext(ctx, tt.followState.GetStateNumber())
			calledRuleStack[tt.ruleIndex] = true
			l.look(tt.GetTarget(), stopState, newContext, r, visited, calledRuleStack, seeThruPreds, addEOF)
			calledRuleStack[tt.ruleIndex] = false
		case *PredicateTransition:
			if seeThruPreds {
				l.look(tt.GetTarget(), stopState, ctx, r, visited, calledRuleStack, seeThruPreds, addEOF)
			} else {
				r.AddOne(TokenInvalid)
			}
		case *PrecedencePredicateTransition:
			if seeThruPreds {
				l.look(tt.GetTarget(), stopState, ctx, r, visited, calledRuleStack, seeThruPreds, addEOF)
			} else {
				r.AddOne(TokenInvalid)
			}
		default:
			if t.GetIsEpsilon() {
				l.look(t.GetTarget(), stopState, ctx, r, visited, calledRuleStack, seeThruPreds, addEOF)
			} else if _, ok := t.(*WildcardTransition); ok {
				r.AddSet(NewIntervalSetFromRange(TokenMinUserTokenType, l.atn.maxTokenType))
			} else {
				label := t.GetLabel()
				if label != nil {
					r.AddSet(label)
				}
			}
		}
	}
}
