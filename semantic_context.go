// Copyright (c) 2012-2022 The ANTLR Project. All rights reserved.
// Use of this file is governed by the BSD 3-clause license that
// can be found in the LICENSE.txt file in the project root.

package langrt

import "fmt"

// SemanticContext is a boolean expression over predicates, attached to
// an ATNConfig when prediction crosses a predicate transition without
// evaluating it (SLL/LL(*) simulation mode, spec §4.D).
type SemanticContext interface {
	Eval(recognizer Recognizer, outerContext RuleContext) bool
	String() string
	equals(other SemanticContext) bool
}

// SemanticContextNone is the trivially-true context most configs carry.
var SemanticContextNone SemanticContext = &Predicate{ruleIndex: -1, predIndex: -1}

// Predicate wraps a single grammar-declared semantic predicate.
type Predicate struct {
	ruleIndex      int
	predIndex      int
	isCtxDependent bool
}

func NewPredicate(ruleIndex, predIndex int, isCtxDependent bool) *Predicate {
	return &Predicate{ruleIndex: ruleIndex, predIndex: predIndex, isCtxDependent: isCtxDependent}
}

func (p *Predicate) Eval(recognizer Recognizer, outerContext RuleContext) bool {
	var localCtx RuleContext
	if p.isCtxDependent {
		localCtx = outerContext
	}
	return recognizer.Sempred(localCtx, p.ruleIndex, p.predIndex)
}

func (p *Predicate) String() string {
	return fmt.Sprintf("{%d:%d}?", p.ruleIndex, p.predIndex)
}

func (p *Predicate) equals(other SemanticContext) bool {
	o, ok := other.(*Predicate)
	if !ok {
		return false
	}
	return p.ruleIndex == o.ruleIndex && p.predIndex == o.predIndex && p.isCtxDependent == o.isCtxDependent
}

// PrecedencePredicate gates a left-recursive alternative by the
// caller's current precedence level.
type PrecedencePredicate struct {
	precedence int
}

func NewPrecedencePredicate(precedence int) *PrecedencePredicate {
	return &PrecedencePredicate{precedence: precedence}
}

func (p *PrecedencePredicate) Eval(recognizer Recognizer, outerContext RuleContext) bool {
	return recognizer.Precpred(outerContext, p.precedence)
}

func (p *PrecedencePredicate) String() string {
	return fmt.Sprintf("{%d>=prec}?", p.precedence)
}

func (p *PrecedencePredicate) equals(other SemanticContext) bool {
	o, ok := other.(*PrecedencePredicate)
	return ok && p.precedence == o.precedence
}

// AndContext is the conjunction of two or more semantic contexts
// joined across distinct predicate transitions reached in the same
// closure.
type AndContext struct {
	opnds []SemanticContext
}

func NewAndContext(a, b SemanticContext) *AndContext {
	var opnds []SemanticContext
	if and, ok := a.(*AndContext); ok {
		opnds = append(opnds, and.opnds...)
	} else {
		opnds = append(opnds, a)
	}
	if and, ok := b.(*AndContext); ok {
		opnds = append(opnds, and.opnds...)
	} else {
		opnds = append(opnds, b)
	}
	return &AndContext{opnds: opnds}
}

func (c *AndContext) Eval(recognizer Recognizer, outerContext RuleContext) bool {
	for _, o := range c.opnds {
		if !o.Eval(recognizer, outerContext) {
			return false
		}
	}
	return true
}

func (c *AndContext) String() string {
	s := ""
	for i, o := range c.opnds {
		if i > 0 {
			s += "&&"
		}
		s += o.String()
	}
	return s
}

func (c *AndContext) equals(other SemanticContext) bool {
	o, ok := other.(*AndContext)
	if !ok || len(o.opnds) != len(c.opnds) {
		return false
	}
	for i := range c.opnds {
		if !c.opnds[i].equals(o.opnds[i]) {
			return false
		}
	}
	return true
}

// andSemanticContext conjoins a and b, collapsing trivial operands.
func andSemanticContext(a, b SemanticContext) SemanticContext {
	if a == nil || a == SemanticContextNone {
		return b
	}
	if b == nil || b == SemanticContextNone {
		return a
	}
	return NewAndContext(a, b)
}
