// Copyright (c) 2012-2022 The ANTLR Project. All rights reserved.
// Use of this file is governed by the BSD 3-clause license that
// can be found in the LICENSE.txt file in the project root.

package langrt

import "github.com/emirpasic/gods/stacks/arraystack"

// Parser is the driver interface (component H): rule entry/exit,
// match/consume over the token stream, and hand-off to the prediction
// simulator at every decision.
type Parser interface {
	Recognizer

	GetTokenStream() TokenStream
	SetTokenStream(TokenStream)
	GetInputStream() CharStream
	GetTokenFactory() TokenFactory

	GetParserRuleContext() *ParserRuleContext
	SetParserRuleContext(*ParserRuleContext)

	GetInterpreter() *ParserATNSimulator

	GetErrorHandler() ErrorStrategy
	SetErrorHandler(ErrorStrategy)
	GetExpectedTokens() *IntervalSet

	Consume() Token
	Match(ttype int) Token
	MatchWildcard() Token

	EnterRule(localctx *ParserRuleContext, state, ruleIndex int)
	ExitRule()
	EnterOuterAlt(localctx *ParserRuleContext, altNum int)

	Sempred(localctx RuleContext, ruleIndex, actionIndex int) bool
	Precpred(localctx RuleContext, precedence int) bool
}

// BaseParser implements the shared parser driver logic; generated
// parsers embed it and add rule methods, per spec §1's scope note
// (generated subclasses only wire constants into the core).
type BaseParser struct {
	*BaseRecognizer

	input        TokenStream
	errHandler   ErrorStrategy
	ctx          *ParserRuleContext
	interpreter  *ParserATNSimulator
	tokenFactory TokenFactory

	// invocationStack tracks rule-entry contexts for diagnostics/trace;
	// the actual call stack lives in the ParserRuleContext parent chain
	// (spec §3), this is a convenience index over it via gods'
	// arraystack, grounded on npillmayer-gorgo's gods dependency.
	invocationStack *arraystack.Stack

	buildParseTrees bool
	matchedEOF      bool
}

var _ Parser = (*BaseParser)(nil)

func NewBaseParser(input TokenStream) *BaseParser {
	p := &BaseParser{
		BaseRecognizer:   NewBaseRecognizer(),
		errHandler:       NewDefaultErrorStrategy(),
		tokenFactory:     CommonTokenFactoryDefault,
		invocationStack:  arraystack.New(),
		buildParseTrees:  true,
	}
	p.SetTokenStream(input)
	return p
}

func (p *BaseParser) GetTokenStream() TokenStream  { return p.input }
func (p *BaseParser) SetTokenStream(input TokenStream) {
	p.input = input
}

func (p *BaseParser) GetInputStream() CharStream {
	if p.input == nil {
		return nil
	}
	ts := p.input.GetTokenSource()
	if ts == nil {
		return nil
	}
	return ts.GetInputStream()
}

func (p *BaseParser) GetTokenFactory() TokenFactory      { return p.tokenFactory }
func (p *BaseParser) SetTokenFactory(f TokenFactory)     { p.tokenFactory = f }
func (p *BaseParser) GetParserRuleContext() *ParserRuleContext    { return p.ctx }
func (p *BaseParser) SetParserRuleContext(c *ParserRuleContext)   { p.ctx = c }
func (p *BaseParser) GetInterpreter() *ParserATNSimulator         { return p.interpreter }
func (p *BaseParser) SetInterpreter(i *ParserATNSimulator)        { p.interpreter = i }
func (p *BaseParser) GetErrorHandler() ErrorStrategy              { return p.errHandler }
func (p *BaseParser) SetErrorHandler(h ErrorStrategy)             { p.errHandler = h }

func (p *BaseParser) GetATN() *ATN { return p.interpreter.GetATN() }

func (p *BaseParser) GetExpectedTokens() *IntervalSet {
	return p.GetATN().GetExpectedTokens(p.GetState(), p.ctx)
}

// Sempred/Precpred default to true: a generated parser overrides these
// to dispatch to the grammar's actual predicate code. Embedding
// BaseParser and not overriding means "no predicates", which is
// correct for predicate-free grammars and exercised directly by this
// module's own tests.
func (p *BaseParser) Sempred(RuleContext, int, int) bool    { return true }
func (p *BaseParser) Precpred(RuleContext, int) bool { return true }

// EnterRule pushes localctx as the new current context, wiring the
// parent link and rule index, per spec §4.H. The invoking state is
// the one localctx was constructed with.
func (p *BaseParser) EnterRule(localctx *ParserRuleContext, state, ruleIndex int) {
	p.SetState(state)
	localctx.ruleIndex = ruleIndex
	if p.ctx != nil {
		if p.buildParseTrees {
			p.ctx.AddChild(localctx)
		}
		localctx.SetParent(p.ctx)
	}
	p.ctx = localctx
	p.invocationStack.Push(localctx)
}

// ExitRule pops back to the parent context, setting the rule's stop
// token to the last consumed token.
func (p *BaseParser) ExitRule() {
	p.ctx.SetStop(p.input.LT(-1))
	if parent := p.ctx.GetParent(); parent != nil {
		p.ctx = parent.(*ParserRuleContext)
	}
	p.invocationStack.Pop()
}

func (p *BaseParser) EnterOuterAlt(localctx *ParserRuleContext, altNum int) {
	localctx.SetAltNumber(altNum)
	if p.buildParseTrees && p.ctx != localctx {
		if parent := p.ctx.GetParent(); parent != nil {
			parent.(*ParserRuleContext).children = removeLastChild(parent.(*ParserRuleContext).children)
			parent.(*ParserRuleContext).AddChild(localctx)
		}
	}
	p.ctx = localctx
}

func removeLastChild(children []Tree) []Tree {
	if len(children) == 0 {
		return children
	}
	return children[:len(children)-1]
}

// Match consumes the current token if it has type ttype, otherwise
// delegates recovery to the error strategy (spec §4.H).
func (p *BaseParser) Match(ttype int) Token {
	t := p.GetTokenStream().LT(1)
	if t.GetTokenType() == ttype {
		p.errHandler.ReportMatch(p)
		return p.Consume()
	}
	return p.recoverFromMismatch(ttype)
}

// recoverFromMismatch delegates straight to RecoverInline and does not
// itself catch a resulting panic: an unresolvable mismatch
// (InputMismatchException) is meant to propagate to the generated
// rule's own recover/ReportError/Recover wrapper, per spec §4.H ("let
// the rule's generated code decide whether to continue"). A fabricated
// missing token (tokenIndex < 0, never passed through Consume) is
// added as an error node here since RecoverInline returns it directly.
func (p *BaseParser) recoverFromMismatch(ttype int) (t Token) {
	t = p.errHandler.RecoverInline(p)
	if p.buildParseTrees && t.GetTokenIndex() < 0 {
		p.ctx.AddErrorNode(t)
	}
	return t
}

// MatchWildcard matches any token whose type is positive; at EOF it
// falls through to the error strategy's inline recovery.
func (p *BaseParser) MatchWildcard() Token {
	t := p.GetTokenStream().LT(1)
	if t.GetTokenType() > 0 {
		p.errHandler.ReportMatch(p)
		return p.Consume()
	}
	return p.recoverFromMismatch(TokenInvalid)
}

// Consume advances the token stream and attaches the consumed token as
// a child of the current rule context, per spec §4.H. Whether it lands
// as a plain terminal or an error node follows the error handler's
// recovery-mode flag at the moment of consumption: singleTokenDeletion
// sets that flag via reportUnwantedToken before consuming the
// extraneous token, then clears it with ReportMatch before the
// following (correctly matched) token is consumed, so only the
// extraneous one is recorded as an error node.
func (p *BaseParser) Consume() Token {
	o := p.GetTokenStream().LT(1)
	if o.GetTokenType() != TokenEOF {
		p.GetTokenStream().Consume()
	}
	if p.buildParseTrees {
		if p.errHandler.InErrorRecoveryMode(p) {
			p.ctx.AddErrorNode(o)
		} else {
			p.ctx.AddTokenNode(o)
		}
	}
	return o
}
