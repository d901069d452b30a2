// Copyright (c) 2012-2022 The ANTLR Project. All rights reserved.
// Use of this file is governed by the BSD 3-clause license that
// can be found in the LICENSE.txt file in the project root.

package langrt

// Tree is the minimal parse-tree node protocol named by spec §6:
// addChild/addErrorNode live on ParserRuleContext specifically since
// only rule nodes can have children; every node can report its parent,
// its text, and (for composite nodes) its children.
type Tree interface {
	GetParentNode() Tree
	SetParentNode(Tree)
	GetChild(i int) Tree
	GetChildCount() int
	GetText() string
}

// ParseTree is a Tree that additionally knows the token interval it
// spans, for listener/visitor walkers (named as an external
// collaborator by spec §1, not implemented here).
type ParseTree interface {
	Tree
	GetSourceInterval() Interval
}

// TerminalNode wraps a single matched token.
type TerminalNode interface {
	Tree
	GetSymbol() Token
}

// TerminalNodeImpl is the concrete TerminalNode produced by
// ParserRuleContext.AddTokenNode / the parser driver's Consume.
type TerminalNodeImpl struct {
	parent Tree
	symbol Token
}

func NewTerminalNodeImpl(symbol Token) *TerminalNodeImpl {
	return &TerminalNodeImpl{symbol: symbol}
}

func (t *TerminalNodeImpl) GetParentNode() Tree    { return t.parent }
func (t *TerminalNodeImpl) SetParentNode(p Tree)   { t.parent = p }
func (t *TerminalNodeImpl) GetChild(int) Tree      { return nil }
func (t *TerminalNodeImpl) GetChildCount() int     { return 0 }
func (t *TerminalNodeImpl) GetSymbol() Token        { return t.symbol }
func (t *TerminalNodeImpl) GetText() string {
	if t.symbol == nil {
		return "<EOF>"
	}
	return t.symbol.GetText()
}

// ErrorNodeImpl represents a token the error strategy could not match
// cleanly: an extraneous token it deleted, or a fabricated missing
// token it inserted.
type ErrorNodeImpl struct {
	*TerminalNodeImpl
}

func NewErrorNodeImpl(symbol Token) *ErrorNodeImpl {
	return &ErrorNodeImpl{TerminalNodeImpl: NewTerminalNodeImpl(symbol)}
}
