// Copyright (c) 2012-2022 The ANTLR Project. All rights reserved.
// Use of this file is governed by the BSD 3-clause license that
// can be found in the LICENSE.txt file in the project root.

package langrt

import "sync"

// Recognizer is the shared base both the parser and the lexer
// implement (component K): current ATN state, interpreter, and the
// per-recognizer rule-index/token-type name caches.
type Recognizer interface {
	GetATN() *ATN
	GetErrorListenerDispatch() ErrorListener
	Sempred(localctx RuleContext, ruleIndex, actionIndex int) bool
	Precpred(localctx RuleContext, precedence int) bool
	GetState() int
	SetState(int)
	GetRuleNames() []string
	GetLiteralNames() []string
	GetSymbolicNames() []string
}

// recognizerNameCache holds the lazily-computed tokenTypeMap/
// ruleIndexMap caches. Each BaseRecognizer owns one, per spec §9's
// design note, rather than truly global statics; once a map is filled
// it is returned as is, whatever names a later call passes.
type recognizerNameCache struct {
	mu           sync.Mutex
	tokenTypeMap map[string]int
	ruleIndexMap map[string]int
}

// BaseRecognizer implements the bookkeeping shared by BaseParser and
// BaseLexer: current state, listeners, and the lazily filled name
// caches, each checked and, on a miss, filled under one lock.
type BaseRecognizer struct {
	state int

	RuleNames     []string
	LiteralNames  []string
	SymbolicNames []string

	listeners []ErrorListener

	nameCache recognizerNameCache
}

func NewBaseRecognizer() *BaseRecognizer {
	return &BaseRecognizer{state: InvalidStateNumber, listeners: []ErrorListener{NewConsoleErrorListener()}}
}

func (r *BaseRecognizer) GetState() int  { return r.state }
func (r *BaseRecognizer) SetState(v int) { r.state = v }

func (r *BaseRecognizer) GetRuleNames() []string     { return r.RuleNames }
func (r *BaseRecognizer) GetLiteralNames() []string  { return r.LiteralNames }
func (r *BaseRecognizer) GetSymbolicNames() []string { return r.SymbolicNames }

func (r *BaseRecognizer) AddErrorListener(l ErrorListener) {
	r.listeners = append(r.listeners, l)
}

func (r *BaseRecognizer) RemoveErrorListeners() { r.listeners = nil }

// GetErrorListenerDispatch fans out to every attached listener,
// per spec §4.J.
func (r *BaseRecognizer) GetErrorListenerDispatch() ErrorListener {
	return NewProxyErrorListener(r.listeners)
}

// GetTokenTypeMap lazily computes and caches name->type, guarded by
// recognizerNameCache's mutex. Where a literal name equals a symbolic
// name, the literal name's index wins.
func (r *BaseRecognizer) GetTokenTypeMap(symbolicNames, literalNames []string) map[string]int {
	r.nameCache.mu.Lock()
	defer r.nameCache.mu.Unlock()
	if r.nameCache.tokenTypeMap != nil {
		return r.nameCache.tokenTypeMap
	}
	m := make(map[string]int)
	for i, n := range symbolicNames {
		if n != "" {
			m[n] = i
		}
	}
	for i, n := range literalNames {
		if n != "" {
			m[n] = i
		}
	}
	m["EOF"] = TokenEOF
	r.nameCache.tokenTypeMap = m
	return m
}

// GetRuleIndexMap lazily computes and caches name->rule index.
func (r *BaseRecognizer) GetRuleIndexMap(ruleNames []string) map[string]int {
	r.nameCache.mu.Lock()
	defer r.nameCache.mu.Unlock()
	if r.nameCache.ruleIndexMap != nil {
		return r.nameCache.ruleIndexMap
	}
	m := make(map[string]int, len(ruleNames))
	for i, n := range ruleNames {
		m[n] = i
	}
	r.nameCache.ruleIndexMap = m
	return m
}
