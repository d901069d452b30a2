// Copyright (c) 2012-2022 The ANTLR Project. All rights reserved.
// Use of this file is governed by the BSD 3-clause license that
// can be found in the LICENSE.txt file in the project root.

package langrt

// Lexer action kinds, per spec §4.F.
const (
	LexerActionTypeChannel = iota
	LexerActionTypeCustom
	LexerActionTypeMode
	LexerActionTypeMore
	LexerActionTypePopMode
	LexerActionTypePushMode
	LexerActionTypeSkip
	LexerActionTypeType
)

// LexerAction is a single action recorded on an accepting path and
// replayed, in order, once the lexer commits to that match (spec
// §4.F's "lexer actions... executed in the order encountered").
type LexerAction interface {
	GetActionType() int
	GetIsPositionDependent() bool
	execute(lexer *BaseLexer)
}

type baseLexerAction struct {
	actionType          int
	isPositionDependent bool
}

func (a *baseLexerAction) GetActionType() int          { return a.actionType }
func (a *baseLexerAction) GetIsPositionDependent() bool { return a.isPositionDependent }

// LexerSkipAction discards the current match and restarts lexing.
type LexerSkipAction struct{ baseLexerAction }

var LexerSkipActionInstance = &LexerSkipAction{baseLexerAction{actionType: LexerActionTypeSkip}}

func (a *LexerSkipAction) execute(lexer *BaseLexer) { lexer.Skip() }

// LexerMoreAction continues accumulating without emitting a token.
type LexerMoreAction struct{ baseLexerAction }

var LexerMoreActionInstance = &LexerMoreAction{baseLexerAction{actionType: LexerActionTypeMore}}

func (a *LexerMoreAction) execute(lexer *BaseLexer) { lexer.More() }

// LexerTypeAction overrides the emitted token's type.
type LexerTypeAction struct {
	baseLexerAction
	tokenType int
}

func NewLexerTypeAction(tokenType int) *LexerTypeAction {
	return &LexerTypeAction{baseLexerAction{actionType: LexerActionTypeType}, tokenType}
}
func (a *LexerTypeAction) execute(lexer *BaseLexer) { lexer.SetType(a.tokenType) }

// LexerChannelAction overrides the emitted token's channel.
type LexerChannelAction struct {
	baseLexerAction
	channel int
}

func NewLexerChannelAction(channel int) *LexerChannelAction {
	return &LexerChannelAction{baseLexerAction{actionType: LexerActionTypeChannel}, channel}
}
func (a *LexerChannelAction) execute(lexer *BaseLexer) { lexer.SetChannel(a.channel) }

// LexerModeAction sets the active mode (replacing the top of the mode
// stack).
type LexerModeAction struct {
	baseLexerAction
	mode int
}

func NewLexerModeAction(mode int) *LexerModeAction {
	return &LexerModeAction{baseLexerAction{actionType: LexerActionTypeMode}, mode}
}
func (a *LexerModeAction) execute(lexer *BaseLexer) { lexer.SetMode(a.mode) }

// LexerPushModeAction pushes the current mode and switches to a new
// one.
type LexerPushModeAction struct {
	baseLexerAction
	mode int
}

func NewLexerPushModeAction(mode int) *LexerPushModeAction {
	return &LexerPushModeAction{baseLexerAction{actionType: LexerActionTypePushMode}, mode}
}
func (a *LexerPushModeAction) execute(lexer *BaseLexer) { lexer.PushMode(a.mode) }

// LexerPopModeAction pops the mode stack.
type LexerPopModeAction struct{ baseLexerAction }

var LexerPopModeActionInstance = &LexerPopModeAction{baseLexerAction{actionType: LexerActionTypePopMode}}

func (a *LexerPopModeAction) execute(lexer *BaseLexer) { lexer.PopMode() }

// LexerCustomAction dispatches to a generated recognizer's user-level
// action code, named by ruleIndex/actionIndex (generated lexer
// subclasses wire the actual behaviour in, per spec §1's scope note).
type LexerCustomAction struct {
	baseLexerAction
	ruleIndex, actionIndex int
}

func NewLexerCustomAction(ruleIndex, actionIndex int) *LexerCustomAction {
	return &LexerCustomAction{baseLexerAction{actionType: LexerActionTypeCustom, isPositionDependent: true}, ruleIndex, actionIndex}
}
func (a *LexerCustomAction) execute(lexer *BaseLexer) {
	lexer.Action(nil, a.ruleIndex, a.actionIndex)
}

// LexerActionExecutor replays a fixed, ordered sequence of
// LexerActions once the DFA commits to an accepting configuration.
type LexerActionExecutor struct {
	actions []LexerAction
}

func NewLexerActionExecutor(actions []LexerAction) *LexerActionExecutor {
	return &LexerActionExecutor{actions: actions}
}

// Append returns a new executor with action appended (executors are
// immutable and shared across configs, like PredictionContext).
func (e *LexerActionExecutor) Append(action LexerAction) *LexerActionExecutor {
	if e == nil {
		return NewLexerActionExecutor([]LexerAction{action})
	}
	next := make([]LexerAction, len(e.actions)+1)
	copy(next, e.actions)
	next[len(e.actions)] = action
	return NewLexerActionExecutor(next)
}

// Execute runs every recorded action, in order, against lexer.
func (e *LexerActionExecutor) Execute(lexer *BaseLexer) {
	if e == nil {
		return
	}
	for _, a := range e.actions {
		a.execute(lexer)
	}
}
