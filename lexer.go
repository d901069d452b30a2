// Copyright (c) 2012-2022 The ANTLR Project. All rights reserved.
// Use of this file is governed by the BSD 3-clause license that
// can be found in the LICENSE.txt file in the project root.

package langrt

import (
	"fmt"

	"github.com/emirpasic/gods/stacks/arraystack"
)

// Lexer-only token constants, per spec §4.F's action kinds.
const (
	LexerDefaultMode    = 0
	LexerMore           = -2
	LexerSkip           = -3
	LexerDefaultTokenChannel = TokenDefaultChannel
	LexerHidden              = TokenHiddenChannel
	LexerMinCharValue        = 0x0000
	LexerMaxCharValue        = 0x10FFFF
)

// Lexer is the driver interface (component F) a generated lexer
// embeds BaseLexer to satisfy: TokenSource plus the mode-stack and
// pending-action operations LexerActionExecutor replays against.
type Lexer interface {
	TokenSource
	Recognizer

	GetInputStream() CharStream
	SetInputStream(CharStream)

	GetText() string
	SetText(string)

	Skip()
	More()
	SetMode(int)
	PushMode(int)
	PopMode() int
	GetMode() int
	SetType(int)
	GetType() int
	SetChannel(int)
	GetChannel() int
	Action(localctx RuleContext, ruleIndex, actionIndex int)

	Reset()
	NextToken() Token
}

// BaseLexer implements the shared DFA-driven tokenization loop (spec
// §4.F): it defers the longest-match search to LexerATNSimulator and
// handles the replay of LexerSkip/More/Type/Channel/Mode actions that
// search turns up.
type BaseLexer struct {
	*BaseRecognizer

	input        CharStream
	factory      TokenFactory
	tokenFactorySourcePair TokenSourceCharStreamPair

	interpreter *LexerATNSimulator

	token      Token
	tokenStartCharIndex int
	tokenStartLine      int
	tokenStartColumn    int
	line                int
	column              int

	text string
	hitEOF bool

	mode      int
	modeStack *arraystack.Stack

	channel int
	ttype   int
}

var _ Lexer = (*BaseLexer)(nil)

// NewBaseLexer wraps input, ready to produce tokens on the default
// channel/mode.
func NewBaseLexer(input CharStream) *BaseLexer {
	l := &BaseLexer{
		BaseRecognizer: NewBaseRecognizer(),
		input:          input,
		factory:        CommonTokenFactoryDefault,
		modeStack:      arraystack.New(),
		line:           1,
		column:         0,
		channel:        TokenDefaultChannel,
		ttype:          TokenInvalid,
	}
	l.tokenFactorySourcePair = TokenSourceCharStreamPair{TokenSource: l, CharStream: input}
	return l
}

func (l *BaseLexer) GetInterpreter() *LexerATNSimulator      { return l.interpreter }
func (l *BaseLexer) SetInterpreter(sim *LexerATNSimulator)    { l.interpreter = sim }
func (l *BaseLexer) GetATN() *ATN                             { return l.interpreter.GetATN() }

func (l *BaseLexer) GetInputStream() CharStream { return l.input }
func (l *BaseLexer) SetInputStream(input CharStream) {
	l.input = input
	l.tokenFactorySourcePair = TokenSourceCharStreamPair{TokenSource: l, CharStream: input}
	l.Reset()
}

func (l *BaseLexer) GetSourceName() string {
	if l.input == nil {
		return "<unknown>"
	}
	return l.input.GetSourceName()
}

func (l *BaseLexer) GetTokenFactory() TokenFactory  { return l.factory }
func (l *BaseLexer) SetTokenFactory(f TokenFactory) { l.factory = f }

// GetLine/GetCharPositionInLine report the interpreter's live
// position once lexing has started, falling back to the lexer's own
// fields before a simulator is attached.
func (l *BaseLexer) GetLine() int {
	if l.interpreter != nil {
		return l.interpreter.line
	}
	return l.line
}
func (l *BaseLexer) SetLine(v int) {
	l.line = v
	if l.interpreter != nil {
		l.interpreter.line = v
	}
}
func (l *BaseLexer) GetCharPositionInLine() int {
	if l.interpreter != nil {
		return l.interpreter.column
	}
	return l.column
}
func (l *BaseLexer) SetCharPositionInLine(v int) {
	l.column = v
	if l.interpreter != nil {
		l.interpreter.column = v
	}
}

// Reset rewinds the input stream and clears all per-token state, per
// spec §4.F's reuse contract (a Lexer may be reset and re-run over a
// fresh stream).
func (l *BaseLexer) Reset() {
	if l.input != nil {
		l.input.Seek(0)
	}
	l.token = nil
	l.ttype = TokenInvalid
	l.channel = TokenDefaultChannel
	l.tokenStartCharIndex = -1
	l.tokenStartColumn = -1
	l.tokenStartLine = -1
	l.text = ""
	l.hitEOF = false
	l.mode = LexerDefaultMode
	l.modeStack.Clear()
	l.line = 1
	l.column = 0
	if l.interpreter != nil {
		l.interpreter.line = 1
		l.interpreter.column = 0
	}
}

func (l *BaseLexer) GetText() string {
	if l.text != "" {
		return l.text
	}
	return l.interpreter.GetText(l.input)
}

func (l *BaseLexer) SetText(s string) { l.text = s }

func (l *BaseLexer) Skip()         { l.ttype = LexerSkip }
func (l *BaseLexer) More()         { l.ttype = LexerMore }
func (l *BaseLexer) SetMode(m int) { l.mode = m }
func (l *BaseLexer) GetMode() int  { return l.mode }

func (l *BaseLexer) PushMode(m int) {
	l.modeStack.Push(l.mode)
	l.mode = m
}

// PopMode returns to the mode below the top of the mode stack,
// matching spec §4.F's mode-stack contract: popping with an empty
// stack is a contract violation and panics, consistent with this
// module's internal-invariant-failures-panic rule (spec §7).
func (l *BaseLexer) PopMode() int {
	v, ok := l.modeStack.Pop()
	if !ok {
		panic("langrt: pop mode failed: mode stack is empty")
	}
	l.mode = v.(int)
	return l.mode
}

func (l *BaseLexer) SetType(t int) { l.ttype = t }
func (l *BaseLexer) GetType() int  { return l.ttype }
func (l *BaseLexer) SetChannel(c int) { l.channel = c }
func (l *BaseLexer) GetChannel() int  { return l.channel }

// Action dispatches a lexer predicate/action by rule index; a
// generated lexer overrides this to run the grammar's embedded code,
// this default rejects any action ever being requested of it.
func (l *BaseLexer) Action(localctx RuleContext, ruleIndex, actionIndex int) {
	panic(fmt.Sprintf("langrt: lexer action %d/%d has no implementation", ruleIndex, actionIndex))
}

func (l *BaseLexer) Sempred(RuleContext, int, int) bool { return true }
func (l *BaseLexer) Precpred(RuleContext, int) bool     { return true }

// NextToken runs the longest-match loop: the interpreter searches for
// an accepting DFA state, replays any recorded lexer actions, and
// Skip/More requests restart the search without emitting a token,
// directly mirroring original_source's token-factory loop via
// LexerATNSimulator (spec §4.F).
func (l *BaseLexer) NextToken() Token {
	if l.input == nil {
		panic("langrt: NextToken requires a non-nil input stream")
	}
	tokenStartMarker := l.input.Mark()
	defer l.input.Release(tokenStartMarker)

	for {
		if l.hitEOF {
			return l.emitEOF()
		}
		l.token = nil
		l.channel = TokenDefaultChannel
		l.tokenStartCharIndex = l.input.Index()
		l.tokenStartColumn = l.interpreter.column
		l.tokenStartLine = l.interpreter.line
		l.text = ""

		continueOuter := false
		for {
			l.ttype = TokenInvalid
			ttype, err := l.interpreter.Match(l.input, l.mode)
			if err != nil {
				// Spec §7: report, skip one character, resume lexing.
				l.notifyLexerError(err.(*LexerNoViableAltException))
				if l.input.LA(1) != TokenEOF {
					l.interpreter.consume(l.input)
				}
				continueOuter = true
				break
			}
			// A replayed lexer action may already have set the type
			// (or Skip/More); the DFA's prediction fills it otherwise.
			if l.ttype == TokenInvalid {
				l.ttype = ttype
			}

			if l.input.LA(1) == TokenEOF {
				l.hitEOF = true
			}
			if l.ttype == LexerSkip {
				continueOuter = true
				break
			}
			if l.ttype != LexerMore {
				break
			}
		}
		if continueOuter {
			continue
		}
		if l.ttype == TokenEOF {
			return l.emitEOF()
		}
		if l.token == nil {
			l.Emit()
		}
		return l.token
	}
}

func (l *BaseLexer) notifyLexerError(e *LexerNoViableAltException) {
	msg := fmt.Sprintf("token recognition error at: '%s'", l.getErrorDisplayText())
	l.GetErrorListenerDispatch().SyntaxError(l, nil, l.tokenStartLine, l.tokenStartColumn, msg, e)
}

func (l *BaseLexer) getErrorDisplayText() string {
	if l.input.Index() <= l.tokenStartCharIndex {
		return ""
	}
	return l.input.GetTextFromInterval(NewInterval(l.tokenStartCharIndex, l.input.Index()-1))
}

func (l *BaseLexer) emitEOF() Token {
	cpos := l.GetCharPositionInLine()
	lpos := l.GetLine()
	start := l.input.Index()
	tok := l.factory.Create(l.tokenFactorySourcePair, TokenEOF, "<EOF>", TokenDefaultChannel, start, start-1, lpos, cpos)
	l.token = tok
	return tok
}

// Emit manufactures the current token from the accumulated start/stop
// markers via the configured TokenFactory.
func (l *BaseLexer) Emit() Token {
	stop := l.input.Index() - 1
	tok := l.CreateToken(l.ttype, l.tokenStartCharIndex, stop)
	l.token = tok
	return tok
}

func (l *BaseLexer) CreateToken(ttype, start, stop int) Token {
	text := l.text
	return l.factory.Create(l.tokenFactorySourcePair, ttype, text, l.channel, start, stop, l.tokenStartLine, l.tokenStartColumn)
}

// EmitToken lets a generated lexer override the constructed token
// before it's returned from NextToken (e.g. to intern literals).
func (l *BaseLexer) EmitToken(tok Token) {
	l.token = tok
}
