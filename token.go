// Copyright (c) 2012-2022 The ANTLR Project. All rights reserved.
// Use of this file is governed by the BSD 3-clause license that
// can be found in the LICENSE.txt file in the project root.

package langrt

import "fmt"

// Token type / channel sentinels, per spec §3 and the GLOSSARY.
const (
	TokenInvalid          = 0
	TokenEpsilon          = -2
	TokenMinUserTokenType  = 1
	TokenEOF              = -1

	TokenDefaultChannel = 0
	TokenHiddenChannel  = 1
)

// Token is the external construction protocol for lexed symbols
// consumed by the token stream buffer (component G) and parser driver
// (component H), per spec §3/§6.
type Token interface {
	GetSource() TokenSourceCharStreamPair
	GetTokenType() int
	GetChannel() int
	GetStart() int
	GetStop() int
	GetLine() int
	GetColumn() int

	GetText() string
	SetText(s string)

	GetTokenIndex() int
	SetTokenIndex(v int)

	GetTokenSource() TokenSource
	GetInputStream() CharStream
}

// TokenSourceCharStreamPair names the (tokenSource, charStream) pair a
// token remembers, per spec §3's Token.source.
type TokenSourceCharStreamPair struct {
	TokenSource TokenSource
	CharStream  CharStream
}

// WritableToken extends Token with the setters CommonTokenFactory and
// the lexer use while assembling a token.
type WritableToken interface {
	Token
	SetTokenType(int)
	SetChannel(int)
	SetStart(int)
	SetStop(int)
	SetLine(int)
	SetColumn(int)
}

// CommonToken is the concrete Token implementation produced by
// CommonTokenFactory.
type CommonToken struct {
	source     TokenSourceCharStreamPair
	tokenType  int
	channel    int
	start      int
	stop       int
	tokenIndex int
	line       int
	column     int
	text       string
	readText   bool
}

var _ WritableToken = (*CommonToken)(nil)

// NewCommonToken constructs a token on the given channel with no
// text cached yet; text is computed lazily from the source's char
// stream on first GetText call.
func NewCommonToken(source TokenSourceCharStreamPair, tokenType, channel, start, stop int) *CommonToken {
	t := &CommonToken{
		source:    source,
		tokenType: tokenType,
		channel:   channel,
		start:     start,
		stop:      stop,
		tokenIndex: -1,
	}
	if source.TokenSource != nil {
		t.line = source.TokenSource.GetLine()
		t.column = source.TokenSource.GetCharPositionInLine()
	}
	return t
}

func (t *CommonToken) GetSource() TokenSourceCharStreamPair { return t.source }
func (t *CommonToken) GetTokenType() int                    { return t.tokenType }
func (t *CommonToken) SetTokenType(v int)                   { t.tokenType = v }
func (t *CommonToken) GetChannel() int                      { return t.channel }
func (t *CommonToken) SetChannel(v int)                      { t.channel = v }
func (t *CommonToken) GetStart() int                        { return t.start }
func (t *CommonToken) SetStart(v int)                        { t.start = v }
func (t *CommonToken) GetStop() int                          { return t.stop }
func (t *CommonToken) SetStop(v int)                          { t.stop = v }
func (t *CommonToken) GetLine() int                          { return t.line }
func (t *CommonToken) SetLine(v int)                          { t.line = v }
func (t *CommonToken) GetColumn() int                        { return t.column }
func (t *CommonToken) SetColumn(v int)                        { t.column = v }
func (t *CommonToken) GetTokenIndex() int                    { return t.tokenIndex }
func (t *CommonToken) SetTokenIndex(v int)                   { t.tokenIndex = v }
func (t *CommonToken) GetTokenSource() TokenSource           { return t.source.TokenSource }
func (t *CommonToken) GetInputStream() CharStream            { return t.source.CharStream }

func (t *CommonToken) SetText(s string) {
	t.text = s
	t.readText = true
}

// GetText returns the cached text if SetText was called (e.g. for a
// fabricated missing-token), otherwise slices it out of the char
// stream lazily.
func (t *CommonToken) GetText() string {
	if t.readText {
		return t.text
	}
	if t.source.CharStream == nil {
		return ""
	}
	n := t.source.CharStream.Size()
	if t.stop >= n {
		return ""
	}
	return t.source.CharStream.GetTextFromInterval(NewInterval(t.start, t.stop))
}

func (t *CommonToken) String() string {
	txt := t.GetText()
	return fmt.Sprintf("[@%d,%d:%d='%s',<%d>,%d:%d]", t.tokenIndex, t.start, t.stop, txt, t.tokenType, t.line, t.column)
}

// TokenFactory is the external collaborator that manufactures tokens,
// per spec §6.
type TokenFactory interface {
	Create(source TokenSourceCharStreamPair, ttype int, text string, channel, start, stop, line, column int) Token
}

// CommonTokenFactory is the default TokenFactory; when copyText is
// false (the common case) tokens lazily read their text from the char
// stream instead of eagerly copying it.
type CommonTokenFactory struct {
	copyText bool
}

var CommonTokenFactoryDefault = NewCommonTokenFactory(false)

func NewCommonTokenFactory(copyText bool) *CommonTokenFactory {
	return &CommonTokenFactory{copyText: copyText}
}

func (f *CommonTokenFactory) Create(source TokenSourceCharStreamPair, ttype int, text string, channel, start, stop, line, column int) Token {
	t := NewCommonToken(source, ttype, channel, start, stop)
	t.line = line
	t.column = column
	if text != "" {
		t.SetText(text)
	} else if f.copyText && source.CharStream != nil {
		t.SetText(source.CharStream.GetTextFromInterval(NewInterval(start, stop)))
	}
	return t
}

// TokenSource is the external collaborator consumed by the token
// stream buffer, per spec §6.
type TokenSource interface {
	NextToken() Token
	GetLine() int
	GetCharPositionInLine() int
	GetInputStream() CharStream
	GetSourceName() string
	GetTokenFactory() TokenFactory
	SetTokenFactory(TokenFactory)
}
