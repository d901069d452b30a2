// Copyright (c) 2012-2022 The ANTLR Project. All rights reserved.
// Use of this file is governed by the BSD 3-clause license that
// can be found in the LICENSE.txt file in the project root.

package langrt

// CommonTokenStream is the default TokenStream: it lazily pulls tokens
// from a TokenSource, buffers the whole array, and exposes LT/LA/LB
// filtered to a single channel (spec §4.G).
//
// Grounded directly on original_source/runtime/Cpp/runtime/
// CommonTokenStream.cpp's channel-skip-forward/backward loops and its
// adjustSeekIndex, with spec §9's open question resolved: when no
// on-channel token exists at or after i, seek snaps to the EOF token's
// buffer index rather than an undefined negative-cast index.
type CommonTokenStream struct {
	tokenSource TokenSource
	channel     int

	tokens []Token
	index  int // p in the source; -1 before first fill
	fetchedEOF bool
}

var _ TokenStream = (*CommonTokenStream)(nil)

// NewCommonTokenStream returns a stream pulling from src, filtering to
// channel (TokenDefaultChannel for the ordinary parser case).
func NewCommonTokenStream(src TokenSource, channel int) *CommonTokenStream {
	return &CommonTokenStream{tokenSource: src, channel: channel, index: -1}
}

func (s *CommonTokenStream) GetTokenSource() TokenSource { return s.tokenSource }

// fill pulls tokens from the source until n are buffered, or EOF.
func (s *CommonTokenStream) fill(n int) {
	for !s.fetchedEOF && len(s.tokens) < n {
		s.fetchOne()
	}
}

func (s *CommonTokenStream) fetchOne() Token {
	t := s.tokenSource.NextToken()
	t.(WritableToken).SetTokenIndex(len(s.tokens))
	s.tokens = append(s.tokens, t)
	if t.GetTokenType() == TokenEOF {
		s.fetchedEOF = true
	}
	return t
}

func (s *CommonTokenStream) lazyInit() {
	if s.index == -1 {
		s.setup()
	}
}

func (s *CommonTokenStream) setup() {
	s.fill(1)
	s.index = s.adjustSeekIndex(0)
}

// Consume advances past the current on-channel token.
func (s *CommonTokenStream) Consume() {
	s.lazyInit()
	skipEOF := s.LA(1) != TokenEOF
	if skipEOF && s.index+1 >= len(s.tokens) {
		s.fill(len(s.tokens) + 1)
	}
	s.index = s.nextTokenOnChannel(s.index + 1)
}

// Index is the current buffer position.
func (s *CommonTokenStream) Index() int {
	s.lazyInit()
	return s.index
}

func (s *CommonTokenStream) Size() int {
	s.lazyInit()
	return len(s.tokens)
}

// Get returns the raw buffered token at an absolute index (no channel
// filtering), fetching more as needed.
func (s *CommonTokenStream) Get(index int) Token {
	s.lazyInit()
	if index < 0 {
		return nil
	}
	s.fill(index + 1)
	if index >= len(s.tokens) {
		return s.tokens[len(s.tokens)-1]
	}
	return s.tokens[index]
}

// LA returns LT(k)'s token type.
func (s *CommonTokenStream) LA(k int) int {
	t := s.LT(k)
	if t == nil {
		return TokenInvalid
	}
	return t.GetTokenType()
}

// LT returns the token k positions ahead on the configured channel,
// lazily filling as needed. k == 0 is undefined (as in the teacher);
// k < 0 delegates to LB.
func (s *CommonTokenStream) LT(k int) Token {
	s.lazyInit()
	if k == 0 {
		return nil
	}
	if k < 0 {
		return s.LB(-k)
	}
	i := s.index
	n := k - 1
	for n > 0 {
		i = s.nextTokenOnChannel(i + 1)
		n--
	}
	return s.Get(i)
}

// LB mirrors LT backward over on-channel tokens.
func (s *CommonTokenStream) LB(k int) Token {
	s.lazyInit()
	if k == 0 || s.index-k < 0 {
		return nil
	}
	i := s.index
	n := k
	for n > 0 && i > 0 {
		i = s.previousTokenOnChannel(i - 1)
		n--
	}
	if i < 0 {
		return nil
	}
	return s.tokens[i]
}

func (s *CommonTokenStream) nextTokenOnChannel(i int) int {
	s.fill(i + 1)
	for i < len(s.tokens) {
		t := s.tokens[i]
		if t.GetTokenType() == TokenEOF || t.GetChannel() == s.channel {
			return i
		}
		i++
		s.fill(i + 1)
	}
	return len(s.tokens) - 1
}

func (s *CommonTokenStream) previousTokenOnChannel(i int) int {
	for i >= 0 {
		if s.tokens[i].GetChannel() == s.channel {
			return i
		}
		i--
	}
	return i
}

// adjustSeekIndex resolves spec §9's open question: snap forward to
// the next on-channel token at or after i, or to the EOF token's
// index if none exists.
func (s *CommonTokenStream) adjustSeekIndex(i int) int {
	s.fill(i + 1)
	return s.nextTokenOnChannel(i)
}

func (s *CommonTokenStream) Seek(index int) {
	s.lazyInit()
	s.index = s.adjustSeekIndex(index)
}

// Mark/Release are no-ops: the whole stream is buffered, per spec §4.G.
func (s *CommonTokenStream) Mark() int   { return 0 }
func (s *CommonTokenStream) Release(int) {}

func (s *CommonTokenStream) GetTextFromInterval(iv Interval) string {
	s.fill(iv.Stop + 1)
	if iv.Start < 0 || iv.Start >= len(s.tokens) {
		return ""
	}
	stop := iv.Stop
	if stop >= len(s.tokens) {
		stop = len(s.tokens) - 1
	}
	out := ""
	for i := iv.Start; i <= stop; i++ {
		out += s.tokens[i].GetText()
	}
	return out
}

func (s *CommonTokenStream) GetAllText() string {
	s.lazyInit()
	for !s.fetchedEOF {
		s.fetchOne()
	}
	if len(s.tokens) == 0 {
		return ""
	}
	return s.GetTextFromInterval(NewInterval(0, len(s.tokens)-1))
}
