package langrt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeTokenSource replays a fixed token slice, repeating its final
// token (expected to be EOF) once exhausted.
type fakeTokenSource struct {
	tokens []Token
	pos    int
}

func (f *fakeTokenSource) NextToken() Token {
	if f.pos >= len(f.tokens) {
		return f.tokens[len(f.tokens)-1]
	}
	t := f.tokens[f.pos]
	f.pos++
	return t
}

func (f *fakeTokenSource) GetLine() int                       { return 1 }
func (f *fakeTokenSource) GetCharPositionInLine() int         { return 0 }
func (f *fakeTokenSource) GetInputStream() CharStream         { return nil }
func (f *fakeTokenSource) GetSourceName() string              { return "<fake>" }
func (f *fakeTokenSource) GetTokenFactory() TokenFactory       { return CommonTokenFactoryDefault }
func (f *fakeTokenSource) SetTokenFactory(TokenFactory)        {}

func channelFilteredFixture() *CommonTokenStream {
	pair := TokenSourceCharStreamPair{}
	a := NewCommonToken(pair, testTokenA, TokenDefaultChannel, 0, 0)
	ws := NewCommonToken(pair, testTokenX, TokenHiddenChannel, 1, 1)
	b := NewCommonToken(pair, testTokenB, TokenDefaultChannel, 2, 2)
	eof := NewCommonToken(pair, TokenEOF, TokenDefaultChannel, 3, 2)

	src := &fakeTokenSource{tokens: []Token{a, ws, b, eof}}
	return NewCommonTokenStream(src, TokenDefaultChannel)
}

func TestCommonTokenStream_LT_SkipsHiddenChannel(t *testing.T) {
	s := channelFilteredFixture()

	assert.Equal(t, testTokenA, s.LA(1))
	assert.Equal(t, testTokenB, s.LA(2), "hidden WS token must be skipped by on-channel lookahead")
}

func TestCommonTokenStream_Consume_SkipsHiddenChannel(t *testing.T) {
	s := channelFilteredFixture()

	s.Consume()
	assert.Equal(t, testTokenB, s.LA(1))
}

func TestCommonTokenStream_Get_SeesHiddenTokenDirectly(t *testing.T) {
	s := channelFilteredFixture()

	hidden := s.Get(1)
	assert.Equal(t, testTokenX, hidden.GetTokenType())
	assert.Equal(t, TokenHiddenChannel, hidden.GetChannel())
}

func TestCommonTokenStream_LB_SkipsHiddenChannel(t *testing.T) {
	s := channelFilteredFixture()
	s.Consume() // at B now (index 2 in raw buffer)

	prev := s.LB(1)
	assert.Equal(t, testTokenA, prev.GetTokenType())
}

func TestCommonTokenStream_Index(t *testing.T) {
	s := channelFilteredFixture()
	assert.Equal(t, 0, s.Index())
	s.Consume()
	assert.Equal(t, 2, s.Index())
}

func TestCommonTokenStream_SeekSnapsToOnChannel(t *testing.T) {
	s := channelFilteredFixture()

	s.Seek(1) // the hidden WS token's raw index
	assert.Equal(t, testTokenB, s.LA(1), "seeking onto a hidden token should snap forward to the next on-channel token")
}

func TestCommonTokenStream_GetAllText(t *testing.T) {
	s := channelFilteredFixture()
	// tokens carry no cached text and no char stream, so GetText is ""
	assert.Equal(t, "", s.GetAllText())
}
