package langrt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInputStream_LA(t *testing.T) {
	is := NewInputStream("abc")

	assert.Equal(t, TokenInvalid, is.LA(0))
	assert.Equal(t, int('a'), is.LA(1))
	assert.Equal(t, int('b'), is.LA(2))
	assert.Equal(t, int('c'), is.LA(3))
	assert.Equal(t, TokenEOF, is.LA(4))
}

func TestInputStream_ConsumeAdvancesLA(t *testing.T) {
	is := NewInputStream("ab")

	is.Consume()
	assert.Equal(t, 1, is.Index())
	assert.Equal(t, int('b'), is.LA(1))
	assert.Equal(t, int('a'), is.LA(-1))
}

func TestInputStream_ConsumeAtEOFPanics(t *testing.T) {
	is := NewInputStream("a")
	is.Consume()
	assert.Panics(t, func() { is.Consume() })
}

func TestInputStream_SeekAndSize(t *testing.T) {
	is := NewInputStream("hello")
	assert.Equal(t, 5, is.Size())

	is.Seek(3)
	assert.Equal(t, int('l'), is.LA(1))
}

func TestInputStream_GetTextFromInterval(t *testing.T) {
	is := NewInputStream("hello world")

	assert.Equal(t, "hello", is.GetTextFromInterval(NewInterval(0, 4)))
	assert.Equal(t, "world", is.GetTextFromInterval(NewInterval(6, 10)))
	assert.Equal(t, "", is.GetTextFromInterval(NewInterval(5, 2)))
}

func TestInputStream_GetTextFromInterval_ClampsPastEnd(t *testing.T) {
	is := NewInputStream("hi")
	assert.Equal(t, "hi", is.GetTextFromInterval(NewInterval(0, 50)))
}

func TestInputStream_SourceName(t *testing.T) {
	anon := NewInputStream("x")
	assert.Equal(t, "<stream>", anon.GetSourceName())

	named := NewInputStreamWithName("input.g4", "x")
	assert.Equal(t, "input.g4", named.GetSourceName())
}
