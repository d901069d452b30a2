package langrt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommonToken_GetText_LazyFromCharStream(t *testing.T) {
	is := NewInputStream("hello world")
	source := TokenSourceCharStreamPair{CharStream: is}

	tok := NewCommonToken(source, testTokenA, TokenDefaultChannel, 0, 4)
	assert.Equal(t, "hello", tok.GetText())
}

func TestCommonToken_SetText_OverridesLazyRead(t *testing.T) {
	is := NewInputStream("hello world")
	source := TokenSourceCharStreamPair{CharStream: is}

	tok := NewCommonToken(source, testTokenA, TokenDefaultChannel, 0, 4)
	tok.SetText("<missing B>")
	assert.Equal(t, "<missing B>", tok.GetText())
}

func TestCommonToken_GetText_NoCharStreamIsEmpty(t *testing.T) {
	tok := NewCommonToken(TokenSourceCharStreamPair{}, testTokenA, TokenDefaultChannel, 0, 4)
	assert.Equal(t, "", tok.GetText())
}

func TestCommonToken_DefaultsTokenIndexToUnset(t *testing.T) {
	tok := NewCommonToken(TokenSourceCharStreamPair{}, testTokenA, TokenDefaultChannel, 0, 0)
	assert.Equal(t, -1, tok.GetTokenIndex())

	tok.SetTokenIndex(3)
	assert.Equal(t, 3, tok.GetTokenIndex())
}

func TestCommonTokenFactory_CreateCopiesTextWhenEnabled(t *testing.T) {
	is := NewInputStream("xyz")
	source := TokenSourceCharStreamPair{CharStream: is}
	f := NewCommonTokenFactory(true)

	tok := f.Create(source, testTokenA, "", TokenDefaultChannel, 0, 2, 1, 0)
	assert.Equal(t, "xyz", tok.GetText())
}

func TestCommonTokenFactory_CreateDoesNotCopyTextByDefault(t *testing.T) {
	is := NewInputStream("xyz")
	source := TokenSourceCharStreamPair{CharStream: is}

	tok := CommonTokenFactoryDefault.Create(source, testTokenA, "", TokenDefaultChannel, 0, 2, 1, 0)
	// still lazily readable from the underlying stream
	assert.Equal(t, "xyz", tok.GetText())
}

func TestCommonTokenFactory_CreateWithExplicitText(t *testing.T) {
	f := NewCommonTokenFactory(false)
	tok := f.Create(TokenSourceCharStreamPair{}, testTokenA, "hi", TokenDefaultChannel, 0, 1, 1, 0)
	assert.Equal(t, "hi", tok.GetText())
}
