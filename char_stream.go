// Copyright (c) 2012-2022 The ANTLR Project. All rights reserved.
// Use of this file is governed by the BSD 3-clause license that
// can be found in the LICENSE.txt file in the project root.

package langrt

// CharStream is the external collaborator consumed by the lexer
// simulator, per spec §6. A concrete implementation, InputStream, is
// provided below so the runtime is directly testable without a
// generated lexer's own stream type.
type CharStream interface {
	LA(offset int) int
	Consume()
	Index() int
	Size() int
	Mark() int
	Release(marker int)
	Seek(index int)
	GetTextFromInterval(Interval) string
	GetSourceName() string
}

// InputStream is a simple rune-slice backed CharStream.
type InputStream struct {
	name  string
	data  []rune
	index int
}

var _ CharStream = (*InputStream)(nil)

// NewInputStream returns a CharStream over the runes of s.
func NewInputStream(s string) *InputStream {
	return &InputStream{name: "<stream>", data: []rune(s)}
}

// NewInputStreamWithName is like NewInputStream but names the source
// (e.g. a file path) for diagnostics.
func NewInputStreamWithName(name, s string) *InputStream {
	return &InputStream{name: name, data: []rune(s)}
}

func (is *InputStream) LA(offset int) int {
	if offset == 0 {
		return TokenInvalid
	}
	pos := is.index
	if offset < 0 {
		pos += offset
		if pos < 0 {
			return TokenEOF
		}
	} else {
		pos += offset - 1
	}
	if pos < 0 || pos >= len(is.data) {
		return TokenEOF
	}
	return int(is.data[pos])
}

func (is *InputStream) Consume() {
	if is.index >= len(is.data) {
		panic("langrt: cannot consume EOF")
	}
	is.index++
}

func (is *InputStream) Index() int { return is.index }
func (is *InputStream) Size() int  { return len(is.data) }

// Mark/Release are no-ops: the whole stream is buffered in memory, per
// spec §4.G's note for CommonTokenStream applied equally here.
func (is *InputStream) Mark() int        { return -1 }
func (is *InputStream) Release(int)      {}
func (is *InputStream) Seek(index int)   { is.index = index }
func (is *InputStream) GetSourceName() string {
	if is.name == "" {
		return "<unknown>"
	}
	return is.name
}

func (is *InputStream) GetTextFromInterval(iv Interval) string {
	start, stop := iv.Start, iv.Stop
	if stop >= len(is.data) {
		stop = len(is.data) - 1
	}
	if start < 0 || start > stop {
		return ""
	}
	return string(is.data[start : stop+1])
}
