// Copyright (c) 2012-2022 The ANTLR Project. All rights reserved.
// Use of this file is governed by the BSD 3-clause license that
// can be found in the LICENSE.txt file in the project root.

package langrt

// TokenStream is the interface the parser driver (component H) reads
// decisions from: lazily-filled LT/LA/LB lookahead, per spec §4.G.
type TokenStream interface {
	IntStream
	LT(k int) Token
	LA(k int) int
	LB(k int) Token
	Get(index int) Token
	GetTokenSource() TokenSource
	GetTextFromInterval(Interval) string
	GetAllText() string
	Mark() int
	Release(marker int)
	Seek(index int)
	Consume()
}
