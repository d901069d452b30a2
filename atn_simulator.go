// Copyright (c) 2012-2022 The ANTLR Project. All rights reserved.
// Use of this file is governed by the BSD 3-clause license that
// can be found in the LICENSE.txt file in the project root.

package langrt

import "sync"

// ATNSimulator is the shared base of the parser prediction simulator
// (component E) and the lexer simulator (component F): both reference
// the immutable ATN and a shared, insert-only PredictionContextCache
// that canonicalises contexts attached to DFA states (spec §5).
type ATNSimulator struct {
	atn                *ATN
	sharedContextCache *PredictionContextCache
}

func newATNSimulator(atn *ATN, sharedContextCache *PredictionContextCache) *ATNSimulator {
	if sharedContextCache == nil {
		sharedContextCache = NewPredictionContextCache()
	}
	return &ATNSimulator{atn: atn, sharedContextCache: sharedContextCache}
}

func (s *ATNSimulator) GetATN() *ATN { return s.atn }

// PredictionContextCache canonicalises PredictionContext nodes so
// structurally-equal graphs collapse to one shared handle, cutting
// merge-cache and hashing cost (spec §3/§9's design note). Insert-only,
// guarded like the DFA per spec §5.
type PredictionContextCache struct {
	mu    sync.Mutex
	cache map[int]PredictionContext
}

func NewPredictionContextCache() *PredictionContextCache {
	c := &PredictionContextCache{cache: make(map[int]PredictionContext)}
	c.cache[BasePredictionContextEMPTY.hash()] = BasePredictionContextEMPTY
	return c
}

// add canonicalises ctx: if a structurally-equal node already exists,
// it is returned (double-check-then-fill under the lock, per spec
// §5's recognizer-cache pattern applied to this cache too).
func (c *PredictionContextCache) add(ctx PredictionContext) PredictionContext {
	if ctx == BasePredictionContextEMPTY {
		return BasePredictionContextEMPTY
	}
	h := ctx.hash()
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.cache[h]; ok && existing.predictionContextEquals(ctx) {
		return existing
	}
	c.cache[h] = ctx
	return ctx
}
