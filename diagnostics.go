// Copyright (c) 2012-2022 The ANTLR Project. All rights reserved.
// Use of this file is governed by the BSD 3-clause license that
// can be found in the LICENSE.txt file in the project root.

package langrt

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// diagnostics is the ambient structured-logging sink the prediction
// and lexer simulators trace through: one event per interesting
// occurrence (DFA edge construction, full-context fallback, ambiguity
// detection), never line-oriented formatting, following the event-at-a-
// time idiom of the zerolog wiring in the logiface family. Silent by
// default, matching spec §5's "tracing never drives behaviour."
var diagnostics = struct {
	mu  sync.RWMutex
	log zerolog.Logger
}{
	log: zerolog.New(os.Stderr).Level(zerolog.Disabled),
}

// SetTraceLevel opts into runtime tracing at the given zerolog level
// (e.g. zerolog.DebugLevel). Passing zerolog.Disabled (the default)
// silences it again. Safe to call concurrently with an active parse.
func SetTraceLevel(level zerolog.Level) {
	diagnostics.mu.Lock()
	defer diagnostics.mu.Unlock()
	diagnostics.log = diagnostics.log.Level(level)
}

// SetTraceWriter redirects trace output, e.g. to a test's
// zerolog.ConsoleWriter or an io.Discard sink. Level is left
// unchanged.
func SetTraceWriter(w zerolog.Logger) {
	diagnostics.mu.Lock()
	defer diagnostics.mu.Unlock()
	level := diagnostics.log.GetLevel()
	diagnostics.log = w.Level(level)
}

func traceEvent() *zerolog.Event {
	diagnostics.mu.RLock()
	defer diagnostics.mu.RUnlock()
	return diagnostics.log.Debug()
}

func traceDFAEdge(decision int, fromState *DFAState, t int, toState *DFAState) {
	traceEvent().
		Int("decision", decision).
		Int("input", t).
		Bool("newState", toState != nil && fromState != toState).
		Msg("dfa edge computed")
}

func traceFullContextFallback(decision, startIndex int) {
	traceEvent().
		Int("decision", decision).
		Int("startIndex", startIndex).
		Msg("SLL conflict, retrying with full context")
}

func traceAmbiguity(decision int, alts *BitSet, startIndex, stopIndex int) {
	traceEvent().
		Int("decision", decision).
		Ints("alts", alts.Values()).
		Int("startIndex", startIndex).
		Int("stopIndex", stopIndex).
		Msg("ambiguity detected")
}
