// Copyright (c) 2012-2022 The ANTLR Project. All rights reserved.
// Use of this file is governed by the BSD 3-clause license that
// can be found in the LICENSE.txt file in the project root.

package langrt

import (
	"fmt"
	"os"
)

// ErrorListener is the user-supplied diagnostics sink, per spec §6/§4.J.
type ErrorListener interface {
	SyntaxError(recognizer Recognizer, offendingSymbol interface{}, line, column int, msg string, e error)
	ReportAmbiguity(recognizer Recognizer, dfa *DFA, startIndex, stopIndex int, exact bool, ambigAlts *BitSet, configs *ATNConfigSet)
	ReportAttemptingFullContext(recognizer Recognizer, dfa *DFA, startIndex, stopIndex int, conflictingAlts *BitSet, configs *ATNConfigSet)
	ReportContextSensitivity(recognizer Recognizer, dfa *DFA, startIndex, stopIndex, prediction int, configs *ATNConfigSet)
}

// BaseErrorListener implements every ErrorListener method as a no-op
// so concrete listeners only need to override what they care about.
type BaseErrorListener struct{}

func (l *BaseErrorListener) SyntaxError(Recognizer, interface{}, int, int, string, error) {}
func (l *BaseErrorListener) ReportAmbiguity(Recognizer, *DFA, int, int, bool, *BitSet, *ATNConfigSet) {
}
func (l *BaseErrorListener) ReportAttemptingFullContext(Recognizer, *DFA, int, int, *BitSet, *ATNConfigSet) {
}
func (l *BaseErrorListener) ReportContextSensitivity(Recognizer, *DFA, int, int, int, *ATNConfigSet) {
}

// ConsoleErrorListener prints syntax errors to stderr; it is the
// default listener every BaseRecognizer starts with, mirroring the
// teacher's default.
type ConsoleErrorListener struct{ BaseErrorListener }

func NewConsoleErrorListener() *ConsoleErrorListener { return &ConsoleErrorListener{} }

func (l *ConsoleErrorListener) SyntaxError(_ Recognizer, _ interface{}, line, column int, msg string, _ error) {
	fmt.Fprintf(os.Stderr, "line %d:%d %s\n", line, column, msg)
}

// ProxyErrorListener multiplexes to every attached listener, per spec
// §4.J.
type ProxyErrorListener struct {
	BaseErrorListener
	delegates []ErrorListener
}

func NewProxyErrorListener(delegates []ErrorListener) *ProxyErrorListener {
	return &ProxyErrorListener{delegates: delegates}
}

func (l *ProxyErrorListener) SyntaxError(recognizer Recognizer, offendingSymbol interface{}, line, column int, msg string, e error) {
	for _, d := range l.delegates {
		d.SyntaxError(recognizer, offendingSymbol, line, column, msg, e)
	}
}

func (l *ProxyErrorListener) ReportAmbiguity(recognizer Recognizer, dfa *DFA, startIndex, stopIndex int, exact bool, ambigAlts *BitSet, configs *ATNConfigSet) {
	for _, d := range l.delegates {
		d.ReportAmbiguity(recognizer, dfa, startIndex, stopIndex, exact, ambigAlts, configs)
	}
}

func (l *ProxyErrorListener) ReportAttemptingFullContext(recognizer Recognizer, dfa *DFA, startIndex, stopIndex int, conflictingAlts *BitSet, configs *ATNConfigSet) {
	for _, d := range l.delegates {
		d.ReportAttemptingFullContext(recognizer, dfa, startIndex, stopIndex, conflictingAlts, configs)
	}
}

func (l *ProxyErrorListener) ReportContextSensitivity(recognizer Recognizer, dfa *DFA, startIndex, stopIndex, prediction int, configs *ATNConfigSet) {
	for _, d := range l.delegates {
		d.ReportContextSensitivity(recognizer, dfa, startIndex, stopIndex, prediction, configs)
	}
}
