package langrt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// recordingListener tracks which ErrorListener methods fired, for
// asserting ProxyErrorListener's fan-out.
type recordingListener struct {
	BaseErrorListener
	syntaxErrors  int
	ambiguities   int
	fullContexts  int
	contextSens   int
	lastMsg       string
}

func (l *recordingListener) SyntaxError(_ Recognizer, _ interface{}, _, _ int, msg string, _ error) {
	l.syntaxErrors++
	l.lastMsg = msg
}

func (l *recordingListener) ReportAmbiguity(Recognizer, *DFA, int, int, bool, *BitSet, *ATNConfigSet) {
	l.ambiguities++
}

func (l *recordingListener) ReportAttemptingFullContext(Recognizer, *DFA, int, int, *BitSet, *ATNConfigSet) {
	l.fullContexts++
}

func (l *recordingListener) ReportContextSensitivity(Recognizer, *DFA, int, int, int, *ATNConfigSet) {
	l.contextSens++
}

func TestProxyErrorListener_FansOutToEveryDelegate(t *testing.T) {
	a := &recordingListener{}
	b := &recordingListener{}
	proxy := NewProxyErrorListener([]ErrorListener{a, b})

	proxy.SyntaxError(nil, nil, 1, 2, "boom", nil)

	assert.Equal(t, 1, a.syntaxErrors)
	assert.Equal(t, 1, b.syntaxErrors)
	assert.Equal(t, "boom", a.lastMsg)
}

func TestProxyErrorListener_FansOutAmbiguityAndContextEvents(t *testing.T) {
	a := &recordingListener{}
	proxy := NewProxyErrorListener([]ErrorListener{a})

	proxy.ReportAmbiguity(nil, nil, 0, 1, false, nil, nil)
	proxy.ReportAttemptingFullContext(nil, nil, 0, 1, nil, nil)
	proxy.ReportContextSensitivity(nil, nil, 0, 1, 1, nil)

	assert.Equal(t, 1, a.ambiguities)
	assert.Equal(t, 1, a.fullContexts)
	assert.Equal(t, 1, a.contextSens)
}

func TestProxyErrorListener_EmptyDelegatesIsSafe(t *testing.T) {
	proxy := NewProxyErrorListener(nil)
	assert.NotPanics(t, func() { proxy.SyntaxError(nil, nil, 1, 1, "x", nil) })
}

func TestBaseErrorListener_AllMethodsAreNoops(t *testing.T) {
	var l BaseErrorListener
	assert.NotPanics(t, func() {
		l.SyntaxError(nil, nil, 1, 1, "x", nil)
		l.ReportAmbiguity(nil, nil, 0, 1, false, nil, nil)
		l.ReportAttemptingFullContext(nil, nil, 0, 1, nil, nil)
		l.ReportContextSensitivity(nil, nil, 0, 1, 1, nil)
	})
}

func TestBaseRecognizer_GetErrorListenerDispatchFansOutAddedListeners(t *testing.T) {
	r := NewBaseRecognizer()
	rec := &recordingListener{}
	r.AddErrorListener(rec)

	r.GetErrorListenerDispatch().SyntaxError(nil, nil, 1, 1, "err", nil)
	assert.Equal(t, 1, rec.syntaxErrors)
}

func TestBaseRecognizer_RemoveErrorListenersClearsDispatch(t *testing.T) {
	r := NewBaseRecognizer()
	r.RemoveErrorListeners()
	// default ConsoleErrorListener is gone too; dispatch to zero
	// delegates must not panic.
	assert.NotPanics(t, func() {
		r.GetErrorListenerDispatch().SyntaxError(nil, nil, 1, 1, "x", nil)
	})
}
