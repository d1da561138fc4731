package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jarvis/internal/providers"
)

// fakeProvider scripts one behavior per call.
type fakeProvider struct {
	label     string
	responses []func(messages []providers.Message) (providers.Response, error)
	calls     int
}

func (f *fakeProvider) Label() string { return f.label }

func (f *fakeProvider) Chat(_ context.Context, messages []providers.Message, _ []providers.ToolDef) (providers.Response, error) {
	i := f.calls
	f.calls++
	if i >= len(f.responses) {
		i = len(f.responses) - 1
	}
	return f.responses[i](messages)
}

func alwaysText(text string) func([]providers.Message) (providers.Response, error) {
	return func([]providers.Message) (providers.Response, error) {
		return providers.Response{Text: text}, nil
	}
}

func alwaysErr(err error) func([]providers.Message) (providers.Response, error) {
	return func([]providers.Message) (providers.Response, error) {
		return providers.Response{}, err
	}
}

var errAuth = errors.New("openrouter 401 unauthorized: no auth credentials found")

func TestSend_FirstProviderSucceeds(t *testing.T) {
	a := &fakeProvider{label: "a", responses: []func([]providers.Message) (providers.Response, error){alwaysText("hi")}}
	e := NewEngine([]providers.Provider{a}, nil)

	reply, err := e.Send(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "hi", reply)
	assert.Equal(t, 0, e.idx)

	// History keeps growing across turns on the same provider.
	n := len(e.session.Messages)
	_, err = e.Send(context.Background(), "again")
	require.NoError(t, err)
	assert.Greater(t, len(e.session.Messages), n)
}

func TestSend_AuthFailureAdvancesToNextProvider(t *testing.T) {
	a := &fakeProvider{label: "a", responses: []func([]providers.Message) (providers.Response, error){alwaysErr(errAuth)}}
	b := &fakeProvider{label: "b", responses: []func([]providers.Message) (providers.Response, error){alwaysText("from b")}}
	e := NewEngine([]providers.Provider{a, b}, nil)

	var gotKind FailureKind
	var gotFrom, gotTo string
	e.OnFallback = func(kind FailureKind, from, to string) {
		gotKind, gotFrom, gotTo = kind, from, to
	}

	reply, err := e.Send(context.Background(), "hello")
	require.NoError(t, err, "caller must never observe the first provider's error")
	assert.Equal(t, "from b", reply)
	assert.Equal(t, 1, e.idx, "cursor advanced 0 -> 1")
	assert.Equal(t, FailureAuth, gotKind)
	assert.Equal(t, "a", gotFrom)
	assert.Equal(t, "b", gotTo)
}

func TestSend_SessionResetOnFallback(t *testing.T) {
	a := &fakeProvider{label: "a", responses: []func([]providers.Message) (providers.Response, error){alwaysErr(errAuth)}}
	b := &fakeProvider{label: "b", responses: []func([]providers.Message) (providers.Response, error){
		func(messages []providers.Message) (providers.Response, error) {
			// Fresh session: system prompt pair + this turn's user message.
			if len(messages) != 3 {
				return providers.Response{}, fmt.Errorf("expected fresh session, got %d messages", len(messages))
			}
			return providers.Response{Text: "ok"}, nil
		},
	}}
	e := NewEngine([]providers.Provider{a, b}, nil)

	// Pollute the session with an earlier turn on provider a.
	e.session.AddUser("earlier")
	e.session.AddAssistant("earlier reply")

	reply, err := e.Send(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "ok", reply)
}

func TestSend_TerminalTimeoutIsTimeoutShaped(t *testing.T) {
	a := &fakeProvider{label: "a", responses: []func([]providers.Message) (providers.Response, error){
		alwaysErr(context.DeadlineExceeded),
	}}
	e := NewEngine([]providers.Provider{a}, nil)

	_, err := e.Send(context.Background(), "hello")
	require.Error(t, err)
	assert.Equal(t, FailureTimeout, Classify(err))
	assert.NotEqual(t, FailureAuth, Classify(err))
}

func TestSend_TerminalAuthOffersReauth(t *testing.T) {
	a := &fakeProvider{label: "a", responses: []func([]providers.Message) (providers.Response, error){alwaysErr(errAuth)}}
	e := NewEngine([]providers.Provider{a}, nil)

	offered := false
	e.OfferReauth = func() bool {
		offered = true
		return true
	}

	_, err := e.Send(context.Background(), "hello")
	assert.True(t, offered)
	assert.ErrorIs(t, err, ErrRebuildChain)
}

func TestSend_TerminalAuthRefusedSurfacesError(t *testing.T) {
	a := &fakeProvider{label: "a", responses: []func([]providers.Message) (providers.Response, error){alwaysErr(errAuth)}}
	e := NewEngine([]providers.Provider{a}, nil)
	e.OfferReauth = func() bool { return false }

	_, err := e.Send(context.Background(), "hello")
	require.Error(t, err)
	assert.Equal(t, FailureAuth, Classify(err))
}

func TestSend_ProviderNeverRetriedWithinTurn(t *testing.T) {
	a := &fakeProvider{label: "a", responses: []func([]providers.Message) (providers.Response, error){alwaysErr(errAuth)}}
	b := &fakeProvider{label: "b", responses: []func([]providers.Message) (providers.Response, error){alwaysText("ok")}}
	e := NewEngine([]providers.Provider{a, b}, nil)

	_, err := e.Send(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, 1, a.calls)

	// The next turn starts from the last successful index, not from zero.
	_, err = e.Send(context.Background(), "next")
	require.NoError(t, err)
	assert.Equal(t, 1, a.calls)
	assert.Equal(t, 2, b.calls)
}

// fakeDispatcher records dispatched calls.
type fakeDispatcher struct {
	specs      []providers.ToolDef
	dispatched []string
	result     string
}

func (d *fakeDispatcher) Specs() []providers.ToolDef { return d.specs }

func (d *fakeDispatcher) Dispatch(name string, args map[string]string) string {
	d.dispatched = append(d.dispatched, name+":"+args["name"])
	return d.result
}

func rawArgs(args map[string]string) map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(args))
	for k, v := range args {
		b, _ := json.Marshal(v)
		out[k] = b
	}
	return out
}

func TestSend_ToolCallDispatchAndFinalReply(t *testing.T) {
	d := &fakeDispatcher{result: "launched"}
	p := &fakeProvider{label: "a", responses: []func([]providers.Message) (providers.Response, error){
		func([]providers.Message) (providers.Response, error) {
			return providers.Response{ToolCall: &providers.ToolCall{
				ID:   "call_1",
				Name: "launch_tool",
				Args: rawArgs(map[string]string{"name": "aider"}),
			}}, nil
		},
		func(messages []providers.Message) (providers.Response, error) {
			last := messages[len(messages)-1]
			if last.Role != providers.RoleTool || last.Content != "launched" {
				return providers.Response{}, fmt.Errorf("tool result not in history")
			}
			return providers.Response{Text: "aider is running"}, nil
		},
	}}
	e := NewEngine([]providers.Provider{p}, d)

	reply, err := e.Send(context.Background(), "run aider")
	require.NoError(t, err)
	assert.Equal(t, "aider is running", reply)
	assert.Equal(t, []string{"launch_tool:aider"}, d.dispatched)
}

func TestSend_ToolLoopBounded(t *testing.T) {
	d := &fakeDispatcher{result: "ok"}
	p := &fakeProvider{label: "a", responses: []func([]providers.Message) (providers.Response, error){
		func([]providers.Message) (providers.Response, error) {
			return providers.Response{ToolCall: &providers.ToolCall{
				ID: "loop", Name: "check_status", Args: rawArgs(nil),
			}}, nil
		},
	}}
	e := NewEngine([]providers.Provider{p}, d)
	e.timeout = time.Second

	_, err := e.Send(context.Background(), "loop forever")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tool call loop")
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want FailureKind
	}{
		{errors.New("AuthenticationError: bad key"), FailureAuth},
		{errors.New("server said 401"), FailureAuth},
		{errors.New("API key not valid. Please pass a valid API key."), FailureAuth},
		{errors.New("no auth credentials found"), FailureAuth},
		{context.DeadlineExceeded, FailureTimeout},
		{errors.New("context deadline exceeded"), FailureTimeout},
		{errors.New("request timed out"), FailureTimeout},
		{errors.New("connection refused"), FailureOther},
		{nil, FailureOther},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.err), "%v", tt.err)
	}
}
