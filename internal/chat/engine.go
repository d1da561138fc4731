package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"jarvis/internal/providers"
)

// DefaultCallTimeout bounds each individual provider call within a turn.
const DefaultCallTimeout = 60 * time.Second

// maxToolRounds caps tool-call loops per provider attempt so a confused
// model cannot spin forever.
const maxToolRounds = 5

// ErrRebuildChain signals the caller that new credentials are available: it
// must rebuild the provider chain and re-issue the same user input exactly
// once.
var ErrRebuildChain = errors.New("provider chain must be rebuilt")

// Dispatcher executes tool calls requested by the model.
type Dispatcher interface {
	// Specs returns the tool definitions advertised to the model.
	Specs() []providers.ToolDef
	// Dispatch runs a named tool and returns its text result.
	Dispatch(name string, args map[string]string) string
}

// Engine walks an ordered provider chain for each user turn, advancing the
// cursor on failure. The cursor never moves backwards within a turn and only
// resets when the whole engine is rebuilt with fresh credentials.
type Engine struct {
	chain   []providers.Provider
	idx     int
	session *Session
	timeout time.Duration
	tools   Dispatcher

	// OnFallback, when set, is invoked before advancing to the next
	// provider so the caller can tell the user what happened.
	OnFallback func(kind FailureKind, from, to string)

	// OfferReauth, when set, is invoked after the last provider fails with
	// an auth error. Returning true means the user completed setup and the
	// caller should rebuild the chain (Send then returns ErrRebuildChain).
	OfferReauth func() bool
}

// NewEngine creates an Engine over chain with a fresh session. tools may be
// nil when no tool calling is wanted.
func NewEngine(chain []providers.Provider, tools Dispatcher) *Engine {
	return &Engine{
		chain:   chain,
		session: NewSession(SystemPrompt),
		timeout: DefaultCallTimeout,
		tools:   tools,
	}
}

// Current returns the provider the next turn will start with.
func (e *Engine) Current() providers.Provider {
	if e.idx >= len(e.chain) {
		return e.chain[len(e.chain)-1]
	}
	return e.chain[e.idx]
}

// Send runs one user turn through the chain. On success the reply is
// returned and the cursor stays put for the next turn. On failure the cursor
// advances and the session is replaced with a fresh one; the user input is
// re-sent to the next provider within the same turn. When the chain is
// exhausted the terminal error (or ErrRebuildChain after a successful inline
// re-auth) is returned.
func (e *Engine) Send(ctx context.Context, userInput string) (string, error) {
	turnID := uuid.NewString()

	for e.idx < len(e.chain) {
		current := e.chain[e.idx]

		reply, err := e.converse(ctx, current, userInput)
		if err == nil {
			log.Debug().Str("turn", turnID).Str("provider", current.Label()).Msg("turn completed")
			return reply, nil
		}

		kind := Classify(err)
		log.Debug().Str("turn", turnID).Str("provider", current.Label()).
			Stringer("kind", kind).Err(err).Msg("provider failed")

		next := e.idx + 1
		if next < len(e.chain) {
			if e.OnFallback != nil {
				e.OnFallback(kind, current.Label(), e.chain[next].Label())
			}
			e.idx = next
			e.session = NewSession(SystemPrompt)
			continue
		}

		if kind == FailureAuth && e.OfferReauth != nil && e.OfferReauth() {
			return "", ErrRebuildChain
		}
		return "", err
	}

	return "", fmt.Errorf("no providers available")
}

// converse runs the request/tool-call loop against a single provider. Each
// provider call gets its own deadline so one slow backend cannot eat the
// whole turn budget of the ones behind it.
func (e *Engine) converse(ctx context.Context, p providers.Provider, userInput string) (string, error) {
	e.session.AddUser(userInput)

	var specs []providers.ToolDef
	if e.tools != nil {
		specs = e.tools.Specs()
	}

	for round := 0; round < maxToolRounds; round++ {
		callCtx, cancel := context.WithTimeout(ctx, e.timeout)
		resp, err := p.Chat(callCtx, e.session.Messages, specs)
		cancel()
		if err != nil {
			return "", err
		}

		if resp.ToolCall == nil {
			e.session.AddAssistant(resp.Text)
			return resp.Text, nil
		}

		call := resp.ToolCall
		if e.tools == nil {
			return "", fmt.Errorf("provider requested tool %q but no tools are available", call.Name)
		}
		result := e.tools.Dispatch(call.Name, decodeArgs(call.Args))
		e.session.AddAssistant(fmt.Sprintf("[tool_call: %s]", call.Name))
		e.session.AddToolResult(call.ID, call.Name, result)
	}

	return "", fmt.Errorf("tool call loop exceeded %d rounds", maxToolRounds)
}

// decodeArgs flattens raw JSON argument values to strings for tool dispatch.
func decodeArgs(raw map[string]json.RawMessage) map[string]string {
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			out[k] = s
		} else {
			out[k] = string(v)
		}
	}
	return out
}
