package repl

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/chzyer/readline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jarvis/internal/chat"
	"jarvis/internal/creds"
	"jarvis/internal/providers"
	"jarvis/internal/registry"
)

func TestReplConfig_ReadsFromReattachedTerminal(t *testing.T) {
	// Readline snapshots os.Stdin at package init, so the reattached
	// terminal must flow through the config, not the os globals.
	rd, wr, err := os.Pipe()
	require.NoError(t, err)
	defer rd.Close()
	_, err = wr.WriteString("hello\n")
	require.NoError(t, err)
	wr.Close()

	cfg := replConfig(rd)
	require.NotNil(t, cfg.Stdin)
	cfg.Stdout = io.Discard
	cfg.Stderr = io.Discard
	cfg.HistoryFile = filepath.Join(t.TempDir(), "history")

	rl, err := readline.NewEx(cfg)
	require.NoError(t, err)
	defer rl.Close()

	line, err := rl.Readline()
	require.NoError(t, err)
	assert.Equal(t, "hello", line)
}

func TestReplConfig_WithoutTTYLeavesStdioDefaults(t *testing.T) {
	cfg := replConfig(nil)
	assert.Nil(t, cfg.Stdin)
	assert.Nil(t, cfg.Stdout)
	assert.Nil(t, cfg.Stderr)
}

func TestAttachControllingTTY_OptOut(t *testing.T) {
	t.Setenv("JARVIS_NO_TTY_ATTACH", "1")
	tty, restore := attachControllingTTY()
	assert.Nil(t, tty)
	assert.Nil(t, restore)
}

// failingProvider always reports bad credentials.
type failingProvider struct {
	calls int
}

func (p *failingProvider) Label() string { return "a" }

func (p *failingProvider) Chat(context.Context, []providers.Message, []providers.ToolDef) (providers.Response, error) {
	p.calls++
	return providers.Response{}, errors.New("openrouter 401 unauthorized: no auth credentials found")
}

func TestSendTurn_SecondReauthStopsRetrying(t *testing.T) {
	p := &failingProvider{}
	engine := chat.NewEngine([]providers.Provider{p}, nil)
	engine.OfferReauth = func() bool { return true }

	rebuilds := 0
	r := &REPL{engine: engine}
	r.rebuild = func(bool) bool {
		rebuilds++
		return true
	}

	r.sendTurn("hello")

	// One automatic retry per turn, then hand control back to the user
	// even when the retried attempt triggers another accepted re-auth.
	assert.Equal(t, 2, p.calls)
	assert.Equal(t, 2, rebuilds)
}

func TestSendTurn_RebuildFailureEndsTurn(t *testing.T) {
	p := &failingProvider{}
	engine := chat.NewEngine([]providers.Provider{p}, nil)
	engine.OfferReauth = func() bool { return true }

	r := &REPL{engine: engine}
	r.rebuild = func(bool) bool { return false }

	r.sendTurn("hello")
	assert.Equal(t, 1, p.calls)
}

func TestHandleSlash_LogoutUnknownProviderDoesNotRefresh(t *testing.T) {
	env := creds.MapEnv{"GOOGLE_API_KEY": "k", "JARVIS_MODEL": "gemini-2.0-flash"}
	path := filepath.Join(t.TempDir(), ".env")
	r := &REPL{envPath: path, env: env, registry: registry.New(path, env)}

	exit, refresh := r.handleSlash("/logout not-a-provider")
	assert.False(t, exit)
	assert.False(t, refresh, "failed logout must not trigger a chain rebuild")
	assert.Equal(t, "k", env.Get("GOOGLE_API_KEY"), "credentials untouched")

	exit, refresh = r.handleSlash("/logout gemini")
	assert.False(t, exit)
	assert.True(t, refresh)
	assert.Empty(t, env.Get("GOOGLE_API_KEY"))
}
