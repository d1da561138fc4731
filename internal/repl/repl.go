// Package repl implements the interactive prompt loop and slash command
// handlers.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog/log"

	"jarvis/internal/auth"
	"jarvis/internal/chat"
	"jarvis/internal/creds"
	"jarvis/internal/providers"
	"jarvis/internal/registry"
	"jarvis/internal/tools"
	"jarvis/internal/tui"
)

const (
	promptText      = "   > "
	exitPromptText  = "   Exit Jarvis? [y/N] "
	setupPromptText = "   Run setup wizard now? [Y/n] "
)

// REPL owns the readline instance, the chat engine and the credential
// environment for one interactive session.
type REPL struct {
	engine   *chat.Engine
	envPath  string
	env      creds.Environment
	registry *registry.Registry
	rl       *readline.Instance
	rebuild  func(announce bool) bool
}

// replConfig builds the readline configuration. When a reattached tty is
// available it is wired in explicitly; readline snapshots the os stdio
// globals at package init, so relying on the swapped globals would leave it
// reading the original, non-interactive stdin.
func replConfig(tty *os.File) *readline.Config {
	cfg := &readline.Config{
		Prompt:            promptText,
		HistoryFile:       filepath.Join(os.TempDir(), ".jarvis_history"),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	}
	if tty != nil {
		cfg.Stdin = tty
		cfg.Stdout = tty
		cfg.Stderr = tty
	}
	return cfg
}

// Run starts the interactive loop over the given provider chain. It returns
// when the user exits.
func Run(chain []providers.Provider, envPath string, env creds.Environment) error {
	tty, restore := attachControllingTTY()
	if restore != nil {
		defer restore()
	}
	if envPath == "" {
		envPath = creds.DefaultPath()
	}

	r := &REPL{
		engine:   chat.NewEngine(chain, tools.NewSet()),
		envPath:  envPath,
		env:      env,
		registry: registry.New(envPath, env),
	}
	r.rebuild = r.rebuildChain
	r.wireEngineCallbacks()

	rl, err := readline.NewEx(replConfig(tty))
	if err != nil {
		return fmt.Errorf("create readline instance: %w", err)
	}
	defer rl.Close()
	r.rl = rl

	tui.PrintHome(r.engine.Current().Label())

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if r.confirmExit() {
				r.goodbye()
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			r.goodbye()
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			exit, refresh := r.handleSlash(input)
			if exit {
				r.goodbye()
				return nil
			}
			if refresh {
				r.rebuild(true)
			}
			continue
		}

		if tool, ok := ParseLaunchIntent(input); ok {
			fmt.Printf("\n   %sLaunching %s...%s\n\n", tui.ColorCyan, tool, tui.ColorReset)
			tui.PrintInfo(tools.Launch(tool))
			fmt.Println()
			continue
		}
		if suggestion, ok := SuggestTool(input); ok {
			tui.PrintInfo(fmt.Sprintf("Did you mean 'launch %s'? Say so, or rephrase.", suggestion))
			continue
		}

		r.sendTurn(input)
	}
}

// sendTurn runs one model turn, retrying once after an inline re-auth.
func (r *REPL) sendTurn(input string) {
	for attempt := 0; attempt < 2; attempt++ {
		spin := tui.ThinkingSpinner()
		reply, err := r.engine.Send(context.Background(), input)
		spin.Stop()

		if err == nil {
			fmt.Println()
			tui.PrintResponse(reply)
			return
		}
		if errors.Is(err, chat.ErrRebuildChain) {
			if !r.rebuild(false) {
				tui.PrintInfo("Could not load providers after setup. Try /setup again.")
				return
			}
			if attempt > 0 {
				// One automatic retry per turn; a second re-auth means
				// the new credentials take effect on the next message.
				tui.PrintInfo("Credentials updated again. Send your message once more to use them.")
				return
			}
			fmt.Printf("\n   %sSetup complete.%s Retrying your request...\n\n", tui.ColorGreen, tui.ColorReset)
			continue
		}

		if chat.Classify(err) == chat.FailureAuth {
			tui.PrintAuthGuide(r.engine.Current().Label(), r.envPath)
		} else {
			fmt.Printf("\n   %s[ERROR]%s All providers failed. Last error: %v\n\n",
				tui.ColorCyan, tui.ColorReset, err)
		}
		return
	}
}

// wireEngineCallbacks connects fallback notices and the inline re-auth offer
// to the terminal.
func (r *REPL) wireEngineCallbacks() {
	r.engine.OnFallback = func(kind chat.FailureKind, from, to string) {
		switch kind {
		case chat.FailureAuth:
			fmt.Printf("\n   %s[auth]%s %s%s: bad key -- trying %s...%s\n\n",
				tui.ColorCyan, tui.ColorReset, tui.ColorLightBlue, from, to, tui.ColorReset)
		case chat.FailureTimeout:
			fmt.Printf("\n   %s[timeout]%s %s%s took too long -- trying %s...%s\n\n",
				tui.ColorCyan, tui.ColorReset, tui.ColorLightBlue, from, to, tui.ColorReset)
		default:
			fmt.Printf("\n   %s[%s failed]%s %sFalling back to %s...%s\n\n",
				tui.ColorCyan, from, tui.ColorReset, tui.ColorLightBlue, to, tui.ColorReset)
		}
	}
	r.engine.OfferReauth = func() bool {
		fmt.Printf("\n   %sAuthentication failed.%s You can fix it now without restarting.\n",
			tui.ColorCyan, tui.ColorReset)
		ans, err := r.promptLine(setupPromptText)
		if err != nil {
			return false
		}
		ans = strings.ToLower(strings.TrimSpace(ans))
		if ans == "n" || ans == "no" {
			return false
		}
		return auth.RunWizard(r.envPath, r.env, r.promptLine)
	}
}

// rebuildChain re-detects providers after a credential change and swaps in a
// fresh engine. Returns true when a chain was built.
func (r *REPL) rebuildChain(announce bool) bool {
	chain, err := providers.Build(context.Background(), r.env)
	if err != nil || len(chain) == 0 {
		log.Debug().Err(err).Msg("chain rebuild produced no providers")
		if announce {
			fmt.Printf("\n   %s[setup]%s Provider update saved, but no active provider is ready yet. Run /setup again.\n\n",
				tui.ColorCyan, tui.ColorReset)
		}
		return false
	}

	engine := chat.NewEngine(chain, tools.NewSet())
	r.engine = engine
	r.wireEngineCallbacks()
	if announce {
		fmt.Printf("\n   %sActive provider switched to %s.%s\n\n",
			tui.ColorGreen, engine.Current().Label(), tui.ColorReset)
	}
	return true
}

// promptLine reads one line with a temporary prompt. Shared with the setup
// wizard so it never competes with the loop for stdin.
func (r *REPL) promptLine(prompt string) (string, error) {
	r.rl.SetPrompt(prompt)
	defer r.rl.SetPrompt(promptText)
	line, err := r.rl.Readline()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (r *REPL) confirmExit() bool {
	ans, err := r.promptLine(exitPromptText)
	if err != nil {
		return true
	}
	return strings.ToLower(strings.TrimSpace(ans)) == "y"
}

func (r *REPL) goodbye() {
	fmt.Printf("\n   %sGoodbye.%s\n\n", tui.ColorCyan, tui.ColorReset)
}

// RunWizardAndRetry runs the setup wizard and, if a provider was configured,
// builds the chain and starts the loop. Used from main when nothing is
// configured at startup.
func RunWizardAndRetry(envPath string, env creds.Environment) error {
	if !auth.RunWizard(envPath, env, nil) {
		tui.PrintAuthGuide("", envPath)
		return nil
	}
	chain, err := providers.Build(context.Background(), env)
	if err != nil {
		tui.PrintAuthGuide("", envPath)
		return nil
	}
	return Run(chain, envPath, env)
}
