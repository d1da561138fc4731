package repl

import (
	"fmt"
	"strings"

	"jarvis/internal/auth"
	"jarvis/internal/tools"
	"jarvis/internal/tui"
)

// handleSlash dispatches a "/" command without involving the model.
// Returns (exit, refreshProviders).
func (r *REPL) handleSlash(input string) (exit bool, refresh bool) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return false, false
	}
	cmd := strings.ToLower(parts[0])
	rest := parts[1:]

	switch cmd {
	case "/exit", "/quit":
		return true, false

	case "/help":
		tui.PrintHelp()

	case "/tools":
		fmt.Println(tools.Run("list"))

	case "/status":
		fmt.Println(tools.Run("status"))

	case "/config":
		fmt.Println(tools.Run("config", "show"))

	case "/install":
		if len(rest) > 0 {
			fmt.Println(tools.Run(append([]string{"install"}, rest...)...))
		} else {
			tui.PrintInfo("Usage: /install <tool-name>")
		}

	case "/update":
		if len(rest) > 0 {
			fmt.Println(tools.Run(append([]string{"update"}, rest...)...))
		} else {
			fmt.Println(tools.Run("update"))
		}

	case "/auth":
		if len(rest) > 0 {
			fmt.Println(tools.Run(append([]string{"auth", "help"}, rest...)...))
		} else {
			fmt.Println(tools.Run("auth", "manage"))
		}

	case "/setup":
		configured := auth.RunWizard(r.envPath, r.env, r.promptLine)
		return false, configured

	case "/logout":
		target := ""
		if len(rest) > 0 {
			target = rest[0]
		}
		provider, err := r.registry.Logout(target)
		if err != nil {
			tui.PrintInfo(fmt.Sprintf("Could not log out provider: %v", err))
			return false, false
		}
		tui.PrintSuccess(fmt.Sprintf("Logged out %s credentials. Run /setup to switch providers.", provider))
		return false, true

	default:
		tui.PrintInfo(fmt.Sprintf("Unknown command '%s'. Type /help for options.", cmd))
	}
	return false, false
}
