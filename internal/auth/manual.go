package auth

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"jarvis/internal/creds"
	"jarvis/internal/tui"
)

const googleKeyURL = "https://aistudio.google.com/app/apikey"

// openURL is swapped out in tests so prompts never spawn a browser.
var openURL = OpenBrowser

// SetupGoogle opens AI Studio in the browser and prompts for a key paste.
// Returns the key if obtained, or "" if skipped.
func SetupGoogle(envPath string, promptFn TextPrompt) string {
	fmt.Println()
	fmt.Printf("   %s► %sGoogle Gemini Setup%s\n", tui.ColorCyan, tui.ColorBoldWhite, tui.ColorReset)
	tui.PrintDim("Free tier available -- no credit card required.")
	fmt.Println()
	tui.PrintInfo("Opening Google AI Studio in your browser...")
	tui.PrintDim(googleKeyURL)
	fmt.Println()

	openURL(googleKeyURL)

	tui.PrintInfo("Steps:")
	tui.PrintInfo("  1. Sign in with your Google account")
	tui.PrintInfo("  2. Click \"Create API key\"")
	tui.PrintInfo("  3. Copy the key and paste it below")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)
	raw, _ := readInput(reader, promptFn, "   Paste GOOGLE_API_KEY (Enter to skip): ")
	if raw == "" {
		return ""
	}

	if !strings.HasPrefix(raw, "AIza") {
		tui.PrintInfo("Note: key doesn't look like a Gemini key (expected prefix 'AIza').")
		ans, _ := readInput(reader, promptFn, "   Save anyway? [y/N] ")
		ans = strings.ToLower(strings.TrimSpace(ans))
		if ans != "y" && ans != "yes" {
			return ""
		}
	}

	creds.Write(envPath, "GOOGLE_API_KEY", raw)
	return raw
}

// SetupOpenRouter obtains an OpenRouter key and saves it. The PKCE browser
// flow is opt-in via JARVIS_OPENROUTER_OAUTH; manual paste is the default
// because the provider-side flow has been flaky. Returns "" on skip or
// failure.
func SetupOpenRouter(envPath string, env creds.Environment, promptFn TextPrompt) string {
	fmt.Println()
	fmt.Printf("   %s► %sOpenRouter Setup%s\n", tui.ColorCyan, tui.ColorBoldWhite, tui.ColorReset)
	tui.PrintDim("Access 100+ cloud models with a single key.")
	tui.PrintDim("Your key is saved to " + envPath + " automatically.")
	fmt.Println()

	gate := strings.ToLower(env.Get("JARVIS_OPENROUTER_OAUTH"))
	if gate == "1" || gate == "true" {
		return runOpenRouterOAuth(envPath, promptFn)
	}
	return promptOpenRouterKey(envPath, promptFn)
}

func runOpenRouterOAuth(envPath string, promptFn TextPrompt) string {
	tui.PrintInfo("Opening OpenRouter in your browser to sign in...")
	fmt.Println()

	key, err := NewFlow().Run(context.Background())
	if err != nil {
		tui.PrintError(fmt.Sprintf("OAuth flow failed: %v", err))
		return promptOpenRouterKey(envPath, promptFn)
	}

	creds.Write(envPath, "OPENROUTER_API_KEY", key)
	return key
}

// promptOpenRouterKey is the manual fallback for every OAuth failure mode.
func promptOpenRouterKey(envPath string, promptFn TextPrompt) string {
	tui.PrintInfo("Manual API key setup.")
	tui.PrintInfo("Open this page and create/copy a key: " + openRouterKeysPage)
	_ = openURL(openRouterKeysPage)

	reader := bufio.NewReader(os.Stdin)
	raw, _ := readInput(reader, promptFn, "   Paste OPENROUTER_API_KEY (Enter to skip): ")
	if raw == "" {
		return ""
	}
	if !strings.HasPrefix(raw, "sk-or-v1-") {
		ans, _ := readInput(reader, promptFn, "   Key format looks unusual. Save anyway? [y/N] ")
		ans = strings.ToLower(strings.TrimSpace(ans))
		if ans != "y" && ans != "yes" {
			return ""
		}
	}
	creds.Write(envPath, "OPENROUTER_API_KEY", raw)
	return raw
}
