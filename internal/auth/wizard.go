package auth

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"jarvis/internal/creds"
	"jarvis/internal/providers"
	"jarvis/internal/registry"
	"jarvis/internal/tui"
)

// RunWizard runs the interactive provider setup wizard. Returns true when a
// provider was configured and the caller should rebuild the provider chain
// immediately.
func RunWizard(envPath string, env creds.Environment, promptFn TextPrompt) bool {
	if envPath == "" {
		envPath = creds.DefaultPath()
	}
	reg := registry.New(envPath, env)

	fmt.Println()
	fmt.Printf("   %s┌─────┐%s  %sJarvis -- Provider Setup%s\n", tui.ColorCyan, tui.ColorReset, tui.ColorBoldWhite, tui.ColorReset)
	fmt.Printf("   %s│ J.V │%s  %sNo provider configured. Let's fix that.%s\n", tui.ColorCyan, tui.ColorReset, tui.ColorLightBlue, tui.ColorReset)
	fmt.Printf("   %s└─────┘%s\n", tui.ColorCyan, tui.ColorReset)

	choice, err := tui.SelectMenu("Which provider do you want to use?", []tui.MenuItem{
		{Label: "Google Gemini", Description: "recommended, free tier, browser-guided key creation"},
		{Label: "OpenRouter", Description: "100+ models, paste API key from browser"},
		{Label: "Ollama", Description: "local, no API key required, prints setup instructions"},
		{Label: "Skip", Description: "I'll edit " + envPath + " manually"},
	})
	if err != nil {
		choice = -1
	}

	switch choice {
	case 0:
		key := SetupGoogle(envPath, promptFn)
		if key == "" {
			return false
		}
		env.Set("GOOGLE_API_KEY", key)
		activate(reg, registry.Gemini)
		fmt.Println()
		tui.PrintSuccess("GOOGLE_API_KEY saved to " + envPath)
		tui.PrintSuccess("Active provider set to Google Gemini.")
		fmt.Println()
		return true

	case 1:
		key := SetupOpenRouter(envPath, env, promptFn)
		if key == "" {
			return false
		}
		env.Set("OPENROUTER_API_KEY", key)
		activate(reg, registry.OpenRouter)
		fmt.Println()
		tui.PrintSuccess("OPENROUTER_API_KEY saved to " + envPath)
		tui.PrintSuccess("Active provider set to OpenRouter.")
		fmt.Println()
		return true

	case 2:
		SetupOllama()
		activate(reg, registry.Ollama)
		host := env.Get("OLLAMA_HOST")
		if host == "" {
			host = "http://localhost:11434"
		}
		if providers.OllamaReachable(host) {
			tui.PrintSuccess(fmt.Sprintf("Ollama detected at %s. Active provider set to Ollama.", host))
			fmt.Println()
			return true
		}
		tui.PrintInfo("Ollama is not reachable yet. Start it, then run /setup again.")
		fmt.Println()
		return false

	default:
		fmt.Println()
		tui.PrintInfo(fmt.Sprintf("Skipped. Edit %s and run /setup anytime to retry.", envPath))
		fmt.Println()
		return false
	}
}

func activate(reg *registry.Registry, provider string) {
	if _, err := reg.Activate(provider); err != nil {
		log.Warn().Err(err).Str("provider", provider).Msg("could not set active provider")
		tui.PrintInfo(fmt.Sprintf("Warning: could not set active provider: %v", err))
	}
}
