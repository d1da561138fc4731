package tui

import (
	"fmt"
	"os"
)

// PrintHome renders the home screen with the active provider label.
func PrintHome(providerLabel string) {
	cwd, _ := os.Getwd()

	Clear()
	fmt.Printf("%s   ┌─────┐%s  %sJarvis%s\n", ColorCyan, ColorReset, ColorBoldWhite, ColorReset)
	fmt.Printf("%s   │ J.V │%s  %s%s%s\n", ColorCyan, ColorReset, ColorLightBlue, Version, ColorReset)
	fmt.Printf("%s   │ ═ ═ │%s  %sProvider: %s%s\n", ColorCyan, ColorReset, ColorLightBlue, providerLabel, ColorReset)
	fmt.Printf("%s   │     │%s  %s%s%s\n", ColorCyan, ColorReset, ColorLightBlue, cwd, ColorReset)
	fmt.Printf("%s   └─────┘%s  %sType /help to see available commands%s\n", ColorCyan, ColorReset, ColorCyan, ColorReset)
	fmt.Println()
	fmt.Printf("   %sOr describe what you want in plain English.%s\n", ColorLightBlue, ColorReset)
	fmt.Println()
}

// PrintHelp prints the slash-command reference.
func PrintHelp() {
	fmt.Println()
	fmt.Printf("   %sCommands:%s\n", ColorCyan, ColorReset)
	fmt.Printf("   %s/tools%s               list all AI coding tools\n", ColorCyan, ColorReset)
	fmt.Printf("   %s/install <tool>%s      install a tool\n", ColorCyan, ColorReset)
	fmt.Printf("   %s/status%s              tool health dashboard\n", ColorCyan, ColorReset)
	fmt.Printf("   %s/auth [tool]%s         authentication help\n", ColorCyan, ColorReset)
	fmt.Printf("   %s/setup%s               interactive provider setup wizard\n", ColorCyan, ColorReset)
	fmt.Printf("   %s/logout [provider]%s   clear saved provider credentials\n", ColorCyan, ColorReset)
	fmt.Printf("   %s/config%s              show current config\n", ColorCyan, ColorReset)
	fmt.Printf("   %s/update [tool]%s       update one or all tools\n", ColorCyan, ColorReset)
	fmt.Printf("   %s/help%s                show this help\n", ColorCyan, ColorReset)
	fmt.Printf("   %s/exit%s                exit\n", ColorCyan, ColorReset)
	fmt.Println()
	fmt.Printf("   %sArrow keys for history  |  plain English also works%s\n", ColorLightBlue, ColorReset)
	fmt.Println()
	fmt.Printf("   %sExamples:%s\n", ColorBoldWhite, ColorReset)
	fmt.Printf("   %swhich tools are installed?%s\n", ColorLightBlue, ColorReset)
	fmt.Printf("   %slaunch claude%s\n", ColorLightBlue, ColorReset)
	fmt.Printf("   %show do I set up auth for gemini?%s\n", ColorLightBlue, ColorReset)
	fmt.Println()
}

// PrintAuthGuide prints the provider setup guide. failedLabel, when non-empty,
// names the provider whose key was just rejected.
func PrintAuthGuide(failedLabel, envPath string) {
	if failedLabel != "" {
		fmt.Printf("\n   %s[auth failed]%s %s%s rejected the API key.%s\n", ColorCyan, ColorReset, ColorLightBlue, failedLabel, ColorReset)
	}
	fmt.Println()
	fmt.Printf("   %sChoose a provider and add it to:%s %s%s%s\n", ColorBoldWhite, ColorReset, ColorLightBlue, envPath, ColorReset)
	fmt.Println()
	fmt.Printf("   %s►%s %sOption 1: Google Gemini%s  %s(recommended, free tier available)%s\n", ColorCyan, ColorReset, ColorBoldWhite, ColorReset, ColorDim, ColorReset)
	fmt.Printf("   %s    GOOGLE_API_KEY=your-key-here%s\n", ColorLightBlue, ColorReset)
	fmt.Printf("   %s    https://aistudio.google.com/app/apikey%s\n", ColorDim, ColorReset)
	fmt.Println()
	fmt.Printf("   %s►%s %sOption 2: OpenRouter%s  %s(100+ cloud models)%s\n", ColorCyan, ColorReset, ColorBoldWhite, ColorReset, ColorDim, ColorReset)
	fmt.Printf("   %s    OPENROUTER_API_KEY=your-key-here%s\n", ColorLightBlue, ColorReset)
	fmt.Printf("   %s    https://openrouter.ai/keys%s\n", ColorDim, ColorReset)
	fmt.Println()
	fmt.Printf("   %s►%s %sOption 3: Ollama%s  %s(local, no API key required)%s\n", ColorCyan, ColorReset, ColorBoldWhite, ColorReset, ColorDim, ColorReset)
	fmt.Printf("   %s    Install: https://ollama.com/download%s\n", ColorDim, ColorReset)
	fmt.Printf("   %s    Then:    ollama pull llama3.2%s\n", ColorDim, ColorReset)
	fmt.Println()
	fmt.Printf("   %sRun /setup now (no restart needed), or edit %s manually.%s\n\n", ColorLightBlue, envPath, ColorReset)
}
