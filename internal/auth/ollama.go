package auth

import (
	"fmt"

	"jarvis/internal/tui"
)

// SetupOllama prints Ollama setup instructions. There is no key to collect
// and nothing is written to the env file.
func SetupOllama() {
	fmt.Println()
	fmt.Printf("   %s► %sOllama Setup%s\n", tui.ColorCyan, tui.ColorBoldWhite, tui.ColorReset)
	tui.PrintDim("Runs entirely on your machine -- no API key required.")
	fmt.Println()
	tui.PrintInfo("1. Install Ollama:")
	fmt.Printf("   %s   https://ollama.com/download%s\n", tui.ColorCyan, tui.ColorReset)
	fmt.Println()
	tui.PrintInfo("2. Pull a model (llama3.2 is a good starting point):")
	tui.PrintInfo("   ollama pull llama3.2")
	fmt.Println()
	tui.PrintInfo("3. Start Ollama and continue here -- no restart required.")
	fmt.Println()
	tui.PrintDim("(No changes to the env file required)")
	fmt.Println()
}
