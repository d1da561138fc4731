package tui

import "fmt"

// =============================================================================
// PRINT FUNCTIONS
// =============================================================================

// PrintSuccess prints a success message in green.
func PrintSuccess(msg string) {
	fmt.Printf("   %s%s%s\n", ColorGreen, msg, ColorReset)
}

// PrintInfo prints an informational message in light blue.
func PrintInfo(msg string) {
	fmt.Printf("   %s%s%s\n", ColorLightBlue, msg, ColorReset)
}

// PrintDim prints a low-emphasis message.
func PrintDim(msg string) {
	fmt.Printf("   %s%s%s\n", ColorDim, msg, ColorReset)
}

// PrintError prints an error message in red.
func PrintError(msg string) {
	fmt.Printf("   %s%s%s\n", ColorRed, msg, ColorReset)
}

// PrintResponse prints a model reply in the reply colour with surrounding
// spacing.
func PrintResponse(text string) {
	if text == "" {
		return
	}
	fmt.Printf("   %s%s%s\n\n", ColorLightBlue, text, ColorReset)
}

// Clear clears the terminal screen and homes the cursor.
func Clear() {
	fmt.Print("\033[2J\033[H")
}
