package tui

// TUI package provides terminal rendering for the interactive shell:
//   - Jarvis colour theme
//   - Status print helpers
//   - Arrow-key menu selection
//   - Home / help / auth-guide screens
//   - Spinners for startup and model calls

// =============================================================================
// COLORS
// =============================================================================

const (
	ColorReset = "\033[0m"
	ColorBold  = "\033[1m"
	ColorDim   = "\033[2;38;2;120;140;160m"

	// Truecolor Jarvis theme.
	ColorCyan      = "\033[38;2;0;255;255m"
	ColorBoldWhite = "\033[1;38;2;255;255;255m"
	ColorLightBlue = "\033[38;2;200;230;255m"
	ColorGreen     = "\033[38;2;0;255;150m"
	ColorYellow    = "\033[1;33m"
	ColorRed       = "\033[38;2;255;100;100m"
)

// Version is shown on the home screen and in /config output.
const Version = "v0.1.0"
