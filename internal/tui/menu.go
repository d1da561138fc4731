package tui

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// =============================================================================
// MENU SELECTION
// =============================================================================

// MenuItem represents an item in a selection menu.
type MenuItem struct {
	Label       string
	Description string
}

// ErrMenuCancelled is returned when the user dismisses a menu without
// choosing.
var ErrMenuCancelled = fmt.Errorf("cancelled")

// SelectMenu displays an interactive arrow-key menu and returns the selected
// index. Falls back to a numbered prompt when stdin is not a terminal or raw
// mode is unavailable.
func SelectMenu(prompt string, items []MenuItem) (int, error) {
	if len(items) == 0 {
		return -1, fmt.Errorf("no items to select")
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return selectNumberedMenu(prompt, items)
	}

	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return selectNumberedMenu(prompt, items)
	}
	defer term.Restore(int(os.Stdin.Fd()), oldState)

	selected := 0
	reader := bufio.NewReader(os.Stdin)
	totalLines := 2 + len(items) + 2

	fmt.Print("\033[?25l")
	defer fmt.Print("\033[?25h")

	first := true
	render := func() {
		if !first {
			fmt.Printf("\033[%dA", totalLines)
		}
		first = false

		fmt.Printf("\033[2K\r\n   %s%s%s\n", ColorBoldWhite, prompt, ColorReset)
		for i, item := range items {
			fmt.Print("\033[2K")
			marker := " "
			style := ""
			if i == selected {
				marker = ColorCyan + "❯" + ColorReset
				style = ColorBold
			}
			fmt.Printf("\r   %s %s%s%s", marker, style, item.Label, ColorReset)
			if item.Description != "" {
				fmt.Printf("  %s%s%s", ColorDim, item.Description, ColorReset)
			}
			fmt.Print("\n")
		}
		fmt.Printf("\033[2K\r\n   %s[↑/↓] navigate  [Enter] select  [q/Esc] cancel%s\n", ColorDim, ColorReset)
	}

	clearMenu := func() {
		fmt.Printf("\033[%dA", totalLines)
		for i := 0; i < totalLines; i++ {
			fmt.Print("\033[2K\n")
		}
		fmt.Printf("\033[%dA", totalLines)
	}

	render()
	for {
		b, err := reader.ReadByte()
		if err != nil {
			return -1, err
		}

		switch b {
		case 27: // escape or arrow sequence
			next, _ := reader.ReadByte()
			if next == '[' {
				arrow, _ := reader.ReadByte()
				switch arrow {
				case 'A':
					if selected > 0 {
						selected--
					}
					render()
				case 'B':
					if selected < len(items)-1 {
						selected++
					}
					render()
				}
				continue
			}
			clearMenu()
			return -1, ErrMenuCancelled
		case 'q':
			clearMenu()
			return -1, ErrMenuCancelled
		case 'k':
			if selected > 0 {
				selected--
			}
			render()
		case 'j':
			if selected < len(items)-1 {
				selected++
			}
			render()
		case '\r', '\n':
			clearMenu()
			return selected, nil
		}
	}
}

// selectNumberedMenu is the fallback for non-interactive terminals.
func selectNumberedMenu(prompt string, items []MenuItem) (int, error) {
	fmt.Printf("\n   %s%s%s\n\n", ColorBoldWhite, prompt, ColorReset)
	for i, item := range items {
		fmt.Printf("   %s[%d]%s %s", ColorCyan, i+1, ColorReset, item.Label)
		if item.Description != "" {
			fmt.Printf("  %s%s%s", ColorDim, item.Description, ColorReset)
		}
		fmt.Println()
	}
	fmt.Printf("   %s[0]%s Cancel\n\n", ColorDim, ColorReset)

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("   Enter number: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return -1, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil || n < 0 || n > len(items) {
			fmt.Printf("   %sEnter a number between 0 and %d.%s\n", ColorDim, len(items), ColorReset)
			continue
		}
		if n == 0 {
			return -1, ErrMenuCancelled
		}
		return n - 1, nil
	}
}
