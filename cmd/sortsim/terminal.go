package main

import (
	"os"

	"golang.org/x/term"
)

const defaultTerminalWidth = 80

// terminalWidth reports the width of stdout, or 80 when it is not a
// terminal.
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultTerminalWidth
	}
	return width
}
