package utils

import (
	"io"
	"os"

	"golang.org/x/term"
)

// Returns true if the writer is a terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Returns terminal width and height, with fallback defaults
func TerminalSize(w io.Writer) (width, height int) {
	if f, ok := w.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 && height > 0 {
			return width, height
		}
	}

	return 80, 24
}
