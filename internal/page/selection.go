package page

import (
	"strings"

	"github.com/atotto/clipboard"
)

// ReadSelection returns the current selection, trimmed. The terminal
// rendition reads the system clipboard, which is where a selection ends
// up outside a browser page. An empty clipboard is an empty selection,
// not an error.
func ReadSelection() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
