// Package assets embeds the default word list so the solver runs without any
// word file configured.
package assets

import (
	"embed"
	"io"
)

//go:embed words.txt
var FS embed.FS

// DefaultListName is the embedded file holding the default word list.
const DefaultListName = "words.txt"

// OpenDefault opens the embedded default word list.
func OpenDefault() (io.ReadCloser, error) {
	return FS.Open(DefaultListName)
}
