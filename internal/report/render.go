package report

import (
	"sync"

	"github.com/charmbracelet/glamour"
)

const defaultWidth = 80

var rendererCache sync.Map // map[int]*glamour.TermRenderer

// getRenderer returns a cached renderer for the given width
func getRenderer(width int) (*glamour.TermRenderer, error) {
	if cached, ok := rendererCache.Load(width); ok {
		return cached.(*glamour.TermRenderer), nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}

	rendererCache.Store(width, renderer)
	return renderer, nil
}

// Render formats markdown for the terminal. On any renderer failure the raw
// markdown is returned together with the error.
func Render(markdown string, width int) (string, error) {
	if width <= 0 {
		width = defaultWidth
	}
	renderer, err := getRenderer(width)
	if err != nil {
		return markdown, err
	}
	out, err := renderer.Render(markdown)
	if err != nil {
		return markdown, err
	}
	return out, nil
}
