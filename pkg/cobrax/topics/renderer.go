package topics

import (
	"os"

	"github.com/charmbracelet/glamour"
)

// Style names understood by GlamourRenderer besides a path to a JSON style
const (
	StyleAuto  = "auto"
	StylePlain = "notty"
)

// Renderer turns the raw content of a topic file into terminal output.
// ext is the file extension of the topic, including the dot.
type Renderer interface {
	Render(content, ext string) (string, error)
}

// PlainRenderer prints topics as they are written
type PlainRenderer struct{}

func (PlainRenderer) Render(content, ext string) (string, error) {
	return content, nil
}

// GlamourRenderer renders markdown topics with glamour. Other extensions
// pass through untouched.
type GlamourRenderer struct {
	Style string
	Width int
}

// NewGlamourRenderer picks the style from the terminal background and wraps
// at glamour's default width
func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{Style: StyleAuto}
}

func (r *GlamourRenderer) Render(content, ext string) (string, error) {
	if ext != ".md" {
		return content, nil
	}

	style := r.Style
	if os.Getenv("NO_COLOR") != "" {
		style = StylePlain
	}

	var options []glamour.TermRendererOption
	if style == "" || style == StyleAuto {
		options = append(options, glamour.WithAutoStyle())
	} else {
		options = append(options, glamour.WithStylePath(style))
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	tr, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return "", err
	}
	return tr.Render(content)
}
