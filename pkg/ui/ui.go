// Package ui renders command results in different formats.
// It supports terminal (rich), text (plain), and JSON output formats.
package ui

import (
	"io"

	"github.com/arthur-debert/dotman/pkg/errors"
	"github.com/arthur-debert/dotman/pkg/types"
	"github.com/arthur-debert/dotman/pkg/ui/json"
	"github.com/arthur-debert/dotman/pkg/ui/terminal"
	"github.com/arthur-debert/dotman/pkg/ui/text"
)

// Renderer is the common interface for all output renderers.
type Renderer interface {
	// Notices returns the writer the reconciler streams its per-mapping
	// lines to while it runs
	Notices() io.Writer

	// RenderReport renders the outcome of a finished command
	RenderReport(report types.Report) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage prints a standalone message, such as the output of
	// gen-config
	RenderMessage(msg string) error
}

// NewRenderer creates a new renderer based on the specified format.
// FormatAuto is resolved with ResolveFormat first.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		return NewRenderer(ResolveFormat(format, ColorAuto, output), output)
	case FormatTerminal:
		return terminal.New(output)
	case FormatText:
		return text.New(output)
	case FormatJSON:
		return json.New(output)
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown output format %v", format)
	}
}
