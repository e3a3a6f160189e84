// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/dotman/pkg/types"
	"github.com/arthur-debert/dotman/pkg/ui/output/styles"
)

// linePrefixes maps the start of a reconciler notice to the style it gets
var linePrefixes = []struct {
	prefix string
	style  string
}{
	{"Link: ", "Success"},
	{"Unlink: ", "Warning"},
	{"Skipping ", "Muted"},
	{"Source file ", "Muted"},
}

// Renderer provides rich terminal output using the style registry
type Renderer struct {
	output  io.Writer
	notices *lineStyler
}

// New creates a new terminal renderer
func New(w io.Writer) (*Renderer, error) {
	return &Renderer{
		output:  w,
		notices: &lineStyler{out: w},
	}, nil
}

// Notices returns a writer that colors each complete line by its prefix
func (r *Renderer) Notices() io.Writer {
	return r.notices
}

// RenderReport prints a one-line summary below the streamed notices.
// List reports get none, since mappings that are not installed print
// nothing. A dry run is summarized with the wording of a real run.
func (r *Renderer) RenderReport(report types.Report) error {
	if report.Command == "list" {
		return nil
	}

	var labels []types.LinkStatus
	counts := make(map[types.LinkStatus]int)
	for _, sc := range report.Summary() {
		label := summaryLabel(sc.Status)
		if _, seen := counts[label]; !seen {
			labels = append(labels, label)
		}
		counts[label] += sc.Count
	}
	if len(labels) == 0 {
		return nil
	}

	parts := make([]string, 0, len(labels))
	for _, label := range labels {
		parts = append(parts, fmt.Sprintf("%d %s", counts[label], label))
	}
	_, err := fmt.Fprintln(r.output, styles.Render("Muted", strings.Join(parts, ", ")))
	return err
}

func summaryLabel(status types.LinkStatus) types.LinkStatus {
	if status == types.StatusWouldLink {
		return types.StatusLinked
	}
	return status
}

// RenderError renders an error with a styled prefix
func (r *Renderer) RenderError(err error) error {
	_, err2 := fmt.Fprintf(r.output, "%s %v\n", styles.Render("Error", "error:"), err)
	return err2
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

// lineStyler buffers writes and styles each complete line
type lineStyler struct {
	out     io.Writer
	pending []byte
}

func (l *lineStyler) Write(p []byte) (int, error) {
	l.pending = append(l.pending, p...)
	for {
		i := bytes.IndexByte(l.pending, '\n')
		if i < 0 {
			break
		}
		line := string(l.pending[:i])
		l.pending = l.pending[i+1:]
		if _, err := fmt.Fprintln(l.out, styleLine(line)); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

func styleLine(line string) string {
	for _, lp := range linePrefixes {
		if strings.HasPrefix(line, lp.prefix) {
			return styles.Render(lp.style, line)
		}
	}
	if strings.HasSuffix(line, "Skipping.") {
		return styles.Render("Muted", line)
	}
	return line
}
