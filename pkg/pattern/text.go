package pattern

import (
	"bytes"
	"strings"
)

// TextOption configures text rendering.
type TextOption func(*textRenderer)

type textRenderer struct {
	padding int
}

// WithPadding sets the number of spaces reserved to the left of every cell
// (default 1).
func WithPadding(n int) TextOption {
	return func(r *textRenderer) { r.padding = max(0, n) }
}

// RenderText renders the pattern as fixed-width text: one line per grid row,
// every cell right-aligned in a field of range length plus padding. Non-print
// cells are blank. Lines are separated by '\n' with no trailing newline.
func RenderText(p *Pattern, opts ...TextOption) []byte {
	r := textRenderer{padding: 1}
	for _, opt := range opts {
		opt(&r)
	}
	width := p.Range.Len() + r.padding

	var buf bytes.Buffer
	for i, row := range p.Cells {
		if i > 0 {
			buf.WriteByte('\n')
		}
		for _, c := range row {
			buf.WriteString(fitRight(c.Text, width))
		}
	}
	return buf.Bytes()
}

func fitRight(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return strings.Repeat(" ", width-len(s)) + s
}
