package pattern

import (
	"bytes"
	"fmt"
	"html"
)

// baseColors fills a dot by the first base it prints.
var baseColors = map[byte]string{
	'A': "#4caf50",
	'C': "#2196f3",
	'G': "#ffb300",
	'T': "#e53935",
	'0': "#d0d0d0",
}

const unknownBaseColor = "#9e9e9e"

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	cell   float64
	labels bool
	title  string
}

// WithCellSize sets the pitch of one grid cell in pixels (default 12).
func WithCellSize(px float64) SVGOption { return func(r *svgRenderer) { r.cell = px } }

// WithLabels writes each cell's text inside its dot.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// WithTitle sets the document title.
func WithTitle(s string) SVGOption { return func(r *svgRenderer) { r.title = s } }

// RenderSVG draws every print position as a dot coloured by its first base.
// Non-print cells are left empty, so the DPI150_PLUS diagonal is visible.
func RenderSVG(p *Pattern, opts ...SVGOption) []byte {
	r := svgRenderer{cell: 12}
	for _, opt := range opts {
		opt(&r)
	}
	if r.cell <= 0 {
		r.cell = 12
	}

	width := float64(p.Width()) * r.cell
	height := float64(p.Height()) * r.cell
	radius := r.cell * 0.4

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", html.EscapeString(r.title))
	}
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="#ffffff"/>`+"\n")

	for i, row := range p.Cells {
		for j, c := range row {
			if !c.Valid {
				continue
			}
			cx := (float64(j) + 0.5) * r.cell
			cy := (float64(i) + 0.5) * r.cell
			fmt.Fprintf(&buf, `  <circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" data-pos="%d"/>`+"\n",
				cx, cy, radius, dotColor(c.Text), c.Pos)
			if r.labels && c.Text != "" {
				fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" font-size="%.1f" text-anchor="middle" dominant-baseline="central" font-family="monospace">%s</text>`+"\n",
					cx, cy, r.cell*0.5, html.EscapeString(c.Text))
			}
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func dotColor(text string) string {
	if text == "" {
		return unknownBaseColor
	}
	b := text[0]
	if b >= 'a' && b <= 'z' {
		b -= 'a' - 'A'
	}
	if c, ok := baseColors[b]; ok {
		return c
	}
	return unknownBaseColor
}
