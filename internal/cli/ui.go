package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/splotbio/splot/pkg/pipeline"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleKey = lipgloss.NewStyle().Foreground(colorGray).Width(14)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

// printer writes styled status lines. The zero value writes to stdout.
type printer struct {
	w io.Writer
}

func (p printer) out() io.Writer {
	if p.w == nil {
		return os.Stdout
	}
	return p.w
}

func (p printer) line(s string) {
	fmt.Fprintln(p.out(), s)
}

// success prints a success message.
func (p printer) success(format string, args ...any) {
	p.line(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

// error prints an error message.
func (p printer) error(format string, args ...any) {
	p.line(styleIconError.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

// warning prints a warning message.
func (p printer) warning(format string, args ...any) {
	p.line(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// info prints an info/status message.
func (p printer) info(format string, args ...any) {
	p.line(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// detail prints an indented detail line.
func (p printer) detail(format string, args ...any) {
	p.line("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// file prints a file output line.
func (p printer) file(path string) {
	p.line("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// keyValue prints a labeled value.
func (p printer) keyValue(key, value string) {
	p.line(styleKey.Render(key) + " " + StyleValue.Render(value))
}

// title prints a heading.
func (p printer) title(s string) {
	p.line(StyleTitle.Render(s))
}

// newline prints an empty line.
func (p printer) newline() {
	p.line("")
}

// =============================================================================
// Stats Display
// =============================================================================

// runStats prints the statistics of a pipeline run on a single line, with
// the per-partition pools below it when verbose is set.
func (p printer) runStats(st pipeline.Stats, verbose bool) {
	parts := []string{
		StyleNumber.Render(fmt.Sprint(st.SourceSequences)) + " sources",
		StyleNumber.Render(fmt.Sprint(st.Partitions)) + " partitions",
		StyleNumber.Render(fmt.Sprint(st.Generated)) + " generated",
	}
	if st.Dummies > 0 {
		parts = append(parts, StyleNumber.Render(fmt.Sprint(st.Dummies))+" dummies")
	}
	if st.Defects > 0 {
		parts = append(parts, fmt.Sprintf("%s defects masking %s positions",
			StyleNumber.Render(fmt.Sprint(st.Defects)),
			StyleNumber.Render(fmt.Sprint(st.MaskedPositions))))
	}
	p.line("  " + strings.Join(parts, StyleDim.Render(" · ")))

	if !verbose {
		return
	}
	for _, ps := range st.Pools {
		p.detail("%-12s %d sources, %d real, %d dummies", ps.Label, ps.Sources, ps.Real, ps.Dummies)
	}
}
