package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/splotbio/splot/pkg/observability"
	"github.com/splotbio/splot/pkg/pattern"
)

// Pattern builds the physical grid view of seqs and renders it in
// opts.PatternFormat.
func (r *Runner) Pattern(ctx context.Context, seqs []string, opts Options) (*pattern.Pattern, []byte, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, nil, err
	}

	start := time.Now()
	observability.Pipeline().OnPatternStart(ctx, opts.PatternFormat)

	p, err := pattern.Build(seqs, opts.Rows, opts.Cols, opts.DensityModel(), opts.PatternRange)
	var data []byte
	if err == nil {
		data, err = RenderPattern(p, opts.PatternFormat)
	}

	observability.Pipeline().OnPatternComplete(ctx, opts.PatternFormat, len(data), time.Since(start), err)
	if err != nil {
		return nil, nil, err
	}
	return p, data, nil
}

// RenderPattern renders p in the given format.
func RenderPattern(p *pattern.Pattern, format string) ([]byte, error) {
	switch format {
	case FormatText, "":
		return pattern.RenderText(p), nil
	case FormatJSON:
		return pattern.RenderJSON(p)
	case FormatSVG:
		return pattern.RenderSVG(p, pattern.WithTitle(fmt.Sprintf("%s %dx%d", p.Density, p.Rows, p.Cols))), nil
	default:
		return nil, fmt.Errorf("unsupported pattern format: %s", format)
	}
}
