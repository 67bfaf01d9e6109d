package pattern

import "encoding/json"

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	compact bool
	linear  bool
}

// WithJSONCompact disables indentation.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

// WithJSONLinear adds the cell texts in linear-index order alongside the grid.
func WithJSONLinear() JSONOption { return func(r *jsonRenderer) { r.linear = true } }

type jsonOutput struct {
	*Pattern
	Height int      `json:"height"`
	Width  int      `json:"width"`
	Linear []string `json:"linear,omitempty"`
}

// RenderJSON encodes the pattern with its grid dimensions.
func RenderJSON(p *Pattern, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{Pattern: p, Height: p.Height(), Width: p.Width()}
	if r.linear {
		out.Linear = p.Linear()
	}
	if r.compact {
		return json.Marshal(out)
	}
	return json.MarshalIndent(out, "", "  ")
}
