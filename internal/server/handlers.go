package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/splotbio/splot/pkg/density"
	"github.com/splotbio/splot/pkg/errors"
	"github.com/splotbio/splot/pkg/observability"
	"github.com/splotbio/splot/pkg/pipeline"
	"github.com/splotbio/splot/pkg/pool"
	"github.com/splotbio/splot/pkg/sequence"
)

// LayoutRequest is the body of POST /v1/layout.
type LayoutRequest struct {
	Sequences []sequence.Sequence `json:"sequences"`
	Mask      []string            `json:"mask"`
	Defects   []int               `json:"defects,omitempty"`
	Options   pipeline.Options    `json:"options"`
}

// LayoutResponse is the body of a successful layout.
type LayoutResponse struct {
	RequestID   string         `json:"request_id"`
	Density     string         `json:"density"`
	MaskLength  int            `json:"mask_length"`
	Sequences   []string       `json:"sequences"`
	MaskedFlags []string       `json:"masked_flags"`
	ValidCounts map[string]int `json:"valid_counts"`
	Pattern     string         `json:"pattern,omitempty"`
	Stats       StatsResponse  `json:"stats"`
}

// StatsResponse summarises a run.
type StatsResponse struct {
	SourceSequences int               `json:"source_sequences"`
	Partitions      int               `json:"partitions"`
	Defects         int               `json:"defects"`
	Positions       int               `json:"positions"`
	MaskedPositions int               `json:"masked_positions"`
	Dummies         int               `json:"dummies"`
	Pools           []pool.LabelStats `json:"pools"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	RequestID string    `json:"request_id"`
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Problems  []Problem `json:"problems,omitempty"`
}

// Problem is one validation failure.
type Problem struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DensityInfo describes one supported density.
type DensityInfo struct {
	Name    string `json:"name"`
	Suffix  string `json:"suffix"`
	Divisor string `json:"divisor"`
	Grid    string `json:"grid"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDensities(w http.ResponseWriter, r *http.Request) {
	info := []DensityInfo{
		{Name: density.DPI150.Name(), Suffix: density.DPI150.Suffix(), Divisor: "rows", Grid: "rows x cols"},
		{Name: density.DPI150Plus.Name(), Suffix: density.DPI150Plus.Suffix(), Divisor: "2*rows-1", Grid: "(2*rows-1) x (2*cols-1)"},
		{Name: density.DPI300.Name(), Suffix: density.DPI300.Suffix(), Divisor: "2*rows", Grid: "2*rows x 2*cols"},
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LayoutRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, r, errors.Wrap(errors.ErrCodeTooLarge, err, "request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidFormat, err, "malformed request body"))
		return
	}

	set := sequence.NewSet()
	for _, seq := range req.Sequences {
		if err := errors.ValidatePartitionLabel(seq.Label); err != nil {
			s.writeError(w, r, err)
			return
		}
		set.Add(seq)
	}

	opts := req.Options
	opts.Logger = s.logger.With("request_id", RequestIDFromContext(ctx))
	if err := opts.ValidateAndSetDefaults(); err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.Execute(ctx, pipeline.Input{Sequences: set, Mask: req.Mask, Defects: req.Defects}, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, LayoutResponse{
		RequestID:   RequestIDFromContext(ctx),
		Density:     opts.Density,
		MaskLength:  res.MaskLength,
		Sequences:   res.Sequences,
		MaskedFlags: res.MaskedFlags,
		ValidCounts: res.ValidCounts,
		Pattern:     string(res.PatternData),
		Stats: StatsResponse{
			SourceSequences: res.Stats.SourceSequences,
			Partitions:      res.Stats.Partitions,
			Defects:         res.Stats.Defects,
			Positions:       res.Stats.Positions,
			MaskedPositions: res.Stats.MaskedPositions,
			Dummies:         res.Stats.Dummies,
			Pools:           res.Stats.Pools,
		},
	})
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	id := RequestIDFromContext(ctx)
	observability.HTTP().OnError(ctx, id, r.Method, r.URL.Path, err)

	code := errors.GetCode(err)
	if code == "" && stderrors.Is(err, context.DeadlineExceeded) {
		err = errors.Wrap(errors.ErrCodeTimeout, err, "request timed out")
		code = errors.ErrCodeTimeout
	}
	if code == "" {
		code = errors.ErrCodeInternal
	}
	body := ErrorResponse{RequestID: id, Code: string(code), Message: errors.UserMessage(err)}
	if code == errors.ErrCodeValidation {
		body.Message = "layout validation failed"
		for _, p := range errors.Problems(err) {
			body.Problems = append(body.Problems, Problem{Code: string(errors.GetCode(p)), Message: p.Error()})
		}
	}
	writeJSON(w, statusFor(code), body)
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeValidation:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidRange,
		errors.ErrCodeInvalidDefect, errors.ErrCodeInvalidSequence, errors.ErrCodeUnsupportedDensity:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeTooLarge:
		return http.StatusRequestEntityTooLarge
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
