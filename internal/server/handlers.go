package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/matzehuels/graphdraw/pkg/buildinfo"
	"github.com/matzehuels/graphdraw/pkg/errors"
	"github.com/matzehuels/graphdraw/pkg/observability"
	"github.com/matzehuels/graphdraw/pkg/pipeline"
)

// contentTypes lists the formats served by /v1/layout.
var contentTypes = map[string]string{
	pipeline.FormatJSON: "application/json",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
}

// maxRepeats bounds the warm restarts a single request may ask for.
const maxRepeats = 100

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, format, err := layoutOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Logger = s.logger

	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	res, err := s.runner.Execute(r.Context(), body, "request", opts)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			err = errors.Wrap(errors.ErrCodeInvalidInput, err, "request body exceeds %d bytes", s.cfg.MaxBodyBytes)
		}
		s.writeError(w, r, err)
		return
	}

	cacheState := "miss"
	if res.CacheInfo.LayoutHit {
		cacheState = "hit"
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Layout-Cache", cacheState)
	w.Header().Set("X-Layout-Seed", strconv.FormatUint(res.Layout.Seed, 10))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

// layoutOptions parses the query of a layout request.
func layoutOptions(r *http.Request) (pipeline.Options, string, error) {
	q := r.URL.Query()
	var opts pipeline.Options
	var err error

	if opts.Directed, err = boolParam(q.Get("directed"), "directed"); err != nil {
		return opts, "", err
	}
	if opts.Multiplier, err = boolParam(q.Get("multiplier"), "multiplier"); err != nil {
		return opts, "", err
	}
	if opts.ShowNodeLabels, err = boolParam(q.Get("nodes"), "nodes"); err != nil {
		return opts, "", err
	}
	if opts.ShowEdgeWeights, err = boolParam(q.Get("weights"), "weights"); err != nil {
		return opts, "", err
	}
	if v := q.Get("repeats"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, "", errors.New(errors.ErrCodeInvalidOption, "repeats must be an integer, got %q", v)
		}
		if n > maxRepeats {
			return opts, "", errors.New(errors.ErrCodeInvalidOption, "too many repeats (max %d)", maxRepeats)
		}
		opts.ExtraRepeats = n
	}
	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return opts, "", errors.New(errors.ErrCodeInvalidOption, "seed must be a non-negative integer, got %q", v)
		}
		opts.Seed = seed
	}

	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatJSON
	}
	if _, ok := contentTypes[format]; !ok {
		return opts, "", errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (want json, svg or dot)", format)
	}
	opts.Formats = []string{format}
	return opts, format, nil
}

func boolParam(v, name string) (bool, error) {
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.New(errors.ErrCodeInvalidOption, "%s must be a boolean, got %q", name, v)
	}
	return b, nil
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	resp := ErrorResponse{Code: string(errors.GetCode(err)), Line: errors.GetLine(err)}
	status := http.StatusInternalServerError
	switch {
	case errors.IsInputError(err):
		status = http.StatusBadRequest
		resp.Message = errors.UserMessage(err)
	case stderrors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
		resp.Code = string(errors.ErrCodeTimeout)
		resp.Message = "layout timed out"
	default:
		resp.Message = "internal error"
	}
	if status != http.StatusBadRequest {
		observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
		s.logger.Error("layout request failed", "err", err)
	}
	if resp.Code == "" {
		resp.Code = string(errors.ErrCodeInternal)
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
