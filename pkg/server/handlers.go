package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/trackgen/pkg/errors"
	"github.com/matzehuels/trackgen/pkg/pipeline"
	"github.com/matzehuels/trackgen/pkg/render"
	"github.com/matzehuels/trackgen/pkg/run"
	"github.com/matzehuels/trackgen/pkg/track"
)

var contentTypes = map[string]string{
	render.FormatSVG: "image/svg+xml",
	render.FormatPNG: "image/png",
	render.FormatPDF: "application/pdf",
}

// GenerateResponse is the body of a successful POST /v1/generate.
type GenerateResponse struct {
	Run    *run.Run `json:"run"`
	Cached bool     `json:"cached"`
}

// ListResponse is the body of GET /v1/runs.
type ListResponse struct {
	Runs []run.Summary `json:"runs"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	// Decode over the defaults so partial configs keep every unset field.
	cfg := track.DefaultConfig()
	opts := pipeline.Options{Config: &cfg}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}

	rn, hit, err := s.runner.GenerateWithCacheInfo(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	status := http.StatusCreated
	if hit {
		status = http.StatusOK
	}
	writeJSON(w, status, GenerateResponse{Run: rn, Cached: hit})
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "limit must be a non-negative integer"))
			return
		}
		limit = n
	}
	runs, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ListResponse{Runs: runs})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	rn, err := s.lookup(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rn)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := render.ValidateFormat(format); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "preview format %q", format))
		return
	}
	rn, err := s.lookup(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	opts := pipeline.Options{Formats: []string{format}}
	q := r.URL.Query()
	if v := q.Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil || scale <= 0 {
			s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "scale must be a positive number"))
			return
		}
		opts.Scale = scale
	}
	opts.ShowMargins, _ = strconv.ParseBool(q.Get("margins"))

	artifacts, err := s.runner.Render(r.Context(), rn, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	w.Write(artifacts[format])
}

func (s *Server) lookup(r *http.Request) (*run.Run, error) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateRunID(id); err != nil {
		return nil, err
	}
	return s.store.Get(r.Context(), id)
}

// =============================================================================
// Responses
// =============================================================================

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// StatusFor maps an error to an HTTP status code.
func StatusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidPath, errors.ErrCodeInvalidRunID:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound, errors.ErrCodeRunNotFound:
		return http.StatusNotFound
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	case errors.ErrCodeStorage:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
		msg = "internal error"
	}
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: strings.TrimSpace(msg)}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
