package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/procmap/procmap/pkg/annotate"
	"github.com/procmap/procmap/pkg/errors"
	"github.com/procmap/procmap/pkg/graph"
	"github.com/procmap/procmap/pkg/layout"
	"github.com/procmap/procmap/pkg/pipeline"
	"github.com/procmap/procmap/pkg/safeurl"
)

// maxBodyBytes caps request bodies. The engine already caps node/edge/marker
// counts, but there is no reason to buffer an arbitrarily large payload
// before that happens.
const maxBodyBytes = 1 << 20 // 1 MiB

// layoutRequest is the POST /v1/layout payload.
type layoutRequest struct {
	Nodes   []graph.Node   `json:"nodes"`
	Edges   []graph.Edge   `json:"edges"`
	Options layout.Options `json:"options"`
	Refresh bool           `json:"refresh,omitempty"`
}

// layoutResponse is the POST /v1/layout result.
type layoutResponse struct {
	Hash   string            `json:"hash"`
	Layout layout.Positioned `json:"layout"`
	Stats  pipeline.Stats    `json:"stats"`
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := errors.ValidateDirection(string(req.Options.Direction)); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	opts := pipeline.Options{
		Limits:  s.cfg.Limits,
		Layout:  req.Options,
		Refresh: req.Refresh,
		Logger:  s.logger,
	}
	result, err := s.runner.Execute(r.Context(), graph.Graph{Nodes: req.Nodes, Edges: req.Edges}, opts)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if s.archive != nil {
		if err := s.archive.Save(r.Context(), result.GraphHash, result.Layout); err != nil {
			// Archive failures are not the client's problem.
			s.logger.Warn("archive save failed", "hash", result.GraphHash, "err", err)
		}
	}

	writeJSON(w, http.StatusOK, layoutResponse{
		Hash:   result.GraphHash,
		Layout: result.Layout,
		Stats:  result.Stats,
	})
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	hash := chi.URLParam(r, "hash")
	if err := errors.ValidateHash(hash); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if s.archive == nil {
		writeError(w, http.StatusNotFound, errors.New(errors.ErrCodeUnsupported, "layout archive is disabled"))
		return
	}

	p, err := s.archive.Get(r.Context(), hash)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, errors.ErrCodeLayoutNotFound) {
			status = http.StatusNotFound
		}
		writeError(w, status, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// annotateRequest is the POST /v1/annotate payload.
type annotateRequest struct {
	Message   string              `json:"message"`
	Citations []annotate.Citation `json:"citations"`
}

// annotateSegment is one output segment with the link target already passed
// through the URL safety gate.
type annotateSegment struct {
	annotate.Segment

	// Href is the safe link target for citation segments: the citation URL
	// when it is http(s), the "#" placeholder otherwise. Empty for text
	// segments.
	Href string `json:"href,omitempty"`
}

type annotateResponse struct {
	Segments []annotateSegment `json:"segments"`
}

func (s *Server) handleAnnotate(w http.ResponseWriter, r *http.Request) {
	var req annotateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	opts := pipeline.Options{MaxMarkers: s.cfg.MaxMarkers, Logger: s.logger}
	segments := s.runner.Annotate(req.Message, req.Citations, opts)

	out := make([]annotateSegment, len(segments))
	for i, seg := range segments {
		out[i] = annotateSegment{Segment: seg}
		if seg.Kind == annotate.SegmentCitation && seg.Citation != nil {
			out[i].Href = safeurl.Href(seg.Citation.URL)
		}
	}

	writeJSON(w, http.StatusOK, annotateResponse{Segments: out})
}

// decodeBody decodes a JSON request body, writing a 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return false
	}
	return true
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{
		Error: errors.UserMessage(err),
		Code:  errors.GetCode(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
