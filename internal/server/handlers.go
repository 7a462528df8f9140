package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/njchilds90/symeq"
)

type evaluateRequest struct {
	Response string       `json:"response"`
	Answer   string       `json:"answer"`
	Params   symeq.Params `json:"params"`
}

type previewRequest struct {
	Response string       `json:"response"`
	Params   symeq.Params `json:"params"`
}

type errorResponse struct {
	Error    string   `json:"error"`
	Kind     string   `json:"kind,omitempty"`
	Code     string   `json:"code,omitempty"`
	Feedback []string `json:"feedback,omitempty"`
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if !s.decode(w, r, &req) {
		return
	}
	result, err := s.grader.Evaluate(req.Response, req.Answer, req.Params)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if !s.decode(w, r, &req) {
		return
	}
	result, err := s.grader.Preview(req.Response, req.Params)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleSchema(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, ToolSpec())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// decode reads a single JSON object from the body, rejecting unknown fields
// and trailing data. It writes the 400 itself and reports whether to go on.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Kind: "bad_request"})
		return false
	}
	if dec.More() {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON: trailing data", Kind: "bad_request"})
		return false
	}
	return true
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	resp := errorResponse{Error: err.Error()}
	var (
		ambiguous *symeq.AmbiguousNotationError
		exprErr   *symeq.ExpressionParseError
		latexErr  *symeq.LatexParseError
		symbolErr *symeq.SymbolParseError
	)
	switch {
	case errors.As(err, &ambiguous):
		resp.Kind, resp.Code = "ambiguous_notation", ambiguous.Code()
	case errors.As(err, &exprErr):
		resp.Kind, resp.Feedback = "expression_parse", exprErr.Feedback
	case errors.As(err, &latexErr):
		resp.Kind = "latex_parse"
	case errors.As(err, &symbolErr):
		resp.Kind = "symbol_parse"
	default:
		s.logger.Error("request failed", "error", err, "request_id", RequestID(r.Context()))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
		return
	}
	s.logger.Debug("rejected input", "kind", resp.Kind, "error", err, "request_id", RequestID(r.Context()))
	writeJSON(w, http.StatusUnprocessableEntity, resp)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
