package serve

import (
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"minic/ast"
	"minic/build"
	"minic/report"
	"minic/syntax"
	"minic/walk"
)

// The stages a request can ask for.  Each one names its cache namespace.
type stage string

const (
	stageScan  stage = "scan"
	stageParse stage = "parse"
	stageCheck stage = "check"
)

var buildStages = map[stage]int{
	stageScan:  build.StageScan,
	stageParse: build.StageParse,
	stageCheck: build.StageCheck,
}

// analyzeRequest is the body of every analysis request.
type analyzeRequest struct {
	Source *string `json:"source"`
}

// jsonToken is the serializable form of a token.
type jsonToken struct {
	Kind   string `json:"kind"`
	Value  string `json:"value"`
	Offset int    `json:"offset"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// analyzeResponse is the body of every successful analysis response.  Fields
// are only filled in for the stages that ran.
type analyzeResponse struct {
	Tokens      []jsonToken          `json:"tokens,omitempty"`
	AST         *ast.JSONNode        `json:"ast,omitempty"`
	Symbols     []*walk.Decl         `json:"symbols,omitempty"`
	Diagnostics []*report.Diagnostic `json:"diagnostics"`
	Success     bool                 `json:"success"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// JSON escaping can grow each byte of a source up to six bytes (`\u003c`),
// so request bodies are capped well above the source limit and the limit
// itself is enforced on the decoded source.
const (
	maxEscapeGrowth = 6
	requestOverhead = 4096
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAnalyze creates a handler that runs the pipeline up to the given stage.
func (s *Server) handleAnalyze(st stage) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		limit := int64(s.cfg.MaxSourceBytes)*maxEscapeGrowth + requestOverhead
		body, err := ioutil.ReadAll(io.LimitReader(r.Body, limit+1))
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		} else if int64(len(body)) > limit {
			writeError(w, http.StatusRequestEntityTooLarge, build.ErrSourceTooLarge)
			return
		}

		var req analyzeRequest
		if err := json.Unmarshal(body, &req); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
			return
		} else if req.Source == nil {
			writeError(w, http.StatusBadRequest, errors.New("invalid request body: missing `source`"))
			return
		}

		key := cacheKey(st, *req.Source)
		if cached, ok := s.cache.Get(key); ok {
			w.Header().Set("X-Cache", "hit")
			writeRaw(w, http.StatusOK, cached.([]byte))
			return
		}

		res, err := build.Analyze(*req.Source, s.cfg.BuildOptions(buildStages[st]))
		if err != nil {
			if errors.Is(err, build.ErrSourceTooLarge) {
				writeError(w, http.StatusRequestEntityTooLarge, err)
			} else {
				writeError(w, http.StatusInternalServerError, err)
			}

			return
		}

		encoded, err := json.Marshal(newAnalyzeResponse(st, res))
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}

		s.cache.Add(key, encoded)

		w.Header().Set("X-Cache", "miss")
		writeRaw(w, http.StatusOK, encoded)
	}
}

// newAnalyzeResponse builds the response for an analysis result.
func newAnalyzeResponse(st stage, res *build.Result) *analyzeResponse {
	resp := &analyzeResponse{
		Diagnostics: res.Diagnostics,
		Success:     !res.HasErrors(),
	}

	// never encode a null diagnostic list
	if resp.Diagnostics == nil {
		resp.Diagnostics = []*report.Diagnostic{}
	}

	switch st {
	case stageScan:
		resp.Tokens = make([]jsonToken, len(res.Tokens))
		for i, tok := range res.Tokens {
			resp.Tokens[i] = jsonToken{
				Kind:   syntax.KindName(tok.Kind),
				Value:  tok.Value,
				Offset: tok.Offset,
				Line:   tok.Line,
				Column: tok.Col,
			}
		}
	case stageParse:
		resp.AST = ast.Export(res.AST)
		resp.Success = res.ParseOK
	case stageCheck:
		resp.AST = ast.Export(res.AST)
		resp.Symbols = res.Table.Decls()
	}

	return resp
}

// cacheKey returns the cache key of a request: a digest of its stage and
// source.
func cacheKey(st stage, src string) [sha256.Size]byte {
	return sha256.Sum256([]byte(string(st) + "\x00" + src))
}

// -----------------------------------------------------------------------------

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	encoded, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeRaw(w, status, encoded)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeRaw(w http.ResponseWriter, status int, encoded []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(encoded)
}
