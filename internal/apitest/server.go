// Package apitest provides an in-process fake of the comparison API with
// switches for outages, auth failures and response shapes.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/agentstation/toolcompare/pkg/constants"
	"github.com/agentstation/toolcompare/pkg/tools"
)

// Server is a fake comparison API.
type Server struct {
	srv *httptest.Server

	mu         sync.Mutex
	comparison []tools.Tool
	catalog    map[string]tools.Tool
	token      string
	failStatus int
	bare       bool
	maxTools   int
	calls      map[string]int
	requestIDs []string
}

// Option configures a Server.
type Option func(*Server)

// WithCatalog publishes tools under GET /tools/{id}.
func WithCatalog(ts ...tools.Tool) Option {
	return func(s *Server) {
		for _, t := range ts {
			s.catalog[t.ID] = t
		}
	}
}

// WithComparison seeds the remote comparison.
func WithComparison(ts ...tools.Tool) Option {
	return func(s *Server) {
		s.comparison = append(s.comparison, ts...)
	}
}

// WithToken requires every request to carry token as a bearer token.
func WithToken(token string) Option {
	return func(s *Server) {
		s.token = token
	}
}

// WithBareResponses answers with bare JSON values instead of the envelope.
func WithBareResponses() Option {
	return func(s *Server) {
		s.bare = true
	}
}

// WithoutLimit lets the remote comparison grow past the usual maximum.
func WithoutLimit() Option {
	return func(s *Server) {
		s.maxTools = 0
	}
}

// New starts a Server and closes it when the test finishes.
func New(t testing.TB, opts ...Option) *Server {
	t.Helper()

	s := &Server{
		catalog:  map[string]tools.Tool{},
		maxTools: constants.MaxComparisonTools,
		calls:    map[string]int{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.srv = httptest.NewServer(s.Handler())
	t.Cleanup(s.srv.Close)
	return s
}

// URL returns the API root.
func (s *Server) URL() string {
	return s.srv.URL
}

// Fail makes every request answer with status until Recover is called.
func (s *Server) Fail(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failStatus = status
}

// Down simulates an outage.
func (s *Server) Down() {
	s.Fail(http.StatusServiceUnavailable)
}

// Recover clears a previous Fail or Down.
func (s *Server) Recover() {
	s.Fail(0)
}

// Comparison returns the ids in the remote comparison.
func (s *Server) Comparison() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, len(s.comparison))
	for i, t := range s.comparison {
		ids[i] = t.ID
	}
	return ids
}

// SetComparison replaces the remote comparison.
func (s *Server) SetComparison(ts ...tools.Tool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comparison = append([]tools.Tool(nil), ts...)
}

// Calls returns how many requests reached the named route
// ("list", "add", "remove", "tool"), including failed ones.
func (s *Server) Calls(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[route]
}

// RequestIDs returns the request ids seen so far.
func (s *Server) RequestIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requestIDs...)
}

// Handler returns the fake API as an http.Handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/comparison", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			s.handle("list", w, r, s.handleList)
		case http.MethodPost:
			s.handle("add", w, r, s.handleAdd)
		default:
			s.fail(w, http.StatusMethodNotAllowed, "Method "+r.Method+" is not supported for this endpoint")
		}
	})

	mux.HandleFunc("/comparison/", func(w http.ResponseWriter, r *http.Request) {
		id := extractPathParam(r.URL.Path, "/comparison/")
		if id == "" || r.Method != http.MethodDelete {
			s.fail(w, http.StatusNotFound, "Not found")
			return
		}
		s.handle("remove", w, r, func(w http.ResponseWriter, _ *http.Request) {
			s.handleRemove(w, id)
		})
	})

	mux.HandleFunc("/tools/", func(w http.ResponseWriter, r *http.Request) {
		id := extractPathParam(r.URL.Path, "/tools/")
		if id == "" || r.Method != http.MethodGet {
			s.fail(w, http.StatusNotFound, "Not found")
			return
		}
		s.handle("tool", w, r, func(w http.ResponseWriter, _ *http.Request) {
			s.handleTool(w, id)
		})
	})

	return mux
}

// handle counts the call, applies failure injection and auth, then runs next.
func (s *Server) handle(route string, w http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
	s.mu.Lock()
	s.calls[route]++
	s.requestIDs = append(s.requestIDs, r.Header.Get(constants.HeaderRequestID))
	failStatus, token := s.failStatus, s.token
	s.mu.Unlock()

	if failStatus != 0 {
		s.fail(w, failStatus, "Injected failure")
		return
	}
	if token != "" && bearerToken(r) != token {
		s.fail(w, http.StatusUnauthorized, "Invalid or missing token")
		return
	}
	next(w, r)
}

func (s *Server) handleList(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	out := append([]tools.Tool{}, s.comparison...)
	s.mu.Unlock()
	s.ok(w, http.StatusOK, out)
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ToolID string `json:"tool_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.ToolID) == "" {
		s.fail(w, http.StatusBadRequest, "tool_id is required")
		return
	}

	s.mu.Lock()
	for _, t := range s.comparison {
		if t.ID == req.ToolID {
			s.mu.Unlock()
			s.ok(w, http.StatusOK, nil)
			return
		}
	}
	if s.maxTools > 0 && len(s.comparison) >= s.maxTools {
		s.mu.Unlock()
		s.fail(w, http.StatusConflict, "comparison is full")
		return
	}
	tool, ok := s.catalog[req.ToolID]
	if !ok {
		tool = tools.Tool{ID: req.ToolID}
	}
	s.comparison = append(s.comparison, tool)
	s.mu.Unlock()

	s.ok(w, http.StatusCreated, nil)
}

func (s *Server) handleRemove(w http.ResponseWriter, id string) {
	s.mu.Lock()
	out := s.comparison[:0]
	for _, t := range s.comparison {
		if t.ID != id {
			out = append(out, t)
		}
	}
	s.comparison = out
	s.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTool(w http.ResponseWriter, id string) {
	s.mu.Lock()
	tool, ok := s.catalog[id]
	s.mu.Unlock()

	if !ok {
		s.fail(w, http.StatusNotFound, "tool "+id+" not found")
		return
	}
	s.ok(w, http.StatusOK, tool)
}

func (s *Server) ok(w http.ResponseWriter, status int, data any) {
	if s.isBare() {
		if data == nil {
			w.WriteHeader(status)
			return
		}
		writeJSON(w, status, data)
		return
	}
	writeJSON(w, status, Success(data))
}

func (s *Server) fail(w http.ResponseWriter, status int, message string) {
	if s.isBare() {
		http.Error(w, message, status)
		return
	}
	writeJSON(w, status, Fail(errorCode(status), http.StatusText(status), message))
}

func (s *Server) isBare() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bare
}

// extractPathParam returns the single path segment after prefix.
func extractPathParam(path, prefix string) string {
	id := strings.TrimPrefix(path, prefix)
	id = strings.TrimSuffix(id, "/")
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}

// bearerToken returns the token from an "Authorization: Bearer" header.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return auth
}
