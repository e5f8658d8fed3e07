// Package testutil provides a fake OpenNMS server for tests.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"

	"github.com/julienschmidt/httprouter"

	"github.com/mhuot/go-opennms/pkg/filter"
)

// Context is the servlet path OpenNMS is deployed under.
const Context = "/opennms"

// Request is a request observed by the fake server.
type Request struct {
	Method    string
	Path      string
	Query     url.Values
	RawQuery  string
	Header    http.Header
	APIPrefix string
}

// Server is an in-memory OpenNMS serving the v1 (/rest) and v2 (/api/v2) collections.
type Server struct {
	*httptest.Server

	mu         sync.Mutex
	requests   []Request
	entities   map[string]map[int]map[string]any
	properties map[string][]filter.SearchProperty
	failStatus int
	failBody   string
	noContent  bool
}

// NewServer starts a fake server that is closed when the test ends.
func NewServer(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		entities:   make(map[string]map[int]map[string]any),
		properties: make(map[string][]filter.SearchProperty),
	}
	s.Server = httptest.NewServer(s.router())
	t.Cleanup(s.Close)
	return s
}

// BaseURL returns the service root to hand to the client.
func (s *Server) BaseURL() string {
	return s.URL + Context
}

func (s *Server) router() *httprouter.Router {
	router := httprouter.New()
	router.GET(Context+"/rest/:resource", s.list("rest"))
	router.GET(Context+"/rest/:resource/:id", s.get("rest"))
	router.GET(Context+"/api/v2/:resource", s.list("api/v2"))
	router.GET(Context+"/api/v2/:resource/:id", s.get("api/v2"))
	return router
}

// AddEntity stores an entity served under resource with the given id.
func (s *Server) AddEntity(resource string, id int, entity map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entities[resource] == nil {
		s.entities[resource] = make(map[int]map[string]any)
	}
	s.entities[resource][id] = entity
}

// SetProperties sets the search properties served for resource on v2.
func (s *Server) SetProperties(resource string, props []filter.SearchProperty) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.properties[resource] = props
}

// FailWith makes every subsequent request answer status with body. A zero status clears it.
func (s *Server) FailWith(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failStatus = status
	s.failBody = body
}

// NoContent makes collection requests answer 204 like OpenNMS does for empty results.
func (s *Server) NoContent(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.noContent = enabled
}

// Requests returns every request observed so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// LastRequest returns the most recent request, or the zero Request.
func (s *Server) LastRequest() Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}
	}
	return s.requests[len(s.requests)-1]
}

func (s *Server) record(r *http.Request, prefix string) (failed bool, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, Request{
		Method:    r.Method,
		Path:      r.URL.Path,
		Query:     r.URL.Query(),
		RawQuery:  r.URL.RawQuery,
		Header:    r.Header.Clone(),
		APIPrefix: prefix,
	})
	return s.failStatus != 0, s.failStatus, s.failBody
}

func (s *Server) list(prefix string) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if failed, status, body := s.record(r, prefix); failed {
			http.Error(w, body, status)
			return
		}
		resource := ps.ByName("resource")

		s.mu.Lock()
		noContent := s.noContent
		items := make([]map[string]any, 0, len(s.entities[resource]))
		for _, e := range s.entities[resource] {
			items = append(items, e)
		}
		s.mu.Unlock()

		if noContent || len(items) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			singular(resource): items,
			"count":            len(items),
			"totalCount":       len(items),
			"offset":           0,
		})
	}
}

func (s *Server) get(prefix string) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if failed, status, body := s.record(r, prefix); failed {
			http.Error(w, body, status)
			return
		}
		resource := ps.ByName("resource")

		// httprouter cannot register a static segment beside :id.
		if ps.ByName("id") == "properties" && prefix == "api/v2" {
			s.mu.Lock()
			props := s.properties[resource]
			s.mu.Unlock()
			if props == nil {
				props = []filter.SearchProperty{}
			}
			writeJSON(w, http.StatusOK, map[string]any{"searchProperty": props})
			return
		}

		id, err := strconv.Atoi(ps.ByName("id"))
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}
		s.mu.Lock()
		entity, ok := s.entities[resource][id]
		s.mu.Unlock()
		if !ok {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, entity)
	}
}

func singular(resource string) string {
	if n := len(resource); n > 1 && resource[n-1] == 's' {
		return resource[:n-1]
	}
	return resource
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
