package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// Request is one call recorded by the fake platform.
type Request struct {
	Path          string
	OperationName string
	Authorization string
	UserAgent     string
	Body          map[string]any
}

type response struct {
	status int
	body   any
}

// Platform fakes the REST and GraphQL endpoints of the platform. Responses
// are registered per path or GraphQL operation; unregistered calls get 404.
type Platform struct {
	Server *httptest.Server

	mu       sync.Mutex
	rest     map[string]response
	graphql  map[string][]response
	served   map[string]int
	requests []Request
}

func NewPlatform(t *testing.T) *Platform {
	t.Helper()

	p := &Platform{
		rest:    make(map[string]response),
		graphql: make(map[string][]response),
		served:  make(map[string]int),
	}

	r := chi.NewRouter()
	r.Post("/api/v2/{endpoint}", p.handleREST)
	r.Post("/graphql/", p.handleGraphQL)

	p.Server = httptest.NewServer(r)
	t.Cleanup(p.Server.Close)

	return p
}

// APIURL is the REST base URL to hand to the client.
func (p *Platform) APIURL() string {
	return p.Server.URL + "/api/v2"
}

func (p *Platform) GraphQLURL() string {
	return p.Server.URL + "/graphql/"
}

// OnREST registers the response for a REST endpoint such as "/login".
func (p *Platform) OnREST(path string, status int, body any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rest["/api/v2"+path] = response{status: status, body: body}
}

// OnQuery registers data payloads for a GraphQL operation. Successive calls
// are answered in order; the last payload repeats once the list runs out.
func (p *Platform) OnQuery(operationName string, data ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	resps := make([]response, 0, len(data))
	for _, d := range data {
		resps = append(resps, response{status: http.StatusOK, body: map[string]any{"data": d}})
	}
	p.graphql[operationName] = resps
	p.served[operationName] = 0
}

// OnQueryErrors makes a GraphQL operation answer with an errors array.
func (p *Platform) OnQueryErrors(operationName string, messages ...string) {
	errs := make([]map[string]any, 0, len(messages))
	for _, m := range messages {
		errs = append(errs, map[string]any{"message": m})
	}
	p.OnQueryStatus(operationName, http.StatusOK, map[string]any{"data": nil, "errors": errs})
}

// OnQueryStatus registers a raw response for a GraphQL operation.
func (p *Platform) OnQueryStatus(operationName string, status int, body any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.graphql[operationName] = []response{{status: status, body: body}}
	p.served[operationName] = 0
}

// Requests returns every call received so far.
func (p *Platform) Requests() []Request {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Request, len(p.requests))
	copy(out, p.requests)
	return out
}

// Count returns how many calls hit path ("/login", "/verify") or GraphQL
// operation name.
func (p *Platform) Count(key string) int {
	n := 0
	for _, r := range p.Requests() {
		if r.Path == "/api/v2"+key || r.OperationName == key {
			n++
		}
	}
	return n
}

// Last returns the most recent call for path or operation name.
func (p *Platform) Last(t *testing.T, key string) Request {
	t.Helper()
	reqs := p.Requests()
	for i := len(reqs) - 1; i >= 0; i-- {
		if reqs[i].Path == "/api/v2"+key || reqs[i].OperationName == key {
			return reqs[i]
		}
	}
	t.Fatalf("no request recorded for %s", key)
	return Request{}
}

func (p *Platform) record(r *http.Request) Request {
	var body map[string]any
	data, _ := io.ReadAll(r.Body)
	_ = json.Unmarshal(data, &body)

	req := Request{
		Path:          r.URL.Path,
		Authorization: r.Header.Get("Authorization"),
		UserAgent:     r.Header.Get("User-Agent"),
		Body:          body,
	}
	if name, ok := body["operationName"].(string); ok {
		req.OperationName = name
	}

	p.mu.Lock()
	p.requests = append(p.requests, req)
	p.mu.Unlock()
	return req
}

func (p *Platform) handleREST(w http.ResponseWriter, r *http.Request) {
	req := p.record(r)

	p.mu.Lock()
	resp, ok := p.rest[req.Path]
	p.mu.Unlock()

	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeResponse(w, resp)
}

func (p *Platform) handleGraphQL(w http.ResponseWriter, r *http.Request) {
	req := p.record(r)

	p.mu.Lock()
	resps := p.graphql[req.OperationName]
	var resp response
	if len(resps) > 0 {
		i := p.served[req.OperationName]
		if i >= len(resps) {
			i = len(resps) - 1
		}
		resp = resps[i]
		p.served[req.OperationName]++
	}
	p.mu.Unlock()

	if len(resps) == 0 {
		http.Error(w, "unknown operation", http.StatusNotFound)
		return
	}
	writeResponse(w, resp)
}

func writeResponse(w http.ResponseWriter, resp response) {
	if s, ok := resp.body.(string); ok {
		w.WriteHeader(resp.status)
		io.WriteString(w, s)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	json.NewEncoder(w).Encode(resp.body)
}
