package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// FakeBackend is a scripted in-memory REST backend for service and
// api tests. Records are raw JSON objects in server wire shape
// (snake_case aliases, numeric ids allowed). Failures can be injected
// per method+path.
type FakeBackend struct {
	mu sync.Mutex

	resources map[string]*resource // keyed by resource name, e.g. "projects"
	users     map[string]map[string]any

	// Cascades maps a project id to the extra descendant ids its
	// DELETE reports.
	Cascades map[string][]string

	// Performance maps a user id to the aggregate served at
	// /api/users/{id}/performance.
	Performance map[string]map[string]any

	failures map[string]failure
	nextID   int

	// AuditWrites collects every body POSTed to /api/audit-logs.
	AuditWrites []map[string]any

	server *httptest.Server
}

type resource struct {
	order []string
	items map[string]map[string]any
}

type failure struct {
	status int
	body   string
}

func NewFakeBackend() *FakeBackend {
	fb := &FakeBackend{
		resources:   make(map[string]*resource),
		users:       make(map[string]map[string]any),
		Cascades:    make(map[string][]string),
		Performance: make(map[string]map[string]any),
		failures:    make(map[string]failure),
		nextID:      100,
	}
	fb.server = httptest.NewServer(http.HandlerFunc(fb.handle))
	return fb
}

func (fb *FakeBackend) URL() string { return fb.server.URL }

func (fb *FakeBackend) Close() { fb.server.Close() }

// Seed inserts a record into a resource collection. The record must
// carry an "id" field.
func (fb *FakeBackend) Seed(resourceName string, rec map[string]any) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	r := fb.resource(resourceName)
	id := fmt.Sprintf("%v", rec["id"])
	if _, ok := r.items[id]; !ok {
		r.order = append(r.order, id)
	}
	r.items[id] = rec
}

// SeedUser registers login credentials resolving to a user record.
func (fb *FakeBackend) SeedUser(username, password string, rec map[string]any) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.users[username+"\x00"+password] = rec
}

// FailOn makes the next calls to method+path return the given status
// and body until cleared.
func (fb *FakeBackend) FailOn(method, path string, status int, body string) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.failures[method+" "+path] = failure{status: status, body: body}
}

// ClearFailure removes an injected failure.
func (fb *FakeBackend) ClearFailure(method, path string) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	delete(fb.failures, method+" "+path)
}

// Record returns the stored record for inspection.
func (fb *FakeBackend) Record(resourceName, id string) (map[string]any, bool) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	r := fb.resource(resourceName)
	rec, ok := r.items[id]
	return rec, ok
}

func (fb *FakeBackend) resource(name string) *resource {
	r, ok := fb.resources[name]
	if !ok {
		r = &resource{items: make(map[string]map[string]any)}
		fb.resources[name] = r
	}
	return r
}

func (fb *FakeBackend) handle(w http.ResponseWriter, req *http.Request) {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	if f, ok := fb.failures[req.Method+" "+req.URL.Path]; ok {
		http.Error(w, f.body, f.status)
		return
	}

	if req.URL.Path == "/api/auth/login" && req.Method == http.MethodPost {
		fb.handleLogin(w, req)
		return
	}

	parts := strings.Split(strings.TrimPrefix(req.URL.Path, "/api/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		http.NotFound(w, req)
		return
	}
	name := parts[0]

	switch {
	case len(parts) == 3 && parts[2] == "performance" && req.Method == http.MethodGet:
		rec, ok := fb.Performance[parts[1]]
		if !ok {
			http.NotFound(w, req)
			return
		}
		writeJSON(w, rec)
	case len(parts) == 1 && req.Method == http.MethodGet:
		fb.handleList(w, name)
	case len(parts) == 1 && req.Method == http.MethodPost:
		fb.handleCreate(w, req, name)
	case len(parts) == 2 && req.Method == http.MethodPut:
		fb.handleUpdate(w, req, name, parts[1])
	case len(parts) == 2 && req.Method == http.MethodDelete:
		fb.handleDelete(w, name, parts[1])
	default:
		http.NotFound(w, req)
	}
}

func (fb *FakeBackend) handleLogin(w http.ResponseWriter, req *http.Request) {
	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(req.Body).Decode(&creds); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	rec, ok := fb.users[creds.Username+"\x00"+creds.Password]
	if !ok {
		http.Error(w, "invalid username or password", http.StatusUnauthorized)
		return
	}
	writeJSON(w, rec)
}

func (fb *FakeBackend) handleList(w http.ResponseWriter, name string) {
	r := fb.resource(name)
	out := make([]map[string]any, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	writeJSON(w, out)
}

func (fb *FakeBackend) handleCreate(w http.ResponseWriter, req *http.Request, name string) {
	var body map[string]any
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	// Server-assigned numeric id.
	fb.nextID++
	body["id"] = fb.nextID
	r := fb.resource(name)
	id := fmt.Sprintf("%d", fb.nextID)
	r.order = append(r.order, id)
	r.items[id] = body

	if name == "audit-logs" {
		fb.AuditWrites = append(fb.AuditWrites, body)
	}
	writeJSON(w, body)
}

func (fb *FakeBackend) handleUpdate(w http.ResponseWriter, req *http.Request, name, id string) {
	var patch map[string]any
	if err := json.NewDecoder(req.Body).Decode(&patch); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	r := fb.resource(name)
	rec, ok := r.items[id]
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	for k, v := range patch {
		if v == nil {
			delete(rec, k)
			continue
		}
		rec[k] = v
	}
	writeJSON(w, rec)
}

func (fb *FakeBackend) handleDelete(w http.ResponseWriter, name, id string) {
	r := fb.resource(name)
	if _, ok := r.items[id]; !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	remove := func(rid string) {
		delete(r.items, rid)
		for i, oid := range r.order {
			if oid == rid {
				r.order = append(r.order[:i], r.order[i+1:]...)
				break
			}
		}
	}
	remove(id)

	if name == "projects" {
		deleted := []string{id}
		for _, did := range fb.Cascades[id] {
			remove(did)
			deleted = append(deleted, did)
		}
		writeJSON(w, map[string]any{"deletedProjectIds": deleted})
		return
	}
	writeJSON(w, map[string]any{"deleted": true})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
