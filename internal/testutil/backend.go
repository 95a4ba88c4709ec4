package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/estimo/internal/domain"
	"github.com/alexanderramin/estimo/internal/wire"
)

// Backend is an in-memory stand-in for the estimates API served over
// httptest. IDs are sequential integers and every write advances the
// backend clock by one second, starting at FixedTime.
type Backend struct {
	URL string

	mu        sync.Mutex
	nextID    int64
	clock     time.Time
	estimates []wire.Estimate
	templates []wire.Template
	failWith  int
	token     string
	requests  []string
}

// NewBackend starts a Backend. The server is closed when the test completes.
// Its base URL, including the /api prefix, is in URL.
func NewBackend(t *testing.T) *Backend {
	t.Helper()
	b := &Backend{nextID: 1, clock: FixedTime}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/estimates", b.listEstimates)
	mux.HandleFunc("POST /api/estimates", b.createEstimate)
	mux.HandleFunc("GET /api/estimates/{id}", b.getEstimate)
	mux.HandleFunc("PUT /api/estimates/{id}", b.saveEstimate)
	mux.HandleFunc("DELETE /api/estimates/{id}", b.deleteEstimate)
	mux.HandleFunc("GET /api/templates", b.listTemplates)
	mux.HandleFunc("POST /api/templates", b.createTemplate)
	mux.HandleFunc("GET /api/templates/{id}", b.getTemplate)
	mux.HandleFunc("PUT /api/templates/{id}", b.updateTemplate)
	mux.HandleFunc("DELETE /api/templates/{id}", b.deleteTemplate)
	mux.HandleFunc("POST /api/templates/{id}/apply", b.applyTemplate)

	srv := httptest.NewServer(b.middleware(mux))
	t.Cleanup(srv.Close)
	b.URL = srv.URL + "/api"
	return b
}

// FailWith makes every following request answer with status. Zero restores
// normal behavior.
func (b *Backend) FailWith(status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failWith = status
}

// RequireToken makes the backend reject requests without this bearer token.
func (b *Backend) RequireToken(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.token = token
}

// Requests returns "METHOD /path" for every request received so far.
func (b *Backend) Requests() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.requests...)
}

// Estimates returns the stored estimates in internal form.
func (b *Backend) Estimates() []domain.Estimate {
	b.mu.Lock()
	defer b.mu.Unlock()
	return wire.ToEstimates(b.estimates)
}

// Templates returns the stored templates in wire form, since template content
// carries no identities.
func (b *Backend) Templates() []wire.Template {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]wire.Template(nil), b.templates...)
}

// SeedEstimate stores e as if it had been created through the API and
// returns its assigned ID.
func (b *Backend) SeedEstimate(e domain.Estimate) domain.ID {
	b.mu.Lock()
	defer b.mu.Unlock()
	w := wire.FromEstimate(e)
	id := b.allocate()
	w.ID = &id
	b.assignGroupIDs(w.Groups)
	stamp := b.tick()
	w.CreatedAt, w.UpdatedAt = &stamp, &stamp
	b.estimates = append(b.estimates, w)
	return id
}

// SeedTemplate stores a template and returns its assigned ID.
func (b *Backend) SeedTemplate(name string, groups []domain.Group) domain.ID {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.allocate()
	stamp := b.tick()
	b.templates = append(b.templates, wire.Template{
		ID:        &id,
		Name:      &name,
		Data:      wire.TemplateData(groups),
		CreatedAt: &stamp,
		UpdatedAt: &stamp,
	})
	return id
}

func (b *Backend) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.requests = append(b.requests, r.Method+" "+strings.TrimPrefix(r.URL.Path, "/api"))
		fail, token := b.failWith, b.token
		b.mu.Unlock()

		if fail != 0 {
			writeError(w, fail, "forced failure")
			return
		}
		if token != "" && r.Header.Get("Authorization") != "Bearer "+token {
			writeError(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) listEstimates(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, b.estimates)
}

func (b *Backend) createEstimate(w http.ResponseWriter, r *http.Request) {
	var req wire.CreateEstimateRequest
	if !decode(w, r, &req) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.allocate()
	stamp := b.tick()
	e := wire.Estimate{ID: &id, Name: &req.Name, CreatedAt: &stamp, UpdatedAt: &stamp, Groups: []wire.Group{}}
	b.estimates = append(b.estimates, e)
	writeJSON(w, http.StatusCreated, e)
}

func (b *Backend) getEstimate(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.findEstimate(r.PathValue("id"))
	if i < 0 {
		writeError(w, http.StatusNotFound, "estimate not found")
		return
	}
	writeJSON(w, http.StatusOK, b.estimates[i])
}

func (b *Backend) saveEstimate(w http.ResponseWriter, r *http.Request) {
	var req wire.SaveEstimateRequest
	if !decode(w, r, &req) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.findEstimate(r.PathValue("id"))
	if i < 0 {
		writeError(w, http.StatusNotFound, "estimate not found")
		return
	}
	b.assignGroupIDs(req.Groups)
	stamp := b.tick()
	e := b.estimates[i]
	e.Name = &req.Name
	e.Groups = req.Groups
	e.UpdatedAt = &stamp
	b.estimates[i] = e
	writeJSON(w, http.StatusOK, e)
}

func (b *Backend) deleteEstimate(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.findEstimate(r.PathValue("id"))
	if i < 0 {
		writeError(w, http.StatusNotFound, "estimate not found")
		return
	}
	b.estimates = append(b.estimates[:i], b.estimates[i+1:]...)
	w.WriteHeader(http.StatusNoContent)
}

func (b *Backend) listTemplates(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, b.templates)
}

func (b *Backend) createTemplate(w http.ResponseWriter, r *http.Request) {
	var req wire.TemplateRequest
	if !decode(w, r, &req) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.allocate()
	stamp := b.tick()
	t := wire.Template{ID: &id, Name: &req.Name, Data: req.Data, CreatedAt: &stamp, UpdatedAt: &stamp}
	b.templates = append(b.templates, t)
	writeJSON(w, http.StatusCreated, t)
}

func (b *Backend) getTemplate(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.findTemplate(r.PathValue("id"))
	if i < 0 {
		writeError(w, http.StatusNotFound, "template not found")
		return
	}
	writeJSON(w, http.StatusOK, b.templates[i])
}

func (b *Backend) updateTemplate(w http.ResponseWriter, r *http.Request) {
	var req wire.TemplateRequest
	if !decode(w, r, &req) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.findTemplate(r.PathValue("id"))
	if i < 0 {
		writeError(w, http.StatusNotFound, "template not found")
		return
	}
	stamp := b.tick()
	t := b.templates[i]
	t.Name = &req.Name
	t.Data = req.Data
	t.UpdatedAt = &stamp
	b.templates[i] = t
	writeJSON(w, http.StatusOK, t)
}

func (b *Backend) deleteTemplate(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.findTemplate(r.PathValue("id"))
	if i < 0 {
		writeError(w, http.StatusNotFound, "template not found")
		return
	}
	b.templates = append(b.templates[:i], b.templates[i+1:]...)
	w.WriteHeader(http.StatusNoContent)
}

func (b *Backend) applyTemplate(w http.ResponseWriter, r *http.Request) {
	var req wire.ApplyTemplateRequest
	if !decode(w, r, &req) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.findTemplate(r.PathValue("id"))
	if i < 0 {
		writeError(w, http.StatusNotFound, "template not found")
		return
	}
	groups := cloneWireGroups(b.templates[i].Data)
	b.assignGroupIDs(groups)
	id := b.allocate()
	stamp := b.tick()
	e := wire.Estimate{ID: &id, Name: &req.Name, CreatedAt: &stamp, UpdatedAt: &stamp, Groups: groups}
	b.estimates = append(b.estimates, e)
	writeJSON(w, http.StatusCreated, e)
}

func (b *Backend) allocate() domain.ID {
	id := domain.PersistedID(b.nextID)
	b.nextID++
	return id
}

func (b *Backend) tick() string {
	b.clock = b.clock.Add(time.Second)
	return b.clock.Format(time.RFC3339)
}

func (b *Backend) assignGroupIDs(groups []wire.Group) {
	for gi := range groups {
		if groups[gi].ID == nil {
			id := b.allocate()
			groups[gi].ID = &id
		}
		for ri := range groups[gi].Rows {
			if groups[gi].Rows[ri].ID == nil {
				id := b.allocate()
				groups[gi].Rows[ri].ID = &id
			}
		}
	}
}

func (b *Backend) findEstimate(raw string) int {
	for i, e := range b.estimates {
		if e.ID != nil && e.ID.String() == raw {
			return i
		}
	}
	return -1
}

func (b *Backend) findTemplate(raw string) int {
	for i, t := range b.templates {
		if t.ID != nil && t.ID.String() == raw {
			return i
		}
	}
	return -1
}

func cloneWireGroups(groups []wire.Group) []wire.Group {
	out := make([]wire.Group, len(groups))
	for i, g := range groups {
		g.ID = nil
		rows := make([]wire.Row, len(g.Rows))
		for j, r := range g.Rows {
			r.ID = nil
			rows[j] = r
		}
		g.Rows = rows
		out[i] = g
	}
	return out
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"detail": msg, "code": strconv.Itoa(status)})
}
