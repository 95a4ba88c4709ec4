package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"sync"
	"time"

	"github.com/alexanderramin/estimo/internal/domain"
	"github.com/alexanderramin/estimo/internal/transport"
	"github.com/alexanderramin/estimo/internal/wire"
)

// SnapshotKey is the key under which local mode keeps its estimates.
const SnapshotKey = "estimate-app-data"

type snapshotDoc struct {
	Estimates []domain.Estimate `json:"estimates"`
}

// EstimateStore owns the estimate collection. After Init it runs in one of
// two modes for its whole lifetime: remote, where the backend is the durable
// copy, or local, where every change is written through to the snapshot
// store.
type EstimateStore struct {
	requester transport.Requester
	auth      AuthSignal
	snapshots SnapshotStore
	now       func() time.Time
	observer  Observer

	mu          sync.RWMutex
	estimates   []domain.Estimate
	initialized bool
	remote      bool
	loading     bool
	saving      bool
}

// NewEstimateStore creates an EstimateStore. Any collaborator may be nil: a
// nil auth signal means local mode, a nil snapshot store disables local
// durability, and a nil requester fails remote calls with ErrNoBackend.
func NewEstimateStore(requester transport.Requester, auth AuthSignal, snapshots SnapshotStore, opts ...Option) *EstimateStore {
	o := buildOptions(opts)
	return &EstimateStore{
		requester: requester,
		auth:      auth,
		snapshots: snapshots,
		now:       o.now,
		observer:  o.observer,
		estimates: []domain.Estimate{},
	}
}

// Estimates returns copies of all estimates in collection order.
func (s *EstimateStore) Estimates() []domain.Estimate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Estimate, len(s.estimates))
	for i, e := range s.estimates {
		out[i] = e.Clone()
	}
	return out
}

// List returns copies of all estimates, most recently updated first.
func (s *EstimateStore) List() []domain.Estimate {
	out := s.Estimates()
	slices.SortStableFunc(out, func(a, b domain.Estimate) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	return out
}

// Get returns a copy of the estimate with the given ID.
func (s *EstimateStore) Get(id domain.ID) (domain.Estimate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return domain.Estimate{}, false
	}
	return s.estimates[i].Clone(), true
}

func (s *EstimateStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *EstimateStore) Saving() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saving
}

// Remote reports whether the store is backed by the API.
func (s *EstimateStore) Remote() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.remote
}

// Init chooses the persistence mode from the auth signal and loads the
// collection from the backend or the local snapshot. Only the first call
// has any effect.
func (s *EstimateStore) Init(ctx context.Context) {
	s.mu.Lock()
	if s.initialized {
		s.mu.Unlock()
		return
	}
	s.initialized = true
	s.remote = s.auth != nil && s.auth.Present()
	remote := s.remote
	s.mu.Unlock()

	if remote {
		s.FetchEstimates(ctx)
		return
	}
	s.loadSnapshot(ctx)
}

// FetchEstimates replaces the collection with the backend's. On failure the
// prior collection is kept and the error goes to the observer only.
func (s *EstimateStore) FetchEstimates(ctx context.Context) {
	s.setLoading(true)
	defer s.setLoading(false)

	fields := map[string]any{}
	_ = observe(ctx, s.observer, "fetch-estimates", fields, func() error {
		var list []wire.Estimate
		if err := s.do(ctx, http.MethodGet, "/estimates", nil, &list); err != nil {
			return fmt.Errorf("fetching estimates: %w", err)
		}
		estimates := wire.ToEstimates(list)
		fields["count"] = len(estimates)

		s.mu.Lock()
		s.estimates = estimates
		s.persistLocked(ctx)
		s.mu.Unlock()
		return nil
	})
}

// CreateEstimate adds an empty estimate. In remote mode the backend assigns
// its ID and timestamps; in local mode they are generated here.
func (s *EstimateStore) CreateEstimate(ctx context.Context, name string) (domain.Estimate, error) {
	if !s.Remote() {
		now := s.now()
		e := domain.Estimate{
			ID:        domain.PendingID(domain.GenerateID()),
			Name:      name,
			CreatedAt: now,
			UpdatedAt: now,
			Groups:    []domain.Group{},
		}
		s.mu.Lock()
		s.estimates = append(s.estimates, e)
		s.persistLocked(ctx)
		s.mu.Unlock()
		return e.Clone(), nil
	}

	s.setSaving(true)
	defer s.setSaving(false)

	var created domain.Estimate
	err := observe(ctx, s.observer, "create-estimate", map[string]any{"name": name}, func() error {
		var resp wire.Estimate
		if err := s.do(ctx, http.MethodPost, "/estimates", wire.CreateEstimateRequest{Name: name}, &resp); err != nil {
			return fmt.Errorf("creating estimate: %w", err)
		}
		created = wire.ToEstimate(resp)
		return nil
	})
	if err != nil {
		return domain.Estimate{}, err
	}

	s.mu.Lock()
	s.estimates = append(s.estimates, created)
	s.mu.Unlock()
	return created.Clone(), nil
}

// DeleteEstimate removes the estimate locally and, in remote mode, on the
// backend first. A remote failure is reported to the observer and never
// prevents the local removal. It reports whether a local entry was removed.
func (s *EstimateStore) DeleteEstimate(ctx context.Context, id domain.ID) bool {
	if s.Remote() {
		_ = observe(ctx, s.observer, "delete-estimate", map[string]any{"id": id.String()}, func() error {
			if err := s.do(ctx, http.MethodDelete, estimatePath(id), nil, nil); err != nil {
				return fmt.Errorf("deleting estimate %s: %w", id, err)
			}
			return nil
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.estimates = slices.Delete(s.estimates, i, i+1)
	s.persistLocked(ctx)
	return true
}

// UpdateEstimateName renames an estimate.
func (s *EstimateStore) UpdateEstimateName(ctx context.Context, id domain.ID, name string) bool {
	return s.mutate(ctx, id, func(e *domain.Estimate) bool {
		e.Name = name
		return true
	})
}

// AddGroup appends an empty group. An empty name becomes DefaultGroupName.
func (s *EstimateStore) AddGroup(ctx context.Context, estimateID domain.ID, name string) (domain.Group, bool) {
	if name == "" {
		name = domain.DefaultGroupName
	}
	var added domain.Group
	ok := s.mutate(ctx, estimateID, func(e *domain.Estimate) bool {
		g := domain.NewGroup(name)
		g.SortOrder = len(e.Groups)
		e.Groups = append(e.Groups, g)
		added = g.Clone()
		return true
	})
	return added, ok
}

// RemoveGroup deletes a group and its rows.
func (s *EstimateStore) RemoveGroup(ctx context.Context, estimateID, groupID domain.ID) bool {
	return s.mutate(ctx, estimateID, func(e *domain.Estimate) bool {
		gi := domain.FindGroup(e.Groups, groupID)
		if gi < 0 {
			return false
		}
		e.Groups = slices.Delete(e.Groups, gi, gi+1)
		domain.RenumberGroups(e.Groups)
		return true
	})
}

// UpdateGroupName renames a group.
func (s *EstimateStore) UpdateGroupName(ctx context.Context, estimateID, groupID domain.ID, name string) bool {
	return s.mutateGroup(ctx, estimateID, groupID, func(g *domain.Group) bool {
		g.Name = name
		return true
	})
}

// AddRow appends a row built from updates to a group.
func (s *EstimateStore) AddRow(ctx context.Context, estimateID, groupID domain.ID, updates ...domain.RowUpdate) (domain.Row, bool) {
	var added domain.Row
	ok := s.mutateGroup(ctx, estimateID, groupID, func(g *domain.Group) bool {
		r := domain.NewRow(updates...)
		r.SortOrder = len(g.Rows)
		g.Rows = append(g.Rows, r)
		added = r
		return true
	})
	return added, ok
}

// RemoveRow deletes a row from a group.
func (s *EstimateStore) RemoveRow(ctx context.Context, estimateID, groupID, rowID domain.ID) bool {
	return s.mutateGroup(ctx, estimateID, groupID, func(g *domain.Group) bool {
		ri := domain.FindRow(g.Rows, rowID)
		if ri < 0 {
			return false
		}
		g.Rows = slices.Delete(g.Rows, ri, ri+1)
		domain.RenumberRows(g.Rows)
		return true
	})
}

// UpdateRow applies updates to a row. Fields not named are left alone. It
// reports false when the row is missing or no update applied.
func (s *EstimateStore) UpdateRow(ctx context.Context, estimateID, groupID, rowID domain.ID, updates ...domain.RowUpdate) bool {
	return s.mutateGroup(ctx, estimateID, groupID, func(g *domain.Group) bool {
		ri := domain.FindRow(g.Rows, rowID)
		if ri < 0 {
			return false
		}
		return domain.ApplyAll(&g.Rows[ri], updates)
	})
}

// SaveEstimateToAPI writes one estimate's name and groups to the backend.
// On success the local entry is replaced by the backend's copy. On failure
// the local edit is kept, the observer is told, and the error is returned.
func (s *EstimateStore) SaveEstimateToAPI(ctx context.Context, id domain.ID) (domain.Estimate, error) {
	current, ok := s.Get(id)
	if !ok {
		return domain.Estimate{}, fmt.Errorf("saving estimate %s: %w", id, ErrNotFound)
	}

	s.setSaving(true)
	defer s.setSaving(false)

	var saved domain.Estimate
	err := observe(ctx, s.observer, "save-estimate", map[string]any{"id": id.String(), "groups": len(current.Groups)}, func() error {
		req := wire.SaveEstimateRequest{Name: current.Name, Groups: wire.FromGroups(current.Groups)}
		var resp wire.Estimate
		if err := s.do(ctx, http.MethodPut, estimatePath(id), req, &resp); err != nil {
			return fmt.Errorf("saving estimate %s: %w", id, err)
		}
		saved = wire.ToEstimate(resp)
		return nil
	})
	if err != nil {
		return domain.Estimate{}, err
	}

	s.mu.Lock()
	if i := s.indexOf(id); i >= 0 {
		s.estimates[i] = saved
	}
	s.mu.Unlock()
	return saved.Clone(), nil
}

// mutate applies fn to the estimate under the lock. When fn reports a
// change, UpdatedAt advances and local mode writes a snapshot.
func (s *EstimateStore) mutate(ctx context.Context, id domain.ID, fn func(*domain.Estimate) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	e := &s.estimates[i]
	if !fn(e) {
		return false
	}
	e.UpdatedAt = s.now()
	s.persistLocked(ctx)
	return true
}

func (s *EstimateStore) mutateGroup(ctx context.Context, estimateID, groupID domain.ID, fn func(*domain.Group) bool) bool {
	return s.mutate(ctx, estimateID, func(e *domain.Estimate) bool {
		gi := domain.FindGroup(e.Groups, groupID)
		if gi < 0 {
			return false
		}
		return fn(&e.Groups[gi])
	})
}

func (s *EstimateStore) indexOf(id domain.ID) int {
	return slices.IndexFunc(s.estimates, func(e domain.Estimate) bool { return domain.SameID(e.ID, id) })
}

// persistLocked writes the collection to the snapshot store. Caller holds
// s.mu. Remote mode never writes.
func (s *EstimateStore) persistLocked(ctx context.Context) {
	if s.remote || s.snapshots == nil {
		return
	}
	fields := map[string]any{"key": SnapshotKey, "count": len(s.estimates)}
	_ = observe(ctx, s.observer, "write-snapshot", fields, func() error {
		data, err := json.Marshal(snapshotDoc{Estimates: s.estimates})
		if err != nil {
			return fmt.Errorf("encoding snapshot: %w", err)
		}
		if err := s.snapshots.Put(ctx, SnapshotKey, string(data)); err != nil {
			return fmt.Errorf("writing snapshot: %w", err)
		}
		return nil
	})
}

func (s *EstimateStore) loadSnapshot(ctx context.Context) {
	if s.snapshots == nil {
		return
	}
	s.setLoading(true)
	defer s.setLoading(false)

	fields := map[string]any{"key": SnapshotKey}
	_ = observe(ctx, s.observer, "load-snapshot", fields, func() error {
		raw, ok, err := s.snapshots.Get(ctx, SnapshotKey)
		if err != nil {
			return fmt.Errorf("reading snapshot: %w", err)
		}
		if !ok {
			fields["count"] = 0
			return nil
		}
		var doc snapshotDoc
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return fmt.Errorf("decoding snapshot: %w", err)
		}
		estimates := make([]domain.Estimate, len(doc.Estimates))
		for i, e := range doc.Estimates {
			estimates[i] = e.Clone()
		}
		fields["count"] = len(estimates)

		s.mu.Lock()
		s.estimates = estimates
		s.persistLocked(ctx)
		s.mu.Unlock()
		return nil
	})
}

func (s *EstimateStore) do(ctx context.Context, method, path string, body, out any) error {
	if s.requester == nil {
		return ErrNoBackend
	}
	return s.requester.Do(ctx, method, path, body, out)
}

func (s *EstimateStore) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *EstimateStore) setSaving(v bool) {
	s.mu.Lock()
	s.saving = v
	s.mu.Unlock()
}

func estimatePath(id domain.ID) string {
	return "/estimates/" + url.PathEscape(id.String())
}

