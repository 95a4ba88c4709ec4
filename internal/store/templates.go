package store

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"sync"

	"github.com/alexanderramin/estimo/internal/domain"
	"github.com/alexanderramin/estimo/internal/transport"
	"github.com/alexanderramin/estimo/internal/wire"
)

// TemplateStore owns the template collection. Templates only exist on the
// backend; the editor mutations stage changes in memory until UpdateTemplate
// sends them.
type TemplateStore struct {
	requester transport.Requester
	observer  Observer

	mu        sync.RWMutex
	templates []domain.Template
	loading   bool
	saving    bool
}

// NewTemplateStore creates a TemplateStore. WithClock has no effect since the
// backend stamps every template.
func NewTemplateStore(requester transport.Requester, opts ...Option) *TemplateStore {
	o := buildOptions(opts)
	return &TemplateStore{
		requester: requester,
		observer:  o.observer,
		templates: []domain.Template{},
	}
}

// Templates returns copies of all templates in collection order.
func (s *TemplateStore) Templates() []domain.Template {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Template, len(s.templates))
	for i, t := range s.templates {
		out[i] = t.Clone()
	}
	return out
}

// List returns copies of all templates, most recently updated first.
func (s *TemplateStore) List() []domain.Template {
	out := s.Templates()
	slices.SortStableFunc(out, func(a, b domain.Template) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	return out
}

func (s *TemplateStore) Get(id domain.ID) (domain.Template, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return domain.Template{}, false
	}
	return s.templates[i].Clone(), true
}

func (s *TemplateStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *TemplateStore) Saving() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saving
}

// FetchTemplates replaces the collection with the backend's. On failure the
// prior collection is kept and the error goes to the observer only.
func (s *TemplateStore) FetchTemplates(ctx context.Context) {
	s.setLoading(true)
	defer s.setLoading(false)

	fields := map[string]any{}
	_ = observe(ctx, s.observer, "fetch-templates", fields, func() error {
		var list []wire.Template
		if err := s.do(ctx, http.MethodGet, "/templates", nil, &list); err != nil {
			return fmt.Errorf("fetching templates: %w", err)
		}
		templates := wire.ToTemplates(list)
		fields["count"] = len(templates)

		s.mu.Lock()
		s.templates = templates
		s.mu.Unlock()
		return nil
	})
}

// FetchTemplate loads one template and inserts or replaces it locally.
func (s *TemplateStore) FetchTemplate(ctx context.Context, id domain.ID) (domain.Template, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	var fetched domain.Template
	err := observe(ctx, s.observer, "fetch-template", map[string]any{"id": id.String()}, func() error {
		var resp wire.Template
		if err := s.do(ctx, http.MethodGet, templatePath(id), nil, &resp); err != nil {
			return fmt.Errorf("fetching template %s: %w", id, err)
		}
		fetched = wire.ToTemplate(resp)
		return nil
	})
	if err != nil {
		return domain.Template{}, err
	}

	s.mu.Lock()
	if i := s.indexOf(fetched.ID); i >= 0 {
		s.templates[i] = fetched
	} else {
		s.templates = append(s.templates, fetched)
	}
	s.mu.Unlock()
	return fetched.Clone(), nil
}

// CreateTemplate stores a new template on the backend. Empty content
// becomes a single empty group named DefaultGroupName.
func (s *TemplateStore) CreateTemplate(ctx context.Context, name string, groups []domain.Group) (domain.Template, error) {
	if len(groups) == 0 {
		groups = []domain.Group{domain.NewGroup(domain.DefaultGroupName)}
	}

	s.setSaving(true)
	defer s.setSaving(false)

	var created domain.Template
	err := observe(ctx, s.observer, "create-template", map[string]any{"name": name, "groups": len(groups)}, func() error {
		req := wire.TemplateRequest{Name: name, Data: wire.TemplateData(groups)}
		var resp wire.Template
		if err := s.do(ctx, http.MethodPost, "/templates", req, &resp); err != nil {
			return fmt.Errorf("creating template: %w", err)
		}
		created = wire.ToTemplate(resp)
		return nil
	})
	if err != nil {
		return domain.Template{}, err
	}

	s.mu.Lock()
	s.templates = append(s.templates, created)
	s.mu.Unlock()
	return created.Clone(), nil
}

// UpdateTemplate replaces a template's name and content on the backend and
// then replaces the local entry, if held.
func (s *TemplateStore) UpdateTemplate(ctx context.Context, id domain.ID, name string, groups []domain.Group) (domain.Template, error) {
	s.setSaving(true)
	defer s.setSaving(false)

	var updated domain.Template
	err := observe(ctx, s.observer, "update-template", map[string]any{"id": id.String(), "groups": len(groups)}, func() error {
		req := wire.TemplateRequest{Name: name, Data: wire.TemplateData(groups)}
		var resp wire.Template
		if err := s.do(ctx, http.MethodPut, templatePath(id), req, &resp); err != nil {
			return fmt.Errorf("updating template %s: %w", id, err)
		}
		updated = wire.ToTemplate(resp)
		return nil
	})
	if err != nil {
		return domain.Template{}, err
	}

	s.mu.Lock()
	if i := s.indexOf(id); i >= 0 {
		s.templates[i] = updated
	}
	s.mu.Unlock()
	return updated.Clone(), nil
}

// DeleteTemplate removes a template from the backend, then locally.
func (s *TemplateStore) DeleteTemplate(ctx context.Context, id domain.ID) error {
	err := observe(ctx, s.observer, "delete-template", map[string]any{"id": id.String()}, func() error {
		if err := s.do(ctx, http.MethodDelete, templatePath(id), nil, nil); err != nil {
			return fmt.Errorf("deleting template %s: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	if i := s.indexOf(id); i >= 0 {
		s.templates = slices.Delete(s.templates, i, i+1)
	}
	s.mu.Unlock()
	return nil
}

// ApplyTemplate asks the backend to create a new estimate named
// estimateName from a template's content and returns it.
func (s *TemplateStore) ApplyTemplate(ctx context.Context, templateID domain.ID, estimateName string) (domain.Estimate, error) {
	s.setSaving(true)
	defer s.setSaving(false)

	var applied domain.Estimate
	err := observe(ctx, s.observer, "apply-template", map[string]any{"id": templateID.String(), "name": estimateName}, func() error {
		var resp wire.Estimate
		req := wire.ApplyTemplateRequest{Name: estimateName}
		if err := s.do(ctx, http.MethodPost, templatePath(templateID)+"/apply", req, &resp); err != nil {
			return fmt.Errorf("applying template %s: %w", templateID, err)
		}
		applied = wire.ToEstimate(resp)
		return nil
	})
	if err != nil {
		return domain.Estimate{}, err
	}
	return applied, nil
}

// AddGroupToTemplate stages a new empty group at the end of the template.
// An empty name becomes DefaultGroupName.
func (s *TemplateStore) AddGroupToTemplate(templateID domain.ID, name string) (domain.Group, bool) {
	if name == "" {
		name = domain.DefaultGroupName
	}
	var added domain.Group
	ok := s.edit(templateID, func(t *domain.Template) bool {
		g := domain.NewGroup(name)
		g.SortOrder = len(t.Data)
		t.Data = append(t.Data, g)
		added = g.Clone()
		return true
	})
	return added, ok
}

func (s *TemplateStore) RemoveGroupFromTemplate(templateID, groupID domain.ID) bool {
	return s.edit(templateID, func(t *domain.Template) bool {
		gi := domain.FindGroup(t.Data, groupID)
		if gi < 0 {
			return false
		}
		t.Data = slices.Delete(t.Data, gi, gi+1)
		domain.RenumberGroups(t.Data)
		return true
	})
}

// AddRowToTemplateGroup stages a new row at the end of a template group.
func (s *TemplateStore) AddRowToTemplateGroup(templateID, groupID domain.ID, updates ...domain.RowUpdate) (domain.Row, bool) {
	var added domain.Row
	ok := s.editGroup(templateID, groupID, func(g *domain.Group) bool {
		r := domain.NewRow(updates...)
		r.SortOrder = len(g.Rows)
		g.Rows = append(g.Rows, r)
		added = r
		return true
	})
	return added, ok
}

func (s *TemplateStore) RemoveRowFromTemplateGroup(templateID, groupID, rowID domain.ID) bool {
	return s.editGroup(templateID, groupID, func(g *domain.Group) bool {
		ri := domain.FindRow(g.Rows, rowID)
		if ri < 0 {
			return false
		}
		g.Rows = slices.Delete(g.Rows, ri, ri+1)
		domain.RenumberRows(g.Rows)
		return true
	})
}

func (s *TemplateStore) UpdateTemplateGroupName(templateID, groupID domain.ID, name string) bool {
	return s.editGroup(templateID, groupID, func(g *domain.Group) bool {
		g.Name = name
		return true
	})
}

// UpdateTemplateRow stages a single field change on a template row.
func (s *TemplateStore) UpdateTemplateRow(templateID, groupID, rowID domain.ID, update domain.RowUpdate) bool {
	return s.editGroup(templateID, groupID, func(g *domain.Group) bool {
		ri := domain.FindRow(g.Rows, rowID)
		if ri < 0 {
			return false
		}
		return update.Apply(&g.Rows[ri])
	})
}

// edit applies fn to the held template. Timestamps are left alone.
func (s *TemplateStore) edit(id domain.ID, fn func(*domain.Template) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	return fn(&s.templates[i])
}

func (s *TemplateStore) editGroup(templateID, groupID domain.ID, fn func(*domain.Group) bool) bool {
	return s.edit(templateID, func(t *domain.Template) bool {
		gi := domain.FindGroup(t.Data, groupID)
		if gi < 0 {
			return false
		}
		return fn(&t.Data[gi])
	})
}

func (s *TemplateStore) indexOf(id domain.ID) int {
	return slices.IndexFunc(s.templates, func(t domain.Template) bool { return domain.SameID(t.ID, id) })
}

func (s *TemplateStore) do(ctx context.Context, method, path string, body, out any) error {
	if s.requester == nil {
		return ErrNoBackend
	}
	return s.requester.Do(ctx, method, path, body, out)
}

func (s *TemplateStore) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

func (s *TemplateStore) setSaving(v bool) {
	s.mu.Lock()
	s.saving = v
	s.mu.Unlock()
}

func templatePath(id domain.ID) string {
	return "/templates/" + url.PathEscape(id.String())
}
