package wire

import (
	"time"

	"github.com/alexanderramin/estimo/internal/domain"
)

// ToRow converts a wire row to the internal shape. Missing text becomes "",
// missing numbers and sort order become 0.
func ToRow(r Row) domain.Row {
	return domain.Row{
		ID:          idOrZero(r.ID),
		Feature:     domain.Deref(r.Feature, ""),
		Assumptions: domain.Deref(r.Assumptions, ""),
		DesignMin:   domain.Deref(r.DesignMin, 0),
		DesignMost:  domain.Deref(r.DesignMost, 0),
		DesignMax:   domain.Deref(r.DesignMax, 0),
		BEMin:       domain.Deref(r.BEMin, 0),
		BEMost:      domain.Deref(r.BEMost, 0),
		BEMax:       domain.Deref(r.BEMax, 0),
		FEMin:       domain.Deref(r.FEMin, 0),
		FEMost:      domain.Deref(r.FEMost, 0),
		FEMax:       domain.Deref(r.FEMax, 0),
		SortOrder:   domain.Deref(r.SortOrder, 0),
	}
}

// ToGroup converts a wire group and its rows to the internal shape.
func ToGroup(g Group) domain.Group {
	rows := make([]domain.Row, 0, len(g.Rows))
	for _, r := range g.Rows {
		rows = append(rows, ToRow(r))
	}
	return domain.Group{
		ID:        idOrZero(g.ID),
		Name:      domain.Deref(g.Name, ""),
		SortOrder: domain.Deref(g.SortOrder, 0),
		Rows:      rows,
	}
}

// ToGroups converts a slice of wire groups. A nil slice becomes empty.
func ToGroups(groups []Group) []domain.Group {
	out := make([]domain.Group, 0, len(groups))
	for _, g := range groups {
		out = append(out, ToGroup(g))
	}
	return out
}

// ToEstimate converts a wire estimate to the internal shape.
func ToEstimate(e Estimate) domain.Estimate {
	return domain.Estimate{
		ID:        idOrZero(e.ID),
		Name:      domain.Deref(e.Name, ""),
		CreatedAt: parseTimestamp(e.CreatedAt),
		UpdatedAt: parseTimestamp(e.UpdatedAt),
		Groups:    ToGroups(e.Groups),
	}
}

// ToEstimates converts a list response.
func ToEstimates(list []Estimate) []domain.Estimate {
	out := make([]domain.Estimate, 0, len(list))
	for _, e := range list {
		out = append(out, ToEstimate(e))
	}
	return out
}

// ToTemplate converts a wire template. Template content has no identity on
// the backend, so every group and row gets a fresh pending ID for editing.
func ToTemplate(t Template) domain.Template {
	data := ToGroups(t.Data)
	for gi := range data {
		data[gi].ID = domain.PendingID(domain.GenerateID())
		for ri := range data[gi].Rows {
			data[gi].Rows[ri].ID = domain.PendingID(domain.GenerateID())
		}
	}
	return domain.Template{
		ID:        idOrZero(t.ID),
		Name:      domain.Deref(t.Name, ""),
		Data:      data,
		CreatedAt: parseTimestamp(t.CreatedAt),
		UpdatedAt: parseTimestamp(t.UpdatedAt),
	}
}

// ToTemplates converts a list response.
func ToTemplates(list []Template) []domain.Template {
	out := make([]domain.Template, 0, len(list))
	for _, t := range list {
		out = append(out, ToTemplate(t))
	}
	return out
}

// FromRow converts an internal row to the wire shape. Pending IDs are
// omitted so the backend assigns a real one.
func FromRow(r domain.Row) Row {
	return Row{
		ID:          persistedOnly(r.ID),
		Feature:     ptr(r.Feature),
		Assumptions: ptr(r.Assumptions),
		DesignMin:   ptr(r.DesignMin),
		DesignMost:  ptr(r.DesignMost),
		DesignMax:   ptr(r.DesignMax),
		BEMin:       ptr(r.BEMin),
		BEMost:      ptr(r.BEMost),
		BEMax:       ptr(r.BEMax),
		FEMin:       ptr(r.FEMin),
		FEMost:      ptr(r.FEMost),
		FEMax:       ptr(r.FEMax),
		SortOrder:   ptr(r.SortOrder),
	}
}

// FromGroup converts an internal group and its rows to the wire shape.
func FromGroup(g domain.Group) Group {
	rows := make([]Row, 0, len(g.Rows))
	for _, r := range g.Rows {
		rows = append(rows, FromRow(r))
	}
	return Group{
		ID:        persistedOnly(g.ID),
		Name:      ptr(g.Name),
		SortOrder: ptr(g.SortOrder),
		Rows:      rows,
	}
}

// FromGroups converts a slice of internal groups.
func FromGroups(groups []domain.Group) []Group {
	out := make([]Group, 0, len(groups))
	for _, g := range groups {
		out = append(out, FromGroup(g))
	}
	return out
}

// TemplateData converts template content to the wire shape with every
// identifier stripped.
func TemplateData(groups []domain.Group) []Group {
	out := FromGroups(groups)
	for gi := range out {
		out[gi].ID = nil
		for ri := range out[gi].Rows {
			out[gi].Rows[ri].ID = nil
		}
	}
	return out
}

// FromEstimate converts an internal estimate to the wire shape.
func FromEstimate(e domain.Estimate) Estimate {
	return Estimate{
		ID:        persistedOnly(e.ID),
		Name:      ptr(e.Name),
		CreatedAt: formatTimestamp(e.CreatedAt),
		UpdatedAt: formatTimestamp(e.UpdatedAt),
		Groups:    FromGroups(e.Groups),
	}
}

// FromTemplate converts an internal template to the wire shape.
func FromTemplate(t domain.Template) Template {
	return Template{
		ID:        persistedOnly(t.ID),
		Name:      ptr(t.Name),
		Data:      TemplateData(t.Data),
		CreatedAt: formatTimestamp(t.CreatedAt),
		UpdatedAt: formatTimestamp(t.UpdatedAt),
	}
}

func ptr[T any](v T) *T {
	return &v
}

func idOrZero(id *domain.ID) domain.ID {
	if id == nil {
		return domain.ID{}
	}
	return *id
}

func persistedOnly(id domain.ID) *domain.ID {
	if !id.IsPersisted() {
		return nil
	}
	return &id
}

// timestampLayouts are tried in order. Layouts without a zone read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	time.DateOnly,
}

// parseTimestamp accepts RFC3339 and the SQL-style layouts backends commonly
// emit. Missing or unparseable values become the zero time.
func parseTimestamp(s *string) time.Time {
	if s == nil || *s == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, *s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func formatTimestamp(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.Format(time.RFC3339Nano)
	return &s
}
