package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/estimo/internal/domain"
)

// resolveEstimate finds an estimate by ID, or by case-insensitive name when
// exactly one estimate carries it. A leading "#" is ignored.
func resolveEstimate(app *App, input string) (domain.Estimate, error) {
	input = strings.TrimPrefix(strings.TrimSpace(input), "#")
	if input == "" {
		return domain.Estimate{}, fmt.Errorf("estimate ID is required")
	}

	if e, ok := app.Estimates.Get(domain.ParseID(input)); ok {
		return e, nil
	}

	var matches []domain.Estimate
	for _, e := range app.Estimates.Estimates() {
		if strings.EqualFold(e.Name, input) {
			matches = append(matches, e)
		}
	}

	switch len(matches) {
	case 0:
		return domain.Estimate{}, fmt.Errorf("estimate not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return domain.Estimate{}, fmt.Errorf("estimate name %q is ambiguous (%d matches)", input, len(matches))
	}
}

func resolveGroup(e domain.Estimate, input string) (domain.Group, error) {
	id := domain.ParseID(strings.TrimPrefix(input, "#"))
	if i := domain.FindGroup(e.Groups, id); i >= 0 {
		return e.Groups[i], nil
	}
	return domain.Group{}, fmt.Errorf("group %q not found in estimate %q", input, e.Name)
}

func resolveRow(g domain.Group, input string) (domain.Row, error) {
	id := domain.ParseID(strings.TrimPrefix(input, "#"))
	if i := domain.FindRow(g.Rows, id); i >= 0 {
		return g.Rows[i], nil
	}
	return domain.Row{}, fmt.Errorf("row %q not found in group %q", input, g.Name)
}

// Template content gets fresh IDs on every fetch, so template groups and
// rows are addressed by their 1-based display position.

func templateGroupAt(t domain.Template, input string) (domain.Group, error) {
	n, err := parsePosition(input)
	if err != nil {
		return domain.Group{}, err
	}
	groups := domain.SortGroups(t.Data)
	if n > len(groups) {
		return domain.Group{}, fmt.Errorf("template %q has no group %d (%d groups)", t.Name, n, len(groups))
	}
	return groups[n-1], nil
}

func templateRowAt(g domain.Group, input string) (domain.Row, error) {
	n, err := parsePosition(input)
	if err != nil {
		return domain.Row{}, err
	}
	rows := g.SortedRows()
	if n > len(rows) {
		return domain.Row{}, fmt.Errorf("group %q has no row %d (%d rows)", g.Name, n, len(rows))
	}
	return rows[n-1], nil
}

func parsePosition(input string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid position %q (expected 1, 2, ...)", input)
	}
	return n, nil
}

// savedGroup finds a group in the estimate returned by commit. A group that
// was pending locally is matched by position since the backend replaced its ID.
func savedGroup(saved domain.Estimate, local domain.Group) (domain.Group, bool) {
	for _, g := range saved.Groups {
		if domain.SameID(g.ID, local.ID) {
			return g, true
		}
	}
	for _, g := range saved.Groups {
		if g.SortOrder == local.SortOrder && g.Name == local.Name {
			return g, true
		}
	}
	return domain.Group{}, false
}

// savedRow is savedGroup for a row inside an already matched group.
func savedRow(saved domain.Group, local domain.Row) (domain.Row, bool) {
	for _, r := range saved.Rows {
		if domain.SameID(r.ID, local.ID) {
			return r, true
		}
	}
	for _, r := range saved.Rows {
		if r.SortOrder == local.SortOrder && r.Feature == local.Feature {
			return r, true
		}
	}
	return domain.Row{}, false
}
