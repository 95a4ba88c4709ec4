package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/estimo/internal/domain"
	"github.com/alexanderramin/estimo/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func sampleEstimate() domain.Estimate {
	api := testutil.NewTestGroup("API",
		testutil.NewTestRow("Login", testutil.WithTrack(domain.TrackBackend, 2, 4, 8)),
		testutil.NewTestRow("Search",
			testutil.WithTrack(domain.TrackBackend, 1, 2, 3),
			testutil.WithAssumptions("uses the existing index and no facets at all for now"),
		),
	)
	ui := testutil.NewTestGroup("UI",
		testutil.NewTestRow("Screens", testutil.WithTrack(domain.TrackFrontend, 3, 5, 10)),
	)
	return testutil.NewTestEstimate("Q1 Plan",
		testutil.WithEstimateID(domain.PersistedID(7)),
		testutil.WithGroups(api, ui),
	)
}

func TestTable_RightAlignAndFooter(t *testing.T) {
	out := Table{
		Headers: []string{"N", "V"},
		Rows:    [][]string{{"a", "1"}, {"b", "10"}},
		Footer:  []string{"t", "11"},
		Right:   map[int]bool{1: true},
	}.Render()

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	assert.Len(t, lines, 6)
	assert.Equal(t, "a   1", lines[2])
	assert.Equal(t, "b  10", lines[3])
	assert.Equal(t, "t  11", lines[5])
}

func TestRenderTable_Empty(t *testing.T) {
	assert.Empty(t, RenderTable(nil, nil))
}

func TestFormatEstimate_ShowsTotals(t *testing.T) {
	out := FormatEstimate(sampleEstimate())

	assert.Contains(t, out, "Q1 Plan")
	assert.Contains(t, out, "#7")
	assert.Contains(t, out, "API")
	assert.Contains(t, out, "Login")
	// API backend total.
	assert.Contains(t, out, "3 / 6 / 11")
	assert.Contains(t, out, "GRAND TOTAL")
	assert.Contains(t, out, "combined")
	assert.Contains(t, out, "21")
	assert.Contains(t, out, "uses the existing index and no …")
}

func TestFormatEstimate_NoGroups(t *testing.T) {
	out := FormatEstimate(testutil.NewTestEstimate("Empty"))
	assert.Contains(t, out, "No groups yet.")
	assert.Contains(t, out, "combined")
}

func TestFormatEstimateList(t *testing.T) {
	e := sampleEstimate()
	out := FormatEstimateList([]domain.Estimate{e}, e.UpdatedAt.Add(48*time.Hour))

	assert.Contains(t, out, "ESTIMATES")
	assert.Contains(t, out, "Q1 Plan")
	assert.Contains(t, out, "6 / 11 / 21")
	assert.Contains(t, out, "2d ago")
}

func TestFormatTemplateShow_NumbersByPosition(t *testing.T) {
	tmpl := domain.Template{
		ID:   domain.PersistedID(3),
		Name: "Web app",
		Data: []domain.Group{
			testutil.NewTestGroup("Second", testutil.NewTestRow("B")),
			testutil.NewTestGroup("First", testutil.NewTestRow("A", testutil.WithTrack(domain.TrackDesign, 1, 2, 3))),
		},
	}
	tmpl.Data[0].SortOrder = 1
	tmpl.Data[1].SortOrder = 0

	out := FormatTemplateShow(tmpl)
	assert.Less(t, strings.Index(out, "FIRST"), strings.Index(out, "SECOND"))
	assert.Contains(t, out, "1 / 2 / 3")
	assert.Contains(t, out, "Web app")
}

func TestFormatTemplateList(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	out := FormatTemplateList([]domain.Template{{ID: domain.PersistedID(1), Name: "Mobile", UpdatedAt: now}}, now)
	assert.Contains(t, out, "TEMPLATES")
	assert.Contains(t, out, "Mobile")
	assert.Contains(t, out, "Today")
}

func TestModeBadge(t *testing.T) {
	assert.Contains(t, ModeBadge(true), "REMOTE")
	assert.Contains(t, ModeBadge(false), "LOCAL")
}
