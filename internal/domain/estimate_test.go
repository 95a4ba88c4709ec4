package domain

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func TestRow_ValueAndSetValue(t *testing.T) {
	var r Row
	for i, f := range NumericFields {
		r.SetValue(f, float64(i+1))
	}
	assert.Equal(t, 1.0, r.DesignMin)
	assert.Equal(t, 5.0, r.BEMost)
	assert.Equal(t, 9.0, r.FEMax)
	for i, f := range NumericFields {
		assert.Equal(t, float64(i+1), r.Value(f), "field=%s", f)
	}

	r.SetValue(NumericField(42), 100)
	assert.Equal(t, 0.0, r.Value(NumericField(42)))
}

func TestNumericField_Names(t *testing.T) {
	assert.Equal(t, "feMost", FEMost.String())
	assert.Equal(t, "fe_most", FEMost.WireName())
	assert.Equal(t, TrackFrontend, FEMost.Track())
	assert.Equal(t, TrackDesign, DesignMax.Track())

	f, ok := ParseNumericField("be_max")
	require.True(t, ok)
	assert.Equal(t, BEMax, f)

	f, ok = ParseNumericField("designMost")
	require.True(t, ok)
	assert.Equal(t, DesignMost, f)

	_, ok = ParseNumericField("qaMin")
	assert.False(t, ok)
}

func TestTrack_Fields(t *testing.T) {
	lo, mid, hi := TrackBackend.Fields()
	assert.Equal(t, BEMin, lo)
	assert.Equal(t, BEMost, mid)
	assert.Equal(t, BEMax, hi)
}

func TestGroup_SortedRows(t *testing.T) {
	g := Group{Rows: []Row{
		{Feature: "c", SortOrder: 2},
		{Feature: "a", SortOrder: 0},
		{Feature: "b", SortOrder: 1},
	}}
	sorted := g.SortedRows()
	require.Len(t, sorted, 3)
	assert.Equal(t, "a", sorted[0].Feature)
	assert.Equal(t, "b", sorted[1].Feature)
	assert.Equal(t, "c", sorted[2].Feature)
	assert.Equal(t, "c", g.Rows[0].Feature, "original slice is untouched")
}

func TestEstimate_CloneIsDeep(t *testing.T) {
	e := Estimate{
		ID:   PersistedID(1),
		Name: "Plan",
		Groups: []Group{{
			ID:   PersistedID(2),
			Name: "Auth",
			Rows: []Row{{ID: PersistedID(3), Feature: "Login"}},
		}},
	}
	c := e.Clone()
	c.Groups[0].Name = "Billing"
	c.Groups[0].Rows[0].Feature = "Invoices"

	assert.Equal(t, "Auth", e.Groups[0].Name)
	assert.Equal(t, "Login", e.Groups[0].Rows[0].Feature)
	assert.Equal(t, 1, e.RowCount())
}

func TestCloneGroups_NilBecomesEmpty(t *testing.T) {
	out := CloneGroups(nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestFindGroupAndRow(t *testing.T) {
	groups := []Group{{ID: PendingID("a")}, {ID: PersistedID(5)}}
	assert.Equal(t, 1, FindGroup(groups, PendingID("5")))
	assert.Equal(t, -1, FindGroup(groups, PendingID("zz")))

	rows := []Row{{ID: PersistedID(10)}}
	assert.Equal(t, 0, FindRow(rows, ParseID("10")))
	assert.Equal(t, -1, FindRow(rows, ParseID("11")))
}

func TestRowUpdate_Apply(t *testing.T) {
	r := Row{Feature: "Login", DesignMin: 1, FEMost: 2}

	assert.True(t, SetValue(FEMost, 5).Apply(&r))
	assert.Equal(t, 5.0, r.FEMost)
	assert.Equal(t, 1.0, r.DesignMin, "other fields unchanged")
	assert.Equal(t, "Login", r.Feature)

	assert.True(t, SetFeature("Signup").Apply(&r))
	assert.True(t, SetAssumptions("OAuth only").Apply(&r))
	assert.True(t, SetSortOrder(3).Apply(&r))
	assert.Equal(t, "Signup", r.Feature)
	assert.Equal(t, "OAuth only", r.Assumptions)
	assert.Equal(t, 3, r.SortOrder)

	assert.False(t, RowUpdate{}.Apply(&r))
	assert.False(t, SetValue(NumericField(99), 1).Apply(&r))
}

func TestApplyAll(t *testing.T) {
	var r Row
	changed := ApplyAll(&r, []RowUpdate{SetFeature("x"), SetValue(BEMax, 8)})
	assert.True(t, changed)
	assert.Equal(t, "x", r.Feature)
	assert.Equal(t, 8.0, r.BEMax)

	assert.False(t, ApplyAll(&r, nil))
}

func TestGenerateID(t *testing.T) {
	id := generateIDAt(testNow)
	prefix := strconv.FormatInt(testNow.UnixMilli(), 36)
	assert.True(t, strings.HasPrefix(id, prefix))
	assert.Len(t, id, len(prefix)+idSuffixLen)

	seen := make(map[string]bool)
	for range 200 {
		id := GenerateID()
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestNewRowAndGroup(t *testing.T) {
	r := NewRow(SetFeature("Search"), SetValue(DesignMost, 2))
	assert.False(t, r.ID.IsPersisted())
	assert.NotEmpty(t, r.ID.String())
	assert.Equal(t, "Search", r.Feature)
	assert.Equal(t, 2.0, r.DesignMost)
	assert.Equal(t, 0, r.SortOrder)

	g := NewGroup("Backend")
	assert.NotEmpty(t, g.ID.String())
	assert.Equal(t, "Backend", g.Name)
	assert.NotNil(t, g.Rows)
	assert.Empty(t, g.Rows)
}

func TestDeref(t *testing.T) {
	name := "Login"
	zero := 0.0
	assert.Equal(t, "Login", Deref(&name, "fallback"))
	assert.Equal(t, "fallback", Deref[string](nil, "fallback"))
	assert.Equal(t, 0.0, Deref(&zero, 7))
}

func TestRenumber(t *testing.T) {
	groups := []Group{{Name: "c", SortOrder: 7}, {Name: "a", SortOrder: 1}, {Name: "b", SortOrder: 4}}
	RenumberGroups(groups)
	assert.Equal(t, []int{2, 0, 1}, []int{groups[0].SortOrder, groups[1].SortOrder, groups[2].SortOrder})

	rows := []Row{{Feature: "x", SortOrder: 3}, {Feature: "y", SortOrder: 3}, {Feature: "z", SortOrder: 0}}
	RenumberRows(rows)
	assert.Equal(t, []int{1, 2, 0}, []int{rows[0].SortOrder, rows[1].SortOrder, rows[2].SortOrder})
}
