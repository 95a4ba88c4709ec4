package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/estimo/internal/domain"
	"github.com/alexanderramin/estimo/internal/store"
	"github.com/alexanderramin/estimo/internal/testutil"
	"github.com/alexanderramin/estimo/internal/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const layoutYAML = `name: Web app
groups:
  - name: Auth
    rows:
      - feature: Login
        design: [1, 2, 3]
        backend: [2, 3, 5]
      - feature: Password reset
        backend: [1, 1.5, 2]
  - name: Reporting
`

func writeLayout(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "layout.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func seedWebTemplate(backend *testutil.Backend) domain.ID {
	return backend.SeedTemplate("Web", []domain.Group{
		testutil.NewTestGroup("Auth",
			testutil.NewTestRow("Login", testutil.WithTrack(domain.TrackBackend, 2, 3, 5)),
			testutil.NewTestRow("Logout"),
		),
	})
}

func templateRows(tmpl wire.Template, group int) []string {
	var out []string
	for _, r := range wire.ToGroups(tmpl.Data)[group].SortedRows() {
		out = append(out, r.Feature)
	}
	return out
}

func TestTemplateCreate_FromLayout(t *testing.T) {
	app, backend := remoteApp(t)

	out, err := executeCmd(t, app, "template", "create", "--from", writeLayout(t, layoutYAML))
	require.NoError(t, err)
	assert.Contains(t, out, "Created template Web app")
	assert.Contains(t, out, "with 2 groups")

	stored := backend.Templates()
	require.Len(t, stored, 1)
	assert.Equal(t, "Web app", *stored[0].Name)
	assert.Equal(t, []string{"Login", "Password reset"}, templateRows(stored[0], 0))
}

func TestTemplateCreate_InvalidLayout(t *testing.T) {
	app, backend := remoteApp(t)

	bad := "name: Broken\ngroups:\n  - name: G\n    rows:\n      - feature: X\n        design: [1, 2]\n"
	_, err := executeCmd(t, app, "template", "create", "--from", writeLayout(t, bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid layout")
	assert.Empty(t, backend.Templates())
}

func TestTemplateCreate_EmptyGetsDefaultGroup(t *testing.T) {
	app, backend := remoteApp(t)

	_, err := executeCmd(t, app, "template", "create", "Blank")
	require.NoError(t, err)

	stored := backend.Templates()
	require.Len(t, stored, 1)
	require.Len(t, stored[0].Data, 1)
	assert.Equal(t, domain.DefaultGroupName, *stored[0].Data[0].Name)
}

func TestTemplateCreate_NeedsName(t *testing.T) {
	app, _ := remoteApp(t)
	_, err := executeCmd(t, app, "template", "create")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "template name is required")
}

func TestTemplateCreate_FromEstimate(t *testing.T) {
	app, backend := remoteApp(t)
	backend.SeedEstimate(testutil.NewTestEstimate("Shop",
		testutil.WithGroups(testutil.NewTestGroup("Cart", testutil.NewTestRow("Checkout"))),
	))

	_, err := executeCmd(t, app, "template", "create", "Shop template", "--from-estimate", "Shop")
	require.NoError(t, err)

	stored := backend.Templates()
	require.Len(t, stored, 1)
	assert.Equal(t, "Shop template", *stored[0].Name)
	assert.Equal(t, []string{"Checkout"}, templateRows(stored[0], 0))
	// Template content carries no identities.
	assert.Nil(t, stored[0].Data[0].ID)
}

func TestTemplateListAndShow(t *testing.T) {
	app, backend := remoteApp(t)
	id := seedWebTemplate(backend)

	out, err := executeCmd(t, app, "template", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Web")

	out, err = executeCmd(t, app, "template", "show", id.String())
	require.NoError(t, err)
	assert.Contains(t, out, "AUTH")
	assert.Contains(t, out, "2 / 3 / 5")

	out, err = executeCmd(t, app, "template", "show", "web", "--json")
	require.NoError(t, err)
	var shown wire.Template
	require.NoError(t, json.Unmarshal([]byte(out), &shown))
	assert.Equal(t, "Web", *shown.Name)
	require.Len(t, shown.Data, 1)
	assert.Nil(t, shown.Data[0].ID)

	out, err = executeCmd(t, app, "template", "show", "web", "--yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "name: Web")
	assert.Contains(t, out, "backend: [2, 3, 5]")
}

func TestTemplateEditor_GroupCommands(t *testing.T) {
	app, backend := remoteApp(t)
	id := seedWebTemplate(backend).String()

	_, err := executeCmd(t, app, "template", "group", "add", id, "QA")
	require.NoError(t, err)
	require.Len(t, backend.Templates()[0].Data, 2)

	_, err = executeCmd(t, app, "template", "group", "rename", id, "2", "Testing")
	require.NoError(t, err)
	groups := wire.ToGroups(backend.Templates()[0].Data)
	assert.Equal(t, "Testing", domain.SortGroups(groups)[1].Name)

	_, err = executeCmd(t, app, "template", "group", "remove", id, "1")
	require.NoError(t, err)
	groups = wire.ToGroups(backend.Templates()[0].Data)
	require.Len(t, groups, 1)
	assert.Equal(t, "Testing", groups[0].Name)

	_, err = executeCmd(t, app, "template", "group", "remove", id, "5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no group 5")
}

func TestTemplateEditor_RowCommands(t *testing.T) {
	app, backend := remoteApp(t)
	id := seedWebTemplate(backend).String()

	_, err := executeCmd(t, app, "template", "row", "add", id, "1", "--feature", "Signup", "--design", "1,2,3")
	require.NoError(t, err)
	assert.Equal(t, []string{"Login", "Logout", "Signup"}, templateRows(backend.Templates()[0], 0))

	_, err = executeCmd(t, app, "template", "row", "update", id, "1", "2", "--feature", "Sign out", "--set", "feMost=4")
	require.NoError(t, err)
	rows := wire.ToGroups(backend.Templates()[0].Data)[0].SortedRows()
	assert.Equal(t, "Sign out", rows[1].Feature)
	assert.Equal(t, 4.0, rows[1].FEMost)

	_, err = executeCmd(t, app, "template", "row", "remove", id, "1", "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Sign out", "Signup"}, templateRows(backend.Templates()[0], 0))

	_, err = executeCmd(t, app, "template", "row", "remove", id, "1", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid position")
}

func TestTemplateRename(t *testing.T) {
	app, backend := remoteApp(t)
	id := seedWebTemplate(backend).String()

	_, err := executeCmd(t, app, "template", "rename", id, "Web v2")
	require.NoError(t, err)
	assert.Equal(t, "Web v2", *backend.Templates()[0].Name)
	assert.Equal(t, []string{"Login", "Logout"}, templateRows(backend.Templates()[0], 0))
}

func TestTemplateApply(t *testing.T) {
	app, backend := remoteApp(t)
	id := seedWebTemplate(backend).String()

	out, err := executeCmd(t, app, "template", "apply", id, "Client X")
	require.NoError(t, err)
	assert.Contains(t, out, "Created estimate Client X")
	assert.Contains(t, out, "(2 rows)")

	stored := backend.Estimates()
	require.Len(t, stored, 1)
	assert.Equal(t, "Client X", stored[0].Name)
}

func TestTemplateDelete(t *testing.T) {
	app, backend := remoteApp(t)
	id := seedWebTemplate(backend).String()

	_, err := executeCmd(t, app, "template", "delete", id)
	require.ErrorIs(t, err, errNotInteractive)

	_, err = executeCmd(t, app, "template", "delete", id, "--yes")
	require.NoError(t, err)
	assert.Empty(t, backend.Templates())
}

func TestTemplateShow_Unknown(t *testing.T) {
	app, _ := remoteApp(t)
	_, err := executeCmd(t, app, "template", "show", "nothing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "template not found")
}

func TestTemplates_WithoutBackend(t *testing.T) {
	app, _ := localApp(t)

	out, err := executeCmd(t, app, "template", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No templates found.")

	_, err = executeCmd(t, app, "template", "create", "X")
	require.ErrorIs(t, err, store.ErrNoBackend)
}
