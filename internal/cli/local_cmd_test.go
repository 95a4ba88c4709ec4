package cli

import (
	"testing"

	"github.com/alexanderramin/estimo/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStatusAndClear(t *testing.T) {
	app, conn := localApp(t)

	out, err := executeCmd(t, app, "local", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "No local data.")

	_, err = executeCmd(t, app, "estimate", "create", "Draft")
	require.NoError(t, err)

	out, err = executeCmd(t, app, "local", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "LOCAL DATA")
	assert.Contains(t, out, store.SnapshotKey)

	_, err = executeCmd(t, app, "local", "clear")
	require.ErrorIs(t, err, errNotInteractive)

	out, err = executeCmd(t, app, "local", "clear", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Local estimates cleared.")

	fresh := appOnDB(t, conn)
	out, err = executeCmd(t, fresh, "estimate", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No estimates found.")
}

func TestLocalCommands_WithoutDatabase(t *testing.T) {
	app, _ := remoteApp(t)
	_, err := executeCmd(t, app, "local", "status")
	require.ErrorIs(t, err, errNoLocalData)
}
