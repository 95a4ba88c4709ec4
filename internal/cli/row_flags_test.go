package cli

import (
	"testing"

	"github.com/alexanderramin/estimo/internal/domain"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseRowFlags(t *testing.T, args ...string) ([]domain.RowUpdate, error) {
	t.Helper()
	var f rowFlags
	cmd := &cobra.Command{Use: "x"}
	f.bind(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return f.updates(cmd)
}

func TestRowFlags_OnlyChangedFlags(t *testing.T) {
	updates, err := parseRowFlags(t, "--feature", "")
	require.NoError(t, err)
	require.Len(t, updates, 1)

	r := domain.Row{Feature: "old", Assumptions: "kept"}
	assert.True(t, domain.ApplyAll(&r, updates))
	assert.Equal(t, "", r.Feature)
	assert.Equal(t, "kept", r.Assumptions)
}

func TestRowFlags_TracksAndSet(t *testing.T) {
	updates, err := parseRowFlags(t, "--design", "1, 2, 3", "--set", "be_max=9", "--set", "feMin=0.5")
	require.NoError(t, err)

	var r domain.Row
	domain.ApplyAll(&r, updates)
	assert.Equal(t, []float64{1, 2, 3}, []float64{r.DesignMin, r.DesignMost, r.DesignMax})
	assert.Equal(t, 9.0, r.BEMax)
	assert.Equal(t, 0.5, r.FEMin)
}

func TestRowFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"short triple", []string{"--backend", "1,2"}, "expected min,most,max"},
		{"not a number", []string{"--frontend", "1,x,3"}, `"x" is not a number`},
		{"negative", []string{"--design", "-1,2,3"}, "non-negative"},
		{"infinite", []string{"--set", "feMost=Inf"}, "finite"},
		{"no equals", []string{"--set", "feMost"}, "expected field=value"},
		{"unknown field", []string{"--set", "cost=3"}, `unknown field "cost"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseRowFlags(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParsePosition(t *testing.T) {
	n, err := parsePosition(" 3 ")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	for _, bad := range []string{"0", "-1", "one", ""} {
		_, err := parsePosition(bad)
		assert.Error(t, err, bad)
	}
}
