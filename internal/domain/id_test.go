package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	cases := []struct {
		in        string
		persisted bool
	}{
		{"42", true},
		{"0", true},
		{"lx3k2aabc123", false},
		{"042", false},
		{"-1", false},
		{"", false},
	}
	for _, tc := range cases {
		id := ParseID(tc.in)
		assert.Equal(t, tc.persisted, id.IsPersisted(), "input=%q", tc.in)
		assert.Equal(t, tc.in, id.String(), "input=%q", tc.in)
	}
}

func TestSameID_UnifiesBothSchemes(t *testing.T) {
	assert.True(t, SameID(PendingID("42"), PersistedID(42)))
	assert.True(t, SameID(PersistedID(7), ParseID("7")))
	assert.False(t, SameID(PersistedID(7), PersistedID(8)))
	assert.False(t, SameID(PendingID("abc"), PendingID("abd")))
}

func TestID_Int(t *testing.T) {
	n, ok := PersistedID(12).Int()
	assert.True(t, ok)
	assert.Equal(t, int64(12), n)

	_, ok = PendingID("x").Int()
	assert.False(t, ok)
}

func TestID_JSON(t *testing.T) {
	type holder struct {
		ID ID `json:"id"`
	}

	data, err := json.Marshal(holder{ID: PersistedID(9)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":9}`, string(data))

	data, err = json.Marshal(holder{ID: PendingID("m1abc")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"m1abc"}`, string(data))

	var h holder
	require.NoError(t, json.Unmarshal([]byte(`{"id":15}`), &h))
	assert.True(t, h.ID.IsPersisted())
	assert.Equal(t, "15", h.ID.String())

	require.NoError(t, json.Unmarshal([]byte(`{"id":"15"}`), &h))
	assert.False(t, h.ID.IsPersisted(), "string ids keep their pending kind")

	require.NoError(t, json.Unmarshal([]byte(`{"id":null}`), &h))
	assert.True(t, h.ID.IsZero())
}
