package stats

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticGraph map[string][]string

func (g staticGraph) Snapshot() map[string][]string { return g }

func TestCompute_Star(t *testing.T) {
	got := New(staticGraph{
		"A": {"B", "C"},
		"B": {"A"},
		"C": {"A"},
	}).Compute()

	require.NotNil(t, got.MaxUserID)
	require.NotNil(t, got.MinUserID)
	assert.Equal(t, "A", *got.MaxUserID)
	assert.Equal(t, 2, got.MaxFriends)
	assert.Equal(t, "B", *got.MinUserID)
	assert.Equal(t, 1, got.MinFriends)
	assert.InDelta(t, 4.0/3.0, got.AvgFriends, 1e-9)
}

func TestCompute_TiesPickSmallestID(t *testing.T) {
	got := Summarize(map[string][]string{
		"c": {"d"},
		"d": {"c"},
		"a": {"b"},
		"b": {"a"},
	})

	assert.Equal(t, "a", *got.MaxUserID)
	assert.Equal(t, "a", *got.MinUserID)
	assert.Equal(t, 1, got.MaxFriends)
	assert.Equal(t, 1.0, got.AvgFriends)
}

func TestCompute_IsolatedNodes(t *testing.T) {
	got := Summarize(map[string][]string{"x": {}, "y": {"z"}, "z": {"y"}})

	assert.Equal(t, "y", *got.MaxUserID)
	assert.Equal(t, "x", *got.MinUserID)
	assert.Equal(t, 0, got.MinFriends)
	assert.InDelta(t, 2.0/3.0, got.AvgFriends, 1e-9)
}

func TestCompute_EmptyGraphEncodesNulls(t *testing.T) {
	got := New(staticGraph{}).Compute()

	b, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{"max_user_id":null,"max_friends":0,"min_user_id":null,"min_friends":0,"avg_friends":0}`, string(b))
}
