package storage

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/friendgraph/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBadger_InMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	b, err := OpenBadger(BadgerOptions{InMemory: true}, nil)
	require.NoError(t, err)
	defer b.Close()

	_, err = b.Get(ctx, "graph")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, b.Put(ctx, "graph", []byte(`{"a":["b"],"b":["a"]}`)))
	got, err := b.Get(ctx, "graph")
	require.NoError(t, err)
	assert.Equal(t, `{"a":["b"],"b":["a"]}`, string(got))
}

func TestBadger_PersistentReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	b, err := OpenBadger(BadgerOptions{Dir: dir}, logging.Nop{})
	require.NoError(t, err)
	require.NoError(t, b.Put(ctx, "users", []byte(`[]`)))
	require.NoError(t, b.Close())

	b, err = OpenBadger(BadgerOptions{Dir: dir}, logging.Nop{})
	require.NoError(t, err)
	defer b.Close()

	got, err := b.Get(ctx, "users")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))
}

func TestBadger_RequiresDir(t *testing.T) {
	_, err := OpenBadger(BadgerOptions{}, nil)
	assert.Error(t, err)
}
