package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrisonrobin/tasklist/pkg/storage"
)

// countingAdapter counts writes to the wrapped adapter.
type countingAdapter struct {
	storage.Adapter
	sets int
}

func (c *countingAdapter) Set(key string, value []byte) error {
	c.sets++
	return c.Adapter.Set(key, value)
}

func TestEventIndexPersists(t *testing.T) {
	a := &countingAdapter{Adapter: storage.NewMemory()}

	idx, err := NewEventIndex(a)
	require.NoError(t, err)
	assert.Empty(t, idx.TaskIDs())

	idx.Set(30, "evt-c")
	idx.Set(10, "evt-a")
	idx.Set(20, "evt-b")
	idx.Remove(20)
	require.NoError(t, idx.Save())
	assert.Equal(t, 1, a.sets)

	// clean index skips the write
	idx.Set(10, "evt-a")
	require.NoError(t, idx.Save())
	assert.Equal(t, 1, a.sets)

	reloaded, err := NewEventIndex(a)
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 30}, reloaded.TaskIDs())
	assert.Equal(t, "evt-c", reloaded.Get(30))
	assert.Equal(t, "", reloaded.Get(20))
}

func TestEventIndexMalformed(t *testing.T) {
	mem := storage.NewMemory()
	require.NoError(t, mem.Set(RecordKey, []byte("not json")))

	_, err := NewEventIndex(mem)
	assert.Error(t, err)
}
