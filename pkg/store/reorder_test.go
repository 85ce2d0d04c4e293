package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReorder(t *testing.T) {
	tests := []struct {
		name           string
		source, target int
		want           []string
	}{
		{"forward", 0, 2, []string{"B", "C", "A", "D"}},
		{"backward", 3, 0, []string{"D", "A", "B", "C"}},
		{"adjacent", 1, 2, []string{"A", "C", "B", "D"}},
		{"to end", 0, 3, []string{"B", "C", "D", "A"}},
		{"same position", 2, 2, []string{"A", "B", "C", "D"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, rec := newTestStore(t, "A", "B", "C", "D")

			require.True(t, s.Reorder(tt.source, tt.target))
			assert.Equal(t, tt.want, titles(s.Tasks()))
			assert.Equal(t, 1, rec.calls)
			assert.Equal(t, tt.want, titles(rec.last))
		})
	}
}

func TestReorderRejectsInvalidPositions(t *testing.T) {
	s, rec := newTestStore(t, "A", "B")

	assert.False(t, s.Reorder(2, 0))
	assert.False(t, s.Reorder(-1, 0))
	assert.False(t, s.Reorder(0, 2))
	assert.Equal(t, []string{"A", "B"}, titles(s.Tasks()))
	assert.Zero(t, rec.calls)
}

func TestDragInFilteredView(t *testing.T) {
	s, rec := newTestStore(t, "apple", "banana", "avocado", "cherry", "apricot")
	v := s.View("a")
	// displayed: apple, banana, avocado, apricot
	require.Equal(t, 4, v.Len())

	require.True(t, s.BeginDrag(v, 3))
	assert.True(t, s.DragOver(2))
	assert.True(t, s.DragOver(1))
	assert.False(t, s.DragOver(9))
	assert.Zero(t, rec.calls, "drag-over must not persist")
	assert.Equal(t, []string{"apple", "banana", "avocado", "cherry", "apricot"}, titles(s.Tasks()))

	require.True(t, s.EndDrag())
	// apricot (underlying 4) moves to banana's slot (underlying 1)
	assert.Equal(t, []string{"apple", "apricot", "banana", "avocado", "cherry"}, titles(s.Tasks()))
	assert.Equal(t, 1, rec.calls)
	assert.False(t, s.Dragging())
}

func TestDragWithoutMoveStillPersists(t *testing.T) {
	s, rec := newTestStore(t, "A", "B")

	require.True(t, s.BeginDrag(s.View(""), 1))
	require.True(t, s.EndDrag())
	assert.Equal(t, []string{"A", "B"}, titles(s.Tasks()))
	assert.Equal(t, 1, rec.calls)
}

func TestDragRejectedWhenSourceDeleted(t *testing.T) {
	s, rec := newTestStore(t, "A", "B", "C")
	v := s.View("")

	require.True(t, s.BeginDrag(v, 0))
	s.DragOver(2)
	s.DeleteTask(s.Tasks()[0].ID)
	rec.calls = 0

	assert.False(t, s.EndDrag())
	assert.Equal(t, []string{"B", "C"}, titles(s.Tasks()))
	assert.Zero(t, rec.calls)
}

func TestBeginDragInvalidPosition(t *testing.T) {
	s, _ := newTestStore(t, "A")

	assert.False(t, s.BeginDrag(s.View(""), 4))
	assert.False(t, s.Dragging())
	assert.False(t, s.DragOver(0))
	assert.False(t, s.EndDrag())
}

func TestCancelDrag(t *testing.T) {
	s, rec := newTestStore(t, "A", "B")

	require.True(t, s.BeginDrag(s.View(""), 0))
	s.DragOver(1)
	s.CancelDrag()

	assert.False(t, s.EndDrag())
	assert.Equal(t, []string{"A", "B"}, titles(s.Tasks()))
	assert.Zero(t, rec.calls)
}
