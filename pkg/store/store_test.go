package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrisonrobin/tasklist/pkg/model"
)

var epoch = time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return epoch }

// recorder counts change notifications and keeps the last snapshot.
type recorder struct {
	calls int
	last  []model.Task
}

func (r *recorder) Changed(tasks []model.Task) {
	r.calls++
	r.last = tasks
}

func newTestStore(t *testing.T, titles ...string) (*Store, *recorder) {
	t.Helper()
	rec := &recorder{}
	s := New(nil, rec, WithClock(fixedClock))
	for _, title := range titles {
		_, ok := s.AddTask(title, "", "", "")
		require.True(t, ok)
	}
	rec.calls = 0
	return s, rec
}

func titles(tasks []model.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}

func TestAddTask(t *testing.T) {
	s, rec := newTestStore(t)

	task, ok := s.AddTask("  Buy milk ", "  two litres ", "2026-10-17", "")
	require.True(t, ok)
	assert.Equal(t, "Buy milk", task.Title)
	assert.Equal(t, "two litres", task.Description)
	assert.False(t, task.Completed)
	assert.Equal(t, model.Date("2026-10-17"), task.StartDate)
	assert.True(t, task.EndDate.IsZero())
	assert.Equal(t, epoch.UnixMilli(), task.ID)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 1, rec.calls)
	assert.Equal(t, []model.Task{task}, rec.last)
}

func TestAddTaskDescriptionOnly(t *testing.T) {
	s, _ := newTestStore(t)

	task, ok := s.AddTask("", "just notes", "", "")
	require.True(t, ok)
	assert.Equal(t, "", task.Title)
	assert.Equal(t, 1, s.Len())
}

func TestAddTaskRejectsBlankInput(t *testing.T) {
	s, rec := newTestStore(t, "keep")

	_, ok := s.AddTask("   ", "", "2026-01-01", "")
	assert.False(t, ok)
	_, ok = s.AddTask("", "\t\n", "", "")
	assert.False(t, ok)

	assert.Equal(t, 1, s.Len())
	assert.Zero(t, rec.calls)
}

func TestAddTaskUniqueIDsUnderRapidCalls(t *testing.T) {
	s, _ := newTestStore(t)

	seen := map[int64]bool{}
	for i := 0; i < 100; i++ {
		task, ok := s.AddTask("task", "", "", "")
		require.True(t, ok)
		require.False(t, seen[task.ID], "duplicate id %d", task.ID)
		seen[task.ID] = true
	}
	assert.Equal(t, 100, s.Len())
}

func TestAddTaskIDsAvoidRestoredIDs(t *testing.T) {
	future := epoch.Add(time.Hour).UnixMilli()
	s := New([]model.Task{{ID: future, Title: "restored"}}, nil, WithClock(fixedClock))

	task, ok := s.AddTask("new", "", "", "")
	require.True(t, ok)
	assert.Equal(t, future+1, task.ID)
}

func TestNewDropsDuplicateIDs(t *testing.T) {
	s := New([]model.Task{{ID: 1, Title: "a"}, {ID: 1, Title: "b"}, {ID: 2, Title: "c"}}, nil)
	assert.Equal(t, []string{"a", "c"}, titles(s.Tasks()))
}

func TestDeleteTask(t *testing.T) {
	s, rec := newTestStore(t, "A", "B", "C")
	b := s.Tasks()[1]

	assert.True(t, s.DeleteTask(b.ID))
	assert.Equal(t, []string{"A", "C"}, titles(s.Tasks()))
	_, found := s.Get(b.ID)
	assert.False(t, found)
	assert.Equal(t, 1, rec.calls)

	before := s.Tasks()
	assert.False(t, s.DeleteTask(b.ID))
	assert.Equal(t, before, s.Tasks())
	assert.Equal(t, 1, rec.calls)
}

func TestToggleCompleted(t *testing.T) {
	s, rec := newTestStore(t, "A", "B")
	original := s.Tasks()
	id := original[0].ID

	assert.True(t, s.ToggleCompleted(id))
	got, _ := s.Get(id)
	assert.True(t, got.Completed)
	assert.Equal(t, original[1], s.Tasks()[1])

	assert.True(t, s.ToggleCompleted(id))
	assert.Equal(t, original, s.Tasks())
	assert.Equal(t, 2, rec.calls)

	assert.False(t, s.ToggleCompleted(-1))
	assert.Equal(t, 2, rec.calls)
}

func TestFilter(t *testing.T) {
	s, rec := newTestStore(t, "Todo one", "groceries", "TOTAL recall", "other")
	before := s.Tasks()

	assert.Equal(t, []string{"Todo one", "TOTAL recall"}, titles(s.Filter("to")))
	assert.Equal(t, titles(before), titles(s.Filter("")))
	assert.Empty(t, s.Filter("zzz"))

	assert.Equal(t, before, s.Tasks())
	assert.Zero(t, rec.calls)
}

func TestFilterMatchesTitleOnly(t *testing.T) {
	s, _ := newTestStore(t)
	s.AddTask("alpha", "needle in description", "", "")

	assert.Empty(t, s.Filter("needle"))
}

func TestView(t *testing.T) {
	s, _ := newTestStore(t, "Apple", "banana", "apricot")
	v := s.View("ap")

	assert.Equal(t, 2, v.Len())
	id, ok := v.IDAt(1)
	require.True(t, ok)
	got, _ := s.Get(id)
	assert.Equal(t, "apricot", got.Title)

	_, ok = v.IDAt(2)
	assert.False(t, ok)
	_, ok = v.At(-1)
	assert.False(t, ok)
}
