// Package store owns the ordered task list and every operation on it.
//
// A Store is not safe for concurrent use. Callers drive it from a single
// goroutine, one operation at a time, and each operation runs to completion
// before returning. Every mutation hands a snapshot of the full list to the
// Store's Notifier.
package store

import (
	"log"
	"strings"
	"time"

	"github.com/harrisonrobin/tasklist/pkg/model"
	"github.com/harrisonrobin/tasklist/pkg/storage"
)

type Store struct {
	tasks    []model.Task
	session  *session
	drag     *dragIntent
	notifier Notifier
	now      func() time.Time
	lastID   int64
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces the clock used to derive new task ids.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New returns a Store holding a copy of tasks. Later duplicates of an id are
// dropped. A nil notifier disables change notification.
func New(tasks []model.Task, n Notifier, opts ...Option) *Store {
	s := &Store{
		notifier: n,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	seen := make(map[int64]bool, len(tasks))
	for _, t := range tasks {
		if seen[t.ID] {
			log.Printf("Warning: dropping task with duplicate id %d", t.ID)
			continue
		}
		seen[t.ID] = true
		s.tasks = append(s.tasks, t)
		if t.ID > s.lastID {
			s.lastID = t.ID
		}
	}
	return s
}

// Open restores the list stored in a and persists every later change back to it.
// An absent or unreadable snapshot starts an empty list.
func Open(a storage.Adapter, opts ...Option) *Store {
	return New(Load(a), &Snapshotter{Adapter: a}, opts...)
}

// Tasks returns a copy of the list in display order.
func (s *Store) Tasks() []model.Task {
	return append([]model.Task(nil), s.tasks...)
}

func (s *Store) Len() int {
	return len(s.tasks)
}

// Get returns the task with the given id.
func (s *Store) Get(id int64) (model.Task, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, false
	}
	return s.tasks[i], true
}

// AddTask appends a new task. It does nothing and returns false when both
// title and description are blank.
func (s *Store) AddTask(title, description string, start, end model.Date) (model.Task, bool) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" && description == "" {
		return model.Task{}, false
	}

	t := model.Task{
		ID:          s.nextID(),
		Title:       title,
		Description: description,
		StartDate:   start,
		EndDate:     end,
	}
	s.tasks = append(s.tasks, t)
	s.changed()
	return t, true
}

// DeleteTask removes the task with the given id, cancelling an editing
// session open on it. Unknown ids are ignored.
func (s *Store) DeleteTask(id int64) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	if s.session != nil && s.session.id == id {
		s.CancelEditing()
	}
	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	s.changed()
	return true
}

// ToggleCompleted flips the completed flag of the task with the given id.
func (s *Store) ToggleCompleted(id int64) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	s.changed()
	return true
}

// Filter returns the tasks whose title contains term, ignoring case, in list
// order. An empty term matches everything.
func (s *Store) Filter(term string) []model.Task {
	return s.View(term).Tasks()
}

// View captures the filtered projection of the list for display. Positions in
// a View are translated to task ids before they address the Store.
func (s *Store) View(term string) View {
	needle := strings.ToLower(term)
	v := View{Term: term}
	for _, t := range s.tasks {
		if strings.Contains(strings.ToLower(t.Title), needle) {
			v.tasks = append(v.tasks, t)
		}
	}
	return v
}

func (s *Store) indexOf(id int64) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) valid(pos int) bool {
	return pos >= 0 && pos < len(s.tasks)
}

// nextID derives an id from the creation time in milliseconds, bumped past
// the largest id handed out so far.
func (s *Store) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *Store) changed() {
	if s.notifier != nil {
		s.notifier.Changed(s.Tasks())
	}
}

// View is a filtered, read-only projection of the list.
type View struct {
	Term  string
	tasks []model.Task
}

func (v View) Tasks() []model.Task {
	return append([]model.Task(nil), v.tasks...)
}

func (v View) Len() int {
	return len(v.tasks)
}

// At returns the task displayed at pos.
func (v View) At(pos int) (model.Task, bool) {
	if pos < 0 || pos >= len(v.tasks) {
		return model.Task{}, false
	}
	return v.tasks[pos], true
}

// IDAt returns the id of the task displayed at pos.
func (v View) IDAt(pos int) (int64, bool) {
	t, ok := v.At(pos)
	return t.ID, ok
}
