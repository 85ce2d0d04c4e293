package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/harrisonrobin/tasklist/pkg/model"
	"github.com/harrisonrobin/tasklist/pkg/storage"
)

// RecordKey names the record holding the task list snapshot.
const RecordKey = "tasks"

// Notifier is told about every change to the list.
type Notifier interface {
	Changed(tasks []model.Task)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(tasks []model.Task)

func (f NotifierFunc) Changed(tasks []model.Task) { f(tasks) }

// Snapshotter writes the whole list to an adapter on every change.
// Write failures are logged and otherwise ignored.
type Snapshotter struct {
	Adapter storage.Adapter
	Key     string
}

func (s *Snapshotter) Changed(tasks []model.Task) {
	key := s.Key
	if key == "" {
		key = RecordKey
	}
	b, err := Encode(tasks)
	if err != nil {
		log.Printf("Warning: could not encode task snapshot: %v", err)
		return
	}
	if err := s.Adapter.Set(key, b); err != nil {
		log.Printf("Warning: could not persist task snapshot: %v", err)
	}
}

// Encode serialises the list as a JSON array.
func Encode(tasks []model.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []model.Task{}
	}
	return json.Marshal(tasks)
}

// Decode parses a JSON array of tasks. A JSON null decodes to an empty list.
func Decode(b []byte) ([]model.Task, error) {
	var tasks []model.Task
	if err := json.Unmarshal(b, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode task snapshot: %w", err)
	}
	return tasks, nil
}

// Load reads the stored list from a. Absent or malformed data yields an
// empty list.
func Load(a storage.Adapter) []model.Task {
	b, err := a.Get(RecordKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("Warning: could not read stored tasks: %v", err)
		}
		return nil
	}
	tasks, err := Decode(b)
	if err != nil {
		log.Printf("Warning: ignoring malformed task snapshot: %v", err)
		return nil
	}
	return tasks
}
