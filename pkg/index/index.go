package index

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/harrisonrobin/tasklist/pkg/storage"
)

// RecordKey names the record holding the event index.
const RecordKey = "events"

// EventIndex maps task ids to the calendar events mirroring them.
type EventIndex struct {
	Mappings map[string]string
	adapter  storage.Adapter
	mu       sync.RWMutex
	dirty    bool
}

// NewEventIndex loads the index stored in a. A missing record starts empty.
func NewEventIndex(a storage.Adapter) (*EventIndex, error) {
	idx := &EventIndex{
		Mappings: make(map[string]string),
		adapter:  a,
	}

	b, err := a.Get(RecordKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return idx, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(b, &idx.Mappings); err != nil {
		return nil, fmt.Errorf("failed to decode event index: %w", err)
	}
	if idx.Mappings == nil {
		idx.Mappings = make(map[string]string)
	}
	return idx, nil
}

// Save writes the index back if it changed since the last save.
func (idx *EventIndex) Save() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if !idx.dirty {
		return nil
	}

	b, err := json.Marshal(idx.Mappings)
	if err != nil {
		return err
	}
	if err := idx.adapter.Set(RecordKey, b); err != nil {
		return err
	}
	idx.dirty = false
	return nil
}

func (idx *EventIndex) Get(taskID int64) string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.Mappings[key(taskID)]
}

func (idx *EventIndex) Set(taskID int64, eventID string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	k := key(taskID)
	if idx.Mappings[k] != eventID {
		idx.Mappings[k] = eventID
		idx.dirty = true
	}
}

func (idx *EventIndex) Remove(taskID int64) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	k := key(taskID)
	if _, exists := idx.Mappings[k]; exists {
		delete(idx.Mappings, k)
		idx.dirty = true
	}
}

// TaskIDs returns the indexed task ids in ascending order.
func (idx *EventIndex) TaskIDs() []int64 {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	ids := make([]int64, 0, len(idx.Mappings))
	for k := range idx.Mappings {
		id, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func key(taskID int64) string {
	return strconv.FormatInt(taskID, 10)
}
