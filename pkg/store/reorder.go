package store

import "slices"

// Reorder moves the task at source so that it ends up at target, shifting the
// tasks in between. It is a remove-then-insert, not a swap. Both positions
// must address the current list; otherwise nothing happens and Reorder
// returns false. Moving a task onto itself changes nothing but still notifies.
func (s *Store) Reorder(source, target int) bool {
	if !s.valid(source) || !s.valid(target) {
		return false
	}
	if source != target {
		moved := s.tasks[source]
		s.tasks = slices.Delete(s.tasks, source, source+1)
		s.tasks = slices.Insert(s.tasks, target, moved)
	}
	s.changed()
	return true
}

// dragIntent is an in-flight drag gesture. Both ends are held as task ids and
// resolved to positions only when the gesture ends.
type dragIntent struct {
	view   View
	source int64
	target int64
}

// BeginDrag starts a drag gesture on the task displayed at pos in v. Any
// previous gesture is dropped.
func (s *Store) BeginDrag(v View, pos int) bool {
	s.drag = nil
	id, ok := v.IDAt(pos)
	if !ok {
		return false
	}
	s.drag = &dragIntent{view: v, source: id, target: id}
	return true
}

// DragOver records the displayed position the gesture is currently over.
// It never touches the list.
func (s *Store) DragOver(pos int) bool {
	if s.drag == nil {
		return false
	}
	id, ok := s.drag.view.IDAt(pos)
	if !ok {
		return false
	}
	s.drag.target = id
	return true
}

// EndDrag finishes the gesture by moving the dragged task to the position of
// the task it was last over. The gesture is rejected if either task has
// disappeared since it started.
func (s *Store) EndDrag() bool {
	d := s.drag
	s.drag = nil
	if d == nil {
		return false
	}
	source, target := s.indexOf(d.source), s.indexOf(d.target)
	if source < 0 || target < 0 {
		return false
	}
	return s.Reorder(source, target)
}

// CancelDrag abandons the gesture in flight.
func (s *Store) CancelDrag() {
	s.drag = nil
}

// Dragging reports whether a gesture is in flight.
func (s *Store) Dragging() bool {
	return s.drag != nil
}
