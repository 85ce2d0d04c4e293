package store

import "github.com/harrisonrobin/tasklist/pkg/model"

// Draft holds the editable fields of a task under edit.
type Draft struct {
	Title       string
	Description string
	StartDate   model.Date
	EndDate     model.Date
}

// session tracks the task under edit by id so that reorders and deletions of
// other tasks cannot redirect the save.
type session struct {
	id    int64
	draft Draft
}

// StartEditing opens an editing session on the task at pos, replacing any
// open session. Out of range positions are ignored.
func (s *Store) StartEditing(pos int) bool {
	if !s.valid(pos) {
		return false
	}
	return s.StartEditingID(s.tasks[pos].ID)
}

// StartEditingID opens an editing session on the task with the given id.
func (s *Store) StartEditingID(id int64) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.CancelEditing()
	t := s.tasks[i]
	s.session = &session{
		id: t.ID,
		draft: Draft{
			Title:       t.Title,
			Description: t.Description,
			StartDate:   t.StartDate,
			EndDate:     t.EndDate,
		},
	}
	return true
}

// Editing reports the current position of the task under edit.
func (s *Store) Editing() (int, bool) {
	if s.session == nil {
		return -1, false
	}
	i := s.indexOf(s.session.id)
	return i, i >= 0
}

// EditingID reports the id of the task under edit.
func (s *Store) EditingID() (int64, bool) {
	if s.session == nil {
		return 0, false
	}
	return s.session.id, true
}

// Draft returns the current draft of the open session.
func (s *Store) Draft() (Draft, bool) {
	if s.session == nil {
		return Draft{}, false
	}
	return s.session.draft, true
}

func (s *Store) SetDraftTitle(v string) {
	if s.session != nil {
		s.session.draft.Title = v
	}
}

func (s *Store) SetDraftDescription(v string) {
	if s.session != nil {
		s.session.draft.Description = v
	}
}

func (s *Store) SetDraftStartDate(v model.Date) {
	if s.session != nil {
		s.session.draft.StartDate = v
	}
}

func (s *Store) SetDraftEndDate(v model.Date) {
	if s.session != nil {
		s.session.draft.EndDate = v
	}
}

// CancelEditing discards the open session, if any.
func (s *Store) CancelEditing() {
	s.session = nil
}

// SaveEditing writes the draft over the task under edit and closes the
// session. The task's id and completed flag are left alone. Drafts are not
// validated, so a save may blank the title.
func (s *Store) SaveEditing() bool {
	if s.session == nil {
		return false
	}
	sess := s.session
	s.session = nil

	i := s.indexOf(sess.id)
	if i < 0 {
		return false
	}
	t := &s.tasks[i]
	t.Title = sess.draft.Title
	t.Description = sess.draft.Description
	t.StartDate = sess.draft.StartDate
	t.EndDate = sess.draft.EndDate
	s.changed()
	return true
}
