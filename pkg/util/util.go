package util

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/harrisonrobin/tasklist/pkg/model"
	"google.golang.org/api/calendar/v3"
)

// TaskIDProperty is the private extended property linking an event to its task.
const TaskIDProperty = "tasklist_id"

const (
	completedPrefix = "✓"
	overduePrefix   = "!"
)

var taskIDRegex = regexp.MustCompile(`ID: (\d+)`)

// Summary returns the event title for a task as of today.
func Summary(task model.Task, today time.Time) string {
	prefix := ""
	if task.Completed {
		prefix = completedPrefix
	} else if end, err := lastDay(task, today.Location()); err == nil && !end.IsZero() && end.Before(dayOf(today)) {
		prefix = overduePrefix
	}

	title := task.Title
	if title == "" {
		// description-only tasks still need something to show
		title = firstLine(task.Description)
	}
	if prefix != "" {
		return fmt.Sprintf("%s %s", prefix, title)
	}
	return title
}

// ConvertTaskToEvent builds an all-day event spanning the task's date range.
// A task with only one date covers that single day.
func ConvertTaskToEvent(task model.Task, today time.Time) (*calendar.Event, error) {
	loc := today.Location()
	start, err := task.StartDate.Time(loc)
	if err != nil {
		return nil, err
	}
	end, err := task.EndDate.Time(loc)
	if err != nil {
		return nil, err
	}

	switch {
	case start.IsZero() && end.IsZero():
		return nil, fmt.Errorf("task has no start or end date: %d", task.ID)
	case start.IsZero():
		start = end
	case end.IsZero():
		end = start
	}
	// Start and end are not ordered for us; the calendar insists.
	if end.Before(start) {
		start, end = end, start
	}

	var desc strings.Builder
	if task.Description != "" {
		desc.WriteString(task.Description)
		desc.WriteString("\n\n")
	}
	status := "pending"
	if task.Completed {
		status = "completed"
	}
	desc.WriteString(fmt.Sprintf("Status: %s\n", status))
	desc.WriteString(fmt.Sprintf("ID: %d\n", task.ID))

	return &calendar.Event{
		Summary:     Summary(task, today),
		Description: desc.String(),
		Start: &calendar.EventDateTime{
			Date: start.Format(model.DateLayout),
		},
		// all-day end dates are exclusive
		End: &calendar.EventDateTime{
			Date: end.AddDate(0, 0, 1).Format(model.DateLayout),
		},
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{
				TaskIDProperty: strconv.FormatInt(task.ID, 10),
			},
		},
	}, nil
}

// EventNeedsUpdate returns a patch holding the fields of target that differ
// from existing, or nil when the event is already current.
func EventNeedsUpdate(existing, target *calendar.Event) *calendar.Event {
	patch := &calendar.Event{}
	needsUpdate := false

	if existing.Summary != target.Summary {
		patch.Summary = target.Summary
		needsUpdate = true
	}
	if existing.Description != target.Description {
		patch.Description = target.Description
		needsUpdate = true
	}
	if eventDate(existing.Start) != eventDate(target.Start) || eventDate(existing.End) != eventDate(target.End) {
		patch.Start = target.Start
		patch.End = target.End
		needsUpdate = true
	}

	if needsUpdate {
		return patch
	}
	return nil
}

// GetTaskIDFromEventDescription parses the task ID from the event description.
func GetTaskIDFromEventDescription(description string) (int64, bool) {
	matches := taskIDRegex.FindStringSubmatch(description)
	if len(matches) < 2 {
		return 0, false
	}
	id, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func eventDate(dt *calendar.EventDateTime) string {
	if dt == nil {
		return ""
	}
	if dt.Date != "" {
		return dt.Date
	}
	return dt.DateTime
}

func lastDay(task model.Task, loc *time.Location) (time.Time, error) {
	if !task.EndDate.IsZero() {
		return task.EndDate.Time(loc)
	}
	return task.StartDate.Time(loc)
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
