package taskwarrior

import (
	"fmt"
	"strings"
	"time"

	"github.com/harrisonrobin/tasklist/pkg/model"
)

const (
	PENDING   = "pending"
	COMPLETED = "completed"
	WAITING   = "waiting"
	DELETED   = "deleted"
)

type CustomTime struct {
	time.Time
}

const taskwarriorTimeLayout = "20060102T150405Z" // YYYYMMDDTHHMMSSZ, 'Z' indicates UTC

// UnmarshalJSON implements the json.Unmarshaler interface for CustomTime.
func (ct *CustomTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "0" {
		ct.Time = time.Time{}
		return nil
	}

	t, err := time.Parse(taskwarriorTimeLayout, s)
	if err != nil {
		return fmt.Errorf("failed to parse Taskwarrior time string '%s': %w", s, err)
	}
	ct.Time = t
	return nil
}

// MarshalJSON implements the json.Marshaler interface for CustomTime.
func (ct CustomTime) MarshalJSON() ([]byte, error) {
	if ct.Time.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + ct.Time.Format(taskwarriorTimeLayout) + `"`), nil
}

// date converts a Taskwarrior timestamp to a calendar date in loc.
func (ct *CustomTime) date(loc *time.Location) model.Date {
	if ct == nil || ct.IsZero() {
		return ""
	}
	return model.NewDate(ct.In(loc))
}

type Annotation struct {
	Description string      `json:"description"`
	Entry       *CustomTime `json:"entry"`
}

// Task is one entry of `task export`.
type Task struct {
	UUID        string       `json:"uuid"`
	Description string       `json:"description"`
	Due         *CustomTime  `json:"due,omitempty"`
	Scheduled   *CustomTime  `json:"scheduled,omitempty"`
	Status      string       `json:"status"`
	Project     string       `json:"project,omitempty"`
	Tags        []string     `json:"tags,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty"`
}

// ToModel converts the entry to an unsaved task. Deleted entries are
// reported as not importable. Scheduled maps to the start date and due to
// the end date, both taken in loc.
func (t Task) ToModel(loc *time.Location) (model.Task, bool) {
	if t.Status == DELETED {
		return model.Task{}, false
	}
	notes := make([]string, 0, len(t.Annotations))
	for _, ann := range t.Annotations {
		notes = append(notes, ann.Description)
	}
	return model.Task{
		Title:       t.Description,
		Description: strings.Join(notes, "\n"),
		Completed:   t.Status == COMPLETED,
		StartDate:   t.Scheduled.date(loc),
		EndDate:     t.Due.date(loc),
	}, true
}
