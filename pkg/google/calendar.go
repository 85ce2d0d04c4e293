package google

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/harrisonrobin/tasklist/pkg/index"
	"github.com/harrisonrobin/tasklist/pkg/model"
	"github.com/harrisonrobin/tasklist/pkg/util"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
)

// CalendarClient mirrors dated tasks into one Google Calendar.
type CalendarClient struct {
	srv        *calendar.Service
	calendarID string
	index      *index.EventIndex
}

// NewCalendarClient creates a new Google Calendar client. idx may be nil, in
// which case every lookup searches the calendar.
func NewCalendarClient(srv *calendar.Service, calendarID string, idx *index.EventIndex) *CalendarClient {
	return &CalendarClient{srv: srv, calendarID: calendarID, index: idx}
}

// SyncTask creates the task's event or patches it when it drifted.
func (c *CalendarClient) SyncTask(task model.Task, today time.Time) (*calendar.Event, error) {
	event, err := util.ConvertTaskToEvent(task, today)
	if err != nil {
		return nil, err
	}

	existing, err := c.findEvent(task.ID)
	if err != nil {
		return nil, fmt.Errorf("error searching for event: %w", err)
	}

	if existing != nil {
		patch := util.EventNeedsUpdate(existing, event)
		if patch == nil {
			c.remember(task.ID, existing.Id)
			return existing, nil
		}
		updated, err := c.PatchEvent(existing.Id, patch)
		if err != nil {
			return nil, err
		}
		c.remember(task.ID, updated.Id)
		return updated, nil
	}

	created, err := c.srv.Events.Insert(c.calendarID, event).Do()
	if err != nil {
		return nil, err
	}
	c.remember(task.ID, created.Id)
	return created, nil
}

// DeleteTask removes the event mirroring the task, if there is one.
func (c *CalendarClient) DeleteTask(taskID int64) error {
	existing, err := c.findEvent(taskID)
	if err != nil {
		return err
	}
	if existing != nil {
		if err := c.DeleteEvent(existing.Id); err != nil && !isGone(err) {
			return err
		}
	}
	if c.index != nil {
		c.index.Remove(taskID)
	}
	return nil
}

// MirrorResult counts what Mirror did.
type MirrorResult struct {
	Synced  int
	Skipped int
	Deleted int
	Failed  int
}

// Mirror brings the calendar in line with tasks: every dated task gets an
// event and indexed events of tasks that are gone or undated are removed.
// Individual failures are logged and counted, not returned.
func (c *CalendarClient) Mirror(tasks []model.Task, today time.Time) MirrorResult {
	var res MirrorResult
	dated := make(map[int64]bool, len(tasks))
	for _, task := range tasks {
		if !task.HasDates() {
			res.Skipped++
			continue
		}
		dated[task.ID] = true
		if _, err := c.SyncTask(task, today); err != nil {
			log.Printf("Error syncing task %d: %v", task.ID, err)
			res.Failed++
			continue
		}
		res.Synced++
	}

	if c.index == nil {
		return res
	}
	for _, id := range c.index.TaskIDs() {
		if dated[id] {
			continue
		}
		if err := c.DeleteTask(id); err != nil {
			log.Printf("Error deleting event for task %d: %v", id, err)
			res.Failed++
			continue
		}
		res.Deleted++
	}
	return res
}

// PatchEvent performs a partial update on an event.
func (c *CalendarClient) PatchEvent(eventID string, patch *calendar.Event) (*calendar.Event, error) {
	return c.srv.Events.Patch(c.calendarID, eventID, patch).Do()
}

// DeleteEvent deletes an event from the calendar.
func (c *CalendarClient) DeleteEvent(eventID string) error {
	return c.srv.Events.Delete(c.calendarID, eventID).Do()
}

// GetEventByTaskID searches for an event carrying the task id in its private
// extended properties.
func (c *CalendarClient) GetEventByTaskID(taskID int64) (*calendar.Event, error) {
	events, err := c.srv.Events.List(c.calendarID).
		PrivateExtendedProperty(fmt.Sprintf("%s=%s", util.TaskIDProperty, strconv.FormatInt(taskID, 10))).
		Do()
	if err != nil {
		return nil, err
	}
	for _, item := range events.Items {
		if item.Status != "cancelled" {
			return item, nil
		}
	}
	return nil, nil
}

// findEvent tries the local index before searching the calendar.
func (c *CalendarClient) findEvent(taskID int64) (*calendar.Event, error) {
	if c.index != nil {
		if eventID := c.index.Get(taskID); eventID != "" {
			event, err := c.srv.Events.Get(c.calendarID, eventID).Do()
			if err == nil && event.Status != "cancelled" {
				return event, nil
			}
			// stale mapping, fall back to search
			c.index.Remove(taskID)
		}
	}
	return c.GetEventByTaskID(taskID)
}

func (c *CalendarClient) remember(taskID int64, eventID string) {
	if c.index != nil {
		c.index.Set(taskID, eventID)
	}
}

func isGone(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusNotFound || apiErr.Code == http.StatusGone
	}
	return false
}
