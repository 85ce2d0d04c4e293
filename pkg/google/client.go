package google

import (
	"context"
	"fmt"

	"github.com/harrisonrobin/tasklist/pkg/auth"
	"github.com/harrisonrobin/tasklist/pkg/index"
	"google.golang.org/api/calendar/v3"
)

// NewClient authenticates with the credentials in configDir and returns a
// client for the calendar named calendarName.
func NewClient(ctx context.Context, configDir, calendarName string, idx *index.EventIndex) (*CalendarClient, error) {
	srv, err := auth.NewCalendarService(ctx, configDir)
	if err != nil {
		return nil, err
	}
	return NewClientForService(srv, calendarName, idx)
}

// NewClientForService resolves calendarName on an existing service.
func NewClientForService(srv *calendar.Service, calendarName string, idx *index.EventIndex) (*CalendarClient, error) {
	calendarList, err := srv.CalendarList.List().Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve calendar list: %w", err)
	}

	var calendarID string
	for _, item := range calendarList.Items {
		if item.Summary == calendarName {
			calendarID = item.Id
			break
		}
	}

	if calendarID == "" {
		return nil, fmt.Errorf("calendar '%s' not found", calendarName)
	}

	return NewCalendarClient(srv, calendarID, idx), nil
}
