package orgmode

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/harrisonrobin/tasklist/pkg/model"
)

var (
	starsRegex     = regexp.MustCompile(`^\*+\s`)
	headlineRegex  = regexp.MustCompile(`^\*+\s+(TODO|DONE)\s+(?:\[#[A-Z]\]\s*)?(.*?)(?:\s+:[\w@:]+:)?\s*$`)
	scheduledRegex = regexp.MustCompile(`SCHEDULED:\s+<(\d{4}-\d{2}-\d{2})[^>]*>`)
	deadlineRegex  = regexp.MustCompile(`DEADLINE:\s+<(\d{4}-\d{2}-\d{2})[^>]*>`)
)

// ParseFile parses the Org-mode file at path.
func ParseFile(path string) ([]model.Task, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Parse(file)
}

// Parse reads TODO and DONE headlines as tasks. The returned tasks carry no
// id; they are meant to be added to a store. SCHEDULED and DEADLINE dates
// become the start and end date, and any other body text under a headline
// becomes its description.
func Parse(r io.Reader) ([]model.Task, error) {
	scanner := bufio.NewScanner(r)
	var tasks []model.Task
	var current *model.Task
	var body []string
	inDrawer := false

	flush := func() {
		if current == nil {
			return
		}
		current.Description = strings.Join(body, "\n")
		if current.Title != "" || current.Description != "" {
			tasks = append(tasks, *current)
		}
		current = nil
		body = nil
		inDrawer = false
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if starsRegex.MatchString(scanner.Text()) {
			flush()
			if matches := headlineRegex.FindStringSubmatch(line); matches != nil {
				current = &model.Task{
					Title:     strings.TrimSpace(matches[2]),
					Completed: matches[1] == "DONE",
				}
			}
			continue
		}
		if current == nil {
			continue
		}

		switch {
		case line == ":PROPERTIES:" || line == ":LOGBOOK:":
			inDrawer = true
			continue
		case line == ":END:":
			inDrawer = false
			continue
		case inDrawer:
			continue
		}

		planning := false
		if matches := scheduledRegex.FindStringSubmatch(line); matches != nil {
			current.StartDate = model.Date(matches[1])
			planning = true
		}
		if matches := deadlineRegex.FindStringSubmatch(line); matches != nil {
			current.EndDate = model.Date(matches[1])
			planning = true
		}
		if !planning && line != "" {
			body = append(body, line)
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}
