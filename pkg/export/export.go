// Package export converts task lists to and from portable file formats.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/harrisonrobin/tasklist/pkg/model"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// taskList wraps the tasks for formats that need a top-level table.
type taskList struct {
	Tasks []model.Task `yaml:"tasks" toml:"tasks"`
}

// ParseFormat normalises a format name, accepting the "yml" alias.
func ParseFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case FormatJSON, FormatYAML, FormatTOML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported format %q: supported formats are json, yaml, toml", s)
	}
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (string, error) {
	return ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

// Encode writes tasks to w. JSON output is the same bare array the store
// persists; YAML and TOML nest the list under "tasks".
func Encode(w io.Writer, tasks []model.Task, format string) error {
	f, err := ParseFormat(format)
	if err != nil {
		return err
	}
	if tasks == nil {
		tasks = []model.Task{}
	}

	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(tasks)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(taskList{Tasks: tasks}); err == nil {
			err = enc.Close()
		}
	case FormatTOML:
		err = toml.NewEncoder(w).Encode(taskList{Tasks: tasks})
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", f, err)
	}
	return nil
}

// Decode reads a task list written by Encode.
func Decode(r io.Reader, format string) ([]model.Task, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}

	var tasks []model.Task
	switch f {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&tasks)
	case FormatYAML:
		var l taskList
		if err = yaml.NewDecoder(r).Decode(&l); err == io.EOF {
			err = nil
		}
		tasks = l.Tasks
	case FormatTOML:
		var l taskList
		_, err = toml.NewDecoder(r).Decode(&l)
		tasks = l.Tasks
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", f, err)
	}
	return tasks, nil
}
