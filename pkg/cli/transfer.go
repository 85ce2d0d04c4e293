package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/tasklist/pkg/export"
	"github.com/harrisonrobin/tasklist/pkg/model"
	"github.com/harrisonrobin/tasklist/pkg/orgmode"
	"github.com/harrisonrobin/tasklist/pkg/store"
	"github.com/harrisonrobin/tasklist/pkg/taskwarrior"
)

const formatOrg = "org"

func newExportCmd(opts *options) *cobra.Command {
	var format, output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all tasks as JSON, YAML or TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = export.FormatJSON
				if output != "" {
					if f, err := export.FormatFromPath(output); err == nil {
						format = f
					}
				}
			}
			s, _, _, err := opts.openStore()
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				return export.Encode(cmd.OutOrStdout(), s.Tasks(), format)
			}
			f, err := os.OpenFile(output, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
			if err != nil {
				return fmt.Errorf("failed to open %s for writing: %w", output, err)
			}
			defer f.Close()
			if err := export.Encode(f, s.Tasks(), format); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d tasks to %s\n", s.Len(), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "json, yaml or toml (default: from --output extension, else json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "File to write instead of stdout")
	return cmd
}

func newImportCmd(opts *options) *cobra.Command {
	var format string
	var fromTaskwarrior bool
	cmd := &cobra.Command{
		Use:   "import [file | taskwarrior filter...]",
		Short: "Append tasks from an export, an Org-mode file or Taskwarrior",
		Long: `Append tasks read from a file written by "tasklist export", from an Org-mode
file (TODO and DONE headlines), or, with --taskwarrior, from "task export".
Imported tasks always get new ids and go to the end of the list. Use "-" to
read the file from stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var tasks []model.Task
			var err error
			if fromTaskwarrior {
				tasks, err = readTaskwarrior(args)
			} else {
				if len(args) != 1 {
					return fmt.Errorf("import needs exactly one file")
				}
				tasks, err = readFile(cmd.InOrStdin(), args[0], format)
			}
			if err != nil {
				return err
			}

			s, _, _, err := opts.openStore()
			if err != nil {
				return err
			}
			added := addAll(s, tasks)
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d of %d tasks\n", added, len(tasks))
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "org, json, yaml or toml (default: from file extension)")
	cmd.Flags().BoolVar(&fromTaskwarrior, "taskwarrior", false, "Import from Taskwarrior; arguments are a task filter")
	return cmd
}

func readTaskwarrior(filter []string) ([]model.Task, error) {
	twTasks, err := taskwarrior.NewClient().Export(filter)
	if err != nil {
		return nil, err
	}
	var tasks []model.Task
	for _, t := range twTasks {
		if task, ok := t.ToModel(time.Local); ok {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

func readFile(stdin io.Reader, path, format string) ([]model.Task, error) {
	if format == "" {
		if strings.EqualFold(filepath.Ext(path), "."+formatOrg) {
			format = formatOrg
		} else if path == "-" {
			format = export.FormatJSON
		} else {
			f, err := export.FormatFromPath(path)
			if err != nil {
				return nil, err
			}
			format = f
		}
	}

	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	if strings.EqualFold(format, formatOrg) {
		return orgmode.Parse(r)
	}
	return export.Decode(r, format)
}

// addAll adds tasks through the store so each gets a fresh id, then restores
// their completed flag.
func addAll(s *store.Store, tasks []model.Task) int {
	added := 0
	for _, t := range tasks {
		task, ok := s.AddTask(t.Title, t.Description, t.StartDate, t.EndDate)
		if !ok {
			continue
		}
		if t.Completed {
			s.ToggleCompleted(task.ID)
		}
		added++
	}
	return added
}
