package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/tasklist/pkg/model"
)

func newAddCmd(opts *options) *cobra.Command {
	var description, start, end string
	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Append a task to the end of the list",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, err := parseDate(start)
			if err != nil {
				return err
			}
			endDate, err := parseDate(end)
			if err != nil {
				return err
			}
			s, _, _, err := opts.openStore()
			if err != nil {
				return err
			}

			title := ""
			if len(args) > 0 {
				title = args[0]
			}
			task, ok := s.AddTask(title, description, startDate, endDate)
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing added: title and description are both empty")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added task %d: %s\n", s.Len(), task.Title)
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "Task description")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	return cmd
}

func newListCmd(opts *options) *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show tasks in list order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, _, err := opts.openStore()
			if err != nil {
				return err
			}
			printTasks(cmd.OutOrStdout(), s.Filter(search))
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "Only show tasks whose title contains this text")
	return cmd
}

func printTasks(w io.Writer, tasks []model.Task) {
	for i, t := range tasks {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		fmt.Fprintf(w, "%d. [%s] %s", i+1, mark, t.Title)
		if t.HasDates() {
			fmt.Fprintf(w, "  (%s - %s)", t.StartDate, t.EndDate)
		}
		fmt.Fprintln(w)
		if t.Description != "" {
			fmt.Fprintf(w, "     %s\n", t.Description)
		}
	}
}

func newDoneCmd(opts *options) *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:   "done <position>",
		Short: "Toggle a task between done and not done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, _, err := opts.openStore()
			if err != nil {
				return err
			}
			id, err := taskAt(s.View(search), args[0])
			if err != nil {
				return err
			}
			s.ToggleCompleted(id)
			t, _ := s.Get(id)
			state := "not done"
			if t.Completed {
				state = "done"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Marked %q as %s\n", t.Title, state)
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "Position refers to the list filtered by this text")
	return cmd
}

func newRemoveCmd(opts *options) *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:     "rm <position>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, _, err := opts.openStore()
			if err != nil {
				return err
			}
			id, err := taskAt(s.View(search), args[0])
			if err != nil {
				return err
			}
			t, _ := s.Get(id)
			s.DeleteTask(id)
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", t.Title)
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "Position refers to the list filtered by this text")
	return cmd
}

func newEditCmd(opts *options) *cobra.Command {
	var search, title, description, start, end string
	cmd := &cobra.Command{
		Use:   "edit <position>",
		Short: "Change a task's title, description or dates",
		Long: `Change a task's title, description or dates. Only the fields given as
flags change; pass an empty value (e.g. --end "") to clear a field.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, _, err := opts.openStore()
			if err != nil {
				return err
			}
			id, err := taskAt(s.View(search), args[0])
			if err != nil {
				return err
			}

			s.StartEditingID(id)
			defer s.CancelEditing()

			flags := cmd.Flags()
			if flags.Changed("title") {
				s.SetDraftTitle(title)
			}
			if flags.Changed("description") {
				s.SetDraftDescription(description)
			}
			if flags.Changed("start") {
				d, err := parseDate(start)
				if err != nil {
					return err
				}
				s.SetDraftStartDate(d)
			}
			if flags.Changed("end") {
				d, err := parseDate(end)
				if err != nil {
					return err
				}
				s.SetDraftEndDate(d)
			}

			s.SaveEditing()
			t, _ := s.Get(id)
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %q\n", t.Title)
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "Position refers to the list filtered by this text")
	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description")
	cmd.Flags().StringVar(&start, "start", "", "New start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "New end date (YYYY-MM-DD)")
	return cmd
}

func newMoveCmd(opts *options) *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:   "mv <from> <to>",
		Short: "Move a task to another position",
		Long: `Move the task at <from> so it takes the place of the task at <to>; the
tasks in between shift by one. With --search both positions refer to the
filtered list.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, _, err := opts.openStore()
			if err != nil {
				return err
			}
			v := s.View(search)
			from, err := position(v.Len(), args[0])
			if err != nil {
				return err
			}
			to, err := position(v.Len(), args[1])
			if err != nil {
				return err
			}

			s.BeginDrag(v, from)
			s.DragOver(to)
			if !s.EndDrag() {
				return fmt.Errorf("could not move task %s", args[0])
			}
			printTasks(cmd.OutOrStdout(), s.Filter(search))
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "Positions refer to the list filtered by this text")
	return cmd
}

// position converts a 1-based argument into a 0-based index below n.
func position(n int, arg string) (int, error) {
	pos, err := strconv.Atoi(arg)
	if err != nil || pos < 1 || pos > n {
		return 0, fmt.Errorf("no task at position %s", arg)
	}
	return pos - 1, nil
}
