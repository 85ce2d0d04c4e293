package cli

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/tasklist/pkg/config"
	"github.com/harrisonrobin/tasklist/pkg/model"
	"github.com/harrisonrobin/tasklist/pkg/storage"
	"github.com/harrisonrobin/tasklist/pkg/store"
)

// options are the global flags shared by every command.
type options struct {
	dataDir  string
	calendar string
}

// Execute runs the command line with os.Args.
func Execute(version string) error {
	root := NewRootCmd(version)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// NewRootCmd builds the full command tree.
func NewRootCmd(version string) *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "tasklist",
		Short: "A personal, manually ordered task list",
		Long: `tasklist keeps an ordered list of tasks with optional start and end dates.

Positions given to commands are 1-based and refer to the list as displayed by
"tasklist list", including any --search filter.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "Directory holding task data (overrides config)")
	root.PersistentFlags().StringVar(&opts.calendar, "calendar", "", "Google Calendar name to sync with (overrides config)")

	root.AddCommand(
		newAddCmd(opts),
		newListCmd(opts),
		newDoneCmd(opts),
		newRemoveCmd(opts),
		newEditCmd(opts),
		newMoveCmd(opts),
		newExportCmd(opts),
		newImportCmd(opts),
		newSyncCmd(opts),
		newAuthCmd(),
		newSetCalendarCmd(),
	)
	return root
}

// resolve merges config file, environment and flags.
func (o *options) resolve() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	if o.dataDir != "" {
		cfg.DataDir = o.dataDir
	}
	if o.calendar != "" {
		cfg.Calendar = o.calendar
	}
	return cfg, nil
}

func (o *options) openStore() (*store.Store, storage.Adapter, *config.Config, error) {
	cfg, err := o.resolve()
	if err != nil {
		return nil, nil, nil, err
	}
	adapter, err := storage.NewFile(cfg.DataDir)
	if err != nil {
		return nil, nil, nil, err
	}
	return store.Open(adapter), adapter, cfg, nil
}

// taskAt translates a 1-based displayed position into a task id.
func taskAt(v store.View, arg string) (int64, error) {
	pos, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid position %q", arg)
	}
	id, ok := v.IDAt(pos - 1)
	if !ok {
		return 0, fmt.Errorf("no task at position %d", pos)
	}
	return id, nil
}

// parseDate accepts what a date picker would produce: YYYY-MM-DD or nothing.
func parseDate(s string) (model.Date, error) {
	d := model.Date(s)
	if _, err := d.Time(time.UTC); err != nil {
		return "", err
	}
	return d, nil
}
