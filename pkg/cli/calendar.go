package cli

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/tasklist/pkg/auth"
	"github.com/harrisonrobin/tasklist/pkg/config"
	"github.com/harrisonrobin/tasklist/pkg/google"
	"github.com/harrisonrobin/tasklist/pkg/index"
)

func newSyncCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Mirror dated tasks into Google Calendar",
		Long: `Mirror every task with a start or end date into the configured Google
Calendar as an all-day event. Events of tasks that were deleted or lost their
dates are removed. The calendar is never read back into the task list.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, adapter, cfg, err := opts.openStore()
			if err != nil {
				return err
			}
			idx, err := index.NewEventIndex(adapter)
			if err != nil {
				log.Printf("Warning: failed to load event index, searching the calendar instead: %v", err)
				idx = nil
			}
			dir, err := config.Dir()
			if err != nil {
				return err
			}

			client, err := google.NewClient(cmd.Context(), dir, cfg.Calendar, idx)
			if err != nil {
				return fmt.Errorf("error creating Google Calendar client: %w", err)
			}

			res := client.Mirror(s.Tasks(), time.Now())
			if idx != nil {
				if err := idx.Save(); err != nil {
					log.Printf("Warning: failed to save event index: %v", err)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Synced %d, removed %d, skipped %d undated, %d failed\n",
				res.Synced, res.Deleted, res.Skipped, res.Failed)
			if res.Failed > 0 {
				return fmt.Errorf("%d calendar updates failed", res.Failed)
			}
			return nil
		},
	}
}

func newAuthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Authenticate with Google Calendar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := config.Dir()
			if err != nil {
				return fmt.Errorf("could not find path to configuration directory: %w", err)
			}
			if err := auth.ResetToken(dir); err != nil {
				return err
			}
			if _, err := auth.NewCalendarService(cmd.Context(), dir); err != nil {
				return fmt.Errorf("authentication failed: %w", err)
			}
			log.Printf("Authentication successful! Token saved to %s", auth.TokenFile)
			return nil
		},
	}
}

func newSetCalendarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-calendar <name>",
		Short: "Set the default Google Calendar name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.GetConfigPath()
			if err != nil {
				return err
			}
			cfg, err := config.LoadFrom(path)
			if err != nil {
				return err
			}
			cfg.Calendar = args[0]
			if err := config.SaveTo(path, cfg); err != nil {
				return fmt.Errorf("error saving config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Default calendar set to: %s\n", args[0])
			return nil
		},
	}
}
