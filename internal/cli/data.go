package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	rolloverQueueUC "github.com/m04kA/SMC-TurnosService/internal/usecase/rollover_queue"
)

func newSeedCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create default business configuration and service catalog if missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			ctx := cmd.Context()
			created, err := e.app.Config.EnsureDefaults(ctx)
			if err != nil {
				return err
			}
			services, err := e.app.Catalog.SeedDefaults(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "config_created=%t services_created=%d\n", created, services)
			return nil
		},
	}
}

func newResetCmd(opts *rootOptions) *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all tickets and queue entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm {
				return errors.New("refusing to delete all tickets without --yes")
			}

			e, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			resp, err := e.app.Reset.Execute(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "tickets_deleted=%d queue_entries_deleted=%d\n", resp.Tickets, resp.QueueEntries)
			return nil
		},
	}
	cmd.Flags().BoolVar(&confirm, "yes", false, "confirm deletion")

	return cmd
}

func newRolloverCmd(opts *rootOptions) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "rollover",
		Short: "Enqueue pending appointments of a day that are not in its queue yet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			resp, err := e.app.Rollover.Execute(cmd.Context(), &rolloverQueueUC.Request{Date: date})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "date=%s enqueued=%d skipped=%d\n",
				resp.Date.Format("2006-01-02"), resp.Enqueued, resp.Skipped)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "day in YYYY-MM-DD (default today)")

	return cmd
}

func newStatsCmd(opts *rootOptions) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print ticket counters by state for a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			stats, err := e.app.Tickets.Statistics(cmd.Context(), date)
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), stats)
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "day in YYYY-MM-DD (default today)")

	return cmd
}

func newNoShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "noshow",
		Short: "Cancel called tickets whose no-show wait has expired (one sweep)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			n, err := e.app.NoShow.Sweep(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "cancelled=%d\n", n)
			return nil
		},
	}
}
