package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/christofides/history"
)

func newHistoryCommand(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded runs",
	}
	cmd.AddCommand(
		newHistoryListCommand(o),
		newHistoryShowCommand(o),
		newHistoryPruneCommand(o),
	)

	return cmd
}

// withStore opens the history database regardless of the enabled flag.
func (o *rootOptions) withStore(fn func(*history.Store) error) error {
	store, err := o.openHistory(true)
	if err != nil {
		return err
	}
	defer store.Close()

	return fn(store)
}

func newHistoryListCommand(o *rootOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.withStore(func(s *history.Store) error {
				runs, err := s.List(limit)
				if err != nil {
					return err
				}
				if o.output == formatText {
					writeRunsText(cmd.OutOrStdout(), runs)
					return nil
				}
				return encode(cmd.OutOrStdout(), o.output, runs)
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum runs to list (0 = all)")

	return cmd
}

func newHistoryShowCommand(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withStore(func(s *history.Store) error {
				run, err := s.Get(args[0])
				if err != nil {
					return err
				}
				if o.output != formatText {
					return encode(cmd.OutOrStdout(), o.output, run)
				}

				w := cmd.OutOrStdout()
				fmt.Fprintf(w, "id:     %s\nkind:   %s\nsource: %s\n", run.ID, run.Kind, run.Source)
				switch {
				case run.Itinerary != nil:
					writeItineraryText(w, run.Itinerary)
				case run.Result != nil:
					writeResultText(w, run.Vertices, run.Result)
				}
				return nil
			})
		},
	}
}

func newHistoryPruneCommand(o *rootOptions) *cobra.Command {
	var keep int
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete all but the newest runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.withStore(func(s *history.Store) error {
				n, err := s.Prune(keep)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed %d runs\n", n)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&keep, "keep", 10, "runs to keep")

	return cmd
}
