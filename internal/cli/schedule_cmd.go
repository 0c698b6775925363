package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/trestle/internal/cli/formatter"
	"github.com/alexanderramin/trestle/internal/service"
	"github.com/spf13/cobra"
)

func newScheduleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Apply dependency constraints to the schedule",
	}

	cmd.AddCommand(
		newSchedulePropagateCmd(app),
		newScheduleOrderCmd(app),
	)

	return cmd
}

func newSchedulePropagateCmd(app *App) *cobra.Command {
	var projectFlag string
	var opts service.PropagateOptions

	cmd := &cobra.Command{
		Use:   "propagate",
		Short: "Push successors past their predecessors' finish plus lag",
		Long: `Runs one forward pass over the dependency network by default: each
successor starts no earlier than the latest predecessor end date plus lag,
using predecessor dates as they stood before the pass. --until-stable repeats
the pass until nothing moves, so chains settle in one command.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, projectFlag)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("max-passes") {
				opts.MaxPasses = app.maxPasses()
			}

			res, err := app.Schedule.Propagate(ctx, p.ID, opts)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatScheduleChanges(res.Changes, res.Passes, opts.DryRun))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectFlag, "project", "", "Project short ID")
	cmd.Flags().BoolVar(&opts.UntilStable, "until-stable", false, "Repeat until no item moves")
	cmd.Flags().IntVar(&opts.MaxPasses, "max-passes", 0, "Pass limit for --until-stable (0 = item count + 1)")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Show the changes without saving them")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newScheduleOrderCmd(app *App) *cobra.Command {
	var projectFlag string

	cmd := &cobra.Command{
		Use:   "order",
		Short: "List items in dependency order",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, projectFlag)
			if err != nil {
				return err
			}
			items, err := app.Wbs.List(ctx, p.ID)
			if err != nil {
				return err
			}
			ids, err := app.Schedule.NetworkOrder(ctx, p.ID)
			if err != nil {
				return err
			}

			byID := make(map[string]int, len(items))
			for i, it := range items {
				byID[it.ID] = i
			}
			rows := make([][]string, 0, len(ids))
			for n, id := range ids {
				it := items[byID[id]]
				rows = append(rows, []string{
					formatter.Dim(fmt.Sprintf("%d", n+1)),
					it.Code,
					it.Title,
					formatter.DateRange(it.StartDate, it.EndDate, it.Duration),
				})
			}
			out := formatter.RenderTable([]string{"#", "CODE", "TITLE", "SCHEDULE"}, rows)
			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(out, "\n"))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectFlag, "project", "", "Project short ID")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}
