package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/trestle/internal/cli/formatter"
	"github.com/alexanderramin/trestle/internal/domain"
	"github.com/spf13/cobra"
)

var errSameEndpoint = errors.New("an item cannot depend on itself")

func newDepCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dep",
		Short: "Manage predecessor/successor dependencies",
	}

	cmd.AddCommand(
		newDepAddCmd(app),
		newDepRemoveCmd(app),
		newDepListCmd(app),
		newDepCheckCmd(app),
	)

	return cmd
}

// edgeFlags are the endpoint flags shared by the dep subcommands.
type edgeFlags struct {
	project string
	from    string
	to      string
}

func (f *edgeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.project, "project", "", "Project short ID")
	cmd.Flags().StringVar(&f.from, "from", "", "Predecessor item code")
	cmd.Flags().StringVar(&f.to, "to", "", "Successor item code")
	_ = cmd.MarkFlagRequired("project")
}

// resolveEdge looks up both endpoints by code.
func resolveEdge(ctx context.Context, app *App, projectID, from, to string) (*domain.WbsItem, *domain.WbsItem, error) {
	if from == "" || to == "" {
		return nil, nil, fmt.Errorf("both --from and --to are required")
	}
	pred, err := resolveItem(ctx, app, projectID, from)
	if err != nil {
		return nil, nil, err
	}
	succ, err := resolveItem(ctx, app, projectID, to)
	if err != nil {
		return nil, nil, err
	}
	return pred, succ, nil
}

func newDepAddCmd(app *App) *cobra.Command {
	var f edgeFlags
	var depType string
	var lag int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a dependency; opens a form when endpoints are missing on a terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, f.project)
			if err != nil {
				return err
			}

			if (f.from == "" || f.to == "") && app.interactive() {
				items, err := app.Wbs.List(ctx, p.ID)
				if err != nil {
					return err
				}
				if len(items) < 2 {
					return fmt.Errorf("project %s needs at least two items to link", p.ShortID)
				}
				v := depFormValues{Predecessor: f.from, Successor: f.to, Type: depType}
				if cmd.Flags().Changed("lag") {
					v.Lag = fmt.Sprint(lag)
				}
				if err := dependencyForm(items, &v).Run(); err != nil {
					return err
				}
				f.from, f.to, depType, lag = v.Predecessor, v.Successor, v.Type, v.lagDays()
			}

			pred, succ, err := resolveEdge(ctx, app, p.ID, f.from, f.to)
			if err != nil {
				return err
			}

			d := &domain.Dependency{
				PredecessorID: pred.ID,
				SuccessorID:   succ.ID,
				Type:          domain.DependencyType(depType),
				Lag:           lag,
			}
			if err := app.Deps.Add(ctx, d); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Linked %s → %s (%s, lag %s)\n", pred.Code, succ.Code, d.Type, formatter.FormatLag(d.Lag))
			return nil
		},
	}

	f.register(cmd)
	cmd.Flags().StringVar(&depType, "type", "", "Dependency type (FS|SS|FF|SF), defaults to FS")
	cmd.Flags().IntVar(&lag, "lag", 0, "Lag in days; negative for lead time")

	return cmd
}

func newDepRemoveCmd(app *App) *cobra.Command {
	var f edgeFlags

	cmd := &cobra.Command{
		Use:   "rm",
		Short: "Remove a dependency",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, f.project)
			if err != nil {
				return err
			}
			pred, succ, err := resolveEdge(ctx, app, p.ID, f.from, f.to)
			if err != nil {
				return err
			}
			if err := app.Deps.Remove(ctx, pred.ID, succ.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s → %s\n", pred.Code, succ.Code)
			return nil
		},
	}

	f.register(cmd)
	return cmd
}

func newDepListCmd(app *App) *cobra.Command {
	var projectFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the project's dependencies",
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
			deps, err := app.Deps.List(ctx, p.ID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDependencyList(deps, itemCodes(items)))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectFlag, "project", "", "Project short ID")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func newDepCheckCmd(app *App) *cobra.Command {
	var f edgeFlags

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report whether a dependency would be accepted, without adding it",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, f.project)
			if err != nil {
				return err
			}
			pred, succ, err := resolveEdge(ctx, app, p.ID, f.from, f.to)
			if err != nil {
				return err
			}
			if err := app.Deps.Check(ctx, pred.ID, succ.ID); err != nil {
				return fmt.Errorf("rejected: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s → %s can be added\n", formatter.StyleGreen.Render("✔"), pred.Code, succ.Code)
			return nil
		},
	}

	f.register(cmd)
	return cmd
}
