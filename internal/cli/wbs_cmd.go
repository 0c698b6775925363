package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/trestle/internal/cli/formatter"
	"github.com/alexanderramin/trestle/internal/domain"
	"github.com/spf13/cobra"
)

func newWbsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wbs",
		Short: "Manage the work breakdown structure",
	}

	cmd.AddCommand(
		newWbsAddCmd(app),
		newWbsUpdateCmd(app),
		newWbsListCmd(app),
		newWbsTreeCmd(app),
		newWbsRemoveCmd(app),
		newWbsBrowseCmd(app),
	)

	return cmd
}

// wbsFields are the item flags shared by add and update.
type wbsFields struct {
	title    string
	kind     string
	parent   string
	start    dateValue
	duration int
	budget   moneyValue
	actual   moneyValue
	percent  float64
}

func (f *wbsFields) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.title, "title", "", "Item title")
	fs.StringVar(&f.kind, "type", "", "Item type (summary|work_package|activity)")
	fs.StringVar(&f.parent, "parent", "", "Parent item code")
	addDateFlag(fs, &f.start, "start", "Start date")
	fs.IntVar(&f.duration, "duration", 0, "Duration in days")
	addMoneyFlag(fs, &f.budget, "budget", "Budgeted cost")
	addMoneyFlag(fs, &f.actual, "actual", "Actual cost to date")
	fs.Float64Var(&f.percent, "percent", 0, "Percent complete (0-100)")
}

// parentCode returns the parent code for a new item: the explicit flag,
// else the code with its last segment removed.
func parentCode(code, explicit string, changed bool) string {
	if changed {
		return explicit
	}
	if i := strings.LastIndex(code, "."); i > 0 {
		return code[:i]
	}
	return ""
}

func newWbsAddCmd(app *App) *cobra.Command {
	var projectFlag, code string
	var f wbsFields

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a WBS item",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, projectFlag)
			if err != nil {
				return err
			}

			w := &domain.WbsItem{
				ProjectID:       p.ID,
				Code:            code,
				Title:           domain.CoalesceStr(f.title, code),
				Type:            domain.WbsType(f.kind),
				Duration:        f.duration,
				BudgetedCost:    f.budget.d,
				ActualCost:      f.actual.d,
				PercentComplete: f.percent,
			}

			defaultStart := p.StartDate
			if pc := parentCode(code, f.parent, cmd.Flags().Changed("parent")); pc != "" {
				parent, err := resolveItem(ctx, app, p.ID, pc)
				if err != nil {
					return fmt.Errorf("parent: %w", err)
				}
				w.ParentID = &parent.ID
				defaultStart = parent.StartDate
			}
			w.StartDate = f.start.orDefault(defaultStart)

			if err := app.Wbs.Create(ctx, w); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s %s %s\n", w.Code, w.Title,
				formatter.Dim(formatter.DateRange(w.StartDate, w.EndDate, w.Duration)))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectFlag, "project", "", "Project short ID")
	cmd.Flags().StringVar(&code, "code", "", "WBS code, e.g. 1.2.3")
	f.register(cmd)
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("code")

	return cmd
}

func newWbsUpdateCmd(app *App) *cobra.Command {
	var projectFlag string
	var f wbsFields

	cmd := &cobra.Command{
		Use:   "update CODE",
		Short: "Update a WBS item; only the flags given change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, projectFlag)
			if err != nil {
				return err
			}
			w, err := resolveItem(ctx, app, p.ID, args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("title") {
				w.Title = f.title
			}
			if flags.Changed("type") {
				w.Type = domain.WbsType(f.kind)
			}
			if flags.Changed("parent") {
				if f.parent == "" {
					w.ParentID = nil
				} else {
					parent, err := resolveItem(ctx, app, p.ID, f.parent)
					if err != nil {
						return fmt.Errorf("parent: %w", err)
					}
					w.ParentID = &parent.ID
				}
			}
			if f.start.set {
				w.StartDate = f.start.t
			}
			if flags.Changed("duration") {
				w.Duration = f.duration
			}
			if f.budget.set {
				w.BudgetedCost = f.budget.d
			}
			if f.actual.set {
				w.ActualCost = f.actual.d
			}
			if flags.Changed("percent") {
				w.PercentComplete = f.percent
			}

			if err := app.Wbs.Update(ctx, w); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s %s\n", w.Code, w.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&projectFlag, "project", "", "Project short ID")
	f.register(cmd)
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newWbsListCmd(app *App) *cobra.Command {
	var projectFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List WBS items ordered by code",
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
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatWbsList(items))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectFlag, "project", "", "Project short ID")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func newWbsTreeCmd(app *App) *cobra.Command {
	var projectFlag string

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show the WBS hierarchy",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, projectFlag)
			if err != nil {
				return err
			}
			roots, err := app.Wbs.Tree(ctx, p.ID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatWbsTree(roots))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectFlag, "project", "", "Project short ID")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func newWbsRemoveCmd(app *App) *cobra.Command {
	var projectFlag string
	var force bool

	cmd := &cobra.Command{
		Use:   "rm CODE",
		Short: "Delete a WBS item with its descendants and dependencies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, projectFlag)
			if err != nil {
				return err
			}
			w, err := resolveItem(ctx, app, p.ID, args[0])
			if err != nil {
				return err
			}

			if !force {
				if !app.interactive() {
					return fmt.Errorf("refusing to delete %s without --force", w.Code)
				}
				confirmed := false
				if err := wizardConfirm(fmt.Sprintf("Delete %s %s?", w.Code, w.Title), &confirmed).Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			if err := app.Wbs.Delete(ctx, w.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s\n", w.Code, w.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&projectFlag, "project", "", "Project short ID")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}
