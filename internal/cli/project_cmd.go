package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/trestle/internal/cli/formatter"
	"github.com/alexanderramin/trestle/internal/domain"
	"github.com/alexanderramin/trestle/internal/wbs"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectShowCmd(app),
		newProjectRemoveCmd(app),
	)

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var name, client, shortID string
	var start, target dateValue

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &domain.Project{
				ShortID:   strings.ToUpper(shortID),
				Name:      name,
				Client:    client,
				StartDate: start.orDefault(app.now().Truncate(24 * time.Hour)),
			}
			if target.set {
				t := target.t
				p.TargetDate = &t
			}

			if err := app.Projects.Create(context.Background(), p); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s [%s]\n", p.Name, p.ShortID)
			return nil
		},
	}

	cmd.Flags().StringVar(&shortID, "id", "", "Short ID (2-6 uppercase letters + 2-4 digits, e.g. BR01)")
	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&client, "client", "", "Client name")
	addDateFlag(cmd.Flags(), &start, "start", "Start date, defaults to today")
	addDateFlag(cmd.Flags(), &target, "target", "Target completion date")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectList(projects, app.now()))
			return nil
		},
	}
}

func newProjectShowCmd(app *App) *cobra.Command {
	var asOf dateValue

	cmd := &cobra.Command{
		Use:   "show PROJECT",
		Short: "Show project details with its WBS tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}
			roots, err := app.Wbs.Tree(ctx, p.ID)
			if err != nil {
				return err
			}
			deps, err := app.Deps.List(ctx, p.ID)
			if err != nil {
				return err
			}

			now := app.now()
			status := asOf.orDefault(now)
			risk, err := app.Schedule.Risk(ctx, p.ID, status)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectDetail(formatter.ProjectDetailData{
				Project:      p,
				Roots:        roots,
				Dependencies: len(deps),
				Total:        wbs.RollupAll(roots, status),
				Risk:         risk,
				Now:          now,
			}))
			return nil
		},
	}

	addDateFlag(cmd.Flags(), &asOf, "as-of", "Status date for earned value, defaults to today")
	return cmd
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "rm PROJECT",
		Short: "Delete a project with all its items and dependencies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, args[0])
			if err != nil {
				return err
			}

			if !force {
				if !app.interactive() {
					return fmt.Errorf("refusing to delete %s without --force", p.ShortID)
				}
				confirmed := false
				if err := wizardConfirm(fmt.Sprintf("Delete %s (%s) and all its items?", p.Name, p.ShortID), &confirmed).Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			if err := app.Projects.Delete(ctx, p.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %s [%s]\n", p.Name, p.ShortID)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation")
	return cmd
}
