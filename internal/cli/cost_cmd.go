package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/trestle/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newCostCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cost",
		Short: "Earned-value cost control",
	}

	cmd.AddCommand(
		newCostReportCmd(app),
		newCostExportCmd(app),
	)

	return cmd
}

func newCostReportCmd(app *App) *cobra.Command {
	var projectFlag string
	var asOf dateValue

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show EV, PV, AC, CPI and SPI for budget-carrying items",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, projectFlag)
			if err != nil {
				return err
			}
			r, err := app.Cost.Report(ctx, p.ID, asOf.orDefault(app.now()))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCostReport(r))
			return nil
		},
	}

	cmd.Flags().StringVar(&projectFlag, "project", "", "Project short ID")
	addDateFlag(cmd.Flags(), &asOf, "as-of", "Status date, defaults to today")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func newCostExportCmd(app *App) *cobra.Command {
	var projectFlag, out string
	var asOf dateValue

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the cost report to an .xlsx workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := resolveProject(ctx, app, projectFlag)
			if err != nil {
				return err
			}
			if out == "" {
				out = p.ShortID + "-cost.xlsx"
			}
			r, err := app.Cost.ExportXLSX(ctx, p.ID, asOf.orDefault(app.now()), out)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d lines to %s\n", len(r.Lines), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&projectFlag, "project", "", "Project short ID")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output path, defaults to <ID>-cost.xlsx")
	addDateFlag(cmd.Flags(), &asOf, "as-of", "Status date, defaults to today")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}
