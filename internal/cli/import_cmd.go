package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/trestle/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Create a project from a JSON, JSONC or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Import.ImportProject(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported project %s [%s] %s\n",
				res.Project.Name, res.Project.ShortID,
				formatter.Dim(fmt.Sprintf("(%d items, %d dependencies)", res.ItemCount, res.DependencyCount)))
			return nil
		},
	}
}
