package cmd

import (
	"github.com/spf13/cobra"

	"insuredevents/internal/bootstrap"
	"insuredevents/internal/errs"
)

var dictionariesCmd = &cobra.Command{
	Use:   "dictionaries",
	Short: "Print the filter dictionaries",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
		format, _ := cmd.Flags().GetString("format")

		dicts, err := app.Facade.GetFilterDictionaries(cmd.Context())
		if err != nil {
			return errs.Wrap(err, "get filter dictionaries")
		}
		return writeOutput(cmd.OutOrStdout(), format, dicts)
	}),
}

func init() {
	rootCmd.AddCommand(dictionariesCmd)
	dictionariesCmd.Flags().String("format", formatJSON, "Output format (json|yaml)")
}
