package cmd

import (
	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	"insuredevents/internal/bootstrap"
	"insuredevents/internal/domain/insuredevent"
	"insuredevents/internal/errs"
	"insuredevents/internal/formschema"
	"insuredevents/internal/usecase/insuredevents"
)

var formCmd = &cobra.Command{
	Use:   "form",
	Short: "Print the insured events filters form",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
		format, _ := cmd.Flags().GetString("format")

		fields, err := insuredevents.CreateFromFacade(cmd.Context(), app.Facade)
		if err != nil {
			return errs.Wrap(err, "build filters form")
		}
		if err := formschema.Validate(fields); err != nil {
			return errs.Wrap(err, "validate filters form")
		}
		return writeOutput(cmd.OutOrStdout(), format, fields)
	}),
}

var formSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of the search filter the form produces",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return writeOutput(cmd.OutOrStdout(), formatJSON, filterSchema())
	},
}

func filterSchema() *jsonschema.Schema {
	reflector := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	return reflector.Reflect(&insuredevent.Filter{})
}

func init() {
	rootCmd.AddCommand(formCmd)
	formCmd.AddCommand(formSchemaCmd)
	formCmd.Flags().String("format", formatJSON, "Output format (json|yaml)")
}
