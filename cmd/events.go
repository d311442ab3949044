package cmd

import (
	"github.com/spf13/cobra"

	"insuredevents/internal/bootstrap"
	"insuredevents/internal/domain/insuredevent"
	"insuredevents/internal/errs"
	"insuredevents/internal/ports"
	"insuredevents/internal/usecase/insuredevents"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Search and inspect insured events",
}

var eventsSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search insured events by filter",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
		flags := cmd.Flags()
		filter := insuredevent.Filter{}
		filter.InsuranceType, _ = flags.GetString("insurance-type")
		filter.Insurant, _ = flags.GetString("insurant")
		filter.ContractNumber, _ = flags.GetString("contract-number")
		filter.EventStatus, _ = flags.GetString("status")
		filter.PayoutDecision, _ = flags.GetString("payout-decision")
		filter.PeriodFrom, _ = flags.GetString("period-from")
		filter.PeriodTo, _ = flags.GetString("period-to")

		page, _ := flags.GetInt("page")
		pageSize, _ := flags.GetInt("page-size")
		force, _ := flags.GetBool("force")
		format, _ := flags.GetString("format")

		var opts []insuredevents.Option
		if force {
			opts = append(opts, insuredevents.WithForce())
		}

		result, err := app.Facade.Load(cmd.Context(), filter, ports.Pagination{Page: page, PageSize: pageSize}, opts...)
		if err != nil {
			return errs.Wrap(err, "search insured events")
		}
		return writeOutput(cmd.OutOrStdout(), format, result)
	}),
}

var eventsGetCmd = &cobra.Command{
	Use:   "get <policy-id>",
	Short: "Show one insured event",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, app *bootstrap.App) error {
		format, _ := cmd.Flags().GetString("format")

		event, err := app.Facade.GetByID(cmd.Context(), args[0])
		if err != nil {
			return errs.Wrapf(err, "get insured event %q", args[0])
		}
		return writeOutput(cmd.OutOrStdout(), format, event)
	}),
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(eventsSearchCmd, eventsGetCmd)
	eventsCmd.PersistentFlags().String("format", formatJSON, "Output format (json|yaml)")

	flags := eventsSearchCmd.Flags()
	flags.String("insurance-type", "", "Insurance type")
	flags.String("insurant", "", "Insured party name")
	flags.String("contract-number", "", "Contract number")
	flags.String("status", "", "Event status")
	flags.String("payout-decision", "", "Payout decision")
	flags.String("period-from", "", "Period start (YYYY-MM-DD)")
	flags.String("period-to", "", "Period end (YYYY-MM-DD)")
	flags.Int("page", 1, "Page number")
	flags.Int("page-size", 20, "Page size")
	flags.Bool("force", false, "Skip cached results")
}
