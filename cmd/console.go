package cmd

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"insuredevents/internal/bootstrap"
	"insuredevents/internal/bootstrap/logging"
	"insuredevents/internal/domain/insuredevent"
	"insuredevents/internal/errs"
	"insuredevents/internal/usecase/eventsconsole"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Browse insured events in the terminal",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("component", "console"))

		status, _ := cmd.Flags().GetString("status")
		insurant, _ := cmd.Flags().GetString("insurant")
		pageSize, _ := cmd.Flags().GetInt("page-size")
		refreshInterval, _ := cmd.Flags().GetDuration("refresh-interval")

		model := eventsconsole.NewEventsModel(ctx, app.Facade, eventsconsole.Options{
			Filter:          insuredevent.Filter{EventStatus: status, Insurant: insurant},
			PageSize:        pageSize,
			RefreshInterval: refreshInterval,
		})

		program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
		if _, err := program.Run(); err != nil {
			return errs.Wrap(err, "run events console")
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(consoleCmd)
	consoleCmd.Flags().String("status", "", "Initial event status filter")
	consoleCmd.Flags().String("insurant", "", "Initial insured party filter")
	consoleCmd.Flags().Int("page-size", 20, "Events per page")
	consoleCmd.Flags().Duration("refresh-interval", 0, "Auto refresh interval (0 disables)")
}
