package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"insuredevents/internal/bootstrap"
	"insuredevents/internal/bootstrap/logging"
	"insuredevents/internal/errs"
	"insuredevents/internal/infrastructure/repositorycache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Maintain the response cache",
}

// cacheEvictCmd drops entries so the next read goes upstream.
var cacheEvictCmd = &cobra.Command{
	Use:   "evict",
	Short: "Evict cached dictionaries or event details",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, _ []string, app *bootstrap.App) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("cache_driver", app.Config.Cache.Driver))

		dictionaries, _ := cmd.Flags().GetBool("dictionaries")
		eventIDs, _ := cmd.Flags().GetStringSlice("event")

		keys := make([]string, 0, len(eventIDs)+1)
		if dictionaries {
			keys = append(keys, repositorycache.DictionariesKey)
		}
		for _, id := range eventIDs {
			keys = append(keys, repositorycache.ByIDKey(id))
		}
		if len(keys) == 0 {
			return errors.New("nothing to evict: pass --dictionaries or --event")
		}

		for _, key := range keys {
			if err := app.Cache.Delete(ctx, key); err != nil {
				logging.Error(ctx, "cache evict failed", slog.String("key", key), slog.Any("err", errs.Loggable(err)))
				return errs.Wrapf(err, "evict %q", key)
			}
			logging.Info(ctx, "cache entry evicted", slog.String("key", key))
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "evicted %s\n", key); err != nil {
				return errs.Wrap(err, "write evict output")
			}
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheEvictCmd)
	cacheEvictCmd.Flags().Bool("dictionaries", false, "Evict the filter dictionaries")
	cacheEvictCmd.Flags().StringSlice("event", nil, "Evict the detail of an event by policy id (repeatable)")
}
