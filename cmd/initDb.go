/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"seichi/internal/bootstrap"
	"seichi/internal/bootstrap/logging"
	"seichi/internal/errs"
	"seichi/internal/usecase/guestbook"
)

// initDbCmd represents the initDb command
var initDbCmd = &cobra.Command{
	Use:   "init-db",
	Short: "Initialize database schema",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App, svc *guestbook.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))
		logging.Info(ctx, "start init-db")

		if err := app.InitSchema(ctx); err != nil {
			logging.Error(ctx, "initialize schema failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "initialize schema")
		}

		seedFile, _ := cmd.Flags().GetString("seed")
		if strings.TrimSpace(seedFile) != "" {
			summary, err := svc.ImportSeed(ctx, seedFile)
			if err != nil {
				logging.Error(ctx, "import seed failed", slog.Any("err", errs.Loggable(err)))
				return errs.Wrap(err, "import seed")
			}
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "seed imported: users=%d rallies=%d pilgrimages=%d\n",
				summary.UsersCreated, summary.RalliesCreated, summary.PilgrimagesCreated); err != nil {
				return errs.Wrap(err, "write seed output")
			}
		}

		logging.Info(ctx, "init-db finished", slog.String("database_dsn", app.Config.Database.DSN))
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "database schema initialized: %s\n", app.Config.Database.DSN); err != nil {
			return errs.Wrap(err, "write init-db output")
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(initDbCmd)

	initDbCmd.Flags().String("seed", "", "Optional TOML seed file with users, rallies and pilgrimages")
}
