package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"seichi/internal/bootstrap"
	"seichi/internal/bootstrap/logging"
	"seichi/internal/errs"
	"seichi/internal/usecase/guestbook"
)

var checkinCmd = &cobra.Command{
	Use:   "checkin",
	Short: "Check in at a pilgrimage and open the certification window",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *guestbook.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		userID, _ := cmd.Flags().GetUint64("user")
		pilgrimageID, _ := cmd.Flags().GetUint64("pilgrimage")

		if err := svc.RecordCheckIn(ctx, guestbook.RecordCheckInInput{
			UserID:       userID,
			PilgrimageID: pilgrimageID,
		}); err != nil {
			return errs.Wrap(err, "record check-in")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "checked in: user=%d pilgrimage=%d\n", userID, pilgrimageID); err != nil {
			return errs.Wrap(err, "write checkin output")
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(checkinCmd)

	checkinCmd.Flags().Uint64("user", 0, "User id")
	checkinCmd.Flags().Uint64("pilgrimage", 0, "Pilgrimage id")
	_ = checkinCmd.MarkFlagRequired("user")
	_ = checkinCmd.MarkFlagRequired("pilgrimage")
}
