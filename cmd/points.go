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

var pointsCmd = &cobra.Command{
	Use:   "points",
	Short: "Show a user's point balance and award history",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *guestbook.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		userID, _ := cmd.Flags().GetUint64("user")

		user, awards, err := svc.UserPoints(ctx, userID)
		if err != nil {
			return errs.Wrap(err, "load user points")
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "user=%s points=%d\n", user.Nickname, user.Points)
		for _, award := range awards {
			fmt.Fprintf(out, "%s +%d %s\n", award.CreatedAt, award.Amount, award.Reason)
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(pointsCmd)

	pointsCmd.Flags().Uint64("user", 0, "User id")
	_ = pointsCmd.MarkFlagRequired("user")
}
