package cmd

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"seichi/internal/bootstrap"
	"seichi/internal/bootstrap/logging"
	"seichi/internal/errs"
	"seichi/internal/usecase/guestbook"
	"seichi/internal/usecase/guestbookconsole"
)

var consoleGuestbookCmd = &cobra.Command{
	Use:   "guestbook",
	Short: "Start the pilgrimage guestbook console",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *guestbook.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		userID, _ := cmd.Flags().GetUint64("user")
		refreshInterval, _ := cmd.Flags().GetDuration("refresh-interval")
		if refreshInterval <= 0 {
			refreshInterval = 5 * time.Second
		}

		model := guestbookconsole.NewConsoleModel(ctx, svc, guestbookconsole.Options{
			UserID:          userID,
			RefreshInterval: refreshInterval,
		})

		program := tea.NewProgram(model, tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return errs.Wrap(err, "run guestbook console")
		}
		return nil
	}),
}

func init() {
	consoleCmd.AddCommand(consoleGuestbookCmd)
	consoleGuestbookCmd.Flags().Uint64("user", 0, "User id to act as")
	consoleGuestbookCmd.Flags().Duration("refresh-interval", 5*time.Second, "Auto refresh interval")
	_ = consoleGuestbookCmd.MarkFlagRequired("user")
}
