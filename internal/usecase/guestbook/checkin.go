package guestbook

import (
	"context"
	"errors"
	"log/slog"

	"seichi/internal/bootstrap/logging"
	domainguestbook "seichi/internal/domain/guestbook"
	"seichi/internal/errs"
)

// RecordCheckIn is the check-in event surface: it appends the durable visit
// row and arms the 24h certification window for (user, pilgrimage).
// Re-checking-in re-arms the window.
func (s *Service) RecordCheckIn(ctx context.Context, input RecordCheckInInput) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return errs.Wrap(err, "check context")
	}
	if err := s.checkDeps(); err != nil {
		return err
	}

	if _, err := s.points.GetUser(ctx, input.UserID); err != nil {
		return err
	}
	if _, err := s.travel.GetPilgrimage(ctx, input.PilgrimageID); err != nil {
		return err
	}

	checkedInAt := s.nowUTCString()
	if err := s.travel.AppendVisit(ctx, input.UserID, input.PilgrimageID, checkedInAt); err != nil {
		return errs.Wrap(err, "append visit on check-in")
	}

	key := domainguestbook.CertificationKey(input.UserID, input.PilgrimageID)
	if err := s.window.Set(ctx, key, checkedInAt, domainguestbook.CertificationWindow); err != nil {
		return errs.Wrap(err, "arm certification window")
	}

	logging.Info(ctx, "check-in recorded",
		slog.Uint64("user_id", input.UserID),
		slog.Uint64("pilgrimage_id", input.PilgrimageID),
		slog.String("checked_in_at", checkedInAt),
	)
	return nil
}
