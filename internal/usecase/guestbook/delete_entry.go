package guestbook

import (
	"context"
	"errors"
	"log/slog"

	"seichi/internal/bootstrap/logging"
	domainguestbook "seichi/internal/domain/guestbook"
	"seichi/internal/errs"
)

// DeleteEntry removes an entry the caller authored, cascading its hashtags,
// images and likes, then releases the image storage objects.
func (s *Service) DeleteEntry(ctx context.Context, input DeleteEntryInput) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return errs.Wrap(err, "check context")
	}
	if err := s.checkDeps(); err != nil {
		return err
	}

	entry, err := s.guestbooks.GetEntry(ctx, input.EntryID)
	if err != nil {
		return err
	}
	if entry.UserID != input.UserID {
		return domainguestbook.ErrNotAuthor
	}

	images, err := s.guestbooks.ListImages(ctx, entry.EntryID)
	if err != nil {
		return errs.Wrap(err, "list images before delete")
	}

	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		// The author's own like goes first, mirroring the liked-entry
		// cleanup the aggregate owes its author.
		if err := s.guestbooks.DeleteLike(txCtx, entry.EntryID, input.UserID); err != nil {
			return err
		}
		return s.guestbooks.DeleteEntry(txCtx, entry.EntryID)
	}); err != nil {
		return err
	}

	s.releaseImages(ctx, images)

	logging.Info(ctx, "guestbook entry deleted",
		slog.Uint64("entry_id", entry.EntryID),
		slog.Uint64("user_id", input.UserID),
	)
	return nil
}
