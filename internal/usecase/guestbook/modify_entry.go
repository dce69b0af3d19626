package guestbook

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"seichi/internal/bootstrap/logging"
	domainguestbook "seichi/internal/domain/guestbook"
	"seichi/internal/errs"
	"seichi/internal/ports"
)

// ModifyEntry patches an entry the caller authored. Provided hashtag or
// image sets replace the previous ones wholesale; nil means keep.
// Modification never re-certifies and never re-awards points.
func (s *Service) ModifyEntry(ctx context.Context, input ModifyEntryInput) error {
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

	var title *string
	if input.Title != nil {
		trimmed := strings.TrimSpace(*input.Title)
		title = &trimmed
	}
	var body *string
	if input.Body != nil {
		trimmed := strings.TrimSpace(*input.Body)
		body = &trimmed
	}

	uploaded, err := s.uploadImagesIfProvided(ctx, input.Images)
	if err != nil {
		return err
	}

	var removedRefs []string
	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.guestbooks.UpdateEntryText(txCtx, entry.EntryID, title, body, s.nowUTCString()); err != nil {
			return err
		}
		if input.Hashtags != nil {
			if err := s.guestbooks.ReplaceHashtags(txCtx, entry.EntryID, domainguestbook.NormalizeHashtags(input.Hashtags)); err != nil {
				return err
			}
		}
		if input.Images != nil {
			var err error
			removedRefs, err = s.guestbooks.ReplaceImages(txCtx, entry.EntryID, uploaded)
			return err
		}
		return nil
	}); err != nil {
		s.releaseImages(ctx, uploaded)
		return err
	}

	// The old rows are gone; release their storage objects too.
	s.releaseRefs(ctx, removedRefs)

	logging.Info(ctx, "guestbook entry modified",
		slog.Uint64("entry_id", entry.EntryID),
		slog.Uint64("user_id", input.UserID),
		slog.Bool("hashtags_replaced", input.Hashtags != nil),
		slog.Bool("images_replaced", input.Images != nil),
	)
	return nil
}

// uploadImagesIfProvided distinguishes "keep images" (nil) from
// "replace with this set" (non-nil, possibly all blank).
func (s *Service) uploadImagesIfProvided(ctx context.Context, payloads [][]byte) ([]ports.GuestbookImage, error) {
	if payloads == nil {
		return nil, nil
	}
	return s.uploadImages(ctx, payloads)
}
