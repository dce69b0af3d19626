package guestbook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"seichi/internal/bootstrap/logging"
	domainguestbook "seichi/internal/domain/guestbook"
	"seichi/internal/errs"
	"seichi/internal/ports"
)

// CertifyAndPost turns a fresh, confirmed check-in into a guestbook entry
// and pays out the certification award exactly once.
//
// Both eligibility signals are required: the durable visit ledger proves the
// visit happened, the window store proves it is recent. Entry, visit row,
// counters and point award commit in one transaction; the window key is
// cleared afterwards so the same check-in cannot back a second entry.
func (s *Service) CertifyAndPost(ctx context.Context, input CertifyAndPostInput) (ports.GuestbookEntry, error) {
	if ctx == nil {
		return ports.GuestbookEntry{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return ports.GuestbookEntry{}, errs.Wrap(err, "check context")
	}
	if err := s.checkDeps(); err != nil {
		return ports.GuestbookEntry{}, err
	}

	user, err := s.points.GetUser(ctx, input.UserID)
	if err != nil {
		return ports.GuestbookEntry{}, err
	}

	pilgrimage, err := s.travel.GetPilgrimage(ctx, input.PilgrimageID)
	if err != nil {
		return ports.GuestbookEntry{}, err
	}

	if !domainguestbook.HasUsableImage(input.Images) {
		return ports.GuestbookEntry{}, domainguestbook.ErrMissingImages
	}

	visited, err := s.travel.HasVisited(ctx, user.UserID, pilgrimage.PilgrimageID)
	if err != nil {
		return ports.GuestbookEntry{}, errs.Wrap(err, "check visit ledger")
	}
	if !visited {
		return ports.GuestbookEntry{}, fmt.Errorf("%w: no confirmed visit", domainguestbook.ErrNotCertified)
	}

	key := domainguestbook.CertificationKey(user.UserID, pilgrimage.PilgrimageID)
	windowValue, found, err := s.window.Get(ctx, key)
	if err != nil {
		return ports.GuestbookEntry{}, errs.Wrap(err, "check certification window")
	}
	if !found {
		return ports.GuestbookEntry{}, fmt.Errorf("%w: certification window expired", domainguestbook.ErrNotCertified)
	}
	checkedInAt, err := time.Parse(time.RFC3339Nano, windowValue)
	if err != nil {
		return ports.GuestbookEntry{}, errs.Wrap(err, "parse certification instant")
	}
	// The store self-expires, but the stored instant is re-checked against
	// the window so a laggard purge cannot certify a stale check-in.
	if !domainguestbook.IsWithinWindow(checkedInAt, s.nowUTC()) {
		return ports.GuestbookEntry{}, fmt.Errorf("%w: certification window expired", domainguestbook.ErrNotCertified)
	}

	uploaded, err := s.uploadImages(ctx, input.Images)
	if err != nil {
		return ports.GuestbookEntry{}, err
	}

	tags := domainguestbook.NormalizeHashtags(input.Hashtags)
	now := s.nowUTCString()

	var created ports.GuestbookEntry
	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.guestbooks.CreateEntry(txCtx, ports.GuestbookEntry{
			UserID:       user.UserID,
			PilgrimageID: pilgrimage.PilgrimageID,
			Title:        strings.TrimSpace(input.Title),
			Body:         strings.TrimSpace(input.Body),
			CreatedAt:    now,
			UpdatedAt:    now,
		}, tags, uploaded)
		if err != nil {
			return err
		}

		if err := s.travel.AppendVisit(txCtx, user.UserID, pilgrimage.PilgrimageID, now); err != nil {
			return err
		}
		if err := s.travel.IncrementVisitCounters(txCtx, pilgrimage.PilgrimageID); err != nil {
			return err
		}

		return s.points.Award(txCtx, ports.PointAward{
			UserID:    user.UserID,
			Amount:    s.awardAmount,
			Reason:    domainguestbook.AwardReasonCertification,
			CreatedAt: now,
		})
	}); err != nil {
		// Nothing committed; release the uploaded objects too.
		s.releaseImages(ctx, uploaded)
		return ports.GuestbookEntry{}, err
	}

	// Compare-and-delete so a window re-armed by a newer check-in survives.
	cleared, err := s.window.CompareAndDelete(ctx, key, windowValue)
	if err != nil {
		logging.Warn(ctx, "clear certification window failed",
			slog.String("key", key), slog.Any("err", errs.Loggable(err)))
	} else if !cleared {
		logging.Warn(ctx, "certification window changed during post", slog.String("key", key))
	}

	logging.Info(ctx, "guestbook entry certified",
		slog.Uint64("entry_id", created.EntryID),
		slog.Uint64("user_id", user.UserID),
		slog.Uint64("pilgrimage_id", pilgrimage.PilgrimageID),
		slog.Int("images", len(uploaded)),
		slog.Int64("points_awarded", s.awardAmount),
	)
	return created, nil
}
