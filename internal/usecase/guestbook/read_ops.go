package guestbook

import (
	"context"
	"errors"
	"time"

	"seichi/internal/errs"
	"seichi/internal/ports"
)

// IncreaseView bumps the entry's view counter. Safe to retry; each call is
// one atomic increment in the store.
func (s *Service) IncreaseView(ctx context.Context, entryID uint64) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return errs.Wrap(err, "check context")
	}
	if s.guestbooks == nil {
		return errors.New("guestbook repository is required")
	}

	return s.guestbooks.IncrementView(ctx, entryID)
}

// EntryDetail loads an entry with its owned collections. viewerID 0 means an
// anonymous reader: liked/author flags stay false.
func (s *Service) EntryDetail(ctx context.Context, entryID uint64, viewerID uint64) (EntryDetail, error) {
	if ctx == nil {
		return EntryDetail{}, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return EntryDetail{}, errs.Wrap(err, "check context")
	}
	if s.guestbooks == nil {
		return EntryDetail{}, errors.New("guestbook repository is required")
	}

	entry, err := s.guestbooks.GetEntry(ctx, entryID)
	if err != nil {
		return EntryDetail{}, err
	}

	images, err := s.guestbooks.ListImages(ctx, entryID)
	if err != nil {
		return EntryDetail{}, errs.Wrap(err, "list entry images")
	}
	urls := make([]string, 0, len(images))
	for _, image := range images {
		urls = append(urls, image.URL)
	}

	tags, err := s.guestbooks.ListHashtags(ctx, entryID)
	if err != nil {
		return EntryDetail{}, errs.Wrap(err, "list entry hashtags")
	}

	detail := EntryDetail{
		Entry:     entry,
		ImageURLs: urls,
		Hashtags:  tags,
	}

	if viewerID != 0 {
		liked, err := s.guestbooks.HasLike(ctx, entryID, viewerID)
		if err != nil {
			return EntryDetail{}, errs.Wrap(err, "check liked state")
		}
		detail.IsLiked = liked
		detail.IsAuthor = entry.UserID == viewerID
	}

	if s.comments != nil {
		count, err := s.comments.CountForEntry(ctx, entryID)
		if err != nil {
			return EntryDetail{}, errs.Wrap(err, "count comments")
		}
		detail.CommentCount = count
	}

	return detail, nil
}

// ListEntriesByUser pages through a user's entries, newest first.
// page is 1-based.
func (s *Service) ListEntriesByUser(ctx context.Context, userID uint64, page int, size int) ([]ports.GuestbookEntry, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, errs.Wrap(err, "check context")
	}
	if s.guestbooks == nil {
		return nil, errors.New("guestbook repository is required")
	}

	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}

	return s.guestbooks.ListEntriesByUser(ctx, userID, ports.GuestbookEntryPage{
		Offset: (page - 1) * size,
		Limit:  size,
	})
}

// TrendingToday ranks entries posted since local midnight by like count.
func (s *Service) TrendingToday(ctx context.Context, limit int) ([]ports.GuestbookEntry, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, errs.Wrap(err, "check context")
	}
	if s.guestbooks == nil {
		return nil, errors.New("guestbook repository is required")
	}

	if limit <= 0 {
		limit = 5
	}

	now := s.nowUTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return s.guestbooks.ListTrendingSince(ctx, startOfDay.Format(time.RFC3339Nano), limit)
}

// UserPoints returns the account balance with its award history.
func (s *Service) UserPoints(ctx context.Context, userID uint64) (ports.User, []ports.PointAward, error) {
	if ctx == nil {
		return ports.User{}, nil, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return ports.User{}, nil, errs.Wrap(err, "check context")
	}
	if s.points == nil {
		return ports.User{}, nil, errors.New("point repository is required")
	}

	user, err := s.points.GetUser(ctx, userID)
	if err != nil {
		return ports.User{}, nil, err
	}
	awards, err := s.points.ListAwards(ctx, userID)
	if err != nil {
		return ports.User{}, nil, errs.Wrap(err, "list point awards")
	}
	return user, awards, nil
}

// ListPilgrimages exposes the pilgrimage catalog to the console and CLI.
func (s *Service) ListPilgrimages(ctx context.Context) ([]ports.Pilgrimage, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, errs.Wrap(err, "check context")
	}
	if s.travel == nil {
		return nil, errors.New("travel repository is required")
	}

	return s.travel.ListPilgrimages(ctx)
}
