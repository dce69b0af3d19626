package ports

import "context"

type GuestbookEntry struct {
	EntryID      uint64
	UserID       uint64
	PilgrimageID uint64
	Title        string
	Body         string
	ViewCount    int64
	LikeCount    int64
	CreatedAt    string
	UpdatedAt    string
}

type GuestbookImage struct {
	ImageID    uint64
	EntryID    uint64
	StorageRef string
	URL        string
}

type GuestbookEntryPage struct {
	Offset int
	Limit  int
}

// GuestbookReadRepository is the query surface the listing/console side uses.
type GuestbookReadRepository interface {
	// GetEntry returns guestbook.ErrEntryNotFound when the entry is absent.
	GetEntry(ctx context.Context, entryID uint64) (GuestbookEntry, error)
	ListHashtags(ctx context.Context, entryID uint64) ([]string, error)
	ListImages(ctx context.Context, entryID uint64) ([]GuestbookImage, error)
	ListEntriesByUser(ctx context.Context, userID uint64, page GuestbookEntryPage) ([]GuestbookEntry, error)
	// ListTrendingSince returns entries created at or after since,
	// most liked first.
	ListTrendingSince(ctx context.Context, since string, limit int) ([]GuestbookEntry, error)
	HasLike(ctx context.Context, entryID uint64, userID uint64) (bool, error)
}

type GuestbookRepository interface {
	GuestbookReadRepository
	// CreateEntry persists the entry with its owned hashtags and images.
	CreateEntry(ctx context.Context, entry GuestbookEntry, hashtags []string, images []GuestbookImage) (GuestbookEntry, error)
	UpdateEntryText(ctx context.Context, entryID uint64, title *string, body *string, updatedAt string) error
	// ReplaceHashtags clears the whole set and rebuilds it.
	ReplaceHashtags(ctx context.Context, entryID uint64, tags []string) error
	// ReplaceImages clears the image rows and rebuilds them, returning the
	// storage refs of the removed rows so callers can release the objects.
	ReplaceImages(ctx context.Context, entryID uint64, images []GuestbookImage) (removedRefs []string, err error)
	// DeleteEntry removes the entry and cascades hashtags, images and likes.
	DeleteEntry(ctx context.Context, entryID uint64) error
	DeleteLike(ctx context.Context, entryID uint64, userID uint64) error
	// IncrementView bumps the view counter atomically; absent entry fails
	// with guestbook.ErrEntryNotFound.
	IncrementView(ctx context.Context, entryID uint64) error
}

// CommentCounter exposes comment totals owned by the comment subsystem.
type CommentCounter interface {
	CountForEntry(ctx context.Context, entryID uint64) (int64, error)
}
