package ports

import "context"

type User struct {
	UserID   uint64
	Nickname string
	Points   int64
}

type PointAward struct {
	AwardID   uint64
	UserID    uint64
	Amount    int64
	Reason    string
	CreatedAt string
}

type PointRepository interface {
	// GetUser returns guestbook.ErrUserNotFound when absent.
	GetUser(ctx context.Context, userID uint64) (User, error)
	FindUserByNickname(ctx context.Context, nickname string) (User, bool, error)
	CreateUser(ctx context.Context, nickname string) (User, error)

	// Award appends one ledger row and increases the user's balance by
	// the same amount. The balance update is a read-modify-write pushed to
	// the store so concurrent awards to one user cannot lose updates.
	Award(ctx context.Context, award PointAward) error
	// ListAwards returns the user's award history newest first.
	ListAwards(ctx context.Context, userID uint64) ([]PointAward, error)
}
