package ports

import "context"

type Rally struct {
	RallyID         uint64
	Name            string
	Description     string
	AchieveCount    int64
	PilgrimageCount int64
}

type Pilgrimage struct {
	PilgrimageID uint64
	RallyID      uint64
	Name         string
	Address      string
	VisitCount   int64
}

type VisitRecord struct {
	VisitID      uint64
	UserID       uint64
	PilgrimageID uint64
	CreatedAt    string
}

type TravelRepository interface {
	// GetPilgrimage returns guestbook.ErrPilgrimageNotFound when absent.
	GetPilgrimage(ctx context.Context, pilgrimageID uint64) (Pilgrimage, error)
	GetRally(ctx context.Context, rallyID uint64) (Rally, error)
	ListPilgrimages(ctx context.Context) ([]Pilgrimage, error)
	FindRallyByName(ctx context.Context, name string) (Rally, bool, error)
	FindPilgrimageByName(ctx context.Context, rallyID uint64, name string) (Pilgrimage, bool, error)
	CreateRally(ctx context.Context, rally Rally) (Rally, error)
	CreatePilgrimage(ctx context.Context, pilgrimage Pilgrimage) (Pilgrimage, error)

	// HasVisited scans the user's visit history newest first for the
	// pilgrimage. Durable signal, independent of the window store.
	HasVisited(ctx context.Context, userID uint64, pilgrimageID uint64) (bool, error)
	ListVisits(ctx context.Context, userID uint64, pilgrimageID uint64) ([]VisitRecord, error)
	// AppendVisit adds one visit row; visit history is append-only.
	AppendVisit(ctx context.Context, userID uint64, pilgrimageID uint64, createdAt string) error
	// IncrementVisitCounters advances the pilgrimage visit count and the
	// owning rally's achieve count by one, atomically per column.
	IncrementVisitCounters(ctx context.Context, pilgrimageID uint64) error
}
