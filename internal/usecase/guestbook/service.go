package guestbook

import (
	"time"

	"seichi/internal/ports"
)

// Service wires the certification pipeline: window store, visit ledger,
// guestbook aggregate, image store and point ledger.
type Service struct {
	guestbooks ports.GuestbookRepository
	travel     ports.TravelRepository
	points     ports.PointRepository
	uow        ports.UnitOfWork
	window     ports.Cache
	images     ports.ImageStore
	comments   ports.CommentCounter

	awardAmount int64
	uploadLimit int
	now         func() time.Time
}

func NewService(
	guestbooks ports.GuestbookRepository,
	travel ports.TravelRepository,
	points ports.PointRepository,
	uow ports.UnitOfWork,
	window ports.Cache,
	images ports.ImageStore,
	awardAmount int64,
) *Service {
	return &Service{
		guestbooks:  guestbooks,
		travel:      travel,
		points:      points,
		uow:         uow,
		window:      window,
		images:      images,
		awardAmount: awardAmount,
		uploadLimit: defaultUploadLimit,
		now:         time.Now,
	}
}

// SetCommentCounter attaches the comment subsystem's counter. Optional;
// details report zero comments without it.
func (s *Service) SetCommentCounter(counter ports.CommentCounter) {
	s.comments = counter
}

type RecordCheckInInput struct {
	UserID       uint64
	PilgrimageID uint64
}

type CertifyAndPostInput struct {
	UserID       uint64
	PilgrimageID uint64
	Title        string
	Body         string
	Hashtags     []string
	Images       [][]byte
}

// ModifyEntryInput patches an entry. Nil pointer/slice fields mean
// "leave unchanged"; non-nil Hashtags or Images replace the whole set.
type ModifyEntryInput struct {
	UserID   uint64
	EntryID  uint64
	Title    *string
	Body     *string
	Hashtags []string
	Images   [][]byte
}

type DeleteEntryInput struct {
	UserID  uint64
	EntryID uint64
}

type EntryDetail struct {
	Entry        ports.GuestbookEntry
	ImageURLs    []string
	Hashtags     []string
	IsLiked      bool
	IsAuthor     bool
	CommentCount int64
}
