package guestbook

import (
	"errors"
	"time"
)

const defaultUploadLimit = 4

func (s *Service) nowUTC() time.Time {
	return s.now().UTC()
}

func (s *Service) nowUTCString() string {
	return s.nowUTC().Format(time.RFC3339Nano)
}

func (s *Service) checkDeps() error {
	if s.guestbooks == nil {
		return errors.New("guestbook repository is required")
	}
	if s.travel == nil {
		return errors.New("travel repository is required")
	}
	if s.points == nil {
		return errors.New("point repository is required")
	}
	if s.uow == nil {
		return errors.New("unit of work is required")
	}
	if s.window == nil {
		return errors.New("certification window store is required")
	}
	if s.images == nil {
		return errors.New("image store is required")
	}
	return nil
}
