package guestbook

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	domainguestbook "seichi/internal/domain/guestbook"
	"seichi/internal/ports"
)

// uploadImages fans out one upload per non-empty payload and joins on all of
// them. All-or-nothing: when any upload fails the siblings are cancelled,
// every already-stored object is released, and the whole call fails with
// ErrImageUpload. Result order carries no meaning.
func (s *Service) uploadImages(ctx context.Context, payloads [][]byte) ([]ports.GuestbookImage, error) {
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.uploadLimit)

	var mu sync.Mutex
	images := make([]ports.GuestbookImage, 0, len(payloads))

	for _, payload := range payloads {
		if len(payload) == 0 {
			// Blank multipart parts are placeholders, not uploads.
			continue
		}

		data := payload
		group.Go(func() error {
			ref, err := s.images.Save(groupCtx, data)
			if err != nil {
				return err
			}

			mu.Lock()
			images = append(images, ports.GuestbookImage{
				StorageRef: ref,
				URL:        s.images.PublicURL(ref),
			})
			mu.Unlock()
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		// Release whatever landed before the failure so no orphaned
		// objects survive the aborted call.
		s.releaseImages(ctx, images)
		return nil, fmt.Errorf("%w: %v", domainguestbook.ErrImageUpload, err)
	}

	return images, nil
}

// releaseImages best-effort deletes stored objects after an aborted call.
func (s *Service) releaseImages(ctx context.Context, images []ports.GuestbookImage) {
	cleanupCtx := context.WithoutCancel(ctx)
	for _, image := range images {
		_ = s.images.Remove(cleanupCtx, image.StorageRef)
	}
}

// releaseRefs is releaseImages for bare storage references.
func (s *Service) releaseRefs(ctx context.Context, refs []string) {
	cleanupCtx := context.WithoutCancel(ctx)
	for _, ref := range refs {
		_ = s.images.Remove(cleanupCtx, ref)
	}
}
