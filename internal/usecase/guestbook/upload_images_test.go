package guestbook

import (
	"context"
	"errors"
	"testing"

	domainguestbook "seichi/internal/domain/guestbook"
)

func TestUploadImagesSkipsBlankPayloads(t *testing.T) {
	f := setupFixture(t)

	images, err := f.svc.uploadImages(context.Background(), [][]byte{
		[]byte("a"), nil, {}, []byte("b"),
	})
	if err != nil {
		t.Fatalf("uploadImages() error = %v", err)
	}
	if len(images) != 2 {
		t.Fatalf("uploaded = %d, want 2", len(images))
	}
	for _, image := range images {
		if image.StorageRef == "" {
			t.Fatalf("image missing storage ref: %#v", image)
		}
		if image.URL != f.images.PublicURL(image.StorageRef) {
			t.Fatalf("URL = %q, want public URL of %q", image.URL, image.StorageRef)
		}
	}
	if got := f.images.count(); got != 2 {
		t.Fatalf("stored objects = %d, want 2", got)
	}
}

func TestUploadImagesFailureReleasesSiblings(t *testing.T) {
	f := setupFixture(t)

	f.images.failOn = 3
	_, err := f.svc.uploadImages(context.Background(), [][]byte{
		[]byte("a"), []byte("b"), []byte("c"), []byte("d"),
	})
	if !errors.Is(err, domainguestbook.ErrImageUpload) {
		t.Fatalf("uploadImages() error = %v, want ErrImageUpload", err)
	}
	if got := f.images.count(); got != 0 {
		t.Fatalf("stored objects = %d, want 0 after cleanup", got)
	}
}
