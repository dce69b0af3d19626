package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"seichi/internal/errs"
	"seichi/internal/ports"
)

// LocalImageStore writes image payloads to a directory on disk, one file per
// opaque uuid reference. Stands in for the cloud bucket in local and test
// environments.
type LocalImageStore struct {
	dir     string
	baseURL string
}

var _ ports.ImageStore = (*LocalImageStore)(nil)

func NewLocalImageStore(dir string, baseURL string) (*LocalImageStore, error) {
	trimmedDir := strings.TrimSpace(dir)
	if trimmedDir == "" {
		return nil, errors.New("storage dir is required")
	}

	if err := os.MkdirAll(trimmedDir, 0o755); err != nil {
		return nil, errs.Wrapf(err, "create storage directory %q", trimmedDir)
	}

	return &LocalImageStore{
		dir:     trimmedDir,
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
	}, nil
}

func (s *LocalImageStore) Save(ctx context.Context, data []byte) (string, error) {
	if ctx == nil {
		return "", errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return "", errs.Wrap(err, "check context")
	}
	if len(data) == 0 {
		return "", errors.New("image payload is empty")
	}

	ref := uuid.NewString()
	if err := os.WriteFile(filepath.Join(s.dir, ref), data, 0o644); err != nil {
		return "", errs.Wrapf(err, "write image %q", ref)
	}
	return ref, nil
}

func (s *LocalImageStore) Remove(ctx context.Context, ref string) error {
	if ctx == nil {
		return errors.New("context is required")
	}

	trimmedRef := strings.TrimSpace(ref)
	if trimmedRef == "" {
		return errors.New("storage ref is required")
	}
	// Refs are uuids we handed out; refuse anything that could escape dir.
	if trimmedRef != filepath.Base(trimmedRef) {
		return errors.New("invalid storage ref")
	}

	if err := os.Remove(filepath.Join(s.dir, trimmedRef)); err != nil && !os.IsNotExist(err) {
		return errs.Wrapf(err, "remove image %q", trimmedRef)
	}
	return nil
}

func (s *LocalImageStore) PublicURL(ref string) string {
	return s.baseURL + "/" + ref
}
