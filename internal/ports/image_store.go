package ports

import "context"

// ImageStore persists raw image bytes under an opaque storage reference.
type ImageStore interface {
	// Save uploads the payload and returns its storage reference.
	Save(ctx context.Context, data []byte) (string, error)
	// Remove deletes a stored object; removing an absent reference is not an error.
	Remove(ctx context.Context, ref string) error
	// PublicURL converts a storage reference to a public URL. Pure, never fails.
	PublicURL(ref string) string
}
