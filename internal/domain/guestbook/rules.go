package guestbook

import (
	"fmt"
	"strings"
	"time"
)

// CertificationWindow bounds how long a check-in stays claimable.
const CertificationWindow = 24 * time.Hour

// AwardReasonCertification is the ledger reason for a certified post.
const AwardReasonCertification = "certification"

// CertificationKey is the window-store key for one (user, pilgrimage) pair.
func CertificationKey(userID, pilgrimageID uint64) string {
	return fmt.Sprintf("certification:%d:%d", userID, pilgrimageID)
}

// IsWithinWindow reports whether a check-in instant is still claimable at now.
func IsWithinWindow(checkedInAt, now time.Time) bool {
	return now.Sub(checkedInAt) <= CertificationWindow
}

// HasUsableImage reports whether at least one payload carries bytes.
// Blank payloads are placeholders from multipart forms and are skipped.
func HasUsableImage(payloads [][]byte) bool {
	for _, payload := range payloads {
		if len(payload) > 0 {
			return true
		}
	}
	return false
}

// NormalizeHashtags trims, drops blanks, and deduplicates preserving order.
func NormalizeHashtags(in []string) []string {
	if len(in) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, raw := range in {
		tag := strings.TrimSpace(raw)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
