package guestbook

import (
	"testing"
	"time"
)

func TestCertificationKey(t *testing.T) {
	got := CertificationKey(7, 42)
	if got != "certification:7:42" {
		t.Fatalf("CertificationKey() = %q", got)
	}
}

func TestIsWithinWindowBoundary(t *testing.T) {
	checkedIn := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	if !IsWithinWindow(checkedIn, checkedIn.Add(23*time.Hour+59*time.Minute)) {
		t.Fatalf("IsWithinWindow() expected true just inside the window")
	}
	if IsWithinWindow(checkedIn, checkedIn.Add(24*time.Hour+1*time.Minute)) {
		t.Fatalf("IsWithinWindow() expected false just past the window")
	}
}

func TestHasUsableImage(t *testing.T) {
	if HasUsableImage(nil) {
		t.Fatalf("HasUsableImage(nil) expected false")
	}
	if HasUsableImage([][]byte{nil, {}}) {
		t.Fatalf("HasUsableImage() expected false for blank payloads")
	}
	if !HasUsableImage([][]byte{nil, []byte("jpeg")}) {
		t.Fatalf("HasUsableImage() expected true when one payload has bytes")
	}
}

func TestNormalizeHashtags(t *testing.T) {
	got := NormalizeHashtags([]string{" shrine ", "", "shrine", "anime"})
	if len(got) != 2 || got[0] != "shrine" || got[1] != "anime" {
		t.Fatalf("NormalizeHashtags() = %#v", got)
	}

	if NormalizeHashtags(nil) != nil {
		t.Fatalf("NormalizeHashtags(nil) expected nil")
	}
}
