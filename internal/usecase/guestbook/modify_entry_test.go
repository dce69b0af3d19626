package guestbook

import (
	"context"
	"errors"
	"sort"
	"testing"

	domainguestbook "seichi/internal/domain/guestbook"
	"seichi/internal/infrastructure/persistence/sqlite/model"
)

func TestModifyEntryRejectsNonAuthor(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	entry := f.checkInAndPost(t)

	title := "hijacked"
	err := f.svc.ModifyEntry(ctx, ModifyEntryInput{
		UserID:  f.other.UserID,
		EntryID: entry.EntryID,
		Title:   &title,
	})
	if !errors.Is(err, domainguestbook.ErrNotAuthor) {
		t.Fatalf("ModifyEntry() error = %v, want ErrNotAuthor", err)
	}

	detail, err := f.svc.EntryDetail(ctx, entry.EntryID, 0)
	if err != nil {
		t.Fatalf("EntryDetail() error = %v", err)
	}
	if detail.Entry.Title != "made it" {
		t.Fatalf("Title = %q, want unchanged", detail.Entry.Title)
	}
	if len(detail.Hashtags) != 2 || len(detail.ImageURLs) != 2 {
		t.Fatalf("collections changed: tags=%d images=%d", len(detail.Hashtags), len(detail.ImageURLs))
	}
}

func TestModifyEntryNilMeansKeep(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	entry := f.checkInAndPost(t)
	storedBefore := f.images.count()

	body := "  revisited after the live  "
	if err := f.svc.ModifyEntry(ctx, ModifyEntryInput{
		UserID:  f.user.UserID,
		EntryID: entry.EntryID,
		Body:    &body,
	}); err != nil {
		t.Fatalf("ModifyEntry() error = %v", err)
	}

	detail, err := f.svc.EntryDetail(ctx, entry.EntryID, 0)
	if err != nil {
		t.Fatalf("EntryDetail() error = %v", err)
	}
	if detail.Entry.Title != "made it" {
		t.Fatalf("Title = %q, want unchanged", detail.Entry.Title)
	}
	if detail.Entry.Body != "revisited after the live" {
		t.Fatalf("Body = %q, want trimmed replacement", detail.Entry.Body)
	}
	if len(detail.Hashtags) != 2 || len(detail.ImageURLs) != 2 {
		t.Fatalf("collections changed: tags=%d images=%d", len(detail.Hashtags), len(detail.ImageURLs))
	}
	if got := f.images.count(); got != storedBefore {
		t.Fatalf("stored objects = %d, want %d", got, storedBefore)
	}
}

func TestModifyEntryReplacesHashtagSet(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	entry := f.checkInAndPost(t)

	if err := f.svc.ModifyEntry(ctx, ModifyEntryInput{
		UserID:   f.user.UserID,
		EntryID:  entry.EntryID,
		Hashtags: []string{" live ", "encore", "encore"},
	}); err != nil {
		t.Fatalf("ModifyEntry() error = %v", err)
	}

	tags, err := f.svc.guestbooks.ListHashtags(ctx, entry.EntryID)
	if err != nil {
		t.Fatalf("ListHashtags() error = %v", err)
	}
	sort.Strings(tags)
	if len(tags) != 2 || tags[0] != "encore" || tags[1] != "live" {
		t.Fatalf("hashtags = %#v, want [encore live]", tags)
	}
}

func TestModifyEntryReplacesImagesAndReleasesOld(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	entry := f.checkInAndPost(t)
	if got := f.images.count(); got != 2 {
		t.Fatalf("stored objects = %d, want 2 before replacement", got)
	}

	if err := f.svc.ModifyEntry(ctx, ModifyEntryInput{
		UserID:  f.user.UserID,
		EntryID: entry.EntryID,
		Images:  [][]byte{[]byte("img-c")},
	}); err != nil {
		t.Fatalf("ModifyEntry() error = %v", err)
	}

	images, err := f.svc.guestbooks.ListImages(ctx, entry.EntryID)
	if err != nil {
		t.Fatalf("ListImages() error = %v", err)
	}
	if len(images) != 1 {
		t.Fatalf("image rows = %d, want 1", len(images))
	}

	// The two originals are released; only the replacement survives.
	if got := f.images.count(); got != 1 {
		t.Fatalf("stored objects = %d, want 1 after replacement", got)
	}
}

func TestModifyEntryUploadFailureKeepsEntry(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	entry := f.checkInAndPost(t)
	f.images.failOn = f.images.saves + 1

	err := f.svc.ModifyEntry(ctx, ModifyEntryInput{
		UserID:  f.user.UserID,
		EntryID: entry.EntryID,
		Images:  [][]byte{[]byte("img-x"), []byte("img-y")},
	})
	if !errors.Is(err, domainguestbook.ErrImageUpload) {
		t.Fatalf("ModifyEntry() error = %v, want ErrImageUpload", err)
	}

	images, err := f.svc.guestbooks.ListImages(ctx, entry.EntryID)
	if err != nil {
		t.Fatalf("ListImages() error = %v", err)
	}
	if len(images) != 2 {
		t.Fatalf("image rows = %d, want original 2", len(images))
	}
	if got := f.images.count(); got != 2 {
		t.Fatalf("stored objects = %d, want original 2", got)
	}
}

func TestDeleteEntryRejectsNonAuthor(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	entry := f.checkInAndPost(t)

	err := f.svc.DeleteEntry(ctx, DeleteEntryInput{UserID: f.other.UserID, EntryID: entry.EntryID})
	if !errors.Is(err, domainguestbook.ErrNotAuthor) {
		t.Fatalf("DeleteEntry() error = %v, want ErrNotAuthor", err)
	}

	if got := f.countRows(t, &model.GuestbookEntry{}); got != 1 {
		t.Fatalf("entries = %d, want 1", got)
	}
}

func TestDeleteEntryCascadesAndReleasesStorage(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	entry := f.checkInAndPost(t)

	like := model.LikedEntry{EntryID: entry.EntryID, UserID: f.other.UserID}
	if err := f.db.Create(&like).Error; err != nil {
		t.Fatalf("seed like: %v", err)
	}

	if err := f.svc.DeleteEntry(ctx, DeleteEntryInput{UserID: f.user.UserID, EntryID: entry.EntryID}); err != nil {
		t.Fatalf("DeleteEntry() error = %v", err)
	}

	if got := f.countRows(t, &model.GuestbookEntry{}); got != 0 {
		t.Fatalf("entries = %d, want 0", got)
	}
	if got := f.countRows(t, &model.HashTag{}); got != 0 {
		t.Fatalf("hashtag rows = %d, want 0", got)
	}
	if got := f.countRows(t, &model.Image{}); got != 0 {
		t.Fatalf("image rows = %d, want 0", got)
	}
	if got := f.countRows(t, &model.LikedEntry{}); got != 0 {
		t.Fatalf("like rows = %d, want 0", got)
	}
	if got := f.images.count(); got != 0 {
		t.Fatalf("stored objects = %d, want 0", got)
	}

	_, err := f.svc.EntryDetail(ctx, entry.EntryID, 0)
	if !errors.Is(err, domainguestbook.ErrEntryNotFound) {
		t.Fatalf("EntryDetail() error = %v, want ErrEntryNotFound", err)
	}
}
