package cache

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"seichi/internal/infrastructure/persistence/sqlite/model"
)

var testDBSeq atomic.Uint64

func setupSQLiteCache(t *testing.T) *SQLiteCache {
	t.Helper()

	dsn := fmt.Sprintf("file:cache_test_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(&model.CacheKV{}); err != nil {
		t.Fatalf("auto migrate cache_kv: %v", err)
	}

	return NewSQLiteCache(db)
}

func TestSQLiteCacheSetGetDelete(t *testing.T) {
	cache := setupSQLiteCache(t)
	ctx := context.Background()

	if err := cache.Set(ctx, "certification:1:2", "2026-03-01T12:00:00Z", 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	value, found, err := cache.Get(ctx, "certification:1:2")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !found || value != "2026-03-01T12:00:00Z" {
		t.Fatalf("Get() = %q, found=%v", value, found)
	}

	if err := cache.Set(ctx, "certification:1:2", "2026-03-02T08:00:00Z", 0); err != nil {
		t.Fatalf("Set(update) error = %v", err)
	}

	value, found, err = cache.Get(ctx, "certification:1:2")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !found || value != "2026-03-02T08:00:00Z" {
		t.Fatalf("Get() after update = %q, found=%v", value, found)
	}

	if err := cache.Delete(ctx, "certification:1:2"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	_, found, err = cache.Get(ctx, "certification:1:2")
	if err != nil {
		t.Fatalf("Get() after delete error = %v", err)
	}
	if found {
		t.Fatalf("Get() expected found=false after delete")
	}
}

func TestSQLiteCacheExpiry(t *testing.T) {
	cache := setupSQLiteCache(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return base }

	if err := cache.Set(ctx, "certification:1:2", "checked-in", 24*time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	cache.now = func() time.Time { return base.Add(23*time.Hour + 59*time.Minute) }
	_, found, err := cache.Get(ctx, "certification:1:2")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !found {
		t.Fatalf("Get() expected found=true inside the ttl")
	}

	cache.now = func() time.Time { return base.Add(24*time.Hour + 1*time.Minute) }
	_, found, err = cache.Get(ctx, "certification:1:2")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if found {
		t.Fatalf("Get() expected found=false past the ttl")
	}

	// Re-setting re-arms the expiry.
	cache.now = func() time.Time { return base.Add(25 * time.Hour) }
	if err := cache.Set(ctx, "certification:1:2", "checked-in-again", 24*time.Hour); err != nil {
		t.Fatalf("Set(rearm) error = %v", err)
	}
	_, found, err = cache.Get(ctx, "certification:1:2")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !found {
		t.Fatalf("Get() expected found=true after re-arm")
	}
}

func TestSQLiteCacheCompareAndDelete(t *testing.T) {
	cache := setupSQLiteCache(t)
	ctx := context.Background()

	if err := cache.Set(ctx, "certification:9:9", "v1", 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	deleted, err := cache.CompareAndDelete(ctx, "certification:9:9", "other")
	if err != nil {
		t.Fatalf("CompareAndDelete() error = %v", err)
	}
	if deleted {
		t.Fatalf("CompareAndDelete() expected no delete on value mismatch")
	}

	deleted, err = cache.CompareAndDelete(ctx, "certification:9:9", "v1")
	if err != nil {
		t.Fatalf("CompareAndDelete() error = %v", err)
	}
	if !deleted {
		t.Fatalf("CompareAndDelete() expected delete on matching value")
	}

	_, found, err := cache.Get(ctx, "certification:9:9")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if found {
		t.Fatalf("Get() expected found=false after compare-and-delete")
	}
}
