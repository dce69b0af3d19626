package guestbook

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"seichi/internal/infrastructure/persistence/sqlite/model"
	sqliterepo "seichi/internal/infrastructure/persistence/sqlite/repository"
	sqliteuow "seichi/internal/infrastructure/persistence/sqlite/uow"
	"seichi/internal/ports"
)

const testAwardAmount = 20

// testWindowStore is an in-memory ports.Cache; expiry is exercised through
// the service clock, not the store.
type testWindowStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newTestWindowStore() *testWindowStore {
	return &testWindowStore{data: make(map[string]string)}
}

func (c *testWindowStore) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *testWindowStore) Set(_ context.Context, key string, value string, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *testWindowStore) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *testWindowStore) CompareAndDelete(_ context.Context, key string, expected string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.data[key]; ok && v == expected {
		delete(c.data, key)
		return true, nil
	}
	return false, nil
}

func (c *testWindowStore) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}

// testImageStore keeps uploads in memory and can fail a chosen Save call.
type testImageStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	saves   int
	failOn  int
}

func newTestImageStore() *testImageStore {
	return &testImageStore{objects: make(map[string][]byte)}
}

func (s *testImageStore) Save(_ context.Context, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if s.failOn > 0 && s.saves == s.failOn {
		return "", fmt.Errorf("storage unavailable")
	}
	ref := fmt.Sprintf("ref-%d", s.saves)
	s.objects[ref] = data
	return ref, nil
}

func (s *testImageStore) Remove(_ context.Context, ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, ref)
	return nil
}

func (s *testImageStore) PublicURL(ref string) string {
	return "http://img.test/" + ref
}

func (s *testImageStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

type testFixture struct {
	svc        *Service
	db         *gorm.DB
	window     *testWindowStore
	images     *testImageStore
	user       ports.User
	other      ports.User
	pilgrimage ports.Pilgrimage
	rally      ports.Rally
}

var testDBSeq atomic.Uint64

func setupFixture(t *testing.T) *testFixture {
	t.Helper()

	dsn := fmt.Sprintf("file:guestbook_test_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Rally{},
		&model.Pilgrimage{},
		&model.VisitedPilgrimage{},
		&model.GuestbookEntry{},
		&model.HashTag{},
		&model.Image{},
		&model.LikedEntry{},
		&model.PointAward{},
		&model.CacheKV{},
	); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	guestbooks := sqliterepo.NewGuestbookRepository(db)
	travel := sqliterepo.NewTravelRepository(db)
	points := sqliterepo.NewPointRepository(db)
	uow := sqliteuow.NewUnitOfWork(db)
	window := newTestWindowStore()
	images := newTestImageStore()

	svc := NewService(guestbooks, travel, points, uow, window, images, testAwardAmount)

	ctx := context.Background()
	user, err := points.CreateUser(ctx, "bocchi")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	other, err := points.CreateUser(ctx, "nijika")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	rally, err := travel.CreateRally(ctx, ports.Rally{Name: "bocchi the rock", Description: "shimokitazawa"})
	if err != nil {
		t.Fatalf("create rally: %v", err)
	}
	pilgrimage, err := travel.CreatePilgrimage(ctx, ports.Pilgrimage{RallyID: rally.RallyID, Name: "shelter stairs", Address: "setagaya"})
	if err != nil {
		t.Fatalf("create pilgrimage: %v", err)
	}

	return &testFixture{
		svc:        svc,
		db:         db,
		window:     window,
		images:     images,
		user:       user,
		other:      other,
		pilgrimage: pilgrimage,
		rally:      rally,
	}
}

func (f *testFixture) countRows(t *testing.T, value any) int64 {
	t.Helper()
	var count int64
	if err := f.db.Model(value).Count(&count).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return count
}

func (f *testFixture) checkInAndPost(t *testing.T) ports.GuestbookEntry {
	t.Helper()
	ctx := context.Background()

	if err := f.svc.RecordCheckIn(ctx, RecordCheckInInput{UserID: f.user.UserID, PilgrimageID: f.pilgrimage.PilgrimageID}); err != nil {
		t.Fatalf("RecordCheckIn() error = %v", err)
	}

	entry, err := f.svc.CertifyAndPost(ctx, CertifyAndPostInput{
		UserID:       f.user.UserID,
		PilgrimageID: f.pilgrimage.PilgrimageID,
		Title:        "made it",
		Body:         "the stairs from the opening",
		Hashtags:     []string{"seichi", "rock"},
		Images:       [][]byte{[]byte("img-a"), []byte("img-b")},
	})
	if err != nil {
		t.Fatalf("CertifyAndPost() error = %v", err)
	}
	return entry
}
