package guestbook

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

const seedTOML = `
[[users]]
nickname = "kita"

[[users]]
nickname = "bocchi"

[[rallies]]
name = "bocchi the rock"
description = "shimokitazawa"

  [[rallies.pilgrimages]]
  name = "shelter stairs"
  address = "setagaya"

  [[rallies.pilgrimages]]
  name = "starry"
  address = "shimokitazawa"

[[rallies]]
name = "lucky star"
description = "washinomiya"

  [[rallies.pilgrimages]]
  name = "washinomiya shrine"
  address = "kuki"
`

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write seed file: %v", err)
	}
	return path
}

func TestImportSeedCreatesMissingRows(t *testing.T) {
	f := setupFixture(t)
	path := writeSeedFile(t, seedTOML)

	summary, err := f.svc.ImportSeed(context.Background(), path)
	if err != nil {
		t.Fatalf("ImportSeed() error = %v", err)
	}

	// The fixture already holds user "bocchi", rally "bocchi the rock"
	// and pilgrimage "shelter stairs"; only the rest is created.
	if summary.UsersCreated != 1 {
		t.Fatalf("UsersCreated = %d, want 1", summary.UsersCreated)
	}
	if summary.RalliesCreated != 1 {
		t.Fatalf("RalliesCreated = %d, want 1", summary.RalliesCreated)
	}
	if summary.PilgrimagesCreated != 2 {
		t.Fatalf("PilgrimagesCreated = %d, want 2", summary.PilgrimagesCreated)
	}

	pilgrimages, err := f.svc.ListPilgrimages(context.Background())
	if err != nil {
		t.Fatalf("ListPilgrimages() error = %v", err)
	}
	if len(pilgrimages) != 3 {
		t.Fatalf("pilgrimages = %d, want 3", len(pilgrimages))
	}
}

func TestImportSeedIsIdempotent(t *testing.T) {
	f := setupFixture(t)
	path := writeSeedFile(t, seedTOML)

	if _, err := f.svc.ImportSeed(context.Background(), path); err != nil {
		t.Fatalf("first ImportSeed() error = %v", err)
	}

	summary, err := f.svc.ImportSeed(context.Background(), path)
	if err != nil {
		t.Fatalf("second ImportSeed() error = %v", err)
	}
	if summary.UsersCreated != 0 || summary.RalliesCreated != 0 || summary.PilgrimagesCreated != 0 {
		t.Fatalf("second run summary = %+v, want all zero", summary)
	}
}

func TestImportSeedRejectsBadInput(t *testing.T) {
	f := setupFixture(t)

	if _, err := f.svc.ImportSeed(context.Background(), "   "); err == nil {
		t.Fatalf("ImportSeed() expected error for blank path")
	}
	if _, err := f.svc.ImportSeed(context.Background(), filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("ImportSeed() expected error for missing file")
	}

	path := writeSeedFile(t, "[[users]]\nnickname = \"  \"\n")
	if _, err := f.svc.ImportSeed(context.Background(), path); err == nil {
		t.Fatalf("ImportSeed() expected error for blank nickname")
	}
}
