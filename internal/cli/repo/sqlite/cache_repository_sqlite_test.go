package sqlite

import (
	"TaskBuckets/internal/cli/cache"
	"TaskBuckets/internal/cli/repo"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openMigrated(t *testing.T, login string) *CacheRepositorySQLite {
	t.Helper()
	r, _, err := OpenForUser(t.TempDir(), login)
	if err != nil {
		t.Fatalf("OpenForUser: %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })
	if err := r.Migrate(); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return r
}

func TestOpenForUser_And_Migrate(t *testing.T) {
	base := t.TempDir()
	r, dbPath, err := OpenForUser(base, "john")
	if err != nil {
		t.Fatalf("OpenForUser: %v", err)
	}
	defer r.Close()
	if dbPath != filepath.Join(base, "john", "cache.sqlite") {
		t.Fatalf("unexpected db path %q", dbPath)
	}
	if err := r.Migrate(); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	// повторная миграция идемпотентна
	if err := r.Migrate(); err != nil {
		t.Fatalf("Migrate twice: %v", err)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("db file not created: %v", err)
	}
}

func TestSave_Load_RoundTripReplacesContent(t *testing.T) {
	r := openMigrated(t, "ann")

	list, err := r.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %d", len(list))
	}

	at := time.UnixMilli(time.Now().UnixMilli())
	first := []cache.Record{
		{Key: cache.KeyBuckets, Data: json.RawMessage(`[{"id":1}]`), UpdatedAt: at},
		{Key: cache.TaskKey(3), Data: json.RawMessage(`{"id":3}`), Stale: true, UpdatedAt: at},
	}
	if err := r.Save(first); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := r.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	// порядок по ключу: buckets < tasks/3
	if got[0].Key != cache.KeyBuckets || string(got[0].Data) != `[{"id":1}]` || got[0].Stale {
		t.Fatalf("unexpected first record: %+v", got[0])
	}
	if !got[1].Stale || !got[1].UpdatedAt.Equal(at) {
		t.Fatalf("stale flag or timestamp lost: %+v", got[1])
	}

	// повторное сохранение заменяет всё
	if err := r.Save([]cache.Record{{Key: cache.KeyTasks, Data: json.RawMessage(`[]`), UpdatedAt: at}}); err != nil {
		t.Fatal(err)
	}
	got, _ = r.Load()
	if len(got) != 1 || got[0].Key != cache.KeyTasks {
		t.Fatalf("save must replace content, got %+v", got)
	}
}

func TestClear(t *testing.T) {
	r := openMigrated(t, "kate")
	if err := r.Save([]cache.Record{{Key: cache.KeyTasks, Data: json.RawMessage(`[]`), UpdatedAt: time.Now()}}); err != nil {
		t.Fatal(err)
	}
	if err := r.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	got, _ := r.Load()
	if len(got) != 0 {
		t.Fatalf("expected empty after clear, got %d", len(got))
	}
}

func TestUsersAreIsolated(t *testing.T) {
	base := t.TempDir()
	a, _, err := OpenForUser(base, "alice")
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()
	b, _, err := OpenForUser(base, "bob")
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()
	_ = a.Migrate()
	_ = b.Migrate()

	if err := a.Save([]cache.Record{{Key: cache.KeyBuckets, Data: json.RawMessage(`[]`), UpdatedAt: time.Now()}}); err != nil {
		t.Fatal(err)
	}
	got, _ := b.Load()
	if len(got) != 0 {
		t.Fatalf("bob must not see alice's cache")
	}
}

func TestOpenForUser_Errors(t *testing.T) {
	if _, _, err := OpenForUser(t.TempDir(), ""); err == nil {
		t.Fatalf("OpenForUser with empty login must fail")
	}
	if _, _, err := OpenForUser("", "usr"); err == nil {
		t.Fatalf("OpenForUser with empty base must fail")
	}
	// Close безопасен для nil
	var r *CacheRepositorySQLite
	if err := r.Close(); err != nil {
		t.Fatalf("nil Close must not fail: %v", err)
	}

	// base указывает на существующий файл, а не каталог → ожидаем ошибку
	tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
	if err := os.WriteFile(tmpFile, []byte("x"), 0o600); err != nil {
		t.Fatalf("prepare tmp file: %v", err)
	}
	if _, _, err := OpenForUser(tmpFile, "usr"); err == nil {
		t.Fatalf("expected error when base points to a file")
	}
}

func TestOpenForUser_UnsafeLoginUsesHashedDir(t *testing.T) {
	base := t.TempDir()
	for _, login := range []string{"alice@example.com", "a/b", "..", "u-bob"} {
		r, dbPath, err := OpenForUser(base, login)
		if err != nil {
			t.Fatalf("OpenForUser(%q): %v", login, err)
		}
		if err := r.Migrate(); err != nil {
			t.Fatalf("Migrate: %v", err)
		}
		_ = r.Close()
		if filepath.Dir(filepath.Dir(dbPath)) != base {
			t.Fatalf("db for %q escaped base dir: %s", login, dbPath)
		}
		if got, want := filepath.Base(filepath.Dir(dbPath)), repo.UserDirName(login); got != want {
			t.Fatalf("dir for %q = %s, want %s", login, got, want)
		}
	}
}

func TestClose_Twice_NoPanic(t *testing.T) {
	r, _, err := OpenForUser(t.TempDir(), "twice")
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("close #1: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("close #2: %v", err)
	}
}
