package commands

import (
	"TaskBuckets/internal/config"
	"TaskBuckets/internal/handlers"
	"TaskBuckets/internal/repo"
	"TaskBuckets/internal/service"
	"bytes"
	"context"
	"fmt"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// withTempConfig возвращает конфиг клиента, у которого токен и базы лежат в temp.
func withTempConfig(t *testing.T, serverURL string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		ServerURL:    serverURL,
		ClientDBPath: filepath.Join(dir, "users"),
		TokenFile:    filepath.Join(dir, "auth_token"),
	}
}

// newTestServer поднимает настоящий API поверх in-memory SQLite.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: fmt.Sprintf("file:cli_%s?mode=memory&cache=shared", name)}
	db, err := gorm.Open(dial, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := repo.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	sqlDB, _ := db.DB()

	log := zap.NewNop().Sugar()
	bucketRepo := repo.NewBucketRepository(db)
	h := handlers.NewHandler(
		service.NewUserService(repo.NewUserRepository(db)),
		service.NewBucketService(bucketRepo, log),
		service.NewTaskService(repo.NewTaskRepository(db), bucketRepo),
		log,
		&config.Config{AuthSecret: "cli-secret"},
	)
	ts := httptest.NewServer(h.Router)
	t.Cleanup(func() {
		ts.Close()
		_ = sqlDB.Close()
	})
	return ts
}

// перехват stdout на время теста
func withStdoutCapture(t *testing.T, fn func()) string {
	t.Helper()
	old := Out
	var buf bytes.Buffer
	Out = &buf
	defer func() { Out = old }()
	fn()
	return buf.String()
}

// run выполняет команду через диспетчер и возвращает код и вывод.
func run(t *testing.T, cfg *config.Config, args ...string) (int, string) {
	t.Helper()
	var code int
	out := withStdoutCapture(t, func() { code = Dispatch(context.Background(), cfg, args) })
	return code, out
}

// mustRun — run, который требует успешного завершения.
func mustRun(t *testing.T, cfg *config.Config, args ...string) string {
	t.Helper()
	code, out := run(t, cfg, args...)
	if code != 0 {
		t.Fatalf("%v: exit %d, output: %s", args, code, out)
	}
	return out
}
