package handlers_test

import (
	"TaskBuckets/internal/config"
	"TaskBuckets/internal/handlers"
	"TaskBuckets/internal/middleware"
	"TaskBuckets/internal/model"
	"TaskBuckets/internal/repo"
	"TaskBuckets/internal/service"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

const testSecret = "test-secret"

// newTestDB — in-memory SQLite, своя БД на каждый тест.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: fmt.Sprintf("file:%s?mode=memory&cache=shared", name)}
	db, err := gorm.Open(dial, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, repo.Migrate(db))
	sqlDB, _ := db.DB()
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func buildRouter(t *testing.T, ur repo.UserRepository, db *gorm.DB) http.Handler {
	t.Helper()
	cfg := &config.Config{AuthSecret: testSecret}
	log := zap.NewNop().Sugar()

	userSvc := service.NewUserService(ur)
	bucketRepo := repo.NewBucketRepository(db)
	bucketSvc := service.NewBucketService(bucketRepo, log)
	taskSvc := service.NewTaskService(repo.NewTaskRepository(db), bucketRepo)

	h := handlers.NewHandler(userSvc, bucketSvc, taskSvc, log, cfg)
	return h.Router
}

// newTestRouter — роутер с мок-репозиторием пользователей (для user-тестов).
func newTestRouter(t *testing.T, ur repo.UserRepository) http.Handler {
	t.Helper()
	return buildRouter(t, ur, newTestDB(t))
}

// apiFixture — роутер на реальных gorm-репозиториях и двух пользователях.
type apiFixture struct {
	t      *testing.T
	router http.Handler
	db     *gorm.DB
	alice  int64
	bob    int64
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	db := newTestDB(t)
	f := &apiFixture{t: t, db: db, router: buildRouter(t, repo.NewUserRepository(db), db)}
	for _, login := range []string{"alice", "bob"} {
		u := &model.User{Login: login, Password: "x"}
		require.NoError(t, db.Create(u).Error)
		if login == "alice" {
			f.alice = u.ID
		} else {
			f.bob = u.ID
		}
	}
	return f
}

func addAuthCookie(t *testing.T, req *http.Request, userID int64, secret string) {
	t.Helper()
	rr := httptest.NewRecorder()
	_ = middleware.SetLoginCookie(rr, userID, secret)
	for _, c := range rr.Result().Cookies() {
		req.AddCookie(c)
	}
}

// do выполняет запрос от имени userID (0 — анонимно).
func (f *apiFixture) do(userID int64, method, path string, body any) *httptest.ResponseRecorder {
	f.t.Helper()
	var rdr io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			rdr = strings.NewReader(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(f.t, err)
			rdr = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, rdr)
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		addAuthCookie(f.t, req, userID, testSecret)
	}
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), "body: %s", rr.Body.String())
	return v
}

// inboxID возвращает id Inbox пользователя (создаётся листингом).
func (f *apiFixture) inboxID(userID int64) int64 {
	f.t.Helper()
	rr := f.do(userID, http.MethodGet, "/api/buckets", nil)
	require.Equal(f.t, http.StatusOK, rr.Code)
	for _, b := range decode[[]model.Bucket](f.t, rr) {
		if b.IsInbox() {
			return b.ID
		}
	}
	f.t.Fatal("inbox not found")
	return 0
}

func (f *apiFixture) createBucket(userID int64, name, color string) model.Bucket {
	f.t.Helper()
	rr := f.do(userID, http.MethodPost, "/api/buckets", model.BucketInput{Name: name, Color: color})
	require.Equal(f.t, http.StatusCreated, rr.Code, rr.Body.String())
	return decode[model.Bucket](f.t, rr)
}

func (f *apiFixture) createTask(userID int64, in model.TaskInput) model.Task {
	f.t.Helper()
	rr := f.do(userID, http.MethodPost, "/api/tasks", in)
	require.Equal(f.t, http.StatusCreated, rr.Code, rr.Body.String())
	return decode[model.Task](f.t, rr)
}
