// Package bootstrap собирает клиентскую сессию: API, кэш, слой синхронизации
// и сохранённое между запусками состояние текущего пользователя.
package bootstrap

import (
	"TaskBuckets/internal/cli/api"
	"TaskBuckets/internal/cli/cache"
	"TaskBuckets/internal/cli/query"
	"TaskBuckets/internal/cli/repo"
	fsrepo "TaskBuckets/internal/cli/repo/fs"
	reposqlite "TaskBuckets/internal/cli/repo/sqlite"
	"TaskBuckets/internal/config"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
)

// MaxAge — сохранённые записи старше этого возраста считаются устаревшими при открытии сессии.
const MaxAge = time.Minute

// ErrNotLoggedIn — нет сохранённого токена или логина.
var ErrNotLoggedIn = errors.New("not logged in: run login or register first")

// Session — открытая сессия пользователя CLI.
type Session struct {
	Login string
	API   *api.Client
	Cache *cache.Store
	Query *query.Client
	Auth  fsrepo.AuthFSStore

	repo   repo.CacheRepository
	logger *zap.SugaredLogger
	now    func() time.Time
}

// NewLogger — zap-логгер клиента: молчит по умолчанию, development-логгер с --verbose.
func NewLogger(cfg *config.Config) *zap.SugaredLogger {
	if cfg.Verbose {
		if l, err := zap.NewDevelopment(); err == nil {
			return l.Sugar()
		}
	}
	return zap.NewNop().Sugar()
}

// AuthStore возвращает файловое хранилище токена из конфигурации.
func AuthStore(cfg *config.Config) fsrepo.AuthFSStore {
	return fsrepo.AuthFSStore{TokenFile: cfg.TokenFile}
}

// Anonymous возвращает API-клиент с сохранённым токеном, если он есть.
func Anonymous(cfg *config.Config) *api.Client {
	tok, _ := AuthStore(cfg).Load()
	return api.New(cfg.ServerURL, tok, nil)
}

// OpenSession открывает сессию текущего пользователя: загружает сохранённый кэш,
// помечая устаревшими записи старше MaxAge. Уведомления о неудачных мутациях
// пишутся в out.
func OpenSession(cfg *config.Config, out io.Writer) (*Session, error) {
	auth := AuthStore(cfg)
	token, err := auth.Load()
	if err != nil {
		return nil, ErrNotLoggedIn
	}
	login, err := auth.LoadLogin()
	if err != nil {
		return nil, ErrNotLoggedIn
	}

	r, err := openCacheRepo(cfg, login)
	if err != nil {
		return nil, err
	}

	logger := NewLogger(cfg)
	s := &Session{
		Login:  login,
		API:    api.New(cfg.ServerURL, token, nil),
		Cache:  cache.New(),
		Auth:   auth,
		repo:   r,
		logger: logger,
		now:    time.Now,
	}
	s.Query = query.New(s.API, s.Cache, query.LogNotifier{Logger: logger, Out: out})

	records, err := r.Load()
	if err != nil {
		// битый кэш не мешает работе — начинаем с пустого
		logger.Warnw("load cache", "login", login, "error", err)
		records = nil
	}
	s.Cache.Load(expire(records, s.now().Add(-MaxAge)))
	return s, nil
}

func openCacheRepo(cfg *config.Config, login string) (*reposqlite.CacheRepositorySQLite, error) {
	r, _, err := reposqlite.OpenForUser(cfg.ClientDBPath, login)
	if err != nil {
		return nil, fmt.Errorf("open user db: %w", err)
	}
	if err := r.Migrate(); err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("migrate user db: %w", err)
	}
	return r, nil
}

func expire(records []cache.Record, cutoff time.Time) []cache.Record {
	for i := range records {
		if records[i].UpdatedAt.Before(cutoff) {
			records[i].Stale = true
		}
	}
	return records
}

// Refresh помечает весь кэш устаревшим и запоминает время обновления.
func (s *Session) Refresh() error {
	s.Query.Refresh()
	return s.Auth.SaveLastRefresh(s.Login, s.now())
}

// Close дожидается фоновых мутаций, сохраняет кэш и закрывает БД.
func (s *Session) Close() error {
	s.Query.Wait()
	err := s.repo.Save(s.Cache.Entries())
	if err != nil {
		s.logger.Warnw("save cache", "login", s.Login, "error", err)
	}
	return errors.Join(err, s.repo.Close())
}

// SignIn запоминает токен и логин после успешного login/register. Кэш другого
// пользователя не трогается: у каждого логина свой файл.
func SignIn(cfg *config.Config, login, token string) error {
	auth := AuthStore(cfg)
	if err := auth.Save(token); err != nil {
		return fmt.Errorf("saving auth: %w", err)
	}
	return auth.SaveLogin(login)
}

// SignOut удаляет токен и очищает сохранённый кэш текущего пользователя.
func SignOut(cfg *config.Config) error {
	auth := AuthStore(cfg)
	var errs []error
	if login, err := auth.LoadLogin(); err == nil {
		if r, err := openCacheRepo(cfg, login); err == nil {
			errs = append(errs, r.Clear(), r.Close())
		} else {
			errs = append(errs, err)
		}
	}
	errs = append(errs, auth.Clear())
	return errors.Join(errs...)
}
