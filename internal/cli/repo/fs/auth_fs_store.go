package fs

import (
	"TaskBuckets/internal/cli/repo"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// AuthFSStore — файловое хранилище токена и контекста пользователя для CLI.
// Файлы контекста лежат в том же каталоге, что и файл токена.
type AuthFSStore struct {
	TokenFile string
}

var (
	_ repo.TokenStore       = AuthFSStore{}
	_ repo.UserContextStore = AuthFSStore{}
)

// ErrNoToken — токен не сохранён (пользователь не вошёл).
var ErrNoToken = errors.New("no stored token")

func (s AuthFSStore) dir() (string, error) {
	if s.TokenFile == "" {
		return "", errors.New("token file path is not configured")
	}
	p := filepath.Dir(s.TokenFile)
	if err := os.MkdirAll(p, 0o700); err != nil {
		return "", err
	}
	return p, nil
}

func (s AuthFSStore) lastLoginPath() (string, error) {
	dir, err := s.dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "last_login"), nil
}

func (s AuthFSStore) lastRefreshPath(login string) (string, error) {
	if login == "" {
		return "", errors.New("empty login for last_refresh_at")
	}
	dir, err := s.dir()
	if err != nil {
		return "", err
	}
	// per-user, чтобы поддерживать несколько аккаунтов
	return filepath.Join(dir, "last_refresh_at_"+repo.UserDirName(login)), nil
}

func readTrimmed(p string) (string, error) {
	b, err := os.ReadFile(p)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(b), " \t\r\n"), nil
}

// Save сохраняет auth‑токен в файл.
func (s AuthFSStore) Save(token string) error {
	if _, err := s.dir(); err != nil {
		return err
	}
	return os.WriteFile(s.TokenFile, []byte(token), 0o600)
}

// Load читает auth‑токен из файла.
func (s AuthFSStore) Load() (string, error) {
	if s.TokenFile == "" {
		return "", ErrNoToken
	}
	tok, err := readTrimmed(s.TokenFile)
	if errors.Is(err, os.ErrNotExist) || (err == nil && tok == "") {
		return "", ErrNoToken
	}
	return tok, err
}

// Clear удаляет файл токена; отсутствие файла не ошибка.
func (s AuthFSStore) Clear() error {
	if s.TokenFile == "" {
		return nil
	}
	if err := os.Remove(s.TokenFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// SaveLogin сохраняет логин пользователя в файл.
func (s AuthFSStore) SaveLogin(login string) error {
	if login == "" {
		return errors.New("empty login")
	}
	p, err := s.lastLoginPath()
	if err != nil {
		return err
	}
	return os.WriteFile(p, []byte(login), 0o600)
}

// LoadLogin читает логин пользователя из файла.
func (s AuthFSStore) LoadLogin() (string, error) {
	p, err := s.lastLoginPath()
	if err != nil {
		return "", err
	}
	login, err := readTrimmed(p)
	if err != nil {
		return "", err
	}
	if login == "" {
		return "", errors.New("no stored login")
	}
	return login, nil
}

// SaveLastRefresh сохраняет время последнего обновления кэша (RFC3339) для пользователя.
func (s AuthFSStore) SaveLastRefresh(login string, at time.Time) error {
	p, err := s.lastRefreshPath(login)
	if err != nil {
		return err
	}
	return os.WriteFile(p, []byte(at.UTC().Format(time.RFC3339)), 0o600)
}

// LoadLastRefresh читает время последнего обновления кэша для пользователя.
func (s AuthFSStore) LoadLastRefresh(login string) (time.Time, error) {
	p, err := s.lastRefreshPath(login)
	if err != nil {
		return time.Time{}, err
	}
	raw, err := readTrimmed(p)
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, raw)
}
