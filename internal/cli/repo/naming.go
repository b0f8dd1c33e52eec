package repo

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var nameRe = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// ValidateName проверяет, что строка безопасна как имя файла или каталога.
func ValidateName(name string) error {
	if name == "" {
		return errors.New("name is required")
	}
	if name == "." || name == ".." || !nameRe.MatchString(name) {
		return fmt.Errorf("invalid name: %q (allowed: letters, digits, . _ -)", name)
	}
	return nil
}

// UserDirName возвращает имя для локальных файлов пользователя: сам логин,
// если он допустим как имя каталога, иначе "u-" и hex sha256 логина.
func UserDirName(login string) string {
	if ValidateName(login) == nil && !strings.HasPrefix(login, "u-") {
		return login
	}
	sum := sha256.Sum256([]byte(login))
	return "u-" + hex.EncodeToString(sum[:])
}
