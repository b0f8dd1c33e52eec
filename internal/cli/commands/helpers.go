package commands

import (
	"TaskBuckets/internal/cli/api"
	"TaskBuckets/internal/cli/bootstrap"
	"TaskBuckets/internal/config"
	"TaskBuckets/internal/model"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"strconv"
)

// withSession открывает сессию пользователя на время fn и сохраняет кэш после.
func withSession(cfg *config.Config, fn func(s *bootstrap.Session) error) error {
	s, err := bootstrap.OpenSession(cfg, Out)
	if err != nil {
		return err
	}
	runErr := fn(s)
	if err := s.Close(); err != nil && runErr == nil {
		return err
	}
	return runErr
}

// newFlagSet — FlagSet команды без вывода в stderr.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// parseID разбирает положительный идентификатор из аргумента.
func parseID(what, s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: invalid %s id %q", model.ErrValidation, what, s)
	}
	return id, nil
}

// describe превращает ошибку в сообщение для пользователя.
func describe(err error) string {
	var se *api.StatusError
	if errors.As(err, &se) {
		if se.Code == http.StatusUnauthorized {
			return "not authorized: run login or register first"
		}
		if se.Message != "" {
			return se.Message
		}
	}
	return err.Error()
}
