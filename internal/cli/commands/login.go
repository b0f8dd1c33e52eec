package commands

import (
	"TaskBuckets/internal/cli/api"
	"TaskBuckets/internal/cli/bootstrap"
	"TaskBuckets/internal/config"
	"context"
	"errors"
	"fmt"
	"net/http"
)

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Login and store auth cookie" }
func (loginCmd) Usage() string       { return "login <login> <password>" }

func (loginCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	token, err := api.New(cfg.ServerURL, "", nil).Login(ctx, args[0], args[1])
	if err != nil {
		if api.IsStatus(err, http.StatusUnauthorized) {
			return errors.New("invalid login or password")
		}
		return err
	}
	if err := bootstrap.SignIn(cfg, args[0], token); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Logged in successfully")
	return nil
}

type registerCmd struct{}

func (registerCmd) Name() string        { return "register" }
func (registerCmd) Description() string { return "Create an account and login" }
func (registerCmd) Usage() string       { return "register <login> <password>" }

func (registerCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	token, err := api.New(cfg.ServerURL, "", nil).Register(ctx, args[0], args[1])
	if err != nil {
		if api.IsStatus(err, http.StatusConflict) {
			return errors.New("login already in use")
		}
		return err
	}
	if err := bootstrap.SignIn(cfg, args[0], token); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Registered and logged in")
	return nil
}

type logoutCmd struct{}

func (logoutCmd) Name() string        { return "logout" }
func (logoutCmd) Description() string { return "Forget the auth token and clear the local cache" }
func (logoutCmd) Usage() string       { return "logout" }

func (logoutCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	// локальное состояние чистим даже если сервер недоступен
	if err := bootstrap.Anonymous(cfg).Logout(ctx); err != nil {
		bootstrap.NewLogger(cfg).Warnw("server logout failed", "error", err)
	}
	if err := bootstrap.SignOut(cfg); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Logged out")
	return nil
}

func init() {
	RegisterCmd(loginCmd{})
	RegisterCmd(registerCmd{})
	RegisterCmd(logoutCmd{})
}
