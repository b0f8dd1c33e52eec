package api

import (
	"context"
	"net/http"
)

type credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type resultResponse struct {
	Result string `json:"result"`
}

// Register регистрирует пользователя и запоминает выданный токен.
func (c *Client) Register(ctx context.Context, login, password string) (string, error) {
	return c.authenticate(ctx, "/api/user/register", login, password)
}

// Login входит и запоминает выданный токен.
func (c *Client) Login(ctx context.Context, login, password string) (string, error) {
	return c.authenticate(ctx, "/api/user/login", login, password)
}

func (c *Client) authenticate(ctx context.Context, path, login, password string) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, path, credentials{Login: login, Password: password}, nil)
	if err != nil {
		return "", err
	}
	token, err := TokenFromResponse(resp)
	if err != nil {
		return "", err
	}
	c.token = token
	return token, nil
}

// Logout просит сервер сбросить cookie и забывает токен локально.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/api/user/logout", nil, nil)
	c.token = ""
	return err
}

// Status возвращает "anonymous" или "User ID = N".
func (c *Client) Status(ctx context.Context) (string, error) {
	var r resultResponse
	if _, err := c.do(ctx, http.MethodGet, "/api/user/status", nil, &r); err != nil {
		return "", err
	}
	return r.Result, nil
}
