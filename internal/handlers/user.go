package handlers

import (
	"TaskBuckets/internal/config"
	"TaskBuckets/internal/middleware"
	"TaskBuckets/internal/service"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// UserHandler — регистрация, вход и выход.
type UserHandler struct {
	UserService *service.UserService
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

func NewUserHandler(userService *service.UserService, logger *zap.SugaredLogger, cfg *config.Config) *UserHandler {
	return &UserHandler{UserService: userService, Logger: logger, Config: cfg}
}

type credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type resultResponse struct {
	Result string `json:"result"`
}

// Register создаёт пользователя и сразу выдаёт cookie авторизации.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := decodeJSON(r, &req); err != nil {
		h.Logger.Warnw("register: bad json", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.UserService.Register(r.Context(), req.Login, req.Password)
	switch {
	case errors.Is(err, service.ErrLoginTaken):
		writeError(w, http.StatusConflict, "Login already taken")
		return
	case errors.Is(err, service.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		h.Logger.Errorw("register failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := middleware.SetLoginCookie(w, user.ID, h.Config.AuthSecret); err != nil {
		h.Logger.Errorw("set cookie failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, resultResponse{Result: "registered"})
}

// Login проверяет пароль и выдаёт cookie авторизации.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := decodeJSON(r, &req); err != nil {
		h.Logger.Warnw("login: bad json", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.UserService.Login(r.Context(), req.Login, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		writeError(w, http.StatusUnauthorized, "Invalid login or password")
		return
	}
	if err != nil {
		h.Logger.Errorw("login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := middleware.SetLoginCookie(w, user.ID, h.Config.AuthSecret); err != nil {
		h.Logger.Errorw("set cookie failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, resultResponse{Result: "ok"})
}

// Logout удаляет cookie.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearLoginCookie(w)
	writeJSON(w, http.StatusOK, resultResponse{Result: "logged out"})
}

// Status сообщает, авторизован ли запрос.
func (h *UserHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusOK, resultResponse{Result: "anonymous"})
		return
	}
	writeJSON(w, http.StatusOK, resultResponse{Result: fmt.Sprintf("User ID = %d", userID)})
}
