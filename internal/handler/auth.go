package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/quejasboyaca/complaint-service/internal/auth"
	"github.com/quejasboyaca/complaint-service/internal/result"
)

const (
	msgCredentialsRequired = "Usuario y contraseña son requeridos"
	msgUsernameRequired    = "El username es requerido"
	msgInternal            = "Error interno del servidor"
)

const requestTimeout = 5 * time.Second

// AuthHandler exposes the session endpoints of whichever auth strategy is
// configured.
type AuthHandler struct {
	Auth auth.Service
}

func NewAuthHandler(svc auth.Service) *AuthHandler {
	return &AuthHandler{Auth: svc}
}

// writeResult emits r as {success, data, message}.
func writeResult(c echo.Context, r result.Result) error {
	if !r.Success {
		return c.JSON(r.StatusCode, messageResp{Success: false, Message: r.Message})
	}
	return c.JSON(r.StatusCode, dataResp{Success: true, Data: r.Data, Message: r.Message})
}

// Login: POST /auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResp{Message: msgCredentialsRequired})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, messageResp{Message: msgCredentialsRequired})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()
	return writeResult(c, h.Auth.Login(ctx, req.Username, req.Password))
}

// ValidateSession: GET /auth/validate?username=
func (h *AuthHandler) ValidateSession(c echo.Context) error {
	username := strings.TrimSpace(c.QueryParam("username"))
	if username == "" {
		return c.JSON(http.StatusBadRequest, messageResp{Message: msgUsernameRequired})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()
	return writeResult(c, h.Auth.ValidateSession(ctx, username))
}

// Logout: POST /auth/logout
func (h *AuthHandler) Logout(c echo.Context) error {
	var req logoutReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResp{Message: msgUsernameRequired})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		return c.JSON(http.StatusBadRequest, messageResp{Message: msgUsernameRequired})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()
	r := h.Auth.Logout(ctx, req.Username)
	return c.JSON(r.StatusCode, messageResp{Success: r.Success, Message: r.Message})
}
