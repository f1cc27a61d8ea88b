package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shop_orders/internal/auth"
	"github.com/Skotchmaster/shop_orders/internal/logging"
	"github.com/Skotchmaster/shop_orders/internal/repo"
	"github.com/Skotchmaster/shop_orders/internal/service"
	"github.com/Skotchmaster/shop_orders/internal/transport"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return respondError(c, http.StatusBadRequest, "Username and password are required")
	}

	user, err := h.Svc.Register(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("register_error", "status", 400, "error", err)
			return respondError(c, http.StatusBadRequest, "Username and password are required")
		case errors.Is(err, service.ErrConflict):
			l.Warn("register_error", "status", 409, "username", req.Username)
			return respondError(c, http.StatusConflict, "Username already taken")
		default:
			l.Error("register_error", "status", 500, "error", err)
			return respondInternal(c, "Error creating user", err)
		}
	}

	l.Info("register_success", "user_id", user.ID)
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"user":    user,
	})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return respondError(c, http.StatusBadRequest, "Username and password are required")
	}

	res, err := h.Svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("login_error", "status", 400, "error", err)
			return respondError(c, http.StatusBadRequest, "Username and password are required")
		case errors.Is(err, repo.ErrInvalidCredentials):
			l.Warn("login_error", "status", 401)
			return respondError(c, http.StatusUnauthorized, "Invalid username or password")
		default:
			l.Error("login_error", "status", 500, "error", err)
			return respondInternal(c, "Error logging in", err)
		}
	}

	c.SetCookie(auth.SessionCookie(res.Token, res.Expiry))

	l.Info("login_success", "user_id", res.User.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"user":    res.User,
	})
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	c.SetCookie(auth.ClearSessionCookie())

	logging.FromContext(c.Request().Context()).Info("logout_success")
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Logged out",
	})
}
