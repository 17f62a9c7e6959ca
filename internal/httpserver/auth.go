package httpserver

import (
	"net/http"
	"strconv"

	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	jwthelp "github.com/Skotchmaster/storefront/pkg/jwt"
	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/Skotchmaster/storefront/pkg/tokens"
	"github.com/labstack/echo/v4"
)

type AuthHTTP struct {
	Svc          *service.AuthService
	Secret       []byte
	CookieSecure bool
}

func (h *AuthHTTP) Signup(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.signup")

	var req transport.SignupRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "signup_error", "invalid body", err)
	}

	user, err := h.Svc.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		return fail(l, "signup_error", err)
	}

	l.Info("signup_success", "user_id", user.ID)
	return c.JSON(http.StatusCreated, echo.Map{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "login_error", "invalid body", err)
	}

	previousID := ""
	if sess := CurrentSession(c); sess != nil {
		previousID = sess.ID
	}

	sess, err := h.Svc.Authenticate(ctx, req.Email, req.Password, previousID)
	if err != nil {
		return fail(l, "login_error", err)
	}

	token, err := tokens.SignSession(sess.ID, strconv.FormatUint(uint64(sess.UserID), 10), sess.Username, sess.ExpiresAt, h.Secret)
	if err != nil {
		_ = h.Svc.Logout(ctx, sess.ID)
		return fail(l, "login_error", err)
	}
	c.SetCookie(jwthelp.CreateCookie(SessionCookie, token, "/", sess.ExpiresAt, h.CookieSecure))

	l.Info("login_success", "user_id", sess.UserID)
	return c.JSON(http.StatusOK, echo.Map{
		"username": sess.Username,
		"is_admin": sess.IsAdmin,
	})
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	c.SetCookie(jwthelp.DeleteCookie(SessionCookie, "/", h.CookieSecure))
	if sess := CurrentSession(c); sess != nil {
		if err := h.Svc.Logout(ctx, sess.ID); err != nil {
			return fail(l, "logout_error", err)
		}
	}

	l.Info("logout_success")
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

func (h *AuthHTTP) Dashboard(c echo.Context) error {
	sess := CurrentSession(c)
	return c.JSON(http.StatusOK, echo.Map{
		"user_id":  sess.UserID,
		"username": sess.Username,
		"is_admin": sess.IsAdmin,
	})
}

func (h *AuthHTTP) Promote(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "operator.promote")

	email := c.Param("email")
	if err := h.Svc.Promote(ctx, email); err != nil {
		return fail(l, "promote_error", err)
	}

	l.Info("promote_success", "email", email)
	return c.JSON(http.StatusOK, echo.Map{"email": email, "is_admin": true})
}
