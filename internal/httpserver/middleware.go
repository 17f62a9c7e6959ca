package httpserver

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strconv"

	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/session"
	jwthelp "github.com/Skotchmaster/storefront/pkg/jwt"
	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/Skotchmaster/storefront/pkg/tokens"
	"github.com/labstack/echo/v4"
)

const (
	SessionCookie        = "sessionToken"
	OperatorSecretHeader = "X-Operator-Secret"

	sessionKey = "session"
)

type SessionMiddleware struct {
	Auth         *service.AuthService
	Secret       []byte
	CookieSecure bool
}

// LoadSession resolves the session cookie into c.Get("session"). A cookie
// that fails verification or points at a gone session is cleared and the
// request continues anonymously.
func (m *SessionMiddleware) LoadSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ck, err := c.Cookie(SessionCookie)
		if err != nil || ck.Value == "" {
			return next(c)
		}

		ctx := c.Request().Context()
		l := logging.FromContext(ctx).With("middleware", "load_session")

		claims, err := tokens.SessionClaimsFromToken(ck.Value, m.Secret)
		if err != nil {
			l.Debug("session_cookie_rejected", "error", err)
			m.clearCookie(c)
			return next(c)
		}

		sess, err := m.Auth.Session(ctx, claims.ID)
		if err != nil {
			if errors.Is(err, service.ErrNotAuthenticated) {
				m.clearCookie(c)
				return next(c)
			}
			l.Error("load_session_failed", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
		if claims.Subject != strconv.FormatUint(uint64(sess.UserID), 10) {
			l.Warn("session_subject_mismatch", "session_id", sess.ID)
			m.clearCookie(c)
			return next(c)
		}

		c.Set(sessionKey, sess)
		return next(c)
	}
}

func (m *SessionMiddleware) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if CurrentSession(c) == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "login required")
		}
		return next(c)
	}
}

func (m *SessionMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		switch err := m.Auth.RequireAdmin(CurrentSession(c)); {
		case err == nil:
			return next(c)
		case errors.Is(err, service.ErrNotAuthenticated):
			return echo.NewHTTPError(http.StatusUnauthorized, "login required")
		default:
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
	}
}

func (m *SessionMiddleware) clearCookie(c echo.Context) {
	c.SetCookie(jwthelp.DeleteCookie(SessionCookie, "/", m.CookieSecure))
}

// RequireOperator admits requests that carry the operator secret header.
func RequireOperator(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			got := c.Request().Header.Get(OperatorSecretHeader)
			if secret == "" || subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
				return echo.NewHTTPError(http.StatusForbidden, "operator secret required")
			}
			return next(c)
		}
	}
}

// CurrentSession returns the session loaded for this request, or nil.
func CurrentSession(c echo.Context) *session.Session {
	sess, _ := c.Get(sessionKey).(*session.Session)
	return sess
}
