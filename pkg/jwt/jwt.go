// Package jwt builds the cookies that carry signed session tokens.
package jwt

import (
	"net/http"
	"time"
)

func baseCookie(name, path string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Path:     path,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// CreateCookie returns an HttpOnly cookie holding value until exp.
func CreateCookie(name, value, path string, exp time.Time, secure bool) *http.Cookie {
	c := baseCookie(name, path, secure)
	c.Value = value
	c.Expires = exp
	return c
}

// DeleteCookie returns a cookie that makes the browser drop name immediately.
func DeleteCookie(name, path string, secure bool) *http.Cookie {
	c := baseCookie(name, path, secure)
	c.Expires = time.Unix(0, 0)
	c.MaxAge = -1
	return c
}
