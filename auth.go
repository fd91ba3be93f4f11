package mdblog

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (a *App) handleLoginPage(c echo.Context) error {
	if !a.Config.AuthEnabled() || a.IsAuthor(c) {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return Render(c, a.Views.Login(false, CsrfToken(c)))
}

func (a *App) handleLogin(c echo.Context) error {
	if !a.Config.AuthEnabled() {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAuthorSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/")
	}
	a.loginLimiter.Record(ip)
	c.Logger().Warnf("failed login from %s", ip)
	return RenderStatus(c, http.StatusUnauthorized, a.Views.Login(true, CsrfToken(c)))
}

func (a *App) handleLogout(c echo.Context) error {
	if a.Config.AuthEnabled() {
		if err := clearAuthorSession(c); err != nil {
			return err
		}
	}
	return c.Redirect(http.StatusSeeOther, "/blog/")
}
