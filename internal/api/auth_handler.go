package api

import (
	"errors"
	"net/http"
	"settings-console/internal/service"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	Auth   *service.AuthService
	Flash  *Flasher
	Secure bool
}

func NewAuthHandler(auth *service.AuthService, flash *Flasher, secure bool) *AuthHandler {
	return &AuthHandler{Auth: auth, Flash: flash, Secure: secure}
}

// ShowLogin 已登入時直接進入設定頁
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	if token, err := c.Cookie(sessionCookieName); err == nil && token != "" {
		if _, err := h.Auth.Parse(token); err == nil {
			c.Redirect(http.StatusSeeOther, "/settings/notifications")
			return
		}
	}
	c.HTML(http.StatusOK, "login.html", page(c, h.Flash, "Sign in", gin.H{"Username": "", "Error": ""}))
}

// Login 驗證帳密並寫入 session cookie
func (h *AuthHandler) Login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	token, err := h.Auth.Login(username, password)
	if err != nil {
		logrus.Warnf("[API] 登入失敗 (user=%s, ip=%s)", username, c.ClientIP())
		msg := "Sign in failed"
		if errors.Is(err, service.ErrInvalidCredentials) {
			msg = "Invalid username or password"
		}
		c.HTML(http.StatusUnauthorized, "login.html", page(c, h.Flash, "Sign in", gin.H{
			"Username": username,
			"Error":    msg,
		}))
		return
	}

	logrus.Infof("[API] 管理員登入 (user=%s)", username)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, token, int(h.Auth.TTL.Seconds()), "/", "", h.Secure, true)
	c.Redirect(http.StatusSeeOther, "/settings/notifications")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(sessionCookieName, "", -1, "/", "", h.Secure, true)
	h.Flash.Info(c, "Signed out")
	c.Redirect(http.StatusSeeOther, "/login")
}
