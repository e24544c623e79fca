package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

const (
	flashCookieName = "console_flash"
	flashCookieTTL  = 30 * time.Second
)

// Flash 一次性提示訊息 (toast)
type Flash struct {
	Type    string // success / error / info
	Message string
}

type flashClaims struct {
	Type    string `json:"t"`
	Message string `json:"m"`
	jwt.RegisteredClaims
}

// Flasher 以簽章 cookie 在 redirect 之間傳遞提示訊息
type Flasher struct {
	secret []byte
	secure bool
	now    func() time.Time
}

func NewFlasher(secret string, secure bool) *Flasher {
	return &Flasher{secret: []byte(secret), secure: secure, now: time.Now}
}

// Set 寫入 flash cookie
func (f *Flasher) Set(c *gin.Context, msgType, message string) {
	now := f.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, flashClaims{
		Type:    msgType,
		Message: message,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(flashCookieTTL)),
		},
	})
	signed, err := token.SignedString(f.secret)
	if err != nil {
		logrus.Errorf("[API] flash 簽章失敗: %v", err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookieName, signed, int(flashCookieTTL.Seconds()), "/", "", f.secure, true)
}

// Pop 讀取並刪除 flash；沒有或驗證失敗時回傳 nil
func (f *Flasher) Pop(c *gin.Context) *Flash {
	raw, err := c.Cookie(flashCookieName)
	if err != nil || raw == "" {
		return nil
	}
	c.SetCookie(flashCookieName, "", -1, "/", "", f.secure, true)

	claims := &flashClaims{}
	_, err = jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return f.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(f.now))
	if err != nil {
		logrus.Debugf("[API] 忽略無效的 flash cookie: %v", err)
		return nil
	}
	return &Flash{Type: claims.Type, Message: claims.Message}
}

func (f *Flasher) Success(c *gin.Context, message string) { f.Set(c, "success", message) }
func (f *Flasher) Error(c *gin.Context, message string)   { f.Set(c, "error", message) }
func (f *Flasher) Info(c *gin.Context, message string)    { f.Set(c, "info", message) }
