package api

import (
	"net/http"
	"settings-console/internal/service"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
)

const (
	sessionCookieName = "console_session"
	ownerKey          = "owner"
)

var httpRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "console_http_requests_total",
		Help: "Console HTTP requests by route and status.",
	},
	[]string{"method", "route", "status"},
)

// AuthMiddleware 檢查 session cookie，未登入導回 /login
func AuthMiddleware(auth *service.AuthService, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(sessionCookieName)
		if err == nil && token != "" {
			owner, err := auth.Parse(token)
			if err == nil {
				c.Set(ownerKey, owner)
				c.Next()
				return
			}
			logrus.Debugf("[API] session 無效: %v", err)
			c.SetCookie(sessionCookieName, "", -1, "/", "", secure, true)
		}
		c.Redirect(http.StatusSeeOther, "/login")
		c.Abort()
	}
}

// RequestLogger 以 logrus 記錄請求並計數
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()

		entry := logrus.WithFields(logrus.Fields{
			"status":  status,
			"latency": time.Since(start).String(),
			"ip":      c.ClientIP(),
		})
		msg := "[HTTP] " + c.Request.Method + " " + c.Request.URL.Path
		switch {
		case status >= 500:
			entry.Error(msg)
		case status >= 400:
			entry.Warn(msg)
		default:
			entry.Debug(msg)
		}
	}
}
