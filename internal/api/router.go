package api

import (
	"net/http"
	"settings-console/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers 路由需要的所有 handler
type Handlers struct {
	Auth          *AuthHandler
	Notifications *NotificationHandler
	SSL           *SSLHandler
	Tools         *ToolHandler
}

// NewRouter 建立 gin engine 並註冊所有頁面
func NewRouter(auth *service.AuthService, h Handlers, secureCookie bool) (*gin.Engine, error) {
	tmpl, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger())
	r.SetHTMLTemplate(tmpl)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/login", h.Auth.ShowLogin)
	r.POST("/login", h.Auth.Login)
	r.POST("/logout", h.Auth.Logout)
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusSeeOther, notificationsPath)
	})

	console := r.Group("/")
	console.Use(AuthMiddleware(auth, secureCookie))
	{
		console.GET(notificationsPath, h.Notifications.Show)
		console.POST(notificationsPath, h.Notifications.Save)
		console.POST(notificationsPath+"/draft/discard", h.Notifications.DiscardDraft)
		console.POST(notificationsPath+"/test", h.Notifications.SendTest)
		console.POST(notificationsPath+"/audit/refresh", h.Notifications.RefreshAudit)

		console.GET(sslPath, h.SSL.Show)
		console.POST(sslPath+"/issue", h.SSL.Issue)
		console.POST(sslPath+"/renew", h.SSL.Renew)

		console.GET("/tools/decode-cert", h.Tools.ShowDecode)
		console.POST("/tools/decode-cert", h.Tools.DecodeCertificate)
	}
	return r, nil
}
