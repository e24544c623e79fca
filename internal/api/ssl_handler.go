package api

import (
	"errors"
	"net/http"
	"settings-console/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const sslPath = "/settings/ssl"

type SSLHandler struct {
	SSL   *service.SSLService
	Flash *Flasher
}

func NewSSLHandler(ssl *service.SSLService, flash *Flasher) *SSLHandler {
	return &SSLHandler{SSL: ssl, Flash: flash}
}

func (h *SSLHandler) Show(c *gin.Context) {
	h.render(c, http.StatusOK, service.IssueForm{}, map[string]string{}, "")
}

// Issue 欄位錯誤直接顯示在表單上，其它結果以 flash 呈現
func (h *SSLHandler) Issue(c *gin.Context) {
	var form service.IssueForm
	if err := c.ShouldBind(&form); err != nil {
		h.Flash.Error(c, "Invalid form submission")
		c.Redirect(http.StatusSeeOther, sslPath)
		return
	}

	err := h.SSL.Issue(c.Request.Context(), form)
	var vErr *service.ValidationError
	if errors.As(err, &vErr) && len(vErr.Fields) > 0 {
		form.CloudflareAPIKey = ""
		h.render(c, http.StatusUnprocessableEntity, form, vErr.Fields, vErr.Error())
		return
	}
	if err != nil {
		h.Flash.Error(c, service.Message(err, "Failed to issue certificate"))
	} else {
		h.Flash.Success(c, "Certificate issuance requested for "+form.Domain)
	}
	c.Redirect(http.StatusSeeOther, sslPath)
}

// Renew 使用目前憑證的域名續簽
func (h *SSLHandler) Renew(c *gin.Context) {
	ctx := c.Request.Context()
	domainName := ""
	info, err := h.SSL.Info(ctx)
	if err != nil {
		h.Flash.Error(c, service.Message(err, "Failed to load certificate status"))
		c.Redirect(http.StatusSeeOther, sslPath)
		return
	}
	if info != nil {
		domainName = info.Domain
	}

	if err := h.SSL.Renew(ctx, domainName); err != nil {
		h.Flash.Error(c, service.Message(err, "Failed to renew certificate"))
	} else {
		h.Flash.Success(c, "Certificate renewal requested for "+domainName)
	}
	c.Redirect(http.StatusSeeOther, sslPath)
}

func (h *SSLHandler) render(c *gin.Context, status int, form service.IssueForm, fieldErrors map[string]string, formError string) {
	ctx := c.Request.Context()
	data := gin.H{
		"Info":         nil,
		"Status":       "",
		"LoadError":    "",
		"Registration": nil,
		"IssueForm":    form,
		"FieldErrors":  fieldErrors,
		"FormError":    formError,
	}

	info, err := h.SSL.Info(ctx)
	if err != nil {
		logrus.Errorf("[SSL] 讀取憑證狀態失敗: %v", err)
		data["LoadError"] = service.Message(err, "Failed to load certificate status")
	} else {
		data["Info"] = info
		data["Status"] = info.Status(h.SSL.WarnDays)
		reg, err := h.SSL.Registration(ctx, info.Domain)
		if err != nil {
			logrus.Warnf("[Whois] 查詢註冊資訊失敗 (%s): %v", info.Domain, err)
		} else if reg != nil {
			data["Registration"] = reg
		}
	}

	c.HTML(status, "ssl.html", page(c, h.Flash, "SSL", data))
}
