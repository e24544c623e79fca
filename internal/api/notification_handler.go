package api

import (
	"fmt"
	"net/http"
	"settings-console/internal/domain"
	"settings-console/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc"
)

const notificationsPath = "/settings/notifications"

type NotificationHandler struct {
	Settings   *service.NotificationSettingsService
	Audit      *service.AuditService
	Dispatcher *service.TestDispatcher
	Flash      *Flasher
}

func NewNotificationHandler(settings *service.NotificationSettingsService, audit *service.AuditService, dispatcher *service.TestDispatcher, flash *Flasher) *NotificationHandler {
	return &NotificationHandler{Settings: settings, Audit: audit, Dispatcher: dispatcher, Flash: flash}
}

// Show 設定表單 + 測試發送 + 稽核紀錄，設定與稽核同時讀取
func (h *NotificationHandler) Show(c *gin.Context) {
	ctx := c.Request.Context()
	owner := c.GetString(ownerKey)
	auditPage := pageParam(c)

	var (
		cfg      *domain.NotificationConfig
		form     service.NotificationFormView
		formErr  error
		audit    *service.AuditView
		auditErr error
	)
	var wg conc.WaitGroup
	wg.Go(func() { cfg, form, formErr = h.Settings.LoadForm(ctx, owner) })
	wg.Go(func() { audit, auditErr = h.Audit.Page(ctx, auditPage) })
	wg.Wait()

	data := gin.H{
		"Config":     cfg,
		"Form":       form.Form,
		"FormError":  form.Error,
		"FromDraft":  form.FromDraft,
		"Audit":      audit,
		"AuditPage":  auditPage,
		"TestForm":   service.DefaultTestNotificationForm(),
		"Channels":   domain.Channels,
		"LoadError":  "",
		"AuditError": "",
	}
	if audit != nil {
		data["AuditPage"] = audit.Pager.Page
	}
	if formErr != nil {
		logrus.Errorf("[Notifications] 讀取設定失敗: %v", formErr)
		data["LoadError"] = service.Message(formErr, "Failed to load notification settings")
	}
	if auditErr != nil {
		logrus.Errorf("[Notifications] 讀取稽核紀錄失敗 (page=%d): %v", auditPage, auditErr)
		data["AuditError"] = service.Message(auditErr, "Failed to load audit history")
	}

	c.HTML(http.StatusOK, "notifications.html", page(c, h.Flash, "Notifications", data))
}

// Save 儲存設定；失敗時錯誤會以草稿形式顯示在表單上
func (h *NotificationHandler) Save(c *gin.Context) {
	owner := c.GetString(ownerKey)

	var form domain.NotificationForm
	if err := c.ShouldBind(&form); err != nil {
		h.Flash.Error(c, "Invalid form submission")
		redirectToPage(c, pageParam(c))
		return
	}
	form.DefaultRoute = domain.RouteFlags{
		Webhook:   checkbox(c, "defaultRoute.webhook"),
		Telegram:  checkbox(c, "defaultRoute.telegram"),
		SystemLog: checkbox(c, "defaultRoute.systemLog"),
	}

	res, err := h.Settings.Save(c.Request.Context(), owner, form)
	if err != nil {
		// 草稿沒存成功時表單上不會有錯誤訊息，改用 flash
		if res == nil || !res.DraftKept {
			h.Flash.Error(c, service.Message(err, "Failed to save notification settings"))
		}
		redirectToPage(c, pageParam(c))
		return
	}
	h.Flash.Success(c, "Notification settings saved")
	redirectToPage(c, res.AuditPage)
}

// DiscardDraft 回到伺服器上的設定
func (h *NotificationHandler) DiscardDraft(c *gin.Context) {
	if err := h.Settings.DiscardDraft(c.Request.Context(), c.GetString(ownerKey)); err != nil {
		logrus.Warnf("[Notifications] 放棄草稿失敗: %v", err)
		h.Flash.Error(c, "Could not discard the draft")
	} else {
		h.Flash.Info(c, "Draft discarded")
	}
	redirectToPage(c, pageParam(c))
}

// SendTest 發送測試通知，結果只以 flash 呈現
func (h *NotificationHandler) SendTest(c *gin.Context) {
	var form service.TestNotificationForm
	if err := c.ShouldBind(&form); err != nil {
		h.Flash.Error(c, "Invalid form submission")
		redirectToPage(c, pageParam(c))
		return
	}

	res, err := h.Dispatcher.Dispatch(c.Request.Context(), form)
	switch {
	case err != nil:
		h.Flash.Error(c, service.Message(err, "Failed to send test notification"))
	case res.EventID != "":
		h.Flash.Success(c, fmt.Sprintf("Test notification sent (event %s)", res.EventID))
	default:
		h.Flash.Success(c, "Test notification sent")
	}
	redirectToPage(c, pageParam(c))
}

// RefreshAudit 讓稽核紀錄重新讀取
func (h *NotificationHandler) RefreshAudit(c *gin.Context) {
	h.Audit.Refresh()
	redirectToPage(c, pageParam(c))
}

func pageParam(c *gin.Context) int {
	n, err := strconv.Atoi(c.Query("page"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func redirectToPage(c *gin.Context, page int) {
	c.Redirect(http.StatusSeeOther, notificationsPath+"?page="+strconv.Itoa(page))
}

func checkbox(c *gin.Context, name string) bool {
	v, _ := strconv.ParseBool(c.PostForm(name))
	return v
}
