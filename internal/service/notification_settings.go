package service

import (
	"context"
	"errors"
	"settings-console/internal/domain"
	"settings-console/internal/querycache"
	"settings-console/internal/repository"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// NotificationSettingsService 通知設定頁：讀取設定、表單狀態、儲存
type NotificationSettingsService struct {
	API    SettingsAPI
	Cache  *querycache.Cache
	Drafts repository.DraftRepository
}

func NewNotificationSettingsService(api SettingsAPI, cache *querycache.Cache, drafts repository.DraftRepository) *NotificationSettingsService {
	return &NotificationSettingsService{API: api, Cache: cache, Drafts: drafts}
}

// NotificationFormView 表單目前狀態 + 上一次失敗的訊息
type NotificationFormView struct {
	Form      domain.NotificationForm
	Error     string
	FromDraft bool
}

// SaveResult 儲存後頁面要套用的狀態
// 失敗時 DraftKept 表示錯誤訊息已隨草稿保存，可在表單上顯示
type SaveResult struct {
	AuditPage int
	DraftKept bool
}

// Config 讀取目前設定 (經快取)
func (s *NotificationSettingsService) Config(ctx context.Context) (*domain.NotificationConfig, error) {
	return querycache.Fetch(ctx, s.Cache, KeyNotificationConfig, s.API.GetNotificationConfig)
}

// NewNotificationForm 由伺服器設定產生可編輯狀態；secret 一律留空
func NewNotificationForm(cfg *domain.NotificationConfig) domain.NotificationForm {
	return domain.NotificationForm{
		WebhookEnabled: cfg.WebhookEnabled,
		WebhookURL:     cfg.WebhookURL,
		WebhookSecret:  "",
		TimeoutMs:      strconv.Itoa(cfg.TimeoutMs),
		RetryAttempts:  strconv.Itoa(cfg.RetryAttempts),
		RetryDelayMs:   strconv.Itoa(cfg.RetryDelayMs),
		DefaultRoute:   cfg.DefaultRoute,
		RoutesJSON:     FormatRouteMatrix(cfg.Routes),
	}
}

// LoadForm 回傳目前設定與表單；有草稿時以草稿為準
func (s *NotificationSettingsService) LoadForm(ctx context.Context, owner string) (*domain.NotificationConfig, NotificationFormView, error) {
	cfg, err := s.Config(ctx)
	if err != nil {
		return nil, NotificationFormView{}, err
	}

	draft, err := s.Drafts.GetDraft(ctx, owner)
	switch {
	case err == nil:
		draft.Form.WebhookSecret = ""
		return cfg, NotificationFormView{Form: draft.Form, Error: draft.Error, FromDraft: true}, nil
	case !errors.Is(err, repository.ErrDraftNotFound):
		logrus.Warnf("[Notifications] 讀取草稿失敗 (owner=%s): %v", owner, err)
	}
	return cfg, NotificationFormView{Form: NewNotificationForm(cfg)}, nil
}

// BuildUpdate 驗證表單並組出 PUT body
func BuildUpdate(form domain.NotificationForm) (domain.NotificationUpdate, error) {
	routes, err := ParseRouteMatrix(form.RoutesJSON)
	if err != nil {
		return domain.NotificationUpdate{}, err
	}

	update := domain.NotificationUpdate{
		WebhookEnabled: form.WebhookEnabled,
		WebhookURL:     strings.TrimSpace(form.WebhookURL),
		TimeoutMs:      ParseIntOr(form.TimeoutMs, domain.DefaultTimeoutMs),
		RetryAttempts:  ParseIntOr(form.RetryAttempts, domain.DefaultRetryAttempts),
		RetryDelayMs:   ParseIntOr(form.RetryDelayMs, domain.DefaultRetryDelayMs),
		DefaultRoute:   form.DefaultRoute,
		Routes:         routes,
	}
	// 留空代表沿用伺服器上的 secret
	if secret := strings.TrimSpace(form.WebhookSecret); secret != "" {
		update.WebhookSecret = &secret
	}
	return update, nil
}

// Save 驗證並送出；失敗時保留草稿，成功時清除草稿並讓設定與稽核快取失效
func (s *NotificationSettingsService) Save(ctx context.Context, owner string, form domain.NotificationForm) (*SaveResult, error) {
	update, err := BuildUpdate(form)
	if err != nil {
		kept := s.keepDraft(ctx, owner, form, Message(err, "Invalid notification settings"))
		return &SaveResult{DraftKept: kept}, err
	}

	if err := s.API.UpdateNotificationConfig(ctx, update); err != nil {
		logrus.Errorf("[Notifications] 儲存設定失敗: %v", err)
		kept := s.keepDraft(ctx, owner, form, Message(err, "Failed to save notification settings"))
		return &SaveResult{DraftKept: kept}, err
	}

	s.Cache.Invalidate(KeyNotificationConfig, KeyNotificationAudit)
	if err := s.Drafts.DeleteDraft(ctx, owner); err != nil {
		logrus.Warnf("[Notifications] 清除草稿失敗 (owner=%s): %v", owner, err)
	}

	logrus.Infof("[Notifications] 設定已更新 | by=%s | webhook=%v | routes=%d | secret=%v",
		owner, update.WebhookEnabled, len(update.Routes), update.WebhookSecret != nil)
	return &SaveResult{AuditPage: 1}, nil
}

// DiscardDraft 放棄草稿，回到伺服器狀態
func (s *NotificationSettingsService) DiscardDraft(ctx context.Context, owner string) error {
	return s.Drafts.DeleteDraft(ctx, owner)
}

// keepDraft 回傳草稿是否成功保存
func (s *NotificationSettingsService) keepDraft(ctx context.Context, owner string, form domain.NotificationForm, msg string) bool {
	form.WebhookSecret = ""
	draft := domain.NotificationDraft{Owner: owner, Form: form, Error: msg, UpdatedAt: time.Now()}
	if err := s.Drafts.SaveDraft(ctx, draft); err != nil {
		logrus.Warnf("[Notifications] 草稿儲存失敗 (owner=%s): %v", owner, err)
		return false
	}
	return true
}
