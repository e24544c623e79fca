package service

import (
	"context"
	"settings-console/internal/domain"
	"settings-console/internal/querycache"
)

//go:generate mockgen -destination=mocks/settings_api_mock.go -package=mocks settings-console/internal/service SettingsAPI

// SettingsAPI 上游設定 API (由 apiclient.Client 實作)
type SettingsAPI interface {
	GetNotificationConfig(ctx context.Context) (*domain.NotificationConfig, error)
	UpdateNotificationConfig(ctx context.Context, update domain.NotificationUpdate) error
	ListNotificationAudit(ctx context.Context, page, limit int) (*domain.AuditPage, error)
	SendTestNotification(ctx context.Context, req domain.TestNotificationRequest) (*domain.TestNotificationResult, error)
	GetSSLInfo(ctx context.Context) (*domain.SSLInfo, error)
	IssueCertificate(ctx context.Context, req domain.IssueCertificateRequest) error
	RenewCertificate(ctx context.Context, req domain.RenewCertificateRequest) error
}

// 查詢快取 key
var (
	KeyNotificationConfig = querycache.NewKey("notification-config")
	KeyNotificationAudit  = querycache.NewKey("notification-audit")
	KeySSLInfo            = querycache.NewKey("ssl-info")
	KeyRegistration       = querycache.NewKey("registration")
)
