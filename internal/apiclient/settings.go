package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"settings-console/internal/domain"

	"github.com/google/go-querystring/query"
)

const (
	pathNotifications     = "/settings/notifications"
	pathNotificationAudit = "/settings/notifications/audit"
	pathNotificationTest  = "/settings/notifications/test"
	pathSSLInfo           = "/ssl/info"
	pathSSLIssue          = "/ssl/issue"
	pathSSLRenew          = "/ssl/renew"
)

type auditQuery struct {
	Page  int `url:"page"`
	Limit int `url:"limit"`
}

func (c *Client) GetNotificationConfig(ctx context.Context) (*domain.NotificationConfig, error) {
	var cfg domain.NotificationConfig
	if err := c.do(ctx, http.MethodGet, pathNotifications, nil, nil, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Client) UpdateNotificationConfig(ctx context.Context, update domain.NotificationUpdate) error {
	return c.do(ctx, http.MethodPut, pathNotifications, nil, update, nil)
}

// ListNotificationAudit page 從 1 開始
func (c *Client) ListNotificationAudit(ctx context.Context, page, limit int) (*domain.AuditPage, error) {
	values, err := query.Values(auditQuery{Page: page, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("encode audit query: %w", err)
	}
	var out domain.AuditPage
	if err := c.do(ctx, http.MethodGet, pathNotificationAudit, values, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SendTestNotification(ctx context.Context, req domain.TestNotificationRequest) (*domain.TestNotificationResult, error) {
	var out domain.TestNotificationResult
	if err := c.do(ctx, http.MethodPost, pathNotificationTest, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetSSLInfo(ctx context.Context) (*domain.SSLInfo, error) {
	var info domain.SSLInfo
	if err := c.do(ctx, http.MethodGet, pathSSLInfo, nil, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *Client) IssueCertificate(ctx context.Context, req domain.IssueCertificateRequest) error {
	return c.do(ctx, http.MethodPost, pathSSLIssue, nil, req, nil)
}

func (c *Client) RenewCertificate(ctx context.Context, req domain.RenewCertificateRequest) error {
	return c.do(ctx, http.MethodPost, pathSSLRenew, nil, req, nil)
}
