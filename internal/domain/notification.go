package domain

import "time"

// Channel 通知管道
type Channel string

const (
	ChannelAll       Channel = "all"
	ChannelWebhook   Channel = "webhook"
	ChannelTelegram  Channel = "telegram"
	ChannelSystemLog Channel = "systemLog"
)

// Channels 測試發送可選的管道 (顯示順序)
var Channels = []Channel{ChannelAll, ChannelWebhook, ChannelTelegram, ChannelSystemLog}

func (c Channel) Valid() bool {
	for _, ch := range Channels {
		if c == ch {
			return true
		}
	}
	return false
}

// 數值欄位無法解析時的預設值
const (
	DefaultTimeoutMs     = 10000
	DefaultRetryAttempts = 3
	DefaultRetryDelayMs  = 1000
)

// RouteFlags 單一事件在三個管道上的開關
type RouteFlags struct {
	Webhook   bool `json:"webhook"`
	Telegram  bool `json:"telegram"`
	SystemLog bool `json:"systemLog"`
}

// RouteMatrix key 為事件名稱或萬用字元前綴 (例如 "ssl.*")
type RouteMatrix map[string]RouteFlags

// NotificationConfig 伺服器端的通知設定；secret 本身永遠不會回傳
type NotificationConfig struct {
	WebhookEnabled          bool        `json:"webhookEnabled"`
	WebhookURL              string      `json:"webhookUrl"`
	WebhookSecretConfigured bool        `json:"webhookSecretConfigured"`
	TimeoutMs               int         `json:"timeoutMs"`
	RetryAttempts           int         `json:"retryAttempts"`
	RetryDelayMs            int         `json:"retryDelayMs"`
	DefaultRoute            RouteFlags  `json:"defaultRoute"`
	Routes                  RouteMatrix `json:"routes"`
	CreatedAt               time.Time   `json:"createdAt"`
	UpdatedAt               time.Time   `json:"updatedAt"`
}

// NotificationUpdate PUT /settings/notifications 的 body
// WebhookSecret 為 nil 時伺服器保留原本的 secret
type NotificationUpdate struct {
	WebhookEnabled bool        `json:"webhookEnabled"`
	WebhookURL     string      `json:"webhookUrl"`
	WebhookSecret  *string     `json:"webhookSecret,omitempty"`
	TimeoutMs      int         `json:"timeoutMs"`
	RetryAttempts  int         `json:"retryAttempts"`
	RetryDelayMs   int         `json:"retryDelayMs"`
	DefaultRoute   RouteFlags  `json:"defaultRoute"`
	Routes         RouteMatrix `json:"routes"`
}

// TestNotificationRequest POST /settings/notifications/test
type TestNotificationRequest struct {
	Channel Channel        `json:"channel"`
	Event   string         `json:"event"`
	Data    map[string]any `json:"data"`
}

type TestNotificationResult struct {
	EventID string `json:"eventId,omitempty"`
}
