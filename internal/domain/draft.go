package domain

import "time"

// NotificationForm 通知設定頁的可編輯狀態
// 數值欄位保留原始輸入字串，送出時才解析
type NotificationForm struct {
	WebhookEnabled bool       `bson:"webhook_enabled" form:"webhookEnabled"`
	WebhookURL     string     `bson:"webhook_url" form:"webhookUrl"`
	WebhookSecret  string     `bson:"-" form:"webhookSecret"` // 不落地
	TimeoutMs      string     `bson:"timeout_ms" form:"timeoutMs"`
	RetryAttempts  string     `bson:"retry_attempts" form:"retryAttempts"`
	RetryDelayMs   string     `bson:"retry_delay_ms" form:"retryDelayMs"`
	DefaultRoute   RouteFlags `bson:"default_route" form:"-"`
	RoutesJSON     string     `bson:"routes_json" form:"routes"`
}

// NotificationDraft 儲存失敗時保留的表單
type NotificationDraft struct {
	Owner     string           `bson:"owner"`
	Form      NotificationForm `bson:"form"`
	Error     string           `bson:"error"`
	UpdatedAt time.Time        `bson:"updated_at"`
}
