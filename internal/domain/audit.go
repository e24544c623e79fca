package domain

import "time"

// NotificationAuditRecord 設定變更紀錄 (只讀)
type NotificationAuditRecord struct {
	ID            string    `json:"id"`
	AdminID       string    `json:"adminId,omitempty"`
	AdminEmail    string    `json:"adminEmail,omitempty"`
	IP            string    `json:"ip,omitempty"`
	UserAgent     string    `json:"userAgent,omitempty"`
	Action        string    `json:"action"`
	ChangedFields []string  `json:"changedFields"`
	CreatedAt     time.Time `json:"createdAt"`
}

// AuditPage 分頁結果，TotalPages 由伺服器計算
type AuditPage struct {
	Items      []NotificationAuditRecord `json:"items"`
	Page       int                       `json:"page"`
	Limit      int                       `json:"limit"`
	Total      int                       `json:"total"`
	TotalPages int                       `json:"totalPages"`
}
