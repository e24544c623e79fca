package domain

import "time"

// 憑證狀態標籤
const (
	SSLStatusDisabled = "disabled"
	SSLStatusValid    = "valid"
	SSLStatusExpiring = "expiring"
	SSLStatusExpired  = "expired"
)

// SSLInfo GET /ssl/info
type SSLInfo struct {
	Enabled       bool       `json:"enabled"`
	Domain        string     `json:"domain"`
	ExpiresAt     *time.Time `json:"expiresAt"`
	DaysRemaining *int       `json:"daysRemaining"`
}

// Status 依剩餘天數給出狀態標籤
func (s SSLInfo) Status(warnDays int) string {
	if !s.Enabled || s.DaysRemaining == nil {
		return SSLStatusDisabled
	}
	switch days := *s.DaysRemaining; {
	case days < 0:
		return SSLStatusExpired
	case days < warnDays:
		return SSLStatusExpiring
	default:
		return SSLStatusValid
	}
}

type IssueCertificateRequest struct {
	Domain           string `json:"domain"`
	CloudflareEmail  string `json:"cloudflareEmail"`
	CloudflareAPIKey string `json:"cloudflareApiKey"`
}

type RenewCertificateRequest struct {
	Domain string `json:"domain"`
}

// RegistrationInfo WHOIS 查到的註冊資訊
type RegistrationInfo struct {
	RootDomain string
	Registrar  string
	ExpiresAt  time.Time
	DaysLeft   int
}
