package domain

import "time"

// CertInfo 解析後的憑證資訊
type CertInfo struct {
	Subject       string    `json:"subject"`
	Issuer        string    `json:"issuer"`
	NotBefore     time.Time `json:"not_before"`
	NotAfter      time.Time `json:"not_after"`
	DaysRemaining int       `json:"days_remaining"`
	DNSNames      []string  `json:"dns_names"` // SANs
	SerialNumber  string    `json:"serial_number"`
	SignatureAlgo string    `json:"signature_algo"`
	IsCA          bool      `json:"is_ca"`
}
