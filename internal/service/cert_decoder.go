package service

import (
	"fmt"
	"settings-console/internal/domain"
	"strings"
	"time"

	"github.com/go-acme/lego/v4/certcrypto"
)

// DecodeCertificate 解析使用者貼上的 PEM 憑證
func DecodeCertificate(pemText string, now time.Time) (*domain.CertInfo, error) {
	certPEM := []byte(strings.TrimSpace(pemText))
	if len(certPEM) == 0 {
		return nil, invalidField("cert", "Paste a PEM certificate (-----BEGIN CERTIFICATE-----)")
	}

	cert, err := certcrypto.ParsePEMCertificate(certPEM)
	if err != nil {
		return nil, invalidField("cert", "Could not parse certificate: "+err.Error())
	}

	subject := cert.Subject.CommonName
	if subject == "" && len(cert.Subject.Organization) > 0 {
		subject = cert.Subject.Organization[0]
	}
	issuer := cert.Issuer.CommonName
	if issuer == "" && len(cert.Issuer.Organization) > 0 {
		issuer = cert.Issuer.Organization[0]
	}

	return &domain.CertInfo{
		Subject:       subject,
		Issuer:        issuer,
		NotBefore:     cert.NotBefore,
		NotAfter:      cert.NotAfter,
		DaysRemaining: int(cert.NotAfter.Sub(now).Hours() / 24),
		DNSNames:      certcrypto.ExtractDomains(cert),
		SerialNumber:  formatSerial(fmt.Sprintf("%X", cert.SerialNumber)),
		SignatureAlgo: cert.SignatureAlgorithm.String(),
		IsCA:          cert.IsCA,
	}, nil
}

// formatSerial 將序號格式化為 AA:BB:CC...
func formatSerial(s string) string {
	if len(s)%2 == 1 {
		s = "0" + s
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && i%2 == 0 {
			b.WriteRune(':')
		}
		b.WriteRune(r)
	}
	return b.String()
}
