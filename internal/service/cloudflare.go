package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudflare/cloudflare-go"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/publicsuffix"
)

// CredentialVerifier 送出簽發前的憑證預檢
type CredentialVerifier interface {
	Verify(ctx context.Context, email, apiKey, domainName string) error
}

// CloudflareVerifier 用 Global API Key 檢查帳號與 Zone 是否存在
type CloudflareVerifier struct{}

func NewCloudflareVerifier() *CloudflareVerifier {
	return &CloudflareVerifier{}
}

func (v *CloudflareVerifier) Verify(ctx context.Context, email, apiKey, domainName string) error {
	api, err := v.getAPIClient(apiKey, email)
	if err != nil {
		return invalidField("cloudflareApiKey", "Cloudflare client could not be created: "+err.Error())
	}

	if _, err := api.UserDetails(ctx); err != nil {
		logrus.Warnf("[Cloudflare] 帳號驗證失敗 (%s): %v", email, err)
		return invalidField("cloudflareApiKey", "Cloudflare rejected this email / API key")
	}

	zone := RootDomain(domainName)
	if _, err := api.ZoneIDByName(zone); err != nil {
		logrus.Warnf("[Cloudflare] 找不到 Zone %s: %v", zone, err)
		return invalidField("domain", fmt.Sprintf("Zone %s was not found on this Cloudflare account", zone))
	}

	logrus.Infof("[Cloudflare] 預檢通過 (zone=%s)", zone)
	return nil
}

func (v *CloudflareVerifier) getAPIClient(apiKey, email string) (*cloudflare.API, error) {
	api, err := cloudflare.New(apiKey, email)
	if err != nil {
		logrus.Errorf("[Cloudflare] API Client 初始化失敗: %v", err)
		return nil, err
	}
	return api, nil
}

// RootDomain 取可註冊的主域名；萬用字元前綴會先去除
func RootDomain(domainName string) string {
	name := strings.TrimPrefix(strings.TrimSpace(strings.ToLower(domainName)), "*.")
	name = strings.TrimSuffix(name, ".")
	root, err := publicsuffix.EffectiveTLDPlusOne(name)
	if err != nil {
		return name
	}
	return root
}
