package service

import (
	"context"
	"errors"
	"reflect"
	"settings-console/internal/domain"
	"settings-console/internal/querycache"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// IssueForm 簽發表單，三個欄位都必填
type IssueForm struct {
	Domain           string `form:"domain" validate:"required"`
	CloudflareEmail  string `form:"cloudflareEmail" validate:"required,email"`
	CloudflareAPIKey string `form:"cloudflareApiKey" validate:"required"`
}

var issueFieldMessages = map[string]map[string]string{
	"domain": {
		"required": "Domain is required",
	},
	"cloudflareEmail": {
		"required": "Cloudflare email is required",
		"email":    "Cloudflare email must be a valid email address",
	},
	"cloudflareApiKey": {
		"required": "Cloudflare API key is required",
	},
}

// SSLService SSL 設定頁：狀態查詢、簽發、續簽
type SSLService struct {
	API      SettingsAPI
	Cache    *querycache.Cache
	Verifier CredentialVerifier // nil 代表不預檢
	Registry RegistrationLookup // nil 代表不查 WHOIS
	WarnDays int

	registryStaleTime time.Duration
	validate          *validator.Validate
}

type SSLOption func(*SSLService)

func WithVerifier(v CredentialVerifier) SSLOption {
	return func(s *SSLService) { s.Verifier = v }
}

func WithRegistrationLookup(r RegistrationLookup, staleTime time.Duration) SSLOption {
	return func(s *SSLService) {
		s.Registry = r
		s.registryStaleTime = staleTime
	}
}

func NewSSLService(api SettingsAPI, cache *querycache.Cache, warnDays int, opts ...SSLOption) *SSLService {
	v := validator.New()
	// 錯誤訊息使用表單欄位名稱
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	s := &SSLService{
		API:               api,
		Cache:             cache,
		WarnDays:          warnDays,
		registryStaleTime: 12 * time.Hour,
		validate:          v,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Info 讀取憑證狀態 (經快取)
func (s *SSLService) Info(ctx context.Context) (*domain.SSLInfo, error) {
	return querycache.Fetch(ctx, s.Cache, KeySSLInfo, s.API.GetSSLInfo)
}

// Refresh 讓憑證狀態失效，下次讀取會重新抓取
func (s *SSLService) Refresh() {
	s.Cache.Invalidate(KeySSLInfo)
}

// Registration 查詢域名註冊資訊；未啟用時回傳 nil, nil
func (s *SSLService) Registration(ctx context.Context, domainName string) (*domain.RegistrationInfo, error) {
	if s.Registry == nil || strings.TrimSpace(domainName) == "" {
		return nil, nil
	}
	root := RootDomain(domainName)
	key := append(querycache.Key{}, KeyRegistration...)
	key = append(key, root)
	return querycache.FetchWith(ctx, s.Cache, key, querycache.Options{StaleTime: s.registryStaleTime},
		func(ctx context.Context) (*domain.RegistrationInfo, error) {
			return s.Registry.Lookup(ctx, root)
		})
}

// ValidateIssue 去除前後空白後檢查必填欄位
func (s *SSLService) ValidateIssue(form IssueForm) (IssueForm, error) {
	form.Domain = strings.TrimSpace(form.Domain)
	form.CloudflareEmail = strings.TrimSpace(form.CloudflareEmail)
	form.CloudflareAPIKey = strings.TrimSpace(form.CloudflareAPIKey)

	err := s.validate.Struct(form)
	if err == nil {
		return form, nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return form, err
	}

	vErr := &ValidationError{Message: "Please fix the highlighted fields", Fields: map[string]string{}}
	for _, fe := range fieldErrs {
		msg := issueFieldMessages[fe.Field()][fe.Tag()]
		if msg == "" {
			msg = fe.Field() + " is invalid"
		}
		vErr.Fields[fe.Field()] = msg
	}
	return form, vErr
}

// Issue 驗證 -> (預檢) -> POST /ssl/issue；不論成敗都重新抓取狀態
func (s *SSLService) Issue(ctx context.Context, form IssueForm) error {
	form, err := s.ValidateIssue(form)
	if err != nil {
		return err
	}

	if s.Verifier != nil {
		if err := s.Verifier.Verify(ctx, form.CloudflareEmail, form.CloudflareAPIKey, form.Domain); err != nil {
			return err
		}
	}

	defer s.Refresh()
	err = s.API.IssueCertificate(ctx, domain.IssueCertificateRequest{
		Domain:           form.Domain,
		CloudflareEmail:  form.CloudflareEmail,
		CloudflareAPIKey: form.CloudflareAPIKey,
	})
	if err != nil {
		logrus.Errorf("[SSL] 憑證簽發失敗 (%s): %v", form.Domain, err)
		return err
	}
	logrus.Infof("[SSL] 已送出憑證簽發 (%s)", form.Domain)
	return nil
}

// Renew POST /ssl/renew；沒有域名時不送出
func (s *SSLService) Renew(ctx context.Context, domainName string) error {
	domainName = strings.TrimSpace(domainName)
	if domainName == "" {
		return invalidField("domain", "No domain configured, issue a certificate first")
	}

	defer s.Refresh()
	if err := s.API.RenewCertificate(ctx, domain.RenewCertificateRequest{Domain: domainName}); err != nil {
		logrus.Errorf("[SSL] 憑證續簽失敗 (%s): %v", domainName, err)
		return err
	}
	logrus.Infof("[SSL] 已送出憑證續簽 (%s)", domainName)
	return nil
}
