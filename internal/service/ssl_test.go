package service

import (
	"context"
	"errors"
	"settings-console/internal/domain"
	"settings-console/internal/querycache"
	"settings-console/internal/service/mocks"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeVerifier struct {
	err   error
	calls int
}

func (f *fakeVerifier) Verify(ctx context.Context, email, apiKey, domainName string) error {
	f.calls++
	return f.err
}

type fakeRegistry struct {
	calls int
}

func (f *fakeRegistry) Lookup(ctx context.Context, domainName string) (*domain.RegistrationInfo, error) {
	f.calls++
	return &domain.RegistrationInfo{RootDomain: domainName, Registrar: "Example Registrar", DaysLeft: 200}, nil
}

func newSSLService(t *testing.T, opts ...SSLOption) (*SSLService, *mocks.MockSettingsAPI) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockSettingsAPI(ctrl)
	return NewSSLService(api, querycache.New(time.Minute), 14, opts...), api
}

func validIssueForm() IssueForm {
	return IssueForm{
		Domain:           " example.com ",
		CloudflareEmail:  "ops@example.com",
		CloudflareAPIKey: "cf-key",
	}
}

func TestValidateIssue_MissingFields(t *testing.T) {
	svc, _ := newSSLService(t)

	_, err := svc.ValidateIssue(IssueForm{Domain: "  ", CloudflareEmail: "", CloudflareAPIKey: " "})
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "Domain is required", vErr.Field("domain"))
	assert.Equal(t, "Cloudflare email is required", vErr.Field("cloudflareEmail"))
	assert.Equal(t, "Cloudflare API key is required", vErr.Field("cloudflareApiKey"))

	form := validIssueForm()
	form.CloudflareEmail = "not-an-email"
	_, err = svc.ValidateIssue(form)
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "Cloudflare email must be a valid email address", vErr.Field("cloudflareEmail"))
	assert.Empty(t, vErr.Field("domain"))
}

func TestIssue_InvalidFormSkipsAPI(t *testing.T) {
	verifier := &fakeVerifier{}
	svc, _ := newSSLService(t, WithVerifier(verifier))

	err := svc.Issue(context.Background(), IssueForm{Domain: "example.com"})
	require.Error(t, err)
	assert.Equal(t, 0, verifier.calls)
}

func TestIssue_SuccessRefetchesInfo(t *testing.T) {
	verifier := &fakeVerifier{}
	svc, api := newSSLService(t, WithVerifier(verifier))
	ctx := context.Background()

	api.EXPECT().GetSSLInfo(gomock.Any()).Return(&domain.SSLInfo{}, nil).Times(2)
	api.EXPECT().IssueCertificate(gomock.Any(), domain.IssueCertificateRequest{
		Domain:           "example.com",
		CloudflareEmail:  "ops@example.com",
		CloudflareAPIKey: "cf-key",
	}).Return(nil)

	_, err := svc.Info(ctx)
	require.NoError(t, err)
	require.NoError(t, svc.Issue(ctx, validIssueForm()))
	assert.Equal(t, 1, verifier.calls)

	_, err = svc.Info(ctx)
	require.NoError(t, err)
}

func TestIssue_FailureStillRefetchesInfo(t *testing.T) {
	svc, api := newSSLService(t)
	ctx := context.Background()

	api.EXPECT().GetSSLInfo(gomock.Any()).Return(&domain.SSLInfo{}, nil).Times(2)
	api.EXPECT().IssueCertificate(gomock.Any(), gomock.Any()).Return(errors.New("acme down"))

	_, err := svc.Info(ctx)
	require.NoError(t, err)
	require.Error(t, svc.Issue(ctx, validIssueForm()))

	_, err = svc.Info(ctx)
	require.NoError(t, err)
}

func TestIssue_VerifierRejects(t *testing.T) {
	verifier := &fakeVerifier{err: invalidField("cloudflareApiKey", "Cloudflare rejected this email / API key")}
	svc, _ := newSSLService(t, WithVerifier(verifier))

	err := svc.Issue(context.Background(), validIssueForm())
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.NotEmpty(t, vErr.Field("cloudflareApiKey"))
}

func TestRenew(t *testing.T) {
	svc, api := newSSLService(t)
	ctx := context.Background()

	err := svc.Renew(ctx, "  ")
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.NotEmpty(t, vErr.Field("domain"))

	api.EXPECT().RenewCertificate(gomock.Any(), domain.RenewCertificateRequest{Domain: "example.com"}).Return(nil)
	require.NoError(t, svc.Renew(ctx, "example.com"))
}

func TestRegistration(t *testing.T) {
	svc, _ := newSSLService(t)
	info, err := svc.Registration(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Nil(t, info)

	registry := &fakeRegistry{}
	svc, _ = newSSLService(t, WithRegistrationLookup(registry, time.Hour))
	for i := 0; i < 2; i++ {
		info, err = svc.Registration(context.Background(), "*.api.example.com")
		require.NoError(t, err)
		assert.Equal(t, "example.com", info.RootDomain)
	}
	assert.Equal(t, 1, registry.calls)
}

func TestSSLInfoStatus(t *testing.T) {
	days := func(n int) *int { return &n }
	assert.Equal(t, domain.SSLStatusDisabled, domain.SSLInfo{}.Status(14))
	assert.Equal(t, domain.SSLStatusDisabled, domain.SSLInfo{Enabled: true}.Status(14))
	assert.Equal(t, domain.SSLStatusExpired, domain.SSLInfo{Enabled: true, DaysRemaining: days(-1)}.Status(14))
	assert.Equal(t, domain.SSLStatusExpiring, domain.SSLInfo{Enabled: true, DaysRemaining: days(5)}.Status(14))
	assert.Equal(t, domain.SSLStatusValid, domain.SSLInfo{Enabled: true, DaysRemaining: days(60)}.Status(14))
}

func TestRootDomain(t *testing.T) {
	assert.Equal(t, "example.com", RootDomain("example.com"))
	assert.Equal(t, "example.com", RootDomain("*.example.com"))
	assert.Equal(t, "example.co.uk", RootDomain("shop.Example.co.uk."))
	assert.Equal(t, "localhost", RootDomain("localhost"))
}
