package service

import (
	"settings-console/internal/domain"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestSSLRefresher_Reload(t *testing.T) {
	svc, _ := newSSLService(t)
	r := NewSSLRefresher(svc)

	require.NoError(t, r.Reload("@every 1h"))
	first := r.entryID
	assert.NotZero(t, first)
	assert.Len(t, r.Cron.Entries(), 1)

	// 相同排程不重新註冊
	require.NoError(t, r.Reload("@every 1h"))
	assert.Equal(t, first, r.entryID)

	// 格式錯誤時保留舊排程
	require.Error(t, r.Reload("every hour please"))
	assert.Equal(t, first, r.entryID)
	assert.Len(t, r.Cron.Entries(), 1)

	require.NoError(t, r.Reload("*/5 * * * *"))
	assert.NotEqual(t, first, r.entryID)
	assert.Len(t, r.Cron.Entries(), 1)

	require.NoError(t, r.Reload(""))
	assert.Zero(t, r.entryID)
	assert.Empty(t, r.Cron.Entries())
}

func TestSSLRefresher_RefreshNowRefetches(t *testing.T) {
	svc, api := newSSLService(t)
	r := NewSSLRefresher(svc)

	days := 3
	api.EXPECT().GetSSLInfo(gomock.Any()).
		Return(&domain.SSLInfo{Enabled: true, Domain: "example.com", DaysRemaining: &days}, nil).
		Times(2)

	r.RefreshNow()
	r.RefreshNow()
}

func TestSSLRefresher_WarnsWithPageThreshold(t *testing.T) {
	svc, api := newSSLService(t)
	r := NewSSLRefresher(svc)
	hook := logtest.NewGlobal()
	t.Cleanup(hook.Reset)

	days := 10
	api.EXPECT().GetSSLInfo(gomock.Any()).
		Return(&domain.SSLInfo{Enabled: true, Domain: "example.com", DaysRemaining: &days}, nil).
		Times(2)

	// 14 天門檻：10 天屬於 expiring
	r.RefreshNow()
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, domain.SSLStatusExpiring, (&domain.SSLInfo{Enabled: true, DaysRemaining: &days}).Status(svc.WarnDays))

	hook.Reset()
	svc.WarnDays = 5
	r.RefreshNow()
	for _, e := range hook.AllEntries() {
		assert.NotEqual(t, logrus.WarnLevel, e.Level)
	}
}
