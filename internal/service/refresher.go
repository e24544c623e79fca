package service

import (
	"context"
	"settings-console/internal/domain"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// SSLRefresher 依排程重新抓取憑證狀態並在即將到期時告警
type SSLRefresher struct {
	Cron *cron.Cron
	SSL  *SSLService

	mu       sync.Mutex
	entryID  cron.EntryID
	schedule string
}

// NewSSLRefresher 告警門檻沿用 SSLService.WarnDays，與頁面狀態一致
func NewSSLRefresher(ssl *SSLService) *SSLRefresher {
	return &SSLRefresher{
		Cron: cron.New(),
		SSL:  ssl,
	}
}

// Start 註冊排程並啟動
func (r *SSLRefresher) Start(schedule string) error {
	if err := r.Reload(schedule); err != nil {
		return err
	}
	r.Cron.Start()
	return nil
}

// Stop 停止排程並等待執行中的任務
func (r *SSLRefresher) Stop() {
	<-r.Cron.Stop().Done()
}

// Reload 重新註冊排程 (設定檔變更時呼叫)；空字串代表停用
func (r *SSLRefresher) Reload(schedule string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if schedule == r.schedule && r.entryID != 0 {
		return nil
	}

	// 先確認新排程可用，再移除舊任務
	if schedule != "" {
		if _, err := cron.ParseStandard(schedule); err != nil {
			logrus.Errorf("[Cron] 排程格式錯誤 [ssl-refresh]: %v", err)
			return err
		}
	}

	if r.entryID != 0 {
		r.Cron.Remove(r.entryID)
		r.entryID = 0
	}
	r.schedule = schedule
	if schedule == "" {
		logrus.Info("[Cron] SSL 狀態排程已停用")
		return nil
	}

	id, err := r.Cron.AddFunc(schedule, r.RefreshNow)
	if err != nil {
		logrus.Errorf("[Cron] 排程註冊失敗 [ssl-refresh]: %v", err)
		return err
	}
	r.entryID = id
	logrus.Infof("[Cron] 已排程自動任務 [ssl-refresh]: %s", schedule)
	return nil
}

// RefreshNow 讓快取失效並重新讀取憑證狀態
func (r *SSLRefresher) RefreshNow() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	r.SSL.Refresh()
	info, err := r.SSL.Info(ctx)
	if err != nil {
		logrus.Errorf("[Cron] SSL 狀態更新失敗: %v", err)
		return
	}

	switch info.Status(r.SSL.WarnDays) {
	case domain.SSLStatusExpired:
		logrus.Warnf("[Cron] SSL 憑證已過期 (%s)", info.Domain)
	case domain.SSLStatusExpiring:
		logrus.Warnf("[Cron] SSL 憑證剩餘 %d 天 (%s)", *info.DaysRemaining, info.Domain)
	default:
		logrus.Debugf("[Cron] SSL 狀態已更新 (%s)", info.Domain)
	}
}
