package service

import (
	"context"
	"settings-console/internal/domain"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// TestNotificationForm 測試通知表單 (與設定表單互相獨立)
type TestNotificationForm struct {
	Channel string `form:"channel"`
	Event   string `form:"event"`
	Payload string `form:"payload"`
}

// DefaultTestNotificationForm 頁面初始值
func DefaultTestNotificationForm() TestNotificationForm {
	return TestNotificationForm{
		Channel: string(domain.ChannelAll),
		Event:   "settings.test",
		Payload: "{\n  \"message\": \"Test notification\"\n}",
	}
}

// TestDispatcher 發送測試通知；本身不保存任何狀態，只回報結果
type TestDispatcher struct {
	API     SettingsAPI
	limiter *rate.Limiter
}

// NewTestDispatcher perSecond <= 0 代表不限速
func NewTestDispatcher(api SettingsAPI, perSecond float64) *TestDispatcher {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	return &TestDispatcher{API: api, limiter: rate.NewLimiter(limit, 1)}
}

// Validate 只做本地檢查，通過時回傳要送出的請求
func (d *TestDispatcher) Validate(form TestNotificationForm) (domain.TestNotificationRequest, error) {
	channel := domain.Channel(strings.TrimSpace(form.Channel))
	if !channel.Valid() {
		return domain.TestNotificationRequest{}, invalidField("channel", "Unknown channel "+string(channel))
	}
	event := strings.TrimSpace(form.Event)
	if event == "" {
		return domain.TestNotificationRequest{}, invalidField("event", "Event name is required")
	}
	data, err := ParseJSONObject(form.Payload)
	if err != nil {
		return domain.TestNotificationRequest{}, invalidField("payload", "Payload must be a JSON object")
	}
	return domain.TestNotificationRequest{Channel: channel, Event: event, Data: data}, nil
}

func (d *TestDispatcher) Dispatch(ctx context.Context, form TestNotificationForm) (*domain.TestNotificationResult, error) {
	req, err := d.Validate(form)
	if err != nil {
		return nil, err
	}
	if !d.limiter.Allow() {
		return nil, ErrRateLimited
	}

	res, err := d.API.SendTestNotification(ctx, req)
	if err != nil {
		logrus.Warnf("[Notifications] 測試通知失敗 (channel=%s, event=%s): %v", req.Channel, req.Event, err)
		return nil, err
	}
	if res == nil {
		res = &domain.TestNotificationResult{}
	}
	logrus.Infof("[Notifications] 測試通知已送出 (channel=%s, event=%s, id=%s)", req.Channel, req.Event, res.EventID)
	return res, nil
}
