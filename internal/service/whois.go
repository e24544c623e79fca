package service

import (
	"context"
	"errors"
	"fmt"
	"settings-console/internal/domain"
	"strings"
	"time"

	"github.com/likexian/whois"
	whoisparser "github.com/likexian/whois-parser"
	"github.com/sirupsen/logrus"
)

// RegistrationLookup 查詢域名註冊到期資訊
type RegistrationLookup interface {
	Lookup(ctx context.Context, domainName string) (*domain.RegistrationInfo, error)
}

type WhoisLookup struct {
	client *whois.Client
	now    func() time.Time
}

func NewWhoisLookup(timeout time.Duration) *WhoisLookup {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WhoisLookup{
		client: whois.NewClient().SetTimeout(timeout),
		now:    time.Now,
	}
}

func (w *WhoisLookup) Lookup(ctx context.Context, domainName string) (*domain.RegistrationInfo, error) {
	root := RootDomain(domainName)
	if root == "" {
		return nil, errors.New("empty domain")
	}

	type result struct {
		raw string
		err error
	}
	done := make(chan result, 1)
	go func() {
		raw, err := w.client.Whois(root)
		done <- result{raw, err}
	}()

	var raw string
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		if r.err != nil {
			return nil, fmt.Errorf("whois %s: %w", root, r.err)
		}
		raw = r.raw
	}

	info, err := whoisparser.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse whois %s: %w", root, err)
	}
	if info.Domain == nil || info.Domain.ExpirationDate == "" {
		return nil, fmt.Errorf("no expiration date found for %s", root)
	}

	expiresAt, err := parseWhoisTime(info.Domain.ExpirationDate)
	if err != nil {
		return nil, err
	}

	reg := &domain.RegistrationInfo{
		RootDomain: root,
		ExpiresAt:  expiresAt,
		DaysLeft:   int(expiresAt.Sub(w.now()).Hours() / 24),
	}
	if info.Registrar != nil {
		reg.Registrar = info.Registrar.Name
	}
	logrus.Debugf("[Whois] %s 到期 %s (剩 %d 天)", root, expiresAt.Format("2006-01-02"), reg.DaysLeft)
	return reg, nil
}

// parseWhoisTime 嘗試多種格式解析時間 (例如 TWNIC "2026-06-17 13:11:45 (UTC+8)")
func parseWhoisTime(dateStr string) (time.Time, error) {
	if idx := strings.Index(dateStr, " ("); idx != -1 {
		dateStr = dateStr[:idx]
	}
	dateStr = strings.TrimSpace(dateStr)

	formats := []string{
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05Z",
		"2006-01-02T15:04:05.00Z",
		time.RFC3339,
		"2006-01-02",
		"02-Jan-2006",
		"2006.01.02",
	}
	for _, f := range formats {
		if t, e := time.Parse(f, dateStr); e == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unknown date format: %s", dateStr)
}
