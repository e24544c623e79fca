package service

import (
	"context"
	"settings-console/internal/domain"
	"settings-console/internal/querycache"
	"strconv"
)

const DefaultAuditPageSize = 10

// Pager 上一頁/下一頁是否可用 (依伺服器回報的總頁數)
type Pager struct {
	Page       int
	TotalPages int
	HasPrev    bool
	HasNext    bool
}

// NewPager page 會被限制在 1..totalPages 之間 (totalPages 為 0 時視為第 1 頁)
func NewPager(page, totalPages int) Pager {
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return Pager{
		Page:       page,
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}
}

func (p Pager) PrevPage() int { return p.Page - 1 }
func (p Pager) NextPage() int { return p.Page + 1 }

type AuditView struct {
	Records []domain.NotificationAuditRecord
	Total   int
	Pager   Pager
}

// AuditService 通知設定的稽核紀錄 (只讀分頁)
type AuditService struct {
	API      SettingsAPI
	Cache    *querycache.Cache
	PageSize int
}

func NewAuditService(api SettingsAPI, cache *querycache.Cache, pageSize int) *AuditService {
	if pageSize <= 0 {
		pageSize = DefaultAuditPageSize
	}
	return &AuditService{API: api, Cache: cache, PageSize: pageSize}
}

// Page 讀取指定頁；超過伺服器回報的總頁數時改讀最後一頁
func (s *AuditService) Page(ctx context.Context, page int) (*AuditView, error) {
	if page < 1 {
		page = 1
	}
	result, err := s.fetch(ctx, page)
	if err != nil {
		return nil, err
	}
	if result.TotalPages > 0 && page > result.TotalPages {
		page = result.TotalPages
		if result, err = s.fetch(ctx, page); err != nil {
			return nil, err
		}
	}
	return &AuditView{
		Records: result.Items,
		Total:   result.Total,
		Pager:   NewPager(page, result.TotalPages),
	}, nil
}

func (s *AuditService) fetch(ctx context.Context, page int) (*domain.AuditPage, error) {
	key := append(querycache.Key{}, KeyNotificationAudit...)
	key = append(key, strconv.Itoa(page), strconv.Itoa(s.PageSize))
	return querycache.Fetch(ctx, s.Cache, key, func(ctx context.Context) (*domain.AuditPage, error) {
		return s.API.ListNotificationAudit(ctx, page, s.PageSize)
	})
}

// Refresh 讓所有稽核分頁失效
func (s *AuditService) Refresh() {
	s.Cache.Invalidate(KeyNotificationAudit)
}
