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

func TestNewPager(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		totalPages int
		want       Pager
	}{
		{name: "first of many", page: 1, totalPages: 3, want: Pager{Page: 1, TotalPages: 3, HasNext: true}},
		{name: "middle", page: 2, totalPages: 3, want: Pager{Page: 2, TotalPages: 3, HasPrev: true, HasNext: true}},
		{name: "last", page: 3, totalPages: 3, want: Pager{Page: 3, TotalPages: 3, HasPrev: true}},
		{name: "single page", page: 1, totalPages: 1, want: Pager{Page: 1, TotalPages: 1}},
		{name: "no records", page: 1, totalPages: 0, want: Pager{Page: 1}},
		{name: "page below one", page: 0, totalPages: 2, want: Pager{Page: 1, TotalPages: 2, HasNext: true}},
		{name: "page past the end", page: 9, totalPages: 2, want: Pager{Page: 2, TotalPages: 2, HasPrev: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewPager(tt.page, tt.totalPages))
		})
	}

	p := NewPager(2, 3)
	assert.Equal(t, 1, p.PrevPage())
	assert.Equal(t, 3, p.NextPage())
}

func TestAuditService_PageAndRefresh(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockSettingsAPI(ctrl)
	svc := NewAuditService(api, querycache.New(time.Minute), 0)
	ctx := context.Background()

	page2 := &domain.AuditPage{
		Items: []domain.NotificationAuditRecord{{ID: "a-1", Action: "update"}},
		Page:  2, Limit: 10, Total: 11, TotalPages: 2,
	}
	api.EXPECT().ListNotificationAudit(gomock.Any(), 2, DefaultAuditPageSize).Return(page2, nil).Times(2)

	view, err := svc.Page(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, view.Records, 1)
	assert.Equal(t, 11, view.Total)
	assert.True(t, view.Pager.HasPrev)
	assert.False(t, view.Pager.HasNext)

	// 快取命中
	_, err = svc.Page(ctx, 2)
	require.NoError(t, err)

	svc.Refresh()
	_, err = svc.Page(ctx, 2)
	require.NoError(t, err)
}

func TestAuditService_PageError(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockSettingsAPI(ctrl)
	svc := NewAuditService(api, querycache.New(time.Minute), 5)

	api.EXPECT().ListNotificationAudit(gomock.Any(), 1, 5).Return(nil, errors.New("boom"))
	_, err := svc.Page(context.Background(), -3)
	require.Error(t, err)
}

func TestAuditService_PagePastEndFallsBackToLastPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockSettingsAPI(ctrl)
	svc := NewAuditService(api, querycache.New(time.Minute), 10)

	gomock.InOrder(
		api.EXPECT().ListNotificationAudit(gomock.Any(), 9, 10).
			Return(&domain.AuditPage{Page: 9, Total: 12, TotalPages: 2}, nil),
		api.EXPECT().ListNotificationAudit(gomock.Any(), 2, 10).
			Return(&domain.AuditPage{
				Items: []domain.NotificationAuditRecord{{ID: "a-11"}, {ID: "a-12"}},
				Page:  2, Total: 12, TotalPages: 2,
			}, nil),
	)

	view, err := svc.Page(context.Background(), 9)
	require.NoError(t, err)
	assert.Len(t, view.Records, 2)
	assert.Equal(t, Pager{Page: 2, TotalPages: 2, HasPrev: true}, view.Pager)
	assert.Equal(t, 1, view.Pager.PrevPage())
}
