package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticksy/internal/models"
	"ticksy/internal/storage"
)

func TestAdminDashboardEmptyStore(t *testing.T) {
	svc := NewReportService(storage.NewInMemoryStore(), newTestLogger(t))

	dashboard, err := svc.AdminDashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, dashboard.Totals.Users)
	assert.True(t, dashboard.Totals.Revenue.IsZero())
	assert.Equal(t, 0, dashboard.Totals.TicketSales)
	assert.Empty(t, dashboard.RecentUsers)
	assert.Empty(t, dashboard.RecentEvents)
}

func TestAdminDashboardTotals(t *testing.T) {
	f := newFixture(t)
	svc := NewReportService(f.store, newTestLogger(t))
	f.placePendingOrder(t, 3)

	dashboard, err := svc.AdminDashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, dashboard.Totals.Users)
	assert.True(t, dashboard.Totals.Revenue.Equal(decimal.NewFromInt(6000)))
	assert.Equal(t, 3, dashboard.Totals.TicketSales)
	assert.Equal(t, 1, dashboard.Totals.ActiveEvents)
}

func TestOrderReportFilters(t *testing.T) {
	f := newFixture(t)
	svc := NewReportService(f.store, newTestLogger(t))
	f.placePendingOrder(t, 2)
	ctx := context.Background()

	all, err := svc.OrderReport(ctx, models.ReportFilter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Nairobi Jazz Night", all[0].Event)
	assert.Equal(t, "Brian Otieno", all[0].Attendee)

	matched, err := svc.OrderReport(ctx, models.ReportFilter{EventName: "jazz"})
	require.NoError(t, err)
	assert.Len(t, matched, 1)

	none, err := svc.OrderReport(ctx, models.ReportFilter{EventName: "opera"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestOrganizerDashboard(t *testing.T) {
	f := newFixture(t)
	svc := NewReportService(f.store, newTestLogger(t))
	f.placePendingOrder(t, 4)

	overview, err := svc.OrganizerDashboard(context.Background(), f.organizer.ID)
	require.NoError(t, err)

	assert.Equal(t, 4, overview.TicketsSold)
	assert.True(t, overview.TotalRevenue.Equal(decimal.NewFromInt(8000)))
	assert.Equal(t, 1, overview.UpcomingEvents)

	// Another organizer sees nothing
	empty, err := svc.OrganizerDashboard(context.Background(), f.attendee.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.TicketsSold)
	assert.True(t, empty.TotalRevenue.IsZero())
}

func TestOrganizerEventStats(t *testing.T) {
	f := newFixture(t)
	svc := NewReportService(f.store, newTestLogger(t))
	f.placePendingOrder(t, 5)

	stats, err := svc.OrganizerEventStats(context.Background(), f.organizer.ID)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	require.Len(t, stats[0].Tickets, 1)
	assert.Equal(t, 5, stats[0].Tickets[0].Sold)
	assert.True(t, stats[0].TotalRevenue.Equal(decimal.NewFromInt(10000)))
}

func TestRecentAuditLogsCapped(t *testing.T) {
	store := storage.NewInMemoryStore()
	svc := NewReportService(store, newTestLogger(t))
	ctx := context.Background()

	for i := 0; i < 60; i++ {
		require.NoError(t, store.SaveAuditLog(ctx, &models.AuditLog{UserID: 1, Action: "order.created"}))
	}

	logs, err := svc.RecentAuditLogs(ctx)
	require.NoError(t, err)
	assert.Len(t, logs, 50)
	// Newest first
	assert.Greater(t, logs[0].ID, logs[49].ID)
}
