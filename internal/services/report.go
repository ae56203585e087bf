package services

import (
	"context"

	"ticksy/internal/logger"
	"ticksy/internal/models"
	"ticksy/internal/storage"
)

const auditLogLimit = 50

type ReportService struct {
	store storage.Store
	log   *logger.Logger
}

func NewReportService(store storage.Store, log *logger.Logger) *ReportService {
	return &ReportService{
		store: store,
		log:   log,
	}
}

func (s *ReportService) AdminDashboard(ctx context.Context) (*models.AdminDashboard, error) {
	return s.store.AdminDashboard(ctx)
}

func (s *ReportService) OrderReport(ctx context.Context, filter models.ReportFilter) ([]models.OrderReportRow, error) {
	return s.store.OrderReport(ctx, filter)
}

func (s *ReportService) OrganizerDashboard(ctx context.Context, organizerID int64) (*models.OrganizerOverview, error) {
	return s.store.OrganizerOverview(ctx, organizerID)
}

func (s *ReportService) OrganizerEventStats(ctx context.Context, organizerID int64) ([]models.EventStats, error) {
	return s.store.OrganizerEventStats(ctx, organizerID)
}

func (s *ReportService) RecentAuditLogs(ctx context.Context) ([]*models.AuditLog, error) {
	return s.store.ListAuditLogs(ctx, auditLogLimit)
}
