package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ticksy/internal/logger"
	"ticksy/internal/models"
	"ticksy/internal/storage"
)

// AuditService turns consumed order/payment events into audit log rows.
type AuditService struct {
	store storage.Store
	log   *logger.Logger
}

func NewAuditService(store storage.Store, log *logger.Logger) *AuditService {
	return &AuditService{
		store: store,
		log:   log,
	}
}

// RecordOrderEvent is the kafka consumer callback.
func (s *AuditService) RecordOrderEvent(event *models.OrderEvent) error {
	var userID int64
	meta := map[string]interface{}{
		"order_id": event.OrderID,
	}
	if event.Order != nil {
		userID = event.Order.AttendeeID
		meta["status"] = event.Order.Status
		meta["total_amount"] = event.Order.TotalAmount.StringFixed(2)
	}

	metaData, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to marshal audit metadata: %w", err)
	}

	entry := &models.AuditLog{
		UserID:    userID,
		Action:    event.Type,
		MetaData:  string(metaData),
		CreatedAt: time.Now(),
	}

	if err := s.store.SaveAuditLog(context.Background(), entry); err != nil {
		return fmt.Errorf("failed to save audit log: %w", err)
	}

	s.log.Debug("AUDIT", fmt.Sprintf("Recorded %s for order %s", event.Type, event.OrderID))
	return nil
}
