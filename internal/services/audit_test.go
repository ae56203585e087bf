package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticksy/internal/kafka"
	"ticksy/internal/models"
	"ticksy/internal/storage"
)

func TestRecordOrderEvent(t *testing.T) {
	store := storage.NewInMemoryStore()
	svc := NewAuditService(store, newTestLogger(t))

	f := newFixture(t)
	order := f.placePendingOrder(t, 2)

	err := svc.RecordOrderEvent(&models.OrderEvent{
		Type:      kafka.EventOrderCreated,
		OrderID:   order.OrderID,
		Order:     order,
		Timestamp: time.Now(),
	})
	require.NoError(t, err)

	logs, err := store.ListAuditLogs(context.Background(), 50)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, kafka.EventOrderCreated, logs[0].Action)
	assert.Equal(t, order.AttendeeID, logs[0].UserID)
	assert.Contains(t, logs[0].MetaData, order.OrderID)
}

func TestRecordOrderEventWithoutOrderBody(t *testing.T) {
	store := storage.NewInMemoryStore()
	svc := NewAuditService(store, newTestLogger(t))

	err := svc.RecordOrderEvent(&models.OrderEvent{
		Type:    kafka.EventPaymentFailed,
		OrderID: "orphan",
	})
	require.NoError(t, err)

	logs, err := store.ListAuditLogs(context.Background(), 50)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, int64(0), logs[0].UserID)
}
