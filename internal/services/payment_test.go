package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticksy/internal/models"
	"ticksy/internal/storage"
)

// fakeLock is an in-process stand-in for the redis settlement lock.
type fakeLock struct {
	held map[string]bool
}

func newFakeLock() *fakeLock {
	return &fakeLock{held: make(map[string]bool)}
}

func (l *fakeLock) AcquireSettlementLock(ctx context.Context, orderID string) (bool, error) {
	if l.held[orderID] {
		return false, nil
	}
	l.held[orderID] = true
	return true, nil
}

func (l *fakeLock) ReleaseSettlementLock(ctx context.Context, orderID string) error {
	delete(l.held, orderID)
	return nil
}

func newPaymentService(t *testing.T, f *fixture, lock SettlementLock) *PaymentService {
	t.Helper()
	return NewPaymentService(f.store, newMockProducer(t), lock, newTestLogger(t))
}

func TestSTKPushSettlesOrder(t *testing.T) {
	f := newFixture(t)
	svc := newPaymentService(t, f, newFakeLock())
	order := f.placePendingOrder(t, 2)

	settled, err := svc.InitiateSTKPush(context.Background(), &models.STKPushRequest{OrderID: order.OrderID})
	require.NoError(t, err)

	assert.Equal(t, models.OrderPaid, settled.Status)
	assert.True(t, strings.HasPrefix(settled.MpesaReceipt, "MPESA-"), "receipt %q", settled.MpesaReceipt)
}

func TestSTKPushUnknownOrder(t *testing.T) {
	f := newFixture(t)
	svc := newPaymentService(t, f, newFakeLock())

	_, err := svc.InitiateSTKPush(context.Background(), &models.STKPushRequest{OrderID: "missing"})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSTKPushIdempotentOnPaidOrder(t *testing.T) {
	f := newFixture(t)
	svc := newPaymentService(t, f, newFakeLock())
	order := f.placePendingOrder(t, 1)
	ctx := context.Background()

	first, err := svc.InitiateSTKPush(ctx, &models.STKPushRequest{OrderID: order.OrderID})
	require.NoError(t, err)

	second, err := svc.InitiateSTKPush(ctx, &models.STKPushRequest{OrderID: order.OrderID})
	require.NoError(t, err)
	assert.Equal(t, first.MpesaReceipt, second.MpesaReceipt, "repeat settlement keeps the original receipt")
}

func TestSTKPushRejectedWhileLockHeld(t *testing.T) {
	f := newFixture(t)
	lock := newFakeLock()
	svc := newPaymentService(t, f, lock)
	order := f.placePendingOrder(t, 1)

	// Simulate another in-flight push
	held, err := lock.AcquireSettlementLock(context.Background(), order.OrderID)
	require.NoError(t, err)
	require.True(t, held)

	_, err = svc.InitiateSTKPush(context.Background(), &models.STKPushRequest{OrderID: order.OrderID})
	assert.ErrorIs(t, err, ErrSettlementInProgress)

	// Order stays pending
	current, err := f.store.GetOrderByExternalID(context.Background(), order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, current.Status)
}

func TestCallbackFailureMarksOrderFailed(t *testing.T) {
	f := newFixture(t)
	svc := newPaymentService(t, f, newFakeLock())
	order := f.placePendingOrder(t, 1)
	ctx := context.Background()

	failed, err := svc.HandleCallback(ctx, &models.STKCallbackRequest{
		OrderID:    order.OrderID,
		ResultCode: 1032,
		ResultDesc: "Request cancelled by user",
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderFailed, failed.Status)

	// Failed is terminal: a late push is rejected
	_, err = svc.InitiateSTKPush(ctx, &models.STKPushRequest{OrderID: order.OrderID})
	assert.ErrorIs(t, err, storage.ErrOrderNotPending)
}

func TestCallbackSuccessSettles(t *testing.T) {
	f := newFixture(t)
	svc := newPaymentService(t, f, newFakeLock())
	order := f.placePendingOrder(t, 1)

	settled, err := svc.HandleCallback(context.Background(), &models.STKCallbackRequest{
		OrderID:    order.OrderID,
		ResultCode: 0,
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderPaid, settled.Status)
	assert.NotEmpty(t, settled.MpesaReceipt)
}

func TestCallbackFailureOnSettledOrderRejected(t *testing.T) {
	f := newFixture(t)
	svc := newPaymentService(t, f, newFakeLock())
	order := f.placePendingOrder(t, 1)
	ctx := context.Background()

	_, err := svc.InitiateSTKPush(ctx, &models.STKPushRequest{OrderID: order.OrderID})
	require.NoError(t, err)

	_, err = svc.HandleCallback(ctx, &models.STKCallbackRequest{OrderID: order.OrderID, ResultCode: 1})
	assert.ErrorIs(t, err, storage.ErrOrderNotPending)
}
