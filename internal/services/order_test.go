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

func TestPlaceOrderHappyPath(t *testing.T) {
	f := newFixture(t)
	svc := NewOrderService(f.store, newMockProducer(t), newTestLogger(t))
	ctx := context.Background()

	order, err := svc.PlaceOrder(ctx, f.attendee.ID, &models.PlaceOrderRequest{TicketID: f.ticket.ID, Quantity: 3})
	require.NoError(t, err)

	assert.NotEmpty(t, order.OrderID)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(6000)))

	ticket, err := f.store.GetTicket(ctx, f.ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, ticket.Sold)
}

func TestPlaceOrderDistinctExternalIDs(t *testing.T) {
	f := newFixture(t)
	svc := NewOrderService(f.store, newMockProducer(t), newTestLogger(t))
	ctx := context.Background()

	first, err := svc.PlaceOrder(ctx, f.attendee.ID, &models.PlaceOrderRequest{TicketID: f.ticket.ID, Quantity: 1})
	require.NoError(t, err)
	second, err := svc.PlaceOrder(ctx, f.attendee.ID, &models.PlaceOrderRequest{TicketID: f.ticket.ID, Quantity: 1})
	require.NoError(t, err)

	assert.NotEqual(t, first.OrderID, second.OrderID)
}

func TestPlaceOrderInsufficient(t *testing.T) {
	f := newFixture(t)
	svc := NewOrderService(f.store, newMockProducer(t), newTestLogger(t))

	_, err := svc.PlaceOrder(context.Background(), f.attendee.ID, &models.PlaceOrderRequest{TicketID: f.ticket.ID, Quantity: 11})
	assert.ErrorIs(t, err, storage.ErrInsufficientInventory)
}

func TestGetOrderHidesOtherUsersOrders(t *testing.T) {
	f := newFixture(t)
	svc := NewOrderService(f.store, newMockProducer(t), newTestLogger(t))
	ctx := context.Background()

	order, err := svc.PlaceOrder(ctx, f.attendee.ID, &models.PlaceOrderRequest{TicketID: f.ticket.ID, Quantity: 1})
	require.NoError(t, err)

	// Owner sees it
	got, err := svc.GetOrder(ctx, f.attendee.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.OrderID, got.OrderID)

	// Anyone else gets not-found, never forbidden
	_, err = svc.GetOrder(ctx, f.organizer.ID, order.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestListMyOrders(t *testing.T) {
	f := newFixture(t)
	svc := NewOrderService(f.store, newMockProducer(t), newTestLogger(t))
	ctx := context.Background()

	_, err := svc.PlaceOrder(ctx, f.attendee.ID, &models.PlaceOrderRequest{TicketID: f.ticket.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = svc.PlaceOrder(ctx, f.attendee.ID, &models.PlaceOrderRequest{TicketID: f.ticket.ID, Quantity: 2})
	require.NoError(t, err)

	orders, err := svc.ListMyOrders(ctx, f.attendee.ID)
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	others, err := svc.ListMyOrders(ctx, f.organizer.ID)
	require.NoError(t, err)
	assert.Empty(t, others)
}
