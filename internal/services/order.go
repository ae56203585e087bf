package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"ticksy/internal/kafka"
	"ticksy/internal/logger"
	"ticksy/internal/models"
	"ticksy/internal/monitoring"
	"ticksy/internal/storage"
)

type OrderService struct {
	store    storage.Store
	producer *kafka.Producer
	log      *logger.Logger
}

func NewOrderService(store storage.Store, producer *kafka.Producer, log *logger.Logger) *OrderService {
	return &OrderService{
		store:    store,
		producer: producer,
		log:      log,
	}
}

// PlaceOrder reserves inventory and creates a pending order. The
// availability check and sold increment happen atomically in the store;
// a losing concurrent request comes back as ErrInsufficientInventory.
func (s *OrderService) PlaceOrder(ctx context.Context, attendeeID int64, req *models.PlaceOrderRequest) (*models.Order, error) {
	orderID := uuid.NewString()

	order, err := s.store.PlaceOrder(ctx, attendeeID, orderID, req.TicketID, req.Quantity)
	if err != nil {
		if errors.Is(err, storage.ErrInsufficientInventory) {
			monitoring.TrackInventoryRejection()
		}
		return nil, err
	}
	monitoring.TrackOrderPlaced()

	s.log.LogProcess("ORDER_PLACED", fmt.Sprintf("Attendee %d placed order %s (ticket %d x%d, total %s)",
		attendeeID, order.OrderID, req.TicketID, req.Quantity, order.TotalAmount.StringFixed(2)))

	if err := s.producer.PublishOrderEvent(kafka.EventOrderCreated, order); err != nil {
		s.log.Error("ORDER", fmt.Sprintf("Failed to publish order.created for %s: %v", order.OrderID, err))
	}

	return order, nil
}

// GetOrder returns the order only to its attendee. Anyone else gets
// ErrNotFound, existence is not disclosed.
func (s *OrderService) GetOrder(ctx context.Context, attendeeID, orderID int64) (*models.Order, error) {
	order, err := s.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.AttendeeID != attendeeID {
		return nil, storage.ErrNotFound
	}
	return order, nil
}

func (s *OrderService) ListMyOrders(ctx context.Context, attendeeID int64) ([]*models.Order, error) {
	return s.store.ListOrdersByAttendee(ctx, attendeeID)
}
