package services

import (
	"context"
	"errors"
	"fmt"

	"ticksy/internal/kafka"
	"ticksy/internal/logger"
	"ticksy/internal/models"
	"ticksy/internal/monitoring"
	"ticksy/internal/storage"
	"ticksy/internal/utils"
)

var ErrSettlementInProgress = errors.New("settlement already in progress for this order")

// SettlementLock guards an order against concurrent STK pushes.
type SettlementLock interface {
	AcquireSettlementLock(ctx context.Context, orderID string) (bool, error)
	ReleaseSettlementLock(ctx context.Context, orderID string) error
}

type PaymentService struct {
	store    storage.Store
	producer *kafka.Producer
	lock     SettlementLock
	log      *logger.Logger
}

func NewPaymentService(store storage.Store, producer *kafka.Producer, lock SettlementLock, log *logger.Logger) *PaymentService {
	return &PaymentService{
		store:    store,
		producer: producer,
		lock:     lock,
		log:      log,
	}
}

// InitiateSTKPush runs the mocked M-PESA flow: the push is assumed to
// succeed immediately, so the order is settled and a receipt assigned in
// one step. The redis lock rejects a second concurrent push for the same
// order; an already-paid order settles idempotently.
func (s *PaymentService) InitiateSTKPush(ctx context.Context, req *models.STKPushRequest) (*models.Order, error) {
	s.log.LogPayment("STK_PUSH", req.OrderID, "Initiating STK push")

	acquired, err := s.lock.AcquireSettlementLock(ctx, req.OrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire settlement lock: %w", err)
	}
	if !acquired {
		s.log.LogPayment("STK_LOCKED", req.OrderID, "Settlement already in progress")
		return nil, ErrSettlementInProgress
	}
	defer func() {
		if err := s.lock.ReleaseSettlementLock(ctx, req.OrderID); err != nil {
			s.log.Error("PAYMENT", fmt.Sprintf("Failed to release settlement lock for %s: %v", req.OrderID, err))
		}
	}()

	receipt := utils.GenerateReceipt()
	order, err := s.store.SettleOrder(ctx, req.OrderID, receipt)
	if err != nil {
		return nil, err
	}

	s.log.LogPayment("SETTLED", order.OrderID, fmt.Sprintf("Order settled with receipt %s", order.MpesaReceipt))
	monitoring.TrackSettlement("success")

	if err := s.producer.PublishOrderEvent(kafka.EventPaymentSuccess, order); err != nil {
		s.log.Error("PAYMENT", fmt.Sprintf("Failed to publish payment.success for %s: %v", order.OrderID, err))
	}

	return order, nil
}

// HandleCallback processes the provider callback stub. Result code 0
// settles the order (idempotent with the push path); anything else fails
// a pending order.
func (s *PaymentService) HandleCallback(ctx context.Context, req *models.STKCallbackRequest) (*models.Order, error) {
	s.log.LogPayment("CALLBACK", req.OrderID, fmt.Sprintf("Provider callback: code=%d desc=%s", req.ResultCode, req.ResultDesc))

	if req.ResultCode == 0 {
		order, err := s.store.SettleOrder(ctx, req.OrderID, utils.GenerateReceipt())
		if err != nil {
			return nil, err
		}
		if err := s.producer.PublishOrderEvent(kafka.EventPaymentSuccess, order); err != nil {
			s.log.Error("PAYMENT", fmt.Sprintf("Failed to publish payment.success for %s: %v", order.OrderID, err))
		}
		return order, nil
	}

	order, err := s.store.FailOrder(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}

	s.log.LogPayment("FAILED", order.OrderID, fmt.Sprintf("Order failed: %s", req.ResultDesc))
	monitoring.TrackSettlement("failed")

	if err := s.producer.PublishOrderEvent(kafka.EventPaymentFailed, order); err != nil {
		s.log.Error("PAYMENT", fmt.Sprintf("Failed to publish payment.failed for %s: %v", order.OrderID, err))
	}

	return order, nil
}
