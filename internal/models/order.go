package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

type OrderStatus string

const (
	OrderPending OrderStatus = "pending"
	OrderPaid    OrderStatus = "paid"
	OrderFailed  OrderStatus = "failed"
)

// Order is one purchase by an attendee. OrderID is the external identifier
// handed to the payment flow; total_amount is computed once at creation and
// never recomputed.
type Order struct {
	bun.BaseModel `bun:"table:orders,alias:o"`

	ID           int64           `json:"id" bun:"id,pk,autoincrement"`
	OrderID      string          `json:"order_id" bun:"order_id"`
	AttendeeID   int64           `json:"attendee_id" bun:"attendee_id"`
	Status       OrderStatus     `json:"status" bun:"status"`
	MpesaReceipt string          `json:"mpesa_receipt,omitempty" bun:"mpesa_receipt"`
	TotalAmount  decimal.Decimal `json:"total_amount" bun:"total_amount"`
	CreatedAt    time.Time       `json:"created_at" bun:"created_at"`

	Items []*OrderItem `json:"items,omitempty" bun:"rel:has-many,join:id=order_ref"`
}

type OrderItem struct {
	bun.BaseModel `bun:"table:order_items,alias:oi"`

	ID       int64 `json:"id" bun:"id,pk,autoincrement"`
	OrderRef int64 `json:"-" bun:"order_ref"`
	TicketID int64 `json:"ticket_id" bun:"ticket_id"`
	Quantity int   `json:"quantity" bun:"quantity"`

	Ticket *Ticket `json:"ticket,omitempty" bun:"rel:belongs-to,join:ticket_id=id"`
}

type PlaceOrderRequest struct {
	TicketID int64 `json:"ticket_id" binding:"required"`
	Quantity int   `json:"quantity" binding:"required,gt=0"`
}

type STKPushRequest struct {
	OrderID string `json:"order_id" binding:"required"`
}

// STKCallbackRequest mirrors the fields the real Daraja callback would carry;
// only the result code and order reference matter to the mocked flow.
type STKCallbackRequest struct {
	OrderID    string `json:"order_id" binding:"required"`
	ResultCode int    `json:"result_code"`
	ResultDesc string `json:"result_desc"`
}

type OrderEvent struct {
	Type      string    `json:"type"`
	OrderID   string    `json:"order_id"`
	Order     *Order    `json:"order,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
