package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// Ticket is one ticket type of an event (VIP, Early Bird, Regular, ...).
// Remaining inventory is quantity - sold; sold only moves through the order
// workflow and never exceeds quantity.
type Ticket struct {
	bun.BaseModel `bun:"table:tickets,alias:t"`

	ID        int64           `json:"id" bun:"id,pk,autoincrement"`
	EventID   int64           `json:"event_id" bun:"event_id"`
	Type      string          `json:"type" bun:"type"`
	Price     decimal.Decimal `json:"price" bun:"price"`
	Quantity  int             `json:"quantity" bun:"quantity"`
	Sold      int             `json:"sold" bun:"sold"`
	CreatedAt time.Time       `json:"created_at" bun:"created_at"`

	Event *Event `json:"event,omitempty" bun:"rel:belongs-to,join:event_id=id"`
}

func (t *Ticket) Remaining() int {
	return t.Quantity - t.Sold
}

type CreateTicketRequest struct {
	Type     string          `json:"type" binding:"required"`
	Price    decimal.Decimal `json:"price" binding:"required"`
	Quantity int             `json:"quantity" binding:"required,gt=0"`
}

type UpdateTicketRequest struct {
	Type     *string          `json:"type"`
	Price    *decimal.Decimal `json:"price"`
	Quantity *int             `json:"quantity" binding:"omitempty,gt=0"`
}
