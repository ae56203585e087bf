package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Review is one rating+comment per (attendee, event) pair; immutable once
// created.
type Review struct {
	bun.BaseModel `bun:"table:reviews,alias:r"`

	ID         int64     `json:"id" bun:"id,pk,autoincrement"`
	AttendeeID int64     `json:"attendee_id" bun:"attendee_id"`
	EventID    int64     `json:"event_id" bun:"event_id"`
	Rating     int       `json:"rating" bun:"rating"`
	Comment    string    `json:"comment" bun:"comment"`
	CreatedAt  time.Time `json:"created_at" bun:"created_at"`

	Attendee *User `json:"attendee,omitempty" bun:"rel:belongs-to,join:attendee_id=id"`
}

type AddReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}
