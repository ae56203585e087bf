package models

import (
	"time"

	"github.com/uptrace/bun"
)

type EventStatus string

const (
	EventPending  EventStatus = "pending"
	EventActive   EventStatus = "active"
	EventRejected EventStatus = "rejected"
)

type Event struct {
	bun.BaseModel `bun:"table:events,alias:e"`

	ID          int64       `json:"id" bun:"id,pk,autoincrement"`
	Title       string      `json:"title" bun:"title"`
	Description string      `json:"description" bun:"description"`
	Location    string      `json:"location" bun:"location"`
	StartTime   time.Time   `json:"start_time" bun:"start_time"`
	EndTime     time.Time   `json:"end_time" bun:"end_time"`
	Category    string      `json:"category" bun:"category"`
	Tags        string      `json:"tags" bun:"tags"`
	IsApproved  bool        `json:"is_approved" bun:"is_approved"`
	Status      EventStatus `json:"status" bun:"status"`
	OrganizerID int64       `json:"organizer_id" bun:"organizer_id"`
	CreatedAt   time.Time   `json:"created_at" bun:"created_at"`

	Organizer *User `json:"organizer,omitempty" bun:"rel:belongs-to,join:organizer_id=id"`
}

type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description" binding:"required"`
	Location    string    `json:"location" binding:"required"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time" binding:"required"`
	Category    string    `json:"category" binding:"required"`
	Tags        string    `json:"tags"`
}

type UpdateEventRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Location    *string    `json:"location"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	Category    *string    `json:"category"`
	Tags        *string    `json:"tags"`
}

type ApproveEventRequest struct {
	Approve *bool `json:"approve" binding:"required"`
}

type SavedEvent struct {
	bun.BaseModel `bun:"table:saved_events,alias:saved_event"`

	ID      int64     `json:"id" bun:"id,pk,autoincrement"`
	UserID  int64     `json:"user_id" bun:"user_id"`
	EventID int64     `json:"event_id" bun:"event_id"`
	SavedAt time.Time `json:"saved_at" bun:"saved_at"`

	Event *Event `json:"event,omitempty" bun:"rel:belongs-to,join:event_id=id"`
}
