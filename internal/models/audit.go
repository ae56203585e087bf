package models

import (
	"time"

	"github.com/uptrace/bun"
)

// AuditLog rows are written by the kafka consumer from order and payment
// events, and surfaced to admins via /admin/logs.
type AuditLog struct {
	bun.BaseModel `bun:"table:audit_logs,alias:al"`

	ID        int64     `json:"id" bun:"id,pk,autoincrement"`
	UserID    int64     `json:"user_id" bun:"user_id"`
	Action    string    `json:"action" bun:"action"`
	MetaData  string    `json:"meta_data" bun:"meta_data"`
	CreatedAt time.Time `json:"created_at" bun:"created_at"`
}
