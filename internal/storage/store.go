package storage

import (
	"context"
	"errors"

	"ticksy/internal/models"
)

var (
	ErrNotFound              = errors.New("record not found")
	ErrDuplicateEmail        = errors.New("email already registered")
	ErrDuplicatePhone        = errors.New("phone number already registered")
	ErrDuplicateReview       = errors.New("event already reviewed by this attendee")
	ErrDuplicateSavedEvent   = errors.New("event already saved")
	ErrDuplicateOrder        = errors.New("order id already exists")
	ErrInsufficientInventory = errors.New("not enough tickets available")
	ErrOrderNotPending       = errors.New("order is not pending")
)

type Store interface {
	// Users
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id int64) error
	ListUsers(ctx context.Context) ([]*models.User, error)

	// Events
	CreateEvent(ctx context.Context, event *models.Event) error
	GetEvent(ctx context.Context, id int64) (*models.Event, error)
	UpdateEvent(ctx context.Context, event *models.Event) error
	DeleteEvent(ctx context.Context, id int64) error
	ListApprovedEvents(ctx context.Context) ([]*models.Event, error)
	ListEventsByOrganizer(ctx context.Context, organizerID int64) ([]*models.Event, error)
	ListPendingEvents(ctx context.Context) ([]*models.Event, error)

	// Tickets
	CreateTicket(ctx context.Context, ticket *models.Ticket) error
	GetTicket(ctx context.Context, id int64) (*models.Ticket, error)
	UpdateTicket(ctx context.Context, ticket *models.Ticket) error
	DeleteTicket(ctx context.Context, id int64) error
	ListTicketsByEvent(ctx context.Context, eventID int64) ([]*models.Ticket, error)

	// Orders. PlaceOrder is the one atomic unit of the whole service: the
	// availability check, the sold increment, and the order+item inserts
	// either all happen or none do, and two concurrent calls against the
	// same ticket can never jointly oversell.
	PlaceOrder(ctx context.Context, attendeeID int64, orderID string, ticketID int64, quantity int) (*models.Order, error)
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
	GetOrderByExternalID(ctx context.Context, orderID string) (*models.Order, error)
	ListOrdersByAttendee(ctx context.Context, attendeeID int64) ([]*models.Order, error)
	SettleOrder(ctx context.Context, orderID string, receipt string) (*models.Order, error)
	FailOrder(ctx context.Context, orderID string) (*models.Order, error)

	// Reviews
	CreateReview(ctx context.Context, review *models.Review) error
	ListReviewsByEvent(ctx context.Context, eventID int64) ([]*models.Review, error)

	// Saved events
	SaveEvent(ctx context.Context, userID, eventID int64) (*models.SavedEvent, error)
	UnsaveEvent(ctx context.Context, userID, eventID int64) error
	ListSavedEvents(ctx context.Context, userID int64) ([]*models.SavedEvent, error)

	// Audit log
	SaveAuditLog(ctx context.Context, entry *models.AuditLog) error
	ListAuditLogs(ctx context.Context, limit int) ([]*models.AuditLog, error)

	// Reporting
	AdminDashboard(ctx context.Context) (*models.AdminDashboard, error)
	OrderReport(ctx context.Context, filter models.ReportFilter) ([]models.OrderReportRow, error)
	OrganizerOverview(ctx context.Context, organizerID int64) (*models.OrganizerOverview, error)
	OrganizerEventStats(ctx context.Context, organizerID int64) ([]models.EventStats, error)

	HealthCheck() error
	Close() error
}
