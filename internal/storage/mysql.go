package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"

	"ticksy/internal/config"
	"ticksy/internal/logger"
	"ticksy/internal/models"
)

type MySQLStore struct {
	db  *bun.DB
	log *logger.Logger
}

func NewMySQLStore(cfg config.DatabaseConfig, log *logger.Logger) (*MySQLStore, error) {
	log.LogDatabase("CONNECT", "mysql", fmt.Sprintf("Connecting to MySQL at %s:%s", cfg.Host, cfg.Port))

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Database)

	sqldb, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Error("DATABASE", "Failed to open MySQL connection: "+err.Error())
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
	sqldb.SetConnMaxLifetime(cfg.MaxLifetime)

	if err := sqldb.Ping(); err != nil {
		log.Error("DATABASE", "Failed to ping MySQL: "+err.Error())
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &MySQLStore{
		db:  bun.NewDB(sqldb, mysqldialect.New()),
		log: log,
	}

	if err := store.initTables(); err != nil {
		log.Error("DATABASE", "Failed to initialize tables: "+err.Error())
		return nil, fmt.Errorf("failed to initialize tables: %w", err)
	}

	log.LogDatabase("SUCCESS", "mysql", "MySQL connection established and tables initialized")
	return store, nil
}

func (s *MySQLStore) initTables() error {
	s.log.LogDatabase("MIGRATE", "mysql", "Creating tables if not exist")

	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			first_name VARCHAR(50) NOT NULL,
			last_name VARCHAR(50) NOT NULL,
			email VARCHAR(100) NOT NULL,
			phone VARCHAR(20) NOT NULL,
			password VARCHAR(255) NOT NULL,
			role VARCHAR(20) NOT NULL DEFAULT 'attendee',
			status VARCHAR(20) NOT NULL DEFAULT 'active',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uq_users_email (email),
			UNIQUE KEY uq_users_phone (phone)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS events (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			description TEXT NOT NULL,
			location VARCHAR(255) NOT NULL,
			start_time DATETIME NOT NULL,
			end_time DATETIME NOT NULL,
			category VARCHAR(100),
			tags VARCHAR(255),
			is_approved BOOLEAN NOT NULL DEFAULT FALSE,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			organizer_id BIGINT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_events_organizer (organizer_id),
			INDEX idx_events_status (status)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS tickets (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			event_id BIGINT NOT NULL,
			type VARCHAR(50) NOT NULL,
			price DECIMAL(12,2) NOT NULL,
			quantity INT NOT NULL,
			sold INT NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_tickets_event (event_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS orders (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			order_id VARCHAR(36) NOT NULL,
			attendee_id BIGINT NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			mpesa_receipt VARCHAR(50),
			total_amount DECIMAL(12,2) NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uq_orders_order_id (order_id),
			INDEX idx_orders_attendee (attendee_id),
			INDEX idx_orders_status (status)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS order_items (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			order_ref BIGINT NOT NULL,
			ticket_id BIGINT NOT NULL,
			quantity INT NOT NULL,
			INDEX idx_order_items_order (order_ref),
			INDEX idx_order_items_ticket (ticket_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS reviews (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			attendee_id BIGINT NOT NULL,
			event_id BIGINT NOT NULL,
			rating INT NOT NULL,
			comment TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uq_reviews_attendee_event (attendee_id, event_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS saved_events (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			user_id BIGINT NOT NULL,
			event_id BIGINT NOT NULL,
			saved_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uq_saved_events_user_event (user_id, event_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS audit_logs (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			user_id BIGINT,
			action VARCHAR(100) NOT NULL,
			meta_data TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_audit_logs_created (created_at)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	s.log.LogDatabase("SUCCESS", "mysql", "All tables ready")
	return nil
}

// isDuplicateKey reports whether err is a MySQL 1062 duplicate-entry error on
// the named unique key.
func isDuplicateKey(err error, key string) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return key == "" || strings.Contains(mysqlErr.Message, key)
	}
	return false
}

// ---------------- Users ----------------

func (s *MySQLStore) CreateUser(ctx context.Context, user *models.User) error {
	if _, err := s.db.NewInsert().Model(user).Exec(ctx); err != nil {
		switch {
		case isDuplicateKey(err, "uq_users_email"):
			return ErrDuplicateEmail
		case isDuplicateKey(err, "uq_users_phone"):
			return ErrDuplicatePhone
		}
		s.log.Error("DATABASE", "Failed to create user: "+err.Error())
		return fmt.Errorf("failed to create user: %w", err)
	}
	s.log.LogDatabase("INSERT", "users", fmt.Sprintf("User %d created", user.ID))
	return nil
}

func (s *MySQLStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	user := new(models.User)
	err := s.db.NewSelect().Model(user).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *MySQLStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := new(models.User)
	err := s.db.NewSelect().Model(user).Where("email = ?", email).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

func (s *MySQLStore) UpdateUser(ctx context.Context, user *models.User) error {
	res, err := s.db.NewUpdate().Model(user).WherePK().Exec(ctx)
	if err != nil {
		switch {
		case isDuplicateKey(err, "uq_users_email"):
			return ErrDuplicateEmail
		case isDuplicateKey(err, "uq_users_phone"):
			return ErrDuplicatePhone
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MySQLStore) DeleteUser(ctx context.Context, id int64) error {
	res, err := s.db.NewDelete().Model((*models.User)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	s.log.LogDatabase("DELETE", "users", fmt.Sprintf("User %d deleted", id))
	return nil
}

func (s *MySQLStore) ListUsers(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	if err := s.db.NewSelect().Model(&users).Order("created_at DESC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// ---------------- Events ----------------

func (s *MySQLStore) CreateEvent(ctx context.Context, event *models.Event) error {
	if _, err := s.db.NewInsert().Model(event).Exec(ctx); err != nil {
		s.log.Error("DATABASE", "Failed to create event: "+err.Error())
		return fmt.Errorf("failed to create event: %w", err)
	}
	s.log.LogDatabase("INSERT", "events", fmt.Sprintf("Event %d created by organizer %d", event.ID, event.OrganizerID))
	return nil
}

func (s *MySQLStore) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	event := new(models.Event)
	err := s.db.NewSelect().Model(event).Relation("Organizer").Where("e.id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

func (s *MySQLStore) UpdateEvent(ctx context.Context, event *models.Event) error {
	res, err := s.db.NewUpdate().Model(event).WherePK().Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MySQLStore) DeleteEvent(ctx context.Context, id int64) error {
	res, err := s.db.NewDelete().Model((*models.Event)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	s.log.LogDatabase("DELETE", "events", fmt.Sprintf("Event %d deleted", id))
	return nil
}

func (s *MySQLStore) ListApprovedEvents(ctx context.Context) ([]*models.Event, error) {
	var events []*models.Event
	err := s.db.NewSelect().Model(&events).
		Relation("Organizer").
		Where("e.is_approved = ?", true).
		Order("e.start_time ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved events: %w", err)
	}
	return events, nil
}

func (s *MySQLStore) ListEventsByOrganizer(ctx context.Context, organizerID int64) ([]*models.Event, error) {
	var events []*models.Event
	err := s.db.NewSelect().Model(&events).
		Where("organizer_id = ?", organizerID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizer events: %w", err)
	}
	return events, nil
}

func (s *MySQLStore) ListPendingEvents(ctx context.Context) ([]*models.Event, error) {
	var events []*models.Event
	err := s.db.NewSelect().Model(&events).
		Relation("Organizer").
		Where("e.is_approved = ?", false).
		Where("e.status = ?", models.EventPending).
		Order("e.created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending events: %w", err)
	}
	return events, nil
}

// ---------------- Tickets ----------------

func (s *MySQLStore) CreateTicket(ctx context.Context, ticket *models.Ticket) error {
	if _, err := s.db.NewInsert().Model(ticket).Exec(ctx); err != nil {
		s.log.Error("DATABASE", "Failed to create ticket: "+err.Error())
		return fmt.Errorf("failed to create ticket: %w", err)
	}
	s.log.LogDatabase("INSERT", "tickets", fmt.Sprintf("Ticket %d created for event %d", ticket.ID, ticket.EventID))
	return nil
}

func (s *MySQLStore) GetTicket(ctx context.Context, id int64) (*models.Ticket, error) {
	ticket := new(models.Ticket)
	err := s.db.NewSelect().Model(ticket).Relation("Event").Where("t.id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	return ticket, nil
}

func (s *MySQLStore) UpdateTicket(ctx context.Context, ticket *models.Ticket) error {
	res, err := s.db.NewUpdate().Model(ticket).
		Column("type", "price", "quantity").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update ticket: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MySQLStore) DeleteTicket(ctx context.Context, id int64) error {
	res, err := s.db.NewDelete().Model((*models.Ticket)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete ticket: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MySQLStore) ListTicketsByEvent(ctx context.Context, eventID int64) ([]*models.Ticket, error) {
	var tickets []*models.Ticket
	err := s.db.NewSelect().Model(&tickets).
		Where("event_id = ?", eventID).
		Order("price ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	return tickets, nil
}

// ---------------- Orders ----------------

// PlaceOrder locks the ticket row for the duration of the availability check
// and the sold increment, so two overlapping orders against the same ticket
// serialize and the loser fails with ErrInsufficientInventory instead of
// overselling.
func (s *MySQLStore) PlaceOrder(ctx context.Context, attendeeID int64, orderID string, ticketID int64, quantity int) (*models.Order, error) {
	var order *models.Order

	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		ticket := new(models.Ticket)
		err := tx.NewSelect().Model(ticket).Where("t.id = ?", ticketID).For("UPDATE").Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to lock ticket: %w", err)
		}

		if quantity > ticket.Quantity-ticket.Sold {
			return ErrInsufficientInventory
		}

		if _, err := tx.NewUpdate().Model((*models.Ticket)(nil)).
			Set("sold = sold + ?", quantity).
			Where("id = ?", ticketID).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to increment sold: %w", err)
		}
		// Keep the snapshot attached to the response in line with the row
		// we just updated.
		ticket.Sold += quantity

		order = &models.Order{
			OrderID:     orderID,
			AttendeeID:  attendeeID,
			Status:      models.OrderPending,
			TotalAmount: ticket.Price.Mul(decimal.NewFromInt(int64(quantity))),
			CreatedAt:   time.Now(),
		}
		if _, err := tx.NewInsert().Model(order).Exec(ctx); err != nil {
			if isDuplicateKey(err, "uq_orders_order_id") {
				return ErrDuplicateOrder
			}
			return fmt.Errorf("failed to insert order: %w", err)
		}

		item := &models.OrderItem{
			OrderRef: order.ID,
			TicketID: ticketID,
			Quantity: quantity,
		}
		if _, err := tx.NewInsert().Model(item).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
		item.Ticket = ticket
		order.Items = []*models.OrderItem{item}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.LogDatabase("INSERT", "orders", fmt.Sprintf("Order %s placed for ticket %d x%d", orderID, ticketID, quantity))
	return order, nil
}

func (s *MySQLStore) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	order := new(models.Order)
	err := s.db.NewSelect().Model(order).
		Relation("Items").
		Relation("Items.Ticket").
		Where("o.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

func (s *MySQLStore) GetOrderByExternalID(ctx context.Context, orderID string) (*models.Order, error) {
	order := new(models.Order)
	err := s.db.NewSelect().Model(order).
		Relation("Items").
		Relation("Items.Ticket").
		Where("o.order_id = ?", orderID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order by external id: %w", err)
	}
	return order, nil
}

func (s *MySQLStore) ListOrdersByAttendee(ctx context.Context, attendeeID int64) ([]*models.Order, error) {
	var orders []*models.Order
	err := s.db.NewSelect().Model(&orders).
		Relation("Items").
		Relation("Items.Ticket").
		Where("o.attendee_id = ?", attendeeID).
		Order("o.created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// SettleOrder marks a pending order paid and records the receipt. Settling an
// already-paid order is a no-op returning the existing state; a failed order
// cannot be settled.
func (s *MySQLStore) SettleOrder(ctx context.Context, orderID string, receipt string) (*models.Order, error) {
	var settled *models.Order

	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		order := new(models.Order)
		err := tx.NewSelect().Model(order).Where("o.order_id = ?", orderID).For("UPDATE").Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to lock order: %w", err)
		}

		switch order.Status {
		case models.OrderPaid:
			settled = order
			return nil
		case models.OrderFailed:
			return ErrOrderNotPending
		}

		order.Status = models.OrderPaid
		order.MpesaReceipt = receipt
		if _, err := tx.NewUpdate().Model(order).
			Column("status", "mpesa_receipt").
			WherePK().
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to settle order: %w", err)
		}
		settled = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.LogDatabase("UPDATE", "orders", fmt.Sprintf("Order %s settled with receipt %s", orderID, receipt))
	return settled, nil
}

func (s *MySQLStore) FailOrder(ctx context.Context, orderID string) (*models.Order, error) {
	var failed *models.Order

	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		order := new(models.Order)
		err := tx.NewSelect().Model(order).Where("o.order_id = ?", orderID).For("UPDATE").Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to lock order: %w", err)
		}

		if order.Status != models.OrderPending {
			return ErrOrderNotPending
		}

		order.Status = models.OrderFailed
		if _, err := tx.NewUpdate().Model(order).
			Column("status").
			WherePK().
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to fail order: %w", err)
		}
		failed = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.LogDatabase("UPDATE", "orders", fmt.Sprintf("Order %s marked failed", orderID))
	return failed, nil
}

// ---------------- Reviews ----------------

func (s *MySQLStore) CreateReview(ctx context.Context, review *models.Review) error {
	if _, err := s.db.NewInsert().Model(review).Exec(ctx); err != nil {
		if isDuplicateKey(err, "uq_reviews_attendee_event") {
			return ErrDuplicateReview
		}
		return fmt.Errorf("failed to create review: %w", err)
	}
	s.log.LogDatabase("INSERT", "reviews", fmt.Sprintf("Review %d for event %d", review.ID, review.EventID))
	return nil
}

func (s *MySQLStore) ListReviewsByEvent(ctx context.Context, eventID int64) ([]*models.Review, error) {
	var reviews []*models.Review
	err := s.db.NewSelect().Model(&reviews).
		Relation("Attendee").
		Where("r.event_id = ?", eventID).
		Order("r.created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// ---------------- Saved events ----------------

func (s *MySQLStore) SaveEvent(ctx context.Context, userID, eventID int64) (*models.SavedEvent, error) {
	saved := &models.SavedEvent{
		UserID:  userID,
		EventID: eventID,
		SavedAt: time.Now(),
	}
	if _, err := s.db.NewInsert().Model(saved).Exec(ctx); err != nil {
		if isDuplicateKey(err, "uq_saved_events_user_event") {
			return nil, ErrDuplicateSavedEvent
		}
		return nil, fmt.Errorf("failed to save event: %w", err)
	}
	return saved, nil
}

func (s *MySQLStore) UnsaveEvent(ctx context.Context, userID, eventID int64) error {
	res, err := s.db.NewDelete().Model((*models.SavedEvent)(nil)).
		Where("user_id = ?", userID).
		Where("event_id = ?", eventID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to unsave event: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MySQLStore) ListSavedEvents(ctx context.Context, userID int64) ([]*models.SavedEvent, error) {
	var saved []*models.SavedEvent
	err := s.db.NewSelect().Model(&saved).
		Relation("Event").
		Where("saved_event.user_id = ?", userID).
		Order("saved_event.saved_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved events: %w", err)
	}
	return saved, nil
}

// ---------------- Audit log ----------------

func (s *MySQLStore) SaveAuditLog(ctx context.Context, entry *models.AuditLog) error {
	if _, err := s.db.NewInsert().Model(entry).Exec(ctx); err != nil {
		return fmt.Errorf("failed to save audit log: %w", err)
	}
	return nil
}

func (s *MySQLStore) ListAuditLogs(ctx context.Context, limit int) ([]*models.AuditLog, error) {
	var entries []*models.AuditLog
	err := s.db.NewSelect().Model(&entries).
		Order("created_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return entries, nil
}

// ---------------- Reporting ----------------

func (s *MySQLStore) scanDecimal(ctx context.Context, query string, args ...interface{}) (decimal.Decimal, error) {
	var raw sql.NullString
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&raw); err != nil {
		return decimal.Zero, err
	}
	if !raw.Valid || raw.String == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(raw.String)
}

func (s *MySQLStore) AdminDashboard(ctx context.Context) (*models.AdminDashboard, error) {
	dashboard := &models.AdminDashboard{
		Totals:       models.DashboardTotals{Revenue: decimal.Zero},
		RecentUsers:  []models.RecentUser{},
		RecentEvents: []models.RecentEvent{},
	}

	var err error
	if dashboard.Totals.Users, err = s.db.NewSelect().Model((*models.User)(nil)).Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	if dashboard.Totals.Revenue, err = s.scanDecimal(ctx, "SELECT COALESCE(SUM(total_amount), 0) FROM orders"); err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}

	var sold sql.NullInt64
	if err := s.db.QueryRowContext(ctx, "SELECT COALESCE(SUM(sold), 0) FROM tickets").Scan(&sold); err != nil {
		return nil, fmt.Errorf("failed to sum ticket sales: %w", err)
	}
	dashboard.Totals.TicketSales = int(sold.Int64)

	if dashboard.Totals.ActiveEvents, err = s.db.NewSelect().Model((*models.Event)(nil)).
		Where("status = ?", models.EventActive).Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count active events: %w", err)
	}
	if dashboard.Totals.PendingEvents, err = s.db.NewSelect().Model((*models.Event)(nil)).
		Where("status = ?", models.EventPending).Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count pending events: %w", err)
	}

	var recentUsers []*models.User
	if err := s.db.NewSelect().Model(&recentUsers).Order("created_at DESC").Limit(5).Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list recent users: %w", err)
	}
	for _, u := range recentUsers {
		dashboard.RecentUsers = append(dashboard.RecentUsers, models.RecentUser{
			Name:  u.FirstName + " " + u.LastName,
			Email: u.Email,
		})
	}

	var recentEvents []*models.Event
	if err := s.db.NewSelect().Model(&recentEvents).Order("created_at DESC").Limit(5).Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list recent events: %w", err)
	}
	for _, e := range recentEvents {
		dashboard.RecentEvents = append(dashboard.RecentEvents, models.RecentEvent{
			Title: e.Title,
			Date:  e.StartTime,
		})
	}

	return dashboard, nil
}

func (s *MySQLStore) OrderReport(ctx context.Context, filter models.ReportFilter) ([]models.OrderReportRow, error) {
	query := `
	SELECT o.order_id, o.total_amount, o.status,
	       COALESCE(MIN(e.title), ''), MIN(CONCAT(u.first_name, ' ', u.last_name)), o.created_at
	FROM orders o
	JOIN users u ON u.id = o.attendee_id
	LEFT JOIN order_items oi ON oi.order_ref = o.id
	LEFT JOIN tickets t ON t.id = oi.ticket_id
	LEFT JOIN events e ON e.id = t.event_id
	WHERE 1=1`

	var args []interface{}
	if filter.StartDate != nil {
		query += " AND o.created_at >= ?"
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		query += " AND o.created_at <= ?"
		args = append(args, *filter.EndDate)
	}
	if filter.EventName != "" {
		query += " AND e.title LIKE ?"
		args = append(args, "%"+filter.EventName+"%")
	}
	query += " GROUP BY o.id ORDER BY o.created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query order report: %w", err)
	}
	defer rows.Close()

	report := []models.OrderReportRow{}
	for rows.Next() {
		var row models.OrderReportRow
		var amount string
		if err := rows.Scan(&row.OrderID, &amount, &row.Status, &row.Event, &row.Attendee, &row.Date); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		if row.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("failed to parse amount: %w", err)
		}
		report = append(report, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("report row iteration error: %w", err)
	}

	return report, nil
}

func (s *MySQLStore) OrganizerOverview(ctx context.Context, organizerID int64) (*models.OrganizerOverview, error) {
	overview := &models.OrganizerOverview{TotalRevenue: decimal.Zero}

	revenue, err := s.scanDecimal(ctx, `
		SELECT COALESCE(SUM(t.price * oi.quantity), 0)
		FROM order_items oi
		JOIN tickets t ON t.id = oi.ticket_id
		JOIN events e ON e.id = t.event_id
		WHERE e.organizer_id = ?`, organizerID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum organizer revenue: %w", err)
	}
	overview.TotalRevenue = revenue

	var sold sql.NullInt64
	if err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(t.sold), 0)
		FROM tickets t
		JOIN events e ON e.id = t.event_id
		WHERE e.organizer_id = ?`, organizerID).Scan(&sold); err != nil {
		return nil, fmt.Errorf("failed to sum organizer ticket sales: %w", err)
	}
	overview.TicketsSold = int(sold.Int64)

	now := time.Now()
	if overview.UpcomingEvents, err = s.db.NewSelect().Model((*models.Event)(nil)).
		Where("organizer_id = ?", organizerID).
		Where("start_time > ?", now).
		Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count upcoming events: %w", err)
	}
	if overview.PastEvents, err = s.db.NewSelect().Model((*models.Event)(nil)).
		Where("organizer_id = ?", organizerID).
		Where("start_time <= ?", now).
		Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count past events: %w", err)
	}

	return overview, nil
}

func (s *MySQLStore) OrganizerEventStats(ctx context.Context, organizerID int64) ([]models.EventStats, error) {
	events, err := s.ListEventsByOrganizer(ctx, organizerID)
	if err != nil {
		return nil, err
	}

	stats := []models.EventStats{}
	for _, event := range events {
		tickets, err := s.ListTicketsByEvent(ctx, event.ID)
		if err != nil {
			return nil, err
		}

		eventStats := models.EventStats{
			EventID:      event.ID,
			Title:        event.Title,
			Tickets:      []models.TicketStats{},
			TotalRevenue: decimal.Zero,
		}
		for _, t := range tickets {
			revenue := t.Price.Mul(decimal.NewFromInt(int64(t.Sold)))
			eventStats.Tickets = append(eventStats.Tickets, models.TicketStats{
				Type:    t.Type,
				Price:   t.Price,
				Sold:    t.Sold,
				Revenue: revenue,
			})
			eventStats.TotalRevenue = eventStats.TotalRevenue.Add(revenue)
		}
		stats = append(stats, eventStats)
	}

	return stats, nil
}

func (s *MySQLStore) HealthCheck() error {
	return s.db.Ping()
}

func (s *MySQLStore) Close() error {
	s.log.LogDatabase("CLOSE", "mysql", "Closing MySQL connection")
	return s.db.Close()
}
