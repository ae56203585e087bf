package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"ticksy/internal/models"
)

// InMemoryStore keeps everything behind a single mutex, which gives
// PlaceOrder the same check-and-increment atomicity the MySQL store gets
// from row locks. Used by tests and mock-mode development.
type InMemoryStore struct {
	mu sync.RWMutex

	users       map[int64]*models.User
	events      map[int64]*models.Event
	tickets     map[int64]*models.Ticket
	orders      map[int64]*models.Order
	orderItems  map[int64]*models.OrderItem
	reviews     map[int64]*models.Review
	savedEvents map[int64]*models.SavedEvent
	auditLogs   []*models.AuditLog

	nextID map[string]int64
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		users:       make(map[int64]*models.User),
		events:      make(map[int64]*models.Event),
		tickets:     make(map[int64]*models.Ticket),
		orders:      make(map[int64]*models.Order),
		orderItems:  make(map[int64]*models.OrderItem),
		reviews:     make(map[int64]*models.Review),
		savedEvents: make(map[int64]*models.SavedEvent),
		nextID:      make(map[string]int64),
	}
}

func (s *InMemoryStore) nextIDFor(table string) int64 {
	s.nextID[table]++
	return s.nextID[table]
}

// ---------------- Users ----------------

func (s *InMemoryStore) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return ErrDuplicateEmail
		}
		if existing.Phone == user.Phone {
			return ErrDuplicatePhone
		}
	}

	user.ID = s.nextIDFor("users")
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	s.users[user.ID] = user
	return nil
}

func (s *InMemoryStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return user, nil
}

func (s *InMemoryStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, ErrNotFound
}

func (s *InMemoryStore) UpdateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return ErrNotFound
	}
	for _, existing := range s.users {
		if existing.ID == user.ID {
			continue
		}
		if existing.Email == user.Email {
			return ErrDuplicateEmail
		}
		if existing.Phone == user.Phone {
			return ErrDuplicatePhone
		}
	}
	s.users[user.ID] = user
	return nil
}

func (s *InMemoryStore) DeleteUser(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return ErrNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *InMemoryStore) ListUsers(ctx context.Context) ([]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*models.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
	return users, nil
}

// ---------------- Events ----------------

func (s *InMemoryStore) CreateEvent(ctx context.Context, event *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	event.ID = s.nextIDFor("events")
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	s.events[event.ID] = event
	return nil
}

func (s *InMemoryStore) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	event, ok := s.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	if organizer, ok := s.users[event.OrganizerID]; ok {
		event.Organizer = organizer
	}
	return event, nil
}

func (s *InMemoryStore) UpdateEvent(ctx context.Context, event *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[event.ID]; !ok {
		return ErrNotFound
	}
	s.events[event.ID] = event
	return nil
}

func (s *InMemoryStore) DeleteEvent(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[id]; !ok {
		return ErrNotFound
	}
	delete(s.events, id)
	return nil
}

func (s *InMemoryStore) listEvents(match func(*models.Event) bool) []*models.Event {
	events := []*models.Event{}
	for _, event := range s.events {
		if match(event) {
			events = append(events, event)
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].ID < events[j].ID })
	return events
}

func (s *InMemoryStore) ListApprovedEvents(ctx context.Context) ([]*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listEvents(func(e *models.Event) bool { return e.IsApproved }), nil
}

func (s *InMemoryStore) ListEventsByOrganizer(ctx context.Context, organizerID int64) ([]*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listEvents(func(e *models.Event) bool { return e.OrganizerID == organizerID }), nil
}

func (s *InMemoryStore) ListPendingEvents(ctx context.Context) ([]*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listEvents(func(e *models.Event) bool {
		return !e.IsApproved && e.Status == models.EventPending
	}), nil
}

// ---------------- Tickets ----------------

func (s *InMemoryStore) CreateTicket(ctx context.Context, ticket *models.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket.ID = s.nextIDFor("tickets")
	if ticket.CreatedAt.IsZero() {
		ticket.CreatedAt = time.Now()
	}
	s.tickets[ticket.ID] = ticket
	return nil
}

func (s *InMemoryStore) GetTicket(ctx context.Context, id int64) (*models.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ticket, ok := s.tickets[id]
	if !ok {
		return nil, ErrNotFound
	}
	if event, ok := s.events[ticket.EventID]; ok {
		ticket.Event = event
	}
	return ticket, nil
}

func (s *InMemoryStore) UpdateTicket(ctx context.Context, ticket *models.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.tickets[ticket.ID]
	if !ok {
		return ErrNotFound
	}
	existing.Type = ticket.Type
	existing.Price = ticket.Price
	existing.Quantity = ticket.Quantity
	return nil
}

func (s *InMemoryStore) DeleteTicket(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tickets[id]; !ok {
		return ErrNotFound
	}
	delete(s.tickets, id)
	return nil
}

func (s *InMemoryStore) ListTicketsByEvent(ctx context.Context, eventID int64) ([]*models.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tickets := []*models.Ticket{}
	for _, ticket := range s.tickets {
		if ticket.EventID == eventID {
			tickets = append(tickets, ticket)
		}
	}
	sort.Slice(tickets, func(i, j int) bool { return tickets[i].ID < tickets[j].ID })
	return tickets, nil
}

// ---------------- Orders ----------------

func (s *InMemoryStore) PlaceOrder(ctx context.Context, attendeeID int64, orderID string, ticketID int64, quantity int) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.orders {
		if existing.OrderID == orderID {
			return nil, ErrDuplicateOrder
		}
	}

	ticket, ok := s.tickets[ticketID]
	if !ok {
		return nil, ErrNotFound
	}
	if quantity > ticket.Quantity-ticket.Sold {
		return nil, ErrInsufficientInventory
	}

	ticket.Sold += quantity

	order := &models.Order{
		ID:          s.nextIDFor("orders"),
		OrderID:     orderID,
		AttendeeID:  attendeeID,
		Status:      models.OrderPending,
		TotalAmount: ticket.Price.Mul(decimal.NewFromInt(int64(quantity))),
		CreatedAt:   time.Now(),
	}
	item := &models.OrderItem{
		ID:       s.nextIDFor("order_items"),
		OrderRef: order.ID,
		TicketID: ticketID,
		Quantity: quantity,
		Ticket:   ticket,
	}
	order.Items = []*models.OrderItem{item}

	s.orders[order.ID] = order
	s.orderItems[item.ID] = item
	return order, nil
}

func (s *InMemoryStore) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return order, nil
}

func (s *InMemoryStore) GetOrderByExternalID(ctx context.Context, orderID string) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, order := range s.orders {
		if order.OrderID == orderID {
			return order, nil
		}
	}
	return nil, ErrNotFound
}

func (s *InMemoryStore) ListOrdersByAttendee(ctx context.Context, attendeeID int64) ([]*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := []*models.Order{}
	for _, order := range s.orders {
		if order.AttendeeID == attendeeID {
			orders = append(orders, order)
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })
	return orders, nil
}

func (s *InMemoryStore) SettleOrder(ctx context.Context, orderID string, receipt string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, order := range s.orders {
		if order.OrderID != orderID {
			continue
		}
		switch order.Status {
		case models.OrderPaid:
			return order, nil
		case models.OrderFailed:
			return nil, ErrOrderNotPending
		}
		order.Status = models.OrderPaid
		order.MpesaReceipt = receipt
		return order, nil
	}
	return nil, ErrNotFound
}

func (s *InMemoryStore) FailOrder(ctx context.Context, orderID string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, order := range s.orders {
		if order.OrderID != orderID {
			continue
		}
		if order.Status != models.OrderPending {
			return nil, ErrOrderNotPending
		}
		order.Status = models.OrderFailed
		return order, nil
	}
	return nil, ErrNotFound
}

// ---------------- Reviews ----------------

func (s *InMemoryStore) CreateReview(ctx context.Context, review *models.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.reviews {
		if existing.AttendeeID == review.AttendeeID && existing.EventID == review.EventID {
			return ErrDuplicateReview
		}
	}

	review.ID = s.nextIDFor("reviews")
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}
	s.reviews[review.ID] = review
	return nil
}

func (s *InMemoryStore) ListReviewsByEvent(ctx context.Context, eventID int64) ([]*models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reviews := []*models.Review{}
	for _, review := range s.reviews {
		if review.EventID == eventID {
			if attendee, ok := s.users[review.AttendeeID]; ok {
				review.Attendee = attendee
			}
			reviews = append(reviews, review)
		}
	}
	sort.Slice(reviews, func(i, j int) bool { return reviews[i].ID < reviews[j].ID })
	return reviews, nil
}

// ---------------- Saved events ----------------

func (s *InMemoryStore) SaveEvent(ctx context.Context, userID, eventID int64) (*models.SavedEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.savedEvents {
		if existing.UserID == userID && existing.EventID == eventID {
			return nil, ErrDuplicateSavedEvent
		}
	}

	saved := &models.SavedEvent{
		ID:      s.nextIDFor("saved_events"),
		UserID:  userID,
		EventID: eventID,
		SavedAt: time.Now(),
	}
	s.savedEvents[saved.ID] = saved
	return saved, nil
}

func (s *InMemoryStore) UnsaveEvent(ctx context.Context, userID, eventID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, existing := range s.savedEvents {
		if existing.UserID == userID && existing.EventID == eventID {
			delete(s.savedEvents, id)
			return nil
		}
	}
	return ErrNotFound
}

func (s *InMemoryStore) ListSavedEvents(ctx context.Context, userID int64) ([]*models.SavedEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	saved := []*models.SavedEvent{}
	for _, entry := range s.savedEvents {
		if entry.UserID == userID {
			if event, ok := s.events[entry.EventID]; ok {
				entry.Event = event
			}
			saved = append(saved, entry)
		}
	}
	sort.Slice(saved, func(i, j int) bool { return saved[i].ID < saved[j].ID })
	return saved, nil
}

// ---------------- Audit log ----------------

func (s *InMemoryStore) SaveAuditLog(ctx context.Context, entry *models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = s.nextIDFor("audit_logs")
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	s.auditLogs = append(s.auditLogs, entry)
	return nil
}

func (s *InMemoryStore) ListAuditLogs(ctx context.Context, limit int) ([]*models.AuditLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]*models.AuditLog, len(s.auditLogs))
	copy(entries, s.auditLogs)
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID > entries[j].ID })
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// ---------------- Reporting ----------------

func (s *InMemoryStore) AdminDashboard(ctx context.Context) (*models.AdminDashboard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dashboard := &models.AdminDashboard{
		Totals:       models.DashboardTotals{Revenue: decimal.Zero},
		RecentUsers:  []models.RecentUser{},
		RecentEvents: []models.RecentEvent{},
	}

	dashboard.Totals.Users = len(s.users)
	for _, order := range s.orders {
		dashboard.Totals.Revenue = dashboard.Totals.Revenue.Add(order.TotalAmount)
	}
	for _, ticket := range s.tickets {
		dashboard.Totals.TicketSales += ticket.Sold
	}
	for _, event := range s.events {
		switch event.Status {
		case models.EventActive:
			dashboard.Totals.ActiveEvents++
		case models.EventPending:
			dashboard.Totals.PendingEvents++
		}
	}

	users := make([]*models.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID > users[j].ID })
	for i, user := range users {
		if i == 5 {
			break
		}
		dashboard.RecentUsers = append(dashboard.RecentUsers, models.RecentUser{
			Name:  user.FirstName + " " + user.LastName,
			Email: user.Email,
		})
	}

	events := make([]*models.Event, 0, len(s.events))
	for _, event := range s.events {
		events = append(events, event)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].ID > events[j].ID })
	for i, event := range events {
		if i == 5 {
			break
		}
		dashboard.RecentEvents = append(dashboard.RecentEvents, models.RecentEvent{
			Title: event.Title,
			Date:  event.StartTime,
		})
	}

	return dashboard, nil
}

func (s *InMemoryStore) OrderReport(ctx context.Context, filter models.ReportFilter) ([]models.OrderReportRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	report := []models.OrderReportRow{}
	for _, order := range s.orders {
		if filter.StartDate != nil && order.CreatedAt.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && order.CreatedAt.After(*filter.EndDate) {
			continue
		}

		eventTitle := ""
		for _, item := range s.orderItems {
			if item.OrderRef != order.ID {
				continue
			}
			if ticket, ok := s.tickets[item.TicketID]; ok {
				if event, ok := s.events[ticket.EventID]; ok {
					eventTitle = event.Title
				}
			}
			break
		}
		if filter.EventName != "" && !strings.Contains(strings.ToLower(eventTitle), strings.ToLower(filter.EventName)) {
			continue
		}

		attendee := ""
		if user, ok := s.users[order.AttendeeID]; ok {
			attendee = user.FirstName + " " + user.LastName
		}

		report = append(report, models.OrderReportRow{
			OrderID:  order.OrderID,
			Amount:   order.TotalAmount,
			Status:   order.Status,
			Event:    eventTitle,
			Attendee: attendee,
			Date:     order.CreatedAt,
		})
	}

	sort.Slice(report, func(i, j int) bool { return report[i].Date.After(report[j].Date) })
	return report, nil
}

func (s *InMemoryStore) OrganizerOverview(ctx context.Context, organizerID int64) (*models.OrganizerOverview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	overview := &models.OrganizerOverview{TotalRevenue: decimal.Zero}
	now := time.Now()

	for _, event := range s.events {
		if event.OrganizerID != organizerID {
			continue
		}
		if event.StartTime.After(now) {
			overview.UpcomingEvents++
		} else {
			overview.PastEvents++
		}
		for _, ticket := range s.tickets {
			if ticket.EventID != event.ID {
				continue
			}
			overview.TicketsSold += ticket.Sold
			for _, item := range s.orderItems {
				if item.TicketID == ticket.ID {
					overview.TotalRevenue = overview.TotalRevenue.Add(
						ticket.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
				}
			}
		}
	}

	return overview, nil
}

func (s *InMemoryStore) OrganizerEventStats(ctx context.Context, organizerID int64) ([]models.EventStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := []models.EventStats{}
	events := s.listEvents(func(e *models.Event) bool { return e.OrganizerID == organizerID })
	for _, event := range events {
		eventStats := models.EventStats{
			EventID:      event.ID,
			Title:        event.Title,
			Tickets:      []models.TicketStats{},
			TotalRevenue: decimal.Zero,
		}
		for _, ticket := range s.tickets {
			if ticket.EventID != event.ID {
				continue
			}
			revenue := ticket.Price.Mul(decimal.NewFromInt(int64(ticket.Sold)))
			eventStats.Tickets = append(eventStats.Tickets, models.TicketStats{
				Type:    ticket.Type,
				Price:   ticket.Price,
				Sold:    ticket.Sold,
				Revenue: revenue,
			})
			eventStats.TotalRevenue = eventStats.TotalRevenue.Add(revenue)
		}
		stats = append(stats, eventStats)
	}

	return stats, nil
}

func (s *InMemoryStore) HealthCheck() error { return nil }
func (s *InMemoryStore) Close() error       { return nil }
