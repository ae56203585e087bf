package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type DashboardTotals struct {
	Users         int             `json:"users"`
	Revenue       decimal.Decimal `json:"revenue"`
	TicketSales   int             `json:"ticket_sales"`
	ActiveEvents  int             `json:"active_events"`
	PendingEvents int             `json:"pending_events"`
}

type RecentUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type RecentEvent struct {
	Title string    `json:"title"`
	Date  time.Time `json:"date"`
}

type AdminDashboard struct {
	Totals       DashboardTotals `json:"totals"`
	RecentUsers  []RecentUser    `json:"recent_users"`
	RecentEvents []RecentEvent   `json:"recent_events"`
}

// ReportFilter narrows the admin order report; zero values mean "no filter".
type ReportFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	EventName string
}

type OrderReportRow struct {
	OrderID  string          `json:"order_id"`
	Amount   decimal.Decimal `json:"amount"`
	Status   OrderStatus     `json:"status"`
	Event    string          `json:"event"`
	Attendee string          `json:"attendee"`
	Date     time.Time       `json:"date"`
}

type OrganizerOverview struct {
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	TicketsSold    int             `json:"tickets_sold"`
	UpcomingEvents int             `json:"upcoming_events"`
	PastEvents     int             `json:"past_events"`
}

type TicketStats struct {
	Type    string          `json:"type"`
	Price   decimal.Decimal `json:"price"`
	Sold    int             `json:"sold"`
	Revenue decimal.Decimal `json:"revenue"`
}

type EventStats struct {
	EventID      int64           `json:"event_id"`
	Title        string          `json:"title"`
	Tickets      []TicketStats   `json:"tickets"`
	TotalRevenue decimal.Decimal `json:"total_event_revenue"`
}
