package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"ticksy/internal/kafka"
	"ticksy/internal/logger"
	"ticksy/internal/models"
	"ticksy/internal/storage"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	t.Setenv("LOG_DIR", t.TempDir())
	log := logger.NewLogger()
	t.Cleanup(log.Close)
	return log
}

func newMockProducer(t *testing.T) *kafka.Producer {
	t.Helper()
	producer, err := kafka.NewProducer(nil, true, newTestLogger(t))
	require.NoError(t, err)
	return producer
}

type fixture struct {
	store     *storage.InMemoryStore
	organizer *models.User
	attendee  *models.User
	event     *models.Event
	ticket    *models.Ticket
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := storage.NewInMemoryStore()

	organizer := &models.User{
		FirstName: "Olivia",
		LastName:  "Wanjiru",
		Email:     "organizer@example.com",
		Phone:     "254700000001",
		Role:      models.RoleOrganizer,
		Status:    models.UserActive,
	}
	require.NoError(t, store.CreateUser(ctx, organizer))

	attendee := &models.User{
		FirstName: "Brian",
		LastName:  "Otieno",
		Email:     "attendee@example.com",
		Phone:     "254700000002",
		Role:      models.RoleAttendee,
		Status:    models.UserActive,
	}
	require.NoError(t, store.CreateUser(ctx, attendee))

	event := &models.Event{
		Title:       "Nairobi Jazz Night",
		Description: "Live jazz",
		Location:    "Nairobi",
		StartTime:   time.Now().Add(48 * time.Hour),
		EndTime:     time.Now().Add(52 * time.Hour),
		Category:    "music",
		IsApproved:  true,
		Status:      models.EventActive,
		OrganizerID: organizer.ID,
	}
	require.NoError(t, store.CreateEvent(ctx, event))

	ticket := &models.Ticket{
		EventID:  event.ID,
		Type:     "Regular",
		Price:    decimal.NewFromInt(2000),
		Quantity: 10,
	}
	require.NoError(t, store.CreateTicket(ctx, ticket))

	return &fixture{
		store:     store,
		organizer: organizer,
		attendee:  attendee,
		event:     event,
		ticket:    ticket,
	}
}

// placePendingOrder puts a pending order in the store and returns it.
func (f *fixture) placePendingOrder(t *testing.T, quantity int) *models.Order {
	t.Helper()
	order, err := f.store.PlaceOrder(context.Background(), f.attendee.ID, "test-order", f.ticket.ID, quantity)
	require.NoError(t, err)
	return order
}
