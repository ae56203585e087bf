package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticksy/internal/models"
	"ticksy/internal/storage"
)

func createEventReq() *models.CreateEventRequest {
	return &models.CreateEventRequest{
		Title:       "Mombasa Food Fest",
		Description: "Street food",
		Location:    "Mombasa",
		StartTime:   time.Now().Add(72 * time.Hour),
		EndTime:     time.Now().Add(80 * time.Hour),
		Category:    "food",
	}
}

func TestCreateEventStartsPending(t *testing.T) {
	f := newFixture(t)
	svc := NewEventService(f.store, newTestLogger(t))

	event, err := svc.CreateEvent(context.Background(), f.organizer.ID, createEventReq())
	require.NoError(t, err)

	assert.False(t, event.IsApproved)
	assert.Equal(t, models.EventPending, event.Status)

	// Not in the public catalog until approved
	approved, err := svc.ListApprovedEvents(context.Background())
	require.NoError(t, err)
	for _, e := range approved {
		assert.NotEqual(t, event.ID, e.ID)
	}

	pending, err := svc.ListPendingEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, event.ID, pending[0].ID)
}

func TestApproveEvent(t *testing.T) {
	f := newFixture(t)
	svc := NewEventService(f.store, newTestLogger(t))
	ctx := context.Background()

	event, err := svc.CreateEvent(ctx, f.organizer.ID, createEventReq())
	require.NoError(t, err)

	approved, err := svc.ApproveEvent(ctx, event.ID, true)
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)
	assert.Equal(t, models.EventActive, approved.Status)

	// A later reject flips the decision, pending is never re-entered
	rejected, err := svc.ApproveEvent(ctx, event.ID, false)
	require.NoError(t, err)
	assert.False(t, rejected.IsApproved)
	assert.Equal(t, models.EventRejected, rejected.Status)
}

func TestUpdateEventOwnership(t *testing.T) {
	f := newFixture(t)
	svc := NewEventService(f.store, newTestLogger(t))
	ctx := context.Background()

	title := "Renamed"
	_, err := svc.UpdateEvent(ctx, f.attendee.ID, f.event.ID, &models.UpdateEventRequest{Title: &title})
	assert.ErrorIs(t, err, ErrNotOwner)

	updated, err := svc.UpdateEvent(ctx, f.organizer.ID, f.event.ID, &models.UpdateEventRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
}

func TestDeleteEventOwnership(t *testing.T) {
	f := newFixture(t)
	svc := NewEventService(f.store, newTestLogger(t))
	ctx := context.Background()

	err := svc.DeleteEvent(ctx, f.attendee.ID, f.event.ID)
	assert.ErrorIs(t, err, ErrNotOwner)

	require.NoError(t, svc.DeleteEvent(ctx, f.organizer.ID, f.event.ID))

	_, err = svc.GetEvent(ctx, f.event.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSaveAndUnsaveEvent(t *testing.T) {
	f := newFixture(t)
	svc := NewEventService(f.store, newTestLogger(t))
	ctx := context.Background()

	_, err := svc.SaveEvent(ctx, f.attendee.ID, f.event.ID)
	require.NoError(t, err)

	_, err = svc.SaveEvent(ctx, f.attendee.ID, f.event.ID)
	assert.ErrorIs(t, err, storage.ErrDuplicateSavedEvent)

	saved, err := svc.ListSavedEvents(ctx, f.attendee.ID)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	require.NotNil(t, saved[0].Event)
	assert.Equal(t, f.event.Title, saved[0].Event.Title)

	require.NoError(t, svc.UnsaveEvent(ctx, f.attendee.ID, f.event.ID))
	saved, err = svc.ListSavedEvents(ctx, f.attendee.ID)
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestSaveUnknownEvent(t *testing.T) {
	f := newFixture(t)
	svc := NewEventService(f.store, newTestLogger(t))

	_, err := svc.SaveEvent(context.Background(), f.attendee.ID, 999)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUpdateTicketQuantityNotBelowSold(t *testing.T) {
	f := newFixture(t)
	svc := NewTicketService(f.store, newTestLogger(t))
	ctx := context.Background()

	// 3 of 10 sold
	f.placePendingOrder(t, 3)

	shrunk := 1
	_, err := svc.UpdateTicket(ctx, f.organizer.ID, f.ticket.ID, &models.UpdateTicketRequest{Quantity: &shrunk})
	assert.ErrorIs(t, err, ErrQuantityBelowSold)

	// Rejection leaves the ticket untouched
	ticket, err := f.store.GetTicket(ctx, f.ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, ticket.Quantity)
	assert.LessOrEqual(t, ticket.Sold, ticket.Quantity)

	// Shrinking down to exactly the sold count is allowed
	exact := 3
	updated, err := svc.UpdateTicket(ctx, f.organizer.ID, f.ticket.ID, &models.UpdateTicketRequest{Quantity: &exact})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Quantity)
	assert.Equal(t, 0, updated.Remaining())
}

func TestTicketOwnershipViaEvent(t *testing.T) {
	f := newFixture(t)
	svc := NewTicketService(f.store, newTestLogger(t))
	ctx := context.Background()

	newQty := 20
	_, err := svc.UpdateTicket(ctx, f.attendee.ID, f.ticket.ID, &models.UpdateTicketRequest{Quantity: &newQty})
	assert.ErrorIs(t, err, ErrNotOwner)

	updated, err := svc.UpdateTicket(ctx, f.organizer.ID, f.ticket.ID, &models.UpdateTicketRequest{Quantity: &newQty})
	require.NoError(t, err)
	assert.Equal(t, 20, updated.Quantity)

	err = svc.DeleteTicket(ctx, f.attendee.ID, f.ticket.ID)
	assert.ErrorIs(t, err, ErrNotOwner)
	require.NoError(t, svc.DeleteTicket(ctx, f.organizer.ID, f.ticket.ID))
}
