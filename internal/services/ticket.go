package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ticksy/internal/logger"
	"ticksy/internal/models"
	"ticksy/internal/storage"
)

var ErrQuantityBelowSold = errors.New("quantity cannot be reduced below tickets already sold")

type TicketService struct {
	store storage.Store
	log   *logger.Logger
}

func NewTicketService(store storage.Store, log *logger.Logger) *TicketService {
	return &TicketService{
		store: store,
		log:   log,
	}
}

func (s *TicketService) CreateTicket(ctx context.Context, organizerID, eventID int64, req *models.CreateTicketRequest) (*models.Ticket, error) {
	event, err := s.store.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.OrganizerID != organizerID {
		return nil, ErrNotOwner
	}

	ticket := &models.Ticket{
		EventID:   eventID,
		Type:      req.Type,
		Price:     req.Price,
		Quantity:  req.Quantity,
		Sold:      0,
		CreatedAt: time.Now(),
	}

	if err := s.store.CreateTicket(ctx, ticket); err != nil {
		return nil, err
	}

	s.log.LogProcess("TICKET_CREATE", fmt.Sprintf("Event %d: ticket %d (%s x%d)", eventID, ticket.ID, ticket.Type, ticket.Quantity))
	return ticket, nil
}

func (s *TicketService) ListTickets(ctx context.Context, eventID int64) ([]*models.Ticket, error) {
	if _, err := s.store.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}
	return s.store.ListTicketsByEvent(ctx, eventID)
}

func (s *TicketService) UpdateTicket(ctx context.Context, organizerID, ticketID int64, req *models.UpdateTicketRequest) (*models.Ticket, error) {
	ticket, err := s.ownedTicket(ctx, organizerID, ticketID)
	if err != nil {
		return nil, err
	}

	if req.Type != nil {
		ticket.Type = *req.Type
	}
	if req.Price != nil {
		ticket.Price = *req.Price
	}
	if req.Quantity != nil {
		// sold never exceeds quantity; shrinking capacity below what is
		// already sold would break that.
		if *req.Quantity < ticket.Sold {
			return nil, ErrQuantityBelowSold
		}
		ticket.Quantity = *req.Quantity
	}

	if err := s.store.UpdateTicket(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (s *TicketService) DeleteTicket(ctx context.Context, organizerID, ticketID int64) error {
	if _, err := s.ownedTicket(ctx, organizerID, ticketID); err != nil {
		return err
	}
	return s.store.DeleteTicket(ctx, ticketID)
}

// ownedTicket resolves ownership through ticket -> event -> organizer.
func (s *TicketService) ownedTicket(ctx context.Context, organizerID, ticketID int64) (*models.Ticket, error) {
	ticket, err := s.store.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	event, err := s.store.GetEvent(ctx, ticket.EventID)
	if err != nil {
		return nil, err
	}
	if event.OrganizerID != organizerID {
		return nil, ErrNotOwner
	}
	return ticket, nil
}
