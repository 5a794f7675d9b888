package booking

import (
	"context"
	"errors"
	"log"

	"github.com/mkraev/aeroticket/internal/domain"
	"github.com/mkraev/aeroticket/internal/kafka"
	"github.com/mkraev/aeroticket/internal/repository"
)

type BookingUseCase interface {
	Purchase(ctx context.Context, userID int64, flightNumber string) (*domain.Ticket, error)
	Cancel(ctx context.Context, userID, ticketID int64) (*domain.Ticket, error)
	CheckIn(ctx context.Context, userID, ticketID int64) (*domain.Ticket, int, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// UserDirectory resolves ticket owners so events can carry the contact
// email for the notification worker.
type UserDirectory interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type BookingService struct {
	tickets            repository.TicketRepository
	users              UserDirectory
	producer           Producer
	ticketTopic        string
	notificationsTopic string
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func NewBookingService(
	tickets repository.TicketRepository,
	users UserDirectory,
	producer Producer,
	ticketTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		tickets:     tickets,
		users:       users,
		producer:    producer,
		ticketTopic: ticketTopic,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) Purchase(ctx context.Context, userID int64, flightNumber string) (*domain.Ticket, error) {
	if flightNumber == "" {
		return nil, errors.New("flight number is required")
	}

	ticket, err := s.tickets.Purchase(ctx, userID, flightNumber)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, "ticket_purchased", ticket, 0)
	return ticket, nil
}

func (s *BookingService) Cancel(ctx context.Context, userID, ticketID int64) (*domain.Ticket, error) {
	ticket, err := s.tickets.Cancel(ctx, ticketID, userID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, "ticket_cancelled", ticket, 0)
	return ticket, nil
}

func (s *BookingService) CheckIn(ctx context.Context, userID, ticketID int64) (*domain.Ticket, int, error) {
	ticket, seatNumber, err := s.tickets.CheckIn(ctx, ticketID, userID)
	if err != nil {
		return nil, 0, err
	}

	s.publish(ctx, "ticket_checked_in", ticket, seatNumber)
	return ticket, seatNumber, nil
}

// publish emits the event to the ticket topic and, when configured, to the
// notifications topic. Failures are logged and never fail the request.
func (s *BookingService) publish(ctx context.Context, eventType string, ticket *domain.Ticket, seatNumber int) {
	if s.producer == nil || s.ticketTopic == "" {
		return
	}

	event := kafka.TicketEvent{
		Type:         eventType,
		TicketID:     ticket.ID,
		UserID:       ticket.UserID,
		FlightNumber: ticket.FlightNumber,
		Destination:  ticket.Destination,
		Status:       string(ticket.Status),
		SeatNumber:   seatNumber,
		Timestamp:    ticket.UpdatedAt,
	}
	if s.users != nil {
		if owner, err := s.users.GetByID(ctx, ticket.UserID); err == nil {
			event.Email = owner.Email
		}
	}

	key := ticket.FlightNumber
	if err := s.producer.Publish(ctx, s.ticketTopic, key, event); err != nil {
		log.Printf("WARNING: failed to publish %s event for ticket %d: %v", eventType, ticket.ID, err)
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, key, event); err != nil {
			log.Printf("WARNING: failed to publish %s notification for ticket %d: %v", eventType, ticket.ID, err)
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)
