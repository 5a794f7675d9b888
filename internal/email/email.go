package email

import (
	"context"
	"fmt"

	"github.com/mkraev/aeroticket/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.TicketEvent) error {
	fmt.Printf("send email to %s about %s for flight %s ticket %d\n", event.Email, event.Type, event.FlightNumber, event.TicketID)
	return nil
}
