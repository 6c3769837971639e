package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rafflehub/raffle-api/internal/domain"
)

type TicketRepository interface {
	FindByUserID(ctx context.Context, userID uint) ([]domain.Ticket, error)
}

type TicketService struct {
	repo TicketRepository
	now  func() time.Time
}

func NewTicketService(repo TicketRepository) *TicketService {
	return &TicketService{
		repo: repo,
		now:  time.Now,
	}
}

// ListUserTickets returns the user's tickets with a status derived from
// the raffle's end date: still open means active, past means won. There
// are no recorded draw outcomes behind this; it is a display heuristic
// carried over from the dashboard, not an authoritative result.
func (s *TicketService) ListUserTickets(ctx context.Context, userID uint) ([]domain.Ticket, error) {
	tickets, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByUserID -> %w", err)
	}

	now := s.now()
	for i := range tickets {
		if tickets[i].DrawDate.After(now) {
			tickets[i].Status = domain.TicketStatusActive
			tickets[i].Prize = ""
		} else {
			tickets[i].Status = domain.TicketStatusWon
		}
	}

	return tickets, nil
}
