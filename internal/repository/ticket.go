package repository

import (
	"context"
	"fmt"

	"github.com/rafflehub/raffle-api/internal/domain"
	"github.com/rafflehub/raffle-api/internal/pkg/retry"
	"github.com/rafflehub/raffle-api/internal/repository/dao"
)

type TicketDAO interface {
	FindByUserID(ctx context.Context, userID uint) ([]dao.RaffleTicket, error)
}

type TicketRepository struct {
	dao    TicketDAO
	policy retry.Policy
}

func NewTicketRepository(dao TicketDAO) *TicketRepository {
	return &TicketRepository{
		dao:    dao,
		policy: retry.DefaultPolicy(),
	}
}

// FindByUserID returns the user's tickets joined with their raffles.
// Ticket status is left unset here; it is derived per request by the
// ticket service from the raffle's end date.
func (r *TicketRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.Ticket, error) {
	found, err := retry.Do(ctx, r.policy, "ticket.FindByUserID", func(ctx context.Context) ([]dao.RaffleTicket, error) {
		return r.dao.FindByUserID(ctx, userID)
	})
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByUserID -> %w", err)
	}

	tickets := make([]domain.Ticket, 0, len(found))
	for _, t := range found {
		tickets = append(tickets, domain.Ticket{
			ID:           t.ID,
			RaffleID:     t.RaffleID,
			RaffleTitle:  t.Raffle.Title,
			Number:       t.Number,
			PurchaseDate: t.CreatedAt,
			DrawDate:     t.Raffle.EndDate,
			Prize:        t.Raffle.PrizeDescription,
		})
	}

	return tickets, nil
}
