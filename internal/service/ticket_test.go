package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafflehub/raffle-api/internal/domain"
)

type fakeTicketRepo struct {
	tickets []domain.Ticket
	err     error
}

func (f *fakeTicketRepo) FindByUserID(ctx context.Context, userID uint) ([]domain.Ticket, error) {
	return f.tickets, f.err
}

func TestListUserTickets_DerivesStatusFromDrawDate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	repo := &fakeTicketRepo{tickets: []domain.Ticket{
		{ID: 1, RaffleTitle: "Open Raffle", DrawDate: now.Add(time.Hour), Prize: "Bike"},
		{ID: 2, RaffleTitle: "Closed Raffle", DrawDate: now.Add(-time.Hour), Prize: "Hamper"},
	}}

	svc := NewTicketService(repo)
	svc.now = func() time.Time { return now }

	tickets, err := svc.ListUserTickets(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, tickets, 2)

	assert.Equal(t, domain.TicketStatusActive, tickets[0].Status)
	assert.Empty(t, tickets[0].Prize, "open raffles don't reveal a prize outcome")

	assert.Equal(t, domain.TicketStatusWon, tickets[1].Status)
	assert.Equal(t, "Hamper", tickets[1].Prize)
}

func TestListUserTickets_Empty(t *testing.T) {
	svc := NewTicketService(&fakeTicketRepo{})

	tickets, err := svc.ListUserTickets(context.Background(), 42)
	require.NoError(t, err)
	assert.Empty(t, tickets)
}
