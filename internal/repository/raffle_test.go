package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafflehub/raffle-api/internal/domain"
	"github.com/rafflehub/raffle-api/internal/pkg/apperrors"
	"github.com/rafflehub/raffle-api/internal/pkg/retry"
	"github.com/rafflehub/raffle-api/internal/repository/dao"
)

type stubRaffleDAO struct {
	transientFailures int
	calls             int

	findAllResult     []dao.Raffle
	findWinnersResult []dao.RaffleWinner
	findByIDResult    dao.Raffle
	findByIDErr       error
	insertedRaffle    dao.Raffle
	lastUpdateID      uint
	lastUpdateValues  map[string]interface{}
}

func (s *stubRaffleDAO) failTransiently() error {
	s.calls++
	if s.calls <= s.transientFailures {
		return apperrors.New(apperrors.KindTransient, "connection reset")
	}
	return nil
}

func (s *stubRaffleDAO) FindAll(ctx context.Context) ([]dao.Raffle, error) {
	if err := s.failTransiently(); err != nil {
		return nil, err
	}
	return s.findAllResult, nil
}

func (s *stubRaffleDAO) FindByID(ctx context.Context, id uint) (dao.Raffle, error) {
	if err := s.failTransiently(); err != nil {
		return dao.Raffle{}, err
	}
	if s.findByIDErr != nil {
		return dao.Raffle{}, s.findByIDErr
	}
	return s.findByIDResult, nil
}

func (s *stubRaffleDAO) FindOngoing(ctx context.Context, now time.Time) ([]dao.Raffle, error) {
	if err := s.failTransiently(); err != nil {
		return nil, err
	}
	return s.findAllResult, nil
}

func (s *stubRaffleDAO) FindInactive(ctx context.Context, now time.Time) ([]dao.Raffle, error) {
	if err := s.failTransiently(); err != nil {
		return nil, err
	}
	return s.findAllResult, nil
}

func (s *stubRaffleDAO) FindWinners(ctx context.Context) ([]dao.RaffleWinner, error) {
	if err := s.failTransiently(); err != nil {
		return nil, err
	}
	return s.findWinnersResult, nil
}

func (s *stubRaffleDAO) Insert(ctx context.Context, raffle dao.Raffle) (dao.Raffle, error) {
	if err := s.failTransiently(); err != nil {
		return dao.Raffle{}, err
	}
	raffle.ID = 1
	s.insertedRaffle = raffle
	return raffle, nil
}

func (s *stubRaffleDAO) Update(ctx context.Context, id uint, values map[string]interface{}) error {
	if err := s.failTransiently(); err != nil {
		return err
	}
	s.lastUpdateID = id
	s.lastUpdateValues = values
	return nil
}

func newTestRepo(stub *stubRaffleDAO) *RaffleRepository {
	repo := NewRaffleRepository(stub)
	repo.policy = retry.Policy{
		MaxRetries: retry.DefaultMaxRetries,
		Delay:      time.Millisecond,
		Retryable:  apperrors.IsTransient,
	}
	return repo
}

func TestFindAll_MasksTransientFailures(t *testing.T) {
	stub := &stubRaffleDAO{
		transientFailures: 2,
		findAllResult:     []dao.Raffle{{ID: 1, Title: "Win a Bike"}},
	}
	repo := newTestRepo(stub)

	raffles, err := repo.FindAll(context.Background())

	require.NoError(t, err)
	require.Len(t, raffles, 1)
	assert.Equal(t, "Win a Bike", raffles[0].Title)
	assert.Equal(t, 3, stub.calls)
}

func TestFindAll_GivesUpAfterRetryBudget(t *testing.T) {
	stub := &stubRaffleDAO{transientFailures: 10}
	repo := newTestRepo(stub)

	_, err := repo.FindAll(context.Background())

	require.Error(t, err)
	assert.Equal(t, retry.DefaultMaxRetries+1, stub.calls)
}

func TestFindByID_NotFoundIsNotRetried(t *testing.T) {
	stub := &stubRaffleDAO{findByIDErr: dao.ErrRaffleNotFound}
	repo := newTestRepo(stub)

	_, err := repo.FindByID(context.Background(), 42)

	assert.ErrorIs(t, err, ErrRaffleNotFound)
	assert.Equal(t, 1, stub.calls)
}

func TestFindWinners_MapsJoinedRows(t *testing.T) {
	endDate := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	stub := &stubRaffleDAO{
		transientFailures: 1,
		findWinnersResult: []dao.RaffleWinner{
			{
				RaffleID:         3,
				Title:            "Spring Concert Tickets",
				PrizeDescription: "Concert tickets for two",
				WinnerID:         42,
				WinnerEmail:      "alice@example.com",
				EndDate:          endDate,
			},
		},
	}
	repo := newTestRepo(stub)

	winners, err := repo.FindWinners(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, stub.calls, "one transient failure then success")
	require.Len(t, winners, 1)
	assert.Equal(t, domain.RaffleWinner{
		RaffleID:         3,
		Title:            "Spring Concert Tickets",
		PrizeDescription: "Concert tickets for two",
		WinnerID:         42,
		WinnerEmail:      "alice@example.com",
		EndDate:          endDate,
	}, winners[0])
}

func TestCreate_StampsTimestamps(t *testing.T) {
	stub := &stubRaffleDAO{}
	repo := newTestRepo(stub)

	before := time.Now().UTC()
	created, err := repo.Create(context.Background(), domain.Raffle{
		Title:            "Win a Bike",
		PrizeDescription: "Mountain bike",
		TicketPrice:      2,
		TotalTickets:     100,
		AvailableTickets: 100,
		StartDate:        before,
		EndDate:          before.Add(time.Hour),
	})
	after := time.Now().UTC()

	require.NoError(t, err)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
	assert.False(t, created.CreatedAt.Before(before))
	assert.False(t, created.CreatedAt.After(after))
	assert.Equal(t, uint(1), created.ID)
}

func TestUpdate_BuildsPartialValuesAndStampsUpdatedAt(t *testing.T) {
	stub := &stubRaffleDAO{}
	repo := newTestRepo(stub)

	title := "Renamed"
	ended := domain.RaffleStatusEnded
	winner := uint(7)

	before := time.Now().UTC()
	err := repo.Update(context.Background(), 42, domain.RaffleChanges{
		Title:    &title,
		Status:   &ended,
		WinnerID: &winner,
	})

	require.NoError(t, err)
	assert.Equal(t, uint(42), stub.lastUpdateID)
	assert.Equal(t, "Renamed", stub.lastUpdateValues["title"])
	assert.Equal(t, "ended", stub.lastUpdateValues["status"])
	assert.Equal(t, uint(7), stub.lastUpdateValues["winner_id"])

	updatedAt, ok := stub.lastUpdateValues["updated_at"].(time.Time)
	require.True(t, ok, "updated_at must always be stamped")
	assert.False(t, updatedAt.Before(before))

	_, hasPrice := stub.lastUpdateValues["ticket_price"]
	assert.False(t, hasPrice, "untouched fields must not appear in the update")
}
