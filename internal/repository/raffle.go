package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/rafflehub/raffle-api/internal/domain"
	"github.com/rafflehub/raffle-api/internal/pkg/retry"
	"github.com/rafflehub/raffle-api/internal/repository/dao"
)

var ErrRaffleNotFound = dao.ErrRaffleNotFound

type RaffleDAO interface {
	FindAll(ctx context.Context) ([]dao.Raffle, error)
	FindByID(ctx context.Context, id uint) (dao.Raffle, error)
	FindOngoing(ctx context.Context, now time.Time) ([]dao.Raffle, error)
	FindInactive(ctx context.Context, now time.Time) ([]dao.Raffle, error)
	FindWinners(ctx context.Context) ([]dao.RaffleWinner, error)
	Insert(ctx context.Context, raffle dao.Raffle) (dao.Raffle, error)
	Update(ctx context.Context, id uint, values map[string]interface{}) error
}

// RaffleRepository maps store rows to domain raffles. Every store call
// goes through the retry policy, so transient connection failures are
// masked up to the policy's budget while not-found and constraint
// errors surface immediately.
type RaffleRepository struct {
	dao    RaffleDAO
	policy retry.Policy
}

func NewRaffleRepository(dao RaffleDAO) *RaffleRepository {
	return &RaffleRepository{
		dao:    dao,
		policy: retry.DefaultPolicy(),
	}
}

// FindAll returns all raffles ordered by creation time descending.
// There is deliberately no status filter; the listing page shows every
// raffle ever created.
func (r *RaffleRepository) FindAll(ctx context.Context) ([]domain.Raffle, error) {
	found, err := retry.Do(ctx, r.policy, "raffle.FindAll", func(ctx context.Context) ([]dao.Raffle, error) {
		return r.dao.FindAll(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return r.daoToDomainAll(found), nil
}

func (r *RaffleRepository) FindByID(ctx context.Context, id uint) (domain.Raffle, error) {
	found, err := retry.Do(ctx, r.policy, "raffle.FindByID", func(ctx context.Context) (dao.Raffle, error) {
		return r.dao.FindByID(ctx, id)
	})
	if err != nil {
		return domain.Raffle{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *RaffleRepository) FindOngoing(ctx context.Context, now time.Time) ([]domain.Raffle, error) {
	found, err := retry.Do(ctx, r.policy, "raffle.FindOngoing", func(ctx context.Context) ([]dao.Raffle, error) {
		return r.dao.FindOngoing(ctx, now)
	})
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindOngoing -> %w", err)
	}

	return r.daoToDomainAll(found), nil
}

func (r *RaffleRepository) FindInactive(ctx context.Context, now time.Time) ([]domain.Raffle, error) {
	found, err := retry.Do(ctx, r.policy, "raffle.FindInactive", func(ctx context.Context) ([]dao.Raffle, error) {
		return r.dao.FindInactive(ctx, now)
	})
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindInactive -> %w", err)
	}

	return r.daoToDomainAll(found), nil
}

// FindWinners returns the public winners board, newest draw first.
func (r *RaffleRepository) FindWinners(ctx context.Context) ([]domain.RaffleWinner, error) {
	found, err := retry.Do(ctx, r.policy, "raffle.FindWinners", func(ctx context.Context) ([]dao.RaffleWinner, error) {
		return r.dao.FindWinners(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindWinners -> %w", err)
	}

	winners := make([]domain.RaffleWinner, 0, len(found))
	for _, w := range found {
		winners = append(winners, domain.RaffleWinner{
			RaffleID:         w.RaffleID,
			Title:            w.Title,
			PrizeDescription: w.PrizeDescription,
			WinnerID:         w.WinnerID,
			WinnerEmail:      w.WinnerEmail,
			EndDate:          w.EndDate,
		})
	}

	return winners, nil
}

// Create stamps creation and update timestamps at call time and returns
// the inserted row. Each call inserts a new row; there is no
// deduplication key.
func (r *RaffleRepository) Create(ctx context.Context, raffle domain.Raffle) (domain.Raffle, error) {
	now := time.Now().UTC()

	toInsert := r.domainToDAO(raffle)
	toInsert.CreatedAt = now
	toInsert.UpdatedAt = now

	created, err := retry.Do(ctx, r.policy, "raffle.Insert", func(ctx context.Context) (dao.Raffle, error) {
		return r.dao.Insert(ctx, toInsert)
	})
	if err != nil {
		return domain.Raffle{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

// Update applies a partial update and stamps a fresh updated_at.
func (r *RaffleRepository) Update(ctx context.Context, id uint, changes domain.RaffleChanges) error {
	values := changesToValues(changes)
	values["updated_at"] = time.Now().UTC()

	_, err := retry.Do(ctx, r.policy, "raffle.Update", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, r.dao.Update(ctx, id, values)
	})
	if err != nil {
		return fmt.Errorf("r.dao.Update -> %w", err)
	}

	return nil
}

func changesToValues(changes domain.RaffleChanges) map[string]interface{} {
	values := map[string]interface{}{}

	if changes.Title != nil {
		values["title"] = *changes.Title
	}
	if changes.Description != nil {
		values["description"] = *changes.Description
	}
	if changes.PrizeDescription != nil {
		values["prize_description"] = *changes.PrizeDescription
	}
	if changes.ImageURL != nil {
		values["image_url"] = *changes.ImageURL
	}
	if changes.TicketPrice != nil {
		values["ticket_price"] = *changes.TicketPrice
	}
	if changes.StartDate != nil {
		values["start_date"] = *changes.StartDate
	}
	if changes.EndDate != nil {
		values["end_date"] = *changes.EndDate
	}
	if changes.Status != nil {
		values["status"] = string(*changes.Status)
	}
	if changes.WinnerID != nil {
		values["winner_id"] = *changes.WinnerID
	}

	return values
}

func (r *RaffleRepository) daoToDomain(raffle dao.Raffle) domain.Raffle {
	return domain.Raffle{
		ID:               raffle.ID,
		Title:            raffle.Title,
		Description:      raffle.Description,
		PrizeDescription: raffle.PrizeDescription,
		ImageURL:         raffle.ImageURL,
		TicketPrice:      raffle.TicketPrice,
		TotalTickets:     raffle.TotalTickets,
		AvailableTickets: raffle.AvailableTickets,
		StartDate:        raffle.StartDate,
		EndDate:          raffle.EndDate,
		Status:           domain.RaffleStatus(raffle.Status),
		WinnerID:         raffle.WinnerID,
		CreatedAt:        raffle.CreatedAt,
		UpdatedAt:        raffle.UpdatedAt,
	}
}

func (r *RaffleRepository) daoToDomainAll(raffles []dao.Raffle) []domain.Raffle {
	result := make([]domain.Raffle, 0, len(raffles))
	for _, raffle := range raffles {
		result = append(result, r.daoToDomain(raffle))
	}

	return result
}

func (r *RaffleRepository) domainToDAO(raffle domain.Raffle) dao.Raffle {
	return dao.Raffle{
		ID:               raffle.ID,
		Title:            raffle.Title,
		Description:      raffle.Description,
		PrizeDescription: raffle.PrizeDescription,
		ImageURL:         raffle.ImageURL,
		TicketPrice:      raffle.TicketPrice,
		TotalTickets:     raffle.TotalTickets,
		AvailableTickets: raffle.AvailableTickets,
		StartDate:        raffle.StartDate,
		EndDate:          raffle.EndDate,
		Status:           string(raffle.Status),
		WinnerID:         raffle.WinnerID,
		CreatedAt:        raffle.CreatedAt,
		UpdatedAt:        raffle.UpdatedAt,
	}
}
