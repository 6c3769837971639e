package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rafflehub/raffle-api/internal/domain"
	"github.com/rafflehub/raffle-api/internal/pkg/apperrors"
	"github.com/rafflehub/raffle-api/internal/repository"
)

var (
	ErrRaffleNotFound = repository.ErrRaffleNotFound

	ErrEmptyTitle            = apperrors.New(apperrors.KindValidation, "title is required")
	ErrEmptyPrizeDescription = apperrors.New(apperrors.KindValidation, "prize description is required")
	ErrNonPositivePrice      = apperrors.New(apperrors.KindValidation, "ticket price must be greater than 0")
	ErrNonPositiveTickets    = apperrors.New(apperrors.KindValidation, "total tickets must be greater than 0")
	ErrEndBeforeStart        = apperrors.New(apperrors.KindValidation, "end date must be after start date")
	ErrInvalidStatus         = apperrors.New(apperrors.KindValidation, "invalid raffle status")
	ErrWinnerWithoutOutcome  = apperrors.New(apperrors.KindValidation, "a winner requires status drawn or ended")
	ErrNoChanges             = apperrors.New(apperrors.KindValidation, "no fields to update")
)

type RaffleRepository interface {
	FindAll(ctx context.Context) ([]domain.Raffle, error)
	FindByID(ctx context.Context, id uint) (domain.Raffle, error)
	FindOngoing(ctx context.Context, now time.Time) ([]domain.Raffle, error)
	FindInactive(ctx context.Context, now time.Time) ([]domain.Raffle, error)
	FindWinners(ctx context.Context) ([]domain.RaffleWinner, error)
	Create(ctx context.Context, raffle domain.Raffle) (domain.Raffle, error)
	Update(ctx context.Context, id uint, changes domain.RaffleChanges) error
}

type RaffleService struct {
	repo RaffleRepository
	now  func() time.Time
}

func NewRaffleService(repo RaffleRepository) *RaffleService {
	return &RaffleService{
		repo: repo,
		now:  time.Now,
	}
}

// ListRaffles returns every raffle, newest first.
func (s *RaffleService) ListRaffles(ctx context.Context) ([]domain.Raffle, error) {
	raffles, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return raffles, nil
}

func (s *RaffleService) GetRaffle(ctx context.Context, id uint) (domain.Raffle, error) {
	raffle, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Raffle{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return raffle, nil
}

// ListWinners returns the drawn raffles with their winners' emails,
// most recent draw first.
func (s *RaffleService) ListWinners(ctx context.Context) ([]domain.RaffleWinner, error) {
	winners, err := s.repo.FindWinners(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindWinners -> %w", err)
	}

	return winners, nil
}

// CreateRaffle validates the input before any write, then derives the
// initial status from the start date: already started means active,
// otherwise draft. Available tickets start equal to the total.
func (s *RaffleService) CreateRaffle(ctx context.Context, raffle domain.Raffle) (domain.Raffle, error) {
	if err := validateNewRaffle(raffle); err != nil {
		return domain.Raffle{}, err
	}

	if raffle.StartDate.After(s.now()) {
		raffle.Status = domain.RaffleStatusDraft
	} else {
		raffle.Status = domain.RaffleStatusActive
	}
	raffle.AvailableTickets = raffle.TotalTickets
	raffle.WinnerID = nil

	created, err := s.repo.Create(ctx, raffle)
	if err != nil {
		return domain.Raffle{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// UpdateRaffle applies a partial update after checking the result would
// not break the raffle's invariants. The current row is read first so
// date and winner checks see the merged state.
func (s *RaffleService) UpdateRaffle(ctx context.Context, id uint, changes domain.RaffleChanges) error {
	if changes.IsEmpty() {
		return ErrNoChanges
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err := validateChanges(current, changes); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, id, changes); err != nil {
		return fmt.Errorf("s.repo.Update -> %w", err)
	}

	return nil
}

// Stats aggregates the admin dashboard numbers. The two reads are
// independent, so a raffle changing status mid-flight can be counted in
// both or neither; the dashboard tolerates that.
func (s *RaffleService) Stats(ctx context.Context) (domain.RaffleStats, error) {
	now := s.now()

	ongoing, err := s.repo.FindOngoing(ctx, now)
	if err != nil {
		return domain.RaffleStats{}, fmt.Errorf("s.repo.FindOngoing -> %w", err)
	}

	inactive, err := s.repo.FindInactive(ctx, now)
	if err != nil {
		return domain.RaffleStats{}, fmt.Errorf("s.repo.FindInactive -> %w", err)
	}

	stats := domain.RaffleStats{
		Ongoing:  len(ongoing),
		Inactive: len(inactive),
	}
	for _, raffle := range ongoing {
		stats.TotalRevenue += raffle.Revenue()
	}
	for _, raffle := range inactive {
		stats.TotalRevenue += raffle.Revenue()
	}

	return stats, nil
}

func validateNewRaffle(raffle domain.Raffle) error {
	if raffle.Title == "" {
		return ErrEmptyTitle
	}
	if raffle.PrizeDescription == "" {
		return ErrEmptyPrizeDescription
	}
	if raffle.TicketPrice <= 0 {
		return ErrNonPositivePrice
	}
	if raffle.TotalTickets <= 0 {
		return ErrNonPositiveTickets
	}
	if !raffle.EndDate.After(raffle.StartDate) {
		return ErrEndBeforeStart
	}

	return nil
}

func validateChanges(current domain.Raffle, changes domain.RaffleChanges) error {
	if changes.Title != nil && *changes.Title == "" {
		return ErrEmptyTitle
	}
	if changes.PrizeDescription != nil && *changes.PrizeDescription == "" {
		return ErrEmptyPrizeDescription
	}
	if changes.TicketPrice != nil && *changes.TicketPrice <= 0 {
		return ErrNonPositivePrice
	}

	start := current.StartDate
	if changes.StartDate != nil {
		start = *changes.StartDate
	}
	end := current.EndDate
	if changes.EndDate != nil {
		end = *changes.EndDate
	}
	if !end.After(start) {
		return ErrEndBeforeStart
	}

	status := current.Status
	if changes.Status != nil {
		if !changes.Status.IsValid() {
			return ErrInvalidStatus
		}
		status = *changes.Status
	}

	winner := current.WinnerID
	if changes.WinnerID != nil {
		winner = changes.WinnerID
	}
	if winner != nil && status != domain.RaffleStatusDrawn && status != domain.RaffleStatusEnded {
		return ErrWinnerWithoutOutcome
	}

	return nil
}
