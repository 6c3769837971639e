package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrRaffleNotFound = errors.New("raffle not found")

type Raffle struct {
	ID uint `gorm:"primaryKey"`

	Title            string `gorm:"not null"`
	Description      string
	PrizeDescription string `gorm:"not null"`
	ImageURL         string
	TicketPrice      float64 `gorm:"not null"`
	TotalTickets     int     `gorm:"not null"`
	AvailableTickets int     `gorm:"not null"`

	StartDate time.Time `gorm:"not null"`
	EndDate   time.Time `gorm:"not null"`
	Status    string    `gorm:"not null;index"`
	WinnerID  *uint

	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

// RaffleWinner is the scan target for the winners listing join.
type RaffleWinner struct {
	RaffleID         uint
	Title            string
	PrizeDescription string
	WinnerID         uint
	WinnerEmail      string
	EndDate          time.Time
}

type RaffleDAO struct {
	db *gorm.DB
}

func NewRaffleDAO(db *gorm.DB) *RaffleDAO {
	return &RaffleDAO{
		db: db,
	}
}

// FindAll returns every raffle, newest first. No status or date filter
// is applied; the public listing shows the full history.
func (d *RaffleDAO) FindAll(ctx context.Context) ([]Raffle, error) {
	var raffles []Raffle

	result := d.db.WithContext(ctx).Order("created_at DESC").Find(&raffles)
	if result.Error != nil {
		return nil, result.Error
	}

	return raffles, nil
}

func (d *RaffleDAO) FindByID(ctx context.Context, id uint) (Raffle, error) {
	var raffle Raffle

	result := d.db.WithContext(ctx).First(&raffle, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Raffle{}, ErrRaffleNotFound
		}

		return Raffle{}, result.Error
	}

	return raffle, nil
}

func (d *RaffleDAO) FindOngoing(ctx context.Context, now time.Time) ([]Raffle, error) {
	var raffles []Raffle

	result := d.db.WithContext(ctx).
		Where("status = ? AND end_date >= ?", "active", now).
		Find(&raffles)
	if result.Error != nil {
		return nil, result.Error
	}

	return raffles, nil
}

func (d *RaffleDAO) FindInactive(ctx context.Context, now time.Time) ([]Raffle, error) {
	var raffles []Raffle

	result := d.db.WithContext(ctx).
		Where("status = ? OR end_date < ?", "inactive", now).
		Find(&raffles)
	if result.Error != nil {
		return nil, result.Error
	}

	return raffles, nil
}

// FindWinners returns every raffle with a winner, newest draw first,
// joined with the winner's email. A left join keeps raffles whose
// winner row has been deleted.
func (d *RaffleDAO) FindWinners(ctx context.Context) ([]RaffleWinner, error) {
	var winners []RaffleWinner

	result := d.db.WithContext(ctx).
		Model(&Raffle{}).
		Select("raffles.id AS raffle_id, raffles.title, raffles.prize_description, raffles.winner_id, COALESCE(users.email, '') AS winner_email, raffles.end_date").
		Joins("LEFT JOIN users ON users.id = raffles.winner_id").
		Where("raffles.winner_id IS NOT NULL").
		Order("raffles.end_date DESC").
		Scan(&winners)
	if result.Error != nil {
		return nil, result.Error
	}

	return winners, nil
}

func (d *RaffleDAO) Insert(ctx context.Context, raffle Raffle) (Raffle, error) {
	result := d.db.WithContext(ctx).Create(&raffle)
	if result.Error != nil {
		return Raffle{}, result.Error
	}

	return raffle, nil
}

// Update applies a partial update. The values map uses column names so
// zero values (e.g. available_tickets = 0) still make it through.
func (d *RaffleDAO) Update(ctx context.Context, id uint, values map[string]interface{}) error {
	result := d.db.WithContext(ctx).
		Model(&Raffle{}).
		Where("id = ?", id).
		Updates(values)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrRaffleNotFound
	}

	return nil
}
