package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// RaffleTicket is a join row between a user and a raffle. The purchase
// flow that would decrement available_tickets lives outside this
// service; rows are read here and written only by seed tooling.
type RaffleTicket struct {
	ID uint `gorm:"primaryKey"`

	RaffleID uint   `gorm:"not null;index"`
	Raffle   Raffle `gorm:"foreignKey:RaffleID"`
	UserID   uint   `gorm:"not null;index"`
	Number   string `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
}

type TicketDAO struct {
	db *gorm.DB
}

func NewTicketDAO(db *gorm.DB) *TicketDAO {
	return &TicketDAO{
		db: db,
	}
}

func (d *TicketDAO) FindByUserID(ctx context.Context, userID uint) ([]RaffleTicket, error) {
	var tickets []RaffleTicket

	result := d.db.WithContext(ctx).
		Preload("Raffle").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&tickets)
	if result.Error != nil {
		return nil, result.Error
	}

	return tickets, nil
}

func (d *TicketDAO) Insert(ctx context.Context, ticket RaffleTicket) (RaffleTicket, error) {
	result := d.db.WithContext(ctx).Create(&ticket)
	if result.Error != nil {
		return RaffleTicket{}, result.Error
	}

	return ticket, nil
}
