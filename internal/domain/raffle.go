package domain

import "time"

type RaffleStatus string

const (
	RaffleStatusDraft    RaffleStatus = "draft"
	RaffleStatusActive   RaffleStatus = "active"
	RaffleStatusInactive RaffleStatus = "inactive"
	RaffleStatusEnded    RaffleStatus = "ended"
	RaffleStatusDrawn    RaffleStatus = "drawn"
)

func (s RaffleStatus) IsValid() bool {
	switch s {
	case RaffleStatusDraft, RaffleStatusActive, RaffleStatusInactive, RaffleStatusEnded, RaffleStatusDrawn:
		return true
	}

	return false
}

type Raffle struct {
	ID               uint         `json:"id"`
	Title            string       `json:"title"`
	Description      string       `json:"description"`
	PrizeDescription string       `json:"prize_description"`
	ImageURL         string       `json:"image_url"`
	TicketPrice      float64      `json:"ticket_price"`
	TotalTickets     int          `json:"total_tickets"`
	AvailableTickets int          `json:"available_tickets"`
	StartDate        time.Time    `json:"start_date"`
	EndDate          time.Time    `json:"end_date"`
	Status           RaffleStatus `json:"status"`
	WinnerID         *uint        `json:"winner_id,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

func (r *Raffle) TicketsSold() int {
	return r.TotalTickets - r.AvailableTickets
}

func (r *Raffle) Revenue() float64 {
	return r.TicketPrice * float64(r.TicketsSold())
}

// RaffleChanges carries a partial update. Nil fields are left untouched.
type RaffleChanges struct {
	Title            *string       `json:"title,omitempty"`
	Description      *string       `json:"description,omitempty"`
	PrizeDescription *string       `json:"prize_description,omitempty"`
	ImageURL         *string       `json:"image_url,omitempty"`
	TicketPrice      *float64      `json:"ticket_price,omitempty"`
	StartDate        *time.Time    `json:"start_date,omitempty"`
	EndDate          *time.Time    `json:"end_date,omitempty"`
	Status           *RaffleStatus `json:"status,omitempty"`
	WinnerID         *uint         `json:"winner_id,omitempty"`
}

func (c *RaffleChanges) IsEmpty() bool {
	return c.Title == nil &&
		c.Description == nil &&
		c.PrizeDescription == nil &&
		c.ImageURL == nil &&
		c.TicketPrice == nil &&
		c.StartDate == nil &&
		c.EndDate == nil &&
		c.Status == nil &&
		c.WinnerID == nil
}

// RaffleWinner is one entry on the public winners board: a drawn raffle
// joined with its winner's email. The email is empty when the winner's
// user row no longer exists.
type RaffleWinner struct {
	RaffleID         uint      `json:"raffle_id"`
	Title            string    `json:"title"`
	PrizeDescription string    `json:"prize_description"`
	WinnerID         uint      `json:"winner_id"`
	WinnerEmail      string    `json:"winner_email"`
	EndDate          time.Time `json:"end_date"`
}

// RaffleStats is the admin dashboard summary. The ongoing and inactive
// sets come from two independent reads, so the totals are eventually
// consistent with concurrent status changes.
type RaffleStats struct {
	Ongoing      int     `json:"ongoing"`
	Inactive     int     `json:"inactive"`
	TotalRevenue float64 `json:"total_revenue"`
}
