package domain

import "time"

type TicketStatus string

const (
	TicketStatusActive TicketStatus = "active"
	TicketStatusWon    TicketStatus = "won"
	// TicketStatusLost completes the status vocabulary clients render.
	// The derived view never emits it; telling won from lost would need
	// recorded draw outcomes, which don't exist.
	TicketStatusLost TicketStatus = "lost"
)

// Ticket is the user dashboard's view of one raffle entry. Status is
// derived from the raffle's end date rather than from recorded draw
// outcomes; there is no authoritative won/lost record behind it.
type Ticket struct {
	ID           uint         `json:"id"`
	RaffleID     uint         `json:"raffle_id"`
	RaffleTitle  string       `json:"raffle_title"`
	Number       string       `json:"number"`
	Status       TicketStatus `json:"status"`
	PurchaseDate time.Time    `json:"purchase_date"`
	DrawDate     time.Time    `json:"draw_date"`
	Prize        string       `json:"prize,omitempty"`
}
