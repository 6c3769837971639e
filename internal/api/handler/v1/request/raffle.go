package request

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/rafflehub/raffle-api/internal/domain"
)

var (
	errNonPositivePrice   = errors.New("ticket price must be greater than 0")
	errNonPositiveTickets = errors.New("total tickets must be greater than 0")
	errEndBeforeStart     = errors.New("end date must be after start date")
	errEmptyUpdate        = errors.New("at least one field must be provided")
)

type CreateRaffleRequest struct {
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	PrizeDescription string    `json:"prize_description"`
	ImageURL         string    `json:"image_url"`
	TicketPrice      float64   `json:"ticket_price"`
	TotalTickets     int       `json:"total_tickets"`
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
}

func (req *CreateRaffleRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 120)),
		validation.Field(&req.Description, validation.Length(0, 2000)),
		validation.Field(&req.PrizeDescription, validation.Required, validation.Length(1, 500)),
		validation.Field(&req.ImageURL, is.URL),
		validation.Field(&req.StartDate, validation.Required),
		validation.Field(&req.EndDate, validation.Required),
	)
	if err != nil {
		return err
	}

	if req.TicketPrice <= 0 {
		return errNonPositivePrice
	}
	if req.TotalTickets <= 0 {
		return errNonPositiveTickets
	}
	if !req.EndDate.After(req.StartDate) {
		return errEndBeforeStart
	}

	return nil
}

func (req *CreateRaffleRequest) ToDomain() domain.Raffle {
	return domain.Raffle{
		Title:            req.Title,
		Description:      req.Description,
		PrizeDescription: req.PrizeDescription,
		ImageURL:         req.ImageURL,
		TicketPrice:      req.TicketPrice,
		TotalTickets:     req.TotalTickets,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
	}
}

type UpdateRaffleRequest struct {
	Title            *string    `json:"title,omitempty"`
	Description      *string    `json:"description,omitempty"`
	PrizeDescription *string    `json:"prize_description,omitempty"`
	ImageURL         *string    `json:"image_url,omitempty"`
	TicketPrice      *float64   `json:"ticket_price,omitempty"`
	StartDate        *time.Time `json:"start_date,omitempty"`
	EndDate          *time.Time `json:"end_date,omitempty"`
	Status           *string    `json:"status,omitempty"`
	WinnerID         *uint      `json:"winner_id,omitempty"`
}

func (req *UpdateRaffleRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Length(1, 120)),
		validation.Field(&req.Description, validation.Length(0, 2000)),
		validation.Field(&req.PrizeDescription, validation.Length(1, 500)),
		validation.Field(&req.ImageURL, is.URL),
		validation.Field(&req.Status, validation.In("draft", "active", "inactive", "ended", "drawn")),
	)
	if err != nil {
		return err
	}

	if req.TicketPrice != nil && *req.TicketPrice <= 0 {
		return errNonPositivePrice
	}
	if req.StartDate != nil && req.EndDate != nil && !req.EndDate.After(*req.StartDate) {
		return errEndBeforeStart
	}

	changes := req.ToChanges()
	if changes.IsEmpty() {
		return errEmptyUpdate
	}

	return nil
}

func (req *UpdateRaffleRequest) ToChanges() domain.RaffleChanges {
	changes := domain.RaffleChanges{
		Title:            req.Title,
		Description:      req.Description,
		PrizeDescription: req.PrizeDescription,
		ImageURL:         req.ImageURL,
		TicketPrice:      req.TicketPrice,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		WinnerID:         req.WinnerID,
	}

	if req.Status != nil {
		status := domain.RaffleStatus(*req.Status)
		changes.Status = &status
	}

	return changes
}
