package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/rafflehub/raffle-api/internal/domain"
	"github.com/rafflehub/raffle-api/internal/pkg/apperrors"
)

// ExportColumn is one selectable column of the admin CSV export.
type ExportColumn struct {
	ID    string
	Label string
}

// ExportColumns is the fixed set of columns admins can pick from, in
// their canonical order.
var ExportColumns = []ExportColumn{
	{ID: "title", Label: "Title"},
	{ID: "description", Label: "Description"},
	{ID: "prize_description", Label: "Prize Description"},
	{ID: "ticket_price", Label: "Ticket Price"},
	{ID: "total_tickets", Label: "Total Tickets"},
	{ID: "available_tickets", Label: "Available Tickets"},
	{ID: "start_date", Label: "Start Date"},
	{ID: "end_date", Label: "End Date"},
	{ID: "status", Label: "Status"},
	{ID: "created_at", Label: "Created At"},
}

var ErrUnknownExportColumn = apperrors.New(apperrors.KindValidation, "unknown export column")

// ExportFilename names the download after the export date.
func ExportFilename(t time.Time) string {
	return fmt.Sprintf("raffles_export_%s.csv", t.Format("2006-01-02"))
}

// WriteRafflesCSV writes one header line of column labels followed by
// one line per raffle, fields in the selected column order. Values
// containing commas come out quoted.
func WriteRafflesCSV(w io.Writer, raffles []domain.Raffle, columns []string) error {
	header := make([]string, 0, len(columns))
	for _, id := range columns {
		label, ok := columnLabel(id)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownExportColumn, id)
		}
		header = append(header, label)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("cw.Write -> %w", err)
	}

	for _, raffle := range raffles {
		record := make([]string, 0, len(columns))
		for _, id := range columns {
			record = append(record, columnValue(raffle, id))
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("cw.Write -> %w", err)
		}
	}

	cw.Flush()

	return cw.Error()
}

func columnLabel(id string) (string, bool) {
	for _, col := range ExportColumns {
		if col.ID == id {
			return col.Label, true
		}
	}

	return "", false
}

func columnValue(raffle domain.Raffle, id string) string {
	switch id {
	case "title":
		return raffle.Title
	case "description":
		return raffle.Description
	case "prize_description":
		return raffle.PrizeDescription
	case "ticket_price":
		return strconv.FormatFloat(raffle.TicketPrice, 'f', -1, 64)
	case "total_tickets":
		return strconv.Itoa(raffle.TotalTickets)
	case "available_tickets":
		return strconv.Itoa(raffle.AvailableTickets)
	case "start_date":
		return raffle.StartDate.UTC().Format(time.RFC3339)
	case "end_date":
		return raffle.EndDate.UTC().Format(time.RFC3339)
	case "status":
		return string(raffle.Status)
	case "created_at":
		return raffle.CreatedAt.UTC().Format(time.RFC3339)
	default:
		return ""
	}
}
