package v1

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafflehub/raffle-api/internal/domain"
	"github.com/rafflehub/raffle-api/internal/pkg/apperrors"
	"github.com/rafflehub/raffle-api/internal/service"
)

type stubRaffleService struct {
	raffles []domain.Raffle
	winners []domain.RaffleWinner
	stats   domain.RaffleStats
	err     error

	updatedID      uint
	updatedChanges domain.RaffleChanges
}

func (s *stubRaffleService) ListRaffles(_ context.Context) ([]domain.Raffle, error) {
	return s.raffles, s.err
}

func (s *stubRaffleService) ListWinners(_ context.Context) ([]domain.RaffleWinner, error) {
	return s.winners, s.err
}

func (s *stubRaffleService) GetRaffle(_ context.Context, id uint) (domain.Raffle, error) {
	if s.err != nil {
		return domain.Raffle{}, s.err
	}

	for _, raffle := range s.raffles {
		if raffle.ID == id {
			return raffle, nil
		}
	}

	return domain.Raffle{}, service.ErrRaffleNotFound
}

func (s *stubRaffleService) CreateRaffle(_ context.Context, raffle domain.Raffle) (domain.Raffle, error) {
	if s.err != nil {
		return domain.Raffle{}, s.err
	}

	raffle.ID = 1

	return raffle, nil
}

func (s *stubRaffleService) UpdateRaffle(_ context.Context, id uint, changes domain.RaffleChanges) error {
	s.updatedID = id
	s.updatedChanges = changes

	return s.err
}

func (s *stubRaffleService) Stats(_ context.Context) (domain.RaffleStats, error) {
	return s.stats, s.err
}

func newTestRouter(svc *stubRaffleService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := NewRaffleHandler(svc)

	router := gin.New()
	router.GET("/raffles", h.HandleListRaffles)
	router.GET("/winners", h.HandleListWinners)
	router.GET("/raffles/stats", h.HandleGetStats)
	router.GET("/raffles/export", h.HandleExportRaffles)
	router.GET("/raffles/:raffleID", h.HandleGetRaffle)
	router.POST("/raffles", h.HandleCreateRaffle)
	router.PATCH("/raffles/:raffleID", h.HandleUpdateRaffle)

	return router
}

func performRequest(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)

	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	return recorder
}

func testRaffle() domain.Raffle {
	return domain.Raffle{
		ID:               7,
		Title:            "Mountain Bike Giveaway",
		PrizeDescription: "Mountain bike, helmet, and lock",
		TicketPrice:      2.5,
		TotalTickets:     200,
		AvailableTickets: 160,
		StartDate:        time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:          time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		Status:           domain.RaffleStatusActive,
	}
}

func TestHandleListRaffles(t *testing.T) {
	router := newTestRouter(&stubRaffleService{raffles: []domain.Raffle{testRaffle()}})

	resp := performRequest(t, router, http.MethodGet, "/raffles", "")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"Mountain Bike Giveaway"`)
}

func TestHandleListRaffles_ServiceError(t *testing.T) {
	router := newTestRouter(&stubRaffleService{err: errors.New("boom")})

	resp := performRequest(t, router, http.MethodGet, "/raffles", "")

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Contains(t, resp.Body.String(), "something went wrong")
}

func TestHandleListWinners(t *testing.T) {
	svc := &stubRaffleService{
		winners: []domain.RaffleWinner{
			{
				RaffleID:         3,
				Title:            "Spring Concert Tickets",
				PrizeDescription: "Concert tickets for two",
				WinnerID:         42,
				WinnerEmail:      "alice@example.com",
				EndDate:          time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			},
		},
	}
	router := newTestRouter(svc)

	resp := performRequest(t, router, http.MethodGet, "/winners", "")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"winner_email":"alice@example.com"`)
	assert.Contains(t, resp.Body.String(), `"raffle_id":3`)
}

func TestHandleListWinners_ServiceError(t *testing.T) {
	router := newTestRouter(&stubRaffleService{err: errors.New("boom")})

	resp := performRequest(t, router, http.MethodGet, "/winners", "")

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}

func TestHandleGetRaffle(t *testing.T) {
	router := newTestRouter(&stubRaffleService{raffles: []domain.Raffle{testRaffle()}})

	tests := []struct {
		name     string
		path     string
		wantCode int
		wantBody string
	}{
		{
			name:     "found",
			path:     "/raffles/7",
			wantCode: http.StatusOK,
			wantBody: `"id":7`,
		},
		{
			name:     "not found",
			path:     "/raffles/99",
			wantCode: http.StatusNotFound,
			wantBody: "raffle not found",
		},
		{
			name:     "bad ID",
			path:     "/raffles/abc",
			wantCode: http.StatusBadRequest,
			wantBody: "invalid raffle ID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := performRequest(t, router, http.MethodGet, tt.path, "")

			assert.Equal(t, tt.wantCode, resp.Code)
			assert.Contains(t, resp.Body.String(), tt.wantBody)
		})
	}
}

func TestHandleCreateRaffle(t *testing.T) {
	body := `{
		"title": "Holiday Hamper",
		"prize_description": "Gourmet food hamper",
		"ticket_price": 1.5,
		"total_tickets": 100,
		"start_date": "2026-03-01T00:00:00Z",
		"end_date": "2026-04-01T00:00:00Z"
	}`

	router := newTestRouter(&stubRaffleService{})

	resp := performRequest(t, router, http.MethodPost, "/raffles", body)

	assert.Equal(t, http.StatusCreated, resp.Code)
	assert.Contains(t, resp.Body.String(), `"id":1`)
	assert.Contains(t, resp.Body.String(), `"Holiday Hamper"`)
}

func TestHandleCreateRaffle_InvalidBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "malformed JSON",
			body: `{"title":`,
		},
		{
			name: "missing title",
			body: `{
				"prize_description": "Gourmet food hamper",
				"ticket_price": 1.5,
				"total_tickets": 100,
				"start_date": "2026-03-01T00:00:00Z",
				"end_date": "2026-04-01T00:00:00Z"
			}`,
		},
		{
			name: "end before start",
			body: `{
				"title": "Holiday Hamper",
				"prize_description": "Gourmet food hamper",
				"ticket_price": 1.5,
				"total_tickets": 100,
				"start_date": "2026-04-01T00:00:00Z",
				"end_date": "2026-03-01T00:00:00Z"
			}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&stubRaffleService{})

			resp := performRequest(t, router, http.MethodPost, "/raffles", tt.body)

			assert.Equal(t, http.StatusBadRequest, resp.Code)
		})
	}
}

func TestHandleCreateRaffle_ServiceValidationError(t *testing.T) {
	svc := &stubRaffleService{
		err: apperrors.New(apperrors.KindValidation, "total tickets must be positive"),
	}
	router := newTestRouter(svc)

	body := `{
		"title": "Holiday Hamper",
		"prize_description": "Gourmet food hamper",
		"ticket_price": 1.5,
		"total_tickets": 100,
		"start_date": "2026-03-01T00:00:00Z",
		"end_date": "2026-04-01T00:00:00Z"
	}`

	resp := performRequest(t, router, http.MethodPost, "/raffles", body)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "total tickets must be positive")
}

func TestHandleUpdateRaffle(t *testing.T) {
	svc := &stubRaffleService{}
	router := newTestRouter(svc)

	resp := performRequest(t, router, http.MethodPatch, "/raffles/7", `{"status": "ended"}`)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "raffle updated")
	assert.Equal(t, uint(7), svc.updatedID)
	require.NotNil(t, svc.updatedChanges.Status)
	assert.Equal(t, domain.RaffleStatusEnded, *svc.updatedChanges.Status)
}

func TestHandleUpdateRaffle_NotFound(t *testing.T) {
	router := newTestRouter(&stubRaffleService{err: service.ErrRaffleNotFound})

	resp := performRequest(t, router, http.MethodPatch, "/raffles/99", `{"status": "ended"}`)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHandleUpdateRaffle_EmptyBody(t *testing.T) {
	router := newTestRouter(&stubRaffleService{})

	resp := performRequest(t, router, http.MethodPatch, "/raffles/7", `{}`)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHandleGetStats(t *testing.T) {
	svc := &stubRaffleService{
		stats: domain.RaffleStats{Ongoing: 3, Inactive: 2, TotalRevenue: 175.5},
	}
	router := newTestRouter(svc)

	resp := performRequest(t, router, http.MethodGet, "/raffles/stats", "")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"ongoing":3,"inactive":2,"total_revenue":175.5}`, resp.Body.String())
}

func TestHandleExportRaffles(t *testing.T) {
	router := newTestRouter(&stubRaffleService{raffles: []domain.Raffle{testRaffle()}})

	resp := performRequest(t, router, http.MethodGet, "/raffles/export", "")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header().Get("Content-Type"))
	assert.Contains(t, resp.Header().Get("Content-Disposition"), "attachment; filename=")
	assert.Contains(t, resp.Header().Get("Content-Disposition"), "raffles_export_")

	lines := strings.Split(strings.TrimSpace(resp.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Title,Description,Prize Description,Ticket Price,Total Tickets,Available Tickets,Start Date,End Date,Status,Created At", strings.TrimSpace(lines[0]))
	assert.Contains(t, lines[1], `"Mountain bike, helmet, and lock"`)
}

func TestHandleExportRaffles_SelectedColumns(t *testing.T) {
	router := newTestRouter(&stubRaffleService{raffles: []domain.Raffle{testRaffle()}})

	resp := performRequest(t, router, http.MethodGet, "/raffles/export?columns=title,status", "")

	assert.Equal(t, http.StatusOK, resp.Code)

	lines := strings.Split(strings.TrimSpace(resp.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Title,Status", strings.TrimSpace(lines[0]))
	assert.Equal(t, "Mountain Bike Giveaway,active", strings.TrimSpace(lines[1]))
}

func TestHandleExportRaffles_UnknownColumn(t *testing.T) {
	router := newTestRouter(&stubRaffleService{})

	resp := performRequest(t, router, http.MethodGet, "/raffles/export?columns=title,nope", "")

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
