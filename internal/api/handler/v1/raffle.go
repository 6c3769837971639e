package v1

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rafflehub/raffle-api/internal/api/handler/v1/request"
	"github.com/rafflehub/raffle-api/internal/api/handler/v1/response"
	"github.com/rafflehub/raffle-api/internal/domain"
	"github.com/rafflehub/raffle-api/internal/pkg/apperrors"
	"github.com/rafflehub/raffle-api/internal/service"
)

type RaffleService interface {
	ListRaffles(ctx context.Context) ([]domain.Raffle, error)
	ListWinners(ctx context.Context) ([]domain.RaffleWinner, error)
	GetRaffle(ctx context.Context, id uint) (domain.Raffle, error)
	CreateRaffle(ctx context.Context, raffle domain.Raffle) (domain.Raffle, error)
	UpdateRaffle(ctx context.Context, id uint, changes domain.RaffleChanges) error
	Stats(ctx context.Context) (domain.RaffleStats, error)
}

type RaffleHandler struct {
	svc RaffleService
}

func NewRaffleHandler(svc RaffleService) *RaffleHandler {
	return &RaffleHandler{
		svc: svc,
	}
}

// HandleListRaffles godoc
// @Summary      List all raffles, newest first
// @Tags         raffles
// @Produce      json
// @Success      200      {object}   []domain.Raffle
// @Failure      500      {object}   response.Err
// @Router       /raffles [get]
func (h *RaffleHandler) HandleListRaffles(ctx *gin.Context) {
	raffles, err := h.svc.ListRaffles(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListRaffles -> h.svc.ListRaffles -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, raffles)
}

// HandleListWinners godoc
// @Summary      List drawn raffles with their winners
// @Tags         raffles
// @Produce      json
// @Success      200      {object}   []domain.RaffleWinner
// @Failure      500      {object}   response.Err
// @Router       /winners [get]
func (h *RaffleHandler) HandleListWinners(ctx *gin.Context) {
	winners, err := h.svc.ListWinners(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListWinners -> h.svc.ListWinners -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, winners)
}

// HandleGetRaffle godoc
// @Summary      Get a raffle by ID
// @Tags         raffles
// @Produce      json
// @Param        raffleID  path       integer true "raffle ID"
// @Success      200      {object}   domain.Raffle
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /raffles/{raffleID} [get]
func (h *RaffleHandler) HandleGetRaffle(ctx *gin.Context) {
	id, err := parseRaffleID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	raffle, err := h.svc.GetRaffle(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrRaffleNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("raffle not found"))

			return
		}

		err = fmt.Errorf("v1.HandleGetRaffle -> h.svc.GetRaffle -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, raffle)
}

// HandleCreateRaffle godoc
// @Summary      Create a new raffle
// @Tags         raffles
// @Produce      json
// @Param        request   body      request.CreateRaffleRequest true "request body"
// @Success      201      {object}   domain.Raffle
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /raffles [post]
func (h *RaffleHandler) HandleCreateRaffle(ctx *gin.Context) {
	var req request.CreateRaffleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	created, err := h.svc.CreateRaffle(ctx.Request.Context(), req.ToDomain())
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindValidation {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}

		err = fmt.Errorf("v1.HandleCreateRaffle -> h.svc.CreateRaffle -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleUpdateRaffle godoc
// @Summary      Partially update a raffle
// @Tags         raffles
// @Produce      json
// @Param        raffleID  path      integer true "raffle ID"
// @Param        request   body      request.UpdateRaffleRequest true "request body"
// @Success      200      {object}   response.MessageResponse
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /raffles/{raffleID} [patch]
func (h *RaffleHandler) HandleUpdateRaffle(ctx *gin.Context) {
	id, err := parseRaffleID(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.UpdateRaffleRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	err = h.svc.UpdateRaffle(ctx.Request.Context(), id, req.ToChanges())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRaffleNotFound):
			response.RenderErr(ctx, response.ErrNotFound("raffle not found"))
		case apperrors.KindOf(err) == apperrors.KindValidation:
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleUpdateRaffle -> h.svc.UpdateRaffle -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "raffle updated"})
}

// HandleGetStats godoc
// @Summary      Ongoing/inactive counts and total revenue
// @Tags         raffles
// @Produce      json
// @Success      200      {object}   domain.RaffleStats
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /raffles/stats [get]
func (h *RaffleHandler) HandleGetStats(ctx *gin.Context) {
	stats, err := h.svc.Stats(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetStats -> h.svc.Stats -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, stats)
}

// HandleExportRaffles godoc
// @Summary      Download the raffle list as CSV
// @Tags         raffles
// @Produce      text/csv
// @Param        columns  query      string false "comma-separated column IDs; defaults to all"
// @Success      200      {string}   string
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /raffles/export [get]
func (h *RaffleHandler) HandleExportRaffles(ctx *gin.Context) {
	columns := exportColumnIDs()
	if raw := ctx.Query("columns"); raw != "" {
		columns = strings.Split(raw, ",")
	}

	raffles, err := h.svc.ListRaffles(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleExportRaffles -> h.svc.ListRaffles -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	var buf bytes.Buffer
	if err = service.WriteRafflesCSV(&buf, raffles, columns); err != nil {
		if apperrors.KindOf(err) == apperrors.KindValidation {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}

		err = fmt.Errorf("v1.HandleExportRaffles -> service.WriteRafflesCSV -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	filename := service.ExportFilename(time.Now())
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func exportColumnIDs() []string {
	ids := make([]string, 0, len(service.ExportColumns))
	for _, col := range service.ExportColumns {
		ids = append(ids, col.ID)
	}

	return ids
}

func parseRaffleID(ctx *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(ctx.Param("raffleID"), 10, 32)
	if err != nil {
		return 0, errors.New("invalid raffle ID")
	}

	return uint(id), nil
}
