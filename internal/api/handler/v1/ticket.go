package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafflehub/raffle-api/internal/api/handler/v1/response"
	"github.com/rafflehub/raffle-api/internal/api/middleware"
	"github.com/rafflehub/raffle-api/internal/domain"
)

type TicketService interface {
	ListUserTickets(ctx context.Context, userID uint) ([]domain.Ticket, error)
}

type TicketHandler struct {
	svc TicketService
}

func NewTicketHandler(svc TicketService) *TicketHandler {
	return &TicketHandler{
		svc: svc,
	}
}

// HandleListTickets godoc
// @Summary      List the caller's raffle tickets
// @Tags         tickets
// @Produce      json
// @Success      200      {object}   []domain.Ticket
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /tickets [get]
func (h *TicketHandler) HandleListTickets(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized(errors.New("missing authentication")))

		return
	}

	tickets, err := h.svc.ListUserTickets(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListTickets -> h.svc.ListUserTickets -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, tickets)
}
