package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/rafflehub/raffle-api/internal/api/handler/v1/response"
)

type RoleChecker interface {
	IsAdmin(ctx context.Context, userID uint) (bool, error)
}

// RequireAdmin gates a route group behind the admin role. It must run
// after VerifyJWT. The role is checked against the store on every
// request; nothing is cached.
func RequireAdmin(checker RoleChecker) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, ok := UserIDFromContext(ctx)
		if !ok {
			response.RenderErr(ctx, response.ErrUnauthorized(errors.New("missing authentication")))

			return
		}

		isAdmin, err := checker.IsAdmin(ctx.Request.Context(), userID)
		if err != nil {
			err = fmt.Errorf("middleware.RequireAdmin -> checker.IsAdmin -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))

			return
		}

		if !isAdmin {
			response.RenderErr(ctx, response.ErrForbidden("admin access required"))

			return
		}

		ctx.Next()
	}
}
