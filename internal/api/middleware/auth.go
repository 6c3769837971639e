package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rafflehub/raffle-api/internal/api/handler/v1/response"
	"github.com/rafflehub/raffle-api/internal/pkg/jwthelper"
)

const userIDKey = "userID"

var errMissingToken = errors.New("missing or malformed authorization header")

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

// VerifyJWT checks the bearer token and stashes the caller's user ID in
// the request context.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			response.RenderErr(ctx, response.ErrUnauthorized(errMissingToken))

			return
		}

		claims, err := jwthelper.ParseToken(a.signingKey, token, ctx.Request.UserAgent())
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(jwthelper.ErrInvalidToken))

			return
		}

		ctx.Set(userIDKey, claims.UserID)
		ctx.Next()
	}
}

func UserIDFromContext(ctx *gin.Context) (uint, bool) {
	value, exists := ctx.Get(userIDKey)
	if !exists {
		return 0, false
	}

	userID, ok := value.(uint)

	return userID, ok
}
