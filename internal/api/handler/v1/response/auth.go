package response

import "github.com/rafflehub/raffle-api/internal/domain"

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
