package dto

import (
	"time"

	"github.com/mihkuno/RESPOCU/internal/entity"
	"github.com/mihkuno/RESPOCU/internal/token"
)

type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ForgotRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// StatusResponse is the only shape the verification entry points return;
// the UI branches purely on the status value.
type StatusResponse struct {
	Status token.Status `json:"status"`
}

type AccountResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

func AccountResponseFromEntity(account *entity.Account) AccountResponse {
	return AccountResponse{
		ID:        account.ID.String(),
		Email:     account.Email,
		Type:      string(account.Type),
		CreatedAt: account.CreatedAt,
	}
}

func AccountResponsesFromEntities(accounts []entity.Account) []AccountResponse {
	responses := make([]AccountResponse, 0, len(accounts))
	for i := range accounts {
		responses = append(responses, AccountResponseFromEntity(&accounts[i]))
	}
	return responses
}
