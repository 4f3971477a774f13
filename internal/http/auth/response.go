package auth

import (
	"github.com/stockpile/backend/internal/account"
	"github.com/stockpile/backend/internal/avatar"
)

type accountResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	AvatarURL string `json:"avatar_url"`
}

type loginResponse struct {
	Token   string          `json:"token"`
	Account accountResponse `json:"account"`
}

func toAccountResponse(a *account.Account) accountResponse {
	file := a.AvatarFile
	if file == "" {
		file = avatar.DefaultName
	}

	return accountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Role:      a.Role,
		AvatarURL: "/avatars/" + file,
	}
}
