package account

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

func avatarURL(file string) string {
	if file == "" {
		file = avatar.DefaultName
	}

	return "/avatars/" + file
}

func toResponse(a *account.Account) accountResponse {
	return accountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Role:      a.Role,
		AvatarURL: avatarURL(a.AvatarFile),
	}
}

func toResponseList(accounts []account.Account) []accountResponse {
	resp := make([]accountResponse, len(accounts))
	for i := range accounts {
		resp[i] = toResponse(&accounts[i])
	}

	return resp
}
