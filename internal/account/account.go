package account

import "errors"

var (
	ErrNotFound           = errors.New("account not found")
	ErrInvalidCredentials = errors.New("email or password is invalid")
)

type Account struct {
	ID         int64
	AvatarFile string // stored filename, empty when the default applies
	Name       string
	Email      string
	Role       string
}

type ListFilter struct {
	Role      string
	Search    string
	SortBy    string
	SortOrder string
}

type CreateParams struct {
	Name       string
	Email      string
	Role       string
	Password   string
	AvatarFile string
}

type UpdateParams struct {
	Name     string
	Email    string
	Role     string
	Password string // optional; empty leaves the password unchanged
}
