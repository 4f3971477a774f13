package account

import (
	"context"

	"github.com/stockpile/backend/internal/apperror"
	"github.com/stockpile/backend/internal/auth"
	"github.com/stockpile/backend/internal/validate"
)

type Repository interface {
	ListAccounts(ctx context.Context, filter ListFilter) ([]Account, error)
	GetAccount(ctx context.Context, id int64) (*Account, error)
	GetCredentialsByEmail(ctx context.Context, email string) (*Account, string, error)
	CreateAccount(ctx context.Context, a *Account, passwordHash string) error
	UpdateAccount(ctx context.Context, a *Account) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	UpdateProfile(ctx context.Context, id int64, name, email string) error
	UpdateAvatar(ctx context.Context, id int64, avatarFile string) error
	DeleteAccount(ctx context.Context, id int64) error
	ListAvatarFiles(ctx context.Context) ([]string, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Account, error) {
	if filter.Role != "" && !validate.Role(filter.Role) {
		filter.Role = ""
	}

	return s.repo.ListAccounts(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id int64) (*Account, error) {
	return s.repo.GetAccount(ctx, id)
}

// Authenticate verifies the login credentials and returns the account.
// Any mismatch collapses into ErrInvalidCredentials so the response does not
// reveal whether the email exists.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*Account, error) {
	if email == "" || password == "" {
		return nil, apperror.Invalidf("email and password are required")
	}

	a, hash, err := s.repo.GetCredentialsByEmail(ctx, email)
	if err != nil {
		if err == ErrNotFound {
			return nil, ErrInvalidCredentials
		}

		return nil, err
	}

	if !auth.CheckPassword(hash, password) {
		return nil, ErrInvalidCredentials
	}

	return a, nil
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Account, error) {
	if params.Name == "" || params.Email == "" || params.Role == "" || params.Password == "" {
		return nil, apperror.Invalidf("name, email, role and password are required")
	}

	if !validate.Email(params.Email) {
		return nil, apperror.Unprocessablef("email field is not valid")
	}

	if !validate.Role(params.Role) {
		return nil, apperror.Unprocessablef(`role field is not valid, please use either "admin" or "staff"`)
	}

	hash, err := auth.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	a := &Account{
		AvatarFile: params.AvatarFile,
		Name:       params.Name,
		Email:      params.Email,
		Role:       params.Role,
	}
	if err := s.repo.CreateAccount(ctx, a, hash); err != nil {
		return nil, err
	}

	return a, nil
}

func (s *Service) Update(ctx context.Context, id int64, params UpdateParams) (*Account, error) {
	if params.Name == "" || params.Email == "" || params.Role == "" {
		return nil, apperror.Invalidf("name, email and role are required")
	}

	if !validate.Email(params.Email) {
		return nil, apperror.Unprocessablef("email field is not valid")
	}

	if !validate.Role(params.Role) {
		return nil, apperror.Unprocessablef(`role field is not valid, please use either "admin" or "staff"`)
	}

	a := &Account{ID: id, Name: params.Name, Email: params.Email, Role: params.Role}
	if err := s.repo.UpdateAccount(ctx, a); err != nil {
		return nil, err
	}

	if params.Password != "" {
		hash, err := auth.HashPassword(params.Password)
		if err != nil {
			return nil, err
		}

		if err := s.repo.UpdatePassword(ctx, id, hash); err != nil {
			return nil, err
		}
	}

	return s.repo.GetAccount(ctx, id)
}

func (s *Service) UpdateProfile(ctx context.Context, id int64, name, email string) (*Account, error) {
	if name == "" || email == "" {
		return nil, apperror.Invalidf("name and email are required")
	}

	if !validate.Email(email) {
		return nil, apperror.Unprocessablef("email field is not valid")
	}

	if err := s.repo.UpdateProfile(ctx, id, name, email); err != nil {
		return nil, err
	}

	return s.repo.GetAccount(ctx, id)
}

func (s *Service) SetAvatar(ctx context.Context, id int64, avatarFile string) error {
	return s.repo.UpdateAvatar(ctx, id, avatarFile)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteAccount(ctx, id)
}

// AvatarFilesInUse returns the set of avatar filenames still referenced by an
// account, used by the periodic avatar prune.
func (s *Service) AvatarFilesInUse(ctx context.Context) (map[string]struct{}, error) {
	files, err := s.repo.ListAvatarFiles(ctx)
	if err != nil {
		return nil, err
	}

	needed := make(map[string]struct{}, len(files))
	for _, f := range files {
		needed[f] = struct{}{}
	}

	return needed, nil
}
