package supplier

import (
	"context"

	"github.com/stockpile/backend/internal/apperror"
	"github.com/stockpile/backend/internal/validate"
)

type Repository interface {
	ListSuppliers(ctx context.Context, filter ListFilter) ([]Supplier, error)
	GetSupplier(ctx context.Context, id int64) (*Supplier, error)
	CreateSupplier(ctx context.Context, sp *Supplier) error
	UpdateSupplier(ctx context.Context, sp *Supplier) error
	DeleteSupplier(ctx context.Context, id int64) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Only the name is mandatory for suppliers; contact fields are validated when
// present.
func validateParams(p Params) error {
	if p.Name == "" {
		return apperror.Invalidf("name is required")
	}

	if p.Email != "" && !validate.Email(p.Email) {
		return apperror.Unprocessablef("email field is not valid")
	}

	if p.PhoneNumber != "" && !validate.PhoneNumber(p.PhoneNumber) {
		return apperror.Unprocessablef("phone_number field is not valid, use format [+aaa x..n]. For example: +39 0123456789")
	}

	return nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Supplier, error) {
	return s.repo.ListSuppliers(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id int64) (*Supplier, error) {
	return s.repo.GetSupplier(ctx, id)
}

func (s *Service) Create(ctx context.Context, params Params) (*Supplier, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	sp := &Supplier{
		Name:        params.Name,
		Email:       params.Email,
		PhoneNumber: params.PhoneNumber,
	}
	if err := s.repo.CreateSupplier(ctx, sp); err != nil {
		return nil, err
	}

	return sp, nil
}

func (s *Service) Update(ctx context.Context, id int64, params Params) (*Supplier, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	sp := &Supplier{
		ID:          id,
		Name:        params.Name,
		Email:       params.Email,
		PhoneNumber: params.PhoneNumber,
	}
	if err := s.repo.UpdateSupplier(ctx, sp); err != nil {
		return nil, err
	}

	return s.repo.GetSupplier(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteSupplier(ctx, id)
}
