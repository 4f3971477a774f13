package customer

import (
	"context"

	"github.com/stockpile/backend/internal/apperror"
	"github.com/stockpile/backend/internal/validate"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=customer
type Repository interface {
	ListCustomers(ctx context.Context, filter ListFilter) ([]Customer, error)
	GetCustomer(ctx context.Context, id int64) (*Customer, error)
	CreateCustomer(ctx context.Context, c *Customer) error
	UpdateCustomer(ctx context.Context, c *Customer) error
	DeleteCustomer(ctx context.Context, id int64) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func validateParams(p Params) error {
	if p.Name == "" {
		return apperror.Invalidf("name is required")
	}

	if p.Email == "" {
		return apperror.Invalidf("email is required")
	}

	if p.PhoneNumber == "" {
		return apperror.Invalidf("phone_number is required")
	}

	if !validate.Email(p.Email) {
		return apperror.Unprocessablef("email field is not valid")
	}

	if !validate.PhoneNumber(p.PhoneNumber) {
		return apperror.Unprocessablef("phone_number field is not valid, use format [+aaa x..n]. For example: +39 0123456789")
	}

	return nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Customer, error) {
	return s.repo.ListCustomers(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id int64) (*Customer, error) {
	return s.repo.GetCustomer(ctx, id)
}

func (s *Service) Create(ctx context.Context, params Params) (*Customer, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	c := &Customer{
		Name:        params.Name,
		Email:       params.Email,
		PhoneNumber: params.PhoneNumber,
	}
	if err := s.repo.CreateCustomer(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Update(ctx context.Context, id int64, params Params) (*Customer, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	c := &Customer{
		ID:          id,
		Name:        params.Name,
		Email:       params.Email,
		PhoneNumber: params.PhoneNumber,
	}
	if err := s.repo.UpdateCustomer(ctx, c); err != nil {
		return nil, err
	}

	return s.repo.GetCustomer(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteCustomer(ctx, id)
}
