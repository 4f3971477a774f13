package category

import (
	"context"

	"github.com/stockpile/backend/internal/apperror"
)

type Repository interface {
	ListCategories(ctx context.Context, filter ListFilter) ([]Category, error)
	GetCategory(ctx context.Context, id int64) (*Category, error)
	CreateCategory(ctx context.Context, c *Category) error
	UpdateCategory(ctx context.Context, c *Category) error
	DeleteCategory(ctx context.Context, id int64) error
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

	if p.Description == "" {
		return apperror.Invalidf("description is required")
	}

	return nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Category, error) {
	return s.repo.ListCategories(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id int64) (*Category, error) {
	return s.repo.GetCategory(ctx, id)
}

func (s *Service) Create(ctx context.Context, params Params) (*Category, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	c := &Category{Name: params.Name, Description: params.Description}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Update(ctx context.Context, id int64, params Params) (*Category, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	c := &Category{ID: id, Name: params.Name, Description: params.Description}
	if err := s.repo.UpdateCategory(ctx, c); err != nil {
		return nil, err
	}

	return s.repo.GetCategory(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteCategory(ctx, id)
}
