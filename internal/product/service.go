package product

import (
	"context"

	"github.com/stockpile/backend/internal/apperror"
	"github.com/stockpile/backend/internal/notify"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=product
type Repository interface {
	ListProducts(ctx context.Context, filter ListFilter) ([]Product, error)
	GetProduct(ctx context.Context, id int64) (*Product, error)
	CreateProduct(ctx context.Context, p *Product, categoryID int64) error
	UpdateProduct(ctx context.Context, id int64, params Params) error
	DeleteProduct(ctx context.Context, id int64) error
	CategoryExists(ctx context.Context, id int64) (bool, error)
}

type Service struct {
	repo         Repository
	notifier     notify.Notifier
	lowThreshold int
}

func NewService(repo Repository, notifier notify.Notifier, lowThreshold int) *Service {
	return &Service{repo: repo, notifier: notifier, lowThreshold: lowThreshold}
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Product, error) {
	return s.repo.ListProducts(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id int64) (*Product, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *Service) validate(ctx context.Context, params Params) error {
	if params.Name == "" {
		return apperror.Invalidf("name is required")
	}

	if params.CategoryID == 0 {
		return apperror.Invalidf("category_id is required")
	}

	exists, err := s.repo.CategoryExists(ctx, params.CategoryID)
	if err != nil {
		return err
	}

	if !exists {
		return apperror.NotFoundf("Category with id %d does not exist", params.CategoryID)
	}

	return nil
}

func (s *Service) Create(ctx context.Context, params Params) (*Product, error) {
	if err := s.validate(ctx, params); err != nil {
		return nil, err
	}

	p := &Product{
		Name:  params.Name,
		Price: params.Price,
		Stock: params.Stock,
	}
	if err := s.repo.CreateProduct(ctx, p, params.CategoryID); err != nil {
		return nil, err
	}

	return s.repo.GetProduct(ctx, p.ID)
}

// Update replaces the product fields. Stock set here is an administrative
// correction; transactional movement goes through the ledger recorder.
func (s *Service) Update(ctx context.Context, id int64, params Params) (*Product, error) {
	if err := s.validate(ctx, params); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateProduct(ctx, id, params); err != nil {
		return nil, err
	}

	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.Stock <= 0 {
		go s.notifier.NotifyEmptyStock(p.Name)
	} else if p.Stock < s.lowThreshold {
		go s.notifier.NotifyLowStock(p.Name)
	}

	return p, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteProduct(ctx, id)
}
