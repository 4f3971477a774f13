package product

import (
	"time"

	"github.com/stockpile/backend/internal/product"
)

type productResponse struct {
	ID        int64            `json:"id"`
	Name      string           `json:"name"`
	Category  categoryResponse `json:"category"`
	Price     float64          `json:"price"`
	Stock     int              `json:"stock"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type categoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func toResponse(p *product.Product) productResponse {
	return productResponse{
		ID:   p.ID,
		Name: p.Name,
		Category: categoryResponse{
			ID:   p.Category.ID,
			Name: p.Category.Name,
		},
		Price:     p.Price.InexactFloat64(),
		Stock:     p.Stock,
		UpdatedAt: p.UpdatedAt,
	}
}

func toResponseList(products []product.Product) []productResponse {
	resp := make([]productResponse, len(products))
	for i := range products {
		resp[i] = toResponse(&products[i])
	}

	return resp
}
